/*
Copyright © 2013 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

package overlapmesh

import "errors"

// ErrInvalidMesh marks a fatal logic error in the input meshes: a
// zero-length edge where none is allowed, or an edge map that is
// inconsistent with the faces that reference it. It also marks invalid
// settings: a nil Options.Kernel or an unknown DedupStrategy.
var ErrInvalidMesh = errors.New("overlapmesh: invalid mesh")

// ErrUnsupportedInput marks an input configuration the algorithm does not
// attempt to handle: coincident F/S edges, more than one intersection
// between a single pair of edges, or a path segment reused during assembly.
var ErrUnsupportedInput = errors.New("overlapmesh: unsupported input")

// ErrAssemblyFailed marks the assembler's infinite-loop safety net tripping:
// Phase B circled an S-face more times than it has edges without closing
// the overlap polygon.
var ErrAssemblyFailed = errors.New("overlapmesh: face assembly did not terminate")
