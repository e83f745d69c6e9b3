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

import "github.com/sirupsen/logrus"

// Log is the package-level logger used for the recoverable-anomaly warnings
// and verbosity-gated progress messages described in the tracer and
// assembler. Callers may replace it (e.g. to redirect output or attach
// hooks) before calling GenerateOverlap.
var Log = logrus.StandardLogger()
