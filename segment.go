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

import "github.com/spatialmodel/overlapmesh/kernel"

// IntersectType classifies how a PathSegment terminates.
type IntersectType int

const (
	// IntersectNone means the segment ran to f's next vertex without
	// leaving the current S-face.
	IntersectNone IntersectType = iota
	// IntersectEdge means the segment ends on the interior of an S-edge.
	IntersectEdge
	// IntersectNode means the segment ends on an S-vertex.
	IntersectNode
)

// PathSegment is one edge of the tracer's output: an edge in overlap-node
// indices, tagged with the (F-face, S-face) pair whose intersection it
// bounds and with how it terminates.
type PathSegment struct {
	N0, N1 int
	Type   kernel.EdgeType

	// IxFirstFace is the F-face being traced; constant across one trace call.
	IxFirstFace int
	// IxSecondFace is the S-face containing this segment's interior.
	IxSecondFace int

	IntType IntersectType
	// IxIntersect is, for IntersectNode, the vertex's local index in
	// faceSecond[IxSecondFace]; for IntersectEdge, the local edge index.
	IxIntersect int
	// EdgeIntersect is the actual S-edge crossed, populated when
	// IntType == IntersectEdge; used to match during assembly.
	EdgeIntersect Edge
}
