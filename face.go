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

// Face is an ordered, cyclic sequence of edges forming a simple spherical
// polygon, traversed counter-clockwise when viewed from outside the sphere.
// Vertex i of the face is Edges[i].N0, which must equal Edges[i-1].N1.
type Face struct {
	Edges []Edge
}

// NumEdges implements kernel.FaceEdges.
func (f Face) NumEdges() int { return len(f.Edges) }

// Vertex returns the node index of the face's i'th vertex (0 <= i < NumEdges()).
func (f Face) Vertex(i int) int { return f.Edges[i].N0 }

// faceView binds a Face to the Mesh whose Nodes array resolves its node
// indices to coordinates, satisfying kernel.FaceEdges.
type faceView struct {
	mesh *Mesh
	face Face
}

func (v faceView) NumEdges() int { return v.face.NumEdges() }

func (v faceView) EdgeNodes(i int) (kernel.Node, kernel.Node, kernel.EdgeType) {
	e := v.face.Edges[i]
	return v.mesh.Nodes[e.N0], v.mesh.Nodes[e.N1], e.Type
}
