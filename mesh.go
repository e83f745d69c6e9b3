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

import (
	"fmt"

	"github.com/spatialmodel/overlapmesh/kernel"
)

// NoFace marks the absent side of an edge-map entry for an edge that only
// one face claims (a mesh boundary, per §3's "this spec assumes closed
// meshes" — present so the zero value of edgeFaces is unambiguous).
const NoFace = -1

type edgeFaces struct {
	a, b int
}

// Mesh is a node array, a face array, and the undirected edge-to-face-pair
// map described in §3. It is read-only after BuildEdgeMap: F and S are never
// mutated once loaded, and the overlap mesh O is only ever appended to.
type Mesh struct {
	Nodes []kernel.Node
	Faces []Face

	edgeMap map[undirectedKey]edgeFaces
}

// NumFaces implements kernel.MeshView.
func (m *Mesh) NumFaces() int { return len(m.Faces) }

// FaceAt implements kernel.MeshView.
func (m *Mesh) FaceAt(i int) kernel.FaceEdges {
	return faceView{mesh: m, face: m.Faces[i]}
}

// BuildEdgeMap populates the undirected edge -> face-pair index. It must be
// called once after Faces is fully populated and before any traversal or
// adjacency query; Faces is not mutated after this call in the normal
// lifecycle of F and S.
func (m *Mesh) BuildEdgeMap() error {
	m.edgeMap = make(map[undirectedKey]edgeFaces, len(m.Faces)*4)
	for fi, face := range m.Faces {
		for _, e := range face.Edges {
			if e.Degenerate() {
				continue
			}
			k := edgeKey(e.N0, e.N1)
			ef, ok := m.edgeMap[k]
			if !ok {
				m.edgeMap[k] = edgeFaces{a: fi, b: NoFace}
				continue
			}
			if ef.a == fi {
				continue // this face already claimed the edge via another traversal of it
			}
			if ef.b != NoFace {
				return fmt.Errorf("overlapmesh: edge (%d,%d) claimed by more than two faces (%d, %d, %d): %w",
					e.N0, e.N1, ef.a, ef.b, fi, ErrInvalidMesh)
			}
			ef.b = fi
			m.edgeMap[k] = ef
		}
	}
	return nil
}

// NeighborFaces returns the (at most two) faces sharing the undirected edge
// (n0,n1), using NoFace for a boundary edge's absent side. ok is false if
// the edge does not appear in any face.
func (m *Mesh) NeighborFaces(n0, n1 int) (a, b int, ok bool) {
	ef, found := m.edgeMap[edgeKey(n0, n1)]
	if !found {
		return NoFace, NoFace, false
	}
	return ef.a, ef.b, true
}

// OtherFace returns the face sharing edge (n0,n1) with face "from", or
// NoFace if "from" is not actually one of the edge's two faces or the edge
// is a boundary edge.
func (m *Mesh) OtherFace(from, n0, n1 int) int {
	a, b, ok := m.NeighborFaces(n0, n1)
	if !ok {
		return NoFace
	}
	switch from {
	case a:
		return b
	case b:
		return a
	default:
		return NoFace
	}
}

// GetEdgeIndex returns the local index of edge e within face f's edge list,
// matching on directed endpoints and type, or -1 if e does not appear in f.
func (m *Mesh) GetEdgeIndex(f int, e Edge) int {
	for i, fe := range m.Faces[f].Edges {
		if fe == e {
			return i
		}
	}
	return -1
}
