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

// Package kernel defines the geometric predicates and constructions that the
// overlap-mesh algorithm consumes but never implements as part of its own
// contract: node equality, edge-edge intersection, and face location on the
// unit sphere. Two interchangeable implementations are provided, a
// tolerance-based "fuzzy" kernel and a rational-arithmetic "exact" kernel;
// both satisfy the same Kernel interface, and a single run of the algorithm
// must use only one of them throughout.
package kernel

import "fmt"

// EdgeType distinguishes the two supported curve types an Edge's arc can
// follow between its endpoints.
type EdgeType int

const (
	// GreatCircle is the shorter arc of the intersection of a plane through
	// the sphere's centre with the sphere.
	GreatCircle EdgeType = iota
	// ConstantLatitude is the shorter arc of a circle at fixed latitude
	// between two longitudes.
	ConstantLatitude
)

func (t EdgeType) String() string {
	switch t {
	case GreatCircle:
		return "great-circle"
	case ConstantLatitude:
		return "constant-latitude"
	default:
		return fmt.Sprintf("EdgeType(%d)", int(t))
	}
}

// Node is a point on the unit sphere. Equality between two nodes is never
// bitwise; it is always mediated by a Kernel's AreNodesEqual.
type Node struct {
	X, Y, Z float64
}

// Location classifies where a Node falls with respect to a face's closure.
type Location int

const (
	// Interior means the node lies strictly inside the face.
	Interior Location = iota
	// OnEdge means the node lies on one of the face's edges, away from its
	// endpoints.
	OnEdge
	// OnVertex means the node coincides with one of the face's vertices.
	OnVertex
)

// FaceHit is one element of FindFaceFromNode's result: a face whose closure
// contains the queried node, and where on that face's boundary it falls.
type FaceHit struct {
	Face  int
	Loc   Location
	Index int // local vertex or edge index; meaningless when Loc == Interior.
}

// FaceEdges exposes the ordered, directed edge sequence of one face, without
// requiring this package to depend on the mesh package that owns the face —
// the mesh package's Face type implements this interface instead.
type FaceEdges interface {
	NumEdges() int
	EdgeNodes(i int) (n0, n1 Node, typ EdgeType)
}

// MeshView exposes the minimal read-only surface of a mesh that face-location
// queries need. The mesh package's Mesh type implements this interface.
type MeshView interface {
	NumFaces() int
	FaceAt(i int) FaceEdges
}

// Kernel is the geometric-predicate contract the tracer and assembler
// consume. Implementations must be pure: safe to call concurrently, and
// free of any state that would make two calls with the same arguments
// disagree.
type Kernel interface {
	// Name identifies the kernel implementation, for diagnostics and for
	// asserting a single run used only one kernel throughout.
	Name() string

	// AreNodesEqual reports whether a and b represent the same point, within
	// this kernel's notion of tolerance. It is reflexive and symmetric but
	// not required to be transitive.
	AreNodesEqual(a, b Node) bool

	// EdgeIntersections computes the intersection(s) of edge (aBegin,aEnd)
	// of type aType with edge (bBegin,bEnd) of type bType. It returns at
	// most two points for ordinary edges. When the two edges are coincident
	// (share an arc), coincident is true and points is unspecified.
	EdgeIntersections(aBegin, aEnd Node, aType EdgeType, bBegin, bEnd Node, bType EdgeType) (coincident bool, points []Node, err error)

	// FindFaceFromNode returns every face of mesh whose closure contains
	// node, tagged with where on that face's boundary the node falls.
	FindFaceFromNode(mesh MeshView, node Node) ([]FaceHit, error)

	// FindFaceNearNode disambiguates among candidates (face indices sharing
	// the vertex/edge at "at") by picking the unique face that an edge of
	// the given type, leaving "at" toward "toward", enters. If candidates is
	// nil, all faces of mesh touching "at" are considered.
	FindFaceNearNode(mesh MeshView, candidates []int, at, toward Node, edgeType EdgeType) (int, error)
}
