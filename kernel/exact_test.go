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

package kernel

import "testing"

func TestExactAreNodesEqual(t *testing.T) {
	e := NewExact(0)
	a := node(10, 20)
	b := node(10, 20)
	if !e.AreNodesEqual(a, b) {
		t.Errorf("identical nodes reported unequal")
	}
	c := Node{X: a.X + 1e-9, Y: a.Y, Z: a.Z}
	if e.AreNodesEqual(a, c) {
		t.Errorf("nodes 1e-9 apart reported equal under exact comparison")
	}
}

func TestExactGreatCircleIntersectionMatchesFuzzy(t *testing.T) {
	fz := NewFuzzy(1e-9)
	ex := NewExact(1e-9)
	a0, a1 := node(-10, 0), node(10, 0)
	b0, b1 := node(0, -10), node(0, 10)

	_, fzPts, err := fz.EdgeIntersections(a0, a1, GreatCircle, b0, b1, GreatCircle)
	if err != nil {
		t.Fatalf("fuzzy EdgeIntersections: %v", err)
	}
	_, exPts, err := ex.EdgeIntersections(a0, a1, GreatCircle, b0, b1, GreatCircle)
	if err != nil {
		t.Fatalf("exact EdgeIntersections: %v", err)
	}
	if len(fzPts) != len(exPts) {
		t.Fatalf("fuzzy found %d intersections, exact found %d", len(fzPts), len(exPts))
	}
	if len(exPts) != 1 {
		t.Fatalf("expected exactly one intersection, got %d", len(exPts))
	}
	if !ex.AreNodesEqual(exPts[0], fzPts[0]) {
		t.Errorf("exact intersection %+v does not match fuzzy intersection %+v within exact tolerance", exPts[0], fzPts[0])
	}
}

func TestExactGreatCircleCoincident(t *testing.T) {
	e := NewExact(1e-9)
	a0, a1 := node(-10, 0), node(10, 0)
	b0, b1 := node(-5, 0), node(20, 0)

	coincident, _, err := e.EdgeIntersections(a0, a1, GreatCircle, b0, b1, GreatCircle)
	if err != nil {
		t.Fatalf("EdgeIntersections: %v", err)
	}
	if !coincident {
		t.Errorf("expected overlapping equatorial arcs to be reported coincident")
	}
}

func TestExactFindFaceFromNodeMatchesFuzzyTopology(t *testing.T) {
	// §8's idempotence-of-kernel-choice property: both kernels must agree on
	// which face a node lands in, even though they decide vertex and edge
	// hits by different means (tolerances vs. exact predicates); both use
	// the same winding-number test for the interior.
	mesh := &fakeMesh{faces: []FaceEdges{
		quad{n0: node(-10, -10), n1: node(10, -10), n2: node(10, 10), n3: node(-10, 10)},
		quad{n0: node(170, -10), n1: node(190, -10), n2: node(190, 10), n3: node(170, 10)},
	}}

	fz := NewFuzzy(1e-9)
	ex := NewExact(1e-9)

	fzHits, err := fz.FindFaceFromNode(mesh, node(0, 0))
	if err != nil {
		t.Fatalf("fuzzy FindFaceFromNode: %v", err)
	}
	exHits, err := ex.FindFaceFromNode(mesh, node(0, 0))
	if err != nil {
		t.Fatalf("exact FindFaceFromNode: %v", err)
	}
	if len(fzHits) != 1 || len(exHits) != 1 {
		t.Fatalf("expected exactly one hit from each kernel, got fuzzy=%+v exact=%+v", fzHits, exHits)
	}
	if fzHits[0].Face != exHits[0].Face || fzHits[0].Loc != exHits[0].Loc {
		t.Errorf("fuzzy and exact kernels disagree on face location: %+v vs %+v", fzHits[0], exHits[0])
	}
}

func TestExactLocateOnVertexAndEdge(t *testing.T) {
	e := NewExact(0)
	q := quad{
		n0: node(-10, -10),
		n1: node(10, -10),
		n2: node(10, 10),
		n3: node(-10, 10),
	}

	loc, _, ok := e.locate(q, node(-10, -10))
	if !ok || loc != OnVertex {
		t.Errorf("quad corner: got (%v,%v), want OnVertex", loc, ok)
	}

	loc, _, ok = e.locate(q, node(0, -10))
	if !ok || loc != OnEdge {
		t.Errorf("quad south edge midpoint: got (%v,%v), want OnEdge", loc, ok)
	}

	loc, _, ok = e.locate(q, node(0, 0))
	if !ok || loc != Interior {
		t.Errorf("quad centre: got (%v,%v), want Interior", loc, ok)
	}
}
