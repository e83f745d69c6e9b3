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
	"testing"

	"github.com/spatialmodel/overlapmesh/kernel"
)

// dupMesh builds a tiny overlap mesh with two faces that each reference
// their own copy of a coincident node pair, so Dedup has something to merge.
func dupMesh() *Mesh {
	// Nodes 0 and 2 coincide, as do 1 and 3.
	nodes := []kernel.Node{
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
	}
	faces := []Face{
		{Edges: []Edge{
			{N0: 0, N1: 1, Type: kernel.GreatCircle},
			{N0: 1, N1: 4, Type: kernel.GreatCircle},
			{N0: 4, N1: 0, Type: kernel.GreatCircle},
		}},
		{Edges: []Edge{
			{N0: 2, N1: 4, Type: kernel.GreatCircle},
			{N0: 4, N1: 3, Type: kernel.GreatCircle},
			{N0: 3, N1: 2, Type: kernel.GreatCircle},
		}},
	}
	return &Mesh{Nodes: nodes, Faces: faces}
}

func TestDedupRetainAllIsNoop(t *testing.T) {
	m := dupMesh()
	before := len(m.Nodes)
	if err := Dedup(m, kernel.NewFuzzy(1e-9), DedupRetainAll, 0); err != nil {
		t.Fatalf("Dedup: %v", err)
	}
	if len(m.Nodes) != before {
		t.Errorf("DedupRetainAll changed node count: got %d, want %d", len(m.Nodes), before)
	}
}

func TestDedupHashedGridMergesCoincidentNodes(t *testing.T) {
	m := dupMesh()
	if err := Dedup(m, kernel.NewFuzzy(1e-9), DedupHashedGrid, 0); err != nil {
		t.Fatalf("Dedup: %v", err)
	}
	if len(m.Nodes) != 3 {
		t.Fatalf("got %d nodes after dedup, want 3 (two coincident pairs collapsed, one unique)", len(m.Nodes))
	}
	checkClosed(t, m)
	checkNodeIndicesInRange(t, m)

	// Every edge endpoint across both faces must now reference one of the 3
	// surviving nodes, and the two faces must agree on which survivor
	// stands in for the original coincident pairs.
	n0 := m.Faces[0].Edges[0].N0 // was node 0
	n2 := m.Faces[1].Edges[2].N1 // was node 2, coincident with node 0
	if n0 != n2 {
		t.Errorf("coincident nodes 0 and 2 were not merged to the same index: %d vs %d", n0, n2)
	}
}

func TestDedupSortedMultimapMergesCoincidentNodes(t *testing.T) {
	m := dupMesh()
	if err := Dedup(m, kernel.NewFuzzy(1e-9), DedupSortedMultimap, 0); err != nil {
		t.Fatalf("Dedup: %v", err)
	}
	if len(m.Nodes) != 3 {
		t.Fatalf("got %d nodes after dedup, want 3", len(m.Nodes))
	}
	checkClosed(t, m)
	checkNodeIndicesInRange(t, m)
}

func TestDedupUnknownStrategyErrors(t *testing.T) {
	m := dupMesh()
	if err := Dedup(m, kernel.NewFuzzy(1e-9), DedupStrategy(99), 0); err == nil {
		t.Fatalf("expected an error for an unknown dedup strategy")
	}
}
