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

func TestBuildSecondNodeMapIdenticalMeshes(t *testing.T) {
	first := CubeMesh()
	second := CubeMesh()
	k := kernel.NewFuzzy(1e-9)

	m := BuildSecondNodeMap(first, second, k, 0)
	if len(m) != len(second.Nodes) {
		t.Fatalf("map has %d entries, want %d", len(m), len(second.Nodes))
	}
	for j, idx := range m {
		if idx != j {
			t.Errorf("secondNodeMap[%d] = %d, want %d (identical meshes should map node-for-node)", j, idx, j)
		}
	}
}

func TestBuildSecondNodeMapDisjointMeshes(t *testing.T) {
	first := CubeMesh()
	second := LatLonGridMesh(4, 2, 0)
	k := kernel.NewFuzzy(1e-9)

	m := BuildSecondNodeMap(first, second, k, 0)
	for j, idx := range m {
		if idx < len(first.Nodes) {
			// Only the poles of the lat-lon grid could plausibly coincide with
			// a cube corner, and the cube corners used here are off-axis, so
			// every second-mesh node should be new.
			t.Errorf("secondNodeMap[%d] = %d unexpectedly coincides with an F-node; cube and lat-lon-grid corners are not aligned", j, idx)
		}
	}
	// Placeholders must be a permutation of [len(first.Nodes), len(first.Nodes)+len(second.Nodes)).
	seen := make(map[int]bool, len(m))
	for _, idx := range m {
		if idx >= len(first.Nodes)+len(second.Nodes) {
			t.Fatalf("placeholder index %d is past the end of [%d, %d)", idx, len(first.Nodes), len(first.Nodes)+len(second.Nodes))
		}
		if seen[idx] {
			t.Fatalf("duplicate placeholder index %d", idx)
		}
		seen[idx] = true
	}
}

func TestBuildSecondNodeMapPartialCoincidence(t *testing.T) {
	// A quadrisected cube shares every one of its corner nodes with the
	// unrefined cube, but its edge-midpoint and face-centre nodes are new.
	first := CubeMesh()
	second := QuadrisectedCubeMesh()
	k := kernel.NewFuzzy(1e-9)

	m := BuildSecondNodeMap(first, second, k, 0)

	coincidentCount := 0
	for _, idx := range m {
		if idx < len(first.Nodes) {
			coincidentCount++
		}
	}
	if coincidentCount != len(first.Nodes) {
		t.Errorf("expected all %d cube corners to be recognized as coincident, got %d", len(first.Nodes), coincidentCount)
	}
	if len(second.Nodes)-coincidentCount == 0 {
		t.Errorf("expected the quadrisected cube to contribute genuinely new nodes (edge midpoints, face centres)")
	}
}
