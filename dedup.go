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
	"sort"

	"github.com/spatialmodel/overlapmesh/kernel"
)

// Dedup implements §9's optional post-assembly node merge: the core
// tracer/assembler contract never merges nodes mid-run (O's node array is
// append-only while tracing, per §3's lifecycle invariant), but a caller
// who doesn't need distinct overlap nodes for numerically-coincident
// tracer-appended intersections can collapse them afterward with one of
// the three named strategies.
func Dedup(overlap *Mesh, k kernel.Kernel, strategy DedupStrategy, bucketSize float64) error {
	var remap []int
	switch strategy {
	case DedupRetainAll:
		return nil
	case DedupHashedGrid:
		remap = dedupHashedGrid(overlap.Nodes, k, bucketSize)
	case DedupSortedMultimap:
		remap = dedupSortedMultimap(overlap.Nodes, k)
	default:
		return fmt.Errorf("overlapmesh: unknown dedup strategy %d: %w", strategy, ErrInvalidMesh)
	}

	compact := make([]int, len(overlap.Nodes))
	var newNodes []kernel.Node
	for i, canon := range remap {
		if canon != i {
			continue // not a representative; resolved below via its own canon's compact index
		}
		compact[i] = len(newNodes)
		newNodes = append(newNodes, overlap.Nodes[i])
	}
	for i, canon := range remap {
		compact[i] = compact[canon]
	}

	for fi, face := range overlap.Faces {
		for ei, e := range face.Edges {
			overlap.Faces[fi].Edges[ei] = Edge{N0: compact[e.N0], N1: compact[e.N1], Type: e.Type}
		}
	}
	overlap.Nodes = newNodes
	overlap.edgeMap = nil // stale; rebuild via BuildEdgeMap if the caller needs adjacency again

	return nil
}

// dedupHashedGrid groups nodes by the same spatial-hash bucketing as the
// coincident-node pre-pass (§4.1), assigning every node to the
// representative of the first earlier node found kernel-equal to it within
// its 3x3x3 bucket neighbourhood (or to itself if there is none).
func dedupHashedGrid(nodes []kernel.Node, k kernel.Kernel, bucketSize float64) []int {
	if bucketSize <= 0 {
		bucketSize = DefaultBucketSize
	}
	buckets := make(map[bucketKey][]int)
	remap := make([]int, len(nodes))

	for i, n := range nodes {
		key := cellOf(n, bucketSize)
		canon := -1
	search:
		for dx := int64(-1); dx <= 1 && canon < 0; dx++ {
			for dy := int64(-1); dy <= 1 && canon < 0; dy++ {
				for dz := int64(-1); dz <= 1; dz++ {
					for _, j := range buckets[bucketKey{key.x + dx, key.y + dy, key.z + dz}] {
						if k.AreNodesEqual(nodes[j], n) {
							canon = remap[j]
							break search
						}
					}
				}
			}
		}
		if canon < 0 {
			canon = i
		}
		remap[i] = canon
		buckets[key] = append(buckets[key], i)
	}
	return remap
}

// dedupSortedMultimap groups nodes by sorting their indices on a
// lexicographic coordinate key and scanning the sorted run for
// kernel-equal neighbours, assigning each to the lowest original index
// in its run. Unlike the hashed-grid strategy, two coincident
// nodes separated by a sort-order tie near a coordinate boundary can land
// in different runs; callers who need the stronger guarantee should use
// DedupHashedGrid instead.
func dedupSortedMultimap(nodes []kernel.Node, k kernel.Kernel) []int {
	order := make([]int, len(nodes))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		na, nb := nodes[order[a]], nodes[order[b]]
		if na.X != nb.X {
			return na.X < nb.X
		}
		if na.Y != nb.Y {
			return na.Y < nb.Y
		}
		return na.Z < nb.Z
	})

	remap := make([]int, len(nodes))
	for i := range remap {
		remap[i] = -1
	}

	runStart := 0
	for i := 1; i <= len(order); i++ {
		if i < len(order) && k.AreNodesEqual(nodes[order[runStart]], nodes[order[i]]) {
			continue
		}
		canon := order[runStart]
		for _, idx := range order[runStart:i] {
			if idx < canon {
				canon = idx
			}
		}
		for _, idx := range order[runStart:i] {
			remap[idx] = canon
		}
		runStart = i
	}
	return remap
}
