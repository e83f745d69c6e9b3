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
	"math"

	"github.com/spatialmodel/overlapmesh/kernel"
)

// DefaultBucketSize is the coincident-node pre-pass's spatial hash cell
// width, used only to keep the candidate search sub-linear; it must be no
// smaller than the kernel's own equality tolerance or true coincidences
// near a cell boundary could be missed.
const DefaultBucketSize = 1e-8

type bucketKey struct{ x, y, z int64 }

func cellOf(n kernel.Node, size float64) bucketKey {
	return bucketKey{
		x: int64(math.Floor(n.X / size)),
		y: int64(math.Floor(n.Y / size)),
		z: int64(math.Floor(n.Z / size)),
	}
}

// BuildSecondNodeMap implements §4.1's coincident-node pre-pass: it returns
// secondNodeMap[j], the overlap-mesh index that S-node j will occupy. A
// value < len(first.Nodes) means S-node j coincides with that F-node and no
// duplicate is ever appended; otherwise it is a placeholder offset into the
// S-nodes-that-are-new sequence, which Mesh assembly in GenerateOverlap
// resolves to a concrete index once F.Nodes and the surviving S.Nodes are
// concatenated.
//
// The search is accelerated with a hashed grid over F's nodes (one of the
// three dedup strategies §9 names for the core) rather than by the teacher's
// planar R-tree (github.com/ctessum/geom/index/rtree): that index buckets
// by a 2-D Cartesian Bounds and cannot correctly bound neighborhoods of
// points on the unit 2-sphere without a reprojection that would silently
// mis-bucket points near the poles, so a 3-D spatial hash is used instead.
func BuildSecondNodeMap(first, second *Mesh, k kernel.Kernel, bucketSize float64) []int {
	if bucketSize <= 0 {
		bucketSize = DefaultBucketSize
	}
	buckets := make(map[bucketKey][]int, len(first.Nodes))
	for i, n := range first.Nodes {
		key := cellOf(n, bucketSize)
		buckets[key] = append(buckets[key], i)
	}

	secondNodeMap := make([]int, len(second.Nodes))
	newCount := 0
	for j, n := range second.Nodes {
		key := cellOf(n, bucketSize)
		match := -1
	search:
		for dx := int64(-1); dx <= 1 && match < 0; dx++ {
			for dy := int64(-1); dy <= 1 && match < 0; dy++ {
				for dz := int64(-1); dz <= 1; dz++ {
					cand := buckets[bucketKey{key.x + dx, key.y + dy, key.z + dz}]
					for _, fi := range cand {
						if k.AreNodesEqual(first.Nodes[fi], n) {
							match = fi
							break search
						}
					}
				}
			}
		}
		if match >= 0 {
			secondNodeMap[j] = match
		} else {
			secondNodeMap[j] = len(first.Nodes) + newCount
			newCount++
		}
	}
	return secondNodeMap
}
