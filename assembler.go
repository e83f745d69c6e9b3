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

import "fmt"

// Assembler stitches one F-face's PathSegments, plus the S-faces they never
// touch but that lie wholly inside that F-face, into closed overlap faces
// appended to Overlap.
type Assembler struct {
	Second        *Mesh
	SecondNodeMap []int
}

// Assemble implements §4.3. segments must be the output of a single
// Tracer.Trace(f) call; f itself is only used to annotate errors.
func (a *Assembler) Assemble(f int, segments []PathSegment, overlap *Mesh) error {
	n := len(segments)
	used := make([]bool, n)
	interiorCandidates := make(map[int]bool, n)
	for _, s := range segments {
		interiorCandidates[s.IxSecondFace] = true
	}
	toAdd := make(map[int]bool)

outerLoop:
	for {
		k := -1
		for i, u := range used {
			if !u {
				k = i
				break
			}
		}
		if k < 0 {
			break
		}

		var p []Edge
		originOverlapNode := segments[k].N0

	faceLoop:
		for {
			// Phase A: run along f's boundary until we branch into S or close.
			for {
				seg := segments[k]
				if used[k] {
					return fmt.Errorf("overlapmesh: face %d: path segment %d reused during assembly: %w", f, k, ErrUnsupportedInput)
				}
				used[k] = true
				p = append(p, Edge{N0: seg.N0, N1: seg.N1, Type: seg.Type})

				if seg.IntType != IntersectNone {
					break
				}
				if seg.N1 == originOverlapNode {
					overlap.Faces = append(overlap.Faces, Face{Edges: p})
					continue outerLoop
				}
				k++
			}

			// Phase B: run along the interior of cur until we re-enter f's
			// boundary or close the face directly on cur's own boundary.
			seg := segments[k]
			cur := seg.IxSecondFace
			sFace := a.Second.Faces[cur]
			eLocal := seg.IxIntersect
			x := seg.N1

			for iter := 0; ; iter++ {
				if iter > len(sFace.Edges) {
					return fmt.Errorf("overlapmesh: face %d: assembly around S-face %d did not terminate: %w", f, cur, ErrAssemblyFailed)
				}

				g := sFace.Edges[eLocal]
				if g.Degenerate() {
					eLocal = (eLocal + 1) % len(sFace.Edges)
					x = a.SecondNodeMap[g.N1]
					continue
				}

				other := a.Second.OtherFace(cur, g.N0, g.N1)
				if other == NoFace {
					return fmt.Errorf("overlapmesh: face %d: s-edge (%d,%d) of S-face %d has no neighbour: %w", f, g.N0, g.N1, cur, ErrInvalidMesh)
				}
				toAdd[other] = true

				kPrime := -1
				for step := 1; step < n; step++ {
					cand := (k + step) % n
					s2 := segments[cand]
					if s2.N1 == x {
						continue
					}
					switch s2.IntType {
					case IntersectNode:
						if s2.N1 == a.SecondNodeMap[g.N0] || s2.N1 == a.SecondNodeMap[g.N1] {
							kPrime = cand
						}
					case IntersectEdge:
						if s2.EdgeIntersect == g {
							kPrime = cand
						}
					}
					if kPrime >= 0 {
						break
					}
				}

				if kPrime >= 0 && segments[(kPrime+1)%n].IxSecondFace == cur {
					exitNode := segments[kPrime].N1
					p = append(p, Edge{N0: x, N1: exitNode, Type: g.Type})
					k = (kPrime + 1) % n
					if exitNode == originOverlapNode {
						overlap.Faces = append(overlap.Faces, Face{Edges: p})
						continue outerLoop
					}
					continue faceLoop
				}

				// No exit here: keep tracing cur's boundary.
				y := a.SecondNodeMap[g.N1]
				p = append(p, Edge{N0: x, N1: y, Type: g.Type})
				if y == originOverlapNode {
					overlap.Faces = append(overlap.Faces, Face{Edges: p})
					continue outerLoop
				}
				eLocal = (eLocal + 1) % len(sFace.Edges)
				x = y
			}
		}
	}

	a.addPureInteriorFaces(toAdd, interiorCandidates, overlap)
	return nil
}

// addPureInteriorFaces implements §4.3's flood fill: any S-face touched only
// as a neighbour of a traced interior edge, and never by the trace itself,
// lies wholly inside f and is copied into overlap whole.
func (a *Assembler) addPureInteriorFaces(toAdd, interiorCandidates map[int]bool, overlap *Mesh) {
	queue := make([]int, 0, len(toAdd))
	added := make(map[int]bool, len(toAdd))
	for sf := range toAdd {
		if interiorCandidates[sf] {
			continue
		}
		queue = append(queue, sf)
		added[sf] = true
	}

	for len(queue) > 0 {
		sf := queue[0]
		queue = queue[1:]

		face := a.Second.Faces[sf]
		edges := make([]Edge, len(face.Edges))
		for i, e := range face.Edges {
			edges[i] = Edge{N0: a.SecondNodeMap[e.N0], N1: a.SecondNodeMap[e.N1], Type: e.Type}
		}
		overlap.Faces = append(overlap.Faces, Face{Edges: edges})

		for _, e := range face.Edges {
			if e.Degenerate() {
				continue
			}
			other := a.Second.OtherFace(sf, e.N0, e.N1)
			if other == NoFace || added[other] {
				continue
			}
			added[other] = true
			queue = append(queue, other)
		}
	}
}
