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

// Tracer walks one F-face's boundary across S, one F-edge at a time,
// emitting the PathSegments that assemble later stitches into overlap
// faces. New S-edge-interior crossings are appended to Overlap.Nodes as
// they're discovered, so Overlap must be the same *Mesh across every Trace
// call of a single run.
type Tracer struct {
	First, Second *Mesh
	Kernel        kernel.Kernel

	// SecondNodeMap is vecSecondNodeMap, built once by BuildSecondNodeMap
	// and resolved to concrete overlap indices before tracing starts.
	SecondNodeMap []int

	// Overlap is O under construction; Trace only ever appends to its
	// Nodes slice, never reads or mutates its Faces.
	Overlap *Mesh
}

// facesPreferCur lists every face of mesh with cur listed first.
// FindFaceNearNode's disambiguation only consults face order when the probe
// point lands exactly on a shared boundary rather than strictly inside one
// candidate's interior — which happens whenever the F-edge being traced runs
// collinear with an S-edge (identical or nested meshes). In that situation
// the correct answer is "we have not actually left cur", so listing it first
// makes the tie-break resolve that way instead of to an arbitrary neighbour.
func facesPreferCur(mesh *Mesh, cur int) []int {
	out := make([]int, 0, len(mesh.Faces))
	out = append(out, cur)
	for fi := range mesh.Faces {
		if fi != cur {
			out = append(out, fi)
		}
	}
	return out
}

// pairPreferCur orders the two faces sharing an S-edge so that cur (if it's
// one of them) is tried first, for the same reason as facesPreferCur.
func pairPreferCur(cur, a, b int) []int {
	if b == cur {
		return []int{b, a}
	}
	return []int{a, b}
}

// Trace implements §4.2: the F-face f's boundary is walked edge by edge,
// and for each edge the S-faces it passes through are found by repeatedly
// intersecting it against the current S-face's edges until the edge's far
// endpoint is reached.
func (t *Tracer) Trace(f int) ([]PathSegment, error) {
	face := t.First.Faces[f]

	v0 := t.First.Nodes[face.Vertex(0)]
	hits, err := t.Kernel.FindFaceFromNode(t.Second, v0)
	if err != nil {
		return nil, fmt.Errorf("overlapmesh: locating face %d's first vertex in S: %w", f, err)
	}
	if len(hits) == 0 {
		return nil, fmt.Errorf("overlapmesh: no S-face contains face %d's first vertex: %w", f, ErrInvalidMesh)
	}

	cur := hits[0].Face
	if len(hits) > 1 {
		candidates := make([]int, len(hits))
		for i, h := range hits {
			candidates[i] = h.Face
		}
		nextVertex := t.First.Nodes[face.Vertex(1 % len(face.Edges))]
		cur, err = t.Kernel.FindFaceNearNode(t.Second, candidates, v0, nextVertex, face.Edges[0].Type)
		if err != nil {
			return nil, fmt.Errorf("overlapmesh: disambiguating face %d's starting S-face: %w", f, err)
		}
	}

	var segments []PathSegment

edgeLoop:
	for i, e := range face.Edges {
		if e.Degenerate() {
			continue
		}

		A := e.N0
		B := e.N1
		lastInt := t.First.Nodes[A]

		for {
			sFace := t.Second.Faces[cur]

			jHit := -1
			var hit kernel.Node
			for j, g := range sFace.Edges {
				if g.Degenerate() {
					return nil, fmt.Errorf("overlapmesh: S-face %d has a zero-length edge: %w", cur, ErrInvalidMesh)
				}

				coincident, pts, err := t.Kernel.EdgeIntersections(
					t.First.Nodes[e.N0], t.First.Nodes[e.N1], e.Type,
					t.Second.Nodes[g.N0], t.Second.Nodes[g.N1], g.Type,
				)
				if err != nil {
					return nil, fmt.Errorf("overlapmesh: intersecting f-edge %d against s-edge %d of face %d: %w", i, j, cur, err)
				}
				if coincident {
					return nil, fmt.Errorf("overlapmesh: f-edge %d and s-edge %d of S-face %d are coincident: %w", i, j, cur, ErrUnsupportedInput)
				}

				var kept []kernel.Node
				for _, p := range pts {
					if !t.Kernel.AreNodesEqual(p, lastInt) {
						kept = append(kept, p)
					}
				}
				if len(kept) > 1 {
					return nil, fmt.Errorf("overlapmesh: f-edge %d crosses s-edge %d of S-face %d more than once: %w", i, j, cur, ErrUnsupportedInput)
				}
				if len(kept) == 1 {
					jHit = j
					hit = kept[0]
					break
				}
			}

			// No intersection: the rest of e lies inside cur.
			if jHit < 0 {
				segments = append(segments, PathSegment{
					N0: A, N1: B, Type: e.Type,
					IxFirstFace: f, IxSecondFace: cur,
					IntType: IntersectNone,
				})
				continue edgeLoop
			}

			g := sFace.Edges[jHit]
			u0 := t.Second.Nodes[g.N0]
			u1 := t.Second.Nodes[g.N1]
			bCoord := t.First.Nodes[B]

			switch {
			case t.Kernel.AreNodesEqual(hit, bCoord):
				// Case (a): e finishes exactly on g.
				eNext := face.Edges[(i+1)%len(face.Edges)]
				nextVertex := t.First.Nodes[eNext.N1]

				seg := PathSegment{N0: A, N1: B, Type: e.Type, IxFirstFace: f, IxSecondFace: cur}
				var candidates []int
				var warnSite string
				switch {
				case t.Kernel.AreNodesEqual(hit, u0):
					seg.IntType = IntersectNode
					seg.IxIntersect = jHit
					warnSite = "endpoint-hits-s-vertex-begin"
					candidates = facesPreferCur(t.Second, cur)
				case t.Kernel.AreNodesEqual(hit, u1):
					seg.IntType = IntersectNode
					seg.IxIntersect = (jHit + 1) % len(sFace.Edges)
					warnSite = "endpoint-hits-s-vertex-end"
					candidates = facesPreferCur(t.Second, cur)
				default:
					seg.IntType = IntersectEdge
					seg.IxIntersect = jHit
					seg.EdgeIntersect = g
					warnSite = "endpoint-hits-s-edge-interior"
					a2, b2, ok := t.Second.NeighborFaces(g.N0, g.N1)
					if !ok {
						return nil, fmt.Errorf("overlapmesh: s-edge (%d,%d) not in S's edge map: %w", g.N0, g.N1, ErrInvalidMesh)
					}
					candidates = pairPreferCur(cur, a2, b2)
				}

				nxt, err := t.Kernel.FindFaceNearNode(t.Second, candidates, hit, nextVertex, eNext.Type)
				if err != nil {
					return nil, fmt.Errorf("overlapmesh: finding next S-face across edge %d of face %d: %w", jHit, cur, err)
				}
				if nxt == cur {
					Log.WithFields(map[string]interface{}{"face": f, "sFace": cur, "sEdge": jHit, "site": warnSite}).
						Warn("overlapmesh: face does not change across edge")
					seg.IntType = IntersectNone
				}
				segments = append(segments, seg)

				A = B
				cur = nxt
				continue edgeLoop

			case t.Kernel.AreNodesEqual(hit, u0):
				// Case (b): e hits g's first vertex, short of B.
				C := t.SecondNodeMap[g.N0]
				segments = append(segments, PathSegment{
					N0: A, N1: C, Type: e.Type,
					IxFirstFace: f, IxSecondFace: cur,
					IntType: IntersectNode, IxIntersect: jHit,
				})
				nxt, err := t.Kernel.FindFaceNearNode(t.Second, facesPreferCur(t.Second, cur), u0, bCoord, e.Type)
				if err != nil {
					return nil, fmt.Errorf("overlapmesh: finding next S-face at vertex %d: %w", g.N0, err)
				}
				if nxt == cur {
					Log.WithFields(map[string]interface{}{"face": f, "sFace": cur, "sEdge": jHit, "site": "mid-edge-hits-s-vertex-begin"}).
						Warn("overlapmesh: face does not change across edge")
				}
				cur = nxt
				A = C
				lastInt = hit
				if C == B {
					continue edgeLoop
				}
				continue

			case t.Kernel.AreNodesEqual(hit, u1):
				// Case (c): symmetric to (b), at g's second vertex.
				C := t.SecondNodeMap[g.N1]
				segments = append(segments, PathSegment{
					N0: A, N1: C, Type: e.Type,
					IxFirstFace: f, IxSecondFace: cur,
					IntType: IntersectNode, IxIntersect: (jHit + 1) % len(sFace.Edges),
				})
				nxt, err := t.Kernel.FindFaceNearNode(t.Second, facesPreferCur(t.Second, cur), u1, bCoord, e.Type)
				if err != nil {
					return nil, fmt.Errorf("overlapmesh: finding next S-face at vertex %d: %w", g.N1, err)
				}
				if nxt == cur {
					Log.WithFields(map[string]interface{}{"face": f, "sFace": cur, "sEdge": jHit, "site": "mid-edge-hits-s-vertex-end"}).
						Warn("overlapmesh: face does not change across edge")
				}
				cur = nxt
				A = C
				lastInt = hit
				if C == B {
					continue edgeLoop
				}
				continue

			default:
				// Case (d): e crosses strictly into g's interior.
				C := len(t.Overlap.Nodes)
				t.Overlap.Nodes = append(t.Overlap.Nodes, hit)
				segments = append(segments, PathSegment{
					N0: A, N1: C, Type: e.Type,
					IxFirstFace: f, IxSecondFace: cur,
					IntType: IntersectEdge, IxIntersect: jHit, EdgeIntersect: g,
				})
				a2, b2, ok := t.Second.NeighborFaces(g.N0, g.N1)
				if !ok {
					return nil, fmt.Errorf("overlapmesh: s-edge (%d,%d) not in S's edge map: %w", g.N0, g.N1, ErrInvalidMesh)
				}
				nxt, err := t.Kernel.FindFaceNearNode(t.Second, pairPreferCur(cur, a2, b2), hit, bCoord, e.Type)
				if err != nil {
					return nil, fmt.Errorf("overlapmesh: finding next S-face across edge %d of S-face %d: %w", jHit, cur, err)
				}
				if nxt == cur {
					Log.WithFields(map[string]interface{}{"face": f, "sFace": cur, "sEdge": jHit, "site": "mid-edge-crosses-s-edge-interior"}).
						Warn("overlapmesh: face does not change across edge")
				}
				cur = nxt
				A = C
				lastInt = hit
				continue
			}
		}
	}

	return segments, nil
}
