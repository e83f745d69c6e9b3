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

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

// Fuzzy is a tolerance-based Kernel implementation. Two nodes are considered
// equal when their chord distance is within Tolerance; edge intersections
// and face-location queries use the same tolerance to decide "on the
// boundary" versus "strictly interior/exterior".
type Fuzzy struct {
	// Tolerance is the chord-distance threshold used by every predicate.
	// Zero selects DefaultTolerance.
	Tolerance float64
}

// DefaultTolerance is used by a zero-value Fuzzy kernel.
const DefaultTolerance = 1e-10

func (f Fuzzy) tol() float64 {
	if f.Tolerance == 0 {
		return DefaultTolerance
	}
	return f.Tolerance
}

// NewFuzzy returns a Fuzzy kernel with the given tolerance.
func NewFuzzy(tolerance float64) Fuzzy {
	return Fuzzy{Tolerance: tolerance}
}

func (f Fuzzy) Name() string { return "fuzzy" }

func toVec(n Node) r3.Vec { return r3.Vec{X: n.X, Y: n.Y, Z: n.Z} }

func fromVec(v r3.Vec) Node {
	u := r3.Unit(v)
	return Node{X: u.X, Y: u.Y, Z: u.Z}
}

func (f Fuzzy) AreNodesEqual(a, b Node) bool {
	d := r3.Norm(r3.Sub(toVec(a), toVec(b)))
	return d <= f.tol()
}

// onGreatCircleArc reports whether p, known to lie on the great circle
// through a and b, falls within the minor arc from a to b.
func onGreatCircleArc(a, b, p Node, tol float64) bool {
	av, bv, pv := toVec(a), toVec(b), toVec(p)
	n := r3.Cross(av, bv)
	if r3.Norm(n) <= tol {
		// a and b (nearly) coincide or are antipodal; degenerate arc.
		return r3.Norm(r3.Sub(av, pv)) <= tol || r3.Norm(r3.Sub(bv, pv)) <= tol
	}
	left := r3.Dot(r3.Cross(av, pv), n)
	right := r3.Dot(r3.Cross(pv, bv), n)
	return left >= -tol && right >= -tol
}

// onConstantLatitudeArc reports whether p, known to lie on the circle of
// latitude through a and b, falls within the minor (shorter) arc from a to b
// in longitude.
func onConstantLatitudeArc(a, b, p Node, tol float64) bool {
	lonA := math.Atan2(a.Y, a.X)
	lonB := math.Atan2(b.Y, b.X)
	lonP := math.Atan2(p.Y, p.X)
	// Normalize so that walking CCW from lonA by a non-negative amount
	// reaches lonB within 2*pi, and check lonP falls in the same sweep.
	span := math.Mod(lonB-lonA+4*math.Pi, 2*math.Pi)
	toP := math.Mod(lonP-lonA+4*math.Pi, 2*math.Pi)
	if span > math.Pi {
		// The shorter arc runs clockwise from a to b: sweep CCW from b instead.
		span = 2*math.Pi - span
		toP = math.Mod(lonP-lonB+4*math.Pi, 2*math.Pi)
	}
	return toP <= span+tol
}

func (f Fuzzy) EdgeIntersections(aBegin, aEnd Node, aType EdgeType, bBegin, bEnd Node, bType EdgeType) (bool, []Node, error) {
	tol := f.tol()

	if aType == GreatCircle && bType == GreatCircle {
		return f.greatCircleXGreatCircle(aBegin, aEnd, bBegin, bEnd, tol)
	}
	if aType == ConstantLatitude && bType == ConstantLatitude {
		return f.latXLat(aBegin, aEnd, bBegin, bEnd, tol)
	}
	if aType == GreatCircle && bType == ConstantLatitude {
		pts, err := f.greatCircleXLat(aBegin, aEnd, bBegin, bEnd, tol)
		return false, pts, err
	}
	pts, err := f.greatCircleXLat(bBegin, bEnd, aBegin, aEnd, tol)
	return false, pts, err
}

func (f Fuzzy) greatCircleXGreatCircle(a0, a1, b0, b1 Node, tol float64) (bool, []Node, error) {
	na := r3.Cross(toVec(a0), toVec(a1))
	nb := r3.Cross(toVec(b0), toVec(b1))
	nna, nnb := r3.Norm(na), r3.Norm(nb)
	if nna <= tol || nnb <= tol {
		return false, nil, fmt.Errorf("kernel: degenerate great-circle edge")
	}
	cr := r3.Cross(na, nb)
	crn := r3.Norm(cr)
	if crn <= tol {
		return sameGreatCircleOverlap(a0, a1, b0, b1, tol)
	}
	p1 := fromVec(cr)
	p2 := fromVec(r3.Scale(-1, cr))
	var pts []Node
	for _, p := range []Node{p1, p2} {
		if onGreatCircleArc(a0, a1, p, tol) && onGreatCircleArc(b0, b1, p, tol) {
			pts = append(pts, p)
		}
	}
	return false, pts, nil
}

// sameGreatCircleOverlap resolves edge (a0,a1) against edge (b0,b1) once
// both are known to lie on the same great circle. One arc nested inside (or
// equal to) the other — the common case when a finer mesh's edge runs along
// part of a coarser mesh's edge, or when the two meshes share an edge
// outright — has a well-defined far endpoint the tracer can treat as an
// ordinary vertex hit, so it is not reported coincident. Only a genuine
// staggered overlap, where each arc extends past the other's far endpoint
// and neither containment holds, has no single point that resolves the
// crossing; that case is reported coincident per §7's unsupported-input rule.
func sameGreatCircleOverlap(a0, a1, b0, b1 Node, tol float64) (bool, []Node, error) {
	bInA := onGreatCircleArc(a0, a1, b0, tol) && onGreatCircleArc(a0, a1, b1, tol)
	aInB := onGreatCircleArc(b0, b1, a0, tol) && onGreatCircleArc(b0, b1, a1, tol)
	switch {
	case bInA:
		return false, []Node{b0, b1}, nil
	case aInB:
		return false, []Node{a0, a1}, nil
	}
	if strictlyOnOpenArc(a0, a1, b0, tol) || strictlyOnOpenArc(a0, a1, b1, tol) ||
		strictlyOnOpenArc(b0, b1, a0, tol) || strictlyOnOpenArc(b0, b1, a1, tol) {
		return true, nil, nil
	}
	return false, nil, nil
}

// strictlyOnOpenArc reports whether p lies on arc (a,b) away from both of
// its endpoints, used to tell a genuine positive-length staggered overlap
// apart from two arcs merely touching end-to-end at a shared vertex.
func strictlyOnOpenArc(a, b, p Node, tol float64) bool {
	av, bv, pv := toVec(a), toVec(b), toVec(p)
	if r3.Norm(r3.Sub(av, pv)) <= tol || r3.Norm(r3.Sub(bv, pv)) <= tol {
		return false
	}
	return onGreatCircleArc(a, b, p, tol)
}

func (f Fuzzy) latXLat(a0, a1, b0, b1 Node, tol float64) (bool, []Node, error) {
	if math.Abs(a0.Z-b0.Z) > tol {
		return false, nil, nil
	}
	bInA := onConstantLatitudeArc(a0, a1, b0, tol) && onConstantLatitudeArc(a0, a1, b1, tol)
	aInB := onConstantLatitudeArc(b0, b1, a0, tol) && onConstantLatitudeArc(b0, b1, a1, tol)
	switch {
	case bInA:
		return false, []Node{b0, b1}, nil
	case aInB:
		return false, []Node{a0, a1}, nil
	}
	if strictlyOnOpenLatArc(a0, a1, b0, tol) || strictlyOnOpenLatArc(a0, a1, b1, tol) ||
		strictlyOnOpenLatArc(b0, b1, a0, tol) || strictlyOnOpenLatArc(b0, b1, a1, tol) {
		return true, nil, nil
	}
	return false, nil, nil
}

// strictlyOnOpenLatArc is strictlyOnOpenArc's constant-latitude analogue.
func strictlyOnOpenLatArc(a, b, p Node, tol float64) bool {
	av, bv, pv := toVec(a), toVec(b), toVec(p)
	if r3.Norm(r3.Sub(av, pv)) <= tol || r3.Norm(r3.Sub(bv, pv)) <= tol {
		return false
	}
	return onConstantLatitudeArc(a, b, p, tol)
}

// greatCircleXLat intersects great-circle edge (g0,g1) with constant-latitude
// edge (l0,l1).
func (f Fuzzy) greatCircleXLat(g0, g1, l0, l1 Node, tol float64) ([]Node, error) {
	n := r3.Cross(toVec(g0), toVec(g1))
	if r3.Norm(n) <= tol {
		return nil, fmt.Errorf("kernel: degenerate great-circle edge")
	}
	z := l0.Z
	r2 := 1 - z*z
	if r2 < 0 {
		r2 = 0
	}
	// Solve n.X*x + n.Y*y == -n.Z*z on the circle x^2+y^2 == r^2.
	var candidates []Node
	switch {
	case math.Abs(n.X) <= tol && math.Abs(n.Y) <= tol:
		// The great circle's plane is the equatorial/z-only plane; it meets
		// every point of the latitude circle only if z == 0, otherwise none.
		// Both cases return no points, and the z == 0 overlap is not
		// reported as coincident.
		return nil, nil
	case math.Abs(n.X) >= math.Abs(n.Y):
		// x = (c - n.Y*y)/n.X, substitute into circle equation.
		c := -n.Z * z
		// (c - n.Y*y)^2 + n.X^2*y^2 == n.X^2*r^2
		A := n.Y*n.Y + n.X*n.X
		B := -2 * c * n.Y
		C := c*c - n.X*n.X*r2
		ys, ok := solveQuadratic(A, B, C)
		if !ok {
			return nil, nil
		}
		for _, y := range ys {
			x := (c - n.Y*y) / n.X
			candidates = append(candidates, Node{X: x, Y: y, Z: z})
		}
	default:
		c := -n.Z * z
		A := n.X*n.X + n.Y*n.Y
		B := -2 * c * n.X
		C := c*c - n.Y*n.Y*r2
		xs, ok := solveQuadratic(A, B, C)
		if !ok {
			return nil, nil
		}
		for _, x := range xs {
			y := (c - n.X*x) / n.Y
			candidates = append(candidates, Node{X: x, Y: y, Z: z})
		}
	}

	var pts []Node
	for _, p := range candidates {
		if onGreatCircleArc(g0, g1, p, tol) && onConstantLatitudeArc(l0, l1, p, tol) {
			pts = append(pts, p)
		}
	}
	return pts, nil
}

func solveQuadratic(a, b, c float64) ([]float64, bool) {
	if math.Abs(a) <= 1e-15 {
		if math.Abs(b) <= 1e-15 {
			return nil, false
		}
		return []float64{-c / b}, true
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil, false
	}
	if disc < 0 {
		disc = 0
	}
	sq := math.Sqrt(disc)
	x1 := (-b + sq) / (2 * a)
	x2 := (-b - sq) / (2 * a)
	if scalar.EqualWithinAbs(x1, x2, 1e-12) {
		return []float64{x1}, true
	}
	return []float64{x1, x2}, true
}

func (f Fuzzy) FindFaceFromNode(mesh MeshView, node Node) ([]FaceHit, error) {
	tol := f.tol()
	var hits []FaceHit
	for fi := 0; fi < mesh.NumFaces(); fi++ {
		face := mesh.FaceAt(fi)
		loc, idx, ok := locateInFace(face, node, tol)
		if ok {
			hits = append(hits, FaceHit{Face: fi, Loc: loc, Index: idx})
		}
	}
	return hits, nil
}

// locateInFace reports whether node lies in the closure of face, and where.
func locateInFace(face FaceEdges, node Node, tol float64) (Location, int, bool) {
	n := face.NumEdges()
	for i := 0; i < n; i++ {
		n0, _, _ := face.EdgeNodes(i)
		if r3.Norm(r3.Sub(toVec(n0), toVec(node))) <= tol {
			return OnVertex, i, true
		}
	}
	for i := 0; i < n; i++ {
		e0, e1, typ := face.EdgeNodes(i)
		if e0 == e1 {
			continue
		}
		var onArc bool
		if typ == GreatCircle {
			nrm := r3.Cross(toVec(e0), toVec(e1))
			if r3.Norm(nrm) <= tol {
				continue
			}
			dist := math.Abs(r3.Dot(r3.Unit(nrm), toVec(node)))
			onArc = dist <= tol && onGreatCircleArc(e0, e1, node, tol)
		} else {
			onArc = math.Abs(e0.Z-node.Z) <= tol && onConstantLatitudeArc(e0, e1, node, tol)
		}
		if onArc {
			return OnEdge, i, true
		}
	}
	if windingContains(face, node) {
		return Interior, -1, true
	}
	return 0, 0, false
}

// windingContains is a spherical point-in-polygon test by signed angular
// excess: node is inside face iff the sum of signed angles subtended by its
// edges, viewed from node, is close to +/- 2*pi rather than 0. A face around
// node's antipode winds the same way, so a node on the far side of the
// sphere from the face's vertex sum is rejected first.
func windingContains(face FaceEdges, node Node) bool {
	pv := toVec(node)
	n := face.NumEdges()
	var total float64
	var vertexSum r3.Vec
	for i := 0; i < n; i++ {
		e0, e1, _ := face.EdgeNodes(i)
		vertexSum = r3.Add(vertexSum, toVec(e0))
		if e0 == e1 {
			continue
		}
		v0 := r3.Sub(toVec(e0), r3.Scale(r3.Dot(toVec(e0), pv), pv))
		v1 := r3.Sub(toVec(e1), r3.Scale(r3.Dot(toVec(e1), pv), pv))
		n0, n1 := r3.Norm(v0), r3.Norm(v1)
		if n0 <= 1e-15 || n1 <= 1e-15 {
			continue
		}
		cosA := r3.Dot(v0, v1) / (n0 * n1)
		cosA = math.Max(-1, math.Min(1, cosA))
		angle := math.Acos(cosA)
		if r3.Dot(r3.Cross(v0, v1), pv) < 0 {
			angle = -angle
		}
		total += angle
	}
	if r3.Dot(vertexSum, pv) <= 0 {
		return false
	}
	return math.Abs(total) > math.Pi
}

func (f Fuzzy) FindFaceNearNode(mesh MeshView, candidates []int, at, toward Node, edgeType EdgeType) (int, error) {
	if candidates == nil {
		for fi := 0; fi < mesh.NumFaces(); fi++ {
			candidates = append(candidates, fi)
		}
	}
	tol := f.tol()
	av := toVec(at)
	// Bisector point slightly along the edge from "at" toward "toward",
	// projected back onto the sphere; the face containing it is the one the
	// edge enters. The step always follows the great circle through "at" and
	// "toward"; edgeType is not consulted.
	dir := r3.Sub(toVec(toward), r3.Scale(r3.Dot(toVec(toward), av), av))
	if r3.Norm(dir) <= 1e-15 {
		return -1, fmt.Errorf("kernel: degenerate direction at disambiguation node")
	}
	probe := fromVec(r3.Add(av, r3.Scale(1e-6, r3.Unit(dir))))
	_ = edgeType

	for _, fi := range candidates {
		loc, _, ok := locateInFace(mesh.FaceAt(fi), probe, tol)
		if ok && loc == Interior {
			return fi, nil
		}
	}
	// Fall back to whichever candidate's closure contains the probe at all.
	for _, fi := range candidates {
		if _, _, ok := locateInFace(mesh.FaceAt(fi), probe, tol); ok {
			return fi, nil
		}
	}
	return -1, fmt.Errorf("kernel: no candidate face contains the probe point near the disambiguation node")
}
