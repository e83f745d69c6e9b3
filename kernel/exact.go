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
	"math/big"
)

// Exact is a rational-arithmetic Kernel implementation. Coordinates are
// converted losslessly from float64 to big.Rat, and node equality, arc
// containment of intersection candidates, and the vertex/edge tests of face
// location are made here by the sign of an exact rational expression — the
// same orientation predicates TempestRemap's own exact kernel escalates to
// when a fuzzy comparison lands too close to call. Node coordinates
// themselves are still produced by floating-point arc/plane solving (an
// algebraically exact closed form over the sphere's transcendental
// coordinates is not practical); what is exact is the topological decision
// of which side of a boundary a point falls on, which is where the
// algorithm's correctness actually depends on unambiguous answers. The
// coincident-arc decision and candidate points of EdgeIntersections, the
// interior (winding-number) test of face location, and all of
// FindFaceNearNode are the Fuzzy kernel's floating-point ones.
type Exact struct {
	// NearTolerance is the tolerance of the Fuzzy kernel that
	// EdgeIntersections and FindFaceNearNode delegate to.
	NearTolerance float64
}

// NewExact returns an Exact kernel. nearTolerance of 0 selects
// DefaultTolerance.
func NewExact(nearTolerance float64) Exact {
	return Exact{NearTolerance: nearTolerance}
}

func (e Exact) tol() float64 {
	if e.NearTolerance == 0 {
		return DefaultTolerance
	}
	return e.NearTolerance
}

func (e Exact) Name() string { return "exact" }

type ratVec struct{ X, Y, Z *big.Rat }

func toRat(n Node) ratVec {
	rx, _ := big.NewFloat(n.X).SetPrec(200).Rat(nil)
	ry, _ := big.NewFloat(n.Y).SetPrec(200).Rat(nil)
	rz, _ := big.NewFloat(n.Z).SetPrec(200).Rat(nil)
	return ratVec{X: rx, Y: ry, Z: rz}
}

func ratSub(a, b ratVec) ratVec {
	return ratVec{
		X: new(big.Rat).Sub(a.X, b.X),
		Y: new(big.Rat).Sub(a.Y, b.Y),
		Z: new(big.Rat).Sub(a.Z, b.Z),
	}
}

func ratDot(a, b ratVec) *big.Rat {
	r := new(big.Rat)
	r.Add(r, new(big.Rat).Mul(a.X, b.X))
	r.Add(r, new(big.Rat).Mul(a.Y, b.Y))
	r.Add(r, new(big.Rat).Mul(a.Z, b.Z))
	return r
}

func ratCross(a, b ratVec) ratVec {
	return ratVec{
		X: new(big.Rat).Sub(new(big.Rat).Mul(a.Y, b.Z), new(big.Rat).Mul(a.Z, b.Y)),
		Y: new(big.Rat).Sub(new(big.Rat).Mul(a.Z, b.X), new(big.Rat).Mul(a.X, b.Z)),
		Z: new(big.Rat).Sub(new(big.Rat).Mul(a.X, b.Y), new(big.Rat).Mul(a.Y, b.X)),
	}
}

func ratCross2D(ax, ay, bx, by *big.Rat) *big.Rat {
	return new(big.Rat).Sub(new(big.Rat).Mul(ax, by), new(big.Rat).Mul(ay, bx))
}

func (e Exact) AreNodesEqual(a, b Node) bool {
	ra, rb := toRat(a), toRat(b)
	return ra.X.Cmp(rb.X) == 0 && ra.Y.Cmp(rb.Y) == 0 && ra.Z.Cmp(rb.Z) == 0
}

// onGreatCircleArcExact is the rational analogue of onGreatCircleArc: p,
// assumed coplanar with a, b and the sphere's centre, lies on the minor arc
// a->b iff it turns the same way as a->b from both ends.
func onGreatCircleArcExact(a, b, p Node) bool {
	av, bv, pv := toRat(a), toRat(b), toRat(p)
	n := ratCross(av, bv)
	left := ratDot(ratCross(av, pv), n)
	right := ratDot(ratCross(pv, bv), n)
	return left.Sign() >= 0 && right.Sign() >= 0
}

func onConstantLatitudeArcExact(a, b, p Node) bool {
	ax, ay, _ := toRat(a).X, toRat(a).Y, a.Z
	bx, by := toRat(b).X, toRat(b).Y
	px, py := toRat(p).X, toRat(p).Y
	span := ratCross2D(ax, ay, bx, by)
	left := ratCross2D(ax, ay, px, py)
	right := ratCross2D(px, py, bx, by)
	if span.Sign() == 0 {
		// a, b (nearly) antipodal on the circle or coincident; fall back to
		// the fuzzy longitude sweep, since orientation alone cannot decide.
		return onConstantLatitudeArc(a, b, p, 1e-9)
	}
	if span.Sign() > 0 {
		return left.Sign() >= 0 && right.Sign() >= 0
	}
	return left.Sign() <= 0 && right.Sign() <= 0
}

func (e Exact) EdgeIntersections(aBegin, aEnd Node, aType EdgeType, bBegin, bEnd Node, bType EdgeType) (bool, []Node, error) {
	fz := Fuzzy{Tolerance: e.tol()}
	coincident, candidates, err := fz.EdgeIntersections(aBegin, aEnd, aType, bBegin, bEnd, bType)
	if err != nil || coincident {
		return coincident, nil, err
	}
	var pts []Node
	for _, p := range candidates {
		onA := arcContainsExact(aBegin, aEnd, aType, p)
		onB := arcContainsExact(bBegin, bEnd, bType, p)
		if onA && onB {
			pts = append(pts, p)
		}
	}
	return false, pts, nil
}

func arcContainsExact(a, b Node, typ EdgeType, p Node) bool {
	if typ == GreatCircle {
		return onGreatCircleArcExact(a, b, p)
	}
	return onConstantLatitudeArcExact(a, b, p)
}

func (e Exact) FindFaceFromNode(mesh MeshView, node Node) ([]FaceHit, error) {
	var hits []FaceHit
	for fi := 0; fi < mesh.NumFaces(); fi++ {
		face := mesh.FaceAt(fi)
		loc, idx, ok := e.locate(face, node)
		if ok {
			hits = append(hits, FaceHit{Face: fi, Loc: loc, Index: idx})
		}
	}
	return hits, nil
}

func (e Exact) locate(face FaceEdges, node Node) (Location, int, bool) {
	n := face.NumEdges()
	for i := 0; i < n; i++ {
		n0, _, _ := face.EdgeNodes(i)
		if e.AreNodesEqual(n0, node) {
			return OnVertex, i, true
		}
	}
	for i := 0; i < n; i++ {
		e0, e1, typ := face.EdgeNodes(i)
		if e0 == e1 {
			continue
		}
		if onSameCurve(e0, e1, typ, node) && arcContainsExact(e0, e1, typ, node) {
			return OnEdge, i, true
		}
	}
	if windingContains(face, node) {
		return Interior, -1, true
	}
	return 0, 0, false
}

func onSameCurve(a, b Node, typ EdgeType, p Node) bool {
	if typ == GreatCircle {
		n := ratCross(toRat(a), toRat(b))
		return ratDot(n, toRat(p)).Sign() == 0
	}
	return new(big.Rat).Sub(toRat(a).Z, toRat(p).Z).Sign() == 0
}

func (e Exact) FindFaceNearNode(mesh MeshView, candidates []int, at, toward Node, edgeType EdgeType) (int, error) {
	fz := Fuzzy{Tolerance: e.tol()}
	return fz.FindFaceNearNode(mesh, candidates, at, toward, edgeType)
}
