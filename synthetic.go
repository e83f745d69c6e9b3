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
	"gonum.org/v1/gonum/spatial/r3"
)

// Synthetic mesh constructors used by the §8 seed scenarios' tests and by
// the demo CLI (SPEC_FULL §A.3): no mesh file reader is in scope, so these
// are the only source of input meshes anywhere in this repository.

func unitNode(x, y, z float64) kernel.Node {
	v := r3.Unit(r3.Vec{X: x, Y: y, Z: z})
	return kernel.Node{X: v.X, Y: v.Y, Z: v.Z}
}

func midpoint(a, b kernel.Node) kernel.Node {
	return unitNode((a.X+b.X)/2, (a.Y+b.Y)/2, (a.Z+b.Z)/2)
}

func center4(a, b, c, d kernel.Node) kernel.Node {
	return unitNode((a.X+b.X+c.X+d.X)/4, (a.Y+b.Y+c.Y+d.Y)/4, (a.Z+b.Z+c.Z+d.Z)/4)
}

// nodeCache assigns stable indices to nodes produced by symmetric
// arithmetic (midpoint, center4), so two adjacent faces computing the same
// shared point independently land on the same node index.
type nodeCache struct {
	nodes []kernel.Node
	index map[kernel.Node]int
}

func newNodeCache() *nodeCache { return &nodeCache{index: make(map[kernel.Node]int)} }

func (c *nodeCache) get(n kernel.Node) int {
	if i, ok := c.index[n]; ok {
		return i
	}
	i := len(c.nodes)
	c.nodes = append(c.nodes, n)
	c.index[n] = i
	return i
}

func quadFace(a, b, c, d int) Face {
	return Face{Edges: []Edge{
		{N0: a, N1: b, Type: kernel.GreatCircle},
		{N0: b, N1: c, Type: kernel.GreatCircle},
		{N0: c, N1: d, Type: kernel.GreatCircle},
		{N0: d, N1: a, Type: kernel.GreatCircle},
	}}
}

// cubeFaceCorners lists, for each of the cube's six faces, its four corners
// (indices into CubeMesh's node array) in CCW order as seen from outside.
var cubeFaceCorners = [6][4]int{
	{1, 2, 6, 5}, // +X
	{0, 4, 7, 3}, // -X
	{3, 7, 6, 2}, // +Y
	{0, 1, 5, 4}, // -Y
	{4, 5, 6, 7}, // +Z
	{0, 3, 2, 1}, // -Z
}

// CubeMesh returns a cube's six faces projected onto the unit sphere: the
// 6-quad tiling named scenario 1 and 2 of §8.
func CubeMesh() *Mesh {
	nodes := []kernel.Node{
		unitNode(-1, -1, -1),
		unitNode(1, -1, -1),
		unitNode(1, 1, -1),
		unitNode(-1, 1, -1),
		unitNode(-1, -1, 1),
		unitNode(1, -1, 1),
		unitNode(1, 1, 1),
		unitNode(-1, 1, 1),
	}

	m := &Mesh{Nodes: nodes}
	for _, fc := range cubeFaceCorners {
		m.Faces = append(m.Faces, quadFace(fc[0], fc[1], fc[2], fc[3]))
	}
	if err := m.BuildEdgeMap(); err != nil {
		panic(err) // a hardcoded cube topology is never malformed
	}
	return m
}

// QuadrisectedCubeMesh returns each of CubeMesh's six faces split into four
// quads about a face centre, the 24-quad refinement of §8 scenario 2.
func QuadrisectedCubeMesh() *Mesh {
	cube := CubeMesh()
	cache := newNodeCache()
	for _, n := range cube.Nodes {
		cache.get(n)
	}

	m := &Mesh{}
	for _, fc := range cubeFaceCorners {
		i0, i1, i2, i3 := fc[0], fc[1], fc[2], fc[3]
		c0, c1, c2, c3 := cube.Nodes[i0], cube.Nodes[i1], cube.Nodes[i2], cube.Nodes[i3]

		m01 := cache.get(midpoint(c0, c1))
		m12 := cache.get(midpoint(c1, c2))
		m23 := cache.get(midpoint(c2, c3))
		m30 := cache.get(midpoint(c3, c0))
		ctr := cache.get(center4(c0, c1, c2, c3))

		m.Faces = append(m.Faces,
			quadFace(i0, m01, ctr, m30),
			quadFace(m01, i1, m12, ctr),
			quadFace(ctr, m12, i2, m23),
			quadFace(m30, ctr, m23, i3),
		)
	}
	m.Nodes = cache.nodes
	if err := m.BuildEdgeMap(); err != nil {
		panic(err) // a hardcoded quadrisection topology is never malformed
	}
	return m
}

// LatLonGridMesh returns an nLon x nLat grid of faces covering the sphere:
// nLon sectors of constant-latitude/great-circle quads between nLat-1
// interior latitude rings, capped at each pole by nLon triangles, with
// every longitude offset by rotationDeg (§8 scenario 3's rotated overlay).
func LatLonGridMesh(nLon, nLat int, rotationDeg float64) *Mesh {
	const degToRad = math.Pi / 180
	const spIdx, npIdx = 0, 1

	nodes := []kernel.Node{
		{X: 0, Y: 0, Z: -1}, // south pole
		{X: 0, Y: 0, Z: 1},  // north pole
	}

	nRings := nLat - 1
	ring := make([][]int, nRings)
	for k := 0; k < nRings; k++ {
		lat := -90 + float64(k+1)*180/float64(nLat)
		z := math.Sin(lat * degToRad)
		r := math.Cos(lat * degToRad)

		ring[k] = make([]int, nLon)
		for j := 0; j < nLon; j++ {
			lon := rotationDeg + float64(j)*360/float64(nLon)
			ring[k][j] = len(nodes)
			nodes = append(nodes, kernel.Node{
				X: r * math.Cos(lon*degToRad),
				Y: r * math.Sin(lon*degToRad),
				Z: z,
			})
		}
	}

	m := &Mesh{Nodes: nodes}

	for j := 0; j < nLon; j++ {
		jn := (j + 1) % nLon
		m.Faces = append(m.Faces, Face{Edges: []Edge{
			{N0: spIdx, N1: ring[0][jn], Type: kernel.GreatCircle},
			{N0: ring[0][jn], N1: ring[0][j], Type: kernel.ConstantLatitude},
			{N0: ring[0][j], N1: spIdx, Type: kernel.GreatCircle},
		}})
	}

	for k := 0; k < nRings-1; k++ {
		for j := 0; j < nLon; j++ {
			jn := (j + 1) % nLon
			m.Faces = append(m.Faces, Face{Edges: []Edge{
				{N0: ring[k][j], N1: ring[k][jn], Type: kernel.ConstantLatitude},
				{N0: ring[k][jn], N1: ring[k+1][jn], Type: kernel.GreatCircle},
				{N0: ring[k+1][jn], N1: ring[k+1][j], Type: kernel.ConstantLatitude},
				{N0: ring[k+1][j], N1: ring[k][j], Type: kernel.GreatCircle},
			}})
		}
	}

	if nRings > 0 {
		last := nRings - 1
		for j := 0; j < nLon; j++ {
			jn := (j + 1) % nLon
			m.Faces = append(m.Faces, Face{Edges: []Edge{
				{N0: ring[last][j], N1: ring[last][jn], Type: kernel.ConstantLatitude},
				{N0: ring[last][jn], N1: npIdx, Type: kernel.GreatCircle},
				{N0: npIdx, N1: ring[last][j], Type: kernel.GreatCircle},
			}})
		}
	}

	if err := m.BuildEdgeMap(); err != nil {
		panic(err) // a generated lat-lon grid topology is never malformed
	}
	return m
}

// bilinear interpolates the quad with CCW corners c0,c1,c2,c3 at parameters
// (u,v) in [0,1], then projects back onto the unit sphere.
func bilinear(c0, c1, c2, c3 kernel.Node, u, v float64) kernel.Node {
	x := (1-u)*(1-v)*c0.X + u*(1-v)*c1.X + u*v*c2.X + (1-u)*v*c3.X
	y := (1-u)*(1-v)*c0.Y + u*(1-v)*c1.Y + u*v*c2.Y + (1-u)*v*c3.Y
	z := (1-u)*(1-v)*c0.Z + u*(1-v)*c1.Z + u*v*c2.Z + (1-u)*v*c3.Z
	return unitNode(x, y, z)
}

// SubdividedFaceMeshes returns a single-face mesh F covering the cube's +X
// face, and an n x n tiling S of that same region. For n > 2, S's interior
// cells never touch F's single boundary, so they can only be discovered by
// the assembler's flood fill (§8 scenario 4). Only the +X region is
// represented on either side, so S's outer ring of edges is a mesh boundary
// (one-sided in the edge map), not a defect: these fixtures are meant to be
// passed to GenerateOverlap as a standalone pair, not merged into a
// whole-sphere tiling.
func SubdividedFaceMeshes(n int) (f, s *Mesh) {
	corners := cubeFaceCorners[0] // +X face
	cube := CubeMesh()
	c0, c1, c2, c3 := cube.Nodes[corners[0]], cube.Nodes[corners[1]], cube.Nodes[corners[2]], cube.Nodes[corners[3]]

	f = &Mesh{Nodes: []kernel.Node{c0, c1, c2, c3}}
	f.Faces = append(f.Faces, quadFace(0, 1, 2, 3))
	if err := f.BuildEdgeMap(); err != nil {
		panic(err) // a single hardcoded quad face is never malformed
	}

	cache := newNodeCache()
	grid := make([][]int, n+1)
	for i := 0; i <= n; i++ {
		grid[i] = make([]int, n+1)
		for j := 0; j <= n; j++ {
			grid[i][j] = cache.get(bilinear(c0, c1, c2, c3, float64(i)/float64(n), float64(j)/float64(n)))
		}
	}

	s = &Mesh{}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s.Faces = append(s.Faces, quadFace(grid[i][j], grid[i+1][j], grid[i+1][j+1], grid[i][j+1]))
		}
	}
	s.Nodes = cache.nodes
	if err := s.BuildEdgeMap(); err != nil {
		panic(err) // a generated regular grid topology is never malformed
	}
	return f, s
}
