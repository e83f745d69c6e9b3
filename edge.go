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

import "github.com/spatialmodel/overlapmesh/kernel"

// Edge is an ordered pair of node indices plus the curve type of the arc
// between them. An edge with N0 == N1 is degenerate: it is skipped by every
// traversal but kept in a face's edge list to preserve indexing.
type Edge struct {
	N0, N1 int
	Type   kernel.EdgeType
}

// Degenerate reports whether this edge's endpoints are the same node index.
func (e Edge) Degenerate() bool { return e.N0 == e.N1 }

// undirectedKey is the identity an edge map uses: (a,b) and (b,a) collide.
type undirectedKey struct{ lo, hi int }

func edgeKey(n0, n1 int) undirectedKey {
	if n0 <= n1 {
		return undirectedKey{n0, n1}
	}
	return undirectedKey{n1, n0}
}
