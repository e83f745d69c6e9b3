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

// DedupStrategy selects how GenerateOverlap, after assembly, treats
// numerically-coincident nodes that the tracer appended as distinct (§9's
// optional post-processing concern; never part of the core tracer/assembler
// contract).
type DedupStrategy int

const (
	// DedupRetainAll performs no post-hoc merging; every tracer-appended
	// node stays distinct even if numerically coincident with another.
	DedupRetainAll DedupStrategy = iota
	// DedupHashedGrid merges coincident nodes using the same spatial-hash
	// approach as the coincident-node pre-pass (§4.1).
	DedupHashedGrid
	// DedupSortedMultimap merges coincident nodes by sorting on a coordinate
	// key and scanning runs of near-equal neighbours.
	DedupSortedMultimap
)

// Options configures one GenerateOverlap run.
type Options struct {
	// Kernel is the geometric kernel used throughout the run; required.
	Kernel kernel.Kernel

	// Verbosity gates the progress logging described in SPEC_FULL §A.1 and
	// §C.1: 0 emits nothing, >0 emits one debug line per traced face, >1
	// also logs each accepted PathSegment.
	Verbosity int

	// Dedup selects the optional post-assembly node-merge pass; the zero
	// value is DedupRetainAll.
	Dedup DedupStrategy

	// BucketSize overrides the coincident-node pre-pass's spatial hash
	// cell width (§4.1); zero selects DefaultBucketSize.
	BucketSize float64
}

// GenerateOverlap implements §4.4: given two meshes F and S that tile the
// same sphere, it builds the overlap mesh O whose faces are the non-empty
// intersections of one F-face with one S-face. first and second must each
// already have BuildEdgeMap called.
func GenerateOverlap(first, second *Mesh, opts Options) (*Mesh, error) {
	if opts.Kernel == nil {
		return nil, fmt.Errorf("overlapmesh: Options.Kernel is required: %w", ErrInvalidMesh)
	}

	secondNodeMap := BuildSecondNodeMap(first, second, opts.Kernel, opts.BucketSize)

	overlap := &Mesh{
		Nodes: make([]kernel.Node, 0, len(first.Nodes)+len(second.Nodes)),
	}
	overlap.Nodes = append(overlap.Nodes, first.Nodes...)

	overlapSecondBegin := len(overlap.Nodes)
	newCount := 0
	for _, ox := range secondNodeMap {
		if ox >= len(first.Nodes) {
			newCount++
		}
	}
	overlap.Nodes = append(overlap.Nodes, make([]kernel.Node, newCount)...)

	for j, n := range second.Nodes {
		if secondNodeMap[j] >= len(first.Nodes) {
			resolved := overlapSecondBegin + (secondNodeMap[j] - len(first.Nodes))
			overlap.Nodes[resolved] = n
			secondNodeMap[j] = resolved
		}
	}

	tracer := &Tracer{First: first, Second: second, Kernel: opts.Kernel, SecondNodeMap: secondNodeMap, Overlap: overlap}
	assembler := &Assembler{Second: second, SecondNodeMap: secondNodeMap}

	for f := range first.Faces {
		if opts.Verbosity > 0 {
			Log.WithFields(map[string]interface{}{"face": f, "of": len(first.Faces)}).Debug("overlapmesh: tracing face")
		}

		segments, err := tracer.Trace(f)
		if err != nil {
			return nil, fmt.Errorf("overlapmesh: tracing face %d: %w", f, err)
		}
		if opts.Verbosity > 1 {
			for _, s := range segments {
				Log.WithFields(map[string]interface{}{"face": f, "n0": s.N0, "n1": s.N1, "sFace": s.IxSecondFace, "inttype": s.IntType}).
					Debug("overlapmesh: accepted path segment")
			}
		}

		if err := assembler.Assemble(f, segments, overlap); err != nil {
			return nil, fmt.Errorf("overlapmesh: assembling face %d: %w", f, err)
		}
	}

	if opts.Dedup != DedupRetainAll {
		if err := Dedup(overlap, opts.Kernel, opts.Dedup, opts.BucketSize); err != nil {
			return nil, fmt.Errorf("overlapmesh: post-assembly node dedup: %w", err)
		}
	}

	return overlap, nil
}
