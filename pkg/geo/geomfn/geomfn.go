// Copyright 2025 The SqliteGIS Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package geomfn implements the planar Algorithm Kernel (K) of spec.md
// §4.2: area, perimeter, length, centroid, convex hull, buffer, union,
// collect, distance, intersects, within, contains, and validity, all
// computed directly on go-geom coordinate slices with no native
// dependency. spec.md §4.3 reserves the module's only native dependency
// for the Coordinate Reference Service (see geo/geoproj); the kernel is
// pure Go by design, even where the teacher package this is grounded on
// (cockroachdb/cockroach's pkg/geo/geomfn) delegates the same operations
// to a cgo GEOS binding.
package geomfn

import (
	"github.com/twpayne/go-geom"
)

// flatten2D returns the XY-only coordinate pairs of t, in the order a
// depth-first walk of its structure would visit them. It is the shared
// primitive behind area, perimeter, centroid, and the convex hull: none of
// those computations depend on Z or M, so every kernel file downgrades to
// XY once at the boundary rather than carrying stride arithmetic through
// each algorithm.
func flatten2D(t geom.T) [][]float64 {
	var out [][]float64
	flat := t.FlatCoords()
	stride := t.Layout().Stride()
	if stride == 0 {
		return nil
	}
	for i := 0; i+stride <= len(flat); i += stride {
		out = append(out, []float64{flat[i], flat[i+1]})
	}
	return out
}

// rings2D returns the XY rings of a Polygon (outer ring first, then holes).
func rings2D(p *geom.Polygon) [][][]float64 {
	var out [][][]float64
	for i := 0; i < p.NumLinearRings(); i++ {
		out = append(out, flatten2D(p.LinearRing(i)))
	}
	return out
}
