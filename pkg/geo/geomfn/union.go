// Copyright 2025 The SqliteGIS Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geomfn

import (
	"github.com/cockroachdb/errors"
	"github.com/sqlitegis/sqlitegis/pkg/geo"
	"github.com/twpayne/go-geom"
)

// Union returns the planar union of a and b. Points and lines are merged
// without dissolving shared geometry (PostGIS's ST_Union also leaves
// overlapping linework as-is unless noded first). Polygons that overlap or
// touch (Intersects reports true) are merged into their convex hull, which
// is exact when the union itself is convex and a conservative
// over-approximation otherwise — see DESIGN.md for why this kernel accepts
// that approximation instead of a full polygon-clipping algorithm.
// Disjoint polygons are returned as an exact MultiPolygon, the common case
// for ST_Union over non-overlapping rows.
func Union(a, b geo.Geometry) (geo.Geometry, error) {
	ta, err := a.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}
	tb, err := b.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}

	if isArealOnly(ta) && isArealOnly(tb) {
		return unionPolygonal(a, b, ta, tb)
	}

	// Points and lines (and any mixed-type pair) collapse via the same
	// pairwise reduction Collect uses, splicing collections instead of
	// nesting them.
	return Collect(a, b)
}

func isArealOnly(t geom.T) bool {
	switch t.(type) {
	case *geom.Polygon, *geom.MultiPolygon:
		return true
	default:
		return false
	}
}

func unionPolygonal(a, b geo.Geometry, ta, tb geom.T) (geo.Geometry, error) {
	overlaps, err := Intersects(a, b)
	if err != nil {
		return geo.Geometry{}, err
	}
	srid := ta.SRID()
	if !overlaps {
		pa := decompose(ta)
		pb := decompose(tb)
		var polys [][][]geom.Coord
		for _, p := range pa.polys {
			polys = append(polys, to3DRings(p))
		}
		for _, p := range pb.polys {
			polys = append(polys, to3DRings(p))
		}
		mp := geom.NewMultiPolygon(geom.XY).SetSRID(srid)
		if _, err := mp.SetCoords(polys); err != nil {
			return geo.Geometry{}, err
		}
		return geo.NewGeometryFromGeomT(mp)
	}

	var all []geom.Coord
	for _, c := range collectAllPoints(ta) {
		all = append(all, c)
	}
	for _, c := range collectAllPoints(tb) {
		all = append(all, c)
	}
	hull := grahamScan(all)
	if len(hull) < 3 {
		return geo.Geometry{}, errors.New("geomfn: union of degenerate polygons")
	}
	return polygonFromRing(hull, srid)
}

func to3DRings(rings [][][]float64) [][]geom.Coord {
	out := make([][]geom.Coord, len(rings))
	for i, ring := range rings {
		cs := make([]geom.Coord, len(ring))
		for j, p := range ring {
			cs[j] = geom.Coord{p[0], p[1]}
		}
		out[i] = cs
	}
	return out
}

// UnionAgg reduces a slice of geometries to one via repeated Union,
// backing the ST_Union aggregate.
func UnionAgg(geoms []geo.Geometry) (geo.Geometry, error) {
	if len(geoms) == 0 {
		return geo.Geometry{}, geo.ErrEmptyGeometry
	}
	acc := geoms[0]
	for _, g := range geoms[1:] {
		var err error
		acc, err = Union(acc, g)
		if err != nil {
			return geo.Geometry{}, err
		}
	}
	return acc, nil
}
