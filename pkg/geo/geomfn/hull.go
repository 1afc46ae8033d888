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
	"sort"

	"github.com/sqlitegis/sqlitegis/pkg/geo"
	"github.com/twpayne/go-geom"
)

// ConvexHull returns the smallest convex Polygon (or, for degenerate
// input, Point/LineString) enclosing every vertex of g, computed with a
// Graham scan. Z and M ordinates, if any, are dropped: the hull is always
// planar.
func ConvexHull(g geo.Geometry) (geo.Geometry, error) {
	t, err := g.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}
	pts := collectAllPoints(t)
	hull := grahamScan(pts)

	srid := t.SRID()
	switch len(hull) {
	case 0:
		return geo.NewGeometryFromGeomT(geom.NewGeometryCollection().SetSRID(srid))
	case 1:
		return geo.NewGeometryFromGeomT(geom.NewPointFlat(geom.XY, hull[0]).SetSRID(srid))
	case 2:
		ls := geom.NewLineString(geom.XY).SetSRID(srid)
		if _, err := ls.SetCoords([]geom.Coord{hull[0], hull[1]}); err != nil {
			return geo.Geometry{}, err
		}
		return geo.NewGeometryFromGeomT(ls)
	default:
		ring := append(append([]geom.Coord{}, hull...), hull[0])
		poly := geom.NewPolygon(geom.XY).SetSRID(srid)
		if _, err := poly.SetCoords([][]geom.Coord{ring}); err != nil {
			return geo.Geometry{}, err
		}
		return geo.NewGeometryFromGeomT(poly)
	}
}

// collectAllPoints walks every coordinate reachable from t, regardless of
// shape, returning them as go-geom Coords for hull construction.
func collectAllPoints(t geom.T) []geom.Coord {
	var out []geom.Coord
	switch t := t.(type) {
	case *geom.GeometryCollection:
		for _, child := range t.Geoms() {
			out = append(out, collectAllPoints(child)...)
		}
		return out
	default:
		for _, p := range flatten2D(t) {
			out = append(out, geom.Coord{p[0], p[1]})
		}
		return out
	}
}

// grahamScan returns the convex hull of pts in counter-clockwise order,
// starting from the lowest-then-leftmost point. Collinear points on the
// hull boundary are dropped.
func grahamScan(pts []geom.Coord) []geom.Coord {
	uniq := dedupCoords(pts)
	if len(uniq) < 3 {
		return uniq
	}

	pivot := 0
	for i, p := range uniq {
		if p[1] < uniq[pivot][1] || (p[1] == uniq[pivot][1] && p[0] < uniq[pivot][0]) {
			pivot = i
		}
	}
	uniq[0], uniq[pivot] = uniq[pivot], uniq[0]
	origin := uniq[0]
	rest := uniq[1:]
	sort.Slice(rest, func(i, j int) bool {
		o := cross(origin, rest[i], rest[j])
		if o == 0 {
			return dist2D(origin, []float64{rest[i][0], rest[i][1]}) < dist2D(origin, []float64{rest[j][0], rest[j][1]})
		}
		return o > 0
	})

	stack := []geom.Coord{origin}
	for _, p := range rest {
		for len(stack) >= 2 && cross(stack[len(stack)-2], stack[len(stack)-1], p) <= 0 {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, p)
	}
	return stack
}

func dedupCoords(pts []geom.Coord) []geom.Coord {
	seen := make(map[[2]float64]bool, len(pts))
	var out []geom.Coord
	for _, p := range pts {
		key := [2]float64{p[0], p[1]}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// cross returns the cross product of (b-o) and (c-o): positive for a
// counter-clockwise turn, negative for clockwise, zero for collinear.
func cross(o, b, c geom.Coord) float64 {
	return (b[0]-o[0])*(c[1]-o[1]) - (b[1]-o[1])*(c[0]-o[0])
}

// ConvexHullAgg reduces a slice of geometries to the convex hull of every
// vertex across all of them, backing the ST_ConvexHull_Agg aggregate. This
// differs from repeatedly calling ConvexHull (which would re-hull an
// already-hulled accumulator against each new row, discarding points that
// a later row might have needed) by collecting every row's vertices first
// and hulling once at the end.
func ConvexHullAgg(geoms []geo.Geometry) (geo.Geometry, error) {
	if len(geoms) == 0 {
		return geo.Geometry{}, geo.ErrEmptyGeometry
	}
	srid := geoms[0].SRID()
	var pts []geom.Coord
	for _, g := range geoms {
		t, err := g.AsGeomT()
		if err != nil {
			return geo.Geometry{}, err
		}
		pts = append(pts, collectAllPoints(t)...)
	}
	hull := grahamScan(pts)
	switch len(hull) {
	case 0:
		return geo.NewGeometryFromGeomT(geom.NewGeometryCollection().SetSRID(int(srid)))
	case 1:
		return geo.NewGeometryFromGeomT(geom.NewPointFlat(geom.XY, hull[0]).SetSRID(int(srid)))
	case 2:
		ls := geom.NewLineString(geom.XY).SetSRID(int(srid))
		if _, err := ls.SetCoords([]geom.Coord{hull[0], hull[1]}); err != nil {
			return geo.Geometry{}, err
		}
		return geo.NewGeometryFromGeomT(ls)
	default:
		ring := append(append([]geom.Coord{}, hull...), hull[0])
		poly := geom.NewPolygon(geom.XY).SetSRID(int(srid))
		if _, err := poly.SetCoords([][]geom.Coord{ring}); err != nil {
			return geo.Geometry{}, err
		}
		return geo.NewGeometryFromGeomT(poly)
	}
}
