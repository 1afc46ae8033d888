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
	"github.com/sqlitegis/sqlitegis/pkg/geo"
	"github.com/twpayne/go-geom"
)

// Centroid returns the planar centroid of g: the area-weighted centroid for
// Polygon/MultiPolygon, the length-weighted centroid for LineString/
// MultiLineString, and the arithmetic mean of points for Point/MultiPoint.
// It returns geo.ErrEmptyGeometry for an empty input, matching ST_Centroid
// on PostGIS's EMPTY geometries.
func Centroid(g geo.Geometry) (geo.Geometry, error) {
	if g.Empty() {
		return geo.Geometry{}, geo.ErrEmptyGeometry
	}
	t, err := g.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}
	x, y, err := centroidXY(t)
	if err != nil {
		return geo.Geometry{}, err
	}
	pt := geom.NewPointFlat(geom.XY, []float64{x, y}).SetSRID(t.SRID())
	return geo.NewGeometryFromGeomT(pt)
}

func centroidXY(t geom.T) (float64, float64, error) {
	switch t := t.(type) {
	case *geom.Point:
		c := t.Coords()
		return c[0], c[1], nil
	case *geom.MultiPoint:
		return meanOfPoints(flatten2D(t))
	case *geom.LineString:
		return lengthWeightedCentroid(flatten2D(t))
	case *geom.MultiLineString:
		var pts [][]float64
		for i := 0; i < t.NumLineStrings(); i++ {
			pts = append(pts, flatten2D(t.LineString(i))...)
		}
		return lengthWeightedCentroid(dedupConsecutive(pts))
	case *geom.Polygon:
		return areaWeightedCentroid(t)
	case *geom.MultiPolygon:
		var cx, cy, totalArea float64
		for i := 0; i < t.NumPolygons(); i++ {
			p := t.Polygon(i)
			x, y, err := areaWeightedCentroid(p)
			if err != nil {
				continue
			}
			a := polygonArea(p)
			cx += x * a
			cy += y * a
			totalArea += a
		}
		if totalArea == 0 {
			return meanOfPoints(flatten2D(t))
		}
		return cx / totalArea, cy / totalArea, nil
	case *geom.GeometryCollection:
		var xs, ys []float64
		for _, child := range t.Geoms() {
			x, y, err := centroidXY(child)
			if err == nil {
				xs = append(xs, x)
				ys = append(ys, y)
			}
		}
		return meanOfPoints(zip(xs, ys))
	default:
		return 0, 0, errUnsupportedShape("ST_Centroid", t)
	}
}

func zip(xs, ys []float64) [][]float64 {
	out := make([][]float64, len(xs))
	for i := range xs {
		out[i] = []float64{xs[i], ys[i]}
	}
	return out
}

func meanOfPoints(pts [][]float64) (float64, float64, error) {
	if len(pts) == 0 {
		return 0, 0, geo.ErrEmptyGeometry
	}
	var sx, sy float64
	for _, p := range pts {
		sx += p[0]
		sy += p[1]
	}
	n := float64(len(pts))
	return sx / n, sy / n, nil
}

func dedupConsecutive(pts [][]float64) [][]float64 {
	var out [][]float64
	for i, p := range pts {
		if i > 0 && p[0] == pts[i-1][0] && p[1] == pts[i-1][1] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// lengthWeightedCentroid returns the centroid of a polyline, weighting each
// segment's midpoint by its length.
func lengthWeightedCentroid(pts [][]float64) (float64, float64, error) {
	if len(pts) == 0 {
		return 0, 0, geo.ErrEmptyGeometry
	}
	if len(pts) == 1 {
		return pts[0][0], pts[0][1], nil
	}
	var sx, sy, total float64
	for i := 0; i < len(pts)-1; i++ {
		l := dist2D(pts[i], pts[i+1])
		mx := (pts[i][0] + pts[i+1][0]) / 2
		my := (pts[i][1] + pts[i+1][1]) / 2
		sx += mx * l
		sy += my * l
		total += l
	}
	if total == 0 {
		return pts[0][0], pts[0][1], nil
	}
	return sx / total, sy / total, nil
}

// areaWeightedCentroid returns the centroid of a polygon (holes subtracted)
// using the standard signed-area centroid formula applied to the outer
// ring and each hole in turn.
func areaWeightedCentroid(p *geom.Polygon) (float64, float64, error) {
	rings := rings2D(p)
	if len(rings) == 0 {
		return 0, 0, geo.ErrEmptyGeometry
	}
	cx, cy, a := ringCentroidMoment(rings[0])
	for _, hole := range rings[1:] {
		hx, hy, ha := ringCentroidMoment(hole)
		cx -= hx
		cy -= hy
		a -= ha
	}
	if a == 0 {
		return meanOfPoints(rings[0])
	}
	return cx / (6 * a), cy / (6 * a), nil
}

// ringCentroidMoment returns (Cx*6A, Cy*6A, A) for a single closed ring, so
// callers can combine outer-ring and hole moments before dividing once.
func ringCentroidMoment(ring [][]float64) (float64, float64, float64) {
	if len(ring) < 4 {
		return 0, 0, 0
	}
	var a, cx, cy float64
	for i := 0; i < len(ring)-1; i++ {
		x1, y1 := ring[i][0], ring[i][1]
		x2, y2 := ring[i+1][0], ring[i+1][1]
		cross := x1*y2 - x2*y1
		a += cross
		cx += (x1 + x2) * cross
		cy += (y1 + y2) * cross
	}
	a /= 2
	return cx, cy, a
}
