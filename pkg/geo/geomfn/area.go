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
	"math"

	"github.com/cockroachdb/errors"
	"github.com/sqlitegis/sqlitegis/pkg/geo"
	"github.com/twpayne/go-geom"
)

// Area returns the planar area of a Polygon or MultiPolygon, summing each
// ring's shoelace area and subtracting holes. Every other shape is a
// domain error, matching ST_Area requiring Polygon or MultiPolygon.
func Area(g geo.Geometry) (float64, error) {
	t, err := g.AsGeomT()
	if err != nil {
		return 0, err
	}
	switch t := t.(type) {
	case *geom.Polygon:
		return polygonArea(t), nil
	case *geom.MultiPolygon:
		var total float64
		for i := 0; i < t.NumPolygons(); i++ {
			total += polygonArea(t.Polygon(i))
		}
		return total, nil
	default:
		return 0, errUnsupportedShape("ST_Area", t)
	}
}

func polygonArea(p *geom.Polygon) float64 {
	rings := rings2D(p)
	if len(rings) == 0 {
		return 0
	}
	area := math.Abs(shoelaceArea(rings[0]))
	for _, hole := range rings[1:] {
		area -= math.Abs(shoelaceArea(hole))
	}
	if area < 0 {
		return 0
	}
	return area
}

// shoelaceArea returns the signed area of a closed ring (positive for
// counter-clockwise winding). ring's first and last points coincide, as
// guaranteed by the WKT parser and by every ring-producing kernel op.
func shoelaceArea(ring [][]float64) float64 {
	if len(ring) < 4 {
		return 0
	}
	var sum float64
	for i := 0; i < len(ring)-1; i++ {
		x1, y1 := ring[i][0], ring[i][1]
		x2, y2 := ring[i+1][0], ring[i+1][1]
		sum += x1*y2 - x2*y1
	}
	return sum / 2
}

// Perimeter returns the total length of a Polygon or MultiPolygon's
// boundary rings (outer ring plus holes). Every other shape is a domain
// error, matching ST_Perimeter requiring Polygon or MultiPolygon.
func Perimeter(g geo.Geometry) (float64, error) {
	t, err := g.AsGeomT()
	if err != nil {
		return 0, err
	}
	switch t := t.(type) {
	case *geom.Polygon:
		return polygonPerimeter(t), nil
	case *geom.MultiPolygon:
		var total float64
		for i := 0; i < t.NumPolygons(); i++ {
			total += polygonPerimeter(t.Polygon(i))
		}
		return total, nil
	default:
		return 0, errUnsupportedShape("ST_Perimeter", t)
	}
}

func polygonPerimeter(p *geom.Polygon) float64 {
	var total float64
	for _, ring := range rings2D(p) {
		total += ringLength(ring)
	}
	return total
}

func ringLength(ring [][]float64) float64 {
	var total float64
	for i := 0; i < len(ring)-1; i++ {
		total += dist2D(ring[i], ring[i+1])
	}
	return total
}

func dist2D(a, b []float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return math.Sqrt(dx*dx + dy*dy)
}

// Length returns the total length of a LineString or MultiLineString.
// Every other shape is a domain error, matching ST_Length requiring
// LineString or MultiLineString.
func Length(g geo.Geometry) (float64, error) {
	t, err := g.AsGeomT()
	if err != nil {
		return 0, err
	}
	switch t := t.(type) {
	case *geom.LineString:
		return ringLength(flatten2D(t)), nil
	case *geom.MultiLineString:
		var total float64
		for i := 0; i < t.NumLineStrings(); i++ {
			total += ringLength(flatten2D(t.LineString(i)))
		}
		return total, nil
	default:
		return 0, errUnsupportedShape("ST_Length", t)
	}
}

// errUnsupportedShape is returned by kernel ops that only accept a subset
// of the seven Geometry Value variants.
func errUnsupportedShape(op string, t geom.T) error {
	return errors.Newf("geomfn: %s does not support %T", op, t)
}
