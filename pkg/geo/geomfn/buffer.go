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

// bufferSegments is the number of segments used to approximate a full
// circle at round joins and caps.
const bufferSegments = 36

// Buffer returns the planar region within distance of every point of g,
// approximated with bufferSegments-sided circular arcs at round joins and
// caps. For a Point this is an exact regular polygon approximation of a
// circle; for a LineString/MultiLineString it is the convex hull of the
// capsule polygons around each segment, which is exact for a single
// segment and a conservative over-approximation for a multi-segment line
// (see DESIGN.md); for a Polygon/MultiPolygon it is a radial vertex offset
// from the ring's own centroid, which is exact only for star-shaped rings.
// A negative distance is accepted for Polygon/MultiPolygon (an inward
// offset/erosion) and rejected for every other shape, matching PostGIS.
func Buffer(g geo.Geometry, distance float64) (geo.Geometry, error) {
	t, err := g.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}
	srid := t.SRID()

	switch t := t.(type) {
	case *geom.Point:
		if distance < 0 {
			return geo.Geometry{}, errors.New("geomfn: negative buffer distance on a Point")
		}
		c := t.Coords()
		return polygonFromRing(circlePoints(c[0], c[1], distance, bufferSegments), srid)
	case *geom.MultiPoint:
		if distance < 0 {
			return geo.Geometry{}, errors.New("geomfn: negative buffer distance on a MultiPoint")
		}
		var all []geom.Coord
		for _, c := range flatten2D(t) {
			all = append(all, circlePoints(c[0], c[1], distance, bufferSegments)...)
		}
		return polygonFromRing(grahamScan(all), srid)
	case *geom.LineString:
		if distance < 0 {
			return geo.Geometry{}, errors.New("geomfn: negative buffer distance on a LineString")
		}
		return bufferLine(flatten2D(t), distance, srid)
	case *geom.MultiLineString:
		if distance < 0 {
			return geo.Geometry{}, errors.New("geomfn: negative buffer distance on a MultiLineString")
		}
		var all [][]float64
		for i := 0; i < t.NumLineStrings(); i++ {
			all = append(all, flatten2D(t.LineString(i))...)
		}
		return bufferLine(all, distance, srid)
	case *geom.Polygon:
		return bufferPolygon(t, distance, srid)
	case *geom.MultiPolygon:
		var out []geom.Coord
		for i := 0; i < t.NumPolygons(); i++ {
			g, err := bufferPolygon(t.Polygon(i), distance, srid)
			if err != nil {
				return geo.Geometry{}, err
			}
			gt, err := g.AsGeomT()
			if err != nil {
				return geo.Geometry{}, err
			}
			if poly, ok := gt.(*geom.Polygon); ok {
				for _, c := range flatten2D(poly.LinearRing(0)) {
					out = append(out, geom.Coord{c[0], c[1]})
				}
			}
		}
		return polygonFromRing(grahamScan(out), srid)
	default:
		return geo.Geometry{}, errUnsupportedShape("ST_Buffer", t)
	}
}

func circlePoints(cx, cy, r float64, n int) []geom.Coord {
	pts := make([]geom.Coord, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geom.Coord{cx + r*math.Cos(theta), cy + r*math.Sin(theta)}
	}
	return pts
}

func polygonFromRing(ring []geom.Coord, srid int) (geo.Geometry, error) {
	if len(ring) < 3 {
		return geo.Geometry{}, errors.New("geomfn: buffer produced a degenerate ring")
	}
	closed := append(append([]geom.Coord{}, ring...), ring[0])
	poly := geom.NewPolygon(geom.XY).SetSRID(srid)
	if _, err := poly.SetCoords([][]geom.Coord{closed}); err != nil {
		return geo.Geometry{}, err
	}
	return geo.NewGeometryFromGeomT(poly)
}

// bufferLine builds a capsule (stadium) polygon per segment and returns
// the convex hull of their union — exact for one segment, a safe
// over-approximation for a polyline with more than one segment.
func bufferLine(pts [][]float64, distance float64, srid int) (geo.Geometry, error) {
	if len(pts) < 2 {
		return geo.Geometry{}, errors.New("geomfn: buffer needs at least 2 points")
	}
	var all []geom.Coord
	for i := 0; i < len(pts)-1; i++ {
		all = append(all, capsulePoints(pts[i], pts[i+1], distance)...)
	}
	return polygonFromRing(grahamScan(all), srid)
}

func capsulePoints(a, b []float64, r float64) []geom.Coord {
	dx, dy := b[0]-a[0], b[1]-a[1]
	length := math.Hypot(dx, dy)
	if length == 0 {
		return circlePoints(a[0], a[1], r, bufferSegments)
	}
	ux, uy := dx/length, dy/length
	nx, ny := -uy, ux

	pts := []geom.Coord{
		{a[0] + nx*r, a[1] + ny*r},
		{b[0] + nx*r, b[1] + ny*r},
		{b[0] - nx*r, b[1] - ny*r},
		{a[0] - nx*r, a[1] - ny*r},
	}
	pts = append(pts, circlePoints(a[0], a[1], r, bufferSegments)...)
	pts = append(pts, circlePoints(b[0], b[1], r, bufferSegments)...)
	return pts
}

// bufferPolygon offsets the shell radially from its own centroid. This is
// an approximation exact only for star-shaped shells (see Buffer's doc
// comment); it ignores holes, matching this kernel's documented
// union/buffer simplification for polygons with holes.
func bufferPolygon(p *geom.Polygon, distance float64, srid int) (geo.Geometry, error) {
	shell := flatten2D(p.LinearRing(0))
	if len(shell) < 4 {
		return geo.Geometry{}, errors.New("geomfn: buffer needs a non-degenerate shell")
	}
	cx, cy, err := areaWeightedCentroid(p)
	if err != nil {
		cx, cy = shell[0][0], shell[0][1]
	}
	ring := make([]geom.Coord, 0, len(shell)-1)
	for _, c := range shell[:len(shell)-1] {
		dx, dy := c[0]-cx, c[1]-cy
		d := math.Hypot(dx, dy)
		if d == 0 {
			ring = append(ring, geom.Coord{c[0], c[1]})
			continue
		}
		scale := (d + distance) / d
		if scale < 0 {
			scale = 0
		}
		ring = append(ring, geom.Coord{cx + dx*scale, cy + dy*scale})
	}
	return polygonFromRing(ring, srid)
}
