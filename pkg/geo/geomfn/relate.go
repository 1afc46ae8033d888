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
	"github.com/sqlitegis/sqlitegis/pkg/geo/geopb"
	"github.com/twpayne/go-geom"
)

// checkSRIDCompatible enforces the SRID policy for binary algorithms: a
// and b conflict only if both carry a non--1 SRID and those SRIDs differ.
// -1 on either side is assumed compatible with anything, matching spec.md
// §4.2's "SRID policy for binary algorithms."
func checkSRIDCompatible(a, b geo.Geometry) error {
	as, bs := a.SRID(), b.SRID()
	if as == geopb.UnknownSRID || bs == geopb.UnknownSRID {
		return nil
	}
	if as != bs {
		return errors.Newf("geomfn: mismatching SRIDs %d and %d", as, bs)
	}
	return nil
}

// shapeParts is a decomposition of a geometry into the three primitive
// kinds the relation tests below operate on: standalone points, polylines
// (each a slice of vertices), and polygons (each a list of rings, shell
// first). Every Geometry Value variant, including GeometryCollection,
// reduces to this shape so Distance/Intersects/Within/Contains need only
// be written once per primitive-pair, not once per OGC variant-pair.
type shapeParts struct {
	points [][]float64
	lines  [][][]float64
	polys  [][][][]float64
}

func decompose(t geom.T) shapeParts {
	var sp shapeParts
	var walk func(geom.T)
	walk = func(t geom.T) {
		switch t := t.(type) {
		case *geom.Point:
			sp.points = append(sp.points, flatten2D(t)...)
		case *geom.MultiPoint:
			sp.points = append(sp.points, flatten2D(t)...)
		case *geom.LineString:
			sp.lines = append(sp.lines, flatten2D(t))
		case *geom.MultiLineString:
			for i := 0; i < t.NumLineStrings(); i++ {
				sp.lines = append(sp.lines, flatten2D(t.LineString(i)))
			}
		case *geom.Polygon:
			sp.polys = append(sp.polys, rings2D(t))
		case *geom.MultiPolygon:
			for i := 0; i < t.NumPolygons(); i++ {
				sp.polys = append(sp.polys, rings2D(t.Polygon(i)))
			}
		case *geom.GeometryCollection:
			for _, child := range t.Geoms() {
				walk(child)
			}
		}
	}
	walk(t)
	return sp
}

// Distance returns the minimum planar distance between any part of a and
// any part of b, 0 if they touch or overlap.
func Distance(a, b geo.Geometry) (float64, error) {
	if err := checkSRIDCompatible(a, b); err != nil {
		return 0, err
	}
	ta, err := a.AsGeomT()
	if err != nil {
		return 0, err
	}
	tb, err := b.AsGeomT()
	if err != nil {
		return 0, err
	}
	pa, pb := decompose(ta), decompose(tb)
	best := math.Inf(1)
	update := func(d float64) {
		if d < best {
			best = d
		}
	}

	for _, p := range pa.points {
		for _, q := range pb.points {
			update(dist2D(p, q))
		}
		for _, l := range pb.lines {
			update(pointToLineDistance(p, l))
		}
		for _, poly := range pb.polys {
			update(pointToPolyDistance(p, poly))
		}
	}
	for _, l := range pa.lines {
		for _, q := range pb.points {
			update(pointToLineDistance(q, l))
		}
		for _, m := range pb.lines {
			update(lineToLineDistance(l, m))
		}
		for _, poly := range pb.polys {
			update(lineToPolyDistance(l, poly))
		}
	}
	for _, poly := range pa.polys {
		for _, q := range pb.points {
			update(pointToPolyDistance(q, poly))
		}
		for _, m := range pb.lines {
			update(lineToPolyDistance(m, poly))
		}
		for _, other := range pb.polys {
			update(polyToPolyDistance(poly, other))
		}
	}
	if math.IsInf(best, 1) {
		return 0, geo.ErrEmptyGeometry
	}
	return best, nil
}

func pointToLineDistance(p []float64, line [][]float64) float64 {
	best := math.Inf(1)
	for i := 0; i < len(line)-1; i++ {
		if d := pointToSegmentDistance(p, line[i], line[i+1]); d < best {
			best = d
		}
	}
	if len(line) == 1 {
		return dist2D(p, line[0])
	}
	return best
}

func pointToSegmentDistance(p, a, b []float64) float64 {
	dx, dy := b[0]-a[0], b[1]-a[1]
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return dist2D(p, a)
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := []float64{a[0] + t*dx, a[1] + t*dy}
	return dist2D(p, proj)
}

func lineToLineDistance(l, m [][]float64) float64 {
	best := math.Inf(1)
	for i := 0; i < len(l)-1; i++ {
		for j := 0; j < len(m)-1; j++ {
			if segmentsIntersect(l[i], l[i+1], m[j], m[j+1]) {
				return 0
			}
			for _, d := range []float64{
				pointToSegmentDistance(l[i], m[j], m[j+1]),
				pointToSegmentDistance(l[i+1], m[j], m[j+1]),
				pointToSegmentDistance(m[j], l[i], l[i+1]),
				pointToSegmentDistance(m[j+1], l[i], l[i+1]),
			} {
				if d < best {
					best = d
				}
			}
		}
	}
	return best
}

func pointToPolyDistance(p []float64, poly [][][]float64) float64 {
	if len(poly) > 0 {
		inside, onBoundary := pointInRing(p, poly[0])
		if inside || onBoundary {
			insideHole := false
			for _, hole := range poly[1:] {
				hIn, hOn := pointInRing(p, hole)
				if hIn && !hOn {
					insideHole = true
					break
				}
			}
			if !insideHole {
				return 0
			}
		}
	}
	best := math.Inf(1)
	for _, ring := range poly {
		if d := pointToLineDistance(p, ring); d < best {
			best = d
		}
	}
	return best
}

func lineToPolyDistance(l [][]float64, poly [][][]float64) float64 {
	best := math.Inf(1)
	for _, v := range l {
		d := pointToPolyDistance(v, poly)
		if d < best {
			best = d
		}
		if d == 0 {
			return 0
		}
	}
	for _, ring := range poly {
		if d := lineToLineDistance(l, ring); d < best {
			best = d
		}
	}
	return best
}

func polyToPolyDistance(a, b [][][]float64) float64 {
	best := math.Inf(1)
	if len(a) > 0 {
		for _, v := range a[0] {
			if d := pointToPolyDistance(v, b); d < best {
				best = d
			}
		}
	}
	if len(b) > 0 {
		for _, v := range b[0] {
			if d := pointToPolyDistance(v, a); d < best {
				best = d
			}
		}
	}
	return best
}

// Intersects reports whether a and b share at least one point, treating
// boundary touches and full containment both as intersection.
func Intersects(a, b geo.Geometry) (bool, error) {
	if err := checkSRIDCompatible(a, b); err != nil {
		return false, err
	}
	d, err := Distance(a, b)
	if err != nil {
		if err == geo.ErrEmptyGeometry {
			return false, nil
		}
		return false, err
	}
	return d == 0, nil
}

// Contains reports whether every point of b, every vertex of b's lines and
// every vertex of b's polygon shells lies inside or on the boundary of one
// of a's polygons (outside its holes). Only vertices are tested, not the
// segments between them, and a point of b on a's boundary counts as
// contained. If a has no polygonal part (e.g. a LineString containing a
// Polygon) or b is empty, the result is false rather than an error,
// matching this module's Open Question #2 decision (see SPEC_FULL.md's
// Open Questions section).
func Contains(a, b geo.Geometry) (bool, error) {
	if err := checkSRIDCompatible(a, b); err != nil {
		return false, err
	}
	ta, err := a.AsGeomT()
	if err != nil {
		return false, err
	}
	tb, err := b.AsGeomT()
	if err != nil {
		return false, err
	}
	pa, pb := decompose(ta), decompose(tb)
	if len(pa.polys) == 0 {
		return false, nil
	}
	for _, p := range pb.points {
		if !pointInPolys(p, pa.polys) {
			return false, nil
		}
	}
	for _, l := range pb.lines {
		for _, v := range l {
			if !pointInPolys(v, pa.polys) {
				return false, nil
			}
		}
	}
	for _, poly := range pb.polys {
		if len(poly) == 0 {
			continue
		}
		for _, v := range poly[0] {
			if !pointInPolys(v, pa.polys) {
				return false, nil
			}
		}
	}
	if len(pb.points) == 0 && len(pb.lines) == 0 && len(pb.polys) == 0 {
		return false, nil
	}
	return true, nil
}

func pointInPolys(p []float64, polys [][][][]float64) bool {
	for _, poly := range polys {
		if len(poly) == 0 {
			continue
		}
		inside, onBoundary := pointInRing(p, poly[0])
		if !inside && !onBoundary {
			continue
		}
		inHole := false
		for _, hole := range poly[1:] {
			hIn, hOn := pointInRing(p, hole)
			if hIn && !hOn {
				inHole = true
				break
			}
		}
		if !inHole {
			return true
		}
	}
	return false
}

// Within reports whether every point of a lies within b; it is Contains
// with its arguments reversed.
func Within(a, b geo.Geometry) (bool, error) {
	if err := checkSRIDCompatible(a, b); err != nil {
		return false, err
	}
	return Contains(b, a)
}
