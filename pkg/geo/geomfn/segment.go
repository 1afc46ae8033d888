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

// segmentsIntersect reports whether segment p1-p2 intersects segment
// p3-p4, including the case where they touch at an endpoint. It is the
// shared primitive behind ring self-intersection checks (validity.go) and
// the LineString/LineString branch of Intersects (relate.go).
func segmentsIntersect(p1, p2, p3, p4 []float64) bool {
	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}
	return false
}

func direction(a, b, c []float64) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(b[1]-a[1])
}

func onSegment(a, b, p []float64) bool {
	return min(a[0], b[0]) <= p[0] && p[0] <= max(a[0], b[0]) &&
		min(a[1], b[1]) <= p[1] && p[1] <= max(a[1], b[1])
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// pointInRing reports whether p lies strictly inside, on the boundary of,
// or outside the closed ring using a standard ray-casting test for the
// interior/exterior determination, with an explicit boundary scan first.
func pointInRing(p []float64, ring [][]float64) (inside, onBoundary bool) {
	n := len(ring)
	if n < 4 {
		return false, false
	}
	for i := 0; i < n-1; i++ {
		if onSegment(ring[i], ring[i+1], p) && direction(ring[i], ring[i+1], p) == 0 {
			return false, true
		}
	}
	c := false
	for i, j := 0, n-2; i < n-1; j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > p[1]) != (yj > p[1]) {
			xIntersect := xi + (p[1]-yi)/(yj-yi)*(xj-xi)
			if p[0] < xIntersect {
				c = !c
			}
		}
	}
	return c, false
}
