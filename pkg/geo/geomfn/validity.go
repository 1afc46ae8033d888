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

// IsValid reports whether g is a well-formed geometry under the OGC/SFS
// rules this kernel enforces: closed, non-self-intersecting polygon rings,
// and every ring with at least 4 points (repeated points are counted).
// Ring/hole containment (a hole fully inside its shell, holes not
// overlapping each other) is not checked.
func IsValid(g geo.Geometry) (bool, error) {
	t, err := g.AsGeomT()
	if err != nil {
		return false, err
	}
	return isValidGeomT(t), nil
}

func isValidGeomT(t geom.T) bool {
	switch t := t.(type) {
	case *geom.Polygon:
		return isValidPolygon(t)
	case *geom.MultiPolygon:
		for i := 0; i < t.NumPolygons(); i++ {
			if !isValidPolygon(t.Polygon(i)) {
				return false
			}
		}
		return true
	case *geom.LineString:
		return t.NumCoords() >= 2
	case *geom.MultiLineString:
		for i := 0; i < t.NumLineStrings(); i++ {
			if t.LineString(i).NumCoords() < 2 {
				return false
			}
		}
		return true
	case *geom.GeometryCollection:
		for _, child := range t.Geoms() {
			if !isValidGeomT(child) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func isValidPolygon(p *geom.Polygon) bool {
	for _, ring := range rings2D(p) {
		if len(ring) < 4 {
			return false
		}
		if ring[0][0] != ring[len(ring)-1][0] || ring[0][1] != ring[len(ring)-1][1] {
			return false
		}
		if ringSelfIntersects(ring) {
			return false
		}
	}
	return true
}

// ringSelfIntersects reports whether any two non-adjacent edges of ring
// cross. Adjacent edges sharing a vertex are not considered crossings.
func ringSelfIntersects(ring [][]float64) bool {
	n := len(ring) - 1 // ring[0] == ring[n]
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				continue // adjacent edges share an endpoint by construction
			}
			if segmentsIntersect(ring[i], ring[i+1], ring[j], ring[j+1]) {
				return true
			}
		}
	}
	return false
}
