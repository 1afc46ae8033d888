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
	"github.com/sqlitegis/sqlitegis/pkg/geo/geopb"
	"github.com/twpayne/go-geom"
)

// Envelope returns the bounding box of g as a Polygon (or, for a single
// point, as a Point), matching ST_Envelope.
func Envelope(g geo.Geometry) (geo.Geometry, error) {
	so := g.SpatialObject()
	if so.BoundingBox == nil {
		return geo.Geometry{}, geo.ErrEmptyGeometry
	}
	b := so.BoundingBox
	if b.MinX == b.MaxX && b.MinY == b.MaxY {
		pt := geom.NewPointFlat(geom.XY, []float64{b.MinX, b.MinY}).SetSRID(int(so.SRID))
		return geo.NewGeometryFromGeomT(pt)
	}
	ring := []geom.Coord{
		{b.MinX, b.MinY}, {b.MaxX, b.MinY}, {b.MaxX, b.MaxY}, {b.MinX, b.MaxY}, {b.MinX, b.MinY},
	}
	poly := geom.NewPolygon(geom.XY).SetSRID(int(so.SRID))
	if _, err := poly.SetCoords([][]geom.Coord{ring}); err != nil {
		return geo.Geometry{}, err
	}
	return geo.NewGeometryFromGeomT(poly)
}

// Extent returns the cached BoundingBox of g.
func Extent(g geo.Geometry) (*geopb.BoundingBox, error) {
	so := g.SpatialObject()
	if so.BoundingBox == nil {
		return nil, geo.ErrEmptyGeometry
	}
	return so.BoundingBox, nil
}

// XMin, XMax, YMin, YMax return the planar extrema of g's bounding box.
func XMin(g geo.Geometry) (float64, error) { return extremum(g, func(b *geopb.BoundingBox) float64 { return b.MinX }) }
func XMax(g geo.Geometry) (float64, error) { return extremum(g, func(b *geopb.BoundingBox) float64 { return b.MaxX }) }
func YMin(g geo.Geometry) (float64, error) { return extremum(g, func(b *geopb.BoundingBox) float64 { return b.MinY }) }
func YMax(g geo.Geometry) (float64, error) { return extremum(g, func(b *geopb.BoundingBox) float64 { return b.MaxY }) }

// ZMin and ZMax return the Z extent of g's bounding box, or an error if g
// has no Z ordinate.
func ZMin(g geo.Geometry) (float64, error) {
	return zExtremum(g, func(b *geopb.BoundingBox) float64 { return b.MinZ })
}
func ZMax(g geo.Geometry) (float64, error) {
	return zExtremum(g, func(b *geopb.BoundingBox) float64 { return b.MaxZ })
}

func extremum(g geo.Geometry, pick func(*geopb.BoundingBox) float64) (float64, error) {
	so := g.SpatialObject()
	if so.BoundingBox == nil {
		return 0, geo.ErrEmptyGeometry
	}
	return pick(so.BoundingBox), nil
}

func zExtremum(g geo.Geometry, pick func(*geopb.BoundingBox) float64) (float64, error) {
	so := g.SpatialObject()
	if so.BoundingBox == nil {
		return 0, geo.ErrEmptyGeometry
	}
	if !so.BoundingBox.HasZ {
		return 0, errors.New("geomfn: geometry has no Z ordinate")
	}
	return pick(so.BoundingBox), nil
}
