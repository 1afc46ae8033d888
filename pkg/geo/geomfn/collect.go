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

// Collect gathers a and b into a single geometry: a same-type pair of
// Points/LineStrings/Polygons collapses into the matching Multi* shape,
// otherwise the result is a GeometryCollection. It is the pairwise
// reduction step behind the ST_Collect aggregate.
func Collect(a, b geo.Geometry) (geo.Geometry, error) {
	if err := checkSRIDCompatible(a, b); err != nil {
		return geo.Geometry{}, err
	}
	ta, err := a.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}
	tb, err := b.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}

	srid := ta.SRID()
	switch ta := ta.(type) {
	case *geom.Point:
		if tb, ok := tb.(*geom.Point); ok {
			mp := geom.NewMultiPoint(geom.XY).SetSRID(srid)
			if _, err := mp.SetCoords([]geom.Coord{ta.Coords(), tb.Coords()}); err != nil {
				return geo.Geometry{}, err
			}
			return geo.NewGeometryFromGeomT(mp)
		}
	case *geom.MultiPoint:
		if tb, ok := tb.(*geom.Point); ok {
			coords := append(ta.Coords(), tb.Coords())
			mp := geom.NewMultiPoint(geom.XY).SetSRID(srid)
			if _, err := mp.SetCoords(coords); err != nil {
				return geo.Geometry{}, err
			}
			return geo.NewGeometryFromGeomT(mp)
		}
	case *geom.LineString:
		if tb, ok := tb.(*geom.LineString); ok {
			mls := geom.NewMultiLineString(geom.XY).SetSRID(srid)
			if _, err := mls.SetCoords([][]geom.Coord{ta.Coords(), tb.Coords()}); err != nil {
				return geo.Geometry{}, err
			}
			return geo.NewGeometryFromGeomT(mls)
		}
	case *geom.MultiLineString:
		if tb, ok := tb.(*geom.LineString); ok {
			lines := append(ta.Coords(), tb.Coords())
			mls := geom.NewMultiLineString(geom.XY).SetSRID(srid)
			if _, err := mls.SetCoords(lines); err != nil {
				return geo.Geometry{}, err
			}
			return geo.NewGeometryFromGeomT(mls)
		}
	case *geom.Polygon:
		if tb, ok := tb.(*geom.Polygon); ok {
			mp := geom.NewMultiPolygon(geom.XY).SetSRID(srid)
			if _, err := mp.SetCoords([][][]geom.Coord{ta.Coords(), tb.Coords()}); err != nil {
				return geo.Geometry{}, err
			}
			return geo.NewGeometryFromGeomT(mp)
		}
	case *geom.MultiPolygon:
		if tb, ok := tb.(*geom.Polygon); ok {
			polys := append(ta.Coords(), tb.Coords())
			mp := geom.NewMultiPolygon(geom.XY).SetSRID(srid)
			if _, err := mp.SetCoords(polys); err != nil {
				return geo.Geometry{}, err
			}
			return geo.NewGeometryFromGeomT(mp)
		}
	}

	gc := geom.NewGeometryCollection().SetSRID(srid)
	if err := pushFlattened(gc, ta); err != nil {
		return geo.Geometry{}, err
	}
	if err := pushFlattened(gc, tb); err != nil {
		return geo.Geometry{}, err
	}
	return geo.NewGeometryFromGeomT(gc)
}

// pushFlattened appends t to gc, splicing in an existing collection's
// children instead of nesting collections inside collections.
func pushFlattened(gc *geom.GeometryCollection, t geom.T) error {
	if child, ok := t.(*geom.GeometryCollection); ok {
		for _, c := range child.Geoms() {
			if err := gc.Push(c); err != nil {
				return err
			}
		}
		return nil
	}
	return gc.Push(t)
}

// CollectAgg reduces a slice of geometries to one via repeated Collect,
// backing the ST_Collect aggregate (spec.md §5's accumulate/finalize
// shape: each step folds one more row's geometry into the running value).
func CollectAgg(geoms []geo.Geometry) (geo.Geometry, error) {
	if len(geoms) == 0 {
		return geo.Geometry{}, geo.ErrEmptyGeometry
	}
	acc := geoms[0]
	for _, g := range geoms[1:] {
		var err error
		acc, err = Collect(acc, g)
		if err != nil {
			return geo.Geometry{}, err
		}
	}
	return acc, nil
}
