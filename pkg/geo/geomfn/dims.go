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

// Force2D returns a copy of g with its Z and M ordinates dropped, matching
// ST_Force2D.
func Force2D(g geo.Geometry) (geo.Geometry, error) {
	t, err := g.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}
	out, err := relayout(t, geom.XY)
	if err != nil {
		return geo.Geometry{}, err
	}
	return geo.NewGeometryFromGeomT(out)
}

// Force3D returns a copy of g with a Z ordinate, filling a missing Z with
// 0, matching ST_Force3D. The result is always XYZ: any M ordinate is
// dropped.
func Force3D(g geo.Geometry) (geo.Geometry, error) {
	t, err := g.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}
	if t.Layout() == geom.XYM {
		// Drop M first so relayout does not carry it into the Z slot.
		if t, err = relayout(t, geom.XY); err != nil {
			return geo.Geometry{}, err
		}
	}
	out, err := relayout(t, geom.XYZ)
	if err != nil {
		return geo.Geometry{}, err
	}
	return geo.NewGeometryFromGeomT(out)
}

// relayout rebuilds t under the given layout, zero-filling any new
// ordinate and dropping any ordinate the new layout lacks.
func relayout(t geom.T, layout geom.Layout) (geom.T, error) {
	srid := t.SRID()
	switch t := t.(type) {
	case *geom.Point:
		return geom.NewPoint(layout).SetSRID(srid).SetCoords(relayoutCoord(t.Coords(), layout))
	case *geom.LineString:
		return geom.NewLineString(layout).SetSRID(srid).SetCoords(relayoutCoords(t.Coords(), layout))
	case *geom.Polygon:
		rings := t.Coords()
		out := make([][]geom.Coord, len(rings))
		for i, r := range rings {
			out[i] = relayoutCoords(r, layout)
		}
		return geom.NewPolygon(layout).SetSRID(srid).SetCoords(out)
	case *geom.MultiPoint:
		return geom.NewMultiPoint(layout).SetSRID(srid).SetCoords(relayoutCoords(t.Coords(), layout))
	case *geom.MultiLineString:
		lines := t.Coords()
		out := make([][]geom.Coord, len(lines))
		for i, l := range lines {
			out[i] = relayoutCoords(l, layout)
		}
		return geom.NewMultiLineString(layout).SetSRID(srid).SetCoords(out)
	case *geom.MultiPolygon:
		polys := t.Coords()
		out := make([][][]geom.Coord, len(polys))
		for i, p := range polys {
			rings := make([][]geom.Coord, len(p))
			for j, r := range p {
				rings[j] = relayoutCoords(r, layout)
			}
			out[i] = rings
		}
		return geom.NewMultiPolygon(layout).SetSRID(srid).SetCoords(out)
	case *geom.GeometryCollection:
		gc := geom.NewGeometryCollection().SetSRID(srid)
		for _, child := range t.Geoms() {
			c, err := relayout(child, layout)
			if err != nil {
				return nil, err
			}
			if err := gc.Push(c); err != nil {
				return nil, err
			}
		}
		return gc, nil
	default:
		return nil, errUnsupportedShape("ST_Force2D/ST_Force3D", t)
	}
}

func relayoutCoord(c geom.Coord, layout geom.Layout) geom.Coord {
	out := make(geom.Coord, layout.Stride())
	out[0], out[1] = c[0], c[1]
	if layout.ZIndex() >= 0 && len(c) > 2 {
		out[layout.ZIndex()] = c[2]
	}
	return out
}

func relayoutCoords(cs []geom.Coord, layout geom.Layout) []geom.Coord {
	out := make([]geom.Coord, len(cs))
	for i, c := range cs {
		out[i] = relayoutCoord(c, layout)
	}
	return out
}
