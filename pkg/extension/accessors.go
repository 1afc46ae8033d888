// Copyright 2025 The SqliteGIS Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package extension

import (
	"github.com/cockroachdb/errors"
	"github.com/sqlitegis/sqlitegis/pkg/geo/geopb"
)

// geometryTypeNames maps each ShapeType to the exact spelling
// ST_GeometryType returns, matching PostGIS's ST_-prefixed, camel-cased
// convention rather than the all-caps WKT keyword.
var geometryTypeNames = map[geopb.ShapeType]string{
	geopb.Point:              "ST_Point",
	geopb.LineString:         "ST_LineString",
	geopb.Polygon:            "ST_Polygon",
	geopb.MultiPoint:         "ST_MultiPoint",
	geopb.MultiLineString:    "ST_MultiLineString",
	geopb.MultiPolygon:       "ST_MultiPolygon",
	geopb.GeometryCollection: "ST_GeometryCollection",
}

// registerAccessorFunctions registers the functions that read properties
// off an existing geometry without altering it: ST_AsEWKB, ST_AsEWKT,
// ST_AsText, ST_AsBinary, ST_SRID, ST_GeometryType, ST_CoordDim, ST_Is3D,
// ST_X, ST_Y, ST_Z.
func registerAccessorFunctions(reg functionRegisterer) error {
	fns := []scalarFunc{
		{name: "ST_AsEWKB", nArgs: 1, deterministic: true, fn: stAsEWKB},
		{name: "ST_AsBinary", nArgs: 1, deterministic: true, fn: stAsBinary},
		{name: "ST_AsEWKT", nArgs: 1, deterministic: true, fn: stAsEWKT},
		{name: "ST_AsText", nArgs: 1, deterministic: true, fn: stAsText},
		{name: "ST_SRID", nArgs: 1, deterministic: true, fn: stSRID},
		{name: "ST_GeometryType", nArgs: 1, deterministic: true, fn: stGeometryType},
		{name: "ST_CoordDim", nArgs: 1, deterministic: true, fn: stCoordDim},
		{name: "ST_Is3D", nArgs: 1, deterministic: true, fn: stIs3D},
		{name: "ST_X", nArgs: 1, deterministic: true, fn: stX},
		{name: "ST_Y", nArgs: 1, deterministic: true, fn: stY},
		{name: "ST_Z", nArgs: 1, deterministic: true, fn: stZ},
	}
	return registerScalars(reg, fns)
}

func stAsEWKB(args []interface{}) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	return g.AsEWKB()
}

func stAsBinary(args []interface{}) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	return g.AsBinary()
}

func stAsEWKT(args []interface{}) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	return g.AsEWKT()
}

func stAsText(args []interface{}) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	return g.AsText()
}

func stSRID(args []interface{}) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	srid := g.SRID()
	if srid == geopb.UnknownSRID {
		return int64(0), nil
	}
	return int64(srid), nil
}

func stGeometryType(args []interface{}) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	name, ok := geometryTypeNames[g.ShapeType()]
	if !ok {
		return nil, errors.Newf("ST_GeometryType: unrecognized shape %v", g.ShapeType())
	}
	return name, nil
}

func stCoordDim(args []interface{}) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	dim, err := g.Dimension()
	if err != nil {
		return nil, errors.Wrap(err, "ST_CoordDim")
	}
	return int64(dim.CoordDimension()), nil
}

func stIs3D(args []interface{}) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	dim, err := g.Dimension()
	if err != nil {
		return nil, errors.Wrap(err, "ST_Is3D")
	}
	return dim.HasZ(), nil
}

func stX(args []interface{}) (interface{}, error) { return coordOrdinate(args, 0) }
func stY(args []interface{}) (interface{}, error) { return coordOrdinate(args, 1) }
func stZ(args []interface{}) (interface{}, error) { return coordOrdinate(args, 2) }

// coordOrdinate returns the i-th ordinate of a Point geometry, or an
// error for any other shape, backing ST_X/ST_Y/ST_Z.
func coordOrdinate(args []interface{}, i int) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	if g.ShapeType() != geopb.Point {
		return nil, errors.Newf("ST_X/ST_Y/ST_Z: expected a Point, got %s", g.ShapeType())
	}
	t, err := g.AsGeomT()
	if err != nil {
		return nil, err
	}
	coords := t.FlatCoords()
	if len(coords) <= i {
		return nil, errors.Newf("ST_X/ST_Y/ST_Z: geometry has no ordinate %d", i)
	}
	return coords[i], nil
}
