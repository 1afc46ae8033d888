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
	"github.com/sqlitegis/sqlitegis/pkg/geo"
	"github.com/sqlitegis/sqlitegis/pkg/geo/geopb"
	"github.com/twpayne/go-geom"
)

// registerConstructorFunctions registers the functions that build a
// geometry from text, binary, or raw coordinates: ST_GeomFromEWKT,
// ST_GeomFromText, ST_GeomFromEWKB, ST_MakePoint, ST_MakePointZ, and
// ST_SetSRID (ST_SetSRID is also exposed here, matching the original's
// register_constructor_functions grouping, even though geo.Geometry's
// SetSRID lives on the value type rather than in package geomfn).
func registerConstructorFunctions(reg functionRegisterer) error {
	fns := []scalarFunc{
		{name: "ST_GeomFromEWKT", nArgs: 1, deterministic: true, fn: stGeomFromEWKT},
		{name: "ST_GeomFromText", nArgs: -1, deterministic: true, fn: stGeomFromText},
		{name: "ST_GeomFromEWKB", nArgs: 1, deterministic: true, fn: stGeomFromEWKB},
		{name: "ST_MakePoint", nArgs: 2, deterministic: true, fn: stMakePoint},
		{name: "ST_MakePointZ", nArgs: 3, deterministic: true, fn: stMakePointZ},
		{name: "ST_SetSRID", nArgs: 2, deterministic: true, fn: stSetSRID},
	}
	return registerScalars(reg, fns)
}

func stGeomFromEWKT(args []interface{}) (interface{}, error) {
	s, ok := args[0].(string)
	if !ok {
		if args[0] == nil {
			return nil, nil
		}
		return nil, errors.Newf("ST_GeomFromEWKT: expected text argument, got %T", args[0])
	}
	g, err := geo.ParseEWKT(s)
	if err != nil {
		return nil, err
	}
	return g.AsEWKB()
}

// stGeomFromText backs ST_GeomFromText, overloaded like PostGIS's own
// version: a single WKT argument, or WKT plus an explicit SRID.
func stGeomFromText(args []interface{}) (interface{}, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, errors.Newf("ST_GeomFromText: expected 1 or 2 arguments, got %d", len(args))
	}
	s, ok := args[0].(string)
	if !ok {
		if args[0] == nil {
			return nil, nil
		}
		return nil, errors.Newf("ST_GeomFromText: expected text argument, got %T", args[0])
	}
	g, err := geo.ParseEWKT(s)
	if err != nil {
		return nil, err
	}
	if len(args) == 2 {
		srid, err := asInt(args[1])
		if err != nil {
			return nil, errors.Wrap(err, "ST_GeomFromText")
		}
		g, err = g.SetSRID(geopb.SRID(srid))
		if err != nil {
			return nil, err
		}
	}
	return g.AsEWKB()
}

func stGeomFromEWKB(args []interface{}) (interface{}, error) {
	b, ok := args[0].([]byte)
	if !ok {
		if args[0] == nil {
			return nil, nil
		}
		return nil, errors.Newf("ST_GeomFromEWKB: expected blob argument, got %T", args[0])
	}
	g, err := geo.ParseEWKB(b)
	if err != nil {
		return nil, err
	}
	return g.AsEWKB()
}

func stMakePoint(args []interface{}) (interface{}, error) {
	x, err := asFloat(args[0])
	if err != nil {
		return nil, errors.Wrap(err, "ST_MakePoint")
	}
	y, err := asFloat(args[1])
	if err != nil {
		return nil, errors.Wrap(err, "ST_MakePoint")
	}
	pt := geom.NewPointFlat(geom.XY, []float64{x, y})
	g, err := geo.NewGeometryFromGeomT(pt)
	if err != nil {
		return nil, err
	}
	return g.AsEWKB()
}

func stMakePointZ(args []interface{}) (interface{}, error) {
	x, err := asFloat(args[0])
	if err != nil {
		return nil, errors.Wrap(err, "ST_MakePointZ")
	}
	y, err := asFloat(args[1])
	if err != nil {
		return nil, errors.Wrap(err, "ST_MakePointZ")
	}
	z, err := asFloat(args[2])
	if err != nil {
		return nil, errors.Wrap(err, "ST_MakePointZ")
	}
	pt := geom.NewPointFlat(geom.XYZ, []float64{x, y, z})
	g, err := geo.NewGeometryFromGeomT(pt)
	if err != nil {
		return nil, err
	}
	return g.AsEWKB()
}

func stSetSRID(args []interface{}) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		if isNullGeometryErr(err) {
			return nil, nil
		}
		return nil, err
	}
	srid, err := asInt(args[1])
	if err != nil {
		return nil, errors.Wrap(err, "ST_SetSRID")
	}
	out, err := g.SetSRID(geopb.SRID(srid))
	if err != nil {
		return nil, err
	}
	return out.AsEWKB()
}
