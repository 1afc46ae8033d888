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
	"github.com/sqlitegis/sqlitegis/pkg/geo/geomfn"
)

// registerBBoxFunctions registers ST_Envelope and the bounding-box
// extrema accessors: ST_XMin, ST_XMax, ST_YMin, ST_YMax, ST_ZMin, ST_ZMax.
// ST_Extent_Agg, the bounding-box aggregate, lives in aggregates.go.
func registerBBoxFunctions(reg functionRegisterer) error {
	fns := []scalarFunc{
		{name: "ST_Envelope", nArgs: 1, deterministic: true, fn: stEnvelope},
		{name: "ST_XMin", nArgs: 1, deterministic: true, fn: stXMin},
		{name: "ST_XMax", nArgs: 1, deterministic: true, fn: stXMax},
		{name: "ST_YMin", nArgs: 1, deterministic: true, fn: stYMin},
		{name: "ST_YMax", nArgs: 1, deterministic: true, fn: stYMax},
		{name: "ST_ZMin", nArgs: 1, deterministic: true, fn: stZMin},
		{name: "ST_ZMax", nArgs: 1, deterministic: true, fn: stZMax},
	}
	return registerScalars(reg, fns)
}

func stEnvelope(args []interface{}) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	out, err := geomfn.Envelope(g)
	if err != nil {
		return nil, errors.Wrap(err, "ST_Envelope")
	}
	return out.AsEWKB()
}

func stXMin(args []interface{}) (interface{}, error) { return bboxExtremum(args, geomfn.XMin, "ST_XMin") }
func stXMax(args []interface{}) (interface{}, error) { return bboxExtremum(args, geomfn.XMax, "ST_XMax") }
func stYMin(args []interface{}) (interface{}, error) { return bboxExtremum(args, geomfn.YMin, "ST_YMin") }
func stYMax(args []interface{}) (interface{}, error) { return bboxExtremum(args, geomfn.YMax, "ST_YMax") }
func stZMin(args []interface{}) (interface{}, error) { return bboxExtremum(args, geomfn.ZMin, "ST_ZMin") }
func stZMax(args []interface{}) (interface{}, error) { return bboxExtremum(args, geomfn.ZMax, "ST_ZMax") }

func bboxExtremum(args []interface{}, extremum func(g geo.Geometry) (float64, error), op string) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	v, err := extremum(g)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	return v, nil
}
