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
	"github.com/sqlitegis/sqlitegis/pkg/geo/geomfn"
)

// registerMeasureFunctions registers ST_Area, ST_Length, and ST_Perimeter.
func registerMeasureFunctions(reg functionRegisterer) error {
	fns := []scalarFunc{
		{name: "ST_Area", nArgs: 1, deterministic: true, fn: stArea},
		{name: "ST_Length", nArgs: 1, deterministic: true, fn: stLength},
		{name: "ST_Perimeter", nArgs: 1, deterministic: true, fn: stPerimeter},
	}
	return registerScalars(reg, fns)
}

func stArea(args []interface{}) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	a, err := geomfn.Area(g)
	if err != nil {
		return nil, errors.Wrap(err, "ST_Area")
	}
	return a, nil
}

func stLength(args []interface{}) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	l, err := geomfn.Length(g)
	if err != nil {
		return nil, errors.Wrap(err, "ST_Length")
	}
	return l, nil
}

func stPerimeter(args []interface{}) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	p, err := geomfn.Perimeter(g)
	if err != nil {
		return nil, errors.Wrap(err, "ST_Perimeter")
	}
	return p, nil
}
