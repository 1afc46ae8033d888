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

// registerRelationFunctions registers ST_Contains, ST_Distance,
// ST_Intersects, and ST_Within.
func registerRelationFunctions(reg functionRegisterer) error {
	fns := []scalarFunc{
		{name: "ST_Contains", nArgs: 2, deterministic: true, fn: stContains},
		{name: "ST_Distance", nArgs: 2, deterministic: true, fn: stDistance},
		{name: "ST_Intersects", nArgs: 2, deterministic: true, fn: stIntersects},
		{name: "ST_Within", nArgs: 2, deterministic: true, fn: stWithin},
	}
	return registerScalars(reg, fns)
}

func stContains(args []interface{}) (interface{}, error) {
	a, b, err := twoGeometries(args)
	if err != nil {
		return nil, err
	}
	ok, err := geomfn.Contains(a, b)
	if err != nil {
		return nil, errors.Wrap(err, "ST_Contains")
	}
	return ok, nil
}

func stDistance(args []interface{}) (interface{}, error) {
	a, b, err := twoGeometries(args)
	if err != nil {
		return nil, err
	}
	d, err := geomfn.Distance(a, b)
	if err != nil {
		return nil, errors.Wrap(err, "ST_Distance")
	}
	return d, nil
}

func stIntersects(args []interface{}) (interface{}, error) {
	a, b, err := twoGeometries(args)
	if err != nil {
		return nil, err
	}
	ok, err := geomfn.Intersects(a, b)
	if err != nil {
		return nil, errors.Wrap(err, "ST_Intersects")
	}
	return ok, nil
}

func stWithin(args []interface{}) (interface{}, error) {
	a, b, err := twoGeometries(args)
	if err != nil {
		return nil, err
	}
	ok, err := geomfn.Within(a, b)
	if err != nil {
		return nil, errors.Wrap(err, "ST_Within")
	}
	return ok, nil
}
