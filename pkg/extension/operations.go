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

// registerOperationFunctions registers the functions that derive a new
// geometry from an existing one: ST_Buffer, ST_Centroid, ST_Force2D,
// ST_Force3D, and ST_ConvexHull (single-row form; the aggregate form,
// ST_ConvexHull_Agg, lives in aggregates.go alongside the other Agg
// functions, matching the original's grouping).
func registerOperationFunctions(reg functionRegisterer) error {
	fns := []scalarFunc{
		{name: "ST_Buffer", nArgs: 2, deterministic: true, fn: stBuffer},
		{name: "ST_Centroid", nArgs: 1, deterministic: true, fn: stCentroid},
		{name: "ST_Force2D", nArgs: 1, deterministic: true, fn: stForce2D},
		{name: "ST_Force3D", nArgs: 1, deterministic: true, fn: stForce3D},
		{name: "ST_ConvexHull", nArgs: 1, deterministic: true, fn: stConvexHull},
	}
	return registerScalars(reg, fns)
}

func stBuffer(args []interface{}) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	dist, err := asFloat(args[1])
	if err != nil {
		return nil, errors.Wrap(err, "ST_Buffer")
	}
	out, err := geomfn.Buffer(g, dist)
	if err != nil {
		return nil, errors.Wrap(err, "ST_Buffer")
	}
	return out.AsEWKB()
}

func stCentroid(args []interface{}) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	out, err := geomfn.Centroid(g)
	if err != nil {
		return nil, errors.Wrap(err, "ST_Centroid")
	}
	return out.AsEWKB()
}

func stForce2D(args []interface{}) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	out, err := geomfn.Force2D(g)
	if err != nil {
		return nil, errors.Wrap(err, "ST_Force2D")
	}
	return out.AsEWKB()
}

func stForce3D(args []interface{}) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	out, err := geomfn.Force3D(g)
	if err != nil {
		return nil, errors.Wrap(err, "ST_Force3D")
	}
	return out.AsEWKB()
}

func stConvexHull(args []interface{}) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	out, err := geomfn.ConvexHull(g)
	if err != nil {
		return nil, errors.Wrap(err, "ST_ConvexHull")
	}
	return out.AsEWKB()
}
