// Copyright 2025 The SqliteGIS Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package extension implements the Function Surface (F) of spec.md §4.4:
// the catalog of ST_-prefixed scalar and aggregate SQL functions and their
// registration against a SQLite connection.
//
// The grouping below — one file per registration group — mirrors the
// original sqlitegis_extension.cpp's register_constructor_functions,
// register_accessor_functions, register_measure_functions,
// register_relation_functions, register_operation_functions,
// register_utility_functions, register_bbox_functions,
// register_aggregate_functions, and register_transform_functions.
package extension

import (
	"github.com/cockroachdb/errors"
	"github.com/sqlitegis/sqlitegis/pkg/geo"
)

// argGeometry parses a SQL argument expected to hold a geometry. Callers
// that receive it from a column store it as text (EWKT) or blob (EWKB);
// both are accepted transparently, matching the original extension's
// GeometryWrapper::from_sql_value dispatch on sqlite3_value_type.
func argGeometry(v interface{}) (geo.Geometry, error) {
	switch v := v.(type) {
	case string:
		return geo.ParseEWKT(v)
	case []byte:
		return geo.ParseEWKB(v)
	case nil:
		return geo.Geometry{}, errNullGeometry
	default:
		return geo.Geometry{}, errors.Newf("sqlitegis: unsupported geometry argument type %T", v)
	}
}

// errNullGeometry is returned by argGeometry for a SQL NULL. Scalar
// function wrappers translate it into a NULL result rather than a SQL
// error, matching SQLite's usual NULL-in/NULL-out convention.
var errNullGeometry = errors.New("sqlitegis: NULL geometry argument")

// isNullGeometryErr reports whether err is (or wraps) errNullGeometry.
func isNullGeometryErr(err error) bool {
	return errors.Is(err, errNullGeometry)
}

// asFloat coerces a SQL argument (SQLite has no fixed numeric type; the
// driver may hand back float64 or int64 for the same column depending on
// how a literal was written) to float64.
func asFloat(v interface{}) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	default:
		return 0, errors.Newf("expected a number, got %T", v)
	}
}

// asInt coerces a SQL argument to int, accepting the same numeric
// variants asFloat does.
func asInt(v interface{}) (int, error) {
	switch v := v.(type) {
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, errors.Newf("expected a number, got %T", v)
	}
}

// twoGeometries parses the first two SQL arguments as geometries, the
// shape every binary relation and set-operation function shares.
func twoGeometries(args []interface{}) (geo.Geometry, geo.Geometry, error) {
	a, err := argGeometry(args[0])
	if err != nil {
		return geo.Geometry{}, geo.Geometry{}, err
	}
	b, err := argGeometry(args[1])
	if err != nil {
		return geo.Geometry{}, geo.Geometry{}, err
	}
	return a, b, nil
}
