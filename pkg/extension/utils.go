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

// registerUtilityFunctions registers ST_IsEmpty and ST_IsValid.
func registerUtilityFunctions(reg functionRegisterer) error {
	fns := []scalarFunc{
		{name: "ST_IsEmpty", nArgs: 1, deterministic: true, fn: stIsEmpty},
		{name: "ST_IsValid", nArgs: 1, deterministic: true, fn: stIsValid},
	}
	return registerScalars(reg, fns)
}

func stIsEmpty(args []interface{}) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	return g.Empty(), nil
}

func stIsValid(args []interface{}) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	ok, err := geomfn.IsValid(g)
	if err != nil {
		return nil, errors.Wrap(err, "ST_IsValid")
	}
	return ok, nil
}
