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
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/sqlitegis/sqlitegis/pkg/geo/geopb"
	"github.com/sqlitegis/sqlitegis/pkg/geo/geoproj"
)

// defaultCRS is the process-lifetime Coordinate Reference Service backing
// ST_Transform. One PROJ context and pipeline cache is shared across every
// connection the driver opens, matching the original extension's single
// PROJ_CONTEXT per process. It is built lazily, so no PROJ context is
// created unless ST_Transform is actually called.
var (
	defaultCRSOnce sync.Once
	defaultCRS     *geoproj.Service
	defaultCRSErr  error
)

func crsService() (*geoproj.Service, error) {
	defaultCRSOnce.Do(func() {
		defaultCRS, defaultCRSErr = geoproj.NewService(nil)
	})
	return defaultCRS, defaultCRSErr
}

// registerTransformFunctions registers ST_Transform.
func registerTransformFunctions(reg functionRegisterer) error {
	fns := []scalarFunc{
		{name: "ST_Transform", nArgs: 2, deterministic: true, fn: stTransform},
	}
	return registerScalars(reg, fns)
}

func stTransform(args []interface{}) (interface{}, error) {
	g, err := argGeometry(args[0])
	if err != nil {
		return nil, err
	}
	srid, err := asInt(args[1])
	if err != nil {
		return nil, errors.Wrap(err, "ST_Transform")
	}
	svc, err := crsService()
	if err != nil {
		return nil, errors.Wrap(err, "ST_Transform: initializing coordinate reference service")
	}
	out, err := svc.Transform(g, geopb.SRID(srid))
	if err != nil {
		return nil, errors.Wrap(err, "ST_Transform")
	}
	return out.AsEWKB()
}
