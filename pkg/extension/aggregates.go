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

// registerAggregateFunctions registers ST_Collect, ST_ConvexHull_Agg,
// ST_Extent_Agg, and ST_Union as SQL aggregates, matching the original's
// register_aggregate_functions.
func registerAggregateFunctions(reg functionRegisterer) error {
	fns := []aggregateFunc{
		{name: "ST_Collect", newAg: func() *collectAgg { return &collectAgg{} }},
		{name: "ST_ConvexHull_Agg", newAg: func() *convexHullAgg { return &convexHullAgg{} }},
		{name: "ST_Extent_Agg", newAg: func() *extentAgg { return &extentAgg{} }},
		{name: "ST_Union", newAg: func() *unionAgg { return &unionAgg{} }},
	}
	return registerAggregates(reg, fns)
}

// collectAgg backs ST_Collect: gather every row's geometry, then reduce
// with geomfn.CollectAgg at finalize.
type collectAgg struct{ geomAccumulator }

func (a *collectAgg) Step(v interface{}) { a.step(v) }

func (a *collectAgg) Done() (interface{}, error) {
	if a.err != nil {
		return nil, a.err
	}
	if len(a.rows) == 0 {
		return nil, nil
	}
	g, err := geomfn.CollectAgg(a.rows)
	if err != nil {
		return nil, errors.Wrap(err, "ST_Collect")
	}
	return g.AsEWKB()
}

// convexHullAgg backs ST_ConvexHull_Agg.
type convexHullAgg struct{ geomAccumulator }

func (a *convexHullAgg) Step(v interface{}) { a.step(v) }

func (a *convexHullAgg) Done() (interface{}, error) {
	if a.err != nil {
		return nil, a.err
	}
	if len(a.rows) == 0 {
		return nil, nil
	}
	g, err := geomfn.ConvexHullAgg(a.rows)
	if err != nil {
		return nil, errors.Wrap(err, "ST_ConvexHull_Agg")
	}
	return g.AsEWKB()
}

// extentAgg backs ST_Extent_Agg, folding every row's bounding box into
// one, matching PostGIS's ST_Extent returning a box rather than a
// geometry — here rendered as the equivalent ST_Envelope polygon.
type extentAgg struct{ geomAccumulator }

func (a *extentAgg) Step(v interface{}) { a.step(v) }

func (a *extentAgg) Done() (interface{}, error) {
	if a.err != nil {
		return nil, a.err
	}
	if len(a.rows) == 0 {
		return nil, nil
	}
	acc := a.rows[0]
	for _, g := range a.rows[1:] {
		var err error
		acc, err = geomfn.Collect(acc, g)
		if err != nil {
			return nil, errors.Wrap(err, "ST_Extent_Agg")
		}
	}
	env, err := geomfn.Envelope(acc)
	if err != nil {
		return nil, errors.Wrap(err, "ST_Extent_Agg")
	}
	return env.AsEWKB()
}

// unionAgg backs ST_Union, which is registered only as an aggregate; no
// two-argument scalar form of ST_Union is registered.
type unionAgg struct{ geomAccumulator }

func (a *unionAgg) Step(v interface{}) { a.step(v) }

func (a *unionAgg) Done() (interface{}, error) {
	if a.err != nil {
		return nil, a.err
	}
	if len(a.rows) == 0 {
		return nil, nil
	}
	g, err := geomfn.UnionAgg(a.rows)
	if err != nil {
		return nil, errors.Wrap(err, "ST_Union")
	}
	return g.AsEWKB()
}
