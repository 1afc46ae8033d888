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
	"github.com/sqlitegis/sqlitegis/pkg/geo"
)

// geomAccumulator is the shared scratch state behind every ST_*_Agg
// function in aggregates.go: a running slice of the rows seen so far,
// plus the first error encountered (sticky, like the original's
// CollectContext::has_error). mattn/go-sqlite3 allocates one of these per
// GROUP BY group by calling its zero-value constructor, calls Step once
// per row, then Done once at the end.
type geomAccumulator struct {
	rows []geo.Geometry
	err  error
}

func (a *geomAccumulator) step(v interface{}) {
	if a.err != nil || v == nil {
		return
	}
	g, err := argGeometry(v)
	if err != nil {
		if isNullGeometryErr(err) {
			return
		}
		a.err = err
		return
	}
	a.rows = append(a.rows, g)
}
