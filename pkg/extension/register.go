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
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-sqlite3"
)

// driverName is the name the extension's driver is registered under.
// Dialing sql.Open(driverName, dsn) yields a *sql.DB whose connections
// all carry the ST_ catalog, the Go analogue of loading sqlitegis.so via
// SQLite's ".load" or sqlite3_load_extension.
const driverName = "sqlitegis"

// scalarFunc is one entry of the catalog: a name, its arity, whether it
// is pure (safe to mark deterministic, so SQLite can fold it in query
// planning), and the Go function implementing it. Every entry is
// registered once, as a variadic function through wrapScalar, so SQLite
// does not check the arity; nArgs appears only in registration error
// messages. ST_GeomFromText (nArgs -1) checks for 1 or 2 arguments itself.
type scalarFunc struct {
	name          string
	nArgs         int
	deterministic bool
	fn            func(args []interface{}) (interface{}, error)
}

// aggregateFunc is one ST_*_Agg or aggregate-form catalog entry: a name
// and a constructor function for a fresh per-group accumulator. sqlite3
// calls newAg once per GROUP BY group to obtain a pointer to a struct
// exposing a Step(args...) method (called once per row) and a Done()
// (result, error) method (called once at the end) — the shape
// mattn/go-sqlite3's RegisterAggregator expects via reflection.
type aggregateFunc struct {
	name  string
	newAg interface{}
}

// functionRegisterer is the subset of *sqlite3.SQLiteConn each
// register_*_functions file needs: RegisterFunc and RegisterAggregator,
// matching the original extension's sqlite3_create_function_v2 calls one
// for one.
type functionRegisterer interface {
	RegisterFunc(name string, impl interface{}, pure bool) error
	RegisterAggregator(name string, impl interface{}, pure bool) error
}

func registerScalars(reg functionRegisterer, fns []scalarFunc) error {
	for _, f := range fns {
		wrapped := wrapScalar(f.fn)
		if err := reg.RegisterFunc(f.name, wrapped, f.deterministic); err != nil {
			return errors.Wrapf(err, "sqlitegis: registering %s/%d", f.name, f.nArgs)
		}
	}
	return nil
}

func registerAggregates(reg functionRegisterer, fns []aggregateFunc) error {
	for _, f := range fns {
		if err := reg.RegisterAggregator(f.name, f.newAg, true); err != nil {
			return errors.Wrapf(err, "sqlitegis: registering aggregate %s", f.name)
		}
	}
	return nil
}

// wrapScalar adapts a slice-argument Go function to a variadic
// func(...interface{}) (interface{}, error), which mattn/go-sqlite3's
// RegisterFunc supports directly via reflection. NULL-geometry arguments translate to
// a NULL result instead of surfacing errNullGeometry as a SQL error.
func wrapScalar(fn func(args []interface{}) (interface{}, error)) func(args ...interface{}) (interface{}, error) {
	return func(args ...interface{}) (interface{}, error) {
		out, err := fn(args)
		if err != nil {
			if isNullGeometryErr(err) {
				return nil, nil
			}
			return nil, err
		}
		return out, nil
	}
}

// init registers the sqlitegis driver once per process, attaching every
// catalog group to each new connection via ConnectHook. This is the Go
// analogue of sqlite3_sqlitegis_init being invoked by SQLite's extension
// loader on ".load sqlitegis": here, every *sql.DB opened against
// "sqlitegis" gets the same catalog on every new connection it pools.
func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return RegisterAll(conn)
		},
	})
}

// RegisterAll attaches the full ST_ catalog to conn, in the same group
// order the original extension's sqlite3_sqlitegis_init uses:
// constructors, accessors, measures, relations, operations, utilities,
// bounding box, aggregates, then transform.
func RegisterAll(conn *sqlite3.SQLiteConn) error {
	groups := []func(functionRegisterer) error{
		registerConstructorFunctions,
		registerAccessorFunctions,
		registerMeasureFunctions,
		registerRelationFunctions,
		registerOperationFunctions,
		registerUtilityFunctions,
		registerBBoxFunctions,
		registerAggregateFunctions,
		registerTransformFunctions,
	}
	for _, register := range groups {
		if err := register(conn); err != nil {
			return err
		}
	}
	return nil
}

// Open is a convenience wrapper around sql.Open(driverName, dsn): the
// ordinary way to get a *sql.DB with the ST_ catalog already attached.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "sqlitegis: opening database")
	}
	return db, nil
}
