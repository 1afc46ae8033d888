// Copyright 2025 The SqliteGIS Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package driver implements the vector driver of spec.md §6.5: it opens
// a sqlitegis-extended database and exposes each table carrying a
// recognized geometry column as a GDAL/OGR feature layer, in the spirit
// of original_source/Driver's OGRSqliteGISDataSource/OGRSqliteGISLayer.
//
// A GDAL format driver is a C plugin loaded by GDAL's own driver
// registry; a Go binding cannot register one (github.com/lukeroth/gdal
// only lets a Go program *use* drivers GDAL already has). This package is
// therefore the Go-idiomatic transposition: a DataSource/Layer pair with
// the original's method surface, backed by database/sql, whose
// ExportLayer converts features through github.com/lukeroth/gdal's own
// Geometry/Feature/Layer types so any GDAL-supported format (Shapefile,
// GeoJSON, ...) can consume them, the same interchange ogr2ogr would give
// the original driver.
package driver

import (
	"database/sql"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sqlitegis/sqlitegis/pkg/extension"
)

// geometryColumnNames are the column names DiscoverLayers recognizes as
// holding geometry, matching the original driver's exact candidate list.
var geometryColumnNames = map[string]bool{
	"geom":         true,
	"geometry":     true,
	"the_geom":     true,
	"wkb_geometry": true,
}

// DataSource is an open sqlitegis database, discovered into zero or more
// geometry-bearing Layers on Open, mirroring
// OGRSqliteGISDataSource::Open/DiscoverLayers.
type DataSource struct {
	db     *sql.DB
	update bool
	layers []*Layer
}

// Open opens the sqlitegis database at path (the Go analogue of
// OGRSqliteGISDataSource::OpenDatabase + LoadExtension, since extension.Open
// already attaches the ST_ catalog via ConnectHook) and discovers its
// geometry-bearing tables as Layers.
func Open(path string, update bool) (*DataSource, error) {
	db, err := extension.Open(path)
	if err != nil {
		return nil, err
	}
	ds := &DataSource{db: db, update: update}
	if err := ds.discoverLayers(); err != nil {
		db.Close()
		return nil, err
	}
	return ds, nil
}

// Close releases the underlying database connection.
func (ds *DataSource) Close() error {
	return ds.db.Close()
}

// discoverLayers lists every non-system table and, for each, looks for a
// BLOB column named like a conventional geometry column, matching
// OGRSqliteGISDataSource::DiscoverLayers exactly (same candidate names,
// same "first BLOB column that matches wins" rule).
func (ds *DataSource) discoverLayers() error {
	rows, err := ds.db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return errors.Wrap(err, "driver: listing tables")
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return errors.Wrap(err, "driver: scanning table name")
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, table := range tables {
		geomCol, err := ds.findGeometryColumn(table)
		if err != nil {
			return err
		}
		if geomCol == "" {
			continue
		}
		layer, err := newLayer(ds, table, geomCol)
		if err != nil {
			return err
		}
		ds.layers = append(ds.layers, layer)
	}
	return nil
}

func (ds *DataSource) findGeometryColumn(table string) (string, error) {
	rows, err := ds.db.Query(`PRAGMA table_info(` + quoteIdent(table) + `)`)
	if err != nil {
		return "", errors.Wrapf(err, "driver: reading schema of %q", table)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			dfltValue  sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &primaryKey); err != nil {
			return "", errors.Wrap(err, "driver: scanning column info")
		}
		if strings.EqualFold(typ, "BLOB") && geometryColumnNames[strings.ToLower(name)] {
			return name, nil
		}
	}
	return "", rows.Err()
}

// LayerCount returns the number of discovered layers.
func (ds *DataSource) LayerCount() int { return len(ds.layers) }

// Layer returns the layer at index i, or nil if out of range.
func (ds *DataSource) Layer(i int) *Layer {
	if i < 0 || i >= len(ds.layers) {
		return nil
	}
	return ds.layers[i]
}

// LayerByName returns the layer backed by the named table, or nil.
func (ds *DataSource) LayerByName(name string) *Layer {
	for _, l := range ds.layers {
		if strings.EqualFold(l.tableName, name) {
			return l
		}
	}
	return nil
}

// CreateLayer creates a new table named name with a geometry column
// (default "geom", overridable via geomColumn) and registers it as a new
// Layer, matching OGRSqliteGISDataSource::ICreateLayer. It fails if the
// DataSource was not opened for update.
func (ds *DataSource) CreateLayer(name, geomColumn string, srid int) (*Layer, error) {
	if !ds.update {
		return nil, errors.New("driver: cannot create a layer on a read-only data source")
	}
	if geomColumn == "" {
		geomColumn = "geom"
	}
	stmt := "CREATE TABLE " + quoteIdent(name) + " (fid INTEGER PRIMARY KEY AUTOINCREMENT, " +
		quoteIdent(geomColumn) + " BLOB)"
	if _, err := ds.db.Exec(stmt); err != nil {
		return nil, errors.Wrapf(err, "driver: creating table %q", name)
	}
	layer, err := newLayer(ds, name, geomColumn)
	if err != nil {
		return nil, err
	}
	layer.srid = srid
	ds.layers = append(ds.layers, layer)
	return layer, nil
}

// ExecuteSQL runs an arbitrary statement against the underlying database,
// matching OGRSqliteGISDataSource::ExecuteSQL.
func (ds *DataSource) ExecuteSQL(stmt string, args ...interface{}) (sql.Result, error) {
	res, err := ds.db.Exec(stmt, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "driver: executing %q", stmt)
	}
	return res, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
