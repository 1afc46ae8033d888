// Copyright 2025 The SqliteGIS Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package driver

import (
	"database/sql"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sqlitegis/sqlitegis/pkg/geo"
	"github.com/sqlitegis/sqlitegis/pkg/geo/geomfn"
	"github.com/sqlitegis/sqlitegis/pkg/geo/geopb"
)

// FieldDefn describes one non-geometry, non-FID column of a Layer,
// matching the field OGRSqliteGISLayer::ReadSchema builds from
// PRAGMA table_info.
type FieldDefn struct {
	Name string
	Type FieldType
}

// FieldType is the OGR field type a SQLite column type maps to.
type FieldType int

const (
	FieldString FieldType = iota
	FieldInteger
	FieldReal
)

// Feature is one row of a Layer: its FID, its geometry (if the geometry
// column was non-NULL), and its attribute fields keyed by column name.
type Feature struct {
	FID      int64
	Geometry geo.Geometry
	HasGeom  bool
	Fields   map[string]interface{}
}

// Layer is a sqlitegis table exposed as a feature layer, matching
// OGRSqliteGISLayer: ReadSchema ran once at discovery, and ResetReading/
// GetNextFeature iterate a cursor over fid, the geometry column and the
// fields, lazily re-prepared on demand.
type Layer struct {
	ds         *DataSource
	tableName  string
	geomColumn string
	srid       int
	fields     []FieldDefn

	rows       *sql.Rows
	spatial    geo.Geometry
	hasSpatial bool
	attrWhere  string
}

func newLayer(ds *DataSource, table, geomColumn string) (*Layer, error) {
	l := &Layer{ds: ds, tableName: table, geomColumn: geomColumn, srid: -1}
	if err := l.readSchema(); err != nil {
		return nil, err
	}
	return l, nil
}

// readSchema populates fields with every column other than "fid" and the
// geometry column, mapping SQLite's declared column type to a FieldType,
// matching OGRSqliteGISLayer::ReadSchema's INTEGER/REAL/DOUBLE/TEXT switch.
func (l *Layer) readSchema() error {
	rows, err := l.ds.db.Query(`PRAGMA table_info(` + quoteIdent(l.tableName) + `)`)
	if err != nil {
		return errors.Wrapf(err, "driver: reading schema of %q", l.tableName)
	}
	defer rows.Close()

	l.fields = nil
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			dfltValue  sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &primaryKey); err != nil {
			return errors.Wrap(err, "driver: scanning column info")
		}
		if strings.EqualFold(name, "fid") || strings.EqualFold(name, l.geomColumn) {
			continue
		}
		l.fields = append(l.fields, FieldDefn{Name: name, Type: fieldTypeOf(typ)})
	}
	return rows.Err()
}

func fieldTypeOf(sqlType string) FieldType {
	switch {
	case strings.EqualFold(sqlType, "INTEGER"):
		return FieldInteger
	case strings.EqualFold(sqlType, "REAL"), strings.EqualFold(sqlType, "DOUBLE"):
		return FieldReal
	default:
		return FieldString
	}
}

// Name returns the layer's name (its backing table name).
func (l *Layer) Name() string { return l.tableName }

// Fields returns the layer's non-geometry field definitions.
func (l *Layer) Fields() []FieldDefn { return l.fields }

// SRID returns the layer's spatial reference identifier, or -1 if unset.
func (l *Layer) SRID() int { return l.srid }

// ResetReading ends any in-progress scan, matching
// OGRSqliteGISLayer::ResetReading.
func (l *Layer) ResetReading() {
	if l.rows != nil {
		l.rows.Close()
		l.rows = nil
	}
}

// SetSpatialFilter restricts GetNextFeature to rows whose geometry
// intersects filter when has is true. Pass has=false to clear the filter.
func (l *Layer) SetSpatialFilter(filter geo.Geometry, has bool) {
	l.spatial = filter
	l.hasSpatial = has
}

// SetAttributeFilter restricts GetNextFeature with a raw SQL boolean
// expression appended as a WHERE clause — simpler than OGR's
// SetAttributeFilter, which evaluates its own mini SQL-expression
// grammar against each feature, but equivalent for a layer already
// backed by a real SQL engine: the database does the filtering instead
// of this package re-implementing expression evaluation.
func (l *Layer) SetAttributeFilter(where string) {
	l.attrWhere = where
}

// GetNextFeature returns the next feature passing both filters, or nil
// at end of the scan, matching OGRSqliteGISLayer::GetNextFeature's
// filter-then-yield loop.
func (l *Layer) GetNextFeature() (*Feature, error) {
	if l.rows == nil {
		if err := l.prepare(); err != nil {
			return nil, err
		}
	}
	for l.rows.Next() {
		f, err := l.scanFeature()
		if err != nil {
			return nil, err
		}
		if l.passesSpatialFilter(f) {
			return f, nil
		}
	}
	return nil, l.rows.Err()
}

func (l *Layer) prepare() error {
	stmt := "SELECT fid, " + quoteIdent(l.geomColumn)
	for _, f := range l.fields {
		stmt += ", " + quoteIdent(f.Name)
	}
	stmt += " FROM " + quoteIdent(l.tableName)
	if l.attrWhere != "" {
		stmt += " WHERE " + l.attrWhere
	}
	rows, err := l.ds.db.Query(stmt)
	if err != nil {
		return errors.Wrapf(err, "driver: scanning layer %q", l.tableName)
	}
	l.rows = rows
	return nil
}

func (l *Layer) scanFeature() (*Feature, error) {
	dest := make([]interface{}, 2+len(l.fields))
	var fid int64
	var geomBytes []byte
	dest[0] = &fid
	dest[1] = &geomBytes
	raw := make([]interface{}, len(l.fields))
	for i := range l.fields {
		raw[i] = new(interface{})
		dest[2+i] = raw[i]
	}
	if err := l.rows.Scan(dest...); err != nil {
		return nil, errors.Wrap(err, "driver: scanning feature row")
	}

	f := &Feature{FID: fid, Fields: make(map[string]interface{}, len(l.fields))}
	if len(geomBytes) > 0 {
		g, err := geo.ParseEWKB(geomBytes)
		if err != nil {
			return nil, errors.Wrapf(err, "driver: parsing geometry in %q.%q", l.tableName, l.geomColumn)
		}
		f.Geometry = g
		f.HasGeom = true
	}
	for i, fd := range l.fields {
		f.Fields[fd.Name] = *(raw[i].(*interface{}))
	}
	return f, nil
}

// passesSpatialFilter tests the feature's geometry itself against the
// filter with geomfn.Intersects (not just its envelope): a feature
// survives if the two share a point, or if there is no filter at all. A
// feature with no geometry, or whose test returns an error, is rejected.
func (l *Layer) passesSpatialFilter(f *Feature) bool {
	if !l.hasSpatial {
		return true
	}
	if !f.HasGeom {
		return false
	}
	ok, err := geomfn.Intersects(l.spatial, f.Geometry)
	if err != nil {
		return false
	}
	return ok
}

// FeatureCount returns the number of rows in the layer. With no filter
// set it delegates to a fast SQL COUNT(*), matching
// OGRSqliteGISLayer::GetFeatureCount's fast path; with a filter set, it
// scans, matching the OGR base-class fallback the original also uses.
func (l *Layer) FeatureCount() (int64, error) {
	if !l.hasSpatial && l.attrWhere == "" {
		var n int64
		err := l.ds.db.QueryRow(`SELECT COUNT(*) FROM ` + quoteIdent(l.tableName)).Scan(&n)
		if err != nil {
			return 0, errors.Wrapf(err, "driver: counting %q", l.tableName)
		}
		return n, nil
	}
	l.ResetReading()
	defer l.ResetReading()
	var n int64
	for {
		f, err := l.GetNextFeature()
		if err != nil {
			return 0, err
		}
		if f == nil {
			break
		}
		n++
	}
	return n, nil
}

// GetExtent returns the bounding box of every geometry in the layer,
// matching OGRSqliteGISLayer::GetExtent (the original's non-fast path:
// it has no spatial index to consult, so it must scan).
func (l *Layer) GetExtent() (*geopb.BoundingBox, error) {
	l.ResetReading()
	defer l.ResetReading()

	var acc geo.Geometry
	have := false
	for {
		f, err := l.GetNextFeature()
		if err != nil {
			return nil, err
		}
		if f == nil {
			break
		}
		if !f.HasGeom {
			continue
		}
		if !have {
			acc = f.Geometry
			have = true
			continue
		}
		acc, err = geomfn.Collect(acc, f.Geometry)
		if err != nil {
			return nil, err
		}
	}
	if !have {
		return nil, errors.New("driver: layer has no geometries to extend")
	}
	box := acc.SpatialObject().BoundingBox
	if box == nil {
		return nil, geo.ErrEmptyGeometry
	}
	return box, nil
}

// CreateFeature inserts f as a new row, matching
// OGRSqliteGISLayer::ICreateFeature's build-INSERT-then-bind sequence.
// f.FID is overwritten with the table's assigned rowid on success.
func (l *Layer) CreateFeature(f *Feature) error {
	if !l.ds.update {
		return errors.New("driver: cannot create a feature on a read-only data source")
	}
	cols := []string{quoteIdent(l.geomColumn)}
	placeholders := []string{"?"}
	args := []interface{}{nil}
	if f.HasGeom {
		b, err := f.Geometry.AsEWKB()
		if err != nil {
			return errors.Wrap(err, "driver: encoding feature geometry")
		}
		args[0] = b
	}
	for _, fd := range l.fields {
		cols = append(cols, quoteIdent(fd.Name))
		placeholders = append(placeholders, "?")
		args = append(args, f.Fields[fd.Name])
	}
	stmt := "INSERT INTO " + quoteIdent(l.tableName) + " (" + strings.Join(cols, ", ") +
		") VALUES (" + strings.Join(placeholders, ", ") + ")"
	res, err := l.ds.db.Exec(stmt, args...)
	if err != nil {
		return errors.Wrapf(err, "driver: inserting feature into %q", l.tableName)
	}
	fid, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "driver: reading last insert rowid")
	}
	f.FID = fid
	return nil
}

// SetFeature overwrites the row with the given FID, matching
// OGRSqliteGISLayer::ISetFeature.
func (l *Layer) SetFeature(f *Feature) error {
	if !l.ds.update {
		return errors.New("driver: cannot update a feature on a read-only data source")
	}
	assignments := []string{quoteIdent(l.geomColumn) + " = ?"}
	args := []interface{}{nil}
	if f.HasGeom {
		b, err := f.Geometry.AsEWKB()
		if err != nil {
			return errors.Wrap(err, "driver: encoding feature geometry")
		}
		args[0] = b
	}
	for _, fd := range l.fields {
		assignments = append(assignments, quoteIdent(fd.Name)+" = ?")
		args = append(args, f.Fields[fd.Name])
	}
	args = append(args, f.FID)
	stmt := "UPDATE " + quoteIdent(l.tableName) + " SET " + strings.Join(assignments, ", ") + " WHERE fid = ?"
	if _, err := l.ds.db.Exec(stmt, args...); err != nil {
		return errors.Wrapf(err, "driver: updating feature %d in %q", f.FID, l.tableName)
	}
	return nil
}

// DeleteFeature removes the row with the given FID, matching
// OGRSqliteGISLayer::DeleteFeature.
func (l *Layer) DeleteFeature(fid int64) error {
	if !l.ds.update {
		return errors.New("driver: cannot delete a feature on a read-only data source")
	}
	_, err := l.ds.db.Exec("DELETE FROM "+quoteIdent(l.tableName)+" WHERE fid = ?", fid)
	if err != nil {
		return errors.Wrapf(err, "driver: deleting feature %d from %q", fid, l.tableName)
	}
	return nil
}
