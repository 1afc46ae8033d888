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
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAsTextRoundTrip(t *testing.T) {
	db := openTestDB(t)
	var text string
	err := db.QueryRow(`SELECT ST_AsText(ST_GeomFromText('POINT(1 2)'))`).Scan(&text)
	require.NoError(t, err)
	require.Equal(t, "POINT(1 2)", text)
}

func TestMakePointAndAccessors(t *testing.T) {
	db := openTestDB(t)
	var x, y float64
	err := db.QueryRow(`SELECT ST_X(ST_MakePoint(3, 4)), ST_Y(ST_MakePoint(3, 4))`).Scan(&x, &y)
	require.NoError(t, err)
	require.Equal(t, 3.0, x)
	require.Equal(t, 4.0, y)
}

func TestAreaOfSquare(t *testing.T) {
	db := openTestDB(t)
	var area float64
	err := db.QueryRow(`SELECT ST_Area(ST_GeomFromText('POLYGON((0 0,10 0,10 10,0 10,0 0))'))`).Scan(&area)
	require.NoError(t, err)
	require.InDelta(t, 100, area, 1e-9)
}

func TestIntersectsTouchingPolygons(t *testing.T) {
	db := openTestDB(t)
	var ok bool
	err := db.QueryRow(`SELECT ST_Intersects(
		ST_GeomFromText('POLYGON((0 0,10 0,10 10,0 10,0 0))'),
		ST_GeomFromText('POLYGON((10 0,20 0,20 10,10 10,10 0))'))`).Scan(&ok)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestGeometryTypeAndSRID(t *testing.T) {
	db := openTestDB(t)
	var typ string
	var srid int
	err := db.QueryRow(`SELECT ST_GeometryType(g), ST_SRID(g) FROM (
		SELECT ST_GeomFromText('LINESTRING(0 0, 1 1)', 4326) AS g)`).Scan(&typ, &srid)
	require.NoError(t, err)
	require.Equal(t, "ST_LineString", typ)
	require.Equal(t, 4326, srid)
}

func TestNullGeometryPropagatesAsNull(t *testing.T) {
	db := openTestDB(t)
	var text sql.NullString
	err := db.QueryRow(`SELECT ST_AsText(NULL)`).Scan(&text)
	require.NoError(t, err)
	require.False(t, text.Valid)
}

func TestCollectAggregate(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`CREATE TABLE points (g BLOB)`)
	require.NoError(t, err)
	for _, wkt := range []string{"POINT(0 0)", "POINT(1 1)", "POINT(2 2)"} {
		_, err := db.Exec(`INSERT INTO points (g) VALUES (ST_GeomFromText(?))`, wkt)
		require.NoError(t, err)
	}
	var typ string
	err = db.QueryRow(`SELECT ST_GeometryType(ST_Collect(g)) FROM points`).Scan(&typ)
	require.NoError(t, err)
	require.Equal(t, "ST_MultiPoint", typ)
}

func TestIsValidRejectsSelfIntersectingRing(t *testing.T) {
	db := openTestDB(t)
	var ok bool
	err := db.QueryRow(`SELECT ST_IsValid(ST_GeomFromText('POLYGON((0 0,10 10,10 0,0 10,0 0))'))`).Scan(&ok)
	require.NoError(t, err)
	require.False(t, ok)
}
