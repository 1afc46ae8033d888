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
	"testing"

	"github.com/sqlitegis/sqlitegis/pkg/geo"
	"github.com/stretchr/testify/require"
)

func parseTestWKT(wkt string) (geo.Geometry, error) {
	return geo.ParseEWKT(wkt)
}

func openTestDataSource(t *testing.T) *DataSource {
	t.Helper()
	ds, err := Open(":memory:", true)
	require.NoError(t, err)
	t.Cleanup(func() { ds.Close() })
	return ds
}

func TestDiscoverLayersFindsGeometryColumn(t *testing.T) {
	ds := openTestDataSource(t)
	_, err := ds.ExecuteSQL(`CREATE TABLE cities (name TEXT, geom BLOB)`)
	require.NoError(t, err)

	require.NoError(t, ds.discoverLayers())
	require.Equal(t, 1, ds.LayerCount())

	layer := ds.LayerByName("cities")
	require.NotNil(t, layer)
	require.Equal(t, "geom", layer.geomColumn)
	require.Len(t, layer.Fields(), 1)
	require.Equal(t, "name", layer.Fields()[0].Name)
}

func TestDiscoverLayersIgnoresTablesWithoutGeometry(t *testing.T) {
	ds := openTestDataSource(t)
	_, err := ds.ExecuteSQL(`CREATE TABLE plain (id INTEGER)`)
	require.NoError(t, err)

	require.NoError(t, ds.discoverLayers())
	require.Equal(t, 0, ds.LayerCount())
}

func TestCreateFeatureAndReadBack(t *testing.T) {
	ds := openTestDataSource(t)
	layer, err := ds.CreateLayer("points", "geom", 4326)
	require.NoError(t, err)
	_, err = ds.ExecuteSQL(`ALTER TABLE points ADD COLUMN label TEXT`)
	require.NoError(t, err)
	require.NoError(t, layer.readSchema())

	g, err := parseTestWKT("POINT(1 2)")
	require.NoError(t, err)

	f := &Feature{Geometry: g, HasGeom: true, Fields: map[string]interface{}{"label": "a"}}
	require.NoError(t, layer.CreateFeature(f))
	require.NotZero(t, f.FID)

	got, err := layer.GetNextFeature()
	require.NoError(t, err)
	require.NotNil(t, got)
	require.True(t, got.HasGeom)
	require.Equal(t, "a", got.Fields["label"])
}

func TestFeatureCountFastPath(t *testing.T) {
	ds := openTestDataSource(t)
	layer, err := ds.CreateLayer("points", "geom", -1)
	require.NoError(t, err)

	g, err := parseTestWKT("POINT(0 0)")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, layer.CreateFeature(&Feature{Geometry: g, HasGeom: true, Fields: map[string]interface{}{}}))
	}

	n, err := layer.FeatureCount()
	require.NoError(t, err)
	require.EqualValues(t, 3, n)
}

func TestDeleteFeatureRemovesRow(t *testing.T) {
	ds := openTestDataSource(t)
	layer, err := ds.CreateLayer("points", "geom", -1)
	require.NoError(t, err)

	g, err := parseTestWKT("POINT(0 0)")
	require.NoError(t, err)
	f := &Feature{Geometry: g, HasGeom: true, Fields: map[string]interface{}{}}
	require.NoError(t, layer.CreateFeature(f))

	require.NoError(t, layer.DeleteFeature(f.FID))
	n, err := layer.FeatureCount()
	require.NoError(t, err)
	require.EqualValues(t, 0, n)
}

func TestWriteMethodsRejectReadOnlyDataSource(t *testing.T) {
	ds, err := Open(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { ds.Close() })

	_, err = ds.CreateLayer("points", "geom", -1)
	require.Error(t, err)
}
