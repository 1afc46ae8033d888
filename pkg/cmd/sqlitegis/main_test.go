// Copyright 2025 The SqliteGIS Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sqlitegis/sqlitegis/pkg/extension"
)

func withCapturedOutput(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	old := cmdOut
	cmdOut = &buf
	defer func() { cmdOut = old }()
	fn()
	return buf.String()
}

func TestQueryPrintsScalarResult(t *testing.T) {
	out := withCapturedOutput(t, func() {
		require.NoError(t, runQuery(":memory:", "SELECT ST_AsText(ST_MakePoint(1, 2))"))
	})
	require.Contains(t, out, "POINT(1 2)")
}

func TestLayersListsDiscoveredTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "layers.db")
	db, err := extension.Open(dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE cities (name TEXT, geom BLOB)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO cities (name, geom) VALUES ('a', ST_MakePoint(0, 0))`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out := withCapturedOutput(t, func() {
		require.NoError(t, runLayers(dbPath))
	})
	require.Contains(t, out, "cities")
}

func TestVersionCommandPrintsVersion(t *testing.T) {
	cmd := makeVersionCommand()
	out := withCapturedOutput(t, func() {
		require.NoError(t, cmd.RunE(cmd, nil))
	})
	require.Contains(t, out, "sqlitegis")
}

func TestExportFailsOnUnknownLayer(t *testing.T) {
	err := runExport(":memory:", "does_not_exist", "GeoJSON", "/tmp/out.json")
	require.Error(t, err)
}
