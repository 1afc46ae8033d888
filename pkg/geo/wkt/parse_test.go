// Copyright 2025 The SqliteGIS Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package wkt

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestParsePoint(t *testing.T) {
	g, err := Parse("POINT(139.69 35.68)")
	require.NoError(t, err)
	pt, ok := g.(*geom.Point)
	require.True(t, ok)
	require.Equal(t, geom.XY, pt.Layout())
	require.Equal(t, geom.Coord{139.69, 35.68}, pt.Coords())
}

func TestParsePointZ(t *testing.T) {
	g, err := Parse("POINT Z (1 2 3)")
	require.NoError(t, err)
	pt, ok := g.(*geom.Point)
	require.True(t, ok)
	require.Equal(t, geom.XYZ, pt.Layout())
}

func TestParsePointZMSeparateTokens(t *testing.T) {
	g, err := Parse("POINT Z M (1 2 3 4)")
	require.NoError(t, err)
	pt, ok := g.(*geom.Point)
	require.True(t, ok)
	require.Equal(t, geom.XYZM, pt.Layout())
}

func TestParseUntaggedTripleIsArityError(t *testing.T) {
	_, err := Parse("POINT(1 2 3)")
	require.Error(t, err)
}

func TestParseLineString(t *testing.T) {
	g, err := Parse("LINESTRING(0 0, 1 1, 2 2)")
	require.NoError(t, err)
	ls, ok := g.(*geom.LineString)
	require.True(t, ok)
	require.Equal(t, 3, ls.NumCoords())
}

func TestParsePolygonWithHole(t *testing.T) {
	g, err := Parse("POLYGON((0 0,10 0,10 10,0 10,0 0),(2 2,2 4,4 4,4 2,2 2))")
	require.NoError(t, err)
	poly, ok := g.(*geom.Polygon)
	require.True(t, ok)
	require.Equal(t, 2, poly.NumLinearRings())
}

func TestParsePolygonUnclosedRingErrors(t *testing.T) {
	_, err := Parse("POLYGON((0 0,10 0,10 10,0 10))")
	require.Error(t, err)
}

func TestParseMultipolygonBeforePolygon(t *testing.T) {
	g, err := Parse("MULTIPOLYGON(((0 0,1 0,1 1,0 1,0 0)))")
	require.NoError(t, err)
	_, ok := g.(*geom.MultiPolygon)
	require.True(t, ok)
}

func TestParseGeometryCollection(t *testing.T) {
	g, err := Parse("GEOMETRYCOLLECTION(POINT(0 0), LINESTRING(0 0, 1 1))")
	require.NoError(t, err)
	gc, ok := g.(*geom.GeometryCollection)
	require.True(t, ok)
	require.Equal(t, 2, gc.NumGeoms())
}

func TestParseEmptyPolygon(t *testing.T) {
	g, err := Parse("POLYGON EMPTY")
	require.NoError(t, err)
	poly, ok := g.(*geom.Polygon)
	require.True(t, ok)
	require.Equal(t, 0, poly.NumLinearRings())
}

func TestParseCaseInsensitiveKeyword(t *testing.T) {
	_, err := Parse("point(1 2)")
	require.NoError(t, err)
}

func TestParseUnknownKeyword(t *testing.T) {
	_, err := Parse("TRIANGLE((0 0,1 0,0 1,0 0))")
	require.Error(t, err)
}

func TestParseMultiPointBothForms(t *testing.T) {
	g1, err := Parse("MULTIPOINT(0 0, 1 1)")
	require.NoError(t, err)
	g2, err := Parse("MULTIPOINT((0 0), (1 1))")
	require.NoError(t, err)
	require.Equal(t, g1.(*geom.MultiPoint).Coords(), g2.(*geom.MultiPoint).Coords())
}
