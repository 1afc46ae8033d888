// Copyright 2025 The SqliteGIS Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sqlitegis/sqlitegis/pkg/geo/geopb"
	"github.com/twpayne/go-geom"
)

func TestParseEWKTRoundTrip(t *testing.T) {
	g, err := ParseEWKT("SRID=4326;POINT(139.69 35.68)")
	require.NoError(t, err)
	require.Equal(t, geopb.SRID(4326), g.SRID())
	require.Equal(t, geopb.Point, g.ShapeType())

	text, err := g.AsEWKT()
	require.NoError(t, err)
	require.Equal(t, "SRID=4326;POINT(139.69 35.68)", text)
}

func TestParseEWKTNoSRID(t *testing.T) {
	g, err := ParseEWKT("LINESTRING(0 0, 1 1)")
	require.NoError(t, err)
	require.Equal(t, geopb.UnknownSRID, g.SRID())

	text, err := g.AsEWKT()
	require.NoError(t, err)
	require.Equal(t, "SRID=-1;LINESTRING(0 0,1 1)", text)
}

func TestAsEWKTAlwaysPrefixesSRID(t *testing.T) {
	g, err := ParseEWKT("POINT(139.69 35.68)")
	require.NoError(t, err)
	require.Equal(t, geopb.UnknownSRID, g.SRID())

	text, err := g.AsEWKT()
	require.NoError(t, err)
	require.Equal(t, "SRID=-1;POINT(139.69 35.68)", text)
}

func TestEWKBRoundTrip(t *testing.T) {
	g, err := ParseEWKT("SRID=4269;POLYGON((0 0,4 0,4 4,0 4,0 0))")
	require.NoError(t, err)

	b, err := g.AsEWKB()
	require.NoError(t, err)

	g2, err := ParseEWKB(b)
	require.NoError(t, err)
	require.Equal(t, g.SRID(), g2.SRID())
	require.Equal(t, g.ShapeType(), g2.ShapeType())

	t1, err := g.AsText()
	require.NoError(t, err)
	t2, err := g2.AsText()
	require.NoError(t, err)
	require.Equal(t, t1, t2)
}

func TestSetSRIDDoesNotReproject(t *testing.T) {
	g, err := ParseEWKT("POINT(10 20)")
	require.NoError(t, err)

	g2, err := g.SetSRID(3857)
	require.NoError(t, err)
	require.Equal(t, geopb.SRID(3857), g2.SRID())

	text1, err := g.AsText()
	require.NoError(t, err)
	text2, err := g2.AsText()
	require.NoError(t, err)
	require.Equal(t, text1, text2)
}

func TestSetSRIDPropagatesToCollectionMembers(t *testing.T) {
	g, err := ParseEWKT("GEOMETRYCOLLECTION(POINT(0 0), LINESTRING(0 0, 1 1))")
	require.NoError(t, err)
	g2, err := g.SetSRID(4326)
	require.NoError(t, err)

	tt, err := g2.AsGeomT()
	require.NoError(t, err)
	require.Equal(t, 4326, tt.SRID())
	gc, ok := tt.(*geom.GeometryCollection)
	require.True(t, ok)
	for _, member := range gc.Geoms() {
		require.Equal(t, 4326, member.SRID())
	}
}

func TestEmptyGeometry(t *testing.T) {
	g, err := ParseEWKT("POLYGON EMPTY")
	require.NoError(t, err)
	require.True(t, g.Empty())

	g2, err := ParseEWKT("POINT(1 2)")
	require.NoError(t, err)
	require.False(t, g2.Empty())
}

func TestDimensionOfGeometry(t *testing.T) {
	g, err := ParseEWKT("POINT Z (1 2 3)")
	require.NoError(t, err)
	dim, err := g.Dimension()
	require.NoError(t, err)
	require.Equal(t, geopb.XYZ, dim)
}

func TestBoundingBoxOfGeometry(t *testing.T) {
	g, err := ParseEWKT("LINESTRING(0 0, 10 5)")
	require.NoError(t, err)
	so := g.SpatialObject()
	require.NotNil(t, so.BoundingBox)
	require.Equal(t, 0.0, so.BoundingBox.MinX)
	require.Equal(t, 10.0, so.BoundingBox.MaxX)
	require.Equal(t, 0.0, so.BoundingBox.MinY)
	require.Equal(t, 5.0, so.BoundingBox.MaxY)
}
