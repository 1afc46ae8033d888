// Copyright 2025 The SqliteGIS Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geomfn

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sqlitegis/sqlitegis/pkg/geo"
	"github.com/twpayne/go-geom"
)

func mustParse(t *testing.T, ewkt string) geo.Geometry {
	t.Helper()
	g, err := geo.ParseEWKT(ewkt)
	require.NoError(t, err)
	return g
}

func TestAreaOfSquare(t *testing.T) {
	g := mustParse(t, "POLYGON((0 0,10 0,10 10,0 10,0 0))")
	a, err := Area(g)
	require.NoError(t, err)
	require.InDelta(t, 100, a, 1e-9)
}

func TestAreaSubtractsHole(t *testing.T) {
	g := mustParse(t, "POLYGON((0 0,10 0,10 10,0 10,0 0),(2 2,2 4,4 4,4 2,2 2))")
	a, err := Area(g)
	require.NoError(t, err)
	require.InDelta(t, 96, a, 1e-9)
}

func TestPerimeterOfSquare(t *testing.T) {
	g := mustParse(t, "POLYGON((0 0,10 0,10 10,0 10,0 0))")
	p, err := Perimeter(g)
	require.NoError(t, err)
	require.InDelta(t, 40, p, 1e-9)
}

func TestLengthOfLineString(t *testing.T) {
	g := mustParse(t, "LINESTRING(0 0, 3 4)")
	l, err := Length(g)
	require.NoError(t, err)
	require.InDelta(t, 5, l, 1e-9)
}

func TestAreaOfPointIsDomainError(t *testing.T) {
	g := mustParse(t, "POINT(0 0)")
	_, err := Area(g)
	require.Error(t, err)
}

func TestPerimeterOfPointIsDomainError(t *testing.T) {
	g := mustParse(t, "POINT(0 0)")
	_, err := Perimeter(g)
	require.Error(t, err)
}

func TestLengthOfPolygonIsDomainError(t *testing.T) {
	g := mustParse(t, "POLYGON((0 0,10 0,10 10,0 10,0 0))")
	_, err := Length(g)
	require.Error(t, err)
}

func TestCentroidOfSquare(t *testing.T) {
	g := mustParse(t, "POLYGON((0 0,10 0,10 10,0 10,0 0))")
	c, err := Centroid(g)
	require.NoError(t, err)
	text, err := c.AsText()
	require.NoError(t, err)
	require.Equal(t, "POINT(5 5)", text)
}

func TestConvexHullOfPoints(t *testing.T) {
	g := mustParse(t, "MULTIPOINT(0 0, 10 0, 10 10, 0 10, 5 5)")
	hull, err := ConvexHull(g)
	require.NoError(t, err)
	tt, err := hull.AsGeomT()
	require.NoError(t, err)
	poly, ok := tt.(*geom.Polygon)
	require.True(t, ok)
	// The interior point (5 5) is not on the hull; 4 shell vertices plus
	// the closing repeat of the first.
	require.Equal(t, 5, poly.LinearRing(0).NumCoords())
}

func TestDistanceBetweenDisjointPoints(t *testing.T) {
	a := mustParse(t, "POINT(0 0)")
	b := mustParse(t, "POINT(3 4)")
	d, err := Distance(a, b)
	require.NoError(t, err)
	require.InDelta(t, 5, d, 1e-9)
}

func TestIntersectsTouchingPolygons(t *testing.T) {
	a := mustParse(t, "POLYGON((0 0,10 0,10 10,0 10,0 0))")
	b := mustParse(t, "POLYGON((10 0,20 0,20 10,10 10,10 0))")
	ok, err := Intersects(a, b)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestContainsPointInsidePolygon(t *testing.T) {
	poly := mustParse(t, "POLYGON((0 0,10 0,10 10,0 10,0 0))")
	pt := mustParse(t, "POINT(5 5)")
	ok, err := Contains(poly, pt)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestContainsUnsupportedPairReturnsFalse(t *testing.T) {
	line := mustParse(t, "LINESTRING(0 0, 10 10)")
	poly := mustParse(t, "POLYGON((0 0,10 0,10 10,0 10,0 0))")
	ok, err := Contains(line, poly)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestWithinReversesContains(t *testing.T) {
	poly := mustParse(t, "POLYGON((0 0,10 0,10 10,0 10,0 0))")
	pt := mustParse(t, "POINT(5 5)")
	ok, err := Within(pt, poly)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestDistanceRejectsMismatchingSRIDs(t *testing.T) {
	a := mustParse(t, "SRID=4326;POINT(0 0)")
	b := mustParse(t, "SRID=3857;POINT(3 4)")
	_, err := Distance(a, b)
	require.Error(t, err)
}

func TestIntersectsRejectsMismatchingSRIDs(t *testing.T) {
	a := mustParse(t, "SRID=4326;POLYGON((0 0,10 0,10 10,0 10,0 0))")
	b := mustParse(t, "SRID=3857;POLYGON((5 5,15 5,15 15,5 15,5 5))")
	_, err := Intersects(a, b)
	require.Error(t, err)
}

func TestContainsRejectsMismatchingSRIDs(t *testing.T) {
	poly := mustParse(t, "SRID=4326;POLYGON((0 0,10 0,10 10,0 10,0 0))")
	pt := mustParse(t, "SRID=3857;POINT(5 5)")
	_, err := Contains(poly, pt)
	require.Error(t, err)
}

func TestWithinRejectsMismatchingSRIDs(t *testing.T) {
	poly := mustParse(t, "SRID=4326;POLYGON((0 0,10 0,10 10,0 10,0 0))")
	pt := mustParse(t, "SRID=3857;POINT(5 5)")
	_, err := Within(pt, poly)
	require.Error(t, err)
}

func TestDistanceAllowsUnknownSRIDOnEitherSide(t *testing.T) {
	a := mustParse(t, "SRID=4326;POINT(0 0)")
	b := mustParse(t, "POINT(3 4)")
	d, err := Distance(a, b)
	require.NoError(t, err)
	require.InDelta(t, 5, d, 1e-9)
}

func TestCollectRejectsMismatchingSRIDs(t *testing.T) {
	a := mustParse(t, "SRID=4326;POINT(0 0)")
	b := mustParse(t, "SRID=3857;POINT(1 1)")
	_, err := Collect(a, b)
	require.Error(t, err)
}

func TestIsValidRejectsSelfIntersectingRing(t *testing.T) {
	g := mustParse(t, "POLYGON((0 0,10 10,10 0,0 10,0 0))")
	ok, err := IsValid(g)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestIsValidAcceptsSimplePolygon(t *testing.T) {
	g := mustParse(t, "POLYGON((0 0,10 0,10 10,0 10,0 0))")
	ok, err := IsValid(g)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestUnionOfDisjointPolygonsIsMultiPolygon(t *testing.T) {
	a := mustParse(t, "POLYGON((0 0,1 0,1 1,0 1,0 0))")
	b := mustParse(t, "POLYGON((5 5,6 5,6 6,5 6,5 5))")
	u, err := Union(a, b)
	require.NoError(t, err)
	require.Equal(t, "MULTIPOLYGON", u.ShapeType().String())
}

func TestCollectAggOfPoints(t *testing.T) {
	geoms := []geo.Geometry{
		mustParse(t, "POINT(0 0)"),
		mustParse(t, "POINT(1 1)"),
		mustParse(t, "POINT(2 2)"),
	}
	agg, err := CollectAgg(geoms)
	require.NoError(t, err)
	require.Equal(t, "MULTIPOINT", agg.ShapeType().String())
}

func TestForce2DDropsZ(t *testing.T) {
	g := mustParse(t, "POINT Z (1 2 3)")
	flat, err := Force2D(g)
	require.NoError(t, err)
	dim, err := flat.Dimension()
	require.NoError(t, err)
	require.Equal(t, "", dim.String())
}

func TestEnvelopeOfLineString(t *testing.T) {
	g := mustParse(t, "LINESTRING(0 0, 10 5)")
	env, err := Envelope(g)
	require.NoError(t, err)
	text, err := env.AsText()
	require.NoError(t, err)
	require.Equal(t, "POLYGON((0 0,10 0,10 5,0 5,0 0))", text)
}

func TestBufferOfPointIsPolygon(t *testing.T) {
	g := mustParse(t, "POINT(0 0)")
	b, err := Buffer(g, 1)
	require.NoError(t, err)
	require.Equal(t, "POLYGON", b.ShapeType().String())
	a, err := Area(b)
	require.NoError(t, err)
	require.InDelta(t, 3.14159, a, 0.05)
}
