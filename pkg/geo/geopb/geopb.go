// Copyright 2025 The SqliteGIS Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package geopb contains the plain value types shared by the Geometry
// Value model: the SRID and shape/dimension enums, the bounding box, and
// the on-the-wire SpatialObject that a Geometry wraps.
package geopb

import (
	"fmt"
	"math"
)

// SRID is a spatial reference identifier. UnknownSRID (-1) means undefined.
type SRID int32

// UnknownSRID is the sentinel SRID used when none has been assigned.
const UnknownSRID SRID = -1

// ShapeType is the OGC/SFS geometry class of a Geometry Value.
type ShapeType int

// The seven supported variants, plus Unknown for a value that has not yet
// been classified (e.g. an unparsed or invalid input).
const (
	Unknown ShapeType = iota
	Point
	LineString
	Polygon
	MultiPoint
	MultiLineString
	MultiPolygon
	GeometryCollection
)

// String implements fmt.Stringer, returning the WKT keyword for the shape.
func (s ShapeType) String() string {
	switch s {
	case Point:
		return "POINT"
	case LineString:
		return "LINESTRING"
	case Polygon:
		return "POLYGON"
	case MultiPoint:
		return "MULTIPOINT"
	case MultiLineString:
		return "MULTILINESTRING"
	case MultiPolygon:
		return "MULTIPOLYGON"
	case GeometryCollection:
		return "GEOMETRYCOLLECTION"
	default:
		return "GEOMETRY"
	}
}

// Dimension is the per-coordinate arity family of a Geometry Value.
type Dimension int

const (
	// XY is the default two-dimensional family.
	XY Dimension = iota
	// XYZ carries a Z (height) ordinate.
	XYZ
	// XYM carries an M (measure) ordinate, no Z.
	XYM
	// XYZM carries both Z and M ordinates.
	XYZM
)

// CoordDimension returns the number of doubles in one coordinate tuple for
// the given Dimension: 2 for XY, 3 for XYZ/XYM, 4 for XYZM.
func (d Dimension) CoordDimension() int {
	switch d {
	case XY:
		return 2
	case XYZ, XYM:
		return 3
	case XYZM:
		return 4
	default:
		return 2
	}
}

// HasZ reports whether the dimension carries a Z ordinate.
func (d Dimension) HasZ() bool { return d == XYZ || d == XYZM }

// HasM reports whether the dimension carries an M ordinate.
func (d Dimension) HasM() bool { return d == XYM || d == XYZM }

func (d Dimension) String() string {
	switch d {
	case XYZ:
		return "Z"
	case XYM:
		return "M"
	case XYZM:
		return "ZM"
	default:
		return ""
	}
}

// BoundingBox is the planar axis-aligned extent of a Geometry Value,
// optionally carrying a Z extent when the geometry has a Z ordinate.
type BoundingBox struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
	HasZ       bool
}

// NewBoundingBox returns a bounding box initialized so that the first call
// to Update always wins on both axes.
func NewBoundingBox() *BoundingBox {
	return &BoundingBox{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
		MinZ: math.Inf(1), MaxZ: math.Inf(-1),
	}
}

// Update extends the bounding box to include the planar point (x, y).
func (b *BoundingBox) Update(x, y float64) {
	b.MinX = math.Min(b.MinX, x)
	b.MaxX = math.Max(b.MaxX, x)
	b.MinY = math.Min(b.MinY, y)
	b.MaxY = math.Max(b.MaxY, y)
}

// UpdateZ extends the Z extent to include z and marks the box as carrying Z.
func (b *BoundingBox) UpdateZ(z float64) {
	b.HasZ = true
	b.MinZ = math.Min(b.MinZ, z)
	b.MaxZ = math.Max(b.MaxZ, z)
}

// Empty reports whether no point has ever been folded into the box.
func (b *BoundingBox) Empty() bool {
	return b == nil || b.MinX > b.MaxX
}

// String renders the box in the "BOX(xmin ymin, xmax ymax)" form.
func (b *BoundingBox) String() string {
	if b.Empty() {
		return ""
	}
	return fmt.Sprintf("BOX(%v %v, %v %v)", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// SpatialObject is the canonical on-the-wire representation a Geometry
// Value is stored as: little-endian EWKB plus a cached SRID, shape and
// bounding box so accessors that don't need the full coordinate sequence
// (ST_SRID, ST_GeometryType, ST_Envelope) never have to decode it.
type SpatialObject struct {
	EWKB        []byte
	SRID        SRID
	Shape       ShapeType
	BoundingBox *BoundingBox
}
