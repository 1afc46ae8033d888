// Copyright 2025 The SqliteGIS Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package geo implements the Geometry Value (V) of spec.md §3: the
// canonical in-memory representation of one vector geometry, its
// conversions to and from WKT/EWKT and WKB/EWKB, and its dimensional and
// bounding-box operations (§4.1).
//
// Subpackages implement the rest of the core:
//   - geo/geomfn implements the planar Algorithm Kernel (K) of spec.md §4.2.
//   - geo/geoproj implements the Coordinate Reference Service (C) of §4.3.
//   - geo/wkt implements the EWKT grammar of §6.3.
//   - geo/geopb holds the plain value types both layers share.
package geo

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/sqlitegis/sqlitegis/pkg/geo/geopb"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
)

// ewkbByteOrder is the byte order used for every EWKB encoding this package
// produces. spec.md §4.1.5 requires little-endian on output; WKB/EWKB
// decoding always follows the byte-order flag embedded in the input itself.
var ewkbByteOrder = binary.LittleEndian

// ErrEmptyGeometry is returned by operations that are undefined over an
// empty geometry (centroid, envelope, extent, bounding-box extrema).
var ErrEmptyGeometry = errors.New("geo: operation undefined over an empty geometry")

// Geometry is the Geometry Value V. It is immutable except for its SRID
// (spec.md §3's "set SRID, do not reproject" operation), and never shares
// coordinate storage with another Geometry: every derived Geometry is
// built from a fresh EWKB encoding.
type Geometry struct {
	so geopb.SpatialObject
}

// NewGeometryFromGeomT builds a Geometry from a go-geom geom.T, computing
// its shape, dimension, bounding box, and canonical little-endian EWKB
// encoding. The geom.T's own SRID (if any) is used; -1 and 0 are both
// treated as "undefined" on the way in, since go-geom has no notion of an
// unknown SRID and defaults to 0.
func NewGeometryFromGeomT(t geom.T) (Geometry, error) {
	if t == nil {
		return Geometry{}, errors.New("geo: nil geometry")
	}
	shape, err := shapeOf(t)
	if err != nil {
		return Geometry{}, err
	}
	srid := geopb.SRID(t.SRID())
	if srid == 0 {
		srid = geopb.UnknownSRID
	}
	ewkbBytes, err := ewkb.Marshal(t, ewkbByteOrder)
	if err != nil {
		return Geometry{}, errors.Wrap(err, "geo: encoding EWKB")
	}
	return Geometry{so: geopb.SpatialObject{
		EWKB:        ewkbBytes,
		SRID:        srid,
		Shape:       shape,
		BoundingBox: boundingBoxOf(t),
	}}, nil
}

// NewGeometryFromSpatialObject wraps an already-encoded SpatialObject
// (e.g. one read back from EWKB via ParseEWKB) as a Geometry.
func NewGeometryFromSpatialObject(so geopb.SpatialObject) Geometry {
	return Geometry{so: so}
}

// SpatialObject returns the Geometry's canonical wire representation.
func (g Geometry) SpatialObject() geopb.SpatialObject { return g.so }

// SRID returns the Geometry's spatial reference identifier, or
// geopb.UnknownSRID if none is set.
func (g Geometry) SRID() geopb.SRID { return g.so.SRID }

// ShapeType returns the OGC/SFS variant of the Geometry.
func (g Geometry) ShapeType() geopb.ShapeType { return g.so.Shape }

// Dimension returns the per-coordinate arity family of the Geometry by
// inspecting its decoded layout.
func (g Geometry) Dimension() (geopb.Dimension, error) {
	t, err := g.AsGeomT()
	if err != nil {
		return geopb.XY, err
	}
	return dimensionOf(t.Layout()), nil
}

// AsGeomT decodes the Geometry's EWKB back into a geom.T. Decoding happens
// on demand rather than caching a parsed tree, matching the teacher's
// decode-from-EWKB-on-access pattern (geo/encode.go's SpatialObjectToWKT
// et al. all call ewkb.Unmarshal fresh) and keeping Geometry itself a
// small, easily-copied value.
func (g Geometry) AsGeomT() (geom.T, error) {
	if len(g.so.EWKB) == 0 {
		return nil, errors.New("geo: empty spatial object")
	}
	t, err := ewkb.Unmarshal(g.so.EWKB)
	if err != nil {
		return nil, errors.Wrap(err, "geo: decoding EWKB")
	}
	return t, nil
}

// SetSRID returns a new Geometry with SRID reassigned to srid and every
// coordinate left untouched — spec.md §3's "set SRID, do not reproject"
// invariant. Every child geometry (multi-part or collection member) gets
// the same SRID, preserving the "same SRID as parent" shape rule.
func (g Geometry) SetSRID(srid geopb.SRID) (Geometry, error) {
	t, err := g.AsGeomT()
	if err != nil {
		return Geometry{}, err
	}
	setGeomTSRID(t, int(srid))
	out, err := NewGeometryFromGeomT(t)
	if err != nil {
		return Geometry{}, err
	}
	if srid == geopb.UnknownSRID {
		// NewGeometryFromGeomT folds SRID 0 to UnknownSRID already; an
		// explicit SetSRID(UnknownSRID) must also win over a geom.T that
		// happened to carry SRID 0 for a different reason.
		out.so.SRID = geopb.UnknownSRID
	}
	return out, nil
}

// Empty reports whether the Geometry's top-level coordinate sequence has
// no points (spec.md §4.1.7).
func (g Geometry) Empty() bool {
	t, err := g.AsGeomT()
	if err != nil {
		return true
	}
	return isEmptyGeomT(t)
}

// setGeomTSRID assigns srid to t and, for a GeometryCollection, to every
// child transitively — go-geom has no SetSRID method on the geom.T
// interface itself, so each concrete type is handled by hand, mirroring
// the teacher's adjustGeomSRID in geo/parse.go.
func setGeomTSRID(t geom.T, srid int) {
	switch t := t.(type) {
	case *geom.Point:
		t.SetSRID(srid)
	case *geom.LineString:
		t.SetSRID(srid)
	case *geom.Polygon:
		t.SetSRID(srid)
	case *geom.MultiPoint:
		t.SetSRID(srid)
	case *geom.MultiLineString:
		t.SetSRID(srid)
	case *geom.MultiPolygon:
		t.SetSRID(srid)
	case *geom.GeometryCollection:
		t.SetSRID(srid)
		for _, child := range t.Geoms() {
			setGeomTSRID(child, srid)
		}
	}
}

func shapeOf(t geom.T) (geopb.ShapeType, error) {
	switch t.(type) {
	case *geom.Point:
		return geopb.Point, nil
	case *geom.LineString:
		return geopb.LineString, nil
	case *geom.Polygon:
		return geopb.Polygon, nil
	case *geom.MultiPoint:
		return geopb.MultiPoint, nil
	case *geom.MultiLineString:
		return geopb.MultiLineString, nil
	case *geom.MultiPolygon:
		return geopb.MultiPolygon, nil
	case *geom.GeometryCollection:
		return geopb.GeometryCollection, nil
	default:
		return geopb.Unknown, errors.Newf("geo: unsupported geometry type %T", t)
	}
}

func dimensionOf(l geom.Layout) geopb.Dimension {
	switch l {
	case geom.XYZ:
		return geopb.XYZ
	case geom.XYM:
		return geopb.XYM
	case geom.XYZM:
		return geopb.XYZM
	default:
		return geopb.XY
	}
}

func isEmptyGeomT(t geom.T) bool {
	switch t := t.(type) {
	case *geom.Point:
		// go-geom's empty-point convention is NaN coordinates.
		c := t.Coords()
		for _, v := range c {
			if v != v { // NaN
				return true
			}
		}
		return false
	case *geom.GeometryCollection:
		return t.NumGeoms() == 0
	default:
		return len(t.FlatCoords()) == 0
	}
}

func boundingBoxOf(t geom.T) *geopb.BoundingBox {
	box := geopb.NewBoundingBox()
	hasZ := t.Layout().ZIndex() >= 0 // Layout carries Z for XYZ/XYZM
	walkCoords(t, hasZ, box)
	if box.Empty() {
		return nil
	}
	return box
}

func walkCoords(t geom.T, hasZ bool, box *geopb.BoundingBox) {
	switch g := t.(type) {
	case *geom.GeometryCollection:
		for _, child := range g.Geoms() {
			walkCoords(child, hasZ, box)
		}
		return
	}
	if isEmptyGeomT(t) {
		return
	}
	flat := t.FlatCoords()
	stride := t.Layout().Stride()
	if stride == 0 {
		return
	}
	zIndex := t.Layout().ZIndex()
	for i := 0; i+stride <= len(flat); i += stride {
		box.Update(flat[i], flat[i+1])
		if hasZ && zIndex >= 0 {
			box.UpdateZ(flat[i+zIndex])
		}
	}
}
