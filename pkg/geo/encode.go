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
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// AsText renders the Geometry as plain WKT (no SRID prefix), as produced by
// ST_AsText.
func (g Geometry) AsText() (string, error) {
	t, err := g.AsGeomT()
	if err != nil {
		return "", err
	}
	s, err := wkt.Marshal(t)
	if err != nil {
		return "", errors.Wrap(err, "geo: encoding WKT")
	}
	// go-geom writes "POINT (1 2)" and "0 0, 1 1"; emit the compact
	// "POINT(1 2)" and "0 0,1 1" instead. The space before "(" is kept
	// after a Z, M or ZM tag ("POINT Z (1 2 3)").
	s = strings.ReplaceAll(s, ", ", ",")
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' && i > 0 && i+1 < len(s) && s[i+1] == '(' && s[i-1] != 'Z' && s[i-1] != 'M' {
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String(), nil
}

// AsEWKT renders the Geometry as EWKT: an "SRID=n;" prefix, always present
// even when the SRID is unknown (-1), followed by WKT, as produced by
// ST_AsEWKT.
func (g Geometry) AsEWKT() (string, error) {
	s, err := g.AsText()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SRID=%d;%s", g.so.SRID, s), nil
}

// AsBinary renders the Geometry as plain WKB (no SRID), as produced by
// ST_AsBinary.
func (g Geometry) AsBinary() ([]byte, error) {
	t, err := g.AsGeomT()
	if err != nil {
		return nil, err
	}
	b, err := wkb.Marshal(t, ewkbByteOrder)
	if err != nil {
		return nil, errors.Wrap(err, "geo: encoding WKB")
	}
	return b, nil
}

// AsEWKB renders the Geometry as EWKB, carrying its SRID in the high bits of
// the type word per spec.md §4.1.5, as produced by ST_AsEWKB.
func (g Geometry) AsEWKB() ([]byte, error) {
	if len(g.so.EWKB) > 0 {
		return g.so.EWKB, nil
	}
	t, err := g.AsGeomT()
	if err != nil {
		return nil, err
	}
	b, err := ewkb.Marshal(t, ewkbByteOrder)
	if err != nil {
		return nil, errors.Wrap(err, "geo: encoding EWKB")
	}
	return b, nil
}
