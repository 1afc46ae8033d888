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
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sqlitegis/sqlitegis/pkg/geo/geopb"
	"github.com/sqlitegis/sqlitegis/pkg/geo/wkt"
	"github.com/twpayne/go-geom/encoding/ewkb"
)

// ParseEWKT parses an EWKT string, an optional "SRID=n;" prefix followed by
// a WKT body (spec.md §6.1). A bare WKT string with no prefix is accepted
// with an unknown SRID.
func ParseEWKT(s string) (Geometry, error) {
	srid := geopb.UnknownSRID
	body := s
	if strings.HasPrefix(strings.ToUpper(s), "SRID=") {
		rest := s[len("SRID="):]
		semi := strings.IndexByte(rest, ';')
		if semi < 0 {
			return Geometry{}, errors.Newf("geo: malformed SRID prefix in %q", s)
		}
		n, err := strconv.Atoi(strings.TrimSpace(rest[:semi]))
		if err != nil {
			return Geometry{}, errors.Wrapf(err, "geo: invalid SRID in %q", s)
		}
		srid = geopb.SRID(n)
		body = rest[semi+1:]
	}

	t, err := wkt.Parse(body)
	if err != nil {
		return Geometry{}, errors.Wrap(err, "geo: parsing WKT")
	}
	if srid != geopb.UnknownSRID {
		setGeomTSRID(t, int(srid))
	}
	g, err := NewGeometryFromGeomT(t)
	if err != nil {
		return Geometry{}, err
	}
	if srid == geopb.UnknownSRID {
		g.so.SRID = geopb.UnknownSRID
	}
	return g, nil
}

// ParseEWKB parses a little- or big-endian (E)WKB byte string, as produced
// by ST_AsBinary/ST_AsEWKB or read back from a stored column, into a
// Geometry.
func ParseEWKB(b []byte) (Geometry, error) {
	t, err := ewkb.Unmarshal(b)
	if err != nil {
		return Geometry{}, errors.Wrap(err, "geo: decoding EWKB")
	}
	return NewGeometryFromGeomT(t)
}
