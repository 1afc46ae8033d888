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

import "strings"

type shapeKeyword int

const (
	shapePoint shapeKeyword = iota
	shapeLineString
	shapePolygon
	shapeMultiPoint
	shapeMultiLineString
	shapeMultiPolygon
	shapeGeometryCollection
)

// keywordShape maps a case-folded WKT keyword to its shape. The MULTI*
// keywords are checked as whole identifiers (the lexer already consumed the
// longest run of letters), so "MULTIPOLYGON" can never be mistaken for a
// "POLYGON" prefix the way a naive substring match would — spec.md §4.1.1's
// "longest-prefix match" requirement falls out of tokenizing a full
// identifier before any keyword comparison happens at all.
func keywordShape(kw string) (shapeKeyword, bool) {
	switch strings.ToUpper(kw) {
	case "POINT":
		return shapePoint, true
	case "LINESTRING":
		return shapeLineString, true
	case "POLYGON":
		return shapePolygon, true
	case "MULTIPOINT":
		return shapeMultiPoint, true
	case "MULTILINESTRING":
		return shapeMultiLineString, true
	case "MULTIPOLYGON":
		return shapeMultiPolygon, true
	case "GEOMETRYCOLLECTION":
		return shapeGeometryCollection, true
	default:
		return 0, false
	}
}
