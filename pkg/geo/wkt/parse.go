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
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"
)

// parser walks the token stream produced by lex. It never backtracks:
// the WKT grammar of spec.md §6.3 is LL(1) once EMPTY/dimension tags are
// peeked at.
type parser struct {
	toks []token
	pos  int
	src  string
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(pos int, format string, args ...interface{}) error {
	return &ParseError{fmt.Sprintf(format, args...), pos, p.src}
}

// Parse parses a WKT body (no "SRID=n;" prefix, which the caller of this
// package strips) into a geom.T. Keyword and dimension-tag matching is
// case-insensitive; whitespace between tokens is unconstrained.
func Parse(s string) (geom.T, error) {
	toks, err := lex(s)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, src: s}
	g, err := p.parseGeometry()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, p.errorf(p.peek().pos, "unexpected trailing input %q", p.peek().text)
	}
	return g, nil
}

// parseGeometry parses one "keyword [dimtag] (body)" or "keyword [dimtag]
// EMPTY" production, dispatching to the shape-specific body parser.
func (p *parser) parseGeometry() (geom.T, error) {
	kwTok := p.next()
	if kwTok.kind != tokIdent {
		return nil, p.errorf(kwTok.pos, "expected geometry keyword, got %q", kwTok.text)
	}
	shape, ok := keywordShape(kwTok.text)
	if !ok {
		return nil, p.errorf(kwTok.pos, "unknown geometry keyword %q", kwTok.text)
	}

	layout, hasTag := p.parseDimTag()

	if p.peek().kind == tokIdent && strings.EqualFold(p.peek().text, "EMPTY") {
		p.next()
		if !hasTag {
			layout = geom.XY
		}
		return emptyGeometry(shape, layout)
	}

	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}

	var g geom.T
	var err error
	switch shape {
	case shapePoint:
		g, err = p.parsePointBody(layout, hasTag)
	case shapeLineString:
		g, err = p.parseLineStringBody(layout, hasTag)
	case shapePolygon:
		g, err = p.parsePolygonBody(layout, hasTag)
	case shapeMultiPoint:
		g, err = p.parseMultiPointBody(layout, hasTag)
	case shapeMultiLineString:
		g, err = p.parseMultiLineStringBody(layout, hasTag)
	case shapeMultiPolygon:
		g, err = p.parseMultiPolygonBody(layout, hasTag)
	case shapeGeometryCollection:
		g, err = p.parseGeometryCollectionBody()
	}
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	return g, nil
}

// parseDimTag consumes an optional "Z", "M", "ZM", or "Z M" tag following
// the keyword. Absence means XY.
func (p *parser) parseDimTag() (geom.Layout, bool) {
	if p.peek().kind != tokIdent {
		return geom.XY, false
	}
	switch strings.ToUpper(p.peek().text) {
	case "ZM":
		p.next()
		return geom.XYZM, true
	case "Z":
		p.next()
		if p.peek().kind == tokIdent && strings.EqualFold(p.peek().text, "M") {
			p.next()
			return geom.XYZM, true
		}
		return geom.XYZ, true
	case "M":
		p.next()
		return geom.XYM, true
	default:
		return geom.XY, false
	}
}

func (p *parser) expect(kind tokenKind) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, p.errorf(t.pos, "unexpected token %q", t.text)
	}
	return t, nil
}

// parseCoord parses one coordinate tuple, requiring exactly layout.Stride()
// numbers. Open Question #1 (spec.md §9) is resolved strictly: an untagged
// 3-number tuple under a declared XY layout is an arity error, not an
// implicit XYZ promotion.
func (p *parser) parseCoord(layout geom.Layout) (geom.Coord, error) {
	want := layout.Stride()
	coord := make(geom.Coord, 0, want)
	for {
		t := p.next()
		if t.kind != tokNumber {
			return nil, p.errorf(t.pos, "expected number in coordinate, got %q", t.text)
		}
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, p.errorf(t.pos, "invalid number %q", t.text)
		}
		coord = append(coord, v)
		if p.peek().kind != tokNumber {
			break
		}
	}
	if len(coord) != want {
		return nil, p.errorf(p.peek().pos, "coordinate has %d values, expected %d for declared dimension", len(coord), want)
	}
	return coord, nil
}

func (p *parser) parsePointBody(layout geom.Layout, _ bool) (geom.T, error) {
	coord, err := p.parseCoord(layout)
	if err != nil {
		return nil, err
	}
	return geom.NewPoint(layout).SetCoords(coord)
}

// parseCoordSeq parses a comma-separated list of coordinate tuples, with no
// surrounding parens (the caller already consumed them).
func (p *parser) parseCoordSeq(layout geom.Layout) ([]geom.Coord, error) {
	var coords []geom.Coord
	for {
		c, err := p.parseCoord(layout)
		if err != nil {
			return nil, err
		}
		coords = append(coords, c)
		if p.peek().kind != tokComma {
			break
		}
		p.next()
	}
	return coords, nil
}

func (p *parser) parseLineStringBody(layout geom.Layout, _ bool) (geom.T, error) {
	coords, err := p.parseCoordSeq(layout)
	if err != nil {
		return nil, err
	}
	if len(coords) < 2 {
		return nil, p.errorf(p.peek().pos, "linestring must have at least 2 points")
	}
	return geom.NewLineString(layout).SetCoords(coords)
}

// parseRing parses one polygon ring: "(" coordseq ")", checking closure.
func (p *parser) parseRing(layout geom.Layout) ([]geom.Coord, error) {
	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	coords, err := p.parseCoordSeq(layout)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	if len(coords) < 4 {
		return nil, p.errorf(p.peek().pos, "polygon ring must have at least 4 points")
	}
	if !coordEqual(coords[0], coords[len(coords)-1]) {
		return nil, p.errorf(p.peek().pos, "polygon ring is not closed")
	}
	return coords, nil
}

func (p *parser) parsePolygonBody(layout geom.Layout, _ bool) (geom.T, error) {
	var rings [][]geom.Coord
	for {
		ring, err := p.parseRing(layout)
		if err != nil {
			return nil, err
		}
		rings = append(rings, ring)
		if p.peek().kind != tokComma {
			break
		}
		p.next()
	}
	return geom.NewPolygon(layout).SetCoords(rings)
}

// parseMultiPointBody accepts both the bare-tuple form "(1 2, 3 4)" and the
// parenthesized-point form "((1 2), (3 4))" PostGIS also emits.
func (p *parser) parseMultiPointBody(layout geom.Layout, _ bool) (geom.T, error) {
	var coords []geom.Coord
	for {
		if p.peek().kind == tokLParen {
			p.next()
			c, err := p.parseCoord(layout)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokRParen); err != nil {
				return nil, err
			}
			coords = append(coords, c)
		} else {
			c, err := p.parseCoord(layout)
			if err != nil {
				return nil, err
			}
			coords = append(coords, c)
		}
		if p.peek().kind != tokComma {
			break
		}
		p.next()
	}
	return geom.NewMultiPoint(layout).SetCoords(coords)
}

func (p *parser) parseMultiLineStringBody(layout geom.Layout, _ bool) (geom.T, error) {
	var lines [][]geom.Coord
	for {
		if _, err := p.expect(tokLParen); err != nil {
			return nil, err
		}
		line, err := p.parseCoordSeq(layout)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		if len(line) < 2 {
			return nil, p.errorf(p.peek().pos, "linestring must have at least 2 points")
		}
		lines = append(lines, line)
		if p.peek().kind != tokComma {
			break
		}
		p.next()
	}
	return geom.NewMultiLineString(layout).SetCoords(lines)
}

func (p *parser) parseMultiPolygonBody(layout geom.Layout, _ bool) (geom.T, error) {
	var polys [][][]geom.Coord
	for {
		if _, err := p.expect(tokLParen); err != nil {
			return nil, err
		}
		var rings [][]geom.Coord
		for {
			ring, err := p.parseRing(layout)
			if err != nil {
				return nil, err
			}
			rings = append(rings, ring)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		polys = append(polys, rings)
		if p.peek().kind != tokComma {
			break
		}
		p.next()
	}
	return geom.NewMultiPolygon(layout).SetCoords(polys)
}

// parseGeometryCollectionBody parses a heterogeneous sequence of full WKT
// geometries (each with its own keyword and optional dimension tag, but no
// SRID of its own per spec.md §3's "same SRID as its parent" invariant).
func (p *parser) parseGeometryCollectionBody() (geom.T, error) {
	gc := geom.NewGeometryCollection()
	if p.peek().kind == tokRParen {
		return gc, nil
	}
	for {
		child, err := p.parseGeometry()
		if err != nil {
			return nil, err
		}
		if err := gc.Push(child); err != nil {
			return nil, p.errorf(p.peek().pos, "%s", err)
		}
		if p.peek().kind != tokComma {
			break
		}
		p.next()
	}
	return gc, nil
}

func coordEqual(a, b geom.Coord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// emptyGeometry builds the EMPTY form of shape under layout. Empty points
// use NaN coordinates, the convention package geo's isEmptyGeomT
// recognizes; the container shapes use a zero-length coordinate sequence.
func emptyGeometry(shape shapeKeyword, layout geom.Layout) (geom.T, error) {
	nan := make(geom.Coord, layout.Stride())
	for i := range nan {
		nan[i] = math.NaN()
	}
	switch shape {
	case shapePoint:
		return geom.NewPoint(layout).SetCoords(nan)
	case shapeLineString:
		return geom.NewLineString(layout).SetCoords(nil)
	case shapePolygon:
		return geom.NewPolygon(layout).SetCoords(nil)
	case shapeMultiPoint:
		return geom.NewMultiPoint(layout).SetCoords(nil)
	case shapeMultiLineString:
		return geom.NewMultiLineString(layout).SetCoords(nil)
	case shapeMultiPolygon:
		return geom.NewMultiPolygon(layout).SetCoords(nil)
	case shapeGeometryCollection:
		return geom.NewGeometryCollection(), nil
	default:
		return nil, &ParseError{"unknown shape for EMPTY", 0, ""}
	}
}
