// Copyright 2025 The SqliteGIS Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package wkt implements a hand-rolled lexer and recursive-descent parser
// for the WKT body grammar of spec.md §6.3 (the EWKT "SRID=n;" prefix is
// stripped by the caller before Parse is invoked). It produces a
// github.com/twpayne/go-geom geom.T rather than a bespoke coordinate tree,
// so the rest of the module (WKB/EWKB codec, kernel algorithms) can share
// one coordinate representation end to end.
package wkt

import (
	"fmt"
	"strconv"
	"unicode"
)

// LexError is returned when the input contains a token the lexer cannot
// classify at all (not a paren, comma, number, or identifier character).
type LexError struct {
	str string
	pos int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("wkt: lex error at position %d in %q", e.pos, e.str)
}

// ParseError is returned when the token stream is well-formed lexically but
// violates the WKT grammar (wrong keyword, unbalanced parens, wrong arity).
type ParseError struct {
	problem string
	pos     int
	str     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("wkt: %s at position %d in %q", e.problem, e.pos, e.str)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex tokenizes the entire input up front. WKT has no context-sensitive
// lexical rules, so a single pass with no backtracking is enough.
func lex(s string) ([]token, error) {
	var toks []token
	i := 0
	n := len(s)
	for i < n {
		c := rune(s[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case c == ',':
			toks = append(toks, token{tokComma, ",", i})
			i++
		case unicode.IsLetter(c):
			start := i
			for i < n && (unicode.IsLetter(rune(s[i])) || s[i] == '_') {
				i++
			}
			toks = append(toks, token{tokIdent, s[start:i], start})
		case unicode.IsDigit(c) || c == '-' || c == '+' || c == '.':
			start := i
			i++
			for i < n && isNumberByte(s[i]) {
				i++
			}
			numText := s[start:i]
			if _, err := strconv.ParseFloat(numText, 64); err != nil {
				return nil, &LexError{s, start}
			}
			toks = append(toks, token{tokNumber, numText, start})
		default:
			return nil, &LexError{s, i}
		}
	}
	toks = append(toks, token{tokEOF, "", n})
	return toks, nil
}

// isNumberByte reports whether b can continue a numeric literal that began
// with a digit, sign, or decimal point. It accepts a trailing exponent
// (e/E, optionally signed) so "1.5e-10" lexes as one token.
func isNumberByte(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b == '.':
		return true
	case b == 'e' || b == 'E':
		return true
	case b == '+' || b == '-':
		return true
	default:
		return false
	}
}

func (t token) String() string {
	return fmt.Sprintf("%q@%d", t.text, t.pos)
}
