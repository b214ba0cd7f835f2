/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package token defines the lexical tokens of the GraphQL language and the source text they are
// read from.
package token

import (
	"fmt"
)

// Kind identifies the lexical class of a Token.
type Kind int

// Enumeration of Kind
const (
	KindUnknown Kind = iota
	KindSOF
	KindEOF
	KindBang
	KindDollar
	KindAmp
	KindLeftParen
	KindRightParen
	KindSpread
	KindColon
	KindEquals
	KindAt
	KindLeftBracket
	KindRightBracket
	KindLeftBrace
	KindPipe
	KindRightBrace
	KindName
	KindInt
	KindFloat
	KindString
	KindBlockString
	KindComment
)

var kindNames = [...]string{
	KindUnknown:      "<Unknown>",
	KindSOF:          "<SOF>",
	KindEOF:          "<EOF>",
	KindBang:         "!",
	KindDollar:       "$",
	KindAmp:          "&",
	KindLeftParen:    "(",
	KindRightParen:   ")",
	KindSpread:       "...",
	KindColon:        ":",
	KindEquals:       "=",
	KindAt:           "@",
	KindLeftBracket:  "[",
	KindRightBracket: "]",
	KindLeftBrace:    "{",
	KindPipe:         "|",
	KindRightBrace:   "}",
	KindName:         "Name",
	KindInt:          "Int",
	KindFloat:        "Float",
	KindString:       "String",
	KindBlockString:  "BlockString",
	KindComment:      "Comment",
}

// String implements fmt.Stringer.
func (kind Kind) String() string {
	if kind >= 0 && int(kind) < len(kindNames) {
		return kindNames[kind]
	}
	return fmt.Sprintf("<Kind %d>", int(kind))
}

// IsPunctuator returns true for single or multi-character punctuation tokens.
func (kind Kind) IsPunctuator() bool {
	return kind >= KindBang && kind <= KindRightBrace
}

// Token is a lexical token read from a Source.
type Token struct {
	Kind Kind

	// Location of the first character of the token
	Location SourceLocation

	// Number of bytes the token spans in the source
	Length uint

	// Interpreted value for names, numbers, strings and comments
	Value string

	// Source the token was read from
	Source *Source
}

// LocationInfo returns line and column of the token in its source.
func (token *Token) LocationInfo() SourceLocationInfo {
	if token.Source == nil {
		return SourceLocationInfo{Name: DefaultSourceName, Line: 1, Column: uint(token.Location)}
	}
	return token.Source.LocationInfoOf(token.Location)
}

// End returns the location right after the last character of the token.
func (token *Token) End() SourceLocation {
	return token.Location.WithOffset(int(token.Length))
}

// Range returns the source range covered by the token.
func (token *Token) Range() SourceRange {
	return SourceRange{Begin: token.Location, End: token.End()}
}

// Description describes the token in error messages, e.g. `Name "foo"` or `"{"`.
func (token *Token) Description() string {
	switch {
	case token == nil:
		return "<nil>"
	case token.Kind.IsPunctuator():
		return `"` + token.Kind.String() + `"`
	case token.Value != "":
		return fmt.Sprintf(`%s "%s"`, token.Kind, token.Value)
	default:
		return token.Kind.String()
	}
}
