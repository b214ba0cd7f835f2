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

package token

import (
	"strings"
)

// SourceLocation is a 1-based byte offset into a Source. The zero value is NoSourceLocation.
type SourceLocation uint

// NoSourceLocation doesn't exist in any source.
const NoSourceLocation SourceLocation = 0

// IsValid return true if the location points into a source.
func (location SourceLocation) IsValid() bool {
	return location != NoSourceLocation
}

// WithOffset returns the location offset bytes away from this one.
func (location SourceLocation) WithOffset(offset int) SourceLocation {
	return SourceLocation(int(location) + offset)
}

// SourceRange is [Begin, End) in a source.
type SourceRange struct {
	Begin SourceLocation
	End   SourceLocation
}

// SourceLocationInfo is the human readable form of a SourceLocation.
type SourceLocationInfo struct {
	Name   string
	Line   uint
	Column uint
}

// SourceConfig configures a Source.
type SourceConfig struct {
	// Query text
	Body string

	// Name of the source shown in error messages; defaults to "GraphQL request".
	Name string
}

// Source is a GraphQL document text together with a name used in error messages.
type Source struct {
	body string
	name string
}

// DefaultSourceName is used when SourceConfig.Name is empty.
const DefaultSourceName = "GraphQL request"

// NewSource creates a Source from config.
func NewSource(config *SourceConfig) *Source {
	name := config.Name
	if len(name) == 0 {
		name = DefaultSourceName
	}
	return &Source{
		body: config.Body,
		name: name,
	}
}

// Body returns the text of the source.
func (source *Source) Body() string {
	return source.body
}

// Name returns the name of the source.
func (source *Source) Name() string {
	return source.name
}

// LocationFromPos converts a 0-based byte position into a SourceLocation.
func (source *Source) LocationFromPos(pos int) SourceLocation {
	return SourceLocation(pos + 1)
}

// PosFromLocation converts a SourceLocation back into a 0-based byte position.
func (source *Source) PosFromLocation(location SourceLocation) int {
	return int(location) - 1
}

// LocationInfoOf computes line and column (both 1-based) for the given location. Lines are
// terminated by "\n", "\r\n" or a lone "\r".
func (source *Source) LocationInfoOf(location SourceLocation) SourceLocationInfo {
	info := SourceLocationInfo{
		Name:   source.name,
		Line:   1,
		Column: 1,
	}
	if !location.IsValid() {
		return info
	}

	pos := source.PosFromLocation(location)
	if pos > len(source.body) {
		pos = len(source.body)
	}

	body := source.body[:pos]
	lineStart := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\r':
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
			fallthrough
		case '\n':
			info.Line++
			lineStart = i + 1
		}
	}
	info.Column = uint(pos-lineStart) + 1
	return info
}

// Line returns the text on the given 1-based line, without its terminator.
func (source *Source) Line(line uint) string {
	lines := strings.Split(strings.Replace(source.body, "\r\n", "\n", -1), "\n")
	if line == 0 || int(line) > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], "\r")
}
