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

// Package lexer turns a GraphQL source into tokens.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/graphql/token"
)

// Lexer reads tokens from a Source one at a time. Comments are skipped by Advance and Lookahead.
type Lexer struct {
	source *token.Source
	body   string

	// Byte position of the next character to be read
	pos int

	// The current token; starts with a <SOF>.
	token *token.Token

	// Token read ahead by Lookahead
	ahead *token.Token
}

// New creates a lexer positioned at <SOF> of source.
func New(source *token.Source) *Lexer {
	return &Lexer{
		source: source,
		body:   source.Body(),
		token: &token.Token{
			Kind:     token.KindSOF,
			Location: source.LocationFromPos(0),
			Source:   source,
		},
	}
}

// Source returns the source being lexed.
func (lexer *Lexer) Source() *token.Source {
	return lexer.source
}

// Token returns the current token.
func (lexer *Lexer) Token() *token.Token {
	return lexer.token
}

// Advance moves to the next non-comment token and returns it.
func (lexer *Lexer) Advance() (*token.Token, error) {
	tok, err := lexer.Lookahead()
	if err != nil {
		return nil, err
	}
	lexer.token = tok
	lexer.ahead = nil
	return tok, nil
}

// Lookahead returns the next non-comment token without moving to it. At <EOF> it returns <EOF>.
func (lexer *Lexer) Lookahead() (*token.Token, error) {
	if lexer.ahead != nil {
		return lexer.ahead, nil
	}
	if lexer.token.Kind == token.KindEOF {
		return lexer.token, nil
	}

	for {
		tok, err := lexer.readToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind != token.KindComment {
			lexer.ahead = tok
			return tok, nil
		}
	}
}

func (lexer *Lexer) newToken(kind token.Kind, start int, end int, value string) *token.Token {
	return &token.Token{
		Kind:     kind,
		Location: lexer.source.LocationFromPos(start),
		Length:   uint(end - start),
		Value:    value,
		Source:   lexer.source,
	}
}

func (lexer *Lexer) syntaxError(pos int, format string, args ...interface{}) error {
	return graphql.NewSyntaxError(lexer.source, lexer.source.LocationFromPos(pos),
		fmt.Sprintf(format, args...))
}

var punctuators = map[byte]token.Kind{
	'!': token.KindBang,
	'$': token.KindDollar,
	'&': token.KindAmp,
	'(': token.KindLeftParen,
	')': token.KindRightParen,
	':': token.KindColon,
	'=': token.KindEquals,
	'@': token.KindAt,
	'[': token.KindLeftBracket,
	']': token.KindRightBracket,
	'{': token.KindLeftBrace,
	'|': token.KindPipe,
	'}': token.KindRightBrace,
}

// readToken reads the token starting from lexer.pos after skipping ignored characters.
func (lexer *Lexer) readToken() (*token.Token, error) {
	body := lexer.body
	pos := lexer.skipIgnored(lexer.pos)
	if pos >= len(body) {
		lexer.pos = pos
		return lexer.newToken(token.KindEOF, pos, pos, ""), nil
	}

	c := body[pos]
	if c < 0x20 && c != '\t' && c != '\n' && c != '\r' {
		return nil, lexer.syntaxError(pos, "Cannot contain the invalid character %s.", charCode(body, pos))
	}

	if kind, ok := punctuators[c]; ok {
		lexer.pos = pos + 1
		return lexer.newToken(kind, pos, pos+1, ""), nil
	}

	switch {
	case c == '#':
		return lexer.readComment(pos), nil

	case c == '.':
		if strings.HasPrefix(body[pos:], "...") {
			lexer.pos = pos + 3
			return lexer.newToken(token.KindSpread, pos, pos+3, ""), nil
		}

	case isNameStart(c):
		return lexer.readName(pos), nil

	case c == '-' || isDigit(c):
		return lexer.readNumber(pos)

	case c == '"':
		if strings.HasPrefix(body[pos:], `"""`) {
			return lexer.readBlockString(pos)
		}
		return lexer.readString(pos)

	case c == '\'':
		return nil, lexer.syntaxError(pos,
			`Unexpected single quote character ('), did you mean to use a double quote (")?`)
	}

	return nil, lexer.syntaxError(pos, "Cannot parse the unexpected character %s.", charCode(body, pos))
}

// skipIgnored skips whitespace, line terminators, commas and the byte order mark.
func (lexer *Lexer) skipIgnored(pos int) int {
	body := lexer.body
	for pos < len(body) {
		switch body[pos] {
		case ' ', '\t', ',', '\n', '\r':
			pos++
		case 0xEF:
			// UTF-8 encoded BOM (U+FEFF)
			if strings.HasPrefix(body[pos:], "\uFEFF") {
				pos += 3
				continue
			}
			return pos
		default:
			return pos
		}
	}
	return pos
}

func (lexer *Lexer) readComment(start int) *token.Token {
	body := lexer.body
	pos := start + 1
	for pos < len(body) && body[pos] != '\n' && body[pos] != '\r' {
		pos++
	}
	lexer.pos = pos
	return lexer.newToken(token.KindComment, start, pos, body[start+1:pos])
}

func (lexer *Lexer) readName(start int) *token.Token {
	body := lexer.body
	pos := start + 1
	for pos < len(body) && (isNameStart(body[pos]) || isDigit(body[pos])) {
		pos++
	}
	lexer.pos = pos
	return lexer.newToken(token.KindName, start, pos, body[start:pos])
}

// readNumber reads an Int or a Float token:
//
//	Int:   -?(0|[1-9][0-9]*)
//	Float: -?(0|[1-9][0-9]*)(\.[0-9]+)?((E|e)(+|-)?[0-9]+)?
func (lexer *Lexer) readNumber(start int) (*token.Token, error) {
	body := lexer.body
	pos := start
	isFloat := false

	if body[pos] == '-' {
		pos++
	}

	if pos < len(body) && body[pos] == '0' {
		pos++
		if pos < len(body) && isDigit(body[pos]) {
			return nil, lexer.syntaxError(pos, "Invalid number, unexpected digit after 0: %s.",
				charCode(body, pos))
		}
	} else {
		var err error
		if pos, err = lexer.readDigits(pos); err != nil {
			return nil, err
		}
	}

	if pos < len(body) && body[pos] == '.' {
		isFloat = true
		var err error
		if pos, err = lexer.readDigits(pos + 1); err != nil {
			return nil, err
		}
	}

	if pos < len(body) && (body[pos] == 'E' || body[pos] == 'e') {
		isFloat = true
		pos++
		if pos < len(body) && (body[pos] == '+' || body[pos] == '-') {
			pos++
		}
		var err error
		if pos, err = lexer.readDigits(pos); err != nil {
			return nil, err
		}
	}

	// Numbers cannot be followed by . or NameStart.
	if pos < len(body) && (body[pos] == '.' || isNameStart(body[pos])) {
		return nil, lexer.syntaxError(pos, "Invalid number, expected digit but got: %s.",
			charCode(body, pos))
	}

	kind := token.KindInt
	if isFloat {
		kind = token.KindFloat
	}
	lexer.pos = pos
	return lexer.newToken(kind, start, pos, body[start:pos]), nil
}

// readDigits reads one or more digits from pos.
func (lexer *Lexer) readDigits(pos int) (int, error) {
	body := lexer.body
	if pos >= len(body) || !isDigit(body[pos]) {
		return pos, lexer.syntaxError(pos, "Invalid number, expected digit but got: %s.",
			charCode(body, pos))
	}
	for pos < len(body) && isDigit(body[pos]) {
		pos++
	}
	return pos, nil
}

func (lexer *Lexer) readString(start int) (*token.Token, error) {
	body := lexer.body
	pos := start + 1
	var value strings.Builder
	chunkStart := pos

	for pos < len(body) {
		c := body[pos]
		switch {
		case c == '"':
			value.WriteString(body[chunkStart:pos])
			lexer.pos = pos + 1
			return lexer.newToken(token.KindString, start, pos+1, value.String()), nil

		case c == '\n' || c == '\r':
			return nil, lexer.syntaxError(pos, "Unterminated string.")

		case c < 0x20 && c != '\t':
			return nil, lexer.syntaxError(pos, "Invalid character within String: %s.", charCode(body, pos))

		case c == '\\':
			value.WriteString(body[chunkStart:pos])
			pos++
			if pos >= len(body) {
				return nil, lexer.syntaxError(pos, "Unterminated string.")
			}
			switch body[pos] {
			case '"':
				value.WriteByte('"')
			case '/':
				value.WriteByte('/')
			case '\\':
				value.WriteByte('\\')
			case 'b':
				value.WriteByte('\b')
			case 'f':
				value.WriteByte('\f')
			case 'n':
				value.WriteByte('\n')
			case 'r':
				value.WriteByte('\r')
			case 't':
				value.WriteByte('\t')
			case 'u':
				end := pos + 5
				if end > len(body) {
					end = len(body)
				}
				code, err := strconv.ParseUint(body[pos+1:end], 16, 32)
				if err != nil || end-pos != 5 {
					return nil, lexer.syntaxError(pos-1, "Invalid character escape sequence: \\%s.",
						body[pos:end])
				}
				value.WriteRune(rune(code))
				pos += 4
			default:
				_, size := utf8.DecodeRuneInString(body[pos:])
				return nil, lexer.syntaxError(pos-1, "Invalid character escape sequence: \\%s.",
					body[pos:pos+size])
			}
			pos++
			chunkStart = pos

		default:
			pos++
		}
	}

	return nil, lexer.syntaxError(pos, "Unterminated string.")
}

func (lexer *Lexer) readBlockString(start int) (*token.Token, error) {
	body := lexer.body
	pos := start + 3
	var raw strings.Builder
	chunkStart := pos

	for pos < len(body) {
		switch {
		case strings.HasPrefix(body[pos:], `"""`):
			raw.WriteString(body[chunkStart:pos])
			lexer.pos = pos + 3
			return lexer.newToken(token.KindBlockString, start, pos+3, BlockStringValue(raw.String())), nil

		case strings.HasPrefix(body[pos:], `\"""`):
			raw.WriteString(body[chunkStart:pos])
			raw.WriteString(`"""`)
			pos += 4
			chunkStart = pos

		case body[pos] < 0x20 && body[pos] != '\t' && body[pos] != '\n' && body[pos] != '\r':
			return nil, lexer.syntaxError(pos, "Invalid character within String: %s.", charCode(body, pos))

		default:
			pos++
		}
	}

	return nil, lexer.syntaxError(pos, "Unterminated string.")
}

// BlockStringValue computes the value of a block string from its raw text: common indentation
// of all lines but the first is removed, then leading and trailing blank lines.
func BlockStringValue(raw string) string {
	lines := strings.Split(strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(raw), "\n")

	commonIndent := -1
	for _, line := range lines[1:] {
		indent := leadingWhitespace(line)
		if indent < len(line) && (commonIndent == -1 || indent < commonIndent) {
			commonIndent = indent
		}
	}

	if commonIndent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) < commonIndent {
				lines[i] = ""
			} else {
				lines[i] = lines[i][commonIndent:]
			}
		}
	}

	for len(lines) > 0 && leadingWhitespace(lines[0]) == len(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && leadingWhitespace(lines[len(lines)-1]) == len(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}

func leadingWhitespace(line string) int {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return n
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// charCode describes the character at pos for error messages.
func charCode(body string, pos int) string {
	if pos >= len(body) {
		return "<EOF>"
	}
	r, _ := utf8.DecodeRuneInString(body[pos:])
	if r < 0x20 || r == utf8.RuneError || r >= 0x7F {
		return fmt.Sprintf(`"\u%04X"`, r)
	}
	return strconv.Quote(string(r))
}
