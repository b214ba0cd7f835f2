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

package token_test

import (
	"github.com/botobag/bookshelf/graphql/token"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Token", func() {
	It("describes punctuators with quotes", func() {
		tok := &token.Token{Kind: token.KindLeftBrace, Location: 1, Length: 1}
		Expect(tok.Description()).Should(Equal(`"{"`))
	})

	It("describes names with their value", func() {
		tok := &token.Token{Kind: token.KindName, Location: 3, Length: 4, Value: "book"}
		Expect(tok.Description()).Should(Equal(`Name "book"`))
		Expect(tok.End()).Should(Equal(token.SourceLocation(7)))
	})

	It("describes EOF", func() {
		tok := &token.Token{Kind: token.KindEOF}
		Expect(tok.Description()).Should(Equal("<EOF>"))
	})
})

var _ = Describe("Source", func() {
	It("uses a default name", func() {
		source := token.NewSource(&token.SourceConfig{Body: "{ books }"})
		Expect(source.Name()).Should(Equal("GraphQL request"))
	})

	It("computes line and column", func() {
		source := token.NewSource(&token.SourceConfig{
			Body: "query {\r\n  book(id: 1) {\n\tname\r}\n}",
		})

		Expect(source.LocationInfoOf(1)).Should(Equal(token.SourceLocationInfo{
			Name: "GraphQL request", Line: 1, Column: 1,
		}))
		// "b" of book
		Expect(source.LocationInfoOf(12)).Should(Equal(token.SourceLocationInfo{
			Name: "GraphQL request", Line: 2, Column: 3,
		}))
		// "n" of name
		Expect(source.LocationInfoOf(27)).Should(Equal(token.SourceLocationInfo{
			Name: "GraphQL request", Line: 3, Column: 2,
		}))
		// "}" after the lone "\r"
		Expect(source.LocationInfoOf(32)).Should(Equal(token.SourceLocationInfo{
			Name: "GraphQL request", Line: 4, Column: 1,
		}))
	})

	It("returns a line of text", func() {
		source := token.NewSource(&token.SourceConfig{Body: "{\n  books\n}"})
		Expect(source.Line(2)).Should(Equal("  books"))
		Expect(source.Line(5)).Should(BeEmpty())
	})
})
