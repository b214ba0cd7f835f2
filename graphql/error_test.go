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


package graphql_test

import (
	"encoding/json"
	"errors"

	"github.com/botobag/bookshelf/graphql"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type errWithLocations struct {
	locations []graphql.ErrorLocation
}

// Locations implements graphql.ErrorWithLocations.
func (e *errWithLocations) Locations() []graphql.ErrorLocation {
	return e.locations
}

func (e *errWithLocations) Error() string {
	return "error provided locations"
}

func expectSerializationResult(e error, expected string) {
	s, err := json.Marshal(e)
	Expect(err).ShouldNot(HaveOccurred())
	Expect(s).Should(MatchJSON(expected))
}

var _ = Describe("Error", func() {
	path := graphql.ResponsePath{}.WithFieldName("author").WithFieldName("books").WithIndex(1).WithFieldName("name")

	It("formats response path", func() {
		Expect(path.String()).Should(Equal("author.books[1].name"))
		Expect(path.Keys()).Should(Equal([]interface{}{"author", "books", 1, "name"}))
		Expect(graphql.ResponsePath{}.Empty()).Should(BeTrue())
	})

	It("doesn't share keys between derived paths", func() {
		base := graphql.ResponsePath{}.WithFieldName("books")
		first := base.WithIndex(0)
		second := base.WithIndex(1)
		Expect(first.String()).Should(Equal("books[0]"))
		Expect(second.String()).Should(Equal("books[1]"))
		Expect(base.String()).Should(Equal("books"))
	})

	It("serializes message, locations and path", func() {
		e := graphql.NewError("boom", graphql.ErrorLocation{Line: 1, Column: 3}, path)
		expectSerializationResult(e, `{
			"message": "boom",
			"locations": [{"line": 1, "column": 3}],
			"path": ["author", "books", 1, "name"]
		}`)
	})

	It("serializes extensions", func() {
		e := graphql.NewError("boom", graphql.ErrorExtensions{"code": "STORE"})
		expectSerializationResult(e, `{"message": "boom", "extensions": {"code": "STORE"}}`)
	})

	It("omits empty locations and path", func() {
		expectSerializationResult(graphql.NewError("boom"), `{"message": "boom"}`)
	})

	It("prints locations and kind", func() {
		e := graphql.NewError("boom", graphql.ErrorLocation{Line: 1, Column: 2}, graphql.ErrKindValidation)
		Expect(e.Error()).Should(Equal("boom at [{Line:1 Column:2}]: validation error"))
	})

	It("prints the underlying error", func() {
		e := graphql.WrapError(errors.New("disk full"), "store failed")
		Expect(e.Error()).Should(Equal("store failed: disk full"))
		Expect(errors.Unwrap(e)).Should(MatchError("disk full"))
	})

	It("inherits locations, path and kind from the underlying error", func() {
		inner := graphql.NewError("inner", graphql.ErrorLocation{Line: 2, Column: 5}, path, graphql.ErrKindCoercion)
		outer := graphql.NewError("outer", inner)
		Expect(outer.Locations).Should(Equal([]graphql.ErrorLocation{{Line: 2, Column: 5}}))
		Expect(outer.Path).Should(Equal(path))
		Expect(outer.Kind).Should(Equal(graphql.ErrKindCoercion))
	})

	It("takes locations from ErrorWithLocations", func() {
		e := graphql.NewError("located", &errWithLocations{
			locations: []graphql.ErrorLocation{{Line: 4, Column: 1}},
		})
		Expect(e.Locations).Should(Equal([]graphql.ErrorLocation{{Line: 4, Column: 1}}))
	})

	It("panics on unknown argument", func() {
		Expect(func() { graphql.NewError("boom", 42) }).Should(Panic())
	})
})

var _ = Describe("Errors", func() {
	It("is empty by default", func() {
		errs := graphql.NoErrors()
		Expect(errs.HaveOccurred()).Should(BeFalse())
		Expect(errs.Len()).Should(Equal(0))
	})

	It("builds an error from NewError arguments", func() {
		errs := graphql.ErrorsOf("bad", graphql.ErrorLocation{Line: 1, Column: 1})
		Expect(errs.Len()).Should(Equal(1))
		Expect(errs.Errors[0].Message).Should(Equal("bad"))
		Expect(errs.Errors[0].Locations).Should(HaveLen(1))
	})

	It("wraps plain errors", func() {
		cause := errors.New("plain")
		errs := graphql.ErrorsOf(cause, graphql.NewError("graphql"))
		Expect(errs.Len()).Should(Equal(2))
		Expect(errs.Errors[0].Message).Should(Equal("plain"))
		Expect(errs.Errors[0].Err).Should(BeIdenticalTo(cause))
		Expect(errs.Error()).Should(Equal("plain\ngraphql"))
	})

	It("appends other lists", func() {
		var errs graphql.Errors
		errs.Emplace("first")
		errs.AppendErrors(graphql.ErrorsOf("second"), graphql.ErrorsOf("third"))
		Expect(errs.Len()).Should(Equal(3))
		Expect(errs.Errors[2].Message).Should(Equal("third"))
	})
})
