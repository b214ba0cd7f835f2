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
	"context"
	"errors"
	"fmt"

	"github.com/botobag/bookshelf/graphql"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type shelfBook struct {
	ID       int
	Title    string `graphql:"name"`
	AuthorID int
	secret   string
}

func (b shelfBook) Summary() string {
	return fmt.Sprintf("%s by author #%d", b.Title, b.AuthorID)
}

func (b shelfBook) Broken() (string, error) {
	return "", errors.New("broken method")
}

var _ = Describe("DefaultFieldResolver", func() {
	var object *graphql.Object

	BeforeEach(func() {
		object = graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Book",
			Fields: func() graphql.Fields {
				return graphql.Fields{
					"id":       {Type: graphql.Int()},
					"name":     {Type: graphql.String()},
					"authorId": {Type: graphql.Int()},
					"summary":  {Type: graphql.String()},
					"broken":   {Type: graphql.String()},
					"secret":   {Type: graphql.String()},
					"missing":  {Type: graphql.String()},
				}
			},
		})
	})

	resolve := func(source interface{}, fieldName string) (interface{}, error) {
		info := fieldInfo{field: object.Field(fieldName)}
		return graphql.DefaultFieldResolver{}.Resolve(context.Background(), source, info)
	}

	book := shelfBook{ID: 3, Title: "Go in Action", AuthorID: 2, secret: "hidden"}

	It("reads map keys", func() {
		Expect(resolve(map[string]interface{}{"name": "Dune"}, "name")).Should(Equal("Dune"))
		Expect(resolve(map[string]interface{}{}, "name")).Should(BeNil())
	})

	It("matches struct fields ignoring case", func() {
		Expect(resolve(book, "id")).Should(Equal(3))
		Expect(resolve(&book, "authorId")).Should(Equal(2))
	})

	It("prefers the graphql tag", func() {
		Expect(resolve(book, "name")).Should(Equal("Go in Action"))
	})

	It("calls methods named like the field", func() {
		Expect(resolve(book, "summary")).Should(Equal("Go in Action by author #2"))

		_, err := resolve(book, "broken")
		Expect(err).Should(MatchError("broken method"))
	})

	It("skips unexported and unknown fields", func() {
		Expect(resolve(book, "secret")).Should(BeNil())
		Expect(resolve(book, "missing")).Should(BeNil())
	})

	It("resolves nil sources to null", func() {
		var nilBook *shelfBook
		Expect(resolve(nilBook, "id")).Should(BeNil())
		Expect(resolve(nil, "id")).Should(BeNil())
	})
})

var _ = Describe("ArgumentValues", func() {
	It("distinguishes omitted arguments from null", func() {
		args := graphql.NewArgumentValues(map[string]interface{}{"id": nil})

		value, ok := args.Lookup("id")
		Expect(ok).Should(BeTrue())
		Expect(value).Should(BeNil())

		_, ok = args.Lookup("name")
		Expect(ok).Should(BeFalse())
		Expect(graphql.NoArgumentValues().Get("id")).Should(BeNil())
	})
})
