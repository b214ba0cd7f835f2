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

package parser_test

import (
	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/graphql/ast"
	"github.com/botobag/bookshelf/graphql/parser"
	"github.com/botobag/bookshelf/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("Parser", func() {
	It("parses a query shorthand", func() {
		doc, err := parser.Parse(`{ book(id: 1) { id name author { name } } }`)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(doc.Definitions).Should(HaveLen(1))

		op := doc.Definitions[0].(*ast.OperationDefinition)
		Expect(op.IsQueryShorthand()).Should(BeTrue())
		Expect(op.Operation).Should(Equal(ast.OperationTypeQuery))
		Expect(op.Name.IsNil()).Should(BeTrue())
		Expect(op.SelectionSet).Should(HaveLen(1))

		book := op.SelectionSet[0].(*ast.Field)
		Expect(book.Name.Value()).Should(Equal("book"))
		Expect(book.Arguments).Should(HaveLen(1))
		Expect(book.Arguments.Get("id").Value.(*ast.IntValue).Value()).Should(Equal("1"))
		Expect(book.SelectionSet).Should(HaveLen(3))

		author := book.SelectionSet[2].(*ast.Field)
		Expect(author.ResponseKey()).Should(Equal("author"))
		Expect(author.SelectionSet).Should(HaveLen(1))
	})

	It("parses a named mutation with variables and aliases", func() {
		doc, err := parser.Parse(`
			mutation AddBook($name: String!, $authorId: Int! = 2) {
				created: addBook(name: $name, authorId: $authorId) { id }
			}
		`)
		Expect(err).ShouldNot(HaveOccurred())

		op := doc.Definitions[0].(*ast.OperationDefinition)
		Expect(op.Operation).Should(Equal(ast.OperationTypeMutation))
		Expect(op.Name.Value()).Should(Equal("AddBook"))
		Expect(op.VariableDefinitions).Should(HaveLen(2))
		Expect(op.VariableDefinitions[0].Variable.Name.Value()).Should(Equal("name"))
		Expect(op.VariableDefinitions[0].Type.String()).Should(Equal("String!"))
		Expect(ast.PrintValue(op.VariableDefinitions[1].DefaultValue)).Should(Equal("2"))

		field := op.SelectionSet[0].(*ast.Field)
		Expect(field.Alias.Value()).Should(Equal("created"))
		Expect(field.Name.Value()).Should(Equal("addBook"))
		Expect(field.ResponseKey()).Should(Equal("created"))
		Expect(field.Arguments.Get("name").Value.(*ast.Variable).Name.Value()).Should(Equal("name"))
	})

	It("parses fragments and directives", func() {
		doc, err := parser.Parse(`
			query Q($withAuthor: Boolean!) {
				books {
					...BookFields
					... on Book @include(if: $withAuthor) { author { name } }
					... @skip(if: false) { id }
				}
			}

			fragment BookFields on Book { name }
		`)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(doc.Definitions).Should(HaveLen(2))

		books := doc.Definitions[0].(*ast.OperationDefinition).SelectionSet[0].(*ast.Field)
		Expect(books.SelectionSet).Should(HaveLen(3))

		spread := books.SelectionSet[0].(*ast.FragmentSpread)
		Expect(spread.Name.Value()).Should(Equal("BookFields"))

		inline := books.SelectionSet[1].(*ast.InlineFragment)
		Expect(inline.TypeCondition.Name.Value()).Should(Equal("Book"))
		Expect(inline.Directives.Get("include")).ShouldNot(BeNil())

		untyped := books.SelectionSet[2].(*ast.InlineFragment)
		Expect(untyped.TypeCondition).Should(BeNil())

		fragment := doc.Definitions[1].(*ast.FragmentDefinition)
		Expect(fragment.Name.Value()).Should(Equal("BookFields"))
		Expect(fragment.TypeCondition.Name.Value()).Should(Equal("Book"))
	})

	It("parses list and nested types", func() {
		doc, err := parser.Parse(`query ($ids: [Int!]!) { books { id } }`)
		Expect(err).ShouldNot(HaveOccurred())
		op := doc.Definitions[0].(*ast.OperationDefinition)
		Expect(op.VariableDefinitions[0].Type.String()).Should(Equal("[Int!]!"))
		Expect(ast.NamedTypeOf(op.VariableDefinitions[0].Type).Name.Value()).Should(Equal("Int"))
	})

	DescribeTable("reports syntax errors",
		func(query string, message string, location graphql.ErrorLocation) {
			_, err := parser.Parse(query)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(message),
				testutil.LocationEqual(location),
				testutil.KindIs(graphql.ErrKindSyntax),
			))
		},
		Entry("empty document", "", "Syntax Error: Unexpected <EOF>.",
			graphql.ErrorLocation{Line: 1, Column: 1}),
		Entry("incomplete selection", "{", "Syntax Error: Expected Name, found <EOF>.",
			graphql.ErrorLocation{Line: 1, Column: 2}),
		Entry("missing fragment type condition", "{ ...MissingOn }\nfragment MissingOn Type",
			`Syntax Error: Expected "on", found Name "Type".`,
			graphql.ErrorLocation{Line: 2, Column: 20}),
		Entry("missing argument value", "{ book(id: ) { name } }", `Syntax Error: Unexpected ")".`,
			graphql.ErrorLocation{Line: 1, Column: 12}),
		Entry("variable in constant position", "query ($id: Int = $other) { book { name } }",
			`Syntax Error: Unexpected "$".`, graphql.ErrorLocation{Line: 1, Column: 19}),
		Entry("unknown definition", "notanoperation Foo { field }",
			`Syntax Error: Unexpected Name "notanoperation".`, graphql.ErrorLocation{Line: 1, Column: 1}),
		Entry("fragment named on", "fragment on on on { on }",
			`Syntax Error: Unexpected Name "on".`, graphql.ErrorLocation{Line: 1, Column: 10}),
	)

	It("parses values", func() {
		value, err := parser.ParseValue(`[123 "abc" null true {a: FOO, b: 1.5}]`)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(ast.PrintValue(value)).Should(Equal(`[123, "abc", null, true, {a: FOO, b: 1.5}]`))
	})
})
