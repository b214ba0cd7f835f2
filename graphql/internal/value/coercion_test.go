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

package value_test

import (
	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/graphql/ast"
	"github.com/botobag/bookshelf/graphql/internal/value"
	"github.com/botobag/bookshelf/graphql/parser"
	"github.com/botobag/bookshelf/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Coerce", func() {
	nonNullInt := graphql.MustNewNonNullOf(graphql.Int())
	listOfInt := graphql.MustNewListOf(graphql.Int())

	It("coerces JSON numbers to Int", func() {
		Expect(value.Coerce(float64(3), graphql.Int())).Should(Equal(3))
		Expect(value.Coerce(float64(3), nonNullInt)).Should(Equal(3))
	})

	It("accepts null for nullable types", func() {
		Expect(value.Coerce(nil, graphql.Int())).Should(BeNil())
	})

	It("rejects null for non-null types", func() {
		_, err := value.Coerce(nil, nonNullInt)
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual("Expected non-nullable type Int! not to be null."),
		))
	})

	It("rejects values the scalar cannot represent", func() {
		_, err := value.Coerce("abc", graphql.Int())
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual(`Expected type Int; Int cannot represent non-integer value: "abc"`),
		))
	})

	It("coerces lists and wraps single items", func() {
		Expect(value.Coerce([]interface{}{float64(1), float64(2)}, listOfInt)).Should(
			Equal([]interface{}{1, 2}))
		Expect(value.Coerce(float64(1), listOfInt)).Should(Equal([]interface{}{1}))
	})

	It("reports the index of an invalid list item", func() {
		_, err := value.Coerce([]interface{}{float64(1), "x"}, listOfInt)
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual(`Expected type Int at value[1]; Int cannot represent non-integer value: "x"`),
		))
	})
})

var _ = Describe("FromAST", func() {
	parseValue := func(s string) ast.Value {
		v, err := parser.ParseValue(s)
		Expect(err).ShouldNot(HaveOccurred())
		return v
	}

	It("converts literals", func() {
		Expect(value.FromAST(parseValue("12"), graphql.Int(), graphql.NoVariableValues())).Should(Equal(12))
		Expect(value.FromAST(parseValue(`"abc"`), graphql.String(), graphql.NoVariableValues())).Should(Equal("abc"))
		Expect(value.FromAST(parseValue("null"), graphql.String(), graphql.NoVariableValues())).Should(BeNil())
	})

	It("rejects invalid literals", func() {
		_, err := value.FromAST(parseValue(`"12"`), graphql.Int(), graphql.NoVariableValues())
		Expect(err).Should(HaveOccurred())

		_, err = value.FromAST(parseValue("null"), graphql.MustNewNonNullOf(graphql.Int()), graphql.NoVariableValues())
		Expect(err).Should(HaveOccurred())
	})

	// argumentsOf returns the arguments of the first field in query.
	argumentsOf := func(query string) ast.Arguments {
		document, err := parser.Parse(query)
		Expect(err).ShouldNot(HaveOccurred())
		operation, ok := document.Definitions[0].(*ast.OperationDefinition)
		Expect(ok).Should(BeTrue())
		field, ok := operation.SelectionSet[0].(*ast.Field)
		Expect(ok).Should(BeTrue())
		return field.Arguments
	}

	It("substitutes variables", func() {
		args := argumentsOf(`query ($id: Int) { f(a: $id, b: [1, $id]) }`)
		variables := graphql.NewVariableValues(map[string]interface{}{"id": 7})

		Expect(value.FromAST(args.Get("a").Value, graphql.Int(), variables)).Should(Equal(7))
		Expect(value.FromAST(args.Get("b").Value, graphql.MustNewListOf(graphql.Int()), variables)).Should(
			Equal([]interface{}{1, 7}))
	})

	It("rejects missing variables for non-null types", func() {
		args := argumentsOf(`query ($id: Int) { f(a: $id) }`)
		_, err := value.FromAST(args.Get("a").Value, graphql.MustNewNonNullOf(graphql.Int()), graphql.NoVariableValues())
		Expect(err).Should(MatchError(`variable "$id" of Int! must not be null`))
	})
})

var _ = Describe("CoerceVariableValues", func() {
	schema, err := graphql.NewSchema(&graphql.SchemaConfig{
		Query: graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Query",
			Fields: func() graphql.Fields {
				return graphql.Fields{
					"a": {Type: graphql.Int()},
				}
			},
		}),
	})
	if err != nil {
		panic(err)
	}

	definitionsOf := func(query string) []*ast.VariableDefinition {
		doc, err := parser.Parse(query)
		Expect(err).ShouldNot(HaveOccurred())
		return doc.Definitions[0].(*ast.OperationDefinition).VariableDefinitions
	}

	It("coerces provided values and applies defaults", func() {
		definitions := definitionsOf(`query ($a: Int!, $b: String = "x", $c: Int) { a }`)
		variables, errs := value.CoerceVariableValues(schema, definitions, map[string]interface{}{
			"a": float64(1),
		})
		Expect(errs.HaveOccurred()).Should(BeFalse())
		Expect(variables.Get("a")).Should(Equal(1))
		Expect(variables.Get("b")).Should(Equal("x"))

		_, provided := variables.Lookup("c")
		Expect(provided).Should(BeFalse())
	})

	It("reports missing required variables", func() {
		definitions := definitionsOf(`query ($a: Int!) { a }`)
		_, errs := value.CoerceVariableValues(schema, definitions, nil)
		Expect(errs).Should(testutil.ConsistOfGraphQLErrors(
			testutil.MatchGraphQLError(
				testutil.MessageEqual(`Variable "$a" of required type "Int!" was not provided.`),
				testutil.LocationEqual(graphql.ErrorLocation{Line: 1, Column: 8}),
			),
		))
	})

	It("reports invalid values", func() {
		definitions := definitionsOf(`query ($a: Int) { a }`)
		_, errs := value.CoerceVariableValues(schema, definitions, map[string]interface{}{
			"a": "one",
		})
		Expect(errs).Should(testutil.ConsistOfGraphQLErrors(
			testutil.MatchGraphQLError(
				testutil.MessageEqual(`Variable "$a" got invalid value "one"; Expected type Int; `+
					`Int cannot represent non-integer value: "one"`),
			),
		))
	})
})
