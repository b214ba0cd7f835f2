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

package executor_test

import (
	"context"
	"sync"

	"github.com/botobag/bookshelf/concurrent"
	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/graphql/executor"
	"github.com/botobag/bookshelf/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Execute: Handles basic execution tasks", func() {
	var schema *graphql.Schema

	BeforeEach(func() {
		schema = newTestSchema()
	})

	It("executes nested selections in the selected order", func() {
		result := execute(schema, `{ hero { name age friends { name } bestFriend { name } } }`,
			executor.ExecuteParams{})
		Expect(result).Should(EncodeTo(`{"data":{"hero":{"name":"Luke","age":19,` +
			`"friends":[{"name":"Han"},{"name":"Leia"}],"bestFriend":{"name":"Han"}}}}`))
	})

	It("resolves null for nullable object and list", func() {
		result := execute(schema, `{ hero { friends { name friends { name } bestFriend { name } } } }`,
			executor.ExecuteParams{})
		Expect(result).Should(MatchResultInJSON(`{
			"data": {
				"hero": {
					"friends": [
						{ "name": "Han", "friends": null, "bestFriend": null },
						{ "name": "Leia", "friends": null, "bestFriend": null }
					]
				}
			}
		}`))
	})

	It("merges fragments, aliases and __typename", func() {
		result := execute(schema, `
			query Q {
				hero {
					...Names
					me: name
					... on Person { years: age }
					__typename
				}
			}

			fragment Names on Person { name friends { name } }
		`, executor.ExecuteParams{})
		Expect(result).Should(EncodeTo(`{"data":{"hero":{"name":"Luke","friends":[{"name":"Han"},` +
			`{"name":"Leia"}],"me":"Luke","years":19,"__typename":"Person"}}}`))
	})

	It("merges selections of the same response key", func() {
		result := execute(schema, `{ hero { bestFriend { name } bestFriend { age } } }`,
			executor.ExecuteParams{})
		Expect(result).Should(EncodeTo(`{"data":{"hero":{"bestFriend":{"name":"Han","age":32}}}}`))
	})

	It("honors @skip and @include", func() {
		query := `query Q($skip: Boolean!) { hero { name @skip(if: $skip) age @include(if: false) } }`

		result := execute(schema, query, executor.ExecuteParams{
			VariableValues: map[string]interface{}{"skip": true},
		})
		Expect(result).Should(EncodeTo(`{"data":{"hero":{}}}`))

		result = execute(schema, query, executor.ExecuteParams{
			VariableValues: map[string]interface{}{"skip": false},
		})
		Expect(result).Should(EncodeTo(`{"data":{"hero":{"name":"Luke"}}}`))
	})

	It("passes arguments with default values and variables", func() {
		result := execute(schema,
			`query ($p: String!) { hero { a: greet(punctuation: "!") b: greet(greeting: "Hi", punctuation: $p) } }`,
			executor.ExecuteParams{
				VariableValues: map[string]interface{}{"p": "?"},
			})
		Expect(result).Should(MatchResultInJSON(`{
			"data": { "hero": { "a": "Hello, Luke!", "b": "Hi, Luke?" } }
		}`))
	})

	It("resolves null for an omitted nullable argument", func() {
		result := execute(schema, `{ echo a: echo(value: 3) }`, executor.ExecuteParams{})
		Expect(result).Should(EncodeTo(`{"data":{"echo":null,"a":3}}`))
	})

	It("provides execution state to resolvers", func() {
		result := execute(schema, `{ ctx: context }`, executor.ExecuteParams{
			AppContext: "app",
			RootValue:  "root",
		})
		Expect(result.Data.Get("ctx").Value).Should(Equal("app|root|ctx|Query.context"))
	})

	It("converts result into plain values", func() {
		result := execute(schema, `{ hero { name friends { age } } }`, executor.ExecuteParams{})
		Expect(result.Data.Interface()).Should(Equal(map[string]interface{}{
			"hero": map[string]interface{}{
				"name": "Luke",
				"friends": []interface{}{
					map[string]interface{}{"age": 32},
					map[string]interface{}{"age": 19},
				},
			},
		}))
	})
})

var _ = Describe("Execute: Handles errors", func() {
	var schema *graphql.Schema

	BeforeEach(func() {
		schema = newTestSchema()
	})

	It("nulls out an erroring nullable field and keeps its siblings", func() {
		result := execute(schema, `{ hero { name fail } }`, executor.ExecuteParams{})

		Expect(result.Errors).Should(testutil.ConsistOfGraphQLErrors(
			testutil.MatchGraphQLError(
				testutil.MessageEqual("fail on Luke"),
				testutil.LocationEqual(graphql.ErrorLocation{Line: 1, Column: 15}),
				testutil.PathEqual("hero", "fail"),
				testutil.KindIs(graphql.ErrKindExecution),
			),
		))
		Expect(result).Should(EncodeTo(`{"errors":[{"message":"fail on Luke",` +
			`"locations":[{"line":1,"column":15}],"path":["hero","fail"]}],` +
			`"data":{"hero":{"name":"Luke","fail":null}}}`))
	})

	It("propagates an error in a non-null field to the parent", func() {
		result := execute(schema, `{ hero { name failNonNull } }`, executor.ExecuteParams{})

		Expect(result.Errors).Should(testutil.ConsistOfGraphQLErrors(
			testutil.MatchGraphQLError(
				testutil.MessageEqual("non-null failure"),
				testutil.LocationEqual(graphql.ErrorLocation{Line: 1, Column: 15}),
				testutil.PathEqual("hero", "failNonNull"),
			),
		))
		Expect(result).Should(MatchResultInJSON(`{
			"errors": [{
				"message": "non-null failure",
				"locations": [{ "line": 1, "column": 15 }],
				"path": ["hero", "failNonNull"]
			}],
			"data": { "hero": null }
		}`))
	})

	It("reports null returned for a non-null field", func() {
		result := execute(schema, `{ hero { nullName } }`, executor.ExecuteParams{})

		Expect(result.Errors).Should(testutil.ConsistOfGraphQLErrors(
			testutil.MatchGraphQLError(
				testutil.MessageEqual("Cannot return null for non-nullable field Person.nullName."),
				testutil.LocationEqual(graphql.ErrorLocation{Line: 1, Column: 10}),
				testutil.PathEqual("hero", "nullName"),
			),
		))
		Expect(result.Data.Get("hero").IsNil()).Should(BeTrue())
	})

	It("nulls out data when a non-null root field fails", func() {
		result := execute(schema, `{ nonNullHero { name } echo(value: 1) }`, executor.ExecuteParams{})

		Expect(result.Errors).Should(testutil.ConsistOfGraphQLErrors(
			testutil.MatchGraphQLError(
				testutil.MessageEqual("Cannot return null for non-nullable field Query.nonNullHero."),
				testutil.LocationEqual(graphql.ErrorLocation{Line: 1, Column: 3}),
				testutil.PathEqual("nonNullHero"),
			),
		))
		Expect(result).Should(MatchResultInJSON(`{
			"errors": [{
				"message": "Cannot return null for non-nullable field Query.nonNullHero.",
				"locations": [{ "line": 1, "column": 3 }],
				"path": ["nonNullHero"]
			}],
			"data": null
		}`))
	})

	It("handles nulls and errors in lists", func() {
		result := execute(schema, `{ hero { loose strictFriends { name } notList } }`, executor.ExecuteParams{})

		Expect(result.Errors).Should(testutil.ConsistOfGraphQLErrors(
			testutil.MatchGraphQLError(
				testutil.MessageEqual("Cannot return null for non-nullable field Person.strictFriends."),
				testutil.LocationEqual(graphql.ErrorLocation{Line: 1, Column: 16}),
				testutil.PathEqual("hero", "strictFriends", 1),
			),
			testutil.MatchGraphQLError(
				testutil.MessageEqual("Expected Iterable, but did not find one for field Person.notList."),
				testutil.LocationEqual(graphql.ErrorLocation{Line: 1, Column: 39}),
				testutil.PathEqual("hero", "notList"),
			),
		))
		Expect(result.Data).Should(WithTransform(func(data *executor.ResultNode) []byte {
			b, err := data.MarshalJSON()
			Expect(err).ShouldNot(HaveOccurred())
			return b
		}, MatchJSON(`{
			"hero": { "loose": ["a", null, "c"], "strictFriends": null, "notList": null }
		}`)))
	})

	It("recovers from a panicking resolver and reports coercion failures", func() {
		result := execute(schema, `{ hero { panic badInt } }`, executor.ExecuteParams{})

		Expect(result.Errors).Should(testutil.ConsistOfGraphQLErrors(
			testutil.MatchGraphQLError(
				testutil.MessageEqual("oops"),
				testutil.LocationEqual(graphql.ErrorLocation{Line: 1, Column: 10}),
				testutil.PathEqual("hero", "panic"),
			),
			testutil.MatchGraphQLError(
				testutil.MessageEqual(`Int cannot represent non-integer value: "not int"`),
				testutil.LocationEqual(graphql.ErrorLocation{Line: 1, Column: 16}),
				testutil.PathEqual("hero", "badInt"),
				testutil.KindIs(graphql.ErrKindCoercion),
			),
		))
		Expect(result).Should(MatchResultInJSON(`{
			"errors": [
				{ "message": "oops", "locations": [{ "line": 1, "column": 10 }], "path": ["hero", "panic"] },
				{
					"message": "Int cannot represent non-integer value: \"not int\"",
					"locations": [{ "line": 1, "column": 16 }],
					"path": ["hero", "badInt"]
				}
			],
			"data": { "hero": { "panic": null, "badInt": null } }
		}`))
	})

	It("reports a required argument bound to a missing variable", func() {
		result := execute(schema, `query ($p: String) { hero { greet(punctuation: $p) } }`,
			executor.ExecuteParams{})

		Expect(result.Errors).Should(testutil.ConsistOfGraphQLErrors(
			testutil.MatchGraphQLError(
				testutil.MessageEqual(`Argument "punctuation" of required type "String!" was provided the `+
					`variable "$p" which was not provided a runtime value.`),
				testutil.LocationEqual(graphql.ErrorLocation{Line: 1, Column: 48}),
				testutil.PathEqual("hero", "greet"),
			),
		))
		Expect(result).Should(EncodeTo(`{"errors":[{"message":"Argument \"punctuation\" of required type ` +
			`\"String!\" was provided the variable \"$p\" which was not provided a runtime value.",` +
			`"locations":[{"line":1,"column":48}],"path":["hero","greet"]}],"data":{"hero":{"greet":null}}}`))
	})

	It("aborts execution on invalid variable values", func() {
		query := `query ($v: Int!) { echo(value: $v) }`

		result := execute(schema, query, executor.ExecuteParams{})
		Expect(result.Data).Should(BeNil())
		Expect(result.Errors).Should(testutil.ConsistOfGraphQLErrors(
			testutil.MatchGraphQLError(
				testutil.MessageEqual(`Variable "$v" of required type "Int!" was not provided.`),
				testutil.LocationEqual(graphql.ErrorLocation{Line: 1, Column: 8}),
			),
		))
		Expect(result).Should(EncodeTo(`{"errors":[{"message":"Variable \"$v\" of required type \"Int!\" ` +
			`was not provided.","locations":[{"line":1,"column":8}]}]}`))

		result = execute(schema, query, executor.ExecuteParams{
			VariableValues: map[string]interface{}{"v": "x"},
		})
		Expect(result.Data).Should(BeNil())
		Expect(result.Errors).Should(testutil.ConsistOfGraphQLErrors(
			testutil.MatchGraphQLError(
				testutil.MessageContainSubstring(`Variable "$v" got invalid value "x"`),
				testutil.KindIs(graphql.ErrKindCoercion),
			),
		))

		result = execute(schema, query, executor.ExecuteParams{
			VariableValues: map[string]interface{}{"v": float64(5)},
		})
		Expect(result).Should(EncodeTo(`{"data":{"echo":5}}`))
	})
})

var _ = Describe("Prepare", func() {
	var schema *graphql.Schema

	BeforeEach(func() {
		schema = newTestSchema()
	})

	It("requires an operation name when the document has multiple operations", func() {
		_, errs := prepare(schema, `query A { echo } query B { echo }`)
		Expect(errs).Should(testutil.ConsistOfGraphQLErrors(
			testutil.MatchGraphQLError(
				testutil.MessageEqual("Must provide operation name if query contains multiple operations."),
			),
		))
	})

	It("selects the operation by name", func() {
		operation, errs := prepare(schema, `query A { echo(value: 1) } query B { echo(value: 2) }`, "B")
		Expect(errs.HaveOccurred()).Should(BeFalse())
		Expect(operation.Definition().Name.Value()).Should(Equal("B"))
		Expect(operation.RootType()).Should(Equal(queryType))

		result := operation.Execute(context.Background(), executor.ExecuteParams{})
		Expect(result).Should(EncodeTo(`{"data":{"echo":2}}`))
	})

	It("rejects an unknown operation name", func() {
		_, errs := prepare(schema, `query A { echo }`, "C")
		Expect(errs).Should(testutil.ConsistOfGraphQLErrors(
			testutil.MatchGraphQLError(testutil.MessageEqual(`Unknown operation named "C".`)),
		))
	})

	It("requires an operation", func() {
		_, errs := prepare(schema, `fragment F on Query { echo }`)
		Expect(errs).Should(testutil.ConsistOfGraphQLErrors(
			testutil.MatchGraphQLError(testutil.MessageEqual("Must provide an operation.")),
		))
	})

	It("rejects mutation on a schema without mutation type", func() {
		schema, err := graphql.NewSchema(&graphql.SchemaConfig{
			Query: queryType,
		})
		Expect(err).ShouldNot(HaveOccurred())

		_, errs := prepare(schema, `mutation { increment }`)
		Expect(errs).Should(testutil.ConsistOfGraphQLErrors(
			testutil.MatchGraphQLError(
				testutil.MessageEqual("Schema is not configured for mutations."),
				testutil.LocationEqual(graphql.ErrorLocation{Line: 1, Column: 1}),
			),
		))
	})
})

var _ = Describe("Execute: Handles mutations", func() {
	var (
		schema *graphql.Schema
		runner *concurrent.WorkerPoolExecutor
	)

	BeforeEach(func() {
		schema = newTestSchema()
		counter = 0

		var err error
		runner, err = concurrent.NewWorkerPoolExecutor(concurrent.WorkerPoolExecutorConfig{
			MaxPoolSize: 1,
		})
		Expect(err).ShouldNot(HaveOccurred())
	})

	AfterEach(func() {
		terminated, err := runner.Shutdown()
		Expect(err).ShouldNot(HaveOccurred())
		Eventually(terminated).Should(BeClosed())
	})

	It("executes root mutation fields serially in order", func() {
		result := execute(schema, `mutation { first: increment second: increment(by: 10) third: increment }`,
			executor.ExecuteParams{Runner: runner})
		Expect(result).Should(EncodeTo(`{"data":{"first":1,"second":11,"third":12}}`))
	})

	It("serializes concurrent mutation operations submitted to the same runner", func() {
		operation, errs := prepare(schema, `mutation { increment }`)
		Expect(errs.HaveOccurred()).Should(BeFalse())

		const N = 20
		var (
			wg      sync.WaitGroup
			results = make([]interface{}, N)
		)
		for i := 0; i < N; i++ {
			wg.Add(1)
			go func(i int) {
				defer GinkgoRecover()
				defer wg.Done()
				result := operation.Execute(context.Background(), executor.ExecuteParams{Runner: runner})
				Expect(result.Errors.HaveOccurred()).Should(BeFalse())
				results[i] = result.Data.Get("increment").Value
			}(i)
		}
		wg.Wait()

		expected := make([]interface{}, N)
		for i := range expected {
			expected[i] = i + 1
		}
		Expect(results).Should(ConsistOf(expected...))
		Expect(counter).Should(Equal(N))
	})

	It("reports mutations submitted after the runner shut down", func() {
		terminated, err := runner.Shutdown()
		Expect(err).ShouldNot(HaveOccurred())
		Eventually(terminated).Should(BeClosed())

		result := execute(schema, `mutation { increment }`, executor.ExecuteParams{Runner: runner})
		Expect(result.Data).Should(BeNil())
		Expect(result.Errors).Should(testutil.ConsistOfGraphQLErrors(
			testutil.MatchGraphQLError(
				testutil.MessageEqual("Cannot schedule the mutation."),
				testutil.KindIs(graphql.ErrKindInternal),
			),
		))
		Expect(counter).Should(BeZero())
	})
})
