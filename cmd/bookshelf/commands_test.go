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

package main

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// run executes the root command with args and returns what it wrote to stdout.
func run(stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

var _ = Describe("bookshelf", func() {
	It("prints version", func() {
		out, err := run("", "version")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(out).Should(HavePrefix("bookshelf dev ("))
	})

	Describe("query", func() {
		It("executes document against seeded store", func() {
			out, err := run("", "query", "{ author(id: 2) { books { name } } }")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(out).Should(MatchJSON(`{
				"data": {
					"author": {
						"books": [
							{"name": "The Fellowship of the Ring"},
							{"name": "The Two Towers"},
							{"name": "The Return of the King"}
						]
					}
				}
			}`))
		})

		It("accepts variables", func() {
			out, err := run("", "query", "query ($id: Int) { book(id: $id) { name } }", "--var", "id=4")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(out).Should(MatchJSON(`{"data":{"book":{"name":"The Fellowship of the Ring"}}}`))

			out, err = run("", "query", "mutation ($name: String!) { addAuthor(name: $name) { id name } }",
				"--variables", `{"name": "Ann Leckie"}`, "--store", "sqlite")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(out).Should(MatchJSON(`{"data":{"addAuthor":{"id":4,"name":"Ann Leckie"}}}`))
		})

		It("selects operation by name", func() {
			out, err := run("", "query", "query A { books { id } } query B { authors { id } }", "-o", "B")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(out).Should(MatchJSON(`{"data":{"authors":[{"id":1},{"id":2},{"id":3}]}}`))
		})

		It("reads document from stdin", func() {
			out, err := run("{ book(id: 8) { author { name } } }", "query", "-")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(out).Should(MatchJSON(`{"data":{"book":{"author":{"name":"Brent Weeks"}}}}`))
		})

		It("fails on invalid document", func() {
			out, err := run("", "query", "{ book(id: 1) { title } }")
			Expect(err).Should(Equal(errRequestFailed))
			Expect(out).Should(ContainSubstring(`Cannot query field \"title\" on type \"Book\".`))
		})

		It("rejects unknown store backend", func() {
			_, err := run("", "query", "{ books { id } }", "--store", "mongo")
			Expect(err).Should(MatchError(`store.backend must be memory or sqlite, got "mongo"`))
		})
	})

	Describe("parseVariables", func() {
		It("merges JSON object and name=value pairs", func() {
			values, err := parseVariables(`{"a": 1, "b": "x"}`, []string{"b=y", "c=true", "d=[1,2]", "e=a=b"})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(values).Should(Equal(map[string]interface{}{
				"a": float64(1),
				"b": "y",
				"c": true,
				"d": []interface{}{float64(1), float64(2)},
				"e": "a=b",
			}))
		})

		It("rejects malformed input", func() {
			_, err := parseVariables(`[1]`, nil)
			Expect(err).Should(HaveOccurred())

			_, err = parseVariables("", []string{"novalue"})
			Expect(err).Should(HaveOccurred())

			_, err = parseVariables("", []string{"=1"})
			Expect(err).Should(HaveOccurred())
		})
	})
})
