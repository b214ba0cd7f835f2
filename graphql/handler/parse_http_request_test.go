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

package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/botobag/bookshelf/graphql/handler"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseHTTPRequest", func() {
	options := &handler.ParseHTTPRequestOptions{
		MaxBodySize: 1024,
	}

	parse := func(method string, target string, contentType string, body string) (*handler.HTTPRequest, error) {
		r := httptest.NewRequest(method, target, strings.NewReader(body))
		if len(contentType) > 0 {
			r.Header.Set("Content-Type", contentType)
		}
		return handler.ParseHTTPRequest(r, options)
	}

	It("parses request from URL", func() {
		req, err := parse(http.MethodGet, "/?"+url.Values{
			"query":         {"{a}"},
			"operationName": {"A"},
			"variables":     {`{"x":1}`},
		}.Encode(), "", "")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(req.Query).Should(Equal("{a}"))
		Expect(req.OperationName).Should(Equal("A"))
		Expect(req.Variables).Should(HaveKeyWithValue("x", BeNumerically("==", 1)))
	})

	It("rejects multiple values for a parameter", func() {
		_, err := parse(http.MethodGet, "/?"+url.Values{"query": {"{a}", "{b}"}}.Encode(), "", "")
		Expect(err).Should(BeAssignableToTypeOf(&handler.HTTPRequestParseError{}))
		Expect(err.Error()).Should(ContainSubstring(`multiple values are provided to "query"`))
	})

	It("parses JSON body with charset", func() {
		req, err := parse(http.MethodPost, "/", "application/json; charset=utf-8",
			`{"query":"{a}","variables":{"id":"1"}}`)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(req.Query).Should(Equal("{a}"))
		Expect(req.Variables).Should(Equal(map[string]interface{}{"id": "1"}))
	})

	It("parses body without content type as JSON", func() {
		req, err := parse(http.MethodPost, "/", "", `{"query":"{a}"}`)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(req.Query).Should(Equal("{a}"))
	})

	It("falls back to URL when body doesn't have a query", func() {
		req, err := parse(http.MethodPost, "/?query=%7Bb%7D", "application/json", `{}`)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(req.Query).Should(Equal("{b}"))

		req, err = parse(http.MethodPost, "/?query=%7Bb%7D", "application/json", `{"query":"{a}"}`)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(req.Query).Should(Equal("{a}"))
	})

	It("rejects body exceeding the limit", func() {
		_, err := parse(http.MethodPost, "/", "application/graphql", strings.Repeat(" ", 1025))
		Expect(err).Should(BeAssignableToTypeOf(&handler.HTTPRequestParseError{}))
		Expect(err.Error()).Should(Equal("request body is too large"))

		req, err := parse(http.MethodPost, "/", "application/graphql", strings.Repeat(" ", 1024))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(req.Query).Should(HaveLen(1024))
	})
})
