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
	"context"

	"github.com/botobag/bookshelf/concurrent"
	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/graphql/handler"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("LLHandler", func() {
	var schema *graphql.Schema

	BeforeEach(func() {
		schema = newTestSchema()
	})

	It("requires a schema", func() {
		_, err := handler.NewLLHandler(&handler.LLConfig{})
		Expect(err).Should(HaveOccurred())
	})

	It("caches prepared operations", func() {
		h, err := handler.NewLLHandler(&handler.LLConfig{Schema: schema})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(h.Schema()).Should(Equal(schema))
		Expect(h.OperationCache()).ShouldNot(BeNil())

		a, err := h.Prepare("{ greeting }", "")
		Expect(err).ShouldNot(HaveOccurred())
		b, err := h.Prepare("{ greeting }", "")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(a).Should(BeIdenticalTo(b))

		c, err := h.Prepare("query A { greeting } query B { whoami }", "B")
		Expect(err).ShouldNot(HaveOccurred())
		d, err := h.Prepare("query A { greeting } query B { whoami }", "A")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(c).ShouldNot(BeIdenticalTo(d))
	})

	It("disables cache with NopOperationCache", func() {
		h, err := handler.NewLLHandler(&handler.LLConfig{
			Schema:         schema,
			OperationCache: handler.NopOperationCache{},
		})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(h.OperationCache()).Should(BeNil())

		a, err := h.Prepare("{ greeting }", "")
		Expect(err).ShouldNot(HaveOccurred())
		b, err := h.Prepare("{ greeting }", "")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(a).ShouldNot(BeIdenticalTo(b))
	})

	It("reports errors in preparing operation", func() {
		h, err := handler.NewLLHandler(&handler.LLConfig{Schema: schema})
		Expect(err).ShouldNot(HaveOccurred())

		_, err = h.Prepare("", "")
		Expect(err).Should(Equal(handler.ErrEmptyQuery{}))

		_, err = h.Prepare("{", "")
		Expect(err).Should(BeAssignableToTypeOf(&handler.ErrParseQuery{}))

		_, err = h.Prepare("{ unknown }", "")
		Expect(err).Should(BeAssignableToTypeOf(&handler.ErrPrepare{}))
		Expect(err.(*handler.ErrPrepare).Errs.Errors).Should(HaveLen(1))

		_, err = h.Prepare("{ greeting }", "Missing")
		Expect(err).Should(BeAssignableToTypeOf(&handler.ErrPrepare{}))
		Expect(err.Error()).Should(ContainSubstring(`Unknown operation named "Missing".`))
	})

	It("runs mutations with the runner", func() {
		runner, err := concurrent.NewWorkerPoolExecutor(concurrent.WorkerPoolExecutorConfig{
			MaxPoolSize: 1,
		})
		Expect(err).ShouldNot(HaveOccurred())
		defer runner.Shutdown()

		h, err := handler.NewLLHandler(&handler.LLConfig{
			Schema: schema,
			Runner: runner,
		})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(h.Runner()).Should(BeIdenticalTo(runner))

		operation, err := h.Prepare("mutation { bump }", "")
		Expect(err).ShouldNot(HaveOccurred())

		result := h.Serve(&handler.Request{
			Ctx:       context.Background(),
			Operation: operation,
		})
		Expect(result.Errors.HaveOccurred()).Should(BeFalse())
		Expect(result.Data.Get("bump").Value).Should(BeNumerically(">", 0))
	})
})
