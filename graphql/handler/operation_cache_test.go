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
	"github.com/botobag/bookshelf/graphql/executor"
	"github.com/botobag/bookshelf/graphql/handler"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("LRUOperationCache", func() {
	var operations []*executor.PreparedOperation

	BeforeEach(func() {
		h, err := handler.NewLLHandler(&handler.LLConfig{
			Schema:         newTestSchema(),
			OperationCache: handler.NopOperationCache{},
		})
		Expect(err).ShouldNot(HaveOccurred())

		operations = nil
		for _, query := range []string{"{ greeting }", "{ whoami }", "{ fail }"} {
			operation, err := h.Prepare(query, "")
			Expect(err).ShouldNot(HaveOccurred())
			operations = append(operations, operation)
		}
	})

	It("rejects zero size", func() {
		_, err := handler.NewLRUOperationCache(0)
		Expect(err).Should(HaveOccurred())
	})

	It("evicts the least recently used operation", func() {
		cache, err := handler.NewLRUOperationCache(2)
		Expect(err).ShouldNot(HaveOccurred())

		cache.Add("a", operations[0])
		cache.Add("b", operations[1])
		Expect(cache.Len()).Should(Equal(2))

		// Touch "a" so "b" becomes the oldest.
		operation, ok := cache.Get("a")
		Expect(ok).Should(BeTrue())
		Expect(operation).Should(BeIdenticalTo(operations[0]))

		cache.Add("c", operations[2])
		Expect(cache.Len()).Should(Equal(2))

		_, ok = cache.Get("b")
		Expect(ok).Should(BeFalse())

		operation, ok = cache.Get("a")
		Expect(ok).Should(BeTrue())
		Expect(operation).Should(BeIdenticalTo(operations[0]))

		operation, ok = cache.Get("c")
		Expect(ok).Should(BeTrue())
		Expect(operation).Should(BeIdenticalTo(operations[2]))
	})

	It("replaces operation on existing key", func() {
		cache, err := handler.NewLRUOperationCache(1)
		Expect(err).ShouldNot(HaveOccurred())

		cache.Add("a", operations[0])
		cache.Add("a", operations[1])
		Expect(cache.Len()).Should(Equal(1))

		operation, ok := cache.Get("a")
		Expect(ok).Should(BeTrue())
		Expect(operation).Should(BeIdenticalTo(operations[1]))

		// Entries are recycled after eviction.
		for i := 0; i < 10; i++ {
			cache.Add(string(rune('b'+i)), operations[i%3])
			Expect(cache.Len()).Should(Equal(1))
		}
		operation, ok = cache.Get("k")
		Expect(ok).Should(BeTrue())
		Expect(operation).Should(BeIdenticalTo(operations[0]))
	})

	It("keys operation by query and operation name", func() {
		Expect(handler.OperationCacheKey("{ a }", "")).ShouldNot(Equal(handler.OperationCacheKey("{ a }", "A")))
	})
})

var _ = Describe("NopOperationCache", func() {
	It("caches nothing", func() {
		var cache handler.OperationCache = handler.NopOperationCache{}
		cache.Add("a", nil)
		_, ok := cache.Get("a")
		Expect(ok).Should(BeFalse())
	})
})
