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

package store_test

import (
	"context"
	"sync"

	"github.com/botobag/bookshelf/internal/store"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func describeStore(backend store.Backend) {
	Describe(string(backend), func() {
		var (
			ctx context.Context
			s   store.Store
		)

		BeforeEach(func() {
			ctx = context.Background()
			var err error
			s, err = store.Open(ctx, store.Options{Backend: backend})
			Expect(err).ShouldNot(HaveOccurred())
		})

		AfterEach(func() {
			Expect(s.Close()).Should(Succeed())
		})

		It("starts empty", func() {
			authors, err := s.Authors(ctx)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(authors).ShouldNot(BeNil())
			Expect(authors).Should(BeEmpty())

			books, err := s.Books(ctx)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(books).ShouldNot(BeNil())
			Expect(books).Should(BeEmpty())
		})

		It("assigns ids from the number of records of the same kind", func() {
			a, err := s.AddAuthor(ctx, "A")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(*a).Should(Equal(store.Author{ID: 1, Name: "A"}))

			for i := 1; i <= 3; i++ {
				book, err := s.AddBook(ctx, "B", 1)
				Expect(err).ShouldNot(HaveOccurred())
				Expect(book.ID).Should(Equal(i))
			}

			b, err := s.AddAuthor(ctx, "B")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(b.ID).Should(Equal(2))
		})

		It("finds records by id", func() {
			_, err := s.AddAuthor(ctx, "Tolkien")
			Expect(err).ShouldNot(HaveOccurred())
			_, err = s.AddBook(ctx, "The Hobbit", 1)
			Expect(err).ShouldNot(HaveOccurred())

			author, err := s.Author(ctx, 1)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(*author).Should(Equal(store.Author{ID: 1, Name: "Tolkien"}))

			book, err := s.Book(ctx, 1)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(*book).Should(Equal(store.Book{ID: 1, Name: "The Hobbit", AuthorID: 1}))
		})

		It("returns nil for absent records", func() {
			author, err := s.Author(ctx, 999)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(author).Should(BeNil())

			book, err := s.Book(ctx, 0)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(book).Should(BeNil())
		})

		It("doesn't check the author of a book", func() {
			book, err := s.AddBook(ctx, "Orphan", 42)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(book.AuthorID).Should(Equal(42))
		})

		It("scans records with predicate in id order", func() {
			for _, b := range []struct {
				name     string
				authorID int
			}{{"a", 1}, {"b", 2}, {"c", 1}, {"d", 1}} {
				_, err := s.AddBook(ctx, b.name, b.authorID)
				Expect(err).ShouldNot(HaveOccurred())
			}

			books, err := s.BooksWhere(ctx, func(book *store.Book) bool {
				return book.AuthorID == 1
			})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(books).Should(HaveLen(3))
			Expect([]string{books[0].Name, books[1].Name, books[2].Name}).Should(Equal([]string{"a", "c", "d"}))

			books, err = s.BooksWhere(ctx, func(book *store.Book) bool {
				return book.AuthorID == 3
			})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(books).ShouldNot(BeNil())
			Expect(books).Should(BeEmpty())

			_, err = s.AddAuthor(ctx, "x")
			Expect(err).ShouldNot(HaveOccurred())
			_, err = s.AddAuthor(ctx, "y")
			Expect(err).ShouldNot(HaveOccurred())
			authors, err := s.AuthorsWhere(ctx, func(author *store.Author) bool {
				return author.Name == "y"
			})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(authors).Should(HaveLen(1))
			Expect(authors[0].ID).Should(Equal(2))
		})

		It("assigns distinct ids to concurrent appends", func() {
			const n = 32

			var (
				wg    sync.WaitGroup
				mutex sync.Mutex
				ids   []int
			)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer GinkgoRecover()
					defer wg.Done()
					book, err := s.AddBook(ctx, "concurrent", 1)
					Expect(err).ShouldNot(HaveOccurred())
					mutex.Lock()
					ids = append(ids, book.ID)
					mutex.Unlock()
				}()
			}
			wg.Wait()

			expected := make([]interface{}, n)
			for i := range expected {
				expected[i] = i + 1
			}
			Expect(ids).Should(ConsistOf(expected...))

			books, err := s.Books(ctx)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(books).Should(HaveLen(n))
		})
	})
}

var _ = Describe("Store", func() {
	describeStore(store.BackendMemory)
	describeStore(store.BackendSQLite)

	It("rejects unknown backend", func() {
		_, err := store.Open(context.Background(), store.Options{Backend: "mongo"})
		Expect(err).Should(MatchError(ContainSubstring(`unknown store backend`)))
	})
})
