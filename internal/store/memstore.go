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

package store

import (
	"context"
	"sync"

	"github.com/samber/lo"
)

// memoryStore keeps records in slices.
type memoryStore struct {
	mutex   sync.RWMutex
	authors []*Author
	books   []*Book
}

var _ Store = (*memoryStore)(nil)

// NewMemoryStore creates an empty Store that keeps records in memory.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) AddAuthor(ctx context.Context, name string) (*Author, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	author := &Author{
		ID:   len(s.authors) + 1,
		Name: name,
	}
	s.authors = append(s.authors, author)
	return author, nil
}

func (s *memoryStore) AddBook(ctx context.Context, name string, authorID int) (*Book, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	book := &Book{
		ID:       len(s.books) + 1,
		Name:     name,
		AuthorID: authorID,
	}
	s.books = append(s.books, book)
	return book, nil
}

func (s *memoryStore) Author(ctx context.Context, id int) (*Author, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	author, _ := lo.Find(s.authors, func(author *Author) bool {
		return author.ID == id
	})
	return author, nil
}

func (s *memoryStore) Book(ctx context.Context, id int) (*Book, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	book, _ := lo.Find(s.books, func(book *Book) bool {
		return book.ID == id
	})
	return book, nil
}

func (s *memoryStore) Authors(ctx context.Context) ([]*Author, error) {
	return s.AuthorsWhere(ctx, func(*Author) bool { return true })
}

func (s *memoryStore) Books(ctx context.Context) ([]*Book, error) {
	return s.BooksWhere(ctx, func(*Book) bool { return true })
}

func (s *memoryStore) AuthorsWhere(ctx context.Context, pred func(*Author) bool) ([]*Author, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return lo.Filter(s.authors, func(author *Author, _ int) bool {
		return pred(author)
	}), nil
}

func (s *memoryStore) BooksWhere(ctx context.Context, pred func(*Book) bool) ([]*Book, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return lo.Filter(s.books, func(book *Book, _ int) bool {
		return pred(book)
	}), nil
}

func (s *memoryStore) Close() error {
	return nil
}
