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

// Package store keeps the authors and books served by the library schema.
package store

import (
	"context"

	"github.com/cockroachdb/errors"
)

// Author writes books.
type Author struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

// Book is written by the author identified by AuthorID. The author is not required to exist.
type Book struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	AuthorID int    `yaml:"authorId"`
}

// Store owns the author and book records. Records are append-only: the id of a new record is the
// number of records of its kind plus one, assigned under the store's writer lock. Lookups return
// (nil, nil) when no record matches. Records returned by a store must not be modified.
type Store interface {
	AddAuthor(ctx context.Context, name string) (*Author, error)
	AddBook(ctx context.Context, name string, authorID int) (*Book, error)

	Author(ctx context.Context, id int) (*Author, error)
	Book(ctx context.Context, id int) (*Book, error)

	// Authors and Books return all records ordered by id.
	Authors(ctx context.Context) ([]*Author, error)
	Books(ctx context.Context) ([]*Book, error)

	// AuthorsWhere and BooksWhere scan all records in id order and return the ones satisfying pred.
	AuthorsWhere(ctx context.Context, pred func(*Author) bool) ([]*Author, error)
	BooksWhere(ctx context.Context, pred func(*Book) bool) ([]*Book, error)

	Close() error
}

// Backend names a Store implementation.
type Backend string

// Enumeration of Backend
const (
	BackendMemory Backend = "memory"
	BackendSQLite Backend = "sqlite"
)

// Options specifies the store to be opened by Open.
type Options struct {
	Backend Backend

	// DSN of the SQLite database; an in-memory database is used if empty.
	DSN string
}

// ErrUnknownBackend is returned by Open for a backend it doesn't know.
var ErrUnknownBackend = errors.New("unknown store backend")

// Open creates an empty store.
func Open(ctx context.Context, options Options) (Store, error) {
	switch options.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendSQLite:
		return NewSQLiteStore(ctx, options.DSN)
	default:
		return nil, errors.Wrapf(ErrUnknownBackend, "%q", options.Backend)
	}
}
