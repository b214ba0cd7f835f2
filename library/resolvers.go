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

package library

import (
	"context"

	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/internal/store"
)

// Relationships are computed on read by scanning the store.

func resolveAuthorBooks(ctx context.Context, parent interface{}, args graphql.ArgumentValues, s store.Store) (interface{}, error) {
	author := parent.(*store.Author)
	return s.BooksWhere(ctx, func(book *store.Book) bool {
		return book.AuthorID == author.ID
	})
}

func resolveBookAuthor(ctx context.Context, parent interface{}, args graphql.ArgumentValues, s store.Store) (interface{}, error) {
	book := parent.(*store.Book)
	authors, err := s.AuthorsWhere(ctx, func(author *store.Author) bool {
		return author.ID == book.AuthorID
	})
	if err != nil || len(authors) == 0 {
		return nil, err
	}
	return authors[0], nil
}

// idArg returns the "id" argument. ok is false if the argument is omitted or null.
func idArg(args graphql.ArgumentValues) (id int, ok bool) {
	id, ok = args.Get("id").(int)
	return
}

func resolveBook(ctx context.Context, parent interface{}, args graphql.ArgumentValues, s store.Store) (interface{}, error) {
	id, ok := idArg(args)
	if !ok {
		return nil, nil
	}
	book, err := s.Book(ctx, id)
	if err != nil || book == nil {
		return nil, err
	}
	return book, nil
}

func resolveBooks(ctx context.Context, parent interface{}, args graphql.ArgumentValues, s store.Store) (interface{}, error) {
	return s.Books(ctx)
}

func resolveAuthor(ctx context.Context, parent interface{}, args graphql.ArgumentValues, s store.Store) (interface{}, error) {
	id, ok := idArg(args)
	if !ok {
		return nil, nil
	}
	author, err := s.Author(ctx, id)
	if err != nil || author == nil {
		return nil, err
	}
	return author, nil
}

func resolveAuthors(ctx context.Context, parent interface{}, args graphql.ArgumentValues, s store.Store) (interface{}, error) {
	return s.Authors(ctx)
}

func resolveAddBook(ctx context.Context, parent interface{}, args graphql.ArgumentValues, s store.Store) (interface{}, error) {
	book, err := s.AddBook(ctx, args.Get("name").(string), args.Get("authorId").(int))
	if err != nil {
		return nil, err
	}
	return book, nil
}

// resolveAddAuthor appends an author whose id is derived from the number of authors.
func resolveAddAuthor(ctx context.Context, parent interface{}, args graphql.ArgumentValues, s store.Store) (interface{}, error) {
	author, err := s.AddAuthor(ctx, args.Get("name").(string))
	if err != nil {
		return nil, err
	}
	return author, nil
}
