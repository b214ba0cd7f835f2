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

// Package library defines the GraphQL schema of the bookshelf service: authors, books and the
// root operations that read and append them.
package library

import (
	"context"
	"sync"

	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/internal/store"

	"github.com/cockroachdb/errors"
)

// ErrNoStore is returned by resolvers that need a store when the application context of the
// execution doesn't carry one.
var ErrNoStore = errors.New("no store in application context")

// resolveFunc computes a field from its parent value, its arguments and the store.
type resolveFunc func(ctx context.Context, parent interface{}, args graphql.ArgumentValues, s store.Store) (interface{}, error)

// Resolve implements graphql.FieldResolver. The store is the application context of the
// execution.
func (f resolveFunc) Resolve(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	s, ok := info.AppContext().(store.Store)
	if !ok || s == nil {
		return nil, ErrNoStore
	}
	return f(ctx, source, info.Args(), s)
}

// field describes a field of an object together with its resolver.
type field struct {
	name        string
	description string
	t           graphql.Type
	args        graphql.ArgumentConfigMap
	resolve     resolveFunc
}

// objectOf creates an Object from a static table of field descriptors. The table is a function so
// that descriptors can refer to objects declared later.
func objectOf(name string, description string, fields func() []field) *graphql.Object {
	return graphql.MustNewObject(&graphql.ObjectConfig{
		Name:        name,
		Description: description,
		Fields: func() graphql.Fields {
			configs := graphql.Fields{}
			for _, f := range fields() {
				config := &graphql.FieldConfig{
					Description: f.description,
					Type:        f.t,
					Args:        f.args,
				}
				if f.resolve != nil {
					config.Resolver = f.resolve
				}
				configs[f.name] = config
			}
			return configs
		},
	})
}

// nonNullInt and nonNullString are the types of required arguments and fields.
func nonNullInt() graphql.Type    { return graphql.MustNewNonNullOf(graphql.Int()) }
func nonNullString() graphql.Type { return graphql.MustNewNonNullOf(graphql.String()) }

// NewSchema builds the executable schema. Resolvers expect a store.Store as the application
// context of the execution.
func NewSchema() (*graphql.Schema, error) {
	var authorType, bookType *graphql.Object

	authorType = objectOf("Author", "This represents a author of a book", func() []field {
		return []field{
			{
				name: "id",
				t:    nonNullInt(),
			},
			{
				name: "name",
				t:    nonNullString(),
			},
			{
				name:    "books",
				t:       graphql.MustNewListOf(bookType),
				resolve: resolveAuthorBooks,
			},
		}
	})

	bookType = objectOf("Book", "Book details", func() []field {
		return []field{
			{
				name: "id",
				t:    nonNullInt(),
			},
			{
				name: "name",
				t:    nonNullString(),
			},
			{
				name: "authorId",
				t:    nonNullInt(),
			},
			{
				name:    "author",
				t:       authorType,
				resolve: resolveBookAuthor,
			},
		}
	})

	idArgs := graphql.ArgumentConfigMap{
		"id": {
			Type: graphql.Int(),
		},
	}

	queryType := objectOf("Query", "Root Query", func() []field {
		return []field{
			{
				name:        "book",
				description: "A Single Book",
				t:           bookType,
				args:        idArgs,
				resolve:     resolveBook,
			},
			{
				name:        "books",
				description: "List of all books",
				t:           graphql.MustNewListOf(bookType),
				resolve:     resolveBooks,
			},
			{
				name:        "author",
				description: "A Single Author",
				t:           authorType,
				args:        idArgs,
				resolve:     resolveAuthor,
			},
			{
				name:        "authors",
				description: "List of all authors",
				t:           graphql.MustNewListOf(authorType),
				resolve:     resolveAuthors,
			},
		}
	})

	mutationType := objectOf("Mutation", "Root Mutation", func() []field {
		return []field{
			{
				name:        "addBook",
				description: "Add a book",
				t:           bookType,
				args: graphql.ArgumentConfigMap{
					"name": {
						Type: nonNullString(),
					},
					"authorId": {
						Type: nonNullInt(),
					},
				},
				resolve: resolveAddBook,
			},
			{
				name:        "addAuthor",
				description: "Add an author",
				t:           authorType,
				args: graphql.ArgumentConfigMap{
					"name": {
						Type: nonNullString(),
					},
				},
				resolve: resolveAddAuthor,
			},
		}
	})

	return graphql.NewSchema(&graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

var (
	defaultSchema     *graphql.Schema
	defaultSchemaErr  error
	defaultSchemaOnce sync.Once
)

// Schema returns the schema shared by Execute. It is built on first use.
func Schema() (*graphql.Schema, error) {
	defaultSchemaOnce.Do(func() {
		defaultSchema, defaultSchemaErr = NewSchema()
	})
	return defaultSchema, defaultSchemaErr
}
