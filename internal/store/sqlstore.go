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
	"database/sql"
	"sync"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	// Register "sqlite3" driver.
	_ "github.com/mattn/go-sqlite3"
)

// InMemorySQLiteDSN opens a private in-memory database.
const InMemorySQLiteDSN = "file::memory:"

const sqliteSchema = `
create table if not exists authors (
	id integer primary key,
	name text not null
);
create table if not exists books (
	id integer primary key,
	name text not null,
	author_id integer not null
);
`

// sqliteStore keeps records in a SQLite database.
type sqliteStore struct {
	db *sql.DB

	// Serializes writers so that two inserts never compute the same id.
	writeMutex sync.Mutex
}

var _ Store = (*sqliteStore)(nil)

// NewSQLiteStore opens the SQLite database at dsn (an in-memory database if empty) and creates the
// tables if they don't exist.
func NewSQLiteStore(ctx context.Context, dsn string) (Store, error) {
	if len(dsn) == 0 {
		dsn = InMemorySQLiteDSN
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite database")
	}

	// An in-memory database lives as long as its connection. Keep exactly one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	s, err := NewSQLStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStore creates a Store over an opened database. The tables are created if they don't exist.
// The Store takes the ownership of db.
func NewSQLStore(ctx context.Context, db *sql.DB) (Store, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, errors.Wrap(err, "create tables")
	}
	return &sqliteStore{db: db}, nil
}

// insert adds a row to table with the next id in a transaction and returns the id.
func (s *sqliteStore) insert(ctx context.Context, table string, columns []string, values ...interface{}) (int, error) {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	var count int
	if err := squirrel.Select("count(*)").From(table).RunWith(tx).QueryRowContext(ctx).Scan(&count); err != nil {
		return 0, errors.Wrapf(err, "count %s", table)
	}

	id := count + 1
	_, err = squirrel.Insert(table).
		Columns(append([]string{"id"}, columns...)...).
		Values(append([]interface{}{id}, values...)...).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return 0, errors.Wrapf(err, "insert into %s", table)
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "commit transaction")
	}

	return id, nil
}

func (s *sqliteStore) AddAuthor(ctx context.Context, name string) (*Author, error) {
	id, err := s.insert(ctx, "authors", []string{"name"}, name)
	if err != nil {
		return nil, errors.Wrap(err, "add author")
	}
	return &Author{
		ID:   id,
		Name: name,
	}, nil
}

func (s *sqliteStore) AddBook(ctx context.Context, name string, authorID int) (*Book, error) {
	id, err := s.insert(ctx, "books", []string{"name", "author_id"}, name, authorID)
	if err != nil {
		return nil, errors.Wrap(err, "add book")
	}
	return &Book{
		ID:       id,
		Name:     name,
		AuthorID: authorID,
	}, nil
}

var (
	selectAuthors = squirrel.Select("id", "name").From("authors").OrderBy("id")
	selectBooks   = squirrel.Select("id", "name", "author_id").From("books").OrderBy("id")
)

func (s *sqliteStore) Author(ctx context.Context, id int) (*Author, error) {
	var author Author
	err := selectAuthors.Where(squirrel.Eq{"id": id}).
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&author.ID, &author.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "query author %d", id)
	}
	return &author, nil
}

func (s *sqliteStore) Book(ctx context.Context, id int) (*Book, error) {
	var book Book
	err := selectBooks.Where(squirrel.Eq{"id": id}).
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&book.ID, &book.Name, &book.AuthorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "query book %d", id)
	}
	return &book, nil
}

func (s *sqliteStore) Authors(ctx context.Context) ([]*Author, error) {
	rows, err := selectAuthors.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "query authors")
	}
	defer rows.Close()

	authors := []*Author{}
	for rows.Next() {
		var author Author
		if err := rows.Scan(&author.ID, &author.Name); err != nil {
			return nil, errors.Wrap(err, "scan author")
		}
		authors = append(authors, &author)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "query authors")
	}

	return authors, nil
}

func (s *sqliteStore) Books(ctx context.Context) ([]*Book, error) {
	rows, err := selectBooks.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "query books")
	}
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		var book Book
		if err := rows.Scan(&book.ID, &book.Name, &book.AuthorID); err != nil {
			return nil, errors.Wrap(err, "scan book")
		}
		books = append(books, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "query books")
	}

	return books, nil
}

func (s *sqliteStore) AuthorsWhere(ctx context.Context, pred func(*Author) bool) ([]*Author, error) {
	authors, err := s.Authors(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(authors, func(author *Author, _ int) bool {
		return pred(author)
	}), nil
}

func (s *sqliteStore) BooksWhere(ctx context.Context, pred func(*Book) bool) ([]*Book, error) {
	books, err := s.Books(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(books, func(book *Book, _ int) bool {
		return pred(book)
	}), nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
