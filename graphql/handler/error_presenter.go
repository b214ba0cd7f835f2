/**
 * Copyright (c) 2019, The Artemis Authors.
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

package handler

import (
	"net/http"
	"strings"

	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/graphql/ast"
	"github.com/botobag/bookshelf/graphql/executor"

	"go.uber.org/zap"
)

// ErrEmptyQuery is returned when a request doesn't provide a query.
type ErrEmptyQuery struct{}

// Error implements Go's error interface.
func (ErrEmptyQuery) Error() string {
	return "Must provide query string."
}

// ErrParseQuery describes an invalid GraphQL query document that failed parsing.
type ErrParseQuery struct {
	Query string
	Err   error
}

// Error implements Go's error interface.
func (err *ErrParseQuery) Error() string {
	return "invalid query: " + err.Err.Error()
}

// Unwrap returns the underlying error.
func (err *ErrParseQuery) Unwrap() error {
	return err.Err
}

// ErrPrepare indicates a query that failed validation or whose operation cannot be selected.
type ErrPrepare struct {
	Document ast.Document
	Errs     graphql.Errors
}

// Error implements Go's error interface.
func (err *ErrPrepare) Error() string {
	var buf strings.Builder
	buf.WriteString("cannot prepare executable operation for query because of following error(s):")
	for _, e := range err.Errs.Errors {
		buf.WriteString("\n\t")
		buf.WriteString(e.Error())
	}
	return buf.String()
}

// ErrMethodNotAllowed is returned when a request is sent with a HTTP method that cannot serve it.
type ErrMethodNotAllowed struct {
	// Methods that are allowed, to be sent in the Allow header
	Allow []string

	Message string
}

// Error implements Go's error interface.
func (err *ErrMethodNotAllowed) Error() string {
	return err.Message
}

// ErrorPresenter presents an error to a http.ResponseWriter.
type ErrorPresenter interface {
	// Write sends the given error to w.
	Write(w http.ResponseWriter, r *http.Request, err error)
}

// DefaultErrorPresenter writes errors in the GraphQL response format with an appropriate status
// code.
type DefaultErrorPresenter struct {
	Logger *zap.Logger
}

// Write implements ErrorPresenter.
func (presenter DefaultErrorPresenter) Write(w http.ResponseWriter, r *http.Request, err error) {
	var (
		status int
		errs   graphql.Errors
	)

	switch err := err.(type) {
	case *HTTPRequestParseError:
		status = http.StatusBadRequest
		if err.Err == errRequestBodyTooLarge {
			status = http.StatusRequestEntityTooLarge
		}
		errs = graphql.ErrorsOf(err.Error())

	case ErrEmptyQuery:
		status = http.StatusBadRequest
		errs = graphql.ErrorsOf(err.Error())

	case *ErrParseQuery:
		status = http.StatusBadRequest
		errs = graphql.ErrorsOf(err.Err)

	case *ErrPrepare:
		status = http.StatusBadRequest
		errs = err.Errs

	case *ErrMethodNotAllowed:
		status = http.StatusMethodNotAllowed
		w.Header().Set("Allow", strings.Join(err.Allow, ", "))
		errs = graphql.ErrorsOf(err.Message)

	default:
		status = http.StatusInternalServerError
		errs = graphql.ErrorsOf(http.StatusText(status))
		presenter.logger().Error("unexpected error in serving GraphQL request", zap.Error(err))
	}

	writeResult(w, status, &executor.ExecutionResult{Errors: errs}, presenter.logger())
}

func (presenter DefaultErrorPresenter) logger() *zap.Logger {
	if presenter.Logger == nil {
		return zap.NewNop()
	}
	return presenter.Logger
}

// writeResult writes result in JSON with status.
func writeResult(w http.ResponseWriter, status int, result *executor.ExecutionResult, logger *zap.Logger) {
	header := w.Header()
	header.Set("Content-Type", "application/json; charset=utf-8")
	header.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)

	if err := result.MarshalJSONTo(w); err != nil {
		logger.Warn("failed to write GraphQL response", zap.Int("status", status), zap.Error(err))
	}
}
