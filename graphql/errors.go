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

package graphql

import (
	"strings"

	"github.com/botobag/bookshelf/graphql/token"
)

// Errors is a list of *Error. It is wrapped in a struct so that callers check errs.HaveOccurred()
// rather than comparing against nil.
type Errors struct {
	Errors []*Error
}

// NoErrors returns an empty Errors.
func NoErrors() Errors {
	return Errors{}
}

// ErrorsOf builds an Errors from either a list of errors or arguments to NewError:
//
//	graphql.ErrorsOf(err1, err2)
//	graphql.ErrorsOf("something wrong", location)
func ErrorsOf(args ...interface{}) Errors {
	var errs Errors
	for i, arg := range args {
		switch arg := arg.(type) {
		case string:
			errs.Emplace(arg, args[i+1:]...)
			return errs
		case error:
			errs.Append(arg)
		default:
			panic("graphql.ErrorsOf: bad call")
		}
	}
	return errs
}

// Emplace constructs an Error from arguments and appends it.
func (errs *Errors) Emplace(message string, args ...interface{}) {
	errs.Errors = append(errs.Errors, NewError(message, args...))
}

// Append appends errors to the list. Errors that are not *Error are wrapped.
func (errs *Errors) Append(e ...error) {
	for _, err := range e {
		if gqlErr, ok := err.(*Error); ok {
			errs.Errors = append(errs.Errors, gqlErr)
		} else {
			errs.Errors = append(errs.Errors, NewError(err.Error(), err))
		}
	}
}

// AppendErrors appends every error in others.
func (errs *Errors) AppendErrors(others ...Errors) {
	for _, other := range others {
		errs.Errors = append(errs.Errors, other.Errors...)
	}
}

// HaveOccurred returns true if the list is not empty.
func (errs Errors) HaveOccurred() bool {
	return len(errs.Errors) > 0
}

// Len returns the number of errors.
func (errs Errors) Len() int {
	return len(errs.Errors)
}

// Error implements Go's error interface.
func (errs Errors) Error() string {
	messages := make([]string, len(errs.Errors))
	for i, err := range errs.Errors {
		messages[i] = err.Error()
	}
	return strings.Join(messages, "\n")
}

type syntaxError struct {
	source      *token.Source
	location    token.SourceLocation
	description string
}

func (e *syntaxError) Error() string {
	return "Syntax Error: " + e.description
}

func (e *syntaxError) Locations() []ErrorLocation {
	info := e.source.LocationInfoOf(e.location)
	return []ErrorLocation{{Line: info.Line, Column: info.Column}}
}

// NewSyntaxError reports a syntax error at location in source.
func NewSyntaxError(source *token.Source, location token.SourceLocation, description string) *Error {
	e := &syntaxError{
		source:      source,
		location:    location,
		description: description,
	}
	return NewError(e.Error(), e, ErrKindSyntax)
}
