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
	"sync"

	"github.com/botobag/bookshelf/concurrent"
	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/graphql/executor"
	"github.com/botobag/bookshelf/graphql/parser"
	"github.com/botobag/bookshelf/graphql/validator"

	// Load standard validation rules.
	_ "github.com/botobag/bookshelf/graphql/validator/rules"
	"github.com/botobag/bookshelf/internal/store"
)

var (
	mutationRunner     *concurrent.WorkerPoolExecutor
	mutationRunnerOnce sync.Once
)

// MutationRunner returns the process-wide executor that runs mutation operations one at a time.
func MutationRunner() concurrent.Executor {
	mutationRunnerOnce.Do(func() {
		var err error
		mutationRunner, err = concurrent.NewWorkerPoolExecutor(concurrent.WorkerPoolExecutorConfig{
			MaxPoolSize: 1,
		})
		if err != nil {
			panic(err)
		}
	})
	return mutationRunner
}

// Request is an operation to be executed by Execute.
type Request struct {
	// Store read and appended by resolvers
	Store store.Store

	Query         string
	OperationName string
	Variables     map[string]interface{}

	// Runner for mutation operations; MutationRunner() is used if nil.
	Runner concurrent.Executor
}

// Execute parses, validates and executes the request against the shared schema. Parse and
// validation errors are returned without data and before any resolver runs.
func Execute(ctx context.Context, request Request) *executor.ExecutionResult {
	schema, err := Schema()
	if err != nil {
		return &executor.ExecutionResult{
			Errors: graphql.ErrorsOf(graphql.NewError("Cannot build schema.", err, graphql.ErrKindInternal)),
		}
	}

	document, err := parser.Parse(request.Query)
	if err != nil {
		return &executor.ExecutionResult{
			Errors: graphql.ErrorsOf(err),
		}
	}

	if errs := validator.Validate(schema, document); errs.HaveOccurred() {
		return &executor.ExecutionResult{
			Errors: errs,
		}
	}

	operation, errs := executor.Prepare(executor.PrepareParams{
		Schema:        schema,
		Document:      document,
		OperationName: request.OperationName,
	})
	if errs.HaveOccurred() {
		return &executor.ExecutionResult{
			Errors: errs,
		}
	}

	runner := request.Runner
	if runner == nil {
		runner = MutationRunner()
	}

	return operation.Execute(ctx, executor.ExecuteParams{
		Runner:         runner,
		AppContext:     request.Store,
		VariableValues: request.Variables,
	})
}
