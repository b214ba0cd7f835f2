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
	"context"
	"errors"

	"github.com/botobag/bookshelf/concurrent"
	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/graphql/executor"
	"github.com/botobag/bookshelf/graphql/parser"
	"github.com/botobag/bookshelf/graphql/validator"

	// Load standard validation rules.
	_ "github.com/botobag/bookshelf/graphql/validator/rules"
)

// DefaultOperationCacheSize is the number of prepared operations kept by the default cache.
const DefaultOperationCacheSize = 512

// LLHandler is a transport-independent building block for serving GraphQL requests against a
// schema in a long-running process. It turns queries into prepared operations (parse, validate and
// prepare, with the result cached) and executes them.
type LLHandler struct {
	// Schema served by this handler
	schema *graphql.Schema

	// Cache for the prepared operations; nil disables cache.
	cache OperationCache

	// Runner for mutation operations; nil runs mutations on the serving goroutine.
	runner concurrent.Executor
}

// LLConfig contains configuration to set up a LLHandler.
type LLConfig struct {
	// Schema to be working on
	Schema *graphql.Schema

	// OperationCache caches executor.PreparedOperation created from a query. An LRU cache with
	// DefaultOperationCacheSize entries is created if not given. Use NopOperationCache to disable
	// caching.
	OperationCache OperationCache

	// Runner given to executor.ExecuteParams of every request
	Runner concurrent.Executor
}

var errMissingSchema = errors.New("bookshelf/handler: must specify a schema")

// NewLLHandler creates a LLHandler from given configuration.
func NewLLHandler(config *LLConfig) (*LLHandler, error) {
	schema := config.Schema
	if schema == nil {
		return nil, errMissingSchema
	}

	cache := config.OperationCache
	if cache == nil {
		var err error
		cache, err = NewLRUOperationCache(DefaultOperationCacheSize)
		if err != nil {
			return nil, err
		}
	} else if _, isNop := cache.(NopOperationCache); isNop {
		cache = nil
	}

	return &LLHandler{
		schema: schema,
		cache:  cache,
		runner: config.Runner,
	}, nil
}

// Schema returns handler.schema.
func (handler *LLHandler) Schema() *graphql.Schema {
	return handler.schema
}

// OperationCache returns handler.cache.
func (handler *LLHandler) OperationCache() OperationCache {
	return handler.cache
}

// Runner returns handler.runner.
func (handler *LLHandler) Runner() concurrent.Executor {
	return handler.runner
}

// Prepare returns the operation named operationName in query ready for execution. The returned
// error is one of ErrEmptyQuery, *ErrParseQuery and *ErrPrepare.
func (handler *LLHandler) Prepare(query string, operationName string) (*executor.PreparedOperation, error) {
	if len(query) == 0 {
		return nil, ErrEmptyQuery{}
	}

	key := OperationCacheKey(query, operationName)
	if handler.cache != nil {
		if operation, ok := handler.cache.Get(key); ok {
			return operation, nil
		}
	}

	document, err := parser.Parse(query)
	if err != nil {
		return nil, &ErrParseQuery{
			Query: query,
			Err:   err,
		}
	}

	// Validation errors abort the request before anything is executed.
	if errs := validator.Validate(handler.schema, document); errs.HaveOccurred() {
		return nil, &ErrPrepare{
			Document: document,
			Errs:     errs,
		}
	}

	operation, errs := executor.Prepare(executor.PrepareParams{
		Schema:        handler.schema,
		Document:      document,
		OperationName: operationName,
	})
	if errs.HaveOccurred() {
		return nil, &ErrPrepare{
			Document: document,
			Errs:     errs,
		}
	}

	if handler.cache != nil {
		handler.cache.Add(key, operation)
	}

	return operation, nil
}

// Request contains parameter required by Serve.
type Request struct {
	Ctx       context.Context
	Operation *executor.PreparedOperation
	Params    executor.ExecuteParams
}

// Serve executes the operation with given context and parameters. The handler's runner is used if
// request.Params doesn't specify one.
func (handler *LLHandler) Serve(request *Request) *executor.ExecutionResult {
	params := request.Params
	if params.Runner == nil {
		params.Runner = handler.runner
	}

	ctx := request.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	return request.Operation.Execute(ctx, params)
}
