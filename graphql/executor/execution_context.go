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

package executor

import (
	"context"

	"github.com/botobag/bookshelf/graphql"
	values "github.com/botobag/bookshelf/graphql/internal/value"
)

// executionContext carries the data needed while executing an operation.
type executionContext struct {
	ctx            context.Context
	operation      *PreparedOperation
	rootValue      interface{}
	appContext     interface{}
	variableValues graphql.VariableValues

	// Errors that occurred during execution
	errs graphql.Errors
}

func newExecutionContext(
	ctx context.Context,
	operation *PreparedOperation,
	params *ExecuteParams) (*executionContext, graphql.Errors) {

	variableValues, errs := values.CoerceVariableValues(
		operation.schema,
		operation.VariableDefinitions(),
		params.VariableValues)
	if errs.HaveOccurred() {
		return nil, errs
	}

	return &executionContext{
		ctx:            ctx,
		operation:      operation,
		rootValue:      params.RootValue,
		appContext:     params.AppContext,
		variableValues: variableValues,
	}, graphql.NoErrors()
}

// execute runs the top-level selection set and assembles the result.
func (ctx *executionContext) execute() *ExecutionResult {
	var (
		operation = ctx.operation
		rootType  = operation.rootType
		fields    = newFieldGroups()
	)

	ctx.collectFields(rootType, operation.definition.SelectionSet, fields, map[string]bool{})

	data, err := ctx.executeFields(rootType, ctx.rootValue, graphql.ResponsePath{}, fields)
	if err != nil {
		// A non-null root field failed. The error has been recorded.
		data = nullResult()
	}

	return &ExecutionResult{
		Data:   data,
		Errors: ctx.errs,
	}
}
