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

// Package executor executes operations of a validated document against a schema.
package executor

import (
	"context"
	"fmt"

	"github.com/botobag/bookshelf/concurrent"
	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/graphql/ast"
)

// PreparedOperation is like "prepared statement" in conventional DBMS. It binds an operation in a
// document to the schema it runs on so that the lookups done here are not repeated by subsequent
// executions. A PreparedOperation is immutable and safe to be executed concurrently.
type PreparedOperation struct {
	// Schema of the type system that is currently executing
	schema *graphql.Schema

	// Document that contains definitions for this operation
	document ast.Document

	// Definition of this operation
	definition *ast.OperationDefinition

	// Root type corresponding to the operation in the schema
	rootType *graphql.Object

	// Fragment definitions in the document by name
	fragmentMap map[string]*ast.FragmentDefinition
}

// PrepareParams specifies parameters to Prepare. Schema and Document are required.
type PrepareParams struct {
	// Schema of the type system that this operation is executing on
	Schema *graphql.Schema

	// Document that contains operations to be prepared for execution; It is expected to have been
	// validated against Schema.
	Document ast.Document

	// The name of the operation in the Document to execute; Can be omitted when the document
	// contains exactly one operation.
	OperationName string
}

// Prepare selects the operation to execute from params.Document and creates a PreparedOperation.
func Prepare(params PrepareParams) (*PreparedOperation, graphql.Errors) {
	var (
		schema        = params.Schema
		document      = params.Document
		operationName = params.OperationName
		operation     *ast.OperationDefinition
		fragmentMap   = map[string]*ast.FragmentDefinition{}
	)

	for _, definition := range document.Definitions {
		switch definition := definition.(type) {
		case *ast.OperationDefinition:
			if len(operationName) == 0 {
				if operation != nil {
					return nil, graphql.ErrorsOf(
						"Must provide operation name if query contains multiple operations.",
						graphql.ErrKindExecution)
				}
				operation = definition
			} else if operationName == definition.Name.Value() {
				operation = definition
			}

		case *ast.FragmentDefinition:
			name := definition.Name.Value()
			if _, exists := fragmentMap[name]; !exists {
				fragmentMap[name] = definition
			}
		}
	}

	if operation == nil {
		if len(operationName) > 0 {
			return nil, graphql.ErrorsOf(fmt.Sprintf(`Unknown operation named "%s".`, operationName),
				graphql.ErrKindExecution)
		}
		return nil, graphql.ErrorsOf("Must provide an operation.", graphql.ErrKindExecution)
	}

	rootType := schema.RootType(operation.Operation)
	if rootType == nil {
		return nil, graphql.ErrorsOf(
			fmt.Sprintf("Schema is not configured for %ss.", operation.Operation),
			graphql.ErrorLocationOfASTNode(operation),
			graphql.ErrKindExecution)
	}

	return &PreparedOperation{
		schema:      schema,
		document:    document,
		definition:  operation,
		rootType:    rootType,
		fragmentMap: fragmentMap,
	}, graphql.NoErrors()
}

// Schema returns the type system definition which the operation is based on.
func (operation *PreparedOperation) Schema() *graphql.Schema {
	return operation.schema
}

// Document returns the request document.
func (operation *PreparedOperation) Document() ast.Document {
	return operation.document
}

// Definition returns the definition of the operation in the document.
func (operation *PreparedOperation) Definition() *ast.OperationDefinition {
	return operation.definition
}

// Type returns the type of the operation (query or mutation).
func (operation *PreparedOperation) Type() ast.OperationType {
	return operation.definition.Operation
}

// RootType returns the object type that the top-level selection set is executed on.
func (operation *PreparedOperation) RootType() *graphql.Object {
	return operation.rootType
}

// VariableDefinitions returns the variable definitions describing the variables taken by the
// operation.
func (operation *PreparedOperation) VariableDefinitions() []*ast.VariableDefinition {
	return operation.definition.VariableDefinitions
}

// FragmentDef finds the fragment definition for given name.
func (operation *PreparedOperation) FragmentDef(name string) *ast.FragmentDefinition {
	return operation.fragmentMap[name]
}

// ExecuteParams specifies parameter to execute a prepared operation.
type ExecuteParams struct {
	// Runner runs mutation operations. All mutations given the same Runner are serialized when it
	// has a single worker. Queries and mutations without a Runner run on the calling goroutine.
	Runner concurrent.Executor

	// RootValue is the source value given to resolvers of the root fields.
	RootValue interface{}

	// AppContext is an application-specific data that will get passed to all resolve functions.
	AppContext interface{}

	// VariableValues contains values for any Variables defined by the Operation.
	VariableValues map[string]interface{}
}

// Execute executes the operation and blocks until the result is available. Errors in variable
// values abort the execution and return a result without data.
func (operation *PreparedOperation) Execute(c context.Context, params ExecuteParams) *ExecutionResult {
	ctx, errs := newExecutionContext(c, operation, &params)
	if errs.HaveOccurred() {
		return &ExecutionResult{
			Errors: errs,
		}
	}

	if params.Runner == nil || operation.Type() != ast.OperationTypeMutation {
		return ctx.execute()
	}

	handle, err := params.Runner.Submit(concurrent.TaskFunc(func() (interface{}, error) {
		return ctx.execute(), nil
	}))
	if err != nil {
		return &ExecutionResult{
			Errors: graphql.ErrorsOf(graphql.NewError("Cannot schedule the mutation.", err, graphql.ErrKindInternal)),
		}
	}

	result, err := handle.AwaitResult(0)
	if err != nil {
		return &ExecutionResult{
			Errors: graphql.ErrorsOf(graphql.NewError("Cannot complete the mutation.", err, graphql.ErrKindInternal)),
		}
	}
	return result.(*ExecutionResult)
}
