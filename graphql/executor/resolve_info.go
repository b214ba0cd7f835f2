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
	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/graphql/ast"
)

// resolveInfo implements graphql.ResolveInfo for the field being resolved.
type resolveInfo struct {
	ctx        *executionContext
	object     *graphql.Object
	field      *graphql.Field
	fieldNodes []*ast.Field
	path       graphql.ResponsePath
	args       graphql.ArgumentValues
}

var _ graphql.ResolveInfo = (*resolveInfo)(nil)

func (info *resolveInfo) Schema() *graphql.Schema                { return info.ctx.operation.schema }
func (info *resolveInfo) Operation() *ast.OperationDefinition    { return info.ctx.operation.definition }
func (info *resolveInfo) Object() *graphql.Object                { return info.object }
func (info *resolveInfo) Field() *graphql.Field                  { return info.field }
func (info *resolveInfo) FieldNodes() []*ast.Field               { return info.fieldNodes }
func (info *resolveInfo) Path() graphql.ResponsePath             { return info.path }
func (info *resolveInfo) Args() graphql.ArgumentValues           { return info.args }
func (info *resolveInfo) VariableValues() graphql.VariableValues { return info.ctx.variableValues }
func (info *resolveInfo) RootValue() interface{}                 { return info.ctx.rootValue }
func (info *resolveInfo) AppContext() interface{}                { return info.ctx.appContext }
