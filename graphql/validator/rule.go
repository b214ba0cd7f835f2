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

package validator

import (
	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/graphql/ast"
)

// A rule validates nodes in a document according to one of the sections under "Validation" in
// specification [0]. It implements one or more of the XXXRule interfaces below. The walker calls
// the Check functions as it enters the corresponding nodes.
//
// [0]: https://facebook.github.io/graphql/June2018/#sec-Validation

// NextCheckAction is the type of return value from rule's Check function. It specifies which action
// to take when the rule is invoked next time in current validation request.
type NextCheckAction int

// Enumeration of NextCheckAction
const (
	// Continue running the rule
	ContinueCheck NextCheckAction = iota

	// Don't run the rule on any of child nodes of the current one
	SkipCheckForChildNodes

	// Stop running the rule in current validation request
	StopCheck
)

// OperationRule validates an OperationDefinition.
type OperationRule interface {
	CheckOperation(ctx *ValidationContext, operation *ast.OperationDefinition) NextCheckAction
}

// VariableRule validates a VariableDefinition. t is nil if the type is unknown.
type VariableRule interface {
	CheckVariable(
		ctx *ValidationContext,
		t graphql.Type,
		variable *ast.VariableDefinition) NextCheckAction
}

// FragmentRule validates a FragmentDefinition.
type FragmentRule interface {
	CheckFragment(ctx *ValidationContext, fragmentInfo *FragmentInfo) NextCheckAction
}

// SelectionSetRule validates a SelectionSet. parentType could be nil when it cannot be determined.
type SelectionSetRule interface {
	CheckSelectionSet(
		ctx *ValidationContext,
		parentType graphql.Type,
		selectionSet ast.SelectionSet) NextCheckAction
}

// FieldInfo provides information of the field to be checked for FieldRule and FieldArgumentRule.
type FieldInfo struct {
	parentType    graphql.Type
	def           *graphql.Field
	node          *ast.Field
	knownArgNames []string
}

// ParentType returns the type that includes the field. It is nil if the parent type is unknown.
func (info *FieldInfo) ParentType() graphql.Type {
	return info.parentType
}

// Def returns field definition corresponding to the node in schema (could be nil; For example, in
// the case of unknown fields.)
func (info *FieldInfo) Def() *graphql.Field {
	return info.def
}

// Type returns definition of the field type in schema. Could be nil if the field definition is not
// available.
func (info *FieldInfo) Type() graphql.Type {
	if info.def != nil {
		return info.def.Type()
	}
	return nil
}

// Node returns AST node that specifies the field
func (info *FieldInfo) Node() *ast.Field {
	return info.node
}

// Name returns field name.
func (info *FieldInfo) Name() string {
	return info.node.Name.Value()
}

// KnownArgNames returns list of argument names in the field. This is used by KnownArgumentNames
// rule to make suggestion when an unknown argument is given.
func (info *FieldInfo) KnownArgNames() []string {
	if info.knownArgNames == nil && info.def != nil {
		info.knownArgNames = argNames(info.def.Args())
	}
	return info.knownArgNames
}

func argNames(args []*graphql.Argument) []string {
	names := make([]string, len(args))
	for i, arg := range args {
		names[i] = arg.Name()
	}
	return names
}

// FieldRule validates a Field.
type FieldRule interface {
	CheckField(ctx *ValidationContext, field *FieldInfo) NextCheckAction
}

// FieldArgumentRule validates an Argument in a Field. argDef is nil for unknown arguments.
type FieldArgumentRule interface {
	CheckFieldArgument(
		ctx *ValidationContext,
		field *FieldInfo,
		argDef *graphql.Argument,
		arg *ast.Argument) NextCheckAction
}

// InlineFragmentRule validates an InlineFragment. typeCondition is the type specified in the
// fragment or parentType if the fragment doesn't specify one.
type InlineFragmentRule interface {
	CheckInlineFragment(
		ctx *ValidationContext,
		parentType graphql.Type,
		typeCondition graphql.Type,
		fragment *ast.InlineFragment) NextCheckAction
}

// FragmentSpreadRule validates a FragmentSpread. fragmentInfo is nil when the spread refers to an
// unknown fragment.
type FragmentSpreadRule interface {
	CheckFragmentSpread(
		ctx *ValidationContext,
		parentType graphql.Type,
		fragmentInfo *FragmentInfo,
		fragmentSpread *ast.FragmentSpread) NextCheckAction
}

// DirectivesRule validates the directive list at one location.
type DirectivesRule interface {
	CheckDirectives(
		ctx *ValidationContext,
		directives ast.Directives,
		location graphql.DirectiveLocation) NextCheckAction
}

// DirectiveInfo provides information of the directive to be checked for DirectiveRule and
// DirectiveArgumentRule.
type DirectiveInfo struct {
	def           *graphql.Directive
	node          *ast.Directive
	location      graphql.DirectiveLocation
	knownArgNames []string
}

// Def returns directive definition corresponding to the node in schema (could be nil; For example,
// in the case of unknown directives.)
func (info *DirectiveInfo) Def() *graphql.Directive {
	return info.def
}

// Node returns AST node that specifies the directive
func (info *DirectiveInfo) Node() *ast.Directive {
	return info.node
}

// Name returns directive name.
func (info *DirectiveInfo) Name() string {
	return info.node.Name.Value()
}

// Location indicates the place where the directive node appears in the document.
func (info *DirectiveInfo) Location() graphql.DirectiveLocation {
	return info.location
}

// KnownArgNames returns list of argument names to the directive.
func (info *DirectiveInfo) KnownArgNames() []string {
	if info.knownArgNames == nil && info.def != nil {
		info.knownArgNames = argNames(info.def.Args())
	}
	return info.knownArgNames
}

// DirectiveRule validates a Directive.
type DirectiveRule interface {
	CheckDirective(ctx *ValidationContext, directive *DirectiveInfo) NextCheckAction
}

// DirectiveArgumentRule validates an Argument in a Directive. argDef is nil for unknown arguments.
type DirectiveArgumentRule interface {
	CheckDirectiveArgument(
		ctx *ValidationContext,
		directive *DirectiveInfo,
		argDef *graphql.Argument,
		arg *ast.Argument) NextCheckAction
}
