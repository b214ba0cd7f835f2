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

// Package ast defines the abstract syntax tree of executable GraphQL documents.
package ast

import (
	"github.com/botobag/bookshelf/graphql/token"
)

// Node is implemented by every syntax element in a document.
type Node interface {
	// StartToken returns the first token of the node. It is used for error locations.
	StartToken() *token.Token
}

// Name is an identifier.
type Name struct {
	Token *token.Token
}

// Value returns the text of the name. It returns an empty string for an absent name.
func (name Name) Value() string {
	if name.Token == nil {
		return ""
	}
	return name.Token.Value
}

// IsNil returns true if the name is absent (e.g., anonymous operation).
func (name Name) IsNil() bool {
	return name.Token == nil
}

// StartToken implements Node.
func (name Name) StartToken() *token.Token {
	return name.Token
}

// Document is the root of a parsed request.
type Document struct {
	Source      *token.Source
	Definitions []Definition
}

// Definition is either an OperationDefinition or a FragmentDefinition.
type Definition interface {
	Node
	definitionNode()
}

// OperationType is the type of an operation.
type OperationType string

// Enumeration of OperationType
const (
	OperationTypeQuery        OperationType = "query"
	OperationTypeMutation     OperationType = "mutation"
	OperationTypeSubscription OperationType = "subscription"
)

// OperationDefinition defines a query, mutation or subscription.
type OperationDefinition struct {
	// The keyword token or the "{" of a query shorthand
	Start *token.Token

	Operation           OperationType
	Name                Name
	VariableDefinitions []*VariableDefinition
	Directives          Directives
	SelectionSet        SelectionSet
}

// StartToken implements Node.
func (op *OperationDefinition) StartToken() *token.Token {
	return op.Start
}

func (*OperationDefinition) definitionNode() {}

// IsQueryShorthand returns true for the `{ ... }` form.
func (op *OperationDefinition) IsQueryShorthand() bool {
	return op.Start != nil && op.Start.Kind == token.KindLeftBrace
}

// FragmentDefinition defines a named fragment.
type FragmentDefinition struct {
	// The "fragment" keyword
	Start *token.Token

	Name          Name
	TypeCondition *NamedType
	Directives    Directives
	SelectionSet  SelectionSet
}

// StartToken implements Node.
func (fragment *FragmentDefinition) StartToken() *token.Token {
	return fragment.Start
}

func (*FragmentDefinition) definitionNode() {}

// VariableDefinition declares a variable of an operation.
type VariableDefinition struct {
	Variable     *Variable
	Type         Type
	DefaultValue Value
	Directives   Directives
}

// StartToken implements Node.
func (def *VariableDefinition) StartToken() *token.Token {
	return def.Variable.StartToken()
}

// SelectionSet is the list of selections enclosed in braces.
type SelectionSet []Selection

// Selection is a Field, a FragmentSpread or an InlineFragment.
type Selection interface {
	Node
	GetDirectives() Directives
	selectionNode()
}

// Field selects a field of the parent object.
type Field struct {
	Alias        Name
	Name         Name
	Arguments    Arguments
	Directives   Directives
	SelectionSet SelectionSet
}

// StartToken implements Node.
func (field *Field) StartToken() *token.Token {
	if !field.Alias.IsNil() {
		return field.Alias.Token
	}
	return field.Name.Token
}

// GetDirectives implements Selection.
func (field *Field) GetDirectives() Directives {
	return field.Directives
}

func (*Field) selectionNode() {}

// ResponseKey returns the key of the field in the response: its alias if present, or its name.
func (field *Field) ResponseKey() string {
	if !field.Alias.IsNil() {
		return field.Alias.Value()
	}
	return field.Name.Value()
}

// FragmentSpread includes a named fragment.
type FragmentSpread struct {
	// The "..." token
	Spread *token.Token

	Name       Name
	Directives Directives
}

// StartToken implements Node.
func (spread *FragmentSpread) StartToken() *token.Token {
	return spread.Spread
}

// GetDirectives implements Selection.
func (spread *FragmentSpread) GetDirectives() Directives {
	return spread.Directives
}

func (*FragmentSpread) selectionNode() {}

// InlineFragment is an anonymous fragment with an optional type condition.
type InlineFragment struct {
	// The "..." token
	Spread *token.Token

	TypeCondition *NamedType
	Directives    Directives
	SelectionSet  SelectionSet
}

// StartToken implements Node.
func (fragment *InlineFragment) StartToken() *token.Token {
	return fragment.Spread
}

// GetDirectives implements Selection.
func (fragment *InlineFragment) GetDirectives() Directives {
	return fragment.Directives
}

func (*InlineFragment) selectionNode() {}

// Argument is a name-value pair given to a field or a directive.
type Argument struct {
	Name  Name
	Value Value
}

// StartToken implements Node.
func (arg *Argument) StartToken() *token.Token {
	return arg.Name.Token
}

// Arguments is a list of Argument.
type Arguments []*Argument

// Get returns the argument with the given name or nil.
func (args Arguments) Get(name string) *Argument {
	for _, arg := range args {
		if arg.Name.Value() == name {
			return arg
		}
	}
	return nil
}

// Directive annotates a selection or a definition.
type Directive struct {
	// The "@" token
	At *token.Token

	Name      Name
	Arguments Arguments
}

// StartToken implements Node.
func (directive *Directive) StartToken() *token.Token {
	return directive.At
}

// Directives is a list of Directive.
type Directives []*Directive

// Get returns the directive with the given name or nil.
func (directives Directives) Get(name string) *Directive {
	for _, directive := range directives {
		if directive.Name.Value() == name {
			return directive
		}
	}
	return nil
}
