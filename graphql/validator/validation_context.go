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

// FragmentInfo stores information about a fragment definition during validation.
type FragmentInfo struct {
	def *ast.FragmentDefinition

	// Type specified in the type condition; nil if the type is unknown.
	typeCondition graphql.Type
}

// Name returns name of the fragment.
func (info *FragmentInfo) Name() string {
	return info.def.Name.Value()
}

// Definition returns info.def.
func (info *FragmentInfo) Definition() *ast.FragmentDefinition {
	return info.def
}

// TypeCondition returns info.typeCondition.
func (info *FragmentInfo) TypeCondition() graphql.Type {
	return info.typeCondition
}

// VariableUsage describes a variable that appears in a value.
type VariableUsage struct {
	// The variable node
	Node *ast.Variable

	// Type expected at the position where the variable is used; nil if it cannot be determined.
	Type graphql.Type

	// True if the position (an argument) has a default value which will be used if the variable
	// provides no value.
	HasLocationDefaultValue bool
}

// A ValidationContext stores various states for running walk function and validation rules.
type ValidationContext struct {
	schema   *graphql.Schema
	document ast.Document
	rules    *rules

	// FragmentInfo's keyed by fragment names; The first definition wins when there're duplicates.
	fragmentInfos map[string]*FragmentInfo

	// Error list
	errs graphql.Errors

	// "Skipping" state for the rule at index i; Possible values are:
	//
	// - nil: run the rule
	// - StopCheck: stop applying the rule on any nodes
	// - an ast.Node: don't apply the rule on the child nodes of the given node
	skippingRules []interface{}

	// Operation in the document that is being validated
	currentOperation *ast.OperationDefinition

	// Names of fragments that are referenced by operations directly or indirectly; Computed on the
	// first call to IsFragmentUsed.
	usedFragments map[string]bool

	// Cache for RecursiveVariableUsages
	variableUsages map[*ast.OperationDefinition][]VariableUsage

	// Cache for ExistingTypeNames
	existingTypeNames []string

	//===----------------------------------------------------------------------------------------====//
	// States for rules package
	//===----------------------------------------------------------------------------------------====//

	// UniqueOperationNames
	KnownOperationNames map[string]ast.Name

	// UniqueFragmentNames
	KnownFragmentNames map[string]ast.Name

	// NoFragmentCycles; fragments that have been checked for cycles
	VisitedFragmentNames map[string]bool
}

// newValidationContext initializes a validation context for validating given document.
func newValidationContext(schema *graphql.Schema, document ast.Document, rules *rules) *ValidationContext {
	ctx := &ValidationContext{
		schema:        schema,
		document:      document,
		rules:         rules,
		fragmentInfos: map[string]*FragmentInfo{},

		skippingRules:  make([]interface{}, rules.numRules),
		variableUsages: map[*ast.OperationDefinition][]VariableUsage{},

		KnownOperationNames:  map[string]ast.Name{},
		KnownFragmentNames:   map[string]ast.Name{},
		VisitedFragmentNames: map[string]bool{},
	}

	for _, definition := range document.Definitions {
		if definition, ok := definition.(*ast.FragmentDefinition); ok {
			name := definition.Name.Value()
			if _, exists := ctx.fragmentInfos[name]; !exists {
				ctx.fragmentInfos[name] = &FragmentInfo{
					def:           definition,
					typeCondition: ctx.TypeFromAST(definition.TypeCondition),
				}
			}
		}
	}

	return ctx
}

// Schema returns schema of the document being validated.
func (ctx *ValidationContext) Schema() *graphql.Schema {
	return ctx.schema
}

// Document returns the document being validated.
func (ctx *ValidationContext) Document() ast.Document {
	return ctx.document
}

// TypeFromAST resolves a type reference in the document; Returns nil for unknown types.
func (ctx *ValidationContext) TypeFromAST(t ast.Type) graphql.Type {
	if t == nil {
		return nil
	}
	return ctx.schema.TypeFromAST(t)
}

// FragmentInfo looks up the FragmentInfo for given fragment name in current document.
func (ctx *ValidationContext) FragmentInfo(name string) *FragmentInfo {
	return ctx.fragmentInfos[name]
}

// Fragment looks up fragment definition for given name in current document.
func (ctx *ValidationContext) Fragment(name string) *ast.FragmentDefinition {
	if info := ctx.FragmentInfo(name); info != nil {
		return info.Definition()
	}
	return nil
}

// CurrentOperation returns the operation in the document being validated.
func (ctx *ValidationContext) CurrentOperation() *ast.OperationDefinition {
	return ctx.currentOperation
}

// ReportError constructs a graphql.Error from message and args and appends to current validation
// context for reporting.
func (ctx *ValidationContext) ReportError(message string, args ...interface{}) {
	ctx.errs.Emplace(message, append(args, graphql.ErrKindValidation)...)
}

// ExistingTypeNames returns list of types declared in the schema.
func (ctx *ValidationContext) ExistingTypeNames() []string {
	if ctx.existingTypeNames == nil {
		typeMap := ctx.schema.TypeMap()
		names := make([]string, 0, len(typeMap))
		for name := range typeMap {
			names = append(names, name)
		}
		ctx.existingTypeNames = names
	}
	return ctx.existingTypeNames
}

// FragmentSpreads returns the fragment spreads in the selection set, including those nested in
// fields and inline fragments.
func FragmentSpreads(selectionSet ast.SelectionSet) []*ast.FragmentSpread {
	var (
		spreads []*ast.FragmentSpread
		stack   = []ast.SelectionSet{selectionSet}
	)
	for len(stack) > 0 {
		var set ast.SelectionSet
		set, stack = stack[len(stack)-1], stack[:len(stack)-1]
		for _, selection := range set {
			switch selection := selection.(type) {
			case *ast.FragmentSpread:
				spreads = append(spreads, selection)
			case *ast.Field:
				if len(selection.SelectionSet) > 0 {
					stack = append(stack, selection.SelectionSet)
				}
			case *ast.InlineFragment:
				stack = append(stack, selection.SelectionSet)
			}
		}
	}
	return spreads
}

// RecursivelyReferencedFragments returns the fragments that are reachable from the operation.
func (ctx *ValidationContext) RecursivelyReferencedFragments(
	operation *ast.OperationDefinition) []*FragmentInfo {

	var (
		fragments []*FragmentInfo
		collected = map[string]bool{}
		stack     = []ast.SelectionSet{operation.SelectionSet}
	)
	for len(stack) > 0 {
		var set ast.SelectionSet
		set, stack = stack[len(stack)-1], stack[:len(stack)-1]
		for _, spread := range FragmentSpreads(set) {
			name := spread.Name.Value()
			if collected[name] {
				continue
			}
			collected[name] = true
			if fragment := ctx.FragmentInfo(name); fragment != nil {
				fragments = append(fragments, fragment)
				stack = append(stack, fragment.def.SelectionSet)
			}
		}
	}
	return fragments
}

// IsFragmentUsed returns true if the named fragment is referenced by any operation in the document
// directly or indirectly.
func (ctx *ValidationContext) IsFragmentUsed(name string) bool {
	if ctx.usedFragments == nil {
		used := map[string]bool{}
		for _, definition := range ctx.document.Definitions {
			if operation, ok := definition.(*ast.OperationDefinition); ok {
				for _, fragment := range ctx.RecursivelyReferencedFragments(operation) {
					used[fragment.Name()] = true
				}
			}
		}
		ctx.usedFragments = used
	}
	return ctx.usedFragments[name]
}

// RecursiveVariableUsages returns the variables used in the operation and the fragments it
// references.
func (ctx *ValidationContext) RecursiveVariableUsages(operation *ast.OperationDefinition) []VariableUsage {
	if usages, exists := ctx.variableUsages[operation]; exists {
		return usages
	}

	collector := variableUsageCollector{ctx: ctx}
	collector.collectInDirectives(operation.Directives)
	collector.collectInSelectionSet(rootTypeOf(ctx.schema, operation), operation.SelectionSet)
	for _, fragment := range ctx.RecursivelyReferencedFragments(operation) {
		collector.collectInDirectives(fragment.def.Directives)
		collector.collectInSelectionSet(fragment.typeCondition, fragment.def.SelectionSet)
	}

	ctx.variableUsages[operation] = collector.usages
	return collector.usages
}

// rootTypeOf returns the root type of the operation or nil when the schema doesn't support the
// operation.
func rootTypeOf(schema *graphql.Schema, operation *ast.OperationDefinition) graphql.Type {
	if object := schema.RootType(operation.Operation); object != nil {
		return object
	}
	return nil
}

type variableUsageCollector struct {
	ctx    *ValidationContext
	usages []VariableUsage
}

func (collector *variableUsageCollector) collectInSelectionSet(
	parentType graphql.Type,
	selectionSet ast.SelectionSet) {

	for _, selection := range selectionSet {
		collector.collectInDirectives(selection.GetDirectives())

		switch selection := selection.(type) {
		case *ast.Field:
			var fieldType graphql.Type
			fieldDef := graphql.FieldDefOf(parentType, selection.Name.Value())
			if fieldDef != nil {
				fieldType = graphql.NamedTypeOf(fieldDef.Type())
			}

			for _, arg := range selection.Arguments {
				var argDef *graphql.Argument
				if fieldDef != nil {
					argDef = fieldDef.Arg(arg.Name.Value())
				}
				collector.collectInArgument(argDef, arg)
			}

			collector.collectInSelectionSet(fieldType, selection.SelectionSet)

		case *ast.InlineFragment:
			typeCondition := parentType
			if selection.TypeCondition != nil {
				typeCondition = collector.ctx.TypeFromAST(selection.TypeCondition)
			}
			collector.collectInSelectionSet(typeCondition, selection.SelectionSet)
		}
	}
}

func (collector *variableUsageCollector) collectInDirectives(directives ast.Directives) {
	for _, directive := range directives {
		directiveDef := collector.ctx.schema.Directive(directive.Name.Value())
		for _, arg := range directive.Arguments {
			var argDef *graphql.Argument
			if directiveDef != nil {
				argDef = directiveDef.Arg(arg.Name.Value())
			}
			collector.collectInArgument(argDef, arg)
		}
	}
}

func (collector *variableUsageCollector) collectInArgument(argDef *graphql.Argument, arg *ast.Argument) {
	var (
		t          graphql.Type
		hasDefault bool
	)
	if argDef != nil {
		t = argDef.Type()
		hasDefault = argDef.HasDefaultValue()
	}
	collector.collectInValue(t, hasDefault, arg.Value)
}

func (collector *variableUsageCollector) collectInValue(t graphql.Type, hasDefault bool, value ast.Value) {
	switch value := value.(type) {
	case *ast.Variable:
		collector.usages = append(collector.usages, VariableUsage{
			Node:                    value,
			Type:                    t,
			HasLocationDefaultValue: hasDefault,
		})

	case *ast.ListValue:
		var elementType graphql.Type
		if list, ok := graphql.NullableTypeOf(t).(*graphql.List); ok {
			elementType = list.ElementType()
		}
		for _, item := range value.Values {
			collector.collectInValue(elementType, false, item)
		}

	case *ast.ObjectValue:
		for _, field := range value.Fields {
			collector.collectInValue(nil, false, field.Value)
		}
	}
}
