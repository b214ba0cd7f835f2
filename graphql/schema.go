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
	"errors"
	"fmt"

	"github.com/botobag/bookshelf/graphql/ast"
)

// SchemaConfig provides the root types of a Schema.
type SchemaConfig struct {
	// Query is the root type of query operations (required).
	Query *Object

	// Mutation is the root type of mutation operations (optional).
	Mutation *Object

	// Types that are not reachable from the root types but should be known to the schema
	Types []NamedType

	// Directives supported by the schema; SpecifiedDirectives is used if empty.
	Directives []*Directive
}

// Schema is the executable description of a GraphQL service.
type Schema struct {
	query      *Object
	mutation   *Object
	typeMap    map[string]NamedType
	directives []*Directive
}

// NewSchema creates a Schema from config. It builds the fields of every reachable object and
// rejects distinct types sharing the same name.
func NewSchema(config *SchemaConfig) (*Schema, error) {
	if config.Query == nil {
		return nil, errors.New("schema query must be an Object type")
	}

	schema := &Schema{
		query:      config.Query,
		mutation:   config.Mutation,
		typeMap:    map[string]NamedType{},
		directives: config.Directives,
	}
	if len(schema.directives) == 0 {
		schema.directives = SpecifiedDirectives()
	}

	var roots []Type
	for _, scalar := range SpecifiedScalarTypes() {
		roots = append(roots, scalar)
	}
	roots = append(roots, config.Query)
	if config.Mutation != nil {
		roots = append(roots, config.Mutation)
	}
	for _, t := range config.Types {
		roots = append(roots, t)
	}
	for _, directive := range schema.directives {
		for _, arg := range directive.Args() {
			roots = append(roots, arg.Type())
		}
	}

	for _, root := range roots {
		if err := schema.collectTypes(root); err != nil {
			return nil, err
		}
	}

	return schema, nil
}

func (schema *Schema) collectTypes(t Type) error {
	named := NamedTypeOf(t)
	if named == nil {
		return errors.New("schema contains a nil type")
	}

	if existing, exists := schema.typeMap[named.Name()]; exists {
		if existing != named {
			return fmt.Errorf(`Schema must contain unique named types but contains multiple types `+
				`named "%s".`, named.Name())
		}
		return nil
	}
	schema.typeMap[named.Name()] = named

	object, ok := named.(*Object)
	if !ok {
		return nil
	}
	if err := object.loadFields(); err != nil {
		return err
	}
	for _, name := range object.FieldNames() {
		field := object.Field(name)
		if err := schema.collectTypes(field.Type()); err != nil {
			return err
		}
		for _, arg := range field.Args() {
			if err := schema.collectTypes(arg.Type()); err != nil {
				return err
			}
		}
	}
	return nil
}

// Query returns the root type of query operations.
func (schema *Schema) Query() *Object {
	return schema.query
}

// Mutation returns the root type of mutation operations or nil.
func (schema *Schema) Mutation() *Object {
	return schema.mutation
}

// RootType returns the root object of the given operation type or nil if the schema doesn't
// support it.
func (schema *Schema) RootType(operation ast.OperationType) *Object {
	switch operation {
	case ast.OperationTypeQuery:
		return schema.query
	case ast.OperationTypeMutation:
		return schema.mutation
	}
	return nil
}

// TypeMap returns every named type in the schema keyed by name.
func (schema *Schema) TypeMap() map[string]NamedType {
	return schema.typeMap
}

// TypeNamed returns the named type with the given name or nil.
func (schema *Schema) TypeNamed(name string) NamedType {
	return schema.typeMap[name]
}

// Directives returns the directives supported by the schema.
func (schema *Schema) Directives() []*Directive {
	return schema.directives
}

// Directive returns the directive with the given name or nil.
func (schema *Schema) Directive(name string) *Directive {
	for _, directive := range schema.directives {
		if directive.Name() == name {
			return directive
		}
	}
	return nil
}

// TypeFromAST resolves a type reference in a document. It returns nil if the named type is unknown.
func (schema *Schema) TypeFromAST(t ast.Type) Type {
	switch t := t.(type) {
	case *ast.NamedType:
		named := schema.TypeNamed(t.Name.Value())
		if named == nil {
			return nil
		}
		return named

	case *ast.ListType:
		elementType := schema.TypeFromAST(t.ItemType)
		if elementType == nil {
			return nil
		}
		return MustNewListOf(elementType)

	case *ast.NonNullType:
		innerType := schema.TypeFromAST(t.Type)
		if innerType == nil {
			return nil
		}
		nonNull, err := NewNonNullOf(innerType)
		if err != nil {
			return nil
		}
		return nonNull
	}
	return nil
}
