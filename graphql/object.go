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
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// FieldResolver produces the value of a field from its parent value.
type FieldResolver interface {
	Resolve(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error)
}

// FieldResolverFunc is an adapter to allow the use of ordinary functions as FieldResolver.
type FieldResolverFunc func(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error)

// Resolve implements FieldResolver by calling f.
func (f FieldResolverFunc) Resolve(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error) {
	return f(ctx, source, info)
}

// ArgumentConfig defines an argument of a field or a directive.
type ArgumentConfig struct {
	Description string
	Type        Type

	// Value used when the argument is not given; nil means no default.
	DefaultValue interface{}
}

// ArgumentConfigMap maps argument names to their definitions.
type ArgumentConfigMap map[string]ArgumentConfig

// FieldConfig defines a field of an Object.
type FieldConfig struct {
	Description string
	Type        Type
	Args        ArgumentConfigMap

	// Resolver for the field; DefaultFieldResolver is used when nil.
	Resolver FieldResolver

	// Non-empty if the field is deprecated.
	DeprecationReason string
}

// Fields maps field names to their definitions.
type Fields map[string]*FieldConfig

// ObjectConfig provides the definition of an Object. Fields is a function so that types can refer
// to each other; it is called once, when the fields are first needed.
type ObjectConfig struct {
	Name        string
	Description string
	Fields      func() Fields
}

// Argument is a defined argument of a field or a directive.
type Argument struct {
	name         string
	description  string
	t            Type
	defaultValue interface{}
}

// Name returns the argument name.
func (arg *Argument) Name() string { return arg.name }

// Description returns the description of the argument.
func (arg *Argument) Description() string { return arg.description }

// Type returns the input type of the argument.
func (arg *Argument) Type() Type { return arg.t }

// DefaultValue returns the default value or nil.
func (arg *Argument) DefaultValue() interface{} { return arg.defaultValue }

// HasDefaultValue returns true if the argument has a default value.
func (arg *Argument) HasDefaultValue() bool { return arg.defaultValue != nil }

// IsRequired returns true if the argument is non-null without a default value.
func (arg *Argument) IsRequired() bool {
	return IsNonNullType(arg.t) && !arg.HasDefaultValue()
}

func buildArguments(configs ArgumentConfigMap) ([]*Argument, error) {
	if len(configs) == 0 {
		return nil, nil
	}

	args := make([]*Argument, 0, len(configs))
	for name, config := range configs {
		if !IsInputType(config.Type) {
			return nil, fmt.Errorf("argument %s must have an input type", name)
		}
		args = append(args, &Argument{
			name:         name,
			description:  config.Description,
			t:            config.Type,
			defaultValue: config.DefaultValue,
		})
	}
	sort.Slice(args, func(i, j int) bool { return args[i].name < args[j].name })
	return args, nil
}

// Field is a defined field of an Object.
type Field struct {
	name              string
	description       string
	t                 Type
	args              []*Argument
	resolver          FieldResolver
	deprecationReason string
}

// Name returns the field name.
func (field *Field) Name() string { return field.name }

// Description returns the description of the field.
func (field *Field) Description() string { return field.description }

// Type returns the output type of the field.
func (field *Field) Type() Type { return field.t }

// Args returns the arguments of the field ordered by name.
func (field *Field) Args() []*Argument { return field.args }

// Resolver returns the resolver of the field.
func (field *Field) Resolver() FieldResolver { return field.resolver }

// IsDeprecated returns true if the field is deprecated.
func (field *Field) IsDeprecated() bool { return len(field.deprecationReason) > 0 }

// DeprecationReason explains the deprecation of the field.
func (field *Field) DeprecationReason() string { return field.deprecationReason }

// Arg returns the argument with the given name or nil.
func (field *Field) Arg(name string) *Argument {
	for _, arg := range field.args {
		if arg.name == name {
			return arg
		}
	}
	return nil
}

// Object is a composite output type made of named fields.
type Object struct {
	name        string
	description string

	fieldsThunk func() Fields
	once        sync.Once
	fields      map[string]*Field
	fieldNames  []string
	fieldsErr   error
}

var _ NamedType = (*Object)(nil)

// NewObject creates an Object from config.
func NewObject(config *ObjectConfig) (*Object, error) {
	if len(config.Name) == 0 {
		return nil, errors.New("must provide name for Object")
	}
	if config.Fields == nil {
		return nil, fmt.Errorf("%s fields must be a function returning the fields", config.Name)
	}
	return &Object{
		name:        config.Name,
		description: config.Description,
		fieldsThunk: config.Fields,
	}, nil
}

// MustNewObject is like NewObject but panics on error.
func MustNewObject(config *ObjectConfig) *Object {
	object, err := NewObject(config)
	if err != nil {
		panic(err)
	}
	return object
}

// Name implements NamedType.
func (object *Object) Name() string {
	return object.name
}

// Description implements NamedType.
func (object *Object) Description() string {
	return object.description
}

// String implements Type.
func (object *Object) String() string {
	return object.name
}

func (*Object) graphqlType() {}

func (object *Object) buildFields() {
	configs := object.fieldsThunk()
	if len(configs) == 0 {
		object.fieldsErr = fmt.Errorf("%s fields must be an object with field names as keys", object.name)
		return
	}

	fields := make(map[string]*Field, len(configs))
	names := make([]string, 0, len(configs))
	for name, config := range configs {
		if config == nil || config.Type == nil {
			object.fieldsErr = fmt.Errorf("%s.%s field type must be an output type", object.name, name)
			return
		}
		if !IsOutputType(config.Type) {
			object.fieldsErr = fmt.Errorf("%s.%s field type must be an output type but got: %s",
				object.name, name, config.Type)
			return
		}

		args, err := buildArguments(config.Args)
		if err != nil {
			object.fieldsErr = fmt.Errorf("%s.%s: %s", object.name, name, err)
			return
		}

		resolver := config.Resolver
		if resolver == nil {
			resolver = DefaultFieldResolver{}
		}

		fields[name] = &Field{
			name:              name,
			description:       config.Description,
			t:                 config.Type,
			args:              args,
			resolver:          resolver,
			deprecationReason: config.DeprecationReason,
		}
		names = append(names, name)
	}
	sort.Strings(names)

	object.fields = fields
	object.fieldNames = names
}

func (object *Object) loadFields() error {
	object.once.Do(object.buildFields)
	return object.fieldsErr
}

// Fields returns the fields of the object keyed by name.
func (object *Object) Fields() map[string]*Field {
	object.loadFields()
	return object.fields
}

// FieldNames returns the names of the fields in alphabetical order.
func (object *Object) FieldNames() []string {
	object.loadFields()
	return object.fieldNames
}

// Field returns the field with the given name or nil.
func (object *Object) Field(name string) *Field {
	return object.Fields()[name]
}
