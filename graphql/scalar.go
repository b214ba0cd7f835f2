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

// ScalarResultCoercer serializes resolved values of a scalar.
type ScalarResultCoercer interface {
	CoerceResultValue(value interface{}) (interface{}, error)
}

// ScalarResultCoercerFunc is an adapter to allow the use of ordinary functions as
// ScalarResultCoercer.
type ScalarResultCoercerFunc func(value interface{}) (interface{}, error)

// CoerceResultValue implements ScalarResultCoercer by calling f(value).
func (f ScalarResultCoercerFunc) CoerceResultValue(value interface{}) (interface{}, error) {
	return f(value)
}

// ScalarInputCoercer parses input values of a scalar given either in variables or as literals in a
// document.
type ScalarInputCoercer interface {
	CoerceVariableValue(value interface{}) (interface{}, error)
	CoerceLiteralValue(value ast.Value) (interface{}, error)
}

// ScalarConfig provides the definition of a Scalar.
type ScalarConfig struct {
	Name          string
	Description   string
	ResultCoercer ScalarResultCoercer
	InputCoercer  ScalarInputCoercer
}

// Scalar is a leaf type that can also be used as input.
type Scalar struct {
	name          string
	description   string
	resultCoercer ScalarResultCoercer
	inputCoercer  ScalarInputCoercer
}

var (
	_ LeafType  = (*Scalar)(nil)
	_ InputType = (*Scalar)(nil)
)

// NewScalar creates a Scalar from config.
func NewScalar(config *ScalarConfig) (*Scalar, error) {
	if len(config.Name) == 0 {
		return nil, errors.New("must provide name for Scalar")
	}
	if config.ResultCoercer == nil {
		return nil, fmt.Errorf(`%s must provide ResultCoercer. If this custom Scalar is also used `+
			`as an input type, ensure InputCoercer is also provided.`, config.Name)
	}
	return &Scalar{
		name:          config.Name,
		description:   config.Description,
		resultCoercer: config.ResultCoercer,
		inputCoercer:  config.InputCoercer,
	}, nil
}

// MustNewScalar is like NewScalar but panics on error.
func MustNewScalar(config *ScalarConfig) *Scalar {
	scalar, err := NewScalar(config)
	if err != nil {
		panic(err)
	}
	return scalar
}

// Name implements NamedType.
func (scalar *Scalar) Name() string {
	return scalar.name
}

// Description implements NamedType.
func (scalar *Scalar) Description() string {
	return scalar.description
}

// String implements Type.
func (scalar *Scalar) String() string {
	return scalar.name
}

// CoerceResultValue implements LeafType.
func (scalar *Scalar) CoerceResultValue(value interface{}) (interface{}, error) {
	return scalar.resultCoercer.CoerceResultValue(value)
}

// CoerceVariableValue coerces a value given in variables.
func (scalar *Scalar) CoerceVariableValue(value interface{}) (interface{}, error) {
	if scalar.inputCoercer == nil {
		return nil, NewCoercionError("%s cannot be used as input", scalar.name)
	}
	return scalar.inputCoercer.CoerceVariableValue(value)
}

// CoerceLiteralValue coerces a literal given in a document.
func (scalar *Scalar) CoerceLiteralValue(value ast.Value) (interface{}, error) {
	if scalar.inputCoercer == nil {
		return nil, NewCoercionError("%s cannot be used as input", scalar.name)
	}
	return scalar.inputCoercer.CoerceLiteralValue(value)
}

func (*Scalar) graphqlType() {}
func (*Scalar) inputType()   {}

// NewCoercionError creates an Error of kind ErrKindCoercion.
func NewCoercionError(format string, args ...interface{}) *Error {
	return NewError(fmt.Sprintf(format, args...), ErrKindCoercion)
}
