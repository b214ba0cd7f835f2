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

package ast

import (
	"github.com/botobag/bookshelf/graphql/token"
)

// Value is an input value literal or a variable reference.
type Value interface {
	Node
	valueNode()
}

// Variable refers to a variable: $name.
type Variable struct {
	// The "$" token
	Dollar *token.Token
	Name   Name
}

// StartToken implements Node.
func (v *Variable) StartToken() *token.Token { return v.Dollar }
func (*Variable) valueNode()                 {}

// IntValue is an integer literal. The text is kept as written; coercion happens against a type.
type IntValue struct {
	Token *token.Token
}

// StartToken implements Node.
func (v *IntValue) StartToken() *token.Token { return v.Token }
func (*IntValue) valueNode()                 {}

// Value returns the literal text.
func (v *IntValue) Value() string { return v.Token.Value }

// FloatValue is a floating point literal.
type FloatValue struct {
	Token *token.Token
}

// StartToken implements Node.
func (v *FloatValue) StartToken() *token.Token { return v.Token }
func (*FloatValue) valueNode()                 {}

// Value returns the literal text.
func (v *FloatValue) Value() string { return v.Token.Value }

// StringValue is a string or block string literal.
type StringValue struct {
	Token *token.Token
}

// StartToken implements Node.
func (v *StringValue) StartToken() *token.Token { return v.Token }
func (*StringValue) valueNode()                 {}

// Value returns the interpreted string.
func (v *StringValue) Value() string { return v.Token.Value }

// IsBlockString returns true for a """ literal.
func (v *StringValue) IsBlockString() bool { return v.Token.Kind == token.KindBlockString }

// BooleanValue is true or false.
type BooleanValue struct {
	Token *token.Token
}

// StartToken implements Node.
func (v *BooleanValue) StartToken() *token.Token { return v.Token }
func (*BooleanValue) valueNode()                 {}

// Value returns the boolean.
func (v *BooleanValue) Value() bool { return v.Token.Value == "true" }

// NullValue is null.
type NullValue struct {
	Token *token.Token
}

// StartToken implements Node.
func (v *NullValue) StartToken() *token.Token { return v.Token }
func (*NullValue) valueNode()                 {}

// EnumValue is a bare name used as a value.
type EnumValue struct {
	Token *token.Token
}

// StartToken implements Node.
func (v *EnumValue) StartToken() *token.Token { return v.Token }
func (*EnumValue) valueNode()                 {}

// Value returns the enum name.
func (v *EnumValue) Value() string { return v.Token.Value }

// ListValue is [v1, v2, ...].
type ListValue struct {
	// The "[" token
	Start  *token.Token
	Values []Value
}

// StartToken implements Node.
func (v *ListValue) StartToken() *token.Token { return v.Start }
func (*ListValue) valueNode()                 {}

// ObjectField is a name-value pair in an ObjectValue.
type ObjectField struct {
	Name  Name
	Value Value
}

// StartToken implements Node.
func (f *ObjectField) StartToken() *token.Token { return f.Name.Token }

// ObjectValue is {name: value, ...}.
type ObjectValue struct {
	// The "{" token
	Start  *token.Token
	Fields []*ObjectField
}

// StartToken implements Node.
func (v *ObjectValue) StartToken() *token.Token { return v.Start }
func (*ObjectValue) valueNode()                 {}

// IsNullValue returns true if value is the null literal.
func IsNullValue(value Value) bool {
	_, ok := value.(*NullValue)
	return ok
}
