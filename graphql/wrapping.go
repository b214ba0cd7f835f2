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
)

// List is a list of elements of another type.
type List struct {
	elementType Type
}

// NewListOf creates a list type of elementType.
func NewListOf(elementType Type) (*List, error) {
	if elementType == nil {
		return nil, errors.New("element type of a list must not be nil")
	}
	return &List{elementType}, nil
}

// MustNewListOf is like NewListOf but panics on error.
func MustNewListOf(elementType Type) *List {
	list, err := NewListOf(elementType)
	if err != nil {
		panic(err)
	}
	return list
}

// ElementType returns the type of elements.
func (list *List) ElementType() Type {
	return list.elementType
}

// UnwrappedType implements WrappingType.
func (list *List) UnwrappedType() Type {
	return list.elementType
}

// String implements Type.
func (list *List) String() string {
	return "[" + list.elementType.String() + "]"
}

func (*List) graphqlType() {}

// NonNull marks a type as never producing or accepting null.
type NonNull struct {
	innerType Type
}

// NewNonNullOf creates a non-null type of innerType which must not be a NonNull.
func NewNonNullOf(innerType Type) (*NonNull, error) {
	if innerType == nil {
		return nil, errors.New("inner type of a non-null must not be nil")
	}
	if IsNonNullType(innerType) {
		return nil, fmt.Errorf("expected a nullable type for NonNull but got %s", innerType)
	}
	return &NonNull{innerType}, nil
}

// MustNewNonNullOf is like NewNonNullOf but panics on error.
func MustNewNonNullOf(innerType Type) *NonNull {
	nonNull, err := NewNonNullOf(innerType)
	if err != nil {
		panic(err)
	}
	return nonNull
}

// InnerType returns the wrapped type.
func (nonNull *NonNull) InnerType() Type {
	return nonNull.innerType
}

// UnwrappedType implements WrappingType.
func (nonNull *NonNull) UnwrappedType() Type {
	return nonNull.innerType
}

// String implements Type.
func (nonNull *NonNull) String() string {
	return nonNull.innerType.String() + "!"
}

func (*NonNull) graphqlType() {}
