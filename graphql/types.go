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

// Type is implemented by every GraphQL type: Scalar, Object, List and NonNull.
type Type interface {
	// String prints the type in GraphQL notation, e.g. "[Book]!".
	String() string

	graphqlType()
}

// NamedType is a type with a name: Scalar and Object.
type NamedType interface {
	Type
	Name() string
	Description() string
}

// LeafType is a type that produces a leaf in a response.
type LeafType interface {
	NamedType

	// CoerceResultValue serializes a resolved value into a value that can be put in a response.
	CoerceResultValue(value interface{}) (interface{}, error)
}

// InputType is a type that can be used for arguments and variables.
type InputType interface {
	Type
	inputType()
}

// WrappingType wraps another type: List and NonNull.
type WrappingType interface {
	Type
	UnwrappedType() Type
}

// IsInputType returns true if t can be used for arguments and variables.
func IsInputType(t Type) bool {
	_, ok := NamedTypeOf(t).(InputType)
	return ok
}

// IsOutputType returns true if t can be used for fields.
func IsOutputType(t Type) bool {
	switch NamedTypeOf(t).(type) {
	case *Scalar, *Object:
		return true
	}
	return false
}

// IsLeafType returns true for scalars.
func IsLeafType(t Type) bool {
	_, ok := t.(LeafType)
	return ok
}

// IsCompositeType returns true for object types.
func IsCompositeType(t Type) bool {
	_, ok := t.(*Object)
	return ok
}

// IsNonNullType returns true if t is a NonNull.
func IsNonNullType(t Type) bool {
	_, ok := t.(*NonNull)
	return ok
}

// IsListType returns true if t is a List.
func IsListType(t Type) bool {
	_, ok := t.(*List)
	return ok
}

// NullableTypeOf strips the NonNull wrapper of t if any.
func NullableTypeOf(t Type) Type {
	if nonNull, ok := t.(*NonNull); ok {
		return nonNull.InnerType()
	}
	return t
}

// NamedTypeOf strips all wrappers of t. It returns nil for nil.
func NamedTypeOf(t Type) NamedType {
	for {
		switch tt := t.(type) {
		case NamedType:
			return tt
		case WrappingType:
			t = tt.UnwrappedType()
		default:
			return nil
		}
	}
}

// IsEqualType returns true if a and b are the same type.
func IsEqualType(a Type, b Type) bool {
	if a == b {
		return true
	}

	switch a := a.(type) {
	case *NonNull:
		if b, ok := b.(*NonNull); ok {
			return IsEqualType(a.InnerType(), b.InnerType())
		}
	case *List:
		if b, ok := b.(*List); ok {
			return IsEqualType(a.ElementType(), b.ElementType())
		}
	}

	return false
}

// IsTypeSubTypeOf returns true if a value of maybeSubType can be used where superType is expected.
func IsTypeSubTypeOf(maybeSubType Type, superType Type) bool {
	if IsEqualType(maybeSubType, superType) {
		return true
	}

	if superType, ok := superType.(*NonNull); ok {
		if maybeSubType, ok := maybeSubType.(*NonNull); ok {
			return IsTypeSubTypeOf(maybeSubType.InnerType(), superType.InnerType())
		}
		return false
	}

	if maybeSubType, ok := maybeSubType.(*NonNull); ok {
		return IsTypeSubTypeOf(maybeSubType.InnerType(), superType)
	}

	if superType, ok := superType.(*List); ok {
		if maybeSubType, ok := maybeSubType.(*List); ok {
			return IsTypeSubTypeOf(maybeSubType.ElementType(), superType.ElementType())
		}
	}

	return false
}
