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

package graphql

import "context"

// TypenameFieldName is the name of the meta field that every object type has implicitly.
const TypenameFieldName = "__typename"

var typenameField = &Field{
	name:        TypenameFieldName,
	description: "The name of the current Object type at runtime.",
	t:           MustNewNonNullOf(String()),
	resolver: FieldResolverFunc(func(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error) {
		return info.Object().Name(), nil
	}),
}

// TypenameField returns the definition of the __typename meta field.
func TypenameField() *Field {
	return typenameField
}

// FieldDefOf looks up the definition of the named field in the parent type, including meta fields.
// It returns nil if parentType is not an Object or does not define the field.
func FieldDefOf(parentType Type, name string) *Field {
	object, ok := parentType.(*Object)
	if !ok || object == nil {
		return nil
	}
	if name == TypenameFieldName {
		return typenameField
	}
	return object.Field(name)
}
