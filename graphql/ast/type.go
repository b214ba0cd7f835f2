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

// Type is a type reference in a variable definition or a type condition.
type Type interface {
	Node
	// String prints the type as written in GraphQL, e.g. "[Int!]".
	String() string
	typeNode()
}

// NamedType refers to a type by name.
type NamedType struct {
	Name Name
}

// StartToken implements Node.
func (t *NamedType) StartToken() *token.Token { return t.Name.Token }

// String implements Type.
func (t *NamedType) String() string { return t.Name.Value() }
func (*NamedType) typeNode()        {}

// ListType is [ItemType].
type ListType struct {
	// The "[" token
	Start    *token.Token
	ItemType Type
}

// StartToken implements Node.
func (t *ListType) StartToken() *token.Token { return t.Start }

// String implements Type.
func (t *ListType) String() string { return "[" + t.ItemType.String() + "]" }
func (*ListType) typeNode()        {}

// NonNullType is Type!.
type NonNullType struct {
	Type Type
}

// StartToken implements Node.
func (t *NonNullType) StartToken() *token.Token { return t.Type.StartToken() }

// String implements Type.
func (t *NonNullType) String() string { return t.Type.String() + "!" }
func (*NonNullType) typeNode()        {}

// NamedTypeOf strips list and non-null wrappers.
func NamedTypeOf(t Type) *NamedType {
	for {
		switch tt := t.(type) {
		case *NamedType:
			return tt
		case *ListType:
			t = tt.ItemType
		case *NonNullType:
			t = tt.Type
		default:
			return nil
		}
	}
}
