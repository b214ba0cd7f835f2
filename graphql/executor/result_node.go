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

package executor

// ResultKind specifies which kind of value is held in the ResultNode. More specifically, it
// describes the type of ResultNode.Value.
type ResultKind uint8

// Enumeration of ResultKind
const (
	// ResultNode was resolved to a nil value (either because the field resolve to a nil value
	// or because an error occurred.) The Value contains an nil interface.
	ResultKindNil ResultKind = iota

	// ResultNode was resolved to a List value. The value contains an []*ResultNode.
	ResultKindList

	// ResultNode was resolved to an Object value. The value contains an *ObjectResultValue.
	ResultKindObject

	// ResultNode was resolved to a Scalar value. The value contains the value that has went
	// through type's result coercion.
	ResultKindLeaf
)

// A ResultNode holds a field value. Result data from an execution of an operation is made up of
// ResultNode's formed in a tree structure that mirrors the selection set.
type ResultNode struct {
	// Kind describes kind of Value
	Kind ResultKind

	// The result value; This could be in a various format based on Kind.
	Value interface{}
}

// ObjectResultValue stores result from executing an Object field. Fields are kept in the order
// they were selected.
type ObjectResultValue struct {
	// Response keys of the fields
	Keys []string

	// FieldValues[i] is the result of the field at Keys[i].
	FieldValues []*ResultNode
}

var nullResultNode = ResultNode{Kind: ResultKindNil}

// nullResult returns a node holding null. The returned node is shared and must not be modified.
func nullResult() *ResultNode {
	return &nullResultNode
}

// IsNil returns true if the node holds nil value (either because the field resolve to a nil value
// or because an error occurred.)
func (node *ResultNode) IsNil() bool {
	return node == nil || node.Kind == ResultKindNil
}

// IsList returns true if the node holds result for a List field.
func (node *ResultNode) IsList() bool {
	return node != nil && node.Kind == ResultKindList
}

// IsObject returns true if the node holds result for an Object field.
func (node *ResultNode) IsObject() bool {
	return node != nil && node.Kind == ResultKindObject
}

// IsLeaf returns true if the node holds result for a Scalar field.
func (node *ResultNode) IsLeaf() bool {
	return node != nil && node.Kind == ResultKindLeaf
}

// ListValue returns a value that is held by this node for a List field. It would panic if this is
// not a resolved List result (i.e., IsList returns false).
func (node *ResultNode) ListValue() []*ResultNode {
	return node.Value.([]*ResultNode)
}

// ObjectValue returns a value that is held by this node for a Object field. It would panic if this
// is not a resolved Object result (i.e., IsObject returns false).
func (node *ResultNode) ObjectValue() *ObjectResultValue {
	return node.Value.(*ObjectResultValue)
}

// Get returns the result of the field with the given response key or nil if the node is not an
// object or has no such field.
func (node *ResultNode) Get(key string) *ResultNode {
	if !node.IsObject() {
		return nil
	}
	object := node.ObjectValue()
	for i, k := range object.Keys {
		if k == key {
			return object.FieldValues[i]
		}
	}
	return nil
}

// Interface converts the result tree into plain Go values: nil, leaf values, []interface{} for
// lists and map[string]interface{} for objects.
func (node *ResultNode) Interface() interface{} {
	switch {
	case node.IsList():
		elements := node.ListValue()
		list := make([]interface{}, len(elements))
		for i, element := range elements {
			list[i] = element.Interface()
		}
		return list

	case node.IsObject():
		object := node.ObjectValue()
		m := make(map[string]interface{}, len(object.Keys))
		for i, key := range object.Keys {
			m[key] = object.FieldValues[i].Interface()
		}
		return m

	case node.IsLeaf():
		return node.Value
	}

	return nil
}
