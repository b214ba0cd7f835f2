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
	"strconv"
	"strings"
)

// PrintValue prints a value literal in GraphQL syntax. It is used in error messages.
func PrintValue(value Value) string {
	var buf strings.Builder
	printValue(&buf, value)
	return buf.String()
}

func printValue(buf *strings.Builder, value Value) {
	switch value := value.(type) {
	case *Variable:
		buf.WriteByte('$')
		buf.WriteString(value.Name.Value())
	case *IntValue:
		buf.WriteString(value.Value())
	case *FloatValue:
		buf.WriteString(value.Value())
	case *StringValue:
		buf.WriteString(strconv.Quote(value.Value()))
	case *BooleanValue:
		buf.WriteString(value.Token.Value)
	case *NullValue:
		buf.WriteString("null")
	case *EnumValue:
		buf.WriteString(value.Value())
	case *ListValue:
		buf.WriteByte('[')
		for i, v := range value.Values {
			if i > 0 {
				buf.WriteString(", ")
			}
			printValue(buf, v)
		}
		buf.WriteByte(']')
	case *ObjectValue:
		buf.WriteByte('{')
		for i, f := range value.Fields {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(f.Name.Value())
			buf.WriteString(": ")
			printValue(buf, f.Value)
		}
		buf.WriteByte('}')
	}
}
