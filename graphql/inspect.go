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

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Inspect prints a Go value the way it would appear in GraphQL input, e.g. `"abc"`, `[1, 2]` or
// `{ id: 1 }`. It is used for error messages.
func Inspect(value interface{}) string {
	var buf strings.Builder
	inspect(&buf, value)
	return buf.String()
}

func inspect(buf *strings.Builder, value interface{}) {
	if value == nil {
		buf.WriteString("null")
		return
	}

	switch value := value.(type) {
	case string:
		buf.WriteString(strconv.Quote(value))
		return
	case Type:
		buf.WriteString(value.String())
		return
	case fmt.Stringer:
		buf.WriteString(value.String())
		return
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			buf.WriteString("null")
			return
		}
		inspect(buf, v.Elem().Interface())

	case reflect.Slice, reflect.Array:
		buf.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				buf.WriteString(", ")
			}
			inspect(buf, v.Index(i).Interface())
		}
		buf.WriteByte(']')

	case reflect.Map:
		keys := make([]string, 0, v.Len())
		values := map[string]interface{}{}
		for _, key := range v.MapKeys() {
			k := fmt.Sprint(key.Interface())
			keys = append(keys, k)
			values[k] = v.MapIndex(key).Interface()
		}
		sort.Strings(keys)

		if len(keys) == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteString("{ ")
		for i, k := range keys {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(k)
			buf.WriteString(": ")
			inspect(buf, values[k])
		}
		buf.WriteString(" }")

	default:
		fmt.Fprint(buf, value)
	}
}
