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

package util

import (
	"strings"
)

// maxListItems bounds the number of items printed by QuotedOrList and OrList.
const maxListItems = 5

// OrList turns ["A", "B", "C"] into "A, B, or C". At most five items are printed.
func OrList(items []string) string {
	return orList(items, false)
}

// QuotedOrList turns ["A", "B", "C"] into `"A", "B", or "C"`. At most five items are printed.
func QuotedOrList(items []string) string {
	return orList(items, true)
}

func orList(items []string, quoted bool) string {
	if len(items) > maxListItems {
		items = items[:maxListItems]
	}

	var buf strings.Builder
	for i, item := range items {
		if i > 0 {
			if len(items) > 2 {
				buf.WriteString(", ")
			} else {
				buf.WriteString(" ")
			}
			if i == len(items)-1 {
				buf.WriteString("or ")
			}
		}
		if quoted {
			buf.WriteByte('"')
			buf.WriteString(item)
			buf.WriteByte('"')
		} else {
			buf.WriteString(item)
		}
	}
	return buf.String()
}
