// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

package mf2util

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// PlainText returns the plain text form of the first of values.  Compound
// values contribute their "value" member, which is empty if the parser did
// not set one.  If strip is true, surrounding whitespace is removed.  ok is
// false if values is empty.
func PlainText(values []Value, strip bool) (s string, ok bool) {
	if len(values) == 0 {
		return "", false
	}
	s = valueText(values[0])
	if strip {
		s = strings.TrimSpace(s)
	}
	return s, true
}

// plain is shorthand for the stripped plain text of values, or "".
func plain(values []Value) string {
	s, _ := PlainText(values, true)
	return s
}

// valueText returns the plain text form of a single value.
func valueText(v Value) string {
	switch v := v.(type) {
	case Text:
		return string(v)
	case Fragment:
		return v.Value
	case *Item:
		if v == nil {
			return ""
		}
		return v.Value
	}
	return ""
}

// IsNameATitle reports whether name looks like an explicit, human-authored
// title rather than a name the parser implied from content.
//
// An implied name is the whole entry converted to plain text, so it
// contains the content.  Both strings are compared after compatibility
// decomposition, lowercasing and removing everything but ASCII letters and
// digits.
func IsNameATitle(name, content string) bool {
	if content == "" {
		return true
	}
	if name == "" {
		return false
	}
	return !strings.Contains(normalizeTitle(name), normalizeTitle(content))
}

func normalizeTitle(s string) string {
	s = strings.ToLower(norm.NFKD.String(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
