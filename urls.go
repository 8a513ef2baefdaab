// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

package mf2util

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// urlAttributes lists the tag and attribute pairs whose values are
// rewritten by ConvertRelativePathsToAbsolute, in the order they are
// applied.
var urlAttributes = []struct {
	tag   string
	attrs []string
}{
	{"a", []string{"href"}},
	{"link", []string{"href"}},
	{"img", []string{"src"}},
	{"audio", []string{"src"}},
	{"video", []string{"src", "poster"}},
	{"source", []string{"src"}},
}

// urlAttributePatterns holds one compiled pattern per tag and attribute
// pair.  Tag and attribute names must match whole, so <abbr> and
// data-href are left alone.  Submatch 1 is the attribute value.
var urlAttributePatterns = compileURLAttributePatterns()

func compileURLAttributePatterns() []*regexp.Regexp {
	var patterns []*regexp.Regexp
	for _, ta := range urlAttributes {
		for _, attr := range ta.attrs {
			patterns = append(patterns, regexp.MustCompile(
				fmt.Sprintf(`(?is)<%s\s(?:[^>]*?\s)?%s\s*=\s*['"](.*?)['"]`, ta.tag, attr)))
		}
	}
	return patterns
}

// ConvertRelativePathsToAbsolute rewrites relative URLs in the href and src
// style attributes of foreign HTML content so that it can be displayed
// outside of its source page, for example as a reply context.
//
// URLs are resolved against baseHref (itself resolved against sourceURL)
// if it is set, else against sourceURL.  If sourceURL is empty, html is
// returned unchanged.
//
// The HTML is not parsed: each attribute value is located with a pattern
// scoped to its tag, and everything outside the matched values is kept
// byte for byte.
func ConvertRelativePathsToAbsolute(sourceURL, baseHref, html string) string {
	if sourceURL == "" {
		return html
	}
	base := sourceURL
	if baseHref != "" {
		base = resolveURL(sourceURL, baseHref)
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return html
	}

	for _, re := range urlAttributePatterns {
		html = replaceSubmatch(re, html, func(value string) string {
			return expandURL(value, baseURL)
		})
	}
	return html
}

// replaceSubmatch replaces the first submatch of every match of re in s
// with the result of fn, keeping the rest of each match.
func replaceSubmatch(re *regexp.Regexp, s string, fn func(string) string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		start, end := m[2], m[3]
		b.WriteString(s[last:start])
		b.WriteString(fn(s[start:end]))
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}

// expandURL expands relative URL r into an absolute URL by resolving it
// relative to base.  If r is not a valid URL or base is nil, the original r
// value is returned.
func expandURL(r string, base *url.URL) string {
	if base != nil {
		if u, err := url.Parse(r); err == nil {
			r = base.ResolveReference(u).String()
		}
	}
	return r
}

// resolveURL resolves ref against base, returning ref unchanged if base is
// not a valid URL.
func resolveURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return expandURL(ref, b)
}
