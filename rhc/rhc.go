// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

// Package rhc implements Representative h-card parsing as defined by
// http://microformats.org/wiki/representative-h-card-parsing
package rhc

import (
	"net/url"
	"sort"

	"willnorris.com/go/mf2util"
)

// RepresentativeHcard returns the representative h-card for the given
// document from srcURL, or nil if there is none.
//
// h-cards are considered in the order mf2util.FindAllEntries returns them:
// top-level items and their children, breadth-first.  The first h-card
// with both a uid and a url matching srcURL wins.  Otherwise the first
// h-card with a url that is also a rel=me link of the document wins.
// Otherwise, if exactly one h-card has a url matching srcURL, that h-card
// is the representative h-card; several such h-cards are ambiguous and none
// is returned.
//
// Only if none of those h-cards is representative are the same rules
// applied to h-cards nested as property values, such as a p-author h-card.
func RepresentativeHcard(doc *mf2util.Document, srcURL string) *mf2util.Item {
	if doc == nil || len(doc.Items) == 0 || srcURL == "" {
		return nil
	}

	hcards := mf2util.FindAllEntries(doc, "h-card")
	if h := representative(hcards, doc.Rel("me"), srcURL); h != nil {
		return h
	}
	return representative(propertyHcards(doc), doc.Rel("me"), srcURL)
}

func representative(hcards []*mf2util.Item, relMe []string, srcURL string) *mf2util.Item {
	// If the page contains an h-card with uid and url properties both matching the page URL,
	// the first such h-card is the representative h-card
	for _, h := range hcards {
		if hasURLValue(h.Get("url"), srcURL) && hasURLValue(h.Get("uid"), srcURL) {
			return h
		}
	}

	// If no representative h-card was found, if the page contains an h-card with a
	// url property value which also has a rel=me relation (i.e. matches a URL in
	// parse_results.rels.me), the first such h-card is the representative h-card
	for _, h := range hcards {
		for _, r := range relMe {
			if hasURLValue(h.Get("url"), r) {
				return h
			}
		}
	}

	// If no representative h-card was found, if the page contains exactly one
	// h-card with a url property matching the page URL, that h-card is the
	// representative h-card
	var urlMatchCard *mf2util.Item
	for _, h := range hcards {
		if hasURLValue(h.Get("url"), srcURL) {
			if urlMatchCard != nil {
				return nil
			}
			urlMatchCard = h
		}
	}
	return urlMatchCard
}

// propertyHcards returns the h-cards nested as property values of the
// items of doc, and of the items nested within those, in breadth-first
// order.  Top-level items and their children are not included.
func propertyHcards(doc *mf2util.Document) []*mf2util.Item {
	seen := make(map[*mf2util.Item]bool)
	var tree []*mf2util.Item
	for queue := append([]*mf2util.Item(nil), doc.Items...); len(queue) > 0; queue = queue[1:] {
		if mf := queue[0]; mf != nil && !seen[mf] {
			seen[mf] = true
			tree = append(tree, mf)
			queue = append(queue, mf.Children...)
		}
	}

	var out []*mf2util.Item
	var queue []*mf2util.Item
	for _, mf := range tree {
		queue = append(queue, propertyItems(mf)...)
	}
	for ; len(queue) > 0; queue = queue[1:] {
		mf := queue[0]
		if mf == nil || seen[mf] {
			continue
		}
		seen[mf] = true
		if mf.HasType("h-card") {
			out = append(out, mf)
		}
		queue = append(queue, propertyItems(mf)...)
		queue = append(queue, mf.Children...)
	}
	return out
}

// propertyItems returns the microformats among the property values of mf,
// in a stable order.
func propertyItems(mf *mf2util.Item) (out []*mf2util.Item) {
	names := make([]string, 0, len(mf.Properties))
	for name := range mf.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, p := range mf.Properties[name] {
			if pm, ok := p.(*mf2util.Item); ok {
				out = append(out, pm)
			}
		}
	}
	return out
}

func hasURLValue(values []mf2util.Value, s string) bool {
	for _, v := range values {
		if vs, ok := v.(mf2util.Text); ok {
			if urlMatch(string(vs), s) {
				return true
			}
		}
	}
	return false
}

// urlMatch reports whether a and b are the same URL, treating an empty
// path as "/".
func urlMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}

	au, err := url.Parse(a)
	if err != nil {
		return false
	}
	if au.Path == "" {
		au.Path = "/"
	}

	bu, err := url.Parse(b)
	if err != nil {
		return false
	}
	if bu.Path == "" {
		bu.Path = "/"
	}

	return au.String() == bu.String()
}
