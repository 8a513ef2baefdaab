// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

package mf2util

import "strings"

// Author is the name, url and photo of an author.  Any of them may be
// empty.
type Author struct {
	Name  string `json:"name,omitempty"`
	URL   string `json:"url,omitempty"`
	Photo string `json:"photo,omitempty"`
}

// IsZero reports whether a has no fields set.
func (a *Author) IsZero() bool {
	return a == nil || (a.Name == "" && a.URL == "" && a.Photo == "")
}

// Fetcher retrieves and parses the mf2 document at a URL.  It is used by
// FindAuthor to follow an author page.
type Fetcher interface {
	Fetch(url string) (*Document, error)
}

// FetcherFunc adapts an ordinary function to the Fetcher interface.
type FetcherFunc func(url string) (*Document, error)

// Fetch calls f(url).
func (f FetcherFunc) Fetch(url string) (*Document, error) {
	return f(url)
}

// ParseAuthor parses the value of an author property.  A nested h-card
// contributes its first name, photo and url.  A plain string that starts
// with an http or https scheme is taken as the author url, any other
// string as the author name.
func ParseAuthor(v Value) *Author {
	a := new(Author)
	switch v := v.(type) {
	case *Item:
		if v == nil {
			return a
		}
		a.Name, _ = PlainText(v.Get("name"), false)
		a.Photo, _ = PlainText(v.Get("photo"), false)
		a.URL, _ = PlainText(v.Get("url"), false)
	case Text:
		parseAuthorString(a, string(v))
	case Fragment:
		parseAuthorString(a, v.Value)
	}
	return a
}

func parseAuthorString(a *Author, s string) {
	if s == "" {
		return
	}
	if isHTTPURL(s) {
		a.URL = s
	} else {
		a.Name = s
	}
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// authorPage returns the url of v if v is an author value that consists of
// a url and nothing else.  Such a value names a page to look the author up
// on rather than the author itself.
func authorPage(v Value) (string, bool) {
	switch v := v.(type) {
	case *Item:
		if v == nil || len(v.Get("name")) > 0 || len(v.Get("photo")) > 0 {
			return "", false
		}
		if u, ok := PlainText(v.Get("url"), false); ok {
			return u, true
		}
	case Text:
		if isHTTPURL(string(v)) {
			return string(v), true
		}
	case Fragment:
		if isHTTPURL(v.Value) {
			return v.Value, true
		}
	}
	return "", false
}

// FindAuthor determines the author of entry using the authorship algorithm
// described at https://indieweb.org/authorship.  If entry is nil, the first
// h-entry in doc is used.
//
// In order, the author is taken from:
//
//   - the author property of the entry, else of the h-feed that contains it.
//     A url-only author names an author page rather than the author.
//   - otherwise the first rel=author link of doc names an author page.
//   - the author page: with a nil fetcher its url alone is returned.
//     Otherwise it is fetched and its first h-card with url == uid == page
//     url, else with a url that is also a rel=me link of that page, else
//     with url == page url is the author.
//
// FindAuthor returns nil if no author can be determined.  Errors come only
// from fetcher and are returned unchanged.
func FindAuthor(doc *Document, sourceURL string, entry *Item, fetcher Fetcher) (*Author, error) {
	if entry == nil {
		entry = FindFirstEntry(doc, "h-entry")
		if entry == nil {
			return nil, nil
		}
	}

	page, author := authorFromValues(entry.Get("author"))
	if author == nil && page == "" {
		if feed := parentFeed(doc, entry); feed != nil {
			page, author = authorFromValues(feed.Get("author"))
		}
	}
	if author != nil {
		return author, nil
	}

	if page == "" {
		if rels := doc.Rel("author"); len(rels) > 0 {
			page = rels[0]
		}
	}
	if page == "" {
		return nil, nil
	}
	if fetcher == nil {
		return &Author{URL: page}, nil
	}

	pageDoc, err := fetcher.Fetch(page)
	if err != nil {
		return nil, err
	}
	hcards := FindAllEntries(pageDoc, "h-card")

	for _, hcard := range hcards {
		u, uid := plain(hcard.Get("url")), plain(hcard.Get("uid"))
		if u != "" && u == uid && u == page {
			return ParseAuthor(hcard), nil
		}
	}
	relMe := pageDoc.Rel("me")
	for _, hcard := range hcards {
		if u := plain(hcard.Get("url")); u != "" && contains(relMe, u) {
			return ParseAuthor(hcard), nil
		}
	}
	for _, hcard := range hcards {
		if u := plain(hcard.Get("url")); u != "" && u == page {
			return ParseAuthor(hcard), nil
		}
	}
	return nil, nil
}

// authorFromValues interprets the first value of an author property as
// either an author page url or a complete author.
func authorFromValues(values []Value) (page string, author *Author) {
	if len(values) == 0 {
		return "", nil
	}
	if u, ok := authorPage(values[0]); ok {
		return u, nil
	}
	if a := ParseAuthor(values[0]); !a.IsZero() {
		return "", a
	}
	return "", nil
}

// parentFeed returns the h-feed in doc that has entry as a child.
func parentFeed(doc *Document, entry *Item) *Item {
	for _, feed := range FindAllEntries(doc, "h-feed") {
		for _, child := range feed.Children {
			if child == entry {
				return feed
			}
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
