// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

package mf2util

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"willnorris.com/go/microformats"
)

const testPrefix = "http://example.com/"

// fetchTestdata is a Fetcher that parses files in testdata/authorship as if
// they were served under testPrefix.
var fetchTestdata = FetcherFunc(func(u string) (*Document, error) {
	b, err := os.ReadFile(filepath.Join("testdata", "authorship", strings.TrimPrefix(u, testPrefix)))
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(u)
	if err != nil {
		return nil, err
	}
	return FromMicroformats(microformats.Parse(strings.NewReader(string(b)), base)), nil
})

const testPhoto = "http://www.gravatar.com/avatar/fd876f8cd6a58277fc664d47ea10ad19.jpg?s=80&d=mm"

func TestFindAuthor_Testdata(t *testing.T) {
	feedChild := func(i int) func(*testing.T, *Document) *Item {
		return func(t *testing.T, doc *Document) *Item {
			feed := doc.Items[0]
			if !feed.HasType("h-feed") || len(feed.Children) != 3 {
				t.Fatalf("unexpected feed %v", feed)
			}
			return feed.Children[i]
		}
	}

	tests := []struct {
		file  string
		entry func(*testing.T, *Document) *Item
		want  *Author
	}{
		{
			file: "h-entry_with_p-author_h-card.html",
			want: &Author{Name: "John Doe", URL: "http://example.com/johndoe/", Photo: testPhoto},
		},
		{
			file: "h-entry_with_rel-author.html",
			want: &Author{Name: "John Doe", URL: "http://example.com/h-card_with_u-url_that_is_also_rel-me.html", Photo: testPhoto},
		},
		{
			file: "h-entry_with_u-author.html",
			want: &Author{Name: "John Doe", URL: "http://example.com/h-card_with_u-url_equal_to_self.html", Photo: testPhoto},
		},
		{
			file:  "h-feed_with_p-author_h-card.html",
			entry: feedChild(1),
			want:  &Author{Name: "John Doe", URL: "http://example.com/johndoe/", Photo: testPhoto},
		},
		{
			file:  "h-feed_with_u-author.html",
			entry: feedChild(2),
			want:  &Author{Name: "John Doe", URL: "http://example.com/h-card_with_u-url_equal_to_u-uid_equal_to_self.html", Photo: testPhoto},
		},
		{
			file: "h-entry_with_rel-author_no_h-card.html",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			src := testPrefix + tt.file
			doc, err := fetchTestdata(src)
			if err != nil {
				t.Fatal(err)
			}
			var entry *Item
			if tt.entry != nil {
				entry = tt.entry(t, doc)
			}
			got, err := FindAuthor(doc, src, entry, fetchTestdata)
			if err != nil {
				t.Fatalf("FindAuthor returned error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FindAuthor differs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindAuthor(t *testing.T) {
	entry := func(author ...Value) *Document {
		props := map[string][]Value{}
		if author != nil {
			props["author"] = author
		}
		return &Document{Items: []*Item{{Type: []string{"h-entry"}, Properties: props}}}
	}

	tests := []struct {
		name string
		doc  *Document
		want *Author
	}{
		{
			name: "p-author string",
			doc:  entry(Text("John Doe")),
			want: &Author{Name: "John Doe"},
		},
		{
			name: "h-card with name only",
			doc: entry(&Item{Type: []string{"h-card"}, Properties: map[string][]Value{
				"name": {Text("John Doe")},
			}}),
			want: &Author{Name: "John Doe"},
		},
		{
			name: "url-only author without fetcher",
			doc:  entry(Text("https://john.example/")),
			want: &Author{URL: "https://john.example/"},
		},
		{
			name: "url-only h-card without fetcher",
			doc: entry(&Item{Type: []string{"h-card"}, Properties: map[string][]Value{
				"url": {Text("https://john.example/")},
			}}),
			want: &Author{URL: "https://john.example/"},
		},
		{
			name: "rel-author without fetcher",
			doc: &Document{
				Items: []*Item{{Type: []string{"h-entry"}}},
				Rels:  map[string][]string{"author": {"https://john.example/", "https://other.example/"}},
			},
			want: &Author{URL: "https://john.example/"},
		},
		{
			name: "no author",
			doc:  entry(),
			want: nil,
		},
		{
			name: "no entry",
			doc:  &Document{Items: []*Item{{Type: []string{"h-card"}}}},
			want: nil,
		},
		{
			// the older "first h-card on the page" fallback is not applied
			name: "top-level h-card is not an author",
			doc: &Document{Items: []*Item{
				{Type: []string{"h-card"}, Properties: map[string][]Value{"name": {Text("Jane")}}},
				{Type: []string{"h-entry"}},
			}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindAuthor(tt.doc, "", nil, nil)
			if err != nil {
				t.Fatalf("FindAuthor returned error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FindAuthor differs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindAuthor_FetchError(t *testing.T) {
	errFetch := errors.New("fetch failed")
	doc := &Document{Items: []*Item{{
		Type:       []string{"h-entry"},
		Properties: map[string][]Value{"author": {Text("https://john.example/")}},
	}}}

	_, err := FindAuthor(doc, "", nil, FetcherFunc(func(string) (*Document, error) {
		return nil, errFetch
	}))
	if !errors.Is(err, errFetch) {
		t.Errorf("FindAuthor returned error %v, want %v", err, errFetch)
	}
}

func TestParseAuthor(t *testing.T) {
	tests := []struct {
		in   Value
		want *Author
	}{
		{Text("Jane"), &Author{Name: "Jane"}},
		{Text("http://jane.example/"), &Author{URL: "http://jane.example/"}},
		{Text("https://jane.example/"), &Author{URL: "https://jane.example/"}},
		{Text("ftp://jane.example/"), &Author{Name: "ftp://jane.example/"}},
		{Text(""), &Author{}},
		{Fragment{Value: "Jane", HTML: "<b>Jane</b>"}, &Author{Name: "Jane"}},
		{&Item{Type: []string{"h-card"}, Properties: map[string][]Value{
			"name":  {Text("Jane"), Text("J")},
			"url":   {Text("http://jane.example/")},
			"photo": {Fragment{Value: "http://jane.example/me.jpg"}},
		}}, &Author{Name: "Jane", URL: "http://jane.example/", Photo: "http://jane.example/me.jpg"}},
		{nil, &Author{}},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ParseAuthor(tt.in)); diff != "" {
			t.Errorf("ParseAuthor(%v) differs (-want +got):\n%s", tt.in, diff)
		}
	}
}
