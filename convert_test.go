// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

package mf2util

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"willnorris.com/go/microformats"
)

func TestFromMicroformats(t *testing.T) {
	card := &microformats.Microformat{
		Type:       []string{"h-card"},
		Properties: map[string][]interface{}{"name": {"Jo"}},
		Value:      "Jo",
	}
	data := &microformats.Data{
		Items: []*microformats.Microformat{
			nil,
			{
				Type: []string{"h-entry"},
				Properties: map[string][]interface{}{
					"content": {map[string]interface{}{"value": "hi", "html": "<i>hi</i>"}},
					"photo":   {map[string]string{"value": "http://example.com/a.jpg", "alt": "a"}},
					"author":  {card},
					"name":    {"x", nil},
				},
				Children: []*microformats.Microformat{card},
			},
		},
		Rels: map[string][]string{"me": {"https://jo.example/"}},
	}

	wantCard := &Item{
		Type:       []string{"h-card"},
		Properties: map[string][]Value{"name": {Text("Jo")}},
		Value:      "Jo",
	}
	want := &Document{
		Items: []*Item{{
			Type: []string{"h-entry"},
			Properties: map[string][]Value{
				"content": {Fragment{Value: "hi", HTML: "<i>hi</i>"}},
				"photo":   {Fragment{Value: "http://example.com/a.jpg"}},
				"author":  {wantCard},
				"name":    {Text("x")},
			},
			Children: []*Item{wantCard},
		}},
		Rels: map[string][]string{"me": {"https://jo.example/"}},
	}

	if diff := cmp.Diff(want, FromMicroformats(data)); diff != "" {
		t.Errorf("FromMicroformats mismatch (-want +got):\n%s", diff)
	}

	if got := FromMicroformats(nil); got.Items == nil || len(got.Items) != 0 || got.Rels == nil {
		t.Errorf("FromMicroformats(nil) = %+v, want empty document", got)
	}
}

func TestFromMicroformats_Parsed(t *testing.T) {
	const input = `
<link rel="me" href="https://jo.example/">
<article class="h-entry">
  <a class="p-author h-card" href="/jo">Jo</a>
  <div class="e-content"><p>Hello</p></div>
</article>`
	base, _ := url.Parse("http://example.com/post")
	doc := FromMicroformats(microformats.Parse(strings.NewReader(input), base))

	entry := FindFirstEntry(doc, "h-entry")
	if entry == nil {
		t.Fatal("no h-entry found")
	}
	author, ok := entry.Get("author")[0].(*Item)
	if !ok {
		t.Fatalf("author is %T, want *Item", entry.Get("author")[0])
	}
	if got, want := plain(author.Get("url")), "http://example.com/jo"; got != want {
		t.Errorf("author url = %q, want %q", got, want)
	}
	content, ok := entry.Get("content")[0].(Fragment)
	if !ok {
		t.Fatalf("content is %T, want Fragment", entry.Get("content")[0])
	}
	if got, want := content.HTML, "<p>Hello</p>"; got != want {
		t.Errorf("content html = %q, want %q", got, want)
	}
	if got, want := doc.Rel("me"), []string{"https://jo.example/"}; !cmp.Equal(got, want) {
		t.Errorf("rel=me = %v, want %v", got, want)
	}
}
