// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

package mf2util

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Document
	}{
		{
			name:  "empty",
			input: `{"items": []}`,
			want:  &Document{Items: []*Item{}, Rels: map[string][]string{}},
		},
		{
			name: "value kinds",
			input: `{
				"items": [{
					"type": ["h-entry"],
					"properties": {
						"name": ["Title", null, 42],
						"content": [{"value": "text", "html": "<b>text</b>"}],
						"author": [{"type": ["h-card"], "properties": {"name": ["Jo"]}, "value": "Jo"}],
						"category": []
					},
					"children": [{"type": ["h-cite"], "properties": {}}]
				}],
				"rels": {"me": ["https://jo.example/"]}
			}`,
			want: &Document{
				Items: []*Item{{
					Type: []string{"h-entry"},
					Properties: map[string][]Value{
						"name":    {Text("Title"), Text("42")},
						"content": {Fragment{Value: "text", HTML: "<b>text</b>"}},
						"author": {&Item{
							Type:       []string{"h-card"},
							Properties: map[string][]Value{"name": {Text("Jo")}},
							Value:      "Jo",
						}},
						"category": {},
					},
					Children: []*Item{{Type: []string{"h-cite"}, Properties: map[string][]Value{}}},
				}},
				Rels: map[string][]string{"me": {"https://jo.example/"}},
			},
		},
		{
			name:  "single type string",
			input: `{"items": [{"type": "h-entry", "properties": {"url": ["http://example.com/"]}}]}`,
			want: &Document{
				Items: []*Item{{
					Type:       []string{"h-entry"},
					Properties: map[string][]Value{"url": {Text("http://example.com/")}},
				}},
				Rels: map[string][]string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseJSON([]byte(tt.input))
			if err != nil {
				t.Fatalf("ParseJSON returned error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseJSON mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseJSON_Errors(t *testing.T) {
	if _, err := ParseJSON([]byte(`{"rels": {}}`)); !errors.Is(err, ErrMissingItems) {
		t.Errorf("ParseJSON(no items) returned %v, want ErrMissingItems", err)
	}
	for _, input := range []string{
		`not json`,
		`{"items": [{"type": 5}]}`,
		`{"items": [{"type": ["h-entry"], "properties": {"name": [{"type": 7}]}}]}`,
	} {
		if _, err := ParseJSON([]byte(input)); err == nil {
			t.Errorf("ParseJSON(%q) returned no error", input)
		}
	}
}

func TestItem_Accessors(t *testing.T) {
	item := &Item{
		Type:       []string{"h-entry", "h-as-note"},
		Properties: map[string][]Value{"rsvp": {}, "url": {Text("http://example.com/")}},
	}
	if !item.HasType("h-event", "h-as-note") {
		t.Errorf("HasType(h-event, h-as-note) = false, want true")
	}
	if item.HasType("h-card") {
		t.Errorf("HasType(h-card) = true, want false")
	}
	if !item.Has("rsvp") || item.Has("invitee") {
		t.Errorf("Has reports the wrong properties")
	}
	if got := item.Get("url"); len(got) != 1 {
		t.Errorf("Get(url) = %v", got)
	}

	var nilItem *Item
	var nilDoc *Document
	if nilItem.HasType("h-entry") || nilItem.Has("url") || nilItem.Get("url") != nil || nilDoc.Rel("me") != nil {
		t.Errorf("nil receivers should report nothing")
	}
}
