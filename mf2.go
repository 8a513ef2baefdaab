// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

// Package mf2util interprets parsed microformats2 data as blog entries,
// events, comments and feeds.
//
// The input is the generic item tree produced by an mf2 parser such as
// willnorris.com/go/microformats.  The functions in this package apply the
// community conventions for authorship, post types, titles and comments to
// reduce that tree to a single normalized Record per entry.
//
// See also: http://microformats.org/wiki/microformats2
package mf2util // import "willnorris.com/go/mf2util"

import (
	"encoding/json"
	"fmt"
)

// Document is a parsed mf2 document: its top-level items and rel values.
type Document struct {
	Items []*Item             `json:"items"`
	Rels  map[string][]string `json:"rels"`
}

// Item is a single microformat object, such as an h-entry or h-card.
//
// Value and HTML are only set when the item is embedded as the value of a
// property on another item.
type Item struct {
	Type       []string           `json:"type"`
	Properties map[string][]Value `json:"properties"`
	Children   []*Item            `json:"children,omitempty"`
	Value      string             `json:"value,omitempty"`
	HTML       string             `json:"html,omitempty"`
}

// Value is a single property value.  It is one of Text, Fragment or *Item.
type Value interface {
	isValue()
}

// Text is a plain string property value.
type Text string

// Fragment is a compound property value that carries a plain text form and
// an HTML form, as produced for e-* properties.
type Fragment struct {
	Value string `json:"value"`
	HTML  string `json:"html,omitempty"`
}

func (Text) isValue()     {}
func (Fragment) isValue() {}
func (*Item) isValue()    {}

// HasType reports whether item has any of the given types.
func (item *Item) HasType(types ...string) bool {
	if item == nil {
		return false
	}
	for _, t := range item.Type {
		for _, want := range types {
			if t == want {
				return true
			}
		}
	}
	return false
}

// Has reports whether the property is asserted on item, even with no
// values.
func (item *Item) Has(prop string) bool {
	if item == nil {
		return false
	}
	_, ok := item.Properties[prop]
	return ok
}

// Get returns the values of prop, or nil.
func (item *Item) Get(prop string) []Value {
	if item == nil {
		return nil
	}
	return item.Properties[prop]
}

// Rel returns the URLs of the named rel, or nil.
func (d *Document) Rel(name string) []string {
	if d == nil {
		return nil
	}
	return d.Rels[name]
}

// UnmarshalJSON decodes a canonical mf2 JSON item, resolving each property
// value to Text, Fragment or *Item.
func (item *Item) UnmarshalJSON(b []byte) error {
	var raw struct {
		Type       json.RawMessage              `json:"type"`
		Properties map[string][]json.RawMessage `json:"properties"`
		Children   []*Item                      `json:"children"`
		Value      json.RawMessage              `json:"value"`
		HTML       string                       `json:"html"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	types, err := decodeTypes(raw.Type)
	if err != nil {
		return err
	}
	item.Type = types
	item.Children = raw.Children
	item.HTML = raw.HTML
	item.Value = decodeString(raw.Value)
	item.Properties = make(map[string][]Value, len(raw.Properties))
	for name, values := range raw.Properties {
		decoded := make([]Value, 0, len(values))
		for _, v := range values {
			dv, err := decodeValue(v)
			if err != nil {
				return fmt.Errorf("property %q: %w", name, err)
			}
			if dv != nil {
				decoded = append(decoded, dv)
			}
		}
		item.Properties[name] = decoded
	}
	return nil
}

func decodeValue(b json.RawMessage) (Value, error) {
	if len(b) == 0 {
		return nil, nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil, err
		}
		return Text(s), nil
	case '{':
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(b, &probe); err != nil {
			return nil, err
		}
		if _, ok := probe["type"]; ok {
			nested := new(Item)
			if err := json.Unmarshal(b, nested); err != nil {
				return nil, err
			}
			return nested, nil
		}
		var html string
		if h, ok := probe["html"]; ok {
			html = decodeString(h)
		}
		return Fragment{Value: decodeString(probe["value"]), HTML: html}, nil
	case 'n':
		return nil, nil
	default:
		// numbers and booleans are not valid mf2, but keep their text.
		return Text(string(b)), nil
	}
}

// decodeTypes accepts the type list, or a single type string as written by
// some hand-assembled documents.
func decodeTypes(b json.RawMessage) ([]string, error) {
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	if b[0] == '"' {
		var t string
		if err := json.Unmarshal(b, &t); err != nil {
			return nil, err
		}
		return []string{t}, nil
	}
	var types []string
	if err := json.Unmarshal(b, &types); err != nil {
		return nil, fmt.Errorf("item type: %w", err)
	}
	return types, nil
}

// decodeString returns b as a string, accepting both JSON strings and bare
// scalars.
func decodeString(b json.RawMessage) string {
	if len(b) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return s
	}
	if string(b) == "null" {
		return ""
	}
	return string(b)
}

// ParseJSON decodes a canonical mf2 JSON document.
func ParseJSON(b []byte) (*Document, error) {
	doc := new(Document)
	if err := json.Unmarshal(b, doc); err != nil {
		return nil, err
	}
	if doc.Items == nil {
		return nil, fmt.Errorf("mf2 document: %w", ErrMissingItems)
	}
	if doc.Rels == nil {
		doc.Rels = make(map[string][]string)
	}
	return doc, nil
}
