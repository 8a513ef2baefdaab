// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

package mf2util

import (
	"fmt"

	"willnorris.com/go/microformats"
)

// FromMicroformats converts the output of the microformats parser into a
// Document.
func FromMicroformats(data *microformats.Data) *Document {
	doc := &Document{Rels: make(map[string][]string)}
	if data == nil {
		doc.Items = []*Item{}
		return doc
	}
	for rel, urls := range data.Rels {
		doc.Rels[rel] = append([]string(nil), urls...)
	}
	doc.Items = convertItems(data.Items)
	return doc
}

func convertItems(in []*microformats.Microformat) []*Item {
	out := make([]*Item, 0, len(in))
	for _, mf := range in {
		if mf != nil {
			out = append(out, convertItem(mf))
		}
	}
	return out
}

func convertItem(mf *microformats.Microformat) *Item {
	item := &Item{
		Type:       append([]string(nil), mf.Type...),
		Properties: make(map[string][]Value, len(mf.Properties)),
		Value:      mf.Value,
		HTML:       mf.HTML,
	}
	for name, values := range mf.Properties {
		converted := make([]Value, 0, len(values))
		for _, v := range values {
			if cv := convertValue(v); cv != nil {
				converted = append(converted, cv)
			}
		}
		item.Properties[name] = converted
	}
	if len(mf.Children) > 0 {
		item.Children = convertItems(mf.Children)
	}
	return item
}

func convertValue(v interface{}) Value {
	switch v := v.(type) {
	case string:
		return Text(v)
	case *microformats.Microformat:
		if v == nil {
			return nil
		}
		return convertItem(v)
	case map[string]interface{}:
		var f Fragment
		if s, ok := v["value"].(string); ok {
			f.Value = s
		}
		if s, ok := v["html"].(string); ok {
			f.HTML = s
		}
		return f
	case map[string]string:
		// u-photo with alt text and similar {value, ...} objects
		return Fragment{Value: v["value"], HTML: v["html"]}
	case nil:
		return nil
	default:
		return Text(fmt.Sprint(v))
	}
}
