// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

package mf2util

import (
	"strings"
)

// referenceProperties are interpreted as lists of references to other
// posts, in this order.
var referenceProperties = []string{
	"in-reply-to", "like-of", "repost-of", "bookmark-of",
	"comment", "like", "repost",
}

// maxReferenceDepth bounds how deeply nested reference properties are
// interpreted.
const maxReferenceDepth = 8

// Interpret interprets item, or if nil the first h-entry or h-event in doc,
// as an event or an entry according to its type.  It returns nil if there
// is nothing to interpret.  Errors come only from opts.Fetcher.
func Interpret(doc *Document, sourceURL string, item *Item, opts *Options) (*Record, error) {
	return interpret(doc, sourceURL, item, opts, 0)
}

func interpret(doc *Document, sourceURL string, item *Item, opts *Options, depth int) (*Record, error) {
	if item == nil {
		item = FindFirstEntry(doc, "h-entry", "h-event")
	}
	switch {
	case item == nil:
		return nil, nil
	case item.HasType("h-event"):
		return InterpretEvent(doc, sourceURL, item, opts)
	case item.HasType("h-entry", "h-cite"):
		return interpretEntry(doc, sourceURL, item, opts, depth)
	}
	return nil, nil
}

// InterpretEvent interprets hevent, or if nil the first h-event in doc.
// The event name is always taken as written.  It returns nil if doc has no
// h-event.
func InterpretEvent(doc *Document, sourceURL string, hevent *Item, opts *Options) (*Record, error) {
	if hevent == nil {
		if hevent = FindFirstEntry(doc, "h-event"); hevent == nil {
			return nil, nil
		}
	}
	r, err := interpretCommon(doc, sourceURL, hevent, opts)
	if err != nil {
		return nil, err
	}
	r.Type = TypeEvent
	if name, ok := PlainText(hevent.Get("name"), true); ok {
		r.Name = name
	}
	return r, nil
}

// InterpretEntry interprets hentry, or if nil the first h-entry in doc.
// The entry name is kept only if IsNameATitle reports it as a title of the
// plain text content.  Nested references are interpreted as records of
// their own; bare reference URLs become records with only a URL.  It
// returns nil if doc has no h-entry.
func InterpretEntry(doc *Document, sourceURL string, hentry *Item, opts *Options) (*Record, error) {
	return interpretEntry(doc, sourceURL, hentry, opts, 0)
}

func interpretEntry(doc *Document, sourceURL string, hentry *Item, opts *Options, depth int) (*Record, error) {
	if hentry == nil {
		if hentry = FindFirstEntry(doc, "h-entry"); hentry == nil {
			return nil, nil
		}
	}
	r, err := interpretCommon(doc, sourceURL, hentry, opts)
	if err != nil {
		return nil, err
	}
	r.Type = TypeEntry
	if hentry.HasType("h-cite") {
		r.Type = TypeCite
	}

	if title := plain(hentry.Get("name")); title != "" && IsNameATitle(title, r.ContentPlain) {
		r.Name = title
	}

	if depth >= maxReferenceDepth {
		return r, nil
	}
	nested := withoutRelSyndication(opts)
	for _, prop := range referenceProperties {
		for _, v := range hentry.Get(prop) {
			var ref *Record
			switch v := v.(type) {
			case *Item:
				if ref, err = interpret(doc, sourceURL, v, nested, depth+1); err != nil {
					return nil, err
				}
			default:
				ref = &Record{URL: valueText(v)}
			}
			if ref == nil {
				continue
			}
			if r.References == nil {
				r.References = make(map[string][]*Record)
			}
			r.References[prop] = append(r.References[prop], ref)
		}
	}
	return r, nil
}

// InterpretFeed interprets hfeed, or if nil the first h-feed in doc, as a
// list of entries.  If doc has no h-feed, its top-level items are taken as
// the entries.  Items that are not entries or events are skipped, and
// rel=syndication links of doc are never attributed to the entries.
func InterpretFeed(doc *Document, sourceURL string, hfeed *Item, opts *Options) (*Feed, error) {
	if hfeed == nil {
		hfeed = FindFirstEntry(doc, "h-feed")
	}

	feed := &Feed{Entries: []*Record{}}
	var children []*Item
	if hfeed != nil {
		feed.Name, _ = PlainText(hfeed.Get("name"), false)
		children = hfeed.Children
	} else if doc != nil {
		children = doc.Items
	}

	childOpts := withoutRelSyndication(opts)
	for _, child := range children {
		if child == nil {
			continue
		}
		entry, err := Interpret(doc, sourceURL, child, childOpts)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			feed.Entries = append(feed.Entries, entry)
		}
	}
	return feed, nil
}

// InterpretComment interprets the first h-entry in doc as a comment on the
// post at targetURLs.  In addition to the entry fields, the result has its
// CommentType set by ClassifyComment, the lowercased rsvp value, and the
// parsed invitees.  It returns nil if doc has no h-entry.
func InterpretComment(doc *Document, sourceURL string, targetURLs []string, opts *Options) (*Record, error) {
	item := FindFirstEntry(doc, "h-entry")
	if item == nil {
		return nil, nil
	}
	r, err := InterpretEntry(doc, sourceURL, item, opts)
	if err != nil || r == nil {
		return r, err
	}

	r.CommentType = ClassifyComment(doc, targetURLs)
	if r.CommentType == nil {
		r.CommentType = []string{}
	}
	if rsvp := plain(item.Get("rsvp")); rsvp != "" {
		r.RSVP = strings.ToLower(rsvp)
	}
	for _, v := range item.Get("invitee") {
		r.Invitees = append(r.Invitees, ParseAuthor(v))
	}
	return r, nil
}

// interpretCommon extracts the properties shared by entries and events.
func interpretCommon(doc *Document, sourceURL string, item *Item, opts *Options) (*Record, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	r := new(Record)

	for _, f := range []struct {
		prop string
		dst  *string
	}{
		{"url", &r.URL},
		{"uid", &r.UID},
		{"photo", &r.Photo},
		{"featured", &r.Featured},
		{"logo", &r.Logo},
	} {
		*f.dst = plain(item.Get(f.prop))
	}

	for _, f := range []struct {
		prop string
		dst  **Time
	}{
		{"start", &r.Start},
		{"end", &r.End},
		{"published", &r.Published},
		{"updated", &r.Updated},
		{"deleted", &r.Deleted},
	} {
		*f.dst = interpretTime(f.prop, plain(item.Get(f.prop)), &o)
	}

	author, err := FindAuthor(doc, sourceURL, item, o.Fetcher)
	if err != nil {
		return nil, err
	}
	if !author.IsZero() {
		r.Author = author
	}

	if content := item.Get("content"); len(content) > 0 {
		html, value := contentForms(content[0])
		r.Content = ConvertRelativePathsToAbsolute(sourceURL, o.BaseHref, html)
		r.ContentPlain = value
	}

	if summary := item.Get("summary"); len(summary) > 0 {
		r.Summary = valueText(summary[0])
	}

	r.Location = findLocation(item)
	r.Syndication = syndication(doc, item, !o.NoRelSyndication)
	return r, nil
}

// interpretTime returns the Time for the raw value of a dt-* property, or
// nil if raw is empty.
func interpretTime(prop, raw string, o *Options) *Time {
	if raw == "" {
		return nil
	}
	t := &Time{Raw: raw}
	if o.WantJSON {
		return t
	}
	t.Value, t.Err = ParseDatetime(raw)
	if t.Err != nil {
		o.logger().Warn("failed to parse datetime", "property", prop, "value", raw, "err", t.Err)
	}
	return t
}

// contentForms returns the HTML and plain text forms of a content value.
// Both are stripped of surrounding whitespace when they come from a
// compound value.
func contentForms(v Value) (html, value string) {
	switch v := v.(type) {
	case Fragment:
		html, value = v.HTML, v.Value
	case *Item:
		html, value = v.HTML, v.Value
	case Text:
		return string(v), string(v)
	}
	html, value = strings.TrimSpace(html), strings.TrimSpace(value)
	if html == "" {
		html = value
	}
	return html, value
}

// syndication returns the syndication URLs of item, preceded by the
// rel=syndication links of doc if withRels is set, without duplicates.
func syndication(doc *Document, item *Item, withRels bool) []string {
	var urls []string
	add := func(u string) {
		if u != "" && !contains(urls, u) {
			urls = append(urls, u)
		}
	}
	if withRels {
		for _, u := range doc.Rel("syndication") {
			add(u)
		}
	}
	for _, v := range item.Get("syndication") {
		add(valueText(v))
	}
	return urls
}
