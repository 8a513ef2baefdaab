// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

package mf2util

import (
	"encoding/json"
	"log/slog"
)

// Record types.
const (
	TypeEntry = "entry"
	TypeEvent = "event"
	TypeCite  = "cite"
)

// Options controls how documents are interpreted.  The zero value is ready
// to use.
type Options struct {
	// BaseHref is the href of the document's base element, if any.  It is
	// used to resolve relative URLs in content.
	BaseHref string

	// NoRelSyndication excludes the document's rel=syndication links from
	// the syndication of interpreted entries.  Feeds set this for their
	// children, since page level rel=syndication usually belongs to the
	// feed's permalink and not to every entry on it.
	NoRelSyndication bool

	// WantJSON leaves dt-* values as the raw strings that were written, so
	// the result serializes without any parsed times.
	WantJSON bool

	// Fetcher is used to fetch author pages.  If nil, an author page url
	// is reported as the author url without being followed.
	Fetcher Fetcher

	// Logger receives warnings about values that cannot be interpreted.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// withoutRelSyndication returns a copy of opts with NoRelSyndication set.
func withoutRelSyndication(opts *Options) *Options {
	var o Options
	if opts != nil {
		o = *opts
	}
	o.NoRelSyndication = true
	return &o
}

// Time is the value of a dt-* property.
type Time struct {
	// Raw is the value as written.
	Raw string

	// Value is the parsed value.  It is nil if Options.WantJSON was set or
	// the value could not be parsed, in which case Err holds the reason.
	Value *DateTime

	Err error
}

// Location is where an entry or event takes place.
type Location struct {
	URL             string `json:"url,omitempty"`
	Name            string `json:"name,omitempty"`
	StreetAddress   string `json:"street-address,omitempty"`
	ExtendedAddress string `json:"extended-address,omitempty"`
	Locality        string `json:"locality,omitempty"`
	Region          string `json:"region,omitempty"`
	CountryName     string `json:"country-name,omitempty"`
	PostalCode      string `json:"postal-code,omitempty"`
	Label           string `json:"label,omitempty"`
	Latitude        string `json:"latitude,omitempty"`
	Longitude       string `json:"longitude,omitempty"`
	Altitude        string `json:"altitude,omitempty"`
}

// Record is an interpreted h-entry, h-event or h-cite.  Fields that could
// not be determined are left empty.
type Record struct {
	// Type is one of TypeEntry, TypeEvent or TypeCite.  It is empty for a
	// reference that was only a URL.
	Type string

	URL      string
	UID      string
	Photo    string
	Featured string
	Logo     string

	// Name is set for entries only if it is an explicit title.
	Name string

	Author *Author

	// Content is the HTML content with relative URLs made absolute, and
	// ContentPlain its plain text form.
	Content      string
	ContentPlain string
	Summary      string

	Location    *Location
	Syndication []string

	Start     *Time
	End       *Time
	Published *Time
	Updated   *Time
	Deleted   *Time

	// References to other posts, keyed by property: in-reply-to, like-of,
	// repost-of, bookmark-of, comment, like and repost.
	References map[string][]*Record

	// Set by InterpretComment.
	CommentType []string
	RSVP        string
	Invitees    []*Author
}

// Feed is an interpreted h-feed, or the list of top-level entries of a page
// without one.
type Feed struct {
	Name    string    `json:"name,omitempty"`
	Entries []*Record `json:"entries"`
}

// MarshalJSON encodes r as a flat object in the shape of the mf2 property
// names.  A dt-* value is written under its property name, either parsed or
// raw if the raw form was requested, and the raw form is also kept under
// the property name with a "-str" suffix when it was parsed or failed to
// parse.
func (r *Record) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{})
	set := func(key, value string) {
		if value != "" {
			m[key] = value
		}
	}

	set("type", r.Type)
	set("url", r.URL)
	set("uid", r.UID)
	set("photo", r.Photo)
	set("featured", r.Featured)
	set("logo", r.Logo)
	set("name", r.Name)
	set("content", r.Content)
	set("content-plain", r.ContentPlain)
	set("summary", r.Summary)
	set("rsvp", r.RSVP)
	if !r.Author.IsZero() {
		m["author"] = r.Author
	}
	if r.Location != nil {
		m["location"] = r.Location
	}
	if len(r.Syndication) > 0 {
		m["syndication"] = r.Syndication
	}
	for key, t := range map[string]*Time{
		"start":     r.Start,
		"end":       r.End,
		"published": r.Published,
		"updated":   r.Updated,
		"deleted":   r.Deleted,
	} {
		switch {
		case t == nil:
		case t.Value != nil:
			m[key] = t.Value
			m[key+"-str"] = t.Raw
		case t.Err != nil:
			m[key+"-str"] = t.Raw
		default:
			m[key] = t.Raw
		}
	}
	for prop, refs := range r.References {
		if len(refs) > 0 {
			m[prop] = refs
		}
	}
	if r.CommentType != nil {
		m["comment_type"] = r.CommentType
	}
	if len(r.Invitees) > 0 {
		m["invitees"] = r.Invitees
	}
	return json.Marshal(m)
}
