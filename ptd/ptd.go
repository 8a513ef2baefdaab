// Copyright (c) 2015 Andy Leap, Google
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

// Package ptd implements Post Type Discovery as described by
// https://indieweb.org/post-type-discovery
package ptd

import (
	"net/url"

	"willnorris.com/go/mf2util"
)

// Post types returned by PostType and ResponseType.
const (
	Org     = "org"
	Person  = "person"
	Event   = "event"
	RSVP    = "rsvp"
	Invite  = "invite"
	Reply   = "reply"
	Repost  = "repost"
	Like    = "like"
	Follow  = "follow"
	Photo   = "photo"
	Article = "article"
	Note    = "note"
	Mention = "mention"
)

// impliedTypes maps properties to the post type their presence implies, in
// order of precedence.
var impliedTypes = []struct {
	prop string
	typ  string
}{
	{"rsvp", RSVP},
	{"invitee", Invite},
	{"in-reply-to", Reply},
	{"repost-of", Repost},
	{"like-of", Like},
	{"follow-of", Follow},
	{"photo", Photo},
}

// PostType determines the type of a post identified by the provided
// item.
//
// An h-card is an "org" if its name equals its org, with both present or
// both absent, else a "person".  An h-event is an "event".  Otherwise the
// presence, regardless of value, of the first of rsvp, invitee,
// in-reply-to, repost-of, like-of, follow-of or photo decides the type.  Remaining posts are an "article" if their
// name is a title of their content (or summary), else a "note".
func PostType(item *mf2util.Item) string {
	if item == nil {
		return ""
	}

	if item.HasType("h-card") {
		name, _ := mf2util.PlainText(item.Get("name"), true)
		org, _ := mf2util.PlainText(item.Get("org"), true)
		if item.Has("name") == item.Has("org") && name == org {
			return Org
		}
		return Person
	}

	if item.HasType("h-event") {
		return Event
	}

	for _, it := range impliedTypes {
		if item.Has(it.prop) {
			return it.typ
		}
	}

	// compare content and name to determine if post is a note or an article
	name, _ := mf2util.PlainText(item.Get("name"), true)
	content, _ := mf2util.PlainText(item.Get("content"), true)
	if content == "" {
		content, _ = mf2util.PlainText(item.Get("summary"), true)
	}
	if content != "" && name != "" && mf2util.IsNameATitle(name, content) {
		return Article
	}
	return Note
}

// ResponseType determines the type of a post identified by the
// provided item using the Response Type Algorithm.
//
// See also https://www.w3.org/TR/post-type-discovery/#response-algorithm
func ResponseType(item *mf2util.Item) string {
	if item == nil {
		return ""
	}

	for _, value := range item.Get("rsvp") {
		if v, ok := value.(mf2util.Text); ok {
			if v == "yes" || v == "no" || v == "maybe" || v == "interested" {
				return RSVP
			}
		}
	}

	if validURL(item.Get("repost-of")) {
		return Repost
	}
	if validURL(item.Get("like-of")) {
		return Like
	}
	if validURL(item.Get("in-reply-to")) {
		return Reply
	}

	return Mention
}

// Returns true if any of values is, or is an item with, a non-empty valid
// URL.
func validURL(values []mf2util.Value) bool {
	for _, value := range values {
		var s string
		switch v := value.(type) {
		case mf2util.Text:
			s = string(v)
		case *mf2util.Item:
			s, _ = mf2util.PlainText(v.Get("url"), true)
		}
		// url.Parse will happily parse an empty string, but
		// that's probably not really what we want here
		if s == "" {
			continue
		}
		if _, err := url.Parse(s); err == nil {
			return true
		}
	}
	return false
}
