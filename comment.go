// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

package mf2util

// Comment types returned by ClassifyComment.
const (
	CommentReply  = "reply"
	CommentRSVP   = "rsvp"
	CommentInvite = "invite"
	CommentLike   = "like"
	CommentRepost = "repost"
)

var (
	replyProperties  = []string{"in-reply-to", "reply-to", "reply"}
	likeProperties   = []string{"like-of", "like"}
	repostProperties = []string{"repost-of", "repost"}
)

// ClassifyComment finds and categorizes the references that the first
// h-entry in doc makes to any of targetURLs, which may include alternate or
// shortened forms of the target post's URL.
//
// A matching reply adds "rsvp" if the entry has an rsvp property, "invite"
// if it has an invitee property, and "reply".  A matching like adds "like"
// and a matching repost adds "repost".  Each type appears at most once, in
// the order first contributed.
func ClassifyComment(doc *Document, targetURLs []string) []string {
	var result []string
	entry := FindFirstEntry(doc, "h-entry")
	if entry == nil {
		return result
	}

	add := func(types ...string) {
		for _, t := range types {
			if !contains(result, t) {
				result = append(result, t)
			}
		}
	}

	var replyTypes []string
	if entry.Has("rsvp") {
		replyTypes = append(replyTypes, CommentRSVP)
	}
	if entry.Has("invitee") {
		replyTypes = append(replyTypes, CommentInvite)
	}
	replyTypes = append(replyTypes, CommentReply)

	for _, group := range []struct {
		props []string
		types []string
	}{
		{replyProperties, replyTypes},
		{likeProperties, []string{CommentLike}},
		{repostProperties, []string{CommentRepost}},
	} {
		for _, prop := range group.props {
			for _, ref := range entry.Get(prop) {
				if referencesAny(ref, targetURLs) {
					add(group.types...)
				}
			}
		}
	}
	return result
}

// referencesAny reports whether ref, a bare URL or a nested item with url
// properties, points at any of targets.
func referencesAny(ref Value, targets []string) bool {
	switch ref := ref.(type) {
	case Text:
		return contains(targets, string(ref))
	case *Item:
		for _, u := range ref.Get("url") {
			if contains(targets, valueText(u)) {
				return true
			}
		}
	}
	return false
}
