// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

// Package modes runs the interpretations offered by the mf2util commands
// against a parsed page.
package modes

import (
	"errors"
	"fmt"

	"willnorris.com/go/mf2util"
	"willnorris.com/go/mf2util/internal/fetch"
	"willnorris.com/go/mf2util/ptd"
	"willnorris.com/go/mf2util/rhc"
)

// Names lists the supported modes.
var Names = []string{
	"interpret", "entry", "event", "feed", "comment",
	"author", "hcard", "posttype", "dates",
}

// ErrUnknownMode is returned by Run for a mode not in Names.
var ErrUnknownMode = errors.New("unknown mode")

// Request holds the inputs of a mode besides the page.
type Request struct {
	// Targets are the URLs a comment is checked against.  If empty, the
	// page URL is used.
	Targets []string

	Options *mf2util.Options
}

// PostType is the result of the posttype mode.
type PostType struct {
	Type     string `json:"type" yaml:"type"`
	Response string `json:"response" yaml:"response"`
}

// Run runs mode against page.  A nil result with no error means the page
// had nothing the mode could interpret.
func Run(mode string, page *fetch.Page, req Request) (interface{}, error) {
	opts := req.Options
	if opts == nil {
		opts = new(mf2util.Options)
	}
	if opts.BaseHref == "" {
		o := *opts
		o.BaseHref = page.BaseHref
		opts = &o
	}
	doc, src := page.Document, page.URL

	var (
		result interface{}
		err    error
	)
	switch mode {
	case "interpret":
		result, err = nilRecord(mf2util.Interpret(doc, src, nil, opts))
	case "entry":
		result, err = nilRecord(mf2util.InterpretEntry(doc, src, nil, opts))
	case "event":
		result, err = nilRecord(mf2util.InterpretEvent(doc, src, nil, opts))
	case "feed":
		result, err = mf2util.InterpretFeed(doc, src, nil, opts)
	case "comment":
		targets := req.Targets
		if len(targets) == 0 && src != "" {
			targets = []string{src}
		}
		result, err = nilRecord(mf2util.InterpretComment(doc, src, targets, opts))
	case "author":
		var a *mf2util.Author
		if a, err = mf2util.FindAuthor(doc, src, nil, opts.Fetcher); a != nil {
			result = a
		}
	case "hcard":
		if h := rhc.RepresentativeHcard(doc, src); h != nil {
			result = h
		}
	case "posttype":
		if item := mf2util.FindFirstEntry(doc, "h-entry", "h-event"); item != nil {
			result = &PostType{Type: ptd.PostType(item), Response: ptd.ResponseType(item)}
		}
	case "dates":
		result, err = mf2util.FindDatetimes(doc)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownMode, mode)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// nilRecord keeps a nil *Record from becoming a non-nil interface value.
func nilRecord(r *mf2util.Record, err error) (interface{}, error) {
	if r == nil || err != nil {
		return nil, err
	}
	return r, nil
}
