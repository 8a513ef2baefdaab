// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

// The mf2util command interprets the microformats found at a URL, in an
// HTML file, or in a canonical mf2 JSON document.
//
// Usage:
//
//	mf2util [options] <url|file|->
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	console "github.com/phsym/console-slog"

	"willnorris.com/go/mf2util"
	"willnorris.com/go/mf2util/internal/fetch"
	"willnorris.com/go/mf2util/internal/modes"
)

type options struct {
	Mode         string        `short:"m" long:"mode" env:"MF2UTIL_MODE" default:"interpret" choice:"interpret" choice:"entry" choice:"event" choice:"feed" choice:"comment" choice:"author" choice:"hcard" choice:"posttype" choice:"dates" description:"What to extract from the document"`
	Format       string        `short:"f" long:"format" env:"MF2UTIL_FORMAT" default:"json" choice:"json" choice:"yaml" description:"Output format"`
	SourceURL    string        `short:"s" long:"source-url" env:"MF2UTIL_SOURCE_URL" description:"URL the document was retrieved from, when reading a file"`
	Targets      []string      `short:"t" long:"target" description:"Target URL a comment is checked against (repeatable)"`
	FollowAuthor bool          `long:"follow-author" env:"MF2UTIL_FOLLOW_AUTHOR" description:"Fetch author pages during authorship discovery"`
	RawDates     bool          `long:"raw-dates" env:"MF2UTIL_RAW_DATES" description:"Leave dates as written instead of parsing them"`
	NoRelSynd    bool          `long:"no-rel-syndication" env:"MF2UTIL_NO_REL_SYNDICATION" description:"Ignore the document's rel=syndication links"`
	Timeout      time.Duration `long:"timeout" env:"MF2UTIL_TIMEOUT" default:"10s" description:"HTTP request timeout"`
	UserAgent    string        `long:"user-agent" env:"MF2UTIL_USER_AGENT" default:"mf2util (+https://willnorris.com/go/mf2util)" description:"User agent for HTTP requests"`
	Verbose      bool          `short:"v" long:"verbose" env:"MF2UTIL_VERBOSE" description:"Log debug messages"`

	Args struct {
		Input string `positional-arg-name:"url|file|-" required:"yes"`
	} `positional-args:"yes"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{Level: level}))

	if err := run(context.Background(), &opts, logger, os.Stdin, os.Stdout); err != nil {
		logger.Error("mf2util failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options, logger *slog.Logger, stdin io.Reader, stdout io.Writer) error {
	client := fetch.New(fetch.Config{
		Timeout:   opts.Timeout,
		UserAgent: opts.UserAgent,
		CacheTTL:  time.Minute,
		Logger:    logger,
	}, nil)

	page, err := load(ctx, client, opts, stdin)
	if err != nil {
		return err
	}

	iopts := &mf2util.Options{
		NoRelSyndication: opts.NoRelSynd,
		WantJSON:         opts.RawDates,
		Logger:           logger,
	}
	if opts.FollowAuthor {
		iopts.Fetcher = client
	}

	result, err := modes.Run(opts.Mode, page, modes.Request{Targets: opts.Targets, Options: iopts})
	if err != nil {
		return err
	}
	if result == nil {
		logger.Warn("nothing to interpret", "mode", opts.Mode, "input", opts.Args.Input)
	}
	return modes.Encode(stdout, result, opts.Format)
}

// load reads the input named on the command line.  URLs are fetched, files
// ending in .json are decoded as mf2 JSON, and anything else is parsed as
// HTML.
func load(ctx context.Context, client *fetch.Client, opts *options, stdin io.Reader) (*fetch.Page, error) {
	in := opts.Args.Input
	if strings.HasPrefix(in, "http://") || strings.HasPrefix(in, "https://") {
		return client.FetchPage(ctx, in)
	}

	var r io.Reader = stdin
	if in != "-" {
		f, err := os.Open(in)
		if err != nil {
			return nil, err
		}
		defer f.Close() //nolint:errcheck
		r = f
	}

	if strings.HasSuffix(in, ".json") {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		doc, err := mf2util.ParseJSON(b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in, err)
		}
		return &fetch.Page{URL: opts.SourceURL, Document: doc}, nil
	}

	var base *url.URL
	if opts.SourceURL != "" {
		u, err := url.Parse(opts.SourceURL)
		if err != nil {
			return nil, fmt.Errorf("source url: %w", err)
		}
		base = u
	}
	return fetch.Parse(r, "", base)
}
