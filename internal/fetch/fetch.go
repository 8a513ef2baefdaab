// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

// Package fetch retrieves web pages and parses the microformats found in
// them.  A Client satisfies mf2util.Fetcher, so it can be used to follow
// author pages during authorship discovery.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/patrickmn/go-cache"
	"golang.org/x/net/html/charset"

	"willnorris.com/go/mf2util"
	"willnorris.com/go/microformats"
)

// DefaultUserAgent is sent with requests if Config.UserAgent is empty.
const DefaultUserAgent = "mf2util (+https://willnorris.com/go/mf2util)"

// maxBodySize is the largest response body that will be parsed.
const maxBodySize = 10 << 20

// Config configures a Client.
type Config struct {
	Timeout   time.Duration
	UserAgent string

	// CacheTTL is how long fetched pages are kept.  Zero disables the
	// cache.
	CacheTTL time.Duration

	Logger *slog.Logger
}

// Page is a fetched and parsed page.
type Page struct {
	// URL is the final URL of the page, after redirects.
	URL string

	// BaseHref is the href of the page's base element, if any.
	BaseHref string

	Document *mf2util.Document
}

// StatusError is returned for responses with a non-2xx status code.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: unexpected status %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// Client fetches pages over HTTP.
type Client struct {
	http      *http.Client
	userAgent string
	logger    *slog.Logger
	cache     *cache.Cache
}

// New returns a Client configured by cfg.  If hc is nil, a new
// http.Client with cfg.Timeout is used.
func New(cfg Config, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	c := &Client{
		http:      hc,
		userAgent: cfg.UserAgent,
		logger:    cfg.Logger,
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if cfg.CacheTTL > 0 {
		c.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return c
}

// Fetch fetches u and returns its parsed microformats.
func (c *Client) Fetch(u string) (*mf2util.Document, error) {
	page, err := c.FetchPage(context.Background(), u)
	if err != nil {
		return nil, err
	}
	return page.Document, nil
}

// FetchPage fetches u and parses it.  Successful results are cached by
// URL if the client has a cache.
func (c *Client) FetchPage(ctx context.Context, u string) (*Page, error) {
	if c.cache != nil {
		if p, ok := c.cache.Get(u); ok {
			c.logger.Debug("fetch cache hit", "url", u)
			return p.(*Page), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", u, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", u, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	c.logger.Debug("fetch",
		"url", u,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: u, Code: resp.StatusCode}
	}

	pageURL := req.URL
	if resp.Request != nil {
		pageURL = resp.Request.URL
	}
	page, err := Parse(io.LimitReader(resp.Body, maxBodySize), resp.Header.Get("Content-Type"), pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", u, err)
	}

	if c.cache != nil {
		c.cache.Set(u, page, cache.DefaultExpiration)
	}
	return page, nil
}

// Parse parses the HTML in r, decoding it to UTF-8 according to
// contentType and any meta charset declaration.  Relative URLs are
// resolved against base, which may be nil.
func Parse(r io.Reader, contentType string, base *url.URL) (*Page, error) {
	utf8, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("decoding body: %w", err)
	}
	body, err := io.ReadAll(utf8)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	page := new(Page)
	if base != nil {
		page.URL = base.String()
	}

	dom, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	if href, ok := dom.Find("base[href]").First().Attr("href"); ok {
		page.BaseHref = strings.TrimSpace(href)
	}

	page.Document = mf2util.FromMicroformats(microformats.ParseNode(dom.Get(0), base))
	return page, nil
}
