// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

// The mf2utilweb command runs a simple web server that demonstrates the use
// of the mf2util library.  It can interpret the microformats found at a URL
// or in a provided snippet of HTML.
package main

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jessevdk/go-flags"
	console "github.com/phsym/console-slog"

	"willnorris.com/go/mf2util"
	"willnorris.com/go/mf2util/internal/fetch"
	"willnorris.com/go/mf2util/internal/modes"
)

type options struct {
	Addr      string        `long:"addr" env:"MF2UTIL_ADDR" default:":4001" description:"Address and port to listen on"`
	Port      string        `long:"port" env:"PORT" description:"Port to listen on, overrides the port of --addr"`
	Timeout   time.Duration `long:"timeout" env:"MF2UTIL_TIMEOUT" default:"10s" description:"HTTP request timeout for fetched pages"`
	CacheTTL  time.Duration `long:"cache-ttl" env:"MF2UTIL_CACHE_TTL" default:"5m" description:"How long fetched pages are cached"`
	UserAgent string        `long:"user-agent" env:"MF2UTIL_USER_AGENT" default:"mf2utilweb (+https://willnorris.com/go/mf2util)" description:"User agent for HTTP requests"`
	Verbose   bool          `short:"v" long:"verbose" env:"MF2UTIL_VERBOSE" description:"Log debug messages"`
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

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{Level: level}))

	client := fetch.New(fetch.Config{
		Timeout:   opts.Timeout,
		UserAgent: opts.UserAgent,
		CacheTTL:  opts.CacheTTL,
		Logger:    logger,
	}, nil)

	addr := opts.Addr
	if opts.Port != "" {
		addr = ":" + opts.Port
	}

	logger.Info("mf2utilweb listening", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(&server{client: client, logger: logger}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

type server struct {
	client *fetch.Client
	logger *slog.Logger
}

func newRouter(s *server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.index)
	r.Post("/", s.index)
	r.Get("/{mode}", s.interpret)
	r.Post("/{mode}", s.interpret)
	return r
}

// jsonpCallback matches the JSONP callback names that are accepted: a
// JavaScript identifier, optionally dotted.
var jsonpCallback = regexp.MustCompile(`^[A-Za-z_$][\w$.]*$`)

// interpret runs the mode named in the path against the page at the url
// parameter, or against the html parameter with url as its base.
func (s *server) interpret(w http.ResponseWriter, r *http.Request) {
	mode := chi.URLParam(r, "mode")
	callback := r.FormValue("callback")
	if callback != "" && !jsonpCallback.MatchString(callback) {
		http.Error(w, "invalid callback", http.StatusBadRequest)
		return
	}
	page, status, err := s.load(r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}

	opts := &mf2util.Options{
		WantJSON:         true,
		NoRelSyndication: r.FormValue("rel-syndication") == "false",
		Logger:           s.logger,
	}
	if r.FormValue("follow-author") == "true" {
		opts.Fetcher = s.client
	}

	result, err := modes.Run(mode, page, modes.Request{Targets: r.Form["target"], Options: opts})
	switch {
	case errors.Is(err, modes.ErrUnknownMode):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, fmt.Sprintf("error interpreting: %v", err), http.StatusBadGateway)
		return
	}

	var b strings.Builder
	if err := modes.Encode(&b, result, "json"); err != nil {
		http.Error(w, fmt.Sprintf("error marshaling json: %v", err), http.StatusInternalServerError)
		return
	}

	if callback != "" {
		w.Header().Set("Content-Type", "application/javascript")
		fmt.Fprintf(w, "%s(%s)", callback, b.String())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, b.String())
}

// load returns the page named by the request, and the status code to
// report if it could not be loaded.
func (s *server) load(r *http.Request) (*fetch.Page, int, error) {
	u := r.FormValue("url")
	var base *url.URL
	if u != "" {
		var err error
		if base, err = url.Parse(u); err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("error parsing url: %v", err)
		}
	}

	if html := r.FormValue("html"); html != "" {
		page, err := fetch.Parse(strings.NewReader(html), "text/html; charset=utf-8", base)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		return page, http.StatusOK, nil
	}

	if base == nil || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, http.StatusBadRequest, errors.New("an http or https url or html is required")
	}
	page, err := s.client.FetchPage(r.Context(), base.String())
	if err != nil {
		return nil, http.StatusBadGateway, fmt.Errorf("error fetching url content: %v", err)
	}
	return page, http.StatusOK, nil
}

func (s *server) index(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Modes []string
		HTML  string
		URL   string
		Mode  string
	}{
		Modes: modes.Names,
		HTML:  r.FormValue("html"),
		URL:   r.FormValue("url"),
		Mode:  r.FormValue("mode"),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		s.logger.Error("rendering index", "err", err)
	}
}

var tpl = template.Must(template.New("").Parse(`<!doctype html>
<html>
<head>
<style>
  input, textarea, select { font-size: 1rem; }
  input[type=url], textarea { width: calc(100% - 1rem); }
  input[type=url], textarea, pre { border: 1px solid #999; border-radius: 2px; padding: 0.5rem; }
  label, input, select { display: block; }
  input[type=submit] { margin: 0.5em 0; }
</style>
<script>
  function go(form) { form.action = "/" + form.elements.mode.value; }
</script>
</head>
<body>
  <h1>mf2util</h1>
  <h2>Interpret a URL</h2>
  <form method="GET" onsubmit="go(this)">
    <input name="url" type="url" placeholder="https://indieweb.org/" value="{{ .URL }}" />
    <select name="mode">{{ range .Modes }}<option>{{ . }}</option>{{ end }}</select>
    <input type="submit" value="Interpret" />
  </form>

  <h2>Interpret HTML</h2>
  <form method="POST" onsubmit="go(this)">
    <label for="html">HTML</label>
    <textarea id="html" name="html" rows="15">{{ .HTML }}</textarea>
    <label for="url">Base URL</label>
    <input id="url" name="url" type="url" placeholder="https://indieweb.org/" />
    <select name="mode">{{ range .Modes }}<option>{{ . }}</option>{{ end }}</select>
    <input type="submit" value="Interpret"/>
  </form>
<ul>
  <li><a href="http://microformats.org/wiki/microformats2">About microformats</a></li>
  <li><a href="https://indieweb.org/authorship">Authorship algorithm</a></li>
  <li><a href="https://indieweb.org/post-type-discovery">Post type discovery</a></li>
</ul>
</body>
</html>`))
