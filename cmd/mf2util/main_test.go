// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const entryJSON = `{
  "items": [{
    "type": ["h-entry"],
    "properties": {
      "name": ["Hello World"],
      "content": [{"html": "<p>The <a href=\"/about\">body</a></p>", "value": "The body"}],
      "published": ["2015-02-18 09:00"],
      "author": ["Jane Doe"]
    }
  }],
  "rels": {"syndication": ["https://silo.example/1"]}
}`

func TestRun(t *testing.T) {
	file := filepath.Join(t.TempDir(), "entry.json")
	if err := os.WriteFile(file, []byte(entryJSON), 0o600); err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name string
		opts options
		want []string
	}{
		{
			name: "entry json",
			opts: options{Mode: "entry", Format: "json", SourceURL: "https://jane.example/post"},
			want: []string{
				`"name": "Hello World"`,
				`"published": "2015-02-18T09:00:00"`,
				`"published-str": "2015-02-18 09:00"`,
				`"syndication": [`,
				`https://jane.example/about`,
			},
		},
		{
			name: "raw dates yaml",
			opts: options{Mode: "entry", Format: "yaml", RawDates: true, NoRelSynd: true},
			want: []string{
				"published: ",
				"2015-02-18 09:00",
				"author:\n  name: Jane Doe\n",
			},
		},
		{
			name: "posttype",
			opts: options{Mode: "posttype", Format: "json"},
			want: []string{`"type": "article"`, `"response": "mention"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.Args.Input = file
			var out bytes.Buffer
			if err := run(context.Background(), &opts, logger, nil, &out); err != nil {
				t.Fatalf("run() returned error: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("run() output does not contain %q:\n%s", w, out.String())
				}
			}
		})
	}
}

func TestRun_Stdin(t *testing.T) {
	opts := options{Mode: "interpret", Format: "json", SourceURL: "https://example.com/"}
	opts.Args.Input = "-"
	html := `<div class="h-event"><span class="p-name">Meetup</span> <time class="dt-start" datetime="2015-03-01">March 1</time></div>`

	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := run(context.Background(), &opts, logger, strings.NewReader(html), &out); err != nil {
		t.Fatalf("run() returned error: %v", err)
	}
	for _, w := range []string{`"type": "event"`, `"name": "Meetup"`, `"start": "2015-03-01"`} {
		if !strings.Contains(out.String(), w) {
			t.Errorf("run() output does not contain %q:\n%s", w, out.String())
		}
	}
}
