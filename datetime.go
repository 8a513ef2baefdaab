// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

package mf2util

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)

	datetimeRegex = regexp.MustCompile(`^` +
		`(?P<year>\d{4,})-(?P<month>\d{1,2})-(?P<day>\d{1,2})` +
		`(?:(?:T| )` +
		`(?P<hour>\d{1,2}):(?P<minute>\d{2})(?::(?P<second>\d{2})(?:\.(?P<fraction>\d+))?)?` +
		` ?` +
		`(?:(?P<tzz>Z)|(?P<tzsign>[+-])(?P<tzhour>\d{1,2}):?(?P<tzminute>\d{2}))?` +
		`)?$`)
)

// DateTime is a parsed mf2 date or datetime.
//
// A date has no time of day.  A datetime without HasTZ is naive: its wall
// clock fields are as written, and Time carries them in UTC only as a
// container.  A datetime with HasTZ carries the offset that was written,
// without conversion.
type DateTime struct {
	Time    time.Time
	HasTime bool
	HasTZ   bool
}

// IsDate reports whether d is a date with no time of day.
func (d *DateTime) IsDate() bool {
	return !d.HasTime
}

// Offset returns the UTC offset of d in seconds and whether d has one.
func (d *DateTime) Offset() (int, bool) {
	if !d.HasTZ {
		return 0, false
	}
	_, offset := d.Time.Zone()
	return offset, true
}

// String formats d as an ISO 8601 date, naive datetime, or datetime with
// offset.
func (d *DateTime) String() string {
	switch {
	case !d.HasTime:
		return d.Time.Format("2006-01-02")
	case !d.HasTZ:
		return d.Time.Format("2006-01-02T15:04:05")
	default:
		return d.Time.Format(time.RFC3339)
	}
}

// MarshalJSON encodes d as its String form.
func (d *DateTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// ParseDatetime parses the lenient mf2 date and time format:
//
//	YYYY-MM-DD
//	YYYY-MM-DD[T ]HH:MM[:SS[.fraction]][ ][Z|±HH[:]MM]
//
// Runs of whitespace are first collapsed to a single space, so a date and
// time split across elements and joined with a space still parse.  An empty
// string returns nil with no error.  Input that does not match, or that
// names an impossible date or time, returns an error wrapping
// ErrInvalidDatetime.
func ParseDatetime(s string) (*DateTime, error) {
	if s == "" {
		return nil, nil
	}
	s = whitespaceRun.ReplaceAllString(s, " ")

	m := datetimeRegex.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("%w: unrecognized datetime %q", ErrInvalidDatetime, s)
	}
	group := func(name string) string {
		return m[datetimeRegex.SubexpIndex(name)]
	}

	year, month, day, err := atoi3(group("year"), group("month"), group("day"))
	if err != nil || !validDate(year, month, day) {
		return nil, fmt.Errorf("%w: date out of range %q", ErrInvalidDatetime, s)
	}

	if group("hour") == "" {
		return &DateTime{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}, nil
	}

	second := group("second")
	if second == "" {
		second = "00"
	}
	hour, minute, sec, err := atoi3(group("hour"), group("minute"), second)
	if err != nil || hour > 23 || minute > 59 || sec > 59 {
		return nil, fmt.Errorf("%w: time out of range %q", ErrInvalidDatetime, s)
	}

	d := &DateTime{HasTime: true}
	loc := time.UTC
	switch {
	case group("tzz") != "":
		d.HasTZ = true
	case group("tzsign") != "":
		tzh, tzm, _, err := atoi3(group("tzhour"), group("tzminute"), "0")
		offset := tzh*3600 + tzm*60
		if err != nil || offset >= 24*3600 {
			return nil, fmt.Errorf("%w: offset out of range %q", ErrInvalidDatetime, s)
		}
		if group("tzsign") == "-" {
			offset = -offset
		}
		name := fmt.Sprintf("%s%s:%s", group("tzsign"), group("tzhour"), group("tzminute"))
		loc = time.FixedZone(name, offset)
		d.HasTZ = true
	}
	d.Time = time.Date(year, time.Month(month), day, hour, minute, sec, 0, loc)
	return d, nil
}

func atoi3(a, b, c string) (x, y, z int, err error) {
	if x, err = strconv.Atoi(a); err != nil {
		return
	}
	if y, err = strconv.Atoi(b); err != nil {
		return
	}
	z, err = strconv.Atoi(c)
	return
}

// validDate reports whether year, month and day name a real calendar date
// within the years 1 to 9999.
func validDate(year, month, day int) bool {
	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 {
		return false
	}
	// day zero of the following month is the last day of this one
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return day <= last
}

// FindDatetimes parses the published, updated, start and end properties
// of the first h-entry or h-event in doc.  All values of a property are
// joined with a space before parsing.  Properties that fail to parse are
// left out and their errors returned together.
func FindDatetimes(doc *Document) (map[string]*DateTime, error) {
	result := make(map[string]*DateTime)
	item := FindFirstEntry(doc, "h-entry", "h-event")
	if item == nil {
		return result, nil
	}

	var errs []error
	for _, prop := range []string{"published", "updated", "start", "end"} {
		values := item.Get(prop)
		if len(values) == 0 {
			continue
		}
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = valueText(v)
		}
		d, err := ParseDatetime(strings.Join(parts, " "))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", prop, err))
			continue
		}
		if d != nil {
			result[prop] = d
		}
	}
	return result, errors.Join(errs...)
}
