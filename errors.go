// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

package mf2util

import "errors"

var (
	// ErrInvalidDatetime is returned when a dt-* value does not follow the
	// mf2 date and time grammar, or names an impossible date or time.
	ErrInvalidDatetime = errors.New("invalid datetime")

	// ErrMissingItems is returned when decoding a document with no items
	// member.
	ErrMissingItems = errors.New("missing items")
)
