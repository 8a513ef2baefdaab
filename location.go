// Copyright (c) The microformats project authors.
// SPDX-License-Identifier: MIT

package mf2util

import (
	"strings"
)

// findLocation returns the location of item.  It is taken from the first
// location property, else the first geo property, else latitude, longitude
// and altitude properties on the item itself.
func findLocation(item *Item) *Location {
	if values := item.Get("location"); len(values) > 0 {
		if loc := parseLocation(values[0], true); loc != nil {
			return loc
		}
	}
	if values := item.Get("geo"); len(values) > 0 {
		if loc := parseLocation(values[0], false); loc != nil {
			return loc
		}
	}
	loc := new(Location)
	setCoordinates(loc, item)
	if *loc == (Location{}) {
		return nil
	}
	return loc
}

// parseLocation parses a location or geo value.  A nested h-card, h-adr or
// h-geo contributes its address and coordinate properties, and a geo: URI
// its coordinates.  Any other string is the location name if nameOK is set.
func parseLocation(v Value, nameOK bool) *Location {
	loc := new(Location)
	switch v := v.(type) {
	case *Item:
		for _, f := range []struct {
			prop string
			dst  *string
		}{
			{"url", &loc.URL},
			{"name", &loc.Name},
			{"street-address", &loc.StreetAddress},
			{"extended-address", &loc.ExtendedAddress},
			{"locality", &loc.Locality},
			{"region", &loc.Region},
			{"country-name", &loc.CountryName},
			{"postal-code", &loc.PostalCode},
			{"label", &loc.Label},
		} {
			*f.dst = plain(v.Get(f.prop))
		}
		setCoordinates(loc, v)
		// an h-adr or h-card may carry its coordinates in a nested h-geo
		if loc.Latitude == "" && loc.Longitude == "" {
			if geo := v.Get("geo"); len(geo) > 0 {
				if g := parseLocation(geo[0], false); g != nil {
					loc.Latitude, loc.Longitude, loc.Altitude = g.Latitude, g.Longitude, g.Altitude
				}
			}
		}
	default:
		s := strings.TrimSpace(valueText(v))
		if s == "" {
			return nil
		}
		if !parseGeoURI(loc, s) {
			if !nameOK {
				return nil
			}
			loc.Name = s
		}
	}
	if *loc == (Location{}) {
		return nil
	}
	return loc
}

func setCoordinates(loc *Location, item *Item) {
	loc.Latitude = plain(item.Get("latitude"))
	loc.Longitude = plain(item.Get("longitude"))
	loc.Altitude = plain(item.Get("altitude"))
}

// parseGeoURI sets the coordinates of loc from a geo: URI as described in
// RFC 5870, such as "geo:37.786971,-122.399677;u=35".  It reports whether s
// was a geo: URI.
func parseGeoURI(loc *Location, s string) bool {
	if len(s) < 4 || !strings.EqualFold(s[:4], "geo:") {
		return false
	}
	coords, _, _ := strings.Cut(s[4:], ";")
	parts := strings.Split(coords, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return false
	}
	loc.Latitude = strings.TrimSpace(parts[0])
	loc.Longitude = strings.TrimSpace(parts[1])
	if len(parts) == 3 {
		loc.Altitude = strings.TrimSpace(parts[2])
	}
	return true
}
