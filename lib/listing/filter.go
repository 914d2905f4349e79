// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package listing

import (
	"net/url"
	"strconv"

	"github.com/hearth-estates/hearth/lib/schema"
)

// Filter is a property search query. The zero value of each field
// means "unfiltered" and is omitted from the request entirely — the
// server treats absence, not a sentinel, as the wildcard.
type Filter struct {
	// City matches the listing's city exactly (server-defined
	// collation).
	City string

	// Type restricts to SALE or RENT listings.
	Type schema.PropertyType

	// MinPrice and MaxPrice bound the listing price inclusively.
	MinPrice float64
	MaxPrice float64

	// MinBedrooms and MinBathrooms are lower bounds.
	MinBedrooms  int
	MinBathrooms int

	// Status restricts to a single listing status. Only meaningful
	// on the admin listing view; the public search already excludes
	// unapproved listings server-side.
	Status schema.PropertyStatus
}

// Query renders the filter as URL query values. Empty fields are
// omitted.
func (f Filter) Query() url.Values {
	query := url.Values{}
	if f.City != "" {
		query.Set("city", f.City)
	}
	if f.Type != "" {
		query.Set("type", string(f.Type))
	}
	if f.MinPrice > 0 {
		query.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		query.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.MinBedrooms > 0 {
		query.Set("minBedrooms", strconv.Itoa(f.MinBedrooms))
	}
	if f.MinBathrooms > 0 {
		query.Set("minBathrooms", strconv.Itoa(f.MinBathrooms))
	}
	if f.Status != "" {
		query.Set("status", string(f.Status))
	}
	return query
}
