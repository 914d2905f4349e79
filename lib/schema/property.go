// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/json"
	"fmt"
	"time"
)

// PropertyType distinguishes sale listings from rentals.
type PropertyType string

const (
	// TypeSale is a property listed for purchase.
	TypeSale PropertyType = "SALE"

	// TypeRent is a property listed for rental.
	TypeRent PropertyType = "RENT"
)

// ParsePropertyType validates a wire-format property type.
func ParsePropertyType(value string) (PropertyType, error) {
	switch PropertyType(value) {
	case TypeSale, TypeRent:
		return PropertyType(value), nil
	}
	return "", fmt.Errorf("schema: unknown property type %q", value)
}

// UnmarshalJSON rejects types outside the closed enumeration.
func (t *PropertyType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParsePropertyType(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// PropertyStatus is the server-authoritative listing state. The
// client never transitions it directly — it only renders the action
// set appropriate to each status.
type PropertyStatus string

const (
	// PropertyPendingApproval is a newly submitted listing awaiting
	// admin review. Not visible in public search results.
	PropertyPendingApproval PropertyStatus = "PENDING_APPROVAL"

	// PropertyAvailable accepts visit requests.
	PropertyAvailable PropertyStatus = "AVAILABLE"

	// PropertyPending has an offer or booking in progress. Still
	// accepts visit requests.
	PropertyPending PropertyStatus = "PENDING"

	// PropertySold is a completed sale.
	PropertySold PropertyStatus = "SOLD"

	// PropertyRented is a completed rental.
	PropertyRented PropertyStatus = "RENTED"

	// PropertyUnavailable is withdrawn or under maintenance.
	PropertyUnavailable PropertyStatus = "UNAVAILABLE"
)

// ParsePropertyStatus validates a wire-format property status.
func ParsePropertyStatus(value string) (PropertyStatus, error) {
	switch PropertyStatus(value) {
	case PropertyPendingApproval, PropertyAvailable, PropertyPending,
		PropertySold, PropertyRented, PropertyUnavailable:
		return PropertyStatus(value), nil
	}
	return "", fmt.Errorf("schema: unknown property status %q", value)
}

// UnmarshalJSON rejects statuses outside the closed enumeration.
func (s *PropertyStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParsePropertyStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Bookable reports whether a customer may request a visit against a
// property in this status.
func (s PropertyStatus) Bookable() bool {
	return s == PropertyAvailable || s == PropertyPending
}

// Property is a listing. Owned by exactly one principal; mutated only
// by that owner or an admin. The server is the sole writer — after
// any mutation the client replaces its copy with the returned
// representation, never merges.
type Property struct {
	ID         int64          `json:"id"`
	OwnerID    int64          `json:"ownerId"`
	Address    string         `json:"address"`
	City       string         `json:"city"`
	State      string         `json:"state"`
	PostalCode string         `json:"postalCode"`
	Price      float64        `json:"price"`
	Bedrooms   int            `json:"bedrooms"`
	Bathrooms  int            `json:"bathrooms"`
	AreaSqft   float64        `json:"areaSqft,omitempty"`
	Type       PropertyType   `json:"type"`
	Status     PropertyStatus `json:"status"`

	// Description is free-form listing text.
	Description string `json:"description,omitempty"`

	// Amenities is a set of strings drawn (by convention, not
	// enforcement) from [AvailableAmenities].
	Amenities []string `json:"amenities,omitempty"`

	// ImageRefs are server-side image locations in display order.
	ImageRefs []string `json:"imageUrls,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// AvailableAmenities is the catalog offered by the property form.
// The server stores amenities as free strings; this list only drives
// the client's selection UI.
var AvailableAmenities = []string{
	"Parking",
	"Swimming Pool",
	"Gymnasium",
	"Clubhouse",
	"Power Backup",
	"Security",
	"Elevator",
	"Air Conditioning",
	"Furnished",
	"Semi-Furnished",
	"Modular Kitchen",
	"Balcony",
	"Garden",
	"Pet Friendly",
	"Intercom",
	"Rainwater Harvesting",
	"Vaastu Compliant",
	"Near Metro",
	"Gated Community",
	"Children Play Area",
	"Visitor Parking",
}
