// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// PropertyDraft is the client-side form payload for creating or
// updating a listing. The validate tags are enforced by the listing
// package before any network call; the server re-validates.
type PropertyDraft struct {
	Address    string  `json:"address" validate:"required,max=255"`
	City       string  `json:"city" validate:"required,max=100"`
	State      string  `json:"state" validate:"required,max=50"`
	PostalCode string  `json:"postalCode" validate:"required,max=20"`
	Price      float64 `json:"price" validate:"required,gt=0"`
	Bedrooms   int     `json:"bedrooms" validate:"min=0"`
	Bathrooms  int     `json:"bathrooms" validate:"min=0"`
	AreaSqft   float64 `json:"areaSqft,omitempty" validate:"omitempty,gt=0"`

	// Type must be a member of the PropertyType enumeration.
	Type PropertyType `json:"type" validate:"required,oneof=SALE RENT"`

	Description string   `json:"description,omitempty" validate:"max=4000"`
	Amenities   []string `json:"amenities,omitempty"`
}
