// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/json"
	"fmt"
)

// Role classifies a principal's capabilities. The server assigns the
// role at registration and reports it in the login response; the
// client treats it as read-only for the life of the session.
type Role string

const (
	// RoleCustomer can search properties, request visits, and cancel
	// its own bookings.
	RoleCustomer Role = "CUSTOMER"

	// RolePropertyOwner can manage its own listings and drive the
	// lifecycle of bookings against them.
	RolePropertyOwner Role = "PROPERTY_OWNER"

	// RoleAdmin can act on any listing or booking.
	RoleAdmin Role = "ADMIN"
)

// ParseRole validates a wire-format role string.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleCustomer, RolePropertyOwner, RoleAdmin:
		return Role(value), nil
	}
	return "", fmt.Errorf("schema: unknown role %q", value)
}

// UnmarshalJSON rejects roles outside the closed enumeration.
func (r *Role) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseRole(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Principal is the authenticated actor making requests. Created from
// a successful login response and held by the session manager; never
// constructed from ambient global state.
type Principal struct {
	// UserID is the server-assigned numeric identity.
	UserID int64 `json:"userId"`

	// Email is the login identity, used for display.
	Email string `json:"userEmail"`

	// Role gates every mutating operation. See the policy package.
	Role Role `json:"userRole"`
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// Owns reports whether the principal is the property owner identified
// by ownerID. Always false for non-owner roles: an admin acts through
// its role, not through ownership.
func (p Principal) Owns(ownerID int64) bool {
	return p.Role == RolePropertyOwner && p.UserID == ownerID
}
