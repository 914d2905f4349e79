// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"github.com/hearth-estates/hearth/lib/schema"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	// Deny means the action is not permitted.
	Deny Decision = iota

	// Allow means the action is permitted.
	Allow
)

// String returns "allow" or "deny".
func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// DenyReason describes why an authorization check was denied. The
// reason feeds error messages and the TUI's disabled-action hints.
type DenyReason int

const (
	// ReasonTerminalStatus means the booking is in a terminal status
	// and accepts no further transitions.
	ReasonTerminalStatus DenyReason = iota

	// ReasonWrongRole means the principal's role never holds this
	// action.
	ReasonWrongRole

	// ReasonNotOwner means the action requires ownership of the
	// property and the principal is a different owner.
	ReasonNotOwner

	// ReasonNotParticipant means the principal is neither the
	// booking's customer, its property's owner, nor an admin.
	ReasonNotParticipant

	// ReasonWrongStatus means the booking's current status does not
	// admit this action.
	ReasonWrongStatus

	// ReasonPaymentSettled means payment is already recorded as
	// received.
	ReasonPaymentSettled
)

// String returns a human-readable reason.
func (r DenyReason) String() string {
	switch r {
	case ReasonTerminalStatus:
		return "booking is in a terminal status"
	case ReasonWrongRole:
		return "role does not hold this action"
	case ReasonNotOwner:
		return "principal does not own the property"
	case ReasonNotParticipant:
		return "principal is not a party to this booking"
	case ReasonWrongStatus:
		return "booking status does not admit this action"
	case ReasonPaymentSettled:
		return "payment already received"
	default:
		return "unknown"
	}
}

// Result is the outcome of a single-action check, with the deny
// reason for diagnostics.
type Result struct {
	// Decision is Allow or Deny.
	Decision Decision

	// Reason describes why the check was denied. Only meaningful
	// when Decision is Deny.
	Reason DenyReason
}

func allow() Result            { return Result{Decision: Allow} }
func deny(r DenyReason) Result { return Result{Decision: Deny, Reason: r} }

// CheckBookingAction evaluates a single action for a principal
// against a booking, returning an explainable result.
func CheckBookingAction(principal schema.Principal, booking schema.Booking, action schema.BookingAction) Result {
	isAdmin := principal.IsAdmin()
	isOwner := principal.Owns(booking.OwnerID)
	isCustomer := principal.Role == schema.RoleCustomer && principal.UserID == booking.CustomerID

	switch action {
	case schema.ActionConfirm, schema.ActionReject:
		if booking.Status.Terminal() {
			return deny(ReasonTerminalStatus)
		}
		if booking.Status != schema.BookingPending {
			return deny(ReasonWrongStatus)
		}
		if isAdmin || isOwner {
			return allow()
		}
		if principal.Role == schema.RolePropertyOwner {
			return deny(ReasonNotOwner)
		}
		return deny(ReasonWrongRole)

	case schema.ActionCancel:
		if booking.Status.Terminal() {
			return deny(ReasonTerminalStatus)
		}
		if isAdmin || isOwner || isCustomer {
			return allow()
		}
		return deny(ReasonNotParticipant)

	case schema.ActionComplete:
		if booking.Status.Terminal() {
			return deny(ReasonTerminalStatus)
		}
		if booking.Status != schema.BookingConfirmed {
			return deny(ReasonWrongStatus)
		}
		if isAdmin || isOwner {
			return allow()
		}
		if principal.Role == schema.RolePropertyOwner {
			return deny(ReasonNotOwner)
		}
		return deny(ReasonWrongRole)

	case schema.ActionMarkPaymentReceived:
		if booking.Status.Terminal() {
			return deny(ReasonTerminalStatus)
		}
		if booking.PaymentStatus == schema.PaymentReceived {
			return deny(ReasonPaymentSettled)
		}
		if isOwner {
			return allow()
		}
		if principal.Role == schema.RolePropertyOwner {
			return deny(ReasonNotOwner)
		}
		return deny(ReasonWrongRole)
	}

	return deny(ReasonWrongRole)
}

// AllowedBookingActions returns the full set of actions the principal
// holds for the booking. Empty for any terminal-status booking.
func AllowedBookingActions(principal schema.Principal, booking schema.Booking) schema.ActionSet {
	actions := schema.ActionSet{}
	for _, action := range []schema.BookingAction{
		schema.ActionConfirm,
		schema.ActionReject,
		schema.ActionCancel,
		schema.ActionComplete,
		schema.ActionMarkPaymentReceived,
	} {
		if CheckBookingAction(principal, booking, action).Decision == Allow {
			actions[action] = true
		}
	}
	return actions
}

// AllowedPropertyActions returns the property actions the principal
// holds for the listing. CREATE is listing-independent: it appears
// whenever the role can create at all.
func AllowedPropertyActions(principal schema.Principal, property schema.Property) schema.PropertyActionSet {
	actions := schema.PropertyActionSet{}
	if CanCreateProperty(principal) {
		actions[schema.ActionCreateProperty] = true
	}
	if principal.IsAdmin() || principal.Owns(property.OwnerID) {
		actions[schema.ActionEditProperty] = true
		actions[schema.ActionDeleteProperty] = true
	}
	return actions
}

// CanCreateProperty reports whether the principal's role may submit
// new listings.
func CanCreateProperty(principal schema.Principal) bool {
	return principal.Role == schema.RolePropertyOwner || principal.Role == schema.RoleAdmin
}
