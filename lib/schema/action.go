// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "fmt"

// BookingAction is an operation a principal may request against a
// booking. The policy package decides which actions a given principal
// holds for a given booking; the lifecycle model maps each action to
// its target status or payment endpoint.
type BookingAction string

const (
	// ActionConfirm accepts a pending visit request (owner/admin).
	ActionConfirm BookingAction = "CONFIRM"

	// ActionReject declines a pending visit request (owner/admin).
	ActionReject BookingAction = "REJECT"

	// ActionCancel withdraws a non-terminal booking (customer who
	// made it, owner, or admin).
	ActionCancel BookingAction = "CANCEL"

	// ActionComplete records that a confirmed visit took place
	// (owner/admin).
	ActionComplete BookingAction = "COMPLETE"

	// ActionMarkPaymentReceived records an offline payment (owner
	// only).
	ActionMarkPaymentReceived BookingAction = "MARK_PAYMENT_RECEIVED"
)

// TargetStatus returns the booking status this action transitions to.
// ActionMarkPaymentReceived has no target status — it drives the
// payment axis, not the lifecycle axis — and returns false.
func (a BookingAction) TargetStatus() (BookingStatus, bool) {
	switch a {
	case ActionConfirm:
		return BookingConfirmed, true
	case ActionReject:
		return BookingRejected, true
	case ActionCancel:
		return BookingCancelled, true
	case ActionComplete:
		return BookingCompleted, true
	}
	return "", false
}

// PropertyAction is an operation a principal may request against a
// listing (or, for ActionCreateProperty, against the catalog).
type PropertyAction string

const (
	// ActionEditProperty updates an existing listing.
	ActionEditProperty PropertyAction = "EDIT"

	// ActionDeleteProperty removes a listing.
	ActionDeleteProperty PropertyAction = "DELETE"

	// ActionCreateProperty submits a new listing.
	ActionCreateProperty PropertyAction = "CREATE"
)

// ActionSet is an unordered set of booking actions.
type ActionSet map[BookingAction]bool

// Contains reports whether the set holds action.
func (s ActionSet) Contains(action BookingAction) bool { return s[action] }

// Empty reports whether no action is held.
func (s ActionSet) Empty() bool { return len(s) == 0 }

// String lists the held actions in a stable order, for logs and
// error messages.
func (s ActionSet) String() string {
	ordered := []BookingAction{
		ActionConfirm, ActionReject, ActionCancel,
		ActionComplete, ActionMarkPaymentReceived,
	}
	out := ""
	for _, action := range ordered {
		if !s[action] {
			continue
		}
		if out != "" {
			out += ","
		}
		out += string(action)
	}
	if out == "" {
		return "(none)"
	}
	return out
}

// PropertyActionSet is an unordered set of property actions.
type PropertyActionSet map[PropertyAction]bool

// Contains reports whether the set holds action.
func (s PropertyActionSet) Contains(action PropertyAction) bool { return s[action] }

// ParseBookingAction validates a wire-format booking action.
func ParseBookingAction(value string) (BookingAction, error) {
	switch BookingAction(value) {
	case ActionConfirm, ActionReject, ActionCancel,
		ActionComplete, ActionMarkPaymentReceived:
		return BookingAction(value), nil
	}
	return "", fmt.Errorf("schema: unknown booking action %q", value)
}
