// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package booking

import (
	"errors"
	"fmt"

	"github.com/hearth-estates/hearth/lib/policy"
	"github.com/hearth-estates/hearth/lib/schema"
)

// ErrActionInFlight means another remote call for the same entity has
// not completed yet. The triggering control should already have been
// disabled; hitting this error means the UI let a duplicate through.
var ErrActionInFlight = errors.New("booking: an action for this entity is already in flight")

// ValidationError is a local precondition failure. No remote call was
// made; the request cannot succeed without new input.
type ValidationError struct {
	// Field names the offending input ("visitDate", "visitTime").
	Field string

	// Message explains the constraint in user-facing terms.
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("booking: invalid %s: %s", e.Field, e.Message)
}

// PermissionError means the authorization policy denied the action
// before any remote call. It usually indicates the local view is
// stale — the booking advanced, or the session's role changed.
type PermissionError struct {
	Action schema.BookingAction
	Reason policy.DenyReason
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("booking: %s not permitted: %s", e.Action, e.Reason)
}

// ConflictError means the server rejected a transition that the local
// policy allowed — the booking changed concurrently. The caller's
// prior copy is left intact and must be re-fetched before another
// attempt.
type ConflictError struct {
	BookingID int64
	Err       error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("booking: transition for booking %d rejected by server: %v", e.BookingID, e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }
