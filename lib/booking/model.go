// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hearth-estates/hearth/api"
	"github.com/hearth-estates/hearth/lib/clock"
	"github.com/hearth-estates/hearth/lib/policy"
	"github.com/hearth-estates/hearth/lib/schema"
)

// Visiting-hours window for property visits: [11:00, 19:00). The
// upper bound is exclusive — 18:59 is the last bookable minute.
const (
	VisitOpenMinutes  = 11 * 60
	VisitCloseMinutes = 19 * 60
)

// Remote is the contract the lifecycle model needs from the backend.
// Implemented by [api.Session]; tests substitute a fake.
type Remote interface {
	// CreateBooking submits a visit request and returns the
	// server-issued booking.
	CreateBooking(ctx context.Context, request api.CreateBookingRequest) (*schema.Booking, error)

	// PatchBookingStatus requests a status transition and returns
	// the server's updated booking.
	PatchBookingStatus(ctx context.Context, bookingID int64, newStatus schema.BookingStatus, notes string) (*schema.Booking, error)

	// ConfirmPaymentManual records an offline payment and returns
	// the server's updated booking.
	ConfirmPaymentManual(ctx context.Context, bookingID int64) (*schema.Booking, error)

	// FetchBookings lists the bookings visible to the session's
	// principal.
	FetchBookings(ctx context.Context) ([]schema.Booking, error)
}

// Model drives booking mutations for one principal's session. It is
// safe for concurrent use, though the intended usage is cooperative:
// one user-triggered action at a time, with the in-flight guard as
// the backstop against double-submission.
type Model struct {
	remote Remote
	clock  clock.Clock
	logger *slog.Logger

	mu                 sync.Mutex
	inflightBookings   map[int64]bool
	inflightProperties map[int64]bool
}

// NewModel creates a lifecycle model. clk may be nil for the real
// clock; logger may be nil for slog.Default().
func NewModel(remote Remote, clk clock.Clock, logger *slog.Logger) *Model {
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Model{
		remote:             remote,
		clock:              clk,
		logger:             logger,
		inflightBookings:   make(map[int64]bool),
		inflightProperties: make(map[int64]bool),
	}
}

// RequestVisit validates and submits a visit request against a
// property. All preconditions are checked locally first — a bad
// listing, date, or time never reaches the network:
//
//   - the listing's status must accept visit requests (AVAILABLE or
//     PENDING).
//   - visitDate must be today or later, in the principal's local
//     calendar.
//   - visitTime must fall in the visiting-hours window [11:00, 19:00).
//
// On success the server-issued booking is returned, with status and
// payment status both PENDING.
func (m *Model) RequestVisit(ctx context.Context, principal schema.Principal, property schema.Property, visitDate schema.Date, visitTime schema.TimeOfDay, notes string) (*schema.Booking, error) {
	if principal.Role != schema.RoleCustomer {
		return nil, fmt.Errorf("booking: only customers can request visits")
	}
	if !property.Status.Bookable() {
		return nil, &ValidationError{
			Field:   "property",
			Message: fmt.Sprintf("listing is %s and not accepting visits", property.Status),
		}
	}
	if visitDate.IsZero() {
		return nil, &ValidationError{Field: "visitDate", Message: "a visit date is required"}
	}
	today := schema.DateOf(m.clock.Now())
	if visitDate.Before(today) {
		return nil, &ValidationError{Field: "visitDate", Message: "visit date must be today or later"}
	}
	if minutes := visitTime.Minutes(); minutes < VisitOpenMinutes || minutes >= VisitCloseMinutes {
		return nil, &ValidationError{
			Field:   "visitTime",
			Message: "visits are available between 11:00 and 18:59",
		}
	}

	if !m.beginProperty(property.ID) {
		return nil, ErrActionInFlight
	}
	defer m.endProperty(property.ID)

	created, err := m.remote.CreateBooking(ctx, api.CreateBookingRequest{
		PropertyID:    property.ID,
		VisitDate:     visitDate,
		VisitTime:     visitTime,
		CustomerNotes: notes,
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("visit requested",
		"booking_id", created.ID,
		"property_id", property.ID,
		"visit_date", visitDate.String(),
	)
	return created, nil
}

// Transition requests a status transition for the booking. The
// authorization policy is consulted first; a denied action fails with
// [*PermissionError] before any remote call. Otherwise the transition
// is requested from the server and the server's booking is returned —
// the caller replaces its copy with it. If the server rejects the
// transition (the booking changed concurrently), the caller's copy is
// left intact and a [*ConflictError] is returned.
//
// ActionMarkPaymentReceived is not a status transition; route it
// through [Model.MarkPaymentReceived].
func (m *Model) Transition(ctx context.Context, principal schema.Principal, current schema.Booking, action schema.BookingAction, notes string) (*schema.Booking, error) {
	target, ok := action.TargetStatus()
	if !ok {
		return nil, fmt.Errorf("booking: %s is not a status transition", action)
	}

	if result := policy.CheckBookingAction(principal, current, action); result.Decision != policy.Allow {
		return nil, &PermissionError{Action: action, Reason: result.Reason}
	}

	if !m.beginBooking(current.ID) {
		return nil, ErrActionInFlight
	}
	defer m.endBooking(current.ID)

	updated, err := m.remote.PatchBookingStatus(ctx, current.ID, target, notes)
	if err != nil {
		if transitionRejected(err) {
			return nil, &ConflictError{BookingID: current.ID, Err: err}
		}
		return nil, err
	}

	m.logger.Info("booking transitioned",
		"booking_id", current.ID,
		"from", current.Status,
		"to", updated.Status,
		"action", action,
	)
	return updated, nil
}

// MarkPaymentReceived records an owner-attested offline payment.
// Idempotent from the caller's perspective: a booking already at
// RECEIVED is returned unchanged with no remote call.
func (m *Model) MarkPaymentReceived(ctx context.Context, principal schema.Principal, current schema.Booking) (*schema.Booking, error) {
	if current.PaymentStatus == schema.PaymentReceived {
		unchanged := current
		return &unchanged, nil
	}

	if result := policy.CheckBookingAction(principal, current, schema.ActionMarkPaymentReceived); result.Decision != policy.Allow {
		return nil, &PermissionError{Action: schema.ActionMarkPaymentReceived, Reason: result.Reason}
	}

	if !m.beginBooking(current.ID) {
		return nil, ErrActionInFlight
	}
	defer m.endBooking(current.ID)

	updated, err := m.remote.ConfirmPaymentManual(ctx, current.ID)
	if err != nil {
		return nil, err
	}

	m.logger.Info("payment marked received", "booking_id", current.ID)
	return updated, nil
}

// Refresh re-fetches the principal's booking list. Used after a
// conflict or permission failure, and on explicit navigation — never
// on a timer.
func (m *Model) Refresh(ctx context.Context) ([]schema.Booking, error) {
	return m.remote.FetchBookings(ctx)
}

// InFlight reports whether a remote call for the booking is
// outstanding. The UI disables the booking's action controls while
// this is true.
func (m *Model) InFlight(bookingID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inflightBookings[bookingID]
}

// transitionRejected classifies a server-side refusal of a transition
// request. The backend answers 409 for detected races and 400 for a
// transition that is no longer legal from the booking's current
// state; both mean the local copy is stale.
func transitionRejected(err error) bool {
	if api.IsConflict(err) {
		return true
	}
	var apiErr *api.Error
	return errors.As(err, &apiErr) && apiErr.Kind() == api.KindBadRequest
}

func (m *Model) beginBooking(id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inflightBookings[id] {
		return false
	}
	m.inflightBookings[id] = true
	return true
}

func (m *Model) endBooking(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inflightBookings, id)
}

func (m *Model) beginProperty(id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inflightProperties[id] {
		return false
	}
	m.inflightProperties[id] = true
	return true
}

func (m *Model) endProperty(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inflightProperties, id)
}
