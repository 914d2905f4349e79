// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/json"
	"fmt"
	"time"
)

// BookingStatus is the lifecycle state of a visit booking.
type BookingStatus string

const (
	// BookingPending is the initial state: the request has been
	// submitted by a customer and awaits the owner's decision.
	BookingPending BookingStatus = "PENDING"

	// BookingConfirmed means the owner or an admin accepted the
	// visit request.
	BookingConfirmed BookingStatus = "CONFIRMED"

	// BookingRejected means the owner or an admin declined the
	// request. Terminal.
	BookingRejected BookingStatus = "REJECTED"

	// BookingCancelled means the customer, owner, or an admin
	// withdrew the booking. Terminal.
	BookingCancelled BookingStatus = "CANCELLED"

	// BookingCompleted means the visit took place. Terminal.
	BookingCompleted BookingStatus = "COMPLETED"
)

// ParseBookingStatus validates a wire-format booking status.
func ParseBookingStatus(value string) (BookingStatus, error) {
	switch BookingStatus(value) {
	case BookingPending, BookingConfirmed, BookingRejected,
		BookingCancelled, BookingCompleted:
		return BookingStatus(value), nil
	}
	return "", fmt.Errorf("schema: unknown booking status %q", value)
}

// UnmarshalJSON rejects statuses outside the closed enumeration.
func (s *BookingStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseBookingStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Terminal reports whether the status accepts no further transitions.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingRejected, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// bookingTransitions is the legal transition table. Statuses absent
// from the map are terminal. Actor eligibility is the policy
// package's concern; this table answers only whether the edge exists.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingRejected, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

// CanTransitionTo reports whether the edge from s to next exists in
// the lifecycle state machine.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentStatus tracks the owner-attested payment for a booking. It
// moves PENDING → RECEIVED exactly once and never reverses, and is
// only meaningful while the booking status is non-terminal.
type PaymentStatus string

const (
	// PaymentPending means no payment has been recorded.
	PaymentPending PaymentStatus = "PENDING"

	// PaymentReceived means the owner attested that payment arrived.
	// There is no gateway integration — this is a trust-based
	// transition recorded manually.
	PaymentReceived PaymentStatus = "RECEIVED"
)

// ParsePaymentStatus validates a wire-format payment status.
func ParsePaymentStatus(value string) (PaymentStatus, error) {
	switch PaymentStatus(value) {
	case PaymentPending, PaymentReceived:
		return PaymentStatus(value), nil
	}
	return "", fmt.Errorf("schema: unknown payment status %q", value)
}

// UnmarshalJSON rejects statuses outside the closed enumeration.
func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParsePaymentStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Booking is a visit request against a property. Created by a
// customer, transitioned by the owner, admin, or (cancel only) the
// owning customer, never deleted. The server owns every field; the
// client replaces its copy wholesale after each mutation.
type Booking struct {
	ID         int64 `json:"id"`
	PropertyID int64 `json:"propertyId"`
	CustomerID int64 `json:"customerId"`
	OwnerID    int64 `json:"ownerId"`

	// VisitDate is the requested calendar date ("2006-01-02").
	VisitDate Date `json:"visitDate"`

	// VisitTime is the requested time of day ("15:04"), within the
	// published visiting-hours window.
	VisitTime TimeOfDay `json:"visitTime"`

	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`

	CustomerNotes   string `json:"customerNotes,omitempty"`
	OwnerAgentNotes string `json:"ownerAgentNotes,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Date is a calendar date without time-of-day or zone, serialized as
// "2006-01-02".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates a time.Time to its calendar date in t's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses "2006-01-02".
func ParseDate(value string) (Date, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return Date{}, fmt.Errorf("schema: invalid date %q: %w", value, err)
	}
	return DateOf(t), nil
}

// String formats the date as "2006-01-02".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool { return d == Date{} }

// MarshalJSON serializes the date as a "2006-01-02" string. The zero
// date has no calendar form and serializes as null, so a value
// round-trips regardless of whether it was ever set.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON parses a "2006-01-02" string. null and "" decode to
// the zero date.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeOfDay is a wall-clock time without a date, serialized as
// "15:04". The server additionally emits seconds ("15:04:05") for
// LocalTime fields; both forms parse.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "15:04" or "15:04:05" (seconds discarded).
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("schema: invalid time of day %q", value)
}

// String formats the time as "15:04".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns the time as minutes since midnight, for window
// comparisons.
func (t TimeOfDay) Minutes() int { return t.Hour*60 + t.Minute }

// MarshalJSON serializes the time as a "15:04" string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON parses a "15:04" or "15:04:05" string. null and ""
// decode to the zero time (midnight).
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = TimeOfDay{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*t = TimeOfDay{}
		return nil
	}
	parsed, err := ParseTimeOfDay(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
