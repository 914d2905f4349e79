// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hearth-estates/hearth/api"
	"github.com/hearth-estates/hearth/lib/clock"
	"github.com/hearth-estates/hearth/lib/policy"
	"github.com/hearth-estates/hearth/lib/schema"
)

var (
	customer = schema.Principal{UserID: 3, Role: schema.RoleCustomer}
	owner    = schema.Principal{UserID: 5, Role: schema.RolePropertyOwner}
	admin    = schema.Principal{UserID: 9, Role: schema.RoleAdmin}
)

// fakeRemote records calls and answers from canned responses. A
// non-nil gate blocks each mutating call until released, so tests can
// hold a call in flight.
type fakeRemote struct {
	mu       sync.Mutex
	created  []api.CreateBookingRequest
	patches  []schema.BookingStatus
	payments []int64

	booking *schema.Booking
	list    []schema.Booking
	err     error

	gate chan struct{}
}

func (f *fakeRemote) wait() {
	if f.gate != nil {
		<-f.gate
	}
}

func (f *fakeRemote) CreateBooking(ctx context.Context, request api.CreateBookingRequest) (*schema.Booking, error) {
	f.wait()
	f.mu.Lock()
	f.created = append(f.created, request)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

func (f *fakeRemote) PatchBookingStatus(ctx context.Context, bookingID int64, newStatus schema.BookingStatus, notes string) (*schema.Booking, error) {
	f.wait()
	f.mu.Lock()
	f.patches = append(f.patches, newStatus)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

func (f *fakeRemote) ConfirmPaymentManual(ctx context.Context, bookingID int64) (*schema.Booking, error) {
	f.wait()
	f.mu.Lock()
	f.payments = append(f.payments, bookingID)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

func (f *fakeRemote) FetchBookings(ctx context.Context) ([]schema.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeRemote) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created) + len(f.patches) + len(f.payments)
}

// Aug 28 2026, mid-afternoon local time.
var testNow = time.Date(2026, time.August, 28, 15, 0, 0, 0, time.Local)

func newTestModel(remote *fakeRemote) *Model {
	return NewModel(remote, clock.Fake(testNow), nil)
}

func availableProperty() schema.Property {
	return schema.Property{ID: 7, OwnerID: 5, Status: schema.PropertyAvailable}
}

func pendingBooking() schema.Booking {
	return schema.Booking{
		ID:            1,
		PropertyID:    7,
		CustomerID:    3,
		OwnerID:       5,
		Status:        schema.BookingPending,
		PaymentStatus: schema.PaymentPending,
	}
}

func TestRequestVisitTimeWindow(t *testing.T) {
	tomorrow := schema.DateOf(testNow.AddDate(0, 0, 1))
	tests := []struct {
		time string
		ok   bool
	}{
		{"10:59", false},
		{"11:00", true},
		{"14:30", true},
		{"18:59", true},
		{"19:00", false},
		{"23:00", false},
		{"00:00", false},
	}
	for _, test := range tests {
		remote := &fakeRemote{booking: &schema.Booking{ID: 1}}
		model := newTestModel(remote)
		visitTime, _ := schema.ParseTimeOfDay(test.time)
		_, err := model.RequestVisit(context.Background(), customer, availableProperty(), tomorrow, visitTime, "")
		if test.ok {
			if err != nil {
				t.Errorf("RequestVisit at %s: %v", test.time, err)
			}
			continue
		}
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) || validationErr.Field != "visitTime" {
			t.Errorf("RequestVisit at %s: got %v, want visitTime validation error", test.time, err)
		}
		if remote.callCount() != 0 {
			t.Errorf("RequestVisit at %s reached the network", test.time)
		}
	}
}

func TestRequestVisitDate(t *testing.T) {
	noon := schema.TimeOfDay{Hour: 12, Minute: 0}
	today := schema.DateOf(testNow)
	yesterday := schema.DateOf(testNow.AddDate(0, 0, -1))

	remote := &fakeRemote{booking: &schema.Booking{ID: 1}}
	model := newTestModel(remote)

	if _, err := model.RequestVisit(context.Background(), customer, availableProperty(), today, noon, ""); err != nil {
		t.Errorf("today rejected: %v", err)
	}

	var validationErr *ValidationError
	_, err := model.RequestVisit(context.Background(), customer, availableProperty(), yesterday, noon, "")
	if !errors.As(err, &validationErr) || validationErr.Field != "visitDate" {
		t.Errorf("yesterday: got %v, want visitDate validation error", err)
	}

	_, err = model.RequestVisit(context.Background(), customer, availableProperty(), schema.Date{}, noon, "")
	if !errors.As(err, &validationErr) || validationErr.Field != "visitDate" {
		t.Errorf("zero date: got %v, want visitDate validation error", err)
	}
}

func TestRequestVisitRequiresBookableListing(t *testing.T) {
	noon := schema.TimeOfDay{Hour: 12, Minute: 0}
	tomorrow := schema.DateOf(testNow.AddDate(0, 0, 1))

	for _, status := range []schema.PropertyStatus{
		schema.PropertySold, schema.PropertyRented,
		schema.PropertyUnavailable, schema.PropertyPendingApproval,
	} {
		remote := &fakeRemote{booking: &schema.Booking{ID: 1}}
		model := newTestModel(remote)
		property := availableProperty()
		property.Status = status

		var validationErr *ValidationError
		_, err := model.RequestVisit(context.Background(), customer, property, tomorrow, noon, "")
		if !errors.As(err, &validationErr) || validationErr.Field != "property" {
			t.Errorf("%s listing: got %v, want property validation error", status, err)
		}
		if remote.callCount() != 0 {
			t.Errorf("%s listing: rejected request reached the network", status)
		}
	}

	// PENDING still accepts visits: an offer in progress does not
	// close the listing.
	remote := &fakeRemote{booking: &schema.Booking{ID: 1}}
	model := newTestModel(remote)
	property := availableProperty()
	property.Status = schema.PropertyPending
	if _, err := model.RequestVisit(context.Background(), customer, property, tomorrow, noon, ""); err != nil {
		t.Errorf("PENDING listing rejected: %v", err)
	}
}

func TestRequestVisitCustomerOnly(t *testing.T) {
	noon := schema.TimeOfDay{Hour: 12, Minute: 0}
	tomorrow := schema.DateOf(testNow.AddDate(0, 0, 1))
	remote := &fakeRemote{booking: &schema.Booking{ID: 1}}
	model := newTestModel(remote)

	for _, principal := range []schema.Principal{owner, admin} {
		if _, err := model.RequestVisit(context.Background(), principal, availableProperty(), tomorrow, noon, ""); err == nil {
			t.Errorf("%s allowed to request a visit", principal.Role)
		}
	}
	if remote.callCount() != 0 {
		t.Error("denied request reached the network")
	}
}

func TestTransitionHappyPath(t *testing.T) {
	updated := pendingBooking()
	updated.Status = schema.BookingConfirmed
	remote := &fakeRemote{booking: &updated}
	model := newTestModel(remote)

	got, err := model.Transition(context.Background(), owner, pendingBooking(), schema.ActionConfirm, "see you then")
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if got.Status != schema.BookingConfirmed {
		t.Errorf("status = %s, want CONFIRMED", got.Status)
	}
	if len(remote.patches) != 1 || remote.patches[0] != schema.BookingConfirmed {
		t.Errorf("patches = %v", remote.patches)
	}
}

func TestTransitionDeniedByPolicy(t *testing.T) {
	remote := &fakeRemote{}
	model := newTestModel(remote)

	_, err := model.Transition(context.Background(), customer, pendingBooking(), schema.ActionConfirm, "")
	var permErr *PermissionError
	if !errors.As(err, &permErr) {
		t.Fatalf("got %v, want PermissionError", err)
	}
	if permErr.Action != schema.ActionConfirm || permErr.Reason != policy.ReasonWrongRole {
		t.Errorf("permission error = %+v", permErr)
	}
	if remote.callCount() != 0 {
		t.Error("denied transition reached the network")
	}
}

func TestTransitionConflict(t *testing.T) {
	for _, status := range []int{409, 400} {
		remote := &fakeRemote{err: &api.Error{StatusCode: status, Message: "stale"}}
		model := newTestModel(remote)

		_, err := model.Transition(context.Background(), owner, pendingBooking(), schema.ActionReject, "")
		var conflictErr *ConflictError
		if !errors.As(err, &conflictErr) {
			t.Fatalf("status %d: got %v, want ConflictError", status, err)
		}
		if conflictErr.BookingID != 1 {
			t.Errorf("status %d: bookingID = %d", status, conflictErr.BookingID)
		}
		// The server's refusal stays inspectable through Unwrap.
		var apiErr *api.Error
		if !errors.As(err, &apiErr) || apiErr.StatusCode != status {
			t.Errorf("status %d: wrapped error = %v", status, err)
		}
	}
}

func TestTransitionPassesThroughOtherErrors(t *testing.T) {
	remote := &fakeRemote{err: &api.Error{StatusCode: 403, Message: "denied"}}
	model := newTestModel(remote)

	_, err := model.Transition(context.Background(), owner, pendingBooking(), schema.ActionReject, "")
	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) {
		t.Fatal("403 misclassified as conflict")
	}
	if !api.IsAuthorization(err) {
		t.Errorf("got %v, want authorization error", err)
	}
}

func TestTransitionRejectsPaymentAction(t *testing.T) {
	model := newTestModel(&fakeRemote{})
	if _, err := model.Transition(context.Background(), owner, pendingBooking(), schema.ActionMarkPaymentReceived, ""); err == nil {
		t.Error("Transition accepted MARK_PAYMENT_RECEIVED")
	}
}

func TestMarkPaymentReceived(t *testing.T) {
	current := pendingBooking()
	current.Status = schema.BookingConfirmed

	updated := current
	updated.PaymentStatus = schema.PaymentReceived
	remote := &fakeRemote{booking: &updated}
	model := newTestModel(remote)

	got, err := model.MarkPaymentReceived(context.Background(), owner, current)
	if err != nil {
		t.Fatalf("MarkPaymentReceived: %v", err)
	}
	if got.PaymentStatus != schema.PaymentReceived {
		t.Errorf("paymentStatus = %s", got.PaymentStatus)
	}
	if len(remote.payments) != 1 || remote.payments[0] != 1 {
		t.Errorf("payments = %v", remote.payments)
	}
}

func TestMarkPaymentReceivedIdempotent(t *testing.T) {
	settled := pendingBooking()
	settled.Status = schema.BookingConfirmed
	settled.PaymentStatus = schema.PaymentReceived

	remote := &fakeRemote{}
	model := newTestModel(remote)

	got, err := model.MarkPaymentReceived(context.Background(), owner, settled)
	if err != nil {
		t.Fatalf("MarkPaymentReceived on settled booking: %v", err)
	}
	if *got != settled {
		t.Errorf("settled booking changed: %+v", got)
	}
	if remote.callCount() != 0 {
		t.Error("settled booking produced a remote call")
	}
}

func TestMarkPaymentReceivedOwnerOnly(t *testing.T) {
	current := pendingBooking()
	current.Status = schema.BookingConfirmed
	model := newTestModel(&fakeRemote{})

	for _, principal := range []schema.Principal{customer, admin} {
		_, err := model.MarkPaymentReceived(context.Background(), principal, current)
		var permErr *PermissionError
		if !errors.As(err, &permErr) {
			t.Errorf("%s: got %v, want PermissionError", principal.Role, err)
		}
	}
}

func TestInFlightGuard(t *testing.T) {
	updated := pendingBooking()
	updated.Status = schema.BookingConfirmed
	remote := &fakeRemote{booking: &updated, gate: make(chan struct{})}
	model := newTestModel(remote)

	done := make(chan error, 1)
	go func() {
		_, err := model.Transition(context.Background(), owner, pendingBooking(), schema.ActionConfirm, "")
		done <- err
	}()

	// Wait for the first call to claim the guard.
	deadline := time.After(2 * time.Second)
	for !model.InFlight(1) {
		select {
		case <-deadline:
			t.Fatal("first transition never claimed the in-flight guard")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if _, err := model.Transition(context.Background(), owner, pendingBooking(), schema.ActionReject, ""); !errors.Is(err, ErrActionInFlight) {
		t.Errorf("second transition: got %v, want ErrActionInFlight", err)
	}

	close(remote.gate)
	if err := <-done; err != nil {
		t.Fatalf("first transition: %v", err)
	}
	if model.InFlight(1) {
		t.Error("guard not released after completion")
	}
	if len(remote.patches) != 1 {
		t.Errorf("patches = %v, want exactly one", remote.patches)
	}
}

func TestRefresh(t *testing.T) {
	remote := &fakeRemote{list: []schema.Booking{pendingBooking()}}
	model := newTestModel(remote)

	got, err := model.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("Refresh = %+v", got)
	}
}

// Lifecycle walkthroughs: each scenario drives a booking through a
// realistic sequence of actors.
func TestLifecycleScenarios(t *testing.T) {
	background := context.Background()

	t.Run("confirm then complete", func(t *testing.T) {
		current := pendingBooking()

		confirmed := current
		confirmed.Status = schema.BookingConfirmed
		remote := &fakeRemote{booking: &confirmed}
		model := newTestModel(remote)

		got, err := model.Transition(background, owner, current, schema.ActionConfirm, "")
		if err != nil {
			t.Fatalf("confirm: %v", err)
		}
		current = *got

		completed := current
		completed.Status = schema.BookingCompleted
		remote.booking = &completed

		got, err = model.Transition(background, owner, current, schema.ActionComplete, "")
		if err != nil {
			t.Fatalf("complete: %v", err)
		}
		if got.Status != schema.BookingCompleted {
			t.Errorf("status = %s", got.Status)
		}

		// Completed is terminal: nothing further is permitted, for
		// anyone.
		for _, principal := range []schema.Principal{customer, owner, admin} {
			if set := policy.AllowedBookingActions(principal, *got); !set.Empty() {
				t.Errorf("%s holds %s on completed booking", principal.Role, set)
			}
		}
	})

	t.Run("customer cancels own pending booking", func(t *testing.T) {
		current := pendingBooking()
		cancelled := current
		cancelled.Status = schema.BookingCancelled
		remote := &fakeRemote{booking: &cancelled}
		model := newTestModel(remote)

		got, err := model.Transition(background, customer, current, schema.ActionCancel, "plans changed")
		if err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if got.Status != schema.BookingCancelled {
			t.Errorf("status = %s", got.Status)
		}
	})

	t.Run("reject races ahead of confirm", func(t *testing.T) {
		// The admin rejected the booking after our last refresh; the
		// server answers 409 and the local copy must be re-fetched.
		current := pendingBooking()
		remote := &fakeRemote{err: &api.Error{StatusCode: 409, Message: "booking is REJECTED"}}
		model := newTestModel(remote)

		_, err := model.Transition(background, owner, current, schema.ActionConfirm, "")
		var conflictErr *ConflictError
		if !errors.As(err, &conflictErr) {
			t.Fatalf("got %v, want ConflictError", err)
		}

		rejected := current
		rejected.Status = schema.BookingRejected
		remote.err = nil
		remote.list = []schema.Booking{rejected}

		refreshed, err := model.Refresh(background)
		if err != nil {
			t.Fatalf("refresh after conflict: %v", err)
		}
		if refreshed[0].Status != schema.BookingRejected {
			t.Errorf("refreshed status = %s", refreshed[0].Status)
		}
	})
}
