// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package hearthui

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hearth-estates/hearth/lib/booking"
	"github.com/hearth-estates/hearth/lib/schema"
)

func newTestUI(t *testing.T) *Model {
	t.Helper()
	return New(Config{
		Principal: schema.Principal{UserID: 5, Email: "owner@example.com", Role: schema.RolePropertyOwner},
	})
}

func testBookings() []schema.Booking {
	return []schema.Booking{
		{ID: 1, PropertyID: 7, OwnerID: 5, CustomerID: 3, Status: schema.BookingPending, PaymentStatus: schema.PaymentPending},
		{ID: 2, PropertyID: 8, OwnerID: 5, CustomerID: 4, Status: schema.BookingConfirmed, PaymentStatus: schema.PaymentReceived},
	}
}

func TestLoadedMessagesPopulateRows(t *testing.T) {
	ui := newTestUI(t)

	ui.Update(bookingsLoadedMsg{bookings: testBookings()})
	ui.Update(propertiesLoadedMsg{properties: []schema.Property{{ID: 7, City: "Pune", Type: schema.TypeSale, Status: schema.PropertyAvailable}}})

	if len(ui.bookings) != 2 || len(ui.properties) != 1 {
		t.Fatalf("rows = %d bookings, %d properties", len(ui.bookings), len(ui.properties))
	}

	view := ui.View()
	if !strings.Contains(view, "owner@example.com") {
		t.Error("view missing the principal header")
	}
	if !strings.Contains(view, "Pune") {
		t.Error("view missing the property row")
	}
}

func TestActionDoneReplacesRow(t *testing.T) {
	ui := newTestUI(t)
	ui.Update(bookingsLoadedMsg{bookings: testBookings()})
	ui.pending[1] = true

	updated := testBookings()[0]
	updated.Status = schema.BookingConfirmed
	ui.Update(actionDoneMsg{bookingID: 1, updated: &updated})

	if ui.pending[1] {
		t.Error("pending marker not cleared")
	}
	if ui.bookings[0].Status != schema.BookingConfirmed {
		t.Errorf("row status = %s, want CONFIRMED", ui.bookings[0].Status)
	}
	if ui.bookings[1].ID != 2 {
		t.Error("unrelated row disturbed")
	}
}

func TestConflictTriggersRefetch(t *testing.T) {
	ui := newTestUI(t)
	ui.config.Bookings = booking.NewModel(nil, nil, nil)
	ui.Update(bookingsLoadedMsg{bookings: testBookings()})
	ui.pending[1] = true

	conflict := &booking.ConflictError{BookingID: 1, Err: errors.New("stale")}
	_, cmd := ui.Update(actionDoneMsg{bookingID: 1, err: conflict})
	if cmd == nil {
		t.Error("conflict produced no re-fetch command")
	}
	if !ui.noticeErr || ui.notice == "" {
		t.Error("conflict produced no error notice")
	}

	// A plain failure reports but does not re-fetch.
	ui.pending[2] = true
	_, cmd = ui.Update(actionDoneMsg{bookingID: 2, err: errors.New("boom")})
	if cmd != nil {
		t.Error("ordinary failure triggered a re-fetch")
	}
}

func TestKeysIgnoredForDisallowedActions(t *testing.T) {
	ui := newTestUI(t)
	ui.Update(bookingsLoadedMsg{bookings: testBookings()})
	ui.tab = TabBookings
	ui.cursor = 0

	// COMPLETE is not allowed on a PENDING booking; the keypress is a
	// no-op with nothing queued.
	if cmd := ui.transitionSelected(schema.ActionComplete); cmd != nil {
		t.Error("disallowed action produced a command")
	}
	if len(ui.pending) != 0 {
		t.Errorf("pending = %v", ui.pending)
	}

	// While a call is in flight the same row's keys stay dead.
	ui.pending[1] = true
	if cmd := ui.transitionSelected(schema.ActionConfirm); cmd != nil {
		t.Error("in-flight row accepted another action")
	}
}

func TestCursorNavigation(t *testing.T) {
	ui := newTestUI(t)
	ui.Update(bookingsLoadedMsg{bookings: testBookings()})
	ui.tab = TabBookings

	ui.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if ui.cursor != 1 {
		t.Errorf("cursor = %d after down, want 1", ui.cursor)
	}
	// Clamped at the last row.
	ui.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if ui.cursor != 1 {
		t.Errorf("cursor = %d after down at end, want 1", ui.cursor)
	}
	ui.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	if ui.cursor != 0 {
		t.Errorf("cursor = %d after up, want 0", ui.cursor)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"Pune", 10, "Pune"},
		{"Secunderabad", 8, "Secunde…"},
		{"Zürich Bahnhofstraße", 8, "Zürich …"},
		{"日本橋一丁目", 4, "日本橋…"},
		{"日本橋一丁目", 1, "日"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.limit)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.in, tt.limit)
		}
	}
}

func TestStatusColors(t *testing.T) {
	theme := DefaultTheme()
	seen := map[string]schema.BookingStatus{}
	for _, status := range []schema.BookingStatus{
		schema.BookingPending, schema.BookingConfirmed, schema.BookingRejected,
		schema.BookingCancelled, schema.BookingCompleted,
	} {
		color := string(theme.StatusColor(status))
		if prior, dup := seen[color]; dup {
			t.Errorf("%s and %s share color %s", prior, status, color)
		}
		seen[color] = status
	}
}
