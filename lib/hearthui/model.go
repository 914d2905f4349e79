// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package hearthui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hearth-estates/hearth/lib/booking"
	"github.com/hearth-estates/hearth/lib/listing"
	"github.com/hearth-estates/hearth/lib/policy"
	"github.com/hearth-estates/hearth/lib/schema"
)

// Tab identifies which data view is active.
type Tab int

const (
	// TabProperties shows the listing search snapshot.
	TabProperties Tab = iota
	// TabBookings shows the principal's booking view with action
	// keys.
	TabBookings
)

// Config wires the TUI to the core model packages.
type Config struct {
	// Principal is the authenticated identity; it decides which
	// action keys each booking row offers.
	Principal schema.Principal

	// Bookings drives booking mutations and fetches.
	Bookings *booking.Model

	// Listings performs the property search.
	Listings *listing.Service

	// Search is the property read side (the api client or session).
	Search listing.Searcher

	// Filter is the initial property query.
	Filter listing.Filter

	// Theme may be zero for DefaultTheme.
	Theme Theme

	// Keys may be zero for DefaultKeyMap.
	Keys KeyMap
}

// Messages delivered through the bubbletea loop.
type (
	propertiesLoadedMsg struct {
		properties []schema.Property
		err        error
	}
	bookingsLoadedMsg struct {
		bookings []schema.Booking
		err      error
	}
	// actionDoneMsg reports a booking mutation. On success the
	// server's booking replaces the local row.
	actionDoneMsg struct {
		bookingID int64
		updated   *schema.Booking
		err       error
	}
)

// Model is the bubbletea model for the Hearth viewer.
type Model struct {
	config Config
	theme  Theme
	keys   KeyMap

	tab        Tab
	properties []schema.Property
	bookings   []schema.Booking
	cursor     int
	width      int
	height     int

	// pending marks booking IDs with a mutation in flight; their
	// action keys are ignored until the result message arrives.
	pending map[int64]bool

	notice    string
	noticeErr bool
}

// New creates the viewer model.
func New(config Config) *Model {
	theme := config.Theme
	if theme == (Theme{}) {
		theme = DefaultTheme()
	}
	keys := config.Keys
	if keys.Quit.Keys() == nil {
		keys = DefaultKeyMap()
	}
	return &Model{
		config:  config,
		theme:   theme,
		keys:    keys,
		tab:     TabProperties,
		pending: make(map[int64]bool),
	}
}

// Init loads both snapshots.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadProperties(), m.loadBookings())
}

func (m *Model) loadProperties() tea.Cmd {
	return func() tea.Msg {
		properties, err := m.config.Listings.List(context.Background(), m.config.Search, m.config.Filter)
		return propertiesLoadedMsg{properties: properties, err: err}
	}
}

func (m *Model) loadBookings() tea.Cmd {
	return func() tea.Msg {
		bookings, err := m.config.Bookings.Refresh(context.Background())
		return bookingsLoadedMsg{bookings: bookings, err: err}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case propertiesLoadedMsg:
		if msg.err != nil {
			m.setNotice(fmt.Sprintf("loading properties: %v", msg.err), true)
			return m, nil
		}
		m.properties = msg.properties
		m.clampCursor()
		return m, nil

	case bookingsLoadedMsg:
		if msg.err != nil {
			m.setNotice(fmt.Sprintf("loading bookings: %v", msg.err), true)
			return m, nil
		}
		m.bookings = msg.bookings
		m.clampCursor()
		return m, nil

	case actionDoneMsg:
		delete(m.pending, msg.bookingID)
		if msg.err != nil {
			m.setNotice(msg.err.Error(), true)
			// A conflict means the local row is stale; re-fetch so
			// the next action starts from the server's truth.
			if _, stale := msg.err.(*booking.ConflictError); stale {
				return m, m.loadBookings()
			}
			return m, nil
		}
		m.replaceBooking(*msg.updated)
		m.setNotice(fmt.Sprintf("booking %d is now %s / payment %s",
			msg.updated.ID, msg.updated.Status, msg.updated.PaymentStatus), false)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.rowCount()-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.TabProperties):
		m.tab = TabProperties
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.TabBookings):
		m.tab = TabBookings
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.setNotice("refreshing...", false)
		return m, tea.Batch(m.loadProperties(), m.loadBookings())

	case key.Matches(msg, m.keys.Confirm):
		return m, m.transitionSelected(schema.ActionConfirm)
	case key.Matches(msg, m.keys.Reject):
		return m, m.transitionSelected(schema.ActionReject)
	case key.Matches(msg, m.keys.Cancel):
		return m, m.transitionSelected(schema.ActionCancel)
	case key.Matches(msg, m.keys.Complete):
		return m, m.transitionSelected(schema.ActionComplete)
	case key.Matches(msg, m.keys.PaymentRecv):
		return m, m.markPaymentSelected()
	}
	return m, nil
}

// transitionSelected starts a transition for the selected booking.
// Ignored when the bookings tab is not active, when the policy does
// not allow the action, or while another call for the booking is in
// flight.
func (m *Model) transitionSelected(action schema.BookingAction) tea.Cmd {
	selected, ok := m.selectedBooking()
	if !ok || m.pending[selected.ID] {
		return nil
	}
	if !policy.AllowedBookingActions(m.config.Principal, selected).Contains(action) {
		return nil
	}
	m.pending[selected.ID] = true
	current := selected
	return func() tea.Msg {
		updated, err := m.config.Bookings.Transition(context.Background(), m.config.Principal, current, action, "")
		return actionDoneMsg{bookingID: current.ID, updated: updated, err: err}
	}
}

func (m *Model) markPaymentSelected() tea.Cmd {
	selected, ok := m.selectedBooking()
	if !ok || m.pending[selected.ID] {
		return nil
	}
	if !policy.AllowedBookingActions(m.config.Principal, selected).Contains(schema.ActionMarkPaymentReceived) {
		return nil
	}
	m.pending[selected.ID] = true
	current := selected
	return func() tea.Msg {
		updated, err := m.config.Bookings.MarkPaymentReceived(context.Background(), m.config.Principal, current)
		return actionDoneMsg{bookingID: current.ID, updated: updated, err: err}
	}
}

func (m *Model) selectedBooking() (schema.Booking, bool) {
	if m.tab != TabBookings || m.cursor >= len(m.bookings) {
		return schema.Booking{}, false
	}
	return m.bookings[m.cursor], true
}

func (m *Model) replaceBooking(updated schema.Booking) {
	for i := range m.bookings {
		if m.bookings[i].ID == updated.ID {
			m.bookings[i] = updated
			return
		}
	}
}

func (m *Model) rowCount() int {
	if m.tab == TabProperties {
		return len(m.properties)
	}
	return len(m.bookings)
}

func (m *Model) clampCursor() {
	if count := m.rowCount(); m.cursor >= count {
		m.cursor = max(0, count-1)
	}
}

func (m *Model) setNotice(text string, isError bool) {
	m.notice = text
	m.noticeErr = isError
}

// View renders the active tab.
func (m *Model) View() string {
	var b strings.Builder

	header := lipgloss.NewStyle().
		Foreground(m.theme.HeaderForeground).
		Bold(true)
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	tabs := "[1] Properties  [2] Bookings"
	b.WriteString(header.Render(fmt.Sprintf("hearth — %s (%s)", m.config.Principal.Email, m.config.Principal.Role)))
	b.WriteString("\n")
	b.WriteString(faint.Render(tabs))
	b.WriteString("\n\n")

	if m.tab == TabProperties {
		m.renderProperties(&b)
	} else {
		m.renderBookings(&b)
	}

	if m.notice != "" {
		style := faint
		if m.noticeErr {
			style = lipgloss.NewStyle().Foreground(m.theme.ErrorText)
		}
		b.WriteString("\n")
		b.WriteString(style.Render(m.notice))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(m.theme.HelpText).
		Render("↑/↓ move · c confirm · x reject · z cancel · d complete · p payment · r refresh · q quit"))
	return b.String()
}

func (m *Model) renderProperties(b *strings.Builder) {
	if len(m.properties) == 0 {
		b.WriteString("No listings match the current filter.\n")
		return
	}
	for i, p := range m.properties {
		line := fmt.Sprintf("%5d  %-4s %-12s %-18s %10.0f  %db/%db  %s",
			p.ID, p.Type, p.Status, truncate(p.City, 18), p.Price, p.Bedrooms, p.Bathrooms, truncate(p.Address, 40))
		b.WriteString(m.renderRow(line, i == m.cursor))
		b.WriteString("\n")
	}
}

func (m *Model) renderBookings(b *strings.Builder) {
	if len(m.bookings) == 0 {
		b.WriteString("No bookings in your view.\n")
		return
	}
	for i, bk := range m.bookings {
		statusStyle := lipgloss.NewStyle().Foreground(m.theme.StatusColor(bk.Status))
		payment := string(bk.PaymentStatus)
		if bk.PaymentStatus == schema.PaymentReceived {
			payment = lipgloss.NewStyle().Foreground(m.theme.PaymentReceived).Render(payment)
		}
		marker := " "
		if m.pending[bk.ID] {
			marker = "…"
		}
		actions := policy.AllowedBookingActions(m.config.Principal, bk)
		line := fmt.Sprintf("%s %5d  prop %-5d %s %s  %s  %s  [%s]",
			marker, bk.ID, bk.PropertyID, bk.VisitDate, bk.VisitTime,
			statusStyle.Render(fmt.Sprintf("%-9s", bk.Status)), payment, actions)
		b.WriteString(m.renderRow(line, i == m.cursor))
		b.WriteString("\n")
	}
}

func (m *Model) renderRow(line string, selected bool) string {
	if !selected {
		return line
	}
	return lipgloss.NewStyle().
		Background(m.theme.SelectedBackground).
		Foreground(m.theme.SelectedForeground).
		Render(line)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}
