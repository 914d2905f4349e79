// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package hearthui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the Hearth TUI.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	// Tab switching.
	TabProperties key.Binding
	TabBookings   key.Binding

	// Booking mutations. Keys act on the selected booking; a key for
	// an action the policy does not allow is ignored.
	Confirm     key.Binding
	Reject      key.Binding
	Cancel      key.Binding
	Complete    key.Binding
	PaymentRecv key.Binding

	Refresh key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		TabProperties: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "properties"),
		),
		TabBookings: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "bookings"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "confirm"),
		),
		Reject: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reject"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "cancel"),
		),
		Complete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "complete"),
		),
		PaymentRecv: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "payment received"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
