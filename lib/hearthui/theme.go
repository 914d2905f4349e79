// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package hearthui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hearth-estates/hearth/lib/schema"
)

// Theme defines the color palette for the Hearth TUI. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Booking status colors.
	StatusPending   lipgloss.Color
	StatusConfirmed lipgloss.Color
	StatusRejected  lipgloss.Color
	StatusCancelled lipgloss.Color
	StatusCompleted lipgloss.Color

	// Payment accent: drawn when payment is RECEIVED.
	PaymentReceived lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	ErrorText        lipgloss.Color
}

// DefaultTheme returns the standard dark-terminal palette.
func DefaultTheme() Theme {
	return Theme{
		NormalText:         lipgloss.Color("252"),
		FaintText:          lipgloss.Color("243"),
		SelectedBackground: lipgloss.Color("237"),
		SelectedForeground: lipgloss.Color("255"),
		StatusPending:      lipgloss.Color("214"),
		StatusConfirmed:    lipgloss.Color("41"),
		StatusRejected:     lipgloss.Color("203"),
		StatusCancelled:    lipgloss.Color("245"),
		StatusCompleted:    lipgloss.Color("75"),
		PaymentReceived:    lipgloss.Color("43"),
		HeaderForeground:   lipgloss.Color("231"),
		BorderColor:        lipgloss.Color("240"),
		HelpText:           lipgloss.Color("243"),
		ErrorText:          lipgloss.Color("203"),
	}
}

// StatusColor maps a booking status to its display color.
func (t Theme) StatusColor(status schema.BookingStatus) lipgloss.Color {
	switch status {
	case schema.BookingPending:
		return t.StatusPending
	case schema.BookingConfirmed:
		return t.StatusConfirmed
	case schema.BookingRejected:
		return t.StatusRejected
	case schema.BookingCancelled:
		return t.StatusCancelled
	case schema.BookingCompleted:
		return t.StatusCompleted
	}
	return t.NormalText
}
