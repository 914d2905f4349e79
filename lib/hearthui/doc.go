// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

// Package hearthui is the bubbletea terminal UI for browsing listings
// and managing visit bookings.
//
// The UI is a thin projection of the core model packages: the action
// keys shown for a booking come from the policy package's allowed
// set, mutations go through the booking lifecycle model (which
// enforces the one-call-per-entity rule), and every server response
// replaces the local row wholesale. There is no background polling —
// data loads on startup, on explicit refresh, and after a mutation.
//
// While a mutation for a booking is in flight its action keys are
// ignored and the row shows a spinner-less "working" marker; a second
// keypress on the same row does nothing rather than queueing a
// duplicate request.
package hearthui
