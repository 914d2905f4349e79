// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the domain types shared by every Hearth
// component: principals, properties, bookings, and the closed
// enumerations for roles, statuses, and booking actions.
//
// All enumerations are validated at construction time. A value
// arriving from the wire that is not a member of its enumeration is
// an unmarshal error, never a silent fallthrough — downstream code
// (the authorization policy, the lifecycle model) switches
// exhaustively over these types and relies on that guarantee.
//
// The booking status transition table lives here too, as pure data
// ([BookingStatus.CanTransitionTo]). Who may drive a given transition
// is the policy package's concern; whether the transition exists at
// all is schema's.
//
// This package has no dependency on the api package, the session
// manager, or any I/O.
package schema
