// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

// Package policy holds the pure authorization decision functions for
// bookings and properties: (role, ownership relation, resource
// status) → allowed actions.
//
// The server enforces authorization for real; these functions only
// mirror its rules so the client can render the correct action set
// and refuse doomed requests before touching the network. A deny here
// that the server would have allowed indicates a stale local view,
// not a policy disagreement — the caller should refresh, not retry.
//
// Everything in this package is side-effect-free and takes all of its
// inputs as arguments, so the rules are testable without a session or
// a network.
package policy
