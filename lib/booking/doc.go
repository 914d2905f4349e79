// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

// Package booking implements the client-side booking lifecycle: visit
// request validation, policy-gated status transitions, and manual
// payment confirmation.
//
// The server is the sole source of truth. The model never predicts a
// transition optimistically — it asks the server and replaces the
// caller's copy with whatever comes back. Three failure classes have
// distinct types because the caller's recovery differs for each:
//
//   - [*ValidationError]: local precondition failed (bad visit date
//     or time). No network call was made; new input is required.
//   - [*PermissionError]: the policy denied the action locally. The
//     local view is stale relative to role or ownership; refresh, do
//     not retry.
//   - [*ConflictError]: the server rejected the transition because
//     the booking changed concurrently. Re-fetch the booking before
//     offering another action.
//
// The model also enforces the one-outstanding-call-per-entity rule:
// while a transition for booking N is in flight, further actions on N
// fail with [ErrActionInFlight] until the call completes.
package booking
