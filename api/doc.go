// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

// Package api implements the HTTP boundary to the Hearth backend: the
// remote source of truth for properties, bookings, and accounts.
//
// Two entry points exist:
//
//   - [Client] performs unauthenticated operations: registration,
//     login, public property search, and the contact form.
//
//   - [Session] wraps a Client with a bearer token and performs the
//     authenticated operations: booking creation and transitions,
//     owner/admin property management, image upload, and manual
//     payment confirmation.
//
// Every server-side failure is surfaced as a structured [*Error]
// classified by HTTP status code; network failures are returned as
// wrapped transport errors. Nothing in this package retries — a
// failed call is reported to the caller exactly once. A 401 response
// additionally fires the Session's invalidation callback so the
// session manager can clear local identity state (the caller still
// receives the error).
//
// The server is the sole writer of entity state: every mutating
// method returns the server's updated representation, and callers are
// expected to replace their local copy with it wholesale.
package api
