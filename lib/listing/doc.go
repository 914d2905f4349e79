// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

// Package listing implements the property search filter model and the
// policy-gated property mutations.
//
// Filtering is entirely server-side: [Filter.Query] builds the
// request's query string, omitting empty fields rather than sending
// wildcards, and the client never re-filters the returned snapshot.
// A fresh call is required to re-query.
//
// Mutations (create, update, delete, image upload) are gated by the
// policy package before any network call, and the draft payload is
// validated against the schema's constraints so an incomplete form
// never produces a doomed request.
package listing
