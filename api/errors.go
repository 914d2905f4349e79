// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
)

// Error represents a structured error response from the backend.
// Callers use errors.As to extract it:
//
//	var apiErr *api.Error
//	if errors.As(err, &apiErr) {
//	    if apiErr.Kind() == api.KindNotFound { ... }
//	}
type Error struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"-"`

	// Message is the human-readable description from the server. The
	// backend reports it under either "error" or "message" depending
	// on the endpoint; both are captured here.
	Message string `json:"-"`

	// RequestID is the correlation ID the client attached to the
	// failed request, for matching against server logs.
	RequestID string `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
}

// Kind classifies a server error by what the caller should do about
// it. The taxonomy is fixed: authentication failures clear the
// session, authorization failures mean the local view is stale,
// not-found prompts a list refresh, conflicts prompt a re-fetch of
// the entity. None of them is retried automatically.
type Kind int

const (
	// KindUnknown covers status codes with no specific handling
	// (including 5xx).
	KindUnknown Kind = iota

	// KindBadRequest is a 400: the server rejected the payload.
	KindBadRequest

	// KindAuthentication is a 401: the credential is missing,
	// expired, or invalid. The session must be cleared.
	KindAuthentication

	// KindAuthorization is a 403: the action is denied for this
	// principal. The session stays intact.
	KindAuthorization

	// KindNotFound is a 404: the entity is missing or the local
	// view is stale.
	KindNotFound

	// KindConflict is a 409: the requested transition lost a race
	// with a concurrent change. Re-fetch before acting again.
	KindConflict
)

// Kind returns the error's classification.
func (e *Error) Kind() Kind {
	switch e.StatusCode {
	case 400:
		return KindBadRequest
	case 401:
		return KindAuthentication
	case 403:
		return KindAuthorization
	case 404:
		return KindNotFound
	case 409:
		return KindConflict
	}
	return KindUnknown
}

// IsAuthentication reports whether err is a 401 from the backend.
func IsAuthentication(err error) bool { return isKind(err, KindAuthentication) }

// IsAuthorization reports whether err is a 403 from the backend.
func IsAuthorization(err error) bool { return isKind(err, KindAuthorization) }

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool { return isKind(err, KindNotFound) }

// IsConflict reports whether err is a 409 from the backend.
func IsConflict(err error) bool { return isKind(err, KindConflict) }

// IsTransport reports whether err is a failure that never produced a
// server response: DNS, connect, timeout, or a malformed body. Such
// errors are retryable, but only by explicit user action.
func IsTransport(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *Error
	return !errors.As(err, &apiErr)
}

func isKind(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind() == kind
	}
	return false
}

// errorBody is the wire shape of backend error responses. Different
// endpoints use different keys for the same thing.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (b errorBody) text() string {
	if b.Error != "" {
		return b.Error
	}
	return b.Message
}
