// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts time for testability. Production code
// injects [Real]; tests inject [Fake] with deterministic control.
//
// The booking lifecycle model validates "visit date is today or
// later" against the principal's local calendar date — every code
// path that needs the current time takes a Clock instead of calling
// the time package directly, so the boundary cases are testable
// without sleeping or patching.
package clock

import "time"

// Clock provides the current time.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
