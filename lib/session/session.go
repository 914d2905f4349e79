// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

// Package session manages the client's authenticated identity: who is
// logged in, with what role, and under which bearer token.
//
// A [Manager] is an explicit object created by the application and
// passed to the components that need it — there is no package-level
// singleton and no ambient storage. Its lifecycle is exactly the
// session's: populated at login, cleared at logout or when any remote
// call is rejected with a 401. After a forced invalidation the failed
// call is NOT retried; the caller sees the original error and
// [Manager.Current] returns nil from then on.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hearth-estates/hearth/api"
	"github.com/hearth-estates/hearth/lib/schema"
)

// Credentials are the login inputs.
type Credentials struct {
	Email    string
	Password string
}

// Manager holds the current session, if any. Safe for concurrent use;
// the invalidation callback can fire from whatever goroutine made the
// failing call.
type Manager struct {
	client *api.Client
	logger *slog.Logger

	mu      sync.Mutex
	current *api.Session
}

// NewManager creates a Manager with no active session. logger may be
// nil for slog.Default().
func NewManager(client *api.Client, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{client: client, logger: logger}
}

// Login authenticates and installs the resulting session, replacing
// any previous one. Returns the authenticated principal.
func (m *Manager) Login(ctx context.Context, credentials Credentials) (schema.Principal, error) {
	apiSession, err := m.client.Login(ctx, credentials.Email, credentials.Password)
	if err != nil {
		return schema.Principal{}, fmt.Errorf("session: %w", err)
	}
	m.install(apiSession)
	return apiSession.Principal(), nil
}

// Resume installs a session from a previously persisted token and
// principal (CLI restarts). The token is validated by the first
// authenticated call, not here.
func (m *Manager) Resume(principal schema.Principal, token string) {
	m.install(m.client.SessionFromToken(principal, token))
}

func (m *Manager) install(apiSession *api.Session) {
	apiSession.OnAuthFailure(func() { m.invalidate() })
	m.mu.Lock()
	m.current = apiSession
	m.mu.Unlock()
}

// Logout clears the session. The backend issues stateless tokens, so
// there is nothing to revoke remotely; the local identity is simply
// dropped.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil {
		m.logger.Info("logged out", "user_id", m.current.Principal().UserID)
	}
	m.current = nil
}

// Current returns the authenticated principal, or nil when no session
// is active.
func (m *Manager) Current() *schema.Principal {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	principal := m.current.Principal()
	return &principal
}

// API returns the authenticated API session, or nil when no session
// is active. Callers must tolerate the session disappearing between
// this call and their remote call — a 401 on that call invalidates
// the manager and surfaces as an error.
func (m *Manager) API() *api.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// invalidate clears the session in response to a credential rejection
// from the server.
func (m *Manager) invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return
	}
	m.logger.Warn("session invalidated by server",
		"user_id", m.current.Principal().UserID,
	)
	m.current = nil
}
