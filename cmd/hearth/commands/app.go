// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands defines the hearth CLI command tree.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/hearth-estates/hearth/api"
	"github.com/hearth-estates/hearth/lib/booking"
	"github.com/hearth-estates/hearth/lib/clock"
	"github.com/hearth-estates/hearth/lib/config"
	"github.com/hearth-estates/hearth/lib/listing"
	"github.com/hearth-estates/hearth/lib/schema"
	"github.com/hearth-estates/hearth/lib/session"
)

// requestTimeout is the per-command deadline wrapped around every
// remote call. Commands are one-shot; anything slower than this is a
// stuck backend.
const requestTimeout = 60 * time.Second

// App wires the client components for one CLI invocation.
type App struct {
	Config   *config.Config
	Client   *api.Client
	Sessions *session.Manager
	Listings *listing.Service
	Logger   *slog.Logger
}

// newApp loads configuration and builds the component graph. A stored
// session token, if present and readable, is resumed; its validity is
// decided by the first authenticated call.
func newApp(configPath string) (*App, error) {
	// A local .env may carry HEARTH_CONFIG for development. Absence
	// is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	client, err := api.NewClient(api.ClientConfig{
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.API.Timeout},
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		Client:   client,
		Sessions: session.NewManager(client, logger),
		Listings: listing.NewService(logger),
		Logger:   logger,
	}
	app.resumeStoredSession()
	return app, nil
}

// Context returns the deadline-bounded context for a command's remote
// calls.
func (a *App) Context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// remoteErr makes backend failures actionable in CLI output: a
// transport failure (the request never produced a server response)
// gains a hint naming the configured endpoint. Only for errors coming
// straight from the api layer — lifecycle-model errors carry their own
// types and must not pass through here.
func (a *App) remoteErr(err error) error {
	if api.IsTransport(err) {
		return fmt.Errorf("%w (is the server at %s reachable?)", err, a.Config.API.BaseURL)
	}
	return err
}

// RequireSession returns the active API session or a user-facing
// error directing the user to log in.
func (a *App) RequireSession() (*api.Session, error) {
	apiSession := a.Sessions.API()
	if apiSession == nil {
		return nil, fmt.Errorf("not logged in: run 'hearth login' first")
	}
	return apiSession, nil
}

// BookingModel builds a lifecycle model bound to the active session.
func (a *App) BookingModel() (*booking.Model, schema.Principal, error) {
	apiSession, err := a.RequireSession()
	if err != nil {
		return nil, schema.Principal{}, err
	}
	return booking.NewModel(apiSession, clock.Real(), a.Logger), apiSession.Principal(), nil
}

// storedSession is the on-disk session state between CLI invocations.
type storedSession struct {
	Token     string      `json:"token"`
	UserID    int64       `json:"userId"`
	UserEmail string      `json:"userEmail"`
	UserRole  schema.Role `json:"userRole"`
}

func (a *App) resumeStoredSession() {
	path := a.Config.Session.TokenFile
	if path == "" {
		return
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var stored storedSession
	if err := json.Unmarshal(raw, &stored); err != nil || stored.Token == "" {
		return
	}
	a.Sessions.Resume(schema.Principal{
		UserID: stored.UserID,
		Email:  stored.UserEmail,
		Role:   stored.UserRole,
	}, stored.Token)
}

// saveSession persists the active session for later invocations. The
// file is written with owner-only permissions: it holds the bearer
// token.
func (a *App) saveSession(apiSession *api.Session) error {
	path := a.Config.Session.TokenFile
	if path == "" {
		return nil
	}
	principal := apiSession.Principal()
	raw, err := json.Marshal(storedSession{
		Token:     apiSession.Token(),
		UserID:    principal.UserID,
		UserEmail: principal.Email,
		UserRole:  principal.Role,
	})
	if err != nil {
		return fmt.Errorf("encoding session state: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("writing session state: %w", err)
	}
	return nil
}

// clearStoredSession removes the persisted session state, if any.
func (a *App) clearStoredSession() {
	if path := a.Config.Session.TokenFile; path != "" {
		_ = os.Remove(path)
	}
}
