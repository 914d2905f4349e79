// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hearth-estates/hearth/api"
	"github.com/hearth-estates/hearth/lib/schema"
)

func newTestManager(t *testing.T, handler http.Handler) *Manager {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := api.NewClient(api.ClientConfig{BaseURL: server.URL + "/api"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return NewManager(client, nil)
}

func authHandler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.AuthResponse{
			Token:     "tok-abc",
			UserID:    3,
			UserEmail: "jo@example.com",
			UserRole:  schema.RoleCustomer,
		})
	})
	return mux
}

func TestLoginInstallsSession(t *testing.T) {
	manager := newTestManager(t, authHandler(t))

	if manager.Current() != nil {
		t.Fatal("fresh manager has a session")
	}

	principal, err := manager.Login(context.Background(), Credentials{Email: "jo@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if principal.UserID != 3 || principal.Role != schema.RoleCustomer {
		t.Errorf("principal = %+v", principal)
	}

	current := manager.Current()
	if current == nil || current.UserID != 3 {
		t.Errorf("Current() = %+v", current)
	}
	if manager.API() == nil {
		t.Error("API() returned nil after login")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	manager := newTestManager(t, authHandler(t))
	if _, err := manager.Login(context.Background(), Credentials{Email: "jo@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	manager.Logout()
	if manager.Current() != nil {
		t.Error("session survived logout")
	}
	if manager.API() != nil {
		t.Error("API() returned a session after logout")
	}
}

func TestServerRejectionInvalidatesSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.AuthResponse{
			Token: "tok-abc", UserID: 3, UserEmail: "jo@example.com", UserRole: schema.RoleCustomer,
		})
	})
	mux.HandleFunc("GET /api/bookings/my/customer", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(401)
		json.NewEncoder(w).Encode(map[string]string{"error": "token expired"})
	})
	manager := newTestManager(t, mux)

	if _, err := manager.Login(context.Background(), Credentials{Email: "jo@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// The failing call surfaces its own error; the session is cleared
	// as a side effect and the call is not retried.
	_, err := manager.API().FetchBookings(context.Background())
	if !api.IsAuthentication(err) {
		t.Fatalf("got %v, want authentication error", err)
	}
	if manager.Current() != nil {
		t.Error("session survived a 401")
	}
}

func TestAuthorizationFailureKeepsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.AuthResponse{
			Token: "tok-abc", UserID: 3, UserEmail: "jo@example.com", UserRole: schema.RoleCustomer,
		})
	})
	mux.HandleFunc("GET /api/bookings/my/customer", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(403)
		json.NewEncoder(w).Encode(map[string]string{"error": "not yours"})
	})
	manager := newTestManager(t, mux)

	if _, err := manager.Login(context.Background(), Credentials{Email: "jo@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, err := manager.API().FetchBookings(context.Background())
	if !api.IsAuthorization(err) {
		t.Fatalf("got %v, want authorization error", err)
	}
	if manager.Current() == nil {
		t.Error("session cleared by a 403")
	}
}

func TestResume(t *testing.T) {
	manager := newTestManager(t, http.NotFoundHandler())
	manager.Resume(schema.Principal{UserID: 3, Email: "jo@example.com", Role: schema.RoleCustomer}, "tok-abc")

	current := manager.Current()
	if current == nil || current.Email != "jo@example.com" {
		t.Errorf("Current() = %+v", current)
	}
}
