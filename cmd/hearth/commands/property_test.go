// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/hearth-estates/hearth/api"
	"github.com/hearth-estates/hearth/lib/config"
)

func TestPropertyCreateHelpListsAmenities(t *testing.T) {
	var buf bytes.Buffer
	propertyCreateCommand().PrintHelp(&buf)

	help := buf.String()
	for _, amenity := range []string{"Swimming Pool", "Power Backup"} {
		if !strings.Contains(help, amenity) {
			t.Errorf("create help missing amenity %q", amenity)
		}
	}
}

func TestRemoteErr(t *testing.T) {
	app := &App{Config: &config.Config{
		API: config.APIConfig{BaseURL: "http://localhost:8080/api"},
	}}

	// A transport failure gains the endpoint hint.
	dialErr := errors.New("dial tcp 127.0.0.1:8080: connection refused")
	got := app.remoteErr(dialErr)
	if !strings.Contains(got.Error(), "http://localhost:8080/api") {
		t.Errorf("transport error lacks endpoint hint: %v", got)
	}
	if !errors.Is(got, dialErr) {
		t.Error("original transport error not wrapped")
	}

	// A structured server error passes through untouched.
	serverErr := &api.Error{StatusCode: 403, Message: "forbidden"}
	if got := app.remoteErr(serverErr); got != error(serverErr) {
		t.Errorf("server error altered: %v", got)
	}

	if app.remoteErr(nil) != nil {
		t.Error("nil error altered")
	}
}
