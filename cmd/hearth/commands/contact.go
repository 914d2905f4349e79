// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/hearth-estates/hearth/api"
	"github.com/hearth-estates/hearth/cmd/hearth/cli"
)

func contactCommand() *cli.Command {
	var (
		flagSet    = pflag.NewFlagSet("contact", pflag.ContinueOnError)
		configPath = configFlag(flagSet)
		name       = flagSet.String("name", "", "your name")
		email      = flagSet.String("email", "", "reply-to email")
		message    = flagSet.String("message", "", "message body")
	)
	return &cli.Command{
		Name:    "contact",
		Summary: "Send a message to the Hearth team (no login required)",
		Usage:   "hearth contact --name <name> --email <email> --message <text>",
		Flags:   func() *pflag.FlagSet { return flagSet },
		Run: func(args []string) error {
			if *name == "" || *email == "" || *message == "" {
				return fmt.Errorf("--name, --email, and --message are required")
			}
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			ctx, cancel := app.Context()
			defer cancel()
			if err := app.Client.Contact(ctx, api.ContactRequest{
				Name:    *name,
				Email:   *email,
				Message: *message,
			}); err != nil {
				return app.remoteErr(err)
			}
			fmt.Println("Message sent.")
			return nil
		},
	}
}
