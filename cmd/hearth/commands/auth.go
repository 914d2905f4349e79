// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/hearth-estates/hearth/api"
	"github.com/hearth-estates/hearth/cmd/hearth/cli"
	"github.com/hearth-estates/hearth/lib/schema"
	"github.com/hearth-estates/hearth/lib/session"
)

// readPassword prompts on stderr and reads a password from the
// terminal without echo. Falls back to a plain line read when stdin
// is not a terminal (piped input in scripts).
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}
	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return line, nil
}

func loginCommand() *cli.Command {
	var (
		flagSet    = pflag.NewFlagSet("login", pflag.ContinueOnError)
		configPath = configFlag(flagSet)
		email      = flagSet.String("email", "", "account email")
	)
	return &cli.Command{
		Name:    "login",
		Summary: "Authenticate and store a session token",
		Usage:   "hearth login --email <email> [flags]",
		Examples: []cli.Example{
			{Description: "Log in as a customer", Command: "hearth login --email alice@example.com"},
		},
		Flags: func() *pflag.FlagSet { return flagSet },
		Run: func(args []string) error {
			if *email == "" {
				return fmt.Errorf("--email is required")
			}
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}

			ctx, cancel := app.Context()
			defer cancel()
			principal, err := app.Sessions.Login(ctx, session.Credentials{
				Email:    *email,
				Password: password,
			})
			if err != nil {
				return app.remoteErr(err)
			}

			apiSession := app.Sessions.API()
			if err := app.saveSession(apiSession); err != nil {
				return err
			}

			fmt.Printf("Logged in as %s (%s)\n", principal.Email, principal.Role)
			if expiry, ok := apiSession.TokenExpiry(); ok {
				fmt.Printf("Session valid until %s\n", expiry.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
}

func registerCommand() *cli.Command {
	var (
		flagSet    = pflag.NewFlagSet("register", pflag.ContinueOnError)
		configPath = configFlag(flagSet)
		name       = flagSet.String("name", "", "display name")
		email      = flagSet.String("email", "", "account email")
		owner      = flagSet.Bool("owner", false, "register as a property owner instead of a customer")
	)
	return &cli.Command{
		Name:    "register",
		Summary: "Create a new account",
		Usage:   "hearth register --name <name> --email <email> [--owner]",
		Flags:   func() *pflag.FlagSet { return flagSet },
		Run: func(args []string) error {
			if *name == "" || *email == "" {
				return fmt.Errorf("--name and --email are required")
			}
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}

			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}
			confirm, err := readPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}

			role := schema.RoleCustomer
			if *owner {
				role = schema.RolePropertyOwner
			}

			ctx, cancel := app.Context()
			defer cancel()
			if err := app.Client.Register(ctx, api.RegisterRequest{
				Name:     strings.TrimSpace(*name),
				Email:    strings.TrimSpace(*email),
				Password: password,
				Role:     role,
			}); err != nil {
				return err
			}
			fmt.Printf("Registered %s as %s. Run 'hearth login' to start a session.\n", *email, role)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	var (
		flagSet    = pflag.NewFlagSet("logout", pflag.ContinueOnError)
		configPath = configFlag(flagSet)
	)
	return &cli.Command{
		Name:    "logout",
		Summary: "Discard the stored session",
		Flags:   func() *pflag.FlagSet { return flagSet },
		Run: func(args []string) error {
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			app.Sessions.Logout()
			app.clearStoredSession()
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func whoamiCommand() *cli.Command {
	var (
		flagSet    = pflag.NewFlagSet("whoami", pflag.ContinueOnError)
		configPath = configFlag(flagSet)
	)
	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the current session's identity",
		Flags:   func() *pflag.FlagSet { return flagSet },
		Run: func(args []string) error {
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			principal := app.Sessions.Current()
			if principal == nil {
				fmt.Println("Not logged in.")
				return &cli.ExitError{Code: 1}
			}
			fmt.Printf("%s (%s, user %d)\n", principal.Email, principal.Role, principal.UserID)
			if expiry, ok := app.Sessions.API().TokenExpiry(); ok {
				if time.Now().After(expiry) {
					fmt.Println("Session token has expired; run 'hearth login'.")
				} else {
					fmt.Printf("Session valid until %s\n", expiry.Local().Format(time.RFC1123))
				}
			}
			return nil
		},
	}
}
