// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/hearth-estates/hearth/cmd/hearth/cli"
	"github.com/hearth-estates/hearth/lib/hearthui"
	"github.com/hearth-estates/hearth/lib/listing"
	"github.com/hearth-estates/hearth/lib/schema"
)

func viewCommand() *cli.Command {
	var (
		flagSet     = pflag.NewFlagSet("view", pflag.ContinueOnError)
		configPath  = configFlag(flagSet)
		city        = flagSet.String("city", "", "initial city filter")
		listingType = flagSet.String("type", "", "initial type filter (SALE or RENT)")
	)
	return &cli.Command{
		Name:    "view",
		Summary: "Interactive property and booking viewer",
		Usage:   "hearth view [flags]",
		Flags:   func() *pflag.FlagSet { return flagSet },
		Run: func(args []string) error {
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			apiSession, err := app.RequireSession()
			if err != nil {
				return err
			}
			model, principal, err := app.BookingModel()
			if err != nil {
				return err
			}

			filter := listing.Filter{City: *city}
			if *listingType != "" {
				parsed, err := schema.ParsePropertyType(*listingType)
				if err != nil {
					return err
				}
				filter.Type = parsed
			}

			viewer := hearthui.New(hearthui.Config{
				Principal: principal,
				Bookings:  model,
				Listings:  app.Listings,
				Search:    apiSession,
				Filter:    filter,
			})
			if _, err := tea.NewProgram(viewer, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("running viewer: %w", err)
			}
			return nil
		},
	}
}
