// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/hearth-estates/hearth/cmd/hearth/cli"
	"github.com/hearth-estates/hearth/lib/version"
)

// configFlag registers the shared --config flag on a command's flag
// set and returns the destination. Every leaf command takes it; an
// empty value falls back to the HEARTH_CONFIG environment variable.
func configFlag(flagSet *pflag.FlagSet) *string {
	return flagSet.String("config", "", "path to the config file (default: $HEARTH_CONFIG)")
}

// Root returns the hearth command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "hearth",
		Summary: "Terminal client for the Hearth real-estate platform",
		Description: "hearth is the terminal client for the Hearth real-estate\n" +
			"platform: search listings, manage your properties, request and\n" +
			"manage visit bookings, and confirm offline payments.",
		Subcommands: []*cli.Command{
			registerCommand(),
			loginCommand(),
			logoutCommand(),
			whoamiCommand(),
			propertyCommand(),
			bookingCommand(),
			paymentCommand(),
			contactCommand(),
			viewCommand(),
			versionCommand(),
		},
	}
}

func versionCommand() *cli.Command {
	var (
		flagSet = pflag.NewFlagSet("version", pflag.ContinueOnError)
		full    = flagSet.Bool("full", false, "include Go and platform details")
	)
	return &cli.Command{
		Name:    "version",
		Summary: "Print the client version",
		Usage:   "hearth version [--full]",
		Flags:   func() *pflag.FlagSet { return flagSet },
		Run: func(args []string) error {
			if *full {
				fmt.Println(version.Full())
			} else {
				fmt.Println(version.Info())
			}
			return nil
		},
	}
}
