// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/hearth-estates/hearth/cmd/hearth/cli"
	"github.com/hearth-estates/hearth/lib/schema"
)

func paymentCommand() *cli.Command {
	return &cli.Command{
		Name:    "payment",
		Summary: "Record offline payments",
		Subcommands: []*cli.Command{
			paymentConfirmCommand(),
		},
	}
}

func paymentConfirmCommand() *cli.Command {
	var (
		flagSet    = pflag.NewFlagSet("confirm", pflag.ContinueOnError)
		configPath = configFlag(flagSet)
	)
	return &cli.Command{
		Name:    "confirm",
		Summary: "Mark a booking's payment as received (owner)",
		Usage:   "hearth payment confirm <booking-id>",
		Description: "Records that payment for a booking arrived offline. This is\n" +
			"an owner-attested fact, not a verified payment event; there is\n" +
			"no gateway behind it. Confirming an already-confirmed booking\n" +
			"is a no-op.",
		Flags: func() *pflag.FlagSet { return flagSet },
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: hearth payment confirm <booking-id>")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid booking id %q", args[0])
			}
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			model, principal, err := app.BookingModel()
			if err != nil {
				return err
			}

			ctx, cancel := app.Context()
			defer cancel()
			current, err := findBooking(ctx, model, id)
			if err != nil {
				return err
			}

			updated, err := model.MarkPaymentReceived(ctx, principal, current)
			if err != nil {
				return err
			}
			if current.PaymentStatus == schema.PaymentReceived {
				fmt.Printf("Booking %d payment was already %s.\n", updated.ID, updated.PaymentStatus)
			} else {
				fmt.Printf("Booking %d payment is now %s.\n", updated.ID, updated.PaymentStatus)
			}
			return nil
		},
	}
}
