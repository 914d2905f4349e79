// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/hearth-estates/hearth/cmd/hearth/cli"
	"github.com/hearth-estates/hearth/lib/booking"
	"github.com/hearth-estates/hearth/lib/policy"
	"github.com/hearth-estates/hearth/lib/schema"
)

func bookingCommand() *cli.Command {
	return &cli.Command{
		Name:    "booking",
		Summary: "Request and manage property visits",
		Subcommands: []*cli.Command{
			bookingListCommand(),
			bookingRequestCommand(),
			bookingActionCommand("confirm", "Confirm a pending visit (owner/admin)", schema.ActionConfirm),
			bookingActionCommand("reject", "Reject a pending visit (owner/admin)", schema.ActionReject),
			bookingActionCommand("cancel", "Cancel a booking", schema.ActionCancel),
			bookingActionCommand("complete", "Mark a confirmed visit completed (owner/admin)", schema.ActionComplete),
		},
	}
}

// findBooking locates a booking by ID in the principal's current
// view. Not finding it means the local view is stale or the booking
// belongs to someone else; either way the answer is a refresh, not a
// blind request.
func findBooking(ctx context.Context, model *booking.Model, id int64) (schema.Booking, error) {
	bookings, err := model.Refresh(ctx)
	if err != nil {
		return schema.Booking{}, err
	}
	for _, b := range bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return schema.Booking{}, fmt.Errorf("booking %d not found in your view; it may have been removed or reassigned", id)
}

func bookingListCommand() *cli.Command {
	var (
		flagSet    = pflag.NewFlagSet("list", pflag.ContinueOnError)
		configPath = configFlag(flagSet)
		asJSON     = flagSet.Bool("json", false, "output as JSON")
	)
	return &cli.Command{
		Name:    "list",
		Summary: "List the bookings visible to you",
		Usage:   "hearth booking list [--json]",
		Flags:   func() *pflag.FlagSet { return flagSet },
		Run: func(args []string) error {
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
			bookings, err := model.Refresh(ctx)
			if err != nil {
				return err
			}

			if *asJSON {
				return cli.WriteJSON(bookings)
			}
			if len(bookings) == 0 {
				fmt.Println("No bookings.")
				return nil
			}
			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "ID\tPROPERTY\tDATE\tTIME\tSTATUS\tPAYMENT\tACTIONS")
			for _, b := range bookings {
				actions := policy.AllowedBookingActions(principal, b)
				fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
					b.ID, b.PropertyID, b.VisitDate, b.VisitTime, b.Status, b.PaymentStatus, actions)
			}
			return tw.Flush()
		},
	}
}

func bookingRequestCommand() *cli.Command {
	var (
		flagSet    = pflag.NewFlagSet("request", pflag.ContinueOnError)
		configPath = configFlag(flagSet)
		date       = flagSet.String("date", "", "visit date (YYYY-MM-DD)")
		timeOfDay  = flagSet.String("time", "", "visit time (HH:MM, between 11:00 and 18:59)")
		notes      = flagSet.String("notes", "", "notes for the owner")
	)
	return &cli.Command{
		Name:    "request",
		Summary: "Request a property visit (customer)",
		Usage:   "hearth booking request <property-id> --date <date> --time <time> [--notes ...]",
		Examples: []cli.Example{
			{Description: "Request a Saturday morning visit", Command: "hearth booking request 42 --date 2026-09-05 --time 11:30"},
		},
		Flags: func() *pflag.FlagSet { return flagSet },
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: hearth booking request <property-id> [flags]")
			}
			propertyID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid property id %q", args[0])
			}
			visitDate, err := schema.ParseDate(*date)
			if err != nil {
				return err
			}
			visitTime, err := schema.ParseTimeOfDay(*timeOfDay)
			if err != nil {
				return err
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
			property, err := app.Client.GetProperty(ctx, propertyID)
			if err != nil {
				return app.remoteErr(err)
			}
			created, err := model.RequestVisit(ctx, principal, *property, visitDate, visitTime, *notes)
			if err != nil {
				return err
			}
			fmt.Printf("Visit requested: booking %d for property %d on %s at %s (%s).\n",
				created.ID, created.PropertyID, created.VisitDate, created.VisitTime, created.Status)
			return nil
		},
	}
}

// bookingActionCommand builds one transition subcommand. All four
// transitions share their shape; only the action differs.
func bookingActionCommand(name, summary string, action schema.BookingAction) *cli.Command {
	var (
		flagSet    = pflag.NewFlagSet(name, pflag.ContinueOnError)
		configPath = configFlag(flagSet)
		notes      = flagSet.String("notes", "", "notes recorded with the transition")
	)
	return &cli.Command{
		Name:    name,
		Summary: summary,
		Usage:   fmt.Sprintf("hearth booking %s <booking-id> [--notes ...]", name),
		Flags:   func() *pflag.FlagSet { return flagSet },
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: hearth booking %s <booking-id> [flags]", name)
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

			updated, err := model.Transition(ctx, principal, current, action, *notes)
			if err != nil {
				return err
			}
			fmt.Printf("Booking %d is now %s.\n", updated.ID, updated.Status)
			return nil
		},
	}
}
