// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/hearth-estates/hearth/api"
	"github.com/hearth-estates/hearth/cmd/hearth/cli"
	"github.com/hearth-estates/hearth/lib/listing"
	"github.com/hearth-estates/hearth/lib/schema"
)

func propertyCommand() *cli.Command {
	return &cli.Command{
		Name:    "property",
		Summary: "Search and manage property listings",
		Subcommands: []*cli.Command{
			propertyListCommand(),
			propertyShowCommand(),
			propertyCreateCommand(),
			propertyUpdateCommand(),
			propertyDeleteCommand(),
			propertyImagesCommand(),
		},
	}
}

func propertyListCommand() *cli.Command {
	var (
		flagSet      = pflag.NewFlagSet("list", pflag.ContinueOnError)
		configPath   = configFlag(flagSet)
		city         = flagSet.String("city", "", "filter by city")
		listingType  = flagSet.String("type", "", "filter by type (SALE or RENT)")
		minPrice     = flagSet.Float64("min-price", 0, "minimum price")
		maxPrice     = flagSet.Float64("max-price", 0, "maximum price")
		minBedrooms  = flagSet.Int("min-bedrooms", 0, "minimum bedrooms")
		minBathrooms = flagSet.Int("min-bathrooms", 0, "minimum bathrooms")
		admin        = flagSet.Bool("admin", false, "list all properties, including unapproved (admin)")
		asJSON       = flagSet.Bool("json", false, "output as JSON")
	)
	return &cli.Command{
		Name:    "list",
		Summary: "Search listings",
		Usage:   "hearth property list [flags]",
		Examples: []cli.Example{
			{Description: "Rentals in Bengaluru under 40000", Command: "hearth property list --city Bengaluru --type RENT --max-price 40000"},
		},
		Flags: func() *pflag.FlagSet { return flagSet },
		Run: func(args []string) error {
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			ctx, cancel := app.Context()
			defer cancel()

			var properties []schema.Property
			if *admin {
				apiSession, err := app.RequireSession()
				if err != nil {
					return err
				}
				properties, err = apiSession.AdminListProperties(ctx)
				if err != nil {
					return err
				}
			} else {
				filter := listing.Filter{
					City:         *city,
					MinPrice:     *minPrice,
					MaxPrice:     *maxPrice,
					MinBedrooms:  *minBedrooms,
					MinBathrooms: *minBathrooms,
				}
				if *listingType != "" {
					parsed, err := schema.ParsePropertyType(strings.ToUpper(*listingType))
					if err != nil {
						return err
					}
					filter.Type = parsed
				}
				properties, err = app.Listings.List(ctx, app.Client, filter)
				if err != nil {
					return app.remoteErr(err)
				}
			}

			if *asJSON {
				return cli.WriteJSON(properties)
			}
			if len(properties) == 0 {
				fmt.Println("No listings match.")
				return nil
			}
			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "ID\tTYPE\tSTATUS\tCITY\tPRICE\tBED\tBATH\tADDRESS")
			for _, p := range properties {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.0f\t%d\t%d\t%s\n",
					p.ID, p.Type, p.Status, p.City, p.Price, p.Bedrooms, p.Bathrooms, p.Address)
			}
			return tw.Flush()
		},
	}
}

func propertyShowCommand() *cli.Command {
	var (
		flagSet    = pflag.NewFlagSet("show", pflag.ContinueOnError)
		configPath = configFlag(flagSet)
		asJSON     = flagSet.Bool("json", false, "output as JSON")
	)
	return &cli.Command{
		Name:    "show",
		Summary: "Show one listing",
		Usage:   "hearth property show <id>",
		Flags:   func() *pflag.FlagSet { return flagSet },
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: hearth property show <id>")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid property id %q", args[0])
			}
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			ctx, cancel := app.Context()
			defer cancel()
			property, err := app.Client.GetProperty(ctx, id)
			if err != nil {
				return app.remoteErr(err)
			}
			if *asJSON {
				return cli.WriteJSON(property)
			}
			fmt.Printf("#%d  %s, %s, %s %s\n", property.ID, property.Address, property.City, property.State, property.PostalCode)
			fmt.Printf("%s for %s — %.0f\n", property.Status, property.Type, property.Price)
			fmt.Printf("%d bed / %d bath", property.Bedrooms, property.Bathrooms)
			if property.AreaSqft > 0 {
				fmt.Printf(" / %.0f sqft", property.AreaSqft)
			}
			fmt.Println()
			if property.Description != "" {
				fmt.Printf("\n%s\n", property.Description)
			}
			if len(property.Amenities) > 0 {
				fmt.Printf("\nAmenities: %s\n", strings.Join(property.Amenities, ", "))
			}
			for _, ref := range property.ImageRefs {
				fmt.Printf("Image: %s\n", ref)
			}
			return nil
		},
	}
}

// draftFlags binds the property form fields onto a flag set.
func draftFlags(flagSet *pflag.FlagSet) *schema.PropertyDraft {
	draft := &schema.PropertyDraft{}
	flagSet.StringVar(&draft.Address, "address", "", "street address")
	flagSet.StringVar(&draft.City, "city", "", "city")
	flagSet.StringVar(&draft.State, "state", "", "state")
	flagSet.StringVar(&draft.PostalCode, "postal-code", "", "postal code")
	flagSet.Float64Var(&draft.Price, "price", 0, "price")
	flagSet.IntVar(&draft.Bedrooms, "bedrooms", 0, "bedroom count")
	flagSet.IntVar(&draft.Bathrooms, "bathrooms", 0, "bathroom count")
	flagSet.Float64Var(&draft.AreaSqft, "area-sqft", 0, "area in square feet")
	flagSet.StringVar(&draft.Description, "description", "", "listing description")
	flagSet.StringSliceVar(&draft.Amenities, "amenity", nil, "amenity (repeatable)")
	return draft
}

func propertyCreateCommand() *cli.Command {
	var (
		flagSet     = pflag.NewFlagSet("create", pflag.ContinueOnError)
		configPath  = configFlag(flagSet)
		listingType = flagSet.String("type", "", "listing type (SALE or RENT)")
		draft       = draftFlags(flagSet)
	)
	return &cli.Command{
		Name:    "create",
		Summary: "Submit a new listing (owner/admin)",
		Usage:   "hearth property create --type SALE --address ... [flags]",
		Description: "Submits a new listing; it awaits admin approval before\n" +
			"appearing in public search results.\n\n" +
			"Recognized values for --amenity:\n  " +
			strings.Join(schema.AvailableAmenities, ", "),
		Flags: func() *pflag.FlagSet { return flagSet },
		Run: func(args []string) error {
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			apiSession, err := app.RequireSession()
			if err != nil {
				return err
			}
			if *listingType != "" {
				parsed, err := schema.ParsePropertyType(strings.ToUpper(*listingType))
				if err != nil {
					return err
				}
				draft.Type = parsed
			}

			ctx, cancel := app.Context()
			defer cancel()
			created, err := app.Listings.Create(ctx, apiSession, apiSession.Principal(), *draft)
			if err != nil {
				return err
			}
			fmt.Printf("Created listing %d (%s). New listings await admin approval.\n", created.ID, created.Status)
			return nil
		},
	}
}

func propertyUpdateCommand() *cli.Command {
	var (
		flagSet     = pflag.NewFlagSet("update", pflag.ContinueOnError)
		configPath  = configFlag(flagSet)
		listingType = flagSet.String("type", "", "listing type (SALE or RENT)")
		draft       = draftFlags(flagSet)
	)
	return &cli.Command{
		Name:    "update",
		Summary: "Update a listing (owner/admin)",
		Usage:   "hearth property update <id> [flags]",
		Flags:   func() *pflag.FlagSet { return flagSet },
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: hearth property update <id> [flags]")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid property id %q", args[0])
			}
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			apiSession, err := app.RequireSession()
			if err != nil {
				return err
			}

			ctx, cancel := app.Context()
			defer cancel()
			current, err := app.Client.GetProperty(ctx, id)
			if err != nil {
				return err
			}
			if *listingType != "" {
				parsed, err := schema.ParsePropertyType(strings.ToUpper(*listingType))
				if err != nil {
					return err
				}
				draft.Type = parsed
			} else {
				draft.Type = current.Type
			}

			updated, err := app.Listings.Update(ctx, apiSession, apiSession.Principal(), *current, *draft)
			if err != nil {
				return err
			}
			fmt.Printf("Updated listing %d (%s).\n", updated.ID, updated.Status)
			return nil
		},
	}
}

func propertyDeleteCommand() *cli.Command {
	var (
		flagSet    = pflag.NewFlagSet("delete", pflag.ContinueOnError)
		configPath = configFlag(flagSet)
	)
	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a listing (owner/admin)",
		Usage:   "hearth property delete <id>",
		Flags:   func() *pflag.FlagSet { return flagSet },
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: hearth property delete <id>")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid property id %q", args[0])
			}
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			apiSession, err := app.RequireSession()
			if err != nil {
				return err
			}

			ctx, cancel := app.Context()
			defer cancel()
			current, err := app.Client.GetProperty(ctx, id)
			if err != nil {
				return err
			}
			if err := app.Listings.Delete(ctx, apiSession, apiSession.Principal(), *current); err != nil {
				return err
			}
			fmt.Printf("Deleted listing %d.\n", id)
			return nil
		},
	}
}

func propertyImagesCommand() *cli.Command {
	var (
		flagSet    = pflag.NewFlagSet("images", pflag.ContinueOnError)
		configPath = configFlag(flagSet)
	)
	return &cli.Command{
		Name:    "images",
		Summary: "Upload listing images (owner)",
		Usage:   "hearth property images <id> <file>...",
		Flags:   func() *pflag.FlagSet { return flagSet },
		Run: func(args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("usage: hearth property images <id> <file>...")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid property id %q", args[0])
			}
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			apiSession, err := app.RequireSession()
			if err != nil {
				return err
			}

			var files []api.ImageUpload
			for _, path := range args[1:] {
				content, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}
				files = append(files, api.ImageUpload{
					Filename:    filepath.Base(path),
					ContentType: mime.TypeByExtension(filepath.Ext(path)),
					Content:     content,
				})
			}

			ctx, cancel := app.Context()
			defer cancel()
			current, err := app.Client.GetProperty(ctx, id)
			if err != nil {
				return err
			}
			if err := app.Listings.AttachImages(ctx, apiSession, apiSession.Principal(), *current, files); err != nil {
				return err
			}
			fmt.Printf("Uploaded %d image(s) to listing %d.\n", len(files), id)
			return nil
		},
	}
}
