package main

import (
	"context"
	"log/slog"

	"github.com/brojonat/gestate/server"
	"github.com/urfave/cli/v2"
)

func propertyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Required: true},
		&cli.StringFlag{Name: "slug", Usage: "Defaults to the slugified title."},
		&cli.StringFlag{Name: "description"},
		&cli.StringFlag{Name: "listing-type", Value: server.ListingTypeSale, Usage: "sale or rent."},
		&cli.StringFlag{Name: "status", Value: server.ListingStatusActive},
		&cli.Int64Flag{Name: "price", Required: true, Usage: "Whole dollars."},
		&cli.IntFlag{Name: "bedrooms"},
		&cli.Float64Flag{Name: "bathrooms"},
		&cli.IntFlag{Name: "area-sqft"},
		&cli.StringFlag{Name: "address", Required: true},
		&cli.StringFlag{Name: "city", Required: true},
		&cli.StringFlag{Name: "state", Required: true},
		&cli.StringFlag{Name: "zipcode"},
		&cli.Float64Flag{Name: "latitude", Aliases: []string{"lat"}},
		&cli.Float64Flag{Name: "longitude", Aliases: []string{"lng"}},
		&cli.StringSliceFlag{Name: "feature", Usage: "Repeat for each feature."},
		&cli.BoolFlag{Name: "featured"},
	}
}

func propertyFromFlags(ctx *cli.Context) server.PropertyBody {
	return server.PropertyBody{
		Slug:        ctx.String("slug"),
		Title:       ctx.String("title"),
		Description: ctx.String("description"),
		ListingType: ctx.String("listing-type"),
		Status:      ctx.String("status"),
		Price:       ctx.Int64("price"),
		Bedrooms:    int32(ctx.Int("bedrooms")),
		Bathrooms:   ctx.Float64("bathrooms"),
		AreaSqft:    int32(ctx.Int("area-sqft")),
		Address:     ctx.String("address"),
		City:        ctx.String("city"),
		State:       ctx.String("state"),
		Zipcode:     ctx.String("zipcode"),
		Latitude:    ctx.Float64("latitude"),
		Longitude:   ctx.Float64("longitude"),
		Features:    ctx.StringSlice("feature"),
		Featured:    ctx.Bool("featured"),
	}
}

func AddProperty(ctx context.Context, l *slog.Logger, endpoint, authToken string, body server.PropertyBody) error {
	var res server.PropertyResponse
	if err := postJSON(ctx, endpoint, "/property", authToken, body, &res); err != nil {
		return err
	}
	l.Info("created property", "id", res.ID, "slug", res.Slug)
	return nil
}
