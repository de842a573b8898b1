package seed

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/brojonat/gestate/server/dbgen"
	"github.com/brojonat/gestate/server/dbgen/jsonb"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDataResolves(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, d.Properties)
	require.NotEmpty(t, d.Websites)

	names := func(xs []string) map[string]bool {
		m := map[string]bool{}
		for _, x := range xs {
			m[x] = true
		}
		return m
	}
	var iconNames, amenityNames, buildingSlugs, categorySlugs []string
	for _, i := range d.Icons {
		iconNames = append(iconNames, i.Name)
	}
	for _, a := range d.Amenities {
		amenityNames = append(amenityNames, a.Name)
	}
	for _, b := range d.Buildings {
		buildingSlugs = append(buildingSlugs, b.Slug)
	}
	for _, c := range d.BlogCategories {
		categorySlugs = append(categorySlugs, c.Slug)
	}
	icons, amenities, buildings, categories := names(iconNames), names(amenityNames), names(buildingSlugs), names(categorySlugs)

	for _, a := range d.Amenities {
		if a.Icon != "" {
			assert.True(t, icons[a.Icon], a.Icon)
		}
	}
	for _, p := range d.Properties {
		if p.Building != "" {
			assert.True(t, buildings[p.Building], p.Building)
		}
		for _, a := range p.Amenities {
			assert.True(t, amenities[a], a)
		}
	}
	for _, p := range d.BlogPosts {
		if p.Category != "" {
			assert.True(t, categories[p.Category], p.Category)
		}
	}
	assert.Contains(t, d.Settings, "mls")
	assert.Equal(t, "home", d.Websites[0].Pages[0].Slug)
	assert.Equal(t, "featured_properties", d.Websites[0].Pages[0].Sections[1].Type)
}

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestRun(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	q := dbgen.New(mock)

	d, err := Load([]byte(`
icons:
  - name: pool
    svg: <svg/>
amenities:
  - name: Pool
    icon: pool
settings:
  mls:
    enabled: false
properties:
  - slug: a-house
    title: A House
    listing_type: sale
    status: active
    price: 100000
    address: 1 Main St
    city: Burlington
    state: VT
    amenities: [Pool]
`))
	require.NoError(t, err)

	mock.ExpectQuery("name: UpsertIcon").
		WithArgs("pool", "<svg/>").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "svg"}).AddRow(int64(1), "pool", "<svg/>"))
	mock.ExpectQuery("name: UpsertAmenity").
		WithArgs("Pool", pgtype.Int8{Int64: 1, Valid: true}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "icon_id"}).AddRow(int64(2), "Pool", pgtype.Int8{Int64: 1, Valid: true}))
	mock.ExpectQuery("name: UpsertSetting").
		WithArgs("mls", json.RawMessage(`{"enabled":false}`)).
		WillReturnRows(pgxmock.NewRows([]string{"key", "value", "updated_at"}).AddRow("mls", json.RawMessage(`{"enabled":false}`), testTime))
	propArgs := []interface{}{"a-house", "A House"}
	for len(propArgs) < 22 {
		propArgs = append(propArgs, pgxmock.AnyArg())
	}
	mock.ExpectQuery("name: UpsertPropertyBySlug").
		WithArgs(propArgs...).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "slug", "title", "description", "listing_type", "status", "price", "bedrooms",
			"bathrooms", "area_sqft", "address", "city", "state", "zipcode", "latitude", "longitude",
			"building_id", "mls_id", "listed_by", "listing_office", "features", "images", "featured",
			"created_at", "updated_at",
		}).AddRow(
			int64(5), "a-house", "A House", "", "sale", "active", int64(100000), int32(0),
			float64(0), int32(0), "1 Main St", "Burlington", "VT", "", float64(0), float64(0),
			pgtype.Int8{}, pgtype.Text{}, "", "", jsonb.Features{}, jsonb.Images{}, false,
			testTime, testTime,
		))
	mock.ExpectExec("name: DeletePropertyAmenities").
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("name: AddPropertyAmenity").
		WithArgs(int64(5), int64(2)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	l := slog.New(slog.NewJSONHandler(io.Discard, nil))
	require.NoError(t, Run(context.Background(), l, q, d))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunUnknownReference(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	d := Data{Amenities: []Amenity{{Name: "Pool", Icon: "missing"}}}
	l := slog.New(slog.NewJSONHandler(io.Discard, nil))
	err = Run(context.Background(), l, dbgen.New(mock), d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown icon "missing"`)
}
