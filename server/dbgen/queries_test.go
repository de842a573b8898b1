package dbgen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brojonat/gestate/server/dbgen/jsonb"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testTime       = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	propertyFields = []string{
		"id", "slug", "title", "description", "listing_type", "status", "price", "bedrooms",
		"bathrooms", "area_sqft", "address", "city", "state", "zipcode", "latitude", "longitude",
		"building_id", "mls_id", "listed_by", "listing_office", "features", "images", "featured",
		"created_at", "updated_at",
	}
)

func TestListProperties(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("name: ListProperties").
		WithArgs("burlington", "rent", "active", int64(1000), int64(3000), int32(1), true, int64(2), int32(10), int32(20),
			true, -74.0, 44.0, -73.0, 45.0).
		WillReturnRows(pgxmock.NewRows(propertyFields).AddRow(
			int64(8), "church-st-studio", "Church St Studio", "", "rent", "active", int64(1650), int32(0),
			float64(1), int32(480), "90 Church St", "Burlington", "VT", "05401", 44.4786, -73.2122,
			pgtype.Int8{Int64: 2, Valid: true}, pgtype.Text{String: "VT-9", Valid: true}, "Jane Doe", "Lake Realty",
			jsonb.Features{"Loft"}, jsonb.Images{{URL: "media/raster/a.jpg"}}, true,
			testTime, testTime,
		))

	ps, err := New(mock).ListProperties(context.Background(), ListPropertiesParams{
		City:         "burlington",
		ListingType:  "rent",
		Status:       "active",
		MinPrice:     1000,
		MaxPrice:     3000,
		MinBedrooms:  1,
		FeaturedOnly: true,
		BuildingID:   2,
		Limit:        10,
		Offset:       20,
		InBounds:     true,
		MinLng:       -74,
		MinLat:       44,
		MaxLng:       -73,
		MaxLat:       45,
	})
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "VT-9", ps[0].MLSID.String)
	assert.Equal(t, int64(2), ps[0].BuildingID.Int64)
	assert.Equal(t, "media/raster/a.jpg", ps[0].Images[0].URL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCitySuggestionsEscapesPattern(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// wildcards typed by the user are matched literally
	mock.ExpectQuery(`name: ListCitySuggestions(.|\n)*ILIKE replace\(replace\(replace\(\$1`).
		WithArgs("50%_off", int32(8)).
		WillReturnRows(pgxmock.NewRows([]string{"city", "state", "listings"}))
	cs, err := New(mock).ListCitySuggestions(context.Background(), "50%_off", 8)
	require.NoError(t, err)
	assert.Empty(t, cs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPropertiesEmpty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("name: ListFavoriteProperties").
		WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows(propertyFields))
	ps, err := New(mock).ListFavoriteProperties(context.Background(), 4)
	require.NoError(t, err)
	assert.NotNil(t, ps)
	assert.Empty(t, ps)

	mock.ExpectQuery("name: ListFavoriteProperties").WithArgs(int64(4)).WillReturnError(errors.New("conn closed"))
	_, err = New(mock).ListFavoriteProperties(context.Background(), 4)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("name: DeleteBuildingAmenities").WithArgs(int64(2)).WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec("name: AddBuildingAmenity").WithArgs(int64(2), int64(5)).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	ctx := context.Background()
	tx, err := mock.Begin(ctx)
	require.NoError(t, err)
	q := New(mock).WithTx(tx)
	require.NoError(t, q.DeleteBuildingAmenities(ctx, 2))
	require.NoError(t, q.AddBuildingAmenity(ctx, 2, 5))
	require.NoError(t, tx.Commit(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}
