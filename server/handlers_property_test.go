package server

import (
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestHandlePropertyGetByID(t *testing.T) {
	mock, q := newMock(t)
	mock.ExpectQuery("name: GetProperty :one").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(propertyCols).AddRow(propertyValues(7, "lakeview-loft")...))
	mock.ExpectQuery("name: ListPropertyAmenities").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(amenityCols).AddRow(int64(1), "Pool", pgtype.Int8{}))

	w := serve(handlePropertyGet(testLogger(), q), jsonRequest(t, http.MethodGet, "/property?id=7", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		ID       int64  `json:"id"`
		Slug     string `json:"slug"`
		Location struct {
			Type        string    `json:"type"`
			Coordinates []float64 `json:"coordinates"`
		} `json:"location"`
		Amenities []struct {
			Name string `json:"name"`
		} `json:"amenities"`
	}
	decodeResponse(t, w, &res)
	assert.Equal(t, int64(7), res.ID)
	assert.Equal(t, "lakeview-loft", res.Slug)
	assert.Equal(t, "Point", res.Location.Type)
	assert.Equal(t, []float64{-73.21, 44.47}, res.Location.Coordinates)
	require.Len(t, res.Amenities, 1)
	assert.Equal(t, "Pool", res.Amenities[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePropertyGetNotFound(t *testing.T) {
	mock, q := newMock(t)
	mock.ExpectQuery("name: GetPropertyBySlug").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	w := serve(handlePropertyGet(testLogger(), q), jsonRequest(t, http.MethodGet, "/property?slug=missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePropertyGetBadFilters(t *testing.T) {
	_, q := newMock(t)
	h := handlePropertyGet(testLogger(), q)
	for _, target := range []string{
		"/property?id=abc",
		"/property?listing_type=lease",
		"/property?status=gone",
		"/property?min_price=-5",
		"/property?bedrooms=two",
		"/property?bbox=1,2,3",
		"/property?bbox=10,10,0,0",
		"/property?limit=0",
	} {
		w := serve(h, jsonRequest(t, http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestHandlePropertyList(t *testing.T) {
	mock, q := newMock(t)
	mock.ExpectQuery("name: ListProperties").
		WithArgs("burlington", ListingTypeSale, "", int64(100000), int64(0), int32(2), false, int64(0),
			int32(defaultListLimit), int32(0), false, 0.0, 0.0, 0.0, 0.0).
		WillReturnRows(pgxmock.NewRows(propertyCols).AddRow(propertyValues(1, "lakeview-loft")...))

	target := "/property?city=burlington&listing_type=sale&min_price=$100,000&bedrooms=2"
	w := serve(handlePropertyGet(testLogger(), q), jsonRequest(t, http.MethodGet, target, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res []struct {
		Slug string `json:"slug"`
	}
	decodeResponse(t, w, &res)
	require.Len(t, res, 1)
	assert.Equal(t, "lakeview-loft", res[0].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// the box is part of the query so limit and offset page through matches only
func TestHandlePropertyListBBoxPaging(t *testing.T) {
	mock, q := newMock(t)
	mock.ExpectQuery("name: ListProperties").
		WithArgs("", "", "", int64(0), int64(0), int32(0), false, int64(0),
			int32(1), int32(0), true, -74.0, 44.0, -73.0, 45.0).
		WillReturnRows(pgxmock.NewRows(propertyCols).AddRow(propertyValues(2, "inside")...))

	w := serve(handlePropertyGet(testLogger(), q), jsonRequest(t, http.MethodGet, "/property?limit=1&bbox=-74,44,-73,45", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res []struct {
		Slug string `json:"slug"`
	}
	decodeResponse(t, w, &res)
	require.Len(t, res, 1)
	assert.Equal(t, "inside", res[0].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePropertyPostValidation(t *testing.T) {
	_, q := newMock(t)
	body := map[string]any{"title": "", "listing_type": "lease", "price": -10}
	w := serve(handlePropertyPost(testLogger(), q), jsonRequest(t, http.MethodPost, "/property", body))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var res validationResponse
	decodeResponse(t, w, &res)
	assert.Equal(t, "validation failed", res.Error)
	assert.Contains(t, res.Fields, "title")
	assert.Contains(t, res.Fields, "listing_type")
	assert.Contains(t, res.Fields, "price")
}

func TestHandlePropertyPostConflict(t *testing.T) {
	mock, q := newMock(t)
	mock.ExpectQuery("name: CreateProperty").
		WithArgs(anyArgs(22)...).
		WillReturnError(&pgconn.PgError{Code: pgErrorUniqueViolation})

	w := serve(handlePropertyPost(testLogger(), q), jsonRequest(t, http.MethodPost, "/property", validPropertyBody()))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePropertyUpsertMLS(t *testing.T) {
	mock, q := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("name: UpsertPropertyByMLSID").
		WithArgs(anyArgs(22)...).
		WillReturnRows(pgxmock.NewRows(propertyCols).AddRow(propertyValues(11, "lakeview-loft")...))
	mock.ExpectCommit()

	good := validPropertyBody()
	mlsID := "MLS-1"
	good.MLSID = &mlsID
	missingID := validPropertyBody()
	body := UpsertMLSBody{Properties: []PropertyBody{good, missingID}}

	w := serve(handlePropertyUpsertMLS(testLogger(), mock, q), jsonRequest(t, http.MethodPost, "/property/upsert-mls", body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res UpsertMLSResponse
	decodeResponse(t, w, &res)
	assert.Equal(t, 1, res.Upserted)
	require.Contains(t, res.Rejected, "1")
	assert.Contains(t, res.Rejected["1"], "mls_id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePropertyAmenitiesPut(t *testing.T) {
	mock, q := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("name: GetProperty :one").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(propertyCols).AddRow(propertyValues(7, "lakeview-loft")...))
	mock.ExpectExec("name: DeletePropertyAmenities").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec("name: AddPropertyAmenity").
		WithArgs(int64(7), int64(1)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("name: AddPropertyAmenity").
		WithArgs(int64(7), int64(2)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("name: ListPropertyAmenities").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(amenityCols).
			AddRow(int64(1), "Pool", pgtype.Int8{}).
			AddRow(int64(2), "Gym", pgtype.Int8{}))
	mock.ExpectCommit()

	body := AmenitySetBody{AmenityIDs: []int64{1, 2, 1}}
	w := serve(handlePropertyAmenitiesPut(testLogger(), mock, q), jsonRequest(t, http.MethodPut, "/property/amenities?id=7", body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePropertyAmenitiesPutMissingProperty(t *testing.T) {
	mock, q := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("name: GetProperty :one").
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	body := AmenitySetBody{AmenityIDs: []int64{1}}
	w := serve(handlePropertyAmenitiesPut(testLogger(), mock, q), jsonRequest(t, http.MethodPut, "/property/amenities?id=9", body))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseBBox(t *testing.T) {
	b, err := parseBBox("-74, 44, -73, 45")
	require.NoError(t, err)
	assert.True(t, b.OverlapsPoint(geom.XY, geom.Coord{-73.21, 44.47}))
	assert.False(t, b.OverlapsPoint(geom.XY, geom.Coord{-80, 44.47}))

	for _, s := range []string{"", "1,2,3", "a,b,c,d", "NaN,0,1,1", "5,0,1,1"} {
		_, err := parseBBox(s)
		assert.Error(t, err, s)
	}
}
