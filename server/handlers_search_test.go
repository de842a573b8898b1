package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/brojonat/gestate/places"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlaces []places.Prediction

func (f fakePlaces) Autocomplete(ctx context.Context, input string, params map[string]string) ([]places.Prediction, error) {
	return f, nil
}

func TestHandleSearchSuggestions(t *testing.T) {
	mock, q := newMock(t)
	mock.ExpectQuery("name: ListCitySuggestions").
		WithArgs("bur", int32(8)).
		WillReturnRows(pgxmock.NewRows([]string{"city", "state", "listings"}).
			AddRow("Burlington", "VT", int64(12)))

	pc := fakePlaces{
		{Description: "Burlington, VT, USA", PlaceID: "p1"},
		{Description: "Burr Ridge, IL, USA", PlaceID: "p2"},
	}
	h := handleSearchSuggestions(testLogger(), q, pc)
	w := serve(h, jsonRequest(t, http.MethodGet, "/search/suggestions?q=bur", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res SuggestionsResponse
	decodeResponse(t, w, &res)
	require.Len(t, res.Suggestions, 3)
	assert.Equal(t, "Burlington, VT, USA", res.Suggestions[0].Label)
	assert.Equal(t, "Burlington, VT", res.Suggestions[1].Label)
	assert.Equal(t, int64(12), res.Suggestions[1].Listings)
	assert.Equal(t, "Burr Ridge, IL, USA", res.Suggestions[2].Label)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleSearchSuggestionsShortQuery(t *testing.T) {
	mock, q := newMock(t)
	h := handleSearchSuggestions(testLogger(), q, nil)
	w := serve(h, jsonRequest(t, http.MethodGet, "/search/suggestions?q=b", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var res SuggestionsResponse
	decodeResponse(t, w, &res)
	assert.Empty(t, res.Suggestions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePriceHistogramEmpty(t *testing.T) {
	mock, q := newMock(t)
	mock.ExpectQuery("name: ListPropertyPrices").
		WithArgs("nowhere", "").
		WillReturnRows(pgxmock.NewRows([]string{"price"}))

	w := serve(handlePriceHistogram(testLogger(), q), jsonRequest(t, http.MethodGet, "/search/price-histogram?city=nowhere", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var res PriceHistogramResponse
	decodeResponse(t, w, &res)
	assert.Empty(t, res.Bins)
	assert.Equal(t, int64(MaxListingPrice), res.Ceiling)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePriceHistogramSinglePrice(t *testing.T) {
	mock, q := newMock(t)
	mock.ExpectQuery("name: ListPropertyPrices").
		WithArgs("burlington", ListingTypeRent).
		WillReturnRows(pgxmock.NewRows([]string{"price"}).AddRow(int64(2100)).AddRow(int64(2100)))

	target := "/search/price-histogram?city=burlington&listing_type=rent"
	w := serve(handlePriceHistogram(testLogger(), q), jsonRequest(t, http.MethodGet, target, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var res PriceHistogramResponse
	decodeResponse(t, w, &res)
	require.Len(t, res.Bins, 1)
	assert.Equal(t, 2, res.Bins[0].Count)
	assert.Equal(t, int64(2100), res.Floor)
	assert.Equal(t, int64(2101), res.Ceiling)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePriceHistogram(t *testing.T) {
	mock, q := newMock(t)
	rows := pgxmock.NewRows([]string{"price"})
	for _, p := range []int64{250000, 310000, 325000, 410000, 480000, 650000, 990000} {
		rows.AddRow(p)
	}
	mock.ExpectQuery("name: ListPropertyPrices").WithArgs("", "").WillReturnRows(rows)

	w := serve(handlePriceHistogram(testLogger(), q), jsonRequest(t, http.MethodGet, "/search/price-histogram", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res PriceHistogramResponse
	decodeResponse(t, w, &res)
	assert.Equal(t, int64(10000), res.Step)
	assert.Equal(t, int64(250000), res.Floor)
	assert.Equal(t, int64(990000), res.Ceiling)
	require.NotEmpty(t, res.Bins)
	for i := 1; i < len(res.Bins); i++ {
		assert.LessOrEqual(t, res.Bins[i-1].Min, res.Bins[i].Min)
		assert.Equal(t, res.Bins[i].Min, res.Bins[i-1].Max)
	}
	assert.Equal(t, res.Ceiling, res.Bins[len(res.Bins)-1].Max)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNiceStep(t *testing.T) {
	assert.Equal(t, int64(1), niceStep(0))
	assert.Equal(t, int64(1), niceStep(50))
	assert.Equal(t, int64(2), niceStep(150))
	assert.Equal(t, int64(10000), niceStep(740000))
	assert.Equal(t, int64(200000), niceStep(MaxListingPrice))
}
