package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brojonat/gestate/server/dbgen"
	"github.com/brojonat/gestate/server/dbgen/jsonb"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *dbgen.Queries) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, dbgen.New(mock)
}

// anyArgs matches n query arguments of any value.
func anyArgs(n int) []interface{} {
	args := make([]interface{}, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

var propertyCols = []string{
	"id", "slug", "title", "description", "listing_type", "status", "price", "bedrooms",
	"bathrooms", "area_sqft", "address", "city", "state", "zipcode", "latitude", "longitude",
	"building_id", "mls_id", "listed_by", "listing_office", "features", "images", "featured",
	"created_at", "updated_at",
}

func propertyValues(id int64, slug string) []any {
	return []any{
		id, slug, "Lakeview Loft", "Two bedroom loft", "sale", "active", int64(450000), int32(2),
		float64(1.5), int32(900), "1 Main St", "Burlington", "VT", "05401", 44.47, -73.21,
		pgtype.Int8{}, pgtype.Text{}, "", "", jsonb.Features{"Balcony"}, jsonb.Images{}, false,
		testTime, testTime,
	}
}

var amenityCols = []string{"id", "name", "icon_id"}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	return r
}

func serve(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, r)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
