package mls

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/feed/listings", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		assert.Equal(t, "18063", r.URL.Query().Get("region_id"))
		w.Write([]byte(`{}&&{"version":1,"resultCode":0,"payload":{"listings":[]}}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL+"/feed", "k", "ua", nil)
	require.NoError(t, err)
	params := DefaultListingParams()
	params["region_id"] = "18063"
	b, err := c.Listings(context.Background(), params)
	require.NoError(t, err)
	assert.JSONEq(t, `{"listings":[]}`, string(b))
}

func TestListing_Errors(t *testing.T) {
	tests := []struct {
		name string
		code int
		body string
	}{
		{name: "result code", code: http.StatusOK, body: `{"resultCode":101,"errorMessage":"unknown listing"}`},
		{name: "http status", code: http.StatusUnauthorized, body: `{}`},
		{name: "bad json", code: http.StatusOK, body: `nope`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/listings/MLS1", r.URL.Path)
				w.WriteHeader(tt.code)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()
			c, err := NewClient(srv.URL, "", "ua", srv.Client())
			require.NoError(t, err)
			_, err = c.Listing(context.Background(), "MLS1", map[string]string{})
			assert.Error(t, err)
		})
	}
}

func TestStripGuard(t *testing.T) {
	assert.Equal(t, `{"a":1}`, string(stripGuard([]byte(`{}&&{"a":1}`))))
	assert.Equal(t, `{"a":1}`, string(stripGuard([]byte(`{}&{"a":1}`))))
	assert.Equal(t, `{"a":1}`, string(stripGuard([]byte(`{"a":1}`))))
}
