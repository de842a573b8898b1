package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brojonat/gestate/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{}, splitList(""))
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, splitList(" https://a.example.com, ,https://b.example.com "))
}

func TestAddProperty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/property", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var body server.PropertyBody
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(325000), body.Price)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":7,"slug":"a-house","location":null}`))
	}))
	defer srv.Close()

	l := slog.New(slog.NewJSONHandler(io.Discard, nil))
	err := AddProperty(context.Background(), l, srv.URL, "tok", server.PropertyBody{Title: "A House", Price: 325000})
	require.NoError(t, err)
}

func TestPostJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"validation failed"}`))
	}))
	defer srv.Close()

	err := postJSON(context.Background(), srv.URL, "/blog/post", "tok", server.BlogPostBody{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "validation failed")
}
