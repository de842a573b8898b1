package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsPGError(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgErrorUniqueViolation})
	assert.True(t, isPGError(err, pgErrorUniqueViolation))
	assert.False(t, isPGError(err, pgErrorForeignKeyViolation))
	assert.False(t, isPGError(assert.AnError, pgErrorUniqueViolation))
}

func TestWriteDBError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"no rows", fmt.Errorf("get: %w", pgx.ErrNoRows), http.StatusNotFound},
		{"unique", &pgconn.PgError{Code: pgErrorUniqueViolation}, http.StatusConflict},
		{"foreign key", &pgconn.PgError{Code: pgErrorForeignKeyViolation}, http.StatusBadRequest},
		{"check", &pgconn.PgError{Code: pgErrorCheckViolation}, http.StatusBadRequest},
		{"not null", &pgconn.PgError{Code: pgErrorNotNullViolation}, http.StatusBadRequest},
		{"other pg error", &pgconn.PgError{Code: "42P01"}, http.StatusInternalServerError},
		{"other", assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeDBError(testLogger(), w, tc.err)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestFieldErrors(t *testing.T) {
	fe := FieldErrors{}
	assert.Empty(t, fe)
	fe.add("email", "is required")
	fe.add("email", "must be a valid email address")
	fe.add("name", "is required")
	assert.Equal(t, "is required", fe["email"])
	assert.EqualError(t, fe, "validation failed: email: is required; name: is required")

	w := httptest.NewRecorder()
	writeValidationError(w, fe)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"validation failed","fields":{"email":"is required","name":"is required"}}`, w.Body.String())
}
