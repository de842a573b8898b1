package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"strconv"
	"time"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	adminTokenTTL    = 2 * 7 * 24 * time.Hour
)

type defaultJSONResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type validationResponse struct {
	Error  string      `json:"error"`
	Fields FieldErrors `json:"fields"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, defaultJSONResponse{Message: "ok"})
}

func writeInternalError(l *slog.Logger, w http.ResponseWriter, e error) {
	var pcs [1]uintptr
	runtime.Callers(2, pcs[:]) // skip [Callers, writeInternalError]
	r := slog.NewRecord(time.Now(), slog.LevelError, e.Error(), pcs[0])
	_ = l.Handler().Handle(context.Background(), r)
	writeJSON(w, http.StatusInternalServerError, defaultJSONResponse{Error: "internal error"})
}

func writeEmptyResultError(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, defaultJSONResponse{Error: "empty result set"})
}

func writeBadRequestError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, defaultJSONResponse{Error: msg})
}

func writeValidationError(w http.ResponseWriter, fe FieldErrors) {
	writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Error: "validation failed", Fields: fe})
}

// parseIDParam reads a positive integer query parameter. The bool reports
// whether the parameter was present at all.
func parseIDParam(r *http.Request, name string) (int64, bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, true, fmt.Errorf("bad value for %s", name)
	}
	return id, true, nil
}

// requireIDParam writes a 400 and returns false when the parameter is
// missing or malformed.
func requireIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, ok, err := parseIDParam(r, name)
	if err != nil {
		writeBadRequestError(w, err.Error())
		return 0, false
	}
	if !ok {
		writeBadRequestError(w, "must supply "+name)
		return 0, false
	}
	return id, true
}

func parseLimitOffset(r *http.Request) (int32, int32, error) {
	limit, offset := int64(defaultListLimit), int64(0)
	var err error
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.ParseInt(v, 10, 32)
		if err != nil || limit <= 0 {
			return 0, 0, fmt.Errorf("bad value for limit")
		}
		if limit > maxListLimit {
			limit = maxListLimit
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		offset, err = strconv.ParseInt(v, 10, 32)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("bad value for offset")
		}
	}
	return int32(limit), int32(offset), nil
}

// handlePing pings the database
func handlePing(l *slog.Logger, p dbPool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := p.Ping(r.Context())
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		json.NewEncoder(w).Encode(defaultJSONResponse{Message: "PONG"})
	}
}

// handleIssueToken exchanges the server secret for a bearer token
func handleIssueToken(l *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := r.Header.Get("Authorization")
		if t == "" {
			writeBadRequestError(w, "must supply authorization header")
			return
		}
		email := r.URL.Query().Get("email")
		if email == "" {
			writeBadRequestError(w, "must supply email")
			return
		}
		if getSecretKey() == "" || t != getSecretKey() {
			writeJSON(w, http.StatusUnauthorized, defaultJSONResponse{Error: "not authorized"})
			return
		}
		token, err := IssueToken(email, adminTokenTTL)
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		l.Warn("issuing sudo token", "email", email)
		writeJSON(w, http.StatusOK, defaultJSONResponse{Message: token})
	}
}
