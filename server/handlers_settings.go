package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/brojonat/gestate/server/dbgen"
	"github.com/jackc/pgx/v5"
)

func handleSettingGet(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("key")
		if key == "" {
			ss, err := q.ListSettings(r.Context())
			if err != nil {
				writeInternalError(l, w, err)
				return
			}
			writeJSON(w, http.StatusOK, ss)
			return
		}
		s, err := q.GetSetting(r.Context(), key)
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

func handleSettingPut(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body SettingBody
		if err := decodeJSONBody(r, &body); err != nil {
			writeDecodeError(l, w, err)
			return
		}
		if fe := body.normalize(); len(fe) > 0 {
			writeValidationError(w, fe)
			return
		}
		// the typed settings go through their own validation
		if body.Key == MLSSettingsKey {
			var ms MLSSettings
			if err := json.Unmarshal(body.Value, &ms); err != nil {
				writeValidationError(w, FieldErrors{"value": "must be an mls settings object"})
				return
			}
			if fe := ms.normalize(); len(fe) > 0 {
				writeValidationError(w, fe)
				return
			}
		}
		s, err := q.UpsertSetting(r.Context(), body.Key, body.Value)
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

func handleSettingDelete(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("key")
		if key == "" {
			writeBadRequestError(w, "must supply key")
			return
		}
		if err := q.DeleteSetting(r.Context(), key); err != nil {
			writeDBError(l, w, err)
			return
		}
		writeOK(w)
	}
}

// getMLSSettings returns the stored MLS settings, or the disabled defaults
// when none have been saved yet.
func getMLSSettings(ctx context.Context, q *dbgen.Queries) (MLSSettings, error) {
	ms := MLSSettings{PollInterval: defaultPollInterval.String()}
	s, err := q.GetSetting(ctx, MLSSettingsKey)
	if errors.Is(err, pgx.ErrNoRows) {
		return ms, nil
	}
	if err != nil {
		return ms, err
	}
	if err := json.Unmarshal(s.Value, &ms); err != nil {
		return ms, fmt.Errorf("could not parse mls settings: %w", err)
	}
	return ms, nil
}

func handleMLSSettingsGet(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ms, err := getMLSSettings(r.Context(), q)
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, ms)
	}
}

func handleMLSSettingsPut(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ms MLSSettings
		if err := decodeJSONBody(r, &ms); err != nil {
			writeDecodeError(l, w, err)
			return
		}
		if fe := ms.normalize(); len(fe) > 0 {
			writeValidationError(w, fe)
			return
		}
		b, err := json.Marshal(ms)
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		if _, err := q.UpsertSetting(r.Context(), MLSSettingsKey, b); err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, ms)
	}
}

// handleMLSLastSyncPut only moves last_sync_at so a sync finishing after an
// admin edit doesn't clobber it.
func handleMLSLastSyncPut(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body MLSSyncBody
		if err := decodeJSONBody(r, &body); err != nil {
			writeDecodeError(l, w, err)
			return
		}
		if fe := body.normalize(); len(fe) > 0 {
			writeValidationError(w, fe)
			return
		}
		b, err := json.Marshal(body.LastSyncAt)
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		s, err := q.SetSettingField(r.Context(), MLSSettingsKey, "last_sync_at", b)
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		var ms MLSSettings
		if err := json.Unmarshal(s.Value, &ms); err != nil {
			writeInternalError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, ms)
	}
}
