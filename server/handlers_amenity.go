package server

import (
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/brojonat/gestate/server/dbgen"
	"github.com/brojonat/gestate/upload"
)

func handleAmenityGet(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, hasID, err := parseIDParam(r, "id")
		if err != nil {
			writeBadRequestError(w, err.Error())
			return
		}
		if !hasID {
			as, err := q.ListAmenities(r.Context())
			if err != nil {
				writeInternalError(l, w, err)
				return
			}
			writeJSON(w, http.StatusOK, as)
			return
		}
		a, err := q.GetAmenity(r.Context(), id)
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func handleAmenityPost(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body AmenityBody
		if err := decodeJSONBody(r, &body); err != nil {
			writeDecodeError(l, w, err)
			return
		}
		if fe := body.normalize(); len(fe) > 0 {
			writeValidationError(w, fe)
			return
		}
		a, err := q.CreateAmenity(r.Context(), body.Name, int8Ptr(body.IconID))
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusCreated, a)
	}
}

func handleAmenityPut(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIDParam(w, r, "id")
		if !ok {
			return
		}
		var body AmenityBody
		if err := decodeJSONBody(r, &body); err != nil {
			writeDecodeError(l, w, err)
			return
		}
		if fe := body.normalize(); len(fe) > 0 {
			writeValidationError(w, fe)
			return
		}
		a, err := q.UpdateAmenity(r.Context(), id, body.Name, int8Ptr(body.IconID))
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func handleAmenityDelete(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIDParam(w, r, "id")
		if !ok {
			return
		}
		if err := q.DeleteAmenity(r.Context(), id); err != nil {
			writeDBError(l, w, err)
			return
		}
		writeOK(w)
	}
}

func handleIconGet(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, hasID, err := parseIDParam(r, "id")
		if err != nil {
			writeBadRequestError(w, err.Error())
			return
		}
		if !hasID {
			is, err := q.ListIcons(r.Context())
			if err != nil {
				writeInternalError(l, w, err)
				return
			}
			writeJSON(w, http.StatusOK, is)
			return
		}
		i, err := q.GetIcon(r.Context(), id)
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, i)
	}
}

// handleIconPost stores an uploaded SVG inline. The icon name defaults to the
// file name without its extension.
func handleIconPost(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, filename, err := readUploadedFile(r, uploadFormField)
		if err != nil {
			writeUploadReadError(w, err)
			return
		}
		res, err := upload.Classify(filename, data, upload.Limits{})
		if err != nil {
			writeValidationError(w, FieldErrors{uploadFormField: err.Error()})
			return
		}
		if res.Kind != upload.KindSVG {
			writeValidationError(w, FieldErrors{uploadFormField: "icons must be SVG"})
			return
		}
		name := strings.TrimSpace(r.FormValue("name"))
		if name == "" {
			name = strings.TrimSuffix(path.Base(filename), path.Ext(filename))
		}
		if name == "" {
			writeValidationError(w, FieldErrors{"name": "is required"})
			return
		}
		i, err := q.CreateIcon(r.Context(), name, string(data))
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusCreated, i)
	}
}

func handleIconDelete(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIDParam(w, r, "id")
		if !ok {
			return
		}
		if err := q.DeleteIcon(r.Context(), id); err != nil {
			writeDBError(l, w, err)
			return
		}
		writeOK(w)
	}
}
