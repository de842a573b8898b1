package server

import (
	"log/slog"
	"net/http"

	"github.com/brojonat/gestate/server/dbgen"
)

func handleContactPost(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body ContactBody
		if err := decodeJSONBody(r, &body); err != nil {
			writeDecodeError(l, w, err)
			return
		}
		if fe := body.normalize(); len(fe) > 0 {
			writeValidationError(w, fe)
			return
		}
		m, err := q.CreateContactMessage(r.Context(), dbgen.CreateContactMessageParams{
			Name:       body.Name,
			Email:      body.Email,
			Phone:      body.Phone,
			Message:    body.Message,
			PropertyID: int8Ptr(body.PropertyID),
		})
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		l.Info("contact message received", "id", m.ID)
		writeJSON(w, http.StatusCreated, defaultJSONResponse{Message: "thanks, we'll be in touch"})
	}
}

func handleContactGet(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset, err := parseLimitOffset(r)
		if err != nil {
			writeBadRequestError(w, err.Error())
			return
		}
		ms, err := q.ListContactMessages(r.Context(), limit, offset)
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, ms)
	}
}
