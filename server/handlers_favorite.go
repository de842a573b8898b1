package server

import (
	"log/slog"
	"net/http"

	"github.com/brojonat/gestate/server/dbgen"
)

// getCaller resolves the authenticated email to a users row, creating it on
// first use. It writes the error response itself.
func getCaller(l *slog.Logger, w http.ResponseWriter, r *http.Request, q *dbgen.Queries) (dbgen.User, bool) {
	claims, ok := getClaims(r.Context())
	if !ok || claims.Email == "" {
		writeJSON(w, http.StatusForbidden, defaultJSONResponse{Error: "token does not identify a user"})
		return dbgen.User{}, false
	}
	u, err := q.UpsertUser(r.Context(), claims.Email)
	if err != nil {
		writeInternalError(l, w, err)
		return dbgen.User{}, false
	}
	return u, true
}

func handleFavoriteGet(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := getCaller(l, w, r, q)
		if !ok {
			return
		}
		ps, err := q.ListFavoriteProperties(r.Context(), u.ID)
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, FavoriteResponse{Properties: newPropertyResponses(ps)})
	}
}

func handleFavoritePost(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pid, ok := requireIDParam(w, r, "property_id")
		if !ok {
			return
		}
		u, ok := getCaller(l, w, r, q)
		if !ok {
			return
		}
		if err := q.AddFavorite(r.Context(), u.ID, pid); err != nil {
			writeDBError(l, w, err)
			return
		}
		writeOK(w)
	}
}

func handleFavoriteDelete(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pid, ok := requireIDParam(w, r, "property_id")
		if !ok {
			return
		}
		u, ok := getCaller(l, w, r, q)
		if !ok {
			return
		}
		if err := q.RemoveFavorite(r.Context(), u.ID, pid); err != nil {
			writeDBError(l, w, err)
			return
		}
		writeOK(w)
	}
}
