package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/brojonat/gestate/server/dbgen"
)

func getBuildingDetail(ctx context.Context, q *dbgen.Queries, b dbgen.Building) (BuildingResponse, error) {
	res := BuildingResponse{Building: b, Location: encodeLocation(b.Latitude, b.Longitude)}
	as, err := q.ListBuildingAmenities(ctx, b.ID)
	if err != nil {
		return res, err
	}
	res.Amenities = as
	return res, nil
}

func handleBuildingGet(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, hasID, err := parseIDParam(r, "id")
		if err != nil {
			writeBadRequestError(w, err.Error())
			return
		}
		slug := r.URL.Query().Get("slug")

		if !hasID && slug == "" {
			limit, offset, err := parseLimitOffset(r)
			if err != nil {
				writeBadRequestError(w, err.Error())
				return
			}
			city := strings.TrimSpace(r.URL.Query().Get("city"))
			bs, err := q.ListBuildings(r.Context(), city, limit, offset)
			if err != nil {
				writeInternalError(l, w, err)
				return
			}
			res := make([]BuildingResponse, 0, len(bs))
			for _, b := range bs {
				res = append(res, BuildingResponse{Building: b, Location: encodeLocation(b.Latitude, b.Longitude)})
			}
			writeJSON(w, http.StatusOK, res)
			return
		}

		var b dbgen.Building
		if hasID {
			b, err = q.GetBuilding(r.Context(), id)
		} else {
			b, err = q.GetBuildingBySlug(r.Context(), slug)
		}
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		res, err := getBuildingDetail(r.Context(), q, b)
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func handleBuildingPost(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body BuildingBody
		if err := decodeJSONBody(r, &body); err != nil {
			writeDecodeError(l, w, err)
			return
		}
		if fe := body.normalize(); len(fe) > 0 {
			writeValidationError(w, fe)
			return
		}
		b, err := q.CreateBuilding(r.Context(), body.params())
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusCreated, BuildingResponse{Building: b, Location: encodeLocation(b.Latitude, b.Longitude)})
	}
}

func handleBuildingPut(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIDParam(w, r, "id")
		if !ok {
			return
		}
		var body BuildingBody
		if err := decodeJSONBody(r, &body); err != nil {
			writeDecodeError(l, w, err)
			return
		}
		if fe := body.normalize(); len(fe) > 0 {
			writeValidationError(w, fe)
			return
		}
		b, err := q.UpdateBuilding(r.Context(), dbgen.UpdateBuildingParams{ID: id, CreateBuildingParams: body.params()})
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, BuildingResponse{Building: b, Location: encodeLocation(b.Latitude, b.Longitude)})
	}
}

func handleBuildingDelete(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIDParam(w, r, "id")
		if !ok {
			return
		}
		if err := q.DeleteBuilding(r.Context(), id); err != nil {
			writeDBError(l, w, err)
			return
		}
		writeOK(w)
	}
}

func handleBuildingAmenitiesGet(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIDParam(w, r, "id")
		if !ok {
			return
		}
		as, err := q.ListBuildingAmenities(r.Context(), id)
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, as)
	}
}

func handleBuildingAmenitiesPut(l *slog.Logger, p dbPool, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIDParam(w, r, "id")
		if !ok {
			return
		}
		var body AmenitySetBody
		if err := decodeJSONBody(r, &body); err != nil {
			writeDecodeError(l, w, err)
			return
		}

		tx, err := p.Begin(r.Context())
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		defer tx.Rollback(r.Context())
		qtx := q.WithTx(tx)

		if _, err := qtx.GetBuilding(r.Context(), id); err != nil {
			writeDBError(l, w, err)
			return
		}
		if err := qtx.DeleteBuildingAmenities(r.Context(), id); err != nil {
			writeInternalError(l, w, err)
			return
		}
		seen := map[int64]bool{}
		for _, aid := range body.AmenityIDs {
			if seen[aid] {
				continue
			}
			seen[aid] = true
			if err := qtx.AddBuildingAmenity(r.Context(), id, aid); err != nil {
				writeDBError(l, w, err)
				return
			}
		}
		as, err := qtx.ListBuildingAmenities(r.Context(), id)
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		if err := tx.Commit(r.Context()); err != nil {
			writeInternalError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, as)
	}
}
