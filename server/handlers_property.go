package server

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/brojonat/gestate/search"
	"github.com/brojonat/gestate/server/dbgen"
	"github.com/twpayne/go-geom"
)

// MaxListingPrice is the ceiling of the price slider; prices above it are
// still stored but the filter treats it as unbounded.
const MaxListingPrice = 20_000_000

func defaultPriceRange() search.PriceRange {
	return search.NewPriceRange(0, MaxListingPrice, 1)
}

// parseBBox reads "minLng,minLat,maxLng,maxLat".
func parseBBox(s string) (*geom.Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("bbox must be minLng,minLat,maxLng,maxLat")
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("bad bbox value %q", p)
		}
		vals[i] = v
	}
	if vals[0] > vals[2] || vals[1] > vals[3] {
		return nil, fmt.Errorf("bbox min must not exceed max")
	}
	return geom.NewBounds(geom.XY).Set(vals...), nil
}

// parsePropertyFilters turns the listing query string into query params.
func parsePropertyFilters(r *http.Request) (dbgen.ListPropertiesParams, error) {
	qs := r.URL.Query()
	var arg dbgen.ListPropertiesParams
	arg.City = strings.TrimSpace(qs.Get("city"))

	arg.ListingType = qs.Get("listing_type")
	if arg.ListingType != "" && !isValidListingType(arg.ListingType) {
		return arg, fmt.Errorf("bad value for listing_type")
	}
	arg.Status = qs.Get("status")
	if arg.Status != "" && !isValidStatus(arg.Status) {
		return arg, fmt.Errorf("bad value for status")
	}

	pr, err := search.ParsePriceRange(qs.Get("min_price"), qs.Get("max_price"), defaultPriceRange())
	if err != nil {
		return arg, err
	}
	arg.MinPrice, arg.MaxPrice = pr.Bounds()

	if v := qs.Get("bedrooms"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 0 {
			return arg, fmt.Errorf("bad value for bedrooms")
		}
		arg.MinBedrooms = int32(n)
	}
	if v := qs.Get("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return arg, fmt.Errorf("bad value for featured")
		}
		arg.FeaturedOnly = b
	}
	if arg.BuildingID, _, err = parseIDParam(r, "building_id"); err != nil {
		return arg, err
	}
	if arg.Limit, arg.Offset, err = parseLimitOffset(r); err != nil {
		return arg, err
	}

	if v := qs.Get("bbox"); v != "" {
		b, err := parseBBox(v)
		if err != nil {
			return arg, err
		}
		arg.InBounds = true
		arg.MinLng, arg.MinLat = b.Min(0), b.Min(1)
		arg.MaxLng, arg.MaxLat = b.Max(0), b.Max(1)
	}
	return arg, nil
}

func getPropertyDetail(ctx context.Context, q *dbgen.Queries, p dbgen.Property) (PropertyResponse, error) {
	res := newPropertyResponse(p)
	as, err := q.ListPropertyAmenities(ctx, p.ID)
	if err != nil {
		return res, err
	}
	res.Amenities = as
	return res, nil
}

func handlePropertyGet(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, hasID, err := parseIDParam(r, "id")
		if err != nil {
			writeBadRequestError(w, err.Error())
			return
		}
		slug := r.URL.Query().Get("slug")

		// no identifier, list properties
		if !hasID && slug == "" {
			arg, err := parsePropertyFilters(r)
			if err != nil {
				writeBadRequestError(w, err.Error())
				return
			}
			props, err := q.ListProperties(r.Context(), arg)
			if err != nil {
				writeInternalError(l, w, err)
				return
			}
			writeJSON(w, http.StatusOK, newPropertyResponses(props))
			return
		}

		var prop dbgen.Property
		if hasID {
			prop, err = q.GetProperty(r.Context(), id)
		} else {
			prop, err = q.GetPropertyBySlug(r.Context(), slug)
		}
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		res, err := getPropertyDetail(r.Context(), q, prop)
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func handlePropertyPost(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body PropertyBody
		if err := decodeJSONBody(r, &body); err != nil {
			writeDecodeError(l, w, err)
			return
		}
		if fe := body.normalize(); len(fe) > 0 {
			writeValidationError(w, fe)
			return
		}
		prop, err := q.CreateProperty(r.Context(), body.params())
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusCreated, newPropertyResponse(prop))
	}
}

func handlePropertyPut(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIDParam(w, r, "id")
		if !ok {
			return
		}
		var body PropertyBody
		if err := decodeJSONBody(r, &body); err != nil {
			writeDecodeError(l, w, err)
			return
		}
		if fe := body.normalize(); len(fe) > 0 {
			writeValidationError(w, fe)
			return
		}
		prop, err := q.UpdateProperty(r.Context(), dbgen.UpdatePropertyParams{ID: id, CreatePropertyParams: body.params()})
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, newPropertyResponse(prop))
	}
}

func handlePropertyDelete(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIDParam(w, r, "id")
		if !ok {
			return
		}
		if err := q.DeleteProperty(r.Context(), id); err != nil {
			writeDBError(l, w, err)
			return
		}
		writeOK(w)
	}
}

func handlePropertyAmenitiesGet(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIDParam(w, r, "id")
		if !ok {
			return
		}
		as, err := q.ListPropertyAmenities(r.Context(), id)
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, as)
	}
}

// replaces the amenity set of a property in one transaction
func handlePropertyAmenitiesPut(l *slog.Logger, p dbPool, q *dbgen.Queries) http.HandlerFunc {
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

		if _, err := qtx.GetProperty(r.Context(), id); err != nil {
			writeDBError(l, w, err)
			return
		}
		if err := qtx.DeletePropertyAmenities(r.Context(), id); err != nil {
			writeInternalError(l, w, err)
			return
		}
		seen := map[int64]bool{}
		for _, aid := range body.AmenityIDs {
			if seen[aid] {
				continue
			}
			seen[aid] = true
			if err := qtx.AddPropertyAmenity(r.Context(), id, aid); err != nil {
				writeDBError(l, w, err)
				return
			}
		}
		as, err := qtx.ListPropertyAmenities(r.Context(), id)
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

// handlePropertyUpsertMLS upserts a batch of feed listings by mls_id. Invalid
// listings are reported back rather than failing the batch.
func handlePropertyUpsertMLS(l *slog.Logger, p dbPool, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body UpsertMLSBody
		if err := decodeJSONBody(r, &body); err != nil {
			writeDecodeError(l, w, err)
			return
		}

		res := UpsertMLSResponse{Rejected: map[string]FieldErrors{}}
		valid := []PropertyBody{}
		for i, pb := range body.Properties {
			fe := pb.normalize()
			if pb.MLSID == nil || strings.TrimSpace(*pb.MLSID) == "" {
				fe.add("mls_id", "is required")
			}
			if len(fe) > 0 {
				key := strconv.Itoa(i)
				if pb.MLSID != nil && *pb.MLSID != "" {
					key = *pb.MLSID
				}
				res.Rejected[key] = fe
				continue
			}
			valid = append(valid, pb)
		}

		tx, err := p.Begin(r.Context())
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		defer tx.Rollback(r.Context())
		qtx := q.WithTx(tx)
		for _, pb := range valid {
			if _, err := qtx.UpsertPropertyByMLSID(r.Context(), pb.params()); err != nil {
				writeDBError(l, w, err)
				return
			}
			res.Upserted++
		}
		if err := tx.Commit(r.Context()); err != nil {
			writeInternalError(l, w, err)
			return
		}
		if len(res.Rejected) > 0 {
			l.Warn("rejected mls listings", "count", len(res.Rejected))
		}
		writeJSON(w, http.StatusOK, res)
	}
}
