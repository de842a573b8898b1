package server

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/brojonat/gestate/places"
	"github.com/brojonat/gestate/search"
	"github.com/brojonat/gestate/server/dbgen"
	"github.com/brojonat/histogram"
)

const priceHistogramBins = 10

// placesSource restricts the provider to address-like results.
func placesSource(pc places.Client) search.Source {
	if pc == nil {
		return nil
	}
	return search.SourceFunc(func(ctx context.Context, query string, limit int) ([]search.Suggestion, error) {
		ps, err := pc.Autocomplete(ctx, query, map[string]string{"types": "geocode"})
		if err != nil {
			return nil, err
		}
		res := make([]search.Suggestion, 0, len(ps))
		for _, p := range ps {
			if len(res) == limit {
				break
			}
			res = append(res, search.Suggestion{Label: p.Description, Kind: search.KindPlace, PlaceID: p.PlaceID})
		}
		return res, nil
	})
}

func citySource(q *dbgen.Queries) search.Source {
	return search.SourceFunc(func(ctx context.Context, query string, limit int) ([]search.Suggestion, error) {
		cs, err := q.ListCitySuggestions(ctx, query, int32(limit))
		if err != nil {
			return nil, err
		}
		res := make([]search.Suggestion, 0, len(cs))
		for _, c := range cs {
			res = append(res, search.Suggestion{
				Label:    fmt.Sprintf("%s, %s", c.City, c.State),
				Kind:     search.KindCity,
				City:     c.City,
				State:    c.State,
				Listings: c.Listings,
			})
		}
		return res, nil
	})
}

func handleSearchSuggestions(l *slog.Logger, q *dbgen.Queries, pc places.Client) http.HandlerFunc {
	ps, cs := placesSource(pc), citySource(q)
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		limit := search.MaxSuggestions
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				writeBadRequestError(w, "bad value for limit")
				return
			}
			limit = n
		}
		res, err := search.Merge(r.Context(), l, query, limit, ps, cs)
		if err != nil {
			// the client went away
			l.Debug("suggestion lookup cancelled", "query", query)
			return
		}
		writeJSON(w, http.StatusOK, SuggestionsResponse{Query: query, Suggestions: res})
	}
}

// niceStep rounds span/100 up to 1, 2 or 5 times a power of ten so slider
// values stay readable.
func niceStep(span int64) int64 {
	if span <= 0 {
		return 1
	}
	raw := float64(span) / 100
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if raw <= m*mag {
			s := int64(m * mag)
			if s < 1 {
				return 1
			}
			return s
		}
	}
	return int64(10 * mag)
}

// handlePriceHistogram bins active listing prices to draw behind the price
// slider, along with the slider bounds.
func handlePriceHistogram(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		city := strings.TrimSpace(r.URL.Query().Get("city"))
		lt := r.URL.Query().Get("listing_type")
		if lt != "" && !isValidListingType(lt) {
			writeBadRequestError(w, "bad value for listing_type")
			return
		}
		prices, err := q.ListPropertyPrices(r.Context(), city, lt)
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		if len(prices) == 0 {
			writeJSON(w, http.StatusOK, PriceHistogramResponse{Ceiling: MaxListingPrice, Step: niceStep(MaxListingPrice), Bins: []PriceBin{}})
			return
		}

		lo, hi := prices[0], prices[0]
		vals := make([]float64, 0, len(prices))
		for _, p := range prices {
			lo = min(lo, p)
			hi = max(hi, p)
			vals = append(vals, float64(p))
		}
		step := niceStep(hi - lo)
		res := PriceHistogramResponse{
			Floor:   lo / step * step,
			Ceiling: (hi + step - 1) / step * step,
			Step:    step,
			Bins:    []PriceBin{},
		}
		if lo == hi {
			res.Ceiling = res.Floor + step
			res.Bins = append(res.Bins, PriceBin{Min: lo, Max: res.Ceiling, Count: len(prices)})
			writeJSON(w, http.StatusOK, res)
			return
		}

		bs, err := histogram.BSExactSpan(priceHistogramBins)(vals)
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		h, err := histogram.Hist(vals, bs, histogram.DefaultBucketer)
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		for _, b := range h.Buckets {
			res.Bins = append(res.Bins, PriceBin{Min: int64(b.Min), Count: b.Count})
		}
		sort.Slice(res.Bins, func(i, j int) bool { return res.Bins[i].Min < res.Bins[j].Min })
		for i := range res.Bins {
			res.Bins[i].Max = res.Ceiling
			if i+1 < len(res.Bins) {
				res.Bins[i].Max = res.Bins[i+1].Min
			}
		}
		writeJSON(w, http.StatusOK, res)
	}
}
