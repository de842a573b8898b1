// Package search implements the listing search bar back end: merging
// suggestions from several sources, debouncing keystroke driven lookups, and
// keeping the price range slider consistent.
package search

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	// MaxSuggestions caps the merged suggestion list.
	MaxSuggestions = 8
	// MinQueryLength is the shortest query that triggers a lookup.
	MinQueryLength = 2
)

const (
	KindPlace = "place"
	KindCity  = "city"
)

type Suggestion struct {
	Label    string `json:"label"`
	Kind     string `json:"kind"`
	PlaceID  string `json:"place_id,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Listings int64  `json:"listings,omitempty"`
}

// Source produces suggestions for a query.
type Source interface {
	Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, query string, limit int) ([]Suggestion, error)

func (f SourceFunc) Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error) {
	return f(ctx, query, limit)
}

// Merge queries places and cities concurrently and interleaves the results,
// starting with places. A failing source is logged and treated as empty; only
// cancellation of ctx fails the merge.
func Merge(ctx context.Context, l *slog.Logger, query string, limit int, places, cities Source) ([]Suggestion, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLength {
		return []Suggestion{}, nil
	}
	if limit <= 0 || limit > MaxSuggestions {
		limit = MaxSuggestions
	}

	var placeRes, cityRes []Suggestion
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if places == nil {
			return nil
		}
		res, err := places.Suggest(gctx, query, limit)
		if err != nil {
			l.Warn("places suggestion lookup failed", "query", query, "error", err.Error())
			return nil
		}
		placeRes = res
		return nil
	})
	g.Go(func() error {
		if cities == nil {
			return nil
		}
		res, err := cities.Suggest(gctx, query, limit)
		if err != nil {
			l.Warn("city suggestion lookup failed", "query", query, "error", err.Error())
			return nil
		}
		cityRes = res
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Interleave(limit, placeRes, cityRes), nil
}

// Interleave alternates between a and b, then drains whichever list is longer,
// skipping labels already emitted (case-insensitively) and stopping at limit.
func Interleave(limit int, a, b []Suggestion) []Suggestion {
	res := []Suggestion{}
	seen := map[string]struct{}{}
	add := func(s Suggestion) {
		key := strings.ToLower(strings.TrimSpace(s.Label))
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		res = append(res, s)
	}
	for i := 0; len(res) < limit && (i < len(a) || i < len(b)); i++ {
		if i < len(a) {
			add(a[i])
		}
		if len(res) < limit && i < len(b) {
			add(b[i])
		}
	}
	return res
}
