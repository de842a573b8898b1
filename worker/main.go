package worker

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/brojonat/gestate/mls"
	"github.com/brojonat/gestate/server"
)

// RunWorkerFunc is a general purpose entry point for running cancelable
// periodic worker functions on some interval. Callers simply supply an interval
// and their worker function.
func RunWorkerFunc(
	ctx context.Context,
	logger *slog.Logger,
	interval time.Duration,
	f func(context.Context, *slog.Logger),
) error {
	lastRun := time.Now()
	for {
		delay := time.NewTimer(lastRun.Truncate(interval).Add(interval).Sub(lastRun))
		select {
		case <-delay.C:
			f(ctx, logger)
		case <-ctx.Done():
			logger.Info("worker context cancelled, returning context err")
			if !delay.Stop() {
				<-delay.C
			}
			return ctx.Err()
		}
		lastRun = time.Now()
	}
}

// FeedClientFunc builds a feed client for the feed URL stored in the MLS
// settings.
type FeedClientFunc func(feedURL string) (mls.Client, error)

// maxFeedPages bounds a single sync in case a feed ignores the page param.
const maxFeedPages = 500

// MakeMLSWorkerFunc returns the MLS sync worker. Each run reads the MLS
// settings from the server, pages through listings modified since the last
// sync, and upserts each page through the server. last_sync_at only moves
// once every page has been upserted. Runs are skipped while the feed is
// disabled or the configured poll interval hasn't elapsed.
func MakeMLSWorkerFunc(endpoint, authToken string, fc FeedClientFunc) func(context.Context, *slog.Logger) {
	return func(ctx context.Context, l *slog.Logger) {
		h := getDefaultServerHeaders(authToken)
		ms, err := getMLSSettings(ctx, endpoint, h)
		if err != nil {
			l.Error("error getting mls settings", "error", err.Error())
			return
		}
		now := time.Now().UTC()
		if !shouldSync(ms, now) {
			l.Debug("skipping mls sync", "enabled", ms.Enabled)
			return
		}
		c, err := fc(ms.FeedURL)
		if err != nil {
			l.Error("error building feed client", "error", err.Error())
			return
		}

		params := getListingParams(ms)
		pageSize, err := strconv.Atoi(params["page_size"])
		if err != nil || pageSize <= 0 {
			l.Error("bad feed page size", "page_size", params["page_size"])
			return
		}
		upserted, rejected := 0, 0
		for page := 1; ; page++ {
			if page > maxFeedPages {
				l.Error("mls sync exceeded page limit", "pages", maxFeedPages)
				return
			}
			params["page"] = strconv.Itoa(page)
			res, n, err := syncListingsPage(ctx, l, endpoint, h, c, params)
			if err != nil {
				l.Error("error syncing mls listings", "page", page, "error", err.Error())
				return
			}
			upserted += res.Upserted
			rejected += len(res.Rejected)
			if n < pageSize {
				break
			}
		}

		if err := putMLSLastSync(ctx, endpoint, h, now); err != nil {
			l.Error("error recording mls sync", "error", err.Error())
			return
		}
		l.Info("mls sync complete", "upserted", upserted, "rejected", rejected)
	}
}

// syncListingsPage pulls one page of listings and upserts it. It also returns
// the number of listings on the page, which callers use to detect the end.
func syncListingsPage(
	ctx context.Context,
	l *slog.Logger,
	endpoint string,
	h http.Header,
	c mls.Client,
	params map[string]string,
) (server.UpsertMLSResponse, int, error) {
	var res server.UpsertMLSResponse
	b, err := c.Listings(ctx, params)
	if err != nil {
		return res, 0, fmt.Errorf("pulling listings: %w", err)
	}
	props, n, err := parseListings(b)
	if err != nil {
		return res, 0, err
	}
	fillMissingPhotos(ctx, l, c, props)
	if len(props) == 0 {
		return res, n, nil
	}
	res, err = upsertListings(ctx, endpoint, h, server.UpsertMLSBody{Properties: props})
	if err != nil {
		return res, 0, fmt.Errorf("upserting listings: %w", err)
	}
	for id, fe := range res.Rejected {
		l.Warn("mls listing rejected", "mls_id", id, "error", fe.Error())
	}
	return res, n, nil
}

// fillMissingPhotos asks the feed's media endpoint for listings that arrived
// without photos. A failed lookup leaves the listing without images.
func fillMissingPhotos(ctx context.Context, l *slog.Logger, c mls.Client, props []server.PropertyBody) {
	for i := range props {
		if len(props[i].Images) > 0 || props[i].MLSID == nil {
			continue
		}
		b, err := c.Photos(ctx, *props[i].MLSID, nil)
		if err != nil {
			l.Warn("error pulling mls photos", "mls_id", *props[i].MLSID, "error", err.Error())
			continue
		}
		imgs, err := parsePhotos(b)
		if err != nil {
			l.Warn("error parsing mls photos", "mls_id", *props[i].MLSID, "error", err.Error())
			continue
		}
		props[i].Images = imgs
	}
}

// SyncMLSListing pulls a single listing from the feed and upserts it,
// independent of the periodic sync and its schedule.
func SyncMLSListing(ctx context.Context, l *slog.Logger, endpoint, authToken string, c mls.Client, mlsID string) error {
	b, err := c.Listing(ctx, mlsID, nil)
	if err != nil {
		return fmt.Errorf("pulling listing %s: %w", mlsID, err)
	}
	p, err := parseListingPayload(b)
	if err != nil {
		return err
	}
	props := []server.PropertyBody{p}
	fillMissingPhotos(ctx, l, c, props)
	res, err := upsertListings(ctx, endpoint, getDefaultServerHeaders(authToken), server.UpsertMLSBody{Properties: props})
	if err != nil {
		return fmt.Errorf("upserting listing %s: %w", mlsID, err)
	}
	if fe, ok := res.Rejected[*p.MLSID]; ok {
		return fmt.Errorf("listing %s rejected: %w", mlsID, fe)
	}
	l.Info("mls listing synced", "mls_id", mlsID)
	return nil
}

func shouldSync(ms server.MLSSettings, now time.Time) bool {
	if !ms.Enabled {
		return false
	}
	if ms.LastSyncAt == nil {
		return true
	}
	return now.Sub(*ms.LastSyncAt) >= ms.Interval()
}

// Return the default headers to use to make queries against the server
func getDefaultServerHeaders(authToken string) http.Header {
	h := http.Header{}
	h.Add("Authorization", "Bearer "+authToken)
	h.Add("Content-Type", "application/json")
	return h
}
