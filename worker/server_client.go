package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brojonat/gestate/server"
)

// doServerRequest sends body (if any) as JSON and decodes the response into
// dst (if any).
func doServerRequest(ctx context.Context, method, url string, h http.Header, body, dst any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return err
	}
	req.Header = h.Clone()
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return fmt.Errorf("%s %s: %s: %s", method, url, res.Status, bytes.TrimSpace(b))
	}
	if dst == nil {
		return nil
	}
	return json.Unmarshal(b, dst)
}

func getMLSSettings(ctx context.Context, endpoint string, h http.Header) (server.MLSSettings, error) {
	var ms server.MLSSettings
	err := doServerRequest(ctx, http.MethodGet, fmt.Sprintf("%s/setting/mls", endpoint), h, nil, &ms)
	return ms, err
}

// putMLSLastSync records a finished sync. Only last_sync_at is written so
// settings edited during the run are kept.
func putMLSLastSync(ctx context.Context, endpoint string, h http.Header, t time.Time) error {
	body := server.MLSSyncBody{LastSyncAt: t}
	return doServerRequest(ctx, http.MethodPut, fmt.Sprintf("%s/setting/mls/last-sync", endpoint), h, body, nil)
}

func upsertListings(ctx context.Context, endpoint string, h http.Header, body server.UpsertMLSBody) (server.UpsertMLSResponse, error) {
	var res server.UpsertMLSResponse
	err := doServerRequest(ctx, http.MethodPost, fmt.Sprintf("%s/property/upsert-mls", endpoint), h, body, &res)
	return res, err
}
