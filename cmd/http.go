package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

func getDefaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

func getDefaultServerHeaders(authToken string) http.Header {
	h := http.Header{}
	h.Add("Authorization", "Bearer "+authToken)
	h.Add("Content-Type", "application/json")
	return h
}

// postJSON sends body to endpoint+path and decodes a 200/201 response into
// dst when dst is non-nil.
func postJSON(ctx context.Context, endpoint, path, authToken string, body, dst any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s", endpoint, path), bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header = getDefaultServerHeaders(authToken)
	res, err := getDefaultHTTPClient().Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	rb, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return fmt.Errorf("%s: %s", res.Status, bytes.TrimSpace(rb))
	}
	if dst == nil {
		return nil
	}
	return json.Unmarshal(rb, dst)
}
