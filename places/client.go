// Package places is a small client for a places/address autocomplete
// provider. The wire format follows the common "predictions" + "status"
// response envelope.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
)

type Prediction struct {
	Description string   `json:"description"`
	PlaceID     string   `json:"place_id"`
	Types       []string `json:"types,omitempty"`
}

type autocompleteResponse struct {
	Predictions  []Prediction `json:"predictions"`
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message"`
}

type Client interface {
	Autocomplete(ctx context.Context, input string, params map[string]string) ([]Prediction, error)
}

type client struct {
	baseURL   string
	apiKey    string
	userAgent string
	hc        *http.Client
}

// NewClient returns a Client rooted at baseURL (for example
// "https://maps.googleapis.com/maps/api/place/"). A nil hc uses
// http.DefaultClient.
func NewClient(baseURL, apiKey, userAgent string, hc *http.Client) Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &client{baseURL: baseURL, apiKey: apiKey, userAgent: userAgent, hc: hc}
}

func (c *client) Autocomplete(ctx context.Context, input string, params map[string]string) ([]Prediction, error) {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("input", input)
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"autocomplete/json?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Add("User-Agent", c.userAgent)
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("places autocomplete: %s: %s", res.Status, strings.TrimSpace(string(b)))
	}
	var body autocompleteResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("places autocomplete: decoding response: %w", err)
	}
	switch body.Status {
	case StatusOK:
		return body.Predictions, nil
	case StatusZeroResults:
		return []Prediction{}, nil
	default:
		return nil, fmt.Errorf("places autocomplete: status %s: %s", body.Status, body.ErrorMessage)
	}
}
