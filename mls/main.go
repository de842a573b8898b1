package mls

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"golang.org/x/net/publicsuffix"
)

type Client interface {
	// feed requests
	Listings(ctx context.Context, params map[string]string) ([]byte, error)
	Listing(ctx context.Context, mlsID string, params map[string]string) ([]byte, error)

	// media requests
	Photos(ctx context.Context, mlsID string, params map[string]string) ([]byte, error)
}

type client struct {
	baseURL   string
	apiKey    string
	userAgent string
	hc        *http.Client
}

// NewClient returns a feed client. Most feeds hand out a session cookie on
// the first request, so the default http client carries a cookie jar.
func NewClient(baseURL, apiKey, userAgent string, hc *http.Client) (Client, error) {
	if hc == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, err
		}
		hc = &http.Client{Jar: jar}
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &client{baseURL: baseURL, apiKey: apiKey, userAgent: userAgent, hc: hc}, nil
}

// some feeds prefix JSON with an anti-hijacking guard
var jsonGuards = [][]byte{[]byte("{}&&"), []byte(")]}'\n"), []byte("{}&")}

func stripGuard(b []byte) []byte {
	for _, g := range jsonGuards {
		if bytes.HasPrefix(b, g) {
			return b[len(g):]
		}
	}
	return b
}

func (c *client) doRequest(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Add("User-Agent", c.userAgent)
	req.Header.Add("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Add("Authorization", "Bearer "+c.apiKey)
	}
	q := req.URL.Query()
	for k, v := range params {
		q.Add(k, v)
	}
	req.URL.RawQuery = q.Encode()
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mls request %s: %s", path, res.Status)
	}
	var r Response
	if err := json.Unmarshal(stripGuard(b), &r); err != nil {
		return nil, fmt.Errorf("mls request %s: decoding envelope: %w", path, err)
	}
	if r.ResultCode != 0 {
		return nil, fmt.Errorf("mls request %s: result code %d: %s", path, r.ResultCode, r.ErrorMessage)
	}
	return r.Payload, nil
}

func (c *client) Listings(ctx context.Context, params map[string]string) ([]byte, error) {
	return c.doRequest(ctx, "listings", params)
}

func (c *client) Listing(ctx context.Context, mlsID string, params map[string]string) ([]byte, error) {
	return c.doRequest(ctx, "listings/"+mlsID, params)
}

func (c *client) Photos(ctx context.Context, mlsID string, params map[string]string) ([]byte, error) {
	return c.doRequest(ctx, "listings/"+mlsID+"/photos", params)
}
