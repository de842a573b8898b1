package mls

import "encoding/json"

// Response is the envelope every feed endpoint returns; Payload holds the
// endpoint specific document.
type Response struct {
	Version      int             `json:"version"`
	ErrorMessage string          `json:"errorMessage"`
	ResultCode   int             `json:"resultCode"`
	Payload      json.RawMessage `json:"payload"`
}

// Default query parameters for a feed pull. Callers override "region_id",
// "modified_since" and "page" as they page through results.
func DefaultListingParams() map[string]string {
	return map[string]string{
		"status":    "active,pending,sold",
		"page_size": "200",
		"page":      "1",
		"include":   "photos,features,agent",
	}
}
