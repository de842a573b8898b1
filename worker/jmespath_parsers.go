package worker

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/brojonat/gestate/server"
	"github.com/brojonat/gestate/server/dbgen/jsonb"
	"github.com/jmespath/go-jmespath"
)

// parseListings converts a feed listings payload into property bodies and
// reports how many listings the page held. A listing that can't be read at all
// is skipped; field level problems are left for the server to reject.
func parseListings(b []byte) ([]server.PropertyBody, int, error) {
	var data interface{}
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, 0, fmt.Errorf("error parsing listings payload: %w", err)
	}
	res, err := jmespath.Search("listings", data)
	if err != nil {
		return nil, 0, fmt.Errorf("error searching listings payload: %w", err)
	}
	if res == nil {
		return []server.PropertyBody{}, 0, nil
	}
	listings, ok := res.([]interface{})
	if !ok {
		return nil, 0, fmt.Errorf("unexpected type for listings: %T", res)
	}
	props := []server.PropertyBody{}
	for _, ld := range listings {
		p, err := parseListing(ld)
		if err != nil {
			continue
		}
		props = append(props, p)
	}
	return props, len(listings), nil
}

// parseListingPayload reads the single listing document the feed returns for
// one mls id.
func parseListingPayload(b []byte) (server.PropertyBody, error) {
	var data interface{}
	if err := json.Unmarshal(b, &data); err != nil {
		return server.PropertyBody{}, fmt.Errorf("error parsing listing payload: %w", err)
	}
	return parseListing(data)
}

// parsePhotos reads a photos payload ({"photos": [{"url": ...}]}).
func parsePhotos(b []byte) (jsonb.Images, error) {
	var data interface{}
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("error parsing photos payload: %w", err)
	}
	return jmesImages(data), nil
}

// NOTE: callers pass in a single listing object from the payload
func parseListing(data interface{}) (server.PropertyBody, error) {
	var p server.PropertyBody
	mlsID := jmesString("mlsId", data)
	if mlsID == "" {
		return p, fmt.Errorf("listing has no mlsId")
	}
	p.MLSID = &mlsID

	p.Address = jmesString("address.street", data)
	p.City = jmesString("address.city", data)
	p.State = jmesString("address.state", data)
	p.Zipcode = jmesString("address.zip", data)
	p.Title = p.Address
	if unit := jmesString("address.unit", data); unit != "" {
		p.Title = fmt.Sprintf("%s #%s", p.Address, unit)
	}
	p.Slug = fmt.Sprintf("%s %s", p.Title, mlsID)
	p.Description = jmesString("remarks", data)

	p.ListingType = mapFeedListingType(jmesString("listingType", data))
	p.Status = mapFeedStatus(jmesString("status", data))
	p.Price = int64(math.Round(jmesFloat("price.amount", data)))
	p.Bedrooms = int32(jmesFloat("beds", data))
	p.Bathrooms = jmesFloat("baths", data)
	p.AreaSqft = int32(math.Round(jmesFloat("sqft", data)))
	p.Latitude = jmesFloat("latLong.latitude", data)
	p.Longitude = jmesFloat("latLong.longitude", data)

	p.Features = jsonb.Features{}
	if fs, err := jmespath.Search("features[?type(@) == 'string']", data); err == nil && fs != nil {
		for _, f := range fs.([]interface{}) {
			p.Features = append(p.Features, f.(string))
		}
	}
	p.Images = jmesImages(data)

	if attr := jmesString("attribution", data); attr != "" {
		if name, company, err := parseAttribution(attr); err == nil {
			p.ListedBy, p.ListingOffice = name, company
		}
	}
	return p, nil
}

// parseAttribution splits "Listed by Jane Doe • Lake Realty." into the agent
// name and the company.
func parseAttribution(s string) (string, string, error) {
	parts := strings.Split(s, "•")
	if len(parts) < 2 {
		return "", "", fmt.Errorf("unexpected format for agent/company: `%s`", s)
	}
	name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(parts[0]), "Listed by "))
	company := strings.TrimRight(strings.TrimSpace(parts[1]), " .")
	return name, company, nil
}

func mapFeedStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active", "coming soon", "new":
		return server.ListingStatusActive
	case "pending", "contingent", "under contract":
		return server.ListingStatusPending
	case "sold", "closed", "leased":
		return server.ListingStatusSold
	default:
		return server.ListingStatusOffMarket
	}
}

func mapFeedListingType(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lease", "rent", "rental", "residential lease":
		return server.ListingTypeRent
	default:
		return server.ListingTypeSale
	}
}

// jmesImages collects photos[].url in feed order, skipping blanks.
func jmesImages(data interface{}) jsonb.Images {
	imgs := jsonb.Images{}
	urls, err := jmespath.Search("photos[].url", data)
	if err != nil || urls == nil {
		return imgs
	}
	for i, u := range urls.([]interface{}) {
		s, ok := u.(string)
		if !ok || s == "" {
			continue
		}
		imgs = append(imgs, jsonb.Image{URL: s, SortOrder: i})
	}
	return imgs
}

func jmesString(path string, data interface{}) string {
	res, err := jmespath.Search(path, data)
	if err != nil || res == nil {
		return ""
	}
	s, ok := res.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func jmesFloat(path string, data interface{}) float64 {
	res, err := jmespath.Search(path, data)
	if err != nil || res == nil {
		return 0
	}
	f, ok := res.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
