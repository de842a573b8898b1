package server

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/brojonat/gestate/content"
	"github.com/brojonat/gestate/search"
	"github.com/brojonat/gestate/server/dbgen"
	"github.com/brojonat/gestate/server/dbgen/jsonb"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

const (
	excerptLength     = 200
	minContactMessage = 10
	maxContactMessage = 5000
)

func int8Ptr(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *v, Valid: true}
}

func textPtr(v *string) pgtype.Text {
	if v == nil || strings.TrimSpace(*v) == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: strings.TrimSpace(*v), Valid: true}
}

func validCoords(fe FieldErrors, lat, lng float64) {
	if lat < -90 || lat > 90 {
		fe.add("latitude", "must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		fe.add("longitude", "must be between -180 and 180")
	}
}

// PropertyBody is the create/update payload for a property; the MLS worker
// sends the same shape.
type PropertyBody struct {
	Slug          string         `json:"slug"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	ListingType   string         `json:"listing_type"`
	Status        string         `json:"status"`
	Price         int64          `json:"price"`
	Bedrooms      int32          `json:"bedrooms"`
	Bathrooms     float64        `json:"bathrooms"`
	AreaSqft      int32          `json:"area_sqft"`
	Address       string         `json:"address"`
	City          string         `json:"city"`
	State         string         `json:"state"`
	Zipcode       string         `json:"zipcode"`
	Latitude      float64        `json:"latitude"`
	Longitude     float64        `json:"longitude"`
	BuildingID    *int64         `json:"building_id,omitempty"`
	MLSID         *string        `json:"mls_id,omitempty"`
	ListedBy      string         `json:"listed_by"`
	ListingOffice string         `json:"listing_office"`
	Features      jsonb.Features `json:"features"`
	Images        jsonb.Images   `json:"images"`
	Featured      bool           `json:"featured"`
}

// normalize fills defaults and reports every invalid field.
func (b *PropertyBody) normalize() FieldErrors {
	fe := FieldErrors{}
	b.Title = strings.TrimSpace(b.Title)
	b.Address = strings.TrimSpace(b.Address)
	b.City = strings.TrimSpace(b.City)
	b.State = strings.TrimSpace(b.State)
	if b.Slug == "" {
		b.Slug = b.Title
	}
	b.Slug = content.Slugify(b.Slug)
	if b.Status == "" {
		b.Status = ListingStatusActive
	}
	if b.Features == nil {
		b.Features = jsonb.Features{}
	}
	if b.Images == nil {
		b.Images = jsonb.Images{}
	}

	if b.Title == "" {
		fe.add("title", "is required")
	}
	if b.Slug == "" {
		fe.add("slug", "must contain letters or digits")
	}
	if !isValidListingType(b.ListingType) {
		fe.add("listing_type", fmt.Sprintf("must be one of %s", strings.Join(getValidListingTypes(), ", ")))
	}
	if !isValidStatus(b.Status) {
		fe.add("status", fmt.Sprintf("must be one of %s", strings.Join(getValidStatuses(), ", ")))
	}
	if b.Price < 0 {
		fe.add("price", "must not be negative")
	}
	if b.Bedrooms < 0 {
		fe.add("bedrooms", "must not be negative")
	}
	if b.Bathrooms < 0 {
		fe.add("bathrooms", "must not be negative")
	}
	if b.AreaSqft < 0 {
		fe.add("area_sqft", "must not be negative")
	}
	if b.Address == "" {
		fe.add("address", "is required")
	}
	if b.City == "" {
		fe.add("city", "is required")
	}
	if b.State == "" {
		fe.add("state", "is required")
	}
	validCoords(fe, b.Latitude, b.Longitude)
	for i, img := range b.Images {
		if !govalidator.IsURL(img.URL) && !strings.HasPrefix(img.URL, "media/") {
			fe.add(fmt.Sprintf("images[%d].url", i), "must be a url or a media key")
		}
	}
	return fe
}

func (b PropertyBody) params() dbgen.CreatePropertyParams {
	return dbgen.CreatePropertyParams{
		Slug:          b.Slug,
		Title:         b.Title,
		Description:   b.Description,
		ListingType:   b.ListingType,
		Status:        b.Status,
		Price:         b.Price,
		Bedrooms:      b.Bedrooms,
		Bathrooms:     b.Bathrooms,
		AreaSqft:      b.AreaSqft,
		Address:       b.Address,
		City:          b.City,
		State:         b.State,
		Zipcode:       b.Zipcode,
		Latitude:      b.Latitude,
		Longitude:     b.Longitude,
		BuildingID:    int8Ptr(b.BuildingID),
		MLSID:         textPtr(b.MLSID),
		ListedBy:      b.ListedBy,
		ListingOffice: b.ListingOffice,
		Features:      b.Features,
		Images:        b.Images,
		Featured:      b.Featured,
	}
}

// encodeLocation renders a lat/lng pair as a GeoJSON point.
func encodeLocation(lat, lng float64) *geojson.Geometry {
	g, err := geojson.Encode(geom.NewPointFlat(geom.XY, []float64{lng, lat}))
	if err != nil {
		return nil
	}
	return g
}

type PropertyResponse struct {
	dbgen.Property
	Location  *geojson.Geometry `json:"location"`
	Amenities []dbgen.Amenity   `json:"amenities,omitempty"`
}

func newPropertyResponse(p dbgen.Property) PropertyResponse {
	return PropertyResponse{Property: p, Location: encodeLocation(p.Latitude, p.Longitude)}
}

func newPropertyResponses(ps []dbgen.Property) []PropertyResponse {
	res := make([]PropertyResponse, 0, len(ps))
	for _, p := range ps {
		res = append(res, newPropertyResponse(p))
	}
	return res
}

type UpsertMLSBody struct {
	Properties []PropertyBody `json:"properties"`
}

type UpsertMLSResponse struct {
	Upserted int                    `json:"upserted"`
	Rejected map[string]FieldErrors `json:"rejected,omitempty"`
}

type AmenitySetBody struct {
	AmenityIDs []int64 `json:"amenity_ids"`
}

type BuildingBody struct {
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Address     string         `json:"address"`
	City        string         `json:"city"`
	State       string         `json:"state"`
	Zipcode     string         `json:"zipcode"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	Floors      int32          `json:"floors"`
	YearBuilt   int32          `json:"year_built"`
	Features    jsonb.Features `json:"features"`
	Images      jsonb.Images   `json:"images"`
}

func (b *BuildingBody) normalize() FieldErrors {
	fe := FieldErrors{}
	b.Name = strings.TrimSpace(b.Name)
	if b.Slug == "" {
		b.Slug = b.Name
	}
	b.Slug = content.Slugify(b.Slug)
	if b.Features == nil {
		b.Features = jsonb.Features{}
	}
	if b.Images == nil {
		b.Images = jsonb.Images{}
	}
	if b.Name == "" {
		fe.add("name", "is required")
	}
	if b.Slug == "" {
		fe.add("slug", "must contain letters or digits")
	}
	if strings.TrimSpace(b.Address) == "" {
		fe.add("address", "is required")
	}
	if strings.TrimSpace(b.City) == "" {
		fe.add("city", "is required")
	}
	if strings.TrimSpace(b.State) == "" {
		fe.add("state", "is required")
	}
	if b.Floors < 0 {
		fe.add("floors", "must not be negative")
	}
	if b.YearBuilt < 0 || b.YearBuilt > int32(time.Now().Year()+5) {
		fe.add("year_built", "is out of range")
	}
	validCoords(fe, b.Latitude, b.Longitude)
	return fe
}

func (b BuildingBody) params() dbgen.CreateBuildingParams {
	return dbgen.CreateBuildingParams{
		Slug:        b.Slug,
		Name:        b.Name,
		Description: b.Description,
		Address:     strings.TrimSpace(b.Address),
		City:        strings.TrimSpace(b.City),
		State:       strings.TrimSpace(b.State),
		Zipcode:     b.Zipcode,
		Latitude:    b.Latitude,
		Longitude:   b.Longitude,
		Floors:      b.Floors,
		YearBuilt:   b.YearBuilt,
		Features:    b.Features,
		Images:      b.Images,
	}
}

type BuildingResponse struct {
	dbgen.Building
	Location  *geojson.Geometry `json:"location"`
	Amenities []dbgen.Amenity   `json:"amenities,omitempty"`
}

type AmenityBody struct {
	Name   string `json:"name"`
	IconID *int64 `json:"icon_id,omitempty"`
}

func (b *AmenityBody) normalize() FieldErrors {
	fe := FieldErrors{}
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		fe.add("name", "is required")
	}
	return fe
}

type BlogCategoryBody struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (b *BlogCategoryBody) normalize() FieldErrors {
	fe := FieldErrors{}
	b.Name = strings.TrimSpace(b.Name)
	if b.Slug == "" {
		b.Slug = b.Name
	}
	b.Slug = content.Slugify(b.Slug)
	if b.Name == "" {
		fe.add("name", "is required")
	}
	if b.Slug == "" {
		fe.add("slug", "must contain letters or digits")
	}
	return fe
}

type BlogPostBody struct {
	CategoryID   *int64 `json:"category_id,omitempty"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Excerpt      string `json:"excerpt"`
	BodyMarkdown string `json:"body_markdown"`
	CoverImage   string `json:"cover_image"`
	Published    bool   `json:"published"`
}

func (b *BlogPostBody) normalize() FieldErrors {
	fe := FieldErrors{}
	b.Title = strings.TrimSpace(b.Title)
	if b.Slug == "" {
		b.Slug = b.Title
	}
	b.Slug = content.Slugify(b.Slug)
	if b.Title == "" {
		fe.add("title", "is required")
	}
	if b.Slug == "" {
		fe.add("slug", "must contain letters or digits")
	}
	if b.Published && strings.TrimSpace(b.BodyMarkdown) == "" {
		fe.add("body_markdown", "is required to publish")
	}
	return fe
}

// params renders the markdown body; the excerpt is derived from it when the
// author didn't write one.
func (b BlogPostBody) params() (dbgen.CreateBlogPostParams, error) {
	html, err := content.RenderMarkdown(b.BodyMarkdown)
	if err != nil {
		return dbgen.CreateBlogPostParams{}, fmt.Errorf("could not render markdown: %w", err)
	}
	excerpt := strings.TrimSpace(b.Excerpt)
	if excerpt == "" {
		excerpt = content.Excerpt(b.BodyMarkdown, excerptLength)
	}
	return dbgen.CreateBlogPostParams{
		CategoryID:   int8Ptr(b.CategoryID),
		Title:        b.Title,
		Slug:         b.Slug,
		Excerpt:      excerpt,
		BodyMarkdown: b.BodyMarkdown,
		BodyHTML:     html,
		CoverImage:   b.CoverImage,
		Published:    b.Published,
	}, nil
}

type WebsiteBody struct {
	Name         string            `json:"name"`
	Domain       string            `json:"domain"`
	BrandColors  jsonb.BrandColors `json:"brand_colors"`
	Logo         string            `json:"logo"`
	ContactEmail string            `json:"contact_email"`
	Phone        string            `json:"phone"`
	Socials      jsonb.Socials     `json:"socials"`
}

func (b *WebsiteBody) normalize() FieldErrors {
	fe := FieldErrors{}
	b.Name = strings.TrimSpace(b.Name)
	b.Domain = strings.ToLower(strings.TrimSpace(b.Domain))
	if b.Name == "" {
		fe.add("name", "is required")
	}
	if !govalidator.IsDNSName(b.Domain) {
		fe.add("domain", "must be a valid domain name")
	}
	if b.ContactEmail != "" && !govalidator.IsEmail(b.ContactEmail) {
		fe.add("contact_email", "must be a valid email address")
	}
	for name, c := range map[string]string{
		"brand_colors.primary":   b.BrandColors.Primary,
		"brand_colors.secondary": b.BrandColors.Secondary,
		"brand_colors.accent":    b.BrandColors.Accent,
	} {
		if c != "" && !govalidator.IsHexcolor(c) {
			fe.add(name, "must be a hex color")
		}
	}
	return fe
}

func (b WebsiteBody) params() dbgen.CreateWebsiteParams {
	return dbgen.CreateWebsiteParams{
		Name:         b.Name,
		Domain:       b.Domain,
		BrandColors:  b.BrandColors,
		Logo:         b.Logo,
		ContactEmail: b.ContactEmail,
		Phone:        b.Phone,
		Socials:      b.Socials,
	}
}

type WebsitePageBody struct {
	WebsiteID int64          `json:"website_id"`
	Slug      string         `json:"slug"`
	Title     string         `json:"title"`
	Sections  jsonb.Sections `json:"sections"`
	Published bool           `json:"published"`
}

func (b *WebsitePageBody) normalize() FieldErrors {
	fe := FieldErrors{}
	b.Title = strings.TrimSpace(b.Title)
	if b.Slug == "" {
		b.Slug = b.Title
	}
	b.Slug = content.Slugify(b.Slug)
	if b.Sections == nil {
		b.Sections = jsonb.Sections{}
	}
	if b.WebsiteID <= 0 {
		fe.add("website_id", "is required")
	}
	if b.Title == "" {
		fe.add("title", "is required")
	}
	if b.Slug == "" {
		fe.add("slug", "must contain letters or digits")
	}
	for i, s := range b.Sections {
		if strings.TrimSpace(s.Type) == "" {
			fe.add(fmt.Sprintf("sections[%d].type", i), "is required")
		}
	}
	return fe
}

func (b WebsitePageBody) params() dbgen.CreateWebsitePageParams {
	return dbgen.CreateWebsitePageParams{
		WebsiteID: b.WebsiteID,
		Slug:      b.Slug,
		Title:     b.Title,
		Sections:  b.Sections,
		Published: b.Published,
	}
}

// PageResponse is everything the front end needs to render a public page.
type PageResponse struct {
	Website            dbgen.Website      `json:"website"`
	Page               dbgen.WebsitePage  `json:"page"`
	FeaturedProperties []PropertyResponse `json:"featured_properties"`
}

type SettingBody struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

func (b *SettingBody) normalize() FieldErrors {
	fe := FieldErrors{}
	b.Key = strings.TrimSpace(b.Key)
	if b.Key == "" {
		fe.add("key", "is required")
	}
	if len(b.Value) == 0 || !json.Valid(b.Value) {
		fe.add("value", "must be valid JSON")
	}
	return fe
}

const (
	MLSSettingsKey      = "mls"
	defaultPollInterval = 15 * time.Minute
	minPollInterval     = time.Minute
)

// MLSSettings is the typed view of the "mls" setting. The feed API key is
// never part of it.
type MLSSettings struct {
	Enabled      bool       `json:"enabled"`
	FeedURL      string     `json:"feed_url"`
	RegionID     string     `json:"region_id"`
	PollInterval string     `json:"poll_interval"`
	LastSyncAt   *time.Time `json:"last_sync_at,omitempty"`
}

// MLSSyncBody records a completed feed sync without touching the rest of
// the MLS settings.
type MLSSyncBody struct {
	LastSyncAt time.Time `json:"last_sync_at"`
}

func (b *MLSSyncBody) normalize() FieldErrors {
	fe := FieldErrors{}
	if b.LastSyncAt.IsZero() {
		fe.add("last_sync_at", "is required")
	}
	b.LastSyncAt = b.LastSyncAt.UTC()
	return fe
}

// Interval returns the parsed poll interval, falling back to the default.
func (s MLSSettings) Interval() time.Duration {
	d, err := time.ParseDuration(s.PollInterval)
	if err != nil || d < minPollInterval {
		return defaultPollInterval
	}
	return d
}

func (s *MLSSettings) normalize() FieldErrors {
	fe := FieldErrors{}
	s.FeedURL = strings.TrimSpace(s.FeedURL)
	if s.PollInterval == "" {
		s.PollInterval = defaultPollInterval.String()
	}
	if d, err := time.ParseDuration(s.PollInterval); err != nil {
		fe.add("poll_interval", "must be a duration like 15m")
	} else if d < minPollInterval {
		fe.add("poll_interval", "must be at least "+minPollInterval.String())
	}
	if s.FeedURL != "" && !govalidator.IsURL(s.FeedURL) {
		fe.add("feed_url", "must be a url")
	}
	if s.Enabled && s.RegionID == "" {
		fe.add("region_id", "is required when enabled")
	}
	return fe
}

type FavoriteResponse struct {
	Properties []PropertyResponse `json:"properties"`
}

type ContactBody struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
	PropertyID *int64 `json:"property_id,omitempty"`
}

func (b *ContactBody) normalize() FieldErrors {
	fe := FieldErrors{}
	b.Name = strings.TrimSpace(b.Name)
	b.Email = strings.TrimSpace(b.Email)
	b.Phone = strings.TrimSpace(b.Phone)
	b.Message = strings.TrimSpace(b.Message)
	if b.Name == "" {
		fe.add("name", "is required")
	}
	if b.Email == "" {
		fe.add("email", "is required")
	} else if !govalidator.IsEmail(b.Email) {
		fe.add("email", "must be a valid email address")
	}
	if b.Phone != "" && !isPhone(b.Phone) {
		fe.add("phone", "must be a valid phone number")
	}
	n := len([]rune(b.Message))
	if n < minContactMessage {
		fe.add("message", "must be at least "+strconv.Itoa(minContactMessage)+" characters")
	} else if n > maxContactMessage {
		fe.add("message", "must be at most "+strconv.Itoa(maxContactMessage)+" characters")
	}
	if b.PropertyID != nil && *b.PropertyID <= 0 {
		fe.add("property_id", "must be positive")
	}
	return fe
}

// isPhone accepts digits with the usual separators and between 7 and 15
// digits in total.
func isPhone(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case strings.ContainsRune("+-(). ", r):
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}

type SuggestionsResponse struct {
	Query       string              `json:"query"`
	Suggestions []search.Suggestion `json:"suggestions"`
}

type PriceBin struct {
	Min   int64 `json:"min"`
	Max   int64 `json:"max"`
	Count int   `json:"count"`
}

type PriceHistogramResponse struct {
	Floor   int64      `json:"floor"`
	Ceiling int64      `json:"ceiling"`
	Step    int64      `json:"step"`
	Bins    []PriceBin `json:"bins"`
}

type UploadResponse struct {
	Key         string `json:"key"`
	Kind        string `json:"kind"`
	ContentType string `json:"content_type"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}
