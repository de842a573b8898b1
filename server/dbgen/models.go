package dbgen

import (
	"encoding/json"
	"time"

	"github.com/brojonat/gestate/server/dbgen/jsonb"
	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type Property struct {
	ID            int64          `json:"id"`
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
	BuildingID    pgtype.Int8    `json:"building_id"`
	MLSID         pgtype.Text    `json:"mls_id"`
	ListedBy      string         `json:"listed_by"`
	ListingOffice string         `json:"listing_office"`
	Features      jsonb.Features `json:"features"`
	Images        jsonb.Images   `json:"images"`
	Featured      bool           `json:"featured"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type Building struct {
	ID          int64          `json:"id"`
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
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type Amenity struct {
	ID     int64       `json:"id"`
	Name   string      `json:"name"`
	IconID pgtype.Int8 `json:"icon_id"`
}

type Icon struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	SVG  string `json:"svg"`
}

type BlogCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type BlogPost struct {
	ID           int64              `json:"id"`
	CategoryID   pgtype.Int8        `json:"category_id"`
	Title        string             `json:"title"`
	Slug         string             `json:"slug"`
	Excerpt      string             `json:"excerpt"`
	BodyMarkdown string             `json:"body_markdown"`
	BodyHTML     string             `json:"body_html"`
	CoverImage   string             `json:"cover_image"`
	Published    bool               `json:"published"`
	PublishedAt  pgtype.Timestamptz `json:"published_at"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type Website struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Domain       string            `json:"domain"`
	BrandColors  jsonb.BrandColors `json:"brand_colors"`
	Logo         string            `json:"logo"`
	ContactEmail string            `json:"contact_email"`
	Phone        string            `json:"phone"`
	Socials      jsonb.Socials     `json:"socials"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type WebsitePage struct {
	ID        int64          `json:"id"`
	WebsiteID int64          `json:"website_id"`
	Slug      string         `json:"slug"`
	Title     string         `json:"title"`
	Sections  jsonb.Sections `json:"sections"`
	Published bool           `json:"published"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type Setting struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Favorite struct {
	UserID     int64     `json:"user_id"`
	PropertyID int64     `json:"property_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type ContactMessage struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	Message    string      `json:"message"`
	PropertyID pgtype.Int8 `json:"property_id"`
	CreatedAt  time.Time   `json:"created_at"`
}

type CitySuggestion struct {
	City     string `json:"city"`
	State    string `json:"state"`
	Listings int64  `json:"listings"`
}
