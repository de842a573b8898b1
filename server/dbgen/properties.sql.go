package dbgen

import (
	"context"

	"github.com/brojonat/gestate/server/dbgen/jsonb"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const propertyColumns = `id, slug, title, description, listing_type, status, price, bedrooms,
	bathrooms, area_sqft, address, city, state, zipcode, latitude, longitude, building_id,
	mls_id, listed_by, listing_office, features, images, featured, created_at, updated_at`

func scanProperty(row pgx.Row) (Property, error) {
	var i Property
	err := row.Scan(
		&i.ID,
		&i.Slug,
		&i.Title,
		&i.Description,
		&i.ListingType,
		&i.Status,
		&i.Price,
		&i.Bedrooms,
		&i.Bathrooms,
		&i.AreaSqft,
		&i.Address,
		&i.City,
		&i.State,
		&i.Zipcode,
		&i.Latitude,
		&i.Longitude,
		&i.BuildingID,
		&i.MLSID,
		&i.ListedBy,
		&i.ListingOffice,
		&i.Features,
		&i.Images,
		&i.Featured,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectProperties(rows pgx.Rows, err error) ([]Property, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Property{}
	for rows.Next() {
		i, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type CreatePropertyParams struct {
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
}

func (p CreatePropertyParams) args() []interface{} {
	return []interface{}{
		p.Slug,
		p.Title,
		p.Description,
		p.ListingType,
		p.Status,
		p.Price,
		p.Bedrooms,
		p.Bathrooms,
		p.AreaSqft,
		p.Address,
		p.City,
		p.State,
		p.Zipcode,
		p.Latitude,
		p.Longitude,
		p.BuildingID,
		p.MLSID,
		p.ListedBy,
		p.ListingOffice,
		p.Features,
		p.Images,
		p.Featured,
	}
}

const createProperty = `-- name: CreateProperty :one
INSERT INTO properties (
	slug, title, description, listing_type, status, price, bedrooms, bathrooms,
	area_sqft, address, city, state, zipcode, latitude, longitude, building_id,
	mls_id, listed_by, listing_office, features, images, featured
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
	$19, $20, $21, $22
)
RETURNING ` + propertyColumns

func (q *Queries) CreateProperty(ctx context.Context, arg CreatePropertyParams) (Property, error) {
	return scanProperty(q.db.QueryRow(ctx, createProperty, arg.args()...))
}

const upsertPropertyBySlug = `-- name: UpsertPropertyBySlug :one
INSERT INTO properties (
	slug, title, description, listing_type, status, price, bedrooms, bathrooms,
	area_sqft, address, city, state, zipcode, latitude, longitude, building_id,
	mls_id, listed_by, listing_office, features, images, featured
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
	$19, $20, $21, $22
)
ON CONFLICT (slug) DO UPDATE SET
	title = EXCLUDED.title,
	description = EXCLUDED.description,
	listing_type = EXCLUDED.listing_type,
	status = EXCLUDED.status,
	price = EXCLUDED.price,
	bedrooms = EXCLUDED.bedrooms,
	bathrooms = EXCLUDED.bathrooms,
	area_sqft = EXCLUDED.area_sqft,
	address = EXCLUDED.address,
	city = EXCLUDED.city,
	state = EXCLUDED.state,
	zipcode = EXCLUDED.zipcode,
	latitude = EXCLUDED.latitude,
	longitude = EXCLUDED.longitude,
	building_id = EXCLUDED.building_id,
	features = EXCLUDED.features,
	images = EXCLUDED.images,
	featured = EXCLUDED.featured,
	updated_at = now()
RETURNING ` + propertyColumns

func (q *Queries) UpsertPropertyBySlug(ctx context.Context, arg CreatePropertyParams) (Property, error) {
	return scanProperty(q.db.QueryRow(ctx, upsertPropertyBySlug, arg.args()...))
}

// MLS listings keep their slug and featured flag on update; those are curated
// by site admins rather than the feed.
const upsertPropertyByMLSID = `-- name: UpsertPropertyByMLSID :one
INSERT INTO properties (
	slug, title, description, listing_type, status, price, bedrooms, bathrooms,
	area_sqft, address, city, state, zipcode, latitude, longitude, building_id,
	mls_id, listed_by, listing_office, features, images, featured
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
	$19, $20, $21, $22
)
ON CONFLICT (mls_id) DO UPDATE SET
	title = EXCLUDED.title,
	description = EXCLUDED.description,
	listing_type = EXCLUDED.listing_type,
	status = EXCLUDED.status,
	price = EXCLUDED.price,
	bedrooms = EXCLUDED.bedrooms,
	bathrooms = EXCLUDED.bathrooms,
	area_sqft = EXCLUDED.area_sqft,
	address = EXCLUDED.address,
	city = EXCLUDED.city,
	state = EXCLUDED.state,
	zipcode = EXCLUDED.zipcode,
	latitude = EXCLUDED.latitude,
	longitude = EXCLUDED.longitude,
	listed_by = EXCLUDED.listed_by,
	listing_office = EXCLUDED.listing_office,
	features = EXCLUDED.features,
	images = EXCLUDED.images,
	updated_at = now()
RETURNING ` + propertyColumns

func (q *Queries) UpsertPropertyByMLSID(ctx context.Context, arg CreatePropertyParams) (Property, error) {
	return scanProperty(q.db.QueryRow(ctx, upsertPropertyByMLSID, arg.args()...))
}

const getProperty = `-- name: GetProperty :one
SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

func (q *Queries) GetProperty(ctx context.Context, id int64) (Property, error) {
	return scanProperty(q.db.QueryRow(ctx, getProperty, id))
}

const getPropertyBySlug = `-- name: GetPropertyBySlug :one
SELECT ` + propertyColumns + ` FROM properties WHERE slug = $1`

func (q *Queries) GetPropertyBySlug(ctx context.Context, slug string) (Property, error) {
	return scanProperty(q.db.QueryRow(ctx, getPropertyBySlug, slug))
}

type ListPropertiesParams struct {
	City         string
	ListingType  string
	Status       string
	MinPrice     int64
	MaxPrice     int64
	MinBedrooms  int32
	FeaturedOnly bool
	BuildingID   int64
	Limit        int32
	Offset       int32
	// InBounds restricts results to the MinLng..MaxLng, MinLat..MaxLat box.
	InBounds bool
	MinLng   float64
	MinLat   float64
	MaxLng   float64
	MaxLat   float64
}

const listProperties = `-- name: ListProperties :many
SELECT ` + propertyColumns + ` FROM properties
WHERE ($1::text = '' OR lower(city) = lower($1))
	AND ($2::text = '' OR listing_type = $2)
	AND ($3::text = '' OR status = $3)
	AND ($4::bigint = 0 OR price >= $4)
	AND ($5::bigint = 0 OR price <= $5)
	AND bedrooms >= $6
	AND (NOT $7::boolean OR featured)
	AND ($8::bigint = 0 OR building_id = $8)
	AND ($11::boolean IS FALSE OR (longitude BETWEEN $12 AND $14 AND latitude BETWEEN $13 AND $15))
ORDER BY featured DESC, created_at DESC
LIMIT $9 OFFSET $10`

func (q *Queries) ListProperties(ctx context.Context, arg ListPropertiesParams) ([]Property, error) {
	return collectProperties(q.db.Query(ctx, listProperties,
		arg.City,
		arg.ListingType,
		arg.Status,
		arg.MinPrice,
		arg.MaxPrice,
		arg.MinBedrooms,
		arg.FeaturedOnly,
		arg.BuildingID,
		arg.Limit,
		arg.Offset,
		arg.InBounds,
		arg.MinLng,
		arg.MinLat,
		arg.MaxLng,
		arg.MaxLat,
	))
}

type UpdatePropertyParams struct {
	ID int64 `json:"id"`
	CreatePropertyParams
}

const updateProperty = `-- name: UpdateProperty :one
UPDATE properties SET
	slug = $2, title = $3, description = $4, listing_type = $5, status = $6,
	price = $7, bedrooms = $8, bathrooms = $9, area_sqft = $10, address = $11,
	city = $12, state = $13, zipcode = $14, latitude = $15, longitude = $16,
	building_id = $17, mls_id = $18, listed_by = $19, listing_office = $20,
	features = $21, images = $22, featured = $23, updated_at = now()
WHERE id = $1
RETURNING ` + propertyColumns

func (q *Queries) UpdateProperty(ctx context.Context, arg UpdatePropertyParams) (Property, error) {
	args := append([]interface{}{arg.ID}, arg.CreatePropertyParams.args()...)
	return scanProperty(q.db.QueryRow(ctx, updateProperty, args...))
}

const deleteProperty = `-- name: DeleteProperty :exec
DELETE FROM properties WHERE id = $1`

func (q *Queries) DeleteProperty(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteProperty, id)
	return err
}

const listPropertyPrices = `-- name: ListPropertyPrices :many
SELECT price FROM properties
WHERE ($1::text = '' OR lower(city) = lower($1))
	AND ($2::text = '' OR listing_type = $2)
	AND status = 'active'`

func (q *Queries) ListPropertyPrices(ctx context.Context, city, listingType string) ([]int64, error) {
	rows, err := q.db.Query(ctx, listPropertyPrices, city, listingType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []int64{}
	for rows.Next() {
		var price int64
		if err := rows.Scan(&price); err != nil {
			return nil, err
		}
		items = append(items, price)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listCitySuggestions = `-- name: ListCitySuggestions :many
SELECT city, state, count(*) AS listings FROM properties
WHERE city ILIKE replace(replace(replace($1, '\', '\\'), '%', '\%'), '_', '\_') || '%'
	AND status = 'active'
GROUP BY city, state
ORDER BY listings DESC, city
LIMIT $2`

func (q *Queries) ListCitySuggestions(ctx context.Context, prefix string, limit int32) ([]CitySuggestion, error) {
	rows, err := q.db.Query(ctx, listCitySuggestions, prefix, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CitySuggestion{}
	for rows.Next() {
		var i CitySuggestion
		if err := rows.Scan(&i.City, &i.State, &i.Listings); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listPropertyAmenities = `-- name: ListPropertyAmenities :many
SELECT a.id, a.name, a.icon_id FROM amenities a
JOIN property_amenities pa ON pa.amenity_id = a.id
WHERE pa.property_id = $1
ORDER BY a.name`

func (q *Queries) ListPropertyAmenities(ctx context.Context, propertyID int64) ([]Amenity, error) {
	return collectAmenities(q.db.Query(ctx, listPropertyAmenities, propertyID))
}

const deletePropertyAmenities = `-- name: DeletePropertyAmenities :exec
DELETE FROM property_amenities WHERE property_id = $1`

func (q *Queries) DeletePropertyAmenities(ctx context.Context, propertyID int64) error {
	_, err := q.db.Exec(ctx, deletePropertyAmenities, propertyID)
	return err
}

const addPropertyAmenity = `-- name: AddPropertyAmenity :exec
INSERT INTO property_amenities (property_id, amenity_id) VALUES ($1, $2)
ON CONFLICT DO NOTHING`

func (q *Queries) AddPropertyAmenity(ctx context.Context, propertyID, amenityID int64) error {
	_, err := q.db.Exec(ctx, addPropertyAmenity, propertyID, amenityID)
	return err
}
