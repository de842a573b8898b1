package dbgen

import (
	"context"

	"github.com/brojonat/gestate/server/dbgen/jsonb"
	"github.com/jackc/pgx/v5"
)

const buildingColumns = `id, slug, name, description, address, city, state, zipcode,
	latitude, longitude, floors, year_built, features, images, created_at, updated_at`

func scanBuilding(row pgx.Row) (Building, error) {
	var i Building
	err := row.Scan(
		&i.ID,
		&i.Slug,
		&i.Name,
		&i.Description,
		&i.Address,
		&i.City,
		&i.State,
		&i.Zipcode,
		&i.Latitude,
		&i.Longitude,
		&i.Floors,
		&i.YearBuilt,
		&i.Features,
		&i.Images,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

type CreateBuildingParams struct {
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

func (p CreateBuildingParams) args() []interface{} {
	return []interface{}{
		p.Slug,
		p.Name,
		p.Description,
		p.Address,
		p.City,
		p.State,
		p.Zipcode,
		p.Latitude,
		p.Longitude,
		p.Floors,
		p.YearBuilt,
		p.Features,
		p.Images,
	}
}

const createBuilding = `-- name: CreateBuilding :one
INSERT INTO buildings (
	slug, name, description, address, city, state, zipcode, latitude, longitude,
	floors, year_built, features, images
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING ` + buildingColumns

func (q *Queries) CreateBuilding(ctx context.Context, arg CreateBuildingParams) (Building, error) {
	return scanBuilding(q.db.QueryRow(ctx, createBuilding, arg.args()...))
}

const upsertBuilding = `-- name: UpsertBuilding :one
INSERT INTO buildings (
	slug, name, description, address, city, state, zipcode, latitude, longitude,
	floors, year_built, features, images
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (slug) DO UPDATE SET
	name = EXCLUDED.name,
	description = EXCLUDED.description,
	address = EXCLUDED.address,
	city = EXCLUDED.city,
	state = EXCLUDED.state,
	zipcode = EXCLUDED.zipcode,
	latitude = EXCLUDED.latitude,
	longitude = EXCLUDED.longitude,
	floors = EXCLUDED.floors,
	year_built = EXCLUDED.year_built,
	features = EXCLUDED.features,
	images = EXCLUDED.images,
	updated_at = now()
RETURNING ` + buildingColumns

func (q *Queries) UpsertBuilding(ctx context.Context, arg CreateBuildingParams) (Building, error) {
	return scanBuilding(q.db.QueryRow(ctx, upsertBuilding, arg.args()...))
}

const getBuilding = `-- name: GetBuilding :one
SELECT ` + buildingColumns + ` FROM buildings WHERE id = $1`

func (q *Queries) GetBuilding(ctx context.Context, id int64) (Building, error) {
	return scanBuilding(q.db.QueryRow(ctx, getBuilding, id))
}

const getBuildingBySlug = `-- name: GetBuildingBySlug :one
SELECT ` + buildingColumns + ` FROM buildings WHERE slug = $1`

func (q *Queries) GetBuildingBySlug(ctx context.Context, slug string) (Building, error) {
	return scanBuilding(q.db.QueryRow(ctx, getBuildingBySlug, slug))
}

const listBuildings = `-- name: ListBuildings :many
SELECT ` + buildingColumns + ` FROM buildings
WHERE ($1::text = '' OR lower(city) = lower($1))
ORDER BY name
LIMIT $2 OFFSET $3`

func (q *Queries) ListBuildings(ctx context.Context, city string, limit, offset int32) ([]Building, error) {
	rows, err := q.db.Query(ctx, listBuildings, city, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Building{}
	for rows.Next() {
		i, err := scanBuilding(rows)
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

type UpdateBuildingParams struct {
	ID int64 `json:"id"`
	CreateBuildingParams
}

const updateBuilding = `-- name: UpdateBuilding :one
UPDATE buildings SET
	slug = $2, name = $3, description = $4, address = $5, city = $6, state = $7,
	zipcode = $8, latitude = $9, longitude = $10, floors = $11, year_built = $12,
	features = $13, images = $14, updated_at = now()
WHERE id = $1
RETURNING ` + buildingColumns

func (q *Queries) UpdateBuilding(ctx context.Context, arg UpdateBuildingParams) (Building, error) {
	args := append([]interface{}{arg.ID}, arg.CreateBuildingParams.args()...)
	return scanBuilding(q.db.QueryRow(ctx, updateBuilding, args...))
}

const deleteBuilding = `-- name: DeleteBuilding :exec
DELETE FROM buildings WHERE id = $1`

func (q *Queries) DeleteBuilding(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteBuilding, id)
	return err
}

const listBuildingAmenities = `-- name: ListBuildingAmenities :many
SELECT a.id, a.name, a.icon_id FROM amenities a
JOIN building_amenities ba ON ba.amenity_id = a.id
WHERE ba.building_id = $1
ORDER BY a.name`

func (q *Queries) ListBuildingAmenities(ctx context.Context, buildingID int64) ([]Amenity, error) {
	return collectAmenities(q.db.Query(ctx, listBuildingAmenities, buildingID))
}

const deleteBuildingAmenities = `-- name: DeleteBuildingAmenities :exec
DELETE FROM building_amenities WHERE building_id = $1`

func (q *Queries) DeleteBuildingAmenities(ctx context.Context, buildingID int64) error {
	_, err := q.db.Exec(ctx, deleteBuildingAmenities, buildingID)
	return err
}

const addBuildingAmenity = `-- name: AddBuildingAmenity :exec
INSERT INTO building_amenities (building_id, amenity_id) VALUES ($1, $2)
ON CONFLICT DO NOTHING`

func (q *Queries) AddBuildingAmenity(ctx context.Context, buildingID, amenityID int64) error {
	_, err := q.db.Exec(ctx, addBuildingAmenity, buildingID, amenityID)
	return err
}
