package dbgen

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

func collectAmenities(rows pgx.Rows, err error) ([]Amenity, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Amenity{}
	for rows.Next() {
		var i Amenity
		if err := rows.Scan(&i.ID, &i.Name, &i.IconID); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createAmenity = `-- name: CreateAmenity :one
INSERT INTO amenities (name, icon_id) VALUES ($1, $2)
RETURNING id, name, icon_id`

func (q *Queries) CreateAmenity(ctx context.Context, name string, iconID pgtype.Int8) (Amenity, error) {
	row := q.db.QueryRow(ctx, createAmenity, name, iconID)
	var i Amenity
	err := row.Scan(&i.ID, &i.Name, &i.IconID)
	return i, err
}

const upsertAmenity = `-- name: UpsertAmenity :one
INSERT INTO amenities (name, icon_id) VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET icon_id = EXCLUDED.icon_id
RETURNING id, name, icon_id`

func (q *Queries) UpsertAmenity(ctx context.Context, name string, iconID pgtype.Int8) (Amenity, error) {
	row := q.db.QueryRow(ctx, upsertAmenity, name, iconID)
	var i Amenity
	err := row.Scan(&i.ID, &i.Name, &i.IconID)
	return i, err
}

const getAmenity = `-- name: GetAmenity :one
SELECT id, name, icon_id FROM amenities WHERE id = $1`

func (q *Queries) GetAmenity(ctx context.Context, id int64) (Amenity, error) {
	row := q.db.QueryRow(ctx, getAmenity, id)
	var i Amenity
	err := row.Scan(&i.ID, &i.Name, &i.IconID)
	return i, err
}

const listAmenities = `-- name: ListAmenities :many
SELECT id, name, icon_id FROM amenities ORDER BY name`

func (q *Queries) ListAmenities(ctx context.Context) ([]Amenity, error) {
	return collectAmenities(q.db.Query(ctx, listAmenities))
}

const updateAmenity = `-- name: UpdateAmenity :one
UPDATE amenities SET name = $2, icon_id = $3 WHERE id = $1
RETURNING id, name, icon_id`

func (q *Queries) UpdateAmenity(ctx context.Context, id int64, name string, iconID pgtype.Int8) (Amenity, error) {
	row := q.db.QueryRow(ctx, updateAmenity, id, name, iconID)
	var i Amenity
	err := row.Scan(&i.ID, &i.Name, &i.IconID)
	return i, err
}

const deleteAmenity = `-- name: DeleteAmenity :exec
DELETE FROM amenities WHERE id = $1`

func (q *Queries) DeleteAmenity(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteAmenity, id)
	return err
}

const createIcon = `-- name: CreateIcon :one
INSERT INTO icons (name, svg) VALUES ($1, $2)
RETURNING id, name, svg`

func (q *Queries) CreateIcon(ctx context.Context, name, svg string) (Icon, error) {
	row := q.db.QueryRow(ctx, createIcon, name, svg)
	var i Icon
	err := row.Scan(&i.ID, &i.Name, &i.SVG)
	return i, err
}

const upsertIcon = `-- name: UpsertIcon :one
INSERT INTO icons (name, svg) VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET svg = EXCLUDED.svg
RETURNING id, name, svg`

func (q *Queries) UpsertIcon(ctx context.Context, name, svg string) (Icon, error) {
	row := q.db.QueryRow(ctx, upsertIcon, name, svg)
	var i Icon
	err := row.Scan(&i.ID, &i.Name, &i.SVG)
	return i, err
}

const getIcon = `-- name: GetIcon :one
SELECT id, name, svg FROM icons WHERE id = $1`

func (q *Queries) GetIcon(ctx context.Context, id int64) (Icon, error) {
	row := q.db.QueryRow(ctx, getIcon, id)
	var i Icon
	err := row.Scan(&i.ID, &i.Name, &i.SVG)
	return i, err
}

const listIcons = `-- name: ListIcons :many
SELECT id, name, svg FROM icons ORDER BY name`

func (q *Queries) ListIcons(ctx context.Context) ([]Icon, error) {
	rows, err := q.db.Query(ctx, listIcons)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Icon{}
	for rows.Next() {
		var i Icon
		if err := rows.Scan(&i.ID, &i.Name, &i.SVG); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteIcon = `-- name: DeleteIcon :exec
DELETE FROM icons WHERE id = $1`

func (q *Queries) DeleteIcon(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteIcon, id)
	return err
}
