package dbgen

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgtype"
)

const upsertUser = `-- name: UpsertUser :one
INSERT INTO users (email) VALUES (lower($1))
ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
RETURNING id, email, name, is_admin, created_at`

func (q *Queries) UpsertUser(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, upsertUser, email)
	var i User
	err := row.Scan(&i.ID, &i.Email, &i.Name, &i.IsAdmin, &i.CreatedAt)
	return i, err
}

const getUserByEmail = `-- name: GetUserByEmail :one
SELECT id, email, name, is_admin, created_at FROM users WHERE email = lower($1)`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var i User
	err := row.Scan(&i.ID, &i.Email, &i.Name, &i.IsAdmin, &i.CreatedAt)
	return i, err
}

const getSetting = `-- name: GetSetting :one
SELECT key, value, updated_at FROM settings WHERE key = $1`

func (q *Queries) GetSetting(ctx context.Context, key string) (Setting, error) {
	row := q.db.QueryRow(ctx, getSetting, key)
	var i Setting
	err := row.Scan(&i.Key, &i.Value, &i.UpdatedAt)
	return i, err
}

const listSettings = `-- name: ListSettings :many
SELECT key, value, updated_at FROM settings ORDER BY key`

func (q *Queries) ListSettings(ctx context.Context) ([]Setting, error) {
	rows, err := q.db.Query(ctx, listSettings)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Setting{}
	for rows.Next() {
		var i Setting
		if err := rows.Scan(&i.Key, &i.Value, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertSetting = `-- name: UpsertSetting :one
INSERT INTO settings (key, value) VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
RETURNING key, value, updated_at`

func (q *Queries) UpsertSetting(ctx context.Context, key string, value json.RawMessage) (Setting, error) {
	row := q.db.QueryRow(ctx, upsertSetting, key, value)
	var i Setting
	err := row.Scan(&i.Key, &i.Value, &i.UpdatedAt)
	return i, err
}

const setSettingField = `-- name: SetSettingField :one
UPDATE settings SET value = jsonb_set(value, ARRAY[$2::text], $3::jsonb), updated_at = now()
WHERE key = $1
RETURNING key, value, updated_at`

// SetSettingField replaces one top level field of a JSON setting, leaving the
// rest of the stored value untouched.
func (q *Queries) SetSettingField(ctx context.Context, key, field string, value json.RawMessage) (Setting, error) {
	row := q.db.QueryRow(ctx, setSettingField, key, field, value)
	var i Setting
	err := row.Scan(&i.Key, &i.Value, &i.UpdatedAt)
	return i, err
}

const deleteSetting = `-- name: DeleteSetting :exec
DELETE FROM settings WHERE key = $1`

func (q *Queries) DeleteSetting(ctx context.Context, key string) error {
	_, err := q.db.Exec(ctx, deleteSetting, key)
	return err
}

const addFavorite = `-- name: AddFavorite :exec
INSERT INTO favorites (user_id, property_id) VALUES ($1, $2)
ON CONFLICT DO NOTHING`

func (q *Queries) AddFavorite(ctx context.Context, userID, propertyID int64) error {
	_, err := q.db.Exec(ctx, addFavorite, userID, propertyID)
	return err
}

const removeFavorite = `-- name: RemoveFavorite :exec
DELETE FROM favorites WHERE user_id = $1 AND property_id = $2`

func (q *Queries) RemoveFavorite(ctx context.Context, userID, propertyID int64) error {
	_, err := q.db.Exec(ctx, removeFavorite, userID, propertyID)
	return err
}

const listFavoriteProperties = `-- name: ListFavoriteProperties :many
SELECT ` + propertyColumns + ` FROM properties
WHERE id IN (SELECT property_id FROM favorites WHERE user_id = $1)
ORDER BY created_at DESC`

func (q *Queries) ListFavoriteProperties(ctx context.Context, userID int64) ([]Property, error) {
	return collectProperties(q.db.Query(ctx, listFavoriteProperties, userID))
}

type CreateContactMessageParams struct {
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	Message    string      `json:"message"`
	PropertyID pgtype.Int8 `json:"property_id"`
}

const createContactMessage = `-- name: CreateContactMessage :one
INSERT INTO contact_messages (name, email, phone, message, property_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, name, email, phone, message, property_id, created_at`

func (q *Queries) CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (ContactMessage, error) {
	row := q.db.QueryRow(ctx, createContactMessage, arg.Name, arg.Email, arg.Phone, arg.Message, arg.PropertyID)
	var i ContactMessage
	err := row.Scan(&i.ID, &i.Name, &i.Email, &i.Phone, &i.Message, &i.PropertyID, &i.CreatedAt)
	return i, err
}

const listContactMessages = `-- name: ListContactMessages :many
SELECT id, name, email, phone, message, property_id, created_at FROM contact_messages
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

func (q *Queries) ListContactMessages(ctx context.Context, limit, offset int32) ([]ContactMessage, error) {
	rows, err := q.db.Query(ctx, listContactMessages, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ContactMessage{}
	for rows.Next() {
		var i ContactMessage
		if err := rows.Scan(&i.ID, &i.Name, &i.Email, &i.Phone, &i.Message, &i.PropertyID, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
