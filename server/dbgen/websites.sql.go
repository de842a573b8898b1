package dbgen

import (
	"context"

	"github.com/brojonat/gestate/server/dbgen/jsonb"
	"github.com/jackc/pgx/v5"
)

const websiteColumns = `id, name, domain, brand_colors, logo, contact_email, phone, socials,
	created_at, updated_at`

func scanWebsite(row pgx.Row) (Website, error) {
	var i Website
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Domain,
		&i.BrandColors,
		&i.Logo,
		&i.ContactEmail,
		&i.Phone,
		&i.Socials,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

type CreateWebsiteParams struct {
	Name         string            `json:"name"`
	Domain       string            `json:"domain"`
	BrandColors  jsonb.BrandColors `json:"brand_colors"`
	Logo         string            `json:"logo"`
	ContactEmail string            `json:"contact_email"`
	Phone        string            `json:"phone"`
	Socials      jsonb.Socials     `json:"socials"`
}

func (p CreateWebsiteParams) args() []interface{} {
	return []interface{}{
		p.Name,
		p.Domain,
		p.BrandColors,
		p.Logo,
		p.ContactEmail,
		p.Phone,
		p.Socials,
	}
}

const createWebsite = `-- name: CreateWebsite :one
INSERT INTO websites (name, domain, brand_colors, logo, contact_email, phone, socials)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + websiteColumns

func (q *Queries) CreateWebsite(ctx context.Context, arg CreateWebsiteParams) (Website, error) {
	return scanWebsite(q.db.QueryRow(ctx, createWebsite, arg.args()...))
}

const upsertWebsite = `-- name: UpsertWebsite :one
INSERT INTO websites (name, domain, brand_colors, logo, contact_email, phone, socials)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (domain) DO UPDATE SET
	name = EXCLUDED.name,
	brand_colors = EXCLUDED.brand_colors,
	logo = EXCLUDED.logo,
	contact_email = EXCLUDED.contact_email,
	phone = EXCLUDED.phone,
	socials = EXCLUDED.socials,
	updated_at = now()
RETURNING ` + websiteColumns

func (q *Queries) UpsertWebsite(ctx context.Context, arg CreateWebsiteParams) (Website, error) {
	return scanWebsite(q.db.QueryRow(ctx, upsertWebsite, arg.args()...))
}

const getWebsite = `-- name: GetWebsite :one
SELECT ` + websiteColumns + ` FROM websites WHERE id = $1`

func (q *Queries) GetWebsite(ctx context.Context, id int64) (Website, error) {
	return scanWebsite(q.db.QueryRow(ctx, getWebsite, id))
}

const getWebsiteByDomain = `-- name: GetWebsiteByDomain :one
SELECT ` + websiteColumns + ` FROM websites WHERE domain = lower($1)`

func (q *Queries) GetWebsiteByDomain(ctx context.Context, domain string) (Website, error) {
	return scanWebsite(q.db.QueryRow(ctx, getWebsiteByDomain, domain))
}

const listWebsites = `-- name: ListWebsites :many
SELECT ` + websiteColumns + ` FROM websites ORDER BY name`

func (q *Queries) ListWebsites(ctx context.Context) ([]Website, error) {
	rows, err := q.db.Query(ctx, listWebsites)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Website{}
	for rows.Next() {
		i, err := scanWebsite(rows)
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

type UpdateWebsiteParams struct {
	ID int64 `json:"id"`
	CreateWebsiteParams
}

const updateWebsite = `-- name: UpdateWebsite :one
UPDATE websites SET
	name = $2, domain = $3, brand_colors = $4, logo = $5, contact_email = $6,
	phone = $7, socials = $8, updated_at = now()
WHERE id = $1
RETURNING ` + websiteColumns

func (q *Queries) UpdateWebsite(ctx context.Context, arg UpdateWebsiteParams) (Website, error) {
	args := append([]interface{}{arg.ID}, arg.CreateWebsiteParams.args()...)
	return scanWebsite(q.db.QueryRow(ctx, updateWebsite, args...))
}

const deleteWebsite = `-- name: DeleteWebsite :exec
DELETE FROM websites WHERE id = $1`

func (q *Queries) DeleteWebsite(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteWebsite, id)
	return err
}

const websitePageColumns = `id, website_id, slug, title, sections, published, created_at, updated_at`

func scanWebsitePage(row pgx.Row) (WebsitePage, error) {
	var i WebsitePage
	err := row.Scan(
		&i.ID,
		&i.WebsiteID,
		&i.Slug,
		&i.Title,
		&i.Sections,
		&i.Published,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

type CreateWebsitePageParams struct {
	WebsiteID int64          `json:"website_id"`
	Slug      string         `json:"slug"`
	Title     string         `json:"title"`
	Sections  jsonb.Sections `json:"sections"`
	Published bool           `json:"published"`
}

const createWebsitePage = `-- name: CreateWebsitePage :one
INSERT INTO website_pages (website_id, slug, title, sections, published)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + websitePageColumns

func (q *Queries) CreateWebsitePage(ctx context.Context, arg CreateWebsitePageParams) (WebsitePage, error) {
	return scanWebsitePage(q.db.QueryRow(ctx, createWebsitePage,
		arg.WebsiteID, arg.Slug, arg.Title, arg.Sections, arg.Published))
}

const upsertWebsitePage = `-- name: UpsertWebsitePage :one
INSERT INTO website_pages (website_id, slug, title, sections, published)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (website_id, slug) DO UPDATE SET
	title = EXCLUDED.title,
	sections = EXCLUDED.sections,
	published = EXCLUDED.published,
	updated_at = now()
RETURNING ` + websitePageColumns

func (q *Queries) UpsertWebsitePage(ctx context.Context, arg CreateWebsitePageParams) (WebsitePage, error) {
	return scanWebsitePage(q.db.QueryRow(ctx, upsertWebsitePage,
		arg.WebsiteID, arg.Slug, arg.Title, arg.Sections, arg.Published))
}

const getWebsitePage = `-- name: GetWebsitePage :one
SELECT ` + websitePageColumns + ` FROM website_pages WHERE id = $1`

func (q *Queries) GetWebsitePage(ctx context.Context, id int64) (WebsitePage, error) {
	return scanWebsitePage(q.db.QueryRow(ctx, getWebsitePage, id))
}

const getWebsitePageBySlug = `-- name: GetWebsitePageBySlug :one
SELECT ` + websitePageColumns + ` FROM website_pages WHERE website_id = $1 AND slug = $2`

func (q *Queries) GetWebsitePageBySlug(ctx context.Context, websiteID int64, slug string) (WebsitePage, error) {
	return scanWebsitePage(q.db.QueryRow(ctx, getWebsitePageBySlug, websiteID, slug))
}

const listWebsitePages = `-- name: ListWebsitePages :many
SELECT ` + websitePageColumns + ` FROM website_pages WHERE website_id = $1 ORDER BY slug`

func (q *Queries) ListWebsitePages(ctx context.Context, websiteID int64) ([]WebsitePage, error) {
	rows, err := q.db.Query(ctx, listWebsitePages, websiteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []WebsitePage{}
	for rows.Next() {
		i, err := scanWebsitePage(rows)
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

type UpdateWebsitePageParams struct {
	ID int64 `json:"id"`
	CreateWebsitePageParams
}

const updateWebsitePage = `-- name: UpdateWebsitePage :one
UPDATE website_pages SET
	website_id = $2, slug = $3, title = $4, sections = $5, published = $6, updated_at = now()
WHERE id = $1
RETURNING ` + websitePageColumns

func (q *Queries) UpdateWebsitePage(ctx context.Context, arg UpdateWebsitePageParams) (WebsitePage, error) {
	return scanWebsitePage(q.db.QueryRow(ctx, updateWebsitePage,
		arg.ID, arg.WebsiteID, arg.Slug, arg.Title, arg.Sections, arg.Published))
}

const deleteWebsitePage = `-- name: DeleteWebsitePage :exec
DELETE FROM website_pages WHERE id = $1`

func (q *Queries) DeleteWebsitePage(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteWebsitePage, id)
	return err
}
