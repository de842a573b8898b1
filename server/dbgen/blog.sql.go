package dbgen

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const createBlogCategory = `-- name: CreateBlogCategory :one
INSERT INTO blog_categories (name, slug) VALUES ($1, $2)
RETURNING id, name, slug`

func (q *Queries) CreateBlogCategory(ctx context.Context, name, slug string) (BlogCategory, error) {
	row := q.db.QueryRow(ctx, createBlogCategory, name, slug)
	var i BlogCategory
	err := row.Scan(&i.ID, &i.Name, &i.Slug)
	return i, err
}

const upsertBlogCategory = `-- name: UpsertBlogCategory :one
INSERT INTO blog_categories (name, slug) VALUES ($1, $2)
ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
RETURNING id, name, slug`

func (q *Queries) UpsertBlogCategory(ctx context.Context, name, slug string) (BlogCategory, error) {
	row := q.db.QueryRow(ctx, upsertBlogCategory, name, slug)
	var i BlogCategory
	err := row.Scan(&i.ID, &i.Name, &i.Slug)
	return i, err
}

const getBlogCategory = `-- name: GetBlogCategory :one
SELECT id, name, slug FROM blog_categories WHERE id = $1`

func (q *Queries) GetBlogCategory(ctx context.Context, id int64) (BlogCategory, error) {
	row := q.db.QueryRow(ctx, getBlogCategory, id)
	var i BlogCategory
	err := row.Scan(&i.ID, &i.Name, &i.Slug)
	return i, err
}

const listBlogCategories = `-- name: ListBlogCategories :many
SELECT id, name, slug FROM blog_categories ORDER BY name`

func (q *Queries) ListBlogCategories(ctx context.Context) ([]BlogCategory, error) {
	rows, err := q.db.Query(ctx, listBlogCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []BlogCategory{}
	for rows.Next() {
		var i BlogCategory
		if err := rows.Scan(&i.ID, &i.Name, &i.Slug); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateBlogCategory = `-- name: UpdateBlogCategory :one
UPDATE blog_categories SET name = $2, slug = $3 WHERE id = $1
RETURNING id, name, slug`

func (q *Queries) UpdateBlogCategory(ctx context.Context, id int64, name, slug string) (BlogCategory, error) {
	row := q.db.QueryRow(ctx, updateBlogCategory, id, name, slug)
	var i BlogCategory
	err := row.Scan(&i.ID, &i.Name, &i.Slug)
	return i, err
}

const deleteBlogCategory = `-- name: DeleteBlogCategory :exec
DELETE FROM blog_categories WHERE id = $1`

func (q *Queries) DeleteBlogCategory(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteBlogCategory, id)
	return err
}

const blogPostColumns = `id, category_id, title, slug, excerpt, body_markdown, body_html,
	cover_image, published, published_at, created_at, updated_at`

func scanBlogPost(row pgx.Row) (BlogPost, error) {
	var i BlogPost
	err := row.Scan(
		&i.ID,
		&i.CategoryID,
		&i.Title,
		&i.Slug,
		&i.Excerpt,
		&i.BodyMarkdown,
		&i.BodyHTML,
		&i.CoverImage,
		&i.Published,
		&i.PublishedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

type CreateBlogPostParams struct {
	CategoryID   pgtype.Int8 `json:"category_id"`
	Title        string      `json:"title"`
	Slug         string      `json:"slug"`
	Excerpt      string      `json:"excerpt"`
	BodyMarkdown string      `json:"body_markdown"`
	BodyHTML     string      `json:"body_html"`
	CoverImage   string      `json:"cover_image"`
	Published    bool        `json:"published"`
}

func (p CreateBlogPostParams) args() []interface{} {
	return []interface{}{
		p.CategoryID,
		p.Title,
		p.Slug,
		p.Excerpt,
		p.BodyMarkdown,
		p.BodyHTML,
		p.CoverImage,
		p.Published,
	}
}

// published_at is stamped the first time a post is published and kept
// afterwards, so unpublishing and republishing doesn't reorder the feed.
const createBlogPost = `-- name: CreateBlogPost :one
INSERT INTO blog_posts (
	category_id, title, slug, excerpt, body_markdown, body_html, cover_image,
	published, published_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CASE WHEN $8 THEN now() END)
RETURNING ` + blogPostColumns

func (q *Queries) CreateBlogPost(ctx context.Context, arg CreateBlogPostParams) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRow(ctx, createBlogPost, arg.args()...))
}

const upsertBlogPost = `-- name: UpsertBlogPost :one
INSERT INTO blog_posts (
	category_id, title, slug, excerpt, body_markdown, body_html, cover_image,
	published, published_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CASE WHEN $8 THEN now() END)
ON CONFLICT (slug) DO UPDATE SET
	category_id = EXCLUDED.category_id,
	title = EXCLUDED.title,
	excerpt = EXCLUDED.excerpt,
	body_markdown = EXCLUDED.body_markdown,
	body_html = EXCLUDED.body_html,
	cover_image = EXCLUDED.cover_image,
	published = EXCLUDED.published,
	published_at = COALESCE(blog_posts.published_at, EXCLUDED.published_at),
	updated_at = now()
RETURNING ` + blogPostColumns

func (q *Queries) UpsertBlogPost(ctx context.Context, arg CreateBlogPostParams) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRow(ctx, upsertBlogPost, arg.args()...))
}

const getBlogPost = `-- name: GetBlogPost :one
SELECT ` + blogPostColumns + ` FROM blog_posts WHERE id = $1`

func (q *Queries) GetBlogPost(ctx context.Context, id int64) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRow(ctx, getBlogPost, id))
}

const getBlogPostBySlug = `-- name: GetBlogPostBySlug :one
SELECT ` + blogPostColumns + ` FROM blog_posts WHERE slug = $1`

func (q *Queries) GetBlogPostBySlug(ctx context.Context, slug string) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRow(ctx, getBlogPostBySlug, slug))
}

type ListBlogPostsParams struct {
	CategoryID    int64
	IncludeDrafts bool
	Limit         int32
	Offset        int32
}

const listBlogPosts = `-- name: ListBlogPosts :many
SELECT ` + blogPostColumns + ` FROM blog_posts
WHERE ($1::bigint = 0 OR category_id = $1)
	AND ($2::boolean OR published)
ORDER BY published_at DESC NULLS LAST, created_at DESC
LIMIT $3 OFFSET $4`

func (q *Queries) ListBlogPosts(ctx context.Context, arg ListBlogPostsParams) ([]BlogPost, error) {
	rows, err := q.db.Query(ctx, listBlogPosts, arg.CategoryID, arg.IncludeDrafts, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []BlogPost{}
	for rows.Next() {
		i, err := scanBlogPost(rows)
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

type UpdateBlogPostParams struct {
	ID int64 `json:"id"`
	CreateBlogPostParams
}

const updateBlogPost = `-- name: UpdateBlogPost :one
UPDATE blog_posts SET
	category_id = $2, title = $3, slug = $4, excerpt = $5, body_markdown = $6,
	body_html = $7, cover_image = $8, published = $9,
	published_at = CASE WHEN $9 THEN COALESCE(published_at, now()) ELSE published_at END,
	updated_at = now()
WHERE id = $1
RETURNING ` + blogPostColumns

func (q *Queries) UpdateBlogPost(ctx context.Context, arg UpdateBlogPostParams) (BlogPost, error) {
	args := append([]interface{}{arg.ID}, arg.CreateBlogPostParams.args()...)
	return scanBlogPost(q.db.QueryRow(ctx, updateBlogPost, args...))
}

const deleteBlogPost = `-- name: DeleteBlogPost :exec
DELETE FROM blog_posts WHERE id = $1`

func (q *Queries) DeleteBlogPost(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteBlogPost, id)
	return err
}
