package server

import (
	"net/http"
	"testing"

	"github.com/brojonat/gestate/server/dbgen"
	"github.com/brojonat/gestate/server/dbgen/jsonb"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var blogPostCols = []string{
	"id", "category_id", "title", "slug", "excerpt", "body_markdown", "body_html",
	"cover_image", "published", "published_at", "created_at", "updated_at",
}

func blogPostRow(published bool) *pgxmock.Rows {
	return pgxmock.NewRows(blogPostCols).AddRow(
		int64(1), pgtype.Int8{}, "Spring Market", "spring-market", "Inventory climbed.",
		"Inventory climbed.", "<p>Inventory climbed.</p>", "", published,
		pgtype.Timestamptz{}, testTime, testTime,
	)
}

func TestHandleBlogPostGetDraft(t *testing.T) {
	mock, q := newMock(t)
	mock.ExpectQuery("name: GetBlogPostBySlug").WithArgs("spring-market").WillReturnRows(blogPostRow(false))
	mock.ExpectQuery("name: GetBlogPostBySlug").WithArgs("spring-market").WillReturnRows(blogPostRow(false))
	h := handleBlogPostGet(testLogger(), q)

	w := serve(h, jsonRequest(t, http.MethodGet, "/blog/post?slug=spring-market", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	r := jsonRequest(t, http.MethodGet, "/blog/post?slug=spring-market", nil)
	r = r.WithContext(withClaims(r.Context(), &authJWTClaims{Email: "admin@example.com"}))
	w = serve(h, r)
	require.Equal(t, http.StatusOK, w.Code)
	var p dbgen.BlogPost
	decodeResponse(t, w, &p)
	assert.Equal(t, "<p>Inventory climbed.</p>", p.BodyHTML)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleBlogPostGetListHidesDrafts(t *testing.T) {
	mock, q := newMock(t)
	mock.ExpectQuery("name: ListBlogPosts").
		WithArgs(int64(0), false, int32(defaultListLimit), int32(0)).
		WillReturnRows(blogPostRow(true))

	w := serve(handleBlogPostGet(testLogger(), q), jsonRequest(t, http.MethodGet, "/blog/post?include_drafts=true", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var ps []dbgen.BlogPost
	decodeResponse(t, w, &ps)
	assert.Len(t, ps, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var websiteCols = []string{
	"id", "name", "domain", "brand_colors", "logo", "contact_email", "phone", "socials",
	"created_at", "updated_at",
}

var websitePageCols = []string{"id", "website_id", "slug", "title", "sections", "published", "created_at", "updated_at"}

func TestHandlePublicPage(t *testing.T) {
	mock, q := newMock(t)
	mock.ExpectQuery("name: GetWebsiteByDomain").
		WithArgs("lakeside.example.com").
		WillReturnRows(pgxmock.NewRows(websiteCols).AddRow(
			int64(3), "Lakeside Realty", "lakeside.example.com", jsonb.BrandColors{Primary: "#0b3d5c"},
			"", "", "", jsonb.Socials{}, testTime, testTime,
		))
	mock.ExpectQuery("name: GetWebsitePageBySlug").
		WithArgs(int64(3), defaultPageSlug).
		WillReturnRows(pgxmock.NewRows(websitePageCols).AddRow(
			int64(9), int64(3), defaultPageSlug, "Home", jsonb.Sections{{Type: "hero"}}, true, testTime, testTime,
		))
	mock.ExpectQuery("name: ListProperties").
		WithArgs("", "", ListingStatusActive, int64(0), int64(0), int32(0), true, int64(0),
			int32(pageFeaturedListLimit), int32(0), false, 0.0, 0.0, 0.0, 0.0).
		WillReturnRows(pgxmock.NewRows(propertyCols).AddRow(propertyValues(1, "lakeview-loft")...))

	w := serve(handlePublicPage(testLogger(), q), jsonRequest(t, http.MethodGet, "/page?domain=lakeside.example.com", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res PageResponse
	decodeResponse(t, w, &res)
	assert.Equal(t, "Lakeside Realty", res.Website.Name)
	assert.Equal(t, "hero", res.Page.Sections[0].Type)
	require.Len(t, res.FeaturedProperties, 1)
	assert.Equal(t, "lakeview-loft", res.FeaturedProperties[0].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePublicPageUnpublished(t *testing.T) {
	mock, q := newMock(t)
	mock.ExpectQuery("name: GetWebsiteByDomain").
		WithArgs("lakeside.example.com").
		WillReturnRows(pgxmock.NewRows(websiteCols).AddRow(
			int64(3), "Lakeside Realty", "lakeside.example.com", jsonb.BrandColors{},
			"", "", "", jsonb.Socials{}, testTime, testTime,
		))
	mock.ExpectQuery("name: GetWebsitePageBySlug").
		WithArgs(int64(3), "about").
		WillReturnRows(pgxmock.NewRows(websitePageCols).AddRow(
			int64(10), int64(3), "about", "About", jsonb.Sections{}, false, testTime, testTime,
		))

	h := handlePublicPage(testLogger(), q)
	w := serve(h, jsonRequest(t, http.MethodGet, "/page?domain=lakeside.example.com&slug=about", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(h, jsonRequest(t, http.MethodGet, "/page", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePublicPageUnknownDomain(t *testing.T) {
	mock, q := newMock(t)
	mock.ExpectQuery("name: GetWebsiteByDomain").WithArgs("nope.example.com").WillReturnError(pgx.ErrNoRows)
	w := serve(handlePublicPage(testLogger(), q), jsonRequest(t, http.MethodGet, "/page?domain=nope.example.com", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleFavorites(t *testing.T) {
	mock, q := newMock(t)
	h := handleFavoritePost(testLogger(), q)

	w := serve(h, jsonRequest(t, http.MethodPost, "/favorite?property_id=1", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	mock.ExpectQuery("name: UpsertUser").
		WithArgs("ada@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "name", "is_admin", "created_at"}).
			AddRow(int64(4), "ada@example.com", "", false, testTime))
	mock.ExpectExec("name: AddFavorite").
		WithArgs(int64(4), int64(1)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	r := jsonRequest(t, http.MethodPost, "/favorite?property_id=1", nil)
	r = r.WithContext(withClaims(r.Context(), &authJWTClaims{Email: "ada@example.com"}))
	w = serve(h, r)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
