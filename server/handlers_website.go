package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/brojonat/gestate/server/dbgen"
)

const (
	defaultPageSlug       = "home"
	pageFeaturedListLimit = 6
)

func handleWebsiteGet(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, hasID, err := parseIDParam(r, "id")
		if err != nil {
			writeBadRequestError(w, err.Error())
			return
		}
		domain := strings.TrimSpace(r.URL.Query().Get("domain"))

		if !hasID && domain == "" {
			ws, err := q.ListWebsites(r.Context())
			if err != nil {
				writeInternalError(l, w, err)
				return
			}
			writeJSON(w, http.StatusOK, ws)
			return
		}

		var site dbgen.Website
		if hasID {
			site, err = q.GetWebsite(r.Context(), id)
		} else {
			site, err = q.GetWebsiteByDomain(r.Context(), domain)
		}
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, site)
	}
}

func handleWebsitePost(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body WebsiteBody
		if err := decodeJSONBody(r, &body); err != nil {
			writeDecodeError(l, w, err)
			return
		}
		if fe := body.normalize(); len(fe) > 0 {
			writeValidationError(w, fe)
			return
		}
		site, err := q.CreateWebsite(r.Context(), body.params())
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusCreated, site)
	}
}

func handleWebsitePut(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIDParam(w, r, "id")
		if !ok {
			return
		}
		var body WebsiteBody
		if err := decodeJSONBody(r, &body); err != nil {
			writeDecodeError(l, w, err)
			return
		}
		if fe := body.normalize(); len(fe) > 0 {
			writeValidationError(w, fe)
			return
		}
		site, err := q.UpdateWebsite(r.Context(), dbgen.UpdateWebsiteParams{ID: id, CreateWebsiteParams: body.params()})
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, site)
	}
}

func handleWebsiteDelete(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIDParam(w, r, "id")
		if !ok {
			return
		}
		if err := q.DeleteWebsite(r.Context(), id); err != nil {
			writeDBError(l, w, err)
			return
		}
		writeOK(w)
	}
}

func handleWebsitePageGet(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, hasID, err := parseIDParam(r, "id")
		if err != nil {
			writeBadRequestError(w, err.Error())
			return
		}
		if hasID {
			pg, err := q.GetWebsitePage(r.Context(), id)
			if err != nil {
				writeDBError(l, w, err)
				return
			}
			writeJSON(w, http.StatusOK, pg)
			return
		}
		siteID, ok := requireIDParam(w, r, "website_id")
		if !ok {
			return
		}
		pgs, err := q.ListWebsitePages(r.Context(), siteID)
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, pgs)
	}
}

func handleWebsitePagePost(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body WebsitePageBody
		if err := decodeJSONBody(r, &body); err != nil {
			writeDecodeError(l, w, err)
			return
		}
		if fe := body.normalize(); len(fe) > 0 {
			writeValidationError(w, fe)
			return
		}
		pg, err := q.CreateWebsitePage(r.Context(), body.params())
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusCreated, pg)
	}
}

func handleWebsitePagePut(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIDParam(w, r, "id")
		if !ok {
			return
		}
		var body WebsitePageBody
		if err := decodeJSONBody(r, &body); err != nil {
			writeDecodeError(l, w, err)
			return
		}
		if fe := body.normalize(); len(fe) > 0 {
			writeValidationError(w, fe)
			return
		}
		pg, err := q.UpdateWebsitePage(r.Context(), dbgen.UpdateWebsitePageParams{ID: id, CreateWebsitePageParams: body.params()})
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, pg)
	}
}

func handleWebsitePageDelete(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIDParam(w, r, "id")
		if !ok {
			return
		}
		if err := q.DeleteWebsitePage(r.Context(), id); err != nil {
			writeDBError(l, w, err)
			return
		}
		writeOK(w)
	}
}

// handlePublicPage assembles the props for a public page: site branding, the
// page sections, and the featured listings. Unpublished pages don't exist as
// far as the public is concerned.
func handlePublicPage(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		domain := strings.TrimSpace(r.URL.Query().Get("domain"))
		if domain == "" {
			writeBadRequestError(w, "must supply domain")
			return
		}
		slug := r.URL.Query().Get("slug")
		if slug == "" {
			slug = defaultPageSlug
		}

		site, err := q.GetWebsiteByDomain(r.Context(), domain)
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		pg, err := q.GetWebsitePageBySlug(r.Context(), site.ID, slug)
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		if !pg.Published {
			writeEmptyResultError(w)
			return
		}
		props, err := q.ListProperties(r.Context(), dbgen.ListPropertiesParams{
			Status:       ListingStatusActive,
			FeaturedOnly: true,
			Limit:        pageFeaturedListLimit,
		})
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, PageResponse{
			Website:            site,
			Page:               pg,
			FeaturedProperties: newPropertyResponses(props),
		})
	}
}
