package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/brojonat/gestate/server/dbgen"
)

func handleBlogCategoryGet(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, hasID, err := parseIDParam(r, "id")
		if err != nil {
			writeBadRequestError(w, err.Error())
			return
		}
		if !hasID {
			cs, err := q.ListBlogCategories(r.Context())
			if err != nil {
				writeInternalError(l, w, err)
				return
			}
			writeJSON(w, http.StatusOK, cs)
			return
		}
		c, err := q.GetBlogCategory(r.Context(), id)
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func handleBlogCategoryPost(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body BlogCategoryBody
		if err := decodeJSONBody(r, &body); err != nil {
			writeDecodeError(l, w, err)
			return
		}
		if fe := body.normalize(); len(fe) > 0 {
			writeValidationError(w, fe)
			return
		}
		c, err := q.CreateBlogCategory(r.Context(), body.Name, body.Slug)
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusCreated, c)
	}
}

func handleBlogCategoryPut(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIDParam(w, r, "id")
		if !ok {
			return
		}
		var body BlogCategoryBody
		if err := decodeJSONBody(r, &body); err != nil {
			writeDecodeError(l, w, err)
			return
		}
		if fe := body.normalize(); len(fe) > 0 {
			writeValidationError(w, fe)
			return
		}
		c, err := q.UpdateBlogCategory(r.Context(), id, body.Name, body.Slug)
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func handleBlogCategoryDelete(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIDParam(w, r, "id")
		if !ok {
			return
		}
		if err := q.DeleteBlogCategory(r.Context(), id); err != nil {
			writeDBError(l, w, err)
			return
		}
		writeOK(w)
	}
}

// handleBlogPostGet serves published posts to everyone. Drafts are only
// visible to admins, whose claims maybeAdmin attaches.
func handleBlogPostGet(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, admin := getClaims(r.Context())
		id, hasID, err := parseIDParam(r, "id")
		if err != nil {
			writeBadRequestError(w, err.Error())
			return
		}
		slug := r.URL.Query().Get("slug")

		if !hasID && slug == "" {
			arg := dbgen.ListBlogPostsParams{}
			if arg.CategoryID, _, err = parseIDParam(r, "category_id"); err != nil {
				writeBadRequestError(w, err.Error())
				return
			}
			if v := r.URL.Query().Get("include_drafts"); v != "" {
				drafts, err := strconv.ParseBool(v)
				if err != nil {
					writeBadRequestError(w, "bad value for include_drafts")
					return
				}
				arg.IncludeDrafts = drafts && admin
			}
			if arg.Limit, arg.Offset, err = parseLimitOffset(r); err != nil {
				writeBadRequestError(w, err.Error())
				return
			}
			ps, err := q.ListBlogPosts(r.Context(), arg)
			if err != nil {
				writeInternalError(l, w, err)
				return
			}
			writeJSON(w, http.StatusOK, ps)
			return
		}

		var p dbgen.BlogPost
		if hasID {
			p, err = q.GetBlogPost(r.Context(), id)
		} else {
			p, err = q.GetBlogPostBySlug(r.Context(), slug)
		}
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		if !p.Published && !admin {
			writeEmptyResultError(w)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func handleBlogPostPost(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body BlogPostBody
		if err := decodeJSONBody(r, &body); err != nil {
			writeDecodeError(l, w, err)
			return
		}
		if fe := body.normalize(); len(fe) > 0 {
			writeValidationError(w, fe)
			return
		}
		arg, err := body.params()
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		p, err := q.CreateBlogPost(r.Context(), arg)
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

func handleBlogPostPut(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIDParam(w, r, "id")
		if !ok {
			return
		}
		var body BlogPostBody
		if err := decodeJSONBody(r, &body); err != nil {
			writeDecodeError(l, w, err)
			return
		}
		if fe := body.normalize(); len(fe) > 0 {
			writeValidationError(w, fe)
			return
		}
		arg, err := body.params()
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		p, err := q.UpdateBlogPost(r.Context(), dbgen.UpdateBlogPostParams{ID: id, CreateBlogPostParams: arg})
		if err != nil {
			writeDBError(l, w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func handleBlogPostDelete(l *slog.Logger, q *dbgen.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIDParam(w, r, "id")
		if !ok {
			return
		}
		if err := q.DeleteBlogPost(r.Context(), id); err != nil {
			writeDBError(l, w, err)
			return
		}
		writeOK(w)
	}
}
