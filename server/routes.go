package server

import (
	"log/slog"
	"net/http"

	"firebase.google.com/go/auth"
	"github.com/brojonat/gestate/places"
	"github.com/brojonat/gestate/server/dbgen"
	"github.com/gorilla/mux"
)

func getRootHandler(
	l *slog.Logger,
	cfg Config,
	p dbPool,
	q *dbgen.Queries,
	fbc *auth.Client,
	pc places.Client,
	ms mediaStore,
) http.Handler {
	r := mux.NewRouter()
	maxBytes := int64(1048576)
	headers := []string{"Content-Type", "Authorization", "Firebase-JWT"}
	methods := []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodDelete,
		http.MethodOptions,
	}
	api := apiMode(l, maxBytes, headers, methods, cfg.AllowedOrigins)
	uploads := apiMode(l, maxUploadBytes, headers, methods, cfg.AllowedOrigins)
	icons := apiMode(l, maxIconBytes, headers, methods, cfg.AllowedOrigins)

	// preflight requests are answered by the CORS handler
	r.Methods(http.MethodOptions).Handler(adaptHandler(
		func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) },
		api,
	))

	// helper routes
	r.Handle("/ping", adaptHandler(
		handlePing(l, p),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodGet)
	r.Handle("/token", adaptHandler(
		handleIssueToken(l),
		api,
		// no token required here
	)).Methods(http.MethodPost)

	// property CRUDL routes
	r.Handle("/property", adaptHandler(
		handlePropertyGet(l, q),
		api,
	)).Methods(http.MethodGet)
	r.Handle("/property", adaptHandler(
		handlePropertyPost(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPost)
	r.Handle("/property", adaptHandler(
		handlePropertyPut(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPut)
	r.Handle("/property", adaptHandler(
		handlePropertyDelete(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodDelete)
	r.Handle("/property/amenities", adaptHandler(
		handlePropertyAmenitiesGet(l, q),
		api,
	)).Methods(http.MethodGet)
	r.Handle("/property/amenities", adaptHandler(
		handlePropertyAmenitiesPut(l, p, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPut)

	// worker routes
	r.Handle("/property/upsert-mls", adaptHandler(
		handlePropertyUpsertMLS(l, p, q),
		uploads,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPost)

	// building CRUDL routes
	r.Handle("/building", adaptHandler(
		handleBuildingGet(l, q),
		api,
	)).Methods(http.MethodGet)
	r.Handle("/building", adaptHandler(
		handleBuildingPost(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPost)
	r.Handle("/building", adaptHandler(
		handleBuildingPut(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPut)
	r.Handle("/building", adaptHandler(
		handleBuildingDelete(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodDelete)
	r.Handle("/building/amenities", adaptHandler(
		handleBuildingAmenitiesGet(l, q),
		api,
	)).Methods(http.MethodGet)
	r.Handle("/building/amenities", adaptHandler(
		handleBuildingAmenitiesPut(l, p, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPut)

	// amenity and icon routes
	r.Handle("/amenity", adaptHandler(
		handleAmenityGet(l, q),
		api,
	)).Methods(http.MethodGet)
	r.Handle("/amenity", adaptHandler(
		handleAmenityPost(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPost)
	r.Handle("/amenity", adaptHandler(
		handleAmenityPut(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPut)
	r.Handle("/amenity", adaptHandler(
		handleAmenityDelete(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodDelete)
	r.Handle("/icon", adaptHandler(
		handleIconGet(l, q),
		api,
	)).Methods(http.MethodGet)
	r.Handle("/icon", adaptHandler(
		handleIconPost(l, q),
		icons,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPost)
	r.Handle("/icon", adaptHandler(
		handleIconDelete(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodDelete)

	// media
	r.Handle("/upload", adaptHandler(
		handleUpload(l, ms),
		uploads,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPost)

	// blog routes
	r.Handle("/blog/category", adaptHandler(
		handleBlogCategoryGet(l, q),
		api,
	)).Methods(http.MethodGet)
	r.Handle("/blog/category", adaptHandler(
		handleBlogCategoryPost(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPost)
	r.Handle("/blog/category", adaptHandler(
		handleBlogCategoryPut(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPut)
	r.Handle("/blog/category", adaptHandler(
		handleBlogCategoryDelete(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodDelete)
	r.Handle("/blog/post", adaptHandler(
		handleBlogPostGet(l, q),
		api,
		maybeAdmin(fbc, q),
	)).Methods(http.MethodGet)
	r.Handle("/blog/post", adaptHandler(
		handleBlogPostPost(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPost)
	r.Handle("/blog/post", adaptHandler(
		handleBlogPostPut(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPut)
	r.Handle("/blog/post", adaptHandler(
		handleBlogPostDelete(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodDelete)

	// website admin routes
	r.Handle("/website", adaptHandler(
		handleWebsiteGet(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodGet)
	r.Handle("/website", adaptHandler(
		handleWebsitePost(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPost)
	r.Handle("/website", adaptHandler(
		handleWebsitePut(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPut)
	r.Handle("/website", adaptHandler(
		handleWebsiteDelete(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodDelete)
	r.Handle("/website/page", adaptHandler(
		handleWebsitePageGet(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodGet)
	r.Handle("/website/page", adaptHandler(
		handleWebsitePagePost(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPost)
	r.Handle("/website/page", adaptHandler(
		handleWebsitePagePut(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPut)
	r.Handle("/website/page", adaptHandler(
		handleWebsitePageDelete(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodDelete)

	// public page props
	r.Handle("/page", adaptHandler(
		handlePublicPage(l, q),
		api,
	)).Methods(http.MethodGet)

	// settings routes
	r.Handle("/setting", adaptHandler(
		handleSettingGet(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodGet)
	r.Handle("/setting", adaptHandler(
		handleSettingPut(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPut)
	r.Handle("/setting", adaptHandler(
		handleSettingDelete(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodDelete)
	r.Handle("/setting/mls", adaptHandler(
		handleMLSSettingsGet(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodGet)
	r.Handle("/setting/mls", adaptHandler(
		handleMLSSettingsPut(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPut)
	r.Handle("/setting/mls/last-sync", adaptHandler(
		handleMLSLastSyncPut(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodPut)

	// favorites
	r.Handle("/favorite", adaptHandler(
		handleFavoriteGet(l, q),
		api,
		mustAuth(fbc),
	)).Methods(http.MethodGet)
	r.Handle("/favorite", adaptHandler(
		handleFavoritePost(l, q),
		api,
		mustAuth(fbc),
	)).Methods(http.MethodPost)
	r.Handle("/favorite", adaptHandler(
		handleFavoriteDelete(l, q),
		api,
		mustAuth(fbc),
	)).Methods(http.MethodDelete)

	// contact form
	r.Handle("/contact", adaptHandler(
		handleContactPost(l, q),
		api,
	)).Methods(http.MethodPost)
	r.Handle("/contact", adaptHandler(
		handleContactGet(l, q),
		api,
		mustAdmin(l, fbc, q),
	)).Methods(http.MethodGet)

	// search bar
	r.Handle("/search/suggestions", adaptHandler(
		handleSearchSuggestions(l, q, pc),
		api,
	)).Methods(http.MethodGet)
	r.Handle("/search/price-histogram", adaptHandler(
		handlePriceHistogram(l, q),
		api,
	)).Methods(http.MethodGet)

	return r
}
