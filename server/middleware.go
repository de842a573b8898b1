package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"firebase.google.com/go/auth"
	"github.com/brojonat/gestate/server/dbgen"
	"github.com/gorilla/handlers"
)

type contextKey int

var jwtCtxKey contextKey = 1

type handlerAdapter func(http.HandlerFunc) http.HandlerFunc

// AdaptHandler will wrap h with the supplied middleware; note that the
// middleware will be evaluated in the order they are supplied
func adaptHandler(h http.HandlerFunc, opts ...handlerAdapter) http.HandlerFunc {
	for i := range opts {
		opt := opts[len(opts)-1-i]
		h = opt(h)
	}
	return h
}

// Convenience middleware that applies commonly used middleware to the wrapped
// handler. This will make the handler gracefully handle panics, sets the
// content type to application/json, limits the body size that clients can send,
// wraps the handler with the usual CORS settings.
func apiMode(l *slog.Logger, maxBytes int64, headers, methods, origins []string) handlerAdapter {
	return func(next http.HandlerFunc) http.HandlerFunc {
		next = makeGraceful(l)(next)
		next = setMaxBytesReader(maxBytes)(next)
		next = setContentType("application/json")(next)
		return handlers.CORS(
			handlers.AllowedHeaders(headers),
			handlers.AllowedMethods(methods),
			handlers.AllowedOrigins(origins),
		)(next).ServeHTTP
	}
}

func setContentType(content string) handlerAdapter {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", content)
			next(w, r)
		}
	}
}

func makeGraceful(l *slog.Logger) handlerAdapter {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				err := recover()
				if err != nil {
					l.Error("recovered from panic", "path", r.URL.Path)
					switch v := err.(type) {
					case error:
						writeInternalError(l, w, v)
					case string:
						writeInternalError(l, w, fmt.Errorf("%s", v))
					default:
						writeInternalError(l, w, fmt.Errorf("recovered but unexpected type from recover()"))
					}
				}
			}()
			next.ServeHTTP(w, r)
		}
	}
}

func setMaxBytesReader(mb int64) handlerAdapter {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, mb)
			next(w, r)
		}
	}
}

func mustAuth(fbc *auth.Client) handlerAdapter {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, err := authenticate(r, fbc)
			if err != nil {
				// this can happen for all sorts of typical reasons (expired tokens, etc.)
				// so nothing is logged and the user just gets a generic unauthorized message
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(defaultJSONResponse{Error: err.Error()})
				return
			}
			next(w, r.WithContext(withClaims(r.Context(), claims)))
		}
	}
}

// mustAdmin is mustAuth restricted to operators. End users signed in through
// Firebase get 403 unless flagged as admins.
func mustAdmin(l *slog.Logger, fbc *auth.Client, q *dbgen.Queries) handlerAdapter {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, err := authenticate(r, fbc)
			if err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(defaultJSONResponse{Error: err.Error()})
				return
			}
			if err := authorizeAdmin(r.Context(), q, claims); err != nil {
				if !errors.Is(err, errNotAdmin) {
					writeInternalError(l, w, err)
					return
				}
				writeJSON(w, http.StatusForbidden, defaultJSONResponse{Error: err.Error()})
				return
			}
			next(w, r.WithContext(withClaims(r.Context(), claims)))
		}
	}
}

// maybeAdmin attaches claims only for admin callers and otherwise lets the
// request through anonymously.
func maybeAdmin(fbc *auth.Client, q *dbgen.Queries) handlerAdapter {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, err := authenticate(r, fbc)
			if err == nil && authorizeAdmin(r.Context(), q, claims) == nil {
				r = r.WithContext(withClaims(r.Context(), claims))
			}
			next(w, r)
		}
	}
}
