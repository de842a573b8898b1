package server

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func isPGError(err error, code string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != code {
		return false
	}
	return true
}

// see https://www.postgresql.org/docs/11/errcodes-appendix.html#ERRCODES-TABLE
const (
	pgErrorIntegrityConstrainViolation = "23000"
	pgErrorRestrictViolation           = "23001"
	pgErrorNotNullViolation            = "23502"
	pgErrorForeignKeyViolation         = "23503"
	pgErrorUniqueViolation             = "23505"
	pgErrorCheckViolation              = "23514"
	pgErrorExclusionViolation          = "23P01"
)

func pgErrorText(code string) string {
	switch code {
	case pgErrorIntegrityConstrainViolation:
		return "integrity_constraint_violation"
	case pgErrorRestrictViolation:
		return "restrict_violation"
	case pgErrorNotNullViolation:
		return "not_null_violation"
	case pgErrorForeignKeyViolation:
		return "foreign_key_violation"
	case pgErrorUniqueViolation:
		return "unique_violation"
	case pgErrorCheckViolation:
		return "check_violation"
	case pgErrorExclusionViolation:
		return "exclusion_violation"
	default:
		return ""
	}
}

// writeDBError maps query errors onto client responses. Anything that isn't
// a missing row or a constraint the client tripped is an internal error.
func writeDBError(l *slog.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, pgx.ErrNoRows) {
		writeEmptyResultError(w)
		return
	}
	if isPGError(err, pgErrorUniqueViolation) || isPGError(err, pgErrorExclusionViolation) {
		writeJSON(w, http.StatusConflict, defaultJSONResponse{Error: "already exists"})
		return
	}
	for _, code := range []string{
		pgErrorForeignKeyViolation,
		pgErrorNotNullViolation,
		pgErrorCheckViolation,
		pgErrorRestrictViolation,
	} {
		if isPGError(err, code) {
			writeBadRequestError(w, pgErrorText(code))
			return
		}
	}
	writeInternalError(l, w, err)
}

// FieldErrors maps a request field to a human readable problem with it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// add keeps the first message recorded for a field.
func (fe FieldErrors) add(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}
