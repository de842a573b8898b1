package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"firebase.google.com/go/auth"
	"github.com/brojonat/gestate/server/dbgen"
	"github.com/golang-jwt/jwt"
	"github.com/jackc/pgx/v5"
)

func getSecretKey() string {
	return os.Getenv("SERVER_SECRET_KEY")
}

type authJWTClaims struct {
	jwt.StandardClaims
	Email string `json:"email"`
	// set for Firebase identities, which are end users rather than operators
	Firebase bool `json:"-"`
}

func generateAccessToken(claims authJWTClaims) (string, error) {
	t := jwt.New(jwt.SigningMethodHS256)
	t.Claims = claims
	return t.SignedString([]byte(getSecretKey()))
}

// IssueToken signs a token for email that is valid for ttl.
func IssueToken(email string, ttl time.Duration) (string, error) {
	if getSecretKey() == "" {
		return "", errors.New("SERVER_SECRET_KEY is not set")
	}
	return generateAccessToken(authJWTClaims{
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(ttl).Unix()},
		Email:          strings.ToLower(email),
	})
}

var (
	errMissingToken = errors.New("missing authorization header")
	errBadToken     = errors.New("bad token value")
	errBadFirebase  = errors.New("bad firebase token")
	errNotAdmin     = errors.New("admin access required")
)

// authenticate checks the Firebase ID token when one is supplied (and
// Firebase is enabled), otherwise our own bearer JWT.
func authenticate(r *http.Request, fbc *auth.Client) (*authJWTClaims, error) {
	if fbt := r.Header.Get("Firebase-JWT"); fbt != "" && fbc != nil {
		tok, err := fbc.VerifyIDToken(r.Context(), fbt)
		if err != nil {
			return nil, errBadFirebase
		}
		email, _ := tok.Claims["email"].(string)
		return &authJWTClaims{
			StandardClaims: jwt.StandardClaims{Subject: tok.UID, ExpiresAt: tok.Expires},
			Email:          strings.ToLower(email),
			Firebase:       true,
		}, nil
	}

	ts := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if ts == "" {
		return nil, errMissingToken
	}
	var claims authJWTClaims
	kf := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errBadToken
		}
		key := getSecretKey()
		if key == "" {
			return nil, errBadToken
		}
		return []byte(key), nil
	}
	token, err := jwt.ParseWithClaims(ts, &claims, kf)
	if err != nil || !token.Valid {
		return nil, errBadToken
	}
	return &claims, nil
}

// authorizeAdmin allows server issued tokens, and Firebase identities whose
// users row is flagged is_admin.
func authorizeAdmin(ctx context.Context, q *dbgen.Queries, c *authJWTClaims) error {
	if !c.Firebase {
		return nil
	}
	if c.Email == "" {
		return errNotAdmin
	}
	u, err := q.GetUserByEmail(ctx, c.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return errNotAdmin
	}
	if err != nil {
		return err
	}
	if !u.IsAdmin {
		return errNotAdmin
	}
	return nil
}

func withClaims(ctx context.Context, c *authJWTClaims) context.Context {
	return context.WithValue(ctx, jwtCtxKey, c)
}

func getClaims(ctx context.Context) (*authJWTClaims, bool) {
	c, ok := ctx.Value(jwtCtxKey).(*authJWTClaims)
	return c, ok
}
