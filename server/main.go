package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/auth"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/brojonat/gestate/places"
	"github.com/brojonat/gestate/server/dbgen"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/api/option"
)

// dbPool is the subset of *pgxpool.Pool the handlers need.
type dbPool interface {
	dbgen.DBTX
	Begin(context.Context) (pgx.Tx, error)
	Ping(context.Context) error
}

type Config struct {
	DatabaseURL     string
	Port            string
	AllowedOrigins  []string
	MediaBucket     string
	FirebaseEnabled bool

	// service account JSON; application default credentials when empty
	FirebaseCredentials string
}

func getConnPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		return nil, err
	}
	return pool, nil
}

func getFirebaseAuth(ctx context.Context, credsFile string) (*auth.Client, error) {
	var opts []option.ClientOption
	if credsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not initialize firebase: %w", err)
	}
	return app.Auth(ctx)
}

// RunHTTPServer serves the API until ctx is cancelled. Either client may be
// nil: suggestions then come from first-party cities only and uploads are
// rejected.
func RunHTTPServer(ctx context.Context, l *slog.Logger, cfg Config, pc places.Client, s3c *s3.Client) error {
	pool, err := getConnPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("could not connect to db: %w", err)
	}
	defer pool.Close()
	q := dbgen.New(pool)

	var fbc *auth.Client
	if cfg.FirebaseEnabled {
		if fbc, err = getFirebaseAuth(ctx, cfg.FirebaseCredentials); err != nil {
			return err
		}
	}

	var ms mediaStore
	if s3c != nil && cfg.MediaBucket != "" {
		ms = &s3MediaStore{client: s3c, bucket: cfg.MediaBucket}
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           getRootHandler(l, cfg, pool, q, fbc, pc, ms),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		l.Info("listening", "port", cfg.Port)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
