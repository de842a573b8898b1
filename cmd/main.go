package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/brojonat/gestate/mls"
	"github.com/brojonat/gestate/places"
	"github.com/brojonat/gestate/seed"
	"github.com/brojonat/gestate/server"
	"github.com/brojonat/gestate/server/dbgen"
	"github.com/brojonat/gestate/worker"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

const userAgent = "gestate (brojonat@gmail.com)"

func main() {
	// a missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	serverFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "server-endpoint",
			Aliases: []string{"server", "s"},
			Value:   os.Getenv("SERVER_ENDPOINT"),
			Usage:   "Server endpoint.",
		},
		&cli.StringFlag{
			Name:    "auth-token",
			Aliases: []string{"token", "t"},
			Value:   os.Getenv("AUTH_TOKEN"),
			Usage:   "Auth token for server requests.",
		},
	}
	dbFlag := &cli.StringFlag{
		Name:    "db-host",
		Aliases: []string{"db", "d"},
		Value:   os.Getenv("DATABASE_URL"),
		Usage:   "Database endpoint.",
	}

	app := &cli.App{
		Name:  "gestate",
		Usage: "Real estate listings, blog and website back end.",
		Commands: []*cli.Command{
			{
				Name:  "run-http-server",
				Usage: "Run the HTTP server on the specified port.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "listen-port",
						Aliases: []string{"port", "p"},
						Value:   "8080",
						Usage:   "Port to listen on.",
					},
					dbFlag,
					&cli.StringFlag{
						Name:  "allowed-origins",
						Value: os.Getenv("ALLOWED_ORIGINS"),
						Usage: "Comma separated CORS origins.",
					},
					&cli.StringFlag{
						Name:  "media-bucket",
						Value: os.Getenv("S3_MEDIA_BUCKET"),
						Usage: "S3 bucket for uploads. Uploads are disabled when empty.",
					},
					&cli.StringFlag{
						Name:  "places-url",
						Value: getenvDefault("PLACES_API_URL", "https://maps.googleapis.com/maps/api/place/"),
						Usage: "Places autocomplete endpoint.",
					},
					&cli.StringFlag{
						Name:  "places-key",
						Value: os.Getenv("PLACES_API_KEY"),
						Usage: "Places API key. Place suggestions are disabled when empty.",
					},
					&cli.BoolFlag{
						Name:  "firebase",
						Value: os.Getenv("FIREBASE_ENABLED") == "true",
						Usage: "Accept Firebase ID tokens instead of server tokens.",
					},
					&cli.PathFlag{
						Name:  "firebase-credentials",
						Value: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
						Usage: "Firebase service account file.",
					},
				},
				Action: func(ctx *cli.Context) error {
					return serve_http(ctx)
				},
			},
			{
				Name:  "run-mls-worker",
				Usage: "Run the MLS feed sync worker.",
				Flags: append([]cli.Flag{
					&cli.DurationFlag{
						Name:    "interval",
						Aliases: []string{"i"},
						Value:   time.Minute,
						Usage:   "How often to check whether a sync is due.",
					},
					&cli.StringFlag{
						Name:  "mls-url",
						Value: os.Getenv("MLS_API_URL"),
						Usage: "Feed endpoint used when the settings don't name one.",
					},
					&cli.StringFlag{
						Name:  "mls-key",
						Value: os.Getenv("MLS_API_KEY"),
						Usage: "Feed API key.",
					},
				}, serverFlags...),
				Action: func(ctx *cli.Context) error {
					return run_mls_worker(ctx)
				},
			},
			{
				Name:  "sync-mls-listing",
				Usage: "Pull one listing from the MLS feed and upsert it now.",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "mls-id",
						Required: true,
						Usage:    "Feed identifier of the listing.",
					},
					&cli.StringFlag{
						Name:  "mls-url",
						Value: os.Getenv("MLS_API_URL"),
						Usage: "Feed endpoint.",
					},
					&cli.StringFlag{
						Name:  "mls-key",
						Value: os.Getenv("MLS_API_KEY"),
						Usage: "Feed API key.",
					},
				}, serverFlags...),
				Action: func(ctx *cli.Context) error {
					return sync_mls_listing(ctx)
				},
			},
			{
				Name:  "migrate",
				Usage: "Apply pending database migrations.",
				Flags: []cli.Flag{dbFlag},
				Action: func(ctx *cli.Context) error {
					return migrate(ctx)
				},
			},
			{
				Name:  "seed",
				Usage: "Load demo data. Safe to run repeatedly.",
				Flags: []cli.Flag{
					dbFlag,
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "YAML seed file; the built in demo data is used when empty.",
					},
				},
				Action: func(ctx *cli.Context) error {
					return seed_db(ctx)
				},
			},
			{
				Name:  "issue-token",
				Usage: "Print a server token for the given email.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Required: true,
						Usage:    "Email to put in the token claims.",
					},
					&cli.DurationFlag{
						Name:  "ttl",
						Value: 14 * 24 * time.Hour,
						Usage: "Token lifetime.",
					},
				},
				Action: func(ctx *cli.Context) error {
					tok, err := server.IssueToken(ctx.String("email"), ctx.Duration("ttl"))
					if err != nil {
						return err
					}
					fmt.Fprintln(ctx.App.Writer, tok)
					return nil
				},
			},
			{
				Name:  "add-property",
				Usage: "Create a property on a running server.",
				Flags: append(propertyFlags(), serverFlags...),
				Action: func(ctx *cli.Context) error {
					return AddProperty(ctx.Context, getDefaultLogger(), ctx.String("server-endpoint"), ctx.String("auth-token"), propertyFromFlags(ctx))
				},
			},
			{
				Name:  "add-blog-post",
				Usage: "Create a blog post on a running server from a markdown file.",
				Flags: append(blogPostFlags(), serverFlags...),
				Action: func(ctx *cli.Context) error {
					body, err := blogPostFromFlags(ctx)
					if err != nil {
						return err
					}
					return AddBlogPost(ctx.Context, getDefaultLogger(), ctx.String("server-endpoint"), ctx.String("auth-token"), body)
				},
			},
		}}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func getDefaultLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	res := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}

func getConnPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	if url == "" {
		return nil, fmt.Errorf("must supply a database url")
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func serve_http(ctx *cli.Context) error {
	logger := getDefaultLogger()
	cfg := server.Config{
		DatabaseURL:     ctx.String("db-host"),
		Port:            ctx.String("listen-port"),
		AllowedOrigins:  splitList(ctx.String("allowed-origins")),
		MediaBucket:     ctx.String("media-bucket"),
		FirebaseEnabled: ctx.Bool("firebase"),

		FirebaseCredentials: ctx.Path("firebase-credentials"),
	}

	var pc places.Client
	if key := ctx.String("places-key"); key != "" {
		pc = places.NewClient(ctx.String("places-url"), key, userAgent, nil)
	} else {
		logger.Warn("no places api key, place suggestions disabled")
	}

	var s3c *s3.Client
	if cfg.MediaBucket != "" {
		awsCfg, err := config.LoadDefaultConfig(ctx.Context)
		if err != nil {
			return fmt.Errorf("could not load aws config: %w", err)
		}
		s3c = s3.NewFromConfig(awsCfg)
	}
	return server.RunHTTPServer(ctx.Context, logger, cfg, pc, s3c)
}

func run_mls_worker(ctx *cli.Context) error {
	logger := getDefaultLogger()
	fallback, key := ctx.String("mls-url"), ctx.String("mls-key")
	fc := func(feedURL string) (mls.Client, error) {
		if feedURL == "" {
			feedURL = fallback
		}
		if feedURL == "" {
			return nil, fmt.Errorf("no feed url configured")
		}
		return mls.NewClient(feedURL, key, userAgent, nil)
	}
	return worker.RunWorkerFunc(
		ctx.Context,
		logger,
		ctx.Duration("interval"),
		worker.MakeMLSWorkerFunc(ctx.String("server-endpoint"), ctx.String("auth-token"), fc),
	)
}

func sync_mls_listing(ctx *cli.Context) error {
	if ctx.String("mls-url") == "" {
		return fmt.Errorf("must supply mls-url")
	}
	c, err := mls.NewClient(ctx.String("mls-url"), ctx.String("mls-key"), userAgent, nil)
	if err != nil {
		return err
	}
	return worker.SyncMLSListing(
		ctx.Context,
		getDefaultLogger(),
		ctx.String("server-endpoint"),
		ctx.String("auth-token"),
		c,
		ctx.String("mls-id"),
	)
}

func migrate(ctx *cli.Context) error {
	pool, err := getConnPool(ctx.Context, ctx.String("db-host"))
	if err != nil {
		return err
	}
	defer pool.Close()
	return server.RunMigrations(ctx.Context, getDefaultLogger(), pool)
}

func seed_db(ctx *cli.Context) error {
	var (
		d   seed.Data
		err error
	)
	if f := ctx.String("file"); f != "" {
		b, rerr := os.ReadFile(f)
		if rerr != nil {
			return rerr
		}
		d, err = seed.Load(b)
	} else {
		d, err = seed.Default()
	}
	if err != nil {
		return err
	}
	pool, err := getConnPool(ctx.Context, ctx.String("db-host"))
	if err != nil {
		return err
	}
	defer pool.Close()
	return seed.Run(ctx.Context, getDefaultLogger(), dbgen.New(pool), d)
}
