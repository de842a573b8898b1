package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/brojonat/gestate/server"
	"github.com/brojonat/gestate/server/dbgen"
	"github.com/urfave/cli/v2"
)

func blogPostFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Required: true},
		&cli.StringFlag{Name: "slug", Usage: "Defaults to the slugified title."},
		&cli.PathFlag{Name: "body-file", Aliases: []string{"f"}, Required: true, Usage: "Markdown file with the post body."},
		&cli.StringFlag{Name: "excerpt", Usage: "Defaults to the start of the body."},
		&cli.Int64Flag{Name: "category-id"},
		&cli.StringFlag{Name: "cover-image"},
		&cli.BoolFlag{Name: "publish"},
	}
}

func blogPostFromFlags(ctx *cli.Context) (server.BlogPostBody, error) {
	b, err := os.ReadFile(ctx.Path("body-file"))
	if err != nil {
		return server.BlogPostBody{}, err
	}
	body := server.BlogPostBody{
		Title:        ctx.String("title"),
		Slug:         ctx.String("slug"),
		Excerpt:      ctx.String("excerpt"),
		BodyMarkdown: string(b),
		CoverImage:   ctx.String("cover-image"),
		Published:    ctx.Bool("publish"),
	}
	if ctx.IsSet("category-id") {
		id := ctx.Int64("category-id")
		body.CategoryID = &id
	}
	return body, nil
}

func AddBlogPost(ctx context.Context, l *slog.Logger, endpoint, authToken string, body server.BlogPostBody) error {
	var res dbgen.BlogPost
	if err := postJSON(ctx, endpoint, "/blog/post", authToken, body, &res); err != nil {
		return err
	}
	l.Info("created blog post", "id", res.ID, "slug", res.Slug, "published", res.Published)
	return nil
}
