// Package seed loads the demo data set: icons, amenities, blog content,
// settings, a website, buildings and properties. Every record is upserted by
// its natural key so Run can be repeated safely.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/brojonat/gestate/content"
	"github.com/brojonat/gestate/server/dbgen"
	"github.com/brojonat/gestate/server/dbgen/jsonb"
	"github.com/jackc/pgx/v5/pgtype"
	"gopkg.in/yaml.v3"
)

const excerptLength = 200

//go:embed data.yaml
var defaultData []byte

type Data struct {
	Icons          []Icon         `yaml:"icons"`
	Amenities      []Amenity      `yaml:"amenities"`
	BlogCategories []BlogCategory `yaml:"blog_categories"`
	BlogPosts      []BlogPost     `yaml:"blog_posts"`
	Settings       map[string]any `yaml:"settings"`
	Buildings      []Building     `yaml:"buildings"`
	Properties     []Property     `yaml:"properties"`
	Websites       []Website      `yaml:"websites"`
}

type Icon struct {
	Name string `yaml:"name"`
	SVG  string `yaml:"svg"`
}

type Amenity struct {
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
}

type BlogCategory struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

type BlogPost struct {
	Title        string `yaml:"title"`
	Slug         string `yaml:"slug"`
	Category     string `yaml:"category"`
	Excerpt      string `yaml:"excerpt"`
	BodyMarkdown string `yaml:"body_markdown"`
	CoverImage   string `yaml:"cover_image"`
	Published    bool   `yaml:"published"`
}

type Building struct {
	Slug        string         `yaml:"slug"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Address     string         `yaml:"address"`
	City        string         `yaml:"city"`
	State       string         `yaml:"state"`
	Zipcode     string         `yaml:"zipcode"`
	Latitude    float64        `yaml:"latitude"`
	Longitude   float64        `yaml:"longitude"`
	Floors      int32          `yaml:"floors"`
	YearBuilt   int32          `yaml:"year_built"`
	Features    jsonb.Features `yaml:"features"`
	Images      jsonb.Images   `yaml:"images"`
	Amenities   []string       `yaml:"amenities"`
}

type Property struct {
	Slug        string         `yaml:"slug"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	ListingType string         `yaml:"listing_type"`
	Status      string         `yaml:"status"`
	Price       int64          `yaml:"price"`
	Bedrooms    int32          `yaml:"bedrooms"`
	Bathrooms   float64        `yaml:"bathrooms"`
	AreaSqft    int32          `yaml:"area_sqft"`
	Address     string         `yaml:"address"`
	City        string         `yaml:"city"`
	State       string         `yaml:"state"`
	Zipcode     string         `yaml:"zipcode"`
	Latitude    float64        `yaml:"latitude"`
	Longitude   float64        `yaml:"longitude"`
	Building    string         `yaml:"building"`
	Featured    bool           `yaml:"featured"`
	Features    jsonb.Features `yaml:"features"`
	Images      jsonb.Images   `yaml:"images"`
	Amenities   []string       `yaml:"amenities"`
}

type Website struct {
	Name         string            `yaml:"name"`
	Domain       string            `yaml:"domain"`
	Logo         string            `yaml:"logo"`
	ContactEmail string            `yaml:"contact_email"`
	Phone        string            `yaml:"phone"`
	BrandColors  jsonb.BrandColors `yaml:"brand_colors"`
	Socials      jsonb.Socials     `yaml:"socials"`
	Pages        []WebsitePage     `yaml:"pages"`
}

type WebsitePage struct {
	Slug      string         `yaml:"slug"`
	Title     string         `yaml:"title"`
	Published bool           `yaml:"published"`
	Sections  jsonb.Sections `yaml:"sections"`
}

// Load parses a seed document.
func Load(b []byte) (Data, error) {
	var d Data
	if err := yaml.Unmarshal(b, &d); err != nil {
		return d, fmt.Errorf("could not parse seed data: %w", err)
	}
	return d, nil
}

// Default returns the embedded demo data.
func Default() (Data, error) {
	return Load(defaultData)
}

// Run seeds d in dependency order. References between records (an amenity's
// icon, a property's building) are by name or slug and must resolve to a
// record in the same document.
func Run(ctx context.Context, l *slog.Logger, q *dbgen.Queries, d Data) error {
	icons := map[string]int64{}
	for _, i := range d.Icons {
		res, err := q.UpsertIcon(ctx, i.Name, i.SVG)
		if err != nil {
			return fmt.Errorf("icon %s: %w", i.Name, err)
		}
		icons[i.Name] = res.ID
	}
	l.Info("seeded icons", "count", len(icons))

	amenities := map[string]int64{}
	for _, a := range d.Amenities {
		var iconID pgtype.Int8
		if a.Icon != "" {
			id, ok := icons[a.Icon]
			if !ok {
				return fmt.Errorf("amenity %s: unknown icon %q", a.Name, a.Icon)
			}
			iconID = pgtype.Int8{Int64: id, Valid: true}
		}
		res, err := q.UpsertAmenity(ctx, a.Name, iconID)
		if err != nil {
			return fmt.Errorf("amenity %s: %w", a.Name, err)
		}
		amenities[a.Name] = res.ID
	}
	l.Info("seeded amenities", "count", len(amenities))

	if err := seedBlog(ctx, q, d); err != nil {
		return err
	}
	l.Info("seeded blog", "categories", len(d.BlogCategories), "posts", len(d.BlogPosts))

	for k, v := range d.Settings {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("setting %s: %w", k, err)
		}
		if _, err := q.UpsertSetting(ctx, k, b); err != nil {
			return fmt.Errorf("setting %s: %w", k, err)
		}
	}

	buildings := map[string]int64{}
	for _, b := range d.Buildings {
		res, err := q.UpsertBuilding(ctx, dbgen.CreateBuildingParams{
			Slug:        b.Slug,
			Name:        b.Name,
			Description: b.Description,
			Address:     b.Address,
			City:        b.City,
			State:       b.State,
			Zipcode:     b.Zipcode,
			Latitude:    b.Latitude,
			Longitude:   b.Longitude,
			Floors:      b.Floors,
			YearBuilt:   b.YearBuilt,
			Features:    orEmpty(b.Features),
			Images:      orEmptyImages(b.Images),
		})
		if err != nil {
			return fmt.Errorf("building %s: %w", b.Slug, err)
		}
		buildings[b.Slug] = res.ID
		ids, err := lookup(amenities, b.Amenities)
		if err != nil {
			return fmt.Errorf("building %s: %w", b.Slug, err)
		}
		if err := q.DeleteBuildingAmenities(ctx, res.ID); err != nil {
			return err
		}
		for _, id := range ids {
			if err := q.AddBuildingAmenity(ctx, res.ID, id); err != nil {
				return err
			}
		}
	}
	l.Info("seeded buildings", "count", len(buildings))

	for _, p := range d.Properties {
		arg := dbgen.CreatePropertyParams{
			Slug:        p.Slug,
			Title:       p.Title,
			Description: p.Description,
			ListingType: p.ListingType,
			Status:      p.Status,
			Price:       p.Price,
			Bedrooms:    p.Bedrooms,
			Bathrooms:   p.Bathrooms,
			AreaSqft:    p.AreaSqft,
			Address:     p.Address,
			City:        p.City,
			State:       p.State,
			Zipcode:     p.Zipcode,
			Latitude:    p.Latitude,
			Longitude:   p.Longitude,
			Featured:    p.Featured,
			Features:    orEmpty(p.Features),
			Images:      orEmptyImages(p.Images),
		}
		if p.Building != "" {
			id, ok := buildings[p.Building]
			if !ok {
				return fmt.Errorf("property %s: unknown building %q", p.Slug, p.Building)
			}
			arg.BuildingID = pgtype.Int8{Int64: id, Valid: true}
		}
		res, err := q.UpsertPropertyBySlug(ctx, arg)
		if err != nil {
			return fmt.Errorf("property %s: %w", p.Slug, err)
		}
		ids, err := lookup(amenities, p.Amenities)
		if err != nil {
			return fmt.Errorf("property %s: %w", p.Slug, err)
		}
		if err := q.DeletePropertyAmenities(ctx, res.ID); err != nil {
			return err
		}
		for _, id := range ids {
			if err := q.AddPropertyAmenity(ctx, res.ID, id); err != nil {
				return err
			}
		}
	}
	l.Info("seeded properties", "count", len(d.Properties))

	for _, w := range d.Websites {
		res, err := q.UpsertWebsite(ctx, dbgen.CreateWebsiteParams{
			Name:         w.Name,
			Domain:       w.Domain,
			BrandColors:  w.BrandColors,
			Logo:         w.Logo,
			ContactEmail: w.ContactEmail,
			Phone:        w.Phone,
			Socials:      w.Socials,
		})
		if err != nil {
			return fmt.Errorf("website %s: %w", w.Domain, err)
		}
		for _, p := range w.Pages {
			sections := p.Sections
			if sections == nil {
				sections = jsonb.Sections{}
			}
			if _, err := q.UpsertWebsitePage(ctx, dbgen.CreateWebsitePageParams{
				WebsiteID: res.ID,
				Slug:      p.Slug,
				Title:     p.Title,
				Sections:  sections,
				Published: p.Published,
			}); err != nil {
				return fmt.Errorf("website %s page %s: %w", w.Domain, p.Slug, err)
			}
		}
	}
	l.Info("seeded websites", "count", len(d.Websites))
	return nil
}

func seedBlog(ctx context.Context, q *dbgen.Queries, d Data) error {
	categories := map[string]int64{}
	for _, c := range d.BlogCategories {
		res, err := q.UpsertBlogCategory(ctx, c.Name, c.Slug)
		if err != nil {
			return fmt.Errorf("blog category %s: %w", c.Slug, err)
		}
		categories[c.Slug] = res.ID
	}
	for _, p := range d.BlogPosts {
		slug := p.Slug
		if slug == "" {
			slug = content.Slugify(p.Title)
		}
		html, err := content.RenderMarkdown(p.BodyMarkdown)
		if err != nil {
			return fmt.Errorf("blog post %s: %w", slug, err)
		}
		excerpt := p.Excerpt
		if excerpt == "" {
			excerpt = content.Excerpt(p.BodyMarkdown, excerptLength)
		}
		arg := dbgen.CreateBlogPostParams{
			Title:        p.Title,
			Slug:         slug,
			Excerpt:      excerpt,
			BodyMarkdown: p.BodyMarkdown,
			BodyHTML:     html,
			CoverImage:   p.CoverImage,
			Published:    p.Published,
		}
		if p.Category != "" {
			id, ok := categories[p.Category]
			if !ok {
				return fmt.Errorf("blog post %s: unknown category %q", slug, p.Category)
			}
			arg.CategoryID = pgtype.Int8{Int64: id, Valid: true}
		}
		if _, err := q.UpsertBlogPost(ctx, arg); err != nil {
			return fmt.Errorf("blog post %s: %w", slug, err)
		}
	}
	return nil
}

func lookup(ids map[string]int64, names []string) ([]int64, error) {
	res := make([]int64, 0, len(names))
	for _, n := range names {
		id, ok := ids[n]
		if !ok {
			return nil, fmt.Errorf("unknown amenity %q", n)
		}
		res = append(res, id)
	}
	return res, nil
}

func orEmpty(f jsonb.Features) jsonb.Features {
	if f == nil {
		return jsonb.Features{}
	}
	return f
}

func orEmptyImages(i jsonb.Images) jsonb.Images {
	if i == nil {
		return jsonb.Images{}
	}
	return i
}
