package jsonb

// Features is a flat list of property or building highlights ("Balcony",
// "In-unit laundry", ...).
type Features []string

type Image struct {
	URL       string `json:"url" yaml:"url"`
	Alt       string `json:"alt,omitempty" yaml:"alt"`
	SortOrder int    `json:"sort_order" yaml:"sort_order"`
}

type Images []Image

type BrandColors struct {
	Primary   string `json:"primary" yaml:"primary"`
	Secondary string `json:"secondary" yaml:"secondary"`
	Accent    string `json:"accent" yaml:"accent"`
}

type Socials struct {
	Facebook  string `json:"facebook,omitempty" yaml:"facebook"`
	Instagram string `json:"instagram,omitempty" yaml:"instagram"`
	Twitter   string `json:"twitter,omitempty" yaml:"twitter"`
	Linkedin  string `json:"linkedin,omitempty" yaml:"linkedin"`
}

// Section is one presentational block of a website page. Type selects the
// front-end component (hero, featured_properties, testimonials, ...) and Props
// is handed to it untouched.
type Section struct {
	Type  string         `json:"type" yaml:"type"`
	Props map[string]any `json:"props,omitempty" yaml:"props"`
}

type Sections []Section
