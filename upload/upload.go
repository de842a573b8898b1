// Package upload classifies and validates user supplied media. A file is
// accepted either as a raster image whose dimensions can be probed or as an
// SVG document.
package upload

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	// registered decoders for image.DecodeConfig
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
)

type Kind string

const (
	KindSVG    Kind = "svg"
	KindRaster Kind = "raster"
)

// ErrInvalidUpload is intentionally generic; callers surface it as-is.
var ErrInvalidUpload = errors.New("The file must be an image or SVG.")

var rasterMIMEs = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
}

// elements that run script or embed arbitrary markup, by local name
var svgBannedElements = map[string]bool{
	"script":        true,
	"foreignobject": true,
	"iframe":        true,
	"embed":         true,
	"object":        true,
}

// attributes whose values are URLs or animation targets, by local name
var svgURLAttrs = map[string]bool{
	"href":   true,
	"src":    true,
	"values": true,
	"from":   true,
	"to":     true,
	"by":     true,
}

var svgBannedSchemes = []string{"javascript:", "vbscript:", "data:"}

// Limits bounds raster dimensions. Zero values mean unbounded.
type Limits struct {
	MaxWidth  int
	MaxHeight int
}

// Result describes an accepted upload.
type Result struct {
	Kind        Kind
	ContentType string
	Extension   string
	Width       int
	Height      int
}

// Classify validates data and reports what kind of media it is. The file name
// is only used for its extension.
func Classify(name string, data []byte, lim Limits) (Result, error) {
	if len(data) == 0 {
		return Result{}, ErrInvalidUpload
	}
	ext := strings.ToLower(filepath.Ext(name))
	mt := mimetype.Detect(data)
	if ext == ".svg" || mt.Is("image/svg+xml") {
		return classifySVG(data)
	}
	return classifyRaster(data, mt, lim)
}

func classifySVG(data []byte) (Result, error) {
	lower := bytes.ToLower(data)
	if !bytes.Contains(lower, []byte("<svg")) && !bytes.Contains(lower, []byte("<?xml")) {
		return Result{}, ErrInvalidUpload
	}
	// SVG is an active document format, so reject anything that can run script.
	if err := checkSVGTokens(data); err != nil {
		return Result{}, ErrInvalidUpload
	}
	return Result{Kind: KindSVG, ContentType: "image/svg+xml", Extension: ".svg"}, nil
}

// checkSVGTokens walks the document and fails on markup that can execute.
// Documents that don't parse fail too, since browsers recover from markup
// this parser rejects.
func checkSVGTokens(data []byte) error {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.Strict = true
	d.Entity = xml.HTMLEntity
	sawSVG := false
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			name := strings.ToLower(t.Name.Local)
			if name == "svg" {
				sawSVG = true
			}
			if svgBannedElements[name] {
				return fmt.Errorf("element %s not allowed", t.Name.Local)
			}
			for _, a := range t.Attr {
				if err := checkSVGAttr(a); err != nil {
					return err
				}
			}
		case xml.ProcInst:
			if strings.EqualFold(t.Target, "xml-stylesheet") {
				return errors.New("stylesheet instructions not allowed")
			}
		case xml.Directive:
			if bytes.Contains(bytes.ToUpper(t), []byte("ENTITY")) {
				return errors.New("entity declarations not allowed")
			}
		}
	}
	if !sawSVG {
		return errors.New("no svg element")
	}
	return nil
}

func checkSVGAttr(a xml.Attr) error {
	name := strings.ToLower(a.Name.Local)
	if strings.HasPrefix(name, "on") {
		return fmt.Errorf("event attribute %s not allowed", a.Name.Local)
	}
	if !svgURLAttrs[name] {
		return nil
	}
	// the decoder has already resolved character references
	v := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, a.Value)
	for _, scheme := range svgBannedSchemes {
		if strings.Contains(v, scheme) {
			return fmt.Errorf("%s url not allowed in %s", scheme, a.Name.Local)
		}
	}
	return nil
}

func classifyRaster(data []byte, mt *mimetype.MIME, lim Limits) (Result, error) {
	var ct string
	for m := mt; m != nil; m = m.Parent() {
		if _, ok := rasterMIMEs[m.String()]; ok {
			ct = m.String()
			break
		}
	}
	if ct == "" {
		return Result{}, ErrInvalidUpload
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return Result{}, ErrInvalidUpload
	}
	if lim.MaxWidth > 0 && cfg.Width > lim.MaxWidth {
		return Result{}, ErrInvalidUpload
	}
	if lim.MaxHeight > 0 && cfg.Height > lim.MaxHeight {
		return Result{}, ErrInvalidUpload
	}
	return Result{
		Kind:        KindRaster,
		ContentType: ct,
		Extension:   rasterMIMEs[ct],
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}
