package upload

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestClassify_SVG(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    string
		wantErr bool
	}{
		{
			name: "plain svg",
			file: "logo.svg",
			data: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect width="10" height="10"/></svg>`,
		},
		{
			name: "xml prolog",
			file: "logo.SVG",
			data: `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`,
		},
		{
			name:    "svg extension without markup",
			file:    "logo.svg",
			data:    "definitely not an svg",
			wantErr: true,
		},
		{
			name:    "script element",
			file:    "logo.svg",
			data:    `<svg><script>alert(1)</script></svg>`,
			wantErr: true,
		},
		{
			name:    "event handler attribute",
			file:    "logo.svg",
			data:    `<svg onload="alert(1)"></svg>`,
			wantErr: true,
		},
		{
			name:    "javascript href",
			file:    "logo.svg",
			data:    `<svg><a href="javascript:alert(1)"><text>x</text></a></svg>`,
			wantErr: true,
		},
		{
			name:    "namespace prefixed script",
			file:    "logo.svg",
			data:    `<svg xmlns="http://www.w3.org/2000/svg" xmlns:s="http://www.w3.org/2000/svg"><s:script>alert(1)</s:script></svg>`,
			wantErr: true,
		},
		{
			name:    "handler after slash",
			file:    "logo.svg",
			data:    `<svg/onload=alert(1)>`,
			wantErr: true,
		},
		{
			name:    "entity encoded javascript href",
			file:    "logo.svg",
			data:    `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink"><a xlink:href="&#106;avascript:alert(1)"><text>x</text></a></svg>`,
			wantErr: true,
		},
		{
			name:    "whitespace split scheme",
			file:    "logo.svg",
			data:    `<svg><a href=" java&#x09;script:alert(1)"><text>x</text></a></svg>`,
			wantErr: true,
		},
		{
			name:    "data url animation",
			file:    "logo.svg",
			data:    `<svg><a><set attributeName="href" to="data:text/html,x"/></a></svg>`,
			wantErr: true,
		},
		{
			name:    "foreign object",
			file:    "logo.svg",
			data:    `<svg><foreignObject><div>x</div></foreignObject></svg>`,
			wantErr: true,
		},
		{
			name:    "entity declaration",
			file:    "logo.svg",
			data:    `<?xml version="1.0"?><!DOCTYPE svg [<!ENTITY x "y">]><svg>&x;</svg>`,
			wantErr: true,
		},
		{
			name:    "unclosed markup",
			file:    "logo.svg",
			data:    `<svg><rect>`,
			wantErr: true,
		},
		{
			name: "plain link and named entity",
			file: "logo.svg",
			data: `<svg xmlns="http://www.w3.org/2000/svg"><a href="https://example.com/"><text>a&nbsp;b</text></a></svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Classify(tt.file, []byte(tt.data), Limits{})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidUpload)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, KindSVG, res.Kind)
			assert.Equal(t, "image/svg+xml", res.ContentType)
		})
	}
}

func TestClassify_Raster(t *testing.T) {
	res, err := Classify("house.png", encodePNG(t, 4, 3), Limits{})
	require.NoError(t, err)
	assert.Equal(t, KindRaster, res.Kind)
	assert.Equal(t, "image/png", res.ContentType)
	assert.Equal(t, ".png", res.Extension)
	assert.Equal(t, 4, res.Width)
	assert.Equal(t, 3, res.Height)

	res, err = Classify("house.jpg", encodeJPEG(t, 8, 8), Limits{})
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", res.ContentType)
}

func TestClassify_RasterRejects(t *testing.T) {
	pngData := encodePNG(t, 20, 10)
	tests := []struct {
		name string
		file string
		data []byte
		lim  Limits
	}{
		{name: "empty", file: "a.png", data: nil},
		{name: "unreadable png", file: "a.png", data: []byte("this is not image data at all")},
		{name: "truncated png", file: "a.png", data: pngData[:12]},
		{name: "text file", file: "notes.txt", data: []byte("hello")},
		{name: "too wide", file: "a.png", data: pngData, lim: Limits{MaxWidth: 10}},
		{name: "too tall", file: "a.png", data: pngData, lim: Limits{MaxHeight: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.file, tt.data, tt.lim)
			assert.ErrorIs(t, err, ErrInvalidUpload)
		})
	}
}
