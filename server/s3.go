package server

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/brojonat/gestate/content"
	"github.com/brojonat/gestate/upload"
	"github.com/google/uuid"
)

type mediaStore interface {
	PutMedia(ctx context.Context, key, contentType string, body []byte) error
}

type s3MediaStore struct {
	client *s3.Client
	bucket string
}

func (s *s3MediaStore) PutMedia(ctx context.Context, key, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("could not upload %s: %w", key, err)
	}
	return nil
}

// getMediaKey returns media/<kind>/<uuid>_<basename> where basename is the
// slugified original name with the extension the content was detected as.
func getMediaKey(res upload.Result, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	base = content.Slugify(base)
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("media/%s/%s_%s%s", res.Kind, uuid.NewString(), base, res.Extension)
}
