// Package storage persists uploaded post media and avatars.
package storage

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/campus-social/internal/domain/port"
	"github.com/oksasatya/campus-social/pkg/helpers"
)

var ErrNotConfigured = errors.New("gcs not configured")

// Uploaded objects are immutable; every upload gets a fresh name.
const cacheControl = "public, max-age=31536000, immutable"

type GCSStore struct {
	Client *storage.Client
	Bucket string
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{Client: client, Bucket: bucket}
}

// Upload writes r to objectPath and returns its public URL.
func (s *GCSStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if s == nil || s.Client == nil || s.Bucket == "" {
		return "", ErrNotConfigured
	}
	wc := s.Client.Bucket(s.Bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = cacheControl
	wc.ChunkSize = 0 // single request; uploads are capped by the handler
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return helpers.PublicURL(s.Bucket, objectPath), nil
}

var _ port.AssetStore = (*GCSStore)(nil)
