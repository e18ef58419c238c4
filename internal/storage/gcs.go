package storage

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/config"
)

// GCSStore implements ObjectStore backed by a Google Cloud Storage bucket
type GCSStore struct {
	client *storage.Client
	bucket string
	base   string
}

// NewGCSStore creates a new GCS-backed object store. Credentials come from
// application default credentials unless explicit JSON is configured.
func NewGCSStore(ctx context.Context, cfg config.StorageConfig) (*GCSStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create storage client")
	}

	return &GCSStore{
		client: client,
		bucket: cfg.Bucket,
		base:   strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// Put uploads data under key and returns the object's public URL
func (s *GCSStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	wc := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return "", errors.Wrapf(err, "failed to write object %s", key)
	}
	if err := wc.Close(); err != nil {
		return "", errors.Wrapf(err, "failed to finalize object %s", key)
	}

	return fmt.Sprintf("%s/%s/%s", s.base, s.bucket, key), nil
}

// Delete removes the object stored under key
func (s *GCSStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Bucket(s.bucket).Object(key).Delete(ctx); err != nil {
		return errors.Wrapf(err, "failed to delete object %s", key)
	}
	return nil
}

// KeyFromURL recovers the object key from a URL previously returned by Put
func (s *GCSStore) KeyFromURL(url string) (string, error) {
	prefix := fmt.Sprintf("%s/%s/", s.base, s.bucket)
	if !strings.HasPrefix(url, prefix) {
		return "", errors.Errorf("url %s is not in bucket %s", url, s.bucket)
	}
	return strings.TrimPrefix(url, prefix), nil
}

// Close closes the underlying storage client
func (s *GCSStore) Close() error {
	return s.client.Close()
}
