package infra

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sunnybharadwajp/dhavi-creations-store/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrObjectNotFound is returned by Remove when the blob does not exist, so
// callers can distinguish "already gone" from a store outage.
var ErrObjectNotFound = errors.New("blob object not found")

// ErrNotOwnURL is returned when a URL does not point into our bucket.
var ErrNotOwnURL = errors.New("url does not belong to the blob store")

// BlobStore is the external binary object storage the image workflow writes
// to. Objects are path-addressed and publicly readable via the returned URL.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, url string) error
}

// MinioStore implements BlobStore against any S3-compatible endpoint.
type MinioStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

// NewBlobStore connects to the configured S3-compatible endpoint and ensures
// the bucket exists.
func NewBlobStore(cfg *config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.BlobEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.BlobAccessKey, cfg.BlobSecretKey, ""),
		Secure: cfg.BlobUseSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.BlobBucket)
	if err != nil {
		return nil, fmt.Errorf("blob store unreachable: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BlobBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", cfg.BlobBucket, err)
		}
	}

	return &MinioStore{
		client:        client,
		bucket:        cfg.BlobBucket,
		publicBaseURL: strings.TrimRight(cfg.BlobPublicBaseURL, "/"),
	}, nil
}

// Put stores the object and returns its publicly resolvable URL.
func (s *MinioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return s.publicBaseURL + "/" + key, nil
}

// Remove deletes the object behind a public URL. Returns ErrObjectNotFound
// when the object is already absent.
func (s *MinioStore) Remove(ctx context.Context, url string) error {
	key, err := s.keyFromURL(url)
	if err != nil {
		return err
	}

	// Stat first: RemoveObject is a silent no-op on missing keys, but the
	// caller needs "deleted" and "not found" to be distinguishable.
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
			return ErrObjectNotFound
		}
		return err
	}

	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

func (s *MinioStore) keyFromURL(url string) (string, error) {
	if !strings.HasPrefix(url, s.publicBaseURL+"/") {
		return "", ErrNotOwnURL
	}
	return strings.TrimPrefix(url, s.publicBaseURL+"/"), nil
}
