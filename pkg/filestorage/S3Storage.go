package filestorage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/adamgokit/s3/getoptions"
	"github.com/adampresley/adamgokit/s3/putoptions"
	"github.com/lorenzwed/lorenzwed/pkg/models"
)

// Full-size originals can take far longer than the client's default.
const s3PutTimeout = 5 * time.Minute

type S3StorageConfig struct {
	Bucket   string
	Prefix   string
	S3Client s3.S3Client
}

// S3Storage keeps blobs in an S3-compatible bucket, optionally under a prefix.
type S3Storage struct {
	bucket   string
	prefix   string
	s3Client s3.S3Client
}

func NewS3Storage(config S3StorageConfig) S3Storage {
	return S3Storage{
		bucket:   config.Bucket,
		prefix:   config.Prefix,
		s3Client: config.S3Client,
	}
}

func (s S3Storage) Writable() bool {
	return true
}

func (s S3Storage) Put(ctx context.Context, key string, body io.Reader) error {
	var (
		err       error
		objectKey string
	)

	if objectKey, err = s.objectKey(key); err != nil {
		return err
	}

	_, err = s.s3Client.Put(
		s.bucket,
		objectKey,
		body,
		putoptions.WithContext(ctx),
		putoptions.WithTimeout(s3PutTimeout),
		putoptions.WithContentType(contentTypeFor(objectKey)),
	)

	if err != nil {
		return fmt.Errorf("error uploading '%s' to bucket '%s': %w: %w", objectKey, s.bucket, models.ErrBackendUnavailable, err)
	}

	return nil
}

func (s S3Storage) Get(ctx context.Context, key string) (Object, error) {
	var (
		err       error
		objectKey string
		exists    bool
		object    s3.GetObjectResponse
	)

	if exists, err = s.Exists(ctx, key); err != nil {
		return Object{}, err
	}

	if !exists {
		return Object{}, fmt.Errorf("object '%s': %w", key, models.ErrNotFound)
	}

	objectKey, _ = s.objectKey(key)

	object, err = s.s3Client.Get(
		s.bucket,
		objectKey,
		getoptions.WithContext(ctx),
	)

	if err != nil {
		return Object{}, fmt.Errorf("error getting '%s' from bucket '%s': %w: %w", objectKey, s.bucket, models.ErrBackendUnavailable, err)
	}

	contentType := object.ContentType

	if contentType == "" || contentType == "binary/octet-stream" {
		contentType = contentTypeFor(objectKey)
	}

	return Object{
		Body:        object.Body,
		ContentType: contentType,
		Size:        int64(object.Size),
	}, nil
}

func (s S3Storage) Exists(ctx context.Context, key string) (bool, error) {
	var (
		err       error
		objectKey string
		stat      *s3.ObjectMetadata
	)

	if objectKey, err = s.objectKey(key); err != nil {
		return false, err
	}

	if stat, err = s.s3Client.StatObject(s.bucket, objectKey); err != nil {
		return false, fmt.Errorf("error retrieving metadata for '%s': %w: %w", objectKey, models.ErrBackendUnavailable, err)
	}

	return stat != nil, nil
}

func (s S3Storage) objectKey(key string) (string, error) {
	cleaned, err := CleanKey(key)

	if err != nil {
		return "", err
	}

	if s.prefix == "" {
		return cleaned, nil
	}

	return path.Join(s.prefix, cleaned), nil
}
