package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/aHaldin/pickmyartist/internal/config"
	"github.com/aHaldin/pickmyartist/pkg/logger"
)

// MinIOStorage handles profile media uploads to MinIO.
type MinIOStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIOStorage creates the MinIO client.
// The bucket is NOT auto-created: a missing bucket is a setup task the
// operator has to do once, and upload errors point them at it.
func NewMinIOStorage(cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	s := &MinIOStorage{
		client: client,
		bucket: cfg.Bucket,
	}

	exists, err := client.BucketExists(context.Background(), cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		logger.Warn("storage bucket missing", map[string]interface{}{
			"bucket": cfg.Bucket,
			"hint":   BucketSetupHint(cfg.Bucket),
		})
	}

	return s, nil
}

// Upload stores a file in MinIO, overwriting any object at the same key.
// key: path inside the bucket, e.g. avatars/<user-id>-<unix-ms>.jpg
func (s *MinIOStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	reader := bytes.NewReader(data)

	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		reader,
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		if IsBucketNotFound(err) {
			return "", fmt.Errorf("%s: %w", BucketSetupHint(s.bucket), err)
		}
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}

	return s.PublicURL(key), nil
}

// Delete removes a file from MinIO.
func (s *MinIOStorage) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// PublicURL builds the anonymous-read URL for an object key.
// Format: http://<endpoint>/<bucket>/<key>
func (s *MinIOStorage) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	scheme := "http"
	if s.client.EndpointURL().Scheme == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.bucket, key)
}

// IsBucketNotFound reports whether err is MinIO's missing-bucket error.
func IsBucketNotFound(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchBucket"
}

// BucketSetupHint is the actionable message shown when the media bucket
// does not exist yet.
func BucketSetupHint(bucket string) string {
	return fmt.Sprintf(
		`storage bucket %q missing - create a public-read bucket named %q in the MinIO console, then retry the upload`,
		bucket, bucket,
	)
}
