package s3

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/TimBERNIC/tedvin-backend/internal/domain"
)

// folderMarker is the zero-byte object written alongside every upload so a
// folder exists as a deletable thing. Object storage has no real folders;
// the marker is what DeleteFolder ultimately removes.
const folderMarker = ".keep"

// MediaStorage stores media on a MinIO/S3 bucket. Object keys double as the
// media ids exposed to the rest of the service.
type MediaStorage struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

func NewMediaStorage(endpoint, accessKey, secretKey, bucket string, useSSL bool, logger *zap.Logger) (*MediaStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	// Create the bucket if it doesn't exist.
	err = client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := client.BucketExists(context.Background(), bucket)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)", bucket, err, errBucketExists)
		}
	}

	logger.Info("Media storage initialized", zap.String("endpoint", endpoint), zap.String("bucket", bucket))
	return &MediaStorage{
		client: client,
		bucket: bucket,
		logger: logger.Named("MediaStorage"),
	}, nil
}

func (s *MediaStorage) Upload(ctx context.Context, data []byte, folder string) (*domain.MediaObject, error) {
	key := fmt.Sprintf("%s/%s", folder, uuid.New().String())

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		s.logger.Error("PutObject failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("failed to upload object %s to bucket %s: %w", key, s.bucket, err)
	}

	markerKey := fmt.Sprintf("%s/%s", folder, folderMarker)
	if _, err := s.client.PutObject(ctx, s.bucket, markerKey, bytes.NewReader(nil), 0, minio.PutObjectOptions{}); err != nil {
		s.logger.Warn("Failed to write folder marker", zap.String("key", markerKey), zap.Error(err))
	}

	url := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, key)
	s.logger.Info("Object uploaded", zap.String("key", key), zap.Int("size_bytes", len(data)))
	return &domain.MediaObject{ID: key, URL: url}, nil
}

func (s *MediaStorage) Delete(ctx context.Context, id string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, id, minio.RemoveObjectOptions{}); err != nil {
		s.logger.Error("RemoveObject failed", zap.String("key", id), zap.Error(err))
		return fmt.Errorf("failed to delete object %s: %w", id, err)
	}
	s.logger.Info("Object deleted", zap.String("key", id))
	return nil
}

// DeleteFolder removes an empty folder. It fails with ErrFolderNotEmpty while
// any object other than the folder marker remains under the prefix.
func (s *MediaStorage) DeleteFolder(ctx context.Context, path string) error {
	prefix := strings.TrimSuffix(path, "/") + "/"
	markerKey := prefix + folderMarker

	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if object.Err != nil {
			s.logger.Error("ListObjects failed", zap.String("prefix", prefix), zap.Error(object.Err))
			return fmt.Errorf("failed to list folder %s: %w", path, object.Err)
		}
		if object.Key != markerKey {
			return domain.ErrFolderNotEmpty
		}
	}

	if err := s.client.RemoveObject(ctx, s.bucket, markerKey, minio.RemoveObjectOptions{}); err != nil {
		s.logger.Error("Failed to remove folder marker", zap.String("key", markerKey), zap.Error(err))
		return fmt.Errorf("failed to delete folder %s: %w", path, err)
	}
	s.logger.Info("Folder deleted", zap.String("path", path))
	return nil
}
