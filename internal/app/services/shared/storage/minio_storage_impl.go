package storage

import (
	"context"
	"io"
	"strokewatch-service/internal/app/contracts"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
	BucketName  string
}

func NewMinioStorage(minioClient *minio.Client, bucketName string) contracts.Storage {
	return &minioStorage{
		MinioClient: minioClient,
		BucketName:  bucketName,
	}
}

func (m *minioStorage) UploadFile(ctx context.Context, file io.Reader, objectName string, size int64, contentType string) (string, error) {
	_, err := m.MinioClient.PutObject(ctx, m.BucketName, objectName, file, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return objectName, nil
}

type noopStorage struct{}

// NewNoopStorage is used when no object store is configured.
func NewNoopStorage() contracts.Storage {
	return &noopStorage{}
}

func (s *noopStorage) UploadFile(ctx context.Context, file io.Reader, objectName string, size int64, contentType string) (string, error) {
	return "", nil
}
