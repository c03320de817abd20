package storage

import (
	"bytes"
	"context"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	Client     *minio.Client
	BucketName string
}

func NewMinioStorage(client *minio.Client, bucketName string) contracts.StorageService {
	return &minioStorage{
		Client:     client,
		BucketName: bucketName,
	}
}

func (s *minioStorage) StoreObject(ctx context.Context, objectName, contentType string, data []byte) error {
	exists, err := s.Client.BucketExists(ctx, s.BucketName)
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, s.BucketName)
	}
	if !exists {
		if err := s.Client.MakeBucket(ctx, s.BucketName, minio.MakeBucketOptions{}); err != nil {
			return exceptions.ErrMinioCreateObject(err, s.BucketName)
		}
	}

	reader := bytes.NewReader(data)
	_, err = s.Client.PutObject(ctx, s.BucketName, objectName, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, s.BucketName)
	}
	return nil
}
