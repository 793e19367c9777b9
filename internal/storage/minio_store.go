package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/armguard_console/internal/config"
)

// MinioStore - архив снимков доказательств в бакете MinIO
type MinioStore struct {
	client  *minio.Client
	bucket  string
	baseURL *url.URL
	useSSL  bool
}

// NewMinioStore подключается к MinIO и создает бакет, если его нет
func NewMinioStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*MinioStore, error) {
	if !cfg.ArchiveEnabled() {
		return nil, fmt.Errorf("MINIO_ACCESS_KEY / MINIO_SECRET_KEY are not set")
	}

	cli, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	var base *url.URL
	if cfg.MinioPublicBaseURL != "" {
		base, err = url.Parse(cfg.MinioPublicBaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid MINIO_PUBLIC_BASE_URL: %w", err)
		}
	}

	store := &MinioStore{
		client:  cli,
		bucket:  cfg.MinioBucket,
		baseURL: base,
		useSSL:  cfg.MinioUseSSL,
	}
	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"endpoint": cfg.MinioEndpoint,
		"bucket":   cfg.MinioBucket,
	}).Info("Connected to MinIO evidence archive")
	return store, nil
}

func (s *MinioStore) ensureBucket(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	if err != nil {
		exists, errExists := s.client.BucketExists(ctx, s.bucket)
		if errExists != nil || !exists {
			return fmt.Errorf("failed to create or check bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// Put загружает объект и возвращает ссылку на него
func (s *MinioStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object to minio: %w", err)
	}
	return s.objectURL(key), nil
}

// objectURL - публичный адрес, если задан MINIO_PUBLIC_BASE_URL, иначе прямой адрес S3
func (s *MinioStore) objectURL(key string) string {
	return ObjectURL(s.baseURL, s.useSSL, s.client.EndpointURL().Host, s.bucket, key)
}

func ObjectURL(base *url.URL, useSSL bool, host, bucket, key string) string {
	if base != nil {
		u := *base
		u.Path = strings.TrimSuffix(u.Path, "/") + "/" + key
		return u.String()
	}
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, host, bucket, key)
}
