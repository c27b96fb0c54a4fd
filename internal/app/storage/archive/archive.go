package archive

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"scribe/internal/config"
)

// Archiver keeps a copy of uploaded media
type Archiver interface {
	// Archive stores the file at localPath and returns its object key
	Archive(ctx context.Context, localPath, fileName, contentType string) (string, error)
}

// ObjectKey builds uploads/<yyyy>/<mm>/<dd>/<id><ext> with the extension of fileName, lowercased
func ObjectKey(now time.Time, id, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("uploads/%s/%s%s", now.UTC().Format("2006/01/02"), id, ext)
}

// NopArchiver is used when no object store is configured
type NopArchiver struct{}

func (NopArchiver) Archive(ctx context.Context, localPath, fileName, contentType string) (string, error) {
	return "", nil
}

// MinioArchiver implements Archiver using MinIO
type MinioArchiver struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
	now    func() time.Time
}

// NewMinioArchiver connects to the configured endpoint and creates the bucket when missing
func NewMinioArchiver(ctx context.Context, settings config.ArchiveSettings, logger *zap.Logger) (*MinioArchiver, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := minio.New(settings.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(settings.AccessKey, settings.SecretKey, ""),
		Secure: settings.UseSSL,
		Region: "us-east-1",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, settings.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, settings.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("Created archive bucket", zap.String("bucket", settings.Bucket))
	}

	return &MinioArchiver{
		client: client,
		bucket: settings.Bucket,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Archive uploads localPath under a fresh object key
func (a *MinioArchiver) Archive(ctx context.Context, localPath, fileName, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	now := a.now()
	key := ObjectKey(now, uuid.NewString(), fileName)

	info, err := a.client.FPutObject(ctx, a.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-name": fileName,
			"uploaded-at":   now.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to MinIO: %w", err)
	}

	a.logger.Debug("Archived upload", zap.String("key", key), zap.Int64("size", info.Size))
	return key, nil
}
