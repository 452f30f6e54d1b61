package eventbus

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/archestra-labs/memcore/internal/logger"
)

const snapshotObjectKey = "stats/snapshot.json"

// MirrorConfig mirrors core/internal/storage.Config, trimmed to a single
// bucket since the stats snapshot has exactly one object to manage.
type MirrorConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// Mirror is an optional, best-effort S3-compatible copy of the stats
// snapshot, adapted from the teacher's storage.Client. Every failure is
// logged and swallowed: losing the mirror must never take down the
// primary on-disk snapshot write in persist.go.
type Mirror struct {
	mc     *minio.Client
	bucket string
}

func NewMirror(cfg MirrorConfig) (*Mirror, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	return &Mirror{mc: mc, bucket: cfg.Bucket}, nil
}

// Init creates the snapshot bucket if it doesn't already exist.
func (m *Mirror) Init(ctx context.Context) error {
	exists, err := m.mc.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", m.bucket, err)
	}
	if !exists {
		if err := m.mc.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", m.bucket, err)
		}
		logger.Info("stats mirror bucket created", "bucket", m.bucket)
	}
	return nil
}

// Upload best-effort copies the snapshot bytes to the mirror bucket.
// Called from the persist writer goroutine after the local write
// succeeds; never returns an error since a mirror outage must not affect
// the primary snapshot path.
func (m *Mirror) Upload(data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := m.mc.PutObject(ctx, m.bucket, snapshotObjectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		logger.Warn("stats mirror upload failed", "bucket", m.bucket, "error", err)
		return
	}
	logger.Debug("stats snapshot mirrored", "bucket", m.bucket, "size", len(data))
}

// Healthy reports whether the mirror bucket is reachable.
func (m *Mirror) Healthy(ctx context.Context) bool {
	_, err := m.mc.BucketExists(ctx, m.bucket)
	return err == nil
}
