// Package storage implements the BlobStore interface on top of
// gocloud.dev/blob, so the image bucket can be a local directory in
// development and a cloud bucket in production by changing one URL.
package storage

import (
	"context"
	"log/slog"

	"lunchlog/config"
	"lunchlog/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Register the bucket schemes used across environments.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
)

type blobStore struct {
	bucket *blob.Bucket
	logger *slog.Logger
}

// BlobStoreParams holds dependencies for the BlobStore, injected by Fx
type BlobStoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewBlobStore opens the configured bucket and registers its shutdown hook.
func NewBlobStore(params BlobStoreParams) (service.BlobStore, error) {
	if params.Config.Storage == nil || params.Config.Storage.BucketURL == "" {
		return nil, errors.New("storage bucket URL is required")
	}

	bucket, err := blob.OpenBucket(params.Ctx, params.Config.Storage.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", params.Config.Storage.BucketURL)
	}

	params.Logger.Info("Blob store initialized",
		slog.String("bucket_url", params.Config.Storage.BucketURL),
	)

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing blob store")

			return errors.WithStack(bucket.Close())
		},
	})

	return &blobStore{
		bucket: bucket,
		logger: params.Logger,
	}, nil
}

// NewBlobStoreWithBucket wraps an already open bucket. Used by tests.
func NewBlobStoreWithBucket(bucket *blob.Bucket, logger *slog.Logger) service.BlobStore {
	return &blobStore{
		bucket: bucket,
		logger: logger,
	}
}

func (s *blobStore) Write(ctx context.Context, key string, data []byte, contentType string) error {
	opts := &blob.WriterOptions{
		ContentType: contentType,
	}
	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return errors.Wrapf(err, "failed to write blob %s", key)
	}

	return nil
}

func (s *blobStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		return errors.Wrapf(err, "failed to delete blob %s", key)
	}

	return nil
}
