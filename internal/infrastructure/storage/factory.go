package storage

import (
	"context"
	"fmt"

	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/shared/config"
)

// NewBlobStoreFromConfig selects the backend named by storage.type.
func NewBlobStoreFromConfig(ctx context.Context, cfg config.StorageConfig) (gallery.BlobStore, error) {
	switch cfg.Type {
	case config.StorageFilesystem, "":
		return NewFileSystemStore(cfg.Root)
	case config.StorageS3:
		client, err := NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return NewS3Store(client, cfg.S3.Bucket, cfg.S3.Prefix), nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
}
