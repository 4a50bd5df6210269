// Package archive stores published calendar snapshots.
package archive

import (
	"context"
	"fmt"

	"github.com/newthinker/finquant/internal/config"
	"github.com/newthinker/finquant/internal/core"
)

// Storage is a flat key/value object store for snapshot files. Keys use
// forward slashes, e.g. "calendars/taiwan/2023.csv".
type Storage interface {
	// Write stores data under key, replacing any previous object
	Write(ctx context.Context, key string, data []byte) error

	// Read retrieves the object stored under key
	Read(ctx context.Context, key string) ([]byte, error)

	// List returns all keys beginning with prefix in lexical order. The
	// prefix is a plain string prefix, not a directory.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes the object stored under key
	Delete(ctx context.Context, key string) error

	// Exists checks if an object is stored under key
	Exists(ctx context.Context, key string) (bool, error)
}

// New opens the backend selected by cfg.Type.
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "localfs":
		return NewLocalFS(cfg.Path)
	case "s3":
		return NewS3(S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
	default:
		return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("unknown storage type %q", cfg.Type))
	}
}

func storageErr(op, key string, err error) error {
	return core.WrapError(core.ErrStorageFailed, fmt.Errorf("%s %s: %w", op, key, err))
}
