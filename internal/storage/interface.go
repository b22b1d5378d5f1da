package storage

import (
	"context"
)

// Uploader is implemented by content-addressed storage providers.
// Put returns the content identifier of a directory that contains obj
// under obj.Name.
type Uploader interface {
	Put(ctx context.Context, obj Object) (string, error)
	Close() error
}

// Logger interface for logging operations
type Logger interface {
	LogInfo(msg string, fields map[string]interface{})
	LogError(err error, msg string) error
}
