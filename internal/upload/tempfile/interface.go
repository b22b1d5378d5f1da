package tempfile

import (
	"io"
	"time"
)

// TempFileManager defines the interface for staging selected files on disk
type TempFileManager interface {
	// Stage copies r into a fresh managed directory as name and returns the file path and size
	Stage(name string, r io.Reader) (string, int64, error)

	// Remove deletes a staged file and its directory
	Remove(path string) error

	// CleanupAll removes all managed directories
	CleanupAll() error

	// Touch marks a staged file as in use
	Touch(path string)

	// RemoveIdle removes staged files not touched within maxIdle
	RemoveIdle(maxIdle time.Duration) (int, error)

	// IsManaged checks if a staged file is managed by this manager
	IsManaged(path string) bool
}
