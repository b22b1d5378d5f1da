package w3s

import (
	"io"
	"io/fs"
	"time"

	"github.com/K1mc4n/GoClip/internal/storage"
)

// file exposes a storage.Object as the fs.File the web3.storage client reads.
// The client names the wrapped entry after Stat().Name().
type file struct {
	io.Reader
	info fileInfo
}

func newFile(obj storage.Object) *file {
	return &file{
		Reader: obj.Body,
		info: fileInfo{
			name:    obj.Name,
			size:    obj.Size,
			modTime: time.Now(),
		},
	}
}

func (f *file) Stat() (fs.FileInfo, error) { return f.info, nil }

// Close is a no-op, the body belongs to the caller
func (f *file) Close() error { return nil }

type fileInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (i fileInfo) Name() string       { return i.name }
func (i fileInfo) Size() int64        { return i.size }
func (i fileInfo) Mode() fs.FileMode  { return 0o444 }
func (i fileInfo) ModTime() time.Time { return i.modTime }
func (i fileInfo) IsDir() bool        { return false }
func (i fileInfo) Sys() interface{}   { return nil }
