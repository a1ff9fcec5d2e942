package filestorage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/bathudi/admissions/internal/pkg/apperrors"
)

var (
	// ErrNotFound is returned when no object exists at a path
	ErrNotFound = apperrors.ErrDocumentNotFound
	// ErrInvalidPath is returned for absolute paths or paths escaping the storage root
	ErrInvalidPath = apperrors.NewBadRequestError("invalid file path")
)

// FileInfo describes a stored object
type FileInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Storage is a flat key space of storage-relative, slash-separated paths
type Storage interface {
	// Save writes r to relPath, replacing any existing object
	Save(ctx context.Context, relPath string, r io.Reader) error
	Open(ctx context.Context, relPath string) (io.ReadCloser, error)
	Stat(ctx context.Context, relPath string) (FileInfo, error)
	// Delete removes relPath. Deleting a missing object is not an error.
	Delete(ctx context.Context, relPath string) error
	Exists(ctx context.Context, relPath string) (bool, error)
	// URL returns the public address of relPath
	URL(relPath string) string
}

// CleanPath normalizes a storage-relative path and rejects traversal
func CleanPath(relPath string) (string, error) {
	p := strings.ReplaceAll(strings.TrimSpace(relPath), "\\", "/")
	if p == "" || strings.HasPrefix(p, "/") {
		return "", ErrInvalidPath
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", ErrInvalidPath
		}
	}
	p = path.Clean(p)
	if p == "." {
		return "", ErrInvalidPath
	}
	return p, nil
}

// IsNotFound reports whether err means the object does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func joinURL(base, relPath string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(relPath, "/")
}
