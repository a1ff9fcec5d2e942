package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bathudi/admissions/internal/pkg/logger"
)

// LocalStorage keeps files under a root directory on the local filesystem.
type LocalStorage struct {
	basePath string // root directory of all stored files
	baseURL  string // public prefix, e.g. http://localhost:8080/media
}

// NewLocalStorage creates a LocalStorage rooted at basePath, creating it when missing.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// fullPath maps a storage-relative path onto the filesystem
func (ls *LocalStorage) fullPath(relPath string) (string, error) {
	clean, err := CleanPath(relPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(clean)), nil
}

// Save writes the content of r to relPath
func (ls *LocalStorage) Save(_ context.Context, relPath string, r io.Reader) error {
	dstPath, err := ls.fullPath(relPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create subdirectory")
		return fmt.Errorf("failed to create subdirectory: %w", err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, r); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Debug().Str("path", relPath).Msg("File saved")
	return nil
}

// Open opens relPath for reading
func (ls *LocalStorage) Open(_ context.Context, relPath string) (io.ReadCloser, error) {
	p, err := ls.fullPath(relPath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Stat returns size and modification time of relPath
func (ls *LocalStorage) Stat(_ context.Context, relPath string) (FileInfo, error) {
	p, err := ls.fullPath(relPath)
	if err != nil {
		return FileInfo{}, err
	}
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return FileInfo{}, ErrNotFound
		}
		return FileInfo{}, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return FileInfo{}, ErrNotFound
	}
	return FileInfo{Path: relPath, Size: info.Size(), ModTime: info.ModTime()}, nil
}

// Exists reports whether a regular file is stored at relPath
func (ls *LocalStorage) Exists(ctx context.Context, relPath string) (bool, error) {
	_, err := ls.Stat(ctx, relPath)
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// Delete removes relPath. A missing file counts as deleted.
func (ls *LocalStorage) Delete(_ context.Context, relPath string) error {
	p, err := ls.fullPath(relPath)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn().Str("path", p).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", p).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", p).Msg("File deleted successfully")
	return nil
}

// URL returns the public address of relPath
func (ls *LocalStorage) URL(relPath string) string {
	if ls.baseURL == "" {
		return "/media/" + relPath
	}
	return joinURL(ls.baseURL, relPath)
}
