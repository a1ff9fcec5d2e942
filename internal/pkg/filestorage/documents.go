package filestorage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DocumentRoot is the prefix of every application document path
const DocumentRoot = "applications"

// DocumentStore places application documents under
// applications/<folder>/<subfolder>/yyyy/mm/dd/<filename>.
type DocumentStore struct {
	storage Storage
	now     func() time.Time
	logger  zerolog.Logger
}

// DocumentStoreOption customizes a DocumentStore
type DocumentStoreOption func(*DocumentStore)

// WithClock sets the clock used for the date segment
func WithClock(now func() time.Time) DocumentStoreOption {
	return func(d *DocumentStore) { d.now = now }
}

// NewDocumentStore creates a DocumentStore on top of storage
func NewDocumentStore(storage Storage, logger zerolog.Logger, opts ...DocumentStoreOption) *DocumentStore {
	d := &DocumentStore{
		storage: storage,
		now:     time.Now,
		logger:  logger.With().Str("component", "documents").Logger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Storage returns the underlying storage
func (d *DocumentStore) Storage() Storage {
	return d.storage
}

// Validate checks filename against the rules of kind without touching storage
func (d *DocumentStore) Validate(kind models.DocumentKind, filename string) error {
	rule, ok := kind.Rule()
	if !ok {
		return apperrors.NewValidationError("Unknown document type", map[string]string{
			string(kind): "unknown document type",
		})
	}
	if !kind.Allows(filename) {
		return apperrors.NewCustomError(apperrors.ErrInvalidFileType, "File type not allowed").
			WithDetails(map[string]interface{}{
				string(kind): fmt.Sprintf("%s must be one of: %s", rule.Label, strings.Join(rule.Extensions, ", ")),
			})
	}
	return nil
}

// DirFor returns the directory a document of kind uploaded at t is stored in
func DirFor(kind models.DocumentKind, t time.Time) string {
	rule, _ := kind.Rule()
	return path.Join(DocumentRoot, rule.Folder, rule.Subfolder, t.Format("2006"), t.Format("01"), t.Format("02"))
}

// SanitizeFilename strips directories and characters unsafe in a path segment
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}

// Store validates and writes one document, returning its storage-relative path
func (d *DocumentStore) Store(ctx context.Context, kind models.DocumentKind, fh *multipart.FileHeader) (string, error) {
	if err := d.Validate(kind, fh.Filename); err != nil {
		return "", err
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()
	return d.StoreReader(ctx, kind, fh.Filename, f)
}

// StoreReader validates filename and writes r as a document of kind
func (d *DocumentStore) StoreReader(ctx context.Context, kind models.DocumentKind, filename string, r io.Reader) (string, error) {
	if err := d.Validate(kind, filename); err != nil {
		return "", err
	}

	dir := DirFor(kind, d.now())
	relPath, err := d.freePath(ctx, dir, SanitizeFilename(filename))
	if err != nil {
		return "", err
	}
	if err := d.storage.Save(ctx, relPath, r); err != nil {
		d.logger.Error().Err(err).Str("kind", string(kind)).Str("path", relPath).Msg("Failed to store document")
		return "", err
	}
	d.logger.Info().Str("kind", string(kind)).Str("path", relPath).Msg("Document stored")
	return relPath, nil
}

// freePath returns dir/name, or dir/name with a short random suffix when taken
func (d *DocumentStore) freePath(ctx context.Context, dir, name string) (string, error) {
	candidate := path.Join(dir, name)
	exists, err := d.storage.Exists(ctx, candidate)
	if err != nil {
		return "", err
	}
	if !exists {
		return candidate, nil
	}
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; i < 5; i++ {
		candidate = path.Join(dir, fmt.Sprintf("%s_%s%s", stem, uuid.New().String()[:7], ext))
		if exists, err = d.storage.Exists(ctx, candidate); err != nil {
			return "", err
		} else if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not find a free name for %s", name)
}

// Open opens a stored document
func (d *DocumentStore) Open(ctx context.Context, relPath string) (io.ReadCloser, error) {
	return d.storage.Open(ctx, relPath)
}

// Stat describes a stored document
func (d *DocumentStore) Stat(ctx context.Context, relPath string) (FileInfo, error) {
	return d.storage.Stat(ctx, relPath)
}

// Delete removes a stored document
func (d *DocumentStore) Delete(ctx context.Context, relPath string) error {
	return d.storage.Delete(ctx, relPath)
}

// URL returns the public address of a stored document
func (d *DocumentStore) URL(relPath string) string {
	return d.storage.URL(relPath)
}
