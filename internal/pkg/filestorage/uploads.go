package filestorage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/google/uuid"
)

// Upload directories of website content
const (
	DirCourses         = "courses"
	DirCoursePDFs      = "course_pdfs"
	DirTeam            = "team"
	DirGallery         = "gallery"
	DirNews            = "news"
	DirDirectorVideos  = "videos/director"
	DirVideos          = "videos"
	DirVideoThumbnails = "videos/thumbnails"
)

// Accepted extensions for content uploads
var (
	ImageExtensions = []string{"jpg", "jpeg", "png", "gif", "webp"}
	VideoExtensions = []string{"mp4", "webm", "mov", "avi", "mkv"}
	PDFExtensions   = []string{"pdf"}
)

func extensionAllowed(filename string, allowed []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

// SaveUpload stores fh under dir with a UUID name and returns the relative path.
// A nil header stores nothing and returns an empty path.
func SaveUpload(ctx context.Context, storage Storage, fh *multipart.FileHeader, dir string, allowed []string) (string, error) {
	if fh == nil {
		return "", nil
	}
	if len(allowed) > 0 && !extensionAllowed(fh.Filename, allowed) {
		return "", apperrors.NewCustomError(apperrors.ErrInvalidFileType, "File type not allowed").
			WithDetails(map[string]interface{}{
				"file": "allowed types: " + strings.Join(allowed, ", "),
			})
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	relPath := path.Join(dir, uuid.New().String()+strings.ToLower(path.Ext(fh.Filename)))
	if err := storage.Save(ctx, relPath, f); err != nil {
		return "", err
	}
	return relPath, nil
}
