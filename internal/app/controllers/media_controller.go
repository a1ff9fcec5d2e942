package controllers

import (
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/bathudi/admissions/internal/middleware"
	"github.com/bathudi/admissions/internal/pkg/filestorage"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// MediaController streams stored files so browsers can display them inline
type MediaController struct {
	storage filestorage.Storage
	logger  zerolog.Logger
}

// NewMediaController creates a new MediaController
func NewMediaController(storage filestorage.Storage, logger zerolog.Logger) *MediaController {
	return &MediaController{storage: storage, logger: logger}
}

// ServeFile streams a stored file
// @Summary Serve media file
// @Description Streams an uploaded file with an inline disposition
// @Tags media
// @Produce octet-stream
// @Param path path string true "Storage-relative path, e.g. documents/id_documents/2024/05/01/id.pdf"
// @Success 200 {file} binary
// @Failure 400 {object} dto.ErrorResponse "Invalid path"
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Router /media/{path} [get]
func (c *MediaController) ServeFile(ctx *gin.Context) {
	relPath, err := filestorage.CleanPath(strings.TrimPrefix(ctx.Param("path"), "/"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	reqCtx := ctx.Request.Context()
	info, err := c.storage.Stat(reqCtx, relPath)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	rc, err := c.storage.Open(reqCtx, relPath)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(strings.ToLower(path.Ext(relPath)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	name := path.Base(relPath)

	ctx.Header("Content-Disposition", `inline; filename="`+strings.ReplaceAll(name, `"`, "")+`"`)
	ctx.DataFromReader(http.StatusOK, info.Size, contentType, rc, nil)
}
