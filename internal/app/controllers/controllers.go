// Package controllers handles HTTP request handling
package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/bathudi/admissions/internal/app/models/dto"
	"github.com/bathudi/admissions/internal/middleware"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/bathudi/admissions/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
)

// parseIDParam reads a positive int64 path parameter
func parseIDParam(ctx *gin.Context, paramName string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequestError("invalid " + paramName)
	}
	return id, nil
}

// optionalFile returns the uploaded file of field, or nil when none was sent
func optionalFile(ctx *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := ctx.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return fh, nil
}

// isAdmin reports whether the request passed the admin middleware
func isAdmin(ctx *gin.Context) bool {
	_, ok := ctx.Get(middleware.AdminIDKey)
	return ok
}

// includeHidden reports whether an admin asked for hidden items with ?admin=true
func includeHidden(ctx *gin.Context) bool {
	if !isAdmin(ctx) {
		return false
	}
	v, _ := helpers.QueryBool(ctx, "admin")
	return v
}

func respondOK(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

func respondCreated(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}
