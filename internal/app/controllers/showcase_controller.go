package controllers

import (
	"mime/multipart"

	"github.com/bathudi/admissions/internal/app/models/dto"
	"github.com/bathudi/admissions/internal/middleware"
	"github.com/bathudi/admissions/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
)

// --- Director messages ---

// ListDirectorMessages lists every director message
// @Summary List director messages
// @Tags content
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.DirectorMessage}
// @Router /director-messages [get]
func (c *ContentController) ListDirectorMessages(ctx *gin.Context) {
	items, err := c.contentService.ListDirectorMessages(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, items)
}

// GetActiveDirectorMessage returns the message shown on the home page
// @Summary Get active director message
// @Tags content
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.DirectorMessage}
// @Failure 404 {object} dto.ErrorResponse "No active message"
// @Router /director-messages/active [get]
func (c *ContentController) GetActiveDirectorMessage(ctx *gin.Context) {
	item, err := c.contentService.GetActiveDirectorMessage(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, item)
}

// CreateDirectorMessage adds a director message; an active one replaces the current
// @Summary Create director message
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param quote formData string true "Quote"
// @Param video_url formData string false "External video link"
// @Param video_file formData file false "Video (mp4, mov, avi, webm)"
// @Success 201 {object} dto.APIResponse{data=models.DirectorMessage}
// @Router /director-messages [post]
func (c *ContentController) CreateDirectorMessage(ctx *gin.Context) {
	var req dto.DirectorMessageRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	video, err := optionalFile(ctx, "video_file")
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	item, err := c.contentService.CreateDirectorMessage(ctx.Request.Context(), &req, video)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, item)
}

// UpdateDirectorMessage replaces a director message
// @Summary Update director message
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} dto.APIResponse{data=models.DirectorMessage}
// @Router /director-messages/{id} [put]
func (c *ContentController) UpdateDirectorMessage(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.DirectorMessageRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	video, err := optionalFile(ctx, "video_file")
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	item, err := c.contentService.UpdateDirectorMessage(ctx.Request.Context(), id, &req, video)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, item)
}

// ActivateDirectorMessage makes a message the only active one
// @Summary Activate director message
// @Tags content
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Router /director-messages/{id}/activate [post]
func (c *ContentController) ActivateDirectorMessage(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.contentService.ActivateDirectorMessage(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.MessageResponse{Message: "Director message activated"})
}

// DeleteDirectorMessage removes a director message
// @Summary Delete director message
// @Tags content
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Router /director-messages/{id} [delete]
func (c *ContentController) DeleteDirectorMessage(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.contentService.DeleteDirectorMessage(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.MessageResponse{Message: "Director message deleted"})
}

// --- Testimonials ---

// ListTestimonials lists testimonials newest first
// @Summary List testimonials
// @Tags content
// @Produce json
// @Param featured query bool false "Only featured testimonials"
// @Success 200 {object} dto.APIResponse{data=[]models.Testimonial}
// @Router /testimonials [get]
func (c *ContentController) ListTestimonials(ctx *gin.Context) {
	featured, _ := helpers.QueryBool(ctx, "featured")
	items, err := c.contentService.ListTestimonials(ctx.Request.Context(), featured)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, items)
}

// GetTestimonial returns one testimonial
// @Summary Get testimonial
// @Tags content
// @Produce json
// @Param id path int true "Testimonial ID"
// @Success 200 {object} dto.APIResponse{data=models.Testimonial}
// @Router /testimonials/{id} [get]
func (c *ContentController) GetTestimonial(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	item, err := c.contentService.GetTestimonial(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, item)
}

// CreateTestimonial adds a testimonial
// @Summary Create testimonial
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TestimonialRequest true "Testimonial"
// @Success 201 {object} dto.APIResponse{data=models.Testimonial}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /testimonials [post]
func (c *ContentController) CreateTestimonial(ctx *gin.Context) {
	var req dto.TestimonialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	item, err := c.contentService.CreateTestimonial(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, item)
}

// UpdateTestimonial replaces a testimonial
// @Summary Update testimonial
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Testimonial ID"
// @Param request body dto.TestimonialRequest true "Testimonial"
// @Success 200 {object} dto.APIResponse{data=models.Testimonial}
// @Router /testimonials/{id} [put]
func (c *ContentController) UpdateTestimonial(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.TestimonialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	item, err := c.contentService.UpdateTestimonial(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, item)
}

// DeleteTestimonial removes a testimonial
// @Summary Delete testimonial
// @Tags content
// @Security BearerAuth
// @Param id path int true "Testimonial ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Router /testimonials/{id} [delete]
func (c *ContentController) DeleteTestimonial(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.contentService.DeleteTestimonial(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.MessageResponse{Message: "Testimonial deleted"})
}

// --- Videos ---

// ListVideos lists videos newest first
// @Summary List videos
// @Tags content
// @Produce json
// @Param admin query bool false "Include inactive videos (admin token required)"
// @Success 200 {object} dto.APIResponse{data=[]models.Video}
// @Router /videos [get]
func (c *ContentController) ListVideos(ctx *gin.Context) {
	items, err := c.contentService.ListVideos(ctx.Request.Context(), includeHidden(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, items)
}

// GetVideo returns one video
// @Summary Get video
// @Tags content
// @Produce json
// @Param id path int true "Video ID"
// @Success 200 {object} dto.APIResponse{data=models.Video}
// @Router /videos/{id} [get]
func (c *ContentController) GetVideo(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	item, err := c.contentService.GetVideo(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if hidden(ctx, item.IsActive) {
		return
	}
	respondOK(ctx, item)
}

// CreateVideo adds a video from an upload or an external link
// @Summary Create video
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param video_url formData string false "External video link"
// @Param video_file formData file false "Video (mp4, mov, avi, webm)"
// @Param thumbnail formData file false "Thumbnail image"
// @Success 201 {object} dto.APIResponse{data=models.Video}
// @Failure 400 {object} dto.ErrorResponse "Neither a file nor a link was given"
// @Router /videos [post]
func (c *ContentController) CreateVideo(ctx *gin.Context) {
	var req dto.VideoRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	video, thumb, ok := c.videoFiles(ctx)
	if !ok {
		return
	}
	item, err := c.contentService.CreateVideo(ctx.Request.Context(), &req, video, thumb)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, item)
}

// UpdateVideo replaces a video
// @Summary Update video
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Success 200 {object} dto.APIResponse{data=models.Video}
// @Router /videos/{id} [put]
func (c *ContentController) UpdateVideo(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.VideoRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	video, thumb, ok := c.videoFiles(ctx)
	if !ok {
		return
	}
	item, err := c.contentService.UpdateVideo(ctx.Request.Context(), id, &req, video, thumb)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, item)
}

// DeleteVideo removes a video and its files
// @Summary Delete video
// @Tags content
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Router /videos/{id} [delete]
func (c *ContentController) DeleteVideo(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.contentService.DeleteVideo(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.MessageResponse{Message: "Video deleted"})
}

func (c *ContentController) videoFiles(ctx *gin.Context) (video, thumb *multipart.FileHeader, ok bool) {
	video, err := optionalFile(ctx, "video_file")
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return nil, nil, false
	}
	thumb, err = optionalFile(ctx, "thumbnail")
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return nil, nil, false
	}
	return video, thumb, true
}
