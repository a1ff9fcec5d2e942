package controllers

import (
	"strings"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/app/models/dto"
	"github.com/bathudi/admissions/internal/app/services"
	"github.com/bathudi/admissions/internal/middleware"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
)

// ContentController serves the website content resources. Lists are public
// and show visible items only unless an admin passes admin=true.
type ContentController struct {
	contentService services.ContentService
}

// NewContentController creates a new ContentController
func NewContentController(contentService services.ContentService) *ContentController {
	return &ContentController{contentService: contentService}
}

// hidden answers 404 for an item the caller may not see
func hidden(ctx *gin.Context, visible bool) bool {
	if visible || isAdmin(ctx) {
		return false
	}
	middleware.HandleAPIError(ctx, apperrors.ErrContentNotFound)
	return true
}

// --- Team members ---

// ListTeamMembers lists team members ordered by order, name
// @Summary List team members
// @Tags content
// @Produce json
// @Param admin query bool false "Include inactive members (admin token required)"
// @Success 200 {object} dto.APIResponse{data=[]models.TeamMember}
// @Router /team-members [get]
func (c *ContentController) ListTeamMembers(ctx *gin.Context) {
	items, err := c.contentService.ListTeamMembers(ctx.Request.Context(), includeHidden(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, items)
}

// GetTeamMember returns one team member
// @Summary Get team member
// @Tags content
// @Produce json
// @Param id path int true "Team member ID"
// @Success 200 {object} dto.APIResponse{data=models.TeamMember}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /team-members/{id} [get]
func (c *ContentController) GetTeamMember(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	item, err := c.contentService.GetTeamMember(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if hidden(ctx, item.IsActive) {
		return
	}
	respondOK(ctx, item)
}

// CreateTeamMember adds a team member
// @Summary Create team member
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Name"
// @Param position formData string true "Position"
// @Param bio formData string true "Biography"
// @Param image formData file false "Photo (jpg, jpeg, png, gif, webp)"
// @Success 201 {object} dto.APIResponse{data=models.TeamMember}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /team-members [post]
func (c *ContentController) CreateTeamMember(ctx *gin.Context) {
	var req dto.TeamMemberRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	image, err := optionalFile(ctx, "image")
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	item, err := c.contentService.CreateTeamMember(ctx.Request.Context(), &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, item)
}

// UpdateTeamMember replaces a team member; the photo is kept unless a new one is sent
// @Summary Update team member
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team member ID"
// @Success 200 {object} dto.APIResponse{data=models.TeamMember}
// @Router /team-members/{id} [put]
func (c *ContentController) UpdateTeamMember(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.TeamMemberRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	image, err := optionalFile(ctx, "image")
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	item, err := c.contentService.UpdateTeamMember(ctx.Request.Context(), id, &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, item)
}

// DeleteTeamMember removes a team member and its photo
// @Summary Delete team member
// @Tags content
// @Security BearerAuth
// @Param id path int true "Team member ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Router /team-members/{id} [delete]
func (c *ContentController) DeleteTeamMember(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.contentService.DeleteTeamMember(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.MessageResponse{Message: "Team member deleted"})
}

// --- Gallery ---

// ListGalleryImages lists gallery images newest first
// @Summary List gallery images
// @Tags content
// @Produce json
// @Param category query string false "facilities, students, events, graduation, training or other"
// @Param admin query bool false "Include inactive images (admin token required)"
// @Success 200 {object} dto.APIResponse{data=[]models.GalleryImage}
// @Failure 400 {object} dto.ErrorResponse "Invalid category"
// @Router /gallery [get]
func (c *ContentController) ListGalleryImages(ctx *gin.Context) {
	var category *models.GalleryCategory
	if raw := strings.TrimSpace(ctx.Query("category")); raw != "" {
		cat := models.GalleryCategory(strings.ToLower(raw))
		if !cat.Valid() {
			middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("invalid gallery category"))
			return
		}
		category = &cat
	}
	items, err := c.contentService.ListGalleryImages(ctx.Request.Context(), category, includeHidden(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, items)
}

// GetGalleryImage returns one gallery image
// @Summary Get gallery image
// @Tags content
// @Produce json
// @Param id path int true "Image ID"
// @Success 200 {object} dto.APIResponse{data=models.GalleryImage}
// @Router /gallery/{id} [get]
func (c *ContentController) GetGalleryImage(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	item, err := c.contentService.GetGalleryImage(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if hidden(ctx, item.IsActive) {
		return
	}
	respondOK(ctx, item)
}

// CreateGalleryImage uploads a gallery image
// @Summary Create gallery image
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param category formData string false "Category"
// @Param image formData file true "Image (jpg, jpeg, png, gif, webp)"
// @Success 201 {object} dto.APIResponse{data=models.GalleryImage}
// @Failure 400 {object} dto.ErrorResponse "Validation failed or image missing"
// @Router /gallery [post]
func (c *ContentController) CreateGalleryImage(ctx *gin.Context) {
	var req dto.GalleryImageRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	image, err := optionalFile(ctx, "image")
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	item, err := c.contentService.CreateGalleryImage(ctx.Request.Context(), &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, item)
}

// UpdateGalleryImage replaces a gallery image
// @Summary Update gallery image
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Image ID"
// @Success 200 {object} dto.APIResponse{data=models.GalleryImage}
// @Router /gallery/{id} [put]
func (c *ContentController) UpdateGalleryImage(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.GalleryImageRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	image, err := optionalFile(ctx, "image")
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	item, err := c.contentService.UpdateGalleryImage(ctx.Request.Context(), id, &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, item)
}

// DeleteGalleryImage removes a gallery image
// @Summary Delete gallery image
// @Tags content
// @Security BearerAuth
// @Param id path int true "Image ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Router /gallery/{id} [delete]
func (c *ContentController) DeleteGalleryImage(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.contentService.DeleteGalleryImage(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.MessageResponse{Message: "Gallery image deleted"})
}

// --- Newsletter ---

// Subscribe adds an email address to the newsletter
// @Summary Subscribe to newsletter
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.NewsletterRequest true "Email"
// @Success 201 {object} dto.APIResponse{data=models.NewsletterSubscription}
// @Failure 400 {object} dto.ErrorResponse "Invalid email"
// @Failure 409 {object} dto.ErrorResponse "Already subscribed"
// @Router /newsletter/subscribe [post]
func (c *ContentController) Subscribe(ctx *gin.Context) {
	var req dto.NewsletterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	sub, err := c.contentService.Subscribe(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, sub)
}

// ListSubscriptions lists newsletter subscriptions
// @Summary List newsletter subscriptions
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param admin query bool false "Include unsubscribed addresses"
// @Success 200 {object} dto.APIResponse{data=[]models.NewsletterSubscription}
// @Router /newsletter [get]
func (c *ContentController) ListSubscriptions(ctx *gin.Context) {
	items, err := c.contentService.ListSubscriptions(ctx.Request.Context(), includeHidden(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, items)
}

// ActivateSubscription re-enables a subscription
// @Summary Activate subscription
// @Tags content
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Router /newsletter/{id}/activate [post]
func (c *ContentController) ActivateSubscription(ctx *gin.Context) {
	c.setSubscription(ctx, true)
}

// DeactivateSubscription disables a subscription
// @Summary Deactivate subscription
// @Tags content
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Router /newsletter/{id}/deactivate [post]
func (c *ContentController) DeactivateSubscription(ctx *gin.Context) {
	c.setSubscription(ctx, false)
}

func (c *ContentController) setSubscription(ctx *gin.Context, active bool) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.contentService.SetSubscriptionActive(ctx.Request.Context(), id, active); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	msg := "Subscription deactivated"
	if active {
		msg = "Subscription activated"
	}
	respondOK(ctx, dto.MessageResponse{Message: msg})
}

// DeleteSubscription removes a subscription
// @Summary Delete subscription
// @Tags content
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Router /newsletter/{id} [delete]
func (c *ContentController) DeleteSubscription(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.contentService.DeleteSubscription(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.MessageResponse{Message: "Subscription deleted"})
}

// --- News ---

// ListNewsPosts lists published news posts newest first
// @Summary List news posts
// @Tags content
// @Produce json
// @Param admin query bool false "Include drafts (admin token required)"
// @Success 200 {object} dto.APIResponse{data=[]models.NewsPost}
// @Router /news [get]
func (c *ContentController) ListNewsPosts(ctx *gin.Context) {
	items, err := c.contentService.ListNewsPosts(ctx.Request.Context(), includeHidden(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, items)
}

// GetNewsPost returns one news post
// @Summary Get news post
// @Tags content
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=models.NewsPost}
// @Router /news/{id} [get]
func (c *ContentController) GetNewsPost(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	item, err := c.contentService.GetNewsPost(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if hidden(ctx, item.IsPublished) {
		return
	}
	respondOK(ctx, item)
}

// CreateNewsPost publishes or drafts a news post
// @Summary Create news post
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param preview_text formData string true "Preview text"
// @Param content formData string true "Body"
// @Param image formData file false "Cover image"
// @Success 201 {object} dto.APIResponse{data=models.NewsPost}
// @Router /news [post]
func (c *ContentController) CreateNewsPost(ctx *gin.Context) {
	var req dto.NewsPostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	image, err := optionalFile(ctx, "image")
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	item, err := c.contentService.CreateNewsPost(ctx.Request.Context(), &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, item)
}

// UpdateNewsPost replaces a news post
// @Summary Update news post
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=models.NewsPost}
// @Router /news/{id} [put]
func (c *ContentController) UpdateNewsPost(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.NewsPostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	image, err := optionalFile(ctx, "image")
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	item, err := c.contentService.UpdateNewsPost(ctx.Request.Context(), id, &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, item)
}

// DeleteNewsPost removes a news post
// @Summary Delete news post
// @Tags content
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Router /news/{id} [delete]
func (c *ContentController) DeleteNewsPost(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.contentService.DeleteNewsPost(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.MessageResponse{Message: "News post deleted"})
}
