package controllers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/app/models/dto"
	"github.com/bathudi/admissions/internal/app/services"
	"github.com/bathudi/admissions/internal/middleware"
	"github.com/bathudi/admissions/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ApplicationController handles application intake and review
type ApplicationController struct {
	applications services.ApplicationService
	workflow     services.WorkflowService
	logger       zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applications services.ApplicationService, workflow services.WorkflowService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		applications: applications,
		workflow:     workflow,
		logger:       logger,
	}
}

// SubmitApplication handles the public application form
// @Summary Submit application
// @Description Accepts the application form with optional documents. The course is resolved from course_id (or course); an unknown key still creates the application.
// @Tags applications
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "First name"
// @Param surname formData string true "Surname"
// @Param mobile formData string true "Mobile number"
// @Param email formData string true "Email address"
// @Param address formData string true "Postal address"
// @Param age formData int false "Age (16-100)"
// @Param country formData string false "Country"
// @Param id_number formData string false "ID number"
// @Param course_id formData string false "Course key, e.g. automotive_engine_repairer"
// @Param id_document formData file false "ID document (pdf, jpg, jpeg, png)"
// @Param matric_certificate formData file false "Matric certificate (pdf, jpg, jpeg, png)"
// @Param proof_of_payment formData file false "Proof of payment (pdf, jpg, jpeg, png)"
// @Param additional_doc_1 formData file false "Additional document (pdf, jpg, jpeg, png, doc, docx)"
// @Param additional_doc_2 formData file false "Additional document (pdf, jpg, jpeg, png, doc, docx)"
// @Success 201 {object} dto.ApplicationSubmittedResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed or file type not allowed"
// @Failure 413 {object} dto.ErrorResponse "Request body too large"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications [post]
func (c *ApplicationController) SubmitApplication(ctx *gin.Context) {
	var req dto.CreateApplicationRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid application submission")
		middleware.HandleBindingError(ctx, err)
		return
	}

	files := make(map[models.DocumentKind]*multipart.FileHeader)
	for _, kind := range models.DocumentKinds() {
		fh, err := optionalFile(ctx, string(kind))
		if err != nil {
			middleware.HandleBindingError(ctx, err)
			return
		}
		if fh != nil {
			files[kind] = fh
		}
	}

	app, err := c.applications.Submit(ctx.Request.Context(), &req, files)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ApplicationSubmittedResponse{
		ID:      app.ID,
		Message: "Application submitted successfully!",
		Status:  string(app.Status),
		Data:    app,
	})
}

// ListApplications lists applications for review
// @Summary List applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved, rejected or contacted"
// @Param fee_verified query bool false "Filter by fee verification"
// @Param search query string false "Search name, surname, email and mobile"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationListResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /applications [get]
func (c *ApplicationController) ListApplications(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := models.ApplicationFilter{
		Search:   strings.TrimSpace(ctx.Query("search")),
		Page:     page,
		PageSize: size,
	}
	if raw := strings.TrimSpace(ctx.Query("status")); raw != "" {
		status := models.ApplicationStatus(strings.ToLower(raw))
		filter.Status = &status
	}
	if v, ok := helpers.QueryBool(ctx, "fee_verified"); ok {
		filter.FeeVerified = &v
	}

	res, err := c.applications.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, res)
}

// ListPending lists every pending application
// @Summary List pending applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse}
// @Router /applications/pending [get]
func (c *ApplicationController) ListPending(ctx *gin.Context) {
	apps, err := c.applications.ListPending(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, apps)
}

// Stats returns application counts per status
// @Summary Application statistics
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.ApplicationStats}
// @Router /applications/stats [get]
func (c *ApplicationController) Stats(ctx *gin.Context) {
	stats, err := c.applications.Stats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, stats)
}

// GetApplication returns one application
// @Summary Get application
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse}
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id} [get]
func (c *ApplicationController) GetApplication(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	app, err := c.applications.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, app)
}

// UpdateApplication edits applicant fields and notes
// @Summary Update application
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.UpdateApplicationRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Application or course not found"
// @Router /applications/{id} [put]
func (c *ApplicationController) UpdateApplication(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.UpdateApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	app, err := c.applications.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, app)
}

// DeleteApplication removes an application and its documents
// @Summary Delete application
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id} [delete]
func (c *ApplicationController) DeleteApplication(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.applications.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.MessageResponse{Message: "Application deleted"})
}

// ListDocuments describes the stored documents of an application
// @Summary List application documents
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=map[string]dto.DocumentInfo}
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id}/documents [get]
func (c *ApplicationController) ListDocuments(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	docs, err := c.applications.ListDocuments(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, docs)
}

// Approve approves an application and enrolls the applicant
// @Summary Approve application
// @Description Sets status to approved, creates the student record once and notifies the applicant on every call
// @Tags workflow
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApproveResponse}
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id}/approve [post]
func (c *ApplicationController) Approve(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	resp, err := c.workflow.Approve(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, resp)
}

// Reject rejects an application
// @Summary Reject application
// @Description Sets status to rejected and stores the reason as given; an absent reason is stored as null
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.RejectApplicationRequest false "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=dto.RejectResponse}
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id}/reject [post]
func (c *ApplicationController) Reject(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.RejectApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		middleware.HandleBindingError(ctx, err)
		return
	}
	resp, err := c.workflow.Reject(ctx.Request.Context(), id, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, resp)
}

// UpdateStatus assigns any status
// @Summary Set application status
// @Description Any transition is allowed; approved and rejected run the approve and reject side effects
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id}/status [patch]
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	app, err := c.workflow.SetStatus(ctx.Request.Context(), id, models.ApplicationStatus(req.Status), req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, app)
}

// VerifyFee marks the registration fee as paid
// @Summary Verify fee
// @Tags workflow
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.FeeResponse}
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id}/verify-fee [post]
func (c *ApplicationController) VerifyFee(ctx *gin.Context) {
	c.setFee(ctx, true)
}

// UnverifyFee clears the fee verification flag
// @Summary Unverify fee
// @Tags workflow
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.FeeResponse}
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id}/unverify-fee [post]
func (c *ApplicationController) UnverifyFee(ctx *gin.Context) {
	c.setFee(ctx, false)
}

func (c *ApplicationController) setFee(ctx *gin.Context, verified bool) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var resp *dto.FeeResponse
	if verified {
		resp, err = c.workflow.VerifyFee(ctx.Request.Context(), id)
	} else {
		resp, err = c.workflow.UnverifyFee(ctx.Request.Context(), id)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, resp)
}
