package controllers

import (
	"github.com/bathudi/admissions/internal/app/models/dto"
	"github.com/bathudi/admissions/internal/app/services"
	"github.com/bathudi/admissions/internal/middleware"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
)

// CourseController serves the course catalog
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// ListCourses lists the catalog
// @Summary List courses
// @Description Lists active courses ordered for display. Admins may pass admin=true to include deactivated courses.
// @Tags courses
// @Produce json
// @Param admin query bool false "Include deactivated courses (admin token required)"
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx.Request.Context(), includeHidden(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, courses)
}

// GetCourse returns one course with its requirements
// @Summary Get course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	course, err := c.courseService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !course.IsActive && !isAdmin(ctx) {
		middleware.HandleAPIError(ctx, apperrors.ErrCourseNotFound)
		return
	}
	respondOK(ctx, course)
}

// GetCoursePDF returns the outline PDF link of a course
// @Summary Get course PDF
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CoursePDFResponse}
// @Failure 404 {object} dto.ErrorResponse "Course or PDF not found"
// @Router /course/{id}/pdf [get]
func (c *CourseController) GetCoursePDF(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	pdf, err := c.courseService.GetCoursePDF(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, pdf)
}

// CreateCourse adds a course
// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CourseRequest true "Course"
// @Success 201 {object} dto.APIResponse{data=models.Course}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	course, err := c.courseService.CreateCourse(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, course)
}

// UpdateCourse replaces a course
// @Summary Update course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.CourseRequest true "Course"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, course)
}

// DeactivateCourse hides a course from the catalog
// @Summary Deactivate course
// @Description Courses are never hard-deleted; this clears is_active
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [delete]
func (c *CourseController) DeactivateCourse(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.courseService.DeactivateCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.MessageResponse{Message: "Course deactivated"})
}

// UploadCoursePDF attaches an outline PDF to a course
// @Summary Upload course PDF
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param file formData file true "PDF file"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid file"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/pdf [post]
func (c *CourseController) UploadCoursePDF(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	file, err := optionalFile(ctx, "file")
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	course, err := c.courseService.UploadCoursePDF(ctx.Request.Context(), id, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, course)
}

// ListRequirements lists the entry requirements of a course
// @Summary List course requirements
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.CourseRequirement}
// @Router /courses/{id}/requirements [get]
func (c *CourseController) ListRequirements(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	reqs, err := c.courseService.ListRequirements(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, reqs)
}

// CreateRequirement adds an entry requirement to a course
// @Summary Create course requirement
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.CourseRequirementRequest true "Requirement"
// @Success 201 {object} dto.APIResponse{data=models.CourseRequirement}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/requirements [post]
func (c *CourseController) CreateRequirement(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.CourseRequirementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	r, err := c.courseService.CreateRequirement(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, r)
}

// UpdateRequirement replaces an entry requirement
// @Summary Update course requirement
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Requirement ID"
// @Param request body dto.CourseRequirementRequest true "Requirement"
// @Success 200 {object} dto.APIResponse{data=models.CourseRequirement}
// @Failure 404 {object} dto.ErrorResponse "Requirement not found"
// @Router /course-requirements/{id} [put]
func (c *CourseController) UpdateRequirement(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.CourseRequirementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	r, err := c.courseService.UpdateRequirement(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, r)
}

// DeleteRequirement removes an entry requirement
// @Summary Delete course requirement
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Requirement ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 404 {object} dto.ErrorResponse "Requirement not found"
// @Router /course-requirements/{id} [delete]
func (c *CourseController) DeleteRequirement(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.courseService.DeleteRequirement(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.MessageResponse{Message: "Requirement deleted"})
}
