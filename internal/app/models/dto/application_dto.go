package dto

import (
	"time"

	"github.com/bathudi/admissions/internal/app/models"
)

// CreateApplicationRequest is the multipart application form. Files are read separately.
type CreateApplicationRequest struct {
	Name           string `form:"name" binding:"required,max=100"`
	Surname        string `form:"surname" binding:"required,max=100"`
	Age            *int   `form:"age" binding:"omitempty,gte=16,lte=100"`
	Country        string `form:"country" binding:"max=100"`
	Mobile         string `form:"mobile" binding:"required,mobile"`
	Email          string `form:"email" binding:"required,email"`
	IDNumber       string `form:"id_number" binding:"max=20"`
	Address        string `form:"address" binding:"required"`
	EducationLevel string `form:"education_level" binding:"max=100"`
	PreviousSchool string `form:"previous_school" binding:"max=200"`
	CourseKey      string `form:"course_id" binding:"max=100"`
	Course         string `form:"course" binding:"max=100"`
	Qualification  string `form:"qualification" binding:"max=200"`
	Experience     string `form:"experience"`
	Message        string `form:"message"`
}

// SubmittedCourseKey returns course_id, falling back to the legacy course field
func (r *CreateApplicationRequest) SubmittedCourseKey() string {
	if r.CourseKey != "" {
		return r.CourseKey
	}
	return r.Course
}

// UpdateApplicationRequest carries admin edits; nil fields are left unchanged
type UpdateApplicationRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=100"`
	Surname        *string `json:"surname" binding:"omitempty,max=100"`
	Age            *int    `json:"age" binding:"omitempty,gte=16,lte=100"`
	Country        *string `json:"country" binding:"omitempty,max=100"`
	Mobile         *string `json:"mobile" binding:"omitempty,mobile"`
	Email          *string `json:"email" binding:"omitempty,email"`
	IDNumber       *string `json:"id_number" binding:"omitempty,max=20"`
	Address        *string `json:"address"`
	EducationLevel *string `json:"education_level" binding:"omitempty,max=100"`
	PreviousSchool *string `json:"previous_school" binding:"omitempty,max=200"`
	CourseID       *int64  `json:"course" binding:"omitempty,min=1"`
	Qualification  *string `json:"qualification" binding:"omitempty,max=200"`
	Experience     *string `json:"experience"`
	Message        *string `json:"message"`
	Notes          *string `json:"notes"`
}

// RejectApplicationRequest carries the optional rejection reason
type RejectApplicationRequest struct {
	Reason *string `json:"reason"`
}

// UpdateStatusRequest moves an application to an arbitrary status
type UpdateStatusRequest struct {
	Status string  `json:"status" binding:"required,oneof=pending approved rejected contacted"`
	Reason *string `json:"reason"`
}

// ApplicationResponse is the API representation of an application
type ApplicationResponse struct {
	*models.Application
	Documents       map[models.DocumentKind]string `json:"documents"`
	DocumentsStatus map[string]bool                `json:"documents_status"`
}

// ApplicationSubmittedResponse is returned by the public submission endpoint
type ApplicationSubmittedResponse struct {
	ID      int64                `json:"id" example:"42"`
	Message string               `json:"message" example:"Application submitted successfully!"`
	Status  string               `json:"status" example:"pending"`
	Data    *ApplicationResponse `json:"data"`
}

// ApplicationListResponse is a page of applications
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Pagination   PaginationInfo        `json:"pagination"`
}

// ApproveResponse reports the effects of an approval
type ApproveResponse struct {
	Message          string `json:"message" example:"Application approved successfully"`
	Status           string `json:"status" example:"approved"`
	StudentCreated   bool   `json:"student_created"`
	StudentID        string `json:"student_id,omitempty" example:"STU0042"`
	NotificationSent bool   `json:"notification_sent"`
}

// RejectResponse reports the effects of a rejection
type RejectResponse struct {
	Message          string  `json:"message" example:"Application rejected"`
	Status           string  `json:"status" example:"rejected"`
	Reason           *string `json:"reason"`
	NotificationSent bool    `json:"notification_sent"`
}

// FeeResponse reports the fee verification flag
type FeeResponse struct {
	Message     string `json:"message"`
	FeeVerified bool   `json:"fee_verified"`
}

// DocumentInfo describes a stored document
type DocumentInfo struct {
	URL        string     `json:"url"`
	Name       string     `json:"name"`
	Size       int64      `json:"size"`
	UploadedAt *time.Time `json:"uploaded_at"`
}
