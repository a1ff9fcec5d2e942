package dto

import "time"

// StudentRequest is used for student edits
type StudentRequest struct {
	Name           string     `json:"name" binding:"required,max=100"`
	Surname        string     `json:"surname" binding:"required,max=100"`
	Email          string     `json:"email" binding:"required,email"`
	Phone          string     `json:"phone" binding:"required,mobile"`
	CourseID       *int64     `json:"course" binding:"omitempty,min=1"`
	EnrollmentDate *time.Time `json:"enrollment_date"`
	CompletionDate *time.Time `json:"completion_date"`
	Status         string     `json:"status" binding:"omitempty,oneof=enrolled completed dropped"`
	CertificateID  string     `json:"certificate_id" binding:"max=50"`
	Address        string     `json:"address"`
}

// StudentListResponse is a page of students
type StudentListResponse struct {
	Students   interface{}    `json:"students"`
	Pagination PaginationInfo `json:"pagination"`
}
