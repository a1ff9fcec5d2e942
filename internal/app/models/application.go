package models

import (
	"strings"
	"time"
)

// ApplicationStatus is the review state of an application
type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "pending"
	StatusApproved  ApplicationStatus = "approved"
	StatusRejected  ApplicationStatus = "rejected"
	StatusContacted ApplicationStatus = "contacted"
)

// Valid reports whether s is a known status
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusContacted:
		return true
	}
	return false
}

// DefaultCountry is assumed when the form omits it
const DefaultCountry = "South Africa"

// Application is a prospective student's submission
type Application struct {
	ID             int64   `json:"id" db:"id"`
	Name           string  `json:"name" db:"name"`
	Surname        string  `json:"surname" db:"surname"`
	Age            *int    `json:"age" db:"age"`
	Country        string  `json:"country" db:"country"`
	Mobile         string  `json:"mobile" db:"mobile"`
	Email          string  `json:"email" db:"email"`
	IDNumber       *string `json:"id_number" db:"id_number"`
	Address        string  `json:"address" db:"address"`
	EducationLevel string  `json:"education_level" db:"education_level"`
	PreviousSchool string  `json:"previous_school" db:"previous_school"`

	CourseID      *int64 `json:"course" db:"course_id"`
	CourseTitle   string `json:"course_title" db:"course_title"`
	FormCourseID  string `json:"form_course_id" db:"form_course_id"`
	Qualification string `json:"qualification" db:"qualification"`
	Experience    string `json:"experience" db:"experience"`
	Message       string `json:"message" db:"message"`

	Status          ApplicationStatus `json:"status" db:"status"`
	RejectionReason *string           `json:"rejection_reason" db:"rejection_reason"`
	FeeVerified     bool              `json:"fee_verified" db:"fee_verified"`
	AppliedDate     time.Time         `json:"applied_date" db:"applied_date"`
	Notes           string            `json:"notes" db:"notes"`

	Documents DocumentSet `json:"-"`
}

// FullName joins name and surname
func (a *Application) FullName() string {
	return strings.TrimSpace(a.Name + " " + a.Surname)
}

// DisplayCourse returns the course title, or a neutral phrase when the course was not resolved
func (a *Application) DisplayCourse() string {
	if a.CourseTitle != "" {
		return a.CourseTitle
	}
	return "your selected course"
}

// ApplicationFilter narrows an application listing
type ApplicationFilter struct {
	Status      *ApplicationStatus
	FeeVerified *bool
	Search      string
	Page        int
	PageSize    int
}

// ApplicationStats aggregates application counts
type ApplicationStats struct {
	Total       int64 `json:"total"`
	Pending     int64 `json:"pending"`
	Approved    int64 `json:"approved"`
	Rejected    int64 `json:"rejected"`
	Contacted   int64 `json:"contacted"`
	FeeVerified int64 `json:"fee_verified"`
}
