package models

import (
	"fmt"
	"time"
)

// StudentStatus is the enrollment state of a student
type StudentStatus string

const (
	StudentEnrolled  StudentStatus = "enrolled"
	StudentCompleted StudentStatus = "completed"
	StudentDropped   StudentStatus = "dropped"
)

// Valid reports whether s is a known student status
func (s StudentStatus) Valid() bool {
	switch s {
	case StudentEnrolled, StudentCompleted, StudentDropped:
		return true
	}
	return false
}

// StudentNumberFor derives the student number from the originating application id
func StudentNumberFor(applicationID int64) string {
	return fmt.Sprintf("STU%04d", applicationID)
}

// Student is an enrolled learner, usually created by approving an application
type Student struct {
	ID             int64         `json:"id" db:"id"`
	ApplicationID  *int64        `json:"application" db:"application_id"`
	StudentNumber  *string       `json:"student_id" db:"student_number"`
	Name           string        `json:"name" db:"name"`
	Surname        string        `json:"surname" db:"surname"`
	Email          string        `json:"email" db:"email"`
	Phone          string        `json:"phone" db:"phone"`
	CourseID       *int64        `json:"course" db:"course_id"`
	CourseTitle    string        `json:"course_title" db:"-"`
	EnrollmentDate time.Time     `json:"enrollment_date" db:"enrollment_date"`
	CompletionDate *time.Time    `json:"completion_date" db:"completion_date"`
	Status         StudentStatus `json:"status" db:"status"`
	CertificateID  string        `json:"certificate_id" db:"certificate_id"`
	Address        string        `json:"address" db:"address"`
}

// NewStudentFromApplication copies the enrollment fields from an approved application
func NewStudentFromApplication(app *Application, now time.Time) *Student {
	appID := app.ID
	number := StudentNumberFor(app.ID)
	return &Student{
		ApplicationID:  &appID,
		StudentNumber:  &number,
		Name:           app.Name,
		Surname:        app.Surname,
		Email:          app.Email,
		Phone:          app.Mobile,
		CourseID:       app.CourseID,
		CourseTitle:    app.CourseTitle,
		EnrollmentDate: now,
		Status:         StudentEnrolled,
		Address:        app.Address,
	}
}
