package models

import "time"

// CourseLevel is the difficulty band shown on the website
type CourseLevel string

const (
	CourseLevelBeginner     CourseLevel = "beginner"
	CourseLevelIntermediate CourseLevel = "intermediate"
	CourseLevelAdvanced     CourseLevel = "advanced"
)

// Valid reports whether l is a known level
func (l CourseLevel) Valid() bool {
	switch l {
	case CourseLevelBeginner, CourseLevelIntermediate, CourseLevelAdvanced:
		return true
	}
	return false
}

// Course is an occupational certificate offered by the center.
// Amounts are stored as NUMERIC(10,2) and carried as float64 for JSON.
type Course struct {
	ID                  int64       `json:"id" db:"id"`
	Title               string      `json:"title" db:"title"`
	ShortTitle          string      `json:"short_title" db:"short_title"`
	Description         string      `json:"description" db:"description"`
	ShortDescription    string      `json:"short_description" db:"short_description"`
	Duration            string      `json:"duration" db:"duration"`
	Credits             int         `json:"credits" db:"credits"`
	Level               CourseLevel `json:"level" db:"level"`
	DepositAmount       float64     `json:"deposit_amount" db:"deposit_amount"`
	MonthlyPayment      float64     `json:"monthly_payment" db:"monthly_payment"`
	TotalPayment        float64     `json:"total_payment" db:"total_payment"`
	AssessmentFee       float64     `json:"assessment_fee" db:"assessment_fee"`
	Fee                 float64     `json:"fee" db:"fee"`
	RegistrationFee     float64     `json:"registration_fee" db:"registration_fee"`
	Curriculum          string      `json:"curriculum" db:"curriculum"`
	Prerequisites       string      `json:"prerequisites" db:"prerequisites"`
	Requirements        string      `json:"requirements" db:"requirements"`
	CareerOpportunities string      `json:"career_opportunities" db:"career_opportunities"`
	Image               *string     `json:"image,omitempty" db:"image"`
	ImageURL            string      `json:"image_url" db:"image_url"`
	CoursePDF           *string     `json:"course_pdf,omitempty" db:"course_pdf"`
	CoursePDFURL        string      `json:"course_pdf_url" db:"course_pdf_url"`
	IsFeatured          bool        `json:"is_featured" db:"is_featured"`
	IsActive            bool        `json:"is_active" db:"is_active"`
	IsMathRequired      bool        `json:"is_math_required" db:"is_math_required"`
	DisplayOrder        int         `json:"display_order" db:"display_order"`
	CreatedAt           time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at" db:"updated_at"`

	RequirementsList []CourseRequirement `json:"requirements_list"`
}

// HasPDF reports whether an outline has been uploaded or linked
func (c *Course) HasPDF() bool {
	return (c.CoursePDF != nil && *c.CoursePDF != "") || c.CoursePDFURL != ""
}

// RequirementType enumerates the kinds of entry requirement
type RequirementType string

const (
	RequirementIDCopy RequirementType = "id_copy"
	RequirementMatric RequirementType = "matric"
	RequirementFee    RequirementType = "fee"
	RequirementMaths  RequirementType = "maths"
	RequirementOther  RequirementType = "other"
)

// Valid reports whether t is a known requirement type
func (t RequirementType) Valid() bool {
	switch t {
	case RequirementIDCopy, RequirementMatric, RequirementFee, RequirementMaths, RequirementOther:
		return true
	}
	return false
}

// CourseRequirement is one entry requirement of a course
type CourseRequirement struct {
	ID              int64           `json:"id" db:"id"`
	CourseID        int64           `json:"course" db:"course_id"`
	RequirementType RequirementType `json:"requirement_type" db:"requirement_type"`
	Description     string          `json:"description" db:"description"`
	IsRequired      bool            `json:"is_required" db:"is_required"`
	Order           int             `json:"order" db:"sort_order"`
}
