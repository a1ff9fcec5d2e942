package dto

// CourseRequest is used for creating and replacing a course
type CourseRequest struct {
	Title               string  `json:"title" binding:"required,max=200"`
	ShortTitle          string  `json:"short_title" binding:"max=100"`
	Description         string  `json:"description" binding:"required"`
	ShortDescription    string  `json:"short_description" binding:"max=300"`
	Duration            string  `json:"duration" binding:"required,max=50"`
	Credits             int     `json:"credits" binding:"gte=0"`
	Level               string  `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	DepositAmount       float64 `json:"deposit_amount" binding:"gte=0"`
	MonthlyPayment      float64 `json:"monthly_payment" binding:"gte=0"`
	TotalPayment        float64 `json:"total_payment" binding:"gte=0"`
	AssessmentFee       float64 `json:"assessment_fee" binding:"gte=0"`
	Fee                 float64 `json:"fee" binding:"gte=0"`
	RegistrationFee     float64 `json:"registration_fee" binding:"gte=0"`
	Curriculum          string  `json:"curriculum"`
	Prerequisites       string  `json:"prerequisites"`
	Requirements        string  `json:"requirements"`
	CareerOpportunities string  `json:"career_opportunities"`
	ImageURL            string  `json:"image_url" binding:"omitempty,url"`
	CoursePDFURL        string  `json:"course_pdf_url" binding:"omitempty,url"`
	IsFeatured          bool    `json:"is_featured"`
	IsActive            *bool   `json:"is_active"`
	IsMathRequired      bool    `json:"is_math_required"`
	DisplayOrder        int     `json:"display_order"`
}

// CourseRequirementRequest is used for creating and replacing a requirement
type CourseRequirementRequest struct {
	RequirementType string `json:"requirement_type" binding:"required,oneof=id_copy matric fee maths other"`
	Description     string `json:"description" binding:"required,max=200"`
	IsRequired      *bool  `json:"is_required"`
	Order           int    `json:"order" binding:"gte=0"`
}

// CoursePDFResponse points at a course outline
type CoursePDFResponse struct {
	PDFURL string `json:"pdf_url" example:"http://localhost:8080/media/course_pdfs/automotive-engine-repairer-outline.pdf"`
	Title  string `json:"title" example:"Occupational Certificate: Automotive Engine Repairer"`
}
