package dto

// TeamMemberRequest is the multipart form for team members; the image is a separate file field
type TeamMemberRequest struct {
	Name     string `form:"name" binding:"required,max=100"`
	Position string `form:"position" binding:"required,max=100"`
	Bio      string `form:"bio" binding:"required"`
	Email    string `form:"email" binding:"omitempty,email"`
	Phone    string `form:"phone" binding:"max=20"`
	Order    int    `form:"order" binding:"gte=0"`
	IsActive *bool  `form:"is_active"`
	Facebook string `form:"facebook" binding:"omitempty,url"`
	Twitter  string `form:"twitter" binding:"omitempty,url"`
	LinkedIn string `form:"linkedin" binding:"omitempty,url"`
}

// GalleryImageRequest is the multipart form for gallery images
type GalleryImageRequest struct {
	Title       string `form:"title" binding:"required,max=200"`
	Description string `form:"description"`
	Category    string `form:"category" binding:"omitempty,oneof=facilities students events graduation training other"`
	IsActive    *bool  `form:"is_active"`
}

// NewsletterRequest subscribes an email address
type NewsletterRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// NewsPostRequest is the multipart form for news posts
type NewsPostRequest struct {
	Title       string `form:"title" binding:"required,max=200"`
	PreviewText string `form:"preview_text" binding:"required,max=300"`
	Content     string `form:"content" binding:"required"`
	IsPublished *bool  `form:"is_published"`
}

// DirectorMessageRequest is the multipart form for director messages
type DirectorMessageRequest struct {
	Quote    string `form:"quote" binding:"required"`
	VideoURL string `form:"video_url" binding:"omitempty,url"`
	IsActive *bool  `form:"is_active"`
}

// TestimonialRequest creates or replaces a testimonial
type TestimonialRequest struct {
	StudentName string `json:"student_name" binding:"required,max=100"`
	CourseID    *int64 `json:"course" binding:"omitempty,min=1"`
	Content     string `json:"content" binding:"required"`
	Rating      int    `json:"rating" binding:"required,gte=1,lte=5"`
	IsFeatured  bool   `json:"is_featured"`
}

// VideoRequest is the multipart form for videos
type VideoRequest struct {
	Title       string `form:"title" binding:"required,max=200"`
	Description string `form:"description"`
	VideoURL    string `form:"video_url" binding:"omitempty,url"`
	IsActive    *bool  `form:"is_active"`
}
