package models

import "time"

// TeamMember is a staff profile shown on the about page
type TeamMember struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Position  string    `json:"position" db:"position"`
	Bio       string    `json:"bio" db:"bio"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Image     *string   `json:"image" db:"image"`
	ImageURL  string    `json:"image_url" db:"-"`
	Order     int       `json:"order" db:"sort_order"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	Facebook  string    `json:"facebook" db:"facebook"`
	Twitter   string    `json:"twitter" db:"twitter"`
	LinkedIn  string    `json:"linkedin" db:"linkedin"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// GalleryCategory groups gallery images
type GalleryCategory string

const (
	GalleryFacilities GalleryCategory = "facilities"
	GalleryStudents   GalleryCategory = "students"
	GalleryEvents     GalleryCategory = "events"
	GalleryGraduation GalleryCategory = "graduation"
	GalleryTraining   GalleryCategory = "training"
	GalleryOther      GalleryCategory = "other"
)

// Valid reports whether c is a known gallery category
func (c GalleryCategory) Valid() bool {
	switch c {
	case GalleryFacilities, GalleryStudents, GalleryEvents, GalleryGraduation, GalleryTraining, GalleryOther:
		return true
	}
	return false
}

// GalleryImage is a photo in the public gallery
type GalleryImage struct {
	ID          int64           `json:"id" db:"id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Image       string          `json:"image" db:"image"`
	ImageURL    string          `json:"image_url" db:"-"`
	Category    GalleryCategory `json:"category" db:"category"`
	UploadDate  time.Time       `json:"upload_date" db:"upload_date"`
	IsActive    bool            `json:"is_active" db:"is_active"`
}

// NewsletterSubscription is an email address on the mailing list
type NewsletterSubscription struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	SubscribedAt time.Time `json:"subscribed_at" db:"subscribed_at"`
	IsActive     bool      `json:"is_active" db:"is_active"`
}

// NewsPost is a news article
type NewsPost struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	PreviewText string    `json:"preview_text" db:"preview_text"`
	Content     string    `json:"content" db:"content"`
	Image       *string   `json:"image" db:"image"`
	ImageURL    string    `json:"image_url" db:"-"`
	IsPublished bool      `json:"is_published" db:"is_published"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// DirectorMessage is the home page quote; at most one is active
type DirectorMessage struct {
	ID           int64     `json:"id" db:"id"`
	Quote        string    `json:"quote" db:"quote"`
	VideoFile    *string   `json:"video_file" db:"video_file"`
	VideoFileURL string    `json:"video_file_url" db:"-"`
	VideoURL     string    `json:"video_url" db:"video_url"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Testimonial is a quote from a former student
type Testimonial struct {
	ID          int64     `json:"id" db:"id"`
	StudentName string    `json:"student_name" db:"student_name"`
	CourseID    *int64    `json:"course" db:"course_id"`
	CourseTitle string    `json:"course_title" db:"-"`
	Content     string    `json:"content" db:"content"`
	Rating      int       `json:"rating" db:"rating"`
	IsFeatured  bool      `json:"is_featured" db:"is_featured"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Video is an entry in the video library
type Video struct {
	ID           int64     `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	VideoFile    *string   `json:"video_file" db:"video_file"`
	VideoFileURL string    `json:"video_file_url" db:"-"`
	VideoURL     string    `json:"video_url" db:"video_url"`
	Thumbnail    *string   `json:"thumbnail" db:"thumbnail"`
	ThumbnailURL string    `json:"thumbnail_url" db:"-"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// DashboardStats is the admin landing page summary
type DashboardStats struct {
	TotalApplications    int64 `json:"total_applications"`
	PendingApplications  int64 `json:"pending_applications"`
	ApprovedApplications int64 `json:"approved_applications"`
	TotalStudents        int64 `json:"total_students"`
	ActiveCourses        int64 `json:"active_courses"`
}
