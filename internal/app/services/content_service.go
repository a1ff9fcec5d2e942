package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/app/models/dto"
	"github.com/bathudi/admissions/internal/app/repositories"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/bathudi/admissions/internal/pkg/email"
	"github.com/bathudi/admissions/internal/pkg/filestorage"
	"github.com/rs/zerolog"
)

// ContentService manages the website content resources
type ContentService interface {
	ListTeamMembers(ctx context.Context, includeInactive bool) ([]*models.TeamMember, error)
	GetTeamMember(ctx context.Context, id int64) (*models.TeamMember, error)
	CreateTeamMember(ctx context.Context, req *dto.TeamMemberRequest, image *multipart.FileHeader) (*models.TeamMember, error)
	UpdateTeamMember(ctx context.Context, id int64, req *dto.TeamMemberRequest, image *multipart.FileHeader) (*models.TeamMember, error)
	DeleteTeamMember(ctx context.Context, id int64) error

	ListGalleryImages(ctx context.Context, category *models.GalleryCategory, includeInactive bool) ([]*models.GalleryImage, error)
	GetGalleryImage(ctx context.Context, id int64) (*models.GalleryImage, error)
	CreateGalleryImage(ctx context.Context, req *dto.GalleryImageRequest, image *multipart.FileHeader) (*models.GalleryImage, error)
	UpdateGalleryImage(ctx context.Context, id int64, req *dto.GalleryImageRequest, image *multipart.FileHeader) (*models.GalleryImage, error)
	DeleteGalleryImage(ctx context.Context, id int64) error

	Subscribe(ctx context.Context, req *dto.NewsletterRequest) (*models.NewsletterSubscription, error)
	ListSubscriptions(ctx context.Context, includeInactive bool) ([]*models.NewsletterSubscription, error)
	SetSubscriptionActive(ctx context.Context, id int64, active bool) error
	DeleteSubscription(ctx context.Context, id int64) error

	ListNewsPosts(ctx context.Context, includeUnpublished bool) ([]*models.NewsPost, error)
	GetNewsPost(ctx context.Context, id int64) (*models.NewsPost, error)
	CreateNewsPost(ctx context.Context, req *dto.NewsPostRequest, image *multipart.FileHeader) (*models.NewsPost, error)
	UpdateNewsPost(ctx context.Context, id int64, req *dto.NewsPostRequest, image *multipart.FileHeader) (*models.NewsPost, error)
	DeleteNewsPost(ctx context.Context, id int64) error

	ListDirectorMessages(ctx context.Context) ([]*models.DirectorMessage, error)
	GetActiveDirectorMessage(ctx context.Context) (*models.DirectorMessage, error)
	CreateDirectorMessage(ctx context.Context, req *dto.DirectorMessageRequest, video *multipart.FileHeader) (*models.DirectorMessage, error)
	UpdateDirectorMessage(ctx context.Context, id int64, req *dto.DirectorMessageRequest, video *multipart.FileHeader) (*models.DirectorMessage, error)
	ActivateDirectorMessage(ctx context.Context, id int64) error
	DeleteDirectorMessage(ctx context.Context, id int64) error

	ListTestimonials(ctx context.Context, featuredOnly bool) ([]*models.Testimonial, error)
	GetTestimonial(ctx context.Context, id int64) (*models.Testimonial, error)
	CreateTestimonial(ctx context.Context, req *dto.TestimonialRequest) (*models.Testimonial, error)
	UpdateTestimonial(ctx context.Context, id int64, req *dto.TestimonialRequest) (*models.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id int64) error

	ListVideos(ctx context.Context, includeInactive bool) ([]*models.Video, error)
	GetVideo(ctx context.Context, id int64) (*models.Video, error)
	CreateVideo(ctx context.Context, req *dto.VideoRequest, video, thumbnail *multipart.FileHeader) (*models.Video, error)
	UpdateVideo(ctx context.Context, id int64, req *dto.VideoRequest, video, thumbnail *multipart.FileHeader) (*models.Video, error)
	DeleteVideo(ctx context.Context, id int64) error
}

// ContentRepositories groups the content stores
type ContentRepositories struct {
	Team        repositories.ITeamMemberRepository
	Gallery     repositories.IGalleryRepository
	Newsletter  repositories.INewsletterRepository
	News        repositories.INewsRepository
	Director    repositories.IDirectorMessageRepository
	Testimonial repositories.ITestimonialRepository
	Video       repositories.IVideoRepository
}

type contentServiceImpl struct {
	repos   ContentRepositories
	storage filestorage.Storage
	mailer  email.EmailService
	logger  zerolog.Logger
}

// NewContentService creates a new content service instance. mailer may be nil.
func NewContentService(repos ContentRepositories, storage filestorage.Storage, mailer email.EmailService, logger zerolog.Logger) ContentService {
	return &contentServiceImpl{
		repos:   repos,
		storage: storage,
		mailer:  mailer,
		logger:  logger.With().Str("component", "content_service").Logger(),
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func (s *contentServiceImpl) url(p *string) string {
	if p == nil || *p == "" {
		return ""
	}
	return s.storage.URL(*p)
}

// upload stores an optional file; the returned pointer is nil when fh is nil
func (s *contentServiceImpl) upload(ctx context.Context, fh *multipart.FileHeader, dir string, allowed []string) (*string, error) {
	relPath, err := filestorage.SaveUpload(ctx, s.storage, fh, dir, allowed)
	if err != nil || relPath == "" {
		return nil, err
	}
	return &relPath, nil
}

// remove deletes a stored file, best-effort
func (s *contentServiceImpl) remove(ctx context.Context, p *string) {
	if p == nil || *p == "" {
		return
	}
	if err := s.storage.Delete(ctx, *p); err != nil {
		s.logger.Warn().Err(err).Str("path", *p).Msg("Failed to delete content file")
	}
}

// Team

func (s *contentServiceImpl) decorateTeam(m *models.TeamMember) *models.TeamMember {
	m.ImageURL = s.url(m.Image)
	return m
}

func (s *contentServiceImpl) ListTeamMembers(ctx context.Context, includeInactive bool) ([]*models.TeamMember, error) {
	members, err := s.repos.Team.ListTeamMembers(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		s.decorateTeam(m)
	}
	return members, nil
}

func (s *contentServiceImpl) GetTeamMember(ctx context.Context, id int64) (*models.TeamMember, error) {
	m, err := s.repos.Team.GetTeamMember(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.decorateTeam(m), nil
}

func applyTeamRequest(m *models.TeamMember, req *dto.TeamMemberRequest) {
	m.Name = strings.TrimSpace(req.Name)
	m.Position = strings.TrimSpace(req.Position)
	m.Bio = req.Bio
	m.Email = req.Email
	m.Phone = req.Phone
	m.Order = req.Order
	m.IsActive = boolOr(req.IsActive, true)
	m.Facebook = req.Facebook
	m.Twitter = req.Twitter
	m.LinkedIn = req.LinkedIn
}

func (s *contentServiceImpl) CreateTeamMember(ctx context.Context, req *dto.TeamMemberRequest, image *multipart.FileHeader) (*models.TeamMember, error) {
	m := &models.TeamMember{}
	applyTeamRequest(m, req)
	img, err := s.upload(ctx, image, filestorage.DirTeam, filestorage.ImageExtensions)
	if err != nil {
		return nil, err
	}
	m.Image = img
	if _, err := s.repos.Team.CreateTeamMember(ctx, m); err != nil {
		s.remove(ctx, img)
		return nil, err
	}
	return s.decorateTeam(m), nil
}

func (s *contentServiceImpl) UpdateTeamMember(ctx context.Context, id int64, req *dto.TeamMemberRequest, image *multipart.FileHeader) (*models.TeamMember, error) {
	m, err := s.repos.Team.GetTeamMember(ctx, id)
	if err != nil {
		return nil, err
	}
	applyTeamRequest(m, req)
	img, err := s.upload(ctx, image, filestorage.DirTeam, filestorage.ImageExtensions)
	if err != nil {
		return nil, err
	}
	old := m.Image
	if img != nil {
		m.Image = img
	}
	if err := s.repos.Team.UpdateTeamMember(ctx, m); err != nil {
		s.remove(ctx, img)
		return nil, err
	}
	if img != nil {
		s.remove(ctx, old)
	}
	return s.decorateTeam(m), nil
}

func (s *contentServiceImpl) DeleteTeamMember(ctx context.Context, id int64) error {
	m, err := s.repos.Team.GetTeamMember(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repos.Team.DeleteTeamMember(ctx, id); err != nil {
		return err
	}
	s.remove(ctx, m.Image)
	return nil
}

// Gallery

func (s *contentServiceImpl) decorateGallery(g *models.GalleryImage) *models.GalleryImage {
	g.ImageURL = s.url(&g.Image)
	return g
}

func (s *contentServiceImpl) ListGalleryImages(ctx context.Context, category *models.GalleryCategory, includeInactive bool) ([]*models.GalleryImage, error) {
	if category != nil && !category.Valid() {
		return nil, apperrors.NewBadRequestError("invalid gallery category")
	}
	images, err := s.repos.Gallery.ListGalleryImages(ctx, category, includeInactive)
	if err != nil {
		return nil, err
	}
	for _, g := range images {
		s.decorateGallery(g)
	}
	return images, nil
}

func (s *contentServiceImpl) GetGalleryImage(ctx context.Context, id int64) (*models.GalleryImage, error) {
	g, err := s.repos.Gallery.GetGalleryImage(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.decorateGallery(g), nil
}

func applyGalleryRequest(g *models.GalleryImage, req *dto.GalleryImageRequest) {
	g.Title = strings.TrimSpace(req.Title)
	g.Description = req.Description
	g.Category = models.GalleryCategory(req.Category)
	if g.Category == "" {
		g.Category = models.GalleryOther
	}
	g.IsActive = boolOr(req.IsActive, true)
}

func (s *contentServiceImpl) CreateGalleryImage(ctx context.Context, req *dto.GalleryImageRequest, image *multipart.FileHeader) (*models.GalleryImage, error) {
	if image == nil {
		return nil, apperrors.NewValidationError("Validation failed", map[string]string{"image": "an image file is required"})
	}
	g := &models.GalleryImage{}
	applyGalleryRequest(g, req)
	img, err := s.upload(ctx, image, filestorage.DirGallery, filestorage.ImageExtensions)
	if err != nil {
		return nil, err
	}
	g.Image = *img
	if _, err := s.repos.Gallery.CreateGalleryImage(ctx, g); err != nil {
		s.remove(ctx, img)
		return nil, err
	}
	return s.decorateGallery(g), nil
}

func (s *contentServiceImpl) UpdateGalleryImage(ctx context.Context, id int64, req *dto.GalleryImageRequest, image *multipart.FileHeader) (*models.GalleryImage, error) {
	g, err := s.repos.Gallery.GetGalleryImage(ctx, id)
	if err != nil {
		return nil, err
	}
	applyGalleryRequest(g, req)
	img, err := s.upload(ctx, image, filestorage.DirGallery, filestorage.ImageExtensions)
	if err != nil {
		return nil, err
	}
	old := g.Image
	if img != nil {
		g.Image = *img
	}
	if err := s.repos.Gallery.UpdateGalleryImage(ctx, g); err != nil {
		s.remove(ctx, img)
		return nil, err
	}
	if img != nil {
		s.remove(ctx, &old)
	}
	return s.decorateGallery(g), nil
}

func (s *contentServiceImpl) DeleteGalleryImage(ctx context.Context, id int64) error {
	g, err := s.repos.Gallery.GetGalleryImage(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repos.Gallery.DeleteGalleryImage(ctx, id); err != nil {
		return err
	}
	s.remove(ctx, &g.Image)
	return nil
}

// Newsletter

func (s *contentServiceImpl) Subscribe(ctx context.Context, req *dto.NewsletterRequest) (*models.NewsletterSubscription, error) {
	sub := &models.NewsletterSubscription{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		IsActive: true,
	}
	if _, err := s.repos.Newsletter.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("subscriptionID", sub.ID).Msg("Newsletter subscription created")

	if s.mailer != nil {
		to := sub.Email
		go func() {
			if err := s.mailer.SendNewsletterWelcome(to); err != nil {
				s.logger.Warn().Err(err).Msg("Failed to send newsletter welcome email")
			}
		}()
	}
	return sub, nil
}

func (s *contentServiceImpl) ListSubscriptions(ctx context.Context, includeInactive bool) ([]*models.NewsletterSubscription, error) {
	return s.repos.Newsletter.ListSubscriptions(ctx, includeInactive)
}

func (s *contentServiceImpl) SetSubscriptionActive(ctx context.Context, id int64, active bool) error {
	return s.repos.Newsletter.SetSubscriptionActive(ctx, id, active)
}

func (s *contentServiceImpl) DeleteSubscription(ctx context.Context, id int64) error {
	return s.repos.Newsletter.DeleteSubscription(ctx, id)
}

// News

func (s *contentServiceImpl) decorateNews(p *models.NewsPost) *models.NewsPost {
	p.ImageURL = s.url(p.Image)
	return p
}

func (s *contentServiceImpl) ListNewsPosts(ctx context.Context, includeUnpublished bool) ([]*models.NewsPost, error) {
	posts, err := s.repos.News.ListNewsPosts(ctx, includeUnpublished)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		s.decorateNews(p)
	}
	return posts, nil
}

func (s *contentServiceImpl) GetNewsPost(ctx context.Context, id int64) (*models.NewsPost, error) {
	p, err := s.repos.News.GetNewsPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.decorateNews(p), nil
}

func applyNewsRequest(p *models.NewsPost, req *dto.NewsPostRequest) {
	p.Title = strings.TrimSpace(req.Title)
	p.PreviewText = strings.TrimSpace(req.PreviewText)
	p.Content = req.Content
	p.IsPublished = boolOr(req.IsPublished, true)
}

func (s *contentServiceImpl) CreateNewsPost(ctx context.Context, req *dto.NewsPostRequest, image *multipart.FileHeader) (*models.NewsPost, error) {
	p := &models.NewsPost{}
	applyNewsRequest(p, req)
	img, err := s.upload(ctx, image, filestorage.DirNews, filestorage.ImageExtensions)
	if err != nil {
		return nil, err
	}
	p.Image = img
	if _, err := s.repos.News.CreateNewsPost(ctx, p); err != nil {
		s.remove(ctx, img)
		return nil, err
	}
	return s.decorateNews(p), nil
}

func (s *contentServiceImpl) UpdateNewsPost(ctx context.Context, id int64, req *dto.NewsPostRequest, image *multipart.FileHeader) (*models.NewsPost, error) {
	p, err := s.repos.News.GetNewsPost(ctx, id)
	if err != nil {
		return nil, err
	}
	applyNewsRequest(p, req)
	img, err := s.upload(ctx, image, filestorage.DirNews, filestorage.ImageExtensions)
	if err != nil {
		return nil, err
	}
	old := p.Image
	if img != nil {
		p.Image = img
	}
	if err := s.repos.News.UpdateNewsPost(ctx, p); err != nil {
		s.remove(ctx, img)
		return nil, err
	}
	if img != nil {
		s.remove(ctx, old)
	}
	return s.decorateNews(p), nil
}

func (s *contentServiceImpl) DeleteNewsPost(ctx context.Context, id int64) error {
	p, err := s.repos.News.GetNewsPost(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repos.News.DeleteNewsPost(ctx, id); err != nil {
		return err
	}
	s.remove(ctx, p.Image)
	return nil
}

// Director messages

func (s *contentServiceImpl) decorateDirector(m *models.DirectorMessage) *models.DirectorMessage {
	m.VideoFileURL = s.url(m.VideoFile)
	return m
}

func (s *contentServiceImpl) ListDirectorMessages(ctx context.Context) ([]*models.DirectorMessage, error) {
	msgs, err := s.repos.Director.ListDirectorMessages(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range msgs {
		s.decorateDirector(m)
	}
	return msgs, nil
}

func (s *contentServiceImpl) GetActiveDirectorMessage(ctx context.Context) (*models.DirectorMessage, error) {
	m, err := s.repos.Director.GetActiveDirectorMessage(ctx)
	if err != nil {
		return nil, err
	}
	return s.decorateDirector(m), nil
}

func (s *contentServiceImpl) CreateDirectorMessage(ctx context.Context, req *dto.DirectorMessageRequest, video *multipart.FileHeader) (*models.DirectorMessage, error) {
	m := &models.DirectorMessage{
		Quote:    strings.TrimSpace(req.Quote),
		VideoURL: req.VideoURL,
		IsActive: boolOr(req.IsActive, true),
	}
	file, err := s.upload(ctx, video, filestorage.DirDirectorVideos, filestorage.VideoExtensions)
	if err != nil {
		return nil, err
	}
	m.VideoFile = file
	if _, err := s.repos.Director.CreateDirectorMessage(ctx, m); err != nil {
		s.remove(ctx, file)
		return nil, err
	}
	return s.decorateDirector(m), nil
}

func (s *contentServiceImpl) UpdateDirectorMessage(ctx context.Context, id int64, req *dto.DirectorMessageRequest, video *multipart.FileHeader) (*models.DirectorMessage, error) {
	m, err := s.repos.Director.GetDirectorMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Quote = strings.TrimSpace(req.Quote)
	m.VideoURL = req.VideoURL
	activate := req.IsActive != nil && *req.IsActive && !m.IsActive
	if req.IsActive != nil && !*req.IsActive {
		m.IsActive = false
	}

	file, err := s.upload(ctx, video, filestorage.DirDirectorVideos, filestorage.VideoExtensions)
	if err != nil {
		return nil, err
	}
	old := m.VideoFile
	if file != nil {
		m.VideoFile = file
	}
	if err := s.repos.Director.UpdateDirectorMessage(ctx, m); err != nil {
		s.remove(ctx, file)
		return nil, err
	}
	if file != nil {
		s.remove(ctx, old)
	}
	if activate {
		if err := s.repos.Director.ActivateDirectorMessage(ctx, id); err != nil {
			return nil, err
		}
		m.IsActive = true
	}
	return s.decorateDirector(m), nil
}

func (s *contentServiceImpl) ActivateDirectorMessage(ctx context.Context, id int64) error {
	return s.repos.Director.ActivateDirectorMessage(ctx, id)
}

func (s *contentServiceImpl) DeleteDirectorMessage(ctx context.Context, id int64) error {
	m, err := s.repos.Director.GetDirectorMessage(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repos.Director.DeleteDirectorMessage(ctx, id); err != nil {
		return err
	}
	s.remove(ctx, m.VideoFile)
	return nil
}

// Testimonials

func (s *contentServiceImpl) ListTestimonials(ctx context.Context, featuredOnly bool) ([]*models.Testimonial, error) {
	return s.repos.Testimonial.ListTestimonials(ctx, featuredOnly)
}

func (s *contentServiceImpl) GetTestimonial(ctx context.Context, id int64) (*models.Testimonial, error) {
	return s.repos.Testimonial.GetTestimonial(ctx, id)
}

func validateTestimonial(req *dto.TestimonialRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return apperrors.NewValidationError("Validation failed", map[string]string{"rating": "rating must be between 1 and 5"})
	}
	return nil
}

func applyTestimonialRequest(t *models.Testimonial, req *dto.TestimonialRequest) {
	t.StudentName = strings.TrimSpace(req.StudentName)
	t.CourseID = req.CourseID
	t.Content = req.Content
	t.Rating = req.Rating
	t.IsFeatured = req.IsFeatured
}

func (s *contentServiceImpl) CreateTestimonial(ctx context.Context, req *dto.TestimonialRequest) (*models.Testimonial, error) {
	if err := validateTestimonial(req); err != nil {
		return nil, err
	}
	t := &models.Testimonial{}
	applyTestimonialRequest(t, req)
	id, err := s.repos.Testimonial.CreateTestimonial(ctx, t)
	if err != nil {
		return nil, err
	}
	return s.repos.Testimonial.GetTestimonial(ctx, id)
}

func (s *contentServiceImpl) UpdateTestimonial(ctx context.Context, id int64, req *dto.TestimonialRequest) (*models.Testimonial, error) {
	if err := validateTestimonial(req); err != nil {
		return nil, err
	}
	t, err := s.repos.Testimonial.GetTestimonial(ctx, id)
	if err != nil {
		return nil, err
	}
	applyTestimonialRequest(t, req)
	if err := s.repos.Testimonial.UpdateTestimonial(ctx, t); err != nil {
		return nil, err
	}
	return s.repos.Testimonial.GetTestimonial(ctx, id)
}

func (s *contentServiceImpl) DeleteTestimonial(ctx context.Context, id int64) error {
	return s.repos.Testimonial.DeleteTestimonial(ctx, id)
}

// Videos

func (s *contentServiceImpl) decorateVideo(v *models.Video) *models.Video {
	v.VideoFileURL = s.url(v.VideoFile)
	v.ThumbnailURL = s.url(v.Thumbnail)
	return v
}

func (s *contentServiceImpl) ListVideos(ctx context.Context, includeInactive bool) ([]*models.Video, error) {
	videos, err := s.repos.Video.ListVideos(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	for _, v := range videos {
		s.decorateVideo(v)
	}
	return videos, nil
}

func (s *contentServiceImpl) GetVideo(ctx context.Context, id int64) (*models.Video, error) {
	v, err := s.repos.Video.GetVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.decorateVideo(v), nil
}

func (s *contentServiceImpl) uploadVideoFiles(ctx context.Context, video, thumbnail *multipart.FileHeader) (file, thumb *string, err error) {
	file, err = s.upload(ctx, video, filestorage.DirVideos, filestorage.VideoExtensions)
	if err != nil {
		return nil, nil, err
	}
	thumb, err = s.upload(ctx, thumbnail, filestorage.DirVideoThumbnails, filestorage.ImageExtensions)
	if err != nil {
		s.remove(ctx, file)
		return nil, nil, err
	}
	return file, thumb, nil
}

func (s *contentServiceImpl) CreateVideo(ctx context.Context, req *dto.VideoRequest, video, thumbnail *multipart.FileHeader) (*models.Video, error) {
	if video == nil && req.VideoURL == "" {
		return nil, apperrors.NewValidationError("Validation failed", map[string]string{"video_file": "a video file or video_url is required"})
	}
	file, thumb, err := s.uploadVideoFiles(ctx, video, thumbnail)
	if err != nil {
		return nil, err
	}
	v := &models.Video{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		VideoURL:    req.VideoURL,
		VideoFile:   file,
		Thumbnail:   thumb,
		IsActive:    boolOr(req.IsActive, true),
	}
	if _, err := s.repos.Video.CreateVideo(ctx, v); err != nil {
		s.remove(ctx, file)
		s.remove(ctx, thumb)
		return nil, err
	}
	return s.decorateVideo(v), nil
}

func (s *contentServiceImpl) UpdateVideo(ctx context.Context, id int64, req *dto.VideoRequest, video, thumbnail *multipart.FileHeader) (*models.Video, error) {
	v, err := s.repos.Video.GetVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	file, thumb, err := s.uploadVideoFiles(ctx, video, thumbnail)
	if err != nil {
		return nil, err
	}
	oldFile, oldThumb := v.VideoFile, v.Thumbnail
	v.Title = strings.TrimSpace(req.Title)
	v.Description = req.Description
	v.VideoURL = req.VideoURL
	v.IsActive = boolOr(req.IsActive, v.IsActive)
	if file != nil {
		v.VideoFile = file
	}
	if thumb != nil {
		v.Thumbnail = thumb
	}
	if err := s.repos.Video.UpdateVideo(ctx, v); err != nil {
		s.remove(ctx, file)
		s.remove(ctx, thumb)
		return nil, err
	}
	if file != nil {
		s.remove(ctx, oldFile)
	}
	if thumb != nil {
		s.remove(ctx, oldThumb)
	}
	return s.decorateVideo(v), nil
}

func (s *contentServiceImpl) DeleteVideo(ctx context.Context, id int64) error {
	v, err := s.repos.Video.GetVideo(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repos.Video.DeleteVideo(ctx, id); err != nil {
		return err
	}
	s.remove(ctx, v.VideoFile)
	s.remove(ctx, v.Thumbnail)
	return nil
}
