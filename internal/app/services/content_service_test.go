package services

import (
	"context"
	"errors"
	"testing"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/app/models/dto"
	"github.com/bathudi/admissions/internal/app/repositories/inmem"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/bathudi/admissions/internal/pkg/filestorage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contentFixture struct {
	svc      ContentService
	director *inmem.DirectorMessageStore
	courses  *inmem.CourseStore
	storage  *filestorage.LocalStorage
}

func newContentFixture(t *testing.T) *contentFixture {
	t.Helper()
	storage, err := filestorage.NewLocalStorage(t.TempDir(), "http://localhost:8080/media")
	require.NoError(t, err)

	courses := inmem.NewCourseStore()
	director := inmem.NewDirectorMessageStore()
	svc := NewContentService(ContentRepositories{
		Team:        inmem.NewTeamMemberStore(),
		Gallery:     inmem.NewGalleryStore(),
		Newsletter:  inmem.NewNewsletterStore(),
		News:        inmem.NewNewsStore(),
		Director:    director,
		Testimonial: inmem.NewTestimonialStore(courses),
		Video:       inmem.NewVideoStore(),
	}, storage, nil, zerolog.Nop())

	return &contentFixture{svc: svc, director: director, courses: courses, storage: storage}
}

func boolPtr(b bool) *bool { return &b }

func activeIDs(t *testing.T, svc ContentService) []int64 {
	t.Helper()
	msgs, err := svc.ListDirectorMessages(context.Background())
	require.NoError(t, err)
	var ids []int64
	for _, m := range msgs {
		if m.IsActive {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

func TestDirectorMessages_OnlyOneActive(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetActiveDirectorMessage(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNoActiveDirectorMessage)

	first, err := f.svc.CreateDirectorMessage(ctx, &dto.DirectorMessageRequest{Quote: "Welcome"}, nil)
	require.NoError(t, err)
	assert.True(t, first.IsActive)

	second, err := f.svc.CreateDirectorMessage(ctx, &dto.DirectorMessageRequest{Quote: "Skills for life"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{second.ID}, activeIDs(t, f.svc))

	draft, err := f.svc.CreateDirectorMessage(ctx, &dto.DirectorMessageRequest{Quote: "Draft", IsActive: boolPtr(false)}, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{second.ID}, activeIDs(t, f.svc), "an inactive message leaves the current one alone")

	require.NoError(t, f.svc.ActivateDirectorMessage(ctx, first.ID))
	assert.Equal(t, []int64{first.ID}, activeIDs(t, f.svc))

	active, err := f.svc.GetActiveDirectorMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Welcome", active.Quote)

	updated, err := f.svc.UpdateDirectorMessage(ctx, draft.ID, &dto.DirectorMessageRequest{Quote: "Now live", IsActive: boolPtr(true)}, nil)
	require.NoError(t, err)
	assert.True(t, updated.IsActive)
	assert.Equal(t, []int64{draft.ID}, activeIDs(t, f.svc))

	_, err = f.svc.UpdateDirectorMessage(ctx, draft.ID, &dto.DirectorMessageRequest{Quote: "Retired", IsActive: boolPtr(false)}, nil)
	require.NoError(t, err)
	assert.Empty(t, activeIDs(t, f.svc))

	assert.ErrorIs(t, f.svc.ActivateDirectorMessage(ctx, 999), apperrors.ErrContentNotFound)
}

func TestDirectorMessages_StoresVideoUpload(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()

	msg, err := f.svc.CreateDirectorMessage(ctx, &dto.DirectorMessageRequest{Quote: "Hello"}, fileHeader(t, "intro.mp4", "video"))
	require.NoError(t, err)
	require.NotNil(t, msg.VideoFile)
	assert.Equal(t, f.storage.URL(*msg.VideoFile), msg.VideoFileURL)

	_, err = f.svc.CreateDirectorMessage(ctx, &dto.DirectorMessageRequest{Quote: "Hello"}, fileHeader(t, "intro.pdf", "nope"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
	assert.Equal(t, []int64{msg.ID}, activeIDs(t, f.svc), "a rejected upload does not touch the active message")
}

func TestSubscribe_DuplicateEmailConflicts(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()

	sub, err := f.svc.Subscribe(ctx, &dto.NewsletterRequest{Email: " Reader@Example.com "})
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", sub.Email)
	assert.True(t, sub.IsActive)

	_, err = f.svc.Subscribe(ctx, &dto.NewsletterRequest{Email: "reader@example.COM"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadySubscribed)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	require.NoError(t, f.svc.SetSubscriptionActive(ctx, sub.ID, false))
	active, err := f.svc.ListSubscriptions(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := f.svc.ListSubscriptions(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestNewsPosts_UnpublishedHiddenFromPublicList(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateNewsPost(ctx, &dto.NewsPostRequest{Title: "Open day", PreviewText: "Visit us", Content: "..."}, nil)
	require.NoError(t, err)
	draft, err := f.svc.CreateNewsPost(ctx, &dto.NewsPostRequest{Title: "Draft", PreviewText: "Soon", Content: "...", IsPublished: boolPtr(false)}, nil)
	require.NoError(t, err)

	public, err := f.svc.ListNewsPosts(ctx, false)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Open day", public[0].Title)

	all, err := f.svc.ListNewsPosts(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, draft.ID, all[0].ID, "newest first")
}

func TestTeamMembers_ActiveFilterAndOrder(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()

	for _, req := range []dto.TeamMemberRequest{
		{Name: "Zanele", Position: "Trainer", Bio: "b", Order: 1},
		{Name: "Ayanda", Position: "Director", Bio: "b", Order: 0},
		{Name: "Bongani", Position: "Trainer", Bio: "b", Order: 1, IsActive: boolPtr(false)},
	} {
		req := req
		_, err := f.svc.CreateTeamMember(ctx, &req, nil)
		require.NoError(t, err)
	}

	public, err := f.svc.ListTeamMembers(ctx, false)
	require.NoError(t, err)
	require.Len(t, public, 2)
	assert.Equal(t, "Ayanda", public[0].Name)
	assert.Equal(t, "Zanele", public[1].Name)

	all, err := f.svc.ListTeamMembers(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGalleryImages(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateGalleryImage(ctx, &dto.GalleryImageRequest{Title: "Workshop"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	img, err := f.svc.CreateGalleryImage(ctx, &dto.GalleryImageRequest{Title: "Workshop", Category: "facilities"}, fileHeader(t, "shop.JPG", "img"))
	require.NoError(t, err)
	assert.Equal(t, f.storage.URL(img.Image), img.ImageURL)

	other, err := f.svc.CreateGalleryImage(ctx, &dto.GalleryImageRequest{Title: "Misc"}, fileHeader(t, "misc.png", "img"))
	require.NoError(t, err)
	assert.Equal(t, models.GalleryOther, other.Category)

	cat := models.GalleryFacilities
	images, err := f.svc.ListGalleryImages(ctx, &cat, false)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, img.ID, images[0].ID)

	bad := models.GalleryCategory("parties")
	_, err = f.svc.ListGalleryImages(ctx, &bad, false)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	require.NoError(t, f.svc.DeleteGalleryImage(ctx, img.ID))
	_, err = f.storage.Stat(ctx, img.Image)
	assert.Error(t, err, "the image file is removed with the row")
}

func TestTestimonials_RatingAndCourse(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()
	course := seedCourse(t, f.courses, "Automotive Engine Repairer")

	for _, rating := range []int{0, 6, -1} {
		_, err := f.svc.CreateTestimonial(ctx, &dto.TestimonialRequest{StudentName: "Sipho", Content: "Great", Rating: rating})
		var custom *apperrors.CustomError
		require.True(t, errors.As(err, &custom), "rating %d", rating)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Contains(t, custom.Details, "rating")
	}

	created, err := f.svc.CreateTestimonial(ctx, &dto.TestimonialRequest{StudentName: "Sipho", CourseID: &course.ID, Content: "Great", Rating: 5, IsFeatured: true})
	require.NoError(t, err)
	assert.Equal(t, course.Title, created.CourseTitle)

	_, err = f.svc.UpdateTestimonial(ctx, created.ID, &dto.TestimonialRequest{StudentName: "Sipho", Content: "Great", Rating: 9})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	missing := int64(404)
	_, err = f.svc.CreateTestimonial(ctx, &dto.TestimonialRequest{StudentName: "Lebo", CourseID: &missing, Content: "Good", Rating: 4})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	_, err = f.svc.CreateTestimonial(ctx, &dto.TestimonialRequest{StudentName: "Lebo", Content: "Good", Rating: 1})
	require.NoError(t, err)

	featured, err := f.svc.ListTestimonials(ctx, true)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, created.ID, featured[0].ID)
}

func TestVideos_RequireFileOrURL(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateVideo(ctx, &dto.VideoRequest{Title: "Tour"}, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	v, err := f.svc.CreateVideo(ctx, &dto.VideoRequest{Title: "Tour"}, fileHeader(t, "tour.mp4", "v"), fileHeader(t, "tour.png", "t"))
	require.NoError(t, err)
	require.NotNil(t, v.Thumbnail)
	assert.NotEmpty(t, v.ThumbnailURL)

	_, err = f.svc.UpdateVideo(ctx, v.ID, &dto.VideoRequest{Title: "Tour", IsActive: boolPtr(false)}, nil, nil)
	require.NoError(t, err)
	public, err := f.svc.ListVideos(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, public)
}
