package inmem

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/app/repositories"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
)

// newestFirst orders by created time, later ids first on ties
func newestFirst(aTime, bTime time.Time, aID, bID int64) bool {
	if !aTime.Equal(bTime) {
		return aTime.After(bTime)
	}
	return aID > bID
}

// TeamMemberStore is an in-memory ITeamMemberRepository
type TeamMemberStore struct {
	mu      sync.RWMutex
	members map[int64]models.TeamMember
	nextID  int64
}

// NewTeamMemberStore creates an empty TeamMemberStore
func NewTeamMemberStore() *TeamMemberStore {
	return &TeamMemberStore{members: map[int64]models.TeamMember{}}
}

// ListTeamMembers orders by display order, then name
func (s *TeamMemberStore) ListTeamMembers(_ context.Context, includeInactive bool) ([]*models.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.TeamMember{}
	for _, m := range s.members {
		if !includeInactive && !m.IsActive {
			continue
		}
		cp := m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *TeamMemberStore) GetTeamMember(_ context.Context, id int64) (*models.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[id]
	if !ok {
		return nil, apperrors.ErrContentNotFound
	}
	return &m, nil
}

func (s *TeamMemberStore) CreateTeamMember(_ context.Context, m *models.TeamMember) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	m.ID = s.nextID
	m.CreatedAt = time.Now()
	s.members[m.ID] = *m
	return m.ID, nil
}

func (s *TeamMemberStore) UpdateTeamMember(_ context.Context, m *models.TeamMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[m.ID]; !ok {
		return apperrors.ErrContentNotFound
	}
	s.members[m.ID] = *m
	return nil
}

func (s *TeamMemberStore) DeleteTeamMember(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[id]; !ok {
		return apperrors.ErrContentNotFound
	}
	delete(s.members, id)
	return nil
}

// GalleryStore is an in-memory IGalleryRepository
type GalleryStore struct {
	mu     sync.RWMutex
	images map[int64]models.GalleryImage
	nextID int64
}

// NewGalleryStore creates an empty GalleryStore
func NewGalleryStore() *GalleryStore {
	return &GalleryStore{images: map[int64]models.GalleryImage{}}
}

func (s *GalleryStore) ListGalleryImages(_ context.Context, category *models.GalleryCategory, includeInactive bool) ([]*models.GalleryImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.GalleryImage{}
	for _, g := range s.images {
		if !includeInactive && !g.IsActive {
			continue
		}
		if category != nil && g.Category != *category {
			continue
		}
		cp := g
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].UploadDate, out[j].UploadDate, out[i].ID, out[j].ID)
	})
	return out, nil
}

func (s *GalleryStore) GetGalleryImage(_ context.Context, id int64) (*models.GalleryImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.images[id]
	if !ok {
		return nil, apperrors.ErrContentNotFound
	}
	return &g, nil
}

func (s *GalleryStore) CreateGalleryImage(_ context.Context, img *models.GalleryImage) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	img.ID = s.nextID
	img.UploadDate = time.Now()
	s.images[img.ID] = *img
	return img.ID, nil
}

func (s *GalleryStore) UpdateGalleryImage(_ context.Context, img *models.GalleryImage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.images[img.ID]; !ok {
		return apperrors.ErrContentNotFound
	}
	s.images[img.ID] = *img
	return nil
}

func (s *GalleryStore) DeleteGalleryImage(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.images[id]; !ok {
		return apperrors.ErrContentNotFound
	}
	delete(s.images, id)
	return nil
}

// NewsletterStore is an in-memory INewsletterRepository with a unique email index
type NewsletterStore struct {
	mu     sync.RWMutex
	subs   map[int64]models.NewsletterSubscription
	nextID int64
}

// NewNewsletterStore creates an empty NewsletterStore
func NewNewsletterStore() *NewsletterStore {
	return &NewsletterStore{subs: map[int64]models.NewsletterSubscription{}}
}

func (s *NewsletterStore) ListSubscriptions(_ context.Context, includeInactive bool) ([]*models.NewsletterSubscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.NewsletterSubscription{}
	for _, sub := range s.subs {
		if !includeInactive && !sub.IsActive {
			continue
		}
		cp := sub
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].SubscribedAt, out[j].SubscribedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

func (s *NewsletterStore) CreateSubscription(_ context.Context, sub *models.NewsletterSubscription) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub.Email = strings.ToLower(strings.TrimSpace(sub.Email))
	for _, existing := range s.subs {
		if existing.Email == sub.Email {
			return 0, apperrors.ErrAlreadySubscribed
		}
	}
	s.nextID++
	sub.ID = s.nextID
	sub.SubscribedAt = time.Now()
	s.subs[sub.ID] = *sub
	return sub.ID, nil
}

func (s *NewsletterStore) SetSubscriptionActive(_ context.Context, id int64, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subs[id]
	if !ok {
		return apperrors.ErrContentNotFound
	}
	sub.IsActive = active
	s.subs[id] = sub
	return nil
}

func (s *NewsletterStore) DeleteSubscription(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[id]; !ok {
		return apperrors.ErrContentNotFound
	}
	delete(s.subs, id)
	return nil
}

// NewsStore is an in-memory INewsRepository
type NewsStore struct {
	mu     sync.RWMutex
	posts  map[int64]models.NewsPost
	nextID int64
}

// NewNewsStore creates an empty NewsStore
func NewNewsStore() *NewsStore {
	return &NewsStore{posts: map[int64]models.NewsPost{}}
}

func (s *NewsStore) ListNewsPosts(_ context.Context, includeUnpublished bool) ([]*models.NewsPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.NewsPost{}
	for _, p := range s.posts {
		if !includeUnpublished && !p.IsPublished {
			continue
		}
		cp := p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

func (s *NewsStore) GetNewsPost(_ context.Context, id int64) (*models.NewsPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, apperrors.ErrContentNotFound
	}
	return &p, nil
}

func (s *NewsStore) CreateNewsPost(_ context.Context, post *models.NewsPost) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	post.ID = s.nextID
	now := time.Now()
	post.CreatedAt, post.UpdatedAt = now, now
	s.posts[post.ID] = *post
	return post.ID, nil
}

func (s *NewsStore) UpdateNewsPost(_ context.Context, post *models.NewsPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[post.ID]; !ok {
		return apperrors.ErrContentNotFound
	}
	post.UpdatedAt = time.Now()
	s.posts[post.ID] = *post
	return nil
}

func (s *NewsStore) DeleteNewsPost(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return apperrors.ErrContentNotFound
	}
	delete(s.posts, id)
	return nil
}

// DirectorMessageStore is an in-memory IDirectorMessageRepository.
// At most one message is active, as in the Postgres repository.
type DirectorMessageStore struct {
	mu     sync.RWMutex
	msgs   map[int64]models.DirectorMessage
	nextID int64
}

// NewDirectorMessageStore creates an empty DirectorMessageStore
func NewDirectorMessageStore() *DirectorMessageStore {
	return &DirectorMessageStore{msgs: map[int64]models.DirectorMessage{}}
}

func (s *DirectorMessageStore) ListDirectorMessages(_ context.Context) ([]*models.DirectorMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.DirectorMessage, 0, len(s.msgs))
	for _, m := range s.msgs {
		cp := m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

func (s *DirectorMessageStore) GetDirectorMessage(_ context.Context, id int64) (*models.DirectorMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.msgs[id]
	if !ok {
		return nil, apperrors.ErrContentNotFound
	}
	return &m, nil
}

func (s *DirectorMessageStore) GetActiveDirectorMessage(_ context.Context) (*models.DirectorMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var active *models.DirectorMessage
	for _, m := range s.msgs {
		if !m.IsActive {
			continue
		}
		if active == nil || m.UpdatedAt.After(active.UpdatedAt) {
			cp := m
			active = &cp
		}
	}
	if active == nil {
		return nil, apperrors.ErrNoActiveDirectorMessage
	}
	return active, nil
}

// deactivateOthers must be called with the lock held
func (s *DirectorMessageStore) deactivateOthers(keepID int64, now time.Time) {
	for id, m := range s.msgs {
		if id != keepID && m.IsActive {
			m.IsActive = false
			m.UpdatedAt = now
			s.msgs[id] = m
		}
	}
}

func (s *DirectorMessageStore) CreateDirectorMessage(_ context.Context, msg *models.DirectorMessage) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if msg.IsActive {
		s.deactivateOthers(0, now)
	}
	s.nextID++
	msg.ID = s.nextID
	msg.CreatedAt, msg.UpdatedAt = now, now
	s.msgs[msg.ID] = *msg
	return msg.ID, nil
}

func (s *DirectorMessageStore) UpdateDirectorMessage(_ context.Context, msg *models.DirectorMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.msgs[msg.ID]; !ok {
		return apperrors.ErrContentNotFound
	}
	now := time.Now()
	if msg.IsActive {
		s.deactivateOthers(msg.ID, now)
	}
	msg.UpdatedAt = now
	s.msgs[msg.ID] = *msg
	return nil
}

func (s *DirectorMessageStore) ActivateDirectorMessage(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.msgs[id]
	if !ok {
		return apperrors.ErrContentNotFound
	}
	now := time.Now()
	s.deactivateOthers(id, now)
	m.IsActive = true
	m.UpdatedAt = now
	s.msgs[id] = m
	return nil
}

func (s *DirectorMessageStore) DeleteDirectorMessage(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.msgs[id]; !ok {
		return apperrors.ErrContentNotFound
	}
	delete(s.msgs, id)
	return nil
}

// TestimonialStore is an in-memory ITestimonialRepository. When Courses is
// set, course references are checked against it and titles are filled in.
type TestimonialStore struct {
	mu           sync.RWMutex
	testimonials map[int64]models.Testimonial
	nextID       int64

	Courses *CourseStore
}

// NewTestimonialStore creates an empty TestimonialStore
func NewTestimonialStore(courses *CourseStore) *TestimonialStore {
	return &TestimonialStore{testimonials: map[int64]models.Testimonial{}, Courses: courses}
}

func (s *TestimonialStore) courseTitle(ctx context.Context, courseID *int64) (string, error) {
	if courseID == nil || s.Courses == nil {
		return "", nil
	}
	c, err := s.Courses.GetCourseByID(ctx, *courseID)
	if err != nil {
		return "", err
	}
	return c.Title, nil
}

func (s *TestimonialStore) ListTestimonials(ctx context.Context, featuredOnly bool) ([]*models.Testimonial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Testimonial{}
	for _, t := range s.testimonials {
		if featuredOnly && !t.IsFeatured {
			continue
		}
		cp := t
		cp.CourseTitle, _ = s.courseTitle(ctx, cp.CourseID)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

func (s *TestimonialStore) GetTestimonial(ctx context.Context, id int64) (*models.Testimonial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.testimonials[id]
	if !ok {
		return nil, apperrors.ErrContentNotFound
	}
	t.CourseTitle, _ = s.courseTitle(ctx, t.CourseID)
	return &t, nil
}

func (s *TestimonialStore) CreateTestimonial(ctx context.Context, t *models.Testimonial) (int64, error) {
	if _, err := s.courseTitle(ctx, t.CourseID); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t.ID = s.nextID
	t.CreatedAt = time.Now()
	s.testimonials[t.ID] = *t
	return t.ID, nil
}

func (s *TestimonialStore) UpdateTestimonial(ctx context.Context, t *models.Testimonial) error {
	if _, err := s.courseTitle(ctx, t.CourseID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.testimonials[t.ID]; !ok {
		return apperrors.ErrContentNotFound
	}
	s.testimonials[t.ID] = *t
	return nil
}

func (s *TestimonialStore) DeleteTestimonial(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.testimonials[id]; !ok {
		return apperrors.ErrContentNotFound
	}
	delete(s.testimonials, id)
	return nil
}

// VideoStore is an in-memory IVideoRepository
type VideoStore struct {
	mu     sync.RWMutex
	videos map[int64]models.Video
	nextID int64
}

// NewVideoStore creates an empty VideoStore
func NewVideoStore() *VideoStore {
	return &VideoStore{videos: map[int64]models.Video{}}
}

func (s *VideoStore) ListVideos(_ context.Context, includeInactive bool) ([]*models.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Video{}
	for _, v := range s.videos {
		if !includeInactive && !v.IsActive {
			continue
		}
		cp := v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

func (s *VideoStore) GetVideo(_ context.Context, id int64) (*models.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.videos[id]
	if !ok {
		return nil, apperrors.ErrContentNotFound
	}
	return &v, nil
}

func (s *VideoStore) CreateVideo(_ context.Context, v *models.Video) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	v.ID = s.nextID
	v.CreatedAt = time.Now()
	s.videos[v.ID] = *v
	return v.ID, nil
}

func (s *VideoStore) UpdateVideo(_ context.Context, v *models.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.videos[v.ID]; !ok {
		return apperrors.ErrContentNotFound
	}
	s.videos[v.ID] = *v
	return nil
}

func (s *VideoStore) DeleteVideo(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.videos[id]; !ok {
		return apperrors.ErrContentNotFound
	}
	delete(s.videos, id)
	return nil
}

var (
	_ repositories.ICourseRepository          = (*CourseStore)(nil)
	_ repositories.IApplicationRepository     = (*ApplicationStore)(nil)
	_ repositories.IStudentRepository         = (*StudentStore)(nil)
	_ repositories.IAdminRepository           = (*AdminStore)(nil)
	_ repositories.ITeamMemberRepository      = (*TeamMemberStore)(nil)
	_ repositories.IGalleryRepository         = (*GalleryStore)(nil)
	_ repositories.INewsletterRepository      = (*NewsletterStore)(nil)
	_ repositories.INewsRepository            = (*NewsStore)(nil)
	_ repositories.IDirectorMessageRepository = (*DirectorMessageStore)(nil)
	_ repositories.ITestimonialRepository     = (*TestimonialStore)(nil)
	_ repositories.IVideoRepository           = (*VideoStore)(nil)
)
