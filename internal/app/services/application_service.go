package services

import (
	"context"
	"errors"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/app/models/dto"
	"github.com/bathudi/admissions/internal/app/repositories"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/bathudi/admissions/internal/pkg/filestorage"
	"github.com/bathudi/admissions/internal/pkg/helpers"
	"github.com/bathudi/admissions/internal/pkg/websocket"
	"github.com/rs/zerolog"
)

// ApplicationService defines the interface for application intake and review listings
type ApplicationService interface {
	// Submit validates every uploaded file before anything is written, then
	// records the application as pending and stores its documents.
	Submit(ctx context.Context, req *dto.CreateApplicationRequest, files map[models.DocumentKind]*multipart.FileHeader) (*dto.ApplicationResponse, error)
	Get(ctx context.Context, id int64) (*dto.ApplicationResponse, error)
	List(ctx context.Context, filter models.ApplicationFilter) (*dto.ApplicationListResponse, error)
	ListPending(ctx context.Context) ([]dto.ApplicationResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateApplicationRequest) (*dto.ApplicationResponse, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (models.ApplicationStats, error)
	// ListDocuments describes every stored document of an application
	ListDocuments(ctx context.Context, id int64) (map[models.DocumentKind]dto.DocumentInfo, error)
	// Present converts an application into its API representation
	Present(app *models.Application) *dto.ApplicationResponse
}

type applicationServiceImpl struct {
	appRepo    repositories.IApplicationRepository
	courseRepo repositories.ICourseRepository
	resolver   CourseResolver
	documents  *filestorage.DocumentStore
	events     EventPublisher
	logger     zerolog.Logger
}

// NewApplicationService creates a new application service instance. events may be nil.
func NewApplicationService(
	appRepo repositories.IApplicationRepository,
	courseRepo repositories.ICourseRepository,
	resolver CourseResolver,
	documents *filestorage.DocumentStore,
	events EventPublisher,
	logger zerolog.Logger,
) ApplicationService {
	if events == nil {
		events = noopPublisher{}
	}
	return &applicationServiceImpl{
		appRepo:    appRepo,
		courseRepo: courseRepo,
		resolver:   resolver,
		documents:  documents,
		events:     events,
		logger:     logger.With().Str("component", "application_service").Logger(),
	}
}

func (s *applicationServiceImpl) Present(app *models.Application) *dto.ApplicationResponse {
	if app == nil {
		return nil
	}
	docs := make(map[models.DocumentKind]string, len(app.Documents))
	for kind, relPath := range app.Documents {
		if relPath != "" {
			docs[kind] = s.documents.URL(relPath)
		}
	}
	return &dto.ApplicationResponse{
		Application:     app,
		Documents:       docs,
		DocumentsStatus: app.Documents.Status(),
	}
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func (s *applicationServiceImpl) Submit(ctx context.Context, req *dto.CreateApplicationRequest, files map[models.DocumentKind]*multipart.FileHeader) (*dto.ApplicationResponse, error) {
	for kind, fh := range files {
		if fh == nil {
			continue
		}
		if err := s.documents.Validate(kind, fh.Filename); err != nil {
			return nil, err
		}
	}

	app := &models.Application{
		Name:           strings.TrimSpace(req.Name),
		Surname:        strings.TrimSpace(req.Surname),
		Age:            req.Age,
		Country:        strings.TrimSpace(req.Country),
		Mobile:         strings.TrimSpace(req.Mobile),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		IDNumber:       optionalString(req.IDNumber),
		Address:        strings.TrimSpace(req.Address),
		EducationLevel: req.EducationLevel,
		PreviousSchool: req.PreviousSchool,
		FormCourseID:   strings.TrimSpace(req.SubmittedCourseKey()),
		Qualification:  req.Qualification,
		Experience:     req.Experience,
		Message:        req.Message,
		Status:         models.StatusPending,
	}
	if app.Country == "" {
		app.Country = models.DefaultCountry
	}

	if course := s.resolver.Resolve(ctx, app.FormCourseID); course != nil {
		id := course.ID
		app.CourseID = &id
		app.CourseTitle = course.Title
	}

	if _, err := s.appRepo.CreateApplication(ctx, app); err != nil {
		return nil, err
	}

	docs := models.DocumentSet{}
	for _, kind := range models.DocumentKinds() {
		fh := files[kind]
		if fh == nil {
			continue
		}
		relPath, err := s.documents.Store(ctx, kind, fh)
		if err != nil {
			s.logger.Error().Err(err).Int64("applicationID", app.ID).Str("kind", string(kind)).Msg("Failed to store application document")
			s.abandon(ctx, app.ID, docs)
			return nil, err
		}
		docs[kind] = relPath
	}
	if len(docs) > 0 {
		if err := s.appRepo.SetApplicationDocuments(ctx, app.ID, docs); err != nil {
			s.logger.Error().Err(err).Int64("applicationID", app.ID).Msg("Failed to record application documents")
			s.abandon(ctx, app.ID, docs)
			return nil, err
		}
		app.Documents = docs
	}

	s.logger.Info().
		Int64("applicationID", app.ID).
		Str("courseKey", app.FormCourseID).
		Bool("courseResolved", app.CourseID != nil).
		Int("documents", len(docs)).
		Msg("Application submitted")

	s.events.Publish(websocket.Event{
		Type:          websocket.EventApplicationSubmitted,
		ApplicationID: app.ID,
		Status:        string(app.Status),
		Data:          map[string]interface{}{"name": app.FullName(), "course": app.DisplayCourse()},
		Timestamp:     time.Now(),
	})

	return s.Present(app), nil
}

// abandon undoes a submission that failed after its row was created
func (s *applicationServiceImpl) abandon(ctx context.Context, id int64, docs models.DocumentSet) {
	s.discard(ctx, docs)
	if err := s.appRepo.DeleteApplication(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("applicationID", id).Msg("Failed to roll back application")
	}
}

// discard removes already stored documents, best-effort
func (s *applicationServiceImpl) discard(ctx context.Context, docs models.DocumentSet) {
	for kind, relPath := range docs {
		if err := s.documents.Delete(ctx, relPath); err != nil {
			s.logger.Warn().Err(err).Str("kind", string(kind)).Str("path", relPath).Msg("Failed to delete document")
		}
	}
}

func (s *applicationServiceImpl) Get(ctx context.Context, id int64) (*dto.ApplicationResponse, error) {
	app, err := s.appRepo.GetApplicationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Present(app), nil
}

func (s *applicationServiceImpl) List(ctx context.Context, filter models.ApplicationFilter) (*dto.ApplicationListResponse, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}
	_, size := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	if filter.Page < 1 {
		filter.Page = helpers.DefaultPage
	}
	filter.PageSize = size

	apps, total, err := s.appRepo.ListApplications(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, *s.Present(app))
	}
	return &dto.ApplicationListResponse{
		Applications: out,
		Pagination:   helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

func (s *applicationServiceImpl) ListPending(ctx context.Context) ([]dto.ApplicationResponse, error) {
	pending := models.StatusPending
	out := []dto.ApplicationResponse{}
	for page := 1; ; page++ {
		res, err := s.List(ctx, models.ApplicationFilter{Status: &pending, Page: page, PageSize: helpers.MaxPageSize})
		if err != nil {
			return nil, err
		}
		out = append(out, res.Applications...)
		if page >= res.Pagination.TotalPages {
			return out, nil
		}
	}
}

func (s *applicationServiceImpl) Update(ctx context.Context, id int64, req *dto.UpdateApplicationRequest) (*dto.ApplicationResponse, error) {
	app, err := s.appRepo.GetApplicationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	setString(&app.Name, req.Name)
	setString(&app.Surname, req.Surname)
	setString(&app.Country, req.Country)
	setString(&app.Mobile, req.Mobile)
	setString(&app.Address, req.Address)
	setString(&app.EducationLevel, req.EducationLevel)
	setString(&app.PreviousSchool, req.PreviousSchool)
	setString(&app.Qualification, req.Qualification)
	setString(&app.Experience, req.Experience)
	setString(&app.Message, req.Message)
	setString(&app.Notes, req.Notes)
	if req.Email != nil {
		app.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Age != nil {
		app.Age = req.Age
	}
	if req.IDNumber != nil {
		app.IDNumber = optionalString(*req.IDNumber)
	}
	if req.CourseID != nil {
		course, err := s.courseRepo.GetCourseByID(ctx, *req.CourseID)
		if err != nil {
			return nil, err
		}
		courseID := course.ID
		app.CourseID = &courseID
		app.CourseTitle = course.Title
	}

	if err := s.appRepo.UpdateApplication(ctx, app); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *applicationServiceImpl) Delete(ctx context.Context, id int64) error {
	app, err := s.appRepo.GetApplicationByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.appRepo.DeleteApplication(ctx, id); err != nil {
		return err
	}
	s.discard(ctx, app.Documents)

	s.logger.Info().Int64("applicationID", id).Msg("Application deleted")
	s.events.Publish(websocket.Event{
		Type:          websocket.EventApplicationDeleted,
		ApplicationID: id,
		Status:        string(app.Status),
		Timestamp:     time.Now(),
	})
	return nil
}

func (s *applicationServiceImpl) Stats(ctx context.Context) (models.ApplicationStats, error) {
	return s.appRepo.ApplicationStats(ctx)
}

func (s *applicationServiceImpl) ListDocuments(ctx context.Context, id int64) (map[models.DocumentKind]dto.DocumentInfo, error) {
	app, err := s.appRepo.GetApplicationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make(map[models.DocumentKind]dto.DocumentInfo, len(app.Documents))
	for kind, relPath := range app.Documents {
		if relPath == "" {
			continue
		}
		info := dto.DocumentInfo{
			URL:  s.documents.URL(relPath),
			Name: path.Base(relPath),
		}
		stat, err := s.documents.Stat(ctx, relPath)
		switch {
		case err == nil:
			info.Size = stat.Size
			uploaded := stat.ModTime
			info.UploadedAt = &uploaded
		case errors.Is(err, filestorage.ErrNotFound):
			s.logger.Warn().Int64("applicationID", id).Str("path", relPath).Msg("Document recorded but missing from storage")
		default:
			s.logger.Warn().Err(err).Int64("applicationID", id).Str("path", relPath).Msg("Failed to stat document")
		}
		out[kind] = info
	}
	return out, nil
}
