package services

import (
	"context"
	"errors"
	"time"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/app/models/dto"
	"github.com/bathudi/admissions/internal/app/repositories"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/bathudi/admissions/internal/pkg/email"
	"github.com/bathudi/admissions/internal/pkg/websocket"
	"github.com/bathudi/admissions/internal/pkg/whatsapp"
	"github.com/rs/zerolog"
)

// WorkflowService moves applications between review states and runs the side
// effects of each transition. Any state may be reassigned by an operator.
type WorkflowService interface {
	// Approve marks the application approved, creates its student record
	// unless one already exists, and notifies the applicant.
	Approve(ctx context.Context, id int64) (*dto.ApproveResponse, error)
	// Reject marks the application rejected and stores reason verbatim; nil stays absent.
	Reject(ctx context.Context, id int64, reason *string) (*dto.RejectResponse, error)
	// SetStatus assigns any status. approved and rejected run the same side
	// effects as Approve and Reject.
	SetStatus(ctx context.Context, id int64, status models.ApplicationStatus, reason *string) (*dto.ApplicationResponse, error)
	VerifyFee(ctx context.Context, id int64) (*dto.FeeResponse, error)
	UnverifyFee(ctx context.Context, id int64) (*dto.FeeResponse, error)
}

type workflowServiceImpl struct {
	appRepo     repositories.IApplicationRepository
	studentRepo repositories.IStudentRepository
	apps        ApplicationService
	notifier    Notifier
	mailer      email.EmailService
	events      EventPublisher
	now         func() time.Time
	logger      zerolog.Logger
}

// WorkflowDeps groups the collaborators of the workflow service.
// Notifier, Mailer and Events are optional.
type WorkflowDeps struct {
	Applications repositories.IApplicationRepository
	Students     repositories.IStudentRepository
	Presenter    ApplicationService
	Notifier     Notifier
	Mailer       email.EmailService
	Events       EventPublisher
	Now          func() time.Time
}

// NewWorkflowService creates a new workflow service instance
func NewWorkflowService(deps WorkflowDeps, logger zerolog.Logger) WorkflowService {
	s := &workflowServiceImpl{
		appRepo:     deps.Applications,
		studentRepo: deps.Students,
		apps:        deps.Presenter,
		notifier:    deps.Notifier,
		mailer:      deps.Mailer,
		events:      deps.Events,
		now:         deps.Now,
		logger:      logger.With().Str("component", "workflow_service").Logger(),
	}
	if s.notifier == nil {
		s.notifier = noopNotifier{}
	}
	if s.events == nil {
		s.events = noopPublisher{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *workflowServiceImpl) Approve(ctx context.Context, id int64) (*dto.ApproveResponse, error) {
	app, err := s.appRepo.GetApplicationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.appRepo.SetApplicationStatus(ctx, id, models.StatusApproved); err != nil {
		return nil, err
	}
	app.Status = models.StatusApproved

	student, created, err := s.ensureStudent(ctx, app)
	if err != nil {
		return nil, err
	}

	sent := s.notifier.Dispatch(ctx, whatsapp.Notification{
		Kind:          whatsapp.KindApproval,
		Phone:         app.Mobile,
		ApplicantName: app.FullName(),
		CourseName:    app.DisplayCourse(),
	})

	number := ""
	if student.StudentNumber != nil {
		number = *student.StudentNumber
	}
	s.mail(func(m email.EmailService) error {
		return m.SendApprovalEmail(app.Email, app.FullName(), app.DisplayCourse(), number)
	}, id)

	s.logger.Info().
		Int64("applicationID", id).
		Bool("studentCreated", created).
		Str("studentNumber", number).
		Bool("notificationSent", sent).
		Msg("Application approved")

	s.events.Publish(websocket.Event{
		Type:          websocket.EventApplicationApproved,
		ApplicationID: id,
		Status:        string(models.StatusApproved),
		Data:          map[string]interface{}{"student_id": number, "student_created": created},
		Timestamp:     s.now(),
	})

	return &dto.ApproveResponse{
		Message:          "Application approved successfully",
		Status:           string(models.StatusApproved),
		StudentCreated:   created,
		StudentID:        number,
		NotificationSent: sent,
	}, nil
}

// ensureStudent returns the student of app, creating it when absent
func (s *workflowServiceImpl) ensureStudent(ctx context.Context, app *models.Application) (*models.Student, bool, error) {
	existing, err := s.studentRepo.GetStudentByApplicationID(ctx, app.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		return nil, false, err
	}

	student := models.NewStudentFromApplication(app, s.now())
	if _, err := s.studentRepo.CreateStudent(ctx, student); err != nil {
		// a concurrent approval may have won the race
		if errors.Is(err, apperrors.ErrStudentExists) {
			existing, getErr := s.studentRepo.GetStudentByApplicationID(ctx, app.ID)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return student, true, nil
}

func (s *workflowServiceImpl) Reject(ctx context.Context, id int64, reason *string) (*dto.RejectResponse, error) {
	app, err := s.appRepo.GetApplicationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.appRepo.RejectApplication(ctx, id, reason); err != nil {
		return nil, err
	}

	sent := s.notifier.Dispatch(ctx, whatsapp.Notification{
		Kind:          whatsapp.KindRejection,
		Phone:         app.Mobile,
		ApplicantName: app.FullName(),
		CourseName:    app.DisplayCourse(),
		Reason:        reason,
	})
	s.mail(func(m email.EmailService) error {
		return m.SendRejectionEmail(app.Email, app.FullName(), app.DisplayCourse(), reason)
	}, id)

	s.logger.Info().
		Int64("applicationID", id).
		Bool("hasReason", reason != nil).
		Bool("notificationSent", sent).
		Msg("Application rejected")

	s.events.Publish(websocket.Event{
		Type:          websocket.EventApplicationRejected,
		ApplicationID: id,
		Status:        string(models.StatusRejected),
		Timestamp:     s.now(),
	})

	return &dto.RejectResponse{
		Message:          "Application rejected",
		Status:           string(models.StatusRejected),
		Reason:           reason,
		NotificationSent: sent,
	}, nil
}

// mail sends an email in the background; failures are only logged
func (s *workflowServiceImpl) mail(send func(email.EmailService) error, applicationID int64) {
	if s.mailer == nil {
		return
	}
	go func() {
		if err := send(s.mailer); err != nil {
			s.logger.Warn().Err(err).Int64("applicationID", applicationID).Msg("Failed to send applicant email")
		}
	}()
}

func (s *workflowServiceImpl) SetStatus(ctx context.Context, id int64, status models.ApplicationStatus, reason *string) (*dto.ApplicationResponse, error) {
	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}

	switch status {
	case models.StatusApproved:
		if _, err := s.Approve(ctx, id); err != nil {
			return nil, err
		}
	case models.StatusRejected:
		if _, err := s.Reject(ctx, id, reason); err != nil {
			return nil, err
		}
	default:
		if err := s.appRepo.SetApplicationStatus(ctx, id, status); err != nil {
			return nil, err
		}
		s.logger.Info().Int64("applicationID", id).Str("status", string(status)).Msg("Application status changed")
		s.events.Publish(websocket.Event{
			Type:          websocket.EventApplicationStatusChanged,
			ApplicationID: id,
			Status:        string(status),
			Timestamp:     s.now(),
		})
	}

	return s.apps.Get(ctx, id)
}

func (s *workflowServiceImpl) VerifyFee(ctx context.Context, id int64) (*dto.FeeResponse, error) {
	return s.setFee(ctx, id, true)
}

func (s *workflowServiceImpl) UnverifyFee(ctx context.Context, id int64) (*dto.FeeResponse, error) {
	return s.setFee(ctx, id, false)
}

func (s *workflowServiceImpl) setFee(ctx context.Context, id int64, verified bool) (*dto.FeeResponse, error) {
	if err := s.appRepo.SetFeeVerified(ctx, id, verified); err != nil {
		return nil, err
	}

	eventType, message := websocket.EventApplicationFeeVerified, "Fee verified successfully"
	if !verified {
		eventType, message = websocket.EventApplicationFeeUnverified, "Fee verification removed"
	}
	s.logger.Info().Int64("applicationID", id).Bool("feeVerified", verified).Msg("Fee verification changed")
	s.events.Publish(websocket.Event{
		Type:          eventType,
		ApplicationID: id,
		Data:          map[string]interface{}{"fee_verified": verified},
		Timestamp:     s.now(),
	})

	return &dto.FeeResponse{Message: message, FeeVerified: verified}, nil
}
