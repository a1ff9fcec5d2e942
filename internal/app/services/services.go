// Package services holds the admissions business logic.
//
// Services defined in this package:
//   - CourseResolver: maps application-form course keys to catalog courses
//   - CourseService: catalog, entry requirements and outline PDFs
//   - ApplicationService: intake, listing and document access
//   - WorkflowService: approve, reject, status and fee transitions
//   - StudentService, DashboardService, AuthService
//   - ContentService: website content resources
package services

import (
	"context"

	"github.com/bathudi/admissions/internal/pkg/websocket"
	"github.com/bathudi/admissions/internal/pkg/whatsapp"
)

// EventPublisher receives application events for the admin feed
type EventPublisher interface {
	Publish(event websocket.Event)
}

// Notifier sends applicant notifications; *whatsapp.Dispatcher implements it
type Notifier interface {
	Dispatch(ctx context.Context, n whatsapp.Notification) bool
}

type noopPublisher struct{}

func (noopPublisher) Publish(websocket.Event) {}

type noopNotifier struct{}

func (noopNotifier) Dispatch(context.Context, whatsapp.Notification) bool { return false }
