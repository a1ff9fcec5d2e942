package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"sync"
	"testing"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/app/repositories/inmem"
	"github.com/bathudi/admissions/internal/pkg/filestorage"
	"github.com/bathudi/admissions/internal/pkg/websocket"
	"github.com/bathudi/admissions/internal/pkg/whatsapp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var testMapping = map[string]string{
	"automotive_engine_repairer":       "Automotive Engine Repairer",
	"automotive_clutch_brake_repairer": "Automotive Clutch and Brake Repairer",
}

func seedCourse(t *testing.T, store *inmem.CourseStore, title string) *models.Course {
	t.Helper()
	c := &models.Course{Title: title, IsActive: true, Level: models.CourseLevelBeginner}
	_, err := store.CreateCourse(context.Background(), c)
	require.NoError(t, err)
	return c
}

// fileHeader builds a real multipart.FileHeader holding content
func fileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []websocket.Event
}

func (p *recordingPublisher) Publish(e websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type recordingNotifier struct {
	mu     sync.Mutex
	result bool
	sent   []whatsapp.Notification
}

func (n *recordingNotifier) Dispatch(_ context.Context, msg whatsapp.Notification) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return n.result
}

func (n *recordingNotifier) notifications() []whatsapp.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]whatsapp.Notification(nil), n.sent...)
}

type fixture struct {
	courses   *inmem.CourseStore
	apps      *inmem.ApplicationStore
	students  *inmem.StudentStore
	root      string
	documents *filestorage.DocumentStore
	events    *recordingPublisher
	notifier  *recordingNotifier
	appSvc    ApplicationService
	workflow  WorkflowService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		courses:  inmem.NewCourseStore(),
		apps:     inmem.NewApplicationStore(),
		students: inmem.NewStudentStore(),
		root:     t.TempDir(),
		events:   &recordingPublisher{},
		notifier: &recordingNotifier{result: true},
	}
	local, err := filestorage.NewLocalStorage(f.root, "http://localhost:8080/media")
	require.NoError(t, err)
	f.documents = filestorage.NewDocumentStore(local, zerolog.Nop())

	resolver := NewCourseResolver(f.courses, ResolverConfig{KeyMapping: testMapping}, zerolog.Nop())
	f.appSvc = NewApplicationService(f.apps, f.courses, resolver, f.documents, f.events, zerolog.Nop())
	f.workflow = NewWorkflowService(WorkflowDeps{
		Applications: f.apps,
		Students:     f.students,
		Presenter:    f.appSvc,
		Notifier:     f.notifier,
		Events:       f.events,
	}, zerolog.Nop())
	return f
}
