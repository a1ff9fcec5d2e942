package services

import (
	"context"
	"testing"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/bathudi/admissions/internal/pkg/websocket"
	"github.com/bathudi/admissions/internal/pkg/whatsapp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitted(t *testing.T, f *fixture, courseKey string) int64 {
	t.Helper()
	resp, err := f.appSvc.Submit(context.Background(), applicationRequest(courseKey), nil)
	require.NoError(t, err)
	return resp.ID
}

func TestApprove_CreatesStudentOnce(t *testing.T) {
	f := newFixture(t)
	course := seedCourse(t, f.courses, "Occupational Certificate: Automotive Engine Repairer")
	id := submitted(t, f, "automotive_engine_repairer")
	ctx := context.Background()

	first, err := f.workflow.Approve(ctx, id)
	require.NoError(t, err)
	assert.True(t, first.StudentCreated)
	assert.Equal(t, models.StudentNumberFor(id), first.StudentID)
	assert.True(t, first.NotificationSent)

	second, err := f.workflow.Approve(ctx, id)
	require.NoError(t, err)
	assert.False(t, second.StudentCreated)
	assert.Equal(t, first.StudentID, second.StudentID)

	count, err := f.students.CountStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	student, err := f.students.GetStudentByApplicationID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Lerato", student.Name)
	assert.Equal(t, "Mokoena", student.Surname)
	assert.Equal(t, "lerato@example.com", student.Email)
	assert.Equal(t, "+27 68 917 6294", student.Phone)
	assert.Equal(t, "12 Main Road, Soweto", student.Address)
	require.NotNil(t, student.CourseID)
	assert.Equal(t, course.ID, *student.CourseID)
	assert.Equal(t, models.StudentEnrolled, student.Status)

	app, err := f.apps.GetApplicationByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, app.Status)

	// each approval notifies again
	sent := f.notifier.notifications()
	require.Len(t, sent, 2)
	assert.Equal(t, whatsapp.KindApproval, sent[0].Kind)
	assert.Equal(t, "Lerato Mokoena", sent[0].ApplicantName)
	assert.Equal(t, course.Title, sent[0].CourseName)
	assert.Equal(t, "+27 68 917 6294", sent[0].Phone)
}

func TestApprove_NotificationFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	f.notifier.result = false
	id := submitted(t, f, "")

	resp, err := f.workflow.Approve(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, resp.NotificationSent)
	assert.True(t, resp.StudentCreated)

	sent := f.notifier.notifications()
	require.Len(t, sent, 1)
	assert.Equal(t, "your selected course", sent[0].CourseName)
}

func TestApprove_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.workflow.Approve(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
	assert.Empty(t, f.notifier.notifications())
}

func TestReject_PersistsReason(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	empty := ""
	reason := "Incomplete documents: please resubmit your matric certificate."

	tests := []struct {
		name   string
		reason *string
	}{
		{name: "with reason", reason: &reason},
		{name: "empty reason", reason: &empty},
		{name: "absent reason", reason: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := submitted(t, f, "")
			resp, err := f.workflow.Reject(ctx, id, tt.reason)
			require.NoError(t, err)
			assert.Equal(t, string(models.StatusRejected), resp.Status)

			app, err := f.apps.GetApplicationByID(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, models.StatusRejected, app.Status)
			if tt.reason == nil {
				assert.Nil(t, app.RejectionReason)
			} else {
				require.NotNil(t, app.RejectionReason)
				assert.Equal(t, *tt.reason, *app.RejectionReason)
			}

			sent := f.notifier.notifications()
			last := sent[len(sent)-1]
			assert.Equal(t, whatsapp.KindRejection, last.Kind)
			assert.Equal(t, tt.reason, last.Reason)
		})
	}

	count, err := f.students.CountStudents(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSetStatus_ArbitraryTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := submitted(t, f, "")

	_, err := f.workflow.Reject(ctx, id, nil)
	require.NoError(t, err)

	resp, err := f.workflow.SetStatus(ctx, id, models.StatusApproved, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, resp.Status)
	_, err = f.students.GetStudentByApplicationID(ctx, id)
	assert.NoError(t, err)

	resp, err = f.workflow.SetStatus(ctx, id, models.StatusContacted, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusContacted, resp.Status)

	resp, err = f.workflow.SetStatus(ctx, id, models.StatusPending, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, resp.Status)

	_, err = f.workflow.SetStatus(ctx, id, models.ApplicationStatus("archived"), nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)

	assert.Contains(t, f.events.types(), websocket.EventApplicationStatusChanged)
}

func TestFeeVerification_IndependentOfStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := submitted(t, f, "")

	resp, err := f.workflow.VerifyFee(ctx, id)
	require.NoError(t, err)
	assert.True(t, resp.FeeVerified)

	app, err := f.apps.GetApplicationByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, app.FeeVerified)
	assert.Equal(t, models.StatusPending, app.Status)

	resp, err = f.workflow.UnverifyFee(ctx, id)
	require.NoError(t, err)
	assert.False(t, resp.FeeVerified)

	_, err = f.workflow.VerifyFee(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}
