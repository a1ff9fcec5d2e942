package services

import (
	"context"
	"errors"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/app/models/dto"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/bathudi/admissions/internal/pkg/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applicationRequest(courseKey string) *dto.CreateApplicationRequest {
	return &dto.CreateApplicationRequest{
		Name:      "Lerato",
		Surname:   "Mokoena",
		Mobile:    "+27 68 917 6294",
		Email:     "Lerato@Example.com",
		Address:   "12 Main Road, Soweto",
		CourseKey: courseKey,
	}
}

func countFiles(t *testing.T, root string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	})
	require.NoError(t, err)
	return n
}

func TestSubmit_ResolvesCourseAndStoresDocuments(t *testing.T) {
	f := newFixture(t)
	course := seedCourse(t, f.courses, "Occupational Certificate: Automotive Engine Repairer")

	resp, err := f.appSvc.Submit(context.Background(), applicationRequest("automotive_engine_repairer"),
		map[models.DocumentKind]*multipart.FileHeader{
			models.DocumentIDCopy: fileHeader(t, "my id.pdf", "id"),
			models.DocumentMatric: fileHeader(t, "matric.jpg", "matric"),
		})
	require.NoError(t, err)

	require.NotNil(t, resp.CourseID)
	assert.Equal(t, course.ID, *resp.CourseID)
	assert.Equal(t, course.Title, resp.CourseTitle)
	assert.Equal(t, "automotive_engine_repairer", resp.FormCourseID)
	assert.Equal(t, models.StatusPending, resp.Status)
	assert.Equal(t, "lerato@example.com", resp.Email)
	assert.Equal(t, models.DefaultCountry, resp.Country)
	assert.False(t, resp.FeeVerified)

	assert.True(t, resp.DocumentsStatus["id"])
	assert.True(t, resp.DocumentsStatus["matric"])
	assert.False(t, resp.DocumentsStatus["pop"])
	assert.Contains(t, resp.Documents[models.DocumentIDCopy], "/media/applications/id/id_documents/")
	assert.Contains(t, resp.Documents[models.DocumentIDCopy], "my_id.pdf")
	assert.Equal(t, 2, countFiles(t, f.root))

	stored, err := f.apps.GetApplicationByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Documents, 2)
	assert.Equal(t, []string{websocket.EventApplicationSubmitted}, f.events.types())
}

func TestSubmit_UnresolvedCourseStillCreatesApplication(t *testing.T) {
	f := newFixture(t)
	seedCourse(t, f.courses, "Occupational Certificate: Automotive Engine Repairer")

	resp, err := f.appSvc.Submit(context.Background(), applicationRequest("pastry_chef"), nil)
	require.NoError(t, err)
	assert.Nil(t, resp.CourseID)
	assert.Empty(t, resp.CourseTitle)
	assert.Equal(t, "pastry_chef", resp.FormCourseID)
	assert.Equal(t, "your selected course", resp.DisplayCourse())

	_, err = f.apps.GetApplicationByID(context.Background(), resp.ID)
	assert.NoError(t, err)
}

func TestSubmit_DisallowedExtensionWritesNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.appSvc.Submit(context.Background(), applicationRequest("automotive_engine_repairer"),
		map[models.DocumentKind]*multipart.FileHeader{
			models.DocumentMatric: fileHeader(t, "matric.pdf", "ok"),
			models.DocumentIDCopy: fileHeader(t, "id.xlsx", "spreadsheet"),
		})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidFileType))

	assert.Equal(t, 0, countFiles(t, f.root))
	stats, err := f.apps.ApplicationStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Empty(t, f.events.types())
}

func TestSubmit_FailedDocumentWriteRollsBack(t *testing.T) {
	f := newFixture(t)

	// a header without content cannot be opened
	unreadable := &multipart.FileHeader{Filename: "matric.pdf", Size: 12}
	_, err := f.appSvc.Submit(context.Background(), applicationRequest("automotive_engine_repairer"),
		map[models.DocumentKind]*multipart.FileHeader{
			models.DocumentIDCopy: fileHeader(t, "id.pdf", "id"),
			models.DocumentMatric: unreadable,
		})
	require.Error(t, err)

	assert.Equal(t, 0, countFiles(t, f.root), "the id document written first is removed")
	stats, err := f.apps.ApplicationStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Empty(t, f.events.types())
}

func TestSubmit_FailedDocumentRecordRollsBack(t *testing.T) {
	f := newFixture(t)
	f.apps.DocumentsErr = errors.New("connection reset")

	_, err := f.appSvc.Submit(context.Background(), applicationRequest("automotive_engine_repairer"),
		map[models.DocumentKind]*multipart.FileHeader{
			models.DocumentIDCopy: fileHeader(t, "id.pdf", "id"),
			models.DocumentMatric: fileHeader(t, "matric.pdf", "matric"),
		})
	require.Error(t, err)

	assert.Equal(t, 0, countFiles(t, f.root))
	stats, err := f.apps.ApplicationStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Total, "the row is removed along with the files")
	assert.Empty(t, f.events.types())
}

func TestSubmit_AdditionalSlotsAcceptWordDocuments(t *testing.T) {
	f := newFixture(t)

	resp, err := f.appSvc.Submit(context.Background(), applicationRequest(""),
		map[models.DocumentKind]*multipart.FileHeader{
			models.DocumentAdditional1: fileHeader(t, "cv.docx", "cv"),
		})
	require.NoError(t, err)
	assert.True(t, resp.DocumentsStatus["additional_1"])

	_, err = f.appSvc.Submit(context.Background(), applicationRequest(""),
		map[models.DocumentKind]*multipart.FileHeader{
			models.DocumentProofOfPayment: fileHeader(t, "pop.docx", "pop"),
		})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidFileType))
}

func TestListDocuments_ReportsMissingFiles(t *testing.T) {
	f := newFixture(t)
	resp, err := f.appSvc.Submit(context.Background(), applicationRequest(""),
		map[models.DocumentKind]*multipart.FileHeader{
			models.DocumentIDCopy:         fileHeader(t, "id.pdf", "12345"),
			models.DocumentProofOfPayment: fileHeader(t, "pop.png", "png"),
		})
	require.NoError(t, err)

	stored, err := f.apps.GetApplicationByID(context.Background(), resp.ID)
	require.NoError(t, err)
	popPath := stored.Documents[models.DocumentProofOfPayment]
	require.NoError(t, os.Remove(filepath.Join(f.root, filepath.FromSlash(popPath))))

	docs, err := f.appSvc.ListDocuments(context.Background(), resp.ID)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	id := docs[models.DocumentIDCopy]
	assert.Equal(t, "id.pdf", id.Name)
	assert.Equal(t, int64(5), id.Size)
	assert.NotNil(t, id.UploadedAt)

	pop := docs[models.DocumentProofOfPayment]
	assert.Equal(t, "pop.png", pop.Name)
	assert.Zero(t, pop.Size)
	assert.Nil(t, pop.UploadedAt)
}

func TestDelete_RemovesDocuments(t *testing.T) {
	f := newFixture(t)
	resp, err := f.appSvc.Submit(context.Background(), applicationRequest(""),
		map[models.DocumentKind]*multipart.FileHeader{
			models.DocumentIDCopy: fileHeader(t, "id.pdf", "id"),
		})
	require.NoError(t, err)
	require.Equal(t, 1, countFiles(t, f.root))

	require.NoError(t, f.appSvc.Delete(context.Background(), resp.ID))
	assert.Equal(t, 0, countFiles(t, f.root))

	_, err = f.appSvc.Get(context.Background(), resp.ID)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
	assert.Equal(t, []string{websocket.EventApplicationSubmitted, websocket.EventApplicationDeleted}, f.events.types())
}

func TestUpdate_ChangesOnlyGivenFields(t *testing.T) {
	f := newFixture(t)
	course := seedCourse(t, f.courses, "Welding Basics")
	resp, err := f.appSvc.Submit(context.Background(), applicationRequest(""), nil)
	require.NoError(t, err)

	notes := "called on monday"
	updated, err := f.appSvc.Update(context.Background(), resp.ID, &dto.UpdateApplicationRequest{
		Notes:    &notes,
		CourseID: &course.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, "Lerato", updated.Name)
	assert.Equal(t, "Welding Basics", updated.CourseTitle)
	assert.Equal(t, models.StatusPending, updated.Status)

	missing := int64(999)
	_, err = f.appSvc.Update(context.Background(), resp.ID, &dto.UpdateApplicationRequest{CourseID: &missing})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestList_FiltersAndPaginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.appSvc.Submit(ctx, applicationRequest(""), nil)
		require.NoError(t, err)
	}
	_, err := f.workflow.Approve(ctx, 1)
	require.NoError(t, err)

	pending, err := f.appSvc.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	page, err := f.appSvc.List(ctx, models.ApplicationFilter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.Applications, 2)
	assert.Equal(t, int64(3), page.Pagination.TotalItems)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	bogus := models.ApplicationStatus("archived")
	_, err = f.appSvc.List(ctx, models.ApplicationFilter{Status: &bogus})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
}
