package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bathudi/admissions/internal/app/controllers"
	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/app/repositories/inmem"
	"github.com/bathudi/admissions/internal/app/services"
	"github.com/bathudi/admissions/internal/middleware"
	"github.com/bathudi/admissions/internal/pkg/auth"
	"github.com/bathudi/admissions/internal/pkg/coursepdf"
	"github.com/bathudi/admissions/internal/pkg/filestorage"
	"github.com/bathudi/admissions/internal/pkg/validation"
	"github.com/bathudi/admissions/internal/pkg/websocket"
)

const mediaBase = "http://localhost:8080/media"

type testAPI struct {
	router  *gin.Engine
	courses *inmem.CourseStore
	token   string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.RegisterCustomValidators())

	lgr := zerolog.Nop()
	courses := inmem.NewCourseStore()
	apps := inmem.NewApplicationStore()
	students := inmem.NewStudentStore()
	admins := inmem.NewAdminStore()

	storage, err := filestorage.NewLocalStorage(t.TempDir(), mediaBase)
	require.NoError(t, err)
	documents := filestorage.NewDocumentStore(storage, lgr)

	hub := websocket.NewHub(lgr)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	authService := services.NewAuthService(admins, jwtService, lgr)
	_, _, err = authService.EnsureAdmin(context.Background(), "admin@bathudi.co.za", "password123", "Admin")
	require.NoError(t, err)

	resolver := services.NewCourseResolver(courses, services.ResolverConfig{
		KeyMapping: map[string]string{"automotive_engine_repairer": "Automotive Engine Repairer"},
	}, lgr)
	appSvc := services.NewApplicationService(apps, courses, resolver, documents, hub, lgr)
	workflow := services.NewWorkflowService(services.WorkflowDeps{
		Applications: apps,
		Students:     students,
		Presenter:    appSvc,
		Events:       hub,
	}, lgr)

	content := services.NewContentService(services.ContentRepositories{
		Team:        inmem.NewTeamMemberStore(),
		Gallery:     inmem.NewGalleryStore(),
		Newsletter:  inmem.NewNewsletterStore(),
		News:        inmem.NewNewsStore(),
		Director:    inmem.NewDirectorMessageStore(),
		Testimonial: inmem.NewTestimonialStore(courses),
		Video:       inmem.NewVideoStore(),
	}, storage, nil, lgr)

	router := gin.New()
	SetupRouter(router, Controllers{
		Auth:        controllers.NewAuthController(authService, lgr),
		Course:      controllers.NewCourseController(services.NewCourseService(courses, storage, coursepdf.NewGenerator(coursepdf.Institution{Name: "Bathudi"}), lgr)),
		Application: controllers.NewApplicationController(appSvc, workflow, lgr),
		Student:     controllers.NewStudentController(services.NewStudentService(students, courses, lgr)),
		Dashboard:   controllers.NewDashboardController(services.NewDashboardService(apps, students, courses)),
		Content:     controllers.NewContentController(content),
		Media:       controllers.NewMediaController(storage, lgr),
		Events:      websocket.NewHandler(hub, nil, lgr),
	}, middleware.NewAuthMiddleware(jwtService))

	api := &testAPI{router: router, courses: courses}
	api.token = api.login(t)
	return api
}

func (a *testAPI) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) asAdmin(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+a.token)
	return req
}

func (a *testAPI) login(t *testing.T) string {
	body := strings.NewReader(`{"email":"admin@bathudi.co.za","password":"password123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	w := a.do(req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token struct {
				AccessToken string `json:"accessToken"`
			} `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token.AccessToken)
	return resp.Data.Token.AccessToken
}

func applicationForm(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fields := map[string]string{
		"name":      "Thabo",
		"surname":   "Mokoena",
		"mobile":    "082 123 4567",
		"email":     "Thabo@Example.com",
		"address":   "12 Main Road, Soweto",
		"course_id": "automotive_engine_repairer",
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, filename := range files {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte("%PDF-1.4 test"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

type submitted struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
	Status  string `json:"status"`
	Data    struct {
		Course    *int64            `json:"course"`
		Email     string            `json:"email"`
		Documents map[string]string `json:"documents"`
	} `json:"data"`
}

func (a *testAPI) submit(t *testing.T, files map[string]string) (*httptest.ResponseRecorder, submitted) {
	t.Helper()
	body, contentType := applicationForm(t, files)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", body)
	req.Header.Set("Content-Type", contentType)
	w := a.do(req)

	var out submitted
	if w.Code == http.StatusCreated {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSubmitApplication_StoresDocumentsAndServesThem(t *testing.T) {
	api := newTestAPI(t)
	id, err := api.courses.CreateCourse(context.Background(), &models.Course{
		Title: "Occupational Certificate: Automotive Engine Repairer", IsActive: true,
	})
	require.NoError(t, err)

	w, app := api.submit(t, map[string]string{"id_document": "my id.pdf"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Application submitted successfully!", app.Message)
	assert.Equal(t, "pending", app.Status)
	assert.Equal(t, "thabo@example.com", app.Data.Email)
	require.NotNil(t, app.Data.Course)
	assert.Equal(t, id, *app.Data.Course)

	docURL := app.Data.Documents["id_document"]
	require.True(t, strings.HasPrefix(docURL, mediaBase+"/applications/"), docURL)

	media := api.do(httptest.NewRequest(http.MethodGet, strings.TrimPrefix(docURL, "http://localhost:8080"), nil))
	require.Equal(t, http.StatusOK, media.Code)
	assert.Equal(t, "application/pdf", media.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(media.Header().Get("Content-Disposition"), "inline"))
	assert.Equal(t, "%PDF-1.4 test", media.Body.String())
}

func TestSubmitApplication_RejectsDisallowedFileType(t *testing.T) {
	api := newTestAPI(t)
	w, _ := api.submit(t, map[string]string{"proof_of_payment": "payment.docx"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_002", errorCode(t, w))
}

func TestSubmitApplication_ValidatesFields(t *testing.T) {
	api := newTestAPI(t)
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("name", "Thabo"))
	require.NoError(t, mw.WriteField("mobile", "not a number"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := api.do(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_001", errorCode(t, w))
}

func TestAdminRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)
	for _, path := range []string{"/api/v1/applications", "/api/v1/students", "/api/v1/dashboard/stats", "/api/v1/applications/stats"} {
		w := api.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := api.do(api.asAdmin(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApproveTwice_CreatesOneStudent(t *testing.T) {
	api := newTestAPI(t)
	_, app := api.submit(t, nil)
	require.NotZero(t, app.ID)
	path := "/api/v1/applications/" + itoa(app.ID) + "/approve"

	var first, second struct {
		Data struct {
			Status         string `json:"status"`
			StudentCreated bool   `json:"student_created"`
			StudentID      string `json:"student_id"`
		} `json:"data"`
	}
	w := api.do(api.asAdmin(httptest.NewRequest(http.MethodPost, path, nil)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))

	w = api.do(api.asAdmin(httptest.NewRequest(http.MethodPost, path, nil)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))

	assert.Equal(t, "approved", first.Data.Status)
	assert.True(t, first.Data.StudentCreated)
	assert.False(t, second.Data.StudentCreated)
	assert.Equal(t, first.Data.StudentID, second.Data.StudentID)

	var students struct {
		Data struct {
			Students []json.RawMessage `json:"students"`
		} `json:"data"`
	}
	w = api.do(api.asAdmin(httptest.NewRequest(http.MethodGet, "/api/v1/students", nil)))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &students))
	assert.Len(t, students.Data.Students, 1)
}

func TestRejectWithoutBody_StoresNullReason(t *testing.T) {
	api := newTestAPI(t)
	_, app := api.submit(t, nil)

	w := api.do(api.asAdmin(httptest.NewRequest(http.MethodPost, "/api/v1/applications/"+itoa(app.ID)+"/reject", nil)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"reason":null`)
	assert.Contains(t, w.Body.String(), `"status":"rejected"`)
}

func TestRejectWithEmptyReason_KeepsEmptyString(t *testing.T) {
	api := newTestAPI(t)
	_, app := api.submit(t, nil)

	w := api.postJSON("/api/v1/applications/"+itoa(app.ID)+"/reject", `{"reason":""}`, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"reason":""`)

	w = api.do(api.asAdmin(httptest.NewRequest(http.MethodGet, "/api/v1/applications/"+itoa(app.ID), nil)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rejection_reason":""`)
}

func TestUpdateStatus(t *testing.T) {
	api := newTestAPI(t)
	_, app := api.submit(t, nil)
	path := "/api/v1/applications/" + itoa(app.ID) + "/status"

	patch := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return api.do(api.asAdmin(req))
	}

	w := patch(`{"status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = patch(`{"status":"contacted"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"contacted"`)

	w = patch(`{"status":"pending"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
}

func TestApplicationNotFound(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(api.asAdmin(httptest.NewRequest(http.MethodPost, "/api/v1/applications/999/approve", nil)))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "RES_001", errorCode(t, w))

	w = api.do(api.asAdmin(httptest.NewRequest(http.MethodGet, "/api/v1/applications/abc", nil)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMedia_RejectsTraversalAndMissingFiles(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(httptest.NewRequest(http.MethodGet, "/media/applications/../../secret.txt", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(httptest.NewRequest(http.MethodGet, "/media/applications/nope.pdf", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCourses_AdminWidening(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()
	_, err := api.courses.CreateCourse(ctx, &models.Course{Title: "Engine", IsActive: true})
	require.NoError(t, err)
	hiddenID, err := api.courses.CreateCourse(ctx, &models.Course{Title: "Retired", IsActive: false})
	require.NoError(t, err)

	count := func(req *http.Request) int {
		w := api.do(req)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data []json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return len(resp.Data)
	}

	assert.Equal(t, 1, count(httptest.NewRequest(http.MethodGet, "/api/v1/courses", nil)))
	assert.Equal(t, 1, count(httptest.NewRequest(http.MethodGet, "/api/v1/courses?admin=true", nil)))
	assert.Equal(t, 2, count(api.asAdmin(httptest.NewRequest(http.MethodGet, "/api/v1/courses?admin=true", nil))))

	w := api.do(httptest.NewRequest(http.MethodGet, "/api/v1/courses/"+itoa(hiddenID), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(httptest.NewRequest(http.MethodGet, "/api/v1/course/"+itoa(hiddenID)+"/pdf", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (a *testAPI) postJSON(path, body string, admin bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if admin {
		a.asAdmin(req)
	}
	return a.do(req)
}

func (a *testAPI) postForm(t *testing.T, path string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.do(a.asAdmin(req))
}

func listLen(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return len(resp.Data)
}

func TestNewsletter_DuplicateSubscriptionConflicts(t *testing.T) {
	api := newTestAPI(t)

	w := api.postJSON("/api/v1/newsletter/subscribe", `{"email":"Reader@Example.com"}`, false)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.postJSON("/api/v1/newsletter/subscribe", `{"email":"reader@example.com"}`, false)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "RES_004", errorCode(t, w))

	w = api.postJSON("/api/v1/newsletter/subscribe", `{"email":"not-an-email"}`, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(httptest.NewRequest(http.MethodGet, "/api/v1/newsletter", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 1, listLen(t, api.do(api.asAdmin(httptest.NewRequest(http.MethodGet, "/api/v1/newsletter", nil)))))
}

func TestNews_UnpublishedVisibleOnlyToAdmins(t *testing.T) {
	api := newTestAPI(t)

	w := api.postForm(t, "/api/v1/news", map[string]string{"title": "Open day", "preview_text": "Visit", "content": "Details"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = api.postForm(t, "/api/v1/news", map[string]string{"title": "Draft", "preview_text": "Soon", "content": "Details", "is_published": "false"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var draft struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &draft))

	assert.Equal(t, 1, listLen(t, api.do(httptest.NewRequest(http.MethodGet, "/api/v1/news", nil))))
	assert.Equal(t, 1, listLen(t, api.do(httptest.NewRequest(http.MethodGet, "/api/v1/news?admin=true", nil))))
	assert.Equal(t, 2, listLen(t, api.do(api.asAdmin(httptest.NewRequest(http.MethodGet, "/api/v1/news?admin=true", nil)))))

	w = api.do(httptest.NewRequest(http.MethodGet, "/api/v1/news/"+itoa(draft.Data.ID), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = api.do(api.asAdmin(httptest.NewRequest(http.MethodGet, "/api/v1/news/"+itoa(draft.Data.ID), nil)))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTeamMembers_InactiveHiddenFromPublic(t *testing.T) {
	api := newTestAPI(t)

	w := api.postForm(t, "/api/v1/team-members", map[string]string{"name": "Ayanda", "position": "Director", "bio": "Bio"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = api.postForm(t, "/api/v1/team-members", map[string]string{"name": "Bongani", "position": "Trainer", "bio": "Bio", "is_active": "false"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, 1, listLen(t, api.do(httptest.NewRequest(http.MethodGet, "/api/v1/team-members", nil))))
	assert.Equal(t, 2, listLen(t, api.do(api.asAdmin(httptest.NewRequest(http.MethodGet, "/api/v1/team-members?admin=true", nil)))))
}

func TestDirectorMessages_ActivationSwitchesHomePageQuote(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(httptest.NewRequest(http.MethodGet, "/api/v1/director-messages/active", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.postForm(t, "/api/v1/director-messages", map[string]string{"quote": "First"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var first struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	w = api.postForm(t, "/api/v1/director-messages", map[string]string{"quote": "Second"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	activeQuote := func() string {
		w := api.do(httptest.NewRequest(http.MethodGet, "/api/v1/director-messages/active", nil))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			Data struct {
				Quote string `json:"quote"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.Data.Quote
	}
	assert.Equal(t, "Second", activeQuote())

	w = api.do(api.asAdmin(httptest.NewRequest(http.MethodPost, "/api/v1/director-messages/"+itoa(first.Data.ID)+"/activate", nil)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "First", activeQuote())

	w = api.do(api.asAdmin(httptest.NewRequest(http.MethodGet, "/api/v1/director-messages", nil)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, strings.Count(w.Body.String(), `"is_active":true`))
}

func TestTestimonials_RatingBounds(t *testing.T) {
	api := newTestAPI(t)

	for _, rating := range []string{"0", "6"} {
		w := api.postJSON("/api/v1/testimonials", `{"student_name":"Sipho","content":"Great","rating":`+rating+`}`, true)
		assert.Equal(t, http.StatusBadRequest, w.Code, rating)
		assert.Equal(t, "VAL_001", errorCode(t, w))
	}

	w := api.postJSON("/api/v1/testimonials", `{"student_name":"Sipho","content":"Great","rating":5,"is_featured":true}`, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = api.postJSON("/api/v1/testimonials", `{"student_name":"Lebo","content":"Good","rating":3}`, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, 2, listLen(t, api.do(httptest.NewRequest(http.MethodGet, "/api/v1/testimonials", nil))))
	assert.Equal(t, 1, listLen(t, api.do(httptest.NewRequest(http.MethodGet, "/api/v1/testimonials?featured=true", nil))))

	w = api.postJSON("/api/v1/testimonials", `{"student_name":"Sipho","content":"Great","rating":5}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
