package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/consultdesk/internal/app/controllers"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/app/models/dto"
	"github.com/yigit/consultdesk/internal/app/services"
	"github.com/yigit/consultdesk/internal/middleware"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
	"github.com/yigit/consultdesk/internal/pkg/filestorage"
)

const (
	adminToken     = "admin.test.token"
	counselorToken = "counselor.test.token"
	cronKey        = "cron-secret"
)

func int64Ptr(v int64) *int64 { return &v }

var (
	adminActor     = &models.Actor{UserID: 1, Email: "admin@consultdesk.local", Role: models.RoleAdmin}
	counselorActor = &models.Actor{UserID: 11, Email: "c@consultdesk.local", Role: models.RoleCounselor, BranchID: int64Ptr(1)}
)

type tokenResolver struct{}

func (tokenResolver) ResolveActor(_ context.Context, token string) (*models.Actor, error) {
	switch token {
	case adminToken:
		return adminActor, nil
	case counselorToken:
		return counselorActor, nil
	}
	return nil, apperrors.ErrTokenInvalid
}

// --- service stubs ---

type stubAuth struct{}

func (stubAuth) Register(context.Context, *int64, *dto.RegisterRequest) (*dto.AuthResponse, error) {
	return &dto.AuthResponse{User: &models.User{ID: 5, Role: models.RoleCounselor}}, nil
}
func (stubAuth) Login(context.Context, *dto.LoginRequest) (*dto.AuthResponse, error) {
	return nil, apperrors.ErrInvalidCredentials
}
func (stubAuth) Me(_ context.Context, actor *models.Actor) (*models.User, error) {
	return &models.User{ID: actor.UserID, Email: actor.Email, Role: actor.Role}, nil
}

type stubUsers struct{}

func (stubUsers) List(context.Context, *models.Actor, *int64) ([]*models.User, error) {
	return nil, nil
}
func (stubUsers) Get(context.Context, *models.Actor, int64) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}
func (stubUsers) Update(context.Context, *models.Actor, int64, *dto.UpdateUserRequest) (*models.User, error) {
	return nil, nil
}
func (stubUsers) UpdateRole(context.Context, *models.Actor, int64, *dto.UpdateRoleRequest) (*models.User, error) {
	return nil, nil
}
func (stubUsers) Delete(context.Context, *models.Actor, int64) error { return apperrors.ErrLastGlobalUser }
func (stubUsers) Roles() []dto.RoleResponse                         { return nil }

type stubBranches struct{}

func (s *stubBranches) List(_ context.Context, actor *models.Actor) ([]*models.Branch, error) {
	return []*models.Branch{{ID: 1, Name: "Head Office"}}, nil
}
func (s *stubBranches) Get(_ context.Context, actor *models.Actor, id int64) (*models.Branch, error) {
	if actor.BranchID != nil && *actor.BranchID != id {
		return nil, apperrors.NewForbiddenError("You cannot access another branch")
	}
	return &models.Branch{ID: id, Name: "Head Office"}, nil
}
func (s *stubBranches) Create(context.Context, *models.Actor, *dto.BranchRequest) (*models.Branch, error) {
	return nil, nil
}
func (s *stubBranches) Update(context.Context, *models.Actor, int64, *dto.BranchRequest) (*models.Branch, error) {
	return nil, nil
}
func (s *stubBranches) Delete(context.Context, *models.Actor, int64) error { return nil }
func (s *stubBranches) Staff(context.Context, *models.Actor, int64) ([]*models.User, error) {
	return nil, nil
}

type stubStudents struct {
	created *dto.CreateStudentRequest
}

func (s *stubStudents) List(context.Context, *models.Actor, *int64, int, int) ([]*models.Student, dto.PaginationInfo, error) {
	return nil, dto.PaginationInfo{}, nil
}
func (s *stubStudents) Get(context.Context, *models.Actor, int64) (*models.Student, error) {
	return nil, nil
}
func (s *stubStudents) Create(_ context.Context, _ *models.Actor, req *dto.CreateStudentRequest) (*models.Student, error) {
	s.created = req
	return &models.Student{ID: 21, FullName: req.FullName}, nil
}
func (s *stubStudents) Update(context.Context, *models.Actor, int64, *dto.UpdateStudentRequest) (*models.Student, error) {
	return nil, nil
}
func (s *stubStudents) Delete(context.Context, *models.Actor, int64) error {
	return apperrors.ErrStudentHasApplications
}
func (s *stubStudents) Applications(context.Context, *models.Actor, int64) ([]*models.Application, error) {
	return nil, nil
}

type stubApplications struct {
	filter models.ApplicationFilter
}

func (s *stubApplications) Create(context.Context, *models.Actor, *dto.CreateApplicationRequest) (*models.Application, error) {
	return nil, nil
}
func (s *stubApplications) Get(context.Context, *models.Actor, int64) (*models.ApplicationDetail, error) {
	return nil, nil
}
func (s *stubApplications) List(_ context.Context, _ *models.Actor, filter models.ApplicationFilter) ([]*models.Application, dto.PaginationInfo, error) {
	s.filter = filter
	return []*models.Application{}, dto.PaginationInfo{CurrentPage: filter.Page, PageSize: filter.Size}, nil
}
func (s *stubApplications) UpdateStatus(context.Context, *models.Actor, int64, string) (*models.Application, error) {
	return nil, nil
}
func (s *stubApplications) Delete(context.Context, *models.Actor, int64) error { return nil }

type uploadCall struct {
	applicationID, documentID int64
	filename                  string
	expiry                    *string
}

type stubDocuments struct {
	upload *uploadCall
	days   int
}

func (s *stubDocuments) Upload(_ context.Context, _ *models.Actor, applicationID, documentID int64, fh *multipart.FileHeader, rawExpiry *string) (*models.ApplicationDocument, error) {
	s.upload = &uploadCall{applicationID: applicationID, documentID: documentID, filename: fh.Filename, expiry: rawExpiry}
	return &models.ApplicationDocument{ID: 31, FilePath: "/uploads/documents/passport.pdf", Status: models.DocumentStatusPending}, nil
}
func (s *stubDocuments) ListByApplication(context.Context, *models.Actor, int64) ([]*models.ApplicationDocument, error) {
	return nil, nil
}
func (s *stubDocuments) UpdateStatus(context.Context, *models.Actor, int64, string) (*models.ApplicationDocument, error) {
	return nil, nil
}
func (s *stubDocuments) UpdateExpiry(context.Context, *models.Actor, int64, *string) (*models.ApplicationDocument, error) {
	return nil, nil
}
func (s *stubDocuments) Expiring(_ context.Context, _ *models.Actor, days int, _ *int64) ([]*models.ExpiringDocument, error) {
	s.days = days
	return nil, nil
}
func (s *stubDocuments) Delete(context.Context, *models.Actor, int64) error { return nil }
func (s *stubDocuments) ListTypes(context.Context, *models.Actor) ([]*models.DocumentType, error) {
	return nil, nil
}
func (s *stubDocuments) CreateType(context.Context, *models.Actor, *models.DocumentType) (*models.DocumentType, error) {
	return nil, nil
}
func (s *stubDocuments) UpdateType(context.Context, *models.Actor, int64, *models.DocumentType) (*models.DocumentType, error) {
	return nil, nil
}

type stubChecklists struct{ countryID int64 }

func (s *stubChecklists) List(context.Context, *models.Actor) ([]*models.Checklist, error) {
	return nil, nil
}
func (s *stubChecklists) Get(context.Context, *models.Actor, int64) (*models.Checklist, error) {
	return nil, apperrors.ErrChecklistNotFound
}
func (s *stubChecklists) ListByCountry(_ context.Context, _ *models.Actor, countryID int64) ([]*models.Checklist, error) {
	s.countryID = countryID
	return []*models.Checklist{}, nil
}
func (s *stubChecklists) Countries(context.Context, *models.Actor) ([]models.Country, error) {
	return []models.Country{}, nil
}
func (s *stubChecklists) Create(context.Context, *models.Actor, *models.Checklist) (*models.Checklist, error) {
	return nil, nil
}
func (s *stubChecklists) Update(context.Context, *models.Actor, int64, *models.Checklist) (*models.Checklist, error) {
	return nil, nil
}
func (s *stubChecklists) Delete(context.Context, *models.Actor, int64) error { return nil }

type stubNotifications struct{}

func (stubNotifications) List(context.Context, *models.Actor, uint64, uint64) (*dto.NotificationListResponse, error) {
	return &dto.NotificationListResponse{Notifications: []models.Notification{}}, nil
}
func (stubNotifications) MarkRead(context.Context, *models.Actor, int64) error {
	return apperrors.ErrNotificationNotFound
}

type stubScanner struct {
	runs    int
	lastErr error
}

func (s *stubScanner) Scan(ctx context.Context) (*services.ScanResult, error) {
	s.runs++
	s.lastErr = ctx.Err()
	return &services.ScanResult{DocumentCount: 3, Notified: 2, Failed: 1}, nil
}

type stubDashboard struct{}

func (stubDashboard) Stats(context.Context, *models.Actor, *int64) (*models.DashboardStats, error) {
	return &models.DashboardStats{}, nil
}
func (stubDashboard) BranchComparison(context.Context, *models.Actor) ([]models.BranchStats, error) {
	return nil, apperrors.NewForbiddenError("Global role required")
}

type stubBulk struct {
	imported string
	branch   *int64
}

func (s *stubBulk) ImportStudents(_ context.Context, _ *models.Actor, r io.Reader, requestedBranch *int64) (*dto.ImportResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s.imported = string(raw)
	s.branch = requestedBranch
	return &dto.ImportResult{Imported: 1, Skipped: []dto.ImportSkip{}}, nil
}
func (s *stubBulk) ExportStudents(_ context.Context, _ *models.Actor, w io.Writer, _ *int64) error {
	_, err := io.WriteString(w, "id,full_name,email\n21,Asha,asha@example.com\n")
	return err
}
func (s *stubBulk) ExportApplications(context.Context, *models.Actor, io.Writer, *int64, *models.ApplicationStatus) error {
	return apperrors.ErrPermissionDenied
}
func (s *stubBulk) ExportDocumentChecklist(context.Context, *models.Actor, io.Writer, int64) error {
	return nil
}

type fixture struct {
	router       *gin.Engine
	students     *stubStudents
	applications *stubApplications
	documents    *stubDocuments
	checklists   *stubChecklists
	scanner      *stubScanner
	bulk         *stubBulk
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, middleware.RegisterValidators())

	f := &fixture{
		students:     &stubStudents{},
		applications: &stubApplications{},
		documents:    &stubDocuments{},
		checklists:   &stubChecklists{},
		scanner:      &stubScanner{},
		bulk:         &stubBulk{},
	}
	log := zerolog.Nop()
	c := Controllers{
		Auth:         controllers.NewAuthController(stubAuth{}, log),
		User:         controllers.NewUserController(stubUsers{}),
		Branch:       controllers.NewBranchController(&stubBranches{}),
		Student:      controllers.NewStudentController(f.students),
		Application:  controllers.NewApplicationController(f.applications),
		Document:     controllers.NewDocumentController(f.documents),
		Checklist:    controllers.NewChecklistController(f.checklists),
		Notification: controllers.NewNotificationController(stubNotifications{}, f.scanner, log),
		Dashboard:    controllers.NewDashboardController(stubDashboard{}),
		Bulk:         controllers.NewBulkController(f.bulk, filestorage.CSVUploadPolicy(1<<20)),
	}

	f.router = gin.New()
	SetupRouter(f.router, c, middleware.NewAuthMiddleware(tokenResolver{}), Options{
		CronAPIKey: cronKey,
		WebSocketHandler: func(ctx *gin.Context) {
			if _, ok := middleware.GetActor(ctx); !ok {
				ctx.Status(http.StatusUnauthorized)
				return
			}
			ctx.Status(http.StatusSwitchingProtocols)
		},
	})
	return f
}

func (f *fixture) do(method, target, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) doJSON(method, target, token, body string) *httptest.ResponseRecorder {
	return f.do(method, target, token, bytes.NewBufferString(body), "application/json")
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorCode {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	require.NotNil(t, body.Error)
	return body.Error.Code
}

func multipartBody(t *testing.T, field, filename string, content []byte, values map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for k, v := range values {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}

func TestOperationalRoutes(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/v1/health", "", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = f.do(http.MethodGet, "/api/v1/ws", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodGet, "/api/v1/ws?token="+counselorToken, "", nil, "")
	assert.Equal(t, http.StatusSwitchingProtocols, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newFixture(t)

	for _, target := range []string{"/api/v1/students", "/api/v1/auth/me", "/api/v1/dashboard/stats"} {
		w := f.do(http.MethodGet, target, "", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)
	}

	w := f.do(http.MethodGet, "/api/v1/students", "not-a-token", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidToken, errorCode(t, w))

	w = f.do(http.MethodGet, "/api/v1/students", "unknown.test.token", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodGet, "/api/v1/students", counselorToken, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRoutes(t *testing.T) {
	f := newFixture(t)

	w := f.doJSON(http.MethodPost, "/api/v1/auth/login", "", `{"email":"a@b.co","password":"whatever1"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidCredentials, errorCode(t, w))

	w = f.doJSON(http.MethodPost, "/api/v1/auth/login", "", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, errorCode(t, w))

	w = f.do(http.MethodGet, "/api/v1/auth/me", adminToken, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestBranchRoutes(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/v1/branches/2", counselorToken, nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrorCodeForbidden, errorCode(t, w))

	w = f.do(http.MethodGet, "/api/v1/branches/1", counselorToken, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/api/v1/branches/abc", counselorToken, nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStudentRoutes(t *testing.T) {
	f := newFixture(t)

	w := f.doJSON(http.MethodPost, "/api/v1/students", counselorToken, `{"fullName":"Asha Rai","email":"asha@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, f.students.created)
	assert.Equal(t, "asha@example.com", f.students.created.Email)

	w = f.doJSON(http.MethodPost, "/api/v1/students", counselorToken, `{"email":"asha@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodDelete, "/api/v1/students/21", counselorToken, nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeResourceInUse, errorCode(t, w))
}

func TestApplicationListFilters(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/v1/applications?status=submitted&branch=2&country=5&page=3&size=5", adminToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	filter := f.applications.filter
	require.NotNil(t, filter.Status)
	assert.Equal(t, models.ApplicationStatusSubmitted, *filter.Status)
	require.NotNil(t, filter.BranchID)
	assert.Equal(t, int64(2), *filter.BranchID)
	require.NotNil(t, filter.CountryID)
	assert.Equal(t, int64(5), *filter.CountryID)
	assert.Nil(t, filter.StudentID)
	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 5, filter.Size)

	w = f.do(http.MethodGet, "/api/v1/applications?status=lost", adminToken, nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, errorCode(t, w))

	w = f.doJSON(http.MethodPut, "/api/v1/applications/7/status", adminToken, `{"status":"lost"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentUploadRoute(t *testing.T) {
	f := newFixture(t)

	body, contentType := multipartBody(t, "", "", nil, map[string]string{"expiryDate": "2030-01-01"})
	w := f.do(http.MethodPost, "/api/v1/documents/upload/7/3", counselorToken, body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidFile, errorCode(t, w))
	assert.Nil(t, f.documents.upload)

	body, contentType = multipartBody(t, "document", "passport.pdf", []byte("%PDF-1.4\n"), map[string]string{"expiryDate": " 2030-01-01 "})
	w = f.do(http.MethodPost, "/api/v1/documents/upload/7/3", counselorToken, body, contentType)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	call := f.documents.upload
	require.NotNil(t, call)
	assert.Equal(t, int64(7), call.applicationID)
	assert.Equal(t, int64(3), call.documentID)
	assert.Equal(t, "passport.pdf", call.filename)
	require.NotNil(t, call.expiry)
	assert.Equal(t, "2030-01-01", *call.expiry)
	assert.Contains(t, w.Body.String(), `"filePath":"/uploads/documents/passport.pdf"`)
}

func TestExpiringDocumentsWindow(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/v1/documents/expiring", counselorToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30, f.documents.days)

	w = f.do(http.MethodGet, "/api/v1/documents/expiring?days=7", counselorToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7, f.documents.days)

	w = f.do(http.MethodGet, "/api/v1/documents/expiring?days=0", counselorToken, nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChecklistRoutesDoNotCollide(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/v1/checklists/country/5", counselorToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(5), f.checklists.countryID)

	w = f.do(http.MethodGet, "/api/v1/checklists/countries", counselorToken, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/api/v1/checklists/9", counselorToken, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotificationRoutes(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPut, "/api/v1/notifications/4/read", counselorToken, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(http.MethodGet, "/api/v1/notifications?limit=5", counselorToken, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unreadCount":0`)
}

func TestExpiryReminderTriggers(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/v1/notifications/send-expiry-reminders", counselorToken, nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, f.scanner.runs)

	w = f.do(http.MethodPost, "/api/v1/notifications/send-expiry-reminders", adminToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"documentCount":3`)
	assert.Contains(t, w.Body.String(), `"notified":2`)
	assert.Contains(t, w.Body.String(), `"failed":1`)

	cron := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/cron/send-expiry-reminders", nil)
		if key != "" {
			req.Header.Set(middleware.CronAPIKeyHeader, key)
		}
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		return rec
	}
	assert.Equal(t, http.StatusUnauthorized, cron("").Code)
	assert.Equal(t, http.StatusUnauthorized, cron("wrong").Code)
	assert.Equal(t, http.StatusOK, cron(cronKey).Code)
	assert.Equal(t, 2, f.scanner.runs)
}

func TestExpiryScanOutlivesCanceledRequest(t *testing.T) {
	f := newFixture(t)

	reqCtx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/cron/send-expiry-reminders", nil).WithContext(reqCtx)
	req.Header.Set(middleware.CronAPIKeyHeader, cronKey)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, f.scanner.runs)
	assert.NoError(t, f.scanner.lastErr)
}

func TestDashboardRoutes(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/v1/dashboard/stats?branchId=1", counselorToken, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/api/v1/dashboard/branch-comparison", counselorToken, nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBulkRoutes(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/v1/bulk/export/students", counselorToken, nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code, "counselors lack bulk_transfer")

	w = f.do(http.MethodGet, "/api/v1/bulk/export/students", adminToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="students-`)
	assert.Equal(t, "id,full_name,email\n21,Asha,asha@example.com\n", w.Body.String())

	w = f.do(http.MethodGet, "/api/v1/bulk/export/applications", adminToken, nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	body, contentType := multipartBody(t, "", "", nil, map[string]string{"branchId": "2"})
	w = f.do(http.MethodPost, "/api/v1/bulk/import/students", adminToken, body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidFile, errorCode(t, w))

	csv := []byte("full_name,email,phone\nAsha Rai,asha@example.com,9800000000\n")
	body, contentType = multipartBody(t, "csv", "students.csv", csv, map[string]string{"branchId": "2"})
	w = f.do(http.MethodPost, "/api/v1/bulk/import/students", adminToken, body, contentType)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, string(csv), f.bulk.imported)
	require.NotNil(t, f.bulk.branch)
	assert.Equal(t, int64(2), *f.bulk.branch)
}
