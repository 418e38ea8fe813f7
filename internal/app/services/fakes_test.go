package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/app/repositories"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
	"github.com/yigit/consultdesk/internal/pkg/email"
)

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }

func globalActor() *models.Actor {
	return &models.Actor{UserID: 1, Email: "admin@consultdesk.local", Role: models.RoleAdmin}
}

func counselorIn(userID, branchID int64) *models.Actor {
	return &models.Actor{UserID: userID, Role: models.RoleCounselor, BranchID: int64Ptr(branchID)}
}

func testLogger(buf *bytes.Buffer) zerolog.Logger {
	if buf == nil {
		return zerolog.Nop()
	}
	return zerolog.New(buf)
}

// store is the shared in-memory database behind every fake repository
type store struct {
	mu sync.Mutex

	users         map[int64]*models.User
	branches      map[int64]*models.Branch
	students      map[int64]*models.Student
	applications  map[int64]*models.Application
	courses       map[int64]*models.Course
	docTypes      map[int64]*models.DocumentType
	documents     map[int64]*models.ApplicationDocument
	requirements  map[int64][]models.ChecklistItem
	notifications []models.Notification
	audits        []models.AuditLog

	failNotifyFor   map[int64]bool
	failDocDeletion bool
	nextID          int64
}

func newStore() *store {
	return &store{
		users:         map[int64]*models.User{},
		branches:      map[int64]*models.Branch{},
		students:      map[int64]*models.Student{},
		applications:  map[int64]*models.Application{},
		courses:       map[int64]*models.Course{},
		docTypes:      map[int64]*models.DocumentType{},
		documents:     map[int64]*models.ApplicationDocument{},
		requirements:  map[int64][]models.ChecklistItem{},
		failNotifyFor: map[int64]bool{},
		nextID:        100,
	}
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

// fixture seeds two branches, a counselor in each, a student in branch 1,
// a course in country 5 and a passport document type
type fixture struct {
	*store
	branch1, branch2       int64
	counselor1, counselor2 int64
	student                int64
	course                 int64
	passport               int64
}

func newFixture() *fixture {
	s := newStore()
	f := &fixture{store: s, branch1: 1, branch2: 2, counselor1: 11, counselor2: 12, student: 21, course: 31, passport: 41}

	s.branches[1] = &models.Branch{ID: 1, Name: "Kathmandu"}
	s.branches[2] = &models.Branch{ID: 2, Name: "Pokhara"}
	s.users[1] = &models.User{ID: 1, FullName: "Admin", Email: "admin@consultdesk.local", Role: models.RoleAdmin}
	s.users[11] = &models.User{ID: 11, FullName: "Counselor One", Email: "one@consultdesk.local", Role: models.RoleCounselor, BranchID: int64Ptr(1)}
	s.users[12] = &models.User{ID: 12, FullName: "Counselor Two", Email: "two@consultdesk.local", Role: models.RoleCounselor, BranchID: int64Ptr(2)}
	s.students[21] = &models.Student{ID: 21, FullName: "Sita Sharma", Email: "sita@example.com", BranchID: 1}
	s.courses[31] = &models.Course{ID: 31, Name: "MSc Data Science", CountryID: 5, CountryName: "Australia"}
	months := 120
	s.docTypes[41] = &models.DocumentType{ID: 41, Name: "Passport", HasExpiry: true, ValidityPeriodMonths: &months}
	return f
}

// addApplication stores an application for the fixture student
func (f *fixture) addApplication(status models.ApplicationStatus) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.id()
	f.applications[id] = &models.Application{
		ID:          id,
		StudentID:   f.student,
		CourseID:    f.course,
		CounselorID: int64Ptr(f.counselor1),
		Status:      status,
	}
	return id
}

// addDocument stores an uploaded document expiring at expiry
func (f *fixture) addDocument(appID int64, expiry time.Time) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.id()
	f.documents[id] = &models.ApplicationDocument{
		ID:            id,
		ApplicationID: appID,
		DocumentID:    f.passport,
		FilePath:      fmt.Sprintf("/uploads/documents/%d.pdf", id),
		Status:        models.DocumentStatusPending,
		ExpiryDate:    &expiry,
	}
	return id
}

// ---- users ----

type fakeUsers struct{ *store }

func (r fakeUsers) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = r.id()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r fakeUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r fakeUsers) List(_ context.Context, branchID *int64) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.User{}
	for _, u := range r.users {
		if branchID != nil && (u.BranchID == nil || *u.BranchID != *branchID) {
			continue
		}
		copied := *u
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeUsers) ListIDsByBranch(_ context.Context, branchID int64) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int64
	for _, u := range r.users {
		if u.BranchID != nil && *u.BranchID == branchID {
			ids = append(ids, u.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r fakeUsers) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r fakeUsers) UpdateRole(_ context.Context, id int64, role models.RoleType, branchID *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Role = role
	u.BranchID = branchID
	return nil
}

func (r fakeUsers) CountGlobal(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.Role == models.RoleAdmin || u.Role == models.RoleSuperAdmin {
			n++
		}
	}
	return n, nil
}

func (r fakeUsers) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// ---- branches ----

type fakeBranches struct{ *store }

func (r fakeBranches) Create(_ context.Context, branch *models.Branch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	branch.ID = r.id()
	copied := *branch
	r.branches[branch.ID] = &copied
	return nil
}

func (r fakeBranches) GetByID(_ context.Context, id int64) (*models.Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.branches[id]
	if !ok {
		return nil, apperrors.ErrBranchNotFound
	}
	copied := *b
	return &copied, nil
}

func (r fakeBranches) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.branches[id]
	return ok, nil
}

func (r fakeBranches) List(_ context.Context, onlyID *int64) ([]*models.Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Branch{}
	for _, b := range r.branches {
		if onlyID != nil && b.ID != *onlyID {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeBranches) Update(_ context.Context, branch *models.Branch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.branches[branch.ID]; !ok {
		return apperrors.ErrBranchNotFound
	}
	copied := *branch
	r.branches[branch.ID] = &copied
	return nil
}

func (r fakeBranches) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.branches[id]; !ok {
		return apperrors.ErrBranchNotFound
	}
	for _, u := range r.users {
		if u.BranchID != nil && *u.BranchID == id {
			return apperrors.ErrBranchHasRelations
		}
	}
	for _, st := range r.students {
		if st.BranchID == id {
			return apperrors.ErrBranchHasRelations
		}
	}
	delete(r.branches, id)
	return nil
}

// ---- students ----

type fakeStudents struct{ *store }

func (r fakeStudents) Create(_ context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, st := range r.students {
		if strings.EqualFold(st.Email, student.Email) {
			return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "A student with this email already exists")
		}
	}
	student.ID = r.id()
	copied := *student
	r.students[student.ID] = &copied
	return nil
}

func (r fakeStudents) GetByID(_ context.Context, id int64) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *st
	return &copied, nil
}

func (r fakeStudents) EmailExists(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, st := range r.students {
		if strings.EqualFold(st.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeStudents) List(ctx context.Context, branchID *int64, page, size int) ([]*models.Student, int64, error) {
	all, err := r.ListAll(ctx, branchID)
	return all, int64(len(all)), err
}

func (r fakeStudents) ListAll(_ context.Context, branchID *int64) ([]*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Student{}
	for _, st := range r.students {
		if branchID != nil && st.BranchID != *branchID {
			continue
		}
		copied := *st
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeStudents) Update(_ context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	copied := *student
	r.students[student.ID] = &copied
	return nil
}

func (r fakeStudents) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	for _, app := range r.applications {
		if app.StudentID == id {
			return apperrors.ErrStudentHasApplications
		}
	}
	delete(r.students, id)
	return nil
}

// ---- applications ----

type fakeApplications struct{ *store }

// hydrate derives the branch and destination through student and course. Caller holds mu.
func (r fakeApplications) hydrate(app *models.Application) *models.Application {
	copied := *app
	if st, ok := r.students[app.StudentID]; ok {
		copied.BranchID = st.BranchID
		copied.StudentName = st.FullName
	}
	if course, ok := r.courses[app.CourseID]; ok {
		copied.CountryID = course.CountryID
		copied.CourseName = course.Name
	}
	return &copied
}

func (r fakeApplications) Create(_ context.Context, app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app.ID = r.id()
	copied := *app
	r.applications[app.ID] = &copied
	return nil
}

func (r fakeApplications) GetByID(_ context.Context, id int64) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.applications[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	return r.hydrate(app), nil
}

func (r fakeApplications) List(_ context.Context, filter models.ApplicationFilter) ([]*models.Application, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Application{}
	for _, app := range r.applications {
		h := r.hydrate(app)
		if filter.BranchID != nil && h.BranchID != *filter.BranchID {
			continue
		}
		if filter.StudentID != nil && h.StudentID != *filter.StudentID {
			continue
		}
		if filter.Status != nil && h.Status != *filter.Status {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r fakeApplications) SaveStatus(_ context.Context, app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.applications[app.ID]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	stored.Status = app.Status
	stored.UpdatedAt = app.UpdatedAt
	if stored.SubmittedAt == nil {
		stored.SubmittedAt = app.SubmittedAt
	}
	app.SubmittedAt = stored.SubmittedAt
	return nil
}

func (r fakeApplications) Delete(_ context.Context, id int64) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.applications[id]; !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	if r.failDocDeletion {
		return nil, errors.New("error deleting application documents: connection reset")
	}
	var paths []string
	for docID, doc := range r.documents {
		if doc.ApplicationID == id {
			paths = append(paths, doc.FilePath)
			delete(r.documents, docID)
		}
	}
	delete(r.applications, id)
	sort.Strings(paths)
	return paths, nil
}

// ---- courses ----

type fakeCourses struct{ *store }

func (r fakeCourses) GetCourse(_ context.Context, id int64) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	copied := *c
	return &copied, nil
}

func (r fakeCourses) GetCountry(_ context.Context, id int64) (*models.Country, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.courses {
		if c.CountryID == id {
			return &models.Country{ID: id, Name: c.CountryName}, nil
		}
	}
	return nil, apperrors.ErrCountryNotFound
}

func (r fakeCourses) ListCountries(_ context.Context) ([]models.Country, error) {
	return []models.Country{{ID: 5, Name: "Australia"}}, nil
}

// ---- documents ----

type fakeDocuments struct{ *store }

func (r fakeDocuments) GetType(_ context.Context, id int64) (*models.DocumentType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.docTypes[id]
	if !ok {
		return nil, apperrors.ErrDocumentTypeNotFound
	}
	copied := *t
	return &copied, nil
}

func (r fakeDocuments) ListTypes(_ context.Context) ([]*models.DocumentType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.DocumentType{}
	for _, t := range r.docTypes {
		copied := *t
		out = append(out, &copied)
	}
	return out, nil
}

func (r fakeDocuments) CreateType(_ context.Context, docType *models.DocumentType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	docType.ID = r.id()
	copied := *docType
	r.docTypes[docType.ID] = &copied
	return nil
}

func (r fakeDocuments) UpdateType(_ context.Context, docType *models.DocumentType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docTypes[docType.ID]; !ok {
		return apperrors.ErrDocumentTypeNotFound
	}
	copied := *docType
	r.docTypes[docType.ID] = &copied
	return nil
}

// withBranch copies a document with its branch derived through application and student. Caller holds mu.
func (r fakeDocuments) withBranch(doc *models.ApplicationDocument) *models.ApplicationDocument {
	copied := *doc
	if app, ok := r.applications[doc.ApplicationID]; ok {
		if st, ok := r.students[app.StudentID]; ok {
			copied.BranchID = st.BranchID
		}
	}
	if t, ok := r.docTypes[doc.DocumentID]; ok {
		copied.DocumentName = t.Name
	}
	return &copied
}

func (r fakeDocuments) GetByID(_ context.Context, id int64) (*models.ApplicationDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.documents[id]
	if !ok {
		return nil, apperrors.ErrDocumentNotFound
	}
	return r.withBranch(doc), nil
}

func (r fakeDocuments) ListByApplication(_ context.Context, applicationID int64) ([]*models.ApplicationDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.ApplicationDocument{}
	for _, doc := range r.documents {
		if doc.ApplicationID == applicationID {
			out = append(out, r.withBranch(doc))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeDocuments) Upsert(_ context.Context, doc *models.ApplicationDocument) (*string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.documents {
		if existing.ApplicationID == doc.ApplicationID && existing.DocumentID == doc.DocumentID {
			previous := existing.FilePath
			existing.FilePath = doc.FilePath
			existing.Status = models.DocumentStatusPending
			existing.UploadedAt = doc.UploadedAt
			existing.ExpiryDate = doc.ExpiryDate
			existing.ExpiryNotificationSent = false
			doc.ID = existing.ID
			doc.Status = models.DocumentStatusPending
			doc.ExpiryNotificationSent = false
			return &previous, nil
		}
	}
	doc.ID = r.id()
	doc.Status = models.DocumentStatusPending
	doc.ExpiryNotificationSent = false
	copied := *doc
	r.documents[doc.ID] = &copied
	return nil, nil
}

func (r fakeDocuments) UpdateStatus(_ context.Context, id int64, status models.DocumentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.documents[id]
	if !ok {
		return apperrors.ErrDocumentNotFound
	}
	doc.Status = status
	return nil
}

func (r fakeDocuments) UpdateExpiry(_ context.Context, id int64, expiry *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.documents[id]
	if !ok {
		return apperrors.ErrDocumentNotFound
	}
	doc.ExpiryDate = expiry
	doc.ExpiryNotificationSent = false
	return nil
}

func (r fakeDocuments) Delete(_ context.Context, id int64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.documents[id]
	if !ok {
		return "", apperrors.ErrDocumentNotFound
	}
	delete(r.documents, id)
	return doc.FilePath, nil
}

func (r fakeDocuments) ListExpiring(_ context.Context, q repositories.ExpiringQuery) ([]*models.ExpiringDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.ExpiringDocument{}
	for _, doc := range r.documents {
		if doc.ExpiryDate == nil || doc.ExpiryDate.Before(q.From) || doc.ExpiryDate.After(q.To) {
			continue
		}
		if q.OnlyUnnotified && doc.ExpiryNotificationSent {
			continue
		}
		app := r.applications[doc.ApplicationID]
		st := r.students[app.StudentID]
		if q.BranchID != nil && st.BranchID != *q.BranchID {
			continue
		}
		expiring := &models.ExpiringDocument{
			ApplicationDocumentID: doc.ID,
			ApplicationID:         app.ID,
			DocumentID:            doc.DocumentID,
			DocumentName:          r.docTypes[doc.DocumentID].Name,
			ExpiryDate:            *doc.ExpiryDate,
			StudentID:             st.ID,
			StudentName:           st.FullName,
			BranchID:              st.BranchID,
			CounselorID:           app.CounselorID,
			NotificationSent:      doc.ExpiryNotificationSent,
		}
		if app.CounselorID != nil {
			if u, ok := r.users[*app.CounselorID]; ok {
				expiring.CounselorName = strPtr(u.FullName)
				expiring.CounselorEmail = strPtr(u.Email)
			}
		}
		out = append(out, expiring)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ApplicationDocumentID < out[j].ApplicationDocumentID })
	return out, nil
}

func (r fakeDocuments) MarkExpiryNotified(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.documents[id]
	if !ok || doc.ExpiryNotificationSent {
		return false, nil
	}
	doc.ExpiryNotificationSent = true
	return true, nil
}

// ---- checklists ----

type fakeChecklists struct{ *store }

func (r fakeChecklists) List(context.Context) ([]*models.Checklist, error) { return nil, nil }

func (r fakeChecklists) ListByCountry(context.Context, int64) ([]*models.Checklist, error) {
	return nil, nil
}

func (r fakeChecklists) GetByID(_ context.Context, id int64) (*models.Checklist, error) {
	return &models.Checklist{ID: id}, nil
}

func (r fakeChecklists) Requirements(_ context.Context, countryID int64) ([]models.ChecklistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.ChecklistItem(nil), r.requirements[countryID]...), nil
}

func (r fakeChecklists) Create(_ context.Context, checklist *models.Checklist) error {
	checklist.ID = r.id()
	return nil
}

func (r fakeChecklists) Update(context.Context, *models.Checklist) error { return nil }

func (r fakeChecklists) Delete(context.Context, int64) error { return nil }

// ---- notifications ----

type fakeNotifications struct{ *store }

func (r fakeNotifications) Create(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNotifyFor[n.UserID] {
		return fmt.Errorf("error creating notification for user %d", n.UserID)
	}
	n.ID = r.id()
	n.CreatedAt = time.Now()
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r fakeNotifications) ListByUser(_ context.Context, userID int64, limit, offset uint64) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Notification{}
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r fakeNotifications) CountUnread(_ context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r fakeNotifications) MarkRead(_ context.Context, id, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == id && r.notifications[i].UserID == userID {
			r.notifications[i].IsRead = true
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}

// notificationsFor counts stored notifications addressed to a user
func (s *store) notificationsFor(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, notification := range s.notifications {
		if notification.UserID == userID {
			n++
		}
	}
	return n
}

// ---- audit ----

type fakeAudit struct{ *store }

func (r fakeAudit) Create(_ context.Context, entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = r.id()
	r.audits = append(r.audits, *entry)
	return nil
}

// ---- dashboard ----

type fakeDashboard struct {
	lastBranch *int64
	called     bool
}

func (d *fakeDashboard) Stats(_ context.Context, branchID *int64) (*models.DashboardStats, error) {
	d.called = true
	d.lastBranch = branchID
	return &models.DashboardStats{BranchID: branchID}, nil
}

func (d *fakeDashboard) BranchComparison(context.Context) ([]models.BranchStats, error) {
	return []models.BranchStats{{BranchID: 1}, {BranchID: 2}}, nil
}

// ---- files ----

type fakeFiles struct {
	mu        sync.Mutex
	saved     []string
	deleted   []string
	deleteErr error
}

func (f *fakeFiles) Save(fh *multipart.FileHeader, subDir string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path := fmt.Sprintf("/uploads/%s/%d-%s", subDir, len(f.saved)+1, fh.Filename)
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeFiles) Delete(publicPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, publicPath)
	return nil
}

func (f *fakeFiles) FullPath(publicPath string) (string, error) {
	return "/tmp" + publicPath, nil
}

// ---- mail and publisher ----

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *fakeMailer) SendDocumentExpiryEmail(_ context.Context, toEmail, _ string, _ email.ExpiryReminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, toEmail)
	return nil
}

type recordingPublisher struct {
	mu        sync.Mutex
	published []int64
}

func (p *recordingPublisher) PublishNotification(n *models.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, n.UserID)
}

// newFileHeader builds a real multipart file header holding content
func newFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("document", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["document"]
	require.Len(t, files, 1)
	return files[0]
}

var pdfContent = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")
