package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
)

func newBulkService(f *fixture) *BulkService {
	return NewBulkService(
		fakeStudents{f.store},
		fakeBranches{f.store},
		fakeApplications{f.store},
		newApplicationService(f, &fakeFiles{}, nil),
		fakeAudit{f.store},
		testLogger(nil),
	)
}

func managerIn(userID, branchID int64) *models.Actor {
	return &models.Actor{UserID: userID, Role: models.RoleBranchManager, BranchID: int64Ptr(branchID)}
}

func TestImportStudentsSkipsDuplicates(t *testing.T) {
	f := newFixture()
	svc := newBulkService(f)

	input := "\ufefffull_name,email,phone\n" +
		"Ram Thapa,ram@example.com,9800000000\n" +
		"Sita Again,SITA@example.com,\n" +
		"Ram Twice,ram@example.com,\n" +
		"Gita Rai,gita@example.com,\n"

	result, err := svc.ImportStudents(context.Background(), managerIn(13, f.branch2), strings.NewReader(input), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Skipped, 2)
	assert.Equal(t, 3, result.Skipped[0].Row)
	assert.Equal(t, "sita@example.com", result.Skipped[0].Email)
	assert.Equal(t, 4, result.Skipped[1].Row)
	assert.Equal(t, "duplicate email in file", result.Skipped[1].Reason)

	imported := 0
	for _, st := range f.students {
		if st.BranchID == f.branch2 {
			imported++
			require.NotNil(t, st.RegisteredBy)
			assert.Equal(t, int64(13), *st.RegisteredBy)
		}
	}
	assert.Equal(t, 2, imported)

	require.Len(t, f.audits, 1)
	assert.Equal(t, models.AuditActionImportStudents, f.audits[0].Action)
	assert.JSONEq(t, `{"total":4,"imported":2,"skipped":2}`, f.audits[0].Details)
}

func TestImportStudentsRejectsMissingFields(t *testing.T) {
	f := newFixture()
	svc := newBulkService(f)

	input := "full_name,email\nRam Thapa,ram@example.com\n,nobody@example.com\nNo Email,\n"

	_, err := svc.ImportStudents(context.Background(), globalActor(), strings.NewReader(input), int64Ptr(f.branch1))
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)

	var custom *apperrors.CustomError
	require.ErrorAs(t, err, &custom)
	assert.Equal(t, []string{"Row 3: Missing full_name", "Row 4: Missing email"}, custom.Details["rows"])
	assert.Len(t, f.students, 1)
	assert.Empty(t, f.audits)
}

func TestImportStudentsBranchRules(t *testing.T) {
	f := newFixture()
	svc := newBulkService(f)
	input := "full_name,email\nRam Thapa,ram@example.com\n"

	tests := []struct {
		name      string
		actor     *models.Actor
		requested *int64
		wantErr   error
	}{
		{"counselor cannot bulk import", counselorIn(f.counselor1, f.branch1), nil, apperrors.ErrPermissionDenied},
		{"manager into another branch", managerIn(13, f.branch1), int64Ptr(f.branch2), apperrors.ErrPermissionDenied},
		{"global without branch", globalActor(), nil, apperrors.ErrValidationFailed},
		{"global into unknown branch", globalActor(), int64Ptr(99), apperrors.ErrBranchNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ImportStudents(context.Background(), tt.actor, strings.NewReader(input), tt.requested)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Len(t, f.students, 1)
}

func TestImportStudentsRejectsBadHeader(t *testing.T) {
	f := newFixture()
	svc := newBulkService(f)

	_, err := svc.ImportStudents(context.Background(), globalActor(), strings.NewReader("name,mail\nRam,ram@example.com\n"), int64Ptr(f.branch1))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.ImportStudents(context.Background(), globalActor(), strings.NewReader(""), int64Ptr(f.branch1))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestExportStudentsIsScoped(t *testing.T) {
	f := newFixture()
	f.students[22] = &models.Student{ID: 22, FullName: "Ram", Email: "ram@example.com", BranchID: f.branch2}
	svc := newBulkService(f)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportStudents(context.Background(), managerIn(13, f.branch2), &buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "ID", records[0][0])
	assert.Equal(t, "ram@example.com", records[1][2])

	require.Len(t, f.audits, 1)
	assert.Equal(t, models.AuditActionExportStudents, f.audits[0].Action)
	require.NotNil(t, f.audits[0].BranchID)
	assert.Equal(t, f.branch2, *f.audits[0].BranchID)

	err = svc.ExportStudents(context.Background(), counselorIn(f.counselor1, f.branch1), &bytes.Buffer{}, nil)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestExportApplicationsFiltersByStatus(t *testing.T) {
	f := newFixture()
	svc := newBulkService(f)
	f.addApplication(models.ApplicationStatusDraft)
	f.addApplication(models.ApplicationStatusApproved)

	status := models.ApplicationStatusApproved
	var buf bytes.Buffer
	require.NoError(t, svc.ExportApplications(context.Background(), globalActor(), &buf, nil, &status))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "approved", records[1][5])
	assert.Equal(t, "MSc Data Science", records[1][2])
}

func TestExportDocumentChecklist(t *testing.T) {
	f := newFixture()
	svc := newBulkService(f)
	appID := f.addApplication(models.ApplicationStatusSubmitted)
	f.requirements[5] = []models.ChecklistItem{{DocumentID: f.passport, DocumentName: "Passport", Required: true}}

	var buf bytes.Buffer
	require.NoError(t, svc.ExportDocumentChecklist(context.Background(), counselorIn(f.counselor1, f.branch1), &buf, appID))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Passport", "true", "missing", "", ""}, records[1])
	require.Len(t, f.audits, 1)
	assert.Equal(t, models.AuditActionExportChecklist, f.audits[0].Action)

	err = svc.ExportDocumentChecklist(context.Background(), counselorIn(f.counselor2, f.branch2), &bytes.Buffer{}, appID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
