package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/consultdesk/internal/app/auth"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/app/models/dto"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
)

// csvTimeLayout is how timestamps are written to exported CSV files
const csvTimeLayout = "2006-01-02 15:04"

// ApplicationReader loads an application with its checklist view
type ApplicationReader interface {
	Get(ctx context.Context, actor *models.Actor, id int64) (*models.ApplicationDetail, error)
}

// BulkService imports and exports records as CSV
type BulkService struct {
	studentRepo     StudentStore
	branchRepo      BranchStore
	applicationRepo ApplicationStore
	applications    ApplicationReader
	auditRepo       AuditStore
	logger          zerolog.Logger
}

// NewBulkService creates a new BulkService
func NewBulkService(
	studentRepo StudentStore,
	branchRepo BranchStore,
	applicationRepo ApplicationStore,
	applications ApplicationReader,
	auditRepo AuditStore,
	logger zerolog.Logger,
) *BulkService {
	return &BulkService{
		studentRepo:     studentRepo,
		branchRepo:      branchRepo,
		applicationRepo: applicationRepo,
		applications:    applications,
		auditRepo:       auditRepo,
		logger:          logger,
	}
}

type studentRow struct {
	line     int
	fullName string
	email    string
	phone    *string
}

// readStudentRows parses a CSV with a full_name,email[,phone] header.
// Rows missing a name or an email reject the whole file.
func readStudentRows(r io.Reader) ([]studentRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.NewValidationError("CSV file is empty")
		}
		return nil, apperrors.NewValidationError(fmt.Sprintf("Invalid CSV file: %v", err))
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	nameCol, hasName := columns["full_name"]
	emailCol, hasEmail := columns["email"]
	phoneCol, hasPhone := columns["phone"]
	if !hasName || !hasEmail {
		return nil, apperrors.NewValidationError("CSV header must contain full_name and email columns")
	}

	field := func(record []string, col int) string {
		if col < len(record) {
			return strings.TrimSpace(record[col])
		}
		return ""
	}

	var rows []studentRow
	var missing []string
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Invalid CSV at row %d: %v", line, err))
		}

		row := studentRow{
			line:     line,
			fullName: field(record, nameCol),
			email:    strings.ToLower(field(record, emailCol)),
		}
		if row.fullName == "" {
			missing = append(missing, fmt.Sprintf("Row %d: Missing full_name", line))
		}
		if row.email == "" {
			missing = append(missing, fmt.Sprintf("Row %d: Missing email", line))
		}
		if hasPhone {
			if phone := field(record, phoneCol); phone != "" {
				row.phone = &phone
			}
		}
		rows = append(rows, row)
	}

	if len(missing) > 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Validation failed").
			WithDetails(map[string]interface{}{"rows": missing})
	}
	return rows, nil
}

// ImportStudents registers every student of a CSV file in one branch.
// Emails already known, in the database or earlier in the file, are skipped and reported.
func (s *BulkService) ImportStudents(ctx context.Context, actor *models.Actor, r io.Reader, requestedBranch *int64) (*dto.ImportResult, error) {
	if err := auth.Authorize(actor, auth.CapBulkTransfer); err != nil {
		return nil, err
	}
	branchID, err := s.importBranch(ctx, actor, requestedBranch)
	if err != nil {
		return nil, err
	}

	rows, err := readStudentRows(r)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResult{Skipped: []dto.ImportSkip{}}
	seen := make(map[string]struct{}, len(rows))
	registeredBy := actor.UserID

	for _, row := range rows {
		if _, dup := seen[row.email]; dup {
			result.Skipped = append(result.Skipped, dto.ImportSkip{Row: row.line, Email: row.email, Reason: "duplicate email in file"})
			continue
		}
		seen[row.email] = struct{}{}

		exists, err := s.studentRepo.EmailExists(ctx, row.email)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Skipped = append(result.Skipped, dto.ImportSkip{Row: row.line, Email: row.email, Reason: "student with this email already exists"})
			continue
		}

		student := &models.Student{
			FullName:     row.fullName,
			Email:        row.email,
			Phone:        row.phone,
			BranchID:     branchID,
			RegisteredBy: &registeredBy,
		}
		if err := s.studentRepo.Create(ctx, student); err != nil {
			if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
				result.Skipped = append(result.Skipped, dto.ImportSkip{Row: row.line, Email: row.email, Reason: "student with this email already exists"})
				continue
			}
			return nil, err
		}
		result.Imported++
	}

	s.audit(ctx, actor, models.AuditActionImportStudents, models.EntityTypeStudent, nil, &branchID, map[string]interface{}{
		"total":    len(rows),
		"imported": result.Imported,
		"skipped":  len(result.Skipped),
	})
	return result, nil
}

func (s *BulkService) importBranch(ctx context.Context, actor *models.Actor, requested *int64) (int64, error) {
	if !auth.IsGlobal(actor.Role) {
		if actor.BranchID == nil {
			return 0, apperrors.NewForbiddenError("user is not assigned to a branch")
		}
		if requested != nil && *requested != *actor.BranchID {
			return 0, apperrors.NewForbiddenError("not authorized to import into another branch")
		}
		return *actor.BranchID, nil
	}
	if requested == nil {
		return 0, apperrors.NewValidationError("branchId is required")
	}
	exists, err := s.branchRepo.Exists(ctx, *requested)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, apperrors.ErrBranchNotFound
	}
	return *requested, nil
}

// ExportStudents writes the students visible to the actor as CSV
func (s *BulkService) ExportStudents(ctx context.Context, actor *models.Actor, w io.Writer, requestedBranch *int64) error {
	if err := auth.Authorize(actor, auth.CapBulkTransfer); err != nil {
		return err
	}
	branchID, err := auth.ScopeBranchFilter(actor, requestedBranch)
	if err != nil {
		return err
	}

	students, err := s.studentRepo.ListAll(ctx, branchID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"ID", "Name", "Email", "Phone", "Branch", "Registration Date"})
	for _, student := range students {
		_ = writer.Write([]string{
			strconv.FormatInt(student.ID, 10),
			student.FullName,
			student.Email,
			deref(student.Phone),
			student.BranchName,
			student.CreatedAt.Format(csvTimeLayout),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("error writing students CSV: %w", err)
	}

	s.audit(ctx, actor, models.AuditActionExportStudents, models.EntityTypeStudent, nil, branchID, map[string]interface{}{
		"count": len(students),
	})
	return nil
}

// ExportApplications writes the applications visible to the actor as CSV
func (s *BulkService) ExportApplications(ctx context.Context, actor *models.Actor, w io.Writer, requestedBranch *int64, status *models.ApplicationStatus) error {
	if err := auth.Authorize(actor, auth.CapBulkTransfer); err != nil {
		return err
	}
	branchID, err := auth.ScopeBranchFilter(actor, requestedBranch)
	if err != nil {
		return err
	}

	apps, _, err := s.applicationRepo.List(ctx, models.ApplicationFilter{BranchID: branchID, Status: status})
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"ID", "Student", "Course", "University", "Country", "Status", "Branch", "Counselor", "Submitted", "Created"})
	for _, app := range apps {
		submitted := ""
		if app.SubmittedAt != nil {
			submitted = app.SubmittedAt.Format(csvTimeLayout)
		}
		_ = writer.Write([]string{
			strconv.FormatInt(app.ID, 10),
			app.StudentName,
			app.CourseName,
			app.UniversityName,
			app.CountryName,
			string(app.Status),
			app.BranchName,
			deref(app.CounselorName),
			submitted,
			app.CreatedAt.Format(csvTimeLayout),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("error writing applications CSV: %w", err)
	}

	s.audit(ctx, actor, models.AuditActionExportApplications, models.EntityTypeApplication, nil, branchID, map[string]interface{}{
		"count": len(apps),
	})
	return nil
}

// ExportDocumentChecklist writes the checklist view of one application as CSV
func (s *BulkService) ExportDocumentChecklist(ctx context.Context, actor *models.Actor, w io.Writer, applicationID int64) error {
	detail, err := s.applications.Get(ctx, actor, applicationID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"Document", "Required", "Status", "Uploaded", "Expiry Date"})
	for _, doc := range detail.Documents {
		status, uploaded := "missing", ""
		if doc.Status != nil {
			status = string(*doc.Status)
		}
		if doc.UploadedAt != nil {
			uploaded = doc.UploadedAt.Format(csvTimeLayout)
		}
		_ = writer.Write([]string{
			doc.DocumentName,
			strconv.FormatBool(doc.Required),
			status,
			uploaded,
			deref(models.FormatDate(doc.ExpiryDate)),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("error writing checklist CSV: %w", err)
	}

	branchID := detail.BranchID
	s.audit(ctx, actor, models.AuditActionExportChecklist, models.EntityTypeApplication, &applicationID, &branchID, map[string]interface{}{
		"documents": len(detail.Documents),
	})
	return nil
}

// audit records a bulk operation. Failures are logged and do not fail the transfer.
func (s *BulkService) audit(ctx context.Context, actor *models.Actor, action, entityType string, entityID, branchID *int64, details map[string]interface{}) {
	encoded, err := json.Marshal(details)
	if err != nil {
		encoded = []byte("{}")
	}
	entry := &models.AuditLog{
		UserID:     actor.UserID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    string(encoded),
		BranchID:   branchID,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("action", action).Int64("actorID", actor.UserID).Msg("Failed to write audit log")
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
