package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/db"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
	"github.com/yigit/consultdesk/internal/pkg/dberrors"
	"github.com/yigit/consultdesk/internal/pkg/helpers"
	"github.com/yigit/consultdesk/internal/pkg/logger"
)

// DocumentRepository handles document types and uploaded application documents
type DocumentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// --- Document types --- //

var documentTypeColumns = []string{"id", "name", "description", "has_expiry", "validity_period_months"}

func scanDocumentType(row rowScanner) (*models.DocumentType, error) {
	docType := &models.DocumentType{}
	err := row.Scan(&docType.ID, &docType.Name, &docType.Description, &docType.HasExpiry, &docType.ValidityPeriodMonths)
	return docType, err
}

// GetType retrieves a document type by ID
func (r *DocumentRepository) GetType(ctx context.Context, id int64) (*models.DocumentType, error) {
	sql, args, err := r.sb.Select(documentTypeColumns...).From("documents").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get document type query: %w", err)
	}

	docType, err := scanDocumentType(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDocumentTypeNotFound
		}
		return nil, fmt.Errorf("error getting document type: %w", err)
	}
	return docType, nil
}

// ListTypes returns all document types ordered by name
func (r *DocumentRepository) ListTypes(ctx context.Context) ([]*models.DocumentType, error) {
	sql, args, err := r.sb.Select(documentTypeColumns...).From("documents").OrderBy("name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list document types query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying document types: %w", err)
	}
	defer rows.Close()

	types := []*models.DocumentType{}
	for rows.Next() {
		docType, err := scanDocumentType(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning document type row: %w", err)
		}
		types = append(types, docType)
	}
	return types, rows.Err()
}

// CreateType inserts a document type
func (r *DocumentRepository) CreateType(ctx context.Context, docType *models.DocumentType) error {
	sql, args, err := r.sb.Insert("documents").
		Columns("name", "description", "has_expiry", "validity_period_months").
		Values(docType.Name, docType.Description, docType.HasExpiry, docType.ValidityPeriodMonths).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create document type query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&docType.ID); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, "A document type with this name already exists")
		}
		logger.Error().Err(err).Msg("Error executing create document type query")
		return fmt.Errorf("error creating document type: %w", err)
	}
	return nil
}

// UpdateType saves a document type
func (r *DocumentRepository) UpdateType(ctx context.Context, docType *models.DocumentType) error {
	sql, args, err := r.sb.Update("documents").
		SetMap(map[string]interface{}{
			"name":                   docType.Name,
			"description":            docType.Description,
			"has_expiry":             docType.HasExpiry,
			"validity_period_months": docType.ValidityPeriodMonths,
		}).
		Where(squirrel.Eq{"id": docType.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update document type query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, "A document type with this name already exists")
		}
		return fmt.Errorf("error updating document type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDocumentTypeNotFound
	}
	return nil
}

// --- Application documents --- //

func (r *DocumentRepository) selectApplicationDocuments() squirrel.SelectBuilder {
	return r.sb.Select(
		"ad.id", "ad.application_id", "ad.document_id", "ad.file_path", "ad.status", "ad.uploaded_at",
		"ad.expiry_date", "ad.expiry_notification_sent", "s.branch_id", "d.name",
	).
		From("application_documents ad").
		Join("applications a ON a.id = ad.application_id").
		Join("students s ON s.id = a.student_id").
		Join("documents d ON d.id = ad.document_id")
}

func scanApplicationDocument(row rowScanner) (*models.ApplicationDocument, error) {
	doc := &models.ApplicationDocument{}
	var status string
	err := row.Scan(
		&doc.ID, &doc.ApplicationID, &doc.DocumentID, &doc.FilePath, &status, &doc.UploadedAt,
		&doc.ExpiryDate, &doc.ExpiryNotificationSent, &doc.BranchID, &doc.DocumentName,
	)
	if err != nil {
		return nil, err
	}
	doc.Status = models.DocumentStatus(status)
	return doc, nil
}

// GetByID retrieves an uploaded document with its effective branch
func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*models.ApplicationDocument, error) {
	sql, args, err := r.selectApplicationDocuments().Where(squirrel.Eq{"ad.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get application document query: %w", err)
	}

	doc, err := scanApplicationDocument(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDocumentNotFound
		}
		logger.Error().Err(err).Int64("applicationDocumentID", id).Msg("Error scanning application document row")
		return nil, fmt.Errorf("error getting application document: %w", err)
	}
	return doc, nil
}

// ListByApplication returns every uploaded document of an application
func (r *DocumentRepository) ListByApplication(ctx context.Context, applicationID int64) ([]*models.ApplicationDocument, error) {
	sql, args, err := r.selectApplicationDocuments().
		Where(squirrel.Eq{"ad.application_id": applicationID}).
		OrderBy("d.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list application documents query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying application documents: %w", err)
	}
	defer rows.Close()

	docs := []*models.ApplicationDocument{}
	for rows.Next() {
		doc, err := scanApplicationDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning application document row: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Upsert stores an upload for (application, document type). An existing row is
// reset to pending with the notification flag cleared. The previous file path
// is returned when a row was replaced.
//
// Uploads of the same pair are serialized with a transaction-scoped advisory
// lock, since a row lock cannot cover a first upload that has no row yet.
func (r *DocumentRepository) Upsert(ctx context.Context, doc *models.ApplicationDocument) (*string, error) {
	var previous *string

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		lockKey := fmt.Sprintf("application_document:%d:%d", doc.ApplicationID, doc.DocumentID)
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, lockKey); err != nil {
			return fmt.Errorf("error locking application document: %w", err)
		}

		var existing string
		err := tx.QueryRow(ctx, `
			SELECT file_path FROM application_documents
			WHERE application_id = $1 AND document_id = $2`, doc.ApplicationID, doc.DocumentID).Scan(&existing)
		switch {
		case err == nil:
			previous = &existing
		case errors.Is(err, pgx.ErrNoRows):
		default:
			return fmt.Errorf("error locking application document: %w", err)
		}

		return tx.QueryRow(ctx, `
			INSERT INTO application_documents
				(application_id, document_id, file_path, status, uploaded_at, expiry_date, expiry_notification_sent)
			VALUES ($1, $2, $3, 'pending', $4, $5, FALSE)
			ON CONFLICT ON CONSTRAINT application_documents_pair_key DO UPDATE SET
				file_path = EXCLUDED.file_path,
				status = 'pending',
				uploaded_at = EXCLUDED.uploaded_at,
				expiry_date = EXCLUDED.expiry_date,
				expiry_notification_sent = FALSE
			RETURNING id`,
			doc.ApplicationID, doc.DocumentID, doc.FilePath, doc.UploadedAt, doc.ExpiryDate,
		).Scan(&doc.ID)
	})
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.NewResourceNotFoundError("Application or document type not found")
		}
		logger.Error().Err(err).
			Int64("applicationID", doc.ApplicationID).
			Int64("documentID", doc.DocumentID).
			Msg("Error upserting application document")
		return nil, fmt.Errorf("error saving application document: %w", err)
	}

	doc.Status = models.DocumentStatusPending
	doc.ExpiryNotificationSent = false
	return previous, nil
}

// UpdateStatus sets the review status of an uploaded document
func (r *DocumentRepository) UpdateStatus(ctx context.Context, id int64, status models.DocumentStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE application_documents SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		logger.Error().Err(err).Int64("applicationDocumentID", id).Msg("Error updating document status")
		return fmt.Errorf("error updating document status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}

// UpdateExpiry changes the expiry date and puts the document back in the notification pool
func (r *DocumentRepository) UpdateExpiry(ctx context.Context, id int64, expiry *time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE application_documents
		SET expiry_date = $1, expiry_notification_sent = FALSE
		WHERE id = $2`, expiry, id)
	if err != nil {
		logger.Error().Err(err).Int64("applicationDocumentID", id).Msg("Error updating document expiry")
		return fmt.Errorf("error updating document expiry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}

// Delete removes an uploaded document and returns its stored file path
func (r *DocumentRepository) Delete(ctx context.Context, id int64) (string, error) {
	var filePath string
	err := r.db.QueryRow(ctx, `DELETE FROM application_documents WHERE id = $1 RETURNING file_path`, id).Scan(&filePath)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrDocumentNotFound
		}
		logger.Error().Err(err).Int64("applicationDocumentID", id).Msg("Error deleting application document")
		return "", fmt.Errorf("error deleting application document: %w", err)
	}
	return filePath, nil
}

// ExpiringQuery selects uploaded documents whose expiry date falls in [From, To]
type ExpiringQuery struct {
	From           time.Time
	To             time.Time
	BranchID       *int64
	OnlyUnnotified bool
}

// ListExpiring returns documents expiring inside the window with their student,
// branch and counselor, soonest first
func (r *DocumentRepository) ListExpiring(ctx context.Context, q ExpiringQuery) ([]*models.ExpiringDocument, error) {
	query := r.sb.Select(
		"ad.id", "ad.application_id", "ad.document_id", "d.name", "ad.expiry_date",
		"s.id", "s.full_name", "s.branch_id", "b.name",
		"a.counselor_id", "u.full_name", "u.email", "ad.expiry_notification_sent",
	).
		From("application_documents ad").
		Join("documents d ON d.id = ad.document_id").
		Join("applications a ON a.id = ad.application_id").
		Join("students s ON s.id = a.student_id").
		Join("branches b ON b.id = s.branch_id").
		LeftJoin("users u ON u.id = a.counselor_id").
		Where(squirrel.GtOrEq{"ad.expiry_date": q.From}).
		Where(squirrel.LtOrEq{"ad.expiry_date": q.To}).
		OrderBy("ad.expiry_date ASC", "ad.id ASC")
	query = helpers.WhereBranch(query, "s.branch_id", q.BranchID)
	if q.OnlyUnnotified {
		query = query.Where(squirrel.Eq{"ad.expiry_notification_sent": false})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build expiring documents query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing expiring documents query")
		return nil, fmt.Errorf("error querying expiring documents: %w", err)
	}
	defer rows.Close()

	docs := []*models.ExpiringDocument{}
	for rows.Next() {
		doc := &models.ExpiringDocument{}
		err := rows.Scan(
			&doc.ApplicationDocumentID, &doc.ApplicationID, &doc.DocumentID, &doc.DocumentName, &doc.ExpiryDate,
			&doc.StudentID, &doc.StudentName, &doc.BranchID, &doc.BranchName,
			&doc.CounselorID, &doc.CounselorName, &doc.CounselorEmail, &doc.NotificationSent,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning expiring document row: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// MarkExpiryNotified flags a document as notified. It reports false when another
// run flagged it first.
func (r *DocumentRepository) MarkExpiryNotified(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE application_documents
		SET expiry_notification_sent = TRUE
		WHERE id = $1 AND expiry_notification_sent = FALSE`, id)
	if err != nil {
		logger.Error().Err(err).Int64("applicationDocumentID", id).Msg("Error flagging document as notified")
		return false, fmt.Errorf("error flagging document as notified: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
