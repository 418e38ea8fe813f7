package repositories

import (
	"context"
	"errors"
	"fmt"

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

// ApplicationRepository handles application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func (r *ApplicationRepository) selectApplications(columns ...string) squirrel.SelectBuilder {
	if len(columns) == 0 {
		columns = []string{
			"a.id", "a.student_id", "a.course_id", "a.counselor_id", "a.status", "a.submitted_at",
			"a.created_at", "a.updated_at", "s.branch_id", "b.name", "s.full_name", "c.name",
			"un.name", "co.id", "co.name", "u.full_name",
		}
	}
	return r.sb.Select(columns...).
		From("applications a").
		Join("students s ON s.id = a.student_id").
		Join("branches b ON b.id = s.branch_id").
		Join("courses c ON c.id = a.course_id").
		Join("universities un ON un.id = c.university_id").
		Join("countries co ON co.id = un.country_id").
		LeftJoin("users u ON u.id = a.counselor_id")
}

func scanApplication(row rowScanner) (*models.Application, error) {
	app := &models.Application{}
	var status string
	err := row.Scan(
		&app.ID, &app.StudentID, &app.CourseID, &app.CounselorID, &status, &app.SubmittedAt,
		&app.CreatedAt, &app.UpdatedAt, &app.BranchID, &app.BranchName, &app.StudentName, &app.CourseName,
		&app.UniversityName, &app.CountryID, &app.CountryName, &app.CounselorName,
	)
	if err != nil {
		return nil, err
	}
	app.Status = models.ApplicationStatus(status)
	return app, nil
}

func applyApplicationFilter(query squirrel.SelectBuilder, filter models.ApplicationFilter) squirrel.SelectBuilder {
	query = helpers.WhereBranch(query, "s.branch_id", filter.BranchID)
	query = helpers.WhereOptional(query, "a.student_id", filter.StudentID)
	query = helpers.WhereOptional(query, "co.id", filter.CountryID)
	if filter.Status != nil {
		query = query.Where(squirrel.Eq{"a.status": string(*filter.Status)})
	}
	return query
}

// Create inserts a draft application
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	sql, args, err := r.sb.Insert("applications").
		Columns("student_id", "course_id", "counselor_id", "status").
		Values(app.StudentID, app.CourseID, app.CounselorID, string(app.Status)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create application query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewBadRequestError("Student or course does not exist")
		}
		logger.Error().Err(err).Msg("Error executing create application query")
		return fmt.Errorf("error creating application: %w", err)
	}
	return nil
}

// GetByID retrieves an application with its student, course and destination
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	sql, args, err := r.selectApplications().Where(squirrel.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	app, err := scanApplication(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error scanning application row")
		return nil, fmt.Errorf("error getting application: %w", err)
	}
	return app, nil
}

// List returns applications matching the filter, newest first. A zero Size returns every match.
func (r *ApplicationRepository) List(ctx context.Context, filter models.ApplicationFilter) ([]*models.Application, int64, error) {
	countSQL, countArgs, err := applyApplicationFilter(r.selectApplications("COUNT(*)"), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count applications query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting applications")
		return nil, 0, fmt.Errorf("error counting applications: %w", err)
	}

	query := applyApplicationFilter(r.selectApplications(), filter).OrderBy("a.created_at DESC", "a.id DESC")
	if filter.Size > 0 {
		offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
		query = query.Offset(offset).Limit(limit)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list applications query")
		return nil, 0, fmt.Errorf("error querying applications: %w", err)
	}
	defer rows.Close()

	apps := []*models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning application row: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating application rows: %w", err)
	}
	return apps, total, nil
}

// SaveStatus persists a transition. submitted_at is only ever written while it is still NULL.
func (r *ApplicationRepository) SaveStatus(ctx context.Context, app *models.Application) error {
	sql, args, err := r.sb.Update("applications").
		Set("status", string(app.Status)).
		Set("updated_at", app.UpdatedAt).
		Set("submitted_at", squirrel.Expr("COALESCE(submitted_at, ?)", app.SubmittedAt)).
		Where(squirrel.Eq{"id": app.ID}).
		Suffix("RETURNING submitted_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update application status query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&app.SubmittedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrApplicationNotFound
		}
		logger.Error().Err(err).Int64("applicationID", app.ID).Msg("Error executing update application status query")
		return fmt.Errorf("error updating application status: %w", err)
	}
	return nil
}

// Delete removes an application and its uploaded documents in one transaction
// and returns the stored file paths of the removed documents.
func (r *ApplicationRepository) Delete(ctx context.Context, id int64) ([]string, error) {
	var filePaths []string

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `DELETE FROM application_documents WHERE application_id = $1 RETURNING file_path`, id)
		if err != nil {
			return fmt.Errorf("error deleting application documents: %w", err)
		}
		filePaths, err = pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return fmt.Errorf("error deleting application documents: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting application: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrApplicationNotFound
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrApplicationNotFound) {
			logger.Error().Err(err).Int64("applicationID", id).Msg("Application delete rolled back")
		}
		return nil, err
	}
	return filePaths, nil
}
