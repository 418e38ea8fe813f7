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
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
	"github.com/yigit/consultdesk/internal/pkg/dberrors"
	"github.com/yigit/consultdesk/internal/pkg/helpers"
	"github.com/yigit/consultdesk/internal/pkg/logger"
)

const studentsEmailConstraint = "students_email_key"

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func (r *StudentRepository) selectStudents() squirrel.SelectBuilder {
	return r.sb.Select(
		"s.id", "s.full_name", "s.email", "s.phone", "s.branch_id", "b.name",
		"s.registered_by", "s.created_at", "s.updated_at",
	).
		From("students s").
		Join("branches b ON b.id = s.branch_id")
}

func scanStudent(row rowScanner) (*models.Student, error) {
	student := &models.Student{}
	err := row.Scan(
		&student.ID, &student.FullName, &student.Email, &student.Phone, &student.BranchID,
		&student.BranchName, &student.RegisteredBy, &student.CreatedAt, &student.UpdatedAt,
	)
	return student, err
}

func mapStudentWriteError(err error) error {
	if dberrors.IsDuplicateConstraintError(err, studentsEmailConstraint) {
		return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "A student with this email already exists")
	}
	if dberrors.IsForeignKeyViolation(err) {
		return apperrors.ErrBranchNotFound
	}
	return nil
}

// Create inserts a student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("full_name", "email", "phone", "branch_id", "registered_by").
		Values(student.FullName, student.Email, student.Phone, student.BranchID, student.RegisteredBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt); err != nil {
		if mapped := mapStudentWriteError(err); mapped != nil {
			return mapped
		}
		logger.Error().Err(err).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.selectStudents().Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	return student, nil
}

// EmailExists reports whether a student already uses the email
func (r *StudentRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM students WHERE LOWER(email) = LOWER($1))`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student email: %w", err)
	}
	return exists, nil
}

// List returns one page of students, newest first, and the total count
func (r *StudentRepository) List(ctx context.Context, branchID *int64, page, size int) ([]*models.Student, int64, error) {
	countSQL, countArgs, err := helpers.WhereBranch(r.sb.Select("COUNT(*)").From("students s"), "s.branch_id", branchID).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting students")
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	students, err := r.query(ctx, helpers.WhereBranch(r.selectStudents(), "s.branch_id", branchID).
		OrderBy("s.created_at DESC", "s.id DESC").
		Offset(offset).
		Limit(limit))
	if err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

// ListAll returns every student in scope, used for exports
func (r *StudentRepository) ListAll(ctx context.Context, branchID *int64) ([]*models.Student, error) {
	return r.query(ctx, helpers.WhereBranch(r.selectStudents(), "s.branch_id", branchID).OrderBy("s.id ASC"))
}

func (r *StudentRepository) query(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Student, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

// Update saves a student's contact details and registering user. The branch never changes.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"full_name":     student.FullName,
			"email":         student.Email,
			"phone":         student.Phone,
			"registered_by": student.RegisteredBy,
			"updated_at":    time.Now(),
		}).
		Where(squirrel.Eq{"id": student.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&student.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrStudentNotFound
		}
		if mapped := mapStudentWriteError(err); mapped != nil {
			return mapped
		}
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}
	return nil
}

// HasApplications reports whether any application references the student
func (r *StudentRepository) HasApplications(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM applications WHERE student_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student applications: %w", err)
	}
	return exists, nil
}

// Delete removes a student without applications
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	hasApplications, err := r.HasApplications(ctx, id)
	if err != nil {
		return err
	}
	if hasApplications {
		return apperrors.ErrStudentHasApplications
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		// An application created after the check still blocks the delete
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentHasApplications
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
