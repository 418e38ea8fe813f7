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
	"github.com/yigit/consultdesk/internal/pkg/logger"
)

// BranchRepository handles branch database operations
type BranchRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewBranchRepository creates a new BranchRepository
func NewBranchRepository(db *pgxpool.Pool) *BranchRepository {
	return &BranchRepository{
		db: db,
		sb: statementBuilder(),
	}
}

var branchColumns = []string{"id", "name", "address", "phone", "email", "created_at"}

func scanBranch(row rowScanner) (*models.Branch, error) {
	branch := &models.Branch{}
	err := row.Scan(&branch.ID, &branch.Name, &branch.Address, &branch.Phone, &branch.Email, &branch.CreatedAt)
	return branch, err
}

// Create inserts a branch
func (r *BranchRepository) Create(ctx context.Context, branch *models.Branch) error {
	sql, args, err := r.sb.Insert("branches").
		Columns("name", "address", "phone", "email").
		Values(branch.Name, branch.Address, branch.Phone, branch.Email).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create branch query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&branch.ID, &branch.CreatedAt); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, "A branch with this name already exists")
		}
		logger.Error().Err(err).Msg("Error executing create branch query")
		return fmt.Errorf("error creating branch: %w", err)
	}
	return nil
}

// GetByID retrieves a branch by ID
func (r *BranchRepository) GetByID(ctx context.Context, id int64) (*models.Branch, error) {
	sql, args, err := r.sb.Select(branchColumns...).
		From("branches").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get branch query: %w", err)
	}

	branch, err := scanBranch(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBranchNotFound
		}
		logger.Error().Err(err).Int64("branchID", id).Msg("Error scanning branch row")
		return nil, fmt.Errorf("error getting branch: %w", err)
	}
	return branch, nil
}

// Exists reports whether a branch with the id exists
func (r *BranchRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM branches WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking branch: %w", err)
	}
	return exists, nil
}

// List returns branches ordered by name, optionally only one
func (r *BranchRepository) List(ctx context.Context, onlyID *int64) ([]*models.Branch, error) {
	query := r.sb.Select(branchColumns...).From("branches").OrderBy("name ASC")
	if onlyID != nil {
		query = query.Where(squirrel.Eq{"id": *onlyID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list branches query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list branches query")
		return nil, fmt.Errorf("error querying branches: %w", err)
	}
	defer rows.Close()

	branches := []*models.Branch{}
	for rows.Next() {
		branch, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning branch row: %w", err)
		}
		branches = append(branches, branch)
	}
	return branches, rows.Err()
}

// Update saves a branch's details
func (r *BranchRepository) Update(ctx context.Context, branch *models.Branch) error {
	sql, args, err := r.sb.Update("branches").
		SetMap(map[string]interface{}{
			"name":    branch.Name,
			"address": branch.Address,
			"phone":   branch.Phone,
			"email":   branch.Email,
		}).
		Where(squirrel.Eq{"id": branch.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update branch query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, "A branch with this name already exists")
		}
		logger.Error().Err(err).Int64("branchID", branch.ID).Msg("Error executing update branch query")
		return fmt.Errorf("error updating branch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrBranchNotFound
	}
	return nil
}

// Delete removes a branch that owns no users and no students.
// The check and the delete share one transaction so nothing is removed when the guard fails.
func (r *BranchRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var locked int64
		err := tx.QueryRow(ctx, `SELECT id FROM branches WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrBranchNotFound
			}
			return fmt.Errorf("error locking branch: %w", err)
		}

		var hasRelations bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM users WHERE branch_id = $1)
			    OR EXISTS (SELECT 1 FROM students WHERE branch_id = $1)`, id).Scan(&hasRelations)
		if err != nil {
			return fmt.Errorf("error checking branch relations: %w", err)
		}
		if hasRelations {
			return apperrors.ErrBranchHasRelations
		}

		if _, err := tx.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id); err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrBranchHasRelations
			}
			logger.Error().Err(err).Int64("branchID", id).Msg("Error executing delete branch query")
			return fmt.Errorf("error deleting branch: %w", err)
		}
		return nil
	})
}
