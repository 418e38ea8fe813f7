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

// ChecklistRepository handles country checklists and their items
type ChecklistRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewChecklistRepository creates a new ChecklistRepository
func NewChecklistRepository(db *pgxpool.Pool) *ChecklistRepository {
	return &ChecklistRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func (r *ChecklistRepository) selectChecklists() squirrel.SelectBuilder {
	return r.sb.Select("cl.id", "cl.country_id", "co.name", "cl.name", "cl.created_by", "cl.created_at").
		From("checklists cl").
		Join("countries co ON co.id = cl.country_id")
}

func (r *ChecklistRepository) queryChecklists(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Checklist, error) {
	sql, args, err := query.OrderBy("co.name ASC", "cl.name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list checklists query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list checklists query")
		return nil, fmt.Errorf("error querying checklists: %w", err)
	}
	defer rows.Close()

	checklists := []*models.Checklist{}
	byID := map[int64]*models.Checklist{}
	for rows.Next() {
		cl := &models.Checklist{Items: []models.ChecklistItem{}}
		if err := rows.Scan(&cl.ID, &cl.CountryID, &cl.CountryName, &cl.Name, &cl.CreatedBy, &cl.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning checklist row: %w", err)
		}
		checklists = append(checklists, cl)
		byID[cl.ID] = cl
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating checklist rows: %w", err)
	}
	if len(checklists) == 0 {
		return checklists, nil
	}

	ids := make([]int64, 0, len(checklists))
	for _, cl := range checklists {
		ids = append(ids, cl.ID)
	}
	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if cl, ok := byID[item.ChecklistID]; ok {
			cl.Items = append(cl.Items, item)
		}
	}
	return checklists, nil
}

func (r *ChecklistRepository) itemsFor(ctx context.Context, checklistIDs []int64) ([]models.ChecklistItem, error) {
	sql, args, err := r.sb.Select("ci.id", "ci.checklist_id", "ci.document_id", "d.name", "ci.required").
		From("checklist_items ci").
		Join("documents d ON d.id = ci.document_id").
		Where(squirrel.Eq{"ci.checklist_id": checklistIDs}).
		OrderBy("ci.checklist_id", "d.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build checklist items query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying checklist items: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ChecklistItem, error) {
		var item models.ChecklistItem
		err := row.Scan(&item.ID, &item.ChecklistID, &item.DocumentID, &item.DocumentName, &item.Required)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("error collecting checklist items: %w", err)
	}
	return items, nil
}

// List returns every checklist with its items
func (r *ChecklistRepository) List(ctx context.Context) ([]*models.Checklist, error) {
	return r.queryChecklists(ctx, r.selectChecklists())
}

// ListByCountry returns the checklists of one destination country
func (r *ChecklistRepository) ListByCountry(ctx context.Context, countryID int64) ([]*models.Checklist, error) {
	return r.queryChecklists(ctx, r.selectChecklists().Where(squirrel.Eq{"cl.country_id": countryID}))
}

// GetByID retrieves a checklist with its items
func (r *ChecklistRepository) GetByID(ctx context.Context, id int64) (*models.Checklist, error) {
	checklists, err := r.queryChecklists(ctx, r.selectChecklists().Where(squirrel.Eq{"cl.id": id}))
	if err != nil {
		return nil, err
	}
	if len(checklists) == 0 {
		return nil, apperrors.ErrChecklistNotFound
	}
	return checklists[0], nil
}

// Requirements merges every checklist of a country into one entry per document type.
// A document is required when any checklist requires it.
func (r *ChecklistRepository) Requirements(ctx context.Context, countryID int64) ([]models.ChecklistItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT d.id, d.name, BOOL_OR(ci.required)
		FROM checklists cl
		JOIN checklist_items ci ON ci.checklist_id = cl.id
		JOIN documents d ON d.id = ci.document_id
		WHERE cl.country_id = $1
		GROUP BY d.id, d.name
		ORDER BY d.name`, countryID)
	if err != nil {
		return nil, fmt.Errorf("error querying checklist requirements: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ChecklistItem, error) {
		var item models.ChecklistItem
		err := row.Scan(&item.DocumentID, &item.DocumentName, &item.Required)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("error collecting checklist requirements: %w", err)
	}
	return items, nil
}

func insertItems(ctx context.Context, tx pgx.Tx, sb squirrel.StatementBuilderType, checklistID int64, items []models.ChecklistItem) error {
	if len(items) == 0 {
		return nil
	}
	insert := sb.Insert("checklist_items").Columns("checklist_id", "document_id", "required")
	for _, item := range items {
		insert = insert.Values(checklistID, item.DocumentID, item.Required)
	}
	sql, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert checklist items query: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return err
	}
	return nil
}

func mapChecklistWriteError(err error) error {
	switch {
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.NewResourceNotFoundError("Country or document type not found")
	case dberrors.IsUniqueViolation(err):
		return apperrors.NewBadRequestError("A document type is listed more than once")
	}
	return err
}

// Create inserts a checklist and its items in one transaction
func (r *ChecklistRepository) Create(ctx context.Context, checklist *models.Checklist) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO checklists (country_id, name, created_by)
			VALUES ($1, $2, $3)
			RETURNING id, created_at`,
			checklist.CountryID, checklist.Name, checklist.CreatedBy,
		).Scan(&checklist.ID, &checklist.CreatedAt)
		if err != nil {
			return err
		}
		return insertItems(ctx, tx, r.sb, checklist.ID, checklist.Items)
	})
	if err != nil {
		logger.Error().Err(err).Msg("Checklist create rolled back")
		return mapChecklistWriteError(err)
	}
	return nil
}

// Update replaces a checklist's header and items in one transaction
func (r *ChecklistRepository) Update(ctx context.Context, checklist *models.Checklist) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE checklists SET country_id = $1, name = $2 WHERE id = $3`,
			checklist.CountryID, checklist.Name, checklist.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrChecklistNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM checklist_items WHERE checklist_id = $1`, checklist.ID); err != nil {
			return err
		}
		return insertItems(ctx, tx, r.sb, checklist.ID, checklist.Items)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrChecklistNotFound) {
			return err
		}
		logger.Error().Err(err).Int64("checklistID", checklist.ID).Msg("Checklist update rolled back")
		return mapChecklistWriteError(err)
	}
	return nil
}

// Delete removes a checklist and its items in one transaction
func (r *ChecklistRepository) Delete(ctx context.Context, id int64) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM checklist_items WHERE checklist_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM checklists WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrChecklistNotFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, apperrors.ErrChecklistNotFound) {
		logger.Error().Err(err).Int64("checklistID", id).Msg("Checklist delete rolled back")
		return fmt.Errorf("error deleting checklist: %w", err)
	}
	return err
}
