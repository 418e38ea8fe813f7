package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/consultdesk/internal/app/models"
)

// AuditRepository writes the audit trail of bulk operations
type AuditRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Create inserts one audit log row
func (r *AuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	sql, args, err := r.sb.Insert("audit_logs").
		Columns("user_id", "action", "entity_type", "entity_id", "details", "branch_id").
		Values(entry.UserID, entry.Action, entry.EntityType, entry.EntityID, entry.Details, entry.BranchID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create audit log query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return fmt.Errorf("error creating audit log: %w", err)
	}
	return nil
}
