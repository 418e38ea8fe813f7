package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/pkg/helpers"
	"golang.org/x/sync/errgroup"
)

const recentApplicationsLimit = 5

// DashboardRepository runs the aggregate queries behind the dashboard
type DashboardRepository struct {
	db   *pgxpool.Pool
	sb   squirrel.StatementBuilderType
	apps *ApplicationRepository
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{
		db:   db,
		sb:   statementBuilder(),
		apps: NewApplicationRepository(db),
	}
}

func (r *DashboardRepository) applicationsInScope(branchID *int64, columns ...string) squirrel.SelectBuilder {
	query := r.sb.Select(columns...).
		From("applications a").
		Join("students s ON s.id = a.student_id")
	return helpers.WhereBranch(query, "s.branch_id", branchID)
}

func (r *DashboardRepository) scalar(ctx context.Context, query squirrel.SelectBuilder, dest ...any) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build dashboard query: %w", err)
	}
	return r.db.QueryRow(ctx, sql, args...).Scan(dest...)
}

// Stats computes the dashboard overview. A nil branchID covers every branch.
// The independent aggregates run concurrently on the pool.
func (r *DashboardRepository) Stats(ctx context.Context, branchID *int64) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{BranchID: branchID}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		query := helpers.WhereBranch(r.sb.Select("COUNT(*)").From("students s"), "s.branch_id", branchID)
		if err := r.scalar(ctx, query, &stats.TotalStudents); err != nil {
			return fmt.Errorf("error counting students: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := r.scalar(ctx, r.applicationsInScope(branchID, "COUNT(*)"), &stats.TotalApplications); err != nil {
			return fmt.Errorf("error counting applications: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		sql, args, err := r.applicationsInScope(branchID, "a.status", "COUNT(*)").
			GroupBy("a.status").
			OrderBy("a.status").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build status breakdown query: %w", err)
		}
		rows, err := r.db.Query(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error querying status breakdown: %w", err)
		}
		stats.ApplicationsByStatus, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.StatusCount, error) {
			var sc models.StatusCount
			var status string
			err := row.Scan(&status, &sc.Count)
			sc.Status = models.ApplicationStatus(status)
			return sc, err
		})
		return err
	})

	g.Go(func() error {
		sql, args, err := r.applicationsInScope(branchID, "co.id", "co.name", "COUNT(*)").
			Join("courses c ON c.id = a.course_id").
			Join("universities un ON un.id = c.university_id").
			Join("countries co ON co.id = un.country_id").
			GroupBy("co.id", "co.name").
			OrderBy("COUNT(*) DESC", "co.name").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build country breakdown query: %w", err)
		}
		rows, err := r.db.Query(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error querying country breakdown: %w", err)
		}
		stats.ApplicationsByCountry, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CountryCount, error) {
			var cc models.CountryCount
			err := row.Scan(&cc.CountryID, &cc.CountryName, &cc.Count)
			return cc, err
		})
		return err
	})

	g.Go(func() error {
		sql, args, err := helpers.WhereBranch(r.apps.selectApplications(), "s.branch_id", branchID).
			OrderBy("a.submitted_at DESC NULLS LAST", "a.created_at DESC").
			Limit(recentApplicationsLimit).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build recent applications query: %w", err)
		}
		rows, err := r.db.Query(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error querying recent applications: %w", err)
		}
		defer rows.Close()

		stats.RecentApplications = []models.Application{}
		for rows.Next() {
			app, err := scanApplication(rows)
			if err != nil {
				return fmt.Errorf("error scanning recent application: %w", err)
			}
			stats.RecentApplications = append(stats.RecentApplications, *app)
		}
		return rows.Err()
	})

	g.Go(func() error {
		perApplication := r.applicationsInScope(branchID,
			"a.id",
			"COUNT(ad.id) AS total",
			"COUNT(ad.id) FILTER (WHERE ad.status = 'approved') AS approved",
			"COUNT(ad.id) FILTER (WHERE ad.status = 'pending') AS pending",
			"COUNT(ad.id) FILTER (WHERE ad.status = 'rejected') AS rejected",
		).
			LeftJoin("application_documents ad ON ad.application_id = a.id").
			GroupBy("a.id")

		query := r.sb.Select(
			"COUNT(*)",
			"COUNT(*) FILTER (WHERE x.total > 0 AND x.approved = x.total)",
			"COUNT(*) FILTER (WHERE x.pending > 0)",
			"COUNT(*) FILTER (WHERE x.rejected > 0)",
		).FromSelect(perApplication, "x")

		ds := &stats.DocumentStats
		if err := r.scalar(ctx, query, &ds.TotalApplications, &ds.CompleteApplications, &ds.PendingApplications, &ds.RejectedApplications); err != nil {
			return fmt.Errorf("error computing document stats: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// BranchComparison returns per-branch totals for every branch
func (r *DashboardRepository) BranchComparison(ctx context.Context) ([]models.BranchStats, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.name,
			(SELECT COUNT(*) FROM students s WHERE s.branch_id = b.id),
			COUNT(a.id),
			COUNT(a.id) FILTER (WHERE a.status = 'approved'),
			COUNT(a.id) FILTER (WHERE a.status = 'rejected'),
			(SELECT COUNT(*)
			   FROM application_documents ad
			   JOIN applications a2 ON a2.id = ad.application_id
			   JOIN students s2 ON s2.id = a2.student_id
			  WHERE s2.branch_id = b.id AND ad.status = 'approved')
		FROM branches b
		LEFT JOIN students s ON s.branch_id = b.id
		LEFT JOIN applications a ON a.student_id = s.id
		GROUP BY b.id, b.name
		ORDER BY b.name`)
	if err != nil {
		return nil, fmt.Errorf("error querying branch comparison: %w", err)
	}
	stats, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.BranchStats, error) {
		var bs models.BranchStats
		err := row.Scan(&bs.BranchID, &bs.BranchName, &bs.TotalStudents, &bs.TotalApplications,
			&bs.ApprovedApplications, &bs.RejectedApplications, &bs.CompleteDocuments)
		return bs, err
	})
	if err != nil {
		return nil, fmt.Errorf("error collecting branch comparison: %w", err)
	}
	return stats, nil
}
