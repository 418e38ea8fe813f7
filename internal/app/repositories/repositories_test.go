package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yigit/consultdesk/internal/app/migrations"
	"github.com/yigit/consultdesk/internal/app/models"
)

// testDatabaseURLEnv points the repository tests at a disposable PostgreSQL database
const testDatabaseURLEnv = "CONSULTDESK_TEST_DATABASE_URL"

// newTestPool migrates the test database and empties every table
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv(testDatabaseURLEnv)
	if url == "" {
		t.Skipf("%s not set, skipping repository tests", testDatabaseURLEnv)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	migrator := migrations.NewMigrator(pool, zerolog.Nop())
	require.NoError(t, migrator.MigrateFromDirectory(ctx, filepath.Join("..", "..", "..", "migrations")))

	_, err = pool.Exec(ctx, `
		TRUNCATE audit_logs, notifications, application_documents, checklist_items, checklists,
			applications, students, documents, courses, universities, countries, users, branches
		RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

type applicationFixture struct {
	branch      *models.Branch
	student     *models.Student
	application *models.Application
	docType     *models.DocumentType
}

// seedApplication creates a branch, student, course and draft application plus one document type
func seedApplication(t *testing.T, pool *pgxpool.Pool) applicationFixture {
	t.Helper()
	ctx := context.Background()

	branch := &models.Branch{Name: "Kathmandu"}
	require.NoError(t, NewBranchRepository(pool).Create(ctx, branch))

	student := &models.Student{FullName: "Sita Sharma", Email: "sita@example.com", BranchID: branch.ID}
	require.NoError(t, NewStudentRepository(pool).Create(ctx, student))

	var courseID int64
	err := pool.QueryRow(ctx, `
		WITH country AS (INSERT INTO countries (name) VALUES ('Australia') RETURNING id),
		     uni AS (INSERT INTO universities (name, country_id) SELECT 'Monash', id FROM country RETURNING id)
		INSERT INTO courses (name, level, university_id) SELECT 'Nursing', 'Bachelor', id FROM uni
		RETURNING id`).Scan(&courseID)
	require.NoError(t, err)

	app := &models.Application{StudentID: student.ID, CourseID: courseID, Status: models.ApplicationStatusDraft}
	require.NoError(t, NewApplicationRepository(pool).Create(ctx, app))

	months := 12
	docType := &models.DocumentType{Name: "Passport", HasExpiry: true, ValidityPeriodMonths: &months}
	require.NoError(t, NewDocumentRepository(pool).CreateType(ctx, docType))

	return applicationFixture{branch: branch, student: student, application: app, docType: docType}
}

func uploadFor(f applicationFixture, filePath string, expiry *time.Time) *models.ApplicationDocument {
	return &models.ApplicationDocument{
		ApplicationID: f.application.ID,
		DocumentID:    f.docType.ID,
		FilePath:      filePath,
		UploadedAt:    time.Now().UTC(),
		ExpiryDate:    expiry,
	}
}

func countRows(t *testing.T, pool *pgxpool.Pool, sql string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(context.Background(), sql, args...).Scan(&n))
	return n
}
