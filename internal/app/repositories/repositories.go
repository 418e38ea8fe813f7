package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	BranchRepository       *BranchRepository
	StudentRepository      *StudentRepository
	ApplicationRepository  *ApplicationRepository
	DocumentRepository     *DocumentRepository
	ChecklistRepository    *ChecklistRepository
	NotificationRepository *NotificationRepository
	CourseRepository       *CourseRepository
	DashboardRepository    *DashboardRepository
	AuditRepository        *AuditRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		BranchRepository:       NewBranchRepository(db),
		StudentRepository:      NewStudentRepository(db),
		ApplicationRepository:  NewApplicationRepository(db),
		DocumentRepository:     NewDocumentRepository(db),
		ChecklistRepository:    NewChecklistRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		CourseRepository:       NewCourseRepository(db),
		DashboardRepository:    NewDashboardRepository(db),
		AuditRepository:        NewAuditRepository(db),
	}
}

// rowScanner is satisfied by pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
