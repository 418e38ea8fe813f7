package services

import (
	"context"
	"time"

	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/app/repositories"
)

// Stores consumed by the services. The repositories package satisfies them
// against PostgreSQL; tests satisfy them in memory.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, branchID *int64) ([]*models.User, error)
	ListIDsByBranch(ctx context.Context, branchID int64) ([]int64, error)
	Update(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, id int64, role models.RoleType, branchID *int64) error
	CountGlobal(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type BranchStore interface {
	Create(ctx context.Context, branch *models.Branch) error
	GetByID(ctx context.Context, id int64) (*models.Branch, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, onlyID *int64) ([]*models.Branch, error)
	Update(ctx context.Context, branch *models.Branch) error
	Delete(ctx context.Context, id int64) error
}

type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, branchID *int64, page, size int) ([]*models.Student, int64, error)
	ListAll(ctx context.Context, branchID *int64) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

type ApplicationStore interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	List(ctx context.Context, filter models.ApplicationFilter) ([]*models.Application, int64, error)
	SaveStatus(ctx context.Context, app *models.Application) error
	Delete(ctx context.Context, id int64) ([]string, error)
}

type CourseStore interface {
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	GetCountry(ctx context.Context, id int64) (*models.Country, error)
	ListCountries(ctx context.Context) ([]models.Country, error)
}

type DocumentStore interface {
	GetType(ctx context.Context, id int64) (*models.DocumentType, error)
	ListTypes(ctx context.Context) ([]*models.DocumentType, error)
	CreateType(ctx context.Context, docType *models.DocumentType) error
	UpdateType(ctx context.Context, docType *models.DocumentType) error
	GetByID(ctx context.Context, id int64) (*models.ApplicationDocument, error)
	ListByApplication(ctx context.Context, applicationID int64) ([]*models.ApplicationDocument, error)
	Upsert(ctx context.Context, doc *models.ApplicationDocument) (*string, error)
	UpdateStatus(ctx context.Context, id int64, status models.DocumentStatus) error
	UpdateExpiry(ctx context.Context, id int64, expiry *time.Time) error
	Delete(ctx context.Context, id int64) (string, error)
	ListExpiring(ctx context.Context, q repositories.ExpiringQuery) ([]*models.ExpiringDocument, error)
	MarkExpiryNotified(ctx context.Context, id int64) (bool, error)
}

type ChecklistStore interface {
	List(ctx context.Context) ([]*models.Checklist, error)
	ListByCountry(ctx context.Context, countryID int64) ([]*models.Checklist, error)
	GetByID(ctx context.Context, id int64) (*models.Checklist, error)
	Requirements(ctx context.Context, countryID int64) ([]models.ChecklistItem, error)
	Create(ctx context.Context, checklist *models.Checklist) error
	Update(ctx context.Context, checklist *models.Checklist) error
	Delete(ctx context.Context, id int64) error
}

type NotificationStore interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID int64, limit, offset uint64) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id, userID int64) error
}

type DashboardStore interface {
	Stats(ctx context.Context, branchID *int64) (*models.DashboardStats, error)
	BranchComparison(ctx context.Context) ([]models.BranchStats, error)
}

type AuditStore interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

// NotificationPublisher pushes stored notifications to connected clients
type NotificationPublisher interface {
	PublishNotification(notification *models.Notification)
}

type noopPublisher struct{}

func (noopPublisher) PublishNotification(*models.Notification) {}
