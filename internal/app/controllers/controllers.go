// Package controllers handles HTTP request handling
package controllers

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/app/models/dto"
	"github.com/yigit/consultdesk/internal/app/services"
	"github.com/yigit/consultdesk/internal/middleware"
	"github.com/yigit/consultdesk/internal/pkg/helpers"
)

// AuthService is what AuthController needs from the auth service
type AuthService interface {
	Register(ctx context.Context, callerID *int64, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, actor *models.Actor) (*models.User, error)
}

// UserService is what UserController needs from the user service
type UserService interface {
	List(ctx context.Context, actor *models.Actor, requestedBranch *int64) ([]*models.User, error)
	Get(ctx context.Context, actor *models.Actor, id int64) (*models.User, error)
	Update(ctx context.Context, actor *models.Actor, id int64, req *dto.UpdateUserRequest) (*models.User, error)
	UpdateRole(ctx context.Context, actor *models.Actor, id int64, req *dto.UpdateRoleRequest) (*models.User, error)
	Delete(ctx context.Context, actor *models.Actor, id int64) error
	Roles() []dto.RoleResponse
}

// BranchService is what BranchController needs from the branch service
type BranchService interface {
	List(ctx context.Context, actor *models.Actor) ([]*models.Branch, error)
	Get(ctx context.Context, actor *models.Actor, id int64) (*models.Branch, error)
	Create(ctx context.Context, actor *models.Actor, req *dto.BranchRequest) (*models.Branch, error)
	Update(ctx context.Context, actor *models.Actor, id int64, req *dto.BranchRequest) (*models.Branch, error)
	Delete(ctx context.Context, actor *models.Actor, id int64) error
	Staff(ctx context.Context, actor *models.Actor, id int64) ([]*models.User, error)
}

// StudentService is what StudentController needs from the student service
type StudentService interface {
	List(ctx context.Context, actor *models.Actor, requestedBranch *int64, page, size int) ([]*models.Student, dto.PaginationInfo, error)
	Get(ctx context.Context, actor *models.Actor, id int64) (*models.Student, error)
	Create(ctx context.Context, actor *models.Actor, req *dto.CreateStudentRequest) (*models.Student, error)
	Update(ctx context.Context, actor *models.Actor, id int64, req *dto.UpdateStudentRequest) (*models.Student, error)
	Delete(ctx context.Context, actor *models.Actor, id int64) error
	Applications(ctx context.Context, actor *models.Actor, id int64) ([]*models.Application, error)
}

// ApplicationService is what ApplicationController needs from the application service
type ApplicationService interface {
	Create(ctx context.Context, actor *models.Actor, req *dto.CreateApplicationRequest) (*models.Application, error)
	Get(ctx context.Context, actor *models.Actor, id int64) (*models.ApplicationDetail, error)
	List(ctx context.Context, actor *models.Actor, filter models.ApplicationFilter) ([]*models.Application, dto.PaginationInfo, error)
	UpdateStatus(ctx context.Context, actor *models.Actor, id int64, rawStatus string) (*models.Application, error)
	Delete(ctx context.Context, actor *models.Actor, id int64) error
}

// DocumentService is what DocumentController needs from the document service
type DocumentService interface {
	Upload(ctx context.Context, actor *models.Actor, applicationID, documentID int64, fileHeader *multipart.FileHeader, rawExpiry *string) (*models.ApplicationDocument, error)
	ListByApplication(ctx context.Context, actor *models.Actor, applicationID int64) ([]*models.ApplicationDocument, error)
	UpdateStatus(ctx context.Context, actor *models.Actor, id int64, rawStatus string) (*models.ApplicationDocument, error)
	UpdateExpiry(ctx context.Context, actor *models.Actor, id int64, rawExpiry *string) (*models.ApplicationDocument, error)
	Expiring(ctx context.Context, actor *models.Actor, days int, requestedBranch *int64) ([]*models.ExpiringDocument, error)
	Delete(ctx context.Context, actor *models.Actor, id int64) error
	ListTypes(ctx context.Context, actor *models.Actor) ([]*models.DocumentType, error)
	CreateType(ctx context.Context, actor *models.Actor, docType *models.DocumentType) (*models.DocumentType, error)
	UpdateType(ctx context.Context, actor *models.Actor, id int64, docType *models.DocumentType) (*models.DocumentType, error)
}

// ChecklistService is what ChecklistController needs from the checklist service
type ChecklistService interface {
	List(ctx context.Context, actor *models.Actor) ([]*models.Checklist, error)
	Get(ctx context.Context, actor *models.Actor, id int64) (*models.Checklist, error)
	ListByCountry(ctx context.Context, actor *models.Actor, countryID int64) ([]*models.Checklist, error)
	Countries(ctx context.Context, actor *models.Actor) ([]models.Country, error)
	Create(ctx context.Context, actor *models.Actor, checklist *models.Checklist) (*models.Checklist, error)
	Update(ctx context.Context, actor *models.Actor, id int64, checklist *models.Checklist) (*models.Checklist, error)
	Delete(ctx context.Context, actor *models.Actor, id int64) error
}

// NotificationService is what NotificationController needs from the notification service
type NotificationService interface {
	List(ctx context.Context, actor *models.Actor, limit, offset uint64) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, actor *models.Actor, id int64) error
}

// ExpiryScanner runs one expiry reminder pass
type ExpiryScanner interface {
	Scan(ctx context.Context) (*services.ScanResult, error)
}

// DashboardService is what DashboardController needs from the dashboard service
type DashboardService interface {
	Stats(ctx context.Context, actor *models.Actor, requestedBranch *int64) (*models.DashboardStats, error)
	BranchComparison(ctx context.Context, actor *models.Actor) ([]models.BranchStats, error)
}

// BulkService is what BulkController needs from the bulk service
type BulkService interface {
	ImportStudents(ctx context.Context, actor *models.Actor, r io.Reader, requestedBranch *int64) (*dto.ImportResult, error)
	ExportStudents(ctx context.Context, actor *models.Actor, w io.Writer, requestedBranch *int64) error
	ExportApplications(ctx context.Context, actor *models.Actor, w io.Writer, requestedBranch *int64, status *models.ApplicationStatus) error
	ExportDocumentChecklist(ctx context.Context, actor *models.Actor, w io.Writer, applicationID int64) error
}

// idParam reads a positive path id or writes a 400
func idParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := helpers.ParseIDParam(ctx, name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return 0, false
	}
	return id, true
}

// branchQuery reads the optional branch filter, accepting both branchId and branch
func branchQuery(ctx *gin.Context) (*int64, bool) {
	branchID, err := helpers.ParseOptionalIDQuery(ctx, aliasedQuery(ctx, "branchId", "branch"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	return branchID, true
}

// aliasedQuery picks the query name the client actually sent
func aliasedQuery(ctx *gin.Context, name, alias string) string {
	if ctx.Query(name) == "" && ctx.Query(alias) != "" {
		return alias
	}
	return name
}

func respondOK(ctx *gin.Context, data interface{}, message string) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(data, message))
}

func respondCreated(ctx *gin.Context, data interface{}, message string) {
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(data, message))
}
