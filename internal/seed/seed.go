package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/yigit/consultdesk/internal/app/models"
	appRepos "github.com/yigit/consultdesk/internal/app/repositories"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
	jwtauth "github.com/yigit/consultdesk/internal/pkg/auth"
)

const (
	DefaultBranchName    = "Head Office"
	DefaultAdminEmail    = "admin@consultdesk.local"
	DefaultAdminPassword = "Admin123!"
)

// Options overrides the default administrator credentials
type Options struct {
	AdminEmail    string
	AdminPassword string
}

type documentTypeSeed struct {
	name           string
	description    string
	validityMonths int
}

var defaultDocumentTypes = []documentTypeSeed{
	{name: "Passport", description: "Valid machine readable passport", validityMonths: 120},
	{name: "Bank Statement", description: "Recent bank statement showing sufficient funds", validityMonths: 3},
	{name: "Transcript", description: "Official academic transcript"},
	{name: "IELTS", description: "IELTS test report form", validityMonths: 24},
}

// BranchStore is the branch persistence the seeder needs
type BranchStore interface {
	List(ctx context.Context, onlyID *int64) ([]*appModels.Branch, error)
	Create(ctx context.Context, branch *appModels.Branch) error
}

// UserStore is the user persistence the seeder needs
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*appModels.User, error)
	Create(ctx context.Context, user *appModels.User) error
}

// DocumentTypeStore is the document type persistence the seeder needs
type DocumentTypeStore interface {
	ListTypes(ctx context.Context) ([]*appModels.DocumentType, error)
	CreateType(ctx context.Context, docType *appModels.DocumentType) error
}

// Stores is what the seeder needs from the repositories
type Stores struct {
	Branches  BranchStore
	Users     UserStore
	Documents DocumentTypeStore
}

// CreateDefaultData creates the default branch, super admin and document types when missing
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, opts Options, lgr zerolog.Logger) error {
	repos := appRepos.NewRepositories(dbPool)
	return Run(ctx, Stores{
		Branches:  repos.BranchRepository,
		Users:     repos.UserRepository,
		Documents: repos.DocumentRepository,
	}, opts, lgr)
}

// Run seeds through the given stores. Every step runs; errors are collected.
func Run(ctx context.Context, stores Stores, opts Options, lgr zerolog.Logger) error {
	if opts.AdminEmail == "" {
		opts.AdminEmail = DefaultAdminEmail
	}
	if opts.AdminPassword == "" {
		opts.AdminPassword = DefaultAdminPassword
	}

	lgr.Info().Msg("Checking/Creating default data (branch, administrator, document types)...")
	var finalErr error

	if err := ensureDefaultBranch(ctx, stores.Branches, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error creating default branch")
		finalErr = errors.Join(finalErr, err)
	}
	if err := ensureAdmin(ctx, stores.Users, opts, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin user")
		finalErr = errors.Join(finalErr, err)
	}
	if err := ensureDocumentTypes(ctx, stores.Documents, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error creating default document types")
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func ensureDefaultBranch(ctx context.Context, branches BranchStore, lgr zerolog.Logger) error {
	existing, err := branches.List(ctx, nil)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		lgr.Info().Int("branches", len(existing)).Msg("Branches already exist, skipping default branch")
		return nil
	}

	branch := &appModels.Branch{Name: DefaultBranchName}
	if err := branches.Create(ctx, branch); err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		return err
	}
	lgr.Info().Int64("branchID", branch.ID).Msg("Default branch created")
	return nil
}

func ensureAdmin(ctx context.Context, users UserStore, opts Options, lgr zerolog.Logger) error {
	_, err := users.GetByEmail(ctx, opts.AdminEmail)
	if err == nil {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	hashed, err := jwtauth.HashPassword(opts.AdminPassword)
	if err != nil {
		return err
	}
	admin := &appModels.User{
		FullName: "System Administrator",
		Email:    strings.ToLower(opts.AdminEmail),
		Password: hashed,
		Role:     appModels.RoleSuperAdmin,
	}
	if err := users.Create(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		return err
	}
	lgr.Info().Int64("adminID", admin.ID).Str("email", admin.Email).Msg("Default admin user created successfully")
	return nil
}

func ensureDocumentTypes(ctx context.Context, documents DocumentTypeStore, lgr zerolog.Logger) error {
	existing, err := documents.ListTypes(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(existing))
	for _, t := range existing {
		known[strings.ToLower(t.Name)] = true
	}

	var finalErr error
	for _, def := range defaultDocumentTypes {
		def := def
		if known[strings.ToLower(def.name)] {
			continue
		}
		docType := &appModels.DocumentType{
			Name:        def.name,
			Description: &def.description,
			HasExpiry:   def.validityMonths > 0,
		}
		if def.validityMonths > 0 {
			months := def.validityMonths
			docType.ValidityPeriodMonths = &months
		}
		if err := documents.CreateType(ctx, docType); err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Str("documentType", def.name).Msg("Default document type created")
	}
	return finalErr
}
