package models

// RoleType defines the user role type
type RoleType string

const (
	RoleSuperAdmin    RoleType = "super_admin"
	RoleAdmin         RoleType = "admin"
	RoleBranchManager RoleType = "branch_manager"
	RoleCounselor     RoleType = "counselor"
)

// AllRoles lists every role in descending order of privilege
var AllRoles = []RoleType{RoleSuperAdmin, RoleAdmin, RoleBranchManager, RoleCounselor}

// Valid reports whether r is one of the known roles
func (r RoleType) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleBranchManager, RoleCounselor:
		return true
	}
	return false
}

// Actor is the authenticated caller of an operation, refreshed from the database on every request
type Actor struct {
	UserID   int64
	Email    string
	Role     RoleType
	BranchID *int64
}

// BranchScoped is implemented by every entity that belongs to exactly one branch
type BranchScoped interface {
	EffectiveBranchID() int64
}
