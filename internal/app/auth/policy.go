package auth

import (
	"fmt"

	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
)

// Capability names an operation class guarded by the access policy
type Capability string

const (
	CapReadRecords         Capability = "read_records"
	CapWriteRecords        Capability = "write_records"
	CapReviewDocuments     Capability = "review_documents"
	CapManageUsers         Capability = "manage_users"
	CapCreateGlobalUsers   Capability = "create_global_users"
	CapManageBranches      Capability = "manage_branches"
	CapManageChecklists    Capability = "manage_checklists"
	CapManageDocumentTypes Capability = "manage_document_types"
	CapViewGlobalAnalytics Capability = "view_global_analytics"
	CapBulkTransfer        Capability = "bulk_transfer"
	CapTriggerExpiryScan   Capability = "trigger_expiry_scan"
)

// Scope is the ceiling of branches a role can see
type Scope string

const (
	ScopeGlobal Scope = "global"
	ScopeBranch Scope = "branch"
)

// RolePolicy is the declarative entry for one role
type RolePolicy struct {
	Scope        Scope        `json:"scope"`
	Capabilities []Capability `json:"capabilities"`
}

// Allows reports whether the policy grants the capability
func (p RolePolicy) Allows(capability Capability) bool {
	for _, c := range p.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

var globalCapabilities = []Capability{
	CapReadRecords,
	CapWriteRecords,
	CapReviewDocuments,
	CapManageUsers,
	CapCreateGlobalUsers,
	CapManageBranches,
	CapManageChecklists,
	CapManageDocumentTypes,
	CapViewGlobalAnalytics,
	CapBulkTransfer,
	CapTriggerExpiryScan,
}

// policies is the single capability table every guard reads
var policies = map[models.RoleType]RolePolicy{
	models.RoleSuperAdmin: {Scope: ScopeGlobal, Capabilities: globalCapabilities},
	models.RoleAdmin:      {Scope: ScopeGlobal, Capabilities: globalCapabilities},
	models.RoleBranchManager: {Scope: ScopeBranch, Capabilities: []Capability{
		CapReadRecords,
		CapWriteRecords,
		CapReviewDocuments,
		CapBulkTransfer,
	}},
	models.RoleCounselor: {Scope: ScopeBranch, Capabilities: []Capability{
		CapReadRecords,
		CapWriteRecords,
		CapReviewDocuments,
	}},
}

// PolicyFor returns the policy entry of a role
func PolicyFor(role models.RoleType) (RolePolicy, bool) {
	policy, ok := policies[role]
	return policy, ok
}

// IsGlobal reports whether the role sees every branch
func IsGlobal(role models.RoleType) bool {
	policy, ok := PolicyFor(role)
	return ok && policy.Scope == ScopeGlobal
}

// Authorize checks that the actor's role grants the capability
func Authorize(actor *models.Actor, capability Capability) error {
	if actor == nil {
		return apperrors.ErrUnauthenticated
	}
	policy, ok := PolicyFor(actor.Role)
	if !ok || !policy.Allows(capability) {
		return apperrors.NewForbiddenError(fmt.Sprintf("role %s is not permitted to %s", actor.Role, capability))
	}
	return nil
}

// CheckBranchAccess checks that the actor may touch data of the given branch
func CheckBranchAccess(actor *models.Actor, branchID int64) error {
	if actor == nil {
		return apperrors.ErrUnauthenticated
	}
	if IsGlobal(actor.Role) {
		return nil
	}
	if actor.BranchID == nil || *actor.BranchID != branchID {
		return apperrors.NewForbiddenError("not authorized to access data of this branch")
	}
	return nil
}

// Guard is the single check run before every branch-scoped read or mutation
func Guard(actor *models.Actor, capability Capability, entity models.BranchScoped) error {
	if err := Authorize(actor, capability); err != nil {
		return err
	}
	if entity == nil {
		return nil
	}
	return CheckBranchAccess(actor, entity.EffectiveBranchID())
}

// ScopeBranchFilter narrows a list query to what the actor may see.
// Global actors keep the requested filter (nil means all branches); everyone
// else is pinned to their own branch regardless of the request.
func ScopeBranchFilter(actor *models.Actor, requested *int64) (*int64, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if IsGlobal(actor.Role) {
		return requested, nil
	}
	if actor.BranchID == nil {
		return nil, apperrors.NewForbiddenError("user is not assigned to a branch")
	}
	own := *actor.BranchID
	return &own, nil
}

// AuthorizeRoleAssignment checks that the actor may hand out the given role
func AuthorizeRoleAssignment(actor *models.Actor, role models.RoleType) error {
	if !role.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown role %q", role))
	}
	if IsGlobal(role) {
		return Authorize(actor, CapCreateGlobalUsers)
	}
	return Authorize(actor, CapManageUsers)
}

// Roles returns the capability table in a stable order
func Roles() map[models.RoleType]RolePolicy {
	out := make(map[models.RoleType]RolePolicy, len(policies))
	for _, role := range models.AllRoles {
		out[role] = policies[role]
	}
	return out
}
