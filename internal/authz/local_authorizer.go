package authz

import (
	"context"
	"slices"

	"tour-booking/internal/models"
)

// LocalAuthorizer implements Authorizer with a static permission table.
type LocalAuthorizer struct {
	permissions map[string][]string
}

// NewLocalAuthorizer creates a new LocalAuthorizer.
func NewLocalAuthorizer() *LocalAuthorizer {
	return &LocalAuthorizer{permissions: rolePermissions}
}

var _ Authorizer = (*LocalAuthorizer)(nil)

// rolePermissions maps actions to the roles that can perform them.
var rolePermissions = map[string][]string{
	ActionTourWrite:     {models.RoleAdmin, models.RoleLeadGuide},
	ActionTourPlan:      {models.RoleAdmin, models.RoleLeadGuide, models.RoleGuide},
	ActionUserManage:    {models.RoleAdmin},
	ActionReviewCreate:  {models.RoleUser},
	ActionReviewModify:  {models.RoleUser, models.RoleAdmin},
	ActionBookingManage: {models.RoleAdmin, models.RoleLeadGuide},
}

// CanPerform checks the role against the permission table. Unknown actions
// are denied.
func (a *LocalAuthorizer) CanPerform(_ context.Context, role, action string) (bool, error) {
	allowedRoles, exists := a.permissions[action]
	if !exists {
		return false, nil
	}
	return slices.Contains(allowedRoles, role), nil
}
