// Package authz maps user roles to the actions they may perform.
package authz

import "context"

// Action constants define the authorization actions.
const (
	ActionTourWrite     = "tour:write"
	ActionTourPlan      = "tour:plan"
	ActionUserManage    = "user:manage"
	ActionReviewCreate  = "review:create"
	ActionReviewModify  = "review:modify"
	ActionBookingManage = "booking:manage"
)

// Authorizer defines the interface for authorization checks.
type Authorizer interface {
	// CanPerform reports whether a user with the given role may perform action.
	CanPerform(ctx context.Context, role, action string) (bool, error)
}
