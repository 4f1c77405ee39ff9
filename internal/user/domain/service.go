package domain

import (
	"context"
	"errors"

	"github.com/leadhub/leadhub/internal/rbac"
)

type CreateUserRequest struct {
	Email    string
	Password string
	Name     string
	Role     rbac.Role
	// OrganizationID is only honored when the caller is an
	// administrator; tenant callers always create into their own
	// organization.
	OrganizationID string
}

type UpdatePermissionsRequest struct {
	UserID string
	Grants []rbac.Grant
}

type Service interface {
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, req CreateUserRequest) (*User, error)
	// UpdatePermissions replaces the target's entire grant list wholesale.
	UpdatePermissions(ctx context.Context, req UpdatePermissionsRequest) (*User, error)
	Deactivate(ctx context.Context, id string) error
}

var (
	ErrInvalidEmail   = errors.New("invalid_email")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidRole    = errors.New("invalid_role")
	ErrInvalidID      = errors.New("invalid_id")
	ErrWeakPassword   = errors.New("weak_password")
	ErrEmailExists    = errors.New("email already exists")
	ErrRoleNotAllowed = errors.New("role not allowed")
	ErrNotFound       = errors.New("not_found")

	ErrInvalidOrganization = errors.New("invalid_organization")
)
