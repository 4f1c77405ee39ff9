package domain

import (
	"context"
	"errors"
	"time"
)

// Stats summarizes an organization's tenancy.
type Stats struct {
	TotalUsers   int64 `json:"total_users"`
	ActiveUsers  int64 `json:"active_users"`
	TotalLeads   int64 `json:"total_leads"`
	MonthlyLeads int64 `json:"monthly_leads"`
}

type OrganizationView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain"`
	Settings  Settings  `json:"settings"`
	Stats     Stats     `json:"stats"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateSettingsRequest carries the submitted settings patch. Pointer
// fields distinguish "not submitted" from zero values; anything the
// client sent outside these fields has already been dropped at the
// boundary.
type UpdateSettingsRequest struct {
	AllowUserRegistration *bool
	MaxUsers              *int
	Features              *[]string
}

type Service interface {
	Get(ctx context.Context) (*OrganizationView, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*OrganizationView, error)
}

var (
	ErrNotFound        = errors.New("not_found")
	ErrInvalidMaxUsers = errors.New("invalid_max_users")
)
