package domain

import (
	"context"
	"errors"
)

type CreateLeadRequest struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   string
	Status    Status
	Source    string
	Value     int64
	Notes     string
	// AssignedTo defaults to the creator when empty.
	AssignedTo string
}

type UpdateLeadRequest struct {
	ID        string
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Company   *string
	Status    *Status
	Source    *string
	Value     *int64
	Notes     *string
}

type AssignLeadRequest struct {
	ID         string
	AssignedTo string
}

// Analytics aggregates the actor's visible pipeline.
type Analytics struct {
	TotalLeads     int64            `json:"total_leads"`
	WonLeads       int64            `json:"won_leads"`
	ConversionRate int64            `json:"conversion_rate"`
	TotalValue     int64            `json:"total_value"`
	AvgDealSize    int64            `json:"avg_deal_size"`
	ByStatus       map[Status]int64 `json:"by_status"`
	BySource       map[string]int64 `json:"by_source"`
	BestSource     string           `json:"best_source"`
	WeeklyLeads    int64            `json:"weekly_leads"`
	ActiveUsers    int64            `json:"active_users"`
}

type Service interface {
	List(ctx context.Context) ([]Lead, error)
	GetByID(ctx context.Context, id string) (*Lead, error)
	Create(ctx context.Context, req CreateLeadRequest) (*Lead, error)
	Update(ctx context.Context, req UpdateLeadRequest) (*Lead, error)
	Delete(ctx context.Context, id string) error
	Assign(ctx context.Context, req AssignLeadRequest) (*Lead, error)
	Analytics(ctx context.Context) (*Analytics, error)
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidSource   = errors.New("invalid_source")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidAssignee = errors.New("invalid_assignee")
	ErrNotFound        = errors.New("not_found")

	ErrInvalidOrganization = errors.New("invalid_organization")
)
