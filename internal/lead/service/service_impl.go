package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/leadhub/leadhub/internal/actorctx"
	"github.com/leadhub/leadhub/internal/lead/domain"
	"github.com/leadhub/leadhub/internal/rbac"
	userdomain "github.com/leadhub/leadhub/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	UserRepo userdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	userRepo userdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("lead.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		userRepo: p.UserRepo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Lead, error) {
	actor, _ := actorctx.ActorFromContext(ctx)
	if err := rbac.Gate(actor, rbac.ResourceLeads, rbac.ActionView); err != nil {
		return nil, err
	}

	filter := rbac.ScopeFilter(actor, rbac.ResourceLeads)
	return s.repo.List(ctx, s.db, filter)
}

func (s *Service) GetByID(ctx context.Context, rawID string) (*domain.Lead, error) {
	actor, _ := actorctx.ActorFromContext(ctx)
	if err := rbac.Gate(actor, rbac.ResourceLeads, rbac.ActionView); err != nil {
		return nil, err
	}

	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	filter := rbac.ScopeFilter(actor, rbac.ResourceLeads)
	lead, err := s.repo.FindByID(ctx, s.db, filter, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	return lead, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateLeadRequest) (*domain.Lead, error) {
	actor, _ := actorctx.ActorFromContext(ctx)
	if err := rbac.Gate(actor, rbac.ResourceLeads, rbac.ActionCreate); err != nil {
		return nil, err
	}
	if actor.OrgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if firstName == "" || lastName == "" {
		return nil, domain.ErrInvalidName
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}
	source := strings.TrimSpace(req.Source)
	if source == "" {
		return nil, domain.ErrInvalidSource
	}

	status := req.Status
	if status == "" {
		status = domain.StatusNew
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	assignedTo := actor.ID
	if strings.TrimSpace(req.AssignedTo) != "" {
		target, err := s.resolveAssignee(ctx, actor.OrgID, req.AssignedTo)
		if err != nil {
			return nil, err
		}
		assignedTo = target
	}

	now := time.Now().UTC()
	lead := domain.Lead{
		ID:         s.genID.Generate(),
		FirstName:  firstName,
		LastName:   lastName,
		Email:      email,
		Phone:      strings.TrimSpace(req.Phone),
		Company:    strings.TrimSpace(req.Company),
		Status:     status,
		Source:     source,
		Value:      req.Value,
		Notes:      req.Notes,
		AssignedTo: assignedTo,
		OrgID:      actor.OrgID,
		CreatedBy:  actor.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Insert(ctx, s.db, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateLeadRequest) (*domain.Lead, error) {
	actor, _ := actorctx.ActorFromContext(ctx)
	if err := rbac.Gate(actor, rbac.ResourceLeads, rbac.ActionUpdate); err != nil {
		return nil, err
	}

	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	filter := rbac.ScopeFilter(actor, rbac.ResourceLeads)
	lead, err := s.repo.FindByID(ctx, s.db, filter, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}

	if req.FirstName != nil {
		if strings.TrimSpace(*req.FirstName) == "" {
			return nil, domain.ErrInvalidName
		}
		lead.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		if strings.TrimSpace(*req.LastName) == "" {
			return nil, domain.ErrInvalidName
		}
		lead.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, domain.ErrInvalidEmail
		}
		lead.Email = email
	}
	if req.Phone != nil {
		lead.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Company != nil {
		lead.Company = strings.TrimSpace(*req.Company)
	}
	if req.Status != nil {
		// No pipeline state machine: any status may follow any other.
		if !req.Status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		lead.Status = *req.Status
	}
	if req.Source != nil {
		if strings.TrimSpace(*req.Source) == "" {
			return nil, domain.ErrInvalidSource
		}
		lead.Source = strings.TrimSpace(*req.Source)
	}
	if req.Value != nil {
		lead.Value = *req.Value
	}
	if req.Notes != nil {
		lead.Notes = *req.Notes
	}

	lead.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, s.db, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	actor, _ := actorctx.ActorFromContext(ctx)
	if err := rbac.Gate(actor, rbac.ResourceLeads, rbac.ActionDelete); err != nil {
		return err
	}

	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	filter := rbac.ScopeFilter(actor, rbac.ResourceLeads)
	lead, err := s.repo.FindByID(ctx, s.db, filter, id)
	if err != nil {
		return err
	}
	if lead == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, lead)
}

func (s *Service) Assign(ctx context.Context, req domain.AssignLeadRequest) (*domain.Lead, error) {
	actor, _ := actorctx.ActorFromContext(ctx)
	if err := rbac.Gate(actor, rbac.ResourceLeads, rbac.ActionAssign); err != nil {
		return nil, err
	}

	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	filter := rbac.ScopeFilter(actor, rbac.ResourceLeads)
	lead, err := s.repo.FindByID(ctx, s.db, filter, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}

	assignee, err := s.resolveAssignee(ctx, lead.OrgID, req.AssignedTo)
	if err != nil {
		return nil, err
	}

	lead.AssignedTo = assignee
	lead.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, s.db, lead); err != nil {
		return nil, err
	}

	s.log.Info("lead assigned",
		zap.String("lead_id", lead.ID.String()),
		zap.String("assigned_to", assignee.String()),
		zap.String("assigned_by", actor.ID.String()),
	)
	return lead, nil
}

// resolveAssignee checks that the assignee is an active user of the
// given organization.
func (s *Service) resolveAssignee(ctx context.Context, orgID snowflake.ID, raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidAssignee
	}
	target, err := s.userRepo.FindByID(ctx, s.db, rbac.Filter{OrgID: orgID}, id)
	if err != nil {
		return 0, err
	}
	if target == nil || !target.IsActive {
		return 0, domain.ErrInvalidAssignee
	}
	return id, nil
}

func (s *Service) Analytics(ctx context.Context) (*domain.Analytics, error) {
	actor, _ := actorctx.ActorFromContext(ctx)
	if err := rbac.Gate(actor, rbac.ResourceLeads, rbac.ActionView); err != nil {
		return nil, err
	}

	filter := rbac.ScopeFilter(actor, rbac.ResourceLeads)
	leads, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	analytics := &domain.Analytics{
		ByStatus: make(map[domain.Status]int64),
		BySource: make(map[string]int64),
	}

	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	for _, lead := range leads {
		analytics.TotalLeads++
		analytics.TotalValue += lead.Value
		analytics.ByStatus[lead.Status]++
		analytics.BySource[lead.Source]++
		if lead.Status == domain.StatusWon {
			analytics.WonLeads++
		}
		if lead.CreatedAt.After(weekAgo) {
			analytics.WeeklyLeads++
		}
	}

	if analytics.TotalLeads > 0 {
		analytics.ConversionRate = roundDiv(analytics.WonLeads*100, analytics.TotalLeads)
		analytics.AvgDealSize = roundDiv(analytics.TotalValue, analytics.TotalLeads)
	}

	activeUsers, err := s.userRepo.CountActive(ctx, s.db, rbac.ScopeFilter(actor, rbac.ResourceUsers))
	if err != nil {
		return nil, err
	}
	analytics.ActiveUsers = activeUsers

	best := ""
	var bestCount int64
	for source, count := range analytics.BySource {
		if count > bestCount || (count == bestCount && source < best) {
			best = source
			bestCount = count
		}
	}
	analytics.BestSource = best

	return analytics, nil
}

// roundDiv divides rounding half-up; rates and averages are presented
// rounded, not truncated.
func roundDiv(numerator, denominator int64) int64 {
	return (numerator + denominator/2) / denominator
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
