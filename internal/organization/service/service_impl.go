package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/leadhub/leadhub/internal/actorctx"
	"github.com/leadhub/leadhub/internal/config"
	leaddomain "github.com/leadhub/leadhub/internal/lead/domain"
	"github.com/leadhub/leadhub/internal/organization/domain"
	"github.com/leadhub/leadhub/internal/rbac"
	userdomain "github.com/leadhub/leadhub/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Cfg      config.Config
	DB       *gorm.DB
	Log      *zap.Logger
	Repo     domain.Repository
	UserRepo userdomain.Repository
	LeadRepo leaddomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	repo         domain.Repository
	userRepo     userdomain.Repository
	leadRepo     leaddomain.Repository
	defaultOrgID snowflake.ID
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("organization.service"),
		repo:         p.Repo,
		userRepo:     p.UserRepo,
		leadRepo:     p.LeadRepo,
		defaultOrgID: snowflake.ID(p.Cfg.DefaultOrgID),
	}
}

func (s *Service) Get(ctx context.Context) (*domain.OrganizationView, error) {
	actor, _ := actorctx.ActorFromContext(ctx)
	if err := rbac.Gate(actor, rbac.ResourceOrganization, rbac.ActionView); err != nil {
		return nil, err
	}

	org, err := s.resolveOrganization(ctx, actor)
	if err != nil {
		return nil, err
	}

	view, err := s.buildView(ctx, org)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *Service) UpdateSettings(ctx context.Context, req domain.UpdateSettingsRequest) (*domain.OrganizationView, error) {
	actor, _ := actorctx.ActorFromContext(ctx)
	if err := rbac.Gate(actor, rbac.ResourceOrganization, rbac.ActionSettings); err != nil {
		return nil, err
	}

	org, err := s.resolveOrganization(ctx, actor)
	if err != nil {
		return nil, err
	}

	settings := org.ParsedSettings()
	if req.AllowUserRegistration != nil {
		settings.AllowUserRegistration = *req.AllowUserRegistration
	}
	if req.MaxUsers != nil {
		if *req.MaxUsers < 1 {
			return nil, domain.ErrInvalidMaxUsers
		}
		settings.MaxUsers = *req.MaxUsers
	}
	if req.Features != nil {
		settings.Features = *req.Features
	}

	if err := org.SetSettings(settings); err != nil {
		return nil, err
	}
	org.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, s.db, org); err != nil {
		return nil, err
	}

	s.log.Info("organization settings updated",
		zap.String("org_id", org.ID.String()),
		zap.String("updated_by", actor.ID.String()),
	)
	return s.buildView(ctx, org)
}

// resolveOrganization picks the organization an actor's self-service
// view refers to. Tenant actors use their own; administrators have none
// and fall back to the configured default organization. An unset
// fallback is NotFound, never a silent first-row pick.
func (s *Service) resolveOrganization(ctx context.Context, actor *rbac.Actor) (*domain.Organization, error) {
	orgID := actor.OrgID
	if actor.Role == rbac.RoleAdministrator {
		orgID = s.defaultOrgID
	}
	if orgID == 0 {
		return nil, domain.ErrNotFound
	}

	org, err := s.repo.FindByID(ctx, s.db, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	return org, nil
}

func (s *Service) buildView(ctx context.Context, org *domain.Organization) (*domain.OrganizationView, error) {
	totalUsers, err := s.userRepo.CountByOrg(ctx, s.db, org.ID, false)
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.userRepo.CountByOrg(ctx, s.db, org.ID, true)
	if err != nil {
		return nil, err
	}
	totalLeads, err := s.leadRepo.CountByOrg(ctx, s.db, org.ID, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthlyLeads, err := s.leadRepo.CountByOrg(ctx, s.db, org.ID, &monthStart)
	if err != nil {
		return nil, err
	}

	return &domain.OrganizationView{
		ID:       org.ID.String(),
		Name:     org.Name,
		Domain:   org.Domain,
		Settings: org.ParsedSettings(),
		Stats: domain.Stats{
			TotalUsers:   totalUsers,
			ActiveUsers:  activeUsers,
			TotalLeads:   totalLeads,
			MonthlyLeads: monthlyLeads,
		},
		CreatedAt: org.CreatedAt,
	}, nil
}
