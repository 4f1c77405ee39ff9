package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/leadhub/leadhub/internal/actorctx"
	"github.com/leadhub/leadhub/internal/auth/password"
	"github.com/leadhub/leadhub/internal/rbac"
	"github.com/leadhub/leadhub/internal/user/domain"
	"github.com/leadhub/leadhub/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("user.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	actor, _ := actorctx.ActorFromContext(ctx)
	if err := rbac.Gate(actor, rbac.ResourceUsers, rbac.ActionView); err != nil {
		return nil, err
	}

	filter := rbac.ScopeFilter(actor, rbac.ResourceUsers)
	return s.repo.List(ctx, s.db, filter)
}

func (s *Service) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	actor, _ := actorctx.ActorFromContext(ctx)
	if err := rbac.Gate(actor, rbac.ResourceUsers, rbac.ActionCreate); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if len(req.Password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}
	if !req.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	// Hierarchy check: creation is only permitted strictly below the
	// caller's own tier, so nobody mints peers or administrators.
	if !rbac.CanManage(actor.Role, req.Role) {
		return nil, domain.ErrRoleNotAllowed
	}

	orgID, err := s.resolveOrgID(actor, req.OrganizationID)
	if err != nil {
		return nil, err
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         req.Role,
		OrgID:        orgID,
		ParentID:     actor.ID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.SetGrants(rbac.DefaultGrants(req.Role)); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, s.db, &user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, err
	}

	s.log.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
		zap.String("created_by", actor.ID.String()),
	)
	return &user, nil
}

// resolveOrgID fixes the new user's organization. Tenant callers always
// create into their own organization; administrators have none and must
// name the target organization explicitly.
func (s *Service) resolveOrgID(actor *rbac.Actor, requested string) (snowflake.ID, error) {
	if actor.Role != rbac.RoleAdministrator {
		if actor.OrgID == 0 {
			return 0, domain.ErrInvalidOrganization
		}
		return actor.OrgID, nil
	}
	parsed, err := snowflake.ParseString(strings.TrimSpace(requested))
	if err != nil || parsed == 0 {
		return 0, domain.ErrInvalidOrganization
	}
	return parsed, nil
}

func (s *Service) UpdatePermissions(ctx context.Context, req domain.UpdatePermissionsRequest) (*domain.User, error) {
	actor, _ := actorctx.ActorFromContext(ctx)
	if err := rbac.Gate(actor, rbac.ResourceUsers, rbac.ActionManagePermissions); err != nil {
		return nil, err
	}

	id, err := parseID(req.UserID)
	if err != nil {
		return nil, err
	}
	if err := rbac.ValidateGrants(req.Grants); err != nil {
		return nil, err
	}

	// The target is fetched through the caller's scope filter, so a
	// target in another organization is indistinguishable from a
	// missing one.
	filter := rbac.ScopeFilter(actor, rbac.ResourceUsers)
	user, err := s.repo.FindByID(ctx, s.db, filter, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	// Wholesale replace, never a merge.
	if err := user.SetGrants(req.Grants); err != nil {
		return nil, err
	}
	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, s.db, user); err != nil {
		return nil, err
	}

	s.log.Info("permissions replaced",
		zap.String("user_id", user.ID.String()),
		zap.String("updated_by", actor.ID.String()),
	)
	return user, nil
}

func (s *Service) Deactivate(ctx context.Context, rawID string) error {
	actor, _ := actorctx.ActorFromContext(ctx)
	if err := rbac.Gate(actor, rbac.ResourceUsers, rbac.ActionUpdate); err != nil {
		return err
	}

	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	filter := rbac.ScopeFilter(actor, rbac.ResourceUsers)
	user, err := s.repo.FindByID(ctx, s.db, filter, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if !rbac.CanManage(actor.Role, user.Role) {
		return domain.ErrRoleNotAllowed
	}

	// Users are never hard-deleted; the flag is the whole lifecycle.
	user.IsActive = false
	user.UpdatedAt = time.Now().UTC()
	return s.repo.Save(ctx, s.db, user)
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
