package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/leadhub/leadhub/internal/auth/domain"
	"github.com/leadhub/leadhub/internal/auth/password"
	"github.com/leadhub/leadhub/internal/config"
	"github.com/leadhub/leadhub/internal/rbac"
	userdomain "github.com/leadhub/leadhub/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Cfg         config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	SessionRepo domain.SessionRepository
	UserRepo    userdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	sessionRepo domain.SessionRepository
	userRepo    userdomain.Repository
	sessionTTL  time.Duration
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("auth.service"),
		genID:       p.GenID,
		sessionRepo: p.SessionRepo,
		userRepo:    p.UserRepo,
		sessionTTL:  p.Cfg.SessionTTL,
	}
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindActiveByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !password.Verify(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	rawToken := uuid.NewString()
	now := time.Now().UTC()

	grants, err := json.Marshal(rbac.NormalizeGrants(user.Grants()))
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:               s.genID.Generate(),
		UserID:           user.ID,
		SessionTokenHash: hashToken(rawToken),
		Role:             string(user.Role),
		OrgID:            user.OrgID,
		Grants:           grants,
		UserAgent:        strings.TrimSpace(req.UserAgent),
		IPAddress:        strings.TrimSpace(req.IPAddress),
		ExpiresAt:        now.Add(s.sessionTTL),
		CreatedAt:        now,
		LastSeenAt:       now,
	}
	if err := s.sessionRepo.CreateSession(ctx, s.db, session); err != nil {
		return nil, err
	}

	s.log.Info("login",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	return &domain.LoginResult{
		RawToken:  rawToken,
		ExpiresAt: session.ExpiresAt,
		Actor: &rbac.Actor{
			ID:     user.ID,
			Email:  user.Email,
			Name:   user.Name,
			Role:   user.Role,
			OrgID:  user.OrgID,
			Grants: user.Grants(),
		},
	}, nil
}

// Authenticate resolves a raw session token to the actor snapshot taken
// at login. Role, org and grants come from the session row, not the
// user row: edits made after login only reach future sessions.
func (s *Service) Authenticate(ctx context.Context, rawToken string) (*rbac.Actor, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, domain.ErrInvalidSession
	}

	session, err := s.sessionRepo.FindByTokenHash(ctx, s.db, hashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrInvalidSession
		}
		return nil, err
	}

	now := time.Now().UTC()
	if session.RevokedAt != nil {
		return nil, domain.ErrSessionRevoked
	}
	if now.After(session.ExpiresAt) {
		return nil, domain.ErrSessionExpired
	}

	if err := s.sessionRepo.UpdateLastSeen(ctx, s.db, session.ID, now); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, s.db, rbac.Filter{}, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrInvalidSession
	}

	var grants []rbac.Grant
	if len(session.Grants) > 0 {
		if err := json.Unmarshal(session.Grants, &grants); err != nil {
			grants = nil
		}
	}

	return &rbac.Actor{
		ID:     session.UserID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   rbac.Role(session.Role),
		OrgID:  session.OrgID,
		Grants: grants,
	}, nil
}

func (s *Service) Logout(ctx context.Context, rawToken string) error {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return domain.ErrInvalidSession
	}

	session, err := s.sessionRepo.FindByTokenHash(ctx, s.db, hashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.ErrInvalidSession
		}
		return err
	}

	return s.sessionRepo.RevokeSession(ctx, s.db, session.ID, time.Now().UTC())
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(addr.Address)), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
