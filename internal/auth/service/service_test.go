package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/leadhub/leadhub/internal/auth/domain"
	"github.com/leadhub/leadhub/internal/auth/password"
	"github.com/leadhub/leadhub/internal/auth/repository"
	"github.com/leadhub/leadhub/internal/config"
	"github.com/leadhub/leadhub/internal/rbac"
	userdomain "github.com/leadhub/leadhub/internal/user/domain"
	userrepository "github.com/leadhub/leadhub/internal/user/repository"
	"github.com/leadhub/leadhub/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T, ttl time.Duration) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&userdomain.User{}, &domain.Session{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	svc := New(Params{
		Cfg:         config.Config{SessionTTL: ttl},
		DB:          dbConn,
		Log:         zap.NewNop(),
		GenID:       node,
		SessionRepo: repository.Provide(),
		UserRepo:    userrepository.Provide(),
	})
	return svc, dbConn, node
}

func seedUser(t *testing.T, dbConn *gorm.DB, node *snowflake.Node, email, plaintext string, role rbac.Role, orgID snowflake.ID, grants []rbac.Grant) *userdomain.User {
	t.Helper()

	hashed, err := password.Hash(plaintext)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	now := time.Now().UTC()
	user := userdomain.User{
		ID:           node.Generate(),
		Email:        email,
		PasswordHash: hashed,
		Name:         "Seeded",
		Role:         role,
		OrgID:        orgID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.SetGrants(grants); err != nil {
		t.Fatalf("failed to set grants: %v", err)
	}
	if err := dbConn.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return &user
}

func TestLoginWrongPassword(t *testing.T) {
	svc, dbConn, node := newTestService(t, time.Hour)
	seedUser(t, dbConn, node, "alice@example.com", "correct-password", rbac.RoleUser, node.Generate(), nil)

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t, time.Hour)

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever-password",
	})
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateReturnsSnapshot(t *testing.T) {
	svc, dbConn, node := newTestService(t, time.Hour)
	orgID := node.Generate()
	grants := []rbac.Grant{
		{Resource: rbac.ResourceLeads, Actions: []rbac.Action{rbac.ActionView, rbac.ActionCreate}},
	}
	user := seedUser(t, dbConn, node, "alice@example.com", "correct-password", rbac.RoleUser, orgID, grants)

	result, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "Alice@Example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}

	actor, err := svc.Authenticate(context.Background(), result.RawToken)
	if err != nil {
		t.Fatalf("failed to authenticate: %v", err)
	}
	if actor.ID != user.ID {
		t.Fatalf("expected actor %s, got %s", user.ID, actor.ID)
	}
	if actor.Role != rbac.RoleUser || actor.OrgID != orgID {
		t.Fatalf("unexpected actor: %+v", actor)
	}
	if !rbac.Authorize(actor, rbac.ResourceLeads, rbac.ActionCreate) {
		t.Fatal("expected leads create allowed")
	}
	if rbac.Authorize(actor, rbac.ResourceLeads, rbac.ActionDelete) {
		t.Fatal("expected leads delete denied")
	}
}

func TestSessionSnapshotSurvivesPermissionEdit(t *testing.T) {
	svc, dbConn, node := newTestService(t, time.Hour)
	grants := []rbac.Grant{
		{Resource: rbac.ResourceLeads, Actions: []rbac.Action{rbac.ActionView, rbac.ActionDelete}},
	}
	user := seedUser(t, dbConn, node, "alice@example.com", "correct-password", rbac.RoleUser, node.Generate(), grants)

	result, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}

	// Strip the stored grants after login. The live session keeps its
	// snapshot until it ends.
	if err := user.SetGrants(nil); err != nil {
		t.Fatalf("failed to clear grants: %v", err)
	}
	if err := dbConn.Save(user).Error; err != nil {
		t.Fatalf("failed to persist grant edit: %v", err)
	}

	actor, err := svc.Authenticate(context.Background(), result.RawToken)
	if err != nil {
		t.Fatalf("failed to authenticate: %v", err)
	}
	if !rbac.Authorize(actor, rbac.ResourceLeads, rbac.ActionDelete) {
		t.Fatal("expected snapshot grants to survive the edit")
	}

	// A fresh login picks up the edited grants.
	fresh, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to re-login: %v", err)
	}
	freshActor, err := svc.Authenticate(context.Background(), fresh.RawToken)
	if err != nil {
		t.Fatalf("failed to authenticate fresh session: %v", err)
	}
	if rbac.Authorize(freshActor, rbac.ResourceLeads, rbac.ActionDelete) {
		t.Fatal("expected fresh session to see edited grants")
	}
}

func TestAuthenticateDeactivatedUser(t *testing.T) {
	svc, dbConn, node := newTestService(t, time.Hour)
	user := seedUser(t, dbConn, node, "alice@example.com", "correct-password", rbac.RoleUser, node.Generate(), nil)

	result, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}

	user.IsActive = false
	if err := dbConn.Save(user).Error; err != nil {
		t.Fatalf("failed to deactivate: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), result.RawToken); err != domain.ErrInvalidSession {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, dbConn, node := newTestService(t, time.Hour)
	seedUser(t, dbConn, node, "alice@example.com", "correct-password", rbac.RoleUser, node.Generate(), nil)

	result, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}
	if err := svc.Logout(context.Background(), result.RawToken); err != nil {
		t.Fatalf("failed to logout: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), result.RawToken); err != domain.ErrSessionRevoked {
		t.Fatalf("expected ErrSessionRevoked, got %v", err)
	}
}

func TestAuthenticateExpiredSession(t *testing.T) {
	svc, dbConn, node := newTestService(t, -time.Minute)
	seedUser(t, dbConn, node, "alice@example.com", "correct-password", rbac.RoleUser, node.Generate(), nil)

	result, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), result.RawToken); err != domain.ErrSessionExpired {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}
