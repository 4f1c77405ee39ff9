package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/leadhub/leadhub/internal/actorctx"
	"github.com/leadhub/leadhub/internal/lead/domain"
	"github.com/leadhub/leadhub/internal/lead/repository"
	"github.com/leadhub/leadhub/internal/rbac"
	userdomain "github.com/leadhub/leadhub/internal/user/domain"
	userrepository "github.com/leadhub/leadhub/internal/user/repository"
	"github.com/leadhub/leadhub/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&domain.Lead{}, &userdomain.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	svc := New(Params{
		DB:       dbConn,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.Provide(),
		UserRepo: userrepository.Provide(),
	})
	return svc, dbConn, node
}

func actorContext(role rbac.Role, id, orgID snowflake.ID) context.Context {
	actor := &rbac.Actor{
		ID:     id,
		Role:   role,
		OrgID:  orgID,
		Grants: rbac.DefaultGrants(role),
	}
	return actorctx.WithActor(context.Background(), actor)
}

func seedUser(t *testing.T, dbConn *gorm.DB, node *snowflake.Node, orgID snowflake.ID, active bool) *userdomain.User {
	t.Helper()
	now := time.Now().UTC()
	user := userdomain.User{
		ID:           node.Generate(),
		Email:        node.Generate().String() + "@example.com",
		PasswordHash: "x",
		Name:         "Rep",
		Role:         rbac.RoleUser,
		OrgID:        orgID,
		Permissions:  []byte("[]"),
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := dbConn.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return &user
}

func TestCreateLeadDefaults(t *testing.T) {
	svc, _, node := newTestService(t)
	orgID := node.Generate()
	actorID := node.Generate()
	ctx := actorContext(rbac.RoleUser, actorID, orgID)

	created, err := svc.Create(ctx, domain.CreateLeadRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "Ada@Example.com",
		Source:    "referral",
		Value:     1200,
	})
	if err != nil {
		t.Fatalf("failed to create lead: %v", err)
	}
	if created.Status != domain.StatusNew {
		t.Fatalf("expected status new, got %s", created.Status)
	}
	if created.AssignedTo != actorID {
		t.Fatalf("expected lead assigned to creator, got %s", created.AssignedTo)
	}
	if created.OrgID != orgID {
		t.Fatalf("expected creator org, got %s", created.OrgID)
	}
	if created.Email != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %s", created.Email)
	}
}

func TestCreateLeadWithoutOrgRejected(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := actorContext(rbac.RoleAdministrator, node.Generate(), 0)

	_, err := svc.Create(ctx, domain.CreateLeadRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Source:    "referral",
	})
	if err != domain.ErrInvalidOrganization {
		t.Fatalf("expected ErrInvalidOrganization, got %v", err)
	}
}

func TestBasicUserSeesOnlyAssignedLeads(t *testing.T) {
	svc, _, node := newTestService(t)
	orgID := node.Generate()
	repA := node.Generate()
	repB := node.Generate()

	ctxA := actorContext(rbac.RoleUser, repA, orgID)
	ctxB := actorContext(rbac.RoleUser, repB, orgID)

	if _, err := svc.Create(ctxA, domain.CreateLeadRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Source: "web",
	}); err != nil {
		t.Fatalf("failed to create lead: %v", err)
	}
	if _, err := svc.Create(ctxB, domain.CreateLeadRequest{
		FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Source: "web",
	}); err != nil {
		t.Fatalf("failed to create lead: %v", err)
	}

	visible, err := svc.List(ctxA)
	if err != nil {
		t.Fatalf("failed to list leads: %v", err)
	}
	if len(visible) != 1 {
		t.Fatalf("expected 1 visible lead, got %d", len(visible))
	}
	if visible[0].AssignedTo != repA {
		t.Fatalf("expected only own lead visible, got assignee %s", visible[0].AssignedTo)
	}

	// A sub admin in the same org sees both.
	subCtx := actorContext(rbac.RoleSubAdmin, node.Generate(), orgID)
	all, err := svc.List(subCtx)
	if err != nil {
		t.Fatalf("failed to list leads: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 leads for sub admin, got %d", len(all))
	}
}

func TestGetLeadCrossTenantNotFound(t *testing.T) {
	svc, _, node := newTestService(t)
	orgA := node.Generate()
	orgB := node.Generate()

	ctxA := actorContext(rbac.RoleSubAdmin, node.Generate(), orgA)
	created, err := svc.Create(ctxA, domain.CreateLeadRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Source: "web",
	})
	if err != nil {
		t.Fatalf("failed to create lead: %v", err)
	}

	ctxB := actorContext(rbac.RoleSubAdmin, node.Generate(), orgB)
	if _, err := svc.GetByID(ctxB, created.ID.String()); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// The administrator is unscoped and sees it.
	adminCtx := actorContext(rbac.RoleAdministrator, node.Generate(), 0)
	if _, err := svc.GetByID(adminCtx, created.ID.String()); err != nil {
		t.Fatalf("expected administrator to fetch lead, got %v", err)
	}
}

func TestAssignLeadSameOrgOnly(t *testing.T) {
	svc, dbConn, node := newTestService(t)
	orgA := node.Generate()
	orgB := node.Generate()
	ctx := actorContext(rbac.RoleSubAdmin, node.Generate(), orgA)

	created, err := svc.Create(ctx, domain.CreateLeadRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Source: "web",
	})
	if err != nil {
		t.Fatalf("failed to create lead: %v", err)
	}

	sameOrg := seedUser(t, dbConn, node, orgA, true)
	otherOrg := seedUser(t, dbConn, node, orgB, true)
	inactive := seedUser(t, dbConn, node, orgA, false)

	assigned, err := svc.Assign(ctx, domain.AssignLeadRequest{
		ID:         created.ID.String(),
		AssignedTo: sameOrg.ID.String(),
	})
	if err != nil {
		t.Fatalf("failed to assign: %v", err)
	}
	if assigned.AssignedTo != sameOrg.ID {
		t.Fatalf("expected assignee %s, got %s", sameOrg.ID, assigned.AssignedTo)
	}

	if _, err := svc.Assign(ctx, domain.AssignLeadRequest{
		ID:         created.ID.String(),
		AssignedTo: otherOrg.ID.String(),
	}); err != domain.ErrInvalidAssignee {
		t.Fatalf("expected ErrInvalidAssignee for foreign org, got %v", err)
	}

	if _, err := svc.Assign(ctx, domain.AssignLeadRequest{
		ID:         created.ID.String(),
		AssignedTo: inactive.ID.String(),
	}); err != domain.ErrInvalidAssignee {
		t.Fatalf("expected ErrInvalidAssignee for inactive user, got %v", err)
	}
}

func TestAssignWithoutGrantForbidden(t *testing.T) {
	svc, _, node := newTestService(t)
	orgID := node.Generate()
	ctx := actorContext(rbac.RoleUser, node.Generate(), orgID)

	created, err := svc.Create(ctx, domain.CreateLeadRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Source: "web",
	})
	if err != nil {
		t.Fatalf("failed to create lead: %v", err)
	}

	if _, err := svc.Assign(ctx, domain.AssignLeadRequest{
		ID:         created.ID.String(),
		AssignedTo: node.Generate().String(),
	}); err != rbac.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdateLeadStatusTransitionsUnconstrained(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := actorContext(rbac.RoleSubAdmin, node.Generate(), node.Generate())

	created, err := svc.Create(ctx, domain.CreateLeadRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
		Source: "web", Status: domain.StatusWon,
	})
	if err != nil {
		t.Fatalf("failed to create lead: %v", err)
	}

	back := domain.StatusNew
	updated, err := svc.Update(ctx, domain.UpdateLeadRequest{
		ID:     created.ID.String(),
		Status: &back,
	})
	if err != nil {
		t.Fatalf("failed to update: %v", err)
	}
	if updated.Status != domain.StatusNew {
		t.Fatalf("expected status new, got %s", updated.Status)
	}

	bogus := domain.Status("archived")
	if _, err := svc.Update(ctx, domain.UpdateLeadRequest{
		ID:     created.ID.String(),
		Status: &bogus,
	}); err != domain.ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestAnalyticsAggregation(t *testing.T) {
	svc, dbConn, node := newTestService(t)
	orgID := node.Generate()
	ctx := actorContext(rbac.RoleSuperAdmin, node.Generate(), orgID)

	seedUser(t, dbConn, node, orgID, true)
	seedUser(t, dbConn, node, orgID, true)
	seedUser(t, dbConn, node, orgID, false)
	seedUser(t, dbConn, node, node.Generate(), true)

	seed := []struct {
		status domain.Status
		source string
		value  int64
	}{
		{domain.StatusWon, "referral", 1000},
		{domain.StatusWon, "web", 3000},
		{domain.StatusNew, "referral", 500},
		{domain.StatusLost, "web", 0},
	}
	for i, item := range seed {
		if _, err := svc.Create(ctx, domain.CreateLeadRequest{
			FirstName: "Lead",
			LastName:  "Case",
			Email:     "lead@example.com",
			Source:    item.source,
			Status:    item.status,
			Value:     item.value,
		}); err != nil {
			t.Fatalf("failed to seed lead %d: %v", i, err)
		}
	}

	analytics, err := svc.Analytics(ctx)
	if err != nil {
		t.Fatalf("failed to compute analytics: %v", err)
	}
	if analytics.TotalLeads != 4 {
		t.Fatalf("expected 4 leads, got %d", analytics.TotalLeads)
	}
	if analytics.WonLeads != 2 {
		t.Fatalf("expected 2 won, got %d", analytics.WonLeads)
	}
	if analytics.ConversionRate != 50 {
		t.Fatalf("expected conversion 50, got %d", analytics.ConversionRate)
	}
	if analytics.TotalValue != 4500 {
		t.Fatalf("expected total value 4500, got %d", analytics.TotalValue)
	}
	if analytics.AvgDealSize != 1125 {
		t.Fatalf("expected avg deal 1125, got %d", analytics.AvgDealSize)
	}
	if analytics.ByStatus[domain.StatusWon] != 2 || analytics.ByStatus[domain.StatusNew] != 1 {
		t.Fatalf("unexpected status breakdown: %+v", analytics.ByStatus)
	}
	// Tie between referral and web resolves alphabetically.
	if analytics.BestSource != "referral" {
		t.Fatalf("expected best source referral, got %s", analytics.BestSource)
	}
	if analytics.WeeklyLeads != 4 {
		t.Fatalf("expected 4 weekly leads, got %d", analytics.WeeklyLeads)
	}
	// Only the actor's org counts, and only active members.
	if analytics.ActiveUsers != 2 {
		t.Fatalf("expected 2 active users, got %d", analytics.ActiveUsers)
	}
}

func TestAnalyticsRoundsRates(t *testing.T) {
	svc, _, node := newTestService(t)
	orgID := node.Generate()
	ctx := actorContext(rbac.RoleSuperAdmin, node.Generate(), orgID)

	seed := []struct {
		status domain.Status
		value  int64
	}{
		{domain.StatusWon, 100},
		{domain.StatusWon, 100},
		{domain.StatusNew, 51},
	}
	for i, item := range seed {
		if _, err := svc.Create(ctx, domain.CreateLeadRequest{
			FirstName: "Lead",
			LastName:  "Case",
			Email:     "lead@example.com",
			Source:    "web",
			Status:    item.status,
			Value:     item.value,
		}); err != nil {
			t.Fatalf("failed to seed lead %d: %v", i, err)
		}
	}

	analytics, err := svc.Analytics(ctx)
	if err != nil {
		t.Fatalf("failed to compute analytics: %v", err)
	}
	// 2 of 3 won is 66.67%, rounded half-up, never truncated.
	if analytics.ConversionRate != 67 {
		t.Fatalf("expected conversion 67, got %d", analytics.ConversionRate)
	}
	// 251 over 3 leads is 83.67.
	if analytics.AvgDealSize != 84 {
		t.Fatalf("expected avg deal 84, got %d", analytics.AvgDealSize)
	}
}

func TestDeleteLeadScoped(t *testing.T) {
	svc, _, node := newTestService(t)
	orgA := node.Generate()
	orgB := node.Generate()

	ctxA := actorContext(rbac.RoleSuperAdmin, node.Generate(), orgA)
	created, err := svc.Create(ctxA, domain.CreateLeadRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Source: "web",
	})
	if err != nil {
		t.Fatalf("failed to create lead: %v", err)
	}

	ctxB := actorContext(rbac.RoleSuperAdmin, node.Generate(), orgB)
	if err := svc.Delete(ctxB, created.ID.String()); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctxA, created.ID.String()); err != nil {
		t.Fatalf("failed to delete own lead: %v", err)
	}
	if _, err := svc.GetByID(ctxA, created.ID.String()); err != domain.ErrNotFound {
		t.Fatalf("expected lead gone, got %v", err)
	}
}
