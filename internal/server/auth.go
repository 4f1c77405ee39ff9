package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/leadhub/leadhub/internal/auth/domain"
	"github.com/leadhub/leadhub/internal/rbac"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type actorView struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	Role         string       `json:"role"`
	Organization string       `json:"organization_id,omitempty"`
	Permissions  []rbac.Grant `json:"permissions"`
}

func newActorView(actor *rbac.Actor) actorView {
	view := actorView{
		ID:          actor.ID.String(),
		Email:       actor.Email,
		Name:        actor.Name,
		Role:        string(actor.Role),
		Permissions: rbac.NormalizeGrants(actor.Grants),
	}
	if actor.OrgID != 0 {
		view.Organization = actor.OrgID.String()
	}
	if view.Permissions == nil {
		view.Permissions = []rbac.Grant{}
	}
	return view
}

func (s *Server) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:     strings.TrimSpace(req.Email),
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, result.RawToken, result.ExpiresAt)
	c.JSON(http.StatusOK, gin.H{"user": newActorView(result.Actor)})
}

func (s *Server) Logout(c *gin.Context) {
	if token, ok := s.sessions.ReadToken(c); ok {
		_ = s.authsvc.Logout(c.Request.Context(), token)
	}
	s.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Me(c *gin.Context) {
	actor := currentActor(c)
	if actor == nil {
		AbortWithError(c, rbac.ErrUnauthenticated)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": newActorView(actor)})
}
