package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leadhub/leadhub/internal/rbac"
	userdomain "github.com/leadhub/leadhub/internal/user/domain"
)

type CreateUserHTTPRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	OrganizationID string `json:"organization_id"`
}

type GrantHTTPRequest struct {
	Resource string   `json:"resource"`
	Actions  []string `json:"actions"`
}

type UpdatePermissionsHTTPRequest struct {
	Permissions []GrantHTTPRequest `json:"permissions"`
}

func (s *Server) ListUsers(c *gin.Context) {
	users, err := s.usersvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (s *Server) CreateUser(c *gin.Context) {
	var req CreateUserHTTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	created, err := s.usersvc.Create(c.Request.Context(), userdomain.CreateUserRequest{
		Email:          req.Email,
		Password:       req.Password,
		Name:           req.Name,
		Role:           rbac.Role(req.Role),
		OrganizationID: req.OrganizationID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": created})
}

func (s *Server) UpdateUserPermissions(c *gin.Context) {
	var req UpdatePermissionsHTTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	grants := make([]rbac.Grant, 0, len(req.Permissions))
	for _, g := range req.Permissions {
		actions := make([]rbac.Action, 0, len(g.Actions))
		for _, a := range g.Actions {
			actions = append(actions, rbac.Action(a))
		}
		grants = append(grants, rbac.Grant{
			Resource: rbac.Resource(g.Resource),
			Actions:  actions,
		})
	}

	updated, err := s.usersvc.UpdatePermissions(c.Request.Context(), userdomain.UpdatePermissionsRequest{
		UserID: c.Param("id"),
		Grants: grants,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": updated})
}

func (s *Server) DeactivateUser(c *gin.Context) {
	if err := s.usersvc.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
