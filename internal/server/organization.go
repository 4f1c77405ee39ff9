package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	organizationdomain "github.com/leadhub/leadhub/internal/organization/domain"
)

// UpdateSettingsHTTPRequest only decodes recognized settings keys;
// anything else in the payload is dropped here.
type UpdateSettingsHTTPRequest struct {
	AllowUserRegistration *bool     `json:"allow_user_registration"`
	MaxUsers              *int      `json:"max_users"`
	Features              *[]string `json:"features"`
}

func (s *Server) GetOrganization(c *gin.Context) {
	view, err := s.organizationsvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"organization": view})
}

func (s *Server) UpdateOrganizationSettings(c *gin.Context) {
	var req UpdateSettingsHTTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	view, err := s.organizationsvc.UpdateSettings(c.Request.Context(), organizationdomain.UpdateSettingsRequest{
		AllowUserRegistration: req.AllowUserRegistration,
		MaxUsers:              req.MaxUsers,
		Features:              req.Features,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"organization": view})
}
