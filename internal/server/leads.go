package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	leaddomain "github.com/leadhub/leadhub/internal/lead/domain"
)

type CreateLeadHTTPRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	Status     string `json:"status"`
	Source     string `json:"source"`
	Value      int64  `json:"value"`
	Notes      string `json:"notes"`
	AssignedTo string `json:"assigned_to"`
}

type UpdateLeadHTTPRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Company   *string `json:"company"`
	Status    *string `json:"status"`
	Source    *string `json:"source"`
	Value     *int64  `json:"value"`
	Notes     *string `json:"notes"`
}

type AssignLeadHTTPRequest struct {
	AssignedTo string `json:"assigned_to"`
}

func (s *Server) ListLeads(c *gin.Context) {
	leads, err := s.leadsvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

func (s *Server) GetLeadByID(c *gin.Context) {
	found, err := s.leadsvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lead": found})
}

func (s *Server) CreateLead(c *gin.Context) {
	var req CreateLeadHTTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	created, err := s.leadsvc.Create(c.Request.Context(), leaddomain.CreateLeadRequest{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Company:    req.Company,
		Status:     leaddomain.Status(req.Status),
		Source:     req.Source,
		Value:      req.Value,
		Notes:      req.Notes,
		AssignedTo: req.AssignedTo,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"lead": created})
}

func (s *Server) UpdateLead(c *gin.Context) {
	var req UpdateLeadHTTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := leaddomain.UpdateLeadRequest{
		ID:        c.Param("id"),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Source:    req.Source,
		Value:     req.Value,
		Notes:     req.Notes,
	}
	if req.Status != nil {
		status := leaddomain.Status(*req.Status)
		update.Status = &status
	}

	updated, err := s.leadsvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lead": updated})
}

func (s *Server) DeleteLead(c *gin.Context) {
	if err := s.leadsvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) AssignLead(c *gin.Context) {
	var req AssignLeadHTTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	assigned, err := s.leadsvc.Assign(c.Request.Context(), leaddomain.AssignLeadRequest{
		ID:         c.Param("id"),
		AssignedTo: req.AssignedTo,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lead": assigned})
}

func (s *Server) GetAnalytics(c *gin.Context) {
	analytics, err := s.leadsvc.Analytics(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analytics": analytics})
}
