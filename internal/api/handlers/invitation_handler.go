package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamhive/teamhive-backend/internal/api/middleware"
	"github.com/teamhive/teamhive-backend/internal/service"
)

// InvitationHandler handles invitation HTTP requests
type InvitationHandler struct {
	invitationService service.InvitationService
}

// CreateInvitationRequest represents the request body for inviting a user
type CreateInvitationRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

// ResolveInvitationRequest carries the accept/reject action
type ResolveInvitationRequest struct {
	Action string `json:"action" binding:"required"`
}

// Create invites a user to a team by email
func (h *InvitationHandler) Create(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	var req CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invitation, err := h.invitationService.Create(c.Request.Context(), c.Param("id"), req.Email, req.Role, middleware.GetUserName(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toInvitationResponse(invitation))
}

// ListByTeam lists pending invitations for a team
func (h *InvitationHandler) ListByTeam(c *gin.Context) {
	invitations, err := h.invitationService.ListByTeam(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := make([]InvitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		resp = append(resp, toInvitationResponse(inv))
	}
	c.JSON(http.StatusOK, resp)
}

// ListPending lists pending invitations addressed to the current user
func (h *InvitationHandler) ListPending(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	invitations, err := h.invitationService.ListByEmail(c.Request.Context(), middleware.GetUserEmail(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := make([]InvitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		resp = append(resp, toInvitationResponse(inv))
	}
	c.JSON(http.StatusOK, resp)
}

// Resolve accepts or rejects an invitation addressed to the current user
func (h *InvitationHandler) Resolve(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req ResolveInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ts, err := h.invitationService.Resolve(c.Request.Context(), c.Param("id"), middleware.GetUserEmail(c), userID, req.Action)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if ts == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, toTeamspaceResponse(ts))
}

// Delete cancels a pending invitation belonging to the team
func (h *InvitationHandler) Delete(c *gin.Context) {
	if err := h.invitationService.Delete(c.Request.Context(), c.Param("id"), c.Param("invitationId")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
