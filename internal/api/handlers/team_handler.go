package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamhive/teamhive-backend/internal/api/middleware"
	"github.com/teamhive/teamhive-backend/internal/service"
)

// TeamHandler handles team HTTP requests
type TeamHandler struct {
	teamService service.TeamService
}

// CreateTeamRequest represents the request body for creating a team
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateTeamRequest represents the request body for updating a team
type UpdateTeamRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create creates a new team owned by the current user
func (h *TeamHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamService.Create(c.Request.Context(), req.Name, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTeamResponse(team))
}

// Get retrieves a team by ID
func (h *TeamHandler) Get(c *gin.Context) {
	team, err := h.teamService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTeamResponse(team))
}

// ListMyTeams lists all teams the current user belongs to
func (h *TeamHandler) ListMyTeams(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	teams, err := h.teamService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := make([]TeamWithMembershipResponse, 0, len(teams))
	for _, t := range teams {
		resp = append(resp, toTeamWithMembershipResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

// Update renames a team
func (h *TeamHandler) Update(c *gin.Context) {
	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamService.Update(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTeamResponse(team))
}

// Delete removes a team and its memberships
func (h *TeamHandler) Delete(c *gin.Context) {
	if err := h.teamService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddMemberRequest represents the request body for adding a member directly
type AddMemberRequest struct {
	UserID string `json:"userId" binding:"required"`
	Role   string `json:"role"`
}

// AddMember adds a user to a team without the invitation flow
func (h *TeamHandler) AddMember(c *gin.Context) {
	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ts, err := h.teamService.AddMember(c.Request.Context(), c.Param("id"), req.UserID, req.Role)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTeamspaceResponse(ts))
}

// ListMembers lists all members of a team
func (h *TeamHandler) ListMembers(c *gin.Context) {
	members, err := h.teamService.ListMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := make([]TeamspaceResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, toTeamspaceResponse(m))
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveMember removes a teamspace from a team
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	teamID := c.Param("id")
	teamspaceID := c.Param("teamspaceId")

	if err := h.teamService.RemoveMember(c.Request.Context(), teamID, teamspaceID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
