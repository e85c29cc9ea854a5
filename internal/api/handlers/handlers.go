package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teamhive/teamhive-backend/internal/repository"
	"github.com/teamhive/teamhive-backend/internal/service"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth       *AuthHandler
	User       *UserHandler
	Team       *TeamHandler
	Invitation *InvitationHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:       &AuthHandler{authService: services.Auth},
		User:       &UserHandler{userService: services.User},
		Team:       &TeamHandler{teamService: services.Team},
		Invitation: &InvitationHandler{invitationService: services.Invitation},
	}
}

// handleServiceError maps service errors to HTTP responses
func handleServiceError(c *gin.Context, err error) {
	switch err {
	case service.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case service.ErrUserNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case service.ErrUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case service.ErrInvalidCredentials:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
	case service.ErrInvalidToken:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
	case service.ErrForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case service.ErrConflict:
		c.JSON(http.StatusConflict, gin.H{"error": "Resource already exists"})
	case service.ErrUserExists:
		c.JSON(http.StatusConflict, gin.H{"error": "Email already taken"})
	case service.ErrEmailTaken:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already taken"})
	case service.ErrAlreadyInTeam:
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already in team"})
	case service.ErrAlreadyInvited:
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already invited"})
	case service.ErrInvalidAction:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invitation action"})
	case service.ErrInvalidRole:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
	case service.ErrInvalidTokenType:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token type"})
	case service.ErrEmailMismatch:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user email"})
	case service.ErrWeakPassword:
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrWeakPassword.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// UserResponse is the public shape of a user
type UserResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toUserResponse(u *repository.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		IsEmailVerified: u.IsEmailVerified,
		CreatedAt:       u.CreatedAt,
	}
}

// TeamResponse is the public shape of a team
type TeamResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func toTeamResponse(t *repository.Team) TeamResponse {
	return TeamResponse{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
	}
}

// TeamWithMembershipResponse is a team with the caller's own membership
type TeamWithMembershipResponse struct {
	TeamResponse
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

func toTeamWithMembershipResponse(t *repository.TeamWithMembership) TeamWithMembershipResponse {
	return TeamWithMembershipResponse{
		TeamResponse: toTeamResponse(&t.Team),
		Role:         t.Role,
		JoinedAt:     t.JoinedAt,
	}
}

// TeamspaceResponse is the public shape of a team membership
type TeamspaceResponse struct {
	ID       string        `json:"id"`
	UserID   string        `json:"userId"`
	TeamID   string        `json:"teamId"`
	Role     string        `json:"role"`
	JoinedAt time.Time     `json:"joinedAt"`
	User     *UserResponse `json:"user,omitempty"`
}

func toTeamspaceResponse(ts *repository.Teamspace) TeamspaceResponse {
	resp := TeamspaceResponse{
		ID:       ts.ID,
		UserID:   ts.UserID,
		TeamID:   ts.TeamID,
		Role:     ts.Role,
		JoinedAt: ts.JoinedAt,
	}
	if ts.User != nil {
		user := toUserResponse(ts.User)
		resp.User = &user
	}
	return resp
}

// InvitationResponse is the public shape of a pending invitation
type InvitationResponse struct {
	ID            string    `json:"id"`
	TeamID        string    `json:"teamId"`
	TeamName      string    `json:"teamName"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	InvitedByName string    `json:"invitedByName"`
	InvitedAt     time.Time `json:"invitedAt"`
}

func toInvitationResponse(inv *repository.Invitation) InvitationResponse {
	return InvitationResponse{
		ID:            inv.ID,
		TeamID:        inv.TeamID,
		TeamName:      inv.TeamName,
		Email:         inv.Email,
		Role:          inv.Role,
		InvitedByName: inv.InvitedByName,
		InvitedAt:     inv.InvitedAt,
	}
}
