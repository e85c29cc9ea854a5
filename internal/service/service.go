package service

import (
	"errors"

	"github.com/teamhive/teamhive-backend/internal/config"
	"github.com/teamhive/teamhive-backend/internal/db"
	"github.com/teamhive/teamhive-backend/internal/email"
	"github.com/teamhive/teamhive-backend/internal/repository"
)

// Common service errors
var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUserExists         = errors.New("email already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("resource conflict")
	ErrAlreadyInTeam      = errors.New("user already in team")
	ErrAlreadyInvited     = errors.New("user already invited")
	ErrInvalidAction      = errors.New("invalid invitation action")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidTokenType   = errors.New("invalid token type")
	ErrEmailTaken         = errors.New("email already taken")
	ErrEmailMismatch      = errors.New("invalid user email")
	ErrWeakPassword       = errors.New("password must be at least 8 characters and contain at least one letter and one number")
)

// Services holds all service instances
type Services struct {
	Auth       AuthService
	User       UserService
	Team       TeamService
	Invitation InvitationService
}

// ServiceDeps holds dependencies for services
type ServiceDeps struct {
	Config   *config.Config
	Repos    *repository.Repositories
	EmailSvc *email.Service
	Cache    *db.RedisDB
}

// NewServices creates all services with their dependencies
func NewServices(deps ServiceDeps) *Services {
	return &Services{
		Auth:       NewAuthService(deps.Config, deps.Repos.UserRepo, deps.Repos.TokenRepo, deps.EmailSvc),
		User:       NewUserService(deps.Repos.UserRepo),
		Team:       NewTeamService(deps.Repos.TeamRepo, deps.Repos.UserRepo, deps.Cache),
		Invitation: NewInvitationService(deps.Repos.InvitationRepo, deps.Repos.TeamRepo, deps.Repos.UserRepo, deps.EmailSvc),
	}
}
