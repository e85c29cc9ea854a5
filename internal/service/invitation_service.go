package service

import (
	"context"
	"log"

	"github.com/teamhive/teamhive-backend/internal/email"
	"github.com/teamhive/teamhive-backend/internal/repository"
	"github.com/teamhive/teamhive-backend/internal/types"
)

// InvitationService defines invitation business logic
type InvitationService interface {
	Create(ctx context.Context, teamID, inviteeEmail, role, invitedByName string) (*repository.Invitation, error)
	ListByTeam(ctx context.Context, teamID string) ([]*repository.Invitation, error)
	ListByEmail(ctx context.Context, email string) ([]*repository.Invitation, error)
	Delete(ctx context.Context, teamID, id string) error
	Resolve(ctx context.Context, id, callerEmail, callerUserID, action string) (*repository.Teamspace, error)
}

type invitationService struct {
	invitationRepo repository.InvitationRepository
	teamRepo       repository.TeamRepository
	userRepo       repository.UserRepository
	emailSvc       *email.Service
}

// NewInvitationService creates a new invitation service
func NewInvitationService(invitationRepo repository.InvitationRepository, teamRepo repository.TeamRepository, userRepo repository.UserRepository, emailSvc *email.Service) InvitationService {
	return &invitationService{
		invitationRepo: invitationRepo,
		teamRepo:       teamRepo,
		userRepo:       userRepo,
		emailSvc:       emailSvc,
	}
}

// Create records a pending invitation. The role is stored on the row;
// acceptance currently grants member regardless (see Resolve).
func (s *invitationService) Create(ctx context.Context, teamID, inviteeEmail, role, invitedByName string) (*repository.Invitation, error) {
	if role == "" {
		role = types.RoleMember
	} else if !types.ValidTeamspaceRoles[role] {
		return nil, ErrInvalidRole
	}

	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrNotFound
	}

	invitee, err := s.userRepo.FindByEmail(ctx, inviteeEmail)
	if err != nil {
		return nil, err
	}
	if invitee != nil {
		ts, err := s.teamRepo.FindTeamspace(ctx, teamID, invitee.ID)
		if err != nil {
			return nil, err
		}
		if ts != nil {
			return nil, ErrAlreadyInTeam
		}
	}

	invitation := &repository.Invitation{
		TeamID:        teamID,
		TeamName:      team.Name,
		Email:         inviteeEmail,
		Role:          role,
		InvitedByName: invitedByName,
	}
	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		if err == repository.ErrDuplicate {
			return nil, ErrAlreadyInvited
		}
		return nil, err
	}

	if s.emailSvc != nil {
		go func() {
			if err := s.emailSvc.SendTeamInvitation(inviteeEmail, team.Name, invitedByName); err != nil {
				log.Printf("⚠️ Failed to send invitation email to %s: %v", inviteeEmail, err)
			}
		}()
	}

	return invitation, nil
}

func (s *invitationService) ListByTeam(ctx context.Context, teamID string) ([]*repository.Invitation, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrNotFound
	}
	return s.invitationRepo.FindByTeamID(ctx, teamID)
}

func (s *invitationService) ListByEmail(ctx context.Context, email string) ([]*repository.Invitation, error) {
	return s.invitationRepo.FindByEmail(ctx, email)
}

// Delete cancels a pending invitation. The team scope guards against
// cancelling another team's invitation through an owner-gated route.
func (s *invitationService) Delete(ctx context.Context, teamID, id string) error {
	invitation, err := s.invitationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if invitation == nil || invitation.TeamID != teamID {
		return ErrNotFound
	}

	rows, err := s.invitationRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Resolve accepts or rejects a pending invitation on behalf of the
// invited user. The invitation is consumed either way.
func (s *invitationService) Resolve(ctx context.Context, id, callerEmail, callerUserID, action string) (*repository.Teamspace, error) {
	invitation, err := s.invitationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invitation == nil {
		return nil, ErrNotFound
	}
	if invitation.Email != callerEmail {
		return nil, ErrEmailMismatch
	}

	switch action {
	case types.ActionAccept:
		ts := &repository.Teamspace{
			UserID: callerUserID,
			TeamID: invitation.TeamID,
			Role:   types.RoleMember,
		}
		if err := s.teamRepo.AddMember(ctx, ts); err != nil {
			if err == repository.ErrDuplicate {
				return nil, ErrAlreadyInTeam
			}
			return nil, err
		}
		if _, err := s.invitationRepo.Delete(ctx, id); err != nil {
			return nil, err
		}
		return ts, nil
	case types.ActionReject:
		if _, err := s.invitationRepo.Delete(ctx, id); err != nil {
			return nil, err
		}
		return nil, nil
	default:
		return nil, ErrInvalidAction
	}
}
