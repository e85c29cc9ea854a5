package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/teamhive/teamhive-backend/internal/db"
	"github.com/teamhive/teamhive-backend/internal/repository"
	"github.com/teamhive/teamhive-backend/internal/types"
)

// TeamService defines team business logic
type TeamService interface {
	Create(ctx context.Context, name, ownerUserID string) (*repository.Team, error)
	GetByID(ctx context.Context, id string) (*repository.Team, error)
	ListByUser(ctx context.Context, userID string) ([]*repository.TeamWithMembership, error)
	Update(ctx context.Context, id, name string) (*repository.Team, error)
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, teamID, userID, role string) (*repository.Teamspace, error)
	ListMembers(ctx context.Context, teamID string) ([]*repository.Teamspace, error)
	RemoveMember(ctx context.Context, teamID, teamspaceID string) error
	FindTeamspace(ctx context.Context, teamID, userID string) (*repository.Teamspace, error)
	IsOwner(ctx context.Context, teamID, userID string) (bool, error)
}

type teamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
	cache    *db.RedisDB
}

// NewTeamService creates a new team service
func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository, cache *db.RedisDB) TeamService {
	return &teamService{teamRepo: teamRepo, userRepo: userRepo, cache: cache}
}

func membersCacheKey(teamID string) string {
	return fmt.Sprintf("team:%s:members", teamID)
}

func (s *teamService) Create(ctx context.Context, name, ownerUserID string) (*repository.Team, error) {
	user, err := s.userRepo.FindByID(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	team := &repository.Team{Name: name}
	if err := s.teamRepo.Create(ctx, team, ownerUserID); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id string) (*repository.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrNotFound
	}
	return team, nil
}

func (s *teamService) ListByUser(ctx context.Context, userID string) ([]*repository.TeamWithMembership, error) {
	return s.teamRepo.FindByUserID(ctx, userID)
}

func (s *teamService) Update(ctx context.Context, id, name string) (*repository.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrNotFound
	}

	team.Name = name
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, id string) error {
	team, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if team == nil {
		return ErrNotFound
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateMembers(ctx, id)
	return nil
}

func (s *teamService) AddMember(ctx context.Context, teamID, userID, role string) (*repository.Teamspace, error) {
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

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	ts := &repository.Teamspace{UserID: userID, TeamID: teamID, Role: role}
	if err := s.teamRepo.AddMember(ctx, ts); err != nil {
		if err == repository.ErrDuplicate {
			return nil, ErrAlreadyInTeam
		}
		return nil, err
	}
	s.invalidateMembers(ctx, teamID)
	return ts, nil
}

func (s *teamService) ListMembers(ctx context.Context, teamID string) ([]*repository.Teamspace, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrNotFound
	}

	if s.cache != nil {
		var cached []*repository.Teamspace
		if err := s.cache.GetCache(ctx, membersCacheKey(teamID), &cached); err == nil {
			return cached, nil
		}
	}

	members, err := s.teamRepo.FindMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetCache(ctx, membersCacheKey(teamID), members, 5*time.Minute); err != nil {
			log.Printf("⚠️ Failed to cache team members: %v", err)
		}
	}
	return members, nil
}

func (s *teamService) RemoveMember(ctx context.Context, teamID, teamspaceID string) error {
	rows, err := s.teamRepo.RemoveTeamspace(ctx, teamID, teamspaceID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.invalidateMembers(ctx, teamID)
	return nil
}

func (s *teamService) FindTeamspace(ctx context.Context, teamID, userID string) (*repository.Teamspace, error) {
	return s.teamRepo.FindTeamspace(ctx, teamID, userID)
}

func (s *teamService) IsOwner(ctx context.Context, teamID, userID string) (bool, error) {
	return s.teamRepo.IsOwner(ctx, teamID, userID)
}

func (s *teamService) invalidateMembers(ctx context.Context, teamID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCache(ctx, membersCacheKey(teamID)); err != nil {
		log.Printf("⚠️ Failed to invalidate team members cache: %v", err)
	}
}
