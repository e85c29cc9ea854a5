package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/teamhive/teamhive-backend/internal/repository"
	"github.com/teamhive/teamhive-backend/internal/types"
)

// In-memory repository fakes. Slices preserve insertion order so the
// list operations behave like the SQL ORDER BY clauses they stand in for.

type fakeUserRepo struct {
	users []*repository.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *repository.User) error {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	user.ID = uuid.NewString()
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*repository.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*repository.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]*repository.User, error) {
	return f.users, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *repository.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			user.UpdatedAt = time.Now()
			f.users[i] = user
			return nil
		}
	}
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) (int, error) {
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeUserRepo) IsEmailTaken(ctx context.Context, email, excludeUserID string) (bool, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) && u.ID != excludeUserID {
			return true, nil
		}
	}
	return false, nil
}

type fakeTeamRepo struct {
	teams      []*repository.Team
	teamspaces []*repository.Teamspace
	users      *fakeUserRepo
}

func (f *fakeTeamRepo) Create(ctx context.Context, team *repository.Team, ownerUserID string) error {
	team.ID = uuid.NewString()
	team.CreatedAt = time.Now()
	team.UpdatedAt = team.CreatedAt
	f.teams = append(f.teams, team)
	f.teamspaces = append(f.teamspaces, &repository.Teamspace{
		ID:       uuid.NewString(),
		UserID:   ownerUserID,
		TeamID:   team.ID,
		Role:     types.RoleOwner,
		JoinedAt: time.Now(),
	})
	return nil
}

func (f *fakeTeamRepo) FindByID(ctx context.Context, id string) (*repository.Team, error) {
	for _, t := range f.teams {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTeamRepo) FindByUserID(ctx context.Context, userID string) ([]*repository.TeamWithMembership, error) {
	var result []*repository.TeamWithMembership
	for _, t := range f.teams {
		for _, ts := range f.teamspaces {
			if ts.TeamID == t.ID && ts.UserID == userID {
				result = append(result, &repository.TeamWithMembership{
					Team:     *t,
					Role:     ts.Role,
					JoinedAt: ts.JoinedAt,
				})
			}
		}
	}
	return result, nil
}

func (f *fakeTeamRepo) Update(ctx context.Context, team *repository.Team) error {
	for i, t := range f.teams {
		if t.ID == team.ID {
			team.UpdatedAt = time.Now()
			f.teams[i] = team
			return nil
		}
	}
	return nil
}

func (f *fakeTeamRepo) Delete(ctx context.Context, id string) error {
	kept := f.teamspaces[:0]
	for _, ts := range f.teamspaces {
		if ts.TeamID != id {
			kept = append(kept, ts)
		}
	}
	f.teamspaces = kept
	for i, t := range f.teams {
		if t.ID == id {
			f.teams = append(f.teams[:i], f.teams[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeTeamRepo) AddMember(ctx context.Context, ts *repository.Teamspace) error {
	for _, existing := range f.teamspaces {
		if existing.UserID == ts.UserID && existing.TeamID == ts.TeamID {
			return repository.ErrDuplicate
		}
	}
	ts.ID = uuid.NewString()
	ts.JoinedAt = time.Now()
	f.teamspaces = append(f.teamspaces, ts)
	return nil
}

func (f *fakeTeamRepo) FindMembers(ctx context.Context, teamID string) ([]*repository.Teamspace, error) {
	var result []*repository.Teamspace
	for _, ts := range f.teamspaces {
		if ts.TeamID == teamID {
			if f.users != nil {
				ts.User, _ = f.users.FindByID(ctx, ts.UserID)
			}
			result = append(result, ts)
		}
	}
	return result, nil
}

func (f *fakeTeamRepo) FindTeamspace(ctx context.Context, teamID, userID string) (*repository.Teamspace, error) {
	for _, ts := range f.teamspaces {
		if ts.TeamID == teamID && ts.UserID == userID {
			return ts, nil
		}
	}
	return nil, nil
}

func (f *fakeTeamRepo) RemoveTeamspace(ctx context.Context, teamID, teamspaceID string) (int, error) {
	for i, ts := range f.teamspaces {
		if ts.ID == teamspaceID && ts.TeamID == teamID {
			f.teamspaces = append(f.teamspaces[:i], f.teamspaces[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeTeamRepo) IsOwner(ctx context.Context, teamID, userID string) (bool, error) {
	for _, ts := range f.teamspaces {
		if ts.TeamID == teamID && ts.UserID == userID && ts.Role == types.RoleOwner {
			return true, nil
		}
	}
	return false, nil
}

type fakeInvitationRepo struct {
	invitations []*repository.Invitation
}

func (f *fakeInvitationRepo) Create(ctx context.Context, invitation *repository.Invitation) error {
	for _, inv := range f.invitations {
		if inv.TeamID == invitation.TeamID && strings.EqualFold(inv.Email, invitation.Email) {
			return repository.ErrDuplicate
		}
	}
	invitation.ID = uuid.NewString()
	invitation.InvitedAt = time.Now()
	invitation.CreatedAt = invitation.InvitedAt
	invitation.UpdatedAt = invitation.InvitedAt
	f.invitations = append(f.invitations, invitation)
	return nil
}

func (f *fakeInvitationRepo) FindByID(ctx context.Context, id string) (*repository.Invitation, error) {
	for _, inv := range f.invitations {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, nil
}

func (f *fakeInvitationRepo) FindByTeamID(ctx context.Context, teamID string) ([]*repository.Invitation, error) {
	var result []*repository.Invitation
	for _, inv := range f.invitations {
		if inv.TeamID == teamID {
			result = append(result, inv)
		}
	}
	return result, nil
}

func (f *fakeInvitationRepo) FindByEmail(ctx context.Context, email string) ([]*repository.Invitation, error) {
	var result []*repository.Invitation
	for _, inv := range f.invitations {
		if strings.EqualFold(inv.Email, email) {
			result = append(result, inv)
		}
	}
	return result, nil
}

func (f *fakeInvitationRepo) Delete(ctx context.Context, id string) (int, error) {
	for i, inv := range f.invitations {
		if inv.ID == id {
			f.invitations = append(f.invitations[:i], f.invitations[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeTokenRepo struct {
	tokens []*repository.Token
}

func (f *fakeTokenRepo) Create(ctx context.Context, token *repository.Token) error {
	if !types.PersistedTokenTypes[token.Type] {
		return repository.ErrInvalidTokenType
	}
	token.ID = uuid.NewString()
	token.CreatedAt = time.Now()
	token.UpdatedAt = token.CreatedAt
	f.tokens = append(f.tokens, token)
	return nil
}

func (f *fakeTokenRepo) FindByToken(ctx context.Context, tokenString, tokenType string) (*repository.Token, error) {
	for _, t := range f.tokens {
		if t.Token == tokenString && t.Type == tokenType {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTokenRepo) DeleteByID(ctx context.Context, id string) error {
	for i, t := range f.tokens {
		if t.ID == id {
			f.tokens = append(f.tokens[:i], f.tokens[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeTokenRepo) DeleteByUserAndType(ctx context.Context, userID, tokenType string) (int, error) {
	count := 0
	kept := f.tokens[:0]
	for _, t := range f.tokens {
		if t.UserID == userID && t.Type == tokenType {
			count++
			continue
		}
		kept = append(kept, t)
	}
	f.tokens = kept
	return count, nil
}

func (f *fakeTokenRepo) Blacklist(ctx context.Context, tokenString string) (int, error) {
	count := 0
	for _, t := range f.tokens {
		if t.Token == tokenString {
			t.Blacklisted = true
			count++
		}
	}
	return count, nil
}

func (f *fakeTokenRepo) DeleteExpired(ctx context.Context) (int, error) {
	count := 0
	now := time.Now()
	kept := f.tokens[:0]
	for _, t := range f.tokens {
		if t.Expires.Before(now) {
			count++
			continue
		}
		kept = append(kept, t)
	}
	f.tokens = kept
	return count, nil
}
