package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamhive/teamhive-backend/internal/repository"
	"github.com/teamhive/teamhive-backend/internal/types"
)

func newTestTeamService() (TeamService, *fakeUserRepo, *fakeTeamRepo) {
	userRepo := &fakeUserRepo{}
	teamRepo := &fakeTeamRepo{users: userRepo}
	return NewTeamService(teamRepo, userRepo, nil), userRepo, teamRepo
}

func seedUser(t *testing.T, userRepo *fakeUserRepo, name, email string) *repository.User {
	t.Helper()
	user := &repository.User{Name: name, Email: email, Password: "x", Role: "user"}
	require.NoError(t, userRepo.Create(context.Background(), user))
	return user
}

func TestCreateTeamAssignsOwner(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, teamRepo := newTestTeamService()
	alice := seedUser(t, userRepo, "Alice", "alice@example.com")

	team, err := svc.Create(ctx, "Engineering", alice.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, team.ID)
	assert.Equal(t, "Engineering", team.Name)

	ts, err := teamRepo.FindTeamspace(ctx, team.ID, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, ts)
	assert.Equal(t, types.RoleOwner, ts.Role)

	isOwner, err := svc.IsOwner(ctx, team.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, isOwner)
}

func TestCreateTeamUnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestTeamService()

	_, err := svc.Create(ctx, "Engineering", "missing-user")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAddMemberConflict(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _ := newTestTeamService()
	alice := seedUser(t, userRepo, "Alice", "alice@example.com")
	bob := seedUser(t, userRepo, "Bob", "bob@example.com")

	team, err := svc.Create(ctx, "Engineering", alice.ID)
	require.NoError(t, err)

	ts, err := svc.AddMember(ctx, team.ID, bob.ID, types.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, types.RoleMember, ts.Role)

	_, err = svc.AddMember(ctx, team.ID, bob.ID, types.RoleMember)
	assert.ErrorIs(t, err, ErrAlreadyInTeam)
}

func TestAddMemberRole(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _ := newTestTeamService()
	alice := seedUser(t, userRepo, "Alice", "alice@example.com")
	bob := seedUser(t, userRepo, "Bob", "bob@example.com")
	cara := seedUser(t, userRepo, "Cara", "cara@example.com")

	team, err := svc.Create(ctx, "Engineering", alice.ID)
	require.NoError(t, err)

	// Empty role defaults to member
	ts, err := svc.AddMember(ctx, team.ID, bob.ID, "")
	require.NoError(t, err)
	assert.Equal(t, types.RoleMember, ts.Role)

	// Anything outside the enum is rejected, not coerced
	_, err = svc.AddMember(ctx, team.ID, cara.ID, "admin")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAddMemberUnknownTeamOrUser(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _ := newTestTeamService()
	alice := seedUser(t, userRepo, "Alice", "alice@example.com")

	_, err := svc.AddMember(ctx, "missing-team", alice.ID, types.RoleMember)
	assert.ErrorIs(t, err, ErrNotFound)

	team, err := svc.Create(ctx, "Engineering", alice.ID)
	require.NoError(t, err)

	_, err = svc.AddMember(ctx, team.ID, "missing-user", types.RoleMember)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListMembers(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _ := newTestTeamService()
	alice := seedUser(t, userRepo, "Alice", "alice@example.com")
	bob := seedUser(t, userRepo, "Bob", "bob@example.com")

	team, err := svc.Create(ctx, "Engineering", alice.ID)
	require.NoError(t, err)
	_, err = svc.AddMember(ctx, team.ID, bob.ID, types.RoleMember)
	require.NoError(t, err)

	members, err := svc.ListMembers(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, alice.ID, members[0].UserID)
	assert.Equal(t, types.RoleOwner, members[0].Role)
	assert.Equal(t, bob.ID, members[1].UserID)
	require.NotNil(t, members[1].User)
	assert.Equal(t, "Bob", members[1].User.Name)
}

func TestRemoveMemberScopedToTeam(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, teamRepo := newTestTeamService()
	alice := seedUser(t, userRepo, "Alice", "alice@example.com")
	bob := seedUser(t, userRepo, "Bob", "bob@example.com")

	teamA, err := svc.Create(ctx, "Team A", alice.ID)
	require.NoError(t, err)
	teamB, err := svc.Create(ctx, "Team B", alice.ID)
	require.NoError(t, err)

	tsBob, err := svc.AddMember(ctx, teamA.ID, bob.ID, types.RoleMember)
	require.NoError(t, err)

	// Removing a teamspace through the wrong team must not touch it
	err = svc.RemoveMember(ctx, teamB.ID, tsBob.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	still, err := teamRepo.FindTeamspace(ctx, teamA.ID, bob.ID)
	require.NoError(t, err)
	assert.NotNil(t, still)

	require.NoError(t, svc.RemoveMember(ctx, teamA.ID, tsBob.ID))
	gone, err := teamRepo.FindTeamspace(ctx, teamA.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestDeleteTeamRemovesMemberships(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, teamRepo := newTestTeamService()
	alice := seedUser(t, userRepo, "Alice", "alice@example.com")
	bob := seedUser(t, userRepo, "Bob", "bob@example.com")

	team, err := svc.Create(ctx, "Engineering", alice.ID)
	require.NoError(t, err)
	_, err = svc.AddMember(ctx, team.ID, bob.ID, types.RoleMember)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, team.ID))

	gone, err := svc.GetByID(ctx, team.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, gone)
	assert.Empty(t, teamRepo.teamspaces)

	assert.ErrorIs(t, svc.Delete(ctx, team.ID), ErrNotFound)
}

func TestListByUser(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _ := newTestTeamService()
	alice := seedUser(t, userRepo, "Alice", "alice@example.com")
	bob := seedUser(t, userRepo, "Bob", "bob@example.com")

	first, err := svc.Create(ctx, "First", alice.ID)
	require.NoError(t, err)
	second, err := svc.Create(ctx, "Second", alice.ID)
	require.NoError(t, err)
	_, err = svc.AddMember(ctx, second.ID, bob.ID, types.RoleMember)
	require.NoError(t, err)

	teams, err := svc.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, first.ID, teams[0].ID)
	assert.Equal(t, second.ID, teams[1].ID)
	assert.Equal(t, types.RoleOwner, teams[0].Role)

	bobTeams, err := svc.ListByUser(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobTeams, 1)
	assert.Equal(t, second.ID, bobTeams[0].ID)
	assert.Equal(t, types.RoleMember, bobTeams[0].Role)
}

func TestUpdateTeam(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _ := newTestTeamService()
	alice := seedUser(t, userRepo, "Alice", "alice@example.com")

	team, err := svc.Create(ctx, "Old Name", alice.ID)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, team.ID, "New Name")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)

	_, err = svc.Update(ctx, "missing-team", "Whatever")
	assert.ErrorIs(t, err, ErrNotFound)
}
