package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func strPtr(s string) *string { return &s }

func TestUserGetByID(t *testing.T) {
	ctx := context.Background()
	userRepo := &fakeUserRepo{}
	svc := NewUserService(userRepo)
	alice := seedUser(t, userRepo, "Alice", "alice@example.com")

	found, err := svc.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Name)

	_, err = svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserUpdateProfile(t *testing.T) {
	ctx := context.Background()
	userRepo := &fakeUserRepo{}
	svc := NewUserService(userRepo)
	alice := seedUser(t, userRepo, "Alice", "alice@example.com")

	updated, err := svc.Update(ctx, alice.ID, UserUpdateInput{Name: strPtr("Alicia")})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)
}

func TestUserUpdateEmailTaken(t *testing.T) {
	ctx := context.Background()
	userRepo := &fakeUserRepo{}
	svc := NewUserService(userRepo)
	alice := seedUser(t, userRepo, "Alice", "alice@example.com")
	seedUser(t, userRepo, "Bob", "bob@example.com")

	_, err := svc.Update(ctx, alice.ID, UserUpdateInput{Email: strPtr("bob@example.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserUpdateEmailResetsVerification(t *testing.T) {
	ctx := context.Background()
	userRepo := &fakeUserRepo{}
	svc := NewUserService(userRepo)
	alice := seedUser(t, userRepo, "Alice", "alice@example.com")
	alice.IsEmailVerified = true

	updated, err := svc.Update(ctx, alice.ID, UserUpdateInput{Email: strPtr("new@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.False(t, updated.IsEmailVerified)
}

func TestUserUpdatePassword(t *testing.T) {
	ctx := context.Background()
	userRepo := &fakeUserRepo{}
	svc := NewUserService(userRepo)
	alice := seedUser(t, userRepo, "Alice", "alice@example.com")

	_, err := svc.Update(ctx, alice.ID, UserUpdateInput{Password: strPtr("weak")})
	assert.ErrorIs(t, err, ErrWeakPassword)

	updated, err := svc.Update(ctx, alice.ID, UserUpdateInput{Password: strPtr("strongpass1")})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("strongpass1")))
}

func TestUserDelete(t *testing.T) {
	ctx := context.Background()
	userRepo := &fakeUserRepo{}
	svc := NewUserService(userRepo)
	alice := seedUser(t, userRepo, "Alice", "alice@example.com")

	require.NoError(t, svc.Delete(ctx, alice.ID))
	assert.ErrorIs(t, svc.Delete(ctx, alice.ID), ErrUserNotFound)
}
