// internal/seed/seed.go
package seed

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/teamhive/teamhive-backend/internal/repository"
	"github.com/teamhive/teamhive-backend/internal/types"
)

func SeedData(repos *repository.Repositories) {
	ctx := context.Background()

	// Check if data already exists
	users, _ := repos.UserRepo.FindAll(ctx)
	if len(users) > 0 {
		log.Println("[Seed] Data already exists, skipping...")
		return
	}

	log.Println("[Seed] 🌱 Creating initial data...")

	password, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	// 1. ALICE - Team owner
	alice := &repository.User{
		Email:    "alice@teamhive.io",
		Password: string(password),
		Name:     "Alice Moran",
		Role:     "user",
	}
	repos.UserRepo.Create(ctx, alice)

	// 2. BOB - Team member
	bob := &repository.User{
		Email:    "bob@teamhive.io",
		Password: string(password),
		Name:     "Bob Castillo",
		Role:     "user",
	}
	repos.UserRepo.Create(ctx, bob)

	// 3. CARA - Invited, not yet a member
	cara := &repository.User{
		Email:    "cara@teamhive.io",
		Password: string(password),
		Name:     "Cara Singh",
		Role:     "user",
	}
	repos.UserRepo.Create(ctx, cara)

	log.Printf("✅ Created 3 users: Alice (owner), Bob (member), Cara (invitee)")

	// Alice creates the Engineering team and becomes its owner
	team := &repository.Team{Name: "Engineering"}
	if err := repos.TeamRepo.Create(ctx, team, alice.ID); err != nil {
		log.Printf("❌ [Seed] Failed to create team: %v", err)
		return
	}

	// Bob joins as a member
	repos.TeamRepo.AddMember(ctx, &repository.Teamspace{
		UserID: bob.ID,
		TeamID: team.ID,
		Role:   types.RoleMember,
	})

	// Cara has a pending invitation
	repos.InvitationRepo.Create(ctx, &repository.Invitation{
		TeamID:        team.ID,
		TeamName:      team.Name,
		Email:         cara.Email,
		Role:          types.RoleMember,
		InvitedByName: alice.Name,
	})

	log.Println("✅ [Seed] Engineering team seeded with owner, member and pending invitation")
}
