// internal/repository/repository.go
package repository

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================================
// Models / Entities
// ============================================

type User struct {
	ID              string
	Name            string
	Email           string
	Password        string
	Role            string
	IsEmailVerified bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Team struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Teamspace is a membership record linking one user to one team with a role.
type Teamspace struct {
	ID        string
	UserID    string
	TeamID    string
	Role      string
	JoinedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	User      *User // populated by member listings
}

// TeamWithMembership is a team joined with the querying user's own
// membership fields.
type TeamWithMembership struct {
	Team
	Role     string
	JoinedAt time.Time
}

// Invitation is a pending invitation to join a team. TeamName is a
// snapshot taken at creation time, not a live join.
type Invitation struct {
	ID            string
	TeamID        string
	TeamName      string
	Email         string
	Role          string
	InvitedByName string
	InvitedAt     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Token struct {
	ID          string
	Token       string
	UserID      string
	Type        string
	Expires     time.Time
	Blacklisted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ============================================
// Shared repository errors
// ============================================

var (
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("duplicate row")
	// ErrInvalidTokenType is returned when a token row carries a type
	// outside {refresh, reset_password, verify_email}.
	ErrInvalidTokenType = errors.New("invalid token type")
)

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ============================================
// Repositories Container
// ============================================

type Repositories struct {
	UserRepo       UserRepository
	TeamRepo       TeamRepository
	InvitationRepo InvitationRepository
	TokenRepo      TokenRepository
}

func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepo:       NewUserRepository(pool),
		TeamRepo:       NewTeamRepository(pool),
		InvitationRepo: NewInvitationRepository(pool),
		TokenRepo:      NewTokenRepository(pool),
	}
}
