package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InvitationRepository defines invitation data operations
type InvitationRepository interface {
	Create(ctx context.Context, invitation *Invitation) error
	FindByID(ctx context.Context, id string) (*Invitation, error)
	FindByTeamID(ctx context.Context, teamID string) ([]*Invitation, error)
	FindByEmail(ctx context.Context, email string) ([]*Invitation, error)
	Delete(ctx context.Context, id string) (int, error)
}

type pgInvitationRepository struct {
	pool *pgxpool.Pool
}

// NewInvitationRepository creates a new PostgreSQL invitation repository
func NewInvitationRepository(pool *pgxpool.Pool) InvitationRepository {
	return &pgInvitationRepository{pool: pool}
}

func (r *pgInvitationRepository) Create(ctx context.Context, invitation *Invitation) error {
	query := `
		INSERT INTO invitations (team_id, team_name, email, role, invited_by_name, invited_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, invited_at, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		invitation.TeamID, invitation.TeamName, invitation.Email,
		invitation.Role, invitation.InvitedByName,
	).Scan(&invitation.ID, &invitation.InvitedAt, &invitation.CreatedAt, &invitation.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *pgInvitationRepository) FindByID(ctx context.Context, id string) (*Invitation, error) {
	query := `
		SELECT id, team_id, team_name, email, role, invited_by_name, invited_at, created_at, updated_at
		FROM invitations WHERE id = $1
	`
	invitation := &Invitation{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&invitation.ID, &invitation.TeamID, &invitation.TeamName, &invitation.Email,
		&invitation.Role, &invitation.InvitedByName, &invitation.InvitedAt,
		&invitation.CreatedAt, &invitation.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return invitation, nil
}

func (r *pgInvitationRepository) FindByTeamID(ctx context.Context, teamID string) ([]*Invitation, error) {
	query := `
		SELECT id, team_id, team_name, email, role, invited_by_name, invited_at, created_at, updated_at
		FROM invitations WHERE team_id = $1
		ORDER BY invited_at ASC
	`
	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInvitations(rows)
}

func (r *pgInvitationRepository) FindByEmail(ctx context.Context, email string) ([]*Invitation, error) {
	query := `
		SELECT id, team_id, team_name, email, role, invited_by_name, invited_at, created_at, updated_at
		FROM invitations WHERE LOWER(email) = LOWER($1)
		ORDER BY invited_at ASC
	`
	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInvitations(rows)
}

func (r *pgInvitationRepository) Delete(ctx context.Context, id string) (int, error) {
	query := `DELETE FROM invitations WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func scanInvitations(rows pgx.Rows) ([]*Invitation, error) {
	var invitations []*Invitation
	for rows.Next() {
		invitation := &Invitation{}
		if err := rows.Scan(
			&invitation.ID, &invitation.TeamID, &invitation.TeamName, &invitation.Email,
			&invitation.Role, &invitation.InvitedByName, &invitation.InvitedAt,
			&invitation.CreatedAt, &invitation.UpdatedAt,
		); err != nil {
			return nil, err
		}
		invitations = append(invitations, invitation)
	}
	return invitations, nil
}
