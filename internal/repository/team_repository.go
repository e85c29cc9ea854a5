package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TeamRepository defines team and teamspace data operations
type TeamRepository interface {
	// Create inserts the team and the owner's teamspace row in one
	// transaction.
	Create(ctx context.Context, team *Team, ownerUserID string) error
	FindByID(ctx context.Context, id string) (*Team, error)
	FindByUserID(ctx context.Context, userID string) ([]*TeamWithMembership, error)
	Update(ctx context.Context, team *Team) error
	// Delete removes the team's teamspaces before the team row itself,
	// in one transaction.
	Delete(ctx context.Context, id string) error

	// Teamspace operations
	AddMember(ctx context.Context, ts *Teamspace) error
	FindMembers(ctx context.Context, teamID string) ([]*Teamspace, error)
	FindTeamspace(ctx context.Context, teamID, userID string) (*Teamspace, error)
	RemoveTeamspace(ctx context.Context, teamID, teamspaceID string) (int, error)
	IsOwner(ctx context.Context, teamID, userID string) (bool, error)
}

type pgTeamRepository struct {
	pool *pgxpool.Pool
}

// NewTeamRepository creates a new PostgreSQL team repository
func NewTeamRepository(pool *pgxpool.Pool) TeamRepository {
	return &pgTeamRepository{pool: pool}
}

func (r *pgTeamRepository) Create(ctx context.Context, team *Team, ownerUserID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO teams (name) VALUES ($1) RETURNING id, created_at, updated_at`,
		team.Name,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO teamspaces (user_id, team_id, role, joined_at) VALUES ($1, $2, 'owner', NOW())`,
		ownerUserID, team.ID,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *pgTeamRepository) FindByID(ctx context.Context, id string) (*Team, error) {
	query := `SELECT id, name, created_at, updated_at FROM teams WHERE id = $1`
	team := &Team{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&team.ID, &team.Name, &team.CreatedAt, &team.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (r *pgTeamRepository) FindByUserID(ctx context.Context, userID string) ([]*TeamWithMembership, error) {
	query := `
		SELECT t.id, t.name, t.created_at, t.updated_at, ts.role, ts.joined_at
		FROM teams t
		INNER JOIN teamspaces ts ON t.id = ts.team_id
		WHERE ts.user_id = $1
		ORDER BY t.created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*TeamWithMembership
	for rows.Next() {
		tm := &TeamWithMembership{}
		if err := rows.Scan(
			&tm.ID, &tm.Name, &tm.CreatedAt, &tm.UpdatedAt, &tm.Role, &tm.JoinedAt,
		); err != nil {
			return nil, err
		}
		teams = append(teams, tm)
	}
	return teams, nil
}

func (r *pgTeamRepository) Update(ctx context.Context, team *Team) error {
	query := `UPDATE teams SET name = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, team.ID, team.Name)
	return err
}

func (r *pgTeamRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Child rows first to satisfy referential integrity
	if _, err := tx.Exec(ctx, `DELETE FROM teamspaces WHERE team_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *pgTeamRepository) AddMember(ctx context.Context, ts *Teamspace) error {
	query := `
		INSERT INTO teamspaces (user_id, team_id, role, joined_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, joined_at, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query, ts.UserID, ts.TeamID, ts.Role).
		Scan(&ts.ID, &ts.JoinedAt, &ts.CreatedAt, &ts.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *pgTeamRepository) FindMembers(ctx context.Context, teamID string) ([]*Teamspace, error) {
	query := `
		SELECT ts.id, ts.user_id, ts.team_id, ts.role, ts.joined_at, u.name, u.email
		FROM teamspaces ts
		INNER JOIN users u ON ts.user_id = u.id
		WHERE ts.team_id = $1
		ORDER BY ts.joined_at ASC
	`
	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*Teamspace
	for rows.Next() {
		member := &Teamspace{User: &User{}}
		if err := rows.Scan(
			&member.ID, &member.UserID, &member.TeamID, &member.Role, &member.JoinedAt,
			&member.User.Name, &member.User.Email,
		); err != nil {
			return nil, err
		}
		member.User.ID = member.UserID
		members = append(members, member)
	}
	return members, nil
}

func (r *pgTeamRepository) FindTeamspace(ctx context.Context, teamID, userID string) (*Teamspace, error) {
	query := `
		SELECT id, user_id, team_id, role, joined_at, created_at, updated_at
		FROM teamspaces WHERE team_id = $1 AND user_id = $2
	`
	ts := &Teamspace{}
	err := r.pool.QueryRow(ctx, query, teamID, userID).Scan(
		&ts.ID, &ts.UserID, &ts.TeamID, &ts.Role, &ts.JoinedAt, &ts.CreatedAt, &ts.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ts, nil
}

func (r *pgTeamRepository) RemoveTeamspace(ctx context.Context, teamID, teamspaceID string) (int, error) {
	// Scoped to the team so a teamspace id from another team cannot be
	// deleted through this path.
	query := `DELETE FROM teamspaces WHERE id = $1 AND team_id = $2`
	tag, err := r.pool.Exec(ctx, query, teamspaceID, teamID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *pgTeamRepository) IsOwner(ctx context.Context, teamID, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM teamspaces WHERE team_id = $1 AND user_id = $2 AND role = 'owner')`
	var exists bool
	err := r.pool.QueryRow(ctx, query, teamID, userID).Scan(&exists)
	return exists, err
}
