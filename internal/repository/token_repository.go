package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamhive/teamhive-backend/internal/types"
)

// TokenRepository defines persisted token data operations
type TokenRepository interface {
	Create(ctx context.Context, token *Token) error
	FindByToken(ctx context.Context, tokenString, tokenType string) (*Token, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByUserAndType(ctx context.Context, userID, tokenType string) (int, error)
	Blacklist(ctx context.Context, tokenString string) (int, error)
	DeleteExpired(ctx context.Context) (int, error)
}

type pgTokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository creates a new PostgreSQL token repository
func NewTokenRepository(pool *pgxpool.Pool) TokenRepository {
	return &pgTokenRepository{pool: pool}
}

func (r *pgTokenRepository) Create(ctx context.Context, token *Token) error {
	if !types.PersistedTokenTypes[token.Type] {
		return ErrInvalidTokenType
	}
	query := `
		INSERT INTO tokens (token, user_id, type, expires, blacklisted)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		token.Token, token.UserID, token.Type, token.Expires, token.Blacklisted,
	).Scan(&token.ID, &token.CreatedAt, &token.UpdatedAt)
}

func (r *pgTokenRepository) FindByToken(ctx context.Context, tokenString, tokenType string) (*Token, error) {
	query := `
		SELECT id, token, user_id, type, expires, blacklisted, created_at, updated_at
		FROM tokens WHERE token = $1 AND type = $2
	`
	token := &Token{}
	err := r.pool.QueryRow(ctx, query, tokenString, tokenType).Scan(
		&token.ID, &token.Token, &token.UserID, &token.Type,
		&token.Expires, &token.Blacklisted, &token.CreatedAt, &token.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return token, nil
}

func (r *pgTokenRepository) DeleteByID(ctx context.Context, id string) error {
	query := `DELETE FROM tokens WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *pgTokenRepository) DeleteByUserAndType(ctx context.Context, userID, tokenType string) (int, error) {
	query := `DELETE FROM tokens WHERE user_id = $1 AND type = $2`
	tag, err := r.pool.Exec(ctx, query, userID, tokenType)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *pgTokenRepository) Blacklist(ctx context.Context, tokenString string) (int, error) {
	query := `UPDATE tokens SET blacklisted = TRUE, updated_at = NOW() WHERE token = $1`
	tag, err := r.pool.Exec(ctx, query, tokenString)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *pgTokenRepository) DeleteExpired(ctx context.Context) (int, error) {
	query := `DELETE FROM tokens WHERE expires < NOW()`
	tag, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
