package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chenterphai/article-stack/internal/common"
	"github.com/chenterphai/article-stack/internal/dbx"
	"github.com/chenterphai/article-stack/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, token string, validity time.Duration) (*models.Session, error) {
	query := `
		INSERT INTO sessions (id, user_id, token, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(validity),
	}

	if err := r.db.QueryRowContext(ctx, query,
		session.ID, session.UserID, session.Token, session.ExpiresAt).Scan(&session.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return session, nil
}

func (r *PostgresRepository) FindActiveByUser(ctx context.Context, userID string) (*models.Session, error) {
	// FOR UPDATE: concurrent logins/logouts inside a transaction serialize
	// on the prior session instead of both revoking it and both inserting.
	query := `
		SELECT id, user_id, token, expires_at, revoked, created_at
		FROM sessions
		WHERE user_id = $1 AND revoked = false
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresRepository) FindActiveByUserAndToken(ctx context.Context, userID string, token string) (*models.Session, error) {
	// FOR UPDATE: inside a rotation transaction the second of two
	// concurrent refreshes blocks here and then sees revoked = true.
	query := `
		SELECT id, user_id, token, expires_at, revoked, created_at
		FROM sessions
		WHERE user_id = $1 AND token = $2 AND revoked = false
		FOR UPDATE
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, userID, token))
}

func (r *PostgresRepository) Revoke(ctx context.Context, id string) error {
	query := `
		UPDATE sessions
		SET revoked = true, expires_at = now()
		WHERE id = $1
	`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Session, error) {
	session := &models.Session{}
	err := row.Scan(&session.ID, &session.UserID, &session.Token,
		&session.ExpiresAt, &session.Revoked, &session.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return session, nil
}
