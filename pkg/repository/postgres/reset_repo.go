package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freetrust/backend/pkg/auth"
)

// ResetTokenRepository implements auth.ResetTokenRepository backed by the
// password_resets table.
type ResetTokenRepository struct {
	pool *pgxpool.Pool
}

func NewResetTokenRepository(pool *pgxpool.Pool) (*ResetTokenRepository, error) {
	repo := &ResetTokenRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *ResetTokenRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS password_resets (
			token TEXT PRIMARY KEY,
			email TEXT NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_password_resets_email ON password_resets(email);
	`)
	return err
}

func (r *ResetTokenRepository) Create(ctx context.Context, token auth.ResetToken) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO password_resets (token, email, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`, token.Token, strings.ToLower(token.Email), token.ExpiresAt, token.CreatedAt)
	return err
}

// GetByToken treats rows past their expiry as absent.
func (r *ResetTokenRepository) GetByToken(ctx context.Context, token string) (auth.ResetToken, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT token, email, expires_at, created_at
		FROM password_resets WHERE token = $1 AND expires_at > now()
	`, token)
	var rec auth.ResetToken
	var expiresAt, createdAt time.Time
	if err := row.Scan(&rec.Token, &rec.Email, &expiresAt, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.ResetToken{}, auth.ErrNotFound
		}
		return auth.ResetToken{}, err
	}
	rec.ExpiresAt = expiresAt.UTC()
	rec.CreatedAt = createdAt.UTC()
	return rec, nil
}

// Delete reports ErrNotFound when the token is already gone, which makes a
// concurrent second consumption of the same token fail.
func (r *ResetTokenRepository) Delete(ctx context.Context, token string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM password_resets WHERE token = $1`, token)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return auth.ErrNotFound
	}
	return nil
}
