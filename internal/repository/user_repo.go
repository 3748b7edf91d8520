package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	// EnsureUser resolves the caller-supplied identifier into a known
	// user, creating the row on first sight. A missing or malformed
	// identifier yields a freshly minted one. Returns the effective id.
	EnsureUser(ctx context.Context, userID string) (string, error)
}

type userRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) UserRepository {
	return &userRepo{pool: pool}
}

func (r *userRepo) EnsureUser(ctx context.Context, userID string) (string, error) {
	effectiveID := userID
	if uuid.Validate(effectiveID) != nil {
		effectiveID = uuid.NewString()
	}
	email := fmt.Sprintf("guest+%s@logosai.app", effectiveID)

	const q = `INSERT INTO users (id, email, name)
               VALUES ($1, $2, $3)
               ON CONFLICT (id) DO NOTHING`
	if _, err := r.pool.Exec(ctx, q, effectiveID, email, "Visitante Logos AI"); err != nil {
		return "", fmt.Errorf("ensuring user %s: %w", effectiveID, err)
	}
	return effectiveID, nil
}
