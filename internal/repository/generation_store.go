package repository

import (
	"context"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GenerationStore runs the user-visible generation write as one unit of
// work: quota admission, outline production and artifact persistence
// share a transaction, so a refused admission leaves no artifact and a
// failed insert leaves no charge.
type GenerationStore interface {
	// CreateSermonWithQuota admits one generation for userID, invokes
	// build to obtain the artifact to persist, inserts it, and commits.
	// Concurrent calls for the same user serialize on the locked counter
	// row. On *QuotaExceededError build is never invoked and nothing is
	// written. The returned artifact carries its database-assigned ID
	// and CreatedAt.
	CreateSermonWithQuota(ctx context.Context, userID string, build func(usage model.Usage) (*model.Artifact, error)) (*model.Artifact, model.Usage, error)
}

type generationStore struct {
	pool      *pgxpool.Pool
	usage     UsageRepository
	artifacts ArtifactRepository
}

func NewGenerationStore(pool *pgxpool.Pool, usage UsageRepository, artifacts ArtifactRepository) GenerationStore {
	return &generationStore{pool: pool, usage: usage, artifacts: artifacts}
}

func (s *generationStore) CreateSermonWithQuota(ctx context.Context, userID string, build func(usage model.Usage) (*model.Artifact, error)) (*model.Artifact, model.Usage, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, model.Usage{}, fmt.Errorf("starting generation transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	usage, err := s.usage.ConsumeFreeSermon(ctx, tx, userID)
	if err != nil {
		return nil, usage, err
	}
	artifact, err := build(usage)
	if err != nil {
		return nil, usage, err
	}
	if err := s.artifacts.CreateArtifact(ctx, tx, artifact); err != nil {
		return nil, usage, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, usage, fmt.Errorf("committing generation for user %s: %w", userID, err)
	}
	return artifact, usage, nil
}
