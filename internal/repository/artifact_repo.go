package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ArtifactRepository persists generated outlines. Reads return the
// stored content verbatim for round-trip fidelity; malformed stored
// content is wrapped into a degraded payload rather than failing.
type ArtifactRepository interface {
	// CreateArtifact inserts the artifact on the caller's transaction so
	// it commits or rolls back together with the quota increment. The
	// database assigns ID and CreatedAt, written back into a.
	CreateArtifact(ctx context.Context, tx pgx.Tx, a *model.Artifact) error
	// GetArtifactByID returns the artifact or nil when absent.
	GetArtifactByID(ctx context.Context, id string) (*model.Artifact, error)
	// GetArtifactByShareID returns the artifact holding the share token,
	// or nil when no artifact is shared under it.
	GetArtifactByShareID(ctx context.Context, shareID string) (*model.Artifact, error)
	// SetShareID sets or clears (nil) the artifact's share token.
	SetShareID(ctx context.Context, artifactID string, shareID *string) error
}

type artifactRepo struct {
	pool *pgxpool.Pool
}

func NewArtifactRepo(pool *pgxpool.Pool) ArtifactRepository {
	return &artifactRepo{pool: pool}
}

func (r *artifactRepo) CreateArtifact(ctx context.Context, tx pgx.Tx, a *model.Artifact) error {
	metadata, err := json.Marshal(a.Metadata)
	if err != nil {
		return fmt.Errorf("encoding artifact metadata: %w", err)
	}
	const q = `
		INSERT INTO artifacts (user_id, prompt, content, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	if err := tx.QueryRow(ctx, q, a.UserID, a.Prompt, []byte(a.Sermon), metadata).Scan(&a.ID, &a.CreatedAt); err != nil {
		return fmt.Errorf("inserting artifact for user %s: %w", a.UserID, err)
	}
	return nil
}

const artifactColumns = `id, user_id, prompt, content, metadata, created_at, share_uuid`

func (r *artifactRepo) GetArtifactByID(ctx context.Context, id string) (*model.Artifact, error) {
	q := `SELECT ` + artifactColumns + ` FROM artifacts WHERE id = $1`
	return r.queryOne(ctx, q, id)
}

func (r *artifactRepo) GetArtifactByShareID(ctx context.Context, shareID string) (*model.Artifact, error) {
	q := `SELECT ` + artifactColumns + ` FROM artifacts WHERE share_uuid = $1`
	return r.queryOne(ctx, q, shareID)
}

func (r *artifactRepo) queryOne(ctx context.Context, q string, arg any) (*model.Artifact, error) {
	var (
		a           model.Artifact
		rawContent  []byte
		rawMetadata []byte
	)
	err := r.pool.QueryRow(ctx, q, arg).Scan(
		&a.ID,
		&a.UserID,
		&a.Prompt,
		&rawContent,
		&rawMetadata,
		&a.CreatedAt,
		&a.ShareID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching artifact: %w", err)
	}
	a.Sermon = normalizeContent(rawContent)
	a.Metadata = normalizeMetadata(rawMetadata)
	return &a, nil
}

func (r *artifactRepo) SetShareID(ctx context.Context, artifactID string, shareID *string) error {
	const q = `UPDATE artifacts SET share_uuid = $1 WHERE id = $2`
	if _, err := r.pool.Exec(ctx, q, shareID, artifactID); err != nil {
		return fmt.Errorf("updating share token for artifact %s: %w", artifactID, err)
	}
	return nil
}

// normalizeContent returns stored sermon content as-is when it is valid
// JSON, and wraps anything else into {"raw": ...} so a corrupted row
// degrades instead of breaking every read path.
func normalizeContent(raw []byte) json.RawMessage {
	if json.Valid(raw) {
		return json.RawMessage(raw)
	}
	wrapped, err := json.Marshal(map[string]string{"raw": string(raw)})
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return wrapped
}

func normalizeMetadata(raw []byte) model.SermonMetadata {
	var m model.SermonMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return model.SermonMetadata{}
	}
	return m
}
