package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"app/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type fakeArtifactRepo struct {
	mu        sync.Mutex
	artifacts map[string]*model.Artifact
}

func newFakeArtifactRepo() *fakeArtifactRepo {
	return &fakeArtifactRepo{artifacts: make(map[string]*model.Artifact)}
}

func (r *fakeArtifactRepo) CreateArtifact(ctx context.Context, tx pgx.Tx, a *model.Artifact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().UTC()
	stored := *a
	r.artifacts[a.ID] = &stored
	return nil
}

func (r *fakeArtifactRepo) GetArtifactByID(ctx context.Context, id string) (*model.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.artifacts[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (r *fakeArtifactRepo) GetArtifactByShareID(ctx context.Context, shareID string) (*model.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.artifacts {
		if a.ShareID != nil && *a.ShareID == shareID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeArtifactRepo) SetShareID(ctx context.Context, artifactID string, shareID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.artifacts[artifactID]
	if !ok {
		return errors.New("artifact missing")
	}
	a.ShareID = shareID
	return nil
}

func (r *fakeArtifactRepo) add(ownerID string) *model.Artifact {
	content, _ := json.Marshal(FallbackOutline(model.SermonRequest{Category: "Temático", Theme: "Fé", Depth: "curto"}))
	a := &model.Artifact{
		UserID:   ownerID,
		Prompt:   "prompt",
		Sermon:   content,
		Metadata: model.SermonMetadata{Type: "Sermão", Category: "Temático", Theme: "Fé", Depth: "curto"},
	}
	_ = r.CreateArtifact(context.Background(), nil, a)
	return a
}

func TestRequireOwnedChecks(t *testing.T) {
	repo := newFakeArtifactRepo()
	access := NewAccessService(repo)
	owner := uuid.NewString()
	stranger := uuid.NewString()
	artifact := repo.add(owner)

	ctx := context.Background()

	if _, err := access.RequireOwned(ctx, "not-a-uuid", owner); !errors.Is(err, ErrInvalidArtifactID) {
		t.Fatalf("malformed artifact id: expected ErrInvalidArtifactID, got %v", err)
	}
	if _, err := access.RequireOwned(ctx, artifact.ID, ""); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("missing caller: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := access.RequireOwned(ctx, artifact.ID, "garbage"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("malformed caller: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := access.RequireOwned(ctx, uuid.NewString(), owner); !errors.Is(err, ErrArtifactNotFound) {
		t.Fatalf("absent artifact: expected ErrArtifactNotFound, got %v", err)
	}
	if _, err := access.RequireOwned(ctx, artifact.ID, stranger); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-owner with a valid id: expected ErrForbidden, got %v", err)
	}

	got, err := access.RequireOwned(ctx, artifact.ID, owner)
	if err != nil {
		t.Fatalf("owner access: %v", err)
	}
	if got.ID != artifact.ID || got.UserID != owner {
		t.Fatalf("wrong artifact returned: %+v", got)
	}
}

func TestOwnershipIsolationAcrossOperations(t *testing.T) {
	repo := newFakeArtifactRepo()
	access := NewAccessService(repo)
	shares := NewShareService(access, repo, "")
	exports := NewExportService(access)

	owner := uuid.NewString()
	stranger := uuid.NewString()
	artifact := repo.add(owner)
	ctx := context.Background()

	if _, err := access.RequireOwned(ctx, artifact.ID, stranger); !errors.Is(err, ErrForbidden) {
		t.Fatalf("read: expected ErrForbidden, got %v", err)
	}
	if _, err := exports.Export(ctx, artifact.ID, stranger, "md"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("export: expected ErrForbidden, got %v", err)
	}
	if _, err := shares.State(ctx, artifact.ID, stranger); !errors.Is(err, ErrForbidden) {
		t.Fatalf("share state: expected ErrForbidden, got %v", err)
	}
	if _, err := shares.Enable(ctx, artifact.ID, stranger); !errors.Is(err, ErrForbidden) {
		t.Fatalf("share enable: expected ErrForbidden, got %v", err)
	}
	if err := shares.Revoke(ctx, artifact.ID, stranger); !errors.Is(err, ErrForbidden) {
		t.Fatalf("share revoke: expected ErrForbidden, got %v", err)
	}
}

func TestGetSharedValidatesToken(t *testing.T) {
	repo := newFakeArtifactRepo()
	access := NewAccessService(repo)
	ctx := context.Background()

	if _, err := access.GetShared(ctx, "nope"); !errors.Is(err, ErrInvalidShareToken) {
		t.Fatalf("expected ErrInvalidShareToken, got %v", err)
	}
	if _, err := access.GetShared(ctx, uuid.NewString()); !errors.Is(err, ErrArtifactNotFound) {
		t.Fatalf("expected ErrArtifactNotFound, got %v", err)
	}
}
