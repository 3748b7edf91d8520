package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
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
	content, _ := json.Marshal(service.FallbackOutline(model.SermonRequest{Category: "Temático", Theme: "Esperança", Depth: "curto"}))
	a := &model.Artifact{
		UserID:   ownerID,
		Prompt:   "prompt",
		Sermon:   content,
		Metadata: model.SermonMetadata{Type: "Sermão", Category: "Temático", Theme: "Esperança", Depth: "curto"},
	}
	_ = r.CreateArtifact(context.Background(), nil, a)
	return a
}

// stubSermonService answers Generate with a canned result or error;
// GetOwned goes through the real access gate.
type stubSermonService struct {
	result *service.GenerationResult
	err    error
	access service.AccessService
}

func (s *stubSermonService) Generate(ctx context.Context, req model.SermonRequest, userID string) (*service.GenerationResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubSermonService) GetOwned(ctx context.Context, artifactID, callerID string) (*model.Artifact, error) {
	return s.access.RequireOwned(ctx, artifactID, callerID)
}

// newTestMux wires every handler against the given repo the way the
// router does, minus the /v1 prefix.
func newTestMux(repo *fakeArtifactRepo, sermons service.SermonService) *http.ServeMux {
	logger := zerolog.Nop()
	access := service.NewAccessService(repo)
	shares := service.NewShareService(access, repo, "https://logosai.app")
	exports := service.NewExportService(access)

	if sermons == nil {
		sermons = &stubSermonService{access: access}
	}

	mux := http.NewServeMux()
	NewSermonHandler(sermons, validator.New(), logger).RegisterRoutes(mux, middleware.IdentityMiddleware)
	NewShareHandler(shares, access, logger).RegisterRoutes(mux, middleware.IdentityMiddleware)
	NewExportHandler(exports, logger).RegisterRoutes(mux, middleware.IdentityMiddleware)
	return mux
}
