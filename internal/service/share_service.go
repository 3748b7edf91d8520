package service

import (
	"context"

	"app/internal/repository"

	"github.com/google/uuid"
)

// ShareState describes whether an artifact is published and under
// which token.
type ShareState struct {
	Shared  bool
	ShareID string
	URL     string
}

// ShareService manages the publish state of an artifact. Issuing and
// revoking tokens is owner-gated through the access service; reading a
// published artifact is not (see AccessService.GetShared).
type ShareService interface {
	State(ctx context.Context, artifactID, callerID string) (ShareState, error)
	// Enable publishes the artifact under a fresh unguessable token.
	// Re-enabling rotates the token, invalidating the previous link.
	Enable(ctx context.Context, artifactID, callerID string) (ShareState, error)
	// Revoke unpublishes the artifact; the public path stops resolving
	// the old token immediately.
	Revoke(ctx context.Context, artifactID, callerID string) error
}

type shareService struct {
	access    AccessService
	artifacts repository.ArtifactRepository
	baseURL   string
}

func NewShareService(access AccessService, artifacts repository.ArtifactRepository, baseURL string) ShareService {
	return &shareService{access: access, artifacts: artifacts, baseURL: baseURL}
}

func (s *shareService) State(ctx context.Context, artifactID, callerID string) (ShareState, error) {
	artifact, err := s.access.RequireOwned(ctx, artifactID, callerID)
	if err != nil {
		return ShareState{}, err
	}
	if artifact.ShareID == nil {
		return ShareState{}, nil
	}
	return s.stateFor(*artifact.ShareID), nil
}

func (s *shareService) Enable(ctx context.Context, artifactID, callerID string) (ShareState, error) {
	artifact, err := s.access.RequireOwned(ctx, artifactID, callerID)
	if err != nil {
		return ShareState{}, err
	}
	shareID := uuid.NewString()
	if err := s.artifacts.SetShareID(ctx, artifact.ID, &shareID); err != nil {
		return ShareState{}, err
	}
	return s.stateFor(shareID), nil
}

func (s *shareService) Revoke(ctx context.Context, artifactID, callerID string) error {
	artifact, err := s.access.RequireOwned(ctx, artifactID, callerID)
	if err != nil {
		return err
	}
	return s.artifacts.SetShareID(ctx, artifact.ID, nil)
}

func (s *shareService) stateFor(shareID string) ShareState {
	return ShareState{
		Shared:  true,
		ShareID: shareID,
		URL:     s.baseURL + "/share/" + shareID,
	}
}
