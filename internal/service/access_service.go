package service

import (
	"context"
	"errors"

	"app/internal/model"
	"app/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidArtifactID = errors.New("invalid artifact identifier")
	ErrUnauthenticated   = errors.New("caller identity missing or malformed")
	ErrArtifactNotFound  = errors.New("sermon not found")
	ErrForbidden         = errors.New("sermon not available to this user")
	ErrInvalidShareToken = errors.New("invalid share token")
)

// AccessService is the single authorization gate for artifacts. Every
// owner operation (read, export, share management) resolves artifacts
// through RequireOwned; the public share path is the deliberately
// separate, unauthenticated lookup by token.
type AccessService interface {
	// RequireOwned returns the artifact only when the caller is its
	// owner. Ownership is exact identifier match: no roles, no admin
	// override, no delegation.
	RequireOwned(ctx context.Context, artifactID, callerID string) (*model.Artifact, error)
	// GetShared returns the artifact currently published under the
	// share token, with no ownership check.
	GetShared(ctx context.Context, token string) (*model.Artifact, error)
}

type accessService struct {
	artifacts repository.ArtifactRepository
}

func NewAccessService(artifacts repository.ArtifactRepository) AccessService {
	return &accessService{artifacts: artifacts}
}

func (s *accessService) RequireOwned(ctx context.Context, artifactID, callerID string) (*model.Artifact, error) {
	if uuid.Validate(artifactID) != nil {
		return nil, ErrInvalidArtifactID
	}
	if callerID == "" || uuid.Validate(callerID) != nil {
		return nil, ErrUnauthenticated
	}
	artifact, err := s.artifacts.GetArtifactByID(ctx, artifactID)
	if err != nil {
		return nil, err
	}
	if artifact == nil {
		return nil, ErrArtifactNotFound
	}
	if artifact.UserID != callerID {
		return nil, ErrForbidden
	}
	return artifact, nil
}

func (s *accessService) GetShared(ctx context.Context, token string) (*model.Artifact, error) {
	if uuid.Validate(token) != nil {
		return nil, ErrInvalidShareToken
	}
	artifact, err := s.artifacts.GetArtifactByShareID(ctx, token)
	if err != nil {
		return nil, err
	}
	if artifact == nil {
		return nil, ErrArtifactNotFound
	}
	return artifact, nil
}
