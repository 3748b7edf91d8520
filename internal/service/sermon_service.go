package service

import (
	"context"
	"encoding/json"
	"fmt"

	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

const (
	artifactType      = "Sermão"
	defaultDepth      = "curto"
	generatorOpenAI   = "openai"
	generatorFallback = "fallback"
)

// GenerationResult is everything the caller sees after a successful
// generation.
type GenerationResult struct {
	Artifact *model.Artifact
	Usage    model.Usage
}

// SermonService orchestrates generation and the owner read path.
type SermonService interface {
	// Generate resolves (or lazily creates) the user, admits one
	// generation against the monthly quota, produces the outline and
	// persists the artifact. Quota refusal surfaces as
	// *repository.QuotaExceededError; generator failure never surfaces
	// at all — the deterministic fallback outline is used instead.
	Generate(ctx context.Context, req model.SermonRequest, userID string) (*GenerationResult, error)
	// GetOwned returns the artifact through the access gate.
	GetOwned(ctx context.Context, artifactID, callerID string) (*model.Artifact, error)
}

type sermonService struct {
	users     repository.UserRepository
	store     repository.GenerationStore
	access    AccessService
	generator SermonGenerator
	logger    zerolog.Logger
}

// NewSermonService creates a SermonService with a scoped logger.
// generator may be nil, in which case every outline comes from the
// fallback template.
func NewSermonService(users repository.UserRepository, store repository.GenerationStore, access AccessService, generator SermonGenerator, logger zerolog.Logger) SermonService {
	return &sermonService{
		users:     users,
		store:     store,
		access:    access,
		generator: generator,
		logger:    logger.With().Str("service", "SermonService").Logger(),
	}
}

func (s *sermonService) Generate(ctx context.Context, req model.SermonRequest, userID string) (*GenerationResult, error) {
	if req.Depth == "" {
		req.Depth = defaultDepth
	}

	effectiveID, err := s.users.EnsureUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	prompt := BuildFreeSermonPrompt(req)

	artifact, usage, err := s.store.CreateSermonWithQuota(ctx, effectiveID, func(model.Usage) (*model.Artifact, error) {
		outline, generator := s.produceOutline(ctx, prompt, req)
		content, err := json.Marshal(outline)
		if err != nil {
			return nil, fmt.Errorf("encoding outline: %w", err)
		}
		return &model.Artifact{
			UserID: effectiveID,
			Prompt: prompt,
			Sermon: content,
			Metadata: model.SermonMetadata{
				Type:      artifactType,
				Category:  req.Category,
				Theme:     req.Theme,
				Depth:     req.Depth,
				Generator: generator,
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &GenerationResult{Artifact: artifact, Usage: usage}, nil
}

// produceOutline never fails: once quota is granted the request must
// succeed, so any generator trouble degrades to the canned template.
func (s *sermonService) produceOutline(ctx context.Context, prompt string, req model.SermonRequest) (*model.Outline, string) {
	if s.generator == nil {
		return FallbackOutline(req), generatorFallback
	}
	outline, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Str("theme", req.Theme).Msg("Generator failed, using fallback outline")
		return FallbackOutline(req), generatorFallback
	}
	return outline, generatorOpenAI
}

func (s *sermonService) GetOwned(ctx context.Context, artifactID, callerID string) (*model.Artifact, error) {
	return s.access.RequireOwned(ctx, artifactID, callerID)
}
