package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type SermonHandler struct {
	sermonService service.SermonService
	validate      *validator.Validate
	logger        zerolog.Logger
}

func NewSermonHandler(sermonService service.SermonService, v *validator.Validate, logger zerolog.Logger) *SermonHandler {
	return &SermonHandler{
		sermonService: sermonService,
		validate:      v,
		logger:        logger.With().Str("handler", "SermonHandler").Logger(),
	}
}

// RegisterRoutes mounts generation and the owner read path.
func (h *SermonHandler) RegisterRoutes(mux *http.ServeMux, identityMw func(http.Handler) http.Handler) {
	mux.Handle("/generate", identityMw(http.HandlerFunc(h.generate)))
	mux.Handle("/sermon/", identityMw(http.HandlerFunc(h.getSermon)))
}

func (h *SermonHandler) generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.GenerateSermonDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "category e theme são obrigatórios.")
		return
	}

	result, err := h.sermonService.Generate(r.Context(), model.SermonRequest{
		Category: req.Category,
		Theme:    req.Theme,
		Depth:    req.Depth,
	}, req.UserID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	artifact := result.Artifact
	respondJSON(w, http.StatusCreated, dto.SermonResponseDTO{
		ID:        artifact.ID,
		CreatedAt: artifact.CreatedAt,
		UserID:    artifact.UserID,
		Usage:     &dto.UsageDTO{Used: result.Usage.Used, Limit: result.Usage.Limit},
		Sermon:    artifact.Sermon,
		Metadata:  metadataDTO(artifact.Metadata),
	})
}

func (h *SermonHandler) getSermon(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	artifactID := strings.TrimPrefix(r.URL.Path, "/sermon/")
	callerID := middleware.UserFromContext(r.Context())

	artifact, err := h.sermonService.GetOwned(r.Context(), artifactID, callerID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.SermonResponseDTO{
		ID:        artifact.ID,
		CreatedAt: artifact.CreatedAt,
		UserID:    artifact.UserID,
		Sermon:    artifact.Sermon,
		Metadata:  metadataDTO(artifact.Metadata),
	})
}

func metadataDTO(m model.SermonMetadata) dto.MetadataDTO {
	return dto.MetadataDTO{
		Type:      m.Type,
		Category:  m.Category,
		Theme:     m.Theme,
		Depth:     m.Depth,
		Generator: m.Generator,
	}
}
