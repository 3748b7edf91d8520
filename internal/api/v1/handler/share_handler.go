package handler

import (
	"net/http"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/service"

	"github.com/rs/zerolog"
)

type ShareHandler struct {
	shareService  service.ShareService
	accessService service.AccessService
	logger        zerolog.Logger
}

func NewShareHandler(shareService service.ShareService, accessService service.AccessService, logger zerolog.Logger) *ShareHandler {
	return &ShareHandler{
		shareService:  shareService,
		accessService: accessService,
		logger:        logger.With().Str("handler", "ShareHandler").Logger(),
	}
}

// RegisterRoutes mounts owner share management under /share/{id} and
// the unauthenticated public path under /share/public/{token}.
func (h *ShareHandler) RegisterRoutes(mux *http.ServeMux, identityMw func(http.Handler) http.Handler) {
	mux.Handle("/share/", identityMw(http.HandlerFunc(h.handleShare)))
}

func (h *ShareHandler) handleShare(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/share/")
	if token, ok := strings.CutPrefix(rest, "public/"); ok {
		h.getPublic(w, r, token)
		return
	}

	callerID := middleware.UserFromContext(r.Context())
	switch r.Method {
	case http.MethodGet:
		state, err := h.shareService.State(r.Context(), rest, callerID)
		if err != nil {
			respondServiceError(w, h.logger, err)
			return
		}
		respondJSON(w, http.StatusOK, shareStateDTO(state))
	case http.MethodPost:
		state, err := h.shareService.Enable(r.Context(), rest, callerID)
		if err != nil {
			respondServiceError(w, h.logger, err)
			return
		}
		respondJSON(w, http.StatusCreated, shareStateDTO(state))
	case http.MethodDelete:
		if err := h.shareService.Revoke(r.Context(), rest, callerID); err != nil {
			respondServiceError(w, h.logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ShareHandler) getPublic(w http.ResponseWriter, r *http.Request, token string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	artifact, err := h.accessService.GetShared(r.Context(), token)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	// The public payload never exposes the owner identifier.
	respondJSON(w, http.StatusOK, dto.SermonResponseDTO{
		ID:        artifact.ID,
		CreatedAt: artifact.CreatedAt,
		Sermon:    artifact.Sermon,
		Metadata:  metadataDTO(artifact.Metadata),
	})
}

func shareStateDTO(s service.ShareState) dto.ShareStateDTO {
	return dto.ShareStateDTO{
		Shared:  s.Shared,
		ShareID: s.ShareID,
		URL:     s.URL,
	}
}
