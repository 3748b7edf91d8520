package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/repository"
	"app/internal/service"

	"github.com/rs/zerolog"
)

type errorResponse struct {
	Message string        `json:"message"`
	Usage   *dto.UsageDTO `json:"usage,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Message: message})
}

// respondServiceError maps domain errors onto the HTTP taxonomy. Quota
// and ownership refusals carry specific, actionable messages; anything
// unexpected is logged and answered generically so internals never
// leak.
func respondServiceError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	var quotaErr *repository.QuotaExceededError
	switch {
	case errors.As(err, &quotaErr):
		respondJSON(w, http.StatusPaymentRequired, errorResponse{
			Message: "Limite mensal de sermões gratuitos atingido.",
			Usage:   &dto.UsageDTO{Used: quotaErr.Used, Limit: quotaErr.Limit},
		})
	case errors.Is(err, service.ErrInvalidArtifactID):
		respondMessage(w, http.StatusBadRequest, "Identificador inválido.")
	case errors.Is(err, service.ErrInvalidShareToken):
		respondMessage(w, http.StatusBadRequest, "Link de compartilhamento inválido.")
	case errors.Is(err, service.ErrUnsupportedFormat):
		respondMessage(w, http.StatusBadRequest, "Formato de exportação não suportado.")
	case errors.Is(err, service.ErrUnauthenticated):
		respondMessage(w, http.StatusForbidden, "Usuário não autorizado a acessar este recurso.")
	case errors.Is(err, service.ErrForbidden):
		respondMessage(w, http.StatusForbidden, "Sermão não disponível para este usuário.")
	case errors.Is(err, service.ErrArtifactNotFound):
		respondMessage(w, http.StatusNotFound, "Sermão não encontrado.")
	case errors.Is(err, service.ErrUnrenderableContent):
		respondMessage(w, http.StatusUnprocessableEntity, "Conteúdo do sermão inválido para exportação.")
	default:
		logger.Error().Err(err).Msg("Unhandled service error")
		respondMessage(w, http.StatusInternalServerError, "Não foi possível completar a operação no momento.")
	}
}
