package handler

import (
	"fmt"
	"net/http"
	"strings"

	"app/internal/middleware"
	"app/internal/service"

	"github.com/rs/zerolog"
)

type ExportHandler struct {
	exportService service.ExportService
	logger        zerolog.Logger
}

func NewExportHandler(exportService service.ExportService, logger zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		logger:        logger.With().Str("handler", "ExportHandler").Logger(),
	}
}

// RegisterRoutes mounts /export/{id}.{format}.
func (h *ExportHandler) RegisterRoutes(mux *http.ServeMux, identityMw func(http.Handler) http.Handler) {
	mux.Handle("/export/", identityMw(http.HandlerFunc(h.export)))
}

func (h *ExportHandler) export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/export/")
	dot := strings.LastIndex(rest, ".")
	if dot <= 0 || dot == len(rest)-1 {
		respondMessage(w, http.StatusBadRequest, "Formato de exportação não suportado.")
		return
	}
	artifactID, format := rest[:dot], rest[dot+1:]
	callerID := middleware.UserFromContext(r.Context())

	file, err := h.exportService.Export(r.Context(), artifactID, callerID, format)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}
