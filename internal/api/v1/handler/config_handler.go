package handler

import (
	"net/http"
	"time"

	"app/internal/config"
)

// ConfigHandler exposes presentation-layer toggles and the health
// probe.
type ConfigHandler struct {
	cfg       *config.Config
	startedAt time.Time
}

func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg, startedAt: time.Now()}
}

func (h *ConfigHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/config/feature-flags", h.featureFlags)
	mux.HandleFunc("/health", h.health)
}

func (h *ConfigHandler) featureFlags(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"flags": map[string]bool{
			"study":  h.cfg.FFStudy,
			"rag":    h.cfg.FFRAG,
			"export": h.cfg.FFExport,
		},
	})
}

func (h *ConfigHandler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Seconds(),
	})
}
