package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/emberhall/homeboard/internal/config"
	"github.com/emberhall/homeboard/internal/websocket"
)

type ConfigHandler struct {
	service *config.Service
	hub     *websocket.Hub
	logger  *slog.Logger
}

func NewConfigHandler(service *config.Service, hub *websocket.Hub, logger *slog.Logger) *ConfigHandler {
	return &ConfigHandler{service: service, hub: hub, logger: logger}
}

// GetDisplay returns the full display configuration, defaults applied.
func (h *ConfigHandler) GetDisplay(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.Display()
	if err != nil {
		h.logger.Error("get display config", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load config")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"config": cfg})
}

// UpdateDisplay upserts the supplied keys and broadcasts the resulting full
// config so every display converges without a refetch.
func (h *ConfigHandler) UpdateDisplay(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(req) == 0 {
		writeError(w, http.StatusBadRequest, "no settings provided")
		return
	}

	// All-or-nothing: the service validates every key before the first write.
	if err := h.service.SetAll(req); err != nil {
		writeTaxonomyError(w, h.logger, "update config", err)
		return
	}

	cfg, err := h.service.Display()
	if err != nil {
		h.logger.Error("reload display config", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load config")
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage("config-changed", cfg))
	}

	writeJSON(w, http.StatusOK, map[string]any{"config": cfg})
}
