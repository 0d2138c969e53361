package handler

import (
	"net/http"
	"runtime"
	"time"
)

type SystemHandler struct {
	started time.Time
}

func NewSystemHandler() *SystemHandler {
	return &SystemHandler{started: time.Now()}
}

// Info reports the host platform and process uptime for the admin panel.
func (h *SystemHandler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"info": map[string]any{
			"platform":  runtime.GOOS,
			"arch":      runtime.GOARCH,
			"goVersion": runtime.Version(),
			"uptime":    time.Since(h.started).Seconds(),
		},
	})
}
