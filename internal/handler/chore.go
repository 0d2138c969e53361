package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/emberhall/homeboard/internal/chore"
	"github.com/emberhall/homeboard/internal/model"
	"github.com/emberhall/homeboard/internal/store"
	"github.com/emberhall/homeboard/internal/websocket"
)

type ChoreHandler struct {
	service *chore.Service
	hub     *websocket.Hub
	logger  *slog.Logger
}

func NewChoreHandler(service *chore.Service, hub *websocket.Hub, logger *slog.Logger) *ChoreHandler {
	return &ChoreHandler{service: service, hub: hub, logger: logger}
}

func (h *ChoreHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type choreRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssignedTo  *int64     `json:"assigned_to"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Points      int        `json:"points"`
	Category    string     `json:"category"`
}

func (h *ChoreHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter store.ChoreFilter
	filter.Status = r.URL.Query().Get("status")
	if raw := r.URL.Query().Get("assignedTo"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "assignedTo must be an integer")
			return
		}
		filter.AssignedTo = &id
	}

	chores, err := h.service.ListChores(filter)
	if err != nil {
		h.logger.Error("list chores", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list chores")
		return
	}
	if chores == nil {
		chores = []model.Chore{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"chores": chores})
}

func (h *ChoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req choreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	created, err := h.service.AddChore(store.ChoreInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Points:      req.Points,
		Category:    req.Category,
	})
	if err != nil {
		h.writeServiceError(w, "create chore", err)
		return
	}

	h.broadcast(websocket.NewMessage("chore-changed", created))

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      created.ID,
		"message": "chore created",
	})
}

func (h *ChoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	// The update set is closed: unknown fields are rejected here rather than
	// passed through to the query builder.
	var upd store.ChoreUpdate
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	updated, err := h.service.UpdateChore(id, upd)
	if err != nil {
		h.writeServiceError(w, "update chore", err)
		return
	}

	h.broadcast(websocket.NewMessage("chore-changed", updated))

	writeJSON(w, http.StatusOK, map[string]any{"message": "chore updated"})
}

func (h *ChoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.service.DeleteChore(id); err != nil {
		h.writeServiceError(w, "delete chore", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ChoreHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		MemberID int64 `json:"memberId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.MemberID == 0 {
		writeError(w, http.StatusBadRequest, "memberId is required")
		return
	}

	if _, err := h.service.CompleteChore(id, req.MemberID); err != nil {
		h.writeServiceError(w, "complete chore", err)
		return
	}

	if c, err := h.service.GetChore(id); err == nil {
		h.broadcast(websocket.NewMessage("chore-changed", c))
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "chore completed"})
}

func (h *ChoreHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.Leaderboard()
	if err != nil {
		h.logger.Error("leaderboard", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}
	if totals == nil {
		totals = []model.PointTotal{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"leaderboard": totals})
}

func (h *ChoreHandler) writeServiceError(w http.ResponseWriter, op string, err error) {
	writeTaxonomyError(w, h.logger, op, err)
}
