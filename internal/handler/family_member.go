package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"

	"github.com/emberhall/homeboard/internal/chore"
	"github.com/emberhall/homeboard/internal/model"
)

var hexColorRegexp = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type FamilyMemberHandler struct {
	service *chore.Service
	logger  *slog.Logger
}

func NewFamilyMemberHandler(service *chore.Service, logger *slog.Logger) *FamilyMemberHandler {
	return &FamilyMemberHandler{service: service, logger: logger}
}

func (h *FamilyMemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.ListMembers()
	if err != nil {
		h.logger.Error("list members", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list family members")
		return
	}
	if members == nil {
		members = []model.FamilyMember{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"members": members})
}

func (h *FamilyMemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string     `json:"name"`
		Color string     `json:"color"`
		Role  model.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Color != "" && !hexColorRegexp.MatchString(req.Color) {
		writeError(w, http.StatusBadRequest, "color must be a hex color (e.g. #FF0000)")
		return
	}

	member, err := h.service.AddMember(req.Name, req.Color, req.Role)
	if err != nil {
		writeTaxonomyError(w, h.logger, "create family member", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      member.ID,
		"message": "family member created",
	})
}

func (h *FamilyMemberHandler) SetPIN(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.service.SetMemberPIN(id, req.PIN); err != nil {
		writeTaxonomyError(w, h.logger, "set pin", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "pin set"})
}

func (h *FamilyMemberHandler) VerifyPIN(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	ok, err := h.service.VerifyMemberPIN(id, req.PIN)
	if err != nil {
		writeTaxonomyError(w, h.logger, "verify pin", err)
		return
	}
	if !ok {
		writeError(w, http.StatusUnauthorized, "incorrect PIN")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "verified"})
}

func parseIDParam(r *http.Request) (int64, error) {
	idStr := r.PathValue("id")
	return strconv.ParseInt(idStr, 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
