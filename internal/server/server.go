package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/emberhall/homeboard/internal/backup"
	"github.com/emberhall/homeboard/internal/chore"
	"github.com/emberhall/homeboard/internal/config"
	"github.com/emberhall/homeboard/internal/handler"
	"github.com/emberhall/homeboard/internal/middleware"
	"github.com/emberhall/homeboard/internal/store"
	ws "github.com/emberhall/homeboard/internal/websocket"
)

// Version is reported by the health endpoint.
const Version = "0.3.0"

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	choreH        *handler.ChoreHandler
	familyMemberH *handler.FamilyMemberHandler
	configH       *handler.ConfigHandler
	systemH       *handler.SystemHandler
	backupManager *backup.Manager
	logger        *slog.Logger
}

func New(db *sql.DB, backupCfg backup.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	choreStore := store.NewChoreStore(db)
	familyMemberStore := store.NewFamilyMemberStore(db)
	settingsStore := store.NewSettingsStore(db)

	choreService := chore.NewService(choreStore, familyMemberStore, logger.With("component", "chore"))
	configService := config.NewService(settingsStore)

	backupMgr := backup.NewManager(backupCfg, db, func(s backup.Status) {
		hub.Broadcast(ws.NewMessage("backup-status", s))
	}, logger.With("component", "backup"))

	return &Server{
		db:            db,
		hub:           hub,
		choreH:        handler.NewChoreHandler(choreService, hub, logger.With("component", "chore_handler")),
		familyMemberH: handler.NewFamilyMemberHandler(choreService, logger.With("component", "member_handler")),
		configH:       handler.NewConfigHandler(configService, hub, logger.With("component", "config_handler")),
		systemH:       handler.NewSystemHandler(),
		backupManager: backupMgr,
		logger:        logger,
	}
}

// Hub returns the fan-out hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

// BackupManager returns the backup manager for lifecycle control.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Chore API routes
	mux.HandleFunc("GET /api/chores", s.choreH.List)
	mux.HandleFunc("POST /api/chores", s.choreH.Create)
	mux.HandleFunc("PUT /api/chores/{id}", s.choreH.Update)
	mux.HandleFunc("DELETE /api/chores/{id}", s.choreH.Delete)
	mux.HandleFunc("POST /api/chores/{id}/complete", s.choreH.Complete)
	mux.HandleFunc("GET /api/chores/leaderboard", s.choreH.Leaderboard)

	// Family member API routes
	mux.HandleFunc("GET /api/chores/members", s.familyMemberH.List)
	mux.HandleFunc("POST /api/chores/members", s.familyMemberH.Create)
	mux.HandleFunc("POST /api/chores/members/{id}/pin", s.familyMemberH.SetPIN)
	mux.HandleFunc("POST /api/chores/members/{id}/pin/verify", s.familyMemberH.VerifyPIN)

	// Config API routes
	mux.HandleFunc("GET /api/config/display", s.configH.GetDisplay)
	mux.HandleFunc("PUT /api/config/display", s.configH.UpdateDisplay)
	mux.HandleFunc("GET /api/config/system/info", s.systemH.Info)

	mux.HandleFunc("GET /health", s.healthHandler)

	// WebSocket fan-out channel
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}
