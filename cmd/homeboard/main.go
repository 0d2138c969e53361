package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emberhall/homeboard/internal/backup"
	"github.com/emberhall/homeboard/internal/database"
	"github.com/emberhall/homeboard/internal/logging"
	"github.com/emberhall/homeboard/internal/server"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	port := envOr("HOMEBOARD_PORT", "8080")
	dbPath := envOr("HOMEBOARD_DB_PATH", "homeboard.db")

	logger := logging.Setup(os.Getenv("HOMEBOARD_LOG_LEVEL"), os.Getenv("HOMEBOARD_LOG_FORMAT"))

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	backupInterval, _ := time.ParseDuration(envOr("HOMEBOARD_BACKUP_INTERVAL", "24h"))
	backupCfg := backup.Config{
		DBPath:   dbPath,
		Interval: backupInterval,
		S3: backup.S3Config{
			Endpoint:  os.Getenv("HOMEBOARD_BACKUP_S3_ENDPOINT"),
			Bucket:    os.Getenv("HOMEBOARD_BACKUP_S3_BUCKET"),
			Region:    envOr("HOMEBOARD_BACKUP_S3_REGION", "auto"),
			AccessKey: os.Getenv("HOMEBOARD_BACKUP_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("HOMEBOARD_BACKUP_S3_SECRET_KEY"),
		},
	}

	srv := server.New(db, backupCfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv.BackupManager().Start(ctx)
	defer srv.BackupManager().Stop()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("homeboard listening", "port", port, "db", dbPath)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
