package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dolphin-software/users-service/internal/platform/migrations"
	platformobservability "github.com/dolphin-software/users-service/internal/platform/observability"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: platformobservability.LevelFromEnv(os.Getenv("LOG_LEVEL")),
	}))
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		log.Fatal("POSTGRES_DSN not set; cannot apply users schema")
	}

	db, closeDB, err := migrations.Open(dsn)
	if err != nil {
		log.Fatalf("failed to open postgres: %v", err)
	}
	defer func() { _ = closeDB() }()

	logger.Info("applying users schema")
	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		log.Fatalf("failed to apply users schema: %v", err)
	}
	logger.Info("users schema applied")
}
