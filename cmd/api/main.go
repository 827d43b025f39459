package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/danielrv/finmov/internal/auth"
	authStore "github.com/danielrv/finmov/internal/auth/store"
	"github.com/danielrv/finmov/internal/config"
	"github.com/danielrv/finmov/internal/database"
	finmovHttp "github.com/danielrv/finmov/internal/http"
	authHandler "github.com/danielrv/finmov/internal/http/auth"
	movementHandler "github.com/danielrv/finmov/internal/http/movement"
	"github.com/danielrv/finmov/internal/movement"
	movementStore "github.com/danielrv/finmov/internal/movement/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var (
		tokens          = auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)
		authService     = auth.NewService(authStore.New(db), tokens)
		movementService = movement.NewService(movementStore.New(db))
	)

	var (
		authH     = authHandler.NewHandler(authService)
		movementH = movementHandler.NewHandler(movementService)
	)

	router := finmovHttp.New(movementH, authH, authService)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
