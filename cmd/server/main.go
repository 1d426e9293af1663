package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"collabhub/internal/config"
	"collabhub/internal/routers"
	"collabhub/internal/services"
	"collabhub/internal/utils"
)

var (
	listenAndServe = http.ListenAndServe
	exit           = os.Exit
	exitFunc       = defaultExit
)

func defaultExit(err error) {
	log.Printf("collab-hub: %v", err)
	exit(1)
}

func main() {
	if err := run(context.Background()); err != nil {
		exitFunc(err)
	}
}

func run(_ context.Context) error {
	logger := utils.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	utils.SetJWTSecret([]byte(cfg.JWTSecret))

	events := services.NewEventsService(cfg.RedisAddr, logger)

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Timeout(60*time.Second),
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Mount("/", routers.New(logger, events))

	r.Get("/healthz", healthHandler)

	addr := ":" + cfg.Port
	logger.Info("collab-hub listening", "addr", addr, "events", events.Enabled())
	return listenAndServe(addr, r)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) }
