package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"mtmgate/db"
	"mtmgate/gateway"
	"mtmgate/sms"
	"mtmgate/zosmf"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open credential store", "err", err)
		os.Exit(1)
	}
	defer database.Close()

	if !cfg.Zosmf.RejectUnauthorized {
		slog.Warn("TLS certificate verification disabled for z/OSMF connections", "host", cfg.Zosmf.Host)
	}
	backend := zosmf.NewClient(cfg.Zosmf)
	sender := sms.NewTwilioSender(cfg.Twilio)

	gw := gateway.New(database, backend, sender)
	webhook := gateway.NewHandler(gw, cfg.Twilio.AuthToken, cfg.WebhookURL)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/sms", webhook.ServeHTTP)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	slog.Info("mtmgate starting", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}
