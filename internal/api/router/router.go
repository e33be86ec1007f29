// Package router wires the HTTP surface: the gateway webhook, health
// and metrics endpoints, and a small instance admin API.
package router

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/imobiliariaxyz/bot-corretor/internal/gateway/evolution"
	"github.com/imobiliariaxyz/bot-corretor/pkg/logging"
)

// InstanceClient is the slice of the gateway client the admin routes
// need.
type InstanceClient interface {
	Connect(ctx context.Context) (*evolution.ConnectResponse, error)
	ConnectionStatus(ctx context.Context) (*evolution.InstanceState, error)
	Logout(ctx context.Context) error
}

// Config holds router configuration.
type Config struct {
	Logger         *logging.Logger
	WebhookHandler http.Handler
	MetricsHandler http.Handler
	Instance       InstanceClient
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthCheck)

	if cfg.WebhookHandler != nil {
		r.Post("/webhook", cfg.WebhookHandler.ServeHTTP)
	}
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}
	if cfg.Instance != nil {
		r.Route("/instance", func(r chi.Router) {
			r.Get("/qrcode", qrcodeHandler(cfg))
			r.Get("/status", statusHandler(cfg))
			r.Post("/restart", restartHandler(cfg))
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// qrcodeHandler asks the gateway for fresh pairing material.
func qrcodeHandler(cfg *Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := cfg.Instance.Connect(r.Context())
		if err != nil {
			logError(cfg.Logger, "failed to fetch qr code", err)
			respond(w, http.StatusBadGateway, map[string]string{"error": "gateway unavailable"})
			return
		}
		respond(w, http.StatusOK, resp)
	}
}

func statusHandler(cfg *Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := cfg.Instance.ConnectionStatus(r.Context())
		if err != nil {
			logError(cfg.Logger, "failed to fetch connection status", err)
			respond(w, http.StatusBadGateway, map[string]string{"error": "gateway unavailable"})
			return
		}
		respond(w, http.StatusOK, state)
	}
}

// restartHandler drops the WhatsApp session and immediately reconnects,
// forcing a fresh pairing when the session is wedged.
func restartHandler(cfg *Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := cfg.Instance.Logout(r.Context()); err != nil {
			logError(cfg.Logger, "failed to logout instance", err)
		}
		resp, err := cfg.Instance.Connect(r.Context())
		if err != nil {
			logError(cfg.Logger, "failed to reconnect instance", err)
			respond(w, http.StatusBadGateway, map[string]string{"error": "gateway unavailable"})
			return
		}
		respond(w, http.StatusOK, resp)
	}
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func logError(logger *logging.Logger, msg string, err error) {
	if logger == nil {
		return
	}
	logger.Error(msg, "error", err.Error())
}
