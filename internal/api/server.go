// Package api exposes the simulations over HTTP and WebSocket.
// GET endpoints are read-only observation; POST endpoints are the UI
// controls (step, reset, auto-play, sliders) and are rate limited.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/talgya/econsim/internal/engine"
	"github.com/talgya/econsim/internal/sim"
)

// Server serves both simulation variants.
type Server struct {
	Bread *engine.Controller
	Gini  *engine.Controller
	Port  int

	breadHub *Hub
	giniHub  *Hub
}

// Start wires the routes and begins serving in a goroutine.
func (s *Server) Start() {
	handler := s.Handler()
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// Handler builds the full route set without starting a listener, and
// connects each controller's change notifications to its stream hub.
func (s *Server) Handler() http.Handler {
	// Generous limit: a human mashing step buttons stays well under it,
	// a runaway client does not.
	controlLimiter := NewRateLimiter(300, time.Minute)

	s.breadHub = NewHub(s.Bread)
	s.giniHub = NewHub(s.Gini)
	s.Bread.OnChange = s.breadHub.BroadcastView
	s.Gini.OnChange = s.giniHub.BroadcastView

	mux := http.NewServeMux()
	s.registerVariant(mux, "bread", s.Bread, s.breadHub, controlLimiter)
	s.registerVariant(mux, "gini", s.Gini, s.giniHub, controlLimiter)
	return corsMiddleware(mux)
}

func (s *Server) registerVariant(mux *http.ServeMux, name string, ctrl *engine.Controller, hub *Hub, limiter *RateLimiter) {
	base := "/api/v1/" + name
	h := &variantHandlers{ctrl: ctrl}

	// Observation (GET, read-only).
	mux.HandleFunc(base+"/status", h.handleStatus)
	mux.HandleFunc(base+"/agents", h.handleAgents)
	mux.HandleFunc(base+"/metrics", h.handleMetrics)
	mux.HandleFunc(base+"/narrative", h.handleNarrative)
	if ctrl.Variant() == sim.VariantBread {
		mux.HandleFunc(base+"/history", h.handleHistory)
	}

	// Controls (POST, rate limited).
	mux.HandleFunc(base+"/step", RateLimitMiddleware(limiter, postOnly(h.handleStep)))
	mux.HandleFunc(base+"/reset", RateLimitMiddleware(limiter, postOnly(h.handleReset)))
	mux.HandleFunc(base+"/autoplay", RateLimitMiddleware(limiter, postOnly(h.handleAutoPlay)))
	mux.HandleFunc(base+"/speed", RateLimitMiddleware(limiter, postOnly(h.handleSpeed)))
	mux.HandleFunc(base+"/redistribution", RateLimitMiddleware(limiter, postOnly(h.handleRedistribution)))
	if ctrl.Variant() == sim.VariantBread {
		mux.HandleFunc(base+"/bread-fraction", RateLimitMiddleware(limiter, postOnly(h.handleBreadFraction)))
	}

	// Live state push.
	mux.HandleFunc(base+"/stream", hub.handleStream)
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS to a comma-separated list of extra allowed origins;
// localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func postOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
