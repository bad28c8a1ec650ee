package mcp

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Handler returns an HTTP handler exposing the same JSON-RPC surface as the
// stdio loop: one message per POST to /mcp, plus a /healthz liveness probe.
// Notifications get a 202 with an empty body.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	r.Post("/mcp", s.serveRPC)
	r.Get("/healthz", s.serveHealth)

	return r
}

func (s *Server) serveRPC(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, MaxMessageSize)

	var msg Message
	if err := json.NewDecoder(body).Decode(&msg); err != nil {
		s.writeHTTPMessage(w, http.StatusBadRequest,
			NewErrorMessage(nil, ParseError, "Failed to parse message: "+err.Error(), nil))
		return
	}

	response := s.handleMessage(&msg)
	if response == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	s.writeHTTPMessage(w, http.StatusOK, response)
}

func (s *Server) serveHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}

func (s *Server) writeHTTPMessage(w http.ResponseWriter, status int, msg *Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		s.logger.Error("Error writing HTTP response", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
