// Package server provides the HTTP surface the browser renderer talks to.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Session   *app.Session
}

// Server routes API requests for presets, settings, the tracking feed and
// the camera preview, and serves the static web UI.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
	track  *TrackHandler
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Session != nil {
		s.mux.HandleFunc("/api/status", s.handleStatus)
		s.mux.HandleFunc("/api/view", s.handleView)
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Session))
		s.track = NewTrackHandler(s.config.Session)
		s.mux.Handle("/api/track", s.track)
	}

	if s.config.Store != nil {
		presetHandler := api.NewPresetHandler(s.config.Store)
		settingsHandler := api.NewSettingsHandler(s.config.Store)

		// Route /api/presets/{id}/recall to the recall handler, which needs
		// the session; everything else under /api/presets is plain CRUD.
		presetRouter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/recall") {
				s.handlePresetRecall(w, r)
				return
			}
			presetHandler.ServeHTTP(w, r)
		})

		s.mux.Handle("/api/presets", presetRouter)
		s.mux.Handle("/api/presets/", presetRouter)
		s.mux.Handle("/api/settings", settingsHandler)
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	writeJSON(w, http.StatusOK, response)
}

// handleStatus reports the tracking status and enabled flag.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  s.config.Session.Status(),
		"enabled": s.config.Session.IsEnabled(),
	})
}

// handleView reads or retargets the viewpoint. GET returns the current
// azimuth and distance; POST glides toward the given ones.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	orbitCam := s.config.Session.Orbit()

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]float64{
			"azimuth":  orbitCam.Azimuth(),
			"distance": orbitCam.Distance(),
		})

	case http.MethodPost:
		var req struct {
			Azimuth  float64 `json:"azimuth"`
			Distance float64 `json:"distance"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		s.config.Session.GlideTo(req.Azimuth, req.Distance)
		writeJSON(w, http.StatusOK, map[string]float64{
			"azimuth":  orbitCam.Azimuth(),
			"distance": orbitCam.Distance(),
		})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handlePresetRecall glides the viewpoint to a stored preset.
// POST /api/presets/{id}/recall
func (s *Server) handlePresetRecall(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.config.Session == nil {
		http.Error(w, "No active session", http.StatusServiceUnavailable)
		return
	}

	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/presets/"), "/recall")
	preset, err := s.config.Store.Presets().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Preset not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load preset", http.StatusInternalServerError)
		return
	}

	s.config.Session.GlideTo(preset.Azimuth, preset.Distance)
	writeJSON(w, http.StatusOK, map[string]float64{
		"azimuth":  preset.Azimuth,
		"distance": preset.Distance,
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

// Close stops the server's background broadcasters.
func (s *Server) Close() {
	if s.track != nil {
		s.track.Close()
	}
}
