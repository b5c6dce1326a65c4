package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/germwalk/internal/logging"
	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/graph"
	"github.com/aretw0/germwalk/pkg/ports"
	"github.com/aretw0/germwalk/pkg/trajectory"
)

// Server exposes stored runs and the loaded graph as a read-only API.
type Server struct {
	Store    ports.TrajectoryStore
	Graph    *graph.Graph
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// NewHandler builds the chi router for the server.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}
	if s.Gatherer == nil {
		s.Gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.Health)
	r.Get("/graph", s.GetGraph)
	r.Route("/runs", func(r chi.Router) {
		r.Get("/", s.ListRuns)
		r.Get("/{id}", s.GetRun)
		r.Get("/{id}/trajectories", s.GetTrajectories)
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetGraph handles GET /graph.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	if s.Graph == nil {
		http.Error(w, "no graph loaded", http.StatusNotFound)
		return
	}
	data, err := graph.Encode(s.Graph, true)
	if err != nil {
		s.Logger.Error("failed to encode graph", "err", err)
		http.Error(w, "failed to encode graph", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// ListRuns handles GET /runs.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.Store.ListRuns(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	if runs == nil {
		runs = []domain.RunInfo{}
	}
	s.writeJSON(w, http.StatusOK, runs)
}

// GetRun handles GET /runs/{id}.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.Store.LoadRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, run)
}

// GetTrajectories handles GET /runs/{id}/trajectories.
// ?format=csv switches the body from JSON to CSV.
func (s *Server) GetTrajectories(w http.ResponseWriter, r *http.Request) {
	obs, err := s.Store.LoadObservations(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	trajectories := trajectory.Group(obs)

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		err = trajectory.WriteCSV(w, trajectories)
	} else {
		w.Header().Set("Content-Type", "application/json")
		err = trajectory.WriteJSON(w, trajectories)
	}
	if err != nil {
		s.Logger.Error("failed to write trajectories", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrRunNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.Logger.Error("store error", "err", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encode error", "err", err)
	}
}
