package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sednafm/aircurator/internal/daily"
	"github.com/sednafm/aircurator/internal/recommend"
)

// Version is reported by the health endpoint.
const Version = "2.0.0"

// Server is the HTTP surface over the two curation pipelines.
type Server struct {
	recommender *recommend.Recommender
	pipeline    *daily.Pipeline
	health      *daily.Health
}

// Config holds server dependencies.
type Config struct {
	Recommender *recommend.Recommender
	Pipeline    *daily.Pipeline
	Health      *daily.Health
}

// New creates a new server.
func New(cfg Config) *Server {
	health := cfg.Health
	if health == nil {
		health = daily.NewHealth()
	}
	return &Server{
		recommender: cfg.Recommender,
		pipeline:    cfg.Pipeline,
		health:      health,
	}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	// The API is consumed directly from the static web player.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Post("/recommend", s.handleRecommend)
	r.Get("/generate-daily-fact", s.handleDailyFact)
	r.Get("/health", s.handleHealth)

	return r
}

// recommendRequest is the body of POST /recommend. Exclude entries may be
// numbers or digit strings; anything else is dropped.
type recommendRequest struct {
	Mood    string `json:"mood"`
	Exclude []any  `json:"exclude"`
}

type recommendResponse struct {
	Success     bool   `json:"success"`
	Episode     any    `json:"episode,omitempty"`
	Reason      string `json:"reason,omitempty"`
	MemoryReset bool   `json:"memoryReset"`
	Error       string `json:"error,omitempty"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, recommendResponse{
			Success: false, Error: "Invalid JSON in request body",
		})
		return
	}

	if req.Mood == "" {
		writeJSON(w, http.StatusBadRequest, recommendResponse{
			Success: false, Error: "Missing 'mood' in request body",
		})
		return
	}
	if !recommend.IsValidMood(req.Mood) {
		writeJSON(w, http.StatusBadRequest, recommendResponse{
			Success: false,
			Error:   fmt.Sprintf("Invalid mood. Must be one of: %s", strings.Join(recommend.ValidMoods, ", ")),
		})
		return
	}

	result, err := s.recommender.Recommend(r.Context(), req.Mood, sanitizeExcludeIDs(req.Exclude))
	if err != nil {
		slog.Error("recommendation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, recommendResponse{
			Success: false, Error: "Internal server error",
		})
		return
	}

	writeJSON(w, http.StatusOK, recommendResponse{
		Success:     true,
		Episode:     result.Episode,
		Reason:      result.Reason,
		MemoryReset: result.MemoryReset,
	})
}

// dailyFactResponse is the decision plus the commit annotation.
type dailyFactResponse struct {
	FactText         string `json:"fact_text"`
	FactYear         int    `json:"fact_year"`
	FactWikipediaURL string `json:"fact_wikipedia_url,omitempty"`
	Episode          any    `json:"episode"`
	MatchReason      string `json:"match_reason"`
	Committed        bool   `json:"committed,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleDailyFact(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC()
	if param := r.URL.Query().Get("date"); param != "" {
		parsed, err := time.Parse("2006-01-02", param)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid date format. Use YYYY-MM-DD"})
			return
		}
		date = parsed
	}
	commit := strings.EqualFold(r.URL.Query().Get("commit"), "true")

	result, err := s.pipeline.Run(r.Context(), date, commit)
	if err != nil {
		slog.Error("manual daily generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if result.NoEvents {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "No events found for this date"})
		return
	}

	writeJSON(w, http.StatusOK, dailyFactResponse{
		FactText:         result.Decision.FactText,
		FactYear:         result.Decision.FactYear,
		FactWikipediaURL: result.Decision.FactWikipediaURL,
		Episode:          result.Decision.Episode,
		MatchReason:      result.Decision.MatchReason,
		Committed:        result.Committed,
	})
}

type healthResponse struct {
	Status     string                           `json:"status"`
	Service    string                           `json:"service"`
	Version    string                           `json:"version"`
	Components map[string]daily.ComponentStatus `json:"components,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     "healthy",
		Service:    "aircurator",
		Version:    Version,
		Components: s.health.Snapshot(),
	})
}

// sanitizeExcludeIDs keeps integer-looking entries and drops the rest.
// Fractional numbers are dropped, not truncated.
func sanitizeExcludeIDs(raw []any) []int {
	ids := make([]int, 0, len(raw))
	for _, entry := range raw {
		switch v := entry.(type) {
		case float64:
			if v == float64(int(v)) {
				ids = append(ids, int(v))
			}
		case string:
			if id, err := strconv.Atoi(v); err == nil {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
