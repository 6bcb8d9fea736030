//
// Tencent is pleased to support the open source community by making assessrec available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// assessrec is licensed under the Apache License Version 2.0.
//
//

// Package server exposes the recommendation engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"trpc.group/trpc-go/assessrec/log"
	"trpc.group/trpc-go/assessrec/recommender"
	"trpc.group/trpc-go/assessrec/recommender/assessment"
)

// Server wires the recommendation engine into HTTP endpoints: service info
// on /, a health probe on /health and the recommendation operation on
// /recommend.
type Server struct {
	recommender recommender.Recommender
	router      *mux.Router
	corsOptions cors.Options
}

// Option configures the Server instance.
type Option func(*Server)

// WithCORSOptions overrides the default permissive CORS configuration.
func WithCORSOptions(opts cors.Options) Option {
	return func(s *Server) {
		s.corsOptions = opts
	}
}

// New creates a new HTTP server around the given recommender.
func New(rec recommender.Recommender, opts ...Option) *Server {
	s := &Server{
		recommender: rec,
		router:      mux.NewRouter(),
		corsOptions: cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowCredentials: true,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"*"},
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	c := cors.New(s.corsOptions)
	s.router.Use(c.Handler)
	s.router.Use(requestIDMiddleware)

	s.router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/recommend", s.handleRecommend).Methods(http.MethodPost)

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts serving on the given address until the context is
// canceled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Infof("assessment recommendation server listening on %s", addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// recommendRequest is the /recommend request body.
type recommendRequest struct {
	Query    string `json:"query"`
	TopN     int    `json:"top_n,omitempty"`
	PoolSize int    `json:"pool_size,omitempty"`
}

// recommendResponse is the /recommend response body. The entries carry the
// catalog record fields directly.
type recommendResponse struct {
	Recommendations []*assessment.Assessment `json:"recommendations"`
}

// healthResponse is the /health response body.
type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// errorResponse is the body for all error statuses.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Assessment Recommendation API",
		"endpoints": map[string]string{
			"health":    "/health",
			"recommend": "/recommend",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.recommender == nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:  "unhealthy",
			Message: "recommendation engine not initialized",
		})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy"})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := s.recommender.Recommend(r.Context(), &recommender.Request{
		Query:    req.Query,
		TopN:     req.TopN,
		PoolSize: req.PoolSize,
	})
	if err != nil {
		status := statusForError(err)
		log.Warnf("recommend request failed with status %d: %v", status, err)
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	resp := recommendResponse{
		Recommendations: make([]*assessment.Assessment, len(result.Recommendations)),
	}
	for i, rec := range result.Recommendations {
		resp.Recommendations[i] = rec.Assessment
	}
	writeJSON(w, http.StatusOK, resp)
}

// statusForError maps the engine error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, recommender.ErrInvalidQuery),
		errors.Is(err, recommender.ErrInvalidTargetSize):
		return http.StatusBadRequest
	case errors.Is(err, recommender.ErrRetrievalUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

// requestIDMiddleware tags every request with an ID for log correlation.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debugf("request %s %s %s completed in %v", requestID, r.Method, r.URL.Path, time.Since(start))
	})
}
