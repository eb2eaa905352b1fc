// Package api exposes the translator and the export dashboard as a JSON HTTP API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/urfave/negroni"

	"github.com/ytget/ytdash/internal/exports"
	"github.com/ytget/ytdash/internal/model"
	"github.com/ytget/ytdash/internal/pipeline"
)

// ExportProvider serves the export dashboard data
type ExportProvider interface {
	Summary(ctx context.Context) (exports.Summary, *model.Dataset, error)
	Table(ctx context.Context, name string, year int) (*exports.Table, *model.Dataset, error)
	Chart(ctx context.Context, name string, year int) (*exports.ChartConfig, *model.Dataset, error)
}

// Server holds the HTTP handlers
type Server struct {
	jobs    pipeline.Manager
	exports ExportProvider
}

// NewServer creates a Server over the job manager and the export provider
func NewServer(jobs pipeline.Manager, exp ExportProvider) *Server {
	return &Server{jobs: jobs, exports: exp}
}

// Router registers every route on a new mux router
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/languages", s.ListLanguages).Methods(http.MethodGet)

	api.HandleFunc("/translations", s.CreateTranslation).Methods(http.MethodPost)
	api.HandleFunc("/translations", s.ListTranslations).Methods(http.MethodGet)
	api.HandleFunc("/translations/{id}", s.GetTranslation).Methods(http.MethodGet)
	api.HandleFunc("/translations/{id}", s.DeleteTranslation).Methods(http.MethodDelete)
	api.HandleFunc("/translations/{id}/download", s.DownloadTranslation).Methods(http.MethodGet)
	api.HandleFunc("/outputs", s.ListOutputs).Methods(http.MethodGet)

	api.HandleFunc("/exports/summary", s.ExportSummary).Methods(http.MethodGet)
	api.HandleFunc("/exports/datasets/{name}", s.ExportDataset).Methods(http.MethodGet)
	api.HandleFunc("/exports/charts/{name}", s.ExportChart).Methods(http.MethodGet)
	return r
}

// Handler wraps the router with recovery and access logging
func (s *Server) Handler() http.Handler {
	n := negroni.New(negroni.NewRecovery(), negroni.NewLogger())
	n.UseHandler(s.Router())
	return n
}

// Health reports that the server is up
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrInvalidURL), errors.Is(err, pipeline.ErrUnsupportedLanguage):
		return http.StatusBadRequest
	case errors.Is(err, pipeline.ErrJobNotFound), errors.Is(err, exports.ErrUnknownDataset):
		return http.StatusNotFound
	case errors.Is(err, pipeline.ErrDuplicateJob), errors.Is(err, pipeline.ErrJobNotActive), errors.Is(err, pipeline.ErrJobNotFinished):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
