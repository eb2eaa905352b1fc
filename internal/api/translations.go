package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ytget/ytdash/internal/config"
	"github.com/ytget/ytdash/internal/model"
	"github.com/ytget/ytdash/internal/pipeline"
)

const contentTypeMP4 = "video/mp4"

// ListLanguages returns the supported target languages
func (s *Server) ListLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, config.LanguageOptions)
}

// CreateTranslation queues a new translation job
func (s *Server) CreateTranslation(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	job, err := s.jobs.StartTranslation(req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	w.Header().Set("Location", "/api/translations/"+job.ID)
	writeJSON(w, http.StatusAccepted, job)
}

// ListTranslations returns every job, newest first
func (s *Server) ListTranslations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.jobs.GetAllJobs())
}

// GetTranslation returns a single job
func (s *Server) GetTranslation(w http.ResponseWriter, r *http.Request) {
	job, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// DeleteTranslation stops an unfinished job or removes a finished one
func (s *Server) DeleteTranslation(w http.ResponseWriter, r *http.Request) {
	job, ok := s.lookup(w, r)
	if !ok {
		return
	}

	if job.Status.IsFinished() {
		if err := s.jobs.RemoveJob(job.ID); err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := s.jobs.StopJob(job.ID); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if updated, ok := s.jobs.GetJob(job.ID); ok {
		job = updated
	}
	writeJSON(w, http.StatusAccepted, job)
}

// DownloadTranslation streams the translated video of a completed job
func (s *Server) DownloadTranslation(w http.ResponseWriter, r *http.Request) {
	job, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if job.Status != model.TaskStatusCompleted || job.OutputPath == "" {
		writeError(w, http.StatusNotFound, "translated video is not ready")
		return
	}

	f, err := os.Open(job.OutputPath)
	if err != nil {
		writeError(w, http.StatusNotFound, "translated video is no longer available")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", contentTypeMP4)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(job.OutputPath)))
	http.ServeContent(w, r, filepath.Base(job.OutputPath), info.ModTime(), f)
}

// ListOutputs returns the newest translated videos on disk
func (s *Server) ListOutputs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	outputs, err := s.jobs.RecentOutputs(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, outputs)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*model.TranslationJob, bool) {
	id := mux.Vars(r)["id"]
	job, ok := s.jobs.GetJob(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("%s: %s", pipeline.ErrJobNotFound, id))
		return nil, false
	}
	return job, true
}
