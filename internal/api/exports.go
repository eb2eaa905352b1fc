package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ytget/ytdash/internal/exports"
	"github.com/ytget/ytdash/internal/model"
)

// Table output formats
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

type summaryResponse struct {
	exports.Summary
	Source   string `json:"source"`
	Checksum string `json:"checksum"`
}

// ExportSummary returns the headline export metrics
func (s *Server) ExportSummary(w http.ResponseWriter, r *http.Request) {
	summary, ds, err := s.exports.Summary(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if notModified(w, r, ds) {
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{Summary: summary, Source: ds.Source, Checksum: ds.Checksum})
}

// ExportDataset returns a dataset table as JSON or CSV
func (s *Server) ExportDataset(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatCSV {
		writeError(w, http.StatusBadRequest, "format must be json or csv")
		return
	}

	name := mux.Vars(r)["name"]
	table, ds, err := s.exports.Table(r.Context(), name, year)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if notModified(w, r, ds) {
		return
	}

	var buf bytes.Buffer
	if format == FormatCSV {
		if err := exports.WriteCSV(&buf, table); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
	} else {
		if err := exports.WriteJSON(&buf, table); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// ExportChart returns a chart configuration
func (s *Server) ExportChart(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	chart, ds, err := s.exports.Chart(r.Context(), mux.Vars(r)["name"], year)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if notModified(w, r, ds) {
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

func yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return 0, true
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year <= 0 {
		writeError(w, http.StatusBadRequest, "invalid year")
		return 0, false
	}
	return year, true
}

// notModified sets the ETag from the dataset checksum and answers 304 when
// the client already has this version
func notModified(w http.ResponseWriter, r *http.Request, ds *model.Dataset) bool {
	if ds == nil || ds.Checksum == "" {
		return false
	}
	etag := `"` + ds.Checksum + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}
