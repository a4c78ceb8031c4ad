// Package server exposes the reporting pipeline behind a minimal upload
// form: one POST with the price export returns the bundled archive.
package server

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"relatorios/internal/config"
	"relatorios/internal/pipeline"
)

// 16 MiB is far above any real export; the bound only guards the form
// parser.
const maxUploadBytes = 16 << 20

type Server struct {
	cfg     config.Config
	reports *pipeline.ReportService
	log     *slog.Logger
}

func New(cfg config.Config, reports *pipeline.ReportService, log *slog.Logger) *Server {
	return &Server{cfg: cfg, reports: reports, log: log}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleForm)
	r.Get("/healthz", s.handleHealth)
	r.Post("/relatorios", s.handleGenerate)

	return r
}

func (s *Server) ListenAndServe() error {
	s.log.Info("listening", "addr", s.cfg.HTTPAddr)
	return http.ListenAndServe(s.cfg.HTTPAddr, s.Router())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handleForm(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, `<!DOCTYPE html>
<html lang="pt-BR">
<head><meta charset="utf-8"><title>Automatizador de Relatórios PCRJ</title></head>
<body>
<h1>Automatizador de Relatórios PCRJ</h1>
<form action="/relatorios" method="post" enctype="multipart/form-data">
<label for="arquivo">Arquivo TXT exportado:</label>
<input type="file" id="arquivo" name="arquivo" accept=".txt" required>
<button type="submit">Gerar relatórios</button>
</form>
</body>
</html>
`)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("arquivo")
	if err != nil {
		http.Error(w, "missing upload field 'arquivo'", http.StatusBadRequest)
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "read upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.reports.Generate(r.Context(), raw, time.Now())
	if err != nil {
		s.log.Warn("generation failed", "upload", header.Filename, "err", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	for _, warning := range result.Warnings {
		s.log.Warn("report warning", "period", result.Period, "warning", warning)
	}
	s.log.Info("archive generated",
		"upload", header.Filename,
		"period", result.Period,
		"rows", result.RowsParsed,
		"bytes", len(result.Archive),
		"elapsed", time.Since(start).String(),
	)

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.ArchiveName))
	_, _ = w.Write(result.Archive)
}
