// Package preview serves the rendered plan over HTTP so artifacts can be
// viewed in a browser, downloaded as exports and backed up or restored.
package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alexanderramin/planforge/internal/app"
	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/export"
	"github.com/alexanderramin/planforge/internal/repository"
	"github.com/alexanderramin/planforge/internal/service"
	"github.com/alexanderramin/planforge/internal/view"
)

// maxRestoreBytes bounds POST /backup bodies. Brand assets are embedded as
// data URLs, so backups can be large.
const maxRestoreBytes = 64 << 20

type Server struct {
	ws     *app.Workspace
	logger *slog.Logger
	now    func() time.Time
}

func New(ws *app.Workspace, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{ws: ws, logger: logger.With("component", "preview"), now: time.Now}
}

// Handler returns the router with every preview route mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/", s.handleIndex)
	r.Get("/artifacts/{artifact}", s.handleArtifact)
	r.Get("/export/{file}", s.handleExport)
	r.Get("/backup", s.handleBackupDownload)
	r.Post("/backup", s.handleRestore)
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2 * time.Minute,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("preview listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("preview server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down preview server: %w", err)
	}
	s.logger.Info("preview stopped")
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) warn(r *http.Request, notices app.Notices) {
	for _, n := range notices {
		s.logger.Warn("record replaced by defaults", "path", r.URL.Path, "error", n)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	notices, err := s.ws.Index(r.Context(), &buf)
	s.warn(r, notices)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeHTML(w, buf.Bytes())
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	a, err := view.ParseArtifact(chi.URLParam(r, "artifact"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	var buf bytes.Buffer
	notices, err := s.ws.RenderHTML(r.Context(), &buf, a)
	s.warn(r, notices)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeHTML(w, buf.Bytes())
}

// handleExport serves /export/{artifact}.{format}. The optional mode query
// parameter selects raster or native pitch deck presentations.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	i := strings.LastIndex(file, ".")
	if i <= 0 {
		http.Error(w, "expected /export/{artifact}.{format}", http.StatusNotFound)
		return
	}
	a, err := view.ParseArtifact(file[:i])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	format, err := export.ParseFormat(file[i+1:])
	if err != nil {
		s.writeError(w, err)
		return
	}
	mode, err := export.ParseDeckMode(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	res, err := s.ws.Export(r.Context(), &buf, app.ExportRequest{Artifact: a, Format: format, DeckMode: mode})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.warn(r, res.Notices)
	writeAttachment(w, format.ContentType(), res.FileName, buf.Bytes())
}

func (s *Server) handleBackupDownload(w http.ResponseWriter, r *http.Request) {
	file, err := s.ws.Services().Backup.Export(r.Context(), s.now())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeAttachment(w, "application/json", file.Name, file.Data)
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRestoreBytes))
	if err != nil {
		http.Error(w, "reading body: "+err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	keys, err := s.ws.Services().Backup.Import(r.Context(), data)
	if err != nil {
		s.writeError(w, err)
		return
	}
	restored := make([]string, len(keys))
	for i, k := range keys {
		restored[i] = string(k)
	}
	writeJSON(w, http.StatusOK, map[string]any{"restored": restored})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("preview request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, export.ErrUnsupportedFormat),
		errors.Is(err, service.ErrInvalidBackup),
		domain.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, export.ErrRegionNotFound):
		return http.StatusNotFound
	case errors.Is(err, export.ErrExportInProgress):
		return http.StatusConflict
	case errors.Is(err, export.ErrEmptyRaster), errors.Is(err, export.ErrNoSlides):
		return http.StatusUnprocessableEntity
	case errors.Is(err, repository.ErrQuotaExceeded):
		return http.StatusInsufficientStorage
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

func writeAttachment(w http.ResponseWriter, contentType, name string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = w.Write(body)
}
