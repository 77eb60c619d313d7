// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package server exposes an imageview.Worker over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/gogpu/imageview"
	"github.com/gogpu/imageview/canvas"
)

// MaxViewportSize bounds each side of a viewport created or resized over
// HTTP.
const MaxViewportSize = 8192

// DefaultMaxBodyBytes is the request body limit when Config leaves it zero.
const DefaultMaxBodyBytes = 64 << 20

// Config configures a Server.
type Config struct {
	Version      string
	Timeout      time.Duration
	MaxBodyBytes int64
	Logger       *slog.Logger
}

// Server routes viewport requests to a worker.
type Server struct {
	worker    *imageview.Worker
	cfg       Config
	startTime time.Time

	mu        sync.RWMutex
	viewports map[string]struct{}
}

// New returns a server for w. A zero Timeout means 30 seconds and a zero
// MaxBodyBytes means DefaultMaxBodyBytes.
func New(w *imageview.Worker, cfg Config) *Server {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = imageview.Logger()
	}
	return &Server{
		worker:    w,
		cfg:       cfg,
		startTime: time.Now(),
		viewports: make(map[string]struct{}),
	}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Timeout))

	r.Get("/health", s.getHealth)
	r.Route("/viewports", func(r chi.Router) {
		r.Post("/", s.createViewport)
		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", s.deleteViewport)
			r.Post("/render", s.renderImage)
			r.Get("/pixel", s.mouseMove)
			r.Get("/image.png", s.image)
			r.Get("/hitmap.png", s.hitmap)
		})
	})
	return r
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  int    `json:"uptime"`
	Version string `json:"version,omitempty"`
}

// CreateViewportRequest is the body of POST /viewports.
type CreateViewportRequest struct {
	ID     string `json:"id,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// CreateViewportResponse is the reply to POST /viewports.
type CreateViewportResponse struct {
	ID string `json:"id"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Uptime:  int(time.Since(s.startTime).Seconds()),
		Version: s.cfg.Version,
	})
}

func (s *Server) createViewport(w http.ResponseWriter, r *http.Request) {
	var req CreateViewportRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Width <= 0 || req.Height <= 0 || req.Width > MaxViewportSize || req.Height > MaxViewportSize {
		s.invalidSize(w, r)
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	if err := s.worker.Initialize(r.Context(), req.ID, canvas.New(req.Width, req.Height)); err != nil {
		s.workerError(w, r, err)
		return
	}
	s.mu.Lock()
	s.viewports[req.ID] = struct{}{}
	s.mu.Unlock()

	w.Header().Set("Location", "/viewports/"+req.ID)
	s.writeJSON(w, http.StatusCreated, CreateViewportResponse{ID: req.ID})
}

func (s *Server) deleteViewport(w http.ResponseWriter, r *http.Request) {
	id, ok := s.viewport(w, r)
	if !ok {
		return
	}
	if err := s.worker.Destroy(r.Context(), id); err != nil {
		s.workerError(w, r, err)
		return
	}
	s.mu.Lock()
	delete(s.viewports, id)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) renderImage(w http.ResponseWriter, r *http.Request) {
	id, ok := s.viewport(w, r)
	if !ok {
		return
	}
	var req imageview.RenderRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	// An empty viewport keeps the current size.
	if req.Viewport.Width > MaxViewportSize || req.Viewport.Height > MaxViewportSize {
		s.invalidSize(w, r)
		return
	}

	dims, err := s.worker.RenderImage(r.Context(), id, &req)
	switch {
	case errors.Is(err, imageview.ErrDecodeFailure):
		s.writeError(w, r, http.StatusUnprocessableEntity, "DECODE_FAILURE", err.Error())
	case err != nil:
		s.workerError(w, r, err)
	case dims == nil:
		w.WriteHeader(http.StatusNoContent)
	default:
		s.writeJSON(w, http.StatusOK, dims)
	}
}

func (s *Server) mouseMove(w http.ResponseWriter, r *http.Request) {
	id, ok := s.viewport(w, r)
	if !ok {
		return
	}
	x, errX := strconv.Atoi(r.URL.Query().Get("x"))
	y, errY := strconv.Atoi(r.URL.Query().Get("y"))
	if errX != nil || errY != nil {
		s.writeError(w, r, http.StatusBadRequest, "INVALID_POSITION", "x and y must be integers")
		return
	}

	sample, err := s.worker.MouseMove(r.Context(), id, x, y)
	if err != nil {
		s.workerError(w, r, err)
		return
	}
	if sample == nil {
		s.writeError(w, r, http.StatusNotFound, "OUT_OF_BOUNDS", "pixel outside the viewport")
		return
	}
	s.writeJSON(w, http.StatusOK, sample)
}

func (s *Server) image(w http.ResponseWriter, r *http.Request) {
	id, ok := s.viewport(w, r)
	if !ok {
		return
	}
	img, err := s.worker.Snapshot(r.Context(), id)
	s.writePNG(w, r, img, err)
}

func (s *Server) hitmap(w http.ResponseWriter, r *http.Request) {
	id, ok := s.viewport(w, r)
	if !ok {
		return
	}
	img, err := s.worker.HitmapSnapshot(r.Context(), id)
	s.writePNG(w, r, img, err)
}

// viewport returns the id path parameter, or writes 404 for ids that were
// never created.
func (s *Server) viewport(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	s.mu.RLock()
	_, ok := s.viewports[id]
	s.mu.RUnlock()
	if !ok {
		s.writeError(w, r, http.StatusNotFound, "UNKNOWN_VIEWPORT", "no viewport "+strconv.Quote(id))
		return "", false
	}
	return id, true
}

func (s *Server) writePNG(w http.ResponseWriter, r *http.Request, img image.Image, err error) {
	if err != nil {
		s.workerError(w, r, err)
		return
	}
	if img == nil {
		s.writeError(w, r, http.StatusNotFound, "UNKNOWN_VIEWPORT", "viewport was destroyed")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if err := png.Encode(w, img); err != nil {
		s.cfg.Logger.Warn("server: writing png", "error", err)
	}
}

func (s *Server) workerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, imageview.ErrWorkerClosed):
		s.writeError(w, r, http.StatusServiceUnavailable, "WORKER_CLOSED", err.Error())
	case r.Context().Err() != nil:
		s.writeError(w, r, http.StatusGatewayTimeout, "TIMEOUT", err.Error())
	default:
		s.writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

// decodeBody reads a JSON body of at most cfg.MaxBodyBytes into v and
// writes the error response when it cannot.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	err := json.NewDecoder(body).Decode(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.writeError(w, r, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE",
			"request body exceeds "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes")
		return false
	}
	s.writeError(w, r, http.StatusBadRequest, "INVALID_JSON", err.Error())
	return false
}

func (s *Server) invalidSize(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusBadRequest, "INVALID_SIZE",
		"width and height must be between 1 and "+strconv.Itoa(MaxViewportSize))
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	s.writeJSON(w, status, ErrorResponse{
		Error:     code,
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.cfg.Logger.Warn("server: encoding response", "error", err)
	}
}

// logRequests logs one line per request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.cfg.Logger.Debug("server: request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())))
	})
}
