// Package server exposes the OpsWing service as a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/josephgoksu/OpsWing/internal/analysis"
	"github.com/josephgoksu/OpsWing/internal/app"
	"github.com/josephgoksu/OpsWing/internal/notify"
	"github.com/josephgoksu/OpsWing/models"
	"github.com/josephgoksu/OpsWing/store"
	"github.com/josephgoksu/OpsWing/types"
)

// Server serves the API over a Service.
type Server struct {
	svc     *app.Service
	origins map[string]struct{}
	server  *http.Server
}

// New builds a server listening on cfg.Port.
func New(cfg types.ServerConfig, svc *app.Service) *Server {
	s := &Server{
		svc:     svc,
		origins: make(map[string]struct{}, len(cfg.AllowedOrigins)),
	}
	for _, o := range cfg.AllowedOrigins {
		s.origins[o] = struct{}{}
	}
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.Handler(),
	}
	return s
}

// Handler returns the routed, middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.registerRoutes()
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start serves in a goroutine tracked by wg; listen errors go to errChan.
func (s *Server) Start(wg *sync.WaitGroup, errChan chan<- error) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("API server listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func writeAPIJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeOK(w http.ResponseWriter, data any, message string) {
	writeAPIJSON(w, http.StatusOK, Response{Success: true, Data: data, Message: message})
}

func writeCreated(w http.ResponseWriter, data any, message string) {
	writeAPIJSON(w, http.StatusCreated, Response{Success: true, Data: data, Message: message})
}

// writeError maps service errors onto status codes. message describes the
// failed operation for the client.
func writeError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		slog.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	writeAPIJSON(w, status, Response{Success: false, Error: err.Error(), Message: message})
}

var errBadRequest = errors.New("invalid request body")

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, app.ErrValidation),
		errors.Is(err, analysis.ErrInvalidInput),
		errors.Is(err, notify.ErrNoRecipient):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// decode reads a JSON body into v. When optional is set an empty body
// leaves v untouched.
func decode(r *http.Request, v any, optional bool) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) && optional {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// decodeValid decodes a request payload and checks its validate tags.
// Records are validated by the service after defaults are applied.
func decodeValid(r *http.Request, v any) error {
	if err := decode(r, v, false); err != nil {
		return err
	}
	if err := models.ValidateStruct(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
