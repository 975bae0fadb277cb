// Package server exposes branded image generation and chat over HTTP.
//
// The service fronts the unified client with a small JSON API: the full
// generate-brand-save pipeline, a legacy DALL-E endpoint, session-scoped
// chat over POST and WebSocket, Prometheus metrics, and read-only serving
// of the output directory.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	ai "github.com/brandkit/brandkit"
	"github.com/brandkit/brandkit/model"
	"github.com/brandkit/brandkit/session"
)

// Client is the slice of the unified client the server depends on.
// *client.Client satisfies this interface.
type Client interface {
	Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error)
	ChatStream(ctx context.Context, messages []ai.Message, opts ...ai.Option) (<-chan ai.StreamEvent, error)
	GenerateImage(ctx context.Context, prompt string, opts ...ai.ImageOption) (*ai.ImageResponse, error)
}

// Server routes HTTP traffic to the generation pipeline and chat client.
type Server struct {
	cfg      *Config
	client   Client
	sessions session.Store
	logger   *slog.Logger

	chatModel  ai.Model
	imageModel ai.Model

	upgrader websocket.Upgrader
	http     *http.Server
}

// New wires a Server from its parts. The configured chat and image model
// identifiers must resolve; anything else is deferred to request time.
func New(cfg *Config, c Client, sessions session.Store, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	chatModel, err := model.Resolve(cfg.ChatModel)
	if err != nil {
		return nil, err
	}
	imageModel, err := model.Resolve(cfg.ImageModel)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:        cfg,
		client:     c,
		sessions:   sessions,
		logger:     logger,
		chatModel:  chatModel,
		imageModel: imageModel,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	s.http = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s, nil
}

// Router builds the route table. Exposed separately so tests can drive the
// handlers through httptest without binding a port.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/api/generate", s.handleGenerate).Methods(http.MethodPost)
	r.HandleFunc("/api/image", s.handleImage).Methods(http.MethodPost)
	r.HandleFunc("/api/chat", s.handleChat).Methods(http.MethodPost)
	r.HandleFunc("/ws", s.handleWS)

	r.HandleFunc("/outputs/{file}", s.handleOutputFile).Methods(http.MethodGet)

	// Preflight requests match here after the method-specific routes
	// decline them; the CORS middleware writes the actual response.
	r.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	r.Use(s.logMiddleware, corsMiddleware)
	return r
}

// Start begins serving and blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	s.logger.Info("server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, bounded by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
