package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"toolcatalog/internal/domain"
	"toolcatalog/internal/infra/telemetry"
)

const idleTimeout = 60 * time.Second

// Chatter answers chat messages.
type Chatter interface {
	Reply(ctx context.Context, req domain.ChatRequest) (domain.ChatReply, error)
}

// ToolIdentifier names the catalog tool shown in a photo.
type ToolIdentifier interface {
	Identify(ctx context.Context, req domain.IdentifyRequest) (domain.IdentifyResult, error)
}

// Options configures the API server. When Observability is set, /metrics
// and /healthz are served on the API listener as well.
type Options struct {
	Config        domain.ServerConfig
	Catalog       domain.CatalogSource
	Chat          Chatter
	Identify      ToolIdentifier
	Metrics       domain.Metrics
	Observability *telemetry.HTTPServerOptions
	Logger        *zap.Logger
}

// Server serves the catalog REST API.
type Server struct {
	config   domain.ServerConfig
	catalog  domain.CatalogSource
	chat     Chatter
	identify ToolIdentifier
	metrics  domain.Metrics
	logger   *zap.Logger
	handler  http.Handler
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	s := &Server{
		config:   opts.Config,
		catalog:  opts.Catalog,
		chat:     opts.Chat,
		identify: opts.Identify,
		metrics:  metrics,
		logger:   logger.Named("http"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("GET /api/tools", s.handleTools)
	mux.HandleFunc("GET /api/tools/{id}", s.handleTool)
	mux.Handle("POST /api/chat", s.limitBody(http.HandlerFunc(s.handleChat)))
	mux.Handle("POST /api/identify-tool", s.limitBody(http.HandlerFunc(s.handleIdentify)))
	mux.HandleFunc("/api/", s.handleNotFound)
	if opts.Observability != nil {
		telemetry.Mount(mux, *opts.Observability)
	}

	s.handler = s.instrument(s.recoverPanics(mux))
	return s
}

// Handler returns the fully wrapped API handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr is the listen address derived from the server config.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

// Run listens on Addr and serves until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.Addr(), err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is done. The listener is closed on
// return.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	requestTimeout := s.config.RequestTimeout()
	server := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: secondsOr(s.config.ReadHeaderTimeoutSeconds, domain.DefaultReadHeaderTimeoutSeconds),
		ReadTimeout:       requestTimeout,
		WriteTimeout:      requestTimeout + 10*time.Second,
		IdleTimeout:       idleTimeout,
		ErrorLog:          zap.NewStdLog(s.logger),
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("tool catalog server listening", zap.String("addr", listener.Addr().String()))
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("api server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), secondsOr(s.config.ShutdownTimeoutSeconds, domain.DefaultShutdownTimeoutSeconds))
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("api server shutdown error", zap.Error(err))
			return err
		}
		s.logger.Info("tool catalog server stopped")
		return nil
	}
}

func secondsOr(value int, fallback int) time.Duration {
	if value <= 0 {
		value = fallback
	}
	return time.Duration(value) * time.Second
}
