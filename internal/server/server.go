// Package server wires the storage, services, handlers and middleware
// into an HTTP server and manages its lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/bigako/internal/server/auth"
	"github.com/iudanet/bigako/internal/server/config"
	"github.com/iudanet/bigako/internal/server/files"
	"github.com/iudanet/bigako/internal/server/handlers"
	"github.com/iudanet/bigako/internal/server/messages"
	"github.com/iudanet/bigako/internal/server/middleware"
	"github.com/iudanet/bigako/internal/server/session"
	"github.com/iudanet/bigako/internal/server/storage/sqlite"
	"github.com/iudanet/bigako/internal/server/web"
)

const (
	// Лимиты для login/register: защита от перебора
	authRateLimit  = 10
	authRateWindow = time.Minute

	shutdownTimeout = 10 * time.Second
)

// Server owns all components of the running service
type Server struct {
	logger     *slog.Logger
	storage    *sqlite.Storage
	sessions   *session.Registry
	limiter    *middleware.RateLimiter
	httpServer *http.Server
}

// New builds a fully wired server from config
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	// Storage и файловое хранилище
	store, err := sqlite.New(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	fileStore, err := files.NewStore(cfg.UploadsDir)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to init file store: %w", err)
	}

	// Сервисы ядра
	authService := auth.NewService(store)
	sessions := session.NewRegistry()
	msgService := messages.NewService(store)

	// Handlers
	authHandler := handlers.NewAuthHandler(logger, authService, sessions)
	msgHandler := handlers.NewMessageHandler(logger, msgService, fileStore)
	downloadHandler := handlers.NewDownloadHandler(logger, fileStore)
	healthHandler := handlers.NewHealthHandler(logger)
	webHandler := web.NewHandler(logger, sessions)

	// Middleware
	guard := middleware.AuthMiddleware(logger, sessions)
	limiter := middleware.NewRateLimiter(authRateLimit, authRateWindow, logger)

	mux := http.NewServeMux()

	// Аутентификация: доступна без сессии, но с rate limit
	mux.Handle("POST /api/register", limiter.Middleware(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/login", limiter.Middleware(http.HandlerFunc(authHandler.Login)))

	// Все мутации и приватные чтения за session guard
	mux.Handle("POST /api/logout", guard(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("POST /api/message", guard(http.HandlerFunc(msgHandler.Post)))
	mux.Handle("GET /api/messages", guard(http.HandlerFunc(msgHandler.List)))
	mux.Handle("GET /api/userinfo", guard(http.HandlerFunc(msgHandler.UserInfo)))

	// Скачивание вложений не требует сессии
	mux.HandleFunc("GET /download/{key}", downloadHandler.Download)

	mux.HandleFunc("GET /api/health", healthHandler.Health)

	// UI страницы и статика
	mux.HandleFunc("GET /{$}", webHandler.Index)
	mux.HandleFunc("GET /login", webHandler.Login)
	mux.HandleFunc("GET /register", webHandler.Register)
	mux.HandleFunc("GET /messenger", webHandler.Messenger)
	mux.HandleFunc("GET /style.css", webHandler.Style)
	mux.HandleFunc("GET /script.js", webHandler.Script)

	// Внешняя цепочка: recovery -> logging -> mux
	// /api/messages опрашивается клиентами каждые 2 секунды, не логируем
	handler := middleware.RecoveryMiddleware(logger)(
		middleware.LoggingWithSkip(logger, []string{"/api/messages", "/api/health"})(mux),
	)

	httpServer := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		logger:     logger,
		storage:    store,
		sessions:   sessions,
		limiter:    limiter,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until ctx is canceled or the
// listener fails. On cancel the server shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errC := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP server starting", "address", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		s.close()
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.close()

	if err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// close освобождает ресурсы сервера
func (s *Server) close() {
	s.limiter.Stop()
	if err := s.storage.Close(); err != nil {
		s.logger.Error("failed to close storage", "error", err)
	}
}
