// Package ui provides the web server hosting the admin layout shell.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	adminFeature "github.com/leapstack-labs/adminshell/internal/ui/features/admin"
	"github.com/leapstack-labs/adminshell/internal/ui/mounts"
	"github.com/leapstack-labs/adminshell/internal/ui/resources"
	"github.com/leapstack-labs/adminshell/internal/ui/router"
)

// Server is the main UI server.
type Server struct {
	sessionStore         *sessions.CookieStore
	mounts               *mounts.Registry
	views                adminFeature.Views
	host                 string
	port                 int
	dev                  bool
	watch                bool
	appName              string
	defaultViewportWidth int
	logger               *slog.Logger
	reload               chan struct{}
}

// Config holds configuration for the UI server.
type Config struct {
	Host                 string
	Port                 int
	Dev                  bool
	Watch                bool
	SessionSecret        string
	AppName              string
	DefaultViewportWidth int
	Logger               *slog.Logger

	// Views supplies the content of each destination; missing entries
	// render a placeholder.
	Views adminFeature.Views
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		sessionStore:         sessionStore,
		mounts:               mounts.New(),
		views:                cfg.Views,
		host:                 cfg.Host,
		port:                 cfg.Port,
		dev:                  cfg.Dev,
		watch:                cfg.Watch,
		appName:              cfg.AppName,
		defaultViewportWidth: cfg.DefaultViewportWidth,
		logger:               logger,
		reload:               make(chan struct{}, 1),
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.host, fmt.Sprint(s.port))
}

// Handler builds the HTTP handler serving the shell.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, router.Deps{
		Mounts:               s.mounts,
		SessionStore:         s.sessionStore,
		Views:                s.views,
		Logger:               s.logger,
		AppName:              s.appName,
		DefaultViewportWidth: s.defaultViewportWidth,
		IsDev:                s.dev,
		Reload:               s.reload,
	}); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	s.logger.Info("starting UI server", "addr", s.Addr(), "dev", s.dev)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.Addr(),
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start static asset watcher in dev mode
	if s.dev && s.watch {
		eg.Go(func() error {
			return s.watchStatic(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...", "live_mounts", s.mounts.Len())
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Mounts returns the server's mount registry.
func (s *Server) Mounts() *mounts.Registry {
	return s.mounts
}

// watchStatic reloads dev browsers when a static asset changes.
func (s *Server) watchStatic(ctx context.Context) error {
	dir := resources.Dir()
	if dir == "" {
		s.logger.Debug("static assets embedded, not watching")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		s.logger.Error("failed to watch static directory", "dir", dir, "error", err)
		// Don't fail - continue without watching
		return nil
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("static asset changed, reloading browsers", "file", name)
				s.triggerReload()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

func (s *Server) triggerReload() {
	select {
	case s.reload <- struct{}{}:
	default:
	}
}
