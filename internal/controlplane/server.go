package controlplane

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/guardianhealth/medmaintain/internal/accounts"
	"github.com/guardianhealth/medmaintain/internal/cloudsdk"
	"github.com/guardianhealth/medmaintain/internal/connmon"
	"github.com/guardianhealth/medmaintain/internal/controlplane/middleware"
	"github.com/guardianhealth/medmaintain/internal/persist"
	"github.com/guardianhealth/medmaintain/internal/store"
	"github.com/guardianhealth/medmaintain/internal/syncer"
)

// Deps are the daemon components the control plane surfaces.
type Deps struct {
	Store     *store.Store
	Engine    *syncer.Engine
	Monitor   *connmon.Monitor
	SDK       *cloudsdk.CloudSDK
	Persister *persist.Persister
	Accounts  *accounts.Service
}

// Config for the control plane HTTP server.
type Config struct {
	Addr      string
	AuthToken string
}

type Server struct {
	config *Config
	server *http.Server
}

func NewServer(config *Config, deps *Deps) (*Server, error) {
	routes := SetupRoutes(deps, &RouteConfig{
		Auth: middleware.TokenAuthConfig{
			Token: config.AuthToken,
		},
	})

	httpServer := &http.Server{
		Addr:    config.Addr,
		Handler: routes,
		// Timeouts to prevent slow client attacks
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		// Connection control
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	return &Server{
		config: config,
		server: httpServer,
	}, nil
}

func (s *Server) Start(ctx context.Context) error {
	slog.Info("control plane start", "addr", fmt.Sprintf("http://%s", s.config.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	slog.Info("control plane stop")
	return s.server.Shutdown(ctx)
}
