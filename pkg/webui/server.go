package webui

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/marmos91/ftpserver/internal/logger"
	"github.com/marmos91/ftpserver/pkg/auth"
	"github.com/marmos91/ftpserver/pkg/metrics"
)

// Config configures the admin HTTP API server.
type Config struct {
	Port        int
	JWTSecret   string
	JWTTTL      time.Duration
	TokenDBPath string
}

// Server is the admin HTTP API, serving ftpserverctl's requests and, once
// pkg/acme is wired, ACME HTTP-01 challenge responses on the same port.
type Server struct {
	httpServer *http.Server
	tokens     *TokenDB
	jwt        *JWTService

	shutdownOnce sync.Once
}

// NewServer builds a Server bound to cfg, backed by store for user/group
// data and ab for the autobanner integration on login failures. m may be
// nil if metrics are disabled.
func NewServer(cfg Config, store *auth.Store, ab AutobanRecorder, m *metrics.Metrics) (*Server, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("webui: JWT secret must be at least 32 characters")
	}

	jwtSvc, err := NewJWTService(JWTConfig{
		Secret:              cfg.JWTSecret,
		Issuer:              "ftpserverd",
		AccessTokenDuration: cfg.JWTTTL,
	})
	if err != nil {
		return nil, err
	}

	var tokens *TokenDB
	if cfg.TokenDBPath != "" {
		tokens, err = OpenTokenDB(cfg.TokenDBPath)
		if err != nil {
			return nil, err
		}
	}

	router := NewRouter(store, jwtSvc, tokens, ab, m)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		tokens: tokens,
		jwt:    jwtSvc,
	}, nil
}

// Start serves the admin API until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("webui: admin API listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("webui: admin API failed: %w", err)
	}
}

// Stop gracefully shuts the server down and closes the token database.
// Safe to call multiple times.
func (s *Server) Stop(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		err = s.httpServer.Shutdown(ctx)
		if s.tokens != nil {
			_ = s.tokens.Close()
		}
	})
	return err
}
