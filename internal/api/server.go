package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/chapool/go-hdpay/internal/config"
	"github.com/chapool/go-hdpay/internal/metrics"
	"github.com/chapool/go-hdpay/internal/util"
	"github.com/chapool/go-hdpay/internal/wallet"
	"github.com/dropbox/godropbox/time2"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type Router struct {
	Routes     []*echo.Route
	Root       *echo.Group
	Management *echo.Group
	APIV1      *echo.Group
}

// Server is a central struct keeping all the dependencies.
// Echo and Router are set by router.Init.
type Server struct {
	Echo   *echo.Echo
	Router *Router

	Config  config.Server
	Clock   time2.Clock
	Metrics *metrics.Service
	Wallet  *wallet.Components
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

// InitNewServer returns a server with metrics and wallet components built from
// config. Routes are attached separately by router.Init.
func InitNewServer(ctx context.Context, config config.Server) (*Server, error) {
	s := NewServer(config)
	s.Clock = time2.DefaultClock

	m, err := metrics.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics service: %w", err)
	}
	s.Metrics = m

	w, err := wallet.Initialize(ctx, config, m)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize wallet: %w", err)
	}
	s.Wallet = w

	return s, nil
}

func (s *Server) Ready() bool {
	if err := util.IsStructInitialized(s); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}
	if err := util.IsStructInitialized(s.Wallet); err != nil {
		log.Debug().Err(err).Msg("Wallet is not fully initialized")
		return false
	}

	return true
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	if s.Wallet != nil {
		log.Debug().Msg("Closing wallet providers and wiping root key")
		s.Wallet.Close()
	}

	return errs
}
