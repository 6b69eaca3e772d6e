package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Config for the metrics server.
type Config struct {
	Enable bool   `mapstructure:"metrics"`
	Listen string `mapstructure:"metrics-listen"`
}

// DefaultConfig serves metrics on all interfaces, port 1010. Disabled by default.
func DefaultConfig() Config {
	return Config{Listen: ":1010"}
}

// Server serves /metrics until the context passed to Serve is canceled.
type Server struct {
	logger *zap.Logger
	srv    *http.Server
	lis    net.Listener
}

// NewServer binds the listener so that the actual address is known before Serve.
func NewServer(logger *zap.Logger, listen string) (*Server, error) {
	lis, err := net.Listen("tcp", listen)
	if err != nil {
		return nil, fmt.Errorf("listen metrics on %s: %w", listen, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &Server{
		logger: logger,
		srv:    &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second},
		lis:    lis,
	}, nil
}

// Addr returns the address server listens on.
func (s *Server) Addr() net.Addr {
	return s.lis.Addr()
}

// Serve blocks until ctx is done or the server fails.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("serving metrics", zap.Stringer("address", s.lis.Addr()))
	errc := make(chan error, 1)
	go func() {
		errc <- s.srv.Serve(s.lis)
	}()
	select {
	case err := <-errc:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdown); err != nil {
		return fmt.Errorf("shutdown metrics server: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
