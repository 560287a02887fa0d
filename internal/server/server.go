// Package server exposes a random engine over HTTP/JSON and gRPC.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/xtding233/gamerand/internal/config"
	"github.com/xtding233/gamerand/internal/random"
)

// Server hosts the HTTP and gRPC transports around one Sampler.
type Server struct {
	sampler *Sampler
	metrics *Metrics

	httpListener net.Listener
	httpServer   *http.Server

	grpcListener net.Listener
	grpcServer   *grpc.Server
	health       *health.Server
}

// New creates a server for cfg serving engine. Listeners are opened here so
// Addr is valid before Serve.
func New(cfg config.Config, engine random.Engine) (*Server, error) {
	s := &Server{}
	if cfg.Metrics {
		s.metrics = NewMetrics()
	}
	s.sampler = NewSampler(engine, cfg.MaxProfile, s.metrics)

	if cfg.HTTPListen != "" {
		ln, err := net.Listen("tcp", cfg.HTTPListen)
		if err != nil {
			return nil, fmt.Errorf("listen http on %s: %w", cfg.HTTPListen, err)
		}
		s.httpListener = ln
		s.httpServer = &http.Server{Handler: s.routes(), ReadHeaderTimeout: 5 * time.Second}
	}

	if cfg.GRPCListen != "" {
		ln, err := net.Listen("tcp", cfg.GRPCListen)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("listen grpc on %s: %w", cfg.GRPCListen, err)
		}
		s.grpcListener = ln
		s.grpcServer = grpc.NewServer()
		s.health = health.NewServer()
		RegisterSamplerServer(s.grpcServer, grpcSampler{sampler: s.sampler})
		grpc_health_v1.RegisterHealthServer(s.grpcServer, s.health)
		s.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
		s.health.SetServingStatus(SamplerServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	}
	return s, nil
}

// Sampler returns the engine wrapper shared by both transports.
func (s *Server) Sampler() *Sampler { return s.sampler }

// HTTPAddr returns the HTTP listener address, or "" when disabled.
func (s *Server) HTTPAddr() string {
	if s == nil || s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// GRPCAddr returns the gRPC listener address, or "" when disabled.
func (s *Server) GRPCAddr() string {
	if s == nil || s.grpcListener == nil {
		return ""
	}
	return s.grpcListener.Addr().String()
}

// Serve runs both transports until ctx is cancelled or one fails.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	serveErr := make(chan error, 2)
	if s.httpServer != nil {
		log.Printf("http listening at %v", s.httpListener.Addr())
		go func() {
			err := s.httpServer.Serve(s.httpListener)
			if errors.Is(err, http.ErrServerClosed) {
				err = nil
			}
			serveErr <- err
		}()
	}
	if s.grpcServer != nil {
		log.Printf("grpc listening at %v", s.grpcListener.Addr())
		go func() {
			err := s.grpcServer.Serve(s.grpcListener)
			if errors.Is(err, grpc.ErrServerStopped) {
				err = nil
			}
			serveErr <- err
		}()
	}

	select {
	case <-ctx.Done():
		s.shutdown()
		return nil
	case err := <-serveErr:
		s.shutdown()
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}
}

func (s *Server) shutdown() {
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Printf("shutdown http: %v", err)
		}
	}
	if s.grpcServer != nil {
		s.grpcServer.GracefulStop()
	}
}

// Close releases listeners and stops both transports immediately.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.httpListener != nil {
		_ = s.httpListener.Close()
	}
	if s.grpcListener != nil {
		_ = s.grpcListener.Close()
	}
}

// Reload re-reads the config at path and swaps in a freshly seeded engine.
// Listen addresses and metrics settings only change on restart.
func (s *Server) Reload(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	engine, err := cfg.NewEngine()
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	s.sampler.Swap(engine)
	log.Printf("reloaded %s: engine=%s seed=%s", path, cfg.Engine, cfg.Seed.Strategy)
	return nil
}
