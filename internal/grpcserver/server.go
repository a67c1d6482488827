package grpcserver

import (
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"mangashelf/pkg/logging"
)

// CatalogService is the service name readiness is reported under, next to
// the overall ("") status.
const CatalogService = "mangashelf.Catalog"

// Server exposes grpc.health.v1. Both statuses start NOT_SERVING and flip
// once the first catalog load completed.
type Server struct {
	GRPC   *grpc.Server
	Health *health.Server
	Logger *zap.Logger
}

func NewServer(logger *zap.Logger) *Server {
	gs := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	reflection.Register(gs)

	s := &Server{GRPC: gs, Health: hs, Logger: logging.OrNop(logger)}
	s.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

func (s *Server) MarkServing() { s.set(healthpb.HealthCheckResponse_SERVING) }

func (s *Server) MarkNotServing() { s.set(healthpb.HealthCheckResponse_NOT_SERVING) }

func (s *Server) set(st healthpb.HealthCheckResponse_ServingStatus) {
	s.Health.SetServingStatus("", st)
	s.Health.SetServingStatus(CatalogService, st)
	s.Logger.Debug("health status", zap.String("status", st.String()))
}

// Serve blocks until the listener fails or Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	s.Logger.Info("gRPC health server listening", zap.String("addr", lis.Addr().String()))
	return s.GRPC.Serve(lis)
}

func (s *Server) Stop() {
	s.Health.Shutdown()
	s.GRPC.GracefulStop()
}
