// Package grpc exposes the Accounts service over gRPC, together with the
// standard health service used by clients as a liveness probe.
package grpc

import (
	"context"
	"encoding/json"
	"net"

	"github.com/dmitrijs2005/favfood/internal/api"
	"github.com/dmitrijs2005/favfood/internal/logging"
	"github.com/dmitrijs2005/favfood/internal/server/models"
	"github.com/dmitrijs2005/favfood/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// UserService is the account API the handlers depend on.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*services.Session, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	SignOut(ctx context.Context, userID, refreshToken string) error
}

// DocumentService is the document API the handlers depend on.
type DocumentService interface {
	Read(ctx context.Context, ownerID, collection, id string) (json.RawMessage, error)
	Write(ctx context.Context, ownerID, collection, id string, body json.RawMessage) error
}

type GRPCServer struct {
	api.UnimplementedAccountsServer
	address   string
	users     UserService
	documents DocumentService
	logger    logging.Logger
	jwtSecret []byte
	health    *health.Server
}

func NewGRPCServer(a string, l logging.Logger, us UserService, ds DocumentService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		documents: ds,
		jwtSecret: []byte(secretKey),
		health:    health.NewServer(),
	}
}

// newServer builds the grpc.Server with interceptors and both services
// registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))

	api.RegisterAccountsServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
