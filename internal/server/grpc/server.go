// Package grpc exposes the user and blob services over the BlobStore gRPC
// service.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophsync/internal/logging"
	pb "github.com/dmitrijs2005/gophsync/internal/proto"
	"github.com/dmitrijs2005/gophsync/internal/server/models"
	"google.golang.org/grpc"
)

// messageOverhead is the headroom over the blob limit left for the gRPC
// envelope.
const messageOverhead = 1 << 20

type UserService interface {
	Register(ctx context.Context, username string, salt, verifier []byte) (*models.User, error)
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifier []byte) (string, error)
}

type BlobService interface {
	Put(ctx context.Context, userID, name string, data []byte) (int64, error)
	Get(ctx context.Context, userID, name string) ([]byte, error)
	Delete(ctx context.Context, userID, name string) error
	List(ctx context.Context, userID string) ([]*models.Blob, error)
}

type GRPCServer struct {
	pb.UnimplementedBlobStoreServer
	address        string
	users          UserService
	blobs          BlobService
	logger         logging.Logger
	jwtSecret      []byte
	maxRecvMsgSize int
}

func NewGRPCServer(a string, l logging.Logger, us UserService, bs BlobService, secretKey string, maxBlobSize int64) *GRPCServer {
	recv := int64(pb.MaxMessageSize)
	if maxBlobSize+messageOverhead < recv {
		recv = maxBlobSize + messageOverhead
	}
	return &GRPCServer{
		address:        a,
		logger:         l.With("module", "grpc_server"),
		users:          us,
		blobs:          bs,
		jwtSecret:      []byte(secretKey),
		maxRecvMsgSize: int(recv),
	}
}

// newServer builds the grpc.Server with interceptors and the service
// registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor),
		grpc.MaxRecvMsgSize(s.maxRecvMsgSize),
	)
	pb.RegisterBlobStoreServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
