package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophsync/internal/common"
	pb "github.com/dmitrijs2005/gophsync/internal/proto"
	"github.com/dmitrijs2005/gophsync/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// toStatus maps service errors onto gRPC codes. Unknown errors are logged
// and reported as Internal without detail.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, services.ErrBlobTooLarge),
		errors.Is(err, pb.ErrMalformed):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func (s *GRPCServer) Register(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {

	creds, err := pb.CredentialsFromStruct(req)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	user, err := s.users.Register(ctx, creds.Username, creds.Salt, creds.Verifier)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) GetSalt(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {

	if req.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "empty username")
	}

	salt, err := s.users.GetSalt(ctx, req.GetValue())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return wrapperspb.Bytes(salt), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {

	creds, err := pb.CredentialsFromStruct(req)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	token, err := s.users.Login(ctx, creds.Username, creds.Verifier)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return wrapperspb.String(token), nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(pb.PingOK), nil
}

func (s *GRPCServer) Put(ctx context.Context, req *wrapperspb.BytesValue) (*wrapperspb.Int64Value, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	name := headerValue(ctx, common.ObjectNameHeaderName)
	if name == "" {
		return nil, status.Error(codes.InvalidArgument, "missing object name")
	}

	version, err := s.blobs.Put(ctx, userID, name, req.GetValue())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return wrapperspb.Int64(version), nil
}

func (s *GRPCServer) Get(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	data, err := s.blobs.Get(ctx, userID, req.GetValue())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return wrapperspb.Bytes(data), nil
}

func (s *GRPCServer) Delete(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.blobs.Delete(ctx, userID, req.GetValue()); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) List(ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	blobs, err := s.blobs.List(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	entries := make([]pb.ObjectEntry, 0, len(blobs))
	for _, b := range blobs {
		entries = append(entries, pb.ObjectEntry{
			Name:      b.Name,
			Size:      b.Size,
			Version:   b.Version,
			UpdatedAt: b.UpdatedAt,
		})
	}

	return pb.EncodeObjects(entries), nil
}
