package transport

import (
	"fmt"

	"github.com/dmitrijs2005/gophsync/internal/client/storage"
	"github.com/dmitrijs2005/gophsync/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func mapError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var target error
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		target = storage.ErrUnauthorized
	case codes.Unavailable:
		target = storage.ErrUnavailable
	case codes.DeadlineExceeded:
		target = storage.ErrTimeout
	case codes.NotFound:
		target = storage.ErrNotFound
	case codes.AlreadyExists:
		target = common.ErrorAlreadyExists
	case codes.InvalidArgument:
		target = common.ErrorValidation
	default:
		return fmt.Errorf("rpc error: %w", err)
	}

	return fmt.Errorf("%w: %s", target, st.Message())
}
