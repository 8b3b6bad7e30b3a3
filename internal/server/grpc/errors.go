package grpc

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors to gRPC statuses. Validation errors carry the
// field list as JSON in the status message; internal failures carry nothing.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	var verr *common.ValidationError

	switch {
	case errors.As(err, &verr):
		b, mErr := json.Marshal(verr.Fields)
		if mErr != nil {
			return status.Error(codes.InvalidArgument, verr.Error())
		}
		return status.Error(codes.InvalidArgument, string(b))
	case errors.Is(err, common.ErrDuplicateEmail):
		return status.Error(codes.AlreadyExists, "User already exists with this email")
	case errors.Is(err, common.ErrCurrentPasswordIncorrect):
		return status.Error(codes.FailedPrecondition, "Current password is incorrect")
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, "Invalid email or password")
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "Invalid or expired token")
	default:
		if !errors.Is(err, common.ErrorInternal) {
			s.logger.Error(ctx, "unexpected error", "error", err)
		}
		return status.Error(codes.Internal, "Internal server error")
	}
}
