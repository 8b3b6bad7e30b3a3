// Package client talks to the auth server over gRPC and keeps the session
// token in memory only.
package client

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/rpc"
)

// Client is the surface the CLI uses.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	LoggedIn() bool
	Register(ctx context.Context, name, email, password string) (*rpc.User, error)
	Login(ctx context.Context, email, password string) (*rpc.User, error)
	Profile(ctx context.Context) (*rpc.User, error)
	UpdateProfile(ctx context.Context, req *rpc.UpdateProfileRequest) (*rpc.User, error)
	ChangePassword(ctx context.Context, current, next string) error
	DeleteAccount(ctx context.Context) error
	Logout(ctx context.Context) error
	UploadAvatar(ctx context.Context, contentType string, data []byte) (*rpc.User, error)
}

var _ Client = (*GRPCClient)(nil)
