package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.AuthServiceClient
	uploader    Uploader

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

// accessTokenInterceptor attaches the session token, if any, to every call.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewGRPCClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, uploader: NewHTTPUploader()}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewAuthServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}

func (s *GRPCClient) LoggedIn() bool {
	return s.token() != ""
}

func (s *GRPCClient) requireLogin() error {
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}
	return nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &rpc.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, name, email, password string) (*rpc.User, error) {
	resp, err := s.client.Register(ctx, &rpc.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	s.setToken(resp.Token)
	return &resp.User, nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (*rpc.User, error) {
	resp, err := s.client.Login(ctx, &rpc.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	s.setToken(resp.Token)
	return &resp.User, nil
}

func (s *GRPCClient) Profile(ctx context.Context) (*rpc.User, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}
	resp, err := s.client.GetProfile(ctx, &rpc.GetProfileRequest{})
	if err != nil {
		return nil, s.sessionError(err)
	}
	return &resp.User, nil
}

func (s *GRPCClient) UpdateProfile(ctx context.Context, req *rpc.UpdateProfileRequest) (*rpc.User, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}
	resp, err := s.client.UpdateProfile(ctx, req)
	if err != nil {
		return nil, s.sessionError(err)
	}
	return &resp.User, nil
}

func (s *GRPCClient) ChangePassword(ctx context.Context, current, next string) error {
	if err := s.requireLogin(); err != nil {
		return err
	}
	_, err := s.client.ChangePassword(ctx, &rpc.ChangePasswordRequest{CurrentPassword: current, NewPassword: next})
	return s.sessionError(err)
}

// DeleteAccount removes the account and forgets the token.
func (s *GRPCClient) DeleteAccount(ctx context.Context) error {
	if err := s.requireLogin(); err != nil {
		return err
	}
	if _, err := s.client.DeleteAccount(ctx, &rpc.DeleteAccountRequest{}); err != nil {
		return s.sessionError(err)
	}
	s.setToken("")
	return nil
}

// Logout tells the server and discards the token. The token is discarded
// even when the call fails; the server keeps no session to clean up.
func (s *GRPCClient) Logout(ctx context.Context) error {
	if err := s.requireLogin(); err != nil {
		return err
	}
	_, err := s.client.Logout(ctx, &rpc.LogoutRequest{})
	s.setToken("")
	return s.mapError(err)
}

// UploadAvatar asks the server for a presigned URL and PUTs data to it.
func (s *GRPCClient) UploadAvatar(ctx context.Context, contentType string, data []byte) (*rpc.User, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}
	resp, err := s.client.RequestAvatarUpload(ctx, &rpc.AvatarUploadRequest{ContentType: contentType})
	if err != nil {
		return nil, s.sessionError(err)
	}
	if err := s.uploader.Upload(ctx, resp.UploadURL, contentType, data); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// mapError turns gRPC statuses back into the shared error values so the CLI
// can print something useful.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.InvalidArgument:
		var fields []common.FieldError
		if jErr := json.Unmarshal([]byte(st.Message()), &fields); jErr == nil && len(fields) > 0 {
			return &common.ValidationError{Fields: fields}
		}
		return fmt.Errorf("%w: %s", common.ErrorValidation, st.Message())
	case codes.AlreadyExists:
		return common.ErrDuplicateEmail
	case codes.FailedPrecondition:
		return common.ErrCurrentPasswordIncorrect
	case codes.Unauthenticated:
		if st.Message() == "Invalid email or password" {
			return common.ErrInvalidCredentials
		}
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("%w: %s", ErrUnexpectedRPC, st.Message())
	}
}

// sessionError maps err and forgets the token once the server has rejected
// it, so the CLI drops back to the logged-out prompt.
func (s *GRPCClient) sessionError(err error) error {
	err = s.mapError(err)
	if errors.Is(err, ErrUnauthorized) {
		s.setToken("")
	}
	return err
}
