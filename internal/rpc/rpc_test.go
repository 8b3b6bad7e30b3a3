package rpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

func TestCodec_RegisteredAndRoundTrips(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)

	bio := ""
	in := &UpdateProfileRequest{Bio: &bio}
	b, err := c.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"bio":""}`, string(b))

	out := &UpdateProfileRequest{}
	require.NoError(t, c.Unmarshal(b, out))
	require.NotNil(t, out.Bio)
	assert.Nil(t, out.Name)
}

func TestCodec_EmptyPayload(t *testing.T) {
	var req GetProfileRequest
	require.NoError(t, Codec{}.Unmarshal(nil, &req))
}

func TestCodec_BadPayload(t *testing.T) {
	var req LoginRequest
	require.Error(t, Codec{}.Unmarshal([]byte("{"), &req))
}

func TestRequiresAuth(t *testing.T) {
	assert.False(t, RequiresAuth(AuthService_Ping_FullMethodName))
	assert.False(t, RequiresAuth(AuthService_Register_FullMethodName))
	assert.False(t, RequiresAuth(AuthService_Login_FullMethodName))

	for _, m := range []string{
		AuthService_GetProfile_FullMethodName,
		AuthService_UpdateProfile_FullMethodName,
		AuthService_ChangePassword_FullMethodName,
		AuthService_DeleteAccount_FullMethodName,
		AuthService_Logout_FullMethodName,
		AuthService_RequestAvatarUpload_FullMethodName,
	} {
		assert.True(t, RequiresAuth(m), m)
	}
}

type pingOnly struct{ UnimplementedAuthServiceServer }

func (pingOnly) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return &PingResponse{Status: "OK"}, nil
}

func TestUnaryHandler_WithAndWithoutInterceptor(t *testing.T) {
	h := AuthService_ServiceDesc.Methods[0].Handler
	dec := func(v any) error { return nil }

	out, err := h(pingOnly{}, context.Background(), dec, nil)
	require.NoError(t, err)
	assert.Equal(t, "OK", out.(*PingResponse).Status)

	var seen string
	icpt := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		seen = info.FullMethod
		return handler(ctx, req)
	}
	_, err = h(pingOnly{}, context.Background(), dec, icpt)
	require.NoError(t, err)
	assert.Equal(t, AuthService_Ping_FullMethodName, seen)

	_, err = AuthService_ServiceDesc.Methods[1].Handler(pingOnly{}, context.Background(), dec, nil)
	require.Error(t, err, "unimplemented method")
}
