package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "gophauth.v1.AuthService"

const (
	AuthService_Ping_FullMethodName                = "/" + ServiceName + "/Ping"
	AuthService_Register_FullMethodName            = "/" + ServiceName + "/Register"
	AuthService_Login_FullMethodName               = "/" + ServiceName + "/Login"
	AuthService_GetProfile_FullMethodName          = "/" + ServiceName + "/GetProfile"
	AuthService_UpdateProfile_FullMethodName       = "/" + ServiceName + "/UpdateProfile"
	AuthService_ChangePassword_FullMethodName      = "/" + ServiceName + "/ChangePassword"
	AuthService_DeleteAccount_FullMethodName       = "/" + ServiceName + "/DeleteAccount"
	AuthService_Logout_FullMethodName              = "/" + ServiceName + "/Logout"
	AuthService_RequestAvatarUpload_FullMethodName = "/" + ServiceName + "/RequestAvatarUpload"
)

var publicMethods = map[string]struct{}{
	AuthService_Ping_FullMethodName:     {},
	AuthService_Register_FullMethodName: {},
	AuthService_Login_FullMethodName:    {},
}

// RequiresAuth reports whether fullMethod needs a bearer token.
func RequiresAuth(fullMethod string) bool {
	_, public := publicMethods[fullMethod]
	return !public
}

// AuthServiceServer is the server API for the auth service.
type AuthServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Register(context.Context, *RegisterRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*UserResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*UserResponse, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*AckResponse, error)
	DeleteAccount(context.Context, *DeleteAccountRequest) (*AckResponse, error)
	Logout(context.Context, *LogoutRequest) (*AckResponse, error)
	RequestAvatarUpload(context.Context, *AvatarUploadRequest) (*AvatarUploadResponse, error)
}

// UnimplementedAuthServiceServer can be embedded to keep forward compatibility.
type UnimplementedAuthServiceServer struct{}

func (UnimplementedAuthServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedAuthServiceServer) Register(context.Context, *RegisterRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedAuthServiceServer) Login(context.Context, *LoginRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedAuthServiceServer) GetProfile(context.Context, *GetProfileRequest) (*UserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedAuthServiceServer) UpdateProfile(context.Context, *UpdateProfileRequest) (*UserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateProfile not implemented")
}
func (UnimplementedAuthServiceServer) ChangePassword(context.Context, *ChangePasswordRequest) (*AckResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ChangePassword not implemented")
}
func (UnimplementedAuthServiceServer) DeleteAccount(context.Context, *DeleteAccountRequest) (*AckResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteAccount not implemented")
}
func (UnimplementedAuthServiceServer) Logout(context.Context, *LogoutRequest) (*AckResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedAuthServiceServer) RequestAvatarUpload(context.Context, *AvatarUploadRequest) (*AvatarUploadResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RequestAvatarUpload not implemented")
}

// unaryHandler adapts a typed server method to grpc.MethodHandler, running
// the chained interceptors the same way generated code does.
func unaryHandler[Req, Resp any](fullMethod string, call func(AuthServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AuthServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AuthServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// AuthService_ServiceDesc is the grpc.ServiceDesc for the auth service.
var AuthService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(AuthService_Ping_FullMethodName, AuthServiceServer.Ping)},
		{MethodName: "Register", Handler: unaryHandler(AuthService_Register_FullMethodName, AuthServiceServer.Register)},
		{MethodName: "Login", Handler: unaryHandler(AuthService_Login_FullMethodName, AuthServiceServer.Login)},
		{MethodName: "GetProfile", Handler: unaryHandler(AuthService_GetProfile_FullMethodName, AuthServiceServer.GetProfile)},
		{MethodName: "UpdateProfile", Handler: unaryHandler(AuthService_UpdateProfile_FullMethodName, AuthServiceServer.UpdateProfile)},
		{MethodName: "ChangePassword", Handler: unaryHandler(AuthService_ChangePassword_FullMethodName, AuthServiceServer.ChangePassword)},
		{MethodName: "DeleteAccount", Handler: unaryHandler(AuthService_DeleteAccount_FullMethodName, AuthServiceServer.DeleteAccount)},
		{MethodName: "Logout", Handler: unaryHandler(AuthService_Logout_FullMethodName, AuthServiceServer.Logout)},
		{MethodName: "RequestAvatarUpload", Handler: unaryHandler(AuthService_RequestAvatarUpload_FullMethodName, AuthServiceServer.RequestAvatarUpload)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophauth/v1/auth.json",
}

// RegisterAuthServiceServer registers srv on s.
func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthService_ServiceDesc, srv)
}
