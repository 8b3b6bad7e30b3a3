package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/rpc"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toRPCUser(p models.Profile) rpc.User {
	return rpc.User{
		ID:              p.ID,
		Name:            p.Name,
		Email:           p.Email,
		Avatar:          p.Avatar,
		Bio:             p.Bio,
		Phone:           p.Phone,
		DateOfBirth:     p.DateOfBirth,
		Location:        p.Location,
		Website:         p.Website,
		IsEmailVerified: p.IsEmailVerified,
		LastLogin:       p.LastLogin,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// currentUser is set by accessTokenInterceptor for every protected method.
func currentUser(ctx context.Context) (*models.User, error) {
	u, ok := UserFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "Access token required")
	}
	return u, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *rpc.PingRequest) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "OK", Timestamp: s.now().UTC()}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.AuthResponse, error) {
	res, err := s.users.Register(ctx, services.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.AuthResponse{Message: "User registered successfully", Token: res.Token, User: toRPCUser(res.User)}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.AuthResponse, error) {
	res, err := s.users.Login(ctx, services.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.AuthResponse{Message: "Login successful", Token: res.Token, User: toRPCUser(res.User)}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, req *rpc.GetProfileRequest) (*rpc.UserResponse, error) {
	u, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.users.Profile(ctx, u.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.UserResponse{User: toRPCUser(p)}, nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *rpc.UpdateProfileRequest) (*rpc.UserResponse, error) {
	u, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.users.UpdateProfile(ctx, u.ID, services.ProfileInput{
		Name:        req.Name,
		Bio:         req.Bio,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		Location:    req.Location,
		Website:     req.Website,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.UserResponse{Message: "Profile updated successfully", User: toRPCUser(p)}, nil
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *rpc.ChangePasswordRequest) (*rpc.AckResponse, error) {
	u, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	err = s.users.ChangePassword(ctx, u.ID, services.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.AckResponse{Message: "Password changed successfully"}, nil
}

func (s *GRPCServer) DeleteAccount(ctx context.Context, req *rpc.DeleteAccountRequest) (*rpc.AckResponse, error) {
	u, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.users.DeleteAccount(ctx, u.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.AckResponse{Message: "Account deleted successfully"}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *rpc.LogoutRequest) (*rpc.AckResponse, error) {
	u, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.users.Logout(ctx, u.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.AckResponse{Message: "Logged out successfully"}, nil
}

func (s *GRPCServer) RequestAvatarUpload(ctx context.Context, req *rpc.AvatarUploadRequest) (*rpc.AvatarUploadResponse, error) {
	u, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	up, err := s.users.RequestAvatarUpload(ctx, u.ID, req.ContentType)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.AvatarUploadResponse{
		UploadURL: up.UploadURL,
		AvatarURL: up.AvatarURL,
		ExpiresAt: up.ExpiresAt,
		User:      toRPCUser(up.User),
	}, nil
}
