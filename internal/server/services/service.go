package services

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Service is the orchestrator surface the transports depend on.
type Service interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	Profile(ctx context.Context, userID string) (models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileInput) (models.Profile, error)
	ChangePassword(ctx context.Context, userID string, in ChangePasswordInput) error
	DeleteAccount(ctx context.Context, userID string) error
	Logout(ctx context.Context, userID string) error
	RequestAvatarUpload(ctx context.Context, userID, contentType string) (*AvatarUpload, error)
}

var _ Service = (*UserService)(nil)
