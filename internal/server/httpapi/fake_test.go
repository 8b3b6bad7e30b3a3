package httpapi

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
)

var bob = &models.User{ID: "u-7", Name: "Bob", Email: "bob@example.com", PasswordHash: "hash"}

// stubService resolves the token "valid" to bob. Errors are injected per
// operation.
type stubService struct {
	registerErr error
	loginErr    error
	authErr     error
	profileErr  error
	updateErr   error
	changeErr   error
	deleteErr   error
	logoutErr   error
	avatarErr   error
	panicOn     string

	gotRegister    services.RegisterInput
	gotProfile     services.ProfileInput
	gotChange      services.ChangePasswordInput
	gotContentType string
	deletedID      string
	loggedOut      string
}

func (f *stubService) Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error) {
	f.gotRegister = in
	if f.panicOn == "register" {
		panic("boom")
	}
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	u := *bob
	u.Name, u.Email = in.Name, in.Email
	return &services.AuthResult{Token: "valid", User: u.Sanitize()}, nil
}

func (f *stubService) Login(ctx context.Context, in services.LoginInput) (*services.AuthResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &services.AuthResult{Token: "valid", User: bob.Sanitize()}, nil
}

func (f *stubService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	if token != "valid" {
		return nil, common.ErrorUnauthorized
	}
	u := *bob
	return &u, nil
}

func (f *stubService) Profile(ctx context.Context, userID string) (models.Profile, error) {
	if f.profileErr != nil {
		return models.Profile{}, f.profileErr
	}
	return bob.Sanitize(), nil
}

func (f *stubService) UpdateProfile(ctx context.Context, userID string, in services.ProfileInput) (models.Profile, error) {
	f.gotProfile = in
	if f.updateErr != nil {
		return models.Profile{}, f.updateErr
	}
	p := bob.Sanitize()
	if in.Location != nil {
		p.Location = *in.Location
	}
	return p, nil
}

func (f *stubService) ChangePassword(ctx context.Context, userID string, in services.ChangePasswordInput) error {
	f.gotChange = in
	return f.changeErr
}

func (f *stubService) DeleteAccount(ctx context.Context, userID string) error {
	f.deletedID = userID
	return f.deleteErr
}

func (f *stubService) Logout(ctx context.Context, userID string) error {
	f.loggedOut = userID
	return f.logoutErr
}

func (f *stubService) RequestAvatarUpload(ctx context.Context, userID, contentType string) (*services.AvatarUpload, error) {
	f.gotContentType = contentType
	if f.avatarErr != nil {
		return nil, f.avatarErr
	}
	p := bob.Sanitize()
	p.Avatar = "http://minio:9000/avatars/avatars/u-7/x.png"
	return &services.AvatarUpload{
		UploadURL: "http://minio:9000/avatars/avatars/u-7/x.png?X-Amz-Signature=abc",
		AvatarURL: p.Avatar,
		ExpiresAt: time.Date(2025, 3, 1, 12, 15, 0, 0, time.UTC),
		User:      p,
	}, nil
}

var _ services.Service = (*stubService)(nil)
