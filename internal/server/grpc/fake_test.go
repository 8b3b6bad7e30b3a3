package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

var alice = &models.User{ID: "u-1", Name: "Alice", Email: "alice@example.com", PasswordHash: "hash"}

// fakeService accepts the token "good" for alice; every other behaviour is
// driven by the err fields.
type fakeService struct {
	registerErr error
	loginErr    error
	authErr     error
	profileErr  error
	updateErr   error
	changeErr   error
	deleteErr   error
	avatarErr   error

	gotProfile services.ProfileInput
	gotChange  services.ChangePasswordInput
	deletedID  string
	loggedOut  string
	panicOn    string
}

func (f *fakeService) Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	if f.panicOn == "register" {
		panic("kaput")
	}
	u := *alice
	u.Name, u.Email = in.Name, in.Email
	return &services.AuthResult{Token: "good", User: u.Sanitize()}, nil
}

func (f *fakeService) Login(ctx context.Context, in services.LoginInput) (*services.AuthResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &services.AuthResult{Token: "good", User: alice.Sanitize()}, nil
}

func (f *fakeService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	if token != "good" {
		return nil, common.ErrorUnauthorized
	}
	u := *alice
	return &u, nil
}

func (f *fakeService) Profile(ctx context.Context, userID string) (models.Profile, error) {
	if f.profileErr != nil {
		return models.Profile{}, f.profileErr
	}
	return alice.Sanitize(), nil
}

func (f *fakeService) UpdateProfile(ctx context.Context, userID string, in services.ProfileInput) (models.Profile, error) {
	f.gotProfile = in
	if f.updateErr != nil {
		return models.Profile{}, f.updateErr
	}
	p := alice.Sanitize()
	if in.Bio != nil {
		p.Bio = *in.Bio
	}
	return p, nil
}

func (f *fakeService) ChangePassword(ctx context.Context, userID string, in services.ChangePasswordInput) error {
	f.gotChange = in
	return f.changeErr
}

func (f *fakeService) DeleteAccount(ctx context.Context, userID string) error {
	f.deletedID = userID
	return f.deleteErr
}

func (f *fakeService) Logout(ctx context.Context, userID string) error {
	f.loggedOut = userID
	return nil
}

func (f *fakeService) RequestAvatarUpload(ctx context.Context, userID, contentType string) (*services.AvatarUpload, error) {
	if f.avatarErr != nil {
		return nil, f.avatarErr
	}
	p := alice.Sanitize()
	p.Avatar = "https://s3.example/avatars/u-1/a.png"
	return &services.AvatarUpload{
		UploadURL: "https://s3.example/upload?sig=1",
		AvatarURL: p.Avatar,
		ExpiresAt: time.Date(2025, 1, 1, 0, 15, 0, 0, time.UTC),
		User:      p,
	}, nil
}

var _ services.Service = (*fakeService)(nil)
