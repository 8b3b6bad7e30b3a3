// Package services contains server-side business logic. UserService is the
// auth orchestrator: registration, login, token authentication, profile
// edits, password rotation, account deletion and avatar uploads.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
	"github.com/google/uuid"
)

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	User  models.Profile
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer issues and verifies bearer tokens.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
	Verify(token string) (auth.Identity, error)
}

// UserService holds no per-request state; all methods are safe for
// concurrent use.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer
	avatars     AvatarStorage
	logger      logging.Logger

	avatarUploadValidity time.Duration
	now                  func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService wires the hasher, token service and avatar storage from cfg.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:                   db,
		repomanager:          m,
		hasher:               auth.NewHasher(cfg.BcryptCost),
		tokens:               auth.NewTokenService([]byte(cfg.SecretKey), cfg.TokenValidityDuration),
		avatars:              NewS3AvatarStorage(cfg),
		logger:               logger,
		avatarUploadValidity: cfg.AvatarUploadValidity,
		now:                  func() time.Time { return time.Now().UTC() },
	}
}

// Register creates the account and logs the user straight in.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := validateRegister(in); err != nil {
		return nil, err
	}

	email := users.NormalizeEmail(in.Email)
	repo := s.repomanager.Users(s.db)

	_, err := repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrDuplicateEmail
	case !errors.Is(err, common.ErrorNotFound):
		return nil, s.internal(ctx, "register: lookup", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, s.internal(ctx, "register: hash", err)
	}

	now := s.now()
	user, err := repo.Create(ctx, &models.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		LastLogin:    &now,
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, s.internal(ctx, "register: create", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return s.issue(ctx, user)
}

// Login never tells the caller whether the email or the password was wrong.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if err := validateLogin(in); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Burn a comparison so both failure paths cost the same.
			s.hasher.Verify(in.Password, s.getDummyHash())
			s.logger.Warn(ctx, "login failed", "reason", "unknown email")
			return nil, common.ErrInvalidCredentials
		}
		return nil, s.internal(ctx, "login: lookup", err)
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		s.logger.Warn(ctx, "login failed", "reason", "wrong password", "user_id", user.ID)
		return nil, common.ErrInvalidCredentials
	}

	now := s.now()
	user, err = repo.Update(ctx, user.ID, models.UserUpdate{LastLogin: &now})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, s.internal(ctx, "login: update last login", err)
	}

	return s.issue(ctx, user)
}

// Authenticate resolves a bearer token to the live user record. Bad tokens
// and tokens of deleted users both yield common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	user, err := s.repomanager.Users(s.db).FindByID(ctx, id.UserID)
	if err != nil {
		return nil, s.authErr(ctx, "authenticate", err)
	}
	return user, nil
}

// Profile returns the sanitized current record.
func (s *UserService) Profile(ctx context.Context, userID string) (models.Profile, error) {
	user, err := s.repomanager.Users(s.db).FindByID(ctx, userID)
	if err != nil {
		return models.Profile{}, s.authErr(ctx, "profile", err)
	}
	return user.Sanitize(), nil
}

// UpdateProfile applies the supplied fields only. An empty date of birth is
// ignored rather than cleared.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (models.Profile, error) {
	if err := validateProfile(in); err != nil {
		return models.Profile{}, err
	}

	upd := models.UserUpdate{
		Bio:      in.Bio,
		Phone:    in.Phone,
		Location: in.Location,
		Website:  in.Website,
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		upd.Name = &name
	}
	if in.DateOfBirth != nil && *in.DateOfBirth != "" {
		dob, _ := parseDateOfBirth(*in.DateOfBirth)
		upd.DateOfBirth = &dob
	}

	repo := s.repomanager.Users(s.db)
	if upd.IsEmpty() {
		user, err := repo.FindByID(ctx, userID)
		if err != nil {
			return models.Profile{}, s.authErr(ctx, "update profile: lookup", err)
		}
		return user.Sanitize(), nil
	}

	user, err := repo.Update(ctx, userID, upd)
	if err != nil {
		return models.Profile{}, s.authErr(ctx, "update profile", err)
	}
	return user.Sanitize(), nil
}

// ChangePassword re-verifies the current password before storing the new
// hash. Outstanding tokens stay valid.
func (s *UserService) ChangePassword(ctx context.Context, userID string, in ChangePasswordInput) error {
	if err := validateChangePassword(in); err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.FindByID(ctx, userID)
		if err != nil {
			return s.authErr(ctx, "change password: lookup", err)
		}

		if !s.hasher.Verify(in.CurrentPassword, user.PasswordHash) {
			s.logger.Warn(ctx, "password change rejected", "reason", "wrong current password", "user_id", userID)
			return common.ErrCurrentPasswordIncorrect
		}

		hash, err := s.hasher.Hash(in.NewPassword)
		if err != nil {
			return s.internal(ctx, "change password: hash", err)
		}

		if _, err := repo.Update(ctx, userID, models.UserUpdate{PasswordHash: &hash}); err != nil {
			return s.authErr(ctx, "change password: update", err)
		}

		s.logger.Info(ctx, "password changed", "user_id", userID)
		return nil
	})
}

// DeleteAccount removes the record unconditionally.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.repomanager.Users(s.db).Delete(ctx, userID); err != nil {
		return s.authErr(ctx, "delete account", err)
	}
	s.logger.Info(ctx, "account deleted", "user_id", userID)
	return nil
}

// Logout only acknowledges: tokens are not tracked server-side, so the client
// discarding its token is the whole logout.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	s.logger.Info(ctx, "user logged out", "user_id", userID)
	return nil
}

func (s *UserService) issue(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, s.internal(ctx, "issue token", err)
	}
	return &AuthResult{Token: token, User: user.Sanitize()}, nil
}

// authErr maps store errors on authenticated paths: a vanished user is
// Unauthorized, anything else is internal.
func (s *UserService) authErr(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return common.ErrorUnauthorized
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrorInternal),
		errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrInvalidCredentials):
		return err
	default:
		return s.internal(ctx, op, err)
	}
}

func (s *UserService) internal(ctx context.Context, op string, err error) error {
	s.logger.Error(ctx, op, "error", err)
	return common.ErrorInternal
}

func (s *UserService) getDummyHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(uuid.NewString())
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
