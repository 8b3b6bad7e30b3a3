// Package users is the user store: persistence of user records with
// case-insensitive, unique emails.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository returns full records, password hash included. Callers strip the
// hash (models.User.Sanitize) before data leaves the service.
type Repository interface {
	// Create inserts user and fails with common.ErrDuplicateEmail when the
	// email is taken. Uniqueness is enforced atomically by the database.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// FindByEmail and FindByID return common.ErrorNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	// Update applies the non-nil fields and returns the updated record.
	Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
