// Package models defines the server-side user record, the partial update
// applied to it, and the sanitized projection returned to callers.
package models

import "time"

// User is the persisted user record. PasswordHash is needed for
// authentication and must never leave the service; use Sanitize before
// handing a user to a transport.
type User struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    string
	Avatar          string
	Bio             string
	Phone           string
	DateOfBirth     *time.Time
	Location        string
	Website         string
	IsEmailVerified bool
	LastLogin       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// UserUpdate is a partial update. Nil fields are left untouched; a non-nil
// pointer to "" clears a string column.
type UserUpdate struct {
	Name         *string
	PasswordHash *string
	Avatar       *string
	Bio          *string
	Phone        *string
	DateOfBirth  *time.Time
	Location     *string
	Website      *string
	LastLogin    *time.Time
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.PasswordHash == nil && u.Avatar == nil && u.Bio == nil &&
		u.Phone == nil && u.DateOfBirth == nil && u.Location == nil && u.Website == nil &&
		u.LastLogin == nil
}

// Profile is the sanitized user view: every attribute except the password hash.
type Profile struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Avatar          string     `json:"avatar"`
	Bio             string     `json:"bio"`
	Phone           string     `json:"phone"`
	DateOfBirth     *time.Time `json:"dateOfBirth,omitempty"`
	Location        string     `json:"location"`
	Website         string     `json:"website"`
	IsEmailVerified bool       `json:"isEmailVerified"`
	LastLogin       *time.Time `json:"lastLogin,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Sanitize projects u onto Profile, dropping the password hash.
func (u *User) Sanitize() Profile {
	return Profile{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Avatar:          u.Avatar,
		Bio:             u.Bio,
		Phone:           u.Phone,
		DateOfBirth:     u.DateOfBirth,
		Location:        u.Location,
		Website:         u.Website,
		IsEmailVerified: u.IsEmailVerified,
		LastLogin:       u.LastLogin,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
