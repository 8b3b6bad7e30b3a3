package rpc

import "time"

// User is the sanitized user view sent over the wire.
type User struct {
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

type PingRequest struct{}

type PingResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse answers Register and Login.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

type GetProfileRequest struct{}

type UserResponse struct {
	Message string `json:"message,omitempty"`
	User    User   `json:"user"`
}

// UpdateProfileRequest carries only the fields to change. A nil field is
// left alone; a pointer to "" clears it.
type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
	Location    *string `json:"location,omitempty"`
	Website     *string `json:"website,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type DeleteAccountRequest struct{}

type LogoutRequest struct{}

// AckResponse is the body of operations that only confirm success.
type AckResponse struct {
	Message string `json:"message"`
}

type AvatarUploadRequest struct {
	ContentType string `json:"contentType"`
}

type AvatarUploadResponse struct {
	UploadURL string    `json:"uploadUrl"`
	AvatarURL string    `json:"avatarUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}
