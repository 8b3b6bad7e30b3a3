package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Name        *string `json:"name"`
	Bio         *string `json:"bio"`
	Phone       *string `json:"phone"`
	DateOfBirth *string `json:"dateOfBirth"`
	Location    *string `json:"location"`
	Website     *string `json:"website"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type avatarRequest struct {
	ContentType string `json:"contentType"`
}

type authResponse struct {
	Message string         `json:"message"`
	Token   string         `json:"token"`
	User    models.Profile `json:"user"`
}

type userResponse struct {
	Message string         `json:"message,omitempty"`
	User    models.Profile `json:"user"`
}

type healthResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type avatarResponse struct {
	Message   string         `json:"message"`
	UploadURL string         `json:"uploadUrl"`
	AvatarURL string         `json:"avatarUrl"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      models.Profile `json:"user"`
}

// currentUser is set by requireAuth, so a miss means a routing mistake.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Access token required")
	}
	return u, ok
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Message: "Server is running", Timestamp: s.now().UTC()})
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := s.users.Register(r.Context(), services.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{Message: "User registered successfully", Token: res.Token, User: res.User})
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := s.users.Login(r.Context(), services.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Message: "Login successful", Token: res.Token, User: res.User})
}

func (s *HTTPServer) me(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	p, err := s.users.Profile(r.Context(), u.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{User: p})
}

func (s *HTTPServer) updateProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := s.users.UpdateProfile(r.Context(), u.ID, services.ProfileInput{
		Name:        req.Name,
		Bio:         req.Bio,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		Location:    req.Location,
		Website:     req.Website,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{Message: "Profile updated successfully", User: p})
}

func (s *HTTPServer) changePassword(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req changePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := s.users.ChangePassword(r.Context(), u.ID, services.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Password changed successfully")
}

func (s *HTTPServer) deleteAccount(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := s.users.DeleteAccount(r.Context(), u.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Account deleted successfully")
}

func (s *HTTPServer) logout(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := s.users.Logout(r.Context(), u.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Logged out successfully")
}

func (s *HTTPServer) requestAvatarUpload(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req avatarRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	up, err := s.users.RequestAvatarUpload(r.Context(), u.ID, req.ContentType)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, avatarResponse{
		Message:   "Avatar upload URL created",
		UploadURL: up.UploadURL,
		AvatarURL: up.AvatarURL,
		ExpiresAt: up.ExpiresAt,
		User:      up.User,
	})
}
