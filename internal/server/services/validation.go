package services

import (
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/go-playground/validator/v10"
)

const (
	minNameLen     = 2
	maxNameLen     = 50
	minPasswordLen = 6
	maxBioLen      = 500
	maxLocationLen = 100
	dateOnlyLayout = "2006-01-02"
)

var (
	validate     = validator.New()
	phonePattern = regexp.MustCompile(`^\+?[0-9\s().-]{7,20}$`)
)

// RegisterInput is the shape accepted by Register.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput is the shape accepted by Login.
type LoginInput struct {
	Email    string
	Password string
}

// ProfileInput is a partial profile update. Nil means "not supplied".
type ProfileInput struct {
	Name        *string
	Bio         *string
	Phone       *string
	DateOfBirth *string
	Location    *string
	Website     *string
}

// ChangePasswordInput is the shape accepted by ChangePassword.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// hasControl reports whether s carries NUL or other control characters.
// Runes listed in allow are let through.
func hasControl(s string, allow ...rune) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsControl(r) && !slices.Contains(allow, r)
	}) >= 0
}

// multiline is the set of control characters a free-text field may carry.
var multiline = []rune{'\n', '\r', '\t'}

func validName(name string) bool {
	if hasControl(name) {
		return false
	}
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	return n >= minNameLen && n <= maxNameLen
}

func validEmail(email string) bool {
	if hasControl(email) {
		return false
	}
	return validate.Var(strings.TrimSpace(email), "required,email,max=254") == nil
}

func checkNewPassword(v *common.ValidationError, field, label, password string) {
	switch {
	case utf8.RuneCountInString(password) < minPasswordLen:
		v.Add(field, label+" must be at least 6 characters")
	case len(password) > auth.MaxPasswordBytes:
		v.Add(field, label+" must not exceed 72 bytes")
	}
}

func validateRegister(in RegisterInput) error {
	v := &common.ValidationError{}
	if !validName(in.Name) {
		v.Add("name", "Name must be 2-50 characters")
	}
	if !validEmail(in.Email) {
		v.Add("email", "Please provide a valid email")
	}
	checkNewPassword(v, "password", "Password", in.Password)
	return v.OrNil()
}

func validateLogin(in LoginInput) error {
	v := &common.ValidationError{}
	if !validEmail(in.Email) {
		v.Add("email", "Please provide a valid email")
	}
	if in.Password == "" {
		v.Add("password", "Password is required")
	}
	return v.OrNil()
}

func validateChangePassword(in ChangePasswordInput) error {
	v := &common.ValidationError{}
	if in.CurrentPassword == "" {
		v.Add("currentPassword", "Current password is required")
	}
	checkNewPassword(v, "newPassword", "New password", in.NewPassword)
	return v.OrNil()
}

// parseDateOfBirth accepts a calendar date or a full RFC 3339 timestamp.
func parseDateOfBirth(s string) (time.Time, error) {
	if t, err := time.Parse(dateOnlyLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func validWebsite(s string) bool {
	if validate.Var(s, "url") != nil {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

// validateProfile checks the supplied fields. Empty strings are allowed for
// bio, phone, location and website (they clear the field); an empty name is
// rejected.
func validateProfile(in ProfileInput) error {
	v := &common.ValidationError{}

	if in.Name != nil && !validName(*in.Name) {
		v.Add("name", "Name must be 2-50 characters")
	}
	if in.Bio != nil {
		switch {
		case utf8.RuneCountInString(*in.Bio) > maxBioLen:
			v.Add("bio", "Bio cannot exceed 500 characters")
		case hasControl(*in.Bio, multiline...):
			v.Add("bio", "Bio contains invalid characters")
		}
	}
	if in.Phone != nil && *in.Phone != "" && (hasControl(*in.Phone) || !phonePattern.MatchString(*in.Phone)) {
		v.Add("phone", "Please provide a valid phone number")
	}
	if in.DateOfBirth != nil && *in.DateOfBirth != "" {
		if _, err := parseDateOfBirth(*in.DateOfBirth); err != nil {
			v.Add("dateOfBirth", "Date of birth must be YYYY-MM-DD or RFC 3339")
		}
	}
	if in.Location != nil {
		switch {
		case utf8.RuneCountInString(*in.Location) > maxLocationLen:
			v.Add("location", "Location cannot exceed 100 characters")
		case hasControl(*in.Location):
			v.Add("location", "Location contains invalid characters")
		}
	}
	if in.Website != nil && *in.Website != "" && (hasControl(*in.Website) || !validWebsite(*in.Website)) {
		v.Add("website", "Please provide a valid website URL")
	}

	return v.OrNil()
}
