package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/rpc"
)

var (
	errPasswordMismatch = errors.New("passwords do not match")
	errCancelled        = errors.New("cancelled")
)

// clearValue in an update prompt empties the field; a blank line keeps it.
const clearValue = "-"

const maxAvatarBytes = 5 << 20

func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := a.newPassword("Enter password")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	u, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	a.email = u.Email
	fmt.Fprintf(a.out, "Welcome, %s! You are now logged in.\n", u.Name)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	u, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.email = u.Email
	fmt.Fprintf(a.out, "Welcome back, %s!\n", u.Name)
	return nil
}

func (a *App) Me(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	u, err := a.client.Profile(ctx)
	if err != nil {
		return err
	}
	a.printUser(u)
	return nil
}

// Update prompts for every editable field. A blank answer leaves the field
// alone, "-" clears it.
func (a *App) Update(ctx context.Context) error {
	fmt.Fprintf(a.out, "Leave blank to keep the current value, %q to clear it.\n", clearValue)

	var req rpc.UpdateProfileRequest
	fields := []struct {
		prompt string
		dst    **string
	}{
		{"Name", &req.Name},
		{"Bio", &req.Bio},
		{"Phone", &req.Phone},
		{"Date of birth (YYYY-MM-DD)", &req.DateOfBirth},
		{"Location", &req.Location},
		{"Website", &req.Website},
	}

	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		switch v {
		case "":
		case clearValue:
			empty := ""
			*f.dst = &empty
		default:
			*f.dst = &v
		}
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	u, err := a.client.UpdateProfile(ctx, &req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated successfully")
	a.printUser(u)
	return nil
}

func (a *App) ChangePassword(ctx context.Context) error {
	current, err := getPassword(a.out, "Current password")
	if err != nil {
		return err
	}
	next, err := a.newPassword("New password")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.ChangePassword(ctx, current, next); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed successfully")
	return nil
}

// Avatar uploads an image file. The content type is sniffed from the bytes.
func (a *App) Avatar(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Path to image file", a.out)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(data) > maxAvatarBytes {
		return fmt.Errorf("file is larger than %d MB", maxAvatarBytes>>20)
	}
	contentType := http.DetectContentType(data)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	u, err := a.client.UploadAvatar(ctx, contentType, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Avatar uploaded: %s\n", u.Avatar)
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "This permanently deletes your account. Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		return errCancelled
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.DeleteAccount(ctx); err != nil {
		return err
	}
	a.email = ""
	fmt.Fprintln(a.out, "Account deleted successfully")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	err := a.client.Logout(ctx)
	a.email = ""
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out successfully")
	return nil
}

func (a *App) newPassword(prompt string) (string, error) {
	pw, err := getPassword(a.out, prompt)
	if err != nil {
		return "", err
	}
	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return "", err
	}
	if pw != confirm {
		return "", errPasswordMismatch
	}
	return pw, nil
}

func (a *App) printUser(u *rpc.User) {
	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(a.out, "  %-14s %s\n", label+":", value)
		}
	}

	row("ID", u.ID)
	row("Name", u.Name)
	row("Email", u.Email)
	row("Bio", u.Bio)
	row("Phone", u.Phone)
	if u.DateOfBirth != nil {
		row("Date of birth", u.DateOfBirth.Format(time.DateOnly))
	}
	row("Location", u.Location)
	row("Website", u.Website)
	row("Avatar", u.Avatar)
	if u.LastLogin != nil {
		row("Last login", u.LastLogin.Local().Format(time.DateTime))
	}
	row("Member since", u.CreatedAt.Local().Format(time.DateOnly))
}
