package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	usersrepo "github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// memUsers is an in-memory users.Repository with per-method error injection.
type memUsers struct {
	mu    sync.Mutex
	byID  map[string]*models.User
	clock time.Time

	findErr   error
	createErr error
	updateErr error
	deleteErr error

	updates []models.UserUpdate
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*models.User{}, clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func clone(u *models.User) *models.User {
	c := *u
	return &c
}

func (m *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	email := usersrepo.NormalizeEmail(u.Email)
	for _, existing := range m.byID {
		if existing.Email == email {
			return nil, common.ErrDuplicateEmail
		}
	}
	c := clone(u)
	c.Email = email
	c.CreatedAt, c.UpdatedAt = m.clock, m.clock
	m.byID[c.ID] = c
	return clone(c), nil
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	email = usersrepo.NormalizeEmail(email)
	for _, u := range m.byID {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(u), nil
}

func (m *memUsers) Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	m.updates = append(m.updates, upd)

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&u.Name, upd.Name)
	set(&u.PasswordHash, upd.PasswordHash)
	set(&u.Avatar, upd.Avatar)
	set(&u.Bio, upd.Bio)
	set(&u.Phone, upd.Phone)
	set(&u.Location, upd.Location)
	set(&u.Website, upd.Website)
	if upd.DateOfBirth != nil {
		u.DateOfBirth = upd.DateOfBirth
	}
	if upd.LastLogin != nil {
		u.LastLogin = upd.LastLogin
	}
	u.UpdatedAt = u.UpdatedAt.Add(time.Second)
	return clone(u), nil
}

func (m *memUsers) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(m.byID, id)
	return nil
}

type fakeRepoManager struct {
	u *memUsers
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error  { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return m.u }

type fakeAvatars struct {
	presignErr error
	gotKey     string
	gotType    string
	gotTTL     time.Duration
}

func (f *fakeAvatars) PresignUpload(ctx context.Context, key, contentType string, validity time.Duration) (string, error) {
	f.gotKey, f.gotType, f.gotTTL = key, contentType, validity
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://s3.example/upload/" + key + "?sig=1", nil
}

func (f *fakeAvatars) ObjectURL(key string) string { return "https://s3.example/avatars-bucket/" + key }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.BcryptCost = bcrypt.MinCost
	return cfg
}

// newTestService returns a service over an in-memory store and a sqlmock
// pool for the transactional paths.
func newTestService(t *testing.T) (*UserService, *memUsers, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := newMemUsers()
	svc := NewUserService(db, &fakeRepoManager{u: store}, testConfig(), logging.Nop())
	svc.avatars = &fakeAvatars{}
	return svc, store, mock
}
