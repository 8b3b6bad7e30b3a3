package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"id", "name", "email", "password_hash", "avatar", "bio", "phone", "date_of_birth",
	"location", "website", "is_email_verified", "last_login", "created_at", "updated_at",
}

var ts = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock, db
}

func aliceRow() *sqlmock.Rows {
	return sqlmock.NewRows(columns).AddRow(
		"u-1", "Alice", "alice@example.com", "hash", "", "", "", nil,
		"", "", false, ts, ts, ts,
	)
}

func TestCreate_Success(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	q := `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*name,\s*email,\s*password_hash,.*\)\s*VALUES\s*\(\$1,.*\$12\)\s*RETURNING\s+id,`
	mock.ExpectQuery(q).
		WithArgs("u-1", "Alice", "alice@example.com", "hash", "", "", "", sqlmock.AnyArg(), "", "", false, sqlmock.AnyArg()).
		WillReturnRows(aliceRow())

	got, err := repo.Create(context.Background(), &models.User{
		ID: "u-1", Name: "Alice", Email: "  ALICE@Example.com ", PasswordHash: "hash", LastLogin: &ts,
	})
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
	assert.Equal(t, "alice@example.com", got.Email)
	require.NotNil(t, got.LastLogin)
	assert.True(t, ts.Equal(*got.LastLogin))
	assert.Nil(t, got.DateOfBirth)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), &models.User{ID: "u-2", Email: "alice@example.com"})
	require.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestCreate_OtherUniqueViolationIsNotDuplicateEmail(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"})

	_, err := repo.Create(context.Background(), &models.User{ID: "u-2", Email: "bob@example.com"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrDuplicateEmail))
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{ID: "u-1"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFindByEmail_NormalizesInput(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT\s+id,.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1$`).
		WithArgs("alice@example.com").
		WillReturnRows(aliceRow())

	got, err := repo.FindByEmail(context.Background(), "ALICE@example.COM")
	require.NoError(t, err)
	assert.Equal(t, "hash", got.PasswordHash)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+email`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestFindByID(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	dob := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(columns).AddRow(
		"u-1", "Alice", "alice@example.com", "hash", "a.png", "bio", "+1 555 0100", dob,
		"Paris", "https://alice.example", true, nil, ts, ts,
	)
	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).WithArgs("u-1").WillReturnRows(rows)

	got, err := repo.FindByID(context.Background(), "u-1")
	require.NoError(t, err)
	require.NotNil(t, got.DateOfBirth)
	assert.True(t, dob.Equal(*got.DateOfBirth))
	assert.Nil(t, got.LastLogin)
	assert.True(t, got.IsEmailVerified)
	assert.Equal(t, "Paris", got.Location)
}

func TestFindByID_DBError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+id`).WillReturnError(errors.New("db err"))

	_, err := repo.FindByID(context.Background(), "u-1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrorNotFound))
	assert.Contains(t, err.Error(), "db error")
}

func TestUpdate_OnlySetFields(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	name, bio := "Alicia", ""
	q := `(?s)^UPDATE\s+users\s+SET\s+name\s*=\s*\$1,\s*bio\s*=\s*\$2,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$3\s+RETURNING\s+id,`
	mock.ExpectQuery(q).WithArgs("Alicia", "", "u-1").WillReturnRows(aliceRow())

	_, err := repo.Update(context.Background(), "u-1", models.UserUpdate{Name: &name, Bio: &bio})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_AllColumns(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	s := func(v string) *string { return &v }
	q := `(?s)SET\s+name = \$1, password_hash = \$2, avatar = \$3, bio = \$4, phone = \$5, date_of_birth = \$6, location = \$7, website = \$8, last_login = \$9, updated_at = now\(\) WHERE id = \$10`
	mock.ExpectQuery(q).WillReturnRows(aliceRow())

	_, err := repo.Update(context.Background(), "u-1", models.UserUpdate{
		Name: s("n"), PasswordHash: s("h"), Avatar: s("a"), Bio: s("b"), Phone: s("p"),
		DateOfBirth: &ts, Location: s("l"), Website: s("w"), LastLogin: &ts,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`UPDATE\s+users`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), "ghost", models.UserUpdate{})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectExec(`DELETE\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "u-1"))
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectExec(`DELETE\s+FROM\s+users`).WithArgs("ghost").WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Delete(context.Background(), "ghost"), common.ErrorNotFound)
}

func TestDelete_DBError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectExec(`DELETE\s+FROM\s+users`).WillReturnError(errors.New("db down"))

	err := repo.Delete(context.Background(), "u-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM\t"))
}
