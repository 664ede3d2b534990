package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/chenterphai/article-stack/internal/common"
	"github.com/chenterphai/article-stack/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+users\b.*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\).*RETURNING\s+created_at\s*$`

	created := time.Now()
	mock.ExpectQuery(q).
		WithArgs(sqlmock.AnyArg(), "alice", "a@x.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	u, err := repo.Create(context.Background(), &models.User{
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID == "" {
		t.Fatalf("repository must assign an id")
	}
	if !u.CreatedAt.Equal(created) {
		t.Fatalf("unexpected created_at: %v", u.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DuplicateIdentity(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+users\b`

	mock.ExpectQuery(q).
		WithArgs(sqlmock.AnyArg(), "alice", "a@x.com", "hash").
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	_, err := repo.Create(context.Background(), &models.User{
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "hash",
	})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users\b`).
		WithArgs(sqlmock.AnyArg(), "alice", "a@x.com", "hash").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "hash",
	})
	if err == nil || errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByLogin_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*username,\s*email,\s*password_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s+OR\s+email\s*=\s*\$1\s*$`

	created := time.Now()
	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
		AddRow("u1", "alice", "a@x.com", "hash", created)

	mock.ExpectQuery(q).
		WithArgs("a@x.com").
		WillReturnRows(rows)

	got, err := repo.GetByLogin(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "u1" || got.Username != "alice" || got.Email != "a@x.com" {
		t.Fatalf("unexpected row: %+v", got)
	}
}

func TestGetByLogin_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\b.*FROM\s+users\b`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByLogin(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\b.*FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
		AddRow("u1", "alice", "a@x.com", "hash", time.Now())

	mock.ExpectQuery(q).
		WithArgs("u1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Username != "alice" {
		t.Fatalf("unexpected row: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\b.*FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "nope")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
