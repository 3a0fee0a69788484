package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/repositories/medicines"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/repositories/users"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestNewPostgresRepositoryManager_ReturnsInterface(t *testing.T) {
	var _ RepositoryManager = NewPostgresRepositoryManager()
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := &PostgresRepositoryManager{}

	if u := m.Users(db); u == nil {
		t.Fatal("Users() nil")
	}
	if md := m.Medicines(db); md == nil {
		t.Fatal("Medicines() nil")
	}

	var _ users.Repository = m.Users(db)
	var _ medicines.Repository = m.Medicines(db)
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	err := m.RunMigrations(context.Background(), db)
	if err == nil || err.Error() != "migrations: boom" {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}

func TestOpenDB(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	orig := sqlOpen
	defer func() { sqlOpen = orig }()

	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		if driver != "pgx" || dsn != "postgres://x" {
			t.Fatalf("unexpected open(%q, %q)", driver, dsn)
		}
		return db, nil
	}

	mock.ExpectPing()
	got, err := OpenDB(context.Background(), "postgres://x")
	if err != nil || got != db {
		t.Fatalf("OpenDB = (%v, %v)", got, err)
	}

	mock.ExpectPing().WillReturnError(errors.New("refused"))
	mock.ExpectClose()
	if _, err := OpenDB(context.Background(), "postgres://x"); err == nil {
		t.Fatal("expected ping error")
	}

	sqlOpen = func(string, string) (*sql.DB, error) { return nil, errors.New("bad dsn") }
	if _, err := OpenDB(context.Background(), "postgres://x"); err == nil {
		t.Fatal("expected open error")
	}
}
