package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/djougoo/propass-central/internal/logger"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func userColumns() []string {
	return []string{"id", "username", "email", "password_hash", "role", "active", "created_at"}
}

func TestFindUserByUsername_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(userColumns()).
		AddRow(1, "admin", "admin@djougoo.com", "$2a$10$hash", "ADMIN", true, now)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("admin").
		WillReturnRows(rows)

	user, err := repo.FindUserByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 {
		t.Errorf("expected ID=1, got %d", user.ID)
	}
	if user.Role != "ADMIN" {
		t.Errorf("expected role ADMIN, got %s", user.Role)
	}
}

func TestFindUserByUsername_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByUsername(context.Background(), "ghost")
	if err != ErrNoUserWasFound {
		t.Errorf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByUsername_DriverError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("admin").
		WillReturnError(errors.New("connection reset by peer"))

	_, err := repo.FindUserByUsername(context.Background(), "admin")
	if !errors.Is(err, ErrScanningRow) {
		t.Errorf("expected ErrScanningRow, got %v", err)
	}
}

func TestFindUserByID_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows(userColumns()).
		AddRow(7, "device-7", "", "$2a$10$hash", "device", true, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	user, err := repo.FindUserByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "device-7" {
		t.Errorf("expected username device-7, got %s", user.Username)
	}
}
