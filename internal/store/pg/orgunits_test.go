package pg

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"municipio.org/internal/portal"
)

func TestDeleteOrgUnit(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`delete from org_units where id`).
		WithArgs("unit-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := store.DeleteOrgUnit(context.Background(), "unit-1"); err != nil {
		t.Fatalf("DeleteOrgUnit: %v", err)
	}

	mock.ExpectExec(`delete from org_units where id`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := store.DeleteOrgUnit(context.Background(), "missing"); !errors.Is(err, portal.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteOrgUnitMapsForeignKeyViolation(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`delete from org_units where id`).
		WithArgs("unit-1").
		WillReturnError(&pgconn.PgError{Code: pgErrForeignKeyViolation})

	err := store.DeleteOrgUnit(context.Background(), "unit-1")
	if !errors.Is(err, portal.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
