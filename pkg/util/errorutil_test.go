package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestToDomainError_PassesDomainErrorsThrough(t *testing.T) {
	t.Parallel()

	original := NewForbidden("nope")
	got := ToDomainError(original)
	if got.Code != "FORBIDDEN" || got.HTTPStatus != http.StatusForbidden {
		t.Fatalf("got %q/%d", got.Code, got.HTTPStatus)
	}
}

func TestToDomainError_NoRowsBecomesNotFound(t *testing.T) {
	t.Parallel()

	got := ToDomainError(pgx.ErrNoRows)
	if got.Code != "NOT_FOUND" || got.HTTPStatus != http.StatusNotFound {
		t.Fatalf("got %q/%d", got.Code, got.HTTPStatus)
	}
}

func TestToDomainError_EmailUniqueViolationBecomesDuplicateEmail(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"}
	got := ToDomainError(pgErr)
	if got.Code != "DUPLICATE_EMAIL" {
		t.Fatalf("Code = %q", got.Code)
	}
	if got.HTTPStatus != http.StatusConflict {
		t.Fatalf("HTTPStatus = %d", got.HTTPStatus)
	}
}

func TestToDomainError_OtherUniqueViolationBecomesConflict(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "roles_name_key"}
	got := ToDomainError(pgErr)
	if got.Code != "CONFLICT" || got.HTTPStatus != http.StatusConflict {
		t.Fatalf("got %q/%d", got.Code, got.HTTPStatus)
	}
}

func TestToDomainError_UnknownBecomesInternal(t *testing.T) {
	t.Parallel()

	got := ToDomainError(errors.New("boom"))
	if got.Code != "INTERNAL_ERROR" || got.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("got %q/%d", got.Code, got.HTTPStatus)
	}
	if !errors.Is(got, got.Err) {
		t.Fatal("wrapped error must unwrap")
	}
}
