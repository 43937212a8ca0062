package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	if !isUniqueViolation(unique) {
		t.Fatalf("expected unique violation to be detected")
	}
	if !isUniqueViolation(fmt.Errorf("insert: %w", unique)) {
		t.Fatalf("expected wrapped unique violation to be detected")
	}
	if isUniqueViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}) {
		t.Fatalf("foreign key violation is not a duplicate")
	}
	if isUniqueViolation(errors.New("network down")) {
		t.Fatalf("plain errors are not duplicates")
	}
	if isUniqueViolation(nil) {
		t.Fatalf("nil is not a duplicate")
	}
}
