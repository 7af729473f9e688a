package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

// TestIsUniqueViolation pins the exact detection condition for duplicate
// emails: a pgconn.PgError with SQLSTATE 23505, anywhere in the error chain.
func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "users_email_key",
		Message:        `duplicate key value violates unique constraint "users_email_key"`,
	}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unique_violation", uniqueErr, true},
		{"wrapped_unique_violation", fmt.Errorf("failed to create user: %w", uniqueErr), true},
		{"foreign_key_violation", &pgconn.PgError{Code: "23503"}, false},
		{"not_null_violation", &pgconn.PgError{Code: "23502"}, false},
		{"plain_error", errors.New("connection refused"), false},
		{"message_mentions_code_only", errors.New("something about 23505"), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := isUniqueViolation(test.err); got != test.want {
				t.Errorf("isUniqueViolation(%v) = %v, want %v", test.err, got, test.want)
			}
		})
	}
}
