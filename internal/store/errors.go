package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Sentinel errors surfaced by every repository. Callers branch with
// errors.Is; the transport layer maps them to protocol status codes.
var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateKey    = errors.New("duplicate key violation")
	ErrForeignKey      = errors.New("foreign key violation")
	ErrCheckViolation  = errors.New("check constraint violation")
	ErrNotNull         = errors.New("not null constraint violation")
	ErrConnectionLost  = errors.New("database connection failed")
)

// Error carries operation context alongside the underlying sentinel.
type Error struct {
	Op         string // operation that failed
	Table      string // table involved
	Err        error  // underlying error
	Constraint string // constraint name, when the driver reports one
	Column     string // column name, when the driver reports one
}

func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("store: %s", e.Op)}
	if e.Table != "" {
		parts = append(parts, fmt.Sprintf("table=%s", e.Table))
	}
	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("column=%s", e.Column))
	}
	if e.Constraint != "" {
		parts = append(parts, fmt.Sprintf("constraint=%s", e.Constraint))
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// PostgreSQL SQLSTATE codes for constraint violations.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqNotNullViolation    = "23502"
	pqCheckViolation      = "23514"
)

// ParsePQError is the single boundary where driver-level failures become
// typed store errors. Uniqueness races detected by the database surface
// here as ErrDuplicateKey.
func ParsePQError(err error, op, table string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &Error{Op: op, Table: table, Err: ErrNotFound}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			return &Error{Op: op, Table: table, Err: ErrDuplicateKey, Constraint: pqErr.Constraint}
		case pqForeignKeyViolation:
			return &Error{Op: op, Table: table, Err: ErrForeignKey, Constraint: pqErr.Constraint}
		case pqNotNullViolation:
			return &Error{Op: op, Table: table, Err: ErrNotNull, Column: pqErr.Column}
		case pqCheckViolation:
			return &Error{Op: op, Table: table, Err: ErrCheckViolation, Constraint: pqErr.Constraint}
		}
	}

	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "broken pipe") {
		return &Error{Op: op, Table: table, Err: ErrConnectionLost}
	}

	return &Error{Op: op, Table: table, Err: err}
}

// ValidationError reports a domain-rule violation detected before any
// write is attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every violation found in one input.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var single ValidationError
	var multi ValidationErrors
	return errors.As(err, &single) || errors.As(err, &multi)
}

// IsConflict reports whether err is a uniqueness conflict (routine name
// or plan date).
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

// ConstraintName extracts the violated constraint from a store error.
func ConstraintName(err error) string {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Constraint
	}
	return ""
}
