package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ErrNotFound is returned when the requested id does not exist.
var ErrNotFound = errors.New("record not found")

// ValidationError reports caller-supplied data that violates a declared
// constraint. Fields maps the offending field to a human readable message.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// PersistenceError wraps an unexpected store failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// MySQL server error numbers.
const (
	mysqlDuplicateEntry = 1062
	mysqlForeignKey     = 1452
)

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == mysqlDuplicateEntry
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "duplicate entry") || strings.Contains(lower, "unique constraint failed")
}

func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == mysqlForeignKey
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

// classify turns a raw store error into the service error taxonomy.
// field names the column blamed for duplicate/foreign key violations.
func classify(op string, err error, field string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, ErrNotFound):
		return err
	}
	if _, ok := IsValidation(err); ok {
		return err
	}
	if field != "" && isDuplicateKeyError(err) {
		return NewValidationError(field, "has already been taken")
	}
	if field != "" && isForeignKeyError(err) {
		return NewValidationError(field, "references a record that does not exist")
	}
	return &PersistenceError{Op: op, Err: err}
}
