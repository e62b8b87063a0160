package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ValidationError reports malformed or out-of-range input. The failing
// field is carried so callers can render an actionable message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ForbiddenError reports a failed role or ownership check.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return e.Reason
}

// NotFoundError reports a missing referenced entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ConflictError surfaces a uniqueness or duplicate violation verbatim
// from the storage layer, or a state that refuses the transition.
type ConflictError struct {
	Entity  string
	Message string
}

func (e *ConflictError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("duplicate %s", e.Entity)
	}
	return e.Message
}

// DependencyFailureError means a secondary effect failed after the
// primary effect already committed. The primary artifact is kept; the
// caller reports a warning instead of unwinding.
type DependencyFailureError struct {
	Step string
	Err  error
}

func (e *DependencyFailureError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *DependencyFailureError) Unwrap() error {
	return e.Err
}

// isDuplicateKey recognizes the MySQL duplicate-entry signal (error
// 1062) behind whatever wrapping GORM applied.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}
