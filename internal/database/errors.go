package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	apperrors "github.com/allisson/hname/internal/errors"
)

// pqConnectionException is the SQLSTATE class of PostgreSQL connection failures.
const pqConnectionException pq.ErrorClass = "08"

// IsUnavailable reports whether err means the database could not be reached,
// as opposed to a query it rejected.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Class() == pqConnectionException
}

// WrapError wraps err with message. Connection-level failures also match
// ErrUnavailable.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	if IsUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", message, apperrors.ErrUnavailable, err)
	}
	return apperrors.Wrap(err, message)
}
