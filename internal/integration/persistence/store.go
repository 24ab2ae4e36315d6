// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// DefaultQueryTimeout bounds a single repository call when no timeout is configured.
const DefaultQueryTimeout = 5 * time.Second

// conn is the gorm handle shared by every repository, with a per-call deadline.
type conn struct {
	db      *gorm.DB
	timeout time.Duration
}

func newConn(db *gorm.DB, timeout time.Duration) conn {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return conn{db: db, timeout: timeout}
}

// query returns a session bound to ctx and the repository deadline.
func (c conn) query(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	return c.db.WithContext(ctx), cancel
}

// retryableSQLStates are PostgreSQL error classes worth a caller-side retry:
// connection exceptions, transaction rollbacks, insufficient resources and
// operator intervention.
var retryableSQLStates = []string{"08", "40", "53", "57"}

// classifyStoreError wraps a driver error as a domain StoreError tagged
// retryable or fatal. Record-not-found and nil pass through untouched.
func classifyStoreError(op string, err error) error {
	if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return domainerror.NewStoreError(op, isRetryable(err), err)
}

func isRetryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) || pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		for _, class := range retryableSQLStates {
			if strings.HasPrefix(pgErr.Code, class) {
				return true
			}
		}
		return false
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// SQLite reports lock contention only through its message.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "sqlite_busy")
}
