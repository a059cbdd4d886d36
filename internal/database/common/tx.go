package common

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	seederrors "github.com/Rana718/ghseed/internal/errors"
)

// Tx is one store transaction. Everything a seed run writes goes through a
// single Tx.
type Tx interface {
	// Exec runs a statement and returns the number of affected rows.
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	// QueryInt scans a single integer; NULL scans as 0.
	QueryInt(ctx context.Context, query string, args ...any) (int64, error)
	// QueryString scans a single string; no row or NULL scans as "".
	QueryString(ctx context.Context, query string, args ...any) (string, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// SQLTx adapts *sql.Tx to Tx.
type SQLTx struct {
	tx *sql.Tx
}

func NewSQLTx(tx *sql.Tx) *SQLTx {
	return &SQLTx{tx: tx}
}

func (t *SQLTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (t *SQLTx) QueryInt(ctx context.Context, query string, args ...any) (int64, error) {
	var n sql.NullInt64
	if err := t.tx.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n.Int64, nil
}

func (t *SQLTx) QueryString(ctx context.Context, query string, args ...any) (string, error) {
	var s sql.NullString
	err := t.tx.QueryRowContext(ctx, query, args...).Scan(&s)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return s.String, nil
}

func (t *SQLTx) Commit(ctx context.Context) error {
	return t.tx.Commit()
}

func (t *SQLTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback()
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}

// Classifier recognizes driver-specific errors.
type Classifier struct {
	IsConstraint func(error) bool
	IsConnection func(error) bool
}

// Classify wraps err into the seed error taxonomy. Unrecognized errors are
// wrapped with message and returned as is.
func (c Classifier) Classify(err error, message string) error {
	if err == nil {
		return nil
	}
	var seedErr *seederrors.SeedError
	if errors.As(err, &seedErr) {
		return err
	}
	if c.IsConstraint != nil && c.IsConstraint(err) {
		return seederrors.NewConstraintViolation(message, err)
	}
	if IsNetworkError(err) || (c.IsConnection != nil && c.IsConnection(err)) {
		return seederrors.NewConnectionError(message, err)
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsNetworkError reports dial failures and dropped connections.
func IsNetworkError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
