package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/Rana718/ghseed/internal/database/common"
)

// SQLSTATE classes: 23 integrity constraint violation, 08 connection
// exception, 57P0x operator intervention (server shutting down).
var classifier = common.Classifier{
	IsConstraint: func(err error) bool {
		return sqlState(err)[:2] == "23"
	},
	IsConnection: func(err error) bool {
		var connectErr *pgconn.ConnectError
		if errors.As(err, &connectErr) {
			return true
		}
		state := sqlState(err)
		return state[:2] == "08" || state[:4] == "57P0"
	},
}

// sqlState returns the five-character SQLSTATE of a pgx or lib/pq error, or
// "00000" when err carries none.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) == 5 {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && len(pqErr.Code) == 5 {
		return string(pqErr.Code)
	}
	return "00000"
}
