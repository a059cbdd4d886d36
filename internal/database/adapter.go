package database

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/Rana718/ghseed/internal/database/common"
)

// DatabaseAdapter is a connection to one backing store dialect.
type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	// Provider is the normalized dialect name: postgresql, mysql or sqlite.
	Provider() string
	// Builder returns a statement builder using the dialect's placeholders.
	Builder() squirrel.StatementBuilderType
	Begin(ctx context.Context) (common.Tx, error)

	// SchemaSQL is the DDL script creating the five tables.
	SchemaSQL() string
	// PurgeSQL returns the statements emptying one table inside a transaction.
	PurgeSQL(table string) []string

	// ClassifyError maps driver errors to constraint or connection errors.
	ClassifyError(err error, message string) error
}
