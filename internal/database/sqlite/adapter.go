package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	"github.com/Rana718/ghseed/internal/database/common"
	seederrors "github.com/Rana718/ghseed/internal/errors"
)

var classifier = common.Classifier{
	IsConstraint: func(err error) bool {
		var sqliteErr sqlite3.Error
		return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
	},
	IsConnection: func(err error) bool {
		var sqliteErr sqlite3.Error
		if !errors.As(err, &sqliteErr) {
			return false
		}
		return sqliteErr.Code == sqlite3.ErrCantOpen || sqliteErr.Code == sqlite3.ErrNotADB
	},
}

type Adapter struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// ToDSN strips the sqlite:// scheme and enables foreign keys, which SQLite
// leaves off by default.
func ToDSN(url string) string {
	dsn := strings.TrimPrefix(url, "sqlite://")
	dsn = strings.TrimPrefix(dsn, "sqlite3://")
	params := "_foreign_keys=on&_busy_timeout=5000"
	if strings.Contains(dsn, "?") {
		return dsn + "&" + params
	}
	return dsn + "?" + params
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	db, err := sql.Open("sqlite3", ToDSN(url))
	if err != nil {
		return seederrors.NewConfigurationError("invalid SQLite path", err.Error())
	}

	// One writer; a second connection would not see an uncommitted run.
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return seederrors.NewConnectionError("failed to open SQLite database", err)
	}

	s.db = db
	return nil
}

func (s *Adapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Adapter) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return seederrors.NewConnectionError("failed to open SQLite database", err)
	}
	return nil
}

func (s *Adapter) Provider() string {
	return "sqlite"
}

func (s *Adapter) Builder() squirrel.StatementBuilderType {
	return s.qb
}

func (s *Adapter) Begin(ctx context.Context) (common.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, s.ClassifyError(err, "failed to begin transaction")
	}
	return common.NewSQLTx(tx), nil
}

func (s *Adapter) SchemaSQL() string {
	return schemaSQL
}

// PurgeSQL deletes the rows and resets the AUTOINCREMENT counter.
func (s *Adapter) PurgeSQL(table string) []string {
	return []string{
		fmt.Sprintf("DELETE FROM %s", table),
		fmt.Sprintf("DELETE FROM sqlite_sequence WHERE name = '%s'", table),
	}
}

func (s *Adapter) ClassifyError(err error, message string) error {
	return classifier.Classify(err, message)
}
