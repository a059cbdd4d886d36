package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"

	"github.com/Rana718/ghseed/internal/database/common"
	seederrors "github.com/Rana718/ghseed/internal/errors"
)

// Server error numbers raised by integrity constraints.
var constraintErrors = map[uint16]bool{
	1022: true, // ER_DUP_KEY
	1048: true, // ER_BAD_NULL_ERROR
	1062: true, // ER_DUP_ENTRY
	1216: true, // ER_NO_REFERENCED_ROW
	1217: true, // ER_ROW_IS_REFERENCED
	1451: true, // ER_ROW_IS_REFERENCED_2
	1452: true, // ER_NO_REFERENCED_ROW_2
	1364: true, // ER_NO_DEFAULT_FOR_FIELD
}

var classifier = common.Classifier{
	IsConstraint: func(err error) bool {
		var myErr *mysql.MySQLError
		return errors.As(err, &myErr) && constraintErrors[myErr.Number]
	},
	IsConnection: func(err error) bool {
		if errors.Is(err, mysql.ErrInvalidConn) {
			return true
		}
		var myErr *mysql.MySQLError
		// 1045 access denied, 1044 database access denied, 1049 unknown database
		return errors.As(err, &myErr) && (myErr.Number == 1045 || myErr.Number == 1044 || myErr.Number == 1049)
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

// ToDSN converts a mysql:// URL into a go-sql-driver DSN. Anything else is
// returned unchanged apart from forcing parseTime.
func ToDSN(url string) (string, error) {
	dsn := url
	if strings.HasPrefix(url, "mysql://") {
		dsn = strings.TrimPrefix(url, "mysql://")

		atIndex := strings.LastIndex(dsn, "@")
		if atIndex > 0 {
			credentials := dsn[:atIndex]
			remainder := dsn[atIndex+1:]

			slashIndex := strings.Index(remainder, "/")
			if slashIndex > 0 {
				hostPort := remainder[:slashIndex]
				dbAndParams := remainder[slashIndex+1:]

				dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=REQUIRED", "tls=skip-verify")
				dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=DISABLED", "tls=false")
				dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=require", "tls=skip-verify")
				dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=disable", "tls=false")

				dsn = fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, dbAndParams)
			}
		}
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

func (m *Adapter) Connect(ctx context.Context, url string) error {
	dsn, err := ToDSN(url)
	if err != nil {
		return seederrors.NewConfigurationError("invalid MySQL connection URL", err.Error())
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return seederrors.NewConfigurationError("invalid MySQL connection URL", err.Error())
	}

	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return seederrors.NewConnectionError("failed to reach MySQL", err)
	}

	m.db = db
	return nil
}

func (m *Adapter) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *Adapter) Ping(ctx context.Context) error {
	if err := m.db.PingContext(ctx); err != nil {
		return seederrors.NewConnectionError("failed to reach MySQL", err)
	}
	return nil
}

func (m *Adapter) Provider() string {
	return "mysql"
}

func (m *Adapter) Builder() squirrel.StatementBuilderType {
	return m.qb
}

func (m *Adapter) Begin(ctx context.Context) (common.Tx, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, m.ClassifyError(err, "failed to begin transaction")
	}
	return common.NewSQLTx(tx), nil
}

func (m *Adapter) SchemaSQL() string {
	return schemaSQL
}

// PurgeSQL uses DELETE because TRUNCATE commits implicitly in MySQL.
func (m *Adapter) PurgeSQL(table string) []string {
	return []string{fmt.Sprintf("DELETE FROM %s", table)}
}

func (m *Adapter) ClassifyError(err error, message string) error {
	return classifier.Classify(err, message)
}
