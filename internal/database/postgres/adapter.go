package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rana718/ghseed/internal/database/common"
	seederrors "github.com/Rana718/ghseed/internal/errors"
	"github.com/Rana718/ghseed/internal/models"
)

// Adapter talks to PostgreSQL through a pgx pool.
type Adapter struct {
	pool *pgxpool.Pool
	qb   squirrel.StatementBuilderType
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (p *Adapter) Connect(ctx context.Context, url string) error {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return seederrors.NewConfigurationError("invalid PostgreSQL connection URL", err.Error())
	}

	// Describe before executing so JSON and UUID parameters are typed by the
	// server; this also works behind transaction poolers.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeDescribeExec

	config.MaxConns = 2
	config.MinConns = 0
	config.MaxConnLifetime = 15 * time.Minute
	config.MaxConnIdleTime = 3 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return seederrors.NewConnectionError("failed to create connection pool", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return seederrors.NewConnectionError("failed to reach PostgreSQL", err)
	}

	p.pool = pool
	return nil
}

func (p *Adapter) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *Adapter) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return seederrors.NewConnectionError("failed to reach PostgreSQL", err)
	}
	return nil
}

func (p *Adapter) Provider() string {
	return "postgresql"
}

func (p *Adapter) Builder() squirrel.StatementBuilderType {
	return p.qb
}

func (p *Adapter) Begin(ctx context.Context) (common.Tx, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, p.ClassifyError(err, "failed to begin transaction")
	}
	return &pgxTx{tx: tx}, nil
}

func (p *Adapter) SchemaSQL() string {
	return schemaSQL
}

func (p *Adapter) PurgeSQL(table string) []string {
	return purgeSQL(table)
}

func (p *Adapter) ClassifyError(err error, message string) error {
	return classifier.Classify(err, message)
}

type pgxTx struct {
	tx pgx.Tx
}

func (t *pgxTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := t.tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (t *pgxTx) QueryInt(ctx context.Context, query string, args ...any) (int64, error) {
	var n *int64
	if err := t.tx.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	if n == nil {
		return 0, nil
	}
	return *n, nil
}

func (t *pgxTx) QueryString(ctx context.Context, query string, args ...any) (string, error) {
	var s *string
	err := t.tx.QueryRow(ctx, query, args...).Scan(&s)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", nil
	}
	return *s, nil
}

func (t *pgxTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *pgxTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

// purgeSQL deletes the rows of one table only. A foreign key from a table
// outside the seeded set fails the purge.
func purgeSQL(table string) []string {
	stmts := []string{fmt.Sprintf("DELETE FROM %s", table)}
	if table == models.TableRemoteAccounts {
		stmts = append(stmts, fmt.Sprintf("ALTER SEQUENCE %s_id_seq RESTART WITH 1", table))
	}
	return stmts
}
