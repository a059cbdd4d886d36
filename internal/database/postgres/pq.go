package postgres

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/Rana718/ghseed/internal/database/common"
	seederrors "github.com/Rana718/ghseed/internal/errors"
)

// PQAdapter talks to PostgreSQL through database/sql and lib/pq, for
// deployments that cannot use pgx.
type PQAdapter struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

func NewPQ() *PQAdapter {
	return &PQAdapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (p *PQAdapter) Connect(ctx context.Context, url string) error {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return seederrors.NewConfigurationError("invalid PostgreSQL connection URL", err.Error())
	}
	db.SetMaxOpenConns(2)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return seederrors.NewConnectionError("failed to reach PostgreSQL", err)
	}
	p.db = db
	return nil
}

func (p *PQAdapter) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *PQAdapter) Ping(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return seederrors.NewConnectionError("failed to reach PostgreSQL", err)
	}
	return nil
}

func (p *PQAdapter) Provider() string {
	return "postgresql"
}

func (p *PQAdapter) Builder() squirrel.StatementBuilderType {
	return p.qb
}

func (p *PQAdapter) Begin(ctx context.Context) (common.Tx, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, p.ClassifyError(err, "failed to begin transaction")
	}
	return common.NewSQLTx(tx), nil
}

func (p *PQAdapter) SchemaSQL() string {
	return schemaSQL
}

func (p *PQAdapter) PurgeSQL(table string) []string {
	return purgeSQL(table)
}

func (p *PQAdapter) ClassifyError(err error, message string) error {
	return classifier.Classify(err, message)
}
