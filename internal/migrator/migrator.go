package migrator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/Rana718/ghseed/internal/database"
	"github.com/Rana718/ghseed/internal/database/common"
	"github.com/Rana718/ghseed/internal/logger"
)

const (
	migrationsTable = "_ghseed_migrations"
	// SchemaMigrationID names the migration creating the five seeded tables.
	SchemaMigrationID = "0001_initial_schema"
)

// Migration is one applied or pending schema script.
type Migration struct {
	ID        string     `json:"id" yaml:"id"`
	Checksum  string     `json:"checksum" yaml:"checksum"`
	Applied   bool       `json:"applied" yaml:"applied"`
	AppliedAt *time.Time `json:"applied_at,omitempty" yaml:"applied_at,omitempty"`
}

// Migrator creates the seeded schema and records what it applied.
type Migrator struct {
	adapter database.DatabaseAdapter
	log     *slog.Logger
}

func NewMigrator(adapter database.DatabaseAdapter) *Migrator {
	return &Migrator{
		adapter: adapter,
		log:     logger.WithComponent("migrator"),
	}
}

// Checksum is the hex SHA-256 of a migration script.
func Checksum(script string) string {
	sum := sha256.Sum256([]byte(script))
	return hex.EncodeToString(sum[:])
}

func (m *Migrator) createMigrationsTable(ctx context.Context, tx common.Tx) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id VARCHAR(255) NOT NULL PRIMARY KEY,
		checksum VARCHAR(64) NOT NULL,
		applied_at TIMESTAMP NOT NULL
	)`, migrationsTable)
	if _, err := tx.Exec(ctx, query); err != nil {
		return m.adapter.ClassifyError(err, "failed to create migrations table")
	}
	return nil
}

// Apply creates the schema once. Re-running is a no-op; a recorded checksum
// that differs from the current script is reported as an error.
func (m *Migrator) Apply(ctx context.Context) (*Migration, error) {
	script := m.adapter.SchemaSQL()
	migration := &Migration{ID: SchemaMigrationID, Checksum: Checksum(script)}

	tx, err := m.adapter.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := m.createMigrationsTable(ctx, tx); err != nil {
		return nil, err
	}

	qb := m.adapter.Builder()
	recorded, err := m.recordedChecksum(ctx, tx, qb)
	if err != nil {
		return nil, err
	}
	if recorded != "" {
		if recorded != migration.Checksum {
			return nil, fmt.Errorf("migration %s was applied with checksum %s but the schema now hashes to %s",
				migration.ID, recorded, migration.Checksum)
		}
		m.log.Info("schema already applied", "migration", migration.ID)
		migration.Applied = true
		return migration, tx.Commit(ctx)
	}

	for _, stmt := range common.ParseSQLStatements(script) {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return nil, m.adapter.ClassifyError(err, "failed to apply "+migration.ID)
		}
	}

	now := time.Now().UTC()
	query, args, err := qb.Insert(migrationsTable).
		Columns("id", "checksum", "applied_at").
		Values(migration.ID, migration.Checksum, now).
		ToSql()
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return nil, m.adapter.ClassifyError(err, "failed to record "+migration.ID)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, m.adapter.ClassifyError(err, "failed to commit "+migration.ID)
	}

	migration.Applied = true
	migration.AppliedAt = &now
	m.log.Info("schema applied", "migration", migration.ID, "provider", m.adapter.Provider())
	return migration, nil
}

func (m *Migrator) recordedChecksum(ctx context.Context, tx common.Tx, qb squirrel.StatementBuilderType) (string, error) {
	query, args, err := qb.Select("checksum").
		From(migrationsTable).
		Where(squirrel.Eq{"id": SchemaMigrationID}).
		ToSql()
	if err != nil {
		return "", err
	}
	checksum, err := tx.QueryString(ctx, query, args...)
	if err != nil {
		return "", m.adapter.ClassifyError(err, "failed to read migrations")
	}
	return checksum, nil
}

// Status reports whether the schema migration has been applied.
func (m *Migrator) Status(ctx context.Context) (*Migration, error) {
	migration := &Migration{ID: SchemaMigrationID, Checksum: Checksum(m.adapter.SchemaSQL())}

	tx, err := m.adapter.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := m.createMigrationsTable(ctx, tx); err != nil {
		return nil, err
	}
	recorded, err := m.recordedChecksum(ctx, tx, m.adapter.Builder())
	if err != nil {
		return nil, err
	}
	migration.Applied = recorded != ""
	if err := tx.Commit(ctx); err != nil {
		return nil, m.adapter.ClassifyError(err, "failed to commit")
	}
	return migration, nil
}
