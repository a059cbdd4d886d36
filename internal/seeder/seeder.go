package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Rana718/ghseed/internal/config"
	"github.com/Rana718/ghseed/internal/database"
	"github.com/Rana718/ghseed/internal/logger"
	"github.com/Rana718/ghseed/internal/models"
	"github.com/Rana718/ghseed/internal/store"
)

// Seeder runs seed and purge operations against one connected adapter.
type Seeder struct {
	adapter database.DatabaseAdapter
	text    TextSource
	now     func() time.Time
	log     *slog.Logger
}

type Option func(*Seeder)

// WithTextSource replaces the gofakeit text source.
func WithTextSource(text TextSource) Option {
	return func(s *Seeder) { s.text = text }
}

// WithClock fixes the time used for created, updated and last_sync.
func WithClock(now func() time.Time) Option {
	return func(s *Seeder) { s.now = now }
}

func NewSeeder(adapter database.DatabaseAdapter, opts ...Option) *Seeder {
	s := &Seeder{
		adapter: adapter,
		now:     func() time.Time { return time.Now().UTC() },
		log:     logger.WithComponent("seeder"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate seeds one dataset in a single transaction. The configuration is
// validated before the store is touched, and on any failure nothing from the
// run is persisted.
func (s *Seeder) Generate(ctx context.Context, cfg config.SeedConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := CheckCapacity(cfg); err != nil {
		return nil, err
	}

	graph := SchemaGraph()
	insertOrder, err := graph.BuildInsertionOrder()
	if err != nil {
		return nil, err
	}
	purgeOrder, err := graph.PurgeOrder()
	if err != nil {
		return nil, err
	}

	started := time.Now()
	s.log.Info("starting seed run",
		"users", cfg.UserCount,
		"repos_per_user", cfg.ReposPerUser,
		"enabled_repos_per_user", cfg.EnabledReposPerUser,
		"strategy", cfg.ExternalIDStrategy,
		"sampling", cfg.EnabledSampling,
		"purge", cfg.PurgeExisting,
	)

	var result *Result
	err = s.inTx(ctx, cfg.BatchSize, func(w *store.Writer) error {
		if cfg.PurgeExisting {
			if err := w.Purge(ctx, purgeOrder); err != nil {
				return err
			}
			s.log.Info("purged existing rows", "tables", len(purgeOrder))
		}

		firstUserID := cfg.FirstUserID
		if firstUserID == 0 {
			maxID, err := w.MaxUserID(ctx)
			if err != nil {
				return err
			}
			firstUserID = maxID + 1
		}

		ds, err := NewGenerator(cfg.RandomSeed, s.text).Build(Plan{
			Config:      cfg,
			FirstUserID: firstUserID,
			Now:         s.now(),
		})
		if err != nil {
			return err
		}

		if err := s.insert(ctx, w, ds, insertOrder); err != nil {
			return err
		}

		result = &Result{
			Users:           len(ds.Users),
			Repositories:    len(ds.Repositories),
			RemoteAccounts:  len(ds.RemoteAccounts),
			Releases:        len(ds.Releases),
			SnapshotEntries: ds.SnapshotEntries(),
			FirstUserID:     firstUserID,
			NextExternalID:  ds.NextExternalID,
			Purged:          cfg.PurgeExisting,
		}
		return nil
	})
	if err != nil {
		s.log.Error("seed run rolled back", "err", err)
		return nil, err
	}

	result.Duration = time.Since(started)
	s.log.Info("seed run committed",
		"users", result.Users,
		"repositories", result.Repositories,
		"remote_accounts", result.RemoteAccounts,
		"releases", result.Releases,
		"next_external_id", result.NextExternalID,
		"duration", result.Duration,
	)
	return result, nil
}

func (s *Seeder) insert(ctx context.Context, w *store.Writer, ds *Dataset, order []string) error {
	for _, table := range order {
		var (
			rows int
			err  error
		)
		switch table {
		case models.TableUsers:
			rows, err = len(ds.Users), w.InsertUsers(ctx, ds.Users)
		case models.TableRepositories:
			rows, err = len(ds.Repositories), w.InsertRepositories(ctx, ds.Repositories)
		case models.TableReleases:
			rows, err = len(ds.Releases), w.InsertReleases(ctx, ds.Releases)
		case models.TableRemoteAccounts:
			rows, err = len(ds.RemoteAccounts), w.InsertRemoteAccounts(ctx, ds.RemoteAccounts)
		default:
			// Remote tokens are never seeded.
			continue
		}
		if err != nil {
			return err
		}
		s.log.Debug("inserted rows", "table", table, "rows", rows)
	}
	return nil
}

// Purge empties all five tables in its own transaction. Purging an empty
// store is a no-op.
func (s *Seeder) Purge(ctx context.Context) error {
	order, err := SchemaGraph().PurgeOrder()
	if err != nil {
		return err
	}
	err = s.inTx(ctx, 0, func(w *store.Writer) error {
		return w.Purge(ctx, order)
	})
	if err != nil {
		return err
	}
	s.log.Info("purged all tables", "tables", len(order))
	return nil
}

// Counts returns the row count of every table.
func (s *Seeder) Counts(ctx context.Context) (map[string]int64, error) {
	var counts map[string]int64
	err := s.inTx(ctx, 0, func(w *store.Writer) error {
		var err error
		counts, err = w.Counts(ctx)
		return err
	})
	return counts, err
}

func (s *Seeder) inTx(ctx context.Context, batchSize int, fn func(w *store.Writer) error) error {
	tx, err := s.adapter.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(store.NewWriter(s.adapter, tx, batchSize)); err != nil {
		// The caller's context may already be cancelled.
		if rbErr := tx.Rollback(context.Background()); rbErr != nil {
			s.log.Warn("rollback failed", "err", rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return s.adapter.ClassifyError(err, "failed to commit transaction")
	}
	return nil
}

// String describes a result for console output.
func (r *Result) String() string {
	return fmt.Sprintf("%d users, %d repositories, %d remote accounts, %d releases",
		r.Users, r.Repositories, r.RemoteAccounts, r.Releases)
}
