package seeder

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rana718/ghseed/internal/config"
	"github.com/Rana718/ghseed/internal/database"
	"github.com/Rana718/ghseed/internal/database/common"
	"github.com/Rana718/ghseed/internal/database/sqlite"
	seederrors "github.com/Rana718/ghseed/internal/errors"
	"github.com/Rana718/ghseed/internal/migrator"
	"github.com/Rana718/ghseed/internal/models"
)

func newStore(t *testing.T) *sqlite.Adapter {
	t.Helper()
	ctx := context.Background()
	a := sqlite.New()
	require.NoError(t, a.Connect(ctx, filepath.Join(t.TempDir(), "seed.db")))
	t.Cleanup(func() { a.Close() })

	_, err := migrator.NewMigrator(a).Apply(ctx)
	require.NoError(t, err)
	return a
}

func newTestSeeder(a database.DatabaseAdapter) *Seeder {
	return NewSeeder(a,
		WithTextSource(&stubText{}),
		WithClock(func() time.Time { return fixedNow }),
	)
}

func query(t *testing.T, a database.DatabaseAdapter, fn func(tx common.Tx)) {
	t.Helper()
	ctx := context.Background()
	tx, err := a.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)
	fn(tx)
}

func countRows(t *testing.T, a database.DatabaseAdapter) map[string]int64 {
	t.Helper()
	counts, err := newTestSeeder(a).Counts(context.Background())
	require.NoError(t, err)
	return counts
}

func TestGenerateEndToEnd(t *testing.T) {
	ctx := context.Background()
	a := newStore(t)
	cfg := testConfig()
	cfg.PurgeExisting = true

	result, err := newTestSeeder(a).Generate(ctx, cfg)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Users)
	assert.Equal(t, 5, result.RemoteAccounts)
	assert.Equal(t, 15, result.SnapshotEntries)
	assert.Equal(t, int64(1), result.FirstUserID)
	assert.Equal(t, int64(16), result.NextExternalID)
	assert.GreaterOrEqual(t, result.Repositories, 5)
	assert.LessOrEqual(t, result.Repositories, 10)

	counts := countRows(t, a)
	assert.Equal(t, int64(5), counts[models.TableUsers])
	assert.Equal(t, int64(5), counts[models.TableRemoteAccounts])
	assert.Equal(t, int64(result.Repositories), counts[models.TableRepositories])
	assert.Equal(t, int64(0), counts[models.TableReleases])
	assert.Equal(t, int64(0), counts[models.TableRemoteTokens])

	query(t, a, func(tx common.Tx) {
		for userID := int64(1); userID <= 5; userID++ {
			raw, err := tx.QueryString(ctx,
				"SELECT extra_data FROM oauthclient_remoteaccount WHERE user_id = ? AND client_id = ?",
				userID, "github")
			require.NoError(t, err)

			var extra struct {
				Repos    map[string]models.RepoSnapshot `json:"repos"`
				LastSync string                         `json:"last_sync"`
			}
			require.NoError(t, json.Unmarshal([]byte(raw), &extra))
			assert.Len(t, extra.Repos, 3)
			assert.NotEmpty(t, extra.LastSync)

			persisted, err := tx.QueryInt(ctx,
				"SELECT COUNT(*) FROM github_repositories WHERE user_id = ?", userID)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, persisted, int64(1))
			assert.LessOrEqual(t, persisted, int64(2))
		}
	})
}

func TestGenerateDistinctWithReleases(t *testing.T) {
	ctx := context.Background()
	a := newStore(t)
	cfg := testConfig()
	cfg.EnabledSampling = config.SamplingDistinct
	cfg.ReleasesPerRepo = 2
	cfg.BatchSize = 3

	result, err := newTestSeeder(a).Generate(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, 10, result.Repositories)
	assert.Equal(t, 20, result.Releases)

	counts := countRows(t, a)
	assert.Equal(t, int64(10), counts[models.TableRepositories])
	assert.Equal(t, int64(20), counts[models.TableReleases])

	query(t, a, func(tx common.Tx) {
		invalid, err := tx.QueryInt(ctx,
			"SELECT COUNT(*) FROM github_releases WHERE status NOT IN ('R', 'P', 'D', 'F', 'E')")
		require.NoError(t, err)
		assert.Zero(t, invalid)
	})
}

func TestPurgeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	a := newStore(t)
	s := newTestSeeder(a)

	cfg := testConfig()
	cfg.ReleasesPerRepo = 1
	_, err := s.Generate(ctx, cfg)
	require.NoError(t, err)

	require.NoError(t, s.Purge(ctx))
	for table, n := range countRows(t, a) {
		assert.Zero(t, n, table)
	}

	require.NoError(t, s.Purge(ctx))
	for table, n := range countRows(t, a) {
		assert.Zero(t, n, table)
	}
}

func TestPurgeThenSeedReplacesData(t *testing.T) {
	ctx := context.Background()
	a := newStore(t)
	s := newTestSeeder(a)

	cfg := testConfig()
	_, err := s.Generate(ctx, cfg)
	require.NoError(t, err)

	cfg.PurgeExisting = true
	result, err := s.Generate(ctx, cfg)
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.FirstUserID)
	assert.Equal(t, int64(5), countRows(t, a)[models.TableUsers])
}

func TestReseedWithoutPurgeRollsBack(t *testing.T) {
	ctx := context.Background()
	a := newStore(t)
	s := newTestSeeder(a)

	cfg := testConfig()
	first, err := s.Generate(ctx, cfg)
	require.NoError(t, err)
	before := countRows(t, a)

	_, err = s.Generate(ctx, cfg)
	require.Error(t, err)
	assert.True(t, seederrors.IsConstraintViolation(err), err.Error())

	after := countRows(t, a)
	assert.Equal(t, before, after)
	assert.Equal(t, int64(first.Repositories), after[models.TableRepositories])
}

func TestGenerateContinuesAfterExistingUsers(t *testing.T) {
	ctx := context.Background()
	a := newStore(t)
	s := newTestSeeder(a)

	cfg := testConfig()
	first, err := s.Generate(ctx, cfg)
	require.NoError(t, err)

	cfg.FirstUserID = 0
	cfg.ExternalIDStart = first.NextExternalID
	cfg.RandomSeed = 43
	second, err := s.Generate(ctx, cfg)
	require.NoError(t, err)

	assert.Equal(t, int64(6), second.FirstUserID)
	assert.Equal(t, first.NextExternalID+15, second.NextExternalID)
	assert.Equal(t, int64(10), countRows(t, a)[models.TableUsers])
}

// untouchedStore fails the test if a seed run reaches the store.
type untouchedStore struct {
	database.DatabaseAdapter
	t *testing.T
}

func (u untouchedStore) Begin(context.Context) (common.Tx, error) {
	u.t.Fatal("store touched before configuration was validated")
	return nil, nil
}

func TestGenerateValidatesBeforeTouchingStore(t *testing.T) {
	s := newTestSeeder(untouchedStore{t: t})

	cfg := testConfig()
	cfg.EnabledReposPerUser = cfg.ReposPerUser + 1

	_, err := s.Generate(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, seederrors.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "enabled_repos_per_user must not exceed repos_per_user")
}

func TestGenerateCancelledContextPersistsNothing(t *testing.T) {
	a := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestSeeder(a).Generate(ctx, testConfig())
	require.Error(t, err)

	for table, n := range countRows(t, a) {
		assert.Zero(t, n, table)
	}
}
