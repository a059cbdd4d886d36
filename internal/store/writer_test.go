package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rana718/ghseed/internal/database/common"
	"github.com/Rana718/ghseed/internal/database/sqlite"
	seederrors "github.com/Rana718/ghseed/internal/errors"
	"github.com/Rana718/ghseed/internal/migrator"
	"github.com/Rana718/ghseed/internal/models"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newWriter(t *testing.T, batchSize int) (*Writer, common.Tx) {
	t.Helper()
	ctx := context.Background()

	a := sqlite.New()
	require.NoError(t, a.Connect(ctx, filepath.Join(t.TempDir(), "seed.db")))
	t.Cleanup(func() { a.Close() })

	_, err := migrator.NewMigrator(a).Apply(ctx)
	require.NoError(t, err)

	tx, err := a.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { tx.Rollback(context.Background()) })

	return NewWriter(a, tx, batchSize), tx
}

func users(n int) []*models.User {
	out := make([]*models.User, 0, n)
	for i := 1; i <= n; i++ {
		name := fmt.Sprintf("user%d", i)
		out = append(out, models.NewUser(int64(i), name, "example.com", now))
	}
	return out
}

func TestInsertUsersInBatches(t *testing.T) {
	ctx := context.Background()
	w, _ := newWriter(t, 3)

	require.NoError(t, w.InsertUsers(ctx, users(7)))

	n, err := w.Count(ctx, models.TableUsers)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	maxID, err := w.MaxUserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), maxID)
}

func TestMaxUserIDOnEmptyTable(t *testing.T) {
	w, _ := newWriter(t, 0)

	maxID, err := w.MaxUserID(context.Background())
	require.NoError(t, err)
	assert.Zero(t, maxID)
}

func TestInsertRepositoryWithUnknownOwner(t *testing.T) {
	ctx := context.Background()
	w, _ := newWriter(t, 10)

	repo := models.NewRepository(1, "acme/widgets", 99, 12345678, now)
	err := w.InsertRepositories(ctx, []*models.Repository{repo})
	require.Error(t, err)
	assert.True(t, seederrors.IsConstraintViolation(err), err.Error())
}

func TestInsertDuplicateUsernameIsConstraintViolation(t *testing.T) {
	ctx := context.Background()
	w, _ := newWriter(t, 10)

	dup := users(2)
	dup[1].Username = dup[0].Username

	err := w.InsertUsers(ctx, dup)
	require.Error(t, err)
	assert.True(t, seederrors.IsConstraintViolation(err))
}

func TestInsertReleasesStoresStatusCode(t *testing.T) {
	ctx := context.Background()
	w, tx := newWriter(t, 10)

	require.NoError(t, w.InsertUsers(ctx, users(1)))
	repo := models.NewRepository(1, "acme/widgets", 1, 12345678, now)
	require.NoError(t, w.InsertRepositories(ctx, []*models.Repository{repo}))

	published := models.NewRelease(repo.ID, 10, "v1.0.0", models.StatusPublished, now)
	recordID := repo.ID
	published.RecordID = &recordID
	failed := models.NewRelease(repo.ID, 11, "v1.1.0", models.StatusFailed, now)
	failed.Errors = models.JSONMap{"errors": []any{"bad tag"}}
	require.NoError(t, w.InsertReleases(ctx, []*models.Release{published, failed}))

	code, err := tx.QueryString(ctx, "SELECT status FROM github_releases WHERE release_id = ?", 10)
	require.NoError(t, err)
	assert.True(t, models.StatusPublished.Equal(code))

	errs, err := tx.QueryString(ctx, "SELECT errors FROM github_releases WHERE release_id = ?", 11)
	require.NoError(t, err)
	assert.JSONEq(t, `{"errors":["bad tag"]}`, errs)

	errs, err = tx.QueryString(ctx, "SELECT errors FROM github_releases WHERE release_id = ?", 10)
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestInsertReleaseWithoutStatus(t *testing.T) {
	w, _ := newWriter(t, 10)

	release := models.NewRelease(models.NewRepository(1, "a/b", 1, 1, now).ID, 1, "v1", models.ReleaseStatus{}, now)
	err := w.InsertReleases(context.Background(), []*models.Release{release})
	assert.ErrorContains(t, err, "has no status")
}

func TestRemoteAccountIDsAreReadBack(t *testing.T) {
	ctx := context.Background()
	w, _ := newWriter(t, 10)

	require.NoError(t, w.InsertUsers(ctx, users(3)))
	accounts := []*models.RemoteAccount{
		models.NewRemoteAccount(1, "github", now),
		models.NewRemoteAccount(2, "github", now),
		models.NewRemoteAccount(3, "github", now),
	}
	require.NoError(t, w.InsertRemoteAccounts(ctx, accounts))

	seen := make(map[int64]bool)
	for _, a := range accounts {
		assert.Positive(t, a.ID)
		seen[a.ID] = true
	}
	assert.Len(t, seen, 3)

	err := w.InsertRemoteAccounts(ctx, []*models.RemoteAccount{models.NewRemoteAccount(1, "github", now)})
	assert.True(t, seederrors.IsConstraintViolation(err))
}

func TestDeleteRemoteAccountCascadesToTokens(t *testing.T) {
	ctx := context.Background()
	w, tx := newWriter(t, 10)

	require.NoError(t, w.InsertUsers(ctx, users(2)))
	accounts := []*models.RemoteAccount{
		models.NewRemoteAccount(1, "github", now),
		models.NewRemoteAccount(2, "github", now),
	}
	require.NoError(t, w.InsertRemoteAccounts(ctx, accounts))
	require.NoError(t, w.InsertRemoteTokens(ctx, []*models.RemoteToken{
		models.NewRemoteToken(accounts[0].ID, "gho_first", now),
		models.NewRemoteToken(accounts[1].ID, "gho_second", now),
	}))

	sealed, err := tx.QueryString(ctx,
		"SELECT access_token FROM oauthclient_remotetoken WHERE id_remote_account = ?", accounts[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, "gho_first", sealed)
	plain, err := models.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "gho_first", plain)

	require.NoError(t, w.DeleteRemoteAccount(ctx, accounts[0].ID))

	tokens, err := w.Count(ctx, models.TableRemoteTokens)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tokens)

	remaining, err := w.Count(ctx, models.TableRemoteAccounts)
	require.NoError(t, err)
	assert.Equal(t, int64(1), remaining)
}

func TestPurgeEmptiesEveryTable(t *testing.T) {
	ctx := context.Background()
	w, _ := newWriter(t, 10)

	require.NoError(t, w.InsertUsers(ctx, users(2)))
	accounts := []*models.RemoteAccount{models.NewRemoteAccount(1, "github", now)}
	require.NoError(t, w.InsertRemoteAccounts(ctx, accounts))
	require.NoError(t, w.InsertRemoteTokens(ctx, []*models.RemoteToken{
		models.NewRemoteToken(accounts[0].ID, "gho_token", now),
	}))

	order := []string{
		models.TableRemoteTokens,
		models.TableRemoteAccounts,
		models.TableReleases,
		models.TableRepositories,
		models.TableUsers,
	}
	require.NoError(t, w.Purge(ctx, order))

	counts, err := w.Counts(ctx)
	require.NoError(t, err)
	for table, n := range counts {
		assert.Zero(t, n, table)
	}
}

func TestRejectsInvalidTableNames(t *testing.T) {
	w, _ := newWriter(t, 10)

	_, err := w.Count(context.Background(), "users; DROP TABLE accounts_user")
	assert.ErrorContains(t, err, "invalid table name")

	err = w.Purge(context.Background(), []string{"bad-name"})
	assert.ErrorContains(t, err, "invalid table name")
}
