// Package store writes seeded entities through one transaction using
// dialect-aware multi-row inserts.
package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"

	"github.com/Rana718/ghseed/internal/database"
	"github.com/Rana718/ghseed/internal/database/common"
	"github.com/Rana718/ghseed/internal/models"
)

const defaultBatchSize = 100

// Writer inserts records inside a single transaction.
type Writer struct {
	adapter   database.DatabaseAdapter
	tx        common.Tx
	qb        squirrel.StatementBuilderType
	batchSize int
}

func NewWriter(adapter database.DatabaseAdapter, tx common.Tx, batchSize int) *Writer {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Writer{
		adapter:   adapter,
		tx:        tx,
		qb:        adapter.Builder(),
		batchSize: batchSize,
	}
}

var (
	userColumns = []string{
		"id", "username", "displayname", "email", "domain", "password", "active",
		"confirmed_at", "version_id", "profile", "preferences", "blocked_at", "verified_at",
		"created", "updated",
	}
	repositoryColumns = []string{"id", "github_id", "name", "user_id", "hook", "created", "updated"}
	releaseColumns    = []string{
		"id", "release_id", "tag", "errors", "repository_id", "record_id", "status", "created", "updated",
	}
	accountColumns = []string{"user_id", "client_id", "extra_data", "created", "updated"}
	tokenColumns   = []string{"id_remote_account", "token_type", "access_token", "secret", "created", "updated"}
)

func (w *Writer) InsertUsers(ctx context.Context, users []*models.User) error {
	rows := make([][]any, 0, len(users))
	for _, u := range users {
		profile, err := u.Profile.Value()
		if err != nil {
			return err
		}
		preferences, err := u.Preferences.Value()
		if err != nil {
			return err
		}
		rows = append(rows, []any{
			u.ID, u.Username, u.DisplayName, u.Email, u.Domain, u.Password, u.Active,
			u.ConfirmedAt, u.VersionID, profile, preferences, u.BlockedAt, u.VerifiedAt,
			u.Created, u.Updated,
		})
	}
	return w.insertRows(ctx, models.TableUsers, userColumns, rows)
}

func (w *Writer) InsertRepositories(ctx context.Context, repos []*models.Repository) error {
	rows := make([][]any, 0, len(repos))
	for _, r := range repos {
		rows = append(rows, []any{
			r.ID.String(), r.GitHubID, r.Name, r.UserID, r.Hook, r.Created, r.Updated,
		})
	}
	return w.insertRows(ctx, models.TableRepositories, repositoryColumns, rows)
}

func (w *Writer) InsertReleases(ctx context.Context, releases []*models.Release) error {
	rows := make([][]any, 0, len(releases))
	for _, r := range releases {
		errs, err := r.Errors.Value()
		if err != nil {
			return err
		}
		var recordID any
		if r.RecordID != nil {
			recordID = r.RecordID.String()
		}
		if !r.Status.IsValid() {
			return fmt.Errorf("release %s has no status", r.ID)
		}
		rows = append(rows, []any{
			r.ID.String(), r.ReleaseID, r.Tag, errs, r.RepositoryID.String(), recordID,
			r.Status.Code(), r.Created, r.Updated,
		})
	}
	return w.insertRows(ctx, models.TableReleases, releaseColumns, rows)
}

// InsertRemoteAccounts inserts accounts one by one and stores the
// store-assigned id back on each account.
func (w *Writer) InsertRemoteAccounts(ctx context.Context, accounts []*models.RemoteAccount) error {
	for _, a := range accounts {
		extra, err := a.ExtraData.Value()
		if err != nil {
			return err
		}
		if extra == nil {
			extra = "{}"
		}

		query, args, err := w.qb.Insert(models.TableRemoteAccounts).
			Columns(accountColumns...).
			Values(a.UserID, a.ClientID, extra, a.Created, a.Updated).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert for %s: %w", models.TableRemoteAccounts, err)
		}
		if _, err := w.tx.Exec(ctx, query, args...); err != nil {
			return w.adapter.ClassifyError(err, "failed to insert "+models.TableRemoteAccounts)
		}

		id, err := w.remoteAccountID(ctx, a.UserID, a.ClientID)
		if err != nil {
			return err
		}
		a.ID = id
	}
	return nil
}

func (w *Writer) remoteAccountID(ctx context.Context, userID int64, clientID string) (int64, error) {
	query, args, err := w.qb.Select("id").
		From(models.TableRemoteAccounts).
		Where(squirrel.Eq{"user_id": userID, "client_id": clientID}).
		ToSql()
	if err != nil {
		return 0, err
	}
	id, err := w.tx.QueryInt(ctx, query, args...)
	if err != nil {
		return 0, w.adapter.ClassifyError(err, "failed to read remote account id")
	}
	return id, nil
}

// InsertRemoteTokens seals each access token before writing it.
func (w *Writer) InsertRemoteTokens(ctx context.Context, tokens []*models.RemoteToken) error {
	rows := make([][]any, 0, len(tokens))
	for _, t := range tokens {
		sealed, err := models.Seal(string(t.AccessToken))
		if err != nil {
			return err
		}
		rows = append(rows, []any{
			t.RemoteAccountID, t.TokenType, sealed, t.Secret, t.Created, t.Updated,
		})
	}
	return w.insertRows(ctx, models.TableRemoteTokens, tokenColumns, rows)
}

func (w *Writer) insertRows(ctx context.Context, table string, columns []string, rows [][]any) error {
	if !common.IsValidIdentifier(table) {
		return fmt.Errorf("invalid table name: %s", table)
	}

	for start := 0; start < len(rows); start += w.batchSize {
		end := start + w.batchSize
		if end > len(rows) {
			end = len(rows)
		}

		insert := w.qb.Insert(table).Columns(columns...)
		for _, row := range rows[start:end] {
			insert = insert.Values(row...)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert for %s: %w", table, err)
		}
		if _, err := w.tx.Exec(ctx, query, args...); err != nil {
			return w.adapter.ClassifyError(err, "failed to insert "+table)
		}
	}
	return nil
}

// Purge empties every table in dependency order: tokens, accounts, releases,
// repositories, users.
func (w *Writer) Purge(ctx context.Context, order []string) error {
	for _, table := range order {
		if !common.IsValidIdentifier(table) {
			return fmt.Errorf("invalid table name: %s", table)
		}
		for _, stmt := range w.adapter.PurgeSQL(table) {
			if _, err := w.tx.Exec(ctx, stmt); err != nil {
				return w.adapter.ClassifyError(err, "failed to purge "+table)
			}
		}
	}
	return nil
}

// MaxUserID returns the largest stored user id, or 0 for an empty table.
func (w *Writer) MaxUserID(ctx context.Context) (int64, error) {
	query, args, err := w.qb.Select("MAX(id)").From(models.TableUsers).ToSql()
	if err != nil {
		return 0, err
	}
	id, err := w.tx.QueryInt(ctx, query, args...)
	if err != nil {
		return 0, w.adapter.ClassifyError(err, "failed to read max user id")
	}
	return id, nil
}

func (w *Writer) Count(ctx context.Context, table string) (int64, error) {
	if !common.IsValidIdentifier(table) {
		return 0, fmt.Errorf("invalid table name: %s", table)
	}
	query, args, err := w.qb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, err
	}
	n, err := w.tx.QueryInt(ctx, query, args...)
	if err != nil {
		return 0, w.adapter.ClassifyError(err, "failed to count "+table)
	}
	return n, nil
}

// Counts returns the row count of every table.
func (w *Writer) Counts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(models.Tables))
	for _, table := range models.Tables {
		n, err := w.Count(ctx, table)
		if err != nil {
			return nil, err
		}
		counts[table] = n
	}
	return counts, nil
}

// DeleteRemoteAccount removes one account; its tokens go with it.
func (w *Writer) DeleteRemoteAccount(ctx context.Context, id int64) error {
	query, args, err := w.qb.Delete(models.TableRemoteAccounts).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := w.tx.Exec(ctx, query, args...); err != nil {
		return w.adapter.ClassifyError(err, "failed to delete remote account "+strconv.FormatInt(id, 10))
	}
	return nil
}
