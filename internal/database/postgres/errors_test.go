package postgres

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	seederrors "github.com/Rana718/ghseed/internal/errors"
	"github.com/Rana718/ghseed/internal/models"
)

func TestClassifyError(t *testing.T) {
	a := New()

	unique := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
	err := a.ClassifyError(fmt.Errorf("exec: %w", unique), "failed to insert users")
	assert.True(t, seederrors.IsConstraintViolation(err))
	assert.ErrorIs(t, err, unique)

	fk := &pq.Error{Code: "23503", Message: "insert or update violates foreign key constraint"}
	assert.True(t, seederrors.IsConstraintViolation(NewPQ().ClassifyError(fk, "failed to insert repositories")))

	adminShutdown := &pgconn.PgError{Code: "57P01"}
	assert.True(t, seederrors.IsConnectionError(a.ClassifyError(adminShutdown, "commit")))

	syntax := &pgconn.PgError{Code: "42601"}
	err = a.ClassifyError(syntax, "failed to purge")
	assert.False(t, seederrors.IsConstraintViolation(err))
	assert.False(t, seederrors.IsConnectionError(err))
	assert.ErrorIs(t, err, syntax)

	plain := errors.New("boom")
	assert.Equal(t, "commit: boom", a.ClassifyError(plain, "commit").Error())
	assert.Nil(t, a.ClassifyError(nil, "noop"))
}

func TestPurgeSQL(t *testing.T) {
	assert.Equal(t,
		[]string{"DELETE FROM github_releases"},
		New().PurgeSQL("github_releases"))

	assert.Equal(t,
		[]string{
			"DELETE FROM oauthclient_remoteaccount",
			"ALTER SEQUENCE oauthclient_remoteaccount_id_seq RESTART WITH 1",
		},
		NewPQ().PurgeSQL("oauthclient_remoteaccount"))
}

func TestPurgeSQLNeverCascades(t *testing.T) {
	for _, table := range models.Tables {
		for _, stmt := range New().PurgeSQL(table) {
			upper := strings.ToUpper(stmt)
			assert.NotContains(t, upper, "CASCADE", table)
			assert.NotContains(t, upper, "TRUNCATE", table)
		}
	}
}
