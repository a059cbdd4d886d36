package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserDefaults(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	u := NewUser(7, "abcdefghij", "klmnop.com", now)

	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "abcdefghij@klmnop.com", u.Email)
	assert.Equal(t, "abcdefghij", u.DisplayName)
	assert.True(t, u.Active)
	assert.Empty(t, u.Password)
	assert.Equal(t, 2, u.VersionID)
	assert.Contains(t, u.Profile, "full_name")
	assert.Contains(t, u.Profile, "affiliations")
	for _, key := range []string{"locale", "timezone", "visibility", "email_visibility"} {
		assert.Contains(t, u.Preferences, key)
	}
	assert.Nil(t, u.ConfirmedAt)
	assert.Nil(t, u.BlockedAt)
	assert.Nil(t, u.VerifiedAt)
}

func TestNewRepositoryAssignsUUID(t *testing.T) {
	now := time.Now()
	a := NewRepository(1, "a/b-c-xyz", 1, 12345678, now)
	b := NewRepository(2, "a/b-c-xyw", 1, 12345678, now)

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	require.NotNil(t, a.GitHubID)
	assert.Equal(t, int64(1), *a.GitHubID)
}

func TestRemoteAccountSnapshot(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	acc := NewRemoteAccount(3, "github", now)
	assert.NotNil(t, acc.ExtraData)
	assert.Nil(t, acc.SnapshotRepos())

	acc.SetSnapshot(map[string]RepoSnapshot{
		"42": {ID: "42", FullName: "x/y-z-abc", Description: "A sentence.", DefaultBranch: DefaultBranch},
	}, now)

	repos := acc.SnapshotRepos()
	require.Len(t, repos, 1)
	entry := repos["42"].(map[string]any)
	assert.Equal(t, "main", entry["default_branch"])
	assert.Equal(t, "2024-05-01T12:00:00Z", acc.ExtraData["last_sync"])
}

func TestJSONMapValueScan(t *testing.T) {
	m := JSONMap{"locale": "en", "n": 1}
	v, err := m.Value()
	require.NoError(t, err)

	var back JSONMap
	require.NoError(t, back.Scan(v))
	assert.Equal(t, "en", back["locale"])
	assert.Equal(t, float64(1), back["n"])

	var nilMap JSONMap
	v, err = nilMap.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, back.Scan(nil))
	assert.Nil(t, back)

	assert.Error(t, back.Scan(42))
}

func TestReleaseString(t *testing.T) {
	r := NewRelease(uuid.New(), 99, "v1.0.0", StatusPublished, time.Now())
	assert.Equal(t, "<Release v1.0.0:99 (Published)>", r.String())

	r.ReleaseID = nil
	assert.Equal(t, "<Release v1.0.0:None (Published)>", r.String())
}

func TestEncryptedStringRoundTrip(t *testing.T) {
	SetTokenSecret("test-secret")
	defer SetTokenSecret("CHANGE_ME")

	token := NewRemoteToken(1, "gho_abc123", time.Now())
	v, err := token.AccessToken.Value()
	require.NoError(t, err)
	assert.NotEqual(t, "gho_abc123", v)

	var back EncryptedString
	require.NoError(t, back.Scan(v))
	assert.Equal(t, EncryptedString("gho_abc123"), back)

	SetTokenSecret("other-secret")
	assert.Error(t, back.Scan(v))
}
