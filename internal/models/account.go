package models

import (
	"strconv"
	"time"
)

// RemoteAccount links a user to one remote OAuth client. ID is assigned by
// the store.
type RemoteAccount struct {
	ID        int64
	UserID    int64
	ClientID  string
	ExtraData JSONMap
	Created   time.Time
	Updated   time.Time
}

func NewRemoteAccount(userID int64, clientID string, now time.Time) *RemoteAccount {
	return &RemoteAccount{
		UserID:    userID,
		ClientID:  clientID,
		ExtraData: JSONMap{},
		Created:   now,
		Updated:   now,
	}
}

// RepoSnapshot is one entry of an account's extra_data.repos map.
type RepoSnapshot struct {
	ID            string `json:"id"`
	FullName      string `json:"full_name"`
	Description   string `json:"description"`
	DefaultBranch string `json:"default_branch"`
}

// SnapshotKey is the extra_data.repos key of an external repository id.
func SnapshotKey(githubID int64) string {
	return strconv.FormatInt(githubID, 10)
}

// SetSnapshot stores repos and the sync time in the account's extra_data.
func (a *RemoteAccount) SetSnapshot(repos map[string]RepoSnapshot, lastSync time.Time) {
	if a.ExtraData == nil {
		a.ExtraData = JSONMap{}
	}
	entries := make(map[string]any, len(repos))
	for key, repo := range repos {
		entries[key] = map[string]any{
			"id":             repo.ID,
			"full_name":      repo.FullName,
			"description":    repo.Description,
			"default_branch": repo.DefaultBranch,
		}
	}
	a.ExtraData["repos"] = entries
	a.ExtraData["last_sync"] = lastSync.UTC().Format(time.RFC3339Nano)
}

// SnapshotRepos returns the extra_data.repos entries, or nil when absent.
func (a *RemoteAccount) SnapshotRepos() map[string]any {
	repos, _ := a.ExtraData["repos"].(map[string]any)
	return repos
}
