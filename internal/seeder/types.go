package seeder

import (
	"time"

	"github.com/Rana718/ghseed/internal/config"
	"github.com/Rana718/ghseed/internal/models"
)

// Plan is the input of one pure dataset build.
type Plan struct {
	Config config.SeedConfig
	// FirstUserID is the id of the first generated user; later users follow
	// sequentially.
	FirstUserID int64
	// Now stamps created, updated and last_sync.
	Now time.Time
}

// Dataset is everything one run persists, in insertion order per table.
type Dataset struct {
	Users          []*models.User
	Repositories   []*models.Repository
	RemoteAccounts []*models.RemoteAccount
	Releases       []*models.Release
	// Generated counts every repository that was fabricated, staged or not.
	Generated int
	// NextExternalID is the sequential counter after the run. With the
	// random strategy it is the configured start, unchanged.
	NextExternalID int64
}

// SnapshotEntries is the total number of repos entries across all accounts.
func (d *Dataset) SnapshotEntries() int {
	n := 0
	for _, a := range d.RemoteAccounts {
		n += len(a.SnapshotRepos())
	}
	return n
}

// Result summarises a committed seed run.
type Result struct {
	Users           int           `json:"users" yaml:"users"`
	Repositories    int           `json:"repositories" yaml:"repositories"`
	RemoteAccounts  int           `json:"remote_accounts" yaml:"remote_accounts"`
	Releases        int           `json:"releases" yaml:"releases"`
	SnapshotEntries int           `json:"snapshot_entries" yaml:"snapshot_entries"`
	FirstUserID     int64         `json:"first_user_id" yaml:"first_user_id"`
	NextExternalID  int64         `json:"next_external_id" yaml:"next_external_id"`
	Purged          bool          `json:"purged" yaml:"purged"`
	Duration        time.Duration `json:"duration" yaml:"duration"`
}
