package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultBranch is recorded for every repository in an account snapshot.
const DefaultBranch = "main"

// Repository is an external code repository, optionally owned by a user.
type Repository struct {
	ID       uuid.UUID
	GitHubID *int64
	// Name is the fully qualified "owner/name".
	Name    string
	UserID  *int64
	Hook    int64
	Created time.Time
	Updated time.Time
}

func NewRepository(githubID int64, name string, userID int64, hook int64, now time.Time) *Repository {
	return &Repository{
		ID:       uuid.New(),
		GitHubID: &githubID,
		Name:     name,
		UserID:   &userID,
		Hook:     hook,
		Created:  now,
		Updated:  now,
	}
}
