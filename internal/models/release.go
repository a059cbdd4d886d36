package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Release is a tagged release event of a repository.
type Release struct {
	ID           uuid.UUID
	ReleaseID    *int64
	Tag          string
	Errors       JSONMap
	RepositoryID uuid.UUID
	// RecordID is a weak reference; no foreign key backs it.
	RecordID *uuid.UUID
	Status   ReleaseStatus
	Created  time.Time
	Updated  time.Time
}

func NewRelease(repositoryID uuid.UUID, releaseID int64, tag string, status ReleaseStatus, now time.Time) *Release {
	return &Release{
		ID:           uuid.New(),
		ReleaseID:    &releaseID,
		Tag:          tag,
		RepositoryID: repositoryID,
		Status:       status,
		Created:      now,
		Updated:      now,
	}
}

func (r *Release) String() string {
	releaseID := "None"
	if r.ReleaseID != nil {
		releaseID = fmt.Sprintf("%d", *r.ReleaseID)
	}
	return fmt.Sprintf("<Release %s:%s (%s)>", r.Tag, releaseID, r.Status.Title())
}
