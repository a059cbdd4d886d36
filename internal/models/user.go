package models

import "time"

// DefaultUserVersion is the optimistic-concurrency counter of a freshly
// seeded user.
const DefaultUserVersion = 2

type User struct {
	ID          int64
	Username    string
	DisplayName string
	Email       string
	Domain      string
	Password    string
	Active      bool
	ConfirmedAt *time.Time
	VersionID   int
	Profile     JSONMap
	Preferences JSONMap
	BlockedAt   *time.Time
	VerifiedAt  *time.Time
	Created     time.Time
	Updated     time.Time
}

// NewUser builds an active user with empty password and the default profile
// and preferences.
func NewUser(id int64, username, domain string, now time.Time) *User {
	return &User{
		ID:          id,
		Username:    username,
		DisplayName: username,
		Email:       username + "@" + domain,
		Domain:      domain,
		Password:    "",
		Active:      true,
		VersionID:   DefaultUserVersion,
		Profile:     DefaultProfile(),
		Preferences: DefaultPreferences(),
		Created:     now,
		Updated:     now,
	}
}

func DefaultProfile() JSONMap {
	return JSONMap{
		"full_name":    "",
		"affiliations": "",
	}
}

func DefaultPreferences() JSONMap {
	return JSONMap{
		"locale":           "en",
		"timezone":         "Europe/Zurich",
		"visibility":       "public",
		"email_visibility": "restricted",
	}
}
