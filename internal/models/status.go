package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ReleaseStatus is the state of a release. The zero value is invalid.
type ReleaseStatus struct {
	name     string
	code     string
	title    string
	icon     string
	color    string
	terminal bool
}

var (
	// StatusReceived: received and pending processing.
	StatusReceived = ReleaseStatus{"RECEIVED", "R", "Received", "spinner loading icon", "warning", false}
	// StatusProcessing: still being processed.
	StatusProcessing = ReleaseStatus{"PROCESSING", "P", "Processing", "spinner loading icon", "warning", false}
	// StatusPublished: successfully processed and published.
	StatusPublished = ReleaseStatus{"PUBLISHED", "D", "Published", "check icon", "positive", true}
	// StatusFailed: processing has failed.
	StatusFailed = ReleaseStatus{"FAILED", "F", "Failed", "times icon", "negative", true}
	// StatusDeleted: the release has been deleted.
	StatusDeleted = ReleaseStatus{"DELETED", "E", "Deleted", "times icon", "negative", true}
)

// ReleaseStatuses lists every status in declaration order.
var ReleaseStatuses = []ReleaseStatus{
	StatusReceived,
	StatusProcessing,
	StatusPublished,
	StatusFailed,
	StatusDeleted,
}

// ParseReleaseStatus looks a status up by its symbolic name, e.g. "PUBLISHED".
func ParseReleaseStatus(name string) (ReleaseStatus, error) {
	for _, s := range ReleaseStatuses {
		if s.name == name {
			return s, nil
		}
	}
	return ReleaseStatus{}, fmt.Errorf("unknown release status: %q", name)
}

// ReleaseStatusFromCode looks a status up by its stored code letter.
func ReleaseStatusFromCode(code string) (ReleaseStatus, error) {
	for _, s := range ReleaseStatuses {
		if s.code == code {
			return s, nil
		}
	}
	return ReleaseStatus{}, fmt.Errorf("unknown release status code: %q", code)
}

func (s ReleaseStatus) Name() string  { return s.name }
func (s ReleaseStatus) Code() string  { return s.code }
func (s ReleaseStatus) Title() string { return s.title }

// Icon is the font icon token shown next to the status.
func (s ReleaseStatus) Icon() string { return s.icon }

// Color is the UI color token for the status.
func (s ReleaseStatus) Color() string { return s.color }

// IsTerminal reports whether no further processing is expected.
func (s ReleaseStatus) IsTerminal() bool { return s.terminal }

// IsValid reports whether s is one of the declared statuses.
func (s ReleaseStatus) IsValid() bool { return s.code != "" }

// Equal compares by code letter, so StatusPublished.Equal("D") holds.
func (s ReleaseStatus) Equal(code string) bool {
	return s.code == code
}

// String returns the code letter.
func (s ReleaseStatus) String() string {
	return s.code
}

func (s ReleaseStatus) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid release status")
	}
	return s.code, nil
}

func (s *ReleaseStatus) Scan(src any) error {
	var code string
	switch v := src.(type) {
	case string:
		code = v
	case []byte:
		code = string(v)
	default:
		return fmt.Errorf("cannot scan %T into ReleaseStatus", src)
	}
	parsed, err := ReleaseStatusFromCode(code)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s ReleaseStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.code)
}

func (s *ReleaseStatus) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	parsed, err := ReleaseStatusFromCode(code)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
