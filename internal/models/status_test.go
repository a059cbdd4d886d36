package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseStatusLookups(t *testing.T) {
	published, err := ParseReleaseStatus("PUBLISHED")
	require.NoError(t, err)

	assert.Equal(t, "Published", published.Title())
	assert.Equal(t, "check icon", published.Icon())
	assert.Equal(t, "positive", published.Color())
	assert.True(t, published.Equal("D"))
	assert.False(t, published.Equal("P"))
	assert.Equal(t, "D", published.String())
}

func TestReleaseStatusTable(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		title    string
		icon     string
		color    string
		terminal bool
	}{
		{"RECEIVED", "R", "Received", "spinner loading icon", "warning", false},
		{"PROCESSING", "P", "Processing", "spinner loading icon", "warning", false},
		{"PUBLISHED", "D", "Published", "check icon", "positive", true},
		{"FAILED", "F", "Failed", "times icon", "negative", true},
		{"DELETED", "E", "Deleted", "times icon", "negative", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseReleaseStatus(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.code, s.Code())
			assert.Equal(t, tt.title, s.Title())
			assert.Equal(t, tt.icon, s.Icon())
			assert.Equal(t, tt.color, s.Color())
			assert.Equal(t, tt.terminal, s.IsTerminal())

			byCode, err := ReleaseStatusFromCode(tt.code)
			require.NoError(t, err)
			assert.Equal(t, s, byCode)
		})
	}
}

func TestReleaseStatusUnknown(t *testing.T) {
	_, err := ParseReleaseStatus("ARCHIVED")
	assert.Error(t, err)

	_, err = ReleaseStatusFromCode("X")
	assert.Error(t, err)

	var zero ReleaseStatus
	assert.False(t, zero.IsValid())
	_, err = zero.Value()
	assert.Error(t, err)
}

func TestReleaseStatusScanAndJSON(t *testing.T) {
	var s ReleaseStatus
	require.NoError(t, s.Scan([]byte("F")))
	assert.Equal(t, StatusFailed, s)

	v, err := StatusProcessing.Value()
	require.NoError(t, err)
	assert.Equal(t, "P", v)

	data, err := json.Marshal(StatusDeleted)
	require.NoError(t, err)
	assert.JSONEq(t, `"E"`, string(data))

	var decoded ReleaseStatus
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, StatusDeleted, decoded)
}
