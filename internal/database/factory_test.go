package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rana718/ghseed/internal/database/postgres"
)

func TestNewAdapter(t *testing.T) {
	tests := []struct {
		provider string
		driver   string
		want     string
	}{
		{"postgresql", "", "postgresql"},
		{"postgres", "pq", "postgresql"},
		{"mysql", "", "mysql"},
		{"sqlite", "", "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.provider+"/"+tt.driver, func(t *testing.T) {
			a, err := NewAdapter(tt.provider, tt.driver)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Provider())
			assert.NotEmpty(t, a.SchemaSQL())
		})
	}

	a, err := NewAdapter("postgresql", "pq")
	require.NoError(t, err)
	assert.IsType(t, &postgres.PQAdapter{}, a)
}

func TestNewAdapterUnknownProvider(t *testing.T) {
	_, err := NewAdapter("oracle", "")
	assert.ErrorContains(t, err, "oracle")
}
