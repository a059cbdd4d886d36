package database

import (
	"fmt"

	"github.com/Rana718/ghseed/internal/database/mysql"
	"github.com/Rana718/ghseed/internal/database/postgres"
	"github.com/Rana718/ghseed/internal/database/sqlite"
)

// NewAdapter returns the adapter for provider. driver only matters for
// PostgreSQL, where "pq" selects lib/pq instead of pgx.
func NewAdapter(provider, driver string) (DatabaseAdapter, error) {
	switch provider {
	case "postgresql", "postgres":
		if driver == "pq" {
			return postgres.NewPQ(), nil
		}
		return postgres.New(), nil
	case "mysql":
		return mysql.New(), nil
	case "sqlite", "sqlite3":
		return sqlite.New(), nil
	default:
		return nil, fmt.Errorf("unsupported database provider: %s", provider)
	}
}
