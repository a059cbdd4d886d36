package cmd

import (
	"context"

	"github.com/fatih/color"

	"github.com/Rana718/ghseed/internal/database"
)

// connect opens the adapter named by the loaded configuration.
func connect(ctx context.Context) (database.DatabaseAdapter, error) {
	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, err
	}

	adapter, err := database.NewAdapter(cfg.NormalizedProvider(), cfg.Database.Driver)
	if err != nil {
		return nil, err
	}

	if err := adapter.Connect(ctx, dbURL); err != nil {
		return nil, err
	}
	color.Cyan("🔌 Connected to %s", adapter.Provider())
	return adapter, nil
}
