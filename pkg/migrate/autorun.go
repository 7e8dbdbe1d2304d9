package migrate

import (
	"context"
	"database/sql"
	"os"

	"github.com/mypartsrunner/delivery-backend/pkg/config"
	"github.com/mypartsrunner/delivery-backend/pkg/logger"
)

// MaybeRunDev applies pending migrations on startup, but only in development
// and only when the auto-migrate feature flag is set. Production deployments
// run the migrate binary explicitly.
func MaybeRunDev(ctx context.Context, cfg *config.Config, db *sql.DB, log *logger.Logger) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	dir := DefaultDir
	if _, err := os.Stat(dir); err != nil {
		if log != nil {
			log.Warn(ctx, "skipping auto-migrate, migrations dir not found: "+dir)
		}
		return nil
	}

	if log != nil {
		log.Info(ctx, "running auto-migrate (dev)")
	}
	return Run(ctx, db, dir, "up")
}
