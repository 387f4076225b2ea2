package postgres

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/lexatlas/precedent-intelligence/internal/config"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/monitoring/logging"
	apperrors "github.com/lexatlas/precedent-intelligence/pkg/errors"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies all pending schema migrations.  Already being at the latest
// version is not an error.
func Migrate(cfg config.PostgresConfig, logger logging.Logger) error {
	if logger == nil {
		logger = logging.Default()
	}

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "loading embedded migrations")
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, BuildDSN(cfg))
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "initializing migrator")
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("database schema already current")
			return nil
		}
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "applying migrations")
	}

	version, dirty, err := m.Version()
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "reading migration version")
	}
	logger.Info("database schema migrated",
		logging.Any("version", version),
		logging.Bool("dirty", dirty))
	return nil
}
