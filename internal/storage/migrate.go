package storage

import (
	"database/sql"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/carson-networks/vending-server/migrations"
)

// Migrate applies every pending migration and returns the schema version before and after.
func Migrate(db *sql.DB) (uint, uint, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return 0, 0, err
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return 0, 0, err
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return 0, 0, err
	}

	preMigrationVersion, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		preMigrationVersion = 0
	} else if err != nil {
		return 0, 0, err
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return preMigrationVersion, 0, err
	}

	postMigrationVersion, _, err := m.Version()
	if err != nil {
		return preMigrationVersion, 0, err
	}

	return preMigrationVersion, postMigrationVersion, nil
}
