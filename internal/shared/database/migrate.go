package database

import (
	"padang/internal/teams"

	"gorm.io/gorm"
)

// Migrate creates the reference remote store schema
func Migrate(db *gorm.DB) error {
	if err := MigrateExtensions(db); err != nil {
		return err
	}
	if err := db.AutoMigrate(
		&teams.Team{},
		&teams.Player{},
	); err != nil {
		return err
	}
	return MigrateConstraints(db)
}
