package database

import (
	"gorm.io/gorm"
)

// MigrateExtensions enables the extensions the models' defaults rely on
func MigrateExtensions(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error
}

// MigrateConstraints adds the constraints the booking guarantees rest on
func MigrateConstraints(db *gorm.DB) error {
	// One paid registration per venue slot; pending teams do not hold a slot.
	// AutoMigrate creates it from the model tags, this keeps it in place on
	// databases created before them and drops the older all-status index.
	err := db.Exec(`DROP INDEX IF EXISTS idx_team_venue_slot;`).Error
	if err != nil {
		return err
	}
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_team_venue_slot_paid
		ON teams (venue, slot)
		WHERE payment_status = 'paid';
	`).Error
	if err != nil {
		return err
	}

	// Roster positions are unique within a team
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_team_players_team_position
		ON team_players (team_id, position);
	`).Error
	if err != nil {
		return err
	}

	// Only known payment states are stored
	err = db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_teams_payment_status') THEN
				ALTER TABLE teams
				ADD CONSTRAINT chk_teams_payment_status
				CHECK (payment_status IN ('paid', 'pending'));
			END IF;
		END $$;
	`).Error
	if err != nil {
		return err
	}

	return nil
}
