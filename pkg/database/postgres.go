package database

import (
	"log"

	"github.com/raoc-coder/eventraisehub/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}
	return db
}

// Migrate creates the schema and the indexes gorm tags cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Event{},
		&models.Ticket{},
		&models.Registration{},
		&models.VolunteerShift{},
		&models.VolunteerSignup{},
		&models.Payout{},
		&models.Donation{},
	); err != nil {
		return err
	}

	// A provider reference settles exactly one donation.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_donation_provider_ref
		ON donations (provider, provider_ref)
		WHERE provider_ref <> ''
	`).Error; err != nil {
		return err
	}

	// Counters never go below zero or past their limits.
	for _, stmt := range []string{
		`DO $$ BEGIN
			ALTER TABLE tickets ADD CONSTRAINT chk_ticket_sold
			CHECK (quantity_sold >= 0 AND (quantity_total IS NULL OR quantity_sold <= quantity_total));
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
		`DO $$ BEGIN
			ALTER TABLE volunteer_shifts ADD CONSTRAINT chk_shift_capacity
			CHECK (current_volunteers >= 0 AND current_volunteers <= max_volunteers);
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
