package migrations

import "gorm.io/gorm"

// migration001Up creates extensions and custom types
func migration001Up(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return err
	}

	return db.Exec(`
        DO $$ BEGIN
            CREATE TYPE attendance_status AS ENUM (
                'going',
                'interested'
            );
        EXCEPTION
            WHEN duplicate_object THEN NULL;
        END $$
    `).Error
}

// migration001Down drops custom types
func migration001Down(db *gorm.DB) error {
	// NOTE: We don't drop the UUID extension as it might be used by other applications
	return db.Exec("DROP TYPE IF EXISTS attendance_status CASCADE").Error
}
