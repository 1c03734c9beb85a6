package migrations

import "gorm.io/gorm"

var updatedAtTables = []string{"profiles", "events", "event_attendance"}

// migration004Up creates the updated_at trigger, foreign keys and checks
func migration004Up(db *gorm.DB) error {
	if err := db.Exec(`
        CREATE OR REPLACE FUNCTION touch_updated_at()
        RETURNS TRIGGER AS $$
        BEGIN
            NEW.updated_at = CURRENT_TIMESTAMP;
            RETURN NEW;
        END;
        $$ LANGUAGE plpgsql
    `).Error; err != nil {
		return err
	}

	for _, table := range updatedAtTables {
		trigger := "trigger_" + table + "_updated_at"
		if err := db.Exec("DROP TRIGGER IF EXISTS " + trigger + " ON " + table).Error; err != nil {
			return err
		}
		if err := db.Exec("CREATE TRIGGER " + trigger + " BEFORE UPDATE ON " + table +
			" FOR EACH ROW EXECUTE FUNCTION touch_updated_at()").Error; err != nil {
			return err
		}
	}

	constraints := []struct {
		table string
		name  string
		sql   string
	}{
		{"events", "valid_event_dates", "CHECK (ends_at >= starts_at)"},
		{"profiles", "valid_dob", "CHECK (dob IS NULL OR dob <= CURRENT_DATE)"},
		{"event_attendance", "fk_event_attendance_event", "FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE"},
		{"event_attendance", "fk_event_attendance_user", "FOREIGN KEY (user_id) REFERENCES profiles(id) ON DELETE CASCADE"},
	}

	for _, c := range constraints {
		if err := db.Exec("ALTER TABLE " + c.table + " DROP CONSTRAINT IF EXISTS " + c.name).Error; err != nil {
			return err
		}
		if err := db.Exec("ALTER TABLE " + c.table + " ADD CONSTRAINT " + c.name + " " + c.sql).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration004Down drops constraints and triggers
func migration004Down(db *gorm.DB) error {
	for _, table := range updatedAtTables {
		if err := db.Exec("DROP TRIGGER IF EXISTS trigger_" + table + "_updated_at ON " + table).Error; err != nil {
			return err
		}
	}

	for _, stmt := range []string{
		"ALTER TABLE event_attendance DROP CONSTRAINT IF EXISTS fk_event_attendance_user",
		"ALTER TABLE event_attendance DROP CONSTRAINT IF EXISTS fk_event_attendance_event",
		"ALTER TABLE profiles DROP CONSTRAINT IF EXISTS valid_dob",
		"ALTER TABLE events DROP CONSTRAINT IF EXISTS valid_event_dates",
		"DROP FUNCTION IF EXISTS touch_updated_at CASCADE",
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
