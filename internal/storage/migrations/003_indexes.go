package migrations

import "gorm.io/gorm"

var indexes = []struct {
	name string
	sql  string
}{
	{"idx_profiles_dob", "CREATE INDEX IF NOT EXISTS idx_profiles_dob ON profiles(dob) WHERE dob IS NOT NULL"},
	{"idx_events_starts_at", "CREATE INDEX IF NOT EXISTS idx_events_starts_at ON events(starts_at)"},
	{"idx_events_ends_at", "CREATE INDEX IF NOT EXISTS idx_events_ends_at ON events(ends_at)"},
	// Counting going members per event is the hottest read.
	{"idx_event_attendance_event_status", "CREATE INDEX IF NOT EXISTS idx_event_attendance_event_status ON event_attendance(event_id, status)"},
	{"idx_event_attendance_user", "CREATE INDEX IF NOT EXISTS idx_event_attendance_user ON event_attendance(user_id)"},
}

// migration003Up creates performance indexes
func migration003Up(db *gorm.DB) error {
	for _, index := range indexes {
		if err := db.Exec(index.sql).Error; err != nil {
			return err
		}
	}
	return nil
}

// migration003Down drops performance indexes
func migration003Down(db *gorm.DB) error {
	for _, index := range indexes {
		if err := db.Exec("DROP INDEX IF EXISTS " + index.name).Error; err != nil {
			return err
		}
	}
	return nil
}
