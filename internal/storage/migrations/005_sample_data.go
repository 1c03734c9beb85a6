package migrations

import "gorm.io/gorm"

// migration005Up inserts sample data for local development
func migration005Up(db *gorm.DB) error {
	profilesSQL := `
        INSERT INTO profiles (id, full_name, email, dob, avatar_url) VALUES
            ('550e8400-e29b-41d4-a716-446655440001', 'Asha Menon', 'asha@example.org', '1990-03-10', ''),
            ('550e8400-e29b-41d4-a716-446655440002', 'Ravi Kumar', 'ravi@example.org', '1988-07-21', 'avatars/ravi.png'),
            ('550e8400-e29b-41d4-a716-446655440003', 'Meera Nair', 'meera@example.org', '1995-01-01', ''),
            ('550e8400-e29b-41d4-a716-446655440004', 'Priya Shah', 'priya@example.org', '2000-02-29', ''),
            ('550e8400-e29b-41d4-a716-446655440005', NULL, 'pending@example.org', NULL, '')
        ON CONFLICT (email) DO NOTHING
    `

	if err := db.Exec(profilesSQL).Error; err != nil {
		return err
	}

	eventsSQL := `
        INSERT INTO events (id, title, description, location, starts_at, ends_at) VALUES
            ('660e8400-e29b-41d4-a716-446655440000',
             'Monthly Members Meetup',
             'Open evening for members and guests.',
             'Community Hall',
             '2026-11-14 18:00:00+00',
             '2026-11-14 21:00:00+00'),
            ('660e8400-e29b-41d4-a716-446655440001',
             'Annual General Meeting',
             'Yearly report and committee elections.',
             'Main Auditorium',
             '2026-12-05 10:00:00+00',
             '2026-12-05 13:00:00+00')
        ON CONFLICT (id) DO NOTHING
    `

	if err := db.Exec(eventsSQL).Error; err != nil {
		return err
	}

	attendanceSQL := `
        INSERT INTO event_attendance (event_id, user_id, status) VALUES
            ('660e8400-e29b-41d4-a716-446655440000', '550e8400-e29b-41d4-a716-446655440001', 'going'),
            ('660e8400-e29b-41d4-a716-446655440000', '550e8400-e29b-41d4-a716-446655440002', 'interested'),
            ('660e8400-e29b-41d4-a716-446655440001', '550e8400-e29b-41d4-a716-446655440003', 'going')
        ON CONFLICT (event_id, user_id) DO NOTHING
    `

	return db.Exec(attendanceSQL).Error
}

// migration005Down removes sample data
func migration005Down(db *gorm.DB) error {
	statements := []string{
		"DELETE FROM event_attendance WHERE event_id IN ('660e8400-e29b-41d4-a716-446655440000', '660e8400-e29b-41d4-a716-446655440001')",
		"DELETE FROM events WHERE id IN ('660e8400-e29b-41d4-a716-446655440000', '660e8400-e29b-41d4-a716-446655440001')",
		"DELETE FROM profiles WHERE email LIKE '%@example.org'",
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
