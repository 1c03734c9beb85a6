package memory

import (
	"context"
	"sync"

	"github.com/gravadigital/community-api/internal/domain/attendance"
)

type attendanceKey struct {
	eventID string
	userID  string
}

// AttendanceStore keeps RSVP rows in a map keyed by (event, user), which gives
// it the same uniqueness guarantee as the database table.
type AttendanceStore struct {
	mu   sync.RWMutex
	rows map[attendanceKey]attendance.Status
}

func NewAttendanceStore() *AttendanceStore {
	return &AttendanceStore{
		rows: make(map[attendanceKey]attendance.Status),
	}
}

func (s *AttendanceStore) GetStatus(_ context.Context, eventID, userID string) (attendance.Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows[attendanceKey{eventID, userID}], nil
}

func (s *AttendanceStore) CountGoing(_ context.Context, eventID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for key, status := range s.rows {
		if key.eventID == eventID && status == attendance.StatusGoing {
			count++
		}
	}
	return count, nil
}

func (s *AttendanceStore) Upsert(_ context.Context, eventID, userID string, status attendance.Status) error {
	if !status.Storable() {
		return attendance.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[attendanceKey{eventID, userID}] = status
	return nil
}

func (s *AttendanceStore) Delete(_ context.Context, eventID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, attendanceKey{eventID, userID})
	return nil
}

// Len returns the number of stored rows across all events.
func (s *AttendanceStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}
