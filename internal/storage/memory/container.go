// Package memory provides map-backed repositories with the same contracts as
// the postgres ones. They back the test suites and STORAGE_TYPE=memory.
package memory

import "context"

// Container groups the in-memory repositories
type Container struct {
	events     *EventRepository
	profiles   *ProfileRepository
	attendance *AttendanceStore
}

func NewContainer() *Container {
	return &Container{
		events:     NewEventRepository(),
		profiles:   NewProfileRepository(),
		attendance: NewAttendanceStore(),
	}
}

// Events returns the event repository
func (c *Container) Events() *EventRepository {
	return c.events
}

// Profiles returns the profile repository
func (c *Container) Profiles() *ProfileRepository {
	return c.profiles
}

// Attendance returns the RSVP store
func (c *Container) Attendance() *AttendanceStore {
	return c.attendance
}

func (c *Container) Health(context.Context) error { return nil }

func (c *Container) Close() error { return nil }
