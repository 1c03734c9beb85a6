// Package storage selects the repository backend the API runs on.
package storage

import (
	"context"
	"fmt"

	"github.com/gravadigital/community-api/internal/config"
	"github.com/gravadigital/community-api/internal/domain/attendance"
	"github.com/gravadigital/community-api/internal/domain/event"
	"github.com/gravadigital/community-api/internal/domain/member"
	"github.com/gravadigital/community-api/internal/storage/memory"
	"github.com/gravadigital/community-api/internal/storage/postgres"
)

// StorageType represents the type of storage backend
type StorageType string

const (
	// StorageTypePostgres represents PostgreSQL storage
	StorageTypePostgres StorageType = "postgres"
	// StorageTypeMemory keeps everything in process; data is lost on exit
	StorageTypeMemory StorageType = "memory"
)

// Repositories is the backend-neutral view of a storage container
type Repositories struct {
	Events     event.Repository
	Profiles   member.Repository
	Attendance attendance.Store

	health func(context.Context) error
	close  func() error
}

// Health checks the backend is reachable
func (r *Repositories) Health(ctx context.Context) error {
	if r.health == nil {
		return nil
	}
	return r.health(ctx)
}

// Close releases the backend's resources
func (r *Repositories) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// FromMemory wraps an in-memory container
func FromMemory(c *memory.Container) *Repositories {
	return &Repositories{
		Events:     c.Events(),
		Profiles:   c.Profiles(),
		Attendance: c.Attendance(),
		health:     c.Health,
		close:      c.Close,
	}
}

// FromPostgres wraps a PostgreSQL container
func FromPostgres(c *postgres.Container) *Repositories {
	return &Repositories{
		Events:     c.Events(),
		Profiles:   c.Profiles(),
		Attendance: c.Attendance(),
		health:     c.Health,
		close:      c.Close,
	}
}

// Factory provides a factory pattern for creating storage containers
type Factory struct {
	storageType StorageType
}

// NewFactory creates a new storage factory
func NewFactory(storageType StorageType) *Factory {
	return &Factory{
		storageType: storageType,
	}
}

// CreateContainer creates a storage container based on the configured type
func (f *Factory) CreateContainer(cfg *config.Config) (*Repositories, error) {
	switch f.storageType {
	case StorageTypePostgres:
		c, err := postgres.NewContainer(cfg)
		if err != nil {
			return nil, err
		}
		return FromPostgres(c), nil
	case StorageTypeMemory:
		return FromMemory(memory.NewContainer()), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", f.storageType)
	}
}

// GetSupportedTypes returns a list of supported storage types
func GetSupportedTypes() []StorageType {
	return []StorageType{
		StorageTypePostgres,
		StorageTypeMemory,
	}
}

// ValidateStorageType validates if a storage type is supported
func ValidateStorageType(storageType string) (StorageType, error) {
	st := StorageType(storageType)

	for _, supported := range GetSupportedTypes() {
		if st == supported {
			return st, nil
		}
	}

	return "", fmt.Errorf("unsupported storage type: %s. Supported types: %v", storageType, GetSupportedTypes())
}

// DefaultFactory returns a factory configured with the default storage type
func DefaultFactory() *Factory {
	return NewFactory(StorageTypePostgres)
}
