package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/gravadigital/community-api/internal/config"
	"github.com/gravadigital/community-api/internal/logger"
)

// Container groups the PostgreSQL repositories around one connection pool
type Container struct {
	db             *gorm.DB
	log            *log.Logger
	eventRepo      *PostgresEventRepository
	profileRepo    *PostgresProfileRepository
	attendanceRepo *PostgresAttendanceRepository
}

// NewContainer connects, migrates and health-checks the database
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.Repository("postgres_container")
	log.Info("Initializing PostgreSQL repository container...")

	db, err := Connect(cfg)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		log.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	container := NewContainerWithDB(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := container.Health(ctx); err != nil {
		log.Error("Container health check failed", "error", err)
		return nil, fmt.Errorf("container health check failed: %w", err)
	}

	log.Info("PostgreSQL repository container initialized successfully")
	return container, nil
}

// NewContainerWithDB creates a container with an existing database connection
func NewContainerWithDB(db *gorm.DB) *Container {
	return &Container{
		db:             db,
		log:            logger.Repository("postgres_container"),
		eventRepo:      NewPostgresEventRepository(db),
		profileRepo:    NewPostgresProfileRepository(db),
		attendanceRepo: NewPostgresAttendanceRepository(db),
	}
}

// Events returns the event repository
func (c *Container) Events() *PostgresEventRepository {
	return c.eventRepo
}

// Profiles returns the profile repository
func (c *Container) Profiles() *PostgresProfileRepository {
	return c.profileRepo
}

// Attendance returns the RSVP store
func (c *Container) Attendance() *PostgresAttendanceRepository {
	return c.attendanceRepo
}

// Health pings the database and checks that every table is readable
func (c *Container) Health(ctx context.Context) error {
	c.log.Debug("Performing container health check...")

	if err := HealthCheck(ctx, c.db); err != nil {
		c.log.Error("Database health check failed", "error", err)
		return fmt.Errorf("database health check failed: %w", err)
	}

	metrics := GetDatabaseMetrics(c.db)
	c.log.Debug("Database connection metrics",
		"open_connections", metrics.OpenConnections,
		"in_use_connections", metrics.InUseConnections,
		"idle_connections", metrics.IdleConnections)

	for _, table := range []string{"events", "profiles", "event_attendance"} {
		var count int64
		if err := c.db.WithContext(ctx).Table(table).Limit(1).Count(&count).Error; err != nil {
			c.log.Error("Repository health check failed", "table", table, "error", err)
			return fmt.Errorf("table %s health check failed: %w", table, err)
		}
		c.log.Debug("Repository health check passed", "table", table)
	}

	return nil
}

// Close shuts down the connection pool
func (c *Container) Close() error {
	c.log.Info("Closing PostgreSQL repository container...")

	if c.db == nil {
		c.log.Warn("Database connection is nil, nothing to close")
		return nil
	}

	if err := Close(c.db); err != nil {
		c.log.Error("Failed to close database connection", "error", err)
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	c.db = nil
	c.log.Info("PostgreSQL repository container closed successfully")
	return nil
}

// DB returns the underlying connection for tooling such as cmd/migrate
func (c *Container) DB() *gorm.DB {
	return c.db
}
