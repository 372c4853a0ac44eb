// Package di wires the application's dependencies together.
package di

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mergington-high/activities-api/internal/domain"
	"github.com/mergington-high/activities-api/internal/handler"
	"github.com/mergington-high/activities-api/internal/registry"
	"github.com/mergington-high/activities-api/internal/service"
	"github.com/mergington-high/activities-api/pkg/middleware"
)

// Container holds all dependencies for the activities service
type Container struct {
	// State
	Store *registry.Store

	// Services
	ActivityService service.ActivityService

	// Handlers
	ActivityHandler *handler.ActivityHandler
	HealthHandler   *handler.HealthHandler

	// Middleware
	AuditLogger *middleware.AuditLogger
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	Catalog []domain.Activity
	// AuditDB may be nil; audit entries are then buffered and dropped
	// unless the logger runs in test mode.
	AuditDB     *pgxpool.Pool
	AuditConfig *middleware.AuditConfig
}

// NewContainer creates a new dependency injection container. The roster
// registry is seeded from the fixed catalog; seeding failures abort
// construction.
func NewContainer(cfg *ContainerConfig) (*Container, error) {
	store, err := registry.NewStore(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	c := &Container{Store: store}

	c.ActivityService = service.NewActivityService(c.Store)

	c.ActivityHandler = handler.NewActivityHandler(c.ActivityService)
	c.HealthHandler = handler.NewHealthHandler(c.Store)

	auditConfig := cfg.AuditConfig
	if auditConfig == nil {
		auditConfig = middleware.DefaultAuditConfig(cfg.AuditDB)
	}
	c.AuditLogger = middleware.NewAuditLogger(auditConfig)

	return c, nil
}

// Close releases container-owned resources.
func (c *Container) Close() error {
	if c.AuditLogger != nil {
		return c.AuditLogger.Close()
	}
	return nil
}
