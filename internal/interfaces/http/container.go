package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	complianceUsecases "mealplan/internal/application/compliance/usecases"
	"mealplan/internal/infrastructure/config"
	"mealplan/internal/infrastructure/lock"
	"mealplan/internal/infrastructure/repository"
	"mealplan/internal/infrastructure/sequence"
	"mealplan/internal/shared/db"
	"mealplan/internal/shared/logger"
)

// Container holds the infrastructure components, repositories, use cases
// and handlers, wired together. Shutdown releases what it opened.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	txManager *db.TransactionManager
	locker    lock.Locker
	allocator *sequence.InvoiceNumberAllocator
	catalog   *complianceUsecases.CatalogProvider

	repos *repositories
	ucs   *UseCases
	hdlrs *allHandlers
}

// NewContainer wires every component against db. It fails only when the
// configured lock backend cannot be reached.
func NewContainer(gdb *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine:    gin.New(),
		db:        gdb,
		cfg:       cfg,
		log:       log,
		txManager: db.NewTransactionManager(gdb),
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initUseCases()
	c.initHandlers()

	return c, nil
}

func (c *Container) initInfrastructure() error {
	ttl := time.Duration(c.cfg.Invoicing.LockTTLMs) * time.Millisecond

	switch strings.ToLower(c.cfg.Invoicing.LockDriver) {
	case "redis":
		c.redis = redis.NewClient(&redis.Options{
			Addr:     c.cfg.Redis.GetAddr(),
			Password: c.cfg.Redis.Password,
			DB:       c.cfg.Redis.DB,
		})
		c.locker = lock.NewRedisLocker(c.redis, ttl, c.log.Named("lock"))
		c.log.Infow("invoice sequence lock uses redis", "addr", c.cfg.Redis.GetAddr())
	case "", "memory":
		c.locker = lock.NewMemoryLocker()
	default:
		return fmt.Errorf("unknown invoicing.lock_driver %q", c.cfg.Invoicing.LockDriver)
	}

	c.allocator = sequence.NewInvoiceNumberAllocator(c.db, c.locker, c.cfg.Invoicing, c.log.Named("sequence"))
	c.catalog = complianceUsecases.NewCatalogProvider(repository.NewCatalogRepository(c.db, c.log), c.log.Named("catalog"))
	return nil
}

// UseCases exposes the wired use cases to the CLI commands.
func (c *Container) UseCases() *UseCases {
	return c.ucs
}

// Catalog returns the shared rule catalog provider.
func (c *Container) Catalog() *complianceUsecases.CatalogProvider {
	return c.catalog
}

// Shutdown closes the Redis client when one was opened.
func (c *Container) Shutdown() error {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
	}
	return nil
}
