package cmd

import (
	"log/slog"

	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/outboxrepo"
	"orders/internal/adapters/out/rabbitmq"
	"orders/internal/adapters/out/rediscache"
	"orders/internal/adapters/out/vendorapi"
	"orders/internal/core/application/eventbus"
	"orders/internal/core/application/eventhandlers"
	"orders/internal/core/application/ordercache"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/ports"
	"orders/internal/jobs"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into the application's handlers. It owns no
// lifecycle; main opens and closes the underlying connections.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	cache      *ordercache.Layer
	vendors    ports.VendorGateway
	registry   *eventbus.Registry
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) CompositionRoot {
	cache := ordercache.NewLayer(
		rediscache.NewRedisCache(redisClient, config.RedisInstance), logger)

	registry := eventbus.NewRegistry(logger)
	eventhandlers.NewCacheInvalidator(cache, logger).Register(registry)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		cache:      cache,
		vendors:    vendorapi.NewGateway(config.VendorsAPIBaseURL),
		registry:   registry,
		logger:     logger,
	}
}

func (c *CompositionRoot) newUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.newUoWFactory(), c.vendors, c.cache)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.newUoWFactory(), c.vendors, c.cache)
}

func (c *CompositionRoot) CreateAddOrderItemCommandHandler() commands.AddOrderItemCommandHandler {
	return commands.NewAddOrderItemCommandHandler(c.newUoWFactory(), c.vendors, c.cache)
}

func (c *CompositionRoot) CreateRemoveOrderItemCommandHandler() commands.RemoveOrderItemCommandHandler {
	return commands.NewRemoveOrderItemCommandHandler(c.newUoWFactory(), c.vendors, c.cache)
}

func (c *CompositionRoot) CreateUpdateItemQuantityCommandHandler() commands.UpdateItemQuantityCommandHandler {
	return commands.NewUpdateItemQuantityCommandHandler(c.newUoWFactory(), c.vendors, c.cache)
}

func (c *CompositionRoot) CreateGetOrderByIDQueryHandler() queries.GetOrderByIDQueryHandler {
	return queries.NewGetOrderByIDQueryHandler(c.gormDB, c.cache, c.vendors, c.logger)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB, c.cache)
}

// CreateJobManager builds the background job set over the given publisher.
// The outbox relay reads outside any business transaction, so it gets its own
// repository bound straight to the pooled connection.
func (c *CompositionRoot) CreateJobManager(publisher ports.EventPublisher) *jobs.JobManager {
	return jobs.NewJobManager(outboxrepo.NewGormOutboxRepository(c.gormDB), publisher, c.logger)
}

// CreateEventConsumer builds the feed consumer bound to every event type with
// a registered handler. Call after all handlers are subscribed.
func (c *CompositionRoot) CreateEventConsumer(config Config, conn *amqp.Connection) (*rabbitmq.Consumer, error) {
	return rabbitmq.NewConsumer(conn, config.RabbitMQExchange, config.RabbitMQQueue, c.registry, c.logger)
}

// FuncUoWFactory adapts a closure to the commands.UoWFactory interface, so the
// concrete factory's ports.UnitOfWork satisfies the narrower commands.UoW.
type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
