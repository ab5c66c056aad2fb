package cmd

import (
	"log/slog"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"supplyflow/internal/adapters/in/http"
	"supplyflow/internal/adapters/out/advisory"
	"supplyflow/internal/adapters/out/kafka"
	"supplyflow/internal/adapters/out/postgres"
	"supplyflow/internal/adapters/out/rediscatalog"
	"supplyflow/internal/core/application/usecases/commands"
	"supplyflow/internal/core/application/usecases/queries"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/core/ports"
	"supplyflow/internal/jobs"
	"supplyflow/internal/notifications"
)

const defaultCatalogCacheTTL = 5 * time.Minute

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	policy     services.AccessPolicy
	advisor    advisory.LocalAdvisor
	catalog    ports.CatalogLookup
	sink       *kafka.NotificationSink
	dispatcher *notifications.Dispatcher
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	sink := kafka.NewNotificationSink([]string{config.KafkaHost}, config.KafkaNotificationTopic)

	root := CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:     services.NewAccessPolicy(),
		advisor:    advisory.NewLocalAdvisor(),
		sink:       sink,
		logger:     logger,
	}

	root.dispatcher = notifications.NewDispatcher(
		root.notificationUoWFactory(), sink, logger)

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     config.RedisHost,
		Password: config.RedisPassword,
	})
	root.catalog = rediscatalog.NewCachedCatalogLookup(
		rediscatalog.OptimisticCatalogLookup{},
		redisClient,
		catalogCacheTTL(config),
		logger,
	)

	return root
}

func catalogCacheTTL(config Config) time.Duration {
	seconds, err := strconv.Atoi(config.CatalogCacheTTLSeconds)
	if err != nil || seconds <= 0 {
		return defaultCatalogCacheTTL
	}
	return time.Duration(seconds) * time.Second
}

// Close releases outbound connections.
func (c *CompositionRoot) Close() error {
	return c.sink.Close()
}

// CreateHTTPHandlers wires every use case behind the HTTP surface.
func (c *CompositionRoot) CreateHTTPHandlers() http.Handlers {
	return http.Handlers{
		CreateOrder:          commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.policy),
		AdvanceOrder:         commands.NewAdvanceOrderCommandHandler(c.orderUoWFactory(), c.policy, c.dispatcher),
		AssignDelivery:       commands.NewAssignDeliveryCommandHandler(c.orderUoWFactory(), c.policy),
		CompleteDelivery:     commands.NewCompleteDeliveryCommandHandler(c.orderUoWFactory(), c.policy, c.dispatcher),
		OpenDispute:          commands.NewOpenDisputeCommandHandler(c.disputeUoWFactory(), c.policy, c.dispatcher),
		AddDisputeMessage:    commands.NewAddDisputeMessageCommandHandler(c.disputeUoWFactory(), c.policy, c.dispatcher),
		AcceptSuggestion:     commands.NewAcceptSuggestionCommandHandler(c.disputeUoWFactory(), c.policy, c.advisor, c.dispatcher),
		ResolveDispute:       commands.NewResolveDisputeCommandHandler(c.disputeUoWFactory(), c.policy, c.dispatcher),
		SubmitReview:         commands.NewSubmitReviewCommandHandler(c.reviewUoWFactory(), c.policy, c.dispatcher),
		MarkNotificationRead: commands.NewMarkNotificationReadCommandHandler(c.notificationUoWFactory(), c.policy),

		DescribeDelivery:    queries.NewDescribeDeliveryQueryHandler(c.gormDB),
		AskDeliveryQuestion: queries.NewAskDeliveryQuestionQueryHandler(c.orderRepository(), c.advisor),
		ReorderItems:        queries.NewReorderItemsQueryHandler(c.gormDB, c.catalog),
		CanReview:           queries.NewCanReviewQueryHandler(c.gormDB),
		ListNotifications:   queries.NewListNotificationsQueryHandler(c.gormDB),
	}
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.notificationUoWFactory(), c.dispatcher, c.logger)
}

// orderRepository builds a standalone repository for read paths that work on
// the aggregate outside a transaction.
func (c *CompositionRoot) orderRepository() ports.OrderRepository {
	uow := c.uowFactory.Create()
	return uow.OrderRepository()
}

// The gorm unit of work satisfies each command-side UoW interface
// structurally, but its factory returns the ports type, so every handler gets
// a thin adapter narrowing the factory to the interface it expects.

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) disputeUoWFactory() commands.DisputeUoWFactory {
	return FuncDisputeUoWFactory(func() commands.DisputeUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) reviewUoWFactory() commands.ReviewUoWFactory {
	return FuncReviewUoWFactory(func() commands.ReviewUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDisputeUoWFactory func() commands.DisputeUoW

func (f FuncDisputeUoWFactory) Create() commands.DisputeUoW {
	return f()
}

type FuncReviewUoWFactory func() commands.ReviewUoW

func (f FuncReviewUoWFactory) Create() commands.ReviewUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
