package cmd

import (
	"log/slog"
	"time"

	httpadapter "oms/internal/adapters/in/http"
	"oms/internal/adapters/out/metrics"
	"oms/internal/adapters/out/postgres"
	"oms/internal/adapters/out/postgres/orderrepo"
	"oms/internal/core/application/usecases/commands"
	"oms/internal/core/application/usecases/queries"
	"oms/internal/core/ports"
	"oms/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	metrics    *metrics.Metrics
	uowFactory ports.UnitOfWorkFactory
	reader     queries.OrderReader
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	m := metrics.New()
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		metrics:    m,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, m),
		reader:     orderrepo.NewGormOrderRepository(gormDB, nil),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), time.Now, c.config.OrderNumberMaxAttempts, c.logger)
	return &h
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() *commands.UpdateOrderCommandHandler {
	h := commands.NewUpdateOrderCommandHandler(c.orderUoWFactory(), time.Now, c.logger)
	return &h
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() *commands.CancelOrderCommandHandler {
	h := commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), time.Now, c.logger)
	return &h
}

func (c *CompositionRoot) CreateExpireOrdersCommandHandler() *commands.ExpireOrdersCommandHandler {
	h := commands.NewExpireOrdersCommandHandler(c.orderUoWFactory(), time.Now, c.logger)
	return &h
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateListUserOrdersQueryHandler() queries.ListUserOrdersQueryHandler {
	return queries.NewListUserOrdersQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateListActiveOrdersQueryHandler() queries.ListActiveOrdersQueryHandler {
	return queries.NewListActiveOrdersQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:      c.CreateCreateOrderCommandHandler(),
		UpdateOrder:      c.CreateUpdateOrderCommandHandler(),
		CancelOrder:      c.CreateCancelOrderCommandHandler(),
		GetOrder:         c.CreateGetOrderQueryHandler(),
		ListUserOrders:   c.CreateListUserOrdersQueryHandler(),
		ListActiveOrders: c.CreateListActiveOrdersQueryHandler(),
		ListOrders:       c.CreateListOrdersQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateExpireOrdersCommandHandler(), c.config.OrderExpirySchedule, c.logger)
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
