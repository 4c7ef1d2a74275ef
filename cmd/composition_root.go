package cmd

import (
	httpin "lastmile/internal/adapters/in/http"
	"lastmile/internal/adapters/out/postgres"
	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/jobs"
	"lastmile/internal/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *zap.Logger
	metrics    *metrics.Metrics
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger, m *metrics.Metrics) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		metrics:    m,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB, logger),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateOrderCommandHandler(f)
	return &h
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() *commands.CreateDeliveryCommandHandler {
	h := commands.NewCreateDeliveryCommandHandler(c.fullUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateApproveDeliveryCommandHandler() *commands.ApproveDeliveryCommandHandler {
	h := commands.NewApproveDeliveryCommandHandler(c.approvalUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateRejectDeliveryCommandHandler() *commands.RejectDeliveryCommandHandler {
	h := commands.NewRejectDeliveryCommandHandler(c.approvalUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() *commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderStatusUoWFactory = FuncOrderStatusUoWFactory(func() commands.OrderStatusUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewUpdateOrderStatusCommandHandler(f)
	return &h
}

func (c *CompositionRoot) CreateUpdateDeliveryCommandHandler() *commands.UpdateDeliveryCommandHandler {
	h := commands.NewUpdateDeliveryCommandHandler(c.fullUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateRemoveOrderFromDeliveryCommandHandler() *commands.RemoveOrderFromDeliveryCommandHandler {
	h := commands.NewRemoveOrderFromDeliveryCommandHandler(c.fullUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateDeleteDeliveryCommandHandler() *commands.DeleteDeliveryCommandHandler {
	h := commands.NewDeleteDeliveryCommandHandler(c.fullUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateGetDeliveriesQueryHandler() queries.GetDeliveriesQueryHandler {
	return queries.NewGetDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnassignedOrdersQueryHandler() queries.GetUnassignedOrdersQueryHandler {
	return queries.NewGetUnassignedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCountDeliveriesByStatusQueryHandler() queries.CountDeliveriesByStatusQueryHandler {
	return queries.NewCountDeliveriesByStatusQueryHandler(c.gormDB)
}

// CreateServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:         c.CreateCreateOrderCommandHandler(),
		CreateDelivery:      c.CreateCreateDeliveryCommandHandler(),
		ApproveDelivery:     c.CreateApproveDeliveryCommandHandler(),
		RejectDelivery:      c.CreateRejectDeliveryCommandHandler(),
		UpdateOrderStatus:   c.CreateUpdateOrderStatusCommandHandler(),
		UpdateDelivery:      c.CreateUpdateDeliveryCommandHandler(),
		RemoveOrder:         c.CreateRemoveOrderFromDeliveryCommandHandler(),
		DeleteDelivery:      c.CreateDeleteDeliveryCommandHandler(),
		GetDeliveries:       c.CreateGetDeliveriesQueryHandler(),
		GetDelivery:         c.CreateGetDeliveryQueryHandler(),
		GetUnassignedOrders: c.CreateGetUnassignedOrdersQueryHandler(),
	}, c.metrics)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateCountDeliveriesByStatusQueryHandler(),
		c.metrics,
		c.config.MetricsRefreshSpec,
		c.logger,
	)
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) approvalUoWFactory() commands.ApprovalUoWFactory {
	return FuncApprovalUoWFactory(func() commands.ApprovalUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderStatusUoWFactory func() commands.OrderStatusUoW

func (f FuncOrderStatusUoWFactory) Create() commands.OrderStatusUoW {
	return f()
}

type FuncApprovalUoWFactory func() commands.ApprovalUoW

func (f FuncApprovalUoWFactory) Create() commands.ApprovalUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
