package cmd

import (
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/auditrepo"
	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/postgres/fundrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	payments   services.DeferredPaymentPolicy
	retry      commands.RetryPolicy
	config     Config
	logger     *zap.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) (CompositionRoot, error) {
	payments, err := config.DeferredPaymentPolicy()
	if err != nil {
		return CompositionRoot{}, err
	}

	retry := commands.DefaultRetryPolicy()
	if config.LedgerMaxAttempts > 0 {
		retry.MaxAttempts = config.LedgerMaxAttempts
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		payments:   payments,
		retry:      retry,
		config:     config,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) ledgerUoW() commands.LedgerUoWFactory {
	return FuncLedgerUoWFactory(func() commands.LedgerUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) kitchenUoW() commands.KitchenUoWFactory {
	return FuncKitchenUoWFactory(func() commands.KitchenUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) auditUoW() commands.AuditUoWFactory {
	return FuncAuditUoWFactory(func() commands.AuditUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.uow(),
		catalogrepo.NewGormCatalog(c.gormDB),
		c.payments,
		c.retry,
		c.logger.Named("create_order"),
	)
}

func (c *CompositionRoot) CreateTransitionSubOrderCommandHandler() *commands.TransitionSubOrderCommandHandler {
	return commands.NewTransitionSubOrderCommandHandler(c.uow(), c.logger.Named("transition_sub_order"))
}

func (c *CompositionRoot) CreateRecomputeOrderStatusCommandHandler() commands.RecomputeOrderStatusCommandHandler {
	return commands.NewRecomputeOrderStatusCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateRegisterKitchenCommandHandler() *commands.RegisterKitchenCommandHandler {
	return commands.NewRegisterKitchenCommandHandler(c.kitchenUoW(), c.logger.Named("kitchens"))
}

func (c *CompositionRoot) CreateSetKitchenActiveCommandHandler() *commands.SetKitchenActiveCommandHandler {
	return commands.NewSetKitchenActiveCommandHandler(c.kitchenUoW(), c.logger.Named("kitchens"))
}

func (c *CompositionRoot) CreateOpenFundCommandHandler() commands.OpenFundCommandHandler {
	return commands.NewOpenFundCommandHandler(c.ledgerUoW(), c.retry, c.logger.Named("ledger"))
}

func (c *CompositionRoot) CreateCloseFundCommandHandler() commands.CloseFundCommandHandler {
	return commands.NewCloseFundCommandHandler(c.ledgerUoW(), c.retry, c.logger.Named("ledger"))
}

func (c *CompositionRoot) CreateCreditFundCommandHandler() commands.CreditFundCommandHandler {
	return commands.NewCreditFundCommandHandler(c.ledgerUoW(), c.retry, c.logger.Named("ledger"))
}

func (c *CompositionRoot) CreateDebitFundCommandHandler() commands.DebitFundCommandHandler {
	return commands.NewDebitFundCommandHandler(c.ledgerUoW(), c.retry, c.logger.Named("ledger"))
}

func (c *CompositionRoot) CreateRefundFundCommandHandler() commands.RefundFundCommandHandler {
	return commands.NewRefundFundCommandHandler(c.ledgerUoW(), c.retry, c.logger.Named("ledger"))
}

func (c *CompositionRoot) CreatePurgeAuditEventsCommandHandler() *commands.PurgeAuditEventsCommandHandler {
	return commands.NewPurgeAuditEventsCommandHandler(c.auditUoW(), c.logger.Named("audit"))
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetFundQueryHandler() queries.GetFundQueryHandler {
	return queries.NewGetFundQueryHandler(fundrepo.NewGormFundRepository(c.gormDB))
}

func (c *CompositionRoot) CreateFindAuditEventsQueryHandler() queries.FindAuditEventsQueryHandler {
	return queries.NewFindAuditEventsQueryHandler(auditrepo.NewGormAuditRepository(c.gormDB))
}

func (c *CompositionRoot) CreateCountOrderEventsQueryHandler() queries.CountOrderEventsQueryHandler {
	return queries.NewCountOrderEventsQueryHandler(auditrepo.NewGormAuditRepository(c.gormDB))
}

func (c *CompositionRoot) CreateGetKitchenLatencyQueryHandler() queries.GetKitchenLatencyQueryHandler {
	return queries.NewGetKitchenLatencyQueryHandler(auditrepo.NewGormAuditRepository(c.gormDB))
}

// CreateHTTPServer wires every use case exposed over HTTP.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		TransitionSubOrder:   c.CreateTransitionSubOrderCommandHandler(),
		RecomputeOrderStatus: c.CreateRecomputeOrderStatusCommandHandler(),
		RegisterKitchen:      c.CreateRegisterKitchenCommandHandler(),
		SetKitchenActive:     c.CreateSetKitchenActiveCommandHandler(),
		OpenFund:             c.CreateOpenFundCommandHandler(),
		CloseFund:            c.CreateCloseFundCommandHandler(),
		CreditFund:           c.CreateCreditFundCommandHandler(),
		DebitFund:            c.CreateDebitFundCommandHandler(),
		RefundFund:           c.CreateRefundFundCommandHandler(),

		GetOrder:          c.CreateGetOrderQueryHandler(),
		GetOpenOrders:     c.CreateGetOpenOrdersQueryHandler(),
		CountOrderEvents:  c.CreateCountOrderEventsQueryHandler(),
		FindAuditEvents:   c.CreateFindAuditEventsQueryHandler(),
		GetKitchenLatency: c.CreateGetKitchenLatencyQueryHandler(),
		GetFund:           c.CreateGetFundQueryHandler(),
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	jm := jobs.NewJobManager()
	jm.Add("audit retention", jobs.NewAuditRetentionJob(
		c.CreatePurgeAuditEventsCommandHandler(),
		c.config.AuditRetention,
		c.config.AuditRetentionSchedule,
		c.config.AuditRetentionTimeout,
		c.logger,
	))
	return jm
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncKitchenUoWFactory func() commands.KitchenUoW

func (f FuncKitchenUoWFactory) Create() commands.KitchenUoW {
	return f()
}

type FuncAuditUoWFactory func() commands.AuditUoW

func (f FuncAuditUoWFactory) Create() commands.AuditUoW {
	return f()
}
