package cmd

import (
	"log/slog"
	"strconv"
	"time"

	"shipping/internal/adapters/out/courier"
	"shipping/internal/adapters/out/postgres"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
	"shipping/internal/jobs"

	"gorm.io/gorm"
)

const defaultCourierTimeout = 5 * time.Second

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	gateway     ports.CourierGateway
	calculator  services.TariffCalculator
	logger      *slog.Logger
	ledgerOwner string
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		gateway:     courier.NewClient(config.CourierAPIURL, config.CourierAPIKey, courierTimeout(config)),
		calculator:  services.NewTariffCalculator(),
		logger:      logger,
		ledgerOwner: config.LedgerOwner,
	}
}

func courierTimeout(config Config) time.Duration {
	ms, err := strconv.Atoi(config.CourierTimeoutMs)
	if err != nil || ms <= 0 {
		return defaultCourierTimeout
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *CompositionRoot) LedgerOwner() string {
	return c.ledgerOwner
}

func (c *CompositionRoot) CreateShipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateLedgerUoWFactory() commands.LedgerUoWFactory {
	return FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateBookShipmentCommandHandler() commands.BookShipmentCommandHandler {
	return commands.NewBookShipmentCommandHandler(c.CreateShipmentUoWFactory(), c.gateway, c.logger)
}

func (c *CompositionRoot) CreateCancelShipmentCommandHandler() commands.CancelShipmentCommandHandler {
	return commands.NewCancelShipmentCommandHandler(c.CreateShipmentUoWFactory(), c.gateway, c.logger)
}

func (c *CompositionRoot) CreateResolveExceptionCommandHandler() commands.ResolveExceptionCommandHandler {
	return commands.NewResolveExceptionCommandHandler(c.CreateShipmentUoWFactory())
}

func (c *CompositionRoot) CreateIngestTrackingUpdateCommandHandler() commands.IngestTrackingUpdateCommandHandler {
	return commands.NewIngestTrackingUpdateCommandHandler(c.CreateShipmentUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateRegisterPostalOperationCommandHandler() commands.RegisterPostalOperationCommandHandler {
	return commands.NewRegisterPostalOperationCommandHandler(c.CreateLedgerUoWFactory(), c.calculator, c.ledgerOwner)
}

func (c *CompositionRoot) CreateReversePostalOperationCommandHandler() commands.ReversePostalOperationCommandHandler {
	return commands.NewReversePostalOperationCommandHandler(c.CreateLedgerUoWFactory(), c.ledgerOwner)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCashBalanceQueryHandler() queries.GetCashBalanceQueryHandler {
	return queries.NewGetCashBalanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPostalOperationsQueryHandler() queries.GetPostalOperationsQueryHandler {
	return queries.NewGetPostalOperationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateShipmentUoWFactory(),
		c.gateway,
		c.CreateIngestTrackingUpdateCommandHandler(),
		c.logger,
	)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}
