package cmd

import (
	"context"
	"log/slog"

	cafehttp "cafe/internal/adapters/in/http"
	"cafe/internal/adapters/in/session"
	"cafe/internal/adapters/in/tcp"
	"cafe/internal/adapters/out/memledger"
	"cafe/internal/adapters/out/postgres"
	"cafe/internal/core/application/preparation"
	"cafe/internal/core/application/sessions"
	"cafe/internal/core/application/usecases/commands"
	"cafe/internal/core/application/usecases/queries"
	"cafe/internal/core/domain/services"
	"cafe/internal/jobs"

	"gorm.io/gorm"
)

// Ledger is what handlers need from a fulfillment ledger.
type Ledger interface {
	commands.Ledger
	queries.HistoryReader
}

type CompositionRoot struct {
	config Config
	logger *slog.Logger

	registry      *services.StageRegistry
	directory     *sessions.Directory
	ledger        Ledger
	notifyHandler *commands.NotifyOrderReadyCommandHandler
	scheduler     *preparation.Scheduler
}

// NewCompositionRoot wires the shared state. A nil gormDB keeps the ledger in memory.
func NewCompositionRoot(config Config, logger *slog.Logger, gormDB *gorm.DB) (*CompositionRoot, error) {
	registry, err := services.NewStageRegistry(services.MaxConcurrentPreparation)
	if err != nil {
		return nil, err
	}
	directory := sessions.NewDirectory()

	var ledger Ledger
	if gormDB != nil {
		ledger = postgres.NewGormFulfillmentLedger(postgres.NewGormUnitOfWorkFactory(gormDB))
	} else {
		ledger, err = memledger.New(memledger.DefaultCapacity, logger)
		if err != nil {
			return nil, err
		}
	}

	notifyHandler := commands.NewNotifyOrderReadyCommandHandler(directory, logger)
	scheduler, err := preparation.NewScheduler(registry, &notifyHandler, logger,
		preparation.WithDurations(config.Durations().For))
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		config:        config,
		logger:        logger,
		registry:      registry,
		directory:     directory,
		ledger:        ledger,
		notifyHandler: &notifyHandler,
		scheduler:     scheduler,
	}, nil
}

func (c *CompositionRoot) Scheduler() *preparation.Scheduler {
	return c.scheduler
}

// ServingContext returns the context for the listeners. It is cancelled with
// ctx, but only after the scheduler has stopped claiming, so customers leaving
// during shutdown cannot start new preparations.
func (c *CompositionRoot) ServingContext(ctx context.Context) (context.Context, context.CancelFunc) {
	serveCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(ctx, func() {
		c.scheduler.Halt()
		cancel()
	})
	return serveCtx, func() {
		stop()
		cancel()
	}
}

func (c *CompositionRoot) CreateJoinCafeCommandHandler() commands.JoinCafeCommandHandler {
	return commands.NewJoinCafeCommandHandler(c.directory, c.logger)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.directory, c.registry, c.scheduler, c.logger)
}

func (c *CompositionRoot) CreateCollectOrderCommandHandler() commands.CollectOrderCommandHandler {
	return commands.NewCollectOrderCommandHandler(c.registry, c.ledger, c.logger)
}

func (c *CompositionRoot) CreateLeaveCafeCommandHandler() commands.LeaveCafeCommandHandler {
	return commands.NewLeaveCafeCommandHandler(c.directory, c.registry, c.scheduler, c.ledger, c.logger)
}

func (c *CompositionRoot) CreateNotifyOrderReadyCommandHandler() *commands.NotifyOrderReadyCommandHandler {
	return c.notifyHandler
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.registry)
}

func (c *CompositionRoot) CreateGetCafeStateQueryHandler() queries.GetCafeStateQueryHandler {
	return queries.NewGetCafeStateQueryHandler(c.registry, c.directory, c.scheduler)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.ledger)
}

func (c *CompositionRoot) CreateSessionServer() (*session.Server, error) {
	return session.NewServer(session.Handlers{
		Join:    c.CreateJoinCafeCommandHandler(),
		Place:   c.CreatePlaceOrderCommandHandler(),
		Collect: c.CreateCollectOrderCommandHandler(),
		Leave:   c.CreateLeaveCafeCommandHandler(),
		Status:  c.CreateGetOrderStatusQueryHandler(),
	}, c.directory, c.logger)
}

func (c *CompositionRoot) CreateTCPServer() (*tcp.Server, error) {
	sessionServer, err := c.CreateSessionServer()
	if err != nil {
		return nil, err
	}
	return tcp.NewServer(sessionServer, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() (*cafehttp.Server, error) {
	sessionServer, err := c.CreateSessionServer()
	if err != nil {
		return nil, err
	}
	return cafehttp.NewServer(
		c.CreateGetCafeStateQueryHandler(),
		c.CreateGetOrderStatusQueryHandler(),
		c.CreateGetOrderHistoryQueryHandler(),
		sessionServer,
		c.logger,
	), nil
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetCafeStateQueryHandler(), c.config.StateReportSchedule, c.logger)
}
