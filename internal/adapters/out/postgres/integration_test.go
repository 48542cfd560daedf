//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/auditrepo"
	"fulfillment/internal/adapters/out/postgres/fundrepo"
	"fulfillment/internal/adapters/out/postgres/migrations"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/fund"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ledgerFactory struct {
	uow *postgres.GormUnitOfWorkFactory
}

func (f ledgerFactory) Create() commands.LedgerUoW {
	return f.uow.Create()
}

// PostgresIntegrationTestSuite runs the schema migrations and the
// concurrency-sensitive paths against a real PostgreSQL.
type PostgresIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *PostgresIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := postgres.Connect(ctx, dsn, postgres.Options{MaxOpenConns: 16})
	suite.Require().NoError(err)
	suite.db = db

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(migrations.Up(ctx, sqlDB))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *PostgresIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE fund_movements, funds, audit_events, sub_order_items, sub_orders, orders").Error
	suite.Require().NoError(err)
}

func (suite *PostgresIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PostgresIntegrationTestSuite) TestMigrations_AreApplied() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)

	version, err := migrations.Version(context.Background(), sqlDB)
	suite.Require().NoError(err)
	suite.Equal(int64(4), version)
}

func (suite *PostgresIntegrationTestSuite) TestAuditEvents_RejectUpdates() {
	ctx := context.Background()
	repo := auditrepo.NewGormAuditRepository(suite.db)

	e, err := audit.NewOrderEvent(kernel.NewUUID(), "Created", "InProgress", kernel.NewUUID(), time.Now(), "")
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Append(ctx, e))

	err = suite.db.Model(&auditrepo.EventDTO{}).
		Where("id = ?", e.ID().Bytes()).
		Update("notes", "rewritten").Error
	suite.Require().Error(err)
}

func (suite *PostgresIntegrationTestSuite) TestConcurrentDebits_KeepTheBalanceExact() {
	ctx := context.Background()
	clientID := kernel.NewUUID()
	suite.openFund(ctx, clientID, 10_000)

	handler := commands.NewDebitFundCommandHandler(
		ledgerFactory{uow: suite.factory},
		commands.RetryPolicy{MaxAttempts: 10, InitialInterval: 5 * time.Millisecond, MaxInterval: 50 * time.Millisecond},
		zap.NewNop(),
	)

	const debits = 8
	var wg sync.WaitGroup
	errCh := make(chan error, debits)
	for range debits {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewDebitFundCommand(clientID, kernel.NewUUID(), 1_000)
			if err != nil {
				errCh <- err
				return
			}
			_, err = handler.Handle(ctx, cmd)
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		suite.Require().NoError(err)
	}

	funds := fundrepo.NewGormFundRepository(suite.db)
	f, err := funds.GetByClient(ctx, clientID)
	suite.Require().NoError(err)
	suite.Equal(kernel.Amount(2_000), f.Balance())

	movements, err := funds.ListMovements(ctx, f.ID())
	suite.Require().NoError(err)
	suite.Len(movements, debits+1)
}

func (suite *PostgresIntegrationTestSuite) TestConcurrentDuplicateDebit_IsRecordedOnce() {
	ctx := context.Background()
	clientID := kernel.NewUUID()
	suite.openFund(ctx, clientID, 5_000)

	handler := commands.NewDebitFundCommandHandler(
		ledgerFactory{uow: suite.factory},
		commands.RetryPolicy{MaxAttempts: 10, InitialInterval: 5 * time.Millisecond, MaxInterval: 50 * time.Millisecond},
		zap.NewNop(),
	)
	orderID := kernel.NewUUID()
	cmd, err := commands.NewDebitFundCommand(clientID, orderID, 2_200)
	suite.Require().NoError(err)

	results := make([]*fund.Movement, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, handleErr := handler.Handle(ctx, cmd)
			suite.NoError(handleErr)
			results[i] = m
		}()
	}
	wg.Wait()

	suite.Require().NotNil(results[0])
	suite.Require().NotNil(results[1])
	suite.Equal(results[0].ID(), results[1].ID())

	f, err := fundrepo.NewGormFundRepository(suite.db).GetByClient(ctx, clientID)
	suite.Require().NoError(err)
	suite.Equal(kernel.Amount(2_800), f.Balance())
}

func (suite *PostgresIntegrationTestSuite) openFund(ctx context.Context, clientID kernel.UUID, balance kernel.Amount) {
	factory := ledgerFactory{uow: suite.factory}
	retry := commands.DefaultRetryPolicy()

	open, err := commands.NewOpenFundCommand(clientID)
	suite.Require().NoError(err)
	_, err = commands.NewOpenFundCommandHandler(factory, retry, zap.NewNop()).Handle(ctx, open)
	suite.Require().NoError(err)

	credit, err := commands.NewCreditFundCommand(clientID, balance, "opening balance")
	suite.Require().NoError(err)
	_, err = commands.NewCreditFundCommandHandler(factory, retry, zap.NewNop()).Handle(ctx, credit)
	suite.Require().NoError(err)
}

func TestPostgresIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationTestSuite))
}
