package queries_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/ledgerrepo"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const queryTestOwner = "office-main"

type GetCashBalanceQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetCashBalanceQueryHandler
}

func (suite *GetCashBalanceQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
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

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&ledgerrepo.CashBalanceDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetCashBalanceQueryHandler(db)
}

func (suite *GetCashBalanceQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetCashBalanceQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE cash_balances").Error
	suite.Require().NoError(err)
}

func (suite *GetCashBalanceQueryHandlerTestSuite) TestHandle_ExistingBalance_ReturnsProjection() {
	lastUpdated := time.Date(2026, 9, 1, 12, 30, 0, 0, time.UTC)
	err := suite.db.Create(&ledgerrepo.CashBalanceDTO{
		Owner:       queryTestOwner,
		AmountCents: 9500,
		LastUpdated: lastUpdated,
	}).Error
	suite.Require().NoError(err)

	query, err := queries.NewGetCashBalanceQuery(queryTestOwner)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(queryTestOwner, result.Owner)
	suite.Equal(int64(9500), result.Amount.Cents())
	suite.WithinDuration(lastUpdated, result.LastUpdated, time.Second)
}

func (suite *GetCashBalanceQueryHandlerTestSuite) TestHandle_UnknownOwner_NotFound() {
	query, err := queries.NewGetCashBalanceQuery("office-ghost")
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetCashBalanceQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetCashBalanceQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetCashBalanceQuery constructor")
}

func TestGetCashBalanceQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetCashBalanceQueryHandlerTestSuite))
}
