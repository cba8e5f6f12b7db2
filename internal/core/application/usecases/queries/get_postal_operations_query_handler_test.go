package queries_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/ledgerrepo"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/services"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetPostalOperationsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetPostalOperationsQueryHandler
}

func (suite *GetPostalOperationsQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&ledgerrepo.PostalOperationDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetPostalOperationsQueryHandler(db)
}

func (suite *GetPostalOperationsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetPostalOperationsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE postal_operations").Error
	suite.Require().NoError(err)
}

func (suite *GetPostalOperationsQueryHandlerTestSuite) seedOperation(
	code string, createdAt time.Time, isReversed bool,
) kernel.UUID {
	operatorID := kernel.NewUUID()
	err := suite.db.Create(&ledgerrepo.PostalOperationDTO{
		Code:         code,
		WeightGrams:  500,
		Service:      services.ServiceRegistered,
		Destination:  services.ZoneDomestic,
		CostCents:    500,
		RevenueCents: 750,
		MarginCents:  250,
		OperatorID:   operatorID.Bytes(),
		IsReversed:   isReversed,
		CreatedAt:    createdAt,
	}).Error
	suite.Require().NoError(err)
	return operatorID
}

func (suite *GetPostalOperationsQueryHandlerTestSuite) TestHandle_EmptyLog_ReturnsEmptySlice() {
	result, err := suite.handler.Handle(context.Background(), queries.NewGetPostalOperationsQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetPostalOperationsQueryHandlerTestSuite) TestHandle_ReturnsEntriesNewestFirst() {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	suite.seedOperation("PO-oldest", base, false)
	suite.seedOperation("PO-newest", base.Add(2*time.Hour), false)
	suite.seedOperation("PO-middle", base.Add(time.Hour), false)

	result, err := suite.handler.Handle(context.Background(), queries.NewGetPostalOperationsQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal("PO-newest", result[0].Code)
	suite.Equal("PO-middle", result[1].Code)
	suite.Equal("PO-oldest", result[2].Code)
}

func (suite *GetPostalOperationsQueryHandlerTestSuite) TestHandle_EntryFieldsRoundTrip() {
	createdAt := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	operatorID := suite.seedOperation("PO-detail", createdAt, false)

	result, err := suite.handler.Handle(context.Background(), queries.NewGetPostalOperationsQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	entry := result[0]
	suite.Equal("PO-detail", entry.Code)
	suite.Equal(500, entry.WeightGrams)
	suite.Equal(services.ServiceRegistered, entry.Service)
	suite.Equal(services.ZoneDomestic, entry.Destination)
	suite.Equal(int64(500), entry.Cost.Cents())
	suite.Equal(int64(750), entry.Revenue.Cents())
	suite.Equal(int64(250), entry.Margin.Cents())
	suite.True(operatorID.IsEqual(entry.OperatorID))
	suite.False(entry.IsReversed)
	suite.WithinDuration(createdAt, entry.CreatedAt, time.Second)
}

// The log is the audit trail: reversed operations stay in the listing with
// their flag set.
func (suite *GetPostalOperationsQueryHandlerTestSuite) TestHandle_ReversedEntriesIncluded() {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	suite.seedOperation("PO-active", base.Add(time.Hour), false)
	suite.seedOperation("PO-voided", base, true)

	result, err := suite.handler.Handle(context.Background(), queries.NewGetPostalOperationsQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.False(result[0].IsReversed)
	suite.Equal("PO-voided", result[1].Code)
	suite.True(result[1].IsReversed)
}

func (suite *GetPostalOperationsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetPostalOperationsQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetPostalOperationsQuery constructor")
}

func TestGetPostalOperationsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetPostalOperationsQueryHandlerTestSuite))
}
