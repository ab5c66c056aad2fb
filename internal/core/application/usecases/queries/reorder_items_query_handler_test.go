package queries_test

import (
	"context"
	"testing"
	"time"

	"supplyflow/internal/adapters/out/postgres/orderrepo"
	"supplyflow/internal/core/application/usecases/queries"
	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/order"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// stubCatalog reports the listed products as unavailable and everything else
// as available.
type stubCatalog struct {
	unavailable map[string]struct{}
}

func newStubCatalog(unavailable ...kernel.UUID) *stubCatalog {
	m := make(map[string]struct{}, len(unavailable))
	for _, id := range unavailable {
		m[id.String()] = struct{}{}
	}
	return &stubCatalog{unavailable: m}
}

func (c *stubCatalog) IsAvailable(_ context.Context, productID kernel.UUID) (bool, error) {
	_, out := c.unavailable[productID.String()]
	return !out, nil
}

type ReorderItemsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *ReorderItemsQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{})
	suite.Require().NoError(err)
}

func (suite *ReorderItemsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ReorderItemsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items").Error
	suite.Require().NoError(err)
}

func (suite *ReorderItemsQueryHandlerTestSuite) saveOrder(
	contractorID kernel.UUID,
	items []order.LineItem,
) *order.Order {
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), "ORD-3001", contractorID, kernel.NewUUID(),
		items, time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)

	repo := orderrepo.NewGormOrderRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), aggregate))
	return aggregate
}

func (suite *ReorderItemsQueryHandlerTestSuite) threeLineItems() []order.LineItem {
	cement, err := order.NewLineItem(kernel.NewUUID(), "Cement 25kg", 10, 1299)
	suite.Require().NoError(err)
	rebar, err := order.NewLineItem(kernel.NewUUID(), "Rebar 12mm", 100, 450)
	suite.Require().NoError(err)
	bricks, err := order.NewLineItem(kernel.NewUUID(), "Bricks, pallet", 2, 38000)
	suite.Require().NoError(err)
	return []order.LineItem{cement, rebar, bricks}
}

func (suite *ReorderItemsQueryHandlerTestSuite) TestHandle_OneItemOutOfStock_DroppedAndCounted() {
	contractorID := kernel.NewUUID()
	items := suite.threeLineItems()
	aggregate := suite.saveOrder(contractorID, items)

	handler := queries.NewReorderItemsQueryHandler(
		suite.db, newStubCatalog(items[1].ProductID()))

	query, err := queries.NewReorderItemsQuery(aggregate.ID(), contractorID, services.RoleContractor)
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.Equal(1, result.UnavailableCount)
	suite.Require().Len(result.Items, 2)
	suite.Equal("Cement 25kg", result.Items[0].Name)
	suite.Equal("Bricks, pallet", result.Items[1].Name)
}

func (suite *ReorderItemsQueryHandlerTestSuite) TestHandle_AllAvailable_FullCart() {
	contractorID := kernel.NewUUID()
	items := suite.threeLineItems()
	aggregate := suite.saveOrder(contractorID, items)

	handler := queries.NewReorderItemsQueryHandler(suite.db, newStubCatalog())

	query, err := queries.NewReorderItemsQuery(aggregate.ID(), contractorID, services.RoleContractor)
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.Zero(result.UnavailableCount)
	suite.Require().Len(result.Items, 3)
	for i, item := range result.Items {
		suite.True(item.ProductID.IsEqual(items[i].ProductID()))
		suite.Equal(items[i].Quantity(), item.Quantity)
		suite.Equal(items[i].UnitPriceCents(), item.UnitPriceCents)
	}
}

func (suite *ReorderItemsQueryHandlerTestSuite) TestHandle_AnotherContractor_AccessDenied() {
	aggregate := suite.saveOrder(kernel.NewUUID(), suite.threeLineItems())

	handler := queries.NewReorderItemsQueryHandler(suite.db, newStubCatalog())

	query, err := queries.NewReorderItemsQuery(aggregate.ID(), kernel.NewUUID(), services.RoleContractor)
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	suite.ErrorIs(err, services.ErrAccessDenied)
}

func (suite *ReorderItemsQueryHandlerTestSuite) TestHandle_SupplierRole_AccessDenied() {
	contractorID := kernel.NewUUID()
	aggregate := suite.saveOrder(contractorID, suite.threeLineItems())

	handler := queries.NewReorderItemsQueryHandler(suite.db, newStubCatalog())

	query, err := queries.NewReorderItemsQuery(aggregate.ID(), contractorID, services.RoleSupplier)
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	suite.ErrorIs(err, services.ErrAccessDenied)
}

func (suite *ReorderItemsQueryHandlerTestSuite) TestHandle_UnknownOrder_NotFound() {
	handler := queries.NewReorderItemsQueryHandler(suite.db, newStubCatalog())

	query, err := queries.NewReorderItemsQuery(kernel.NewUUID(), kernel.NewUUID(), services.RoleContractor)
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	var notFound *errs.ObjectNotFoundError
	suite.ErrorAs(err, &notFound)
}

func TestReorderItemsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReorderItemsQueryHandlerTestSuite))
}

// noopTracker satisfies the repositories' aggregate tracker in query tests,
// where nothing reads the tracked set back.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}
