package reviewrepo_test

import (
	"context"
	"testing"
	"time"

	"supplyflow/internal/adapters/out/postgres/reviewrepo"
	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/review"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// ReviewRepositoryIntegrationTestSuite verifies that the unique index on
// order_id backs the one-review-per-order rule.
type ReviewRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *reviewrepo.GormReviewRepository
	tracker    *MockAggregateTracker
}

func (suite *ReviewRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	// TranslateError turns the pgx unique-violation into gorm.ErrDuplicatedKey,
	// which Add maps to review.ErrDuplicateReview.
	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&reviewrepo.ReviewDTO{}))
}

func (suite *ReviewRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE reviews").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = reviewrepo.NewGormReviewRepository(suite.db, suite.tracker)
}

func (suite *ReviewRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ReviewRepositoryIntegrationTestSuite) createTestReview(orderID kernel.UUID) *review.Review {
	r, err := review.NewReview(
		kernel.NewUUID(), orderID, kernel.NewUUID(), kernel.NewUUID(),
		4, "Fast delivery, two bags torn", time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)
	return r
}

func (suite *ReviewRepositoryIntegrationTestSuite) TestAdd_RoundTrips() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	r := suite.createTestReview(orderID)

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, r))

	loaded, err := suite.repository.GetByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(r))
	suite.Equal(4, loaded.Rating())
	suite.Equal("Fast delivery, two bags torn", loaded.Comment())
}

func (suite *ReviewRepositoryIntegrationTestSuite) TestAdd_SecondReviewForOrder_Duplicate() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestReview(orderID)))

	err := suite.repository.Add(ctx, suite.createTestReview(orderID))
	suite.ErrorIs(err, review.ErrDuplicateReview)
}

func (suite *ReviewRepositoryIntegrationTestSuite) TestExistsForOrder() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	exists, err := suite.repository.ExistsForOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.False(exists)

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestReview(orderID)))

	exists, err = suite.repository.ExistsForOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.True(exists)
}

func TestReviewRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ReviewRepositoryIntegrationTestSuite))
}
