package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"oms/internal/adapters/out/postgres/orderrepo"
	"oms/internal/core/domain/model/order"
	"oms/internal/core/ports"
	"oms/internal/pkg/errs"
	"oms/internal/pkg/optional"

	"github.com/shopspring/decimal"
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

func (m *MockAggregateTracker) TrackAggregate(id order.ID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

// day is the trading day used by most fixtures. Times are truncated to microseconds
// because that is the resolution of PostgreSQL timestamps.
var day = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders RESTART IDENTITY").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_AssignsIDAndTracks() {
	ctx := context.Background()
	o := suite.newOrder(1, 7, "ORD20250314-0001", day.Add(9*time.Hour))

	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Equal(order.ID(1), o.ID())
	suite.assertOrderCount(1)
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", order.ID(1), o)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateOrderNumber_ReturnsConflict() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(1, 7, "ORD20250314-0001", day)))

	err := suite.repository.Add(ctx, suite.newOrder(2, 7, "ORD20250314-0001", day))

	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTripsAllFields() {
	ctx := context.Background()
	placed := day.Add(9*time.Hour + 30*time.Minute)
	validUntil := day.Add(24 * time.Hour)

	o, err := order.NewOrder(order.Intent{
		UserID:      3,
		SecurityID:  9,
		Side:        order.Sell,
		Type:        order.StopLimit,
		Quantity:    decimal.RequireFromString("1500.5"),
		LimitPrice:  optional.Of(decimal.RequireFromString("101.25")),
		StopPrice:   optional.Of(decimal.RequireFromString("100.0001")),
		TimeInForce: order.GoodTillCanceled,
		ValidUntil:  optional.Of(validUntil),
		Notes:       optional.Of("hedge"),
	}, placed)
	suite.Require().NoError(err)
	suite.Require().NoError(o.AssignNumber("ORD20250314-0001"))
	suite.Require().NoError(o.Fill(decimal.NewFromInt(500), decimal.RequireFromString("101"), placed))
	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(o.ID(), got.ID())
	suite.Equal(order.Number("ORD20250314-0001"), got.Number())
	suite.Equal(int64(3), got.UserID())
	suite.Equal(int64(9), got.SecurityID())
	suite.Equal(order.Sell, got.Side())
	suite.Equal(order.StopLimit, got.Type())
	suite.Equal(order.GoodTillCanceled, got.TimeInForce())
	suite.Equal(order.Partial, got.Status())
	suite.True(got.Quantity().Equal(decimal.RequireFromString("1500.5")))
	suite.True(got.FilledQuantity().Equal(decimal.NewFromInt(500)))
	suite.True(got.LimitPrice().OrElse(decimal.Zero).Equal(decimal.RequireFromString("101.25")))
	suite.True(got.StopPrice().OrElse(decimal.Zero).Equal(decimal.RequireFromString("100.0001")))
	suite.True(got.AveragePrice().OrElse(decimal.Zero).Equal(decimal.RequireFromString("101")))
	suite.False(got.Commission().IsPresent())
	suite.Equal("hedge", got.Notes().OrElse(""))
	suite.True(validUntil.Equal(got.ValidUntil().OrElse(time.Time{})))
	suite.True(placed.Equal(got.PlacedAt()))
	suite.True(placed.Equal(got.CreatedAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	got, err := suite.repository.Get(context.Background(), 12345)

	suite.Nil(got)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsChanges() {
	ctx := context.Background()
	o := suite.newOrder(1, 7, "ORD20250314-0001", day)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	later := day.Add(time.Hour)
	suite.Require().NoError(o.ApplyChanges(order.Changes{
		Quantity: optional.Of(decimal.NewFromInt(250)),
		Notes:    optional.Of("resized"),
	}, later))
	suite.Require().NoError(o.Cancel(later))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Canceled, got.Status())
	suite.True(got.Quantity().Equal(decimal.NewFromInt(250)))
	suite.Equal("resized", got.Notes().OrElse(""))
	suite.True(later.Equal(got.UpdatedAt()))
	suite.True(day.Equal(got.CreatedAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_LocksWithinTransaction() {
	ctx := context.Background()
	o := suite.newOrder(1, 7, "ORD20250314-0001", day)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	err := suite.db.Transaction(func(tx *gorm.DB) error {
		repo := orderrepo.NewGormOrderRepository(tx, nil)
		locked, err := repo.GetForUpdate(ctx, o.ID())
		if err != nil {
			return err
		}
		suite.Equal(o.ID(), locked.ID())
		return nil
	})

	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindByUserID_NewestFirst() {
	ctx := context.Background()
	first := suite.newOrder(1, 7, "ORD20250314-0001", day.Add(1*time.Hour))
	second := suite.newOrder(1, 8, "ORD20250314-0002", day.Add(3*time.Hour))
	other := suite.newOrder(2, 7, "ORD20250314-0003", day.Add(2*time.Hour))
	for _, o := range []*order.Order{first, second, other} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	got, err := suite.repository.FindByUserID(ctx, 1)

	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal(second.ID(), got[0].ID())
	suite.Equal(first.ID(), got[1].ID())

	none, err := suite.repository.FindByUserID(ctx, 99)
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindByUserIDAndStatusIn() {
	ctx := context.Background()
	active := suite.newOrder(1, 7, "ORD20250314-0001", day)
	canceled := suite.newOrder(1, 7, "ORD20250314-0002", day.Add(time.Hour))
	suite.Require().NoError(canceled.Cancel(day.Add(time.Hour)))
	suite.Require().NoError(suite.repository.Add(ctx, active))
	suite.Require().NoError(suite.repository.Add(ctx, canceled))

	got, err := suite.repository.FindByUserIDAndStatusIn(ctx, 1, order.ActiveStatuses())

	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(active.ID(), got[0].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindByFilters() {
	ctx := context.Background()
	a := suite.newOrder(1, 7, "ORD20250314-0001", day.Add(1*time.Hour))
	b := suite.newOrder(1, 8, "ORD20250314-0002", day.Add(2*time.Hour))
	c := suite.newOrder(2, 7, "ORD20250314-0003", day.Add(3*time.Hour))
	suite.Require().NoError(c.Cancel(day.Add(3 * time.Hour)))
	for _, o := range []*order.Order{a, b, c} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	testCases := []struct {
		name   string
		filter ports.OrderFilter
		want   []order.ID
	}{
		{
			name:   "no criteria spans all users",
			filter: ports.OrderFilter{},
			want:   []order.ID{c.ID(), b.ID(), a.ID()},
		},
		{
			name:   "by user",
			filter: ports.OrderFilter{UserID: optional.Of[int64](1)},
			want:   []order.ID{b.ID(), a.ID()},
		},
		{
			name:   "by security",
			filter: ports.OrderFilter{SecurityID: optional.Of[int64](7)},
			want:   []order.ID{c.ID(), a.ID()},
		},
		{
			name:   "by statuses",
			filter: ports.OrderFilter{Statuses: []order.Status{order.Canceled, order.Filled}},
			want:   []order.ID{c.ID()},
		},
		{
			name: "by inclusive range",
			filter: ports.OrderFilter{
				StartDate: optional.Of(day.Add(1 * time.Hour)),
				EndDate:   optional.Of(day.Add(2 * time.Hour)),
			},
			want: []order.ID{b.ID(), a.ID()},
		},
		{
			name: "combined criteria without match",
			filter: ports.OrderFilter{
				UserID:     optional.Of[int64](2),
				SecurityID: optional.Of[int64](8),
			},
			want: []order.ID{},
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			got, err := suite.repository.FindByFilters(ctx, tc.filter)
			suite.Require().NoError(err)

			ids := make([]order.ID, 0, len(got))
			for _, o := range got {
				ids = append(ids, o.ID())
			}
			suite.Equal(tc.want, ids)
		})
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindExpirable() {
	ctx := context.Background()
	now := day.Add(12 * time.Hour)

	expired := suite.newOrderValidUntil("ORD20250314-0001", optional.Of(now.Add(-time.Minute)))
	fresh := suite.newOrderValidUntil("ORD20250314-0002", optional.Of(now.Add(time.Minute)))
	unbounded := suite.newOrderValidUntil("ORD20250314-0003", optional.None[time.Time]())
	canceled := suite.newOrderValidUntil("ORD20250314-0004", optional.Of(now.Add(-time.Hour)))
	suite.Require().NoError(canceled.Cancel(day))
	for _, o := range []*order.Order{expired, fresh, unbounded, canceled} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	got, err := suite.repository.FindExpirable(ctx, now)

	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(expired.ID(), got[0].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountPlacedBetween() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(1, 7, "ORD20250313-0001", day.Add(-time.Minute))))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(1, 7, "ORD20250314-0001", day)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(1, 7, "ORD20250314-0002", day.Add(23*time.Hour))))

	count, err := suite.repository.CountPlacedBetween(ctx, day, day.Add(24*time.Hour-time.Microsecond))

	suite.Require().NoError(err)
	suite.Equal(int64(2), count)
}

// Helper methods

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(
	userID int64,
	securityID int64,
	number order.Number,
	placedAt time.Time,
) *order.Order {
	o, err := order.NewOrder(order.Intent{
		UserID:      userID,
		SecurityID:  securityID,
		Side:        order.Buy,
		Type:        order.Limit,
		Quantity:    decimal.NewFromInt(1000),
		LimitPrice:  optional.Of(decimal.RequireFromString("2500")),
		TimeInForce: order.Day,
	}, placedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(o.AssignNumber(number))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrderValidUntil(
	number order.Number,
	validUntil optional.Value[time.Time],
) *order.Order {
	o, err := order.NewOrder(order.Intent{
		UserID:      1,
		SecurityID:  7,
		Side:        order.Buy,
		Type:        order.Market,
		Quantity:    decimal.NewFromInt(10),
		TimeInForce: order.GoodTillCanceled,
		ValidUntil:  validUntil,
	}, day)
	suite.Require().NoError(err)
	suite.Require().NoError(o.AssignNumber(number))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
