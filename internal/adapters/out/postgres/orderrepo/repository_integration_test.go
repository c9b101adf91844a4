package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"tableserve/internal/adapters/out/postgres/orderrepo"
	"tableserve/internal/core/domain/model/kernel"
	"tableserve/internal/core/domain/model/order"
	"tableserve/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GormOrderRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
}

func (suite *GormOrderRepositoryTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.repo = orderrepo.NewGormOrderRepository(db)
}

func (suite *GormOrderRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GormOrderRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GormOrderRepositoryTestSuite) newOrder(tableID string) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), tableID, "patio", "rest-1", []order.LineItem{
		{Name: "Tea", Quantity: 2, UnitPrice: 2},
		{Name: "Scone", Quantity: 1, UnitPrice: 3.5},
		{Name: "Tea", Quantity: 1, UnitPrice: 99},
	})
	suite.Require().NoError(err)
	return o
}

func (suite *GormOrderRepositoryTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	o := suite.newOrder("table-1")

	err := suite.repo.Add(ctx, o)
	suite.Require().NoError(err)

	restored, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.True(o.IsEqual(restored))
	suite.Equal("table-1", restored.TableID())
	suite.Equal("patio", restored.TableLocation())
	suite.Equal(order.Pending, restored.Status())

	// consolidation happened before persistence, first occurrence fixed the price
	items := restored.Items()
	suite.Require().Len(items, 2)
	suite.Equal("Tea", items[0].Name)
	suite.Equal(3, items[0].Quantity)
	suite.InDelta(2, items[0].UnitPrice, 1e-9)
	suite.InDelta(9.5, restored.TotalPrice(), 1e-9)
}

func (suite *GormOrderRepositoryTestSuite) TestGet_NotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GormOrderRepositoryTestSuite) TestUpdate_PersistsStatusChange() {
	ctx := context.Background()
	o := suite.newOrder("table-2")
	suite.Require().NoError(suite.repo.Add(ctx, o))

	_, err := o.ChangeStatus(order.Ready, order.OriginStaff)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Update(ctx, o))

	restored, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Ready, restored.Status())
}

func (suite *GormOrderRepositoryTestSuite) TestUpdate_MissingRow() {
	o := suite.newOrder("table-3")
	err := suite.repo.Update(context.Background(), o)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GormOrderRepositoryTestSuite) TestGetActive_ExcludesTerminalAndLegacyRows() {
	ctx := context.Background()

	active := suite.newOrder("table-a")
	suite.Require().NoError(suite.repo.Add(ctx, active))

	cancelled := suite.newOrder("table-b")
	_, err := cancelled.ChangeStatus(order.Cancelled, order.OriginStaff)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(ctx, cancelled))

	// a row written by the previous system version
	err = suite.db.Exec(`
		INSERT INTO orders (id, table_id, table_location, restaurant_id, items, total_price, status, created_at, updated_at)
		VALUES (gen_random_uuid(), 'table-c', '', '', '[{"name":"Pie","quantity":1,"unitPrice":4}]', 4, 'completed', now(), now())
	`).Error
	suite.Require().NoError(err)

	result, err := suite.repo.GetActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].IsEqual(active))
}

func (suite *GormOrderRepositoryTestSuite) TestGetActive_OldestFirst() {
	ctx := context.Background()

	first := suite.newOrder("table-1")
	suite.Require().NoError(suite.repo.Add(ctx, first))
	second := suite.newOrder("table-2")
	suite.Require().NoError(suite.repo.Add(ctx, second))

	// force distinct creation times
	err := suite.db.Exec("UPDATE orders SET created_at = created_at - interval '1 minute' WHERE id = ?",
		first.ID().Bytes()).Error
	suite.Require().NoError(err)

	result, err := suite.repo.GetActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].IsEqual(first))
	suite.True(result[1].IsEqual(second))
}

func (suite *GormOrderRepositoryTestSuite) TestGetAll_NewestFirst() {
	ctx := context.Background()

	first := suite.newOrder("table-1")
	suite.Require().NoError(suite.repo.Add(ctx, first))
	second := suite.newOrder("table-2")
	suite.Require().NoError(suite.repo.Add(ctx, second))

	err := suite.db.Exec("UPDATE orders SET created_at = created_at - interval '1 minute' WHERE id = ?",
		first.ID().Bytes()).Error
	suite.Require().NoError(err)

	result, err := suite.repo.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].IsEqual(second))
	suite.True(result[1].IsEqual(first))
}

func TestGormOrderRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(GormOrderRepositoryTestSuite))
}
