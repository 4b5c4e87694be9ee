package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/localnerve/storedb/internal/config"
	"github.com/localnerve/storedb/internal/logging"
	"github.com/localnerve/storedb/internal/models"
	"github.com/localnerve/storedb/internal/testhelpers"
	"github.com/localnerve/storedb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestParseOrderDate(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"2024-05-01T10:00:00Z", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), false},
		{"2024-05-01T12:00:00+02:00", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), false},
		{"2024-05-01T10:00:00.250Z", time.Date(2024, 5, 1, 10, 0, 0, 250000000, time.UTC), false},
		{"2024-05-01T10:00:00", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), false},
		{"2024-05-01 10:00:00", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), false},
		{"not-a-date", time.Time{}, true},
		{"2024-13-01T10:00:00", time.Time{}, true},
		{"", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOrderDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestOrderCreateDefaultsDate(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "Ann", "ann@example.com")

	fixed := time.Date(2025, 1, 2, 3, 4, 5, 123456789, time.UTC)
	orders := NewOrderService(db, logging.Discard())
	orders.now = func() time.Time { return fixed }

	order, err := orders.Create(context.Background(), CreateOrderInput{
		UserID: types.FlexUint64{Value: user.ID, Set: true},
	})
	require.NoError(t, err)
	assert.True(t, fixed.Truncate(time.Millisecond).Equal(order.OrderDate))

	stored, err := orders.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.UserID)
	assert.True(t, order.OrderDate.Equal(stored.OrderDate))
}

func TestOrderCreateUnknownUser(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	orders := NewOrderService(db, logging.Discard())

	_, err := orders.Create(context.Background(), CreateOrderInput{
		UserID: types.FlexUint64{Value: 42, Set: true},
	})
	require.Error(t, err)
	assert.True(t, types.IsNotFound(err))
	var se *types.ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "User 42 not found", se.Message)
	assert.Zero(t, testhelpers.CountRows(t, db, &models.Order{}))
}

func TestOrderCreateBadDate(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "Ann", "ann@example.com")
	orders := NewOrderService(db, logging.Discard())

	_, err := orders.Create(context.Background(), CreateOrderInput{
		UserID:    types.FlexUint64{Value: user.ID, Set: true},
		OrderDate: strPtr("yesterday"),
	})
	require.Error(t, err)
	assert.True(t, types.IsValidation(err))

	var se *types.ServiceError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.Fields, "order_date")
}

func TestAttachAndDetach(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "Ann", "ann@example.com")
	order := testhelpers.CreateTestOrder(t, db, user.ID)
	widget := testhelpers.CreateTestProduct(t, db, "Widget", 9.99)
	gadget := testhelpers.CreateTestProduct(t, db, "Gadget", 1.25)
	orders := NewOrderService(db, logging.Discard())
	ctx := context.Background()

	attached, err := orders.AttachProduct(ctx, order.ID, gadget.ID)
	require.NoError(t, err)
	assert.True(t, attached)

	attached, err = orders.AttachProduct(ctx, order.ID, widget.ID)
	require.NoError(t, err)
	assert.True(t, attached)

	attached, err = orders.AttachProduct(ctx, order.ID, widget.ID)
	require.NoError(t, err)
	assert.False(t, attached)

	products, err := orders.ListProducts(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, widget.ID, products[0].ID)
	assert.Equal(t, gadget.ID, products[1].ID)
	assert.Equal(t, 1.25, products[1].Price)

	detached, err := orders.DetachProduct(ctx, order.ID, widget.ID)
	require.NoError(t, err)
	assert.True(t, detached)

	detached, err = orders.DetachProduct(ctx, order.ID, widget.ID)
	require.NoError(t, err)
	assert.False(t, detached)

	_, err = orders.DetachProduct(ctx, order.ID, 999)
	assert.True(t, types.IsNotFound(err))
}

func TestListForUser(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ann := testhelpers.CreateTestUser(t, db, "Ann", "ann@example.com")
	bob := testhelpers.CreateTestUser(t, db, "Bob", "bob@example.com")
	first := testhelpers.CreateTestOrder(t, db, ann.ID)
	testhelpers.CreateTestOrder(t, db, bob.ID)
	second := testhelpers.CreateTestOrder(t, db, ann.ID)
	orders := NewOrderService(db, logging.Discard())

	list, err := orders.ListForUser(context.Background(), ann.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	empty, err := orders.ListForUser(context.Background(), bob.ID+100)
	assert.True(t, types.IsNotFound(err))
	assert.Nil(t, empty)
}

func TestAttachConcurrentDuplicate(t *testing.T) {
	db, mock := testhelpers.NewMockDB(t)
	orders := NewOrderService(db, logging.Discard())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `orders`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `order_product`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `order_product`").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-2' for key 'PRIMARY'"})
	mock.ExpectRollback()

	attached, err := orders.AttachProduct(context.Background(), 1, 2)
	require.Error(t, err)
	assert.False(t, attached)
	assert.True(t, types.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreFailureIsInternal(t *testing.T) {
	db, mock := testhelpers.NewMockDB(t)
	users := NewUserService(db, logging.Discard())

	mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnError(errors.New("connection reset by peer"))

	_, err := users.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, types.KindInternal, types.KindOf(err))
	var se *types.ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Internal server error", se.Message)
	assert.EqualError(t, se.Err, "connection reset by peer")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserLifecycle(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	users := NewUserService(db, logging.Discard())
	ctx := context.Background()

	ann, err := users.Create(ctx, CreateUserInput{Name: "Ann", Address: "1 Main St", Email: "ann@example.com"})
	require.NoError(t, err)

	_, err = users.Create(ctx, CreateUserInput{Name: "Ann Two", Address: "2 Main St", Email: "ann@example.com"})
	assert.True(t, types.IsConflict(err))

	_, err = users.Create(ctx, CreateUserInput{Name: "", Address: "1 Main St", Email: "x@example.com"})
	assert.True(t, types.IsValidation(err))

	updated, err := users.Update(ctx, ann.ID, UpdateUserInput{Email: strPtr("ann@example.org")})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.org", updated.Email)
	assert.Equal(t, "Ann", updated.Name)

	// keeping your own email is not a conflict
	_, err = users.Update(ctx, ann.ID, UpdateUserInput{Email: strPtr("ann@example.org")})
	require.NoError(t, err)

	_, err = users.Update(ctx, ann.ID, UpdateUserInput{Name: strPtr("")})
	assert.True(t, types.IsValidation(err))

	require.NoError(t, users.Delete(ctx, ann.ID))
	_, err = users.Get(ctx, ann.ID)
	assert.True(t, types.IsNotFound(err))
	assert.True(t, types.IsNotFound(users.Delete(ctx, ann.ID)))
}

func TestProductLifecycle(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	products := NewProductService(db, logging.Discard())
	ctx := context.Background()

	_, err := products.Create(ctx, CreateProductInput{ProductName: "Widget"})
	assert.True(t, types.IsValidation(err))

	_, err = products.Create(ctx, CreateProductInput{ProductName: "Widget", Price: floatPtr(-0.01)})
	assert.True(t, types.IsValidation(err))

	widget, err := products.Create(ctx, CreateProductInput{ProductName: "Widget", Price: floatPtr(0)})
	require.NoError(t, err)
	assert.Zero(t, widget.Price)

	updated, err := products.Update(ctx, widget.ID, UpdateProductInput{ProductName: strPtr("Widget XL")})
	require.NoError(t, err)
	assert.Equal(t, "Widget XL", updated.ProductName)

	_, err = products.Update(ctx, widget.ID+1, UpdateProductInput{Price: floatPtr(3)})
	assert.True(t, types.IsNotFound(err))

	require.NoError(t, products.Delete(ctx, widget.ID))
	_, err = products.Get(ctx, widget.ID)
	assert.True(t, types.IsNotFound(err))
}

func TestHealthCheckSQLite(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	cfg := testConfig()

	result := HealthCheck(cfg, db, logging.Discard())
	assert.True(t, result.Healthy())
	assert.Equal(t, "ok", result.Database)
	assert.Equal(t, "sqlite", result.Details["database_type"])
}

func TestHealthCheckUnreachableHost(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	cfg := testConfig()
	cfg.DBType = "mysql"
	cfg.DBHost = "127.0.0.1"
	cfg.DBPort = "1"

	result := HealthCheck(cfg, db, logging.Discard())
	assert.False(t, result.Healthy())
	assert.Equal(t, "unreachable", result.Database)
	assert.Contains(t, result.Details, "database_host_error")
}

func testConfig() *config.Config {
	return &config.Config{DBType: "sqlite", DBDatabase: ":memory:", DBConnectionLimit: 1}
}
