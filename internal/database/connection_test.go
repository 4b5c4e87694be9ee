package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/localnerve/storedb/internal/config"
	"github.com/localnerve/storedb/internal/logging"
	"github.com/localnerve/storedb/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func connectFile(t *testing.T, dbType string) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		DBType:            dbType,
		DBDatabase:        filepath.Join(t.TempDir(), "store.db"),
		DBConnectionLimit: 1,
		DBLogLevel:        "silent",
	}
	db, err := Connect(cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestConnectAndMigrate(t *testing.T) {
	for _, dbType := range []string{"sqlite", "sqlite-purego"} {
		t.Run(dbType, func(t *testing.T) {
			db := connectFile(t, dbType)

			for _, table := range []string{"users", "products", "orders", "order_product"} {
				assert.True(t, db.Migrator().HasTable(table), table)
			}
			assert.NoError(t, Ping(db, time.Second))

			// migrating twice is a no-op
			assert.NoError(t, AutoMigrate(db))
		})
	}
}

func TestConstraintsAreEnforced(t *testing.T) {
	for _, dbType := range []string{"sqlite", "sqlite-purego"} {
		t.Run(dbType, func(t *testing.T) {
			db := connectFile(t, dbType)

			user := models.User{Name: "Ann", Address: "1 Main St", Email: "ann@example.com"}
			require.NoError(t, db.Create(&user).Error)

			dup := models.User{Name: "Ann", Address: "1 Main St", Email: "ann@example.com"}
			assert.True(t, IsDuplicateKey(db.Create(&dup).Error))

			orphan := models.Order{UserID: user.ID + 10, OrderDate: time.Now().UTC()}
			assert.True(t, IsForeignKeyViolation(db.Create(&orphan).Error))

			product := models.Product{ProductName: "Widget", Price: 1}
			require.NoError(t, db.Create(&product).Error)
			order := models.Order{UserID: user.ID, OrderDate: time.Now().UTC()}
			require.NoError(t, db.Create(&order).Error)
			require.NoError(t, db.Create(&models.OrderProduct{OrderID: order.ID, ProductID: product.ID}).Error)

			again := models.OrderProduct{OrderID: order.ID, ProductID: product.ID}
			assert.True(t, IsDuplicateKey(db.Create(&again).Error))
		})
	}
}
