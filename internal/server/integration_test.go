package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/localnerve/storedb/internal/database"
	"github.com/localnerve/storedb/internal/logging"
	"github.com/localnerve/storedb/internal/models"
	"github.com/localnerve/storedb/internal/server"
	"github.com/localnerve/storedb/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMariaDBIntegration runs the order flow against a real MariaDB
func TestMariaDBIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	if err := testhelpers.DockerAvailable(ctx); err != nil {
		t.Skipf("Docker is not available: %v", err)
	}

	mariadb, err := testhelpers.StartMariaDB(ctx, t)
	require.NoError(t, err)
	defer mariadb.Terminate(t)

	db, err := database.Connect(mariadb.Config, logging.Discard())
	require.NoError(t, err)
	defer database.Close(db)
	require.NoError(t, database.AutoMigrate(db))

	app := server.New(mariadb.Config, db, logging.Discard(), server.Options{})

	resp := testhelpers.Do(t, app, http.MethodGet, "/health", nil)
	testhelpers.AssertStatus(t, resp, http.StatusOK)

	user := testhelpers.CreateTestUser(t, db, "Ann", "ann@example.com")
	product := testhelpers.CreateTestProduct(t, db, "Widget", 9.99)

	resp = testhelpers.Do(t, app, http.MethodPost, "/users", map[string]string{
		"name": "Ann Again", "address": "2 Side St", "email": "ann@example.com",
	})
	testhelpers.AssertStatus(t, resp, http.StatusConflict)

	resp = testhelpers.Do(t, app, http.MethodPost, "/orders", map[string]interface{}{
		"user_id": user.ID, "order_date": "2024-05-01T10:00:00Z",
	})
	testhelpers.AssertStatus(t, resp, http.StatusCreated)
	var order models.Order
	testhelpers.ParseJSON(t, resp, &order)

	addPath := "/orders/" + strconv.FormatUint(order.ID, 10) + "/add_product/" + strconv.FormatUint(product.ID, 10)

	// concurrent attaches of the same pair leave exactly one association
	var wg sync.WaitGroup
	statuses := make([]int, 8)
	for i := range statuses {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := app.Test(httptest.NewRequest(http.MethodPut, addPath, nil), -1)
			if err != nil {
				return
			}
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	// losers see "already in order", a conflict, or a store-level retry failure; exactly one row survives
	assert.Contains(t, statuses, http.StatusOK)
	assert.Equal(t, int64(1), testhelpers.CountRows(t, db, &models.OrderProduct{}))

	resp = testhelpers.Do(t, app, http.MethodDelete, "/users/"+strconv.FormatUint(user.ID, 10), nil)
	testhelpers.AssertStatus(t, resp, http.StatusOK)
	assert.Zero(t, testhelpers.CountRows(t, db, &models.Order{}))
	assert.Zero(t, testhelpers.CountRows(t, db, &models.OrderProduct{}))
	assert.Equal(t, int64(1), testhelpers.CountRows(t, db, &models.Product{}))
}
