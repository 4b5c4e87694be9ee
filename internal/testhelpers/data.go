// data.go
//
// A small relational record service for users, products and the orders that join them
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of storedb.
// storedb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// storedb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with storedb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package testhelpers

import (
	"testing"
	"time"

	"github.com/localnerve/storedb/internal/models"
	"gorm.io/gorm"
)

// CreateTestUser creates a user directly via GORM
func CreateTestUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()
	user := models.User{Name: name, Address: "1 Main St", Email: email}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

// CreateTestProduct creates a product directly via GORM
func CreateTestProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()
	product := models.Product{ProductName: name, Price: price}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	return product
}

// CreateTestOrder creates an order for userID directly via GORM
func CreateTestOrder(t *testing.T, db *gorm.DB, userID uint64) models.Order {
	t.Helper()
	order := models.Order{UserID: userID, OrderDate: time.Now().UTC().Truncate(time.Millisecond)}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}
	return order
}

// AttachTestProduct inserts an association row directly via GORM
func AttachTestProduct(t *testing.T, db *gorm.DB, orderID, productID uint64) {
	t.Helper()
	if err := db.Create(&models.OrderProduct{OrderID: orderID, ProductID: productID}).Error; err != nil {
		t.Fatalf("Failed to attach product %d to order %d: %v", productID, orderID, err)
	}
}

// CountRows counts the rows of model matching the optional condition
func CountRows(t *testing.T, db *gorm.DB, model interface{}, query ...interface{}) int64 {
	t.Helper()
	var count int64
	tx := db.Model(model)
	if len(query) > 0 {
		tx = tx.Where(query[0], query[1:]...)
	}
	if err := tx.Count(&count).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return count
}
