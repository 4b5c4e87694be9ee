// order_service.go
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

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/localnerve/storedb/internal/database"
	"github.com/localnerve/storedb/internal/models"
	"github.com/localnerve/storedb/internal/types"
	"github.com/localnerve/storedb/internal/validation"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// orderDateLayouts are the accepted order_date forms, tried in order.
// Zone-less forms are read as UTC.
var orderDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// CreateOrderInput is the body accepted by order creation
type CreateOrderInput struct {
	UserID    types.FlexUint64 `json:"user_id" validate:"required"`
	OrderDate *string          `json:"order_date"`
}

// OrderService manages orders and the products attached to them
type OrderService struct {
	store
	now func() time.Time
}

// NewOrderService creates an OrderService over db
func NewOrderService(db *gorm.DB, log *logrus.Logger) *OrderService {
	return &OrderService{store: store{db: db, log: log}, now: time.Now}
}

// ParseOrderDate reads an ISO-8601 timestamp in one of the accepted layouts
func ParseOrderDate(value string) (time.Time, error) {
	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid order_date %q", value)
}

// Create stores a new order for an existing user with no products attached.
// order_date defaults to the current time.
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	orderDate := s.now().UTC()
	if input.OrderDate != nil {
		parsed, err := ParseOrderDate(*input.OrderDate)
		if err != nil {
			return nil, types.NewValidationError("Invalid input", map[string]string{
				"order_date": "Not a valid datetime.",
			})
		}
		orderDate = parsed
	}

	order := models.Order{
		UserID:    input.UserID.Uint64(),
		OrderDate: orderDate.Truncate(time.Millisecond),
	}

	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.User{}, "User", order.UserID); err != nil {
			return err
		}
		err := tx.Create(&order).Error
		if database.IsForeignKeyViolation(err) {
			return types.NewNotFoundError("User", order.UserID)
		}
		return err
	})
	if err != nil {
		return nil, s.resolve("create order", err)
	}

	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  order.UserID,
	}).Info("order created")
	return &order, nil
}

// Get returns the order with the given id
func (s *OrderService) Get(ctx context.Context, id uint64) (*models.Order, error) {
	var order models.Order
	if err := s.conn(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("Order", id)
		}
		return nil, s.resolve("get order", err)
	}
	return &order, nil
}

// AttachProduct adds a product to an order. It reports false when the product
// was already attached, in which case nothing is written.
// A duplicate insert lost to a concurrent attach is reported as a conflict.
func (s *OrderService) AttachProduct(ctx context.Context, orderID, productID uint64) (bool, error) {
	attached := false
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		present, err := s.checkPair(tx, orderID, productID)
		if err != nil || present {
			return err
		}

		err = tx.Create(&models.OrderProduct{OrderID: orderID, ProductID: productID}).Error
		switch {
		case database.IsDuplicateKey(err):
			return types.NewConflictError("Product was attached to the order concurrently", err)
		case database.IsForeignKeyViolation(err):
			return &types.ServiceError{
				Kind:    types.KindNotFound,
				Message: fmt.Sprintf("Order %d or product %d no longer exists", orderID, productID),
				Err:     err,
			}
		case err != nil:
			return err
		}

		attached = true
		return nil
	})
	if err != nil {
		return false, s.resolve("attach product", err)
	}

	if attached {
		s.log.WithFields(logrus.Fields{
			"order_id":   orderID,
			"product_id": productID,
		}).Info("product attached to order")
	}
	return attached, nil
}

// DetachProduct removes a product from an order. It reports false when the
// product was not attached, which is not an error.
func (s *OrderService) DetachProduct(ctx context.Context, orderID, productID uint64) (bool, error) {
	detached := false
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		present, err := s.checkPair(tx, orderID, productID)
		if err != nil || !present {
			return err
		}

		result := tx.Where("order_id = ? AND product_id = ?", orderID, productID).Delete(&models.OrderProduct{})
		if result.Error != nil {
			return result.Error
		}
		detached = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, s.resolve("detach product", err)
	}

	if detached {
		s.log.WithFields(logrus.Fields{
			"order_id":   orderID,
			"product_id": productID,
		}).Info("product detached from order")
	}
	return detached, nil
}

// ListForUser returns every order owned by an existing user
func (s *OrderService) ListForUser(ctx context.Context, userID uint64) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.User{}, "User", userID); err != nil {
			return err
		}
		return tx.Clauses(hints.CommentBefore("select", "orders_for_user")).
			Where("user_id = ?", userID).
			Order("id").
			Find(&orders).Error
	})
	if err != nil {
		return nil, s.resolve("list orders for user", err)
	}
	return orders, nil
}

// ListProducts returns the products attached to an existing order
func (s *OrderService) ListProducts(ctx context.Context, orderID uint64) ([]models.Product, error) {
	products := []models.Product{}
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Order{}, "Order", orderID); err != nil {
			return err
		}
		return tx.Clauses(hints.CommentBefore("select", "products_for_order")).
			Model(&models.Product{}).
			Select("products.id, products.product_name, products.price").
			Joins("JOIN order_product ON order_product.product_id = products.id").
			Where("order_product.order_id = ?", orderID).
			Order("products.id").
			Find(&products).Error
	})
	if err != nil {
		return nil, s.resolve("list products for order", err)
	}
	return products, nil
}

// checkPair verifies the order and the product exist, each on its own,
// and reports whether the product is currently attached to the order
func (s *OrderService) checkPair(tx *gorm.DB, orderID, productID uint64) (bool, error) {
	if err := mustExist(tx, &models.Order{}, "Order", orderID); err != nil {
		return false, err
	}
	if err := mustExist(tx, &models.Product{}, "Product", productID); err != nil {
		return false, err
	}

	var count int64
	if err := tx.Model(&models.OrderProduct{}).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
