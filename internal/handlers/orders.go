// orders.go
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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/storedb/internal/services"
	"github.com/localnerve/storedb/internal/utils"
)

// OrderHandler handles order routes
type OrderHandler struct {
	Orders *services.OrderService
}

// CreateOrder handles POST /orders
// @Summary Create an order
// @Description Create an empty order for an existing user. order_date defaults to now.
// @Tags Orders
// @Accept json
// @Produce json
// @Param body body services.CreateOrderInput true "Order"
// @Success 201 {object} models.Order
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var body services.CreateOrderInput
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c, err)
	}

	order, err := h.Orders.Create(c.UserContext(), body)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, order, fiber.StatusCreated)
}

// GetOrder handles GET /orders/:oid
// @Summary Get an order
// @Tags Orders
// @Produce json
// @Param oid path int true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /orders/{oid} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, ok := parseID(c, "oid")
	if !ok {
		return invalidID(c, "oid")
	}

	order, err := h.Orders.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, order, fiber.StatusOK)
}

// AddProduct handles PUT /orders/:oid/add_product/:pid
// @Summary Attach a product to an order
// @Description Attaching a product that is already on the order succeeds without change
// @Tags Orders
// @Produce json
// @Param oid path int true "Order ID"
// @Param pid path int true "Product ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /orders/{oid}/add_product/{pid} [put]
func (h *OrderHandler) AddProduct(c *fiber.Ctx) error {
	orderID, ok := parseID(c, "oid")
	if !ok {
		return invalidID(c, "oid")
	}
	productID, ok := parseID(c, "pid")
	if !ok {
		return invalidID(c, "pid")
	}

	attached, err := h.Orders.AttachProduct(c.UserContext(), orderID, productID)
	if err != nil {
		return respondError(c, err)
	}
	if !attached {
		return utils.MessageResponse(c, "Product already in order")
	}
	return utils.MessageResponse(c, "Product added to order")
}

// RemoveProduct handles DELETE /orders/:oid/remove_product/:pid
// @Summary Detach a product from an order
// @Description Detaching a product that is not on the order succeeds without change
// @Tags Orders
// @Produce json
// @Param oid path int true "Order ID"
// @Param pid path int true "Product ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /orders/{oid}/remove_product/{pid} [delete]
func (h *OrderHandler) RemoveProduct(c *fiber.Ctx) error {
	orderID, ok := parseID(c, "oid")
	if !ok {
		return invalidID(c, "oid")
	}
	productID, ok := parseID(c, "pid")
	if !ok {
		return invalidID(c, "pid")
	}

	detached, err := h.Orders.DetachProduct(c.UserContext(), orderID, productID)
	if err != nil {
		return respondError(c, err)
	}
	if !detached {
		return utils.MessageResponse(c, "Product not in order")
	}
	return utils.MessageResponse(c, "Product removed from order")
}

// ListUserOrders handles GET /orders/user/:uid
// @Summary List a user's orders
// @Tags Orders
// @Produce json
// @Param uid path int true "User ID"
// @Success 200 {array} models.Order
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /orders/user/{uid} [get]
func (h *OrderHandler) ListUserOrders(c *fiber.Ctx) error {
	userID, ok := parseID(c, "uid")
	if !ok {
		return invalidID(c, "uid")
	}

	orders, err := h.Orders.ListForUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, orders, fiber.StatusOK)
}

// ListOrderProducts handles GET /orders/:oid/products
// @Summary List the products on an order
// @Tags Orders
// @Produce json
// @Param oid path int true "Order ID"
// @Success 200 {array} models.Product
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /orders/{oid}/products [get]
func (h *OrderHandler) ListOrderProducts(c *fiber.Ctx) error {
	orderID, ok := parseID(c, "oid")
	if !ok {
		return invalidID(c, "oid")
	}

	products, err := h.Orders.ListProducts(c.UserContext(), orderID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, products, fiber.StatusOK)
}
