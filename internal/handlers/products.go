package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/storedb/internal/services"
	"github.com/localnerve/storedb/internal/utils"
)

// ProductHandler handles product routes
type ProductHandler struct {
	Products *services.ProductService
}

// ListProducts handles GET /products
// @Summary List products
// @Tags Products
// @Produce json
// @Success 200 {array} models.Product
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /products [get]
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.Products.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, products, fiber.StatusOK)
}

// GetProduct handles GET /products/:id
// @Summary Get a product
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}

	product, err := h.Products.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, product, fiber.StatusOK)
}

// CreateProduct handles POST /products
// @Summary Create a product
// @Tags Products
// @Accept json
// @Produce json
// @Param body body services.CreateProductInput true "Product"
// @Success 201 {object} models.Product
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var body services.CreateProductInput
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c, err)
	}

	product, err := h.Products.Create(c.UserContext(), body)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, product, fiber.StatusCreated)
}

// UpdateProduct handles PUT /products/:id
// @Summary Update a product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param body body services.UpdateProductInput true "Fields to change"
// @Success 200 {object} models.Product
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}

	var body services.UpdateProductInput
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c, err)
	}

	product, err := h.Products.Update(c.UserContext(), id, body)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, product, fiber.StatusOK)
}

// DeleteProduct handles DELETE /products/:id
// @Summary Delete a product
// @Description Delete a product and detach it from any order holding it
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}

	if err := h.Products.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return utils.MessageResponse(c, "Product deleted")
}
