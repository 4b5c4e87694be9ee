package handlers

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the user, product and order routes on router.
// /orders/user/:uid is registered ahead of /orders/:oid so "user" is never read as an order id.
func RegisterRoutes(router fiber.Router, users *UserHandler, products *ProductHandler, orders *OrderHandler) {
	router.Get("/users", users.ListUsers)
	router.Get("/users/:id", users.GetUser)
	router.Post("/users", users.CreateUser)
	router.Put("/users/:id", users.UpdateUser)
	router.Delete("/users/:id", users.DeleteUser)

	router.Get("/products", products.ListProducts)
	router.Get("/products/:id", products.GetProduct)
	router.Post("/products", products.CreateProduct)
	router.Put("/products/:id", products.UpdateProduct)
	router.Delete("/products/:id", products.DeleteProduct)

	router.Post("/orders", orders.CreateOrder)
	router.Get("/orders/user/:uid", orders.ListUserOrders)
	router.Get("/orders/:oid", orders.GetOrder)
	router.Get("/orders/:oid/products", orders.ListOrderProducts)
	router.Put("/orders/:oid/add_product/:pid", orders.AddProduct)
	router.Delete("/orders/:oid/remove_product/:pid", orders.RemoveProduct)
}
