package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/padhisneha/vedida-ecommerce-sub000/app/repository"
	"github.com/padhisneha/vedida-ecommerce-sub000/internal/pkg/usercontext"
)

type cartItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// HandleCartGet returns the authenticated user's cart, creating an empty
// one on first access.
func HandleCartGet(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	cart, err := repository.GetGlobalFactory().GetCartRepository().GetOrCreateByUserID(userID)
	if err != nil {
		log.Errorf("[Cart] Failed to load cart for user %d: %v", userID, err)
		return internalError(c, "Failed to load cart")
	}

	return c.JSON(cart)
}

// HandleCartAddItem adds a product to the cart. Adding an already-present
// product increments its quantity.
func HandleCartAddItem(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	var req cartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Quantity < 1 {
		return badRequest(c, "Quantity must be at least 1")
	}

	repos := repository.GetGlobalFactory()

	product, err := repos.GetProductRepository().GetByID(req.ProductID)
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "Product not found")
		}
		return internalError(c, "Failed to load product")
	}
	if !product.InStock {
		return conflict(c, "Product is out of stock")
	}

	cart, err := repos.GetCartRepository().GetOrCreateByUserID(userID)
	if err != nil {
		log.Errorf("[Cart] Failed to load cart for user %d: %v", userID, err)
		return internalError(c, "Failed to load cart")
	}

	if err := repos.GetCartRepository().AddItem(cart.ID, req.ProductID, req.Quantity); err != nil {
		log.Errorf("[Cart] Failed to add product %d to cart %d: %v", req.ProductID, cart.ID, err)
		return internalError(c, "Failed to add item")
	}

	cart, err = repos.GetCartRepository().GetOrCreateByUserID(userID)
	if err != nil {
		return internalError(c, "Failed to load cart")
	}
	return c.Status(fiber.StatusCreated).JSON(cart)
}

// HandleCartUpdateItem sets the quantity of a cart line. Quantity 0
// removes the line.
func HandleCartUpdateItem(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	productID, err := strconv.ParseUint(c.Params("productId"), 10, 32)
	if err != nil {
		return badRequest(c, "Invalid product id")
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Quantity < 0 {
		return badRequest(c, "Quantity must not be negative")
	}

	repos := repository.GetGlobalFactory()
	cart, err := repos.GetCartRepository().GetOrCreateByUserID(userID)
	if err != nil {
		return internalError(c, "Failed to load cart")
	}

	if req.Quantity == 0 {
		err = repos.GetCartRepository().RemoveItem(cart.ID, uint(productID))
	} else {
		err = repos.GetCartRepository().UpdateItemQuantity(cart.ID, uint(productID), req.Quantity)
	}
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "Item not in cart")
		}
		log.Errorf("[Cart] Failed to update item %d in cart %d: %v", productID, cart.ID, err)
		return internalError(c, "Failed to update item")
	}

	cart, err = repos.GetCartRepository().GetOrCreateByUserID(userID)
	if err != nil {
		return internalError(c, "Failed to load cart")
	}
	return c.JSON(cart)
}

// HandleCartRemoveItem deletes a line from the cart.
func HandleCartRemoveItem(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	productID, err := strconv.ParseUint(c.Params("productId"), 10, 32)
	if err != nil {
		return badRequest(c, "Invalid product id")
	}

	repos := repository.GetGlobalFactory()
	cart, err := repos.GetCartRepository().GetOrCreateByUserID(userID)
	if err != nil {
		return internalError(c, "Failed to load cart")
	}

	if err := repos.GetCartRepository().RemoveItem(cart.ID, uint(productID)); err != nil {
		if isNotFound(err) {
			return notFound(c, "Item not in cart")
		}
		log.Errorf("[Cart] Failed to remove item %d from cart %d: %v", productID, cart.ID, err)
		return internalError(c, "Failed to remove item")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
