package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/padhisneha/vedida-ecommerce-sub000/app/models"
	"github.com/padhisneha/vedida-ecommerce-sub000/app/repository"
	"github.com/padhisneha/vedida-ecommerce-sub000/internal/pkg/usercontext"
)

type addressRequest struct {
	Label      string `json:"label"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	IsDefault  bool   `json:"is_default"`
}

// HandleAddressList returns the user's address book.
func HandleAddressList(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	addresses, err := repository.GetGlobalFactory().GetAddressRepository().GetByUserID(userID)
	if err != nil {
		log.Errorf("[Address] Failed to list addresses for user %d: %v", userID, err)
		return internalError(c, "Failed to load addresses")
	}

	return c.JSON(fiber.Map{"addresses": addresses})
}

// HandleAddressCreate adds an address-book entry.
func HandleAddressCreate(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	var req addressRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	address := &models.Address{
		UserID:     userID,
		Label:      req.Label,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
	}
	if address.Label == "" {
		address.Label = "home"
	}
	if err := address.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	repo := repository.GetGlobalFactory().GetAddressRepository()
	if err := repo.Create(address); err != nil {
		log.Errorf("[Address] Failed to create address for user %d: %v", userID, err)
		return internalError(c, "Failed to create address")
	}

	if req.IsDefault {
		if err := repo.SetDefault(userID, address.ID); err != nil {
			log.Errorf("[Address] Failed to set default address %d: %v", address.ID, err)
			return internalError(c, "Failed to set default address")
		}
		address.IsDefault = true
	}

	return c.Status(fiber.StatusCreated).JSON(address)
}

// HandleAddressUpdate edits an address-book entry. Historical order and
// subscription snapshots are unaffected.
func HandleAddressUpdate(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	addressID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return badRequest(c, "Invalid address id")
	}

	repo := repository.GetGlobalFactory().GetAddressRepository()
	address, err := repo.GetByID(uint(addressID))
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "Address not found")
		}
		return internalError(c, "Failed to load address")
	}
	if address.UserID != userID {
		return notFound(c, "Address not found")
	}

	var req addressRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	address.Label = req.Label
	address.Line1 = req.Line1
	address.Line2 = req.Line2
	address.City = req.City
	address.State = req.State
	address.PostalCode = req.PostalCode
	if address.Label == "" {
		address.Label = "home"
	}
	if err := address.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repo.Update(address); err != nil {
		log.Errorf("[Address] Failed to update address %d: %v", address.ID, err)
		return internalError(c, "Failed to update address")
	}

	return c.JSON(address)
}

// HandleAddressDelete removes an address-book entry.
func HandleAddressDelete(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	addressID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return badRequest(c, "Invalid address id")
	}

	repo := repository.GetGlobalFactory().GetAddressRepository()
	address, err := repo.GetByID(uint(addressID))
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "Address not found")
		}
		return internalError(c, "Failed to load address")
	}
	if address.UserID != userID {
		return notFound(c, "Address not found")
	}

	if err := repo.Delete(address.ID); err != nil {
		log.Errorf("[Address] Failed to delete address %d: %v", address.ID, err)
		return internalError(c, "Failed to delete address")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAddressSetDefault marks an address as the user's default.
func HandleAddressSetDefault(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	addressID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return badRequest(c, "Invalid address id")
	}

	repo := repository.GetGlobalFactory().GetAddressRepository()
	address, err := repo.GetByID(uint(addressID))
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "Address not found")
		}
		return internalError(c, "Failed to load address")
	}
	if address.UserID != userID {
		return notFound(c, "Address not found")
	}

	if err := repo.SetDefault(userID, address.ID); err != nil {
		log.Errorf("[Address] Failed to set default address %d: %v", address.ID, err)
		return internalError(c, "Failed to set default address")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
