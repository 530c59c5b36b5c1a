package bloodbank

import (
	"errors"

	"redlink/logger"
	bankModel "redlink/models/bloodbank"
	"redlink/storage"
	"redlink/types"
	bankTypes "redlink/types/bloodbank"

	"github.com/gofiber/fiber/v2"
)

// BloodBankController handles blood bank registration and listing.
type BloodBankController struct {
	store          storage.Store
	loggerInstance *logger.AsyncLogger
}

func NewBloodBankController(store storage.Store, asyncLogger *logger.AsyncLogger) *BloodBankController {
	return &BloodBankController{
		store:          store,
		loggerInstance: asyncLogger,
	}
}

// Add registers a new blood bank. Names are unique.
func (bc *BloodBankController) Add(c *fiber.Ctx) error {
	var req bankTypes.AddRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	if _, err := bc.store.GetBloodBankByName(req.Name); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Blood bank already exists in the database",
			Status:  fiber.StatusBadRequest,
		})
	} else if !errors.Is(err, storage.ErrNotFound) {
		logger.Error("Failed to check existing blood bank", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to add blood bank",
			Status:  fiber.StatusInternalServerError,
		})
	}

	bank := bankModel.BloodBank{
		Name: req.Name,
		Location: bankModel.Location{
			Address: req.Address,
			City:    req.City,
			State:   req.State,
			Pincode: req.Pincode,
		},
		Contact: bankModel.Contact{
			Phone: req.Phone,
			Email: req.Email,
		},
		OperatingHours: bankModel.OperatingHours{
			Open:  req.Open,
			Close: req.Close,
		},
	}
	if err := bc.store.CreateBloodBank(&bank); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "Blood bank already exists in the database",
				Status:  fiber.StatusBadRequest,
			})
		}
		logger.Error("Failed to add blood bank", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to add blood bank",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Blood bank added: " + bank.Name)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Blood bank added successfully",
		Data:    bank,
	})
}

// List returns all blood banks sorted by name.
func (bc *BloodBankController) List(c *fiber.Ctx) error {
	banks, err := bc.store.ListBloodBanks()
	if err != nil {
		logger.Error("Failed to fetch blood banks", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to fetch blood banks",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Blood banks",
		Data:    banks,
	})
}
