package admin

import (
	"errors"
	"strconv"

	"redlink/logger"
	"redlink/storage"
	"redlink/types"

	"github.com/gofiber/fiber/v2"
)

// AdminController serves the console views over users and blood banks.
type AdminController struct {
	store          storage.Store
	loggerInstance *logger.AsyncLogger
}

func NewAdminController(store storage.Store, asyncLogger *logger.AsyncLogger) *AdminController {
	return &AdminController{
		store:          store,
		loggerInstance: asyncLogger,
	}
}

// ListUsers returns every registered donor.
func (ac *AdminController) ListUsers(c *fiber.Ctx) error {
	users, err := ac.store.ListUsers()
	if err != nil {
		logger.Error("Failed to list users", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Registered users",
		Data:    users,
	})
}

// ListBloodBanks returns every registered blood bank.
func (ac *AdminController) ListBloodBanks(c *fiber.Ctx) error {
	banks, err := ac.store.ListBloodBanks()
	if err != nil {
		logger.Error("Failed to list blood banks", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Blood banks",
		Data:    banks,
	})
}

// DeleteUser removes a donor account.
func (ac *AdminController) DeleteUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid user id",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := ac.store.DeleteUser(uint(id)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "User not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to delete user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Admin deleted user " + c.Params("id"))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "User deleted successfully",
	})
}

// DeleteBloodBank removes a blood bank.
func (ac *AdminController) DeleteBloodBank(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid blood bank id",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := ac.store.DeleteBloodBank(uint(id)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Blood bank not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to delete blood bank", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Admin deleted blood bank " + c.Params("id"))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Blood bank deleted successfully",
	})
}
