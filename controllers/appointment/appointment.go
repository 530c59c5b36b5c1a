package appointment

import (
	"errors"

	"redlink/logger"
	"redlink/middleware"
	appointmentService "redlink/services/appointment"
	"redlink/storage"
	"redlink/types"
	appointmentTypes "redlink/types/appointment"
	"redlink/utils"

	"github.com/gofiber/fiber/v2"
)

// AppointmentController handles booking and the admin appointment listing.
type AppointmentController struct {
	ledger         *appointmentService.Service
	loggerInstance *logger.AsyncLogger
}

func NewAppointmentController(ledger *appointmentService.Service, asyncLogger *logger.AsyncLogger) *AppointmentController {
	return &AppointmentController{
		ledger:         ledger,
		loggerInstance: asyncLogger,
	}
}

// Book creates a pending appointment for the authenticated donor.
func (ac *AppointmentController) Book(c *fiber.Ctx) error {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req appointmentTypes.BookRequest
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

	appt, err := ac.ledger.Book(userID, req.BloodBankID, req.Date, req.Time)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Blood bank or user not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to book appointment", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to book appointment",
			Status:  fiber.StatusInternalServerError,
		})
	}

	ac.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Appointment booked successfully",
		Data:    appt,
	})
}

// ListByStatus returns appointments for the admin console, newest first.
func (ac *AppointmentController) ListByStatus(c *fiber.Ctx) error {
	status := c.Params("status")

	appointments, err := ac.ledger.ListByStatus(status)
	if err != nil {
		if errors.Is(err, appointmentService.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "Status must be pending or completed",
				Status:  fiber.StatusBadRequest,
			})
		}
		logger.Error("Failed to list appointments", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to list appointments",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Appointments",
		Data:    appointments,
	})
}
