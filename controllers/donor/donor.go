package donor

import (
	"errors"
	"fmt"

	"redlink/logger"
	"redlink/middleware"
	"redlink/models/user"
	"redlink/services/notification"
	"redlink/storage"
	"redlink/types"
	donorTypes "redlink/types/donor"
	"redlink/utils"

	"github.com/gofiber/fiber/v2"
)

// DonorController handles donor profile management and the public donor
// search surface.
type DonorController struct {
	store          storage.Store
	dispatcher     *notification.Dispatcher
	loggerInstance *logger.AsyncLogger
}

func NewDonorController(store storage.Store, dispatcher *notification.Dispatcher, asyncLogger *logger.AsyncLogger) *DonorController {
	return &DonorController{
		store:          store,
		dispatcher:     dispatcher,
		loggerInstance: asyncLogger,
	}
}

// GetProfile returns the authenticated donor's record.
func (dc *DonorController) GetProfile(c *fiber.Ctx) error {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
		})
	}

	donor, err := dc.store.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Donor not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to fetch donor profile", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to fetch donor profile",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Profile data",
		Data:    donor,
	})
}

// UpdateProfile applies the mutable profile fields; empty fields are left
// unchanged.
func (dc *DonorController) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req donorTypes.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	fields := make(map[string]interface{})
	if req.FullName != "" {
		fields["full_name"] = req.FullName
	}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}
	if req.State != "" {
		fields["state"] = req.State
	}
	if req.City != "" {
		fields["city"] = req.City
	}
	if req.Pincode != "" {
		fields["pincode"] = req.Pincode
	}
	if len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "No fields to update",
			Status:  fiber.StatusBadRequest,
		})
	}

	updated, err := dc.store.UpdateUserProfile(userID, fields)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Donor not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to update donor profile", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to update donor profile",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Profile updated successfully",
		Data:    updated,
	})
}

// ToggleAvailability atomically flips the donor's availability flag and
// returns the new value.
func (dc *DonorController) ToggleAvailability(c *fiber.Ctx) error {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
		})
	}

	availability, err := dc.store.ToggleAvailability(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "User not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to toggle availability", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to update availability",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Availability updated successfully",
		Data:    fiber.Map{"availability": availability},
	})
}

// Search is the public donor lookup: exact blood group, available donors
// only, optional case-insensitive city substring.
func (dc *DonorController) Search(c *fiber.Ctx) error {
	bloodGroup := c.Query("bloodGroup")
	location := c.Query("location")

	if bloodGroup == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Blood group is required",
			Status:  fiber.StatusBadRequest,
		})
	}
	if !user.IsValidBloodGroup(bloodGroup) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid blood group",
			Status:  fiber.StatusBadRequest,
		})
	}

	donors, err := dc.store.SearchDonors(user.BloodGroup(bloodGroup), location)
	if err != nil {
		logger.Error("Failed to search donors", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to search donors",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Donors found",
		Data:    donors,
	})
}

// SendEmails fans out the "blood needed" alert to the donors a seeker
// selected. Per-recipient outcomes are collected; partial failure is
// reported, not hidden behind an all-or-nothing boolean.
func (dc *DonorController) SendEmails(c *fiber.Ctx) error {
	var req donorTypes.SendEmailsRequest
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

	msgs := make([]notification.Message, 0, len(req.Donors))
	for _, d := range req.Donors {
		if d.Email == "" {
			continue
		}
		msgs = append(msgs, notification.BloodNeededMessage(
			d, req.SeekerDetails.Phone, req.SeekerDetails.Area, req.SeekerDetails.Message))
	}
	if len(msgs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "No donor has a reachable email address",
			Status:  fiber.StatusBadRequest,
		})
	}

	results := dc.dispatcher.SendBatch(msgs)
	failed := notification.CountFailed(results)

	dc.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))

	if failed == len(results) {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to send alert emails",
			Status:  fiber.StatusInternalServerError,
		})
	}

	message := fmt.Sprintf("Alert sent to %d donors", len(results)-failed)
	if failed > 0 {
		message = fmt.Sprintf("Alert sent to %d donors, %d failed", len(results)-failed, failed)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: message,
		Data: fiber.Map{
			"sent":   len(results) - failed,
			"failed": failed,
		},
	})
}

// BloodGroupStats reports available donor counts for every blood group.
func (dc *DonorController) BloodGroupStats(c *fiber.Ctx) error {
	stats := make([]donorTypes.BloodGroupStat, 0, len(user.BloodGroups))
	for _, group := range user.BloodGroups {
		count, err := dc.store.CountAvailableByGroup(group)
		if err != nil {
			logger.Error("Failed to fetch blood group statistics", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Failed to fetch blood group statistics",
				Status:  fiber.StatusInternalServerError,
			})
		}
		stats = append(stats, donorTypes.BloodGroupStat{Group: string(group), Donors: count})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Blood group statistics",
		Data:    stats,
	})
}
