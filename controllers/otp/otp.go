package otp

import (
	"errors"

	"redlink/logger"
	"redlink/middleware"
	otpService "redlink/services/otp"
	"redlink/storage"
	"redlink/types"
	otpTypes "redlink/types/otp"

	"github.com/gofiber/fiber/v2"
)

// OTPController gates sensitive actions behind email-verified one-time
// codes: appointment booking (session email) and blood bank registration
// (bank email).
type OTPController struct {
	store          storage.Store
	service        *otpService.Service
	loggerInstance *logger.AsyncLogger
}

func NewOTPController(store storage.Store, service *otpService.Service, asyncLogger *logger.AsyncLogger) *OTPController {
	return &OTPController{
		store:          store,
		service:        service,
		loggerInstance: asyncLogger,
	}
}

// Generate issues an OTP to the authenticated donor's email.
func (oc *OTPController) Generate(c *fiber.Ctx) error {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
		})
	}

	donor, err := oc.store.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "User not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to load user for OTP", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to send OTP",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return oc.issue(c, donor.Email)
}

// Verify checks the code submitted by the authenticated donor.
func (oc *OTPController) Verify(c *fiber.Ctx) error {
	email, ok := middleware.SessionEmail(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req otpTypes.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil || req.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "OTP is required",
			Status:  fiber.StatusBadRequest,
		})
	}

	return oc.verify(c, email, req.OTP)
}

// GenerateBankOTP issues an OTP to a prospective blood bank's email. Public:
// the bank has no session during registration.
func (oc *OTPController) GenerateBankOTP(c *fiber.Ctx) error {
	var req otpTypes.BankOTPRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Email is required",
			Status:  fiber.StatusBadRequest,
		})
	}

	return oc.issue(c, req.Email)
}

// VerifyBankOTP checks the code sent to a blood bank's email.
func (oc *OTPController) VerifyBankOTP(c *fiber.Ctx) error {
	var req otpTypes.VerifyBankOTPRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Email and OTP are required",
			Status:  fiber.StatusBadRequest,
		})
	}

	return oc.verify(c, req.Email, req.OTP)
}

func (oc *OTPController) issue(c *fiber.Ctx, email string) error {
	_, err := oc.service.Issue(c.Context(), email)
	if err != nil {
		logger.Error("Failed to issue OTP for "+email, err)
		// The code is stored either way when delivery fails; the caller
		// just cannot receive it, so surface the failure.
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to send OTP",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OTP sent successfully",
		Data: otpTypes.OTPResponse{
			Message: "OTP sent to your email",
			Success: true,
		},
	})
}

func (oc *OTPController) verify(c *fiber.Ctx, email, code string) error {
	err := oc.service.Verify(c.Context(), email, code)
	if err != nil {
		// Missing, expired, consumed and mismatched codes all read the
		// same to the client.
		if errors.Is(err, otpService.ErrNoCode) || errors.Is(err, otpService.ErrInvalidCode) {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "Invalid OTP",
				Status:  fiber.StatusBadRequest,
			})
		}
		logger.Error("Failed to verify OTP for "+email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to verify OTP",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OTP verified successfully",
	})
}
