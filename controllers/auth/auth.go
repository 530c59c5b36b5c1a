package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"redlink/logger"
	"redlink/models/user"
	"redlink/storage"
	"redlink/types"
	authTypes "redlink/types/auth"
	"redlink/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// AuthController handles donor and admin authentication.
type AuthController struct {
	store          storage.Store
	loggerInstance *logger.AsyncLogger
	tokenExpiry    time.Duration
}

func NewAuthController(store storage.Store, asyncLogger *logger.AsyncLogger, tokenExpiry time.Duration) *AuthController {
	return &AuthController{
		store:          store,
		loggerInstance: asyncLogger,
		tokenExpiry:    tokenExpiry,
	}
}

// setSessionCookie stores the JWT in an HTTP-only cookie.
func (h *AuthController) setSessionCookie(c *fiber.Ctx, token string) {
	isProduction := os.Getenv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		HTTPOnly: true,
		Secure:   isProduction,
		SameSite: "Lax",
		MaxAge:   int(h.tokenExpiry.Seconds()),
		Path:     "/",
	})
}

// Register creates a new donor account.
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req authTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "All fields are required",
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "date_of_birth must be YYYY-MM-DD",
			Status:  fiber.StatusBadRequest,
		})
	}
	if utils.CalculateAge(dob) < utils.MinDonorAge {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Donors must be at least %d years old", utils.MinDonorAge),
			Status:  fiber.StatusBadRequest,
		})
	}

	// Distinguish which unique field collides, matching the registration
	// form's field-level error display.
	if existing, err := h.store.FindUserByEmailOrPhone(req.Email, req.Phone); err == nil {
		msg := "Phone number already registered"
		if existing.Email == req.Email {
			msg = "Email already registered"
		}
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: msg,
			Status:  fiber.StatusBadRequest,
		})
	} else if !errors.Is(err, storage.ErrNotFound) {
		logger.Error("Failed to check existing user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to register user",
			Status:  fiber.StatusInternalServerError,
		})
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to register user",
			Status:  fiber.StatusInternalServerError,
		})
	}

	newUser := user.User{
		FullName:     req.FullName,
		Gender:       req.Gender,
		DateOfBirth:  dob,
		BloodGroup:   user.BloodGroup(req.BloodGroup),
		Availability: true,
		Phone:        req.Phone,
		Email:        req.Email,
		State:        req.State,
		City:         req.City,
		Pincode:      req.Pincode,
		Password:     hashed,
	}
	if err := h.store.CreateUser(&newUser); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "Email or phone already registered",
				Status:  fiber.StatusBadRequest,
			})
		}
		logger.Error("Failed to create user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to register user",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success("User registered successfully: " + newUser.Email)

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "User registered successfully",
	})
}

// Login authenticates a donor and sets the session cookie.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Please provide both email and password",
			Status:  fiber.StatusBadRequest,
		})
	}

	donor, err := h.store.GetUserByEmail(req.Email)
	if err != nil || !utils.CheckPassword(donor.Password, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid email or password",
			Status:  fiber.StatusUnauthorized,
		})
	}

	token, err := utils.GenerateToken(donor.ID, donor.Email, "donor", h.tokenExpiry)
	if err != nil {
		logger.Error("Failed to sign token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}
	h.setSessionCookie(c, token)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Login successful",
		Data: authTypes.LoginResponse{
			ID:       donor.ID,
			FullName: donor.FullName,
			Email:    donor.Email,
		},
	})
}

// Logout clears the session cookie.
func (h *AuthController) Logout(c *fiber.Ctx) error {
	c.ClearCookie("token")
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Logout successful",
	})
}

// AdminLogin authenticates a console account; the issued token carries the
// admin role claim.
func (h *AuthController) AdminLogin(c *fiber.Ctx) error {
	var req authTypes.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	account, err := h.store.GetAdminByEmail(req.Email)
	if err != nil || !utils.CheckPassword(account.Password, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid email or password",
			Status:  fiber.StatusUnauthorized,
		})
	}

	token, err := utils.GenerateToken(account.ID, account.Email, "admin", h.tokenExpiry)
	if err != nil {
		logger.Error("Failed to sign admin token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}
	h.setSessionCookie(c, token)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Login successful",
	})
}
