package middleware

import (
	"strings"

	"redlink/types"
	"redlink/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// tokenFromRequest reads the session token from the cookie set at login,
// falling back to a Bearer header for non-browser clients.
func tokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies("token"); token != "" {
		return token
	}
	authHeader := c.Get(fiber.HeaderAuthorization)
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
		Message: message,
		Status:  fiber.StatusUnauthorized,
	})
}

// RequireAuth guards donor routes. On success the JWT claims are stored in
// c.Locals("user").
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			return unauthorized(c, "Access denied. No token provided.")
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals("user", claims)
		return c.Next()
	}
}

// RequireAdmin guards the admin console: a valid token whose role claim is
// "admin".
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			return unauthorized(c, "Access denied. No token provided.")
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		if role, _ := claims["role"].(string); role != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
				Message: "You do not have permission to perform this action",
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}

// SessionUserID extracts the numeric subject from the claims set by
// RequireAuth.
func SessionUserID(c *fiber.Ctx) (uint, bool) {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return 0, false
	}
	return uint(id), true
}

// SessionEmail extracts the email claim set by RequireAuth.
func SessionEmail(c *fiber.Ctx) (string, bool) {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return "", false
	}
	email, ok := claims["email"].(string)
	return email, ok && email != ""
}
