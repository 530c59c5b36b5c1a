package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"redlink/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jinzhu/now"
	"golang.org/x/crypto/bcrypt"
)

// MinDonorAge is the minimum age to register as a donor.
const MinDonorAge = 18

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword compares a bcrypt hash with a candidate plaintext.
func CheckPassword(hashed, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(candidate)) == nil
}

// GenerateToken signs a JWT for the given subject. Role is "donor" or
// "admin" and drives route guards.
func GenerateToken(id uint, email, role string, expiry time.Duration) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET is not set")
	}

	claims := jwt.MapClaims{
		"id":    id,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(expiry).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a signed JWT and returns its claims.
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// CalculateAge returns full years elapsed since dob.
func CalculateAge(dob time.Time) int {
	currentTime := time.Now()

	years := currentTime.Year() - dob.Year()
	months := int(currentTime.Month()) - int(dob.Month())
	days := currentTime.Day() - dob.Day()

	if months < 0 {
		years--
		months += 12
	}
	if days < 0 {
		previousMonth := now.With(currentTime).BeginningOfMonth().AddDate(0, 0, -1)
		days += previousMonth.Day()
		months--
		if months < 0 {
			years--
		}
	}

	return years
}

// CreateSanitizedLogEntry builds a log entry from the request with
// credentials stripped out of the recorded headers and body.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	headers := make(map[string]string)
	for key, values := range c.GetReqHeaders() {
		if key == fiber.HeaderAuthorization || key == fiber.HeaderCookie {
			headers[key] = "[REDACTED]"
			continue
		}
		if len(values) > 0 {
			headers[key] = values[0]
		}
	}
	headerJSON, _ := json.Marshal(headers)

	body := string(c.Body())
	var parsed map[string]interface{}
	if err := json.Unmarshal(c.Body(), &parsed); err == nil {
		if _, ok := parsed["password"]; ok {
			parsed["password"] = "[REDACTED]"
			if sanitized, err := json.Marshal(parsed); err == nil {
				body = string(sanitized)
			}
		}
	}

	return types.LogEntry{
		Method:          c.Method(),
		URL:             c.OriginalURL(),
		RequestBody:     body,
		RequestHeaders:  string(headerJSON),
		ResponseBody:    string(c.Response().Body()),
		ResponseHeaders: "",
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}
