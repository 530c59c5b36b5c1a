package otp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"redlink/config"
	"redlink/logger"
	"redlink/middleware"
	"redlink/models/user"
	"redlink/services/notification"
	otpService "redlink/services/otp"
	"redlink/storage"
	"redlink/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []string
}

func (f *fakeSender) Send(to, subject, htmlBody string) error {
	f.sent = append(f.sent, to)
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *storage.MemoryStore, *otpService.MemoryStore, *fakeSender) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	store := storage.NewMemoryStore()
	codes := otpService.NewMemoryStore()
	sender := &fakeSender{}
	service := otpService.NewService(codes, notification.NewDispatcher(sender), config.OTPConfig{Expiry: 5 * time.Minute})
	controller := NewOTPController(store, service, logger.NewAsyncLogger(nil))

	app := fiber.New()
	api := app.Group("/api/v1")
	requireAuth := middleware.RequireAuth()
	api.Post("/generate-otp", requireAuth, controller.Generate)
	api.Post("/verify-otp", requireAuth, controller.Verify)
	api.Post("/generate-bank-otp", controller.GenerateBankOTP)
	api.Post("/verify-bank-otp", controller.VerifyBankOTP)
	return app, store, codes, sender
}

func postJSON(t *testing.T, app *fiber.App, target string, payload interface{}, token string) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestBankOTPFlow(t *testing.T) {
	app, _, codes, sender := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/generate-bank-otp", map[string]string{"email": "bank@example.com"}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, []string{"bank@example.com"}, sender.sent)

	code, err := codes.Get(context.Background(), "bank@example.com")
	require.NoError(t, err)

	resp = postJSON(t, app, "/api/v1/verify-bank-otp", map[string]string{
		"email": "bank@example.com",
		"otp":   code,
	}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The code was consumed; a replay must be rejected.
	resp = postJSON(t, app, "/api/v1/verify-bank-otp", map[string]string{
		"email": "bank@example.com",
		"otp":   code,
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestVerifyBankOTPWrongCode(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/generate-bank-otp", map[string]string{"email": "bank@example.com"}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = postJSON(t, app, "/api/v1/verify-bank-otp", map[string]string{
		"email": "bank@example.com",
		"otp":   "000000",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGenerateBankOTPRequiresEmail(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/generate-bank-otp", map[string]string{}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDonorOTPFlowUsesSessionEmail(t *testing.T) {
	app, store, codes, sender := newTestApp(t)

	donor := &user.User{
		FullName:     "Asha Verma",
		Gender:       user.GenderFemale,
		BloodGroup:   user.BloodGroupOPositive,
		Availability: true,
		Phone:        "9000000001",
		Email:        "asha@example.com",
		State:        "Delhi",
		City:         "Delhi",
		Pincode:      "110001",
		Password:     "hashed",
	}
	require.NoError(t, store.CreateUser(donor))

	token, err := utils.GenerateToken(donor.ID, donor.Email, "donor", time.Hour)
	require.NoError(t, err)

	resp := postJSON(t, app, "/api/v1/generate-otp", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, []string{"asha@example.com"}, sender.sent)

	code, err := codes.Get(context.Background(), "asha@example.com")
	require.NoError(t, err)

	resp = postJSON(t, app, "/api/v1/verify-otp", map[string]string{"otp": code}, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDonorOTPRequiresAuth(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/generate-otp", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
