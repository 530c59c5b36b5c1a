package bloodbank

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"redlink/logger"
	"redlink/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, *storage.MemoryStore) {
	t.Helper()

	store := storage.NewMemoryStore()
	controller := NewBloodBankController(store, logger.NewAsyncLogger(nil))

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Post("/add-bloodbank", controller.Add)
	api.Get("/blood-banks", controller.List)
	return app, store
}

func validBank() map[string]string {
	return map[string]string{
		"name":    "Rotary Blood Bank",
		"address": "12 Ring Road",
		"city":    "Delhi",
		"state":   "Delhi",
		"pincode": "110001",
		"phone":   "01123456789",
		"email":   "rotary@example.com",
		"open":    "09:00",
		"close":   "17:00",
	}
}

func addBank(t *testing.T, app *fiber.App, payload map[string]string) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/add-bloodbank", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAddBloodBank(t *testing.T) {
	app, store := newTestApp(t)

	resp := addBank(t, app, validBank())
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	bank, err := store.GetBloodBankByName("Rotary Blood Bank")
	require.NoError(t, err)
	assert.Equal(t, "Delhi", bank.Location.City)
	assert.Equal(t, "rotary@example.com", bank.Contact.Email)
	assert.Equal(t, "09:00", bank.OperatingHours.Open)
}

func TestAddBloodBankRejectsDuplicateName(t *testing.T) {
	app, _ := newTestApp(t)

	resp := addBank(t, app, validBank())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = addBank(t, app, validBank())
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Blood bank already exists in the database", body["message"])
}

func TestAddBloodBankValidatesOperatingHours(t *testing.T) {
	app, _ := newTestApp(t)

	payload := validBank()
	payload["open"] = "9am"
	resp := addBank(t, app, payload)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAddBloodBankAllowsMissingEmail(t *testing.T) {
	app, _ := newTestApp(t)

	payload := validBank()
	delete(payload, "email")
	resp := addBank(t, app, payload)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestListBloodBanks(t *testing.T) {
	app, _ := newTestApp(t)

	require.Equal(t, fiber.StatusCreated, addBank(t, app, validBank()).StatusCode)
	second := validBank()
	second["name"] = "Apollo Blood Bank"
	require.Equal(t, fiber.StatusCreated, addBank(t, app, second).StatusCode)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/blood-banks", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	banks, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, banks, 2)
	first, ok := banks[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Apollo Blood Bank", first["name"])
}
