package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/ecobazaar/app/models"
	"github.com/shashiranjanraj/ecobazaar/app/routes"
	"github.com/shashiranjanraj/ecobazaar/pkg/database"
	"github.com/shashiranjanraj/ecobazaar/pkg/router"
	"github.com/shashiranjanraj/ecobazaar/pkg/testkit"
)

// newAPI wires the full route surface against a fresh in-memory database.
func newAPI(t *testing.T) http.Handler {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		_ = sqlDB.Close()
	})

	r := router.New()
	routes.RegisterAPI(r)
	return r.Handler()
}

// do fires a JSON request and decodes the response envelope.
func do(t *testing.T, h http.Handler, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env map[string]interface{}
	if len(rec.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env),
			"%s %s: body is not JSON: %s", method, path, rec.Body.String())
	}
	return rec.Code, env
}

// signup registers an account through the API and returns its token.
func signup(t *testing.T, h http.Handler, username, role string) string {
	t.Helper()

	code, env := do(t, h, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, code)

	payload := env["data"].(map[string]interface{})
	token := payload["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func data(t *testing.T, env map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := env["data"].(map[string]interface{})
	require.True(t, ok, "envelope has no data object: %v", env)
	return d
}

// ─── Scenario-driven unauthenticated surface ──────────────────────────────────

func TestAPI_PublicScenarios(t *testing.T) {
	h := newAPI(t)
	testkit.RunDir(t, h, "testdata")
}

// ─── Auth ─────────────────────────────────────────────────────────────────────

func TestAPI_SignupAndLogin(t *testing.T) {
	h := newAPI(t)

	token := signup(t, h, "asha", "BUYER")
	assert.NotEmpty(t, token)

	code, env := do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "asha",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Login successful", data(t, env)["message"])

	code, _ = do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "asha",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAPI_SignupDuplicate(t *testing.T) {
	h := newAPI(t)
	signup(t, h, "asha", "BUYER")

	code, _ := do(t, h, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "asha",
		"email":    "second@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, code)
}

func TestAPI_TokenValidation(t *testing.T) {
	h := newAPI(t)
	token := signup(t, h, "asha", "BUYER")

	code, env := do(t, h, http.MethodGet, "/api/test", token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "asha", data(t, env)["username"])

	code, _ = do(t, h, http.MethodGet, "/api/test", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

// ─── Role fences ──────────────────────────────────────────────────────────────

func TestAPI_RoleFences(t *testing.T) {
	h := newAPI(t)
	buyer := signup(t, h, "buyer", "BUYER")
	seller := signup(t, h, "seller", "SELLER")
	admin := signup(t, h, "root", "ADMIN")

	code, _ := do(t, h, http.MethodGet, "/api/seller/dashboard", buyer, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = do(t, h, http.MethodGet, "/api/admin/dashboard", seller, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// Admins may use the buyer and seller surfaces.
	code, _ = do(t, h, http.MethodGet, "/api/buyer/dashboard", admin, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = do(t, h, http.MethodGet, "/api/seller/dashboard", admin, nil)
	assert.Equal(t, http.StatusOK, code)
}

// ─── Catalogue lifecycle ──────────────────────────────────────────────────────

func TestAPI_ProductLifecycle(t *testing.T) {
	h := newAPI(t)
	buyer := signup(t, h, "buyer", "BUYER")
	seller := signup(t, h, "seller", "SELLER")
	admin := signup(t, h, "root", "ADMIN")

	// Seller lists a product; it starts PENDING.
	code, env := do(t, h, http.MethodPost, "/api/seller/products", seller, map[string]interface{}{
		"name":      "Bamboo Toothbrush",
		"price":     3.50,
		"quantity":  10,
		"ecoRating": 9.5,
	})
	require.Equal(t, http.StatusCreated, code)
	created := data(t, env)
	assert.Equal(t, "PENDING", created["status"])
	productID := uint(created["id"].(float64))

	// Invisible to buyers until approved.
	code, env = do(t, h, http.MethodGet, "/api/buyer/products", buyer, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, env["data"])

	// Admin sees it pending and approves.
	code, env = do(t, h, http.MethodGet, "/api/admin/products/pending", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, env["data"], 1)

	code, env = do(t, h, http.MethodPost, fmt.Sprintf("/api/admin/products/%d/approve", productID), admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "APPROVED", data(t, env)["status"])

	// Now in the public catalogue.
	code, env = do(t, h, http.MethodGet, fmt.Sprintf("/api/buyer/products/%d", productID), buyer, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Bamboo Toothbrush", data(t, env)["name"])
}

// ─── Cart and checkout ────────────────────────────────────────────────────────

func TestAPI_CartCheckoutFlow(t *testing.T) {
	h := newAPI(t)
	buyer := signup(t, h, "buyer", "BUYER")
	seller := signup(t, h, "seller", "SELLER")
	admin := signup(t, h, "root", "ADMIN")

	code, env := do(t, h, http.MethodPost, "/api/seller/products", seller, map[string]interface{}{
		"name":            "Solar Charger",
		"price":           20.00,
		"quantity":        5,
		"ecoRating":       8,
		"carbonFootprint": 1.5,
	})
	require.Equal(t, http.StatusCreated, code)
	productID := uint(data(t, env)["id"].(float64))

	code, _ = do(t, h, http.MethodPost, fmt.Sprintf("/api/admin/products/%d/approve", productID), admin, nil)
	require.Equal(t, http.StatusOK, code)

	// Empty-cart checkout is rejected.
	code, _ = do(t, h, http.MethodPost, "/api/buyer/cart/checkout", buyer, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, h, http.MethodPost, "/api/buyer/cart/add", buyer, map[string]interface{}{
		"productId": productID,
		"quantity":  2,
	})
	require.Equal(t, http.StatusCreated, code)

	code, env = do(t, h, http.MethodPost, "/api/buyer/cart/checkout", buyer, nil)
	require.Equal(t, http.StatusCreated, code)
	result := data(t, env)
	assert.InDelta(t, 40.00, result["totalAmount"].(float64), 1e-9)
	assert.InDelta(t, 3.0, result["totalCarbonFootprint"].(float64), 1e-9)
	assert.Equal(t, "PENDING", result["status"])

	// Cart is now empty; the order shows up in history.
	code, env = do(t, h, http.MethodGet, "/api/buyer/cart", buyer, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, env["data"])

	code, env = do(t, h, http.MethodGet, "/api/buyer/orders", buyer, nil)
	require.Equal(t, http.StatusOK, code)
	orders := env["data"].([]interface{})
	require.Len(t, orders, 1)
}
