package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Otisxdes/Bog-la-platform-for-SME-s/initializers"
	"github.com/Otisxdes/Bog-la-platform-for-SME-s/models"
	"github.com/Otisxdes/Bog-la-platform-for-SME-s/routes"
	"github.com/Otisxdes/Bog-la-platform-for-SME-s/utils"
)

var testDBCounter int64

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Seller{},
		&models.CheckoutLink{},
		&models.Customer{},
		&models.Order{},
	)
	require.NoError(t, err)

	initializers.DB = db
	initializers.Redis = nil
	initializers.AppConfig = initializers.Config{
		JwtSecret:    "test-secret",
		JwtExpiresIn: time.Hour,
	}

	app := fiber.New()
	routes.SetupRoutes(app)
	routes.NotFoundRoute(app)

	return app
}

func createTestSeller(t *testing.T, name, email string) (models.Seller, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	seller := models.Seller{
		Name:     name,
		Slug:     utils.Slugify(name),
		Email:    email,
		Password: string(hashed),
	}
	require.NoError(t, initializers.DB.Create(&seller).Error)

	token, err := utils.GenerateToken(time.Hour, seller.ID.String(), "test-secret")
	require.NoError(t, err)

	return seller, token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}

	return resp, decoded
}

func validLinkInput() map[string]interface{} {
	return map[string]interface{}{
		"name":         "White Oversized Hoodie",
		"price":        150000,
		"currency":     "UZS",
		"default_qty":  1,
		"max_qty":      5,
		"sizes":        []string{"S", "M", "L"},
		"payment_note": "Pay via Payme to card 8600 1234 5678 9012",
		"delivery_options": map[string]bool{
			"courierCity": true,
			"pickup":      true,
			"region":      false,
		},
	}
}

func validOrderInput(linkID string) map[string]interface{} {
	return map[string]interface{}{
		"checkout_link_id": linkID,
		"quantity":         2,
		"selected_size":    "M",
		"delivery_method":  "pickup",
		"save_details":     false,
		"buyer": map[string]interface{}{
			"fullName": "Aziz Karimov",
			"phone":    "+998901234567",
			"city":     "Tashkent",
			"address":  "Chilonzor 5, 12",
			"username": "azizk",
		},
	}
}
