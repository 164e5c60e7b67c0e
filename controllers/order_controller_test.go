package controllers_test

import (
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Otisxdes/Bog-la-platform-for-SME-s/initializers"
	"github.com/Otisxdes/Bog-la-platform-for-SME-s/models"
)

func useTestRedis(t *testing.T) {
	t.Helper()

	s := miniredis.RunT(t)
	initializers.Redis = redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { initializers.Redis = nil })
}

func TestCreateOrderComputesTotalPrice(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestSeller(t, "Test Seller", "seller@example.com")

	_, created := doJSON(t, app, http.MethodPost, "/api/checkout-links", token, validLinkInput())
	linkID := created["data"].(map[string]interface{})["id"].(string)

	input := validOrderInput(linkID)
	input["quantity"] = 2

	resp, body := doJSON(t, app, http.MethodPost, "/api/orders", "", input)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(300000), data["total_price"])
	assert.Equal(t, "new", data["payment_status"])
	assert.Equal(t, "pending", data["delivery_status"])
	assert.Equal(t, "M", data["selected_size"])
	assert.Nil(t, data["customer_id"])
}

func TestCreateOrderTotalIsNotRecomputed(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestSeller(t, "Test Seller", "seller@example.com")

	_, created := doJSON(t, app, http.MethodPost, "/api/checkout-links", token, validLinkInput())
	linkID := created["data"].(map[string]interface{})["id"].(string)

	resp, body := doJSON(t, app, http.MethodPost, "/api/orders", "", validOrderInput(linkID))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID := body["data"].(map[string]interface{})["id"].(string)

	// Raise the product price after the order was placed.
	update := validLinkInput()
	update["price"] = 999999
	resp, _ = doJSON(t, app, http.MethodPatch, "/api/checkout-links/"+linkID, token, update)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, orderBody := doJSON(t, app, http.MethodGet, "/api/orders/"+orderID, "", nil)
	data := orderBody["data"].(map[string]interface{})
	assert.Equal(t, float64(300000), data["total_price"])
}

func TestCreateOrderUnknownLink(t *testing.T) {
	app := setupTestApp(t)

	input := validOrderInput("3f6f6a64-0000-0000-0000-000000000000")
	resp, _ := doJSON(t, app, http.MethodPost, "/api/orders", "", input)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateOrderLinkLookupFailureIsServerError(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestSeller(t, "Test Seller", "seller@example.com")

	_, created := doJSON(t, app, http.MethodPost, "/api/checkout-links", token, validLinkInput())
	linkID := created["data"].(map[string]interface{})["id"].(string)

	// A broken database must not be reported as a missing link.
	require.NoError(t, initializers.DB.Migrator().DropTable(&models.CheckoutLink{}))

	resp, _ := doJSON(t, app, http.MethodPost, "/api/orders", "", validOrderInput(linkID))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestRepeatedSubmissionWithinWindowIsRejected(t *testing.T) {
	app := setupTestApp(t)
	useTestRedis(t)
	_, token := createTestSeller(t, "Test Seller", "seller@example.com")

	_, created := doJSON(t, app, http.MethodPost, "/api/checkout-links", token, validLinkInput())
	linkID := created["data"].(map[string]interface{})["id"].(string)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/orders", "", validOrderInput(linkID))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/orders", "", validOrderInput(linkID))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// A different quantity is a different submission.
	other := validOrderInput(linkID)
	other["quantity"] = 3
	resp, _ = doJSON(t, app, http.MethodPost, "/api/orders", "", other)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestSubmissionGuardReleasedWhenInsertFails(t *testing.T) {
	app := setupTestApp(t)
	useTestRedis(t)
	_, token := createTestSeller(t, "Test Seller", "seller@example.com")

	_, created := doJSON(t, app, http.MethodPost, "/api/checkout-links", token, validLinkInput())
	linkID := created["data"].(map[string]interface{})["id"].(string)

	require.NoError(t, initializers.DB.Migrator().DropTable(&models.Order{}))
	resp, _ := doJSON(t, app, http.MethodPost, "/api/orders", "", validOrderInput(linkID))
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// The failed attempt must not block the buyer's retry.
	require.NoError(t, initializers.DB.AutoMigrate(&models.Order{}))
	resp, _ = doJSON(t, app, http.MethodPost, "/api/orders", "", validOrderInput(linkID))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCreateOrderRejectsBadPhone(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestSeller(t, "Test Seller", "seller@example.com")

	_, created := doJSON(t, app, http.MethodPost, "/api/checkout-links", token, validLinkInput())
	linkID := created["data"].(map[string]interface{})["id"].(string)

	for _, phone := range []string{"998901234567", "+99890123456", "+9989012345678", "+7 900 123 45 67"} {
		input := validOrderInput(linkID)
		input["buyer"].(map[string]interface{})["phone"] = phone

		resp, _ := doJSON(t, app, http.MethodPost, "/api/orders", "", input)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "phone %q should be rejected", phone)
	}
}

func TestCreateOrderRejectsDisabledDeliveryMethod(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestSeller(t, "Test Seller", "seller@example.com")

	// validLinkInput enables courierCity and pickup but not region.
	_, created := doJSON(t, app, http.MethodPost, "/api/checkout-links", token, validLinkInput())
	linkID := created["data"].(map[string]interface{})["id"].(string)

	input := validOrderInput(linkID)
	input["delivery_method"] = "region"

	resp, _ := doJSON(t, app, http.MethodPost, "/api/orders", "", input)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSaveDetailsUpsertsCustomerByPhone(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestSeller(t, "Test Seller", "seller@example.com")

	_, created := doJSON(t, app, http.MethodPost, "/api/checkout-links", token, validLinkInput())
	linkID := created["data"].(map[string]interface{})["id"].(string)

	first := validOrderInput(linkID)
	first["save_details"] = true
	resp, _ := doJSON(t, app, http.MethodPost, "/api/orders", "", first)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	second := validOrderInput(linkID)
	second["save_details"] = true
	second["buyer"].(map[string]interface{})["city"] = "Samarkand"
	resp, _ = doJSON(t, app, http.MethodPost, "/api/orders", "", second)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var customers []models.Customer
	require.NoError(t, initializers.DB.Find(&customers).Error)
	require.Len(t, customers, 1)
	assert.Equal(t, "Samarkand", customers[0].City)
	assert.Equal(t, "+998901234567", customers[0].Phone)
	assert.True(t, customers[0].MarketingOptIn)

	// Customer directory shows one customer with two orders.
	resp, listBody := doJSON(t, app, http.MethodGet, "/api/customers", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := listBody["data"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, float64(2), list[0].(map[string]interface{})["total_orders"])

	resp, detail := doJSON(t, app, http.MethodGet, "/api/customers/"+customers[0].ID.String(), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, detail["orders"].([]interface{}), 2)
}

func TestSaveDetailsFalseCreatesNoCustomer(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestSeller(t, "Test Seller", "seller@example.com")

	_, created := doJSON(t, app, http.MethodPost, "/api/checkout-links", token, validLinkInput())
	linkID := created["data"].(map[string]interface{})["id"].(string)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/orders", "", validOrderInput(linkID))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var count int64
	initializers.DB.Model(&models.Customer{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestContactSnapshotIsDecoupledFromCustomer(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestSeller(t, "Test Seller", "seller@example.com")

	_, created := doJSON(t, app, http.MethodPost, "/api/checkout-links", token, validLinkInput())
	linkID := created["data"].(map[string]interface{})["id"].(string)

	first := validOrderInput(linkID)
	first["save_details"] = true
	_, firstBody := doJSON(t, app, http.MethodPost, "/api/orders", "", first)
	firstOrderID := firstBody["data"].(map[string]interface{})["id"].(string)

	// The same buyer resubmits with a different city; the customer row is
	// refreshed but the first order's snapshot must keep the old city.
	second := validOrderInput(linkID)
	second["save_details"] = true
	second["buyer"].(map[string]interface{})["city"] = "Samarkand"
	doJSON(t, app, http.MethodPost, "/api/orders", "", second)

	_, orderBody := doJSON(t, app, http.MethodGet, "/api/orders/"+firstOrderID, "", nil)
	snapshot := orderBody["data"].(map[string]interface{})["contact_snapshot"].(map[string]interface{})
	assert.Equal(t, "Tashkent", snapshot["city"])
}

func TestUpdateOrderStatusPartialUpdate(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestSeller(t, "Test Seller", "seller@example.com")

	_, created := doJSON(t, app, http.MethodPost, "/api/checkout-links", token, validLinkInput())
	linkID := created["data"].(map[string]interface{})["id"].(string)

	_, orderBody := doJSON(t, app, http.MethodPost, "/api/orders", "", validOrderInput(linkID))
	orderID := orderBody["data"].(map[string]interface{})["id"].(string)

	resp, body := doJSON(t, app, http.MethodPatch, "/api/orders", token, map[string]interface{}{
		"id":             orderID,
		"payment_status": "paid",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "paid", data["payment_status"])
	assert.Equal(t, "pending", data["delivery_status"])

	resp, body = doJSON(t, app, http.MethodPatch, "/api/orders", token, map[string]interface{}{
		"id":              orderID,
		"delivery_status": "sent",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "paid", data["payment_status"])
	assert.Equal(t, "sent", data["delivery_status"])

	// Any status may move to any other, including backwards.
	resp, body = doJSON(t, app, http.MethodPatch, "/api/orders", token, map[string]interface{}{
		"id":              orderID,
		"delivery_status": "pending",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pending", body["data"].(map[string]interface{})["delivery_status"])
}

func TestUpdateOrderStatusRejectsUnknownValues(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestSeller(t, "Test Seller", "seller@example.com")

	_, created := doJSON(t, app, http.MethodPost, "/api/checkout-links", token, validLinkInput())
	linkID := created["data"].(map[string]interface{})["id"].(string)

	_, orderBody := doJSON(t, app, http.MethodPost, "/api/orders", "", validOrderInput(linkID))
	orderID := orderBody["data"].(map[string]interface{})["id"].(string)

	resp, _ := doJSON(t, app, http.MethodPatch, "/api/orders", token, map[string]interface{}{
		"id":             orderID,
		"payment_status": "refunded",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateOrderStatusIsSellerScoped(t *testing.T) {
	app := setupTestApp(t)
	_, ownerToken := createTestSeller(t, "Owner", "owner@example.com")
	_, otherToken := createTestSeller(t, "Other", "other@example.com")

	_, created := doJSON(t, app, http.MethodPost, "/api/checkout-links", ownerToken, validLinkInput())
	linkID := created["data"].(map[string]interface{})["id"].(string)

	_, orderBody := doJSON(t, app, http.MethodPost, "/api/orders", "", validOrderInput(linkID))
	orderID := orderBody["data"].(map[string]interface{})["id"].(string)

	resp, _ := doJSON(t, app, http.MethodPatch, "/api/orders", otherToken, map[string]interface{}{
		"id":             orderID,
		"payment_status": "paid",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetOrdersPagination(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestSeller(t, "Test Seller", "seller@example.com")

	_, created := doJSON(t, app, http.MethodPost, "/api/checkout-links", token, validLinkInput())
	linkID := created["data"].(map[string]interface{})["id"].(string)

	for i := 0; i < 5; i++ {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/orders", "", validOrderInput(linkID))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := doJSON(t, app, http.MethodGet, "/api/orders?page=1&limit=2", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Len(t, body["data"].([]interface{}), 2)
	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, float64(5), meta["total"])
	assert.Equal(t, float64(3), meta["totalPages"])
}

func TestCustomerDirectoryIsSellerScoped(t *testing.T) {
	app := setupTestApp(t)
	_, ownerToken := createTestSeller(t, "Owner", "owner@example.com")
	_, otherToken := createTestSeller(t, "Other", "other@example.com")

	_, created := doJSON(t, app, http.MethodPost, "/api/checkout-links", ownerToken, validLinkInput())
	linkID := created["data"].(map[string]interface{})["id"].(string)

	input := validOrderInput(linkID)
	input["save_details"] = true
	doJSON(t, app, http.MethodPost, "/api/orders", "", input)

	var customer models.Customer
	require.NoError(t, initializers.DB.First(&customer).Error)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/customers/"+customer.ID.String(), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/api/customers", otherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]interface{}), 0)
}

func TestCustomerDirectoryAggregatesOrderStats(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestSeller(t, "Test Seller", "seller@example.com")

	_, created := doJSON(t, app, http.MethodPost, "/api/checkout-links", token, validLinkInput())
	linkID := created["data"].(map[string]interface{})["id"].(string)

	first := validOrderInput(linkID)
	first["save_details"] = true
	resp, _ := doJSON(t, app, http.MethodPost, "/api/orders", "", first)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	second := validOrderInput(linkID)
	second["save_details"] = true
	resp, _ = doJSON(t, app, http.MethodPost, "/api/orders", "", second)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	third := validOrderInput(linkID)
	third["save_details"] = true
	third["buyer"].(map[string]interface{})["phone"] = "+998907654321"
	third["buyer"].(map[string]interface{})["fullName"] = "Dilnoza Yusupova"
	resp, _ = doJSON(t, app, http.MethodPost, "/api/orders", "", third)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/api/customers", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list := body["data"].([]interface{})
	require.Len(t, list, 2)

	byPhone := make(map[string]map[string]interface{}, len(list))
	for _, row := range list {
		entry := row.(map[string]interface{})
		byPhone[entry["phone"].(string)] = entry
	}

	assert.Equal(t, float64(2), byPhone["+998901234567"]["total_orders"])
	assert.NotNil(t, byPhone["+998901234567"]["last_order_date"])
	assert.Equal(t, float64(1), byPhone["+998907654321"]["total_orders"])
	assert.NotNil(t, byPhone["+998907654321"]["last_order_date"])
}
