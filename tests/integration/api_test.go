package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/williamscesar21/RikoApi/config"
	"github.com/williamscesar21/RikoApi/internal/adapter/http/handler"
	"github.com/williamscesar21/RikoApi/internal/adapter/storage/localdisk"
	"github.com/williamscesar21/RikoApi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestServer assembles the full HTTP stack on in-memory storage.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	log := zerolog.Nop()

	clientRepo := newInMemoryClientRepo()
	restaurantRepo := newInMemoryRestaurantRepo()
	courierRepo := newInMemoryCourierRepo()
	adminRepo := newInMemoryAdminRepo()
	walletRepo := newInMemoryWalletRepo()
	txRepo := newInMemoryTransactionRepo()
	productRepo := newInMemoryProductRepo()
	comboRepo := newInMemoryComboRepo()
	cartRepo := newInMemoryCartRepo()
	orderRepo := newInMemoryOrderRepo()
	ratingRepo := newInMemoryRatingRepo()
	transactor := newInMemoryTransactor()
	priceCache := newInMemoryPriceCache()

	fileStore, err := localdisk.New(config.UploadsConfig{
		Dir:     t.TempDir(),
		BaseURL: "http://localhost:8080/uploads",
	}, log)
	require.NoError(t, err)

	hashSvc := service.NewBcryptHashService()
	tokenSvc := service.NewJWTTokenService("integration-test-secret-32-chars!!!!", time.Hour, "riko-api")

	walletSvc := service.NewWalletService(walletRepo, txRepo, clientRepo, restaurantRepo, courierRepo, transactor, log)
	authSvc := service.NewAuthService(clientRepo, restaurantRepo, courierRepo, adminRepo, hashSvc, tokenSvc, log)
	accountSvc := service.NewAccountService(clientRepo, restaurantRepo, courierRepo, adminRepo, cartRepo, ratingRepo, walletSvc, hashSvc, transactor, log)
	catalogSvc := service.NewCatalogService(productRepo, comboRepo, restaurantRepo, ratingRepo, priceCache, transactor, log)
	cartSvc := service.NewCartService(cartRepo, productRepo, priceCache, log)
	orderSvc := service.NewOrderService(orderRepo, cartRepo, productRepo, courierRepo, walletSvc, cartSvc, log)

	return handler.SetupRouter(handler.RouterDeps{
		AuthSvc:    authSvc,
		AccountSvc: accountSvc,
		WalletSvc:  walletSvc,
		CatalogSvc: catalogSvc,
		CartSvc:    cartSvc,
		OrderSvc:   orderSvc,
		TokenSvc:   tokenSvc,
		FileStore:  fileStore,
		Logger:     log,
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func registerClient(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/client-register", "", map[string]any{
		"first_name": "Ana",
		"last_name":  "Diaz",
		"email":      email,
		"phone":      "+58-412-5550101",
		"password":   "password123",
		"location":   "10.48,-66.90",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody(t, w)["id"].(string)
}

func walletIDForOwner(t *testing.T, router *gin.Engine, ownerID, kind string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/wallet/%s/%s", ownerID, kind), "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var wallets []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wallets))
	require.Len(t, wallets, 1)
	return wallets[0]["id"].(string)
}

func TestWalletLifecycle(t *testing.T) {
	router := newTestServer(t)

	clientID := registerClient(t, router, "ana@example.com")
	walletID := walletIDForOwner(t, router, clientID, "CLIENT")

	// Add 50
	w := doJSON(t, router, http.MethodPost, "/wallet-add-funds", "", map[string]any{
		"walletId": walletID,
		"amount":   "50",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "50", decodeBody(t, w)["balance"])

	// Withdraw 20
	w = doJSON(t, router, http.MethodPost, "/wallet-withdraw", "", map[string]any{
		"walletId": walletID,
		"amount":   "20",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "30", decodeBody(t, w)["balance"])

	// Overdraw fails without side effects
	w = doJSON(t, router, http.MethodPost, "/wallet-withdraw", "", map[string]any{
		"walletId": walletID,
		"amount":   "100",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "WAL_001", decodeBody(t, w)["error_code"])

	// History holds exactly the two applied entries
	w = doJSON(t, router, http.MethodGet, "/wallet-transactions/"+walletID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var txns []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &txns))
	require.Len(t, txns, 2)
	assert.Equal(t, "50", txns[0]["amount"])
	assert.Equal(t, "PAYMENT", txns[0]["kind"])
	assert.Equal(t, "-20", txns[1]["amount"])
	assert.Equal(t, "WITHDRAWAL", txns[1]["kind"])
}

func TestWalletRejectsNonPositiveAmounts(t *testing.T) {
	router := newTestServer(t)

	clientID := registerClient(t, router, "ana@example.com")
	walletID := walletIDForOwner(t, router, clientID, "CLIENT")

	for _, amount := range []string{"-5", "0"} {
		w := doJSON(t, router, http.MethodPost, "/wallet-add-funds", "", map[string]any{
			"walletId": walletID,
			"amount":   amount,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, "amount %s must be rejected", amount)
	}

	// Balance untouched
	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/wallet/%s/CLIENT", clientID), "", nil)
	var wallets []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wallets))
	assert.Equal(t, "0", wallets[0]["balance"])
}

func TestWalletTransfer(t *testing.T) {
	router := newTestServer(t)

	aliceID := registerClient(t, router, "alice@example.com")
	bobID := registerClient(t, router, "bob@example.com")
	aliceWallet := walletIDForOwner(t, router, aliceID, "CLIENT")
	bobWallet := walletIDForOwner(t, router, bobID, "CLIENT")

	w := doJSON(t, router, http.MethodPost, "/wallet-add-funds", "", map[string]any{
		"walletId": aliceWallet,
		"amount":   "100",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/wallet-transfer", "", map[string]any{
		"fromWalletId": aliceWallet,
		"toWalletId":   bobWallet,
		"amount":       "40",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody(t, w)
	from := resp["fromWallet"].(map[string]any)
	to := resp["toWallet"].(map[string]any)
	assert.Equal(t, "60", from["balance"])
	assert.Equal(t, "40", to["balance"])

	// Transfer exceeding the source balance fails and moves nothing
	w = doJSON(t, router, http.MethodPost, "/wallet-transfer", "", map[string]any{
		"fromWalletId": aliceWallet,
		"toWalletId":   bobWallet,
		"amount":       "500",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "WAL_001", decodeBody(t, w)["error_code"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/order", "", map[string]any{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/cart/add", "", map[string]any{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMarketplaceEndToEnd(t *testing.T) {
	router := newTestServer(t)

	// Register accounts
	clientID := registerClient(t, router, "ana@example.com")

	w := doJSON(t, router, http.MethodPost, "/restaurant-register", "", map[string]any{
		"name":     "Arepas Dona Maria",
		"email":    "arepas@example.com",
		"phone":    "+58-212-5550202",
		"password": "password123",
		"location": "10.50,-66.91",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	restaurantID := decodeBody(t, w)["id"].(string)

	// Login as client for the guarded routes
	w = doJSON(t, router, http.MethodPost, "/client-login", "", map[string]any{
		"email":    "ana@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decodeBody(t, w)["token"].(string)
	require.NotEmpty(t, token)

	// Restaurant adds a product
	w = doJSON(t, router, http.MethodPost, "/product", token, map[string]any{
		"name":          "Arepa Reina Pepiada",
		"price":         "10",
		"restaurant_id": restaurantID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	productID := decodeBody(t, w)["id"].(string)

	// Client fills the cart
	w = doJSON(t, router, http.MethodPost, "/cart/add", token, map[string]any{
		"client_id":  clientID,
		"product_id": productID,
		"quantity":   3,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "30", decodeBody(t, w)["total"])

	// Fund the client wallet so settlement can cover the order
	clientWallet := walletIDForOwner(t, router, clientID, "CLIENT")
	w = doJSON(t, router, http.MethodPost, "/wallet-add-funds", "", map[string]any{
		"walletId": clientWallet,
		"amount":   "100",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Place the order
	w = doJSON(t, router, http.MethodPost, "/order", token, map[string]any{
		"client_id":        clientID,
		"restaurant_id":    restaurantID,
		"delivery_address": "Av. Francisco de Miranda, Caracas",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := decodeBody(t, w)
	orderID := order["id"].(string)
	assert.Equal(t, "PENDING", order["status"])
	assert.Equal(t, "30", order["total"])

	// Placing an order empties the cart
	w = doJSON(t, router, http.MethodGet, "/cart/"+clientID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", decodeBody(t, w)["total"])

	// Walk the lifecycle to DELIVERED
	for _, status := range []string{"PREPARING", "DELIVERING", "DELIVERED"} {
		w = doJSON(t, router, http.MethodPut, "/order-status/"+orderID, token, map[string]any{
			"status": status,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	// Skipping states is rejected once terminal
	w = doJSON(t, router, http.MethodPut, "/order-status/"+orderID, token, map[string]any{
		"status": "PREPARING",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ORD_001", decodeBody(t, w)["error_code"])

	// Settle: client pays, restaurant collects
	w = doJSON(t, router, http.MethodPost, "/order-settle/"+orderID, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decodeBody(t, w)["settled"])

	restaurantWallet := walletIDForOwner(t, router, restaurantID, "RESTAURANT")
	w = doJSON(t, router, http.MethodGet, "/wallet-transactions/"+restaurantWallet, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var txns []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &txns))
	require.Len(t, txns, 1)
	assert.Equal(t, "30", txns[0]["amount"])

	// Settling twice is rejected
	w = doJSON(t, router, http.MethodPost, "/order-settle/"+orderID, token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ORD_002", decodeBody(t, w)["error_code"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := newTestServer(t)
	registerClient(t, router, "ana@example.com")

	w := doJSON(t, router, http.MethodPost, "/client-login", "", map[string]any{
		"email":    "ana@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_001", decodeBody(t, w)["error_code"])

	w = doJSON(t, router, http.MethodPost, "/client-login", "", map[string]any{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
