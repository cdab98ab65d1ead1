package handler

import (
	"github.com/williamscesar21/RikoApi/internal/adapter/http/middleware"
	redisStore "github.com/williamscesar21/RikoApi/internal/adapter/storage/redis"
	"github.com/williamscesar21/RikoApi/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	AccountSvc     ports.AccountService
	WalletSvc      ports.WalletService
	CatalogSvc     ports.CatalogService
	CartSvc        ports.CartService
	OrderSvc       ports.OrderService
	TokenSvc       ports.TokenService
	FileStore      ports.FileStore
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	UploadsDir     string // empty = static file serving disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(8 << 20)) // 8 MB covers image uploads

	// Health check, deep: verifies PostgreSQL and Redis
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Stored uploads (logos, product images)
	if deps.UploadsDir != "" {
		r.Static("/uploads", deps.UploadsDir)
	}

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	// --- Auth (public) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	r.POST("/client-login", rl("auth_login"), authHandler.LoginClient)
	r.POST("/restaurant-login", rl("auth_login"), authHandler.LoginRestaurant)
	r.POST("/courier-login", rl("auth_login"), authHandler.LoginCourier)
	r.POST("/admin-login", rl("auth_login"), authHandler.LoginAdmin)

	// --- Accounts ---
	accountHandler := NewAccountHandler(deps.AccountSvc, deps.FileStore)

	r.POST("/client-register", rl("auth_register"), accountHandler.RegisterClient)
	r.GET("/clients", accountHandler.ListClients)
	r.GET("/client/:id", accountHandler.GetClient)
	r.PUT("/client-property/:id", jwtAuth, accountHandler.UpdateClientProperty)
	r.PUT("/client-suspend/:id", jwtAuth, accountHandler.SuspendClient)
	r.DELETE("/client/:id", jwtAuth, accountHandler.DeleteClient)

	r.POST("/restaurant-register", rl("auth_register"), accountHandler.RegisterRestaurant)
	r.GET("/restaurants", accountHandler.ListRestaurants)
	r.GET("/restaurant/:id", accountHandler.GetRestaurant)
	r.PUT("/restaurant-property/:id", jwtAuth, accountHandler.UpdateRestaurantProperty)
	r.PUT("/restaurant-logo/:id", jwtAuth, accountHandler.SetRestaurantLogo)
	r.PUT("/restaurant-suspend/:id", jwtAuth, accountHandler.SuspendRestaurant)
	r.PUT("/restaurant-rate/:id", jwtAuth, accountHandler.RateRestaurant)
	r.DELETE("/restaurant/:id", jwtAuth, accountHandler.DeleteRestaurant)

	r.POST("/courier-register", rl("auth_register"), accountHandler.RegisterCourier)
	r.GET("/couriers", accountHandler.ListCouriers)
	r.GET("/courier/:id", accountHandler.GetCourier)
	r.PUT("/courier-property/:id", jwtAuth, accountHandler.UpdateCourierProperty)
	r.PUT("/courier-suspend/:id", jwtAuth, accountHandler.SuspendCourier)
	r.PUT("/courier-rate/:id", jwtAuth, accountHandler.RateCourier)
	r.DELETE("/courier/:id", jwtAuth, accountHandler.DeleteCourier)

	r.POST("/admin", jwtAuth, accountHandler.RegisterAdmin)
	r.GET("/admins", jwtAuth, accountHandler.ListAdmins)
	r.DELETE("/admin/:id", jwtAuth, accountHandler.DeleteAdmin)

	// --- Wallets ---
	walletHandler := NewWalletHandler(deps.WalletSvc)
	r.GET("/wallets", walletHandler.ListWallets)
	r.GET("/wallet/:user/:userType", walletHandler.GetWalletByOwner)
	r.POST("/wallet", walletHandler.CreateWallet)
	r.POST("/wallet-add-funds", rl("wallet_ops"), walletHandler.AddFunds)
	r.POST("/wallet-withdraw", rl("wallet_ops"), walletHandler.WithdrawFunds)
	r.POST("/wallet-transfer", rl("wallet_ops"), walletHandler.TransferFunds)
	r.POST("/wallet-charge", rl("wallet_ops"), walletHandler.ChargeUser)
	r.GET("/wallet-transactions/:walletId", walletHandler.GetTransactions)

	// --- Catalog ---
	catalogHandler := NewCatalogHandler(deps.CatalogSvc, deps.FileStore)
	r.POST("/product", jwtAuth, catalogHandler.CreateProduct)
	r.GET("/products", catalogHandler.ListProducts)
	r.GET("/products/restaurant/:restaurantId", catalogHandler.ListProductsByRestaurant)
	r.GET("/product/:id", catalogHandler.GetProduct)
	r.PUT("/product-property/:id", jwtAuth, catalogHandler.UpdateProductProperty)
	r.PUT("/product-status/:id", jwtAuth, catalogHandler.SetProductStatus)
	r.PUT("/product-suspend/:id", jwtAuth, catalogHandler.SuspendProduct)
	r.PUT("/product-rate/:id", jwtAuth, catalogHandler.RateProduct)
	r.PUT("/product-image/:id", jwtAuth, catalogHandler.AddProductImage)
	r.DELETE("/product/:id", jwtAuth, catalogHandler.DeleteProduct)

	r.POST("/combo", jwtAuth, catalogHandler.CreateCombo)
	r.GET("/combos", catalogHandler.ListCombos)
	r.GET("/combo/:id", catalogHandler.GetCombo)
	r.PUT("/combo-rate/:id", jwtAuth, catalogHandler.RateCombo)
	r.DELETE("/combo/:id", jwtAuth, catalogHandler.DeleteCombo)

	// --- Cart ---
	cartHandler := NewCartHandler(deps.CartSvc)
	cart := r.Group("/cart", jwtAuth)
	{
		cart.GET("/:clientId", cartHandler.GetCart)
		cart.POST("/add", cartHandler.AddItem)
		cart.POST("/remove", cartHandler.RemoveItem)
		cart.PUT("/update", cartHandler.UpdateQuantity)
		cart.PUT("/empty/:clientId", cartHandler.EmptyCart)
	}

	// --- Orders ---
	orderHandler := NewOrderHandler(deps.OrderSvc)
	r.POST("/order", jwtAuth, rl("orders"), orderHandler.PlaceOrder)
	r.GET("/order/:id", jwtAuth, orderHandler.GetOrder)
	r.GET("/orders/client/:clientId", jwtAuth, orderHandler.ListOrdersByClient)
	r.GET("/orders/restaurant/:restaurantId", jwtAuth, orderHandler.ListOrdersByRestaurant)
	r.GET("/orders/courier/:courierId", jwtAuth, orderHandler.ListOrdersByCourier)
	r.PUT("/order-status/:id", jwtAuth, orderHandler.UpdateOrderStatus)
	r.PUT("/order-assign/:id", jwtAuth, orderHandler.AssignCourier)
	r.POST("/order-settle/:id", jwtAuth, rl("orders"), orderHandler.SettleOrder)

	return r
}
