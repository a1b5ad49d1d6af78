package router

import (
	"time"

	"github.com/Legeek117/projet-stock/internal/config"
	"github.com/Legeek117/projet-stock/internal/handler"
	"github.com/Legeek117/projet-stock/internal/middleware"
	"github.com/Legeek117/projet-stock/internal/repository"
	"github.com/Legeek117/projet-stock/internal/service"
	"github.com/Legeek117/projet-stock/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	priceRepo := repository.NewPriceHistoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)

	// Worker dispatcher, injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg)
	stockSvc := service.NewStockService(productRepo, movementRepo, priceRepo, dispatcher, cfg.LowStockThreshold)
	productSvc := service.NewProductService(productRepo, categoryRepo, movementRepo, priceRepo, stockSvc)
	orderSvc := service.NewOrderService(orderRepo, productRepo, stockSvc)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, priceRepo, stockSvc)
	inventorySvc := service.NewInventoryService(productRepo, stockSvc)
	catalogSvc := service.NewCatalogService(categoryRepo, supplierRepo)
	statsSvc := service.NewStatsService(db, rdb, cfg.LowStockThreshold)
	settingsSvc := service.NewSettingsService(preferenceRepo)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	stockH := handler.NewStockHandler(stockSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	purchasesH := handler.NewPurchasesHandler(purchaseSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.POST("/api/auth/login", middleware.LoginRateLimiter(), authH.Login)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("/api", jwtMW)
	{
		anyRole := middleware.RequireRole("admin", "seller")
		adminOnly := middleware.RequireRole("admin")

		// Products: everyone reads, admin writes
		api.GET("/products", anyRole, productsH.List)
		api.GET("/products/:id", anyRole, productsH.Get)
		products := api.Group("/products", adminOnly)
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
		}

		api.GET("/categories", anyRole, catalogH.ListCategories)
		api.POST("/categories", adminOnly, catalogH.CreateCategory)

		suppliers := api.Group("/suppliers", adminOnly)
		{
			suppliers.POST("", catalogH.CreateSupplier)
			suppliers.GET("", catalogH.ListSuppliers)
		}

		// Orders: every authenticated role can sell
		api.POST("/orders", anyRole, ordersH.Create)
		api.GET("/orders", anyRole, ordersH.List)

		purchases := api.Group("/purchases", adminOnly)
		{
			purchases.POST("", purchasesH.Create)
			purchases.GET("", purchasesH.List)
		}

		stock := api.Group("/stock")
		{
			stock.POST("/movements", adminOnly, stockH.CreateMovement)
			stock.GET("/movements", anyRole, stockH.ListMovements)
			stock.GET("/price-history/:product_id", anyRole, stockH.ListPriceHistory)
			stock.GET("/alerts/low-stock", anyRole, stockH.LowStockAlerts)
			stock.POST("/reconcile", adminOnly, inventoryH.Reconcile)
		}

		api.GET("/stats/admin", adminOnly, statsH.Admin)
		api.GET("/stats/me", anyRole, statsH.User)

		users := api.Group("/users", adminOnly)
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.PUT("/:id", authH.UpdateUser)
			users.DELETE("/:id", authH.DeleteUser)
		}

		settings := api.Group("/settings")
		{
			settings.GET("/preferences", settingsH.GetPreferences)
			settings.PUT("/preferences", settingsH.UpdatePreferences)
		}
	}

	return r
}
