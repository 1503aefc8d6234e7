package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/caching"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/config"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/handlers"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/jobs"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/jobs/background"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/middleware"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/reports"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/repositories"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/services"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/pkg/database"
)

const version = "1.0.0"

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generated secret for development
		log.Printf("WARNING: Using generated JWT secret")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	auditCfg, err := config.LoadAuditConfig(os.Getenv("AUDIT_CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	objectStore, err := reports.NewObjectStore(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object store: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	orgRepo := repositories.NewOrganizationRepository(pool)
	warehouseRepo := repositories.NewWarehouseRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	stockRepo := repositories.NewStockRepository(pool)
	auditRepo := repositories.NewAuditRepository(pool)
	templateRepo := repositories.NewChecklistTemplateRepository(pool)
	responseRepo := repositories.NewChecklistResponseRepository(pool)
	bankRepo := repositories.NewQuestionBankRepository(pool)

	// Cache
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Services
	scopeSvc := services.NewScopeService()
	authSvc := services.NewAuthService(userRepo, jwtSecret)
	orgSvc := services.NewOrganizationService(orgRepo, scopeSvc)
	warehouseSvc := services.NewWarehouseService(warehouseRepo, orgRepo, scopeSvc)
	productSvc := services.NewProductService(productRepo, warehouseRepo, stockRepo, scopeSvc)
	userSvc := services.NewUserService(userRepo, scopeSvc)
	reconciliationSvc := services.NewReconciliationService(stockRepo, auditRepo, productRepo, warehouseRepo, scopeSvc, cacheSvc)
	auditSessionSvc := services.NewAuditSessionService(warehouseRepo, scopeSvc)
	checklistSvc := services.NewChecklistService(templateRepo, responseRepo, bankRepo, warehouseRepo, scopeSvc)
	reportSvc := reports.NewReportService(auditRepo, warehouseRepo, productRepo, scopeSvc, objectStore, auditCfg.Reports.Bucket)

	// Background jobs
	alertSvc := jobs.NewStockAlertService(stockRepo, productRepo, warehouseRepo)
	scheduler, err := background.NewJobScheduler(alertSvc, auditCfg)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop scheduler: %v", err)
		}
	}()

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, userRepo)
	orgHandlers := handlers.NewOrganizationHandlers(orgSvc)
	warehouseHandlers := handlers.NewWarehouseHandlers(warehouseSvc, auditSessionSvc, reportSvc)
	productHandlers := handlers.NewProductHandlers(productSvc)
	userHandlers := handlers.NewUserHandlers(userSvc)
	inventoryHandlers := handlers.NewInventoryHandlers(reconciliationSvc)
	checklistHandlers := handlers.NewChecklistHandlers(checklistSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, scheduler)

	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)
	e.GET("/health/jobs", healthHandlers.JobsStatus)

	v1 := e.Group("/v1")

	// Authentication routes (no JWT required)
	auth := v1.Group("/auth")
	auth.POST("/signup", authHandlers.Signup)
	auth.POST("/login", authHandlers.Login)

	// Protected routes
	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(middleware.JWTConfig(jwtSecret)))
	protected.Use(middleware.LoadPrincipal(userRepo))

	protected.GET("/me", authHandlers.Me)

	// User management (admin only at the route level; services re-check)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	protected.GET("/users", userHandlers.ListUsers)
	protected.GET("/users/:id", userHandlers.GetUser)
	protected.POST("/users", userHandlers.CreateUser, adminOnly)
	protected.PUT("/users/:id", userHandlers.UpdateUser, adminOnly)
	protected.DELETE("/users/:id", userHandlers.DeleteUser, adminOnly)

	// Organizations
	protected.GET("/organizations", orgHandlers.ListOrganizations)
	protected.POST("/organizations", orgHandlers.CreateOrganization, adminOnly)
	protected.GET("/organizations/:id", orgHandlers.GetOrganization)
	protected.PUT("/organizations/:id", orgHandlers.UpdateOrganization, adminOnly)
	protected.DELETE("/organizations/:id", orgHandlers.DeleteOrganization, adminOnly)

	// Warehouses
	protected.GET("/warehouses", warehouseHandlers.ListWarehouses)
	protected.POST("/warehouses", warehouseHandlers.CreateWarehouse)
	protected.GET("/warehouses/:id", warehouseHandlers.GetWarehouse)
	protected.PUT("/warehouses/:id", warehouseHandlers.UpdateWarehouse)
	protected.DELETE("/warehouses/:id", warehouseHandlers.DeleteWarehouse, adminOnly)
	protected.POST("/warehouses/bulk", warehouseHandlers.BulkImportWarehouses)
	protected.POST("/warehouses/:id/audit-control", warehouseHandlers.AuditControl)
	protected.POST("/warehouses/:id/discrepancy-report", warehouseHandlers.DiscrepancyReport)

	// Products
	protected.GET("/products", productHandlers.ListProducts)
	protected.POST("/products", productHandlers.CreateProduct)
	protected.GET("/products/:id", productHandlers.GetProduct)
	protected.PUT("/products/:id", productHandlers.UpdateProduct)
	protected.DELETE("/products/:id", productHandlers.DeleteProduct)
	protected.POST("/products/bulk", productHandlers.BulkCreateProducts)

	// Inventory
	protected.GET("/inventory", inventoryHandlers.GetInventory)
	protected.POST("/inventory", inventoryHandlers.RecordObservation)

	// Checklists
	protected.GET("/checklists", checklistHandlers.GetEffectiveChecklist)
	protected.GET("/checklists/:warehouseId", checklistHandlers.GetResponse)
	protected.POST("/checklists", checklistHandlers.UpsertResponse)
	protected.PUT("/checklists/:warehouseId/questions", checklistHandlers.SetWarehouseQuestions)

	// Question bank
	protected.GET("/checklist-bank", checklistHandlers.ListBank)
	protected.POST("/checklist-bank", checklistHandlers.CreateBankItem)
	protected.PUT("/checklist-bank/:id", checklistHandlers.UpdateBankItem)
	protected.DELETE("/checklist-bank/:id", checklistHandlers.DeleteBankItem)

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Inventory audit tracker v%s starting on port %d", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
