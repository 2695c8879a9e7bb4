package router

import (
	"database/sql"

	"restaurant_pos_backend/internal/handlers"
	"restaurant_pos_backend/internal/repositories"
	"restaurant_pos_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	menuRepo := repositories.NewMenuRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	tableRepo := repositories.NewTableRepository(db)
	inventoryRepo := repositories.NewInventoryRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	// Initialize Services
	inventoryService := services.NewInventoryService(inventoryRepo)
	tableService := services.NewTableService(tableRepo)
	settingsService := services.NewSettingsService(settingsRepo, tableService)
	menuService := services.NewMenuService(menuRepo, inventoryRepo)
	reportService := services.NewReportService(orderRepo, reportRepo, tableService, inventoryService)
	orderService := services.NewOrderService(orderRepo, menuRepo, inventoryService, tableService, settingsService, reportService)

	// Initialize Handlers
	menuHandler := handlers.NewMenuHandler(menuService)
	orderHandler := handlers.NewOrderHandler(orderService)
	tableHandler := handlers.NewTableHandler(tableService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	reportHandler := handlers.NewReportHandler(reportService)
	settingHandler := handlers.NewSettingHandler(settingsService)

	apiV1 := engine.Group("/api/v1")
	{
		SetupOrderRoutes(apiV1, orderHandler)
		SetupMenuItemRoutes(apiV1, menuHandler)
		SetupTableRoutes(apiV1, tableHandler)
		SetupInventoryRoutes(apiV1, inventoryHandler)
		SetupReportRoutes(apiV1, reportHandler)
		SetupSettingsRoutes(apiV1, settingHandler)
	}
}
