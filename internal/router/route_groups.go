package router

import (
	"restaurant_pos_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupOrderRoutes sets up the order routes.
func SetupOrderRoutes(apiGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := apiGroup.Group("/orders")
	{
		orderRoutes.POST("", orderHandler.Checkout)
		orderRoutes.GET("", orderHandler.GetOrders)
		orderRoutes.GET("/:id", orderHandler.GetOrderByID)
		orderRoutes.PATCH("/:id/cancel", orderHandler.CancelOrder)
	}
}

// SetupMenuItemRoutes sets up the menu catalog routes.
func SetupMenuItemRoutes(apiGroup *gin.RouterGroup, menuHandler *handlers.MenuHandler) {
	menuRoutes := apiGroup.Group("/menu-items")
	{
		menuRoutes.POST("", menuHandler.CreateMenuItem)
		menuRoutes.GET("", menuHandler.GetMenuItems)
		menuRoutes.GET("/:id", menuHandler.GetMenuItemByID)
		menuRoutes.PUT("/:id", menuHandler.UpdateMenuItem)
		menuRoutes.DELETE("/:id", menuHandler.DeleteMenuItem)
	}
}

// SetupTableRoutes sets up the dining table routes.
func SetupTableRoutes(apiGroup *gin.RouterGroup, tableHandler *handlers.TableHandler) {
	tableRoutes := apiGroup.Group("/tables")
	{
		tableRoutes.GET("", tableHandler.GetTables)
		tableRoutes.GET("/:id", tableHandler.GetTableByID)
		tableRoutes.PATCH("/:id/status", tableHandler.UpdateTableStatus)
		tableRoutes.PUT("/resize", tableHandler.ResizeTables)
	}
}

// SetupInventoryRoutes sets up the stock tracking routes.
func SetupInventoryRoutes(apiGroup *gin.RouterGroup, inventoryHandler *handlers.InventoryHandler) {
	inventoryRoutes := apiGroup.Group("/inventory")
	{
		inventoryRoutes.GET("", inventoryHandler.GetInventory)
		inventoryRoutes.GET("/low-stock", inventoryHandler.GetLowStock)
		inventoryRoutes.POST("", inventoryHandler.CreateInventoryRecord)
		inventoryRoutes.GET("/:itemId", inventoryHandler.GetInventoryByItemID)
		inventoryRoutes.PATCH("/:itemId", inventoryHandler.AdjustStock)
	}
}

// SetupReportRoutes sets up the daily report routes.
func SetupReportRoutes(apiGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := apiGroup.Group("/reports")
	{
		reportRoutes.GET("/daily", reportHandler.GetDailyReport)
		reportRoutes.POST("/daily/recompute", reportHandler.RecomputeDailyReport)
		reportRoutes.GET("/summary", reportHandler.GetReportSummary)
		reportRoutes.POST("/purge-orders", reportHandler.PurgeOrders)
	}
}

// SetupSettingsRoutes sets up the application settings routes.
func SetupSettingsRoutes(apiGroup *gin.RouterGroup, settingHandler *handlers.SettingHandler) {
	settingsRoutes := apiGroup.Group("/settings")
	{
		settingsRoutes.GET("", settingHandler.GetSettings)
		settingsRoutes.PUT("/:section", settingHandler.UpdateSettingsSection)
	}
}
