package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nobanko/banking-core/internal/api/handler"
	"github.com/nobanko/banking-core/internal/api/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	accountHandler *handler.AccountHandler,
	ledgerHandler *handler.LedgerHandler,
	creditHandler *handler.CreditHandler,
	cardHandler *handler.CardHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Client accounts and their operations
		clients := v1.Group("/clients")
		{
			clients.POST("", accountHandler.OpenAccount)
			clients.GET("/:id", accountHandler.GetClient)
			clients.PUT("/:id/manager", accountHandler.AssignManager)
			clients.DELETE("/:id/manager", accountHandler.UnassignManager)
			clients.GET("/:id/notifications", accountHandler.GetNotifications)

			clients.POST("/:id/deposits", ledgerHandler.Deposit)
			clients.POST("/:id/transfers", ledgerHandler.Transfer)
			clients.GET("/:id/transfers", ledgerHandler.GetTransfers)
			clients.GET("/:id/balance", ledgerHandler.GetBalance)
			clients.GET("/:id/statement", ledgerHandler.GetStatement)
			clients.GET("/:id/statement/archive", ledgerHandler.GetArchivedStatement)

			clients.POST("/:id/credit-requests", creditHandler.RequestRaise)
			clients.GET("/:id/credit-requests", creditHandler.ListByClient)

			clients.GET("/:id/eligible-products", cardHandler.ListEligibleProducts)
			clients.POST("/:id/card-requests", cardHandler.RequestCard)
			clients.GET("/:id/card-requests", cardHandler.ListRequestsByClient)
			clients.GET("/:id/cards", cardHandler.ListCards)
		}

		// Managers and their pending queues
		managers := v1.Group("/managers")
		{
			managers.POST("", accountHandler.CreateManager)
			managers.GET("/:id", accountHandler.GetManager)
			managers.GET("/:id/credit-requests", creditHandler.ListPendingForManager)
			managers.GET("/:id/card-requests", cardHandler.ListPendingForManager)
		}

		// Workflow resolutions
		v1.POST("/credit-requests/:id/approve", creditHandler.Approve)
		v1.POST("/credit-requests/:id/deny", creditHandler.Deny)
		v1.POST("/card-requests/:id/approve", cardHandler.Approve)
		v1.POST("/card-requests/:id/deny", cardHandler.Deny)

		// Card product catalog
		v1.POST("/card-products", cardHandler.CreateProduct)
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
