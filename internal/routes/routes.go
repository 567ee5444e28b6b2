package routes

import (
	"net/http"

	"munext_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты под /api/v1.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.Auth.RegisterRoutes(api)
		appHandlers.Profile.RegisterRoutes(api)
		appHandlers.Job.RegisterRoutes(api)
		appHandlers.Application.RegisterRoutes(api)
		appHandlers.Notification.RegisterRoutes(api)
		appHandlers.Admin.RegisterRoutes(api)
	}
}
