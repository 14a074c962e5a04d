package routes

import (
	"codecheck_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every HTTP route under /api/v1.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.Auth.RegisterRoutes(api)
		appHandlers.File.RegisterRoutes(api)
		appHandlers.Check.RegisterRoutes(api)
		appHandlers.Report.RegisterRoutes(api)
	}
}
