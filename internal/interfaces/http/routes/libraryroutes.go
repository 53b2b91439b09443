package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/myphoto-inc/myphoto/internal/interfaces/http/handlers"
)

// LibraryRouteConfig holds dependencies for the owner's management routes.
type LibraryRouteConfig struct {
	CategoryHandler *handlers.CategoryHandler
	PhotoHandler    *handlers.PhotoHandler
	PasskeyHandler  *handlers.PasskeyHandler
}

// SetupLibraryRoutes configures categories, photos and passkeys. All of them
// sit behind the access gate.
func SetupLibraryRoutes(api *gin.RouterGroup, cfg *LibraryRouteConfig) {
	categories := api.Group("/categories")
	{
		categories.GET("", cfg.CategoryHandler.List)
		categories.POST("", cfg.CategoryHandler.Create)
		categories.PATCH("/:id", cfg.CategoryHandler.Update)
		categories.DELETE("/:id", cfg.CategoryHandler.Delete)
	}

	photos := api.Group("/photos")
	{
		photos.GET("", cfg.PhotoHandler.List)
		photos.POST("/upload", cfg.PhotoHandler.Upload)
		photos.DELETE("/:id", cfg.PhotoHandler.Delete)
	}

	passkeys := api.Group("/passkeys")
	{
		passkeys.GET("", cfg.PasskeyHandler.ListPasskeys)
		passkeys.DELETE("/:id", cfg.PasskeyHandler.DeletePasskey)
	}
}
