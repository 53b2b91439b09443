package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/myphoto-inc/myphoto/internal/interfaces/http/handlers"
)

// GalleryRouteConfig holds dependencies for the public routes.
type GalleryRouteConfig struct {
	GalleryHandler *handlers.GalleryHandler
	UploadHandler  *handlers.UploadHandler
	UnlockLimit    gin.HandlerFunc
}

func SetupGalleryRoutes(api *gin.RouterGroup, cfg *GalleryRouteConfig) {
	api.GET("/gallery", cfg.GalleryHandler.Show)
	api.POST("/gallery/categories/:slug/unlock", cfg.UnlockLimit, cfg.GalleryHandler.Unlock)

	api.GET("/uploads/:filename", cfg.UploadHandler.Serve)
}
