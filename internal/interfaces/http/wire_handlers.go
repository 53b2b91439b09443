package http

import (
	"github.com/myphoto-inc/myphoto/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	authHandler     *handlers.AuthHandler
	passkeyHandler  *handlers.PasskeyHandler
	categoryHandler *handlers.CategoryHandler
	photoHandler    *handlers.PhotoHandler
	uploadHandler   *handlers.UploadHandler
	galleryHandler  *handlers.GalleryHandler
	healthHandler   *handlers.HealthHandler
}

func (c *Container) newHandlers() *allHandlers {
	u := c.ucs
	cookie := c.cfg.Auth.Cookie
	sqlDB, _ := c.db.DB()

	return &allHandlers{
		authHandler: handlers.NewAuthHandler(c.userService, c.sessionManager, cookie, c.log.Named("auth")),
		passkeyHandler: handlers.NewPasskeyHandler(
			u.startPasskeyRegistration,
			u.finishPasskeyRegistration,
			u.startPasskeyAuthentication,
			u.finishPasskeyAuth,
			u.listPasskeys,
			u.deletePasskey,
			c.sessionManager,
			cookie,
			c.log.Named("passkey"),
		),
		categoryHandler: handlers.NewCategoryHandler(
			u.createCategory, u.updateCategory, u.deleteCategory, u.listCategories, c.log.Named("category"),
		),
		photoHandler: handlers.NewPhotoHandler(
			u.uploadPhoto, u.listPhotos, u.deletePhoto, c.cfg.Image.MaxUploadBytes, c.log.Named("photo"),
		),
		uploadHandler:  handlers.NewUploadHandler(c.blobs, c.log.Named("upload")),
		galleryHandler: handlers.NewGalleryHandler(u.publicGallery, u.unlockCategory, c.log.Named("gallery")),
		healthHandler:  handlers.NewHealthHandler(sqlDB, c.log.Named("health")),
	}
}
