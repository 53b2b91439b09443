package http

import (
	"gorm.io/gorm"

	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/repository"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo     user.Repository
	sessionRepo  user.SessionRepository
	passkeyRepo  user.PasskeyCredentialRepository
	categoryRepo gallery.CategoryRepository
	photoRepo    gallery.PhotoRepository
}

func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:     repository.NewUserRepository(db, log),
		sessionRepo:  repository.NewSessionRepository(db, log),
		passkeyRepo:  repository.NewPasskeyCredentialRepository(db, log),
		categoryRepo: repository.NewCategoryRepository(db, log),
		photoRepo:    repository.NewPhotoRepository(db, log),
	}
}
