package handlers

import (
	"context"
	"time"

	galleryDTO "github.com/myphoto-inc/myphoto/internal/application/gallery/dto"
	galleryUsecases "github.com/myphoto-inc/myphoto/internal/application/gallery/usecases"
	"github.com/myphoto-inc/myphoto/internal/application/user/usecases"
	"github.com/myphoto-inc/myphoto/internal/domain/user"
)

// Narrow views of the application layer so handlers can be tested with mocks.

type accountService interface {
	Signup(ctx context.Context, username, name, password string) (*user.User, error)
	HasUsers(ctx context.Context) (bool, error)
	Login(ctx context.Context, username, password string) (*user.User, error)
}

type sessionIssuer interface {
	Create(ctx context.Context, userID uint) (string, error)
	Revoke(ctx context.Context, plainToken string) error
	TTL() time.Duration
}

type startRegistrationUseCase interface {
	Execute(ctx context.Context, cmd usecases.StartPasskeyRegistrationCommand) (*usecases.StartPasskeyRegistrationResult, error)
}

type finishRegistrationUseCase interface {
	Execute(ctx context.Context, cmd usecases.FinishPasskeyRegistrationCommand) (*usecases.FinishPasskeyRegistrationResult, error)
}

type startAuthenticationUseCase interface {
	Execute(ctx context.Context, cmd usecases.StartPasskeyAuthenticationCommand) (*usecases.StartPasskeyAuthenticationResult, error)
}

type finishAuthenticationUseCase interface {
	Execute(ctx context.Context, cmd usecases.FinishPasskeyAuthenticationCommand) (*usecases.FinishPasskeyAuthenticationResult, error)
}

type listPasskeysUseCase interface {
	Execute(ctx context.Context, cmd usecases.ListUserPasskeysCommand) (*usecases.ListUserPasskeysResult, error)
}

type deletePasskeyUseCase interface {
	Execute(ctx context.Context, cmd usecases.DeletePasskeyCommand) error
}

type createCategoryUseCase interface {
	Execute(ctx context.Context, cmd galleryUsecases.CreateCategoryCommand) (*galleryDTO.CategoryResponse, error)
}

type updateCategoryUseCase interface {
	Execute(ctx context.Context, cmd galleryUsecases.UpdateCategoryCommand) (*galleryDTO.CategoryResponse, error)
}

type deleteCategoryUseCase interface {
	Execute(ctx context.Context, cmd galleryUsecases.DeleteCategoryCommand) error
}

type listCategoriesUseCase interface {
	Execute(ctx context.Context, cmd galleryUsecases.ListCategoriesCommand) ([]galleryDTO.CategoryResponse, error)
}

type uploadPhotoUseCase interface {
	Execute(ctx context.Context, cmd galleryUsecases.UploadPhotoCommand) (*galleryDTO.PhotoResponse, error)
}

type listPhotosUseCase interface {
	Execute(ctx context.Context, cmd galleryUsecases.ListPhotosCommand) ([]galleryDTO.PhotoResponse, error)
}

type deletePhotoUseCase interface {
	Execute(ctx context.Context, cmd galleryUsecases.DeletePhotoCommand) error
}

type publicGalleryUseCase interface {
	Execute(ctx context.Context) (*galleryDTO.GalleryResponse, error)
}

type unlockCategoryUseCase interface {
	Execute(ctx context.Context, cmd galleryUsecases.UnlockCategoryCommand) (*galleryDTO.UnlockCategoryResponse, error)
}
