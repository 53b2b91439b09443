package http

import (
	galleryUsecases "github.com/myphoto-inc/myphoto/internal/application/gallery/usecases"
	"github.com/myphoto-inc/myphoto/internal/application/user/usecases"
)

// allUseCases holds the use cases that are not behind user.ServiceDDD.
type allUseCases struct {
	// Passkeys
	startPasskeyRegistration   *usecases.StartPasskeyRegistrationUseCase
	finishPasskeyRegistration  *usecases.FinishPasskeyRegistrationUseCase
	startPasskeyAuthentication *usecases.StartPasskeyAuthenticationUseCase
	finishPasskeyAuth          *usecases.FinishPasskeyAuthenticationUseCase
	listPasskeys               *usecases.ListUserPasskeysUseCase
	deletePasskey              *usecases.DeletePasskeyUseCase

	// Categories
	createCategory *galleryUsecases.CreateCategoryUseCase
	updateCategory *galleryUsecases.UpdateCategoryUseCase
	deleteCategory *galleryUsecases.DeleteCategoryUseCase
	listCategories *galleryUsecases.ListCategoriesUseCase

	// Photos
	uploadPhoto *galleryUsecases.UploadPhotoUseCase
	listPhotos  *galleryUsecases.ListPhotosUseCase
	deletePhoto *galleryUsecases.DeletePhotoUseCase

	// Public gallery
	publicGallery  *galleryUsecases.PublicGalleryUseCase
	unlockCategory *galleryUsecases.UnlockCategoryUseCase
}

func (c *Container) newUseCases() *allUseCases {
	r := c.repos
	passkeyLog := c.log.Named("passkey")
	galleryLog := c.log.Named("gallery")

	return &allUseCases{
		startPasskeyRegistration: usecases.NewStartPasskeyRegistrationUseCase(
			r.userRepo, r.passkeyRepo, c.webAuthn, c.challengeStore, passkeyLog,
		),
		finishPasskeyRegistration: usecases.NewFinishPasskeyRegistrationUseCase(
			r.userRepo, r.passkeyRepo, c.webAuthn, c.challengeStore, passkeyLog,
		),
		startPasskeyAuthentication: usecases.NewStartPasskeyAuthenticationUseCase(
			r.userRepo, r.passkeyRepo, c.webAuthn, c.challengeStore, passkeyLog,
		),
		finishPasskeyAuth: usecases.NewFinishPasskeyAuthenticationUseCase(
			r.userRepo, r.passkeyRepo, c.webAuthn, c.challengeStore, passkeyLog,
		),
		listPasskeys:  usecases.NewListUserPasskeysUseCase(r.passkeyRepo, passkeyLog),
		deletePasskey: usecases.NewDeletePasskeyUseCase(r.passkeyRepo, passkeyLog),

		createCategory: galleryUsecases.NewCreateCategoryUseCase(r.categoryRepo, c.hasher, c.markdown, galleryLog),
		updateCategory: galleryUsecases.NewUpdateCategoryUseCase(r.categoryRepo, r.photoRepo, c.hasher, c.markdown, galleryLog),
		deleteCategory: galleryUsecases.NewDeleteCategoryUseCase(r.categoryRepo, r.photoRepo, c.blobs, c.txManager, galleryLog),
		listCategories: galleryUsecases.NewListCategoriesUseCase(r.categoryRepo, r.photoRepo, c.markdown, galleryLog),

		uploadPhoto: galleryUsecases.NewUploadPhotoUseCase(r.categoryRepo, r.photoRepo, c.pipeline, c.blobs, c.hasher, galleryLog),
		listPhotos:  galleryUsecases.NewListPhotosUseCase(r.categoryRepo, r.photoRepo, galleryLog),
		deletePhoto: galleryUsecases.NewDeletePhotoUseCase(r.photoRepo, c.blobs, galleryLog),

		publicGallery:  galleryUsecases.NewPublicGalleryUseCase(r.userRepo, r.categoryRepo, r.photoRepo, c.markdown, galleryLog),
		unlockCategory: galleryUsecases.NewUnlockCategoryUseCase(r.userRepo, r.categoryRepo, r.photoRepo, c.hasher, c.markdown, galleryLog),
	}
}
