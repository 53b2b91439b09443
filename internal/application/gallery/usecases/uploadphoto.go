package usecases

import (
	"context"
	"path/filepath"
	"time"

	"github.com/myphoto-inc/myphoto/internal/application/gallery/dto"
	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/id"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
	"github.com/myphoto-inc/myphoto/internal/shared/utils"
)

type UploadPhotoCommand struct {
	UserID           uint
	CategorySID      string
	Title            string
	Description      *string
	Password         *string
	OriginalFilename string
	Data             []byte
}

// UploadPhotoUseCase runs an upload through the ingestion pipeline and
// records the photo. The file is written first; if the row cannot be
// inserted the file is removed again.
type UploadPhotoUseCase struct {
	categoryRepo   gallery.CategoryRepository
	photoRepo      gallery.PhotoRepository
	ingester       ImageIngester
	blobs          gallery.BlobStore
	passwordHasher user.PasswordHasher
	logger         logger.Interface
}

func NewUploadPhotoUseCase(
	categoryRepo gallery.CategoryRepository,
	photoRepo gallery.PhotoRepository,
	ingester ImageIngester,
	blobs gallery.BlobStore,
	hasher user.PasswordHasher,
	logger logger.Interface,
) *UploadPhotoUseCase {
	return &UploadPhotoUseCase{
		categoryRepo:   categoryRepo,
		photoRepo:      photoRepo,
		ingester:       ingester,
		blobs:          blobs,
		passwordHasher: hasher,
		logger:         logger,
	}
}

func (uc *UploadPhotoUseCase) Execute(ctx context.Context, cmd UploadPhotoCommand) (*dto.PhotoResponse, error) {
	title := utils.SanitizeText(cmd.Title)
	if title == "" {
		return nil, errors.NewValidationError("Title is required")
	}
	if len(cmd.Data) == 0 {
		return nil, errors.NewValidationError("File is required")
	}

	category, err := ownedCategory(ctx, uc.categoryRepo, cmd.UserID, cmd.CategorySID)
	if err != nil {
		return nil, err
	}

	passwordHash, err := hashOptionalPassword(uc.passwordHasher, cmd.Password)
	if err != nil {
		return nil, err
	}

	sid, err := id.NewSID(id.PrefixPhoto)
	if err != nil {
		return nil, errors.NewInternalError("failed to generate photo id")
	}

	originalName := filepath.Base(cmd.OriginalFilename)
	result, err := uc.ingester.Ingest(ctx, cmd.Data, originalName)
	if err != nil {
		return nil, err
	}

	photo, err := gallery.NewPhoto(gallery.PhotoParams{
		SID:          sid,
		UserID:       cmd.UserID,
		CategoryID:   category.ID(),
		Title:        title,
		Description:  utils.SanitizeOptional(cmd.Description),
		Filename:     result.Filename,
		OriginalName: originalName,
		PasswordHash: passwordHash,
		Metadata:     result.Metadata,
	}, time.Now().UTC())
	if err == nil {
		err = uc.photoRepo.Create(ctx, photo)
	}
	if err != nil {
		uc.logger.Errorw("failed to record photo, removing stored file",
			"filename", result.Filename,
			"error", err,
		)
		if delErr := uc.blobs.Delete(ctx, result.Filename); delErr != nil {
			uc.logger.Warnw("failed to remove orphaned image file", "filename", result.Filename, "error", delErr)
		}
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, errors.NewInternalError("failed to record photo")
	}

	uc.logger.Infow("photo uploaded",
		"user_id", cmd.UserID,
		"photo_sid", sid,
		"category_sid", category.SID(),
		"size", result.Metadata.Size,
	)

	resp := dto.ToPhotoResponse(photo, category)
	return &resp, nil
}
