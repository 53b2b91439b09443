package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/myphoto-inc/myphoto/internal/application/gallery/usecases"
	"github.com/myphoto-inc/myphoto/internal/shared/id"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
	"github.com/myphoto-inc/myphoto/internal/shared/utils"
)

// multipartMemoryBytes is how much of a form gin keeps in memory before
// spilling file parts to disk.
const multipartMemoryBytes = 8 << 20

type PhotoHandler struct {
	uploadUC       uploadPhotoUseCase
	listUC         listPhotosUseCase
	deleteUC       deletePhotoUseCase
	maxUploadBytes int64
	logger         logger.Interface
}

func NewPhotoHandler(
	uploadUC uploadPhotoUseCase,
	listUC listPhotosUseCase,
	deleteUC deletePhotoUseCase,
	maxUploadBytes int64,
	logger logger.Interface,
) *PhotoHandler {
	return &PhotoHandler{
		uploadUC:       uploadUC,
		listUC:         listUC,
		deleteUC:       deleteUC,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// List returns the caller's photos, optionally limited by ?categoryId=.
func (h *PhotoHandler) List(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	categorySID := c.Query("categoryId")
	if categorySID != "" {
		if err := id.ValidateSID(categorySID, id.PrefixCategory); err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid category ID format")
			return
		}
	}

	photos, err := h.listUC.Execute(c.Request.Context(), usecases.ListPhotosCommand{
		UserID:      userID,
		CategorySID: categorySID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", photos)
}

// Upload accepts multipart/form-data with file, title, description,
// categoryId and password fields.
func (h *PhotoHandler) Upload(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
	if err := c.Request.ParseMultipartForm(multipartMemoryBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "upload exceeds the size limit")
			return
		}
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid multipart form")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "file is required")
		return
	}
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		utils.ErrorResponse(c, http.StatusBadRequest, "file must be an image")
		return
	}

	categorySID := c.PostForm("categoryId")
	if err := id.ValidateSID(categorySID, id.PrefixCategory); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid category ID format")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Errorw("failed to open uploaded file", "user_id", userID, "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Errorw("failed to read uploaded file", "user_id", userID, "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	photo, err := h.uploadUC.Execute(c.Request.Context(), usecases.UploadPhotoCommand{
		UserID:           userID,
		CategorySID:      categorySID,
		Title:            c.PostForm("title"),
		Description:      optionalFormValue(c, "description"),
		Password:         optionalFormValue(c, "password"),
		OriginalFilename: fileHeader.Filename,
		Data:             data,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, photo, "photo uploaded successfully")
}

func (h *PhotoHandler) Delete(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	photoSID := c.Param("id")
	if err := id.ValidateSID(photoSID, id.PrefixPhoto); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid photo ID format")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeletePhotoCommand{
		UserID:   userID,
		PhotoSID: photoSID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "photo deleted successfully", nil)
}

// optionalFormValue returns nil for an absent or blank field.
func optionalFormValue(c *gin.Context, key string) *string {
	value, ok := c.GetPostForm(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
