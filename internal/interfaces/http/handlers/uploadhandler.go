package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/shared/constants"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
	"github.com/myphoto-inc/myphoto/internal/shared/utils"
)

const uploadCacheControl = "public, max-age=31536000, immutable"

var storedFilenamePattern = regexp.MustCompile(`(?i)^[a-z0-9-]+\.jpg$`)

type blobOpener interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// UploadHandler serves stored image files by name.
type UploadHandler struct {
	blobs  blobOpener
	logger logger.Interface
}

func NewUploadHandler(blobs blobOpener, logger logger.Interface) *UploadHandler {
	return &UploadHandler{blobs: blobs, logger: logger}
}

// Serve streams /api/uploads/:filename. Names are checked before the store
// is touched, so traversal attempts never reach it.
func (h *UploadHandler) Serve(c *gin.Context) {
	filename := c.Param("filename")
	if !storedFilenamePattern.MatchString(filename) {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid filename")
		return
	}

	blob, err := h.blobs.Open(c.Request.Context(), filename)
	if err != nil {
		if errors.Is(err, gallery.ErrBlobNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "file not found")
			return
		}
		h.logger.Errorw("failed to open stored file", "filename", filename, "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, constants.ErrMsgInternalServerError)
		return
	}
	defer blob.Close()

	c.Header(constants.HeaderCacheControl, uploadCacheControl)
	c.DataFromReader(http.StatusOK, -1, constants.ContentTypeJPEG, blob, nil)
}
