package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myphoto-inc/myphoto/internal/application/gallery/dto"
	"github.com/myphoto-inc/myphoto/internal/application/gallery/usecases"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
	"github.com/myphoto-inc/myphoto/internal/shared/utils"
)

// GalleryHandler serves the public portfolio.
type GalleryHandler struct {
	publicGalleryUC publicGalleryUseCase
	unlockUC        unlockCategoryUseCase
	logger          logger.Interface
}

func NewGalleryHandler(publicGalleryUC publicGalleryUseCase, unlockUC unlockCategoryUseCase, logger logger.Interface) *GalleryHandler {
	return &GalleryHandler{
		publicGalleryUC: publicGalleryUC,
		unlockUC:        unlockUC,
		logger:          logger,
	}
}

func (h *GalleryHandler) Show(c *gin.Context) {
	result, err := h.publicGalleryUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Unlock returns the photos of a password-protected category.
func (h *GalleryHandler) Unlock(c *gin.Context) {
	var req dto.UnlockCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.unlockUC.Execute(c.Request.Context(), usecases.UnlockCategoryCommand{
		Slug:     c.Param("slug"),
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
