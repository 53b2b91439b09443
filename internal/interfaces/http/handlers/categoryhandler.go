package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myphoto-inc/myphoto/internal/application/gallery/dto"
	"github.com/myphoto-inc/myphoto/internal/application/gallery/usecases"
	"github.com/myphoto-inc/myphoto/internal/shared/id"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
	"github.com/myphoto-inc/myphoto/internal/shared/utils"
)

type CategoryHandler struct {
	createUC createCategoryUseCase
	updateUC updateCategoryUseCase
	deleteUC deleteCategoryUseCase
	listUC   listCategoriesUseCase
	logger   logger.Interface
}

func NewCategoryHandler(
	createUC createCategoryUseCase,
	updateUC updateCategoryUseCase,
	deleteUC deleteCategoryUseCase,
	listUC listCategoriesUseCase,
	logger logger.Interface,
) *CategoryHandler {
	return &CategoryHandler{
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		listUC:   listUC,
		logger:   logger,
	}
}

func (h *CategoryHandler) List(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	categories, err := h.listUC.Execute(c.Request.Context(), usecases.ListCategoriesCommand{UserID: userID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", categories)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.createUC.Execute(c.Request.Context(), usecases.CreateCategoryCommand{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Password:    req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, category, "category created successfully")
}

func (h *CategoryHandler) Update(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	categorySID, ok := categoryParam(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateCategoryCommand{
		UserID:      userID,
		CategorySID: categorySID,
		Name:        req.Name,
		Description: req.Description,
		Password:    req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "category updated successfully", category)
}

// Delete removes the category together with its photos.
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	categorySID, ok := categoryParam(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteCategoryCommand{
		UserID:      userID,
		CategorySID: categorySID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "category deleted successfully", nil)
}

func categoryParam(c *gin.Context) (string, bool) {
	categorySID := c.Param("id")
	if err := id.ValidateSID(categorySID, id.PrefixCategory); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid category ID format")
		return "", false
	}
	return categorySID, true
}
