// internal/handlers/category.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stalkershop/stalker-backend/internal/i18n"
	"github.com/stalkershop/stalker-backend/internal/services"
	"github.com/stalkershop/stalker-backend/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
	storageService  *services.StorageService
}

func NewCategoryHandler(categoryService *services.CategoryService, storageService *services.StorageService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		storageService:  storageService,
	}
}

// GET /categories/tree
func (h *CategoryHandler) GetTree(c *gin.Context) {
	includeInactive := false
	if v := c.Query("include_inactive"); v != "" {
		includeInactive, _ = strconv.ParseBool(v)
	}

	tree, err := h.categoryService.GetTree(includeInactive)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"categories": tree})
}

// GET /categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid category ID", nil)
		return
	}

	category, err := h.categoryService.GetCategory(categoryID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"category": category})
}

// POST /categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	category, err := h.categoryService.CreateCategory(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyCategoryCreated),
		"category": category,
	})
}

// PUT /categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid category ID", nil)
		return
	}

	var req services.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	category, err := h.categoryService.UpdateCategory(categoryID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyCategoryUpdated),
		"category": category,
	})
}

// DELETE /categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid category ID", nil)
		return
	}

	if err := h.categoryService.DeleteCategory(categoryID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyCategoryDeleted)})
}

// POST /categories/:id/image
func (h *CategoryHandler) UploadImage(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid category ID", nil)
		return
	}

	existing, err := h.categoryService.GetCategory(categoryID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "Image file is required", nil)
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadFile(file, header, h.storageService.ImageUploadOptions("categories"))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	image := result.URL
	category, err := h.categoryService.UpdateCategory(categoryID, &services.UpdateCategoryRequest{Image: &image})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Best-effort cleanup of the replaced image.
	if existing.Image != "" {
		if key := h.storageService.ObjectKeyFromURL(existing.Image); key != "" {
			if err := h.storageService.DeleteFile(key); err != nil {
				logrus.WithError(err).WithField("key", key).Warn("Failed to delete replaced category image")
			}
		}
	}

	utils.SuccessResponse(c, gin.H{
		"category": category,
		"upload":   result,
	})
}
