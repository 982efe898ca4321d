// internal/handlers/reseller.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stalkershop/stalker-backend/internal/i18n"
	"github.com/stalkershop/stalker-backend/internal/services"
	"github.com/stalkershop/stalker-backend/internal/utils"
)

type ResellerHandler struct {
	resellerService *services.ResellerService
}

func NewResellerHandler(resellerService *services.ResellerService) *ResellerHandler {
	return &ResellerHandler{resellerService: resellerService}
}

// POST /reseller/listings
func (h *ResellerHandler) CreateListing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := requesterID(c)
	if !ok {
		return
	}

	var req services.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	listing, err := h.resellerService.CreateListing(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyListingCreated),
		"listing": listing,
	})
}

// GET /reseller/listings
func (h *ResellerHandler) GetListings(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	activeOnly := false
	if v := c.Query("active_only"); v != "" {
		activeOnly, _ = strconv.ParseBool(v)
	}

	result, err := h.resellerService.ListListings(userID, params, activeOnly)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, *result)
}

// GET /reseller/listings/:id
func (h *ResellerHandler) GetListing(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID", nil)
		return
	}

	listing, err := h.resellerService.GetListing(listingID, userID, requesterRole(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"listing": listing})
}

// PUT /reseller/listings/:id
func (h *ResellerHandler) UpdateListing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := requesterID(c)
	if !ok {
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID", nil)
		return
	}

	var req services.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	listing, err := h.resellerService.UpdateListing(listingID, userID, requesterRole(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyListingUpdated),
		"listing": listing,
	})
}

// DELETE /reseller/listings/:id
func (h *ResellerHandler) DeleteListing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := requesterID(c)
	if !ok {
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID", nil)
		return
	}

	if err := h.resellerService.DeleteListing(listingID, userID, requesterRole(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyListingDeleted)})
}

// GET /reseller/stats
func (h *ResellerHandler) GetStats(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}

	stats, err := h.resellerService.GetStats(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"stats": stats})
}
