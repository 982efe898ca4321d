// internal/handlers/currency.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/stalkershop/stalker-backend/internal/i18n"
	"github.com/stalkershop/stalker-backend/internal/services"
	"github.com/stalkershop/stalker-backend/internal/utils"
)

type CurrencyHandler struct {
	currencyService *services.CurrencyService
}

func NewCurrencyHandler(currencyService *services.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currencyService: currencyService}
}

// GET /currencies
func (h *CurrencyHandler) GetCurrencies(c *gin.Context) {
	activeOnly := true
	if v := c.Query("active_only"); v != "" {
		activeOnly, _ = strconv.ParseBool(v)
	}

	currencies, err := h.currencyService.ListCurrencies(activeOnly)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"currencies": currencies})
}

// GET /currencies/default
func (h *CurrencyHandler) GetDefaultCurrency(c *gin.Context) {
	currency, err := h.currencyService.GetDefaultCurrency()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"currency": currency})
}

// GET /currencies/convert?amount=10&from=USD&to=EUR
func (h *CurrencyHandler) Convert(c *gin.Context) {
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid amount", nil)
		return
	}

	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		utils.BadRequestResponse(c, "Both from and to currency codes are required", nil)
		return
	}

	result, err := h.currencyService.Convert(amount, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"conversion": result})
}

// POST /currencies
func (h *CurrencyHandler) CreateCurrency(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	currency, err := h.currencyService.CreateCurrency(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyCurrencyCreated),
		"currency": currency,
	})
}

// PUT /currencies/:code
func (h *CurrencyHandler) UpdateCurrency(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.UpdateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	currency, err := h.currencyService.UpdateCurrency(c.Param("code"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyCurrencyUpdated),
		"currency": currency,
	})
}
