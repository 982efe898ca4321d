// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/stalkershop/stalker-backend/internal/i18n"
	"github.com/stalkershop/stalker-backend/internal/services"
	"github.com/stalkershop/stalker-backend/internal/utils"
)

// respondServiceError maps domain errors onto the HTTP response
// envelope. Unknown errors become a 500 without leaking internals.
func respondServiceError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrCategoryNotFound):
		utils.NotFoundResponse(c, i18n.KeyCategoryNotFound)
	case errors.Is(err, services.ErrCategoryCycle):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCategoryCycle))
	case errors.Is(err, services.ErrCategoryInUse):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCategoryInUse))

	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
	case errors.Is(err, services.ErrProductUnavailable):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyProductUnavailable))
	case errors.Is(err, services.ErrInsufficientStock):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyProductOutOfStock))
	case errors.Is(err, services.ErrDuplicateSKU):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrBelowMinimumQuantity):
		utils.BadRequestResponse(c, err.Error(), nil)

	case errors.Is(err, services.ErrCurrencyNotFound):
		utils.NotFoundResponse(c, i18n.KeyCurrencyNotFound)
	case errors.Is(err, services.ErrInvalidCurrency):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCurrencyInvalid), nil)
	case errors.Is(err, services.ErrDuplicateCurrency):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCurrencyDuplicate))

	case errors.Is(err, services.ErrEmptyCart):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOrderEmptyCart), nil)
	case errors.Is(err, services.ErrOrderNotFound):
		utils.NotFoundResponse(c, i18n.KeyOrderNotFound)
	case errors.Is(err, services.ErrInvalidTransition):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyOrderInvalidTransition))
	case errors.Is(err, services.ErrResellerNotAuthorized):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyListingNotAuthorized), nil)

	case errors.Is(err, services.ErrListingNotFound):
		utils.NotFoundResponse(c, i18n.KeyListingNotFound)
	case errors.Is(err, services.ErrDuplicateListing):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyListingDuplicate))
	case errors.Is(err, services.ErrInvalidCommissionRate):
		utils.BadRequestResponse(c, err.Error(), nil)

	case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrUsernameTaken):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyAuthUserExists))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
	case errors.Is(err, services.ErrAccountDisabled):
		utils.ForbiddenResponse(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		utils.NotFoundResponse(c, i18n.KeyError)

	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, "")

	default:
		utils.InternalErrorResponse(c, "")
	}
}
