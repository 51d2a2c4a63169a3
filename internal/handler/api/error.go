package api

import (
	"errors"
	"net/http"

	"eventmarket/internal/handler/httperr"
	"eventmarket/internal/infra"
	"eventmarket/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// statusOf maps usecase sentinels onto HTTP statuses. Missing resources and
// hidden resources both come back 404; state conflicts 409; violated
// workflow invariants 422.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrRequestNotFound),
		errors.Is(err, errs.ErrQuoteNotFound),
		errors.Is(err, errs.ErrBookingNotFound),
		errors.Is(err, errs.ErrPaymentNotFound),
		errors.Is(err, errs.ErrVendorNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, errs.ErrNotOrganizer),
		errors.Is(err, errs.ErrNotVendor),
		errors.Is(err, errs.ErrNotParty):
		return http.StatusForbidden, err.Error()

	case errors.Is(err, errs.ErrRequestAlreadyResolved),
		errors.Is(err, errs.ErrRequestNotOpen),
		errors.Is(err, errs.ErrRequestNotEditable),
		errors.Is(err, errs.ErrQuoteNotSendable),
		errors.Is(err, errs.ErrQuoteNotAcceptable),
		errors.Is(err, errs.ErrQuoteNotRejectable),
		errors.Is(err, errs.ErrQuoteNotRevisable),
		errors.Is(err, errs.ErrQuoteExpired),
		errors.Is(err, errs.ErrOpenQuoteExists),
		errors.Is(err, errs.ErrBookingNotCompletable),
		errors.Is(err, errs.ErrBookingNotCancellable),
		errors.Is(err, errs.ErrBookingNotPayable),
		errors.Is(err, errs.ErrBookingNotEditable),
		errors.Is(err, errs.ErrPaymentNotRefundable),
		errors.Is(err, errs.ErrVendorInactive):
		return http.StatusConflict, err.Error()

	case errors.Is(err, errs.ErrOverpayment),
		errors.Is(err, errs.ErrRefundExceedsPaid),
		errors.Is(err, errs.ErrDiscountExceedsSubtotal),
		errors.Is(err, errs.ErrEventNotFinished),
		errors.Is(err, errs.ErrCurrencyMismatch):
		return http.StatusUnprocessableEntity, err.Error()

	case errors.Is(err, errs.ErrInvalidBudgetRange),
		errors.Is(err, errs.ErrEventDateInPast),
		errors.Is(err, errs.ErrInvalidEventWindow),
		errors.Is(err, errs.ErrEmptyTitle),
		errors.Is(err, errs.ErrEmptyItemList),
		errors.Is(err, errs.ErrInvalidItem),
		errors.Is(err, errs.ErrNonPositiveAmount),
		errors.Is(err, errs.ErrInvalidDepositPct),
		errors.Is(err, errs.ErrInvalidTaxRate),
		errors.Is(err, errs.ErrInvalidValidityDays),
		errors.Is(err, errs.ErrInvalidPolicyTiers):
		return http.StatusBadRequest, err.Error()
	}

	if infra.IsKind(err, infra.KindNotFound) {
		return http.StatusNotFound, "resource not found"
	}
	if infra.IsKind(err, infra.KindDuplicateKey) || infra.IsKind(err, infra.KindConflict) {
		return http.StatusConflict, "conflicting state"
	}

	return http.StatusInternalServerError, "Internal server error"
}

func abortWithMappedError(c *gin.Context, err error) {
	status, msg := statusOf(err)
	httperr.AbortWithError(c, status, err, msg, nil)
}

func abortBadRequest(c *gin.Context, err error, msg string) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, msg, nil)
}

func abortUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	c.Abort()
}
