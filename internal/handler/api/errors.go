package api

import (
	"net/http"

	"class-booking/internal/domain/booking"
	"class-booking/internal/handler/httperr"
	"class-booking/internal/pkg/errs"
	"class-booking/internal/pkg/validate"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

var kindStatus = map[booking.Kind]int{
	booking.KindNotFound:           http.StatusNotFound,
	booking.KindPreconditionFailed: http.StatusBadRequest,
	booking.KindCapacity:           http.StatusBadRequest,
	booking.KindConflict:           http.StatusConflict,
}

// abortWithUsecaseError renders err by its booking code, falling back to a
// validation or internal error.
func abortWithUsecaseError(c *gin.Context, err error, fallbackMsg string) {
	if be, ok := booking.AsError(err); ok {
		status, found := kindStatus[be.Kind]
		if !found {
			status = http.StatusInternalServerError
		}
		httperr.AbortWithCode(c, status, err, string(be.Code), be.Message, nil)
		return
	}

	if errs.Is(err, errs.ErrDomainValidation) {
		var fieldErrs validate.FieldErrors
		if errors.As(err, &fieldErrs) {
			httperr.AbortWithCode(c, http.StatusBadRequest, err, "VALIDATION_FAILED", "Validation failed", fieldErrs)
			return
		}
		httperr.AbortWithCode(c, http.StatusBadRequest, err, "VALIDATION_FAILED", errors.UnwrapAll(err).Error(), nil)
		return
	}

	httperr.AbortWithCode(c, http.StatusInternalServerError, err, "INTERNAL_ERROR", fallbackMsg, nil)
}
