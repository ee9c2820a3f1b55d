package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	allocationdomain "github.com/smallbiznis/voltra/internal/allocation/domain"
	billingdomain "github.com/smallbiznis/voltra/internal/billing/domain"
	customerdomain "github.com/smallbiznis/voltra/internal/customer/domain"
	feederdomain "github.com/smallbiznis/voltra/internal/feeder/domain"
	lcdomain "github.com/smallbiznis/voltra/internal/loadcategory/domain"
	readingdomain "github.com/smallbiznis/voltra/internal/reading/domain"
	vacationdomain "github.com/smallbiznis/voltra/internal/vacation/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal_error")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, allocationdomain.ErrRunInProgress),
		errors.Is(err, billingdomain.ErrDuplicateBill),
		errors.Is(err, lcdomain.ErrCategoryExists),
		errors.Is(err, feederdomain.ErrFeederExists),
		errors.Is(err, vacationdomain.ErrInvalidTransition):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrServiceUnavailable),
		errors.Is(err, allocationdomain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isLoadCategoryValidationError(err),
		isFeederValidationError(err),
		isCustomerValidationError(err),
		isVacationValidationError(err),
		isReadingValidationError(err),
		isBillingValidationError(err),
		isAllocationValidationError(err):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, feederdomain.ErrNotFound),
		errors.Is(err, customerdomain.ErrCustomerNotFound),
		errors.Is(err, vacationdomain.ErrVacationNotFound),
		errors.Is(err, lcdomain.ErrCategoryNotFound),
		errors.Is(err, allocationdomain.ErrFeederNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	default:
		return err.Error()
	}
}

func validationErrorField(code string) string {
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	if code == "invalid_request" {
		return "request"
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}

// classifyErrorForLog folds an error into coarse type and code labels for
// request logs, mirroring the HTTP mapping without the payload.
func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}

	status, payload := mapError(err)
	switch {
	case status == http.StatusBadRequest && len(payload.Errors) > 0:
		return payload.Type, payload.Errors[0].Code
	default:
		return payload.Type, payload.Type
	}
}

func isLoadCategoryValidationError(err error) bool {
	switch {
	case errors.Is(err, lcdomain.ErrInvalidCode),
		errors.Is(err, lcdomain.ErrInvalidLoadFactor):
		return true
	default:
		return false
	}
}

func isFeederValidationError(err error) bool {
	switch {
	case errors.Is(err, feederdomain.ErrInvalidCode),
		errors.Is(err, feederdomain.ErrInvalidName):
		return true
	default:
		return false
	}
}

func isCustomerValidationError(err error) bool {
	switch {
	case errors.Is(err, customerdomain.ErrInvalidName),
		errors.Is(err, customerdomain.ErrInvalidFeederCode),
		errors.Is(err, customerdomain.ErrInvalidCategory):
		return true
	default:
		return false
	}
}

func isVacationValidationError(err error) bool {
	switch {
	case errors.Is(err, vacationdomain.ErrInvalidCustomer),
		errors.Is(err, vacationdomain.ErrInvalidDateRange):
		return true
	default:
		return false
	}
}

func isReadingValidationError(err error) bool {
	switch {
	case errors.Is(err, readingdomain.ErrInvalidFeederCode),
		errors.Is(err, readingdomain.ErrInvalidReading):
		return true
	default:
		return false
	}
}

func isBillingValidationError(err error) bool {
	switch {
	case errors.Is(err, billingdomain.ErrInvalidBill),
		errors.Is(err, billingdomain.ErrInvalidPeriod),
		errors.Is(err, billingdomain.ErrInvalidCustomer):
		return true
	default:
		return false
	}
}

func isAllocationValidationError(err error) bool {
	switch {
	case errors.Is(err, allocationdomain.ErrInvalidFeeder),
		errors.Is(err, allocationdomain.ErrInvalidPeriod),
		errors.Is(err, allocationdomain.ErrInvalidTariff):
		return true
	default:
		return false
	}
}
