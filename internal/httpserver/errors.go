package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sportmarket/internal/catalog"
	"sportmarket/internal/checkout"
	"sportmarket/internal/domain"
	accountsvc "sportmarket/internal/service/account"
)

var errUnauthorized = errors.New("missing or invalid bearer token")

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type errorResponse struct {
	StatusCode int           `json:"statusCode"`
	Message    string        `json:"message"`
	Errors     []errorDetail `json:"errors"`
}

func respondError(c *gin.Context, status int, code, message string, details ...errorDetail) {
	if len(details) == 0 {
		details = []errorDetail{{Code: code, Message: message}}
	}
	c.JSON(status, errorResponse{StatusCode: status, Message: message, Errors: details})
}

func badRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, "InvalidInput", message)
}

// writeError maps service errors onto the JSON error body. Unknown errors are attached
// to the gin context for the request logger and reported as 500 without their text.
func writeError(c *gin.Context, err error) {
	var (
		missing *checkout.MissingFieldsError
		invalid *accountsvc.ValidationError
	)
	switch {
	case errors.As(err, &missing):
		details := make([]errorDetail, 0, len(missing.Fields))
		for _, f := range missing.Fields {
			details = append(details, errorDetail{Code: "RequiredField", Message: f + " is required", Field: f})
		}
		respondError(c, http.StatusUnprocessableEntity, "RequiredField", checkout.ErrMissingFields.Error(), details...)
	case errors.As(err, &invalid):
		respondError(c, http.StatusBadRequest, "InvalidField", invalid.Message, errorDetail{Code: "InvalidField", Message: invalid.Message, Field: invalid.Field})
	case errors.Is(err, accountsvc.ErrPasswordMismatch),
		errors.Is(err, catalog.ErrSizeRequired),
		errors.Is(err, catalog.ErrUnknownSize):
		badRequest(c, err.Error())
	case errors.Is(err, errUnauthorized),
		errors.Is(err, accountsvc.ErrInvalidCredentials),
		errors.Is(err, accountsvc.ErrRoleMismatch):
		respondError(c, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, "ResourceNotFound", "resource not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		respondError(c, http.StatusConflict, "DuplicateField", "an account with this email already exists")
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrNoPendingCheckout):
		respondError(c, http.StatusConflict, "InvalidOperation", err.Error())
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "General", "internal error")
	}
}
