// internal/utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/gophershop/backend/internal/apperrors"
)

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error *APIError `json:"error"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, ErrorEnvelope{
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// HandleError maps a classified error to the status contract: 401 for
// authentication, 403 for missing capability, 404 for absent entities and
// malformed identifiers alike, 400 for validation and conflicts, 500 default.
func HandleError(c *gin.Context, err error) {
	message := apperrors.MessageOf(err)

	switch apperrors.KindOf(err) {
	case apperrors.KindAuthentication:
		ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
	case apperrors.KindAuthorization:
		ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", message, nil)
	case apperrors.KindNotFound:
		ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message, nil)
	case apperrors.KindInvalidID:
		// Same status as not-found at the boundary, distinct code for clients
		// that care about the difference.
		ErrorResponse(c, http.StatusNotFound, "INVALID_ID", message, nil)
	case apperrors.KindValidation:
		var details interface{}
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			details = GetValidationErrors(fieldErrs)
		}
		ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", message, details)
	case apperrors.KindConflict:
		ErrorResponse(c, http.StatusBadRequest, "CONFLICT", message, nil)
	default:
		logrus.WithError(err).Error("unclassified error")
		ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
	}
}

func BadRequestResponse(c *gin.Context, message string, details interface{}) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message, details)
}
