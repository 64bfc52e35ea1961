package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/statementizer/internal/model"
)

// Error codes returned in the "code" field of error responses
const (
	ErrorBadRequest      = "BAD_REQUEST"
	ErrorFileInvalid     = "FILE_INVALID"
	ErrorFileTooLarge    = "FILE_TOO_LARGE"
	ErrorUnknownStrategy = "UNKNOWN_STRATEGY"
	ErrorColumnNotFound  = "COLUMN_NOT_FOUND"
	ErrorUnknownFormat   = "UNKNOWN_FORMAT"
	ErrorInvalidConfig   = "INVALID_CONFIG"
	ErrorInternal        = "INTERNAL_ERROR"
)

// errorResponse is the JSON body of every failed request
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func abortWithError(c *gin.Context, status int, code string, err error) {
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error(), Code: code})
}

// abortWithConfigError maps configuration sentinels to 400 and anything else to 500
func abortWithConfigError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrUnknownStrategy):
		abortWithError(c, http.StatusBadRequest, ErrorUnknownStrategy, err)
	case errors.Is(err, model.ErrColumnNotFound):
		abortWithError(c, http.StatusBadRequest, ErrorColumnNotFound, err)
	case errors.Is(err, model.ErrUnknownFormat):
		abortWithError(c, http.StatusBadRequest, ErrorUnknownFormat, err)
	case errors.Is(err, model.ErrInvalidConfig):
		abortWithError(c, http.StatusBadRequest, ErrorInvalidConfig, err)
	default:
		abortWithError(c, http.StatusInternalServerError, ErrorInternal, err)
	}
}
