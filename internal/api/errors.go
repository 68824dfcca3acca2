package api

import (
	"errors"
	"net/http"

	"github.com/fitclub/membership-server/internal/service"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps typed service errors to HTTP statuses:
// validation -> 400, username conflict -> 409, unknown target -> 404,
// dangling reference -> 400 (with the offending id), anything else -> 500.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var notFoundErr *service.NotFoundError
	var refErr *service.ReferenceNotFoundError

	switch {
	case errors.As(err, &validationErr):
		abortWithError(c, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, service.ErrUsernameTaken):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.As(err, &notFoundErr):
		abortWithError(c, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &refErr):
		abortWithError(c, http.StatusBadRequest, refErr.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
