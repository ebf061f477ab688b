package http

import (
	"errors"
	"net/http"

	"inkboard/pkg/logger"
	"inkboard/services/blog/internal/entity"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors to status codes. Anything unrecognised is
// logged and reported with the generic fallback message.
func respondError(c *gin.Context, log *logger.Logger, err error, fallback string) {
	var validationErr *entity.ValidationError
	var uploadErr *entity.UploadError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErr.Messages})
	case errors.As(err, &uploadErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": uploadErr.Message})
	case errors.Is(err, entity.ErrInvalidQueryParameter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		log.Error("[HTTP] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
