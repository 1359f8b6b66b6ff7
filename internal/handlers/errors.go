package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/kost-listrik-api/internal/billing"
	"github.com/sjperalta/kost-listrik-api/internal/services"
	"github.com/sjperalta/kost-listrik-api/pkg/logger"
)

const msgInternalError = "terjadi kesalahan pada server"

// respondError maps service errors to HTTP responses
func respondError(c *gin.Context, err error) {
	var validationErr *billing.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		logger.Error("Request failed", "path", c.FullPath(), "error", err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
	}
}

// respondInvalid reports a malformed request field
func respondInvalid(c *gin.Context, field, message string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": message, "field": field})
}
