package handlers

import (
	"errors"
	"net/http"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorResponse defines the structure of an error response
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	URL     string `json:"url,omitempty"`
}

// writeServiceError maps the service error taxonomy onto HTTP responses.
// Partial failures carry the stored URL so the client can retry just the
// second step or warn about a possibly orphaned file.
func writeServiceError(c *gin.Context, log *logrus.Logger, err error) {
	var partial *service.PartialError
	if errors.As(err, &partial) {
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Message: "Operation partially completed",
			Code:    "PARTIAL_FAILURE",
			URL:     partial.URL,
		})
		return
	}

	var storageErr *service.StorageError
	if errors.As(err, &storageErr) {
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Message: "Storage operation failed",
			Code:    "STORAGE_FAILURE",
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Record not found",
			Code:    "NOT_FOUND",
		})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid input",
			Code:    "INVALID_INPUT",
		})
	default:
		log.WithError(err).Error("Unhandled error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
			Code:    "INTERNAL_ERROR",
		})
	}
}
