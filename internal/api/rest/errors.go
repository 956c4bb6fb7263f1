package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-ownership-resolver/internal/api/shared/errors"
	"github.com/feral-file/ff-ownership-resolver/internal/domain"
	"github.com/feral-file/ff-ownership-resolver/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, apierrors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		c.JSON(http.StatusBadRequest, apiErr)
		return
	}
	c.JSON(http.StatusBadRequest, apierrors.NewValidationError(err.Error()))
}

// respondError maps a resolution error to its status and envelope
func respondError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, domain.ErrInvalidOwner), errors.Is(err, domain.ErrInvalidTimestamp):
		respondValidationError(c, err)
	case errors.Is(err, domain.ErrThirdPartyNotFound):
		respondNotFound(c, message, err.Error())
	case errors.Is(err, domain.ErrSubgraphNotConfigured), errors.Is(err, domain.ErrUnknownChain):
		logger.WarnCtx(c.Request.Context(), message, zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusServiceUnavailable, apierrors.NewServiceError(message, err.Error()))
	default:
		respondInternalError(c, err, message)
	}
}

// respondInternalError logs the failure and responds with a generic internal server error
func respondInternalError(c *gin.Context, err error, message string) {
	logger.ErrorCtx(c.Request.Context(), err, zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, apierrors.NewInternalError(message))
}
