package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-gallery-indexer/internal/api/shared/errors"
	"github.com/feral-file/ff-gallery-indexer/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondError renders an executor error. APIErrors keep their own status,
// anything else is an internal error.
func respondError(c *gin.Context, err error, message string) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatus() >= http.StatusInternalServerError {
			logger.ErrorCtx(c.Request.Context(), err, zap.String("path", c.Request.URL.Path))
		}
		c.JSON(apiErr.HTTPStatus(), apiErr)
		return
	}

	logger.ErrorCtx(c.Request.Context(), err, zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, apierrors.NewInternalError(message))
}
