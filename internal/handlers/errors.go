package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/dealflow/internal/apperrors"
	"github.com/SscSPs/dealflow/internal/core/domain"
	"github.com/SscSPs/dealflow/internal/dto"
	"github.com/SscSPs/dealflow/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondWithError maps a service error onto the {"error": msg} response shape.
// notFoundMsg is used for 404s, action names the operation for 500s.
func respondWithError(c *gin.Context, err error, notFoundMsg, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusCode(err)

	var appErr *apperrors.AppError
	msg := err.Error()
	switch {
	case errors.As(err, &appErr):
		msg = appErr.Message
	case status == http.StatusNotFound:
		msg = notFoundMsg
	case status == http.StatusUnauthorized:
		msg = "Could not validate credentials"
	case status == http.StatusInternalServerError:
		msg = "Failed to " + action
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("action", action), slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.String("action", action), slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, dto.ErrorResponse{Error: msg})
}

// respondBindError reports a request that failed binding or validation.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
}

// currentUser returns the user resolved by AuthMiddleware, writing a 401 when absent.
func currentUser(c *gin.Context) (*domain.User, bool) {
	user, ok := middleware.GetUserFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
	}
	return user, ok
}
