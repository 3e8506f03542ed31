package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habitual/internal/core/domain"
	"github.com/comitanigiacomo/habitual/internal/core/services"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

var badRequestErrors = []error{
	domain.ErrInvalidDate,
	domain.ErrFutureCompletion,
	domain.ErrHabitNameEmpty,
	domain.ErrHabitNameTooLong,
	domain.ErrHabitInvalidUserID,
	domain.ErrInvalidEmail,
	domain.ErrPasswordTooShort,
	services.ErrInvalidHabitID,
	services.ErrStatsRangeInverted,
	services.ErrStatsRangeTooLarge,
}

// handleError maps service errors to status codes. Unexpected errors are
// attached to the context for the request logger and hidden from clients.
func handleError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: vErr.Error(), Field: vErr.Field})
		return
	}

	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	switch {
	case errors.Is(err, domain.ErrHabitNotFound), errors.Is(err, domain.ErrHabitDeleted):
		c.JSON(http.StatusNotFound, errorResponse{Error: "habit not found"})

	case errors.Is(err, domain.ErrHabitConflict):
		c.JSON(http.StatusConflict, errorResponse{
			Error:   "version conflict",
			Message: "data has been modified elsewhere, please sync",
		})

	case errors.Is(err, domain.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, errorResponse{Error: "email already exists"})

	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid email or password"})

	case errors.Is(err, services.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})

	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, errorResponse{Error: "unauthorized access"})

	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body", Message: err.Error()})
}
