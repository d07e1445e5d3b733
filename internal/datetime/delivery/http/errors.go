package http

import (
	"errors"
	"net/http"

	"task-reminder-bot/internal/datetime"
	"task-reminder-bot/pkg/response"
)

var errInvalidTimezone = response.NewHTTPError(http.StatusBadRequest, 110003, "invalid timezone")

// mapError translates use-case errors into HTTP errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, datetime.ErrEmptyText):
		return response.NewHTTPError(http.StatusBadRequest, 110001, "text is empty")
	case errors.Is(err, datetime.ErrNotRecognized):
		return response.NewHTTPError(http.StatusUnprocessableEntity, 110002, "expression not recognized")
	case errors.Is(err, datetime.ErrInvalidTimezone):
		return errInvalidTimezone
	default:
		return response.NewHTTPError(http.StatusInternalServerError, response.InternalServerErrorCode, response.DefaultErrorMessage)
	}
}
