package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/architeacher/device-registry/internal/domain/model"
)

const msgUnexpectedError = "Unexpected server error"

// errorResponse is the uniform error body: the message carries the
// failing rule's text verbatim, except for unexpected faults.
type errorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = msgUnexpectedError
	}

	writeErrorResponse(w, status, message)
}

func writeErrorResponse(w http.ResponseWriter, status int, message string) {
	writeJSONResponse(w, status, errorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
	})
}

func statusForError(err error) int {
	var validationErrs *model.ValidationErrors

	switch {
	case errors.Is(err, model.ErrDeviceNotFound):
		return http.StatusNotFound

	case errors.Is(err, model.ErrCannotUpdateInUseDevice),
		errors.Is(err, model.ErrCannotDeleteInUseDevice),
		errors.Is(err, model.ErrEmptyBrand),
		errors.Is(err, model.ErrInvalidDeviceID),
		errors.Is(err, model.ErrInvalidState),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
