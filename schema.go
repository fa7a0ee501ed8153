package realworld

import (
	"net/http"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// ResponseOK is the success envelope every endpoint returns
type ResponseOK struct {
	Data any `json:"data"`
}

// MessageError is a single entry in the error envelope
type MessageError struct {
	Message string `json:"message"`
	Fields  any    `json:"fields,omitempty"`
}

// ResponseErrors is the error envelope
type ResponseErrors struct {
	Errors []MessageError `json:"errors"`
}

// RenderOK writes the success envelope
func RenderOK(c router.Context, status int, data any) error {
	return c.JSON(status, ResponseOK{Data: data})
}

// RenderError maps a categorized error to an HTTP response. Empty
// collections come back as a bare 204, everything else gets the error
// envelope. Internal errors log the cause but never leak it to the client.
func RenderError(c router.Context, logger Logger, err error) error {
	if logger == nil {
		logger = defLogger{}
	}

	if IsNoContent(err) {
		return c.Status(http.StatusNoContent).SendString("")
	}

	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	status := statusFromCategory(richErr.Category)

	// Not-found responses carry no body, like 204.
	if status == http.StatusNotFound {
		return c.Status(http.StatusNotFound).SendString("")
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			"error", richErr.Message,
			"category", richErr.Category,
		)
		return c.JSON(status, ResponseErrors{
			Errors: []MessageError{{Message: "internal server error"}},
		})
	}

	entry := MessageError{Message: richErr.Message}
	if fields := richErr.ValidationMap(); fields != nil {
		entry.Fields = fields
	}

	return c.JSON(status, ResponseErrors{Errors: []MessageError{entry}})
}

func statusFromCategory(category errors.Category) int {
	switch category {
	case errors.CategoryAuth:
		return http.StatusUnauthorized
	case errors.CategoryAuthz:
		return http.StatusForbidden
	case errors.CategoryBadInput:
		return http.StatusBadRequest
	case errors.CategoryValidation:
		return http.StatusUnprocessableEntity
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
