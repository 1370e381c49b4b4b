package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error is a non-2xx response from the backend.
type Error struct {
	Status int
	// Message is the backend's own explanation, empty when the body carried none.
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
}

// UserMessage is the text shown to the professor.
func (e *Error) UserMessage() string {
	return e.Message
}

// IsStatus reports whether err is an *Error with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func decodeError(res *http.Response) error {
	apiErr := &Error{Status: res.StatusCode}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &body) == nil {
		apiErr.Message = body.Message
	}
	return apiErr
}
