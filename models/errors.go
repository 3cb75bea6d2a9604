package models

import "net/http"

// APIError carries the HTTP status both transports use when surfacing a
// failed operation. Engine methods validate before mutating, so a
// returned APIError implies no state change.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

func Unauthorized(msg string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: msg}
}

func Validation(msg string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: msg}
}

func Conflict(msg string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: msg}
}

func NotFound(msg string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: msg}
}

var (
	ErrAuthRequired    = Unauthorized("board auth required")
	ErrTokenInvalid    = Unauthorized("board token invalid")
	ErrInvalidPin      = Unauthorized("invalid pin")
	ErrInvalidSeed     = Unauthorized("invalid board seed")
	ErrCurrentPin      = Validation("current pin invalid")
	ErrNextPin         = Validation("next pin invalid")
	ErrManualMode      = Conflict("manual mode")
	ErrNotManual       = Conflict("not manual")
	ErrPoolEmpty       = Conflict("pool empty")
	ErrAlreadyCalled   = Conflict("already called")
	ErrNothingToUndo   = Conflict("nothing to undo")
	ErrGameEstablished = &APIError{Status: http.StatusConflict, Message: "game established"}
	ErrInvalidStyle    = Validation("invalid")
	ErrInvalidGameType = Validation("invalid")
	ErrInvalidNumber   = Validation("invalid number")
	ErrNumbersRequired = Validation("numbers[25] required")
	ErrInvalidCell     = Validation("invalid cell")
	ErrCardNotFound    = NotFound("card not found")
	ErrUnknownAction   = Validation("unknown action")
)

// StatusOf maps any error to an HTTP status for response serialization.
func StatusOf(err error) int {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}
