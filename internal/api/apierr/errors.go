package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/fijas/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeNotFound              = "NOT_FOUND"
	CodeRoomNotFound          = "ROOM_NOT_FOUND"
	CodePlayerNotFound        = "PLAYER_NOT_FOUND"
	CodeDuplicateRoomCode     = "DUPLICATE_ROOM_CODE"
	CodeInvalidPassword       = "INVALID_PASSWORD"
	CodeRoomFull              = "ROOM_FULL"
	CodeUsernameTaken         = "USERNAME_TAKEN"
	CodeSecretAlreadySet      = "SECRET_ALREADY_SET"
	CodeRoomNotSettingSecrets = "ROOM_NOT_SETTING_SECRETS"
	CodeRoomNotInProgress     = "ROOM_NOT_IN_PROGRESS"
	CodeNotYourTurn           = "NOT_YOUR_TURN"
	CodeInvalidSecret         = "INVALID_SECRET"
	CodeInvalidGuess          = "INVALID_GUESS"
	CodeRateLimited           = "RATE_LIMITED"
	CodeInternalError         = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer.
// Not-found errors map to 404, rule violations to 400.
func WriteError(w http.ResponseWriter, err error) {
	write(w, toHTTPError(err))
}

// WriteMutationError writes an error for the secret and guess endpoints,
// where every known failure is a 400, not-found included. Unknown errors
// are still a 500.
func WriteMutationError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	if he.status == http.StatusNotFound {
		he = &httpError{http.StatusBadRequest, he.apiError}
	}
	write(w, he)
}

func write(w http.ResponseWriter, he *httpError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found in this room"}}
	case errors.Is(err, model.ErrDuplicateRoomCode):
		return &httpError{http.StatusBadRequest, APIError{CodeDuplicateRoomCode, "A room with this code already exists"}}
	case errors.Is(err, model.ErrInvalidPassword):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPassword, "Invalid password"}}
	case errors.Is(err, model.ErrRoomFull):
		return &httpError{http.StatusBadRequest, APIError{CodeRoomFull, "Room is full"}}
	case errors.Is(err, model.ErrUsernameTaken):
		return &httpError{http.StatusBadRequest, APIError{CodeUsernameTaken, "Username is already taken in this room"}}
	case errors.Is(err, model.ErrSecretAlreadySet):
		return &httpError{http.StatusBadRequest, APIError{CodeSecretAlreadySet, "Secret has already been set"}}
	case errors.Is(err, model.ErrRoomNotInSettingSecretsState):
		return &httpError{http.StatusBadRequest, APIError{CodeRoomNotSettingSecrets, "Room is not accepting secrets"}}
	case errors.Is(err, model.ErrRoomNotInProgress):
		return &httpError{http.StatusBadRequest, APIError{CodeRoomNotInProgress, "Game is not in progress"}}
	case errors.Is(err, model.ErrNotPlayersTurn):
		return &httpError{http.StatusBadRequest, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrInvalidSecretFormat):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSecret, "Secret must be exactly 4 digits"}}
	case errors.Is(err, model.ErrInvalidGuessFormat):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGuess, "Guess must be exactly 4 digits"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewNotFoundError creates a generic not found error for unknown routes
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Not found"}}
}

// NewRateLimitedError creates a too many requests error
func NewRateLimitedError() error {
	return &httpError{http.StatusTooManyRequests, APIError{CodeRateLimited, "Too many requests"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
