package model

import "errors"

// Common errors used across the application
var (
	// Not-found errors
	ErrRoomNotFound   = errors.New("room not found")
	ErrPlayerNotFound = errors.New("player not found")

	// Room errors
	ErrDuplicateRoomCode = errors.New("room with this code already exists")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrRoomFull          = errors.New("room is full")
	ErrUsernameTaken     = errors.New("username already exists")

	// Game errors
	ErrSecretAlreadySet             = errors.New("secret is already set for this player")
	ErrRoomNotInSettingSecretsState = errors.New("room is not in setting secrets state")
	ErrRoomNotInProgress            = errors.New("room is not in progress")
	ErrNotPlayersTurn               = errors.New("player is not the current turn player")

	// Format errors
	ErrInvalidSecretFormat = errors.New("secret must be exactly 4 numeric digits")
	ErrInvalidGuessFormat  = errors.New("guess must be exactly 4 numeric digits")
)

// IsNotFound reports whether err is one of the not-found errors
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRoomNotFound) || errors.Is(err, ErrPlayerNotFound)
}
