package request

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mcoot/fijas/internal/services/scoring"
)

// Length bounds for codes, passwords and usernames, in characters
const (
	MinFieldLength = 4
	MaxFieldLength = 50
)

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	Code     string `json:"code"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// Validate checks the field bounds
func (r CreateRoomRequest) Validate() error {
	if err := validateLength("code", r.Code); err != nil {
		return err
	}
	if err := validateLength("password", r.Password); err != nil {
		return err
	}
	return validateLength("username", r.Username)
}

// JoinRoomRequest is the request body for joining a room
type JoinRoomRequest struct {
	Password string `json:"password"`
	Username string `json:"username"`
}

// Validate checks the field bounds, including the code taken from the path
func (r JoinRoomRequest) Validate(code string) error {
	if err := validateLength("code", code); err != nil {
		return err
	}
	if err := validateLength("password", r.Password); err != nil {
		return err
	}
	return validateLength("username", r.Username)
}

// SetSecretRequest is the request body for setting a secret
type SetSecretRequest struct {
	Secret string `json:"secret"`
}

// Validate checks the secret is four digits
func (r SetSecretRequest) Validate() error {
	if !scoring.ValidateCode(r.Secret) {
		return fmt.Errorf("secret must be exactly %d digits", scoring.CodeLength)
	}
	return nil
}

// MakeGuessRequest is the request body for making a guess
type MakeGuessRequest struct {
	Guess string `json:"guess"`
}

// Validate checks the guess is four digits
func (r MakeGuessRequest) Validate() error {
	if !scoring.ValidateCode(r.Guess) {
		return fmt.Errorf("guess must be exactly %d digits", scoring.CodeLength)
	}
	return nil
}

// ValidateID checks that a path id is a canonical hyphenated UUID
func ValidateID(name, value string) error {
	if len(value) != 36 {
		return fmt.Errorf("%s must be a UUID", name)
	}
	if _, err := uuid.Parse(value); err != nil {
		return fmt.Errorf("%s must be a UUID", name)
	}
	return nil
}

func validateLength(name, value string) error {
	n := utf8.RuneCountInString(value)
	if n < MinFieldLength || n > MaxFieldLength {
		return fmt.Errorf("%s must be between %d and %d characters", name, MinFieldLength, MaxFieldLength)
	}
	return nil
}
