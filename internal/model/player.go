package model

import "time"

// PlayerID uniquely identifies a player within the system
type PlayerID string

// GuessID uniquely identifies a guess
type GuessID string

// Player is one of the two participants of a room
type Player struct {
	ID       PlayerID
	Username string
	Secret   string  // 4 digits, empty until set; write-once
	Guesses  []Guess // chronological
}

// HasSecret returns true once the player has chosen a secret
func (p *Player) HasSecret() bool {
	return p.Secret != ""
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	c := *p
	if p.Guesses != nil {
		c.Guesses = make([]Guess, len(p.Guesses))
		copy(c.Guesses, p.Guesses)
	}
	return &c
}

// Guess is an immutable record of one guess attempt
type Guess struct {
	ID           GuessID
	PlayerID     PlayerID
	Guess        string
	ExactMatches int
	CreatedAt    time.Time
}
