package model

import "time"

// RoomID uniquely identifies a room
type RoomID string

// RoomCode is the caller-chosen, human-shareable identifier used to join a room
type RoomCode string

// RoomState represents the current phase of a room
type RoomState string

const (
	RoomStateWaiting        RoomState = "waiting"         // Host alone, waiting for an opponent
	RoomStateSettingSecrets RoomState = "setting_secrets" // Both players present, choosing secrets
	RoomStateInProgress     RoomState = "in_progress"     // Players alternate guesses
	RoomStateFinished       RoomState = "finished"        // Someone guessed the opponent's secret
)

// MaxPlayers is the number of player slots in every room
const MaxPlayers = 2

// Room is a single game session between a host and one opponent
type Room struct {
	ID       RoomID
	Code     RoomCode
	Password string
	State    RoomState

	// Slot 0 is the host, slot 1 the joiner. Nil means the slot is empty.
	Players [MaxPlayers]*Player

	// Turn management, meaningful from RoomStateInProgress onward
	CurrentTurn         int      // 1-based round counter
	CurrentTurnPlayerID PlayerID // Empty before the game starts
	WinnerID            PlayerID // Set only by a winning guess

	CreatedAt        time.Time
	LatestActivityAt time.Time
}

// Host returns the player in slot 0
func (r *Room) Host() *Player {
	return r.Players[0]
}

// GetPlayer returns the player with the given ID, or nil if not found
func (r *Room) GetPlayer(id PlayerID) *Player {
	for _, p := range r.Players {
		if p != nil && p.ID == id {
			return p
		}
	}
	return nil
}

// Opponent returns the other filled player, or nil
func (r *Room) Opponent(id PlayerID) *Player {
	for _, p := range r.Players {
		if p != nil && p.ID != id {
			return p
		}
	}
	return nil
}

// FilledSlots returns the number of occupied player slots
func (r *Room) FilledSlots() int {
	n := 0
	for _, p := range r.Players {
		if p != nil {
			n++
		}
	}
	return n
}

// IsFull returns true if both slots are taken
func (r *Room) IsFull() bool {
	return r.FilledSlots() == MaxPlayers
}

// AllSecretsSet returns true once every slot is filled and has a secret
func (r *Room) AllSecretsSet() bool {
	for _, p := range r.Players {
		if p == nil || !p.HasSecret() {
			return false
		}
	}
	return true
}

// Winner returns the winning player, or nil if the game has no winner
func (r *Room) Winner() *Player {
	if r.WinnerID == "" {
		return nil
	}
	return r.GetPlayer(r.WinnerID)
}

// IsStale reports whether the sweep should reclaim the room
func (r *Room) IsStale(now time.Time, staleAfter time.Duration) bool {
	if r.State == RoomStateFinished {
		return true
	}
	return now.Sub(r.LatestActivityAt) >= staleAfter
}

// Clone returns a deep copy of the room
func (r *Room) Clone() *Room {
	c := *r
	for i, p := range r.Players {
		if p != nil {
			c.Players[i] = p.Clone()
		}
	}
	return &c
}
