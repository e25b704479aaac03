package response

import (
	"time"

	"github.com/mcoot/fijas/internal/model"
	"github.com/mcoot/fijas/internal/services/room"
)

// Guess represents a recorded guess
type Guess struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"playerId"`
	Guess     string    `json:"guess"`
	Result    int       `json:"result"`
	CreatedAt time.Time `json:"createdAt"`
}

// GuessFromModel converts model.Guess
func GuessFromModel(g model.Guess) Guess {
	return Guess{
		ID:        string(g.ID),
		PlayerID:  string(g.PlayerID),
		Guess:     g.Guess,
		Result:    g.ExactMatches,
		CreatedAt: g.CreatedAt,
	}
}

// Player represents a player within a room view
type Player struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	HasSecret bool    `json:"hasSecret"`
	Secret    string  `json:"secret,omitempty"`
	Guesses   []Guess `json:"guesses"`
}

// PlayerFromModel converts a model.Player. The secret is only included
// when revealSecret is set.
func PlayerFromModel(p *model.Player, revealSecret bool) Player {
	guesses := make([]Guess, len(p.Guesses))
	for i, g := range p.Guesses {
		guesses[i] = GuessFromModel(g)
	}

	resp := Player{
		ID:        string(p.ID),
		Username:  p.Username,
		HasSecret: p.HasSecret(),
		Guesses:   guesses,
	}
	if revealSecret {
		resp.Secret = p.Secret
	}
	return resp
}

// Room represents a room in API responses. The password is never included.
type Room struct {
	ID                  string    `json:"id"`
	Code                string    `json:"code"`
	State               string    `json:"state"`
	Players             []*Player `json:"players"`
	CurrentTurn         int       `json:"currentTurn"`
	CurrentTurnPlayerID *string   `json:"currentTurnPlayerId"`
	Winner              *string   `json:"winner,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	LatestActivityAt    time.Time `json:"latestActivityAt"`
}

// RoomFromModel converts model.Room. The view is public, so secrets are
// only included once the game is finished.
func RoomFromModel(r *model.Room) Room {
	reveal := r.State == model.RoomStateFinished

	players := make([]*Player, model.MaxPlayers)
	for i, p := range r.Players {
		if p == nil {
			continue
		}
		view := PlayerFromModel(p, reveal)
		players[i] = &view
	}

	var currentTurnPlayer *string
	if r.CurrentTurnPlayerID != "" {
		id := string(r.CurrentTurnPlayerID)
		currentTurnPlayer = &id
	}

	var winner *string
	if r.WinnerID != "" {
		id := string(r.WinnerID)
		winner = &id
	}

	return Room{
		ID:                  string(r.ID),
		Code:                string(r.Code),
		State:               string(r.State),
		Players:             players,
		CurrentTurn:         r.CurrentTurn,
		CurrentTurnPlayerID: currentTurnPlayer,
		Winner:              winner,
		CreatedAt:           r.CreatedAt,
		LatestActivityAt:    r.LatestActivityAt,
	}
}

// PlayerInfo is the public id and username of a player
type PlayerInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// PlayerInfoFromModel converts model.PlayerInfo
func PlayerInfoFromModel(p model.PlayerInfo) PlayerInfo {
	return PlayerInfo{
		ID:       string(p.ID),
		Username: p.Username,
	}
}

// JoinRoomResponse is the response after joining a room
type JoinRoomResponse struct {
	PlayerID string       `json:"playerId"`
	RoomID   string       `json:"roomId"`
	Code     string       `json:"code"`
	State    string       `json:"state"`
	Players  []PlayerInfo `json:"players"`
}

// JoinRoomResponseFromResult converts room.JoinResult
func JoinRoomResponseFromResult(r *room.JoinResult) JoinRoomResponse {
	players := make([]PlayerInfo, len(r.Players))
	for i, p := range r.Players {
		players[i] = PlayerInfoFromModel(p)
	}
	return JoinRoomResponse{
		PlayerID: string(r.PlayerID),
		RoomID:   string(r.RoomID),
		Code:     string(r.Code),
		State:    string(r.State),
		Players:  players,
	}
}

// MakeGuessResponse is the response after a guess. ID and GuessID carry
// the same value.
type MakeGuessResponse struct {
	ID             string      `json:"id"`
	GuessID        string      `json:"guessId"`
	Guess          string      `json:"guess"`
	ExactMatches   int         `json:"exactMatches"`
	NextTurnPlayer PlayerInfo  `json:"nextTurnPlayer"`
	CurrentTurn    int         `json:"currentTurn"`
	State          string      `json:"state"`
	Winner         *PlayerInfo `json:"winner,omitempty"`
}

// MakeGuessResponseFromResult converts room.GuessResult
func MakeGuessResponseFromResult(r *room.GuessResult) MakeGuessResponse {
	var winner *PlayerInfo
	if r.Winner != nil {
		w := PlayerInfoFromModel(*r.Winner)
		winner = &w
	}
	return MakeGuessResponse{
		ID:             string(r.GuessID),
		GuessID:        string(r.GuessID),
		Guess:          r.Guess,
		ExactMatches:   r.ExactMatches,
		NextTurnPlayer: PlayerInfoFromModel(r.NextTurnPlayer),
		CurrentTurn:    r.CurrentTurn,
		State:          string(r.State),
		Winner:         winner,
	}
}

// HealthResponse is the response for the health endpoint
type HealthResponse struct {
	Status string `json:"status"`
}
