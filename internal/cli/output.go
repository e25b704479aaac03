package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Room:
		o.printRoom(v)
	case JoinResult:
		o.printJoinResult(v)
	case GuessResult:
		o.printGuessResult(v)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Room response type (matches API)
type Room struct {
	ID                  string    `json:"id"`
	Code                string    `json:"code"`
	State               string    `json:"state"`
	Players             []*Player `json:"players"`
	CurrentTurn         int       `json:"currentTurn"`
	CurrentTurnPlayerID *string   `json:"currentTurnPlayerId"`
	Winner              *string   `json:"winner,omitempty"`
}

// Player response type
type Player struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	HasSecret bool    `json:"hasSecret"`
	Secret    string  `json:"secret,omitempty"`
	Guesses   []Guess `json:"guesses"`
}

// Guess response type
type Guess struct {
	ID       string `json:"id"`
	PlayerID string `json:"playerId"`
	Guess    string `json:"guess"`
	Result   int    `json:"result"`
}

// PlayerInfo response type
type PlayerInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// JoinResult response type
type JoinResult struct {
	PlayerID string       `json:"playerId"`
	RoomID   string       `json:"roomId"`
	Code     string       `json:"code"`
	State    string       `json:"state"`
	Players  []PlayerInfo `json:"players"`
}

// GuessResult response type
type GuessResult struct {
	ID             string      `json:"id"`
	GuessID        string      `json:"guessId"`
	Guess          string      `json:"guess"`
	ExactMatches   int         `json:"exactMatches"`
	NextTurnPlayer PlayerInfo  `json:"nextTurnPlayer"`
	CurrentTurn    int         `json:"currentTurn"`
	State          string      `json:"state"`
	Winner         *PlayerInfo `json:"winner,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// playerName returns the username for id, or the id itself if unknown
func (r Room) playerName(id string) string {
	for _, p := range r.Players {
		if p != nil && p.ID == id {
			return p.Username
		}
	}
	return id
}

func (o *Output) printRoom(r Room) {
	fmt.Fprintf(o.w, "Room: %s (%s)\n", r.Code, r.ID)
	fmt.Fprintf(o.w, "State: %s\n", r.State)
	if r.CurrentTurn > 0 {
		fmt.Fprintf(o.w, "Turn: %d\n", r.CurrentTurn)
	}
	if r.CurrentTurnPlayerID != nil && r.State == "in_progress" {
		fmt.Fprintf(o.w, "To play: %s\n", r.playerName(*r.CurrentTurnPlayerID))
	}

	fmt.Fprintln(o.w, "Players:")
	for i, p := range r.Players {
		if p == nil {
			fmt.Fprintf(o.w, "  %d. (open)\n", i+1)
			continue
		}
		status := "no secret"
		if p.HasSecret {
			status = "secret set"
		}
		if p.Secret != "" {
			status = "secret: " + p.Secret
		}
		fmt.Fprintf(o.w, "  %d. %s (%s) - %s\n", i+1, p.Username, p.ID, status)

		if len(p.Guesses) > 0 {
			guesses := make([]string, len(p.Guesses))
			for j, g := range p.Guesses {
				guesses[j] = fmt.Sprintf("%s=%d", g.Guess, g.Result)
			}
			fmt.Fprintf(o.w, "     guesses: %s\n", strings.Join(guesses, ", "))
		}
	}

	if r.Winner != nil {
		fmt.Fprintf(o.w, "Winner: %s\n", r.playerName(*r.Winner))
	}
}

func (o *Output) printJoinResult(j JoinResult) {
	fmt.Fprintf(o.w, "Joined room %s (%s) as %s\n", j.Code, j.RoomID, j.PlayerID)
	fmt.Fprintf(o.w, "State: %s\n", j.State)
	fmt.Fprintln(o.w, "Players:")
	for _, p := range j.Players {
		fmt.Fprintf(o.w, "  - %s (%s)\n", p.Username, p.ID)
	}
}

func (o *Output) printGuessResult(g GuessResult) {
	fmt.Fprintf(o.w, "Guess %s: %d exact\n", g.Guess, g.ExactMatches)
	if g.Winner != nil {
		fmt.Fprintf(o.w, "Winner: %s\n", g.Winner.Username)
		return
	}
	fmt.Fprintf(o.w, "Turn %d, next: %s\n", g.CurrentTurn, g.NextTurnPlayer.Username)
}
