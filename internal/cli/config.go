package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL   string
	SessionFile string
	Output      string
	Verbose     bool

	// Session is loaded from SessionFile before each command
	Session Session
}

// Session identifies the room and player this CLI is acting as. The
// server never shows a secret before the game ends, so the player's own
// secret is only kept here.
type Session struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
	Code     string `json:"code"`
	Username string `json:"username,omitempty"`
	Secret   string `json:"secret,omitempty"`
}

// fillOwnSecret adds the session player's secret to a room fetched from
// the server, which redacts it while the game is running
func (s Session) fillOwnSecret(room *Room) {
	if s.Secret == "" || room.ID != s.RoomID {
		return
	}
	for _, p := range room.Players {
		if p != nil && p.ID == s.PlayerID && p.Secret == "" {
			p.Secret = s.Secret
		}
	}
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:   getEnvOrDefault("FIJAS_SERVER", "http://localhost:8080"),
		SessionFile: getEnvOrDefault("FIJAS_SESSION_FILE", defaultSessionFile()),
		Output:      "text",
		Verbose:     false,
	}
}

// LoadSession reads the session file. A missing file leaves the session empty.
func (c *Config) LoadSession() error {
	data, err := os.ReadFile(c.SessionFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	if err := json.Unmarshal(data, &c.Session); err != nil {
		return fmt.Errorf("corrupt session file %s: %w", c.SessionFile, err)
	}
	return nil
}

// SaveSession writes the session to the session file
func (c *Config) SaveSession(s Session) error {
	c.Session = s

	dir := filepath.Dir(c.SessionFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.SessionFile, data, 0600)
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fijas/session.json"
	}
	return filepath.Join(home, ".fijas", "session.json")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
