package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/fijas/internal/dependencies/clock"
	"github.com/mcoot/fijas/internal/dependencies/random"
	"github.com/mcoot/fijas/internal/model"
	"github.com/mcoot/fijas/internal/services/scoring"
	"github.com/mcoot/fijas/internal/storage"
)

// DefaultStaleAfter is how long a room may sit idle before the sweep removes it
const DefaultStaleAfter = 3 * time.Minute

// Config holds tunables for the room controller
type Config struct {
	StaleAfter time.Duration
}

// DefaultConfig returns the default controller configuration
func DefaultConfig() Config {
	return Config{
		StaleAfter: DefaultStaleAfter,
	}
}

// JoinResult is returned to the player who joined a room
type JoinResult struct {
	PlayerID model.PlayerID
	RoomID   model.RoomID
	Code     model.RoomCode
	State    model.RoomState
	Players  []model.PlayerInfo
}

// GuessResult is the outcome of a single guess
type GuessResult struct {
	GuessID        model.GuessID
	Guess          string
	ExactMatches   int
	NextTurnPlayer model.PlayerInfo
	CurrentTurn    int
	State          model.RoomState
	Winner         *model.PlayerInfo // nil unless State is finished
}

// Controller manages the room registry and the game state machine
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
	cfg     Config

	// createMu serializes the code uniqueness check with the insert
	createMu sync.Mutex
	// locks serializes mutations of a single room
	locks *roomLocks
}

// NewController creates a new room Controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = DefaultStaleAfter
	}
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
		cfg:     cfg,
		locks:   newRoomLocks(),
	}
}

// CreateRoom creates a new room with the given player as host
func (c *Controller) CreateRoom(ctx context.Context, code model.RoomCode, password, username string) (*model.Room, error) {
	c.createMu.Lock()
	defer c.createMu.Unlock()

	exists, err := c.storage.RoomCodeExists(ctx, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrDuplicateRoomCode
	}

	now := c.clock.Now()
	room := &model.Room{
		ID:       model.RoomID(c.random.UUID()),
		Code:     code,
		Password: password,
		State:    model.RoomStateWaiting,
		Players: [model.MaxPlayers]*model.Player{
			{
				ID:       model.PlayerID(c.random.UUID()),
				Username: username,
				Guesses:  []model.Guess{},
			},
		},
		CreatedAt:        now,
		LatestActivityAt: now,
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		c.logger.Error("failed to save room",
			slog.String("room_id", string(room.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("room created",
		slog.String("room_id", string(room.ID)),
		slog.String("code", string(code)),
		slog.String("host_id", string(room.Host().ID)),
	)

	return room, nil
}

// GetRoomByCode retrieves a room by its code
func (c *Controller) GetRoomByCode(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	room, err := c.storage.GetRoomByCode(ctx, code)
	if errors.Is(err, model.ErrRoomNotFound) {
		return nil, fmt.Errorf("%w: code %s", model.ErrRoomNotFound, code)
	}
	return room, err
}

// GetRoom retrieves a room by ID
func (c *Controller) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	room, err := c.storage.GetRoom(ctx, id)
	if errors.Is(err, model.ErrRoomNotFound) {
		return nil, fmt.Errorf("%w: id %s", model.ErrRoomNotFound, id)
	}
	return room, err
}

// JoinRoom adds a second player to a waiting room
func (c *Controller) JoinRoom(ctx context.Context, code model.RoomCode, password, username string) (*JoinResult, error) {
	found, err := c.GetRoomByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	unlock := c.locks.lock(found.ID)
	defer unlock()

	// Re-read under the lock; the sweep may have removed it meanwhile
	room, err := c.GetRoom(ctx, found.ID)
	if err != nil {
		return nil, err
	}

	if room.Password != password {
		return nil, model.ErrInvalidPassword
	}
	if room.IsFull() {
		return nil, model.ErrRoomFull
	}
	if host := room.Host(); host != nil && host.Username == username {
		return nil, model.ErrUsernameTaken
	}

	player := &model.Player{
		ID:       model.PlayerID(c.random.UUID()),
		Username: username,
		Guesses:  []model.Guess{},
	}
	room.Players[1] = player
	room.State = model.RoomStateSettingSecrets
	room.LatestActivityAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("player joined",
		slog.String("room_id", string(room.ID)),
		slog.String("player_id", string(player.ID)),
	)

	return &JoinResult{
		PlayerID: player.ID,
		RoomID:   room.ID,
		Code:     room.Code,
		State:    room.State,
		Players:  room.PlayerInfos(),
	}, nil
}

// SetSecret stores a player's secret. The call that sets the second
// secret starts the game.
func (c *Controller) SetSecret(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, secret string) error {
	if !scoring.ValidateCode(secret) {
		return model.ErrInvalidSecretFormat
	}

	unlock := c.locks.lock(roomID)
	defer unlock()

	room, err := c.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}

	player := room.GetPlayer(playerID)
	if player == nil {
		return fmt.Errorf("%w: id %s", model.ErrPlayerNotFound, playerID)
	}

	if room.State != model.RoomStateSettingSecrets {
		return model.ErrRoomNotInSettingSecretsState
	}
	if player.HasSecret() {
		return model.ErrSecretAlreadySet
	}

	player.Secret = secret

	if room.AllSecretsSet() {
		first := room.Players[c.random.Intn(model.MaxPlayers)]
		room.State = model.RoomStateInProgress
		room.CurrentTurn = 1
		room.CurrentTurnPlayerID = first.ID

		c.logger.Info("game started",
			slog.String("room_id", string(room.ID)),
			slog.String("first_player_id", string(first.ID)),
		)
	}

	room.LatestActivityAt = c.clock.Now()

	return c.storage.SaveRoom(ctx, room)
}

// MakeGuess records a guess against the opponent's secret and advances the turn
func (c *Controller) MakeGuess(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, guess string) (*GuessResult, error) {
	unlock := c.locks.lock(roomID)
	defer unlock()

	room, err := c.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	player := room.GetPlayer(playerID)
	if player == nil {
		return nil, fmt.Errorf("%w: id %s", model.ErrPlayerNotFound, playerID)
	}

	if room.State != model.RoomStateInProgress {
		return nil, model.ErrRoomNotInProgress
	}
	if room.CurrentTurnPlayerID != playerID {
		return nil, model.ErrNotPlayersTurn
	}
	if !scoring.ValidateCode(guess) {
		return nil, model.ErrInvalidGuessFormat
	}

	opponent := room.Opponent(playerID)
	now := c.clock.Now()

	record := model.Guess{
		ID:           model.GuessID(c.random.UUID()),
		PlayerID:     playerID,
		Guess:        guess,
		ExactMatches: scoring.ExactMatches(guess, opponent.Secret),
		CreatedAt:    now,
	}
	player.Guesses = append(player.Guesses, record)

	result := &GuessResult{
		GuessID:        record.ID,
		Guess:          guess,
		ExactMatches:   record.ExactMatches,
		NextTurnPlayer: opponent.Info(),
	}

	if scoring.IsWin(record.ExactMatches) {
		room.WinnerID = playerID
		room.State = model.RoomStateFinished
		winner := player.Info()
		result.Winner = &winner

		c.logger.Info("game finished",
			slog.String("room_id", string(room.ID)),
			slog.String("winner_id", string(playerID)),
			slog.Int("turn", room.CurrentTurn),
		)
	} else {
		room.CurrentTurnPlayerID = opponent.ID
		// A round is complete once both players have guessed equally often
		if len(player.Guesses) == len(opponent.Guesses) {
			room.CurrentTurn++
		}
	}

	result.CurrentTurn = room.CurrentTurn
	result.State = room.State
	room.LatestActivityAt = now

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Debug("guess made",
		slog.String("room_id", string(room.ID)),
		slog.String("player_id", string(playerID)),
		slog.Int("exact_matches", record.ExactMatches),
	)

	return result, nil
}

// ExpireStale removes finished rooms and rooms idle for at least the
// stale threshold. It returns the number of rooms removed.
func (c *Controller) ExpireStale(ctx context.Context) (int, error) {
	rooms, err := c.storage.ListRooms(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, snapshot := range rooms {
		if !snapshot.IsStale(c.clock.Now(), c.cfg.StaleAfter) {
			continue
		}

		ok, err := c.expireRoom(ctx, snapshot.ID)
		if err != nil {
			return removed, err
		}
		if ok {
			removed++
		}
	}

	if removed > 0 {
		c.logger.Info("stale rooms removed", slog.Int("count", removed))
	}

	return removed, nil
}

// expireRoom deletes the room if it is still stale once locked
func (c *Controller) expireRoom(ctx context.Context, id model.RoomID) (bool, error) {
	unlock := c.locks.lock(id)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, id)
	if errors.Is(err, model.ErrRoomNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	// Activity may have happened between the listing and the lock
	if !room.IsStale(c.clock.Now(), c.cfg.StaleAfter) {
		return false, nil
	}

	if err := c.storage.DeleteRoom(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateRoom(ctx context.Context, code model.RoomCode, password, username string) (*model.Room, error)
	GetRoomByCode(ctx context.Context, code model.RoomCode) (*model.Room, error)
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	JoinRoom(ctx context.Context, code model.RoomCode, password, username string) (*JoinResult, error)
	SetSecret(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, secret string) error
	MakeGuess(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, guess string) (*GuessResult, error)
	ExpireStale(ctx context.Context) (int, error)
}

var _ ControllerInterface = (*Controller)(nil)
