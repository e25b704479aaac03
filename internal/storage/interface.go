package storage

import (
	"context"

	"github.com/mcoot/fijas/internal/model"
)

// Storage defines the interface for the room registry.
// Implementations index rooms both by ID and by code; a code maps to at
// most one live room.
type Storage interface {
	// SaveRoom inserts or replaces a room and keeps the code index in sync
	SaveRoom(ctx context.Context, room *model.Room) error
	// GetRoom returns model.ErrRoomNotFound if the ID is unknown
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	// GetRoomByCode returns model.ErrRoomNotFound if no live room has the code
	GetRoomByCode(ctx context.Context, code model.RoomCode) (*model.Room, error)
	RoomCodeExists(ctx context.Context, code model.RoomCode) (bool, error)
	// DeleteRoom removes the room and its code index; deleting a missing room is a no-op
	DeleteRoom(ctx context.Context, id model.RoomID) error
	// ListRooms returns a snapshot of all rooms
	ListRooms(ctx context.Context) ([]*model.Room, error)
}
