package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/fijas/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func newRoom(id, code string) *model.Room {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.Room{
		ID:       model.RoomID(id),
		Code:     model.RoomCode(code),
		Password: "pass",
		State:    model.RoomStateWaiting,
		Players: [model.MaxPlayers]*model.Player{
			{ID: "host-1", Username: "Host"},
		},
		CreatedAt:        now,
		LatestActivityAt: now,
	}
}

// Room tests

func (s *StorageSuite) TestSaveAndGetRoom() {
	room := newRoom("room-1", "ABCD")

	err := s.storage.SaveRoom(s.ctx, room)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRoom(s.ctx, "room-1")
	s.Require().NoError(err)
	s.Equal(room.Code, retrieved.Code)
	s.Equal(room.State, retrieved.State)
	s.Equal("Host", retrieved.Host().Username)
}

func (s *StorageSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestGetRoomByCode() {
	_ = s.storage.SaveRoom(s.ctx, newRoom("room-1", "ABCD"))

	retrieved, err := s.storage.GetRoomByCode(s.ctx, "ABCD")
	s.Require().NoError(err)
	s.Equal(model.RoomID("room-1"), retrieved.ID)
}

func (s *StorageSuite) TestGetRoomByCodeIsCaseSensitive() {
	_ = s.storage.SaveRoom(s.ctx, newRoom("room-1", "ABCD"))

	_, err := s.storage.GetRoomByCode(s.ctx, "abcd")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestRoomCodeExists() {
	_ = s.storage.SaveRoom(s.ctx, newRoom("room-1", "ABCD"))

	exists, err := s.storage.RoomCodeExists(s.ctx, "ABCD")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.RoomCodeExists(s.ctx, "WXYZ")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestDeleteRoomReleasesCode() {
	_ = s.storage.SaveRoom(s.ctx, newRoom("room-1", "ABCD"))

	err := s.storage.DeleteRoom(s.ctx, "room-1")
	s.Require().NoError(err)

	_, err = s.storage.GetRoom(s.ctx, "room-1")
	s.ErrorIs(err, model.ErrRoomNotFound)
	exists, _ := s.storage.RoomCodeExists(s.ctx, "ABCD")
	s.False(exists)
}

func (s *StorageSuite) TestDeleteMissingRoomIsNoop() {
	s.NoError(s.storage.DeleteRoom(s.ctx, "nonexistent"))
}

func (s *StorageSuite) TestReturnedRoomIsACopy() {
	_ = s.storage.SaveRoom(s.ctx, newRoom("room-1", "ABCD"))

	retrieved, _ := s.storage.GetRoom(s.ctx, "room-1")
	retrieved.State = model.RoomStateFinished
	retrieved.Players[0].Secret = "1234"

	again, _ := s.storage.GetRoom(s.ctx, "room-1")
	s.Equal(model.RoomStateWaiting, again.State)
	s.Empty(again.Players[0].Secret)
}

func (s *StorageSuite) TestListRooms() {
	_ = s.storage.SaveRoom(s.ctx, newRoom("room-1", "ABCD"))
	_ = s.storage.SaveRoom(s.ctx, newRoom("room-2", "EFGH"))

	rooms, err := s.storage.ListRooms(s.ctx)
	s.Require().NoError(err)
	s.Len(rooms, 2)
}

func (s *StorageSuite) TestConcurrentReadsDuringDeletes() {
	for i := 0; i < 50; i++ {
		id := string(rune('a'+i%26)) + string(rune('A'+i/26))
		_ = s.storage.SaveRoom(s.ctx, newRoom("room-"+id, "CODE"+id))
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		rooms, _ := s.storage.ListRooms(s.ctx)
		for _, r := range rooms {
			_ = s.storage.DeleteRoom(s.ctx, r.ID)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			rooms, err := s.storage.ListRooms(s.ctx)
			s.NoError(err)
			for _, r := range rooms {
				s.NotNil(r.Host())
			}
		}
	}()
	wg.Wait()

	rooms, _ := s.storage.ListRooms(s.ctx)
	s.Empty(rooms)
}
