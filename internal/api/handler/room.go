package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/fijas/internal/api/request"
	"github.com/mcoot/fijas/internal/api/response"
	"github.com/mcoot/fijas/internal/model"
	"github.com/mcoot/fijas/internal/services/room"
)

// RoomHandler handles room and game endpoints
type RoomHandler struct {
	roomController room.ControllerInterface
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomController room.ControllerInterface) *RoomHandler {
	return &RoomHandler{
		roomController: roomController,
	}
}

// Create handles POST /rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	created, err := h.roomController.CreateRoom(r.Context(), model.RoomCode(req.Code), req.Password, req.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoomFromModel(created))
}

// Get handles GET /rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	found, err := h.roomController.GetRoomByCode(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(found))
}

// Join handles POST /rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if err := req.Validate(code); err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	result, err := h.roomController.JoinRoom(r.Context(), model.RoomCode(code), req.Password, req.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.JoinRoomResponseFromResult(result))
}

// SetSecret handles POST /rooms/{roomId}/secret/{playerId}
func (h *RoomHandler) SetSecret(w http.ResponseWriter, r *http.Request) {
	roomID, playerID, ok := pathIDs(w, r)
	if !ok {
		return
	}

	var req request.SetSecretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	if err := h.roomController.SetSecret(r.Context(), roomID, playerID, req.Secret); err != nil {
		WriteMutationError(w, err)
		return
	}

	response.Empty(w, http.StatusOK)
}

// Guess handles POST /rooms/{roomId}/guess/{playerId}
func (h *RoomHandler) Guess(w http.ResponseWriter, r *http.Request) {
	roomID, playerID, ok := pathIDs(w, r)
	if !ok {
		return
	}

	var req request.MakeGuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	result, err := h.roomController.MakeGuess(r.Context(), roomID, playerID, req.Guess)
	if err != nil {
		WriteMutationError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MakeGuessResponseFromResult(result))
}

// pathIDs extracts and validates the room and player ids, writing a 400 on failure
func pathIDs(w http.ResponseWriter, r *http.Request) (model.RoomID, model.PlayerID, bool) {
	vars := mux.Vars(r)
	if err := request.ValidateID("roomId", vars["roomId"]); err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return "", "", false
	}
	if err := request.ValidateID("playerId", vars["playerId"]); err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return "", "", false
	}
	return model.RoomID(vars["roomId"]), model.PlayerID(vars["playerId"]), true
}
