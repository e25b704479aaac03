package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/fijas/internal/api"
	"github.com/mcoot/fijas/internal/api/apierr"
	"github.com/mcoot/fijas/internal/api/response"
	"github.com/mcoot/fijas/internal/factory"
	"github.com/mcoot/fijas/internal/testutil"
)

const unknownID = "6f1c2a8e-3b4d-4e5f-9a6b-7c8d9e0f1a2b"

// testServer wraps the router with a test app
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		RoomController: app.RoomController,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[apierr.ErrorResponse](t, rr).Error.Code
}

// createRoom creates ABCD and returns the room id and host id
func (ts *testServer) createRoom(t *testing.T) (string, string) {
	t.Helper()
	rr := ts.request(http.MethodPost, "/rooms", map[string]string{
		"code": "ABCD", "password": "ABCD", "username": "Host",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[response.Room](t, rr)
	return created.ID, created.Players[0].ID
}

func (ts *testServer) joinRoom(t *testing.T) string {
	t.Helper()
	rr := ts.request(http.MethodPost, "/rooms/ABCD/join", map[string]string{
		"password": "ABCD", "username": "Guest",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decode[response.JoinRoomResponse](t, rr).PlayerID
}

// startGame creates, joins and sets secrets 1234/5678 with the host to move
func (ts *testServer) startGame(t *testing.T) (string, string, string) {
	t.Helper()
	roomID, hostID := ts.createRoom(t)
	guestID := ts.joinRoom(t)
	ts.app.MockRandom.QueueIntn(0)

	rr := ts.request(http.MethodPost, "/rooms/"+roomID+"/secret/"+hostID, map[string]string{"secret": "1234"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = ts.request(http.MethodPost, "/rooms/"+roomID+"/secret/"+guestID, map[string]string{"secret": "5678"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return roomID, hostID, guestID
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/health", "/api/v1/health"} {
		rr := ts.request(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ok", decode[response.HealthResponse](t, rr).Status)
	}
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeNotFound, errorCode(t, rr))
}

func TestCreateRoom(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/rooms", map[string]string{
		"code": "ABCD", "password": "ABCD", "username": "Host",
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.NotContains(t, rr.Body.String(), "password")

	created := decode[response.Room](t, rr)
	assert.Equal(t, "ABCD", created.Code)
	assert.Equal(t, "waiting", created.State)
	require.Len(t, created.Players, 2)
	require.NotNil(t, created.Players[0])
	assert.Equal(t, "Host", created.Players[0].Username)
	assert.Nil(t, created.Players[1])
	assert.Nil(t, created.CurrentTurnPlayerID)
}

func TestCreateRoomUnderAPIPrefix(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/rooms", map[string]string{
		"code": "WXYZ", "password": "pass", "username": "Host",
	})
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodGet, "/rooms/WXYZ", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCreateRoomValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body any
	}{
		{"short code", map[string]string{"code": "ABC", "password": "pass", "username": "Host"}},
		{"short password", map[string]string{"code": "ABCD", "password": "p", "username": "Host"}},
		{"missing username", map[string]string{"code": "ABCD", "password": "pass"}},
		{"malformed body", "not an object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/rooms", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rr))
		})
	}
}

func TestCreateRoomDuplicateCode(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t)

	rr := ts.request(http.MethodPost, "/rooms", map[string]string{
		"code": "ABCD", "password": "other", "username": "Other",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeDuplicateRoomCode, errorCode(t, rr))
}

func TestGetRoom(t *testing.T) {
	ts := newTestServer(t)
	roomID, _ := ts.createRoom(t)

	rr := ts.request(http.MethodGet, "/rooms/ABCD", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, roomID, decode[response.Room](t, rr).ID)
}

func TestGetRoomNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/rooms/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeRoomNotFound, errorCode(t, rr))
}

func TestGetRoomNeverRevealsSecretsMidGame(t *testing.T) {
	ts := newTestServer(t)
	ts.startGame(t)

	rr := ts.request(http.MethodGet, "/rooms/ABCD", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	view := decode[response.Room](t, rr)
	require.NotNil(t, view.Players[0])
	hostID := view.Players[0].ID

	// Player ids are public, so they must not act as a key to the secret
	for _, path := range []string{
		"/rooms/ABCD",
		"/rooms/ABCD?playerId=" + hostID,
		"/rooms/ABCD?playerId=" + view.Players[1].ID,
	} {
		rr = ts.request(http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "1234", path)
		assert.NotContains(t, rr.Body.String(), "5678", path)

		view = decode[response.Room](t, rr)
		assert.True(t, view.Players[0].HasSecret)
		assert.Empty(t, view.Players[0].Secret)
		assert.Empty(t, view.Players[1].Secret)
	}
}

func TestGetRoomRevealsSecretsOnceFinished(t *testing.T) {
	ts := newTestServer(t)
	roomID, hostID, _ := ts.startGame(t)

	rr := ts.request(http.MethodPost, "/rooms/"+roomID+"/guess/"+hostID, map[string]string{"guess": "5678"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/rooms/ABCD", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	view := decode[response.Room](t, rr)
	assert.Equal(t, "finished", view.State)
	assert.Equal(t, "1234", view.Players[0].Secret)
	assert.Equal(t, "5678", view.Players[1].Secret)
}

func TestJoinRoom(t *testing.T) {
	ts := newTestServer(t)
	roomID, hostID := ts.createRoom(t)

	rr := ts.request(http.MethodPost, "/rooms/ABCD/join", map[string]string{
		"password": "ABCD", "username": "Guest",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	joined := decode[response.JoinRoomResponse](t, rr)
	assert.NotEmpty(t, joined.PlayerID)
	assert.Equal(t, roomID, joined.RoomID)
	assert.Equal(t, "ABCD", joined.Code)
	assert.Equal(t, "setting_secrets", joined.State)
	require.Len(t, joined.Players, 2)
	assert.Equal(t, hostID, joined.Players[0].ID)
	assert.Equal(t, joined.PlayerID, joined.Players[1].ID)
}

func TestJoinRoomFailures(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t)

	tests := []struct {
		name   string
		path   string
		body   map[string]string
		status int
		code   string
	}{
		{"missing room", "/rooms/NOPE/join", map[string]string{"password": "ABCD", "username": "Guest"}, http.StatusNotFound, apierr.CodeRoomNotFound},
		{"wrong password", "/rooms/ABCD/join", map[string]string{"password": "WXYZ", "username": "Guest"}, http.StatusBadRequest, apierr.CodeInvalidPassword},
		{"host username", "/rooms/ABCD/join", map[string]string{"password": "ABCD", "username": "Host"}, http.StatusBadRequest, apierr.CodeUsernameTaken},
		{"short username", "/rooms/ABCD/join", map[string]string{"password": "ABCD", "username": "Gu"}, http.StatusBadRequest, apierr.CodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.code, errorCode(t, rr))
		})
	}
}

func TestJoinFullRoom(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t)
	ts.joinRoom(t)

	rr := ts.request(http.MethodPost, "/rooms/ABCD/join", map[string]string{
		"password": "ABCD", "username": "Third",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeRoomFull, errorCode(t, rr))
}

func TestSetSecret(t *testing.T) {
	ts := newTestServer(t)
	roomID, hostID := ts.createRoom(t)
	ts.joinRoom(t)

	rr := ts.request(http.MethodPost, "/rooms/"+roomID+"/secret/"+hostID, map[string]string{"secret": "0042"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{}`, rr.Body.String())

	rr = ts.request(http.MethodPost, "/rooms/"+roomID+"/secret/"+hostID, map[string]string{"secret": "9999"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeSecretAlreadySet, errorCode(t, rr))
}

func TestSetSecretFailuresAreAllBadRequest(t *testing.T) {
	ts := newTestServer(t)
	roomID, hostID := ts.createRoom(t)

	tests := []struct {
		name string
		path string
		body map[string]string
		code string
	}{
		{"bad format", "/rooms/" + roomID + "/secret/" + hostID, map[string]string{"secret": "12a4"}, apierr.CodeInvalidRequest},
		{"room id not a uuid", "/rooms/room/secret/" + hostID, map[string]string{"secret": "1234"}, apierr.CodeInvalidRequest},
		{"unknown room", "/rooms/" + unknownID + "/secret/" + hostID, map[string]string{"secret": "1234"}, apierr.CodeRoomNotFound},
		{"unknown player", "/rooms/" + roomID + "/secret/" + unknownID, map[string]string{"secret": "1234"}, apierr.CodePlayerNotFound},
		{"room still waiting", "/rooms/" + roomID + "/secret/" + hostID, map[string]string{"secret": "1234"}, apierr.CodeRoomNotSettingSecrets},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.code, errorCode(t, rr))
		})
	}
}

func TestMakeGuess(t *testing.T) {
	ts := newTestServer(t)
	roomID, hostID, guestID := ts.startGame(t)

	rr := ts.request(http.MethodPost, "/rooms/"+roomID+"/guess/"+hostID, map[string]string{"guess": "5600"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	result := decode[response.MakeGuessResponse](t, rr)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, result.ID, result.GuessID)
	assert.Equal(t, "5600", result.Guess)
	assert.Equal(t, 2, result.ExactMatches)
	assert.Equal(t, guestID, result.NextTurnPlayer.ID)
	assert.Equal(t, "Guest", result.NextTurnPlayer.Username)
	assert.Equal(t, 1, result.CurrentTurn)
	assert.Equal(t, "in_progress", result.State)
	assert.Nil(t, result.Winner)

	// The guess shows up in the room history
	rr = ts.request(http.MethodGet, "/rooms/ABCD", nil)
	view := decode[response.Room](t, rr)
	require.Len(t, view.Players[0].Guesses, 1)
	assert.Equal(t, 2, view.Players[0].Guesses[0].Result)
	require.NotNil(t, view.CurrentTurnPlayerID)
	assert.Equal(t, guestID, *view.CurrentTurnPlayerID)
}

func TestMakeGuessWins(t *testing.T) {
	ts := newTestServer(t)
	roomID, hostID, _ := ts.startGame(t)

	rr := ts.request(http.MethodPost, "/rooms/"+roomID+"/guess/"+hostID, map[string]string{"guess": "5678"})
	require.Equal(t, http.StatusOK, rr.Code)

	result := decode[response.MakeGuessResponse](t, rr)
	assert.Equal(t, 4, result.ExactMatches)
	assert.Equal(t, "finished", result.State)
	require.NotNil(t, result.Winner)
	assert.Equal(t, hostID, result.Winner.ID)
	assert.NotContains(t, rr.Body.String(), "1234")

	rr = ts.request(http.MethodGet, "/rooms/ABCD", nil)
	view := decode[response.Room](t, rr)
	require.NotNil(t, view.Winner)
	assert.Equal(t, hostID, *view.Winner)
}

func TestMakeGuessFailuresAreAllBadRequest(t *testing.T) {
	ts := newTestServer(t)
	roomID, hostID, guestID := ts.startGame(t)

	tests := []struct {
		name string
		path string
		body map[string]string
		code string
	}{
		{"not your turn", "/rooms/" + roomID + "/guess/" + guestID, map[string]string{"guess": "1234"}, apierr.CodeNotYourTurn},
		{"bad format", "/rooms/" + roomID + "/guess/" + hostID, map[string]string{"guess": "567"}, apierr.CodeInvalidRequest},
		{"unknown room", "/rooms/" + unknownID + "/guess/" + hostID, map[string]string{"guess": "5678"}, apierr.CodeRoomNotFound},
		{"unknown player", "/rooms/" + roomID + "/guess/" + unknownID, map[string]string{"guess": "5678"}, apierr.CodePlayerNotFound},
		{"player id not a uuid", "/rooms/" + roomID + "/guess/host", map[string]string{"guess": "5678"}, apierr.CodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.code, errorCode(t, rr))
		})
	}
}

func TestMakeGuessAfterFinishIsRejected(t *testing.T) {
	ts := newTestServer(t)
	roomID, hostID, guestID := ts.startGame(t)

	rr := ts.request(http.MethodPost, "/rooms/"+roomID+"/guess/"+hostID, map[string]string{"guess": "5678"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/rooms/"+roomID+"/guess/"+guestID, map[string]string{"guess": "1234"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeRoomNotInProgress, errorCode(t, rr))
}

func TestRateLimit(t *testing.T) {
	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		RoomController: app.RoomController,
		RateLimitRPS:   0.001,
		RateLimitBurst: 2,
	})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, send().Code)
	assert.Equal(t, http.StatusOK, send().Code)

	rr := send()
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, apierr.CodeRateLimited, errorCode(t, rr))
}

func TestRequestsAreLogged(t *testing.T) {
	app := factory.NewTestApp()
	logger, logs := testutil.BufferLogger()
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		RoomController: app.RoomController,
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var found bool
	for _, entry := range logs.Entries() {
		if entry["msg"] == "http request" && entry["path"] == "/api/v1/health" {
			found = true
			assert.EqualValues(t, http.StatusOK, entry["status"])
		}
	}
	assert.True(t, found, "no request log entry in %v", logs.Messages())
}
