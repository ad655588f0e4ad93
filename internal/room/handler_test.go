package room

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizroom-system/internal/auth"
	"quizroom-system/internal/models"
)

func newTestRouter(svc *Service) *mux.Router {
	h := NewHandler(svc)
	r := mux.NewRouter()
	r.HandleFunc("/api/rooms", h.CreateRoom).Methods("POST")
	r.HandleFunc("/api/rooms/join", h.JoinRoom).Methods("POST")
	r.HandleFunc("/api/rooms/{roomID}", h.GetRoom).Methods("GET")
	r.HandleFunc("/api/rooms/{roomID}/start", h.StartGame).Methods("POST")
	r.HandleFunc("/api/rooms/{roomID}/leaderboard", h.GetLeaderboard).Methods("GET")
	return r
}

func doJSON(t *testing.T, router *mux.Router, userID uint, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(auth.WithUserID(req.Context(), userID))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_CreateAndJoinRoom(t *testing.T) {
	svc, _, _ := newTestService(newFakeStore())
	router := newTestRouter(svc)

	w := doJSON(t, router, 1, "POST", "/api/rooms", models.CreateRoomRequest{
		QuizID: 7, RoomCode: "ABC123", HostNickname: "Quinn",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Room
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, "ABC123", created.RoomCode)
	assert.Equal(t, models.RoomWaiting, created.Status)

	w = doJSON(t, router, 2, "POST", "/api/rooms/join", models.JoinRoomRequest{
		RoomCode: "ABC123", Nickname: "Ana",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var joined models.JoinRoomResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&joined))
	require.NotNil(t, joined.Player)
	assert.Equal(t, "Ana", joined.Player.Nickname)
	assert.Equal(t, created.ID, joined.Player.RoomID)

	w = doJSON(t, router, 1, "GET", "/api/rooms/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var state models.RoomState
	require.NoError(t, json.NewDecoder(w.Body).Decode(&state))
	assert.Len(t, state.Players, 2)
	assert.False(t, state.AllReady)
}

func TestHandler_JoinUnknownCodeIs404(t *testing.T) {
	svc, _, _ := newTestService(newFakeStore())
	router := newTestRouter(svc)

	w := doJSON(t, router, 2, "POST", "/api/rooms/join", models.JoinRoomRequest{
		RoomCode: "NOPE42", Nickname: "Ana",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_StartGameAuthorization(t *testing.T) {
	svc, _, _ := newTestService(newFakeStore())
	router := newTestRouter(svc)

	w := doJSON(t, router, 1, "POST", "/api/rooms", models.CreateRoomRequest{QuizID: 7})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Room
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

	// Non-host gets 403 even though the UI would hide the button.
	w = doJSON(t, router, 2, "POST", "/api/rooms/"+created.ID+"/start", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, 1, "POST", "/api/rooms/"+created.ID+"/start", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Starting again conflicts.
	w = doJSON(t, router, 1, "POST", "/api/rooms/"+created.ID+"/start", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_Leaderboard(t *testing.T) {
	store := newFakeStore()
	svc, _, _ := newTestService(store)
	router := newTestRouter(svc)

	w := doJSON(t, router, 1, "POST", "/api/rooms", models.CreateRoomRequest{
		QuizID: 7, RoomCode: "ABC123", HostNickname: "Quinn",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Room
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

	doJSON(t, router, 2, "POST", "/api/rooms/join", models.JoinRoomRequest{RoomCode: "ABC123", Nickname: "Ana"})

	require.NoError(t, svc.MarkCompleted(created.ID, 1, 250))
	require.NoError(t, svc.MarkCompleted(created.ID, 2, 300))

	w = doJSON(t, router, 1, "GET", "/api/rooms/"+created.ID+"/leaderboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []models.LeaderboardEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "Ana", entries[0].Nickname)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 83, entries[1].Percentage)
}
