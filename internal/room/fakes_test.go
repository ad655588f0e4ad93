package room

import (
	"errors"
	"sort"
	"time"

	"quizroom-system/internal/models"
)

// In-memory Store used by the service tests.
type fakeStore struct {
	rooms            map[string]*models.Room
	players          map[string]*models.Player
	failPlayerInsert bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rooms:   make(map[string]*models.Room),
		players: make(map[string]*models.Player),
	}
}

func (f *fakeStore) CreateRoom(room *models.Room) error {
	room.CreatedAt = time.Now()
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeStore) CreatePlayer(player *models.Player) error {
	if f.failPlayerInsert {
		return errors.New("insert failed")
	}
	for _, p := range f.players {
		if p.RoomID == player.RoomID && p.UserID == player.UserID {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	f.players[player.ID] = player
	return nil
}

func (f *fakeStore) RoomByID(roomID string) (*models.Room, error) {
	room, ok := f.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (f *fakeStore) WaitingRoomByCode(code string) (*models.Room, error) {
	for _, room := range f.rooms {
		if room.RoomCode == code && room.Status == models.RoomWaiting {
			return room, nil
		}
	}
	return nil, ErrNotJoinable
}

func (f *fakeStore) PlayerByRoomAndUser(roomID string, userID uint) (*models.Player, error) {
	for _, p := range f.players {
		if p.RoomID == roomID && p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) PlayerByID(playerID string) (*models.Player, error) {
	p, ok := f.players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

func (f *fakeStore) Players(roomID string) ([]models.Player, error) {
	var players []models.Player
	for _, p := range f.players {
		if p.RoomID == roomID {
			players = append(players, *p)
		}
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].JoinedAt.Before(players[j].JoinedAt)
	})
	return players, nil
}

func (f *fakeStore) UpdateNickname(playerID, nickname string) error {
	p, ok := f.players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}
	p.Nickname = nickname
	return nil
}

func (f *fakeStore) SetReady(playerID string, ready bool) error {
	p, ok := f.players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}
	p.IsReady = ready
	return nil
}

func (f *fakeStore) StartRoom(roomID string, now time.Time, redirectURL string) (bool, error) {
	room, ok := f.rooms[roomID]
	if !ok || room.Status != models.RoomWaiting {
		return false, nil
	}
	room.Status = models.RoomPlaying
	room.StartedAt = &now
	room.GameStartedAt = &now
	room.GameRedirectURL = redirectURL
	return true, nil
}

func (f *fakeStore) FinishRoom(roomID string, now time.Time) (bool, error) {
	room, ok := f.rooms[roomID]
	if !ok || room.Status == models.RoomFinished {
		return false, nil
	}
	room.Status = models.RoomFinished
	room.FinishedAt = &now
	return true, nil
}

func (f *fakeStore) MarkCompleted(roomID string, userID uint, score int, now time.Time) (bool, error) {
	for _, p := range f.players {
		if p.RoomID == roomID && p.UserID == userID {
			p.Score = score
			p.QuizCompleted = true
			p.CompletedAt = &now
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) DeletePlayerByID(playerID string, userID uint) (int64, error) {
	p, ok := f.players[playerID]
	if !ok || p.UserID != userID {
		return 0, nil
	}
	delete(f.players, playerID)
	return 1, nil
}

func (f *fakeStore) DeletePlayerByRoomAndUser(roomID string, userID uint) (int64, error) {
	for id, p := range f.players {
		if p.RoomID == roomID && p.UserID == userID {
			delete(f.players, id)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeCache struct {
	rooms  map[string]*models.Room
	boards map[string][]models.LeaderboardEntry
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		rooms:  make(map[string]*models.Room),
		boards: make(map[string][]models.LeaderboardEntry),
	}
}

func (f *fakeCache) SetRoom(room *models.Room) error {
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeCache) GetRoom(roomID string) (*models.Room, error) {
	room, ok := f.rooms[roomID]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return room, nil
}

func (f *fakeCache) SetLeaderboard(roomID string, entries []models.LeaderboardEntry) error {
	f.boards[roomID] = entries
	return nil
}

func (f *fakeCache) GetLeaderboard(roomID string) ([]models.LeaderboardEntry, error) {
	entries, ok := f.boards[roomID]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return entries, nil
}

type broadcastEvent struct {
	roomID    string
	eventType string
	data      interface{}
}

type stubNotifier struct {
	events []broadcastEvent
}

func (s *stubNotifier) Broadcast(roomID string, eventType string, data interface{}) {
	s.events = append(s.events, broadcastEvent{roomID: roomID, eventType: eventType, data: data})
}

func (s *stubNotifier) eventsOfType(eventType string) []broadcastEvent {
	var out []broadcastEvent
	for _, e := range s.events {
		if e.eventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

type stubCounter struct {
	count int
	err   error
}

func (s *stubCounter) QuestionCount(quizID uint) (int, error) {
	return s.count, s.err
}
