package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"quizroom-system/internal/models"
)

func TestRank_SortsDescendingWithStableTies(t *testing.T) {
	players := []models.Player{
		{ID: "a", Nickname: "first-100", Score: 100},
		{ID: "b", Nickname: "top", Score: 300},
		{ID: "c", Nickname: "second-100", Score: 100},
		{ID: "d", Nickname: "mid", Score: 200},
	}

	entries := Rank(players, 3)

	assert.Equal(t, []string{"top", "mid", "first-100", "second-100"}, []string{
		entries[0].Nickname, entries[1].Nickname, entries[2].Nickname, entries[3].Nickname,
	})
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}
	// Input order is untouched.
	assert.Equal(t, "first-100", players[0].Nickname)
}

func TestRank_Percentage(t *testing.T) {
	entries := Rank([]models.Player{{Score: 250}}, 3)
	assert.Equal(t, 83, entries[0].Percentage)

	entries = Rank([]models.Player{{Score: 300}}, 3)
	assert.Equal(t, 100, entries[0].Percentage)

	entries = Rank([]models.Player{{Score: 250}}, 0)
	assert.Equal(t, 0, entries[0].Percentage, "no questions means no percentage")
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil, 3))
}

func TestAllReady(t *testing.T) {
	tests := []struct {
		name    string
		players []models.Player
		want    bool
	}{
		{"no players", nil, false},
		{"single ready player", []models.Player{{IsReady: true}}, false},
		{"one not ready", []models.Player{{IsReady: true}, {IsReady: false}}, false},
		{"both ready", []models.Player{{IsReady: true}, {IsReady: true}}, true},
		{"three ready", []models.Player{{IsReady: true}, {IsReady: true}, {IsReady: true}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AllReady(tt.players))
		})
	}
}
