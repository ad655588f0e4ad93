// backend/internal/room/leaderboard.go
package room

import (
    "math"
    "sort"

    "quizroom-system/internal/models"
)

// Rank projects a roster into leaderboard entries sorted by descending score.
// The sort is stable: players with equal scores keep their input order.
// Percentage assumes 100 points per question; with zero questions it is 0.
func Rank(players []models.Player, totalQuestions int) []models.LeaderboardEntry {
    sorted := make([]models.Player, len(players))
    copy(sorted, players)
    sort.SliceStable(sorted, func(i, j int) bool {
        return sorted[i].Score > sorted[j].Score
    })

    entries := make([]models.LeaderboardEntry, len(sorted))
    for i, p := range sorted {
        percentage := 0
        if totalQuestions > 0 {
            percentage = int(math.Round(float64(p.Score) / float64(totalQuestions*100) * 100))
        }
        entries[i] = models.LeaderboardEntry{
            Rank:          i + 1,
            PlayerID:      p.ID,
            Nickname:      p.Nickname,
            Score:         p.Score,
            Percentage:    percentage,
            QuizCompleted: p.QuizCompleted,
        }
    }
    return entries
}

// AllReady is the advisory game-start gate: at least two players, all ready.
func AllReady(players []models.Player) bool {
    if len(players) < 2 {
        return false
    }
    for _, p := range players {
        if !p.IsReady {
            return false
        }
    }
    return true
}
